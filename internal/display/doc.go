// Package display drives the HAT's 128x32 SSD1306 OLED.
//
// Pages are small value types that format three lines of text from live
// system readings. The Pager cycles through them, advancing automatically
// on the slider interval or on demand from the button, and optionally
// re-rendering the current page on a refresh interval so a page that stays
// up shows current data. The Screen owns the I2C device and turns a
// three-line frame into pixels; rotation for upside-down mounts happens at
// the frame level.
//
// A missing display is not a fault: the daemon keeps running fan-only.
package display
