// Package button decodes the HAT's push button into semantic events.
//
// The Debouncer is a pure state machine fed with raw down/up edges and a
// clock; it emits exactly one Click, DoubleClick or LongPress per physical
// press sequence. The timing windows come from the [time] config section:
// "twice" bounds the gap between the clicks of a double-click, "press" is
// the hold duration that turns a press into a long-press. A long-press
// swallows the release edge, so it never produces a trailing click.
//
// The Watcher owns the GPIO pin and drives the Debouncer from edge
// interrupts, publishing events on a channel. If the pin cannot be opened
// the top board is absent and the caller runs without button support.
package button
