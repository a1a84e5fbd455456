package display

import (
	"fmt"
	"image"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Device is the subset of the SSD1306 driver the screen uses, split out so
// pager tests can substitute a recorder.
type Device interface {
	Draw(r image.Rectangle, src image.Image, sp image.Point) error
	Halt() error
}

// Screen owns the OLED and renders three-line frames onto it.
type Screen struct {
	dev    Device
	bus    i2c.BusCloser
	bounds image.Rectangle
	rotate bool
}

// OpenScreen pulses the panel's reset line, opens the first I2C bus and
// initializes the SSD1306. An error means the display is absent and the
// caller runs without it.
func OpenScreen(resetPin string, rotate bool) (*Screen, error) {
	pulseReset(resetPin)

	bus, err := i2creg.Open("")
	if err != nil {
		return nil, fmt.Errorf("failed to open I2C bus: %w", err)
	}
	dev, err := ssd1306.NewI2C(bus, &ssd1306.Opts{W: frameWidth, H: frameHeight, Sequential: true})
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("failed to initialize SSD1306: %w", err)
	}
	return &Screen{
		dev:    dev,
		bus:    bus,
		bounds: image.Rect(0, 0, frameWidth, frameHeight),
		rotate: rotate,
	}, nil
}

// pulseReset toggles the panel reset line low then high. A missing pin is
// tolerated; some carrier boards tie reset high.
func pulseReset(pinName string) {
	pin := gpioreg.ByName(pinName)
	if pin == nil {
		return
	}
	if err := pin.Out(gpio.Low); err != nil {
		return
	}
	time.Sleep(200 * time.Millisecond)
	pin.Out(gpio.High)
	time.Sleep(200 * time.Millisecond)
}

// Show renders a three-line page.
func (s *Screen) Show(lines [3]string) error {
	return s.dev.Draw(s.bounds, render(lines, s.rotate), image.Point{})
}

// Welcome draws the boot banner.
func (s *Screen) Welcome() error {
	img := image1bit.NewVerticalLSB(s.bounds)
	drawText(img, 0, 11, "PENTA SATA HAT")
	drawText(img, 32, 27, "Loading...")
	if s.rotate {
		img = rotate180(img)
	}
	return s.dev.Draw(s.bounds, img, image.Point{})
}

// Goodbye draws the shutdown banner.
func (s *Screen) Goodbye() error {
	img := image1bit.NewVerticalLSB(s.bounds)
	drawText(img, 32, 19, "Good Bye ~")
	if s.rotate {
		img = rotate180(img)
	}
	return s.dev.Draw(s.bounds, img, image.Point{})
}

// Clear blanks the panel.
func (s *Screen) Clear() error {
	return s.dev.Draw(s.bounds, image1bit.NewVerticalLSB(s.bounds), image.Point{})
}

// Close halts the controller and releases the bus.
func (s *Screen) Close() error {
	if err := s.dev.Halt(); err != nil {
		s.bus.Close()
		return err
	}
	return s.bus.Close()
}
