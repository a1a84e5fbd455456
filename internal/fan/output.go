package fan

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"

	"github.com/pentahat/pentad/internal/logging"
)

// pwmFrequency follows the Noctua PWM fan specification.
const pwmFrequency = 25 * physic.KiloHertz

// Output drives the physical fan. Implementations are owned exclusively by
// the Controller goroutine.
type Output interface {
	// Set applies a duty percentage in [0,100].
	Set(percent float64) error
	// Close releases the pin, leaving the fan running.
	Close() error
}

// NewOutput opens the fan pin by its periph name ("GPIO27"). Hardware PWM is
// preferred; pins without PWM support degrade to plain on/off switching.
// A pin that cannot be opened at all is a fatal init error for the caller.
func NewOutput(pinName string) (Output, error) {
	pin := gpioreg.ByName(pinName)
	if pin == nil {
		return nil, fmt.Errorf("fan pin %s not found", pinName)
	}
	out := &pwmOutput{pin: pin}
	if err := out.Set(0); err != nil {
		logging.Warn("PWM not available on fan pin, falling back to on/off control")
		return &switchOutput{pin: pin}, nil
	}
	return out, nil
}

// pwmOutput drives the fan with a 25 kHz PWM signal.
// The HAT's fan input is active-low: the duty written to the pin is the
// off-ratio, not the on-ratio.
type pwmOutput struct {
	pin gpio.PinIO
}

func (o *pwmOutput) Set(percent float64) error {
	percent = clampPercent(percent)
	duty := gpio.Duty(float64(gpio.DutyMax) * (100 - percent) / 100)
	if err := o.pin.PWM(duty, pwmFrequency); err != nil {
		return fmt.Errorf("PWM write to %s failed: %w", o.pin.Name(), err)
	}
	return nil
}

func (o *pwmOutput) Close() error {
	return o.pin.Halt()
}

// switchOutput is the fallback for pins without PWM: any nonzero duty turns
// the fan fully on. Active-low, like the PWM path.
type switchOutput struct {
	pin gpio.PinIO
}

func (o *switchOutput) Set(percent float64) error {
	level := gpio.High
	if clampPercent(percent) > 0 {
		level = gpio.Low
	}
	if err := o.pin.Out(level); err != nil {
		return fmt.Errorf("GPIO write to %s failed: %w", o.pin.Name(), err)
	}
	return nil
}

func (o *switchOutput) Close() error {
	return o.pin.Halt()
}

func clampPercent(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
