// Package fan maps temperature to fan duty and owns the PWM output.
//
// The mapping is a Curve built from the [fan] config section: a step
// function over the four thresholds by default, or a piecewise-linear
// interpolation through the (threshold, percent) control points when
// linear mode is enabled.
//
// The Controller runs the fan loop. It is the only goroutine that touches
// the PWM pin. The fan input on the HAT is active-low, so duty values are
// inverted before they reach the hardware. A failed write is logged and
// retried on the next cycle; it never stops the loop.
package fan
