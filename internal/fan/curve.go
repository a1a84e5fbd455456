package fan

import "github.com/pentahat/pentad/internal/config"

// levelPercents are the duty percentages paired with thresholds lv0..lv3.
var levelPercents = [4]float64{25, 50, 75, 100}

// Curve converts a temperature to a fan duty percentage.
// It is immutable and safe to share.
type Curve struct {
	thresholds [4]float64
	linear     bool
}

// NewCurve builds a Curve from the validated [fan] section.
func NewCurve(cfg config.Fan) Curve {
	return Curve{
		thresholds: [4]float64{cfg.Lv0, cfg.Lv1, cfg.Lv2, cfg.Lv3},
		linear:     cfg.Linear,
	}
}

// Level returns the duty percentage for a temperature in Celsius.
// Comparisons at the thresholds are inclusive, so the output is
// monotonically non-decreasing in the input.
func (c Curve) Level(tempC float64) float64 {
	if c.linear {
		return c.linearLevel(tempC)
	}
	for i := 3; i >= 0; i-- {
		if tempC >= c.thresholds[i] {
			return levelPercents[i]
		}
	}
	return 0
}

// linearLevel interpolates between the (threshold, percent) control points:
// 0% below lv0, then a straight segment per threshold pair, 100% from lv3 up.
func (c Curve) linearLevel(tempC float64) float64 {
	if tempC < c.thresholds[0] {
		return 0
	}
	if tempC >= c.thresholds[3] {
		return 100
	}
	for i := 0; i < 3; i++ {
		lo, hi := c.thresholds[i], c.thresholds[i+1]
		if tempC < hi {
			frac := (tempC - lo) / (hi - lo)
			return levelPercents[i] + frac*(levelPercents[i+1]-levelPercents[i])
		}
	}
	return 100
}
