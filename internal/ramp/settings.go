package ramp

import "math"

// Speed and scale bounds, in percent.
const (
	MinSpeed     = 30
	MaxSpeed     = 300
	DefaultSpeed = 100

	MinScale     = 20
	MaxScale     = 500
	DefaultScale = 100
)

// Settings is the per-frame configuration of an animated ramp.
type Settings struct {
	// Colors is the ordered palette as color strings.
	Colors []string
	// Direction is a direction name; unknown names mean Left.
	Direction string
	// Speed is the scroll speed in pixels per second, clamped to [30, 300].
	Speed float64
	// Scale is the tile scale in percent, clamped to [20, 500].
	Scale float64
}

// Clamp limits v to [lo, hi]. NaN clamps to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

// ClampSpeed limits a speed to its valid range.
func ClampSpeed(speed float64) float64 {
	return Clamp(speed, MinSpeed, MaxSpeed)
}

// ScaleFactor converts a scale percentage into a quantized factor.
func ScaleFactor(percent float64) float64 {
	return Precise(Clamp(percent, MinScale, MaxScale) / 100)
}
