package config

import "github.com/opd-ai/go-rampfx/internal/ramp"

// Default values for configuration options.
const (
	// DefaultWidth is the default window width in pixels.
	DefaultWidth = 1280
	// DefaultHeight is the default window height in pixels.
	DefaultHeight = 720
	// DefaultTitle is the effect title.
	DefaultTitle = "Moving Gradient Ramp"
	// DefaultFPS is the default animation tick rate.
	DefaultFPS = 60
	// DefaultColorsCount uses every color slot.
	DefaultColorsCount = MaxColors
)

// DefaultColors is the default rainbow palette.
var DefaultColors = [MaxColors]string{
	"#ff0000", "#ff7500", "#ffff00", "#00ff00",
	"#00ffff", "#0000ff", "#7500ff", "#ff00ff",
}

// DefaultConfig returns a Config with the effect's published defaults.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Title:  DefaultTitle,
			FPS:    DefaultFPS,
		},
		Effect: EffectConfig{
			Direction:   ramp.Left.String(),
			Speed:       ramp.DefaultSpeed,
			Scale:       ramp.DefaultScale,
			ColorsCount: DefaultColorsCount,
			Colors:      DefaultColors,
			Readback:    true,
		},
	}
}
