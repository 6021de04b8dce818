// Package render draws the animated gradient ramp with Ebiten and provides
// a CPU canvas for headless rendering.
package render

import (
	"fmt"

	"github.com/opd-ai/go-rampfx/internal/ramp"
)

// Config holds the rendering configuration options.
type Config struct {
	// Width is the window width in pixels.
	Width int
	// Height is the window height in pixels.
	Height int
	// Title is the window title.
	Title string
	// FPS is the animation tick rate.
	FPS int
	// Transparent clears the window to transparent instead of black before
	// the ramp is drawn. Requires a compositor on X11.
	Transparent bool
	// Hints are applied to the window once it exists.
	Hints WindowHints
	// Readback enables clipped partial-tile blits. Without it every tile is
	// blitted whole.
	Readback bool
	// Effect is the initial ramp configuration.
	Effect ramp.Settings
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Width:    1280,
		Height:   720,
		Title:    "Moving Gradient Ramp",
		FPS:      60,
		Readback: true,
		Effect: ramp.Settings{
			Colors:    []string{"#ff0000", "#ff7500", "#ffff00", "#00ff00", "#00ffff", "#0000ff", "#7500ff", "#ff00ff"},
			Direction: ramp.Left.String(),
			Speed:     ramp.DefaultSpeed,
			Scale:     ramp.DefaultScale,
		},
	}
}

// Validate checks if the Config has valid values.
func (c Config) Validate() error {
	if c.Width <= 0 {
		return fmt.Errorf("width must be positive, got %d", c.Width)
	}
	if c.Height <= 0 {
		return fmt.Errorf("height must be positive, got %d", c.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	return nil
}
