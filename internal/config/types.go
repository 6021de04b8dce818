// Package config provides configuration parsing for go-rampfx.
// It reads modern Lua files (a rampfx.config table) and legacy
// key-value files, validates them, and converts legacy files to Lua.
package config

import (
	"github.com/opd-ai/go-rampfx/internal/ramp"
)

// Palette bounds.
const (
	// MinColors is the smallest palette the effect uses.
	MinColors = 2
	// MaxColors is the number of color slots.
	MaxColors = 8
)

// Config represents the complete effect configuration.
type Config struct {
	// Window contains window-related settings.
	Window WindowConfig
	// Effect contains the ramp settings.
	Effect EffectConfig
}

// WindowConfig contains settings for the host window.
type WindowConfig struct {
	// Width is the window width in pixels.
	Width int
	// Height is the window height in pixels.
	Height int
	// Title is the window title.
	Title string
	// FPS is the animation tick rate.
	FPS int
	// Transparent requests a composited transparent window.
	Transparent bool
	// SkipTaskbar hides the window from the taskbar.
	SkipTaskbar bool
	// SkipPager hides the window from the pager.
	SkipPager bool
	// Below keeps the window beneath other windows.
	Below bool
	// Sticky shows the window on all desktops.
	Sticky bool
}

// EffectConfig contains the moving gradient ramp settings.
type EffectConfig struct {
	// Direction is the ramp direction name, e.g. "Left" or "Right-Down".
	Direction string
	// Speed is the scroll speed in pixels per second.
	Speed float64
	// Scale is the tile scale in percent.
	Scale float64
	// ColorsCount selects how many of Colors are used.
	ColorsCount int
	// Colors holds the eight color slots.
	Colors [MaxColors]string
	// Readback enables clipped partial-tile blits.
	Readback bool
}

// PaletteSize returns ColorsCount clamped to [MinColors, MaxColors].
func (e EffectConfig) PaletteSize() int {
	return min(max(e.ColorsCount, MinColors), MaxColors)
}

// Palette returns the active color slots.
func (e EffectConfig) Palette() []string {
	out := make([]string, e.PaletteSize())
	copy(out, e.Colors[:])
	return out
}

// Settings converts the effect configuration into per-frame ramp settings.
func (e EffectConfig) Settings() ramp.Settings {
	return ramp.Settings{
		Colors:    e.Palette(),
		Direction: e.Direction,
		Speed:     e.Speed,
		Scale:     e.Scale,
	}
}

// Validate checks the configuration and returns an error describing every
// fatal problem, or nil.
func (c *Config) Validate() error {
	return ValidateConfig(c)
}
