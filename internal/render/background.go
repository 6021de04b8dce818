package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/opd-ai/go-rampfx/internal/ramp"
)

// BackgroundMode specifies how a background layer is rendered.
type BackgroundMode int

const (
	// BackgroundModeSolid draws a solid color.
	BackgroundModeSolid BackgroundMode = iota
	// BackgroundModeNone draws nothing (fully transparent).
	BackgroundModeNone
	// BackgroundModeRamp draws the animated gradient ramp.
	BackgroundModeRamp
)

// BackgroundRenderer renders one background layer onto the screen.
type BackgroundRenderer interface {
	Draw(screen *ebiten.Image)
	Mode() BackgroundMode
}

// SolidBackground renders a solid color background.
type SolidBackground struct {
	color color.RGBA
}

// NewSolidBackground creates a new solid background renderer.
func NewSolidBackground(c color.RGBA) *SolidBackground {
	return &SolidBackground{color: c}
}

// Draw fills the screen.
func (sb *SolidBackground) Draw(screen *ebiten.Image) {
	screen.Fill(sb.color)
}

// Mode returns BackgroundModeSolid.
func (sb *SolidBackground) Mode() BackgroundMode { return BackgroundModeSolid }

// Color returns the background color.
func (sb *SolidBackground) Color() color.RGBA { return sb.color }

// NoneBackground renders a fully transparent background.
type NoneBackground struct{}

// NewNoneBackground creates a new transparent background renderer.
func NewNoneBackground() *NoneBackground {
	return &NoneBackground{}
}

// Draw clears the screen.
func (nb *NoneBackground) Draw(screen *ebiten.Image) {
	screen.Clear()
}

// Mode returns BackgroundModeNone.
func (nb *NoneBackground) Mode() BackgroundMode { return BackgroundModeNone }

// NewBaseLayer returns the layer drawn beneath the ramp: transparent for
// composited windows, opaque black otherwise.
func NewBaseLayer(transparent bool) BackgroundRenderer {
	if transparent {
		return NewNoneBackground()
	}
	return NewSolidBackground(color.RGBA{A: 255})
}

// RampBackground renders an AnimatedColorRamp into an offscreen frame and
// presents that frame on Draw.
type RampBackground struct {
	frame ramp.Canvas
	anim  *ramp.AnimatedColorRamp
}

// NewRampBackground creates a ramp layer drawing into frame. The frame also
// allocates the tile and strip canvases.
func NewRampBackground(frame ramp.Canvas, settings ramp.Settings, readback bool) *RampBackground {
	anim := ramp.NewAnimatedColorRamp(ramp.Options{
		Width:    float64(frame.Width()),
		Height:   float64(frame.Height()),
		Target:   frame,
		Readback: readback,
	})
	anim.Apply(settings)
	return &RampBackground{frame: frame, anim: anim}
}

// Frame returns the offscreen canvas the ramp is drawn into.
func (rb *RampBackground) Frame() ramp.Canvas { return rb.frame }

// Animation returns the driven ramp.
func (rb *RampBackground) Animation() *ramp.AnimatedColorRamp { return rb.anim }

// Apply updates the ramp settings.
func (rb *RampBackground) Apply(s ramp.Settings) { rb.anim.Apply(s) }

// SetReadback toggles clipped partial-tile blits.
func (rb *RampBackground) SetReadback(readback bool) { rb.anim.SetReadback(readback) }

// Tick advances the animation by dt seconds and redraws the frame.
func (rb *RampBackground) Tick(dt float64) { rb.anim.Tick(dt) }

// Resize reallocates the frame and updates the ramp bounds.
func (rb *RampBackground) Resize(width, height int) {
	if width == rb.frame.Width() && height == rb.frame.Height() {
		return
	}
	rb.frame.Resize(width, height)
	rb.anim.SetSize(float64(width), float64(height))
}

// Draw presents the last rendered frame.
func (rb *RampBackground) Draw(screen *ebiten.Image) {
	switch f := rb.frame.(type) {
	case *EbitenCanvas:
		if f.Image() != nil {
			screen.DrawImage(f.Image(), nil)
		}
	case *RasterCanvas:
		if f.Image().Bounds().Eq(screen.Bounds()) {
			screen.WritePixels(f.Image().Pix)
		}
	}
}

// Mode returns BackgroundModeRamp.
func (rb *RampBackground) Mode() BackgroundMode { return BackgroundModeRamp }
