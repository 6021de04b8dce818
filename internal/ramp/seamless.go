package ramp

import (
	"image/color"
	"math"
	"strings"
)

// Precision is the quantization factor applied to scales and tile sizes.
const Precision = 1000

// Precise truncates v to three decimal digits.
func Precise(v float64) float64 {
	return math.Floor(v*Precision) / Precision
}

// buildState tracks which rebuild steps a tile needs. Higher states imply
// the work of lower ones.
type buildState int

const (
	stateClean buildState = iota
	stateNeedsRedraw
	stateNeedsResize
)

// SeamlessStops returns the stops of a ramp whose colors at offsets 0 and 1
// match. Diagonal ramps walk the palette twice so the tile wraps on both axes.
func SeamlessStops(palette []color.NRGBA, diagonal bool) []ColorStop {
	k := len(palette)
	if k == 0 {
		return nil
	}

	count := k
	if diagonal {
		count = 2 * k
	}
	step := 1 / float64(count)

	stops := make([]ColorStop, 0, count+1)
	for i := 0; i < count; i++ {
		stops = append(stops, ColorStop{
			Offset: Precise(float64(i) * step),
			Color:  palette[i%k],
		})
	}
	return append(stops, ColorStop{Offset: 1, Color: palette[0]})
}

// GradientLineFor places the gradient line inside a w x h tile.
// An axis the direction does not occupy collapses to the tile center.
func GradientLineFor(dir Direction, w, h float64) GradientLine {
	line := GradientLine{X0: w / 2, X1: w / 2, Y0: h / 2, Y1: h / 2}

	switch {
	case dir.HasLeft():
		line.X0, line.X1 = 0, w
	case dir.HasRight():
		line.X0, line.X1 = w, 0
	}

	switch {
	case dir.HasUp():
		line.Y0, line.Y1 = 0, h
	case dir.HasDown():
		line.Y0, line.Y1 = h, 0
	}

	return line
}

// SeamlessColorRamp synthesizes a tile that repeats without visible seams
// along the axes of its direction. The tile is rebuilt lazily on the next
// draw after a configuration change.
type SeamlessColorRamp struct {
	width, height float64
	scale         float64
	direction     Direction
	colors        []string
	fingerprint   string

	factory CanvasFactory
	tile    Canvas
	state   buildState

	rebuilds int
}

// NewSeamlessColorRamp creates a synthesizer for a width x height surface.
func NewSeamlessColorRamp(width, height float64, factory CanvasFactory) *SeamlessColorRamp {
	return &SeamlessColorRamp{
		width:     width,
		height:    height,
		scale:     1,
		direction: Left,
		factory:   factory,
		tile:      factory.NewCanvas(0, 0),
		state:     stateNeedsResize,
	}
}

// markDirty raises the build state to at least s.
func (s *SeamlessColorRamp) markDirty(state buildState) {
	if state > s.state {
		s.state = state
	}
}

// Width returns the surface width.
func (s *SeamlessColorRamp) Width() float64 { return s.width }

// Height returns the surface height.
func (s *SeamlessColorRamp) Height() float64 { return s.height }

// SetWidth updates the surface width.
func (s *SeamlessColorRamp) SetWidth(width float64) {
	if width == s.width {
		return
	}
	s.width = width
	s.markDirty(stateNeedsResize)
}

// SetHeight updates the surface height.
func (s *SeamlessColorRamp) SetHeight(height float64) {
	if height == s.height {
		return
	}
	s.height = height
	s.markDirty(stateNeedsResize)
}

// Colors returns a copy of the palette.
func (s *SeamlessColorRamp) Colors() []string {
	out := make([]string, len(s.colors))
	copy(out, s.colors)
	return out
}

// SetColors replaces the palette. Reassigning an identical palette does
// not trigger a rebuild.
func (s *SeamlessColorRamp) SetColors(colors []string) {
	fingerprint := strings.Join(colors, "")
	if fingerprint == s.fingerprint && len(colors) == len(s.colors) {
		return
	}

	s.colors = append(s.colors[:0:0], colors...)
	s.fingerprint = fingerprint
	s.markDirty(stateNeedsRedraw)
}

// Direction returns the tile direction.
func (s *SeamlessColorRamp) Direction() Direction { return s.direction }

// SetDirection changes the tile direction. Invalid values fall back to Left.
func (s *SeamlessColorRamp) SetDirection(dir Direction) {
	if !dir.Valid() {
		dir = Left
	}
	if dir == s.direction {
		return
	}
	s.direction = dir
	s.markDirty(stateNeedsResize)
}

// Scale returns the quantized scale factor.
func (s *SeamlessColorRamp) Scale() float64 { return s.scale }

// SetScale sets the tile scale factor. The value is quantized and floored
// at 1/Precision.
func (s *SeamlessColorRamp) SetScale(scale float64) {
	scale = math.Max(Precise(scale), 1.0/Precision)
	if scale == s.scale {
		return
	}
	s.scale = scale
	s.markDirty(stateNeedsResize)
}

// ScaledWidth returns the tile width in pixels.
func (s *SeamlessColorRamp) ScaledWidth() int {
	s.ensureSized()
	return s.tile.Width()
}

// ScaledHeight returns the tile height in pixels.
func (s *SeamlessColorRamp) ScaledHeight() int {
	s.ensureSized()
	return s.tile.Height()
}

// Tile returns the tile canvas after rebuilding it if needed.
func (s *SeamlessColorRamp) Tile() Canvas {
	s.EnsureBuilt()
	return s.tile
}

// Rebuilds returns how many times the tile has been repainted.
func (s *SeamlessColorRamp) Rebuilds() int { return s.rebuilds }

// tileSize computes the tile dimensions for the current configuration.
func (s *SeamlessColorRamp) tileSize() (w, h float64) {
	scaleX, scaleY := 1.0, 1.0
	if s.direction.Horizontal() {
		scaleX = s.scale
	}
	if s.direction.Vertical() {
		scaleY = s.scale
	}

	w = Precise(s.width * scaleX)
	h = Precise(s.height * scaleY)
	if s.direction.IsDiagonal() {
		h = w
	}
	return w, h
}

// ensureSized resolves a pending resize without repainting.
func (s *SeamlessColorRamp) ensureSized() {
	if s.state < stateNeedsResize {
		return
	}

	w, h := s.tileSize()
	pw := max(int(w), 1)
	ph := max(int(h), 1)
	if pw != s.tile.Width() || ph != s.tile.Height() {
		s.tile.Resize(pw, ph)
	}
	s.state = stateNeedsRedraw
}

// EnsureBuilt resolves pending resize and redraw work.
func (s *SeamlessColorRamp) EnsureBuilt() {
	s.ensureSized()
	if s.state == stateNeedsRedraw {
		s.redraw()
		s.state = stateClean
	}
}

// palette parses the configured colors. Entries that fail to parse are
// logged and replaced by opaque black.
func (s *SeamlessColorRamp) palette() []color.NRGBA {
	out := make([]color.NRGBA, len(s.colors))
	for i, str := range s.colors {
		c, err := ParseColor(str)
		if err != nil {
			Logger().Warn("unparseable ramp color", "index", i, "color", str, "error", err)
			c = fallbackColor
		}
		out[i] = c
	}
	return out
}

func (s *SeamlessColorRamp) redraw() {
	s.tile.Clear()
	if len(s.colors) == 0 {
		return
	}

	w, h := float64(s.tile.Width()), float64(s.tile.Height())
	linear := NewLinearColorRamp(GradientLineFor(s.direction, w, h), s.factory)
	for _, stop := range SeamlessStops(s.palette(), s.direction.IsDiagonal()) {
		linear.AddColorStop(stop.Offset, stop.Color)
	}
	linear.Draw(s.tile, Rect{Width: w, Height: h})

	s.rebuilds++
	Logger().Debug("ramp tile rebuilt",
		"width", s.tile.Width(), "height", s.tile.Height(),
		"direction", s.direction, "colors", len(s.colors))
}

// Draw blits the src region of the tile into the dst region of target.
func (s *SeamlessColorRamp) Draw(target Canvas, src, dst Rect) {
	s.EnsureBuilt()
	target.Blit(s.tile, src, dst)
}
