package ramp

import "math"

// Vec is a 2D real-valued vector.
type Vec struct {
	X, Y float64
}

// Placement is one tile blit: the tile-local source region and the
// surface region it lands on.
type Placement struct {
	Src, Dst Rect
}

// Options configures an AnimatedColorRamp.
type Options struct {
	// Width and Height are the surface bounds.
	Width, Height float64
	// Target is the surface the ramp is drawn onto every tick.
	Target Canvas
	// Factory allocates the tile and strip canvases. If nil, Target is used
	// when it implements CanvasFactory.
	Factory CanvasFactory
	// Readback reports whether the host surface supports reading back pixel
	// regions. Without it, tiles are blitted whole and unclipped.
	Readback bool
}

// AnimatedColorRamp scrolls a seamless tile across a surface.
// It is driven by Tick and is not safe for concurrent use.
type AnimatedColorRamp struct {
	seamless *SeamlessColorRamp
	target   Canvas
	readback bool

	shift Vec
	speed float64
}

// NewAnimatedColorRamp creates a driver with default speed and scale.
func NewAnimatedColorRamp(opts Options) *AnimatedColorRamp {
	factory := opts.Factory
	if factory == nil {
		factory, _ = opts.Target.(CanvasFactory)
	}

	a := &AnimatedColorRamp{
		seamless: NewSeamlessColorRamp(opts.Width, opts.Height, factory),
		target:   opts.Target,
		readback: opts.Readback,
		speed:    DefaultSpeed,
	}
	a.seamless.SetScale(ScaleFactor(DefaultScale))
	return a
}

// Seamless returns the tile synthesizer.
func (a *AnimatedColorRamp) Seamless() *SeamlessColorRamp { return a.seamless }

// Shift returns the current scroll offset.
func (a *AnimatedColorRamp) Shift() Vec { return a.shift }

// Speed returns the scroll speed in pixels per second.
func (a *AnimatedColorRamp) Speed() float64 { return a.speed }

// Scale returns the quantized tile scale factor.
func (a *AnimatedColorRamp) Scale() float64 { return a.seamless.Scale() }

// Direction returns the scroll direction.
func (a *AnimatedColorRamp) Direction() Direction { return a.seamless.Direction() }

// SetColors forwards the palette to the synthesizer.
func (a *AnimatedColorRamp) SetColors(colors []string) {
	a.seamless.SetColors(colors)
}

// SetDirection forwards the direction to the synthesizer.
func (a *AnimatedColorRamp) SetDirection(dir Direction) {
	a.seamless.SetDirection(dir)
}

// SetSpeed sets the scroll speed, clamped to [MinSpeed, MaxSpeed].
func (a *AnimatedColorRamp) SetSpeed(speed float64) {
	a.speed = ClampSpeed(speed)
}

// SetScale sets the tile scale from a percentage clamped to [MinScale, MaxScale].
func (a *AnimatedColorRamp) SetScale(percent float64) {
	a.seamless.SetScale(ScaleFactor(percent))
}

// SetSize updates the surface bounds.
func (a *AnimatedColorRamp) SetSize(width, height float64) {
	a.seamless.SetWidth(width)
	a.seamless.SetHeight(height)
}

// Readback reports whether partial-tile blits are clipped.
func (a *AnimatedColorRamp) Readback() bool { return a.readback }

// SetReadback toggles clipped partial-tile blits.
func (a *AnimatedColorRamp) SetReadback(readback bool) { a.readback = readback }

// Apply applies a per-frame settings value. Unchanged values are no-ops,
// so calling Apply every frame does not rebuild the tile.
func (a *AnimatedColorRamp) Apply(s Settings) {
	a.SetColors(s.Colors)
	a.SetDirection(ParseDirection(s.Direction))
	a.SetSpeed(s.Speed)
	a.SetScale(s.Scale)
}

// Tick advances the animation by dt seconds and draws one frame.
func (a *AnimatedColorRamp) Tick(dt float64) {
	a.step(dt)
	a.draw()
}

// step moves the shift vector along the occupied axes.
func (a *AnimatedColorRamp) step(dt float64) {
	if math.IsNaN(dt) || math.IsInf(dt, 0) {
		dt = 0
	}
	delta := a.speed * dt
	a.setShift(a.shift.X+delta, a.shift.Y+delta)
}

// setShift stores the shift wrapped into the tile, zeroing unoccupied axes.
func (a *AnimatedColorRamp) setShift(x, y float64) {
	dir := a.seamless.Direction()

	if dir.Horizontal() {
		x = wrap(x, float64(a.seamless.ScaledWidth()))
	} else {
		x = 0
	}
	if dir.Vertical() {
		y = wrap(y, float64(a.seamless.ScaledHeight()))
	} else {
		y = 0
	}

	a.shift = Vec{X: x, Y: y}
}

// wrap returns v modulo m in [0, m).
func wrap(v, m float64) float64 {
	if m <= 0 {
		return 0
	}
	r := math.Mod(v, m)
	if r < 0 {
		r += m
	}
	if r >= m {
		r = 0
	}
	return r
}

// anchor returns the position of the first tile on one axis.
func anchor(shift, size float64, leading, trailing bool) float64 {
	switch {
	case leading:
		return -shift
	case trailing:
		return shift - size
	default:
		return 0
	}
}

// Placements computes the tile blits of one pass without drawing.
func (a *AnimatedColorRamp) Placements() []Placement {
	tw := float64(a.seamless.ScaledWidth())
	th := float64(a.seamless.ScaledHeight())
	if tw <= 0 || th <= 0 {
		return nil
	}

	dir := a.seamless.Direction()
	w, h := a.seamless.Width(), a.seamless.Height()
	window := Rect{Width: w, Height: h}

	startX := anchor(a.shift.X, tw, dir.HasLeft(), dir.HasRight())
	startY := anchor(a.shift.Y, th, dir.HasUp(), dir.HasDown())

	var out []Placement
	for y := startY; y < h; y += th {
		for x := startX; x < w; x += tw {
			tile := Rect{X: x, Y: y, Width: tw, Height: th}

			if !a.readback {
				out = append(out, Placement{Src: Rect{Width: tw, Height: th}, Dst: tile})
				continue
			}

			src := Intersection(Rect{Width: tw, Height: th}, Rect{X: -x, Y: -y, Width: w, Height: h})
			dst := Intersection(window, tile)
			if src.IsEmpty() || dst.IsEmpty() {
				continue
			}
			out = append(out, Placement{Src: src, Dst: dst})
		}
	}
	return out
}

// draw blits every visible tile placement onto the target.
func (a *AnimatedColorRamp) draw() {
	if a.target == nil {
		return
	}
	for _, p := range a.Placements() {
		a.seamless.Draw(a.target, p.Src, p.Dst)
	}
}
