package ramp

import (
	"image/color"
	"math"
	"sort"

	"github.com/tanema/gween/ease"
)

// stripLineWidth is the stroke width used to paint one strip column.
const stripLineWidth = 2

// ColorStop anchors a gradient color at an offset in [0, 1].
type ColorStop struct {
	Offset float64
	Color  color.NRGBA
}

// GradientLine is the axis along which a 1D ramp is sampled.
type GradientLine struct {
	X0, Y0, X1, Y1 float64
}

// Length returns the line length rounded to whole pixels.
func (l GradientLine) Length() int {
	return int(math.Round(math.Hypot(l.X1-l.X0, l.Y1-l.Y0)))
}

// Angle returns the line angle in radians. A zero-length line has angle 0.
func (l GradientLine) Angle() float64 {
	return math.Atan2(l.Y1-l.Y0, l.X1-l.X0)
}

// EaseInOutSine maps x in [0, 1] to (1 - cos(πx)) / 2.
func EaseInOutSine(x float64) float64 {
	return float64(ease.InOutSine(float32(x), 0, 1, 1))
}

// LinearColorRamp rasterizes ordered color stops into a one pixel tall strip
// and projects the strip onto a destination rectangle along a gradient line.
type LinearColorRamp struct {
	line    GradientLine
	stops   []ColorStop
	factory CanvasFactory
	strip   Canvas

	needsSort   bool
	needsResize bool
	needsRedraw bool
}

// NewLinearColorRamp creates a ramp along line. The strip canvas is
// allocated from factory on first draw.
func NewLinearColorRamp(line GradientLine, factory CanvasFactory) *LinearColorRamp {
	return &LinearColorRamp{
		line:        line,
		factory:     factory,
		needsResize: true,
		needsRedraw: true,
	}
}

// Line returns the gradient line.
func (r *LinearColorRamp) Line() GradientLine {
	return r.line
}

// AddColorStop appends a stop. It returns false and stores nothing when
// offset is outside [0, 1].
func (r *LinearColorRamp) AddColorStop(offset float64, c color.Color) bool {
	if offset < 0 || offset > 1 || math.IsNaN(offset) {
		return false
	}

	r.stops = append(r.stops, ColorStop{Offset: offset, Color: toNRGBA(c)})
	r.needsSort = true
	r.needsRedraw = true
	return true
}

// Stops returns the stops in their current order.
func (r *LinearColorRamp) Stops() []ColorStop {
	out := make([]ColorStop, len(r.stops))
	copy(out, r.stops)
	return out
}

// Strip returns the strip canvas after resolving pending work.
func (r *LinearColorRamp) Strip() Canvas {
	r.prepare()
	return r.strip
}

// prepare resolves the dirty flags in sort, resize, redraw order.
func (r *LinearColorRamp) prepare() {
	if r.needsSort {
		sort.SliceStable(r.stops, func(i, j int) bool {
			return r.stops[i].Offset < r.stops[j].Offset
		})
		r.needsSort = false
	}

	if r.needsResize {
		r.resize()
		r.needsResize = false
	}

	if r.needsRedraw {
		r.redraw()
		r.needsRedraw = false
	}
}

func (r *LinearColorRamp) resize() {
	size := r.line.Length()
	if r.strip == nil {
		r.strip = r.factory.NewCanvas(size, 1)
	} else if r.strip.Width() != size || r.strip.Height() != 1 {
		r.strip.Resize(size, 1)
	}
	r.needsRedraw = true
}

// redraw repaints every strip column from the sorted stops.
func (r *LinearColorRamp) redraw() {
	for i, stop := range r.stops {
		if i == 0 && stop.Offset > 0 {
			r.paintSegment(ColorStop{Offset: 0, Color: stop.Color}, stop)
		}

		next := stop
		if i+1 < len(r.stops) {
			next = r.stops[i+1]
		}
		r.paintSegment(stop, next)
	}
}

// paintSegment strokes the columns between left and right, easing the mix ratio.
func (r *LinearColorRamp) paintSegment(left, right ColorStop) {
	size := float64(r.strip.Width())
	start := int(math.Round(left.Offset * size))
	end := int(math.Round(right.Offset * size))

	r.strip.SetLineWidth(stripLineWidth)
	for x := start; x < end; x++ {
		ratio := float64(x-start) / float64(end-start)
		r.strip.SetSourceColor(Mix(left.Color, right.Color, EaseInOutSine(ratio)))
		r.strip.DrawLine(float64(x), 0, float64(x), size)
	}
}

// Draw projects the strip onto rect of dst. The strip is rotated onto the
// gradient line and stretched across the diagonal of rect, so the band
// covers the whole rectangle for any line angle.
func (r *LinearColorRamp) Draw(dst Canvas, rect Rect) {
	r.prepare()
	if r.strip.Width() == 0 {
		return
	}

	diagonal := GradientLine{X0: rect.Left(), Y0: rect.Top(), X1: rect.Right(), Y1: rect.Bottom()}
	d := float64(diagonal.Length())

	dst.Translate(r.line.X0, r.line.Y0)
	dst.Rotate(r.line.Angle())
	dst.Translate(0, -d/2)
	dst.Scale(1, d)
	dst.DrawCanvas(r.strip, 0, 0, float64(r.strip.Width()), float64(r.strip.Height()))
	dst.IdentityMatrix()
}
