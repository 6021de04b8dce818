package ramp

import (
	"image"
	"math"
)

// Rect is an axis-aligned rectangle with real-valued origin and extent.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Left returns the x coordinate of the left edge.
func (r Rect) Left() float64 { return r.X }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Top returns the y coordinate of the top edge.
func (r Rect) Top() float64 { return r.Y }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// IsEmpty reports whether the rectangle covers no area.
// Any non-positive extent counts as empty, so disjoint intersections are empty too.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Image returns the smallest integer rectangle containing r.
func (r Rect) Image() image.Rectangle {
	return image.Rect(
		int(math.Floor(r.Left())), int(math.Floor(r.Top())),
		int(math.Ceil(r.Right())), int(math.Ceil(r.Bottom())),
	)
}

// Intersection returns the overlap of a and b. The result has a non-positive
// width or height when the operands are disjoint.
func Intersection(a, b Rect) Rect {
	left := math.Max(a.Left(), b.Left())
	right := math.Min(a.Right(), b.Right())
	top := math.Max(a.Top(), b.Top())
	bottom := math.Min(a.Bottom(), b.Bottom())

	return Rect{
		X:      left,
		Y:      top,
		Width:  right - left,
		Height: bottom - top,
	}
}
