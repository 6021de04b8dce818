package ramp

import "image/color"

// Canvas is a 2D drawing target with a cairo-style transform.
// Transform calls compose onto the current matrix and apply to
// subsequent drawing; IdentityMatrix resets it.
type Canvas interface {
	// Width returns the canvas width in pixels.
	Width() int
	// Height returns the canvas height in pixels.
	Height() int
	// Resize reallocates the backing buffer. Content is discarded.
	Resize(width, height int)
	// Clear makes every pixel transparent.
	Clear()

	Translate(tx, ty float64)
	Rotate(angle float64)
	Scale(sx, sy float64)
	IdentityMatrix()

	// SetSourceColor sets the stroke color.
	SetSourceColor(c color.Color)
	// SetLineWidth sets the stroke width in user units.
	SetLineWidth(width float64)
	// DrawLine strokes a straight segment with the current color and width.
	DrawLine(x0, y0, x1, y1 float64)

	// DrawCanvas draws all of src stretched into the rectangle (x, y, w, h)
	// of user space.
	DrawCanvas(src Canvas, x, y, w, h float64)
	// Blit copies the src region of another canvas into the dst region.
	Blit(src Canvas, srcRect, dstRect Rect)
}

// CanvasFactory allocates offscreen canvases compatible with a target.
type CanvasFactory interface {
	NewCanvas(width, height int) Canvas
}
