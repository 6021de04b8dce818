package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/opd-ai/go-rampfx/internal/ramp"
)

// EbitenCanvas adapts an *ebiten.Image to ramp.Canvas.
// A zero-sized canvas holds no image and ignores drawing.
type EbitenCanvas struct {
	img           *ebiten.Image
	width, height int
	owned         bool
	matrix        Matrix
	source        color.Color
	lineWidth     float64
}

// NewEbitenCanvas allocates an offscreen canvas.
func NewEbitenCanvas(width, height int) *EbitenCanvas {
	c := &EbitenCanvas{
		matrix:    Identity(),
		source:    color.Black,
		lineWidth: 1,
	}
	c.Resize(width, height)
	return c
}

// WrapEbitenImage wraps an image owned by the caller, such as the screen.
// Resize on a wrapped canvas detaches it and allocates a private image.
func WrapEbitenImage(img *ebiten.Image) *EbitenCanvas {
	b := img.Bounds()
	return &EbitenCanvas{
		img:       img,
		width:     b.Dx(),
		height:    b.Dy(),
		matrix:    Identity(),
		source:    color.Black,
		lineWidth: 1,
	}
}

// NewCanvas implements ramp.CanvasFactory.
func (c *EbitenCanvas) NewCanvas(width, height int) ramp.Canvas {
	return NewEbitenCanvas(width, height)
}

// Image returns the backing image, or nil for a zero-sized canvas.
func (c *EbitenCanvas) Image() *ebiten.Image { return c.img }

// Width returns the canvas width in pixels.
func (c *EbitenCanvas) Width() int { return c.width }

// Height returns the canvas height in pixels.
func (c *EbitenCanvas) Height() int { return c.height }

// Resize reallocates the backing image. Content is discarded.
func (c *EbitenCanvas) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if c.img != nil && c.owned {
		c.img.Deallocate()
	}
	c.img, c.owned = nil, false
	c.width, c.height = width, height
	if width > 0 && height > 0 {
		c.img = ebiten.NewImage(width, height)
		c.owned = true
	}
}

// Clear makes every pixel transparent.
func (c *EbitenCanvas) Clear() {
	if c.img != nil {
		c.img.Clear()
	}
}

// Translate composes a translation onto the current transform.
func (c *EbitenCanvas) Translate(tx, ty float64) { c.matrix.Translate(tx, ty) }

// Rotate composes a rotation onto the current transform.
func (c *EbitenCanvas) Rotate(angle float64) { c.matrix.Rotate(angle) }

// Scale composes a scale onto the current transform.
func (c *EbitenCanvas) Scale(sx, sy float64) { c.matrix.Scale(sx, sy) }

// IdentityMatrix resets the current transform.
func (c *EbitenCanvas) IdentityMatrix() { c.matrix = Identity() }

// Matrix returns the current transform.
func (c *EbitenCanvas) Matrix() Matrix { return c.matrix }

// SetSourceColor sets the stroke color. A nil color selects black.
func (c *EbitenCanvas) SetSourceColor(clr color.Color) {
	if clr == nil {
		clr = color.Black
	}
	c.source = clr
}

// SetLineWidth sets the stroke width in user units.
func (c *EbitenCanvas) SetLineWidth(width float64) {
	c.lineWidth = width
}

// DrawLine strokes a segment. Endpoints are transformed; the width is
// scaled by the transform's mean linear factor.
func (c *EbitenCanvas) DrawLine(x0, y0, x1, y1 float64) {
	if c.img == nil || c.lineWidth <= 0 {
		return
	}
	ax, ay := c.matrix.TransformPoint(x0, y0)
	bx, by := c.matrix.TransformPoint(x1, y1)
	width := c.lineWidth * c.matrix.lineScale()
	vector.StrokeLine(c.img, float32(ax), float32(ay), float32(bx), float32(by), float32(width), c.source, true)
}

// DrawCanvas draws all of src stretched into (x, y, w, h) of user space.
// Sources other than *EbitenCanvas are ignored.
func (c *EbitenCanvas) DrawCanvas(src ramp.Canvas, x, y, w, h float64) {
	s, ok := src.(*EbitenCanvas)
	if !ok || c.img == nil || s.img == nil || w == 0 || h == 0 {
		return
	}
	m := rectMatrix(c.matrix, float64(s.width), float64(s.height), x, y, w, h)

	op := &ebiten.DrawImageOptions{}
	op.GeoM = m.GeoM()
	op.Filter = ebiten.FilterLinear
	c.img.DrawImage(s.img, op)
}

// Blit copies the srcRect region of src into dstRect in device space,
// replacing the destination pixels. Fractional source rectangles are
// sampled exactly through DrawTriangles.
func (c *EbitenCanvas) Blit(src ramp.Canvas, srcRect, dstRect ramp.Rect) {
	s, ok := src.(*EbitenCanvas)
	if !ok || c.img == nil || s.img == nil || srcRect.IsEmpty() || dstRect.IsEmpty() {
		return
	}

	sx0, sy0 := float32(srcRect.Left()), float32(srcRect.Top())
	sx1, sy1 := float32(srcRect.Right()), float32(srcRect.Bottom())
	dx0, dy0 := float32(dstRect.Left()), float32(dstRect.Top())
	dx1, dy1 := float32(dstRect.Right()), float32(dstRect.Bottom())

	vertices := []ebiten.Vertex{
		{DstX: dx0, DstY: dy0, SrcX: sx0, SrcY: sy0, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		{DstX: dx1, DstY: dy0, SrcX: sx1, SrcY: sy0, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		{DstX: dx0, DstY: dy1, SrcX: sx0, SrcY: sy1, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		{DstX: dx1, DstY: dy1, SrcX: sx1, SrcY: sy1, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
	}
	indices := []uint16{0, 1, 2, 1, 3, 2}

	op := &ebiten.DrawTrianglesOptions{}
	op.Blend = ebiten.BlendCopy
	c.img.DrawTriangles(vertices, indices, s.img, op)
}

// GeoM converts the matrix to an ebiten.GeoM.
func (m Matrix) GeoM() ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m.XX)
	g.SetElement(0, 1, m.XY)
	g.SetElement(0, 2, m.X0)
	g.SetElement(1, 0, m.YX)
	g.SetElement(1, 1, m.YY)
	g.SetElement(1, 2, m.Y0)
	return g
}

var (
	_ ramp.Canvas        = (*EbitenCanvas)(nil)
	_ ramp.CanvasFactory = (*EbitenCanvas)(nil)
)
