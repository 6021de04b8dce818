package render

import (
	"image"
	"image/color"
	"math"

	"github.com/opd-ai/go-rampfx/internal/ramp"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// RasterCanvas is a CPU canvas backed by an image.RGBA.
// It needs no graphics context, which makes it usable in headless mode
// and in tests.
type RasterCanvas struct {
	img       *image.RGBA
	matrix    Matrix
	source    color.Color
	lineWidth float64
	raster    *vector.Rasterizer
}

// NewRasterCanvas creates a transparent canvas of the given size.
// Negative sizes are treated as zero.
func NewRasterCanvas(width, height int) *RasterCanvas {
	c := &RasterCanvas{
		matrix:    Identity(),
		source:    color.Black,
		lineWidth: 1,
		raster:    &vector.Rasterizer{},
	}
	c.Resize(width, height)
	return c
}

// NewCanvas implements ramp.CanvasFactory.
func (c *RasterCanvas) NewCanvas(width, height int) ramp.Canvas {
	return NewRasterCanvas(width, height)
}

// Image returns the backing image. It is reallocated by Resize.
func (c *RasterCanvas) Image() *image.RGBA {
	return c.img
}

// Width returns the canvas width in pixels.
func (c *RasterCanvas) Width() int {
	return c.img.Bounds().Dx()
}

// Height returns the canvas height in pixels.
func (c *RasterCanvas) Height() int {
	return c.img.Bounds().Dy()
}

// Resize reallocates the canvas. Content is discarded.
func (c *RasterCanvas) Resize(width, height int) {
	c.img = image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
}

// Clear makes every pixel transparent.
func (c *RasterCanvas) Clear() {
	clear(c.img.Pix)
}

// Translate composes a translation onto the current transform.
func (c *RasterCanvas) Translate(tx, ty float64) { c.matrix.Translate(tx, ty) }

// Rotate composes a rotation onto the current transform.
func (c *RasterCanvas) Rotate(angle float64) { c.matrix.Rotate(angle) }

// Scale composes a scale onto the current transform.
func (c *RasterCanvas) Scale(sx, sy float64) { c.matrix.Scale(sx, sy) }

// IdentityMatrix resets the current transform.
func (c *RasterCanvas) IdentityMatrix() { c.matrix = Identity() }

// Matrix returns the current transform.
func (c *RasterCanvas) Matrix() Matrix { return c.matrix }

// SetSourceColor sets the stroke color. A nil color selects black.
func (c *RasterCanvas) SetSourceColor(clr color.Color) {
	if clr == nil {
		clr = color.Black
	}
	c.source = clr
}

// SetLineWidth sets the stroke width in user units.
func (c *RasterCanvas) SetLineWidth(width float64) {
	c.lineWidth = width
}

// DrawLine strokes a segment with butt caps. The stroke outline is built in
// user space and rasterized after transformation.
func (c *RasterCanvas) DrawLine(x0, y0, x1, y1 float64) {
	w, h := c.Width(), c.Height()
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if w == 0 || h == 0 || length == 0 || c.lineWidth <= 0 {
		return
	}

	half := c.lineWidth / 2
	nx, ny := -dy/length*half, dx/length*half
	corners := [4][2]float64{
		{x0 + nx, y0 + ny},
		{x1 + nx, y1 + ny},
		{x1 - nx, y1 - ny},
		{x0 - nx, y0 - ny},
	}

	c.raster.Reset(w, h)
	c.raster.DrawOp = draw.Over
	for i, p := range corners {
		px, py := c.matrix.TransformPoint(p[0], p[1])
		if i == 0 {
			c.raster.MoveTo(float32(px), float32(py))
		} else {
			c.raster.LineTo(float32(px), float32(py))
		}
	}
	c.raster.ClosePath()
	c.raster.Draw(c.img, c.img.Bounds(), image.NewUniform(c.source), image.Point{})
}

// DrawCanvas draws all of src stretched into (x, y, w, h) of user space.
// Sources other than *RasterCanvas are ignored.
func (c *RasterCanvas) DrawCanvas(src ramp.Canvas, x, y, w, h float64) {
	s, ok := src.(*RasterCanvas)
	if !ok || s.Width() == 0 || s.Height() == 0 || w == 0 || h == 0 {
		return
	}
	m := rectMatrix(c.matrix, float64(s.Width()), float64(s.Height()), x, y, w, h)
	draw.ApproxBiLinear.Transform(c.img, m.Aff3(), s.img, s.img.Bounds(), draw.Over, nil)
}

// Blit copies the srcRect region of src into dstRect in device space,
// replacing the destination pixels.
func (c *RasterCanvas) Blit(src ramp.Canvas, srcRect, dstRect ramp.Rect) {
	s, ok := src.(*RasterCanvas)
	if !ok || srcRect.IsEmpty() || dstRect.IsEmpty() {
		return
	}

	sr := srcRect.Image().Intersect(s.img.Bounds())
	dr := dstRect.Image().Intersect(c.img.Bounds())
	if sr.Empty() || dr.Empty() {
		return
	}

	kx := dstRect.Width / srcRect.Width
	ky := dstRect.Height / srcRect.Height
	m := Matrix{
		XX: kx, YY: ky,
		X0: dstRect.X - srcRect.X*kx,
		Y0: dstRect.Y - srcRect.Y*ky,
	}

	dst := c.img.SubImage(dr).(*image.RGBA)
	draw.NearestNeighbor.Transform(dst, m.Aff3(), s.img, sr, draw.Src, nil)
}

var (
	_ ramp.Canvas        = (*RasterCanvas)(nil)
	_ ramp.CanvasFactory = (*RasterCanvas)(nil)
)
