package render

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/opd-ai/go-rampfx/internal/ramp"
)

func TestEbitenCanvasZeroSize(t *testing.T) {
	c := NewEbitenCanvas(0, 0)
	if c.Image() != nil {
		t.Error("zero-sized canvas allocated an image")
	}
	// Drawing on an empty canvas is a no-op.
	c.Clear()
	c.DrawLine(0, 0, 10, 10)
	c.DrawCanvas(NewEbitenCanvas(0, 0), 0, 0, 1, 1)
	c.Blit(NewEbitenCanvas(0, 0), ramp.Rect{Width: 1, Height: 1}, ramp.Rect{Width: 1, Height: 1})
}

func TestEbitenCanvasResize(t *testing.T) {
	c := NewEbitenCanvas(4, 4)
	if c.Width() != 4 || c.Height() != 4 || c.Image() == nil {
		t.Fatalf("canvas = %dx%d image=%v", c.Width(), c.Height(), c.Image())
	}

	c.Resize(8, 2)
	if b := c.Image().Bounds(); b.Dx() != 8 || b.Dy() != 2 {
		t.Errorf("image bounds = %v, want 8x2", b)
	}

	c.Resize(0, 5)
	if c.Image() != nil || c.Width() != 0 || c.Height() != 5 {
		t.Errorf("Resize(0, 5): image=%v size=%dx%d", c.Image(), c.Width(), c.Height())
	}
}

func TestWrapEbitenImage(t *testing.T) {
	img := ebiten.NewImage(6, 3)
	c := WrapEbitenImage(img)
	if c.Image() != img || c.Width() != 6 || c.Height() != 3 {
		t.Fatalf("wrapped canvas = %dx%d", c.Width(), c.Height())
	}
	c.Resize(2, 2)
	if c.Image() == img {
		t.Error("Resize reused the caller's image")
	}
}

func TestEbitenCanvasTransform(t *testing.T) {
	c := NewEbitenCanvas(2, 2)
	c.Translate(3, 4)
	c.Scale(2, 2)
	if x, y := c.Matrix().TransformPoint(1, 1); x != 5 || y != 6 {
		t.Errorf("TransformPoint(1, 1) = (%v, %v), want (5, 6)", x, y)
	}
	c.IdentityMatrix()
	if c.Matrix() != Identity() {
		t.Errorf("Matrix() = %+v after IdentityMatrix", c.Matrix())
	}
	if _, ok := c.NewCanvas(1, 1).(*EbitenCanvas); !ok {
		t.Error("NewCanvas did not return an *EbitenCanvas")
	}
}
