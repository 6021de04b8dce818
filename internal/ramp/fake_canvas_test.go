package ramp

import "image/color"

// fakeCall records one drawing operation on a fakeCanvas.
type fakeCall struct {
	op     string
	args   []float64
	color  color.Color
	src    *fakeCanvas
	srcR   Rect
	dstR   Rect
	matrix [6]float64
}

// fakeCanvas is a recording Canvas and CanvasFactory for tests.
type fakeCanvas struct {
	w, h    int
	calls   []fakeCall
	color   color.Color
	width   float64
	matrix  [6]float64 // xx, yx, xy, yy, x0, y0
	resizes int
	created []*fakeCanvas
}

func newFakeCanvas(w, h int) *fakeCanvas {
	return &fakeCanvas{w: w, h: h, matrix: [6]float64{1, 0, 0, 1, 0, 0}}
}

func (f *fakeCanvas) NewCanvas(w, h int) Canvas {
	c := newFakeCanvas(w, h)
	f.created = append(f.created, c)
	return c
}

func (f *fakeCanvas) Width() int  { return f.w }
func (f *fakeCanvas) Height() int { return f.h }

func (f *fakeCanvas) Resize(w, h int) {
	f.w, f.h = w, h
	f.resizes++
	f.record(fakeCall{op: "resize", args: []float64{float64(w), float64(h)}})
}

func (f *fakeCanvas) Clear() { f.record(fakeCall{op: "clear"}) }

func (f *fakeCanvas) Translate(tx, ty float64) {
	m := &f.matrix
	m[4] += m[0]*tx + m[2]*ty
	m[5] += m[1]*tx + m[3]*ty
	f.record(fakeCall{op: "translate", args: []float64{tx, ty}})
}

func (f *fakeCanvas) Rotate(angle float64) {
	f.record(fakeCall{op: "rotate", args: []float64{angle}})
}

func (f *fakeCanvas) Scale(sx, sy float64) {
	m := &f.matrix
	m[0] *= sx
	m[1] *= sx
	m[2] *= sy
	m[3] *= sy
	f.record(fakeCall{op: "scale", args: []float64{sx, sy}})
}

func (f *fakeCanvas) IdentityMatrix() {
	f.matrix = [6]float64{1, 0, 0, 1, 0, 0}
	f.record(fakeCall{op: "identity"})
}

func (f *fakeCanvas) SetSourceColor(c color.Color) { f.color = c }
func (f *fakeCanvas) SetLineWidth(w float64)       { f.width = w }

func (f *fakeCanvas) DrawLine(x0, y0, x1, y1 float64) {
	f.record(fakeCall{op: "line", args: []float64{x0, y0, x1, y1, f.width}, color: f.color})
}

func (f *fakeCanvas) DrawCanvas(src Canvas, x, y, w, h float64) {
	f.record(fakeCall{op: "drawCanvas", args: []float64{x, y, w, h}, src: src.(*fakeCanvas)})
}

func (f *fakeCanvas) Blit(src Canvas, srcRect, dstRect Rect) {
	f.record(fakeCall{op: "blit", src: src.(*fakeCanvas), srcR: srcRect, dstR: dstRect})
}

func (f *fakeCanvas) record(c fakeCall) {
	c.matrix = f.matrix
	f.calls = append(f.calls, c)
}

// ops returns the recorded operation names.
func (f *fakeCanvas) ops() []string {
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.op
	}
	return out
}

// callsOf returns the recorded calls with the given name.
func (f *fakeCanvas) callsOf(op string) []fakeCall {
	var out []fakeCall
	for _, c := range f.calls {
		if c.op == op {
			out = append(out, c)
		}
	}
	return out
}
