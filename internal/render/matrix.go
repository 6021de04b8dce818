package render

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Matrix represents a 2D affine transformation matrix.
// The matrix is represented as:
//
//	| xx  xy |   | x |   | x0 |
//	| yx  yy | * | y | + | y0 |
//
// Translate, Scale and Rotate compose onto the right, so the most recent
// operation is applied to user-space coordinates first.
type Matrix struct {
	XX, XY float64
	YX, YY float64
	X0, Y0 float64
}

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{XX: 1, YY: 1}
}

// Translate applies a translation to the matrix.
func (m *Matrix) Translate(tx, ty float64) {
	m.X0 += m.XX*tx + m.XY*ty
	m.Y0 += m.YX*tx + m.YY*ty
}

// Scale applies a scale to the matrix.
func (m *Matrix) Scale(sx, sy float64) {
	m.XX *= sx
	m.XY *= sy
	m.YX *= sx
	m.YY *= sy
}

// Rotate applies a rotation by angle radians to the matrix.
func (m *Matrix) Rotate(angle float64) {
	c := math.Cos(angle)
	s := math.Sin(angle)
	xx := m.XX*c + m.XY*s
	xy := m.XY*c - m.XX*s
	yx := m.YX*c + m.YY*s
	yy := m.YY*c - m.YX*s
	m.XX, m.XY, m.YX, m.YY = xx, xy, yx, yy
}

// TransformPoint maps a user-space point to device space.
func (m Matrix) TransformPoint(x, y float64) (float64, float64) {
	return m.XX*x + m.XY*y + m.X0, m.YX*x + m.YY*y + m.Y0
}

// Invert returns the inverse matrix and false if m is singular.
func (m Matrix) Invert() (Matrix, bool) {
	det := m.XX*m.YY - m.XY*m.YX
	if det == 0 || math.IsInf(det, 0) || math.IsNaN(det) {
		return Matrix{}, false
	}
	inv := 1 / det
	return Matrix{
		XX: m.YY * inv,
		XY: -m.XY * inv,
		YX: -m.YX * inv,
		YY: m.XX * inv,
		X0: (m.XY*m.Y0 - m.YY*m.X0) * inv,
		Y0: (m.YX*m.X0 - m.XX*m.Y0) * inv,
	}, true
}

// Aff3 converts the matrix to the row-major form used by x/image/draw.
func (m Matrix) Aff3() f64.Aff3 {
	return f64.Aff3{m.XX, m.XY, m.X0, m.YX, m.YY, m.Y0}
}

// lineScale is the geometric mean of the matrix's axis scale factors.
func (m Matrix) lineScale() float64 {
	return math.Sqrt(math.Abs(m.XX*m.YY - m.XY*m.YX))
}

// rectMatrix maps the w x h rectangle at the origin onto (x, y, dw, dh)
// and then through m.
func rectMatrix(m Matrix, w, h, x, y, dw, dh float64) Matrix {
	m.Translate(x, y)
	m.Scale(dw/w, dh/h)
	return m
}
