// Package transform rectifies a perspective-skewed bit matrix back into an
// axis-aligned N x N grid, implementing the closed-form unit-square-to-
// quadrilateral homography from *Digital Image Warping* §3.4.2 that
// spec.md §4.9 names directly. There is no homography code in the teacher
// repo (QR codes are decoded from an already-aligned raster), so this
// package is grounded on the spec's cited reference rather than any
// example file; the nearest-neighbour sampling loop follows the teacher's
// row-major pixel-walk style used throughout its own decoder.
package transform

import (
	"math"

	"github.com/ashokshau/iching/internal/matrix"
)

// Matrix is a 3x3 homogeneous transform, row-major.
type Matrix [9]float64

// squareToQuad computes the projective map taking the unit square
// (0,0),(1,0),(1,1),(0,1) onto the quadrilateral x0..x3,y0..y3, using the
// Digital Image Warping §3.4.2 closed form.
func squareToQuad(x0, y0, x1, y1, x2, y2, x3, y3 float64) Matrix {
	dx1 := x1 - x2
	dx2 := x3 - x2
	dx3 := x0 - x1 + x2 - x3
	dy1 := y1 - y2
	dy2 := y3 - y2
	dy3 := y0 - y1 + y2 - y3

	if dx3 == 0 && dy3 == 0 {
		return Matrix{
			x1 - x0, x2 - x1, x0,
			y1 - y0, y2 - y1, y0,
			0, 0, 1,
		}
	}

	denom := dx1*dy2 - dx2*dy1
	a02 := (dx3*dy2 - dx2*dy3) / denom
	a12 := (dx1*dy3 - dx3*dy1) / denom

	return Matrix{
		x1 - x0 + a02*x1, x3 - x0 + a12*x3, x0,
		y1 - y0 + a02*y1, y3 - y0 + a12*y3, y0,
		a02, a12, 1,
	}
}

// multiply computes the matrix product a * b; Build uses it to form
// spec.md's M = Qs . adj(Qd).
func multiply(a, b Matrix) Matrix {
	var out Matrix
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += a[r*3+k] * b[k*3+c]
			}
			out[r*3+c] = sum
		}
	}
	return out
}

// adjugate returns the classical adjugate of a 3x3 matrix.
func adjugate(m Matrix) Matrix {
	a, b, c := m[0], m[1], m[2]
	d, e, f := m[3], m[4], m[5]
	g, h, i := m[6], m[7], m[8]
	return Matrix{
		e*i - f*h, c*h - b*i, b*f - c*e,
		f*g - d*i, a*i - c*g, c*d - a*f,
		d*h - e*g, b*g - a*h, a*e - b*d,
	}
}

// Apply maps a homogeneous point (x,y,1) through m, returning the
// dehomogenized (x,y).
func (m Matrix) Apply(x, y float64) (float64, float64) {
	w := m[6]*x + m[7]*y + m[8]
	px := (m[0]*x + m[1]*y + m[2]) / w
	py := (m[3]*x + m[4]*y + m[5]) / w
	return px, py
}

// Build computes the homography that maps destination-quad points onto
// the source quad, per spec.md §4.9: M = Qs . adj(Qd), where Qs maps the
// unit square to the source quad and Qd maps the unit square to the
// destination quad.
func Build(src, dst [4]matrix.Point) Matrix {
	qs := squareToQuad(src[0].X, src[0].Y, src[1].X, src[1].Y, src[2].X, src[2].Y, src[3].X, src[3].Y)
	qd := squareToQuad(dst[0].X, dst[0].Y, dst[1].X, dst[1].Y, dst[2].X, dst[2].Y, dst[3].X, dst[3].Y)
	return multiply(qs, adjugate(qd))
}

// Rectify builds the homography from the four located corners to an N x N
// destination square (order TR, TL, BL, BR matching spec.md §4.9) and
// samples the source bit matrix with nearest-neighbour lookup to produce
// the rectified N x N bit matrix, per the "code transform" step.
func Rectify(src *matrix.Bit, topLeft, topRight, bottomLeft, bottomRight matrix.Point) *matrix.Bit {
	n := int(math.Round((dist(topLeft, topRight) + dist(topLeft, bottomLeft)) / 2))
	if n < 1 {
		n = 1
	}

	srcQuad := [4]matrix.Point{topRight, topLeft, bottomLeft, bottomRight}
	dstQuad := [4]matrix.Point{
		{X: float64(n), Y: 0},
		{X: 0, Y: 0},
		{X: 0, Y: float64(n)},
		{X: float64(n), Y: float64(n)},
	}
	m := Build(srcQuad, dstQuad)

	out := matrix.NewBit(n, n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			sx, sy := m.Apply(float64(x)+0.5, float64(y)+0.5)
			out.Set(x, y, src.Get(int(math.Round(sx)), int(math.Round(sy))))
		}
	}
	return out
}

func dist(a, b matrix.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
