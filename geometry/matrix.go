package geometry

import "math"

// Matrix is a 2D affine transform in SVG order: matrix(a b c d e f).
//
//	| A C E |
//	| B D F |
//	| 0 0 1 |
type Matrix struct {
	A, B, C, D, E, F float64
}

func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

func Translate(tx, ty float64) Matrix {
	return Matrix{A: 1, D: 1, E: tx, F: ty}
}

func Scale(sx, sy float64) Matrix {
	return Matrix{A: sx, D: sy}
}

// Rotate theo độ, chiều dương cùng chiều kim đồng hồ trong hệ trục y hướng xuống.
func Rotate(deg float64) Matrix {
	rad := deg * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	return Matrix{A: cos, B: sin, C: -sin, D: cos}
}

func RotateAround(deg float64, c Point) Matrix {
	return Translate(c.X, c.Y).Multiply(Rotate(deg)).Multiply(Translate(-c.X, -c.Y))
}

// Multiply returns m·n, so n is applied first.
func (m Matrix) Multiply(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

func (m Matrix) Apply(p Point) Point {
	return Point{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// Invert trả về false khi ma trận suy biến.
func (m Matrix) Invert() (Matrix, bool) {
	det := m.A*m.D - m.B*m.C
	if det == 0 {
		return Matrix{}, false
	}
	return Matrix{
		A: m.D / det,
		B: -m.B / det,
		C: -m.C / det,
		D: m.A / det,
		E: (m.C*m.F - m.D*m.E) / det,
		F: (m.B*m.E - m.A*m.F) / det,
	}, true
}
