package geometry

import "math"

// Rect is an axis-aligned rectangle.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RectAround trả về hình chữ nhật có tâm tại c.
func RectAround(c Point, width, height float64) Rect {
	return Rect{X: c.X - width/2, Y: c.Y - height/2, Width: width, Height: height}
}

func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// ContainsRotated checks p against the rect rotated by deg degrees around its center.
func (r Rect) ContainsRotated(p Point, deg float64) bool {
	if math.Mod(deg, 360) == 0 {
		return r.Contains(p)
	}
	return r.Contains(RotateAround(-deg, r.Center()).Apply(p))
}

func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Union returns the smallest rect containing both rects.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	minX := min(r.X, other.X)
	minY := min(r.Y, other.Y)
	maxX := max(r.X+r.Width, other.X+other.Width)
	maxY := max(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Corners theo thứ tự NW, NE, SE, SW sau khi xoay quanh tâm.
func (r Rect) Corners(deg float64) [4]Point {
	m := RotateAround(deg, r.Center())
	return [4]Point{
		m.Apply(Point{X: r.X, Y: r.Y}),
		m.Apply(Point{X: r.X + r.Width, Y: r.Y}),
		m.Apply(Point{X: r.X + r.Width, Y: r.Y + r.Height}),
		m.Apply(Point{X: r.X, Y: r.Y + r.Height}),
	}
}
