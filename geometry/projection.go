package geometry

// Projection maps view-box space onto a fixed-size canvas with a uniform scale.
// The axis that fits first decides the scale; the other axis is letterboxed.
type Projection struct {
	ViewBox ViewBox
	Canvas  Size
	Scale   float64
}

// NewProjection không kiểm tra viewBox; caller phải đảm bảo vb.Valid().
func NewProjection(vb ViewBox, canvas Size) Projection {
	return Projection{
		ViewBox: vb,
		Canvas:  canvas,
		Scale:   min(canvas.Width/vb.Width, canvas.Height/vb.Height),
	}
}

func (p Projection) Forward(pt Point) Point {
	return Point{
		X: (pt.X - p.ViewBox.MinX) * p.Scale,
		Y: (pt.Y - p.ViewBox.MinY) * p.Scale,
	}
}

func (p Projection) Inverse(pt Point) Point {
	return Point{
		X: pt.X/p.Scale + p.ViewBox.MinX,
		Y: pt.Y/p.Scale + p.ViewBox.MinY,
	}
}

func (p Projection) ForwardRect(r Rect) Rect {
	origin := p.Forward(Point{X: r.X, Y: r.Y})
	return Rect{X: origin.X, Y: origin.Y, Width: r.Width * p.Scale, Height: r.Height * p.Scale}
}

func (p Projection) InverseRect(r Rect) Rect {
	origin := p.Inverse(Point{X: r.X, Y: r.Y})
	return Rect{X: origin.X, Y: origin.Y, Width: r.Width / p.Scale, Height: r.Height / p.Scale}
}

// Matrix là ma trận tương đương Forward, dùng cho bề mặt render có phép biến đổi riêng
// (điểm màn hình -> điểm SVG bằng cách nghịch đảo ma trận này).
func (p Projection) Matrix() Matrix {
	return Scale(p.Scale, p.Scale).Multiply(Translate(-p.ViewBox.MinX, -p.ViewBox.MinY))
}

// ScreenToLocal inverts the surface matrix, the path used by renderers that
// carry their own transform instead of the scale above.
func (p Projection) ScreenToLocal(pt Point) (Point, bool) {
	inv, ok := p.Matrix().Invert()
	if !ok {
		return Point{}, false
	}
	return inv.Apply(pt), true
}

// Letterbox là phần canvas không dùng tới trên mỗi trục.
func (p Projection) Letterbox() Size {
	return Size{
		Width:  p.Canvas.Width - p.ViewBox.Width*p.Scale,
		Height: p.Canvas.Height - p.ViewBox.Height*p.Scale,
	}
}
