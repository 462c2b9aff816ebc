package geometry

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestParseViewBox(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ViewBox
		wantErr bool
	}{
		{name: "spaces", input: "0 0 1200 800", want: ViewBox{Width: 1200, Height: 800}},
		{name: "commas", input: "-10,5,300,200", want: ViewBox{MinX: -10, MinY: 5, Width: 300, Height: 200}},
		{name: "too few", input: "0 0 1200", wantErr: true},
		{name: "not a number", input: "0 0 abc 800", wantErr: true},
		{name: "zero width", input: "0 0 0 800", wantErr: true},
		{name: "negative height", input: "0 0 100 -1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseViewBox(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidViewBox) {
					t.Fatalf("expected ErrInvalidViewBox, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestViewBoxString(t *testing.T) {
	vb := ViewBox{MinX: 0, MinY: -5, Width: 1200.5, Height: 800}
	if got := vb.String(); got != "0 -5 1200.5 800" {
		t.Fatalf("unexpected string %q", got)
	}
	back, err := ParseViewBox(vb.String())
	if err != nil || back != vb {
		t.Fatalf("round trip failed: %+v %v", back, err)
	}
}

func TestProjectionScaleLetterbox(t *testing.T) {
	p := NewProjection(ViewBox{Width: 1200, Height: 800}, Size{Width: 800, Height: 600})
	if !near(p.Scale, 800.0/1200.0) {
		t.Fatalf("scale = %v", p.Scale)
	}
	lb := p.Letterbox()
	if !near(lb.Width, 0) || !near(lb.Height, 600-800*p.Scale) {
		t.Fatalf("letterbox = %+v", lb)
	}
}

func TestProjectionRoundTrip(t *testing.T) {
	vb, err := ParseViewBox("0 0 1200 800")
	if err != nil {
		t.Fatal(err)
	}
	p := NewProjection(vb, Size{Width: 800, Height: 600})
	points := []Point{{0, 0}, {600, 400}, {1200, 800}, {123.45, 678.9}}
	for _, pt := range points {
		px := p.Forward(pt)
		back := p.Inverse(px)
		if !near(back.X, pt.X) || !near(back.Y, pt.Y) {
			t.Fatalf("round trip %+v -> %+v -> %+v", pt, px, back)
		}
	}
}

func TestProjectionMatrixAgreesWithScale(t *testing.T) {
	p := NewProjection(ViewBox{MinX: -100, MinY: 50, Width: 1000, Height: 500}, Size{Width: 640, Height: 480})
	for _, pt := range []Point{{-100, 50}, {0, 0}, {400, 300}, {900, 550}} {
		a := p.Forward(pt)
		b := p.Matrix().Apply(pt)
		if !near(a.X, b.X) || !near(a.Y, b.Y) {
			t.Fatalf("forward mismatch for %+v: %+v vs %+v", pt, a, b)
		}
		local, ok := p.ScreenToLocal(a)
		if !ok {
			t.Fatal("matrix should be invertible")
		}
		inv := p.Inverse(a)
		if !near(local.X, inv.X) || !near(local.Y, inv.Y) {
			t.Fatalf("inverse mismatch for %+v: %+v vs %+v", pt, local, inv)
		}
	}
}

func TestMatrixInvertSingular(t *testing.T) {
	if _, ok := Scale(0, 1).Invert(); ok {
		t.Fatal("expected singular matrix")
	}
}

func TestRectContainsRotated(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 100, Height: 20}
	if !r.ContainsRotated(Point{X: 90, Y: 10}, 0) {
		t.Fatal("point inside unrotated rect")
	}
	// xoay 90 độ: hình thành dải dọc quanh tâm (50,10)
	if r.ContainsRotated(Point{X: 90, Y: 10}, 90) {
		t.Fatal("point should fall outside after rotation")
	}
	if !r.ContainsRotated(Point{X: 50, Y: 50}, 90) {
		t.Fatal("point should fall inside after rotation")
	}
}

func TestRectCornersAndUnion(t *testing.T) {
	r := RectAround(Point{X: 10, Y: 10}, 4, 2)
	c := r.Corners(0)
	if c[0] != (Point{X: 8, Y: 9}) || c[2] != (Point{X: 12, Y: 11}) {
		t.Fatalf("corners = %+v", c)
	}
	u := r.Union(Rect{X: 20, Y: 0, Width: 1, Height: 1})
	if u != (Rect{X: 8, Y: 0, Width: 13, Height: 11}) {
		t.Fatalf("union = %+v", u)
	}
	if got := (Rect{}).Union(r); got != r {
		t.Fatalf("empty union = %+v", got)
	}
}
