package geometry

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidViewBox = errors.New("invalid viewBox")

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ViewBox là hệ toạ độ logic "minX minY width height" mà mọi thuộc tính khu vực dùng.
type ViewBox struct {
	MinX   float64
	MinY   float64
	Width  float64
	Height float64
}

// ParseViewBox đọc chuỗi kiểu "0 0 1200 800" (chấp nhận cả dấu phẩy).
// Width/Height <= 0 bị từ chối vì phép chiếu không xác định.
func ParseViewBox(s string) (ViewBox, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n'
	})
	if len(fields) != 4 {
		return ViewBox{}, fmt.Errorf("%w: %q", ErrInvalidViewBox, s)
	}
	var nums [4]float64
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return ViewBox{}, fmt.Errorf("%w: %q", ErrInvalidViewBox, s)
		}
		nums[i] = n
	}
	vb := ViewBox{MinX: nums[0], MinY: nums[1], Width: nums[2], Height: nums[3]}
	if !vb.Valid() {
		return ViewBox{}, fmt.Errorf("%w: width and height must be positive", ErrInvalidViewBox)
	}
	return vb, nil
}

func (v ViewBox) Valid() bool {
	return v.Width > 0 && v.Height > 0
}

func (v ViewBox) Rect() Rect {
	return Rect{X: v.MinX, Y: v.MinY, Width: v.Width, Height: v.Height}
}

func (v ViewBox) Center() Point {
	return v.Rect().Center()
}

func (v ViewBox) String() string {
	parts := []string{
		strconv.FormatFloat(v.MinX, 'f', -1, 64),
		strconv.FormatFloat(v.MinY, 'f', -1, 64),
		strconv.FormatFloat(v.Width, 'f', -1, 64),
		strconv.FormatFloat(v.Height, 'f', -1, 64),
	}
	return strings.Join(parts, " ")
}
