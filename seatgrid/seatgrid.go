// Package seatgrid sinh lưới ghế rows×cols và mã ghế theo quy ước {Hàng}{Cột}.
// Dùng chung cho trình soạn sơ đồ và API tạo ghế hàng loạt để hai phía luôn ra cùng mã.
package seatgrid

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	MaxRows = 100
	MaxCols = 100
)

var ErrInvalidGrid = errors.New("invalid seat grid")

type Spec struct {
	Rows       int    `json:"rows" yaml:"rows"`
	Cols       int    `json:"cols" yaml:"cols"`
	StartRow   int    `json:"startRow" yaml:"startRow"`
	StartCol   int    `json:"startCol" yaml:"startCol"`
	CodePrefix string `json:"codePrefix" yaml:"codePrefix"`
}

type Cell struct {
	Code     string
	RowIndex int
	ColIndex int
}

// Normalize gán StartRow/StartCol = 1 khi chưa đặt.
func (s Spec) Normalize() Spec {
	if s.StartRow < 1 {
		s.StartRow = 1
	}
	if s.StartCol < 1 {
		s.StartCol = 1
	}
	return s
}

func (s Spec) Validate() error {
	if s.Rows < 1 || s.Cols < 1 {
		return fmt.Errorf("%w: rows and cols must be at least 1", ErrInvalidGrid)
	}
	if s.Rows > MaxRows || s.Cols > MaxCols {
		return fmt.Errorf("%w: at most %dx%d seats", ErrInvalidGrid, MaxRows, MaxCols)
	}
	return nil
}

func (s Spec) Size() int {
	return s.Rows * s.Cols
}

// Generate trả về toàn bộ lưới theo thứ tự hàng rồi cột.
func Generate(s Spec) []Cell {
	s = s.Normalize()
	if s.Validate() != nil {
		return nil
	}
	cells := make([]Cell, 0, s.Size())
	for r := 0; r < s.Rows; r++ {
		rowIndex := s.StartRow + r
		for c := 0; c < s.Cols; c++ {
			colIndex := s.StartCol + c
			cells = append(cells, Cell{
				Code:     Code(s.CodePrefix, s.StartRow, rowIndex, colIndex),
				RowIndex: rowIndex,
				ColIndex: colIndex,
			})
		}
	}
	return cells
}

// RowLabel: 1 -> "A", 2 -> "B", ... 26 -> "Z"; từ hàng 27 trở đi dùng số thứ tự.
func RowLabel(row int) string {
	if row >= 1 && row <= 26 {
		return string(rune('A' + row - 1))
	}
	return strconv.Itoa(row)
}

// Code builds a seat code. A single-letter prefix names the letter of startRow and
// following rows advance from it; an empty prefix labels rows by their index; any
// other prefix is prepended to the index label.
func Code(prefix string, startRow, rowIndex, colIndex int) string {
	col := strconv.Itoa(colIndex)
	switch {
	case prefix == "":
		return RowLabel(rowIndex) + col
	case len(prefix) == 1 && prefix[0] >= 'A' && prefix[0] <= 'Z':
		letter := int(prefix[0]-'A') + 1 + (rowIndex - startRow)
		if letter > 26 {
			return strconv.Itoa(rowIndex) + col
		}
		return RowLabel(letter) + col
	default:
		return prefix + RowLabel(rowIndex) + col
	}
}

// Bounds là số hàng/cột lớn nhất đang có trong danh sách toạ độ (1-based).
func Bounds(rows, cols []int) (maxRow, maxCol int) {
	for _, r := range rows {
		maxRow = max(maxRow, r)
	}
	for _, c := range cols {
		maxCol = max(maxCol, c)
	}
	return maxRow, maxCol
}
