package seatgrid

import (
	"errors"
	"testing"
)

func TestGenerateCodes(t *testing.T) {
	cells := Generate(Spec{Rows: 2, Cols: 3, StartRow: 1, StartCol: 1, CodePrefix: "A"})
	want := []string{"A1", "A2", "A3", "B1", "B2", "B3"}
	if len(cells) != len(want) {
		t.Fatalf("got %d cells, want %d", len(cells), len(want))
	}
	for i, c := range cells {
		if c.Code != want[i] {
			t.Fatalf("cell %d code = %q, want %q", i, c.Code, want[i])
		}
	}
	if cells[4].RowIndex != 2 || cells[4].ColIndex != 2 {
		t.Fatalf("unexpected position %+v", cells[4])
	}
}

func TestGenerateUniquePositions(t *testing.T) {
	cells := Generate(Spec{Rows: 5, Cols: 8})
	if len(cells) != 40 {
		t.Fatalf("got %d cells", len(cells))
	}
	seen := make(map[[2]int]bool)
	for _, c := range cells {
		key := [2]int{c.RowIndex, c.ColIndex}
		if seen[key] {
			t.Fatalf("duplicate position %v", key)
		}
		seen[key] = true
	}
}

func TestCode(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		startRow int
		row, col int
		want     string
	}{
		{"index label", "", 1, 3, 4, "C4"},
		{"row 26", "", 1, 26, 1, "Z1"},
		{"numeric fallback", "", 1, 27, 2, "272"},
		{"letter prefix shifts", "D", 1, 2, 5, "E5"},
		{"letter prefix with start row", "A", 3, 4, 1, "B1"},
		{"letter prefix past Z", "Y", 1, 3, 1, "31"},
		{"word prefix", "VIP-", 1, 1, 9, "VIP-A9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Code(tt.prefix, tt.startRow, tt.row, tt.col); got != tt.want {
				t.Fatalf("Code() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	if err := (Spec{Rows: 0, Cols: 3}).Validate(); !errors.Is(err, ErrInvalidGrid) {
		t.Fatalf("expected ErrInvalidGrid, got %v", err)
	}
	if err := (Spec{Rows: MaxRows + 1, Cols: 1}).Validate(); !errors.Is(err, ErrInvalidGrid) {
		t.Fatalf("expected ErrInvalidGrid, got %v", err)
	}
	if Generate(Spec{Rows: -1, Cols: 2}) != nil {
		t.Fatal("invalid spec should generate nothing")
	}
}
