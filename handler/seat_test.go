package handler

import (
	"slices"
	"testing"

	"seatmap_manager/model"
)

func TestBuildSeats(t *testing.T) {
	price := 120000.0
	seats := buildSeats(model.CreateSeatsBatchInput{
		SectionId: 502, Rows: 2, Cols: 3, Price: &price, IsSalable: true,
	})
	if len(seats) != 6 {
		t.Fatalf("len = %d, want 6", len(seats))
	}
	var codes []string
	for _, s := range seats {
		codes = append(codes, s.Code)
		if s.SectionId != 502 || s.Status != model.SeatAvailable || !s.IsSalable || *s.Price != price {
			t.Errorf("seat %s = %+v", s.Code, s)
		}
	}
	if want := []string{"A1", "A2", "A3", "B1", "B2", "B3"}; !slices.Equal(codes, want) {
		t.Errorf("codes = %v, want %v", codes, want)
	}
}

func TestBuildSeatsOffsetAndPrefix(t *testing.T) {
	seats := buildSeats(model.CreateSeatsBatchInput{
		SectionId: 1, Rows: 2, Cols: 2, StartRow: 3, StartCol: 5, CodePrefix: "VIP-", Status: model.SeatUnavailable,
	})
	first, last := seats[0], seats[len(seats)-1]
	if first.RowIndex != 3 || first.ColIndex != 5 || last.RowIndex != 4 || last.ColIndex != 6 {
		t.Errorf("positions = (%d,%d)..(%d,%d)", first.RowIndex, first.ColIndex, last.RowIndex, last.ColIndex)
	}
	if first.Code != "VIP-C5" || last.Code != "VIP-D6" {
		t.Errorf("codes = %s..%s", first.Code, last.Code)
	}
	if first.Status != model.SeatUnavailable {
		t.Errorf("status = %s", first.Status)
	}
}

func TestOverlapping(t *testing.T) {
	existing := buildSeats(model.CreateSeatsBatchInput{Rows: 2, Cols: 2})
	next := buildSeats(model.CreateSeatsBatchInput{Rows: 1, Cols: 3, StartRow: 2})
	if got := overlapping(existing, next); !slices.Equal(got, []string{"B1", "B2"}) {
		t.Errorf("overlapping = %v", got)
	}
	if got := overlapping(existing, buildSeats(model.CreateSeatsBatchInput{Rows: 1, Cols: 1, StartRow: 3})); len(got) != 0 {
		t.Errorf("overlapping = %v, want none", got)
	}
}

func TestSectionUpdates(t *testing.T) {
	name := "Khu vực A"
	off := 0
	tt := uint(4)
	yes := true

	got := sectionUpdates(model.UpdateSectionInput{Name: &name, Status: &off}, false)
	if len(got) != 2 || got["name"] != name || got["status"] != 0 {
		t.Errorf("rename+delete = %v", got)
	}

	got = sectionUpdates(model.UpdateSectionInput{TicketTypeId: &tt}, false)
	if got["ticket_type_id"] != uint(4) {
		t.Errorf("ticket = %v", got)
	}

	got = sectionUpdates(model.UpdateSectionInput{ClearTicketType: true}, false)
	if v, ok := got["ticket_type_id"]; !ok || v != nil {
		t.Errorf("clear ticket = %v", got)
	}

	// chuyển thành sân khấu thì không bán vé, không loại vé
	got = sectionUpdates(model.UpdateSectionInput{IsStage: &yes, IsSalable: &yes}, true)
	if got["is_salable"] != false || got["is_stage"] != true {
		t.Errorf("to stage = %v", got)
	}
	if v, ok := got["ticket_type_id"]; !ok || v != nil {
		t.Errorf("to stage should clear ticket type: %v", got)
	}
}
