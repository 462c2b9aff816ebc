package main

import (
	"errors"
	"strings"
	"testing"

	"seatmap_manager/geometry"
	"seatmap_manager/model"
	"seatmap_manager/scene"
	"seatmap_manager/seatgrid"
)

const sampleLayout = `
name: Suất 19h
showingId: 12
viewBox: "0 0 1000 800"
sections:
  - name: Sân khấu
    stage: true
    x: 350
    y: 40
    width: 300
    height: 80
  - name: Khu A
    x: 100
    y: 300
    width: 240
    height: 180
    fill: "#0EA5E9"
    ticketTypeId: 3
    seats: {rows: 2, cols: 3}
    price: 90000
`

func mustLayout(t *testing.T, src string) *Layout {
	t.Helper()
	l, err := ParseLayout(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}
	return l
}

func TestParseLayout(t *testing.T) {
	l := mustLayout(t, sampleLayout)
	if l.ShowingId != 12 || len(l.Sections) != 2 {
		t.Fatalf("layout = %+v", l)
	}
	a := l.Sections[1]
	if a.Seats == nil || a.Seats.Rows != 2 || a.Seats.Cols != 3 || *a.TicketTypeId != 3 || *a.Price != 90000 {
		t.Errorf("section = %+v", a)
	}
}

func TestParseLayoutErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"bad viewBox", "name: x\nviewBox: \"0 0 0 10\"\n", "layout"},
		{"unknown field", "name: x\nviewBox: \"0 0 10 10\"\ncolour: red\n", "colour"},
		{"missing name", "viewBox: \"0 0 10 10\"\nsections:\n  - x: 1\n", "no name"},
		{"duplicate", "viewBox: \"0 0 10 10\"\nsections:\n  - name: A\n  - name: \" A \"\n", "duplicate"},
		{"stage seats", "viewBox: \"0 0 10 10\"\nsections:\n  - name: S\n    stage: true\n    seats: {rows: 1, cols: 1}\n", "stage"},
		{"empty grid", "viewBox: \"0 0 10 10\"\nsections:\n  - name: A\n    seats: {rows: 0, cols: 3}\n", "rows"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLayout(strings.NewReader(tt.src))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestParseCanvas(t *testing.T) {
	got, err := ParseCanvas("1200x800")
	if err != nil || got != (geometry.Size{Width: 1200, Height: 800}) {
		t.Errorf("ParseCanvas = %v, %v", got, err)
	}
	for _, bad := range []string{"", "1200", "0x800", "ax b"} {
		if _, err := ParseCanvas(bad); err == nil {
			t.Errorf("ParseCanvas(%q) should fail", bad)
		}
	}
}

func newSession(t *testing.T) *scene.Session {
	t.Helper()
	doc, err := scene.New("", 12, geometry.ViewBox{Width: 1000, Height: 800})
	if err != nil {
		t.Fatal(err)
	}
	return scene.NewSession(doc, scene.DefaultOptions())
}

func TestApplyNewDocument(t *testing.T) {
	s := newSession(t)
	if err := mustLayout(t, sampleLayout).Apply(s, nil); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	doc := s.Document()
	if doc.Name != "Suất 19h" || doc.Len() != 2 {
		t.Fatalf("doc = %s with %d sections", doc.Name, doc.Len())
	}
	g := doc.Groups()
	if len(g.Stages) != 1 || len(g.Salable) != 1 {
		t.Fatalf("groups = %d stages, %d salable", len(g.Stages), len(g.Salable))
	}
	a := g.Salable[0]
	if a.Name != "Khu A" || a.Attribute.X != 100 || a.Attribute.Y != 300 || a.Attribute.Width != 240 || a.Attribute.Fill != "#0EA5E9" {
		t.Errorf("section = %+v", a.Attribute)
	}
	if a.TicketTypeId == nil || *a.TicketTypeId != 3 {
		t.Errorf("ticket type = %v", a.TicketTypeId)
	}
	if len(a.Seats) != 6 || a.Seats[0].Code != "A1" || !a.SeatsRegenerated() {
		t.Errorf("seats = %d, regenerated = %v", len(a.Seats), a.SeatsRegenerated())
	}
	if g.Stages[0].Name != "Sân khấu" || !a.Ref.IsDraft() {
		t.Errorf("stage = %s, ref = %s", g.Stages[0].Name, a.Ref)
	}
	if s.Active() != nil || s.Tool() != scene.ToolSelect {
		t.Error("session should end with no selection in select mode")
	}
}

func TestApplyCanvasCoordinates(t *testing.T) {
	s := newSession(t)
	// canvas 500x400 là một nửa viewBox 1000x800
	proj := s.Document().Projection(geometry.Size{Width: 500, Height: 400})
	l := mustLayout(t, "viewBox: \"0 0 1000 800\"\nsections:\n  - name: A\n    x: 50\n    y: 100\n    width: 100\n    height: 60\n")
	if err := l.Apply(s, &proj); err != nil {
		t.Fatal(err)
	}
	got := s.Document().Sections()[0].Attribute.Rect()
	if got != (geometry.Rect{X: 100, Y: 200, Width: 200, Height: 120}) {
		t.Errorf("rect = %+v", got)
	}
}

func persisted() model.SeatMap {
	price := 90000.0
	var seats []model.Seat
	for _, c := range seatgrid.Generate(seatgrid.Spec{Rows: 2, Cols: 3}) {
		seats = append(seats, model.Seat{
			DTO: model.DTO{ID: uint(100 + len(seats))}, SectionId: 7,
			Code: c.Code, RowIndex: c.RowIndex, ColIndex: c.ColIndex,
			Status: model.SeatAvailable, IsSalable: true, Price: &price,
		})
	}
	tt := uint(3)
	return model.SeatMap{
		DTO: model.DTO{ID: 1}, Name: "Suất 19h", Status: model.SeatMapActive, ViewBox: "0 0 1000 800", ShowingId: 12,
		Sections: []model.Section{
			{
				DTO: model.DTO{ID: 7}, SeatMapId: 1, Name: "Khu A", IsSalable: true, Status: model.SectionActive,
				Attribute: &model.SectionAttribute{SectionId: 7, X: 100, Y: 300, Width: 240, Height: 180, ScaleX: 1, ScaleY: 1, Fill: "#0EA5E9"},
				Seats:     seats,
			},
			{
				DTO: model.DTO{ID: 8}, SeatMapId: 1, Name: "Khu cũ", IsSalable: true, TicketTypeId: &tt, Status: model.SectionActive,
				Attribute: &model.SectionAttribute{SectionId: 8, X: 500, Y: 300, Width: 200, Height: 150},
			},
		},
	}
}

func TestApplyExistingKeepsSeats(t *testing.T) {
	tests := []struct {
		name      string
		prune     bool
		wantLen   int
		wantError bool
	}{
		// "Khu cũ" giữ loại vé 3 nên Khu A không gắn lại được khi không dọn
		{"keep old section", false, 3, true},
		{"prune old section", true, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := scene.FromModel(persisted())
			if err != nil {
				t.Fatal(err)
			}
			s := scene.NewSession(doc, scene.DefaultOptions())
			l := mustLayout(t, sampleLayout)
			l.Prune = tt.prune

			err = l.Apply(s, nil)
			if tt.wantError {
				var dup *scene.DuplicateTicketTypeBindingError
				if !errors.As(err, &dup) || dup.HolderName != "Khu cũ" {
					t.Fatalf("err = %v, want duplicate ticket type held by Khu cũ", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if doc.Len() != tt.wantLen {
				t.Fatalf("sections = %d, want %d", doc.Len(), tt.wantLen)
			}
			a, ok := doc.SectionByID(7)
			if !ok {
				t.Fatal("Khu A should stay persisted")
			}
			if a.SeatsRegenerated() || a.Seats[0].ID != 100 {
				t.Errorf("unchanged grid was regenerated: %+v", a.Seats[0])
			}
			if _, ok := doc.SectionByID(8); ok {
				t.Error("Khu cũ should be pruned")
			}
		})
	}
}

func TestNeedsSeats(t *testing.T) {
	price := 90000.0
	other := 50000.0
	spec := seatgrid.Spec{Rows: 2, Cols: 3}.Normalize()
	doc, _ := scene.FromModel(persisted())
	a, _ := doc.SectionByID(7)

	if needsSeats(a, spec, &price) {
		t.Error("same grid and price should not regenerate")
	}
	if !needsSeats(a, spec, &other) {
		t.Error("price change should regenerate")
	}
	if !needsSeats(a, seatgrid.Spec{Rows: 3, Cols: 3}.Normalize(), &price) {
		t.Error("bigger grid should regenerate")
	}
	if !needsSeats(a, seatgrid.Spec{Rows: 2, Cols: 3, CodePrefix: "V"}.Normalize(), &price) {
		t.Error("new prefix should regenerate")
	}
}
