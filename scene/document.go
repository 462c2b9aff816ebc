// Package scene is the in-memory seat map being edited: the document model, the
// editing engine that mutates it and the editor session state machine.
package scene

import (
	"fmt"
	"slices"

	"seatmap_manager/geometry"
	"seatmap_manager/model"
	"seatmap_manager/seatgrid"
)

type Attribute struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
	ScaleX float64
	ScaleY float64
	Rotate float64
	Fill   string
}

// Rect là hộp đang hiển thị: kích thước đã nhân tỉ lệ.
func (a Attribute) Rect() geometry.Rect {
	sx, sy := a.Scale()
	return geometry.Rect{X: a.X, Y: a.Y, Width: a.Width * sx, Height: a.Height * sy}
}

// Scale trả về tỉ lệ x, y; giá trị 0 (chưa đặt) coi như 1.
func (a Attribute) Scale() (float64, float64) {
	sx, sy := a.ScaleX, a.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return sx, sy
}

type Seat struct {
	ID        uint
	Code      string
	RowIndex  int
	ColIndex  int
	Status    model.SeatStatus
	IsSalable bool
	Price     *float64
}

type Element struct {
	ID      uint
	Type    string
	X       float64
	Y       float64
	Width   float64
	Height  float64
	Fill    string
	Data    string
	Display int
}

// Grid là cấu hình lưới ghế gần nhất đã sinh cho khu vực.
type Grid struct {
	seatgrid.Spec
	Price *float64
}

type Section struct {
	Ref             SectionRef
	Name            string
	IsStage         bool
	IsSalable       bool
	IsReservingSeat bool
	Message         string
	TicketTypeId    *uint
	Attribute       Attribute
	Seats           []Seat
	Elements        []Element
	Grid            *Grid

	seatsRegenerated bool
}

// SeatsRegenerated báo lưới ghế đã sinh lại kể từ lần đồng bộ gần nhất với server.
func (s *Section) SeatsRegenerated() bool {
	return s.seatsRegenerated
}

func (s *Section) Seat(id uint) (*Seat, bool) {
	for i := range s.Seats {
		if s.Seats[i].ID == id {
			return &s.Seats[i], true
		}
	}
	return nil, false
}

// Groups is the stage/salable split renderers draw from.
type Groups struct {
	Stages  []*Section
	Salable []*Section
	Other   []*Section
}

// Document is one seat map. Section order is render (z) order.
type Document struct {
	ID        uint
	Name      string
	Status    model.SeatMapStatus
	ViewBox   geometry.ViewBox
	ShowingId uint

	sections []*Section
	groups   *Groups
}

func New(name string, showingId uint, vb geometry.ViewBox) (*Document, error) {
	if !vb.Valid() {
		return nil, geometry.ErrInvalidViewBox
	}
	return &Document{
		Name:      name,
		Status:    model.SeatMapActive,
		ViewBox:   vb,
		ShowingId: showingId,
	}, nil
}

// FromModel dựng tài liệu từ dữ liệu server. Khu vực đã xoá mềm (status=0) bị bỏ qua.
func FromModel(m model.SeatMap) (*Document, error) {
	vb, err := geometry.ParseViewBox(m.ViewBox)
	if err != nil {
		return nil, err
	}
	doc := &Document{
		ID:        m.ID,
		Name:      m.Name,
		Status:    m.Status,
		ViewBox:   vb,
		ShowingId: m.ShowingId,
	}
	for _, ms := range m.Sections {
		if ms.Status == model.SectionInactive {
			continue
		}
		doc.sections = append(doc.sections, sectionFromModel(ms))
	}
	return doc, nil
}

func sectionFromModel(ms model.Section) *Section {
	s := &Section{
		Ref:             Persisted(ms.ID),
		Name:            ms.Name,
		IsStage:         ms.IsStage,
		IsSalable:       ms.IsSalable,
		IsReservingSeat: ms.IsReservingSeat,
		Message:         ms.Message,
	}
	if ms.TicketTypeId != nil {
		id := *ms.TicketTypeId
		s.TicketTypeId = &id
	}
	if a := ms.Attribute; a != nil {
		s.Attribute = Attribute{
			X: a.X, Y: a.Y, Width: a.Width, Height: a.Height,
			ScaleX: a.ScaleX, ScaleY: a.ScaleY, Rotate: a.Rotate, Fill: a.Fill,
		}
	}
	if s.Attribute.ScaleX == 0 {
		s.Attribute.ScaleX = 1
	}
	if s.Attribute.ScaleY == 0 {
		s.Attribute.ScaleY = 1
	}
	s.adoptSeats(ms.Seats)
	s.adoptElements(ms.Elements)
	return s
}

func (s *Section) adoptSeats(seats []model.Seat) {
	s.Seats = make([]Seat, 0, len(seats))
	rows := make([]int, 0, len(seats))
	cols := make([]int, 0, len(seats))
	for _, ms := range seats {
		s.Seats = append(s.Seats, Seat{
			ID:        ms.ID,
			Code:      ms.Code,
			RowIndex:  ms.RowIndex,
			ColIndex:  ms.ColIndex,
			Status:    ms.Status,
			IsSalable: ms.IsSalable,
			Price:     ms.Price,
		})
		rows = append(rows, ms.RowIndex)
		cols = append(cols, ms.ColIndex)
	}
	sortSeats(s.Seats)
	s.Grid = nil
	if len(s.Seats) > 0 {
		maxRow, maxCol := seatgrid.Bounds(rows, cols)
		first := s.Seats[0]
		s.Grid = &Grid{
			Spec: seatgrid.Spec{
				Rows:     maxRow - first.RowIndex + 1,
				Cols:     maxCol - first.ColIndex + 1,
				StartRow: first.RowIndex,
				StartCol: first.ColIndex,
			},
			Price: first.Price,
		}
	}
	s.seatsRegenerated = false
}

func (s *Section) adoptElements(elements []model.MapElement) {
	s.Elements = make([]Element, 0, len(elements))
	for _, me := range elements {
		if me.Display == model.ElementHidden {
			continue
		}
		s.Elements = append(s.Elements, Element{
			ID: me.ID, Type: me.Type,
			X: me.X, Y: me.Y, Width: me.Width, Height: me.Height,
			Fill: me.Fill, Data: me.Data, Display: me.Display,
		})
	}
}

func sortSeats(seats []Seat) {
	slices.SortFunc(seats, func(a, b Seat) int {
		if a.RowIndex != b.RowIndex {
			return a.RowIndex - b.RowIndex
		}
		return a.ColIndex - b.ColIndex
	})
}

// Sections trả về bản sao danh sách theo thứ tự vẽ; con trỏ trỏ vào dữ liệu thật.
func (d *Document) Sections() []*Section {
	return slices.Clone(d.sections)
}

func (d *Document) Len() int {
	return len(d.sections)
}

func (d *Document) Section(ref SectionRef) (*Section, bool) {
	i := d.index(ref)
	if i < 0 {
		return nil, false
	}
	return d.sections[i], true
}

func (d *Document) SectionByID(id uint) (*Section, bool) {
	return d.Section(Persisted(id))
}

func (d *Document) index(ref SectionRef) int {
	if ref.IsZero() {
		return -1
	}
	return slices.IndexFunc(d.sections, func(s *Section) bool { return s.Ref == ref })
}

// SectionAt hit-tests from the top of the z-order down, honouring rotation.
func (d *Document) SectionAt(pt geometry.Point) (*Section, bool) {
	for i := len(d.sections) - 1; i >= 0; i-- {
		s := d.sections[i]
		if s.Attribute.Rect().ContainsRotated(pt, s.Attribute.Rotate) {
			return s, true
		}
	}
	return nil, false
}

func (d *Document) SectionByTicketType(ticketTypeId uint) (*Section, bool) {
	for _, s := range d.sections {
		if s.TicketTypeId != nil && *s.TicketTypeId == ticketTypeId {
			return s, true
		}
	}
	return nil, false
}

func (d *Document) Projection(canvas geometry.Size) geometry.Projection {
	return geometry.NewProjection(d.ViewBox, canvas)
}

// Groups được cache tới lần thay đổi cấu trúc kế tiếp.
func (d *Document) Groups() Groups {
	if d.groups != nil {
		return *d.groups
	}
	g := Groups{}
	for _, s := range d.sections {
		switch {
		case s.IsStage:
			g.Stages = append(g.Stages, s)
		case s.IsSalable:
			g.Salable = append(g.Salable, s)
		default:
			g.Other = append(g.Other, s)
		}
	}
	d.groups = &g
	return g
}

func (d *Document) invalidate() {
	d.groups = nil
}

func (d *Document) insert(s *Section) {
	d.sections = append(d.sections, s)
	d.invalidate()
}

func (d *Document) remove(ref SectionRef) bool {
	i := d.index(ref)
	if i < 0 {
		return false
	}
	d.sections = slices.Delete(d.sections, i, i+1)
	d.invalidate()
	return true
}

// Promote đổi một khu vực nháp sang id server sau khi tạo thành công.
func (d *Document) Promote(draft SectionRef, id uint) bool {
	s, ok := d.Section(draft)
	if !ok || !draft.IsDraft() {
		return false
	}
	s.Ref = Persisted(id)
	d.invalidate()
	return true
}

// Adopt nhận trạng thái server sau khi lưu: id seat map, id ghế và element của
// các khu vực đã lưu. Khu vực nằm trong skip (lưu lỗi) giữ nguyên bản đang sửa.
func (d *Document) Adopt(m model.SeatMap, skip map[SectionRef]bool) {
	d.ID = m.ID
	byID := make(map[uint]model.Section, len(m.Sections))
	for _, ms := range m.Sections {
		byID[ms.ID] = ms
	}
	for _, s := range d.sections {
		if skip[s.Ref] {
			continue
		}
		id, ok := s.Ref.ID()
		if !ok {
			continue
		}
		ms, ok := byID[id]
		if !ok {
			continue
		}
		if !s.IsStage {
			s.adoptSeats(ms.Seats)
		}
		s.adoptElements(ms.Elements)
	}
	d.invalidate()
}

// Validate checks the structural invariants of the whole document.
func (d *Document) Validate() error {
	bound := make(map[uint]*Section)
	for _, s := range d.sections {
		if s.IsStage && (len(s.Seats) > 0 || s.TicketTypeId != nil) {
			return fmt.Errorf("%w: %q", ErrStageSection, s.Name)
		}
		if s.TicketTypeId != nil {
			if holder, ok := bound[*s.TicketTypeId]; ok {
				return &DuplicateTicketTypeBindingError{
					TicketTypeId: *s.TicketTypeId,
					Target:       s.Ref,
					Holder:       holder.Ref,
					HolderName:   holder.Name,
				}
			}
			bound[*s.TicketTypeId] = s
		}
		seen := make(map[[2]int]bool, len(s.Seats))
		for _, seat := range s.Seats {
			key := [2]int{seat.RowIndex, seat.ColIndex}
			if seen[key] {
				return fmt.Errorf("%w: section %q row %d col %d", ErrDuplicateSeat, s.Name, seat.RowIndex, seat.ColIndex)
			}
			seen[key] = true
		}
	}
	return nil
}

// ToModel xuất tài liệu theo đúng hình dạng JSON của API (id nháp = 0).
func (d *Document) ToModel() model.SeatMap {
	m := model.SeatMap{
		Name:      d.Name,
		Status:    d.Status,
		ViewBox:   d.ViewBox.String(),
		ShowingId: d.ShowingId,
	}
	m.ID = d.ID
	for _, s := range d.sections {
		ms := model.Section{
			SeatMapId:       d.ID,
			Name:            s.Name,
			IsStage:         s.IsStage,
			IsSalable:       s.IsSalable,
			IsReservingSeat: s.IsReservingSeat,
			Message:         s.Message,
			TicketTypeId:    s.TicketTypeId,
			Status:          model.SectionActive,
			Attribute: &model.SectionAttribute{
				X: s.Attribute.X, Y: s.Attribute.Y,
				Width: s.Attribute.Width, Height: s.Attribute.Height,
				ScaleX: s.Attribute.ScaleX, ScaleY: s.Attribute.ScaleY,
				Rotate: s.Attribute.Rotate, Fill: s.Attribute.Fill,
			},
		}
		ms.ID, _ = s.Ref.ID()
		for _, seat := range s.Seats {
			mseat := model.Seat{
				SectionId: ms.ID,
				Code:      seat.Code,
				RowIndex:  seat.RowIndex,
				ColIndex:  seat.ColIndex,
				Status:    seat.Status,
				IsSalable: seat.IsSalable,
				Price:     seat.Price,
			}
			mseat.ID = seat.ID
			ms.Seats = append(ms.Seats, mseat)
		}
		for _, e := range s.Elements {
			me := model.MapElement{
				SectionId: ms.ID, Type: e.Type,
				X: e.X, Y: e.Y, Width: e.Width, Height: e.Height,
				Fill: e.Fill, Data: e.Data, Display: e.Display,
			}
			me.ID = e.ID
			ms.Elements = append(ms.Elements, me)
		}
		m.Sections = append(m.Sections, ms)
	}
	return m
}
