package scene

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"seatmap_manager/geometry"
	"seatmap_manager/model"
	"seatmap_manager/seatgrid"
)

type Kind int

const (
	KindSection Kind = iota
	KindStage
)

const (
	SectionFill = "#1677FF"
	StageFill   = "#E53935"

	AvailableSeatFill = "#22C55E"
	SelectedSeatFill  = "#F59E0B"
	BookedSeatFill    = "#9CA3AF"

	DefaultSectionName = "Khu vực"
	DefaultStageName   = "Sân khấu"
)

type Options struct {
	// MinSize là cạnh nhỏ nhất (đơn vị viewBox) khi co giãn khu vực.
	MinSize     float64
	SectionSize geometry.Size
	StageSize   geometry.Size
	// HandleRadius là bán kính bắt điểm của tay nắm co giãn/xoay.
	HandleRadius       float64
	RotateHandleOffset float64
	// AllowDuplicateTicketTypes tắt kiểm tra một loại vé chỉ gắn cho một khu vực.
	AllowDuplicateTicketTypes bool
}

func DefaultOptions() Options {
	return Options{
		MinSize:            30,
		SectionSize:        geometry.Size{Width: 200, Height: 150},
		StageSize:          geometry.Size{Width: 200, Height: 100},
		HandleRadius:       8,
		RotateHandleOffset: 24,
	}
}

// Transform gộp vào thuộc tính khu vực; nil nghĩa là giữ nguyên.
type Transform struct {
	X      *float64
	Y      *float64
	Width  *float64
	Height *float64
	Rotate *float64
}

// Editor is the editing engine: every mutation of a Document goes through it.
// It also holds the active selection.
type Editor struct {
	doc    *Document
	opts   Options
	active SectionRef
}

func NewEditor(doc *Document, opts Options) *Editor {
	return &Editor{doc: doc, opts: opts}
}

func (e *Editor) Document() *Document {
	return e.doc
}

func (e *Editor) Options() Options {
	return e.opts
}

// Active trả về khu vực đang chọn, nil nếu không có.
func (e *Editor) Active() *Section {
	s, ok := e.doc.Section(e.active)
	if !ok {
		return nil
	}
	return s
}

// AddSection đặt khu vực mới sao cho hint nằm ở tâm, rồi chọn nó.
func (e *Editor) AddSection(kind Kind, hint geometry.Point) *Section {
	size, fill := e.opts.SectionSize, SectionFill
	if kind == KindStage {
		size, fill = e.opts.StageSize, StageFill
	}
	rect := geometry.RectAround(hint, size.Width, size.Height)
	s := &Section{
		Ref:       NewDraft(),
		Name:      e.nextName(kind),
		IsStage:   kind == KindStage,
		IsSalable: kind != KindStage,
		Attribute: Attribute{
			X: rect.X, Y: rect.Y, Width: rect.Width, Height: rect.Height,
			ScaleX: 1, ScaleY: 1, Fill: fill,
		},
	}
	s.Elements = defaultElements(s)
	e.doc.insert(s)
	e.active = s.Ref
	return s
}

func (e *Editor) nextName(kind Kind) string {
	used := make(map[string]bool, e.doc.Len())
	count := 0
	for _, s := range e.doc.sections {
		used[s.Name] = true
		if s.IsStage == (kind == KindStage) {
			count++
		}
	}
	if kind == KindStage {
		if !used[DefaultStageName] {
			return DefaultStageName
		}
		for n := count + 1; ; n++ {
			name := fmt.Sprintf("%s %d", DefaultStageName, n)
			if !used[name] {
				return name
			}
		}
	}
	for n := count + 1; ; n++ {
		name := fmt.Sprintf("%s %d", DefaultSectionName, n)
		if !used[name] {
			return name
		}
	}
}

// defaultElements: sân khấu có một nền; khu vực thường có ba ô chú thích trạng thái ghế.
func defaultElements(s *Section) []Element {
	a := s.Attribute
	if s.IsStage {
		return []Element{{
			Type: model.ElementTypeRect, X: a.X, Y: a.Y, Width: a.Width, Height: a.Height,
			Fill: a.Fill, Data: model.ElementStageArea, Display: model.ElementVisible,
		}}
	}
	swatches := []struct{ data, fill string }{
		{model.ElementAvailableSeat, AvailableSeatFill},
		{model.ElementSelectedSeat, SelectedSeatFill},
		{model.ElementBookedSeat, BookedSeatFill},
	}
	elements := make([]Element, 0, len(swatches))
	for i, sw := range swatches {
		elements = append(elements, Element{
			Type:    model.ElementTypeRect,
			X:       a.X + 8 + float64(i)*24,
			Y:       a.Y + a.Height - 24,
			Width:   16,
			Height:  16,
			Fill:    sw.fill,
			Data:    sw.data,
			Display: model.ElementVisible,
		})
	}
	return elements
}

// SelectSection chọn theo ref; không tìm thấy thì bỏ chọn và trả về false.
func (e *Editor) SelectSection(ref SectionRef) bool {
	if _, ok := e.doc.Section(ref); !ok {
		e.active = SectionRef{}
		return false
	}
	e.active = ref
	return true
}

func (e *Editor) ClearSelection() {
	e.active = SectionRef{}
}

// TransformSection merges t into the section attribute. A result narrower or
// shorter than MinSize is dropped and the old box kept (applied=false), so a live
// drag passing through an invalid shape keeps going.
func (e *Editor) TransformSection(ref SectionRef, t Transform) (applied bool, err error) {
	s, ok := e.doc.Section(ref)
	if !ok {
		return false, ErrSectionNotFound
	}
	next := s.Attribute
	if t.X != nil {
		next.X = *t.X
	}
	if t.Y != nil {
		next.Y = *t.Y
	}
	if t.Width != nil {
		next.Width = *t.Width
	}
	if t.Height != nil {
		next.Height = *t.Height
	}
	if t.Rotate != nil {
		next.Rotate = normalizeDegrees(*t.Rotate)
	}
	if next.Width < e.opts.MinSize || next.Height < e.opts.MinSize {
		return false, nil
	}
	for _, v := range []float64{next.X, next.Y, next.Width, next.Height, next.Rotate} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false, nil
		}
	}
	dx, dy := next.X-s.Attribute.X, next.Y-s.Attribute.Y
	s.Attribute = next
	for i := range s.Elements {
		el := &s.Elements[i]
		if el.Data == model.ElementStageArea {
			el.X, el.Y, el.Width, el.Height = next.X, next.Y, next.Width, next.Height
			continue
		}
		el.X += dx
		el.Y += dy
	}
	return true, nil
}

func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// RegenerateSeats thay toàn bộ ghế của khu vực bằng lưới rows×cols mới.
// Id ghế cũ bị bỏ; gọi hai lần liên tiếp cho cùng lưới (cùng mã và vị trí).
func (e *Editor) RegenerateSeats(ref SectionRef, spec seatgrid.Spec, price *float64) ([]Seat, error) {
	s, ok := e.doc.Section(ref)
	if !ok {
		return nil, ErrSectionNotFound
	}
	if s.IsStage {
		return nil, ErrStageSection
	}
	spec = spec.Normalize()
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	cells := seatgrid.Generate(spec)
	// id tạm không được trùng với ghế nào khác trong tài liệu
	used := make(map[uint]bool)
	for _, other := range e.doc.Sections() {
		if other == s {
			continue
		}
		for _, seat := range other.Seats {
			used[seat.ID] = true
		}
	}
	seats := make([]Seat, 0, len(cells))
	for _, c := range cells {
		id := uint(rand.Uint32()) + 1
		for used[id] {
			id = uint(rand.Uint32()) + 1
		}
		used[id] = true
		seats = append(seats, Seat{
			ID:        id,
			Code:      c.Code,
			RowIndex:  c.RowIndex,
			ColIndex:  c.ColIndex,
			Status:    model.SeatAvailable,
			IsSalable: s.IsSalable,
			Price:     copyPrice(price),
		})
	}
	s.Seats = seats
	s.Grid = &Grid{Spec: spec, Price: copyPrice(price)}
	s.seatsRegenerated = true
	e.doc.invalidate()
	return seats, nil
}

func copyPrice(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// AssignTicketType gắn (hoặc gỡ khi nil) loại vé cho khu vực. Loại vé đã thuộc
// khu vực khác thì trả về *DuplicateTicketTypeBindingError và không đổi gì.
func (e *Editor) AssignTicketType(ref SectionRef, ticketTypeId *uint) error {
	s, ok := e.doc.Section(ref)
	if !ok {
		return ErrSectionNotFound
	}
	if ticketTypeId == nil {
		s.TicketTypeId = nil
		return nil
	}
	if s.IsStage {
		return ErrStageSection
	}
	if !e.opts.AllowDuplicateTicketTypes {
		if holder, ok := e.doc.SectionByTicketType(*ticketTypeId); ok && holder.Ref != ref {
			return &DuplicateTicketTypeBindingError{
				TicketTypeId: *ticketTypeId,
				Target:       ref,
				Holder:       holder.Ref,
				HolderName:   holder.Name,
			}
		}
	}
	id := *ticketTypeId
	s.TicketTypeId = &id
	return nil
}

func (e *Editor) DeleteSection(ref SectionRef) error {
	if !e.doc.remove(ref) {
		return ErrSectionNotFound
	}
	if e.active == ref {
		e.active = SectionRef{}
	}
	return nil
}

func (e *Editor) SetFill(ref SectionRef, color string) error {
	s, ok := e.doc.Section(ref)
	if !ok {
		return ErrSectionNotFound
	}
	s.Attribute.Fill = color
	return nil
}

func (e *Editor) RenameSection(ref SectionRef, name string) error {
	s, ok := e.doc.Section(ref)
	if !ok {
		return ErrSectionNotFound
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}
	s.Name = name
	return nil
}

// Describe đặt thông điệp hiển thị và cờ giữ chỗ của khu vực.
func (e *Editor) Describe(ref SectionRef, message string, reserving bool) error {
	s, ok := e.doc.Section(ref)
	if !ok {
		return ErrSectionNotFound
	}
	s.Message = message
	s.IsReservingSeat = reserving
	return nil
}
