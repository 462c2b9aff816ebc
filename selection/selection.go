// Package selection là máy trạng thái chọn ghế phía người mua: chọn khu vực rồi
// chọn ghế trong khu vực đó, và chỉ được giữ ghế ở một khu vực tại một thời điểm.
//
// Đây chỉ là rào chắn UX phía client. Trạng thái LOCKED/BOOKED từ server mới là
// sự thật; gọi Refresh mỗi khi có dữ liệu mới để loại các ghế không còn trống.
package selection

import (
	"errors"
	"slices"

	"seatmap_manager/scene"
)

// State: ghế đầu tiên khoá khu vực (ZoneLocked); chọn thêm hoặc mở lại popup của
// khu vực đã khoá là SeatsBeingPicked; đóng popup thì về lại ZoneLocked.
type State int

const (
	NoZoneActive State = iota
	ZoneChosen
	SeatsBeingPicked
	ZoneLocked
)

func (s State) String() string {
	switch s {
	case ZoneChosen:
		return "ZoneChosen"
	case SeatsBeingPicked:
		return "SeatsBeingPicked"
	case ZoneLocked:
		return "ZoneLocked"
	default:
		return "NoZoneActive"
	}
}

var (
	ErrSectionNotFound    = errors.New("section not found")
	ErrStageSection       = errors.New("stage sections have no seats")
	ErrSectionUnavailable = errors.New("section is not for sale")
	ErrZoneLocked         = errors.New("seats are already held in another section")
	ErrNoOpenSection      = errors.New("no section is open")
	ErrSeatNotFound       = errors.New("seat not found")
	ErrSeatUnavailable    = errors.New("seat is not available")
	ErrSelectionLimit     = errors.New("selection limit reached")
)

type Options struct {
	// MaxSeats giới hạn số ghế mỗi lần chọn; 0 là không giới hạn.
	MaxSeats int
}

type Machine struct {
	doc  *scene.Document
	opts Options

	state    State
	open     scene.SectionRef
	zone     scene.SectionRef
	selected []uint
}

func New(doc *scene.Document, opts Options) *Machine {
	return &Machine{doc: doc, opts: opts}
}

func (m *Machine) State() State {
	return m.state
}

// ActiveZone là khu vực đang bị khoá cho lượt chọn này.
func (m *Machine) ActiveZone() (scene.SectionRef, bool) {
	return m.zone, !m.zone.IsZero()
}

// Open là khu vực đang mở popup chọn ghế.
func (m *Machine) Open() (scene.SectionRef, bool) {
	return m.open, !m.open.IsZero()
}

func (m *Machine) Selected() []uint {
	return slices.Clone(m.selected)
}

func (m *Machine) IsSelected(seatID uint) bool {
	return slices.Contains(m.selected, seatID)
}

func (m *Machine) SelectedSeats() []scene.Seat {
	sec, ok := m.doc.Section(m.zone)
	if !ok {
		return nil
	}
	seats := make([]scene.Seat, 0, len(m.selected))
	for _, id := range m.selected {
		if seat, ok := sec.Seat(id); ok {
			seats = append(seats, *seat)
		}
	}
	return seats
}

// Total cộng giá các ghế đang chọn; ghế chưa có giá tính 0.
func (m *Machine) Total() float64 {
	total := 0.0
	for _, seat := range m.SelectedSeats() {
		if seat.Price != nil {
			total += *seat.Price
		}
	}
	return total
}

func (m *Machine) locked() bool {
	return len(m.selected) > 0
}

// SectionDisabled: khu vực hiển thị mờ và không nhận thao tác.
func (m *Machine) SectionDisabled(ref scene.SectionRef) bool {
	sec, ok := m.doc.Section(ref)
	if !ok || sec.IsStage || !sec.IsSalable {
		return true
	}
	return m.locked() && ref != m.zone
}

// SeatDisabled: ghế không AVAILABLE thì không bấm được, trừ ghế mình đang chọn.
func (m *Machine) SeatDisabled(ref scene.SectionRef, seatID uint) bool {
	if m.SectionDisabled(ref) {
		return true
	}
	sec, _ := m.doc.Section(ref)
	seat, ok := sec.Seat(seatID)
	if !ok {
		return true
	}
	if m.IsSelected(seatID) {
		return false
	}
	return !seat.Status.Clickable()
}

func (m *Machine) OpenSection(ref scene.SectionRef) error {
	sec, ok := m.doc.Section(ref)
	if !ok {
		return ErrSectionNotFound
	}
	if sec.IsStage {
		return ErrStageSection
	}
	if !sec.IsSalable {
		return ErrSectionUnavailable
	}
	if m.locked() && ref != m.zone {
		return ErrZoneLocked
	}
	m.open = ref
	if m.locked() {
		m.state = SeatsBeingPicked
	} else {
		m.state = ZoneChosen
	}
	return nil
}

func (m *Machine) ClosePopup() {
	m.open = scene.SectionRef{}
	if m.locked() {
		m.state = ZoneLocked
	} else {
		m.state = NoZoneActive
	}
}

// ToggleSeat bỏ chọn ghế đã chọn, hoặc chọn ghế AVAILABLE trong khu vực đang mở.
// Ghế đầu tiên khoá khu vực; bỏ hết ghế thì nhả khoá.
func (m *Machine) ToggleSeat(seatID uint) (selected bool, err error) {
	if m.open.IsZero() {
		return false, ErrNoOpenSection
	}
	sec, ok := m.doc.Section(m.open)
	if !ok {
		return false, ErrSectionNotFound
	}
	if m.locked() && m.open != m.zone {
		return false, ErrZoneLocked
	}
	seat, ok := sec.Seat(seatID)
	if !ok {
		return false, ErrSeatNotFound
	}
	if i := slices.Index(m.selected, seatID); i >= 0 {
		m.selected = slices.Delete(m.selected, i, i+1)
		m.afterRemoval()
		return false, nil
	}
	if !seat.Status.Clickable() {
		return false, ErrSeatUnavailable
	}
	if m.opts.MaxSeats > 0 && len(m.selected) >= m.opts.MaxSeats {
		return false, ErrSelectionLimit
	}
	first := !m.locked()
	m.selected = append(m.selected, seatID)
	m.zone = m.open
	if first {
		m.state = ZoneLocked
	} else {
		m.state = SeatsBeingPicked
	}
	return true, nil
}

func (m *Machine) afterRemoval() {
	if m.locked() {
		if m.open.IsZero() {
			m.state = ZoneLocked
		} else {
			m.state = SeatsBeingPicked
		}
		return
	}
	m.zone = scene.SectionRef{}
	m.state = NoZoneActive
}

// Clear bỏ toàn bộ lựa chọn và đóng popup.
func (m *Machine) Clear() {
	m.selected = nil
	m.zone = scene.SectionRef{}
	m.open = scene.SectionRef{}
	m.state = NoZoneActive
}

// Refresh nhận dữ liệu mới từ server và bỏ các ghế đã chọn không còn AVAILABLE
// (hoặc không còn tồn tại). Trả về id các ghế bị bỏ.
func (m *Machine) Refresh(doc *scene.Document) []uint {
	m.doc = doc
	if _, ok := doc.Section(m.open); !ok {
		m.open = scene.SectionRef{}
	}
	var dropped []uint
	sec, ok := doc.Section(m.zone)
	kept := m.selected[:0]
	for _, id := range m.selected {
		if ok {
			if seat, found := sec.Seat(id); found && seat.Status.Clickable() {
				kept = append(kept, id)
				continue
			}
		}
		dropped = append(dropped, id)
	}
	m.selected = kept
	switch {
	case m.locked() && !m.open.IsZero():
		m.state = SeatsBeingPicked
	case m.locked():
		m.state = ZoneLocked
	default:
		m.zone = scene.SectionRef{}
		m.state = NoZoneActive
	}
	return dropped
}
