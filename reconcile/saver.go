// Package reconcile đẩy tài liệu đang sửa lên server: tạo hoặc cập nhật seat map,
// ghép khu vực theo id rồi theo tên, tạo mới phần còn lại và xoá mềm phần thừa.
package reconcile

import (
	"context"
	"errors"
	"log"
	"sync/atomic"

	"seatmap_manager/model"
	"seatmap_manager/scene"
)

// Store là các lời gọi lưu trữ mà Saver cần. client.Client cài đặt nó qua HTTP.
type Store interface {
	GetSeatMapsByShowingId(ctx context.Context, showingId uint) ([]model.SeatMap, error)
	CreateSeatMap(ctx context.Context, in model.CreateSeatMapInput) (*model.SeatMap, error)
	UpdateSeatMap(ctx context.Context, id uint, in model.UpdateSeatMapInput) (*model.SeatMap, error)
	CreateSection(ctx context.Context, in model.CreateSectionInput) (*model.Section, error)
	UpdateSection(ctx context.Context, id uint, in model.UpdateSectionInput) (*model.Section, error)
	CreateSectionAttribute(ctx context.Context, in model.SectionAttributeInput) (*model.SectionAttribute, error)
	CreateSeatsBatch(ctx context.Context, in model.CreateSeatsBatchInput) ([]model.Seat, error)
	CreateSeatMapElement(ctx context.Context, in model.MapElementInput) (*model.MapElement, error)
}

// SeatMapFinder là phần tuỳ chọn của Store: tìm seat map theo id kể cả khi
// danh sách theo suất chiếu chỉ trả sơ đồ đang hoạt động. Không tìm thấy thì
// trả về nil, nil.
type SeatMapFinder interface {
	FindSeatMap(ctx context.Context, id uint) (*model.SeatMap, error)
}

type Options struct {
	// DisableNameMatch tắt việc ghép khu vực nháp với khu vực server cùng tên.
	DisableNameMatch bool
	// KeepMissing giữ lại khu vực server không còn trong tài liệu thay vì xoá mềm.
	KeepMissing bool
}

type Result struct {
	SeatMapId      uint
	CreatedSeatMap bool
	Created        []uint
	Updated        []uint
	Deleted        []uint
	Failures       []*PersistenceError
}

// Saver chỉ cho một lần lưu chạy tại một thời điểm.
type Saver struct {
	store  Store
	opts   Options
	saving atomic.Bool
}

func NewSaver(store Store, opts Options) *Saver {
	return &Saver{store: store, opts: opts}
}

func (s *Saver) Saving() bool {
	return s.saving.Load()
}

// Save lấy seat map hiện có của suất chiếu rồi đồng bộ doc lên đó.
func (s *Saver) Save(ctx context.Context, doc *scene.Document) (*Result, error) {
	if !s.saving.CompareAndSwap(false, true) {
		return nil, ErrSaveInProgress
	}
	defer s.saving.Store(false)

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	maps, err := s.store.GetSeatMapsByShowingId(ctx, doc.ShowingId)
	if err != nil {
		return nil, &PersistenceError{Op: OpGetSeatMaps, Err: err}
	}
	prior := pickSeatMap(maps, doc.ID)
	if doc.ID != 0 && (prior == nil || prior.ID != doc.ID) {
		// sơ đồ đã lưu nhưng chưa kích hoạt có thể vắng mặt trong danh sách
		found, err := s.find(ctx, doc.ShowingId, doc.ID)
		if err != nil {
			return nil, &PersistenceError{Op: OpGetSeatMaps, Err: err}
		}
		if found != nil {
			prior = found
		}
	}
	return s.save(ctx, doc, prior)
}

// SaveAgainst dùng seat map đã lấy sẵn (nil: suất chiếu chưa có seat map).
func (s *Saver) SaveAgainst(ctx context.Context, doc *scene.Document, prior *model.SeatMap) (*Result, error) {
	if !s.saving.CompareAndSwap(false, true) {
		return nil, ErrSaveInProgress
	}
	defer s.saving.Store(false)

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return s.save(ctx, doc, prior)
}

func pickSeatMap(maps []model.SeatMap, id uint) *model.SeatMap {
	if len(maps) == 0 {
		return nil
	}
	for i := range maps {
		if id != 0 && maps[i].ID == id {
			return &maps[i]
		}
	}
	for i := range maps {
		if maps[i].Status == model.SeatMapActive {
			return &maps[i]
		}
	}
	return &maps[0]
}

// find hỏi Store (nếu là SeatMapFinder) seat map id thuộc suất chiếu showingId.
func (s *Saver) find(ctx context.Context, showingId, id uint) (*model.SeatMap, error) {
	f, ok := s.store.(SeatMapFinder)
	if !ok {
		return nil, nil
	}
	sm, err := f.FindSeatMap(ctx, id)
	if err != nil || sm == nil {
		return nil, err
	}
	if sm.ID != id || sm.ShowingId != showingId {
		return nil, nil
	}
	return sm, nil
}

type pass struct {
	*Saver
	doc       *scene.Document
	seatMapId uint
	res       *Result
	failed    map[*scene.Section]bool
}

func (s *Saver) save(ctx context.Context, doc *scene.Document, prior *model.SeatMap) (*Result, error) {
	p := &pass{Saver: s, doc: doc, res: &Result{}, failed: map[*scene.Section]bool{}}

	// seat map phải có id trước mọi lời gọi tạo khu vực
	if err := p.upsertSeatMap(ctx, prior); err != nil {
		return p.res, err
	}

	existing := map[uint]model.Section{}
	var order []uint
	if prior != nil {
		for _, ms := range prior.Sections {
			if ms.Status == model.SectionInactive {
				continue
			}
			existing[ms.ID] = ms
			order = append(order, ms.ID)
		}
	}
	claimed := map[uint]bool{}
	for _, sec := range doc.Sections() {
		if id, ok := sec.Ref.ID(); ok {
			if _, found := existing[id]; found {
				claimed[id] = true
			}
		}
	}

	for _, sec := range doc.Sections() {
		if err := ctx.Err(); err != nil {
			return p.res, err
		}
		if id, ok := sec.Ref.ID(); ok {
			if _, found := existing[id]; found {
				p.update(ctx, sec, id)
				continue
			}
			log.Printf("Khu vực %q (id %d) không còn trên server, tạo lại", sec.Name, id)
		}
		if id, ok := p.matchByName(sec, order, existing, claimed); ok {
			p.update(ctx, sec, id)
			continue
		}
		p.create(ctx, sec)
	}

	if !s.opts.KeepMissing {
		for _, id := range order {
			if claimed[id] {
				continue
			}
			p.softDelete(ctx, existing[id])
		}
	}

	p.refresh(ctx)
	if len(p.res.Failures) > 0 {
		return p.res, &SaveError{Failures: p.res.Failures}
	}
	return p.res, nil
}

func (p *pass) upsertSeatMap(ctx context.Context, prior *model.SeatMap) error {
	doc := p.doc
	vb := doc.ViewBox.String()
	if prior == nil {
		status := doc.Status
		created, err := p.store.CreateSeatMap(ctx, model.CreateSeatMapInput{
			Name:      doc.Name,
			Status:    &status,
			ViewBox:   vb,
			ShowingId: doc.ShowingId,
		})
		if err != nil {
			log.Printf("Tạo seat map cho suất chiếu %d thất bại: %v", doc.ShowingId, err)
			return &PersistenceError{Op: OpCreateSeatMap, Err: err}
		}
		if created == nil || created.ID == 0 {
			log.Printf("Tạo seat map cho suất chiếu %d: server không trả id", doc.ShowingId)
			return &PersistenceError{Op: OpCreateSeatMap, Err: ErrMissingID}
		}
		p.seatMapId = created.ID
		p.res.CreatedSeatMap = true
	} else {
		name, status := doc.Name, doc.Status
		if _, err := p.store.UpdateSeatMap(ctx, prior.ID, model.UpdateSeatMapInput{
			Name:    &name,
			Status:  &status,
			ViewBox: &vb,
		}); err != nil {
			log.Printf("Cập nhật seat map %d thất bại: %v", prior.ID, err)
			return &PersistenceError{Op: OpUpdateSeatMap, Err: err}
		}
		p.seatMapId = prior.ID
	}
	doc.ID = p.seatMapId
	p.res.SeatMapId = p.seatMapId
	return nil
}

// matchByName chỉ dùng khi khu vực chưa có id server khớp. Mỗi khu vực server
// chỉ được ghép một lần.
func (p *pass) matchByName(sec *scene.Section, order []uint, existing map[uint]model.Section, claimed map[uint]bool) (uint, bool) {
	if p.opts.DisableNameMatch {
		return 0, false
	}
	for _, id := range order {
		if claimed[id] || existing[id].Name != sec.Name {
			continue
		}
		claimed[id] = true
		if sec.Ref.IsDraft() {
			p.doc.Promote(sec.Ref, id)
		} else {
			// ref cũ trỏ tới khu vực đã mất; gắn lại sang khu vực cùng tên
			p.doc.Promote(p.rebase(sec), id)
		}
		log.Printf("Ghép khu vực %q với khu vực server %d theo tên", sec.Name, id)
		return id, true
	}
	return 0, false
}

// rebase biến ref đã lưu nhưng mất trên server thành ref nháp để Promote được.
func (p *pass) rebase(sec *scene.Section) scene.SectionRef {
	sec.Ref = scene.NewDraft()
	return sec.Ref
}

func (p *pass) fail(sec *scene.Section, op string, err error) {
	pe := &PersistenceError{Op: op, Err: err}
	if sec != nil {
		pe.Section, pe.Ref = sec.Name, sec.Ref
		p.failed[sec] = true
	}
	log.Printf("Lưu seat map %d: %v", p.seatMapId, pe)
	p.res.Failures = append(p.res.Failures, pe)
}

func (p *pass) update(ctx context.Context, sec *scene.Section, id uint) {
	status := model.SectionActive
	in := model.UpdateSectionInput{
		Name:            &sec.Name,
		IsStage:         &sec.IsStage,
		IsSalable:       &sec.IsSalable,
		IsReservingSeat: &sec.IsReservingSeat,
		Message:         &sec.Message,
		Status:          &status,
		Attribute:       attributeInput(id, sec.Attribute),
	}
	if sec.TicketTypeId != nil {
		in.TicketTypeId = sec.TicketTypeId
	} else {
		in.ClearTicketType = true
	}
	if _, err := p.store.UpdateSection(ctx, id, in); err != nil {
		p.fail(sec, OpUpdateSection, err)
		return
	}
	p.res.Updated = append(p.res.Updated, id)
	if sec.SeatsRegenerated() {
		if !p.seats(ctx, sec, id) {
			return
		}
	}
	p.elements(ctx, sec, id)
}

func (p *pass) create(ctx context.Context, sec *scene.Section) {
	status := model.SectionActive
	created, err := p.store.CreateSection(ctx, model.CreateSectionInput{
		SeatMapId:       p.seatMapId,
		Name:            sec.Name,
		IsStage:         sec.IsStage,
		IsSalable:       sec.IsSalable,
		IsReservingSeat: sec.IsReservingSeat,
		Message:         sec.Message,
		TicketTypeId:    sec.TicketTypeId,
		Status:          &status,
	})
	if err != nil {
		p.fail(sec, OpCreateSection, err)
		return
	}
	if created == nil || created.ID == 0 {
		p.fail(sec, OpCreateSection, ErrMissingID)
		return
	}
	id := created.ID
	// khu vực đã có trên server; lần lưu sau sẽ cập nhật thay vì tạo lại
	if sec.Ref.IsDraft() {
		p.doc.Promote(sec.Ref, id)
	} else {
		p.doc.Promote(p.rebase(sec), id)
	}
	p.res.Created = append(p.res.Created, id)

	if _, err := p.store.CreateSectionAttribute(ctx, *attributeInput(id, sec.Attribute)); err != nil {
		p.fail(sec, OpCreateSectionAttribute, err)
		return
	}
	if len(sec.Seats) > 0 {
		if !p.seats(ctx, sec, id) {
			return
		}
	}
	p.elements(ctx, sec, id)
}

func (p *pass) seats(ctx context.Context, sec *scene.Section, id uint) bool {
	if sec.IsStage || sec.Grid == nil {
		return true
	}
	g := sec.Grid
	if _, err := p.store.CreateSeatsBatch(ctx, model.CreateSeatsBatchInput{
		SectionId:  id,
		Price:      g.Price,
		Status:     model.SeatAvailable,
		IsSalable:  sec.IsSalable,
		Rows:       g.Rows,
		Cols:       g.Cols,
		StartRow:   g.StartRow,
		StartCol:   g.StartCol,
		CodePrefix: g.CodePrefix,
		Overwrite:  true,
	}); err != nil {
		p.fail(sec, OpCreateSeatsBatch, err)
		return false
	}
	return true
}

// elements tạo các element chưa có id server và ghi id ngay sau mỗi lần tạo,
// để lần lưu lại sau lỗi không tạo trùng.
func (p *pass) elements(ctx context.Context, sec *scene.Section, id uint) {
	for i := range sec.Elements {
		el := &sec.Elements[i]
		if el.ID != 0 {
			continue
		}
		display := el.Display
		created, err := p.store.CreateSeatMapElement(ctx, model.MapElementInput{
			SectionId: id,
			Type:      el.Type,
			X:         el.X,
			Y:         el.Y,
			Width:     el.Width,
			Height:    el.Height,
			Fill:      el.Fill,
			Data:      el.Data,
			Display:   &display,
		})
		if err == nil && (created == nil || created.ID == 0) {
			err = ErrMissingID
		}
		if err != nil {
			p.fail(sec, OpCreateSeatMapElement, err)
			return
		}
		el.ID = created.ID
	}
}

func (p *pass) softDelete(ctx context.Context, ms model.Section) {
	status := model.SectionInactive
	if _, err := p.store.UpdateSection(ctx, ms.ID, model.UpdateSectionInput{Status: &status}); err != nil {
		pe := &PersistenceError{Op: OpDeleteSection, Section: ms.Name, Ref: scene.Persisted(ms.ID), Err: err}
		log.Printf("Lưu seat map %d: %v", p.seatMapId, pe)
		p.res.Failures = append(p.res.Failures, pe)
		return
	}
	p.res.Deleted = append(p.res.Deleted, ms.ID)
}

// refresh đọc lại seat map để nhận id ghế và element do server cấp.
func (p *pass) refresh(ctx context.Context) {
	maps, err := p.store.GetSeatMapsByShowingId(ctx, p.doc.ShowingId)
	if err != nil {
		p.fail(nil, OpRefreshAfterSave, err)
		return
	}
	fresh := pickSeatMap(maps, p.seatMapId)
	if fresh == nil || fresh.ID != p.seatMapId {
		if fresh, err = p.find(ctx, p.doc.ShowingId, p.seatMapId); err != nil {
			p.fail(nil, OpRefreshAfterSave, err)
			return
		}
	}
	if fresh == nil {
		p.fail(nil, OpRefreshAfterSave, errors.New("saved seat map missing from showing"))
		return
	}
	skip := make(map[scene.SectionRef]bool, len(p.failed))
	for sec := range p.failed {
		skip[sec.Ref] = true
	}
	p.doc.Adopt(*fresh, skip)
}

func attributeInput(sectionId uint, a scene.Attribute) *model.SectionAttributeInput {
	return &model.SectionAttributeInput{
		SectionId: sectionId,
		X:         a.X,
		Y:         a.Y,
		Width:     a.Width,
		Height:    a.Height,
		ScaleX:    a.ScaleX,
		ScaleY:    a.ScaleY,
		Rotate:    a.Rotate,
		Fill:      a.Fill,
	}
}
