package scene

import (
	"math"

	"seatmap_manager/geometry"
)

type ToolMode int

const (
	ToolSelect ToolMode = iota
	ToolAddSection
	ToolAddStage
)

func (m ToolMode) String() string {
	switch m {
	case ToolAddSection:
		return "addSection"
	case ToolAddStage:
		return "addStage"
	default:
		return "select"
	}
}

type Handle int

const (
	HandleNone Handle = iota
	HandleBody
	HandleNW
	HandleNE
	HandleSE
	HandleSW
	HandleRotate
)

type dragState struct {
	ref    SectionRef
	handle Handle
	start  geometry.Point
	origin Attribute
}

// Session is one organizer's editing session: tool mode, active selection and
// an in-flight drag. Points are in view-box units; callers invert pixels first.
type Session struct {
	*Editor
	tool ToolMode
	drag *dragState
}

func NewSession(doc *Document, opts Options) *Session {
	return &Session{Editor: NewEditor(doc, opts)}
}

func (s *Session) Tool() ToolMode {
	return s.tool
}

func (s *Session) SetTool(m ToolMode) {
	s.tool = m
	s.drag = nil
}

// Click: ở chế độ thêm, tạo khu vực/sân khấu tại điểm bấm rồi quay về chế độ chọn;
// ở chế độ chọn, chọn khu vực trên cùng tại điểm bấm (hoặc bỏ chọn).
func (s *Session) Click(pt geometry.Point) *Section {
	switch s.tool {
	case ToolAddSection, ToolAddStage:
		kind := KindSection
		if s.tool == ToolAddStage {
			kind = KindStage
		}
		sec := s.AddSection(kind, pt)
		s.tool = ToolSelect
		return sec
	default:
		sec, ok := s.doc.SectionAt(pt)
		if !ok {
			s.ClearSelection()
			return nil
		}
		s.SelectSection(sec.Ref)
		return sec
	}
}

// HandleAt finds which handle of the active section lies under pt.
func (s *Session) HandleAt(pt geometry.Point) Handle {
	sec := s.Active()
	if sec == nil {
		return HandleNone
	}
	a := sec.Attribute
	r := a.Rect()
	if dist(pt, s.rotateHandle(a)) <= s.opts.HandleRadius {
		return HandleRotate
	}
	corners := r.Corners(a.Rotate)
	for i, h := range []Handle{HandleNW, HandleNE, HandleSE, HandleSW} {
		if dist(pt, corners[i]) <= s.opts.HandleRadius {
			return h
		}
	}
	if r.ContainsRotated(pt, a.Rotate) {
		return HandleBody
	}
	return HandleNone
}

func (s *Session) rotateHandle(a Attribute) geometry.Point {
	r := a.Rect()
	top := geometry.Point{X: r.X + r.Width/2, Y: r.Y - s.opts.RotateHandleOffset}
	return geometry.RotateAround(a.Rotate, r.Center()).Apply(top)
}

// BeginDrag bắt đầu kéo tại pt. Nếu pt không trúng tay nắm của khu vực đang chọn
// thì thử chọn khu vực tại pt và kéo thân nó.
func (s *Session) BeginDrag(pt geometry.Point) bool {
	if s.tool != ToolSelect {
		return false
	}
	h := s.HandleAt(pt)
	if h == HandleNone {
		if s.Click(pt) == nil {
			return false
		}
		h = HandleBody
	}
	sec := s.Active()
	s.drag = &dragState{ref: sec.Ref, handle: h, start: pt, origin: sec.Attribute}
	return true
}

func (s *Session) Dragging() bool {
	return s.drag != nil
}

// DragTo tính hộp mới từ trạng thái lúc bắt đầu kéo (không cộng dồn), nên một
// bước bị từ chối vì quá nhỏ không làm lệch các bước sau.
func (s *Session) DragTo(pt geometry.Point) bool {
	d := s.drag
	if d == nil {
		return false
	}
	o := d.origin
	dx, dy := pt.X-d.start.X, pt.Y-d.start.Y
	var t Transform
	switch d.handle {
	case HandleBody:
		t.X, t.Y = ptr(o.X+dx), ptr(o.Y+dy)
	case HandleRotate:
		c := o.Rect().Center()
		from := math.Atan2(d.start.Y-c.Y, d.start.X-c.X)
		to := math.Atan2(pt.Y-c.Y, pt.X-c.X)
		t.Rotate = ptr(o.Rotate + (to-from)*180/math.Pi)
	default:
		// đưa độ dời về hệ trục của hình đã xoay
		local := geometry.Rotate(-o.Rotate).Apply(geometry.Point{X: dx, Y: dy})
		lx, ly := local.X, local.Y
		// kích thước lưu chưa nhân tỉ lệ
		sx, sy := o.Scale()
		wx, hy := lx/sx, ly/sy
		switch d.handle {
		case HandleSE:
			t.Width, t.Height = ptr(o.Width+wx), ptr(o.Height+hy)
		case HandleNW:
			t.X, t.Y = ptr(o.X+lx), ptr(o.Y+ly)
			t.Width, t.Height = ptr(o.Width-wx), ptr(o.Height-hy)
		case HandleNE:
			t.Y = ptr(o.Y + ly)
			t.Width, t.Height = ptr(o.Width+wx), ptr(o.Height-hy)
		case HandleSW:
			t.X = ptr(o.X + lx)
			t.Width, t.Height = ptr(o.Width-wx), ptr(o.Height+hy)
		}
	}
	applied, err := s.TransformSection(d.ref, t)
	if err != nil {
		s.drag = nil
		return false
	}
	return applied
}

func (s *Session) EndDrag() {
	s.drag = nil
}

func ptr(v float64) *float64 {
	return &v
}

func dist(a, b geometry.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
