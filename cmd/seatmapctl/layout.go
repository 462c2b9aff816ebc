package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"seatmap_manager/geometry"
	"seatmap_manager/scene"
	"seatmap_manager/seatgrid"
)

// Layout là file YAML mô tả sơ đồ mong muốn của một suất chiếu. Toạ độ khu vực
// là góc trên trái, tính theo viewBox (hoặc pixel canvas khi chạy với --canvas).
type Layout struct {
	Name      string          `yaml:"name"`
	ShowingId uint            `yaml:"showingId"`
	ViewBox   string          `yaml:"viewBox"`
	Prune     bool            `yaml:"prune"`
	Sections  []LayoutSection `yaml:"sections"`
}

type LayoutSection struct {
	Name         string         `yaml:"name"`
	Stage        bool           `yaml:"stage"`
	X            float64        `yaml:"x"`
	Y            float64        `yaml:"y"`
	Width        float64        `yaml:"width"`
	Height       float64        `yaml:"height"`
	Rotate       float64        `yaml:"rotate"`
	Fill         string         `yaml:"fill"`
	TicketTypeId *uint          `yaml:"ticketTypeId"`
	Message      string         `yaml:"message"`
	Reserving    bool           `yaml:"reserving"`
	Seats        *seatgrid.Spec `yaml:"seats"`
	Price        *float64       `yaml:"price"`
}

func LoadLayout(path string) (*Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseLayout(f)
}

func ParseLayout(r io.Reader) (*Layout, error) {
	var l Layout
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&l); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	if _, err := geometry.ParseViewBox(l.ViewBox); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	seen := map[string]bool{}
	for i, s := range l.Sections {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return nil, fmt.Errorf("layout: section #%d has no name", i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("layout: duplicate section %q", name)
		}
		seen[name] = true
		if s.Stage && (s.Seats != nil || s.TicketTypeId != nil) {
			return nil, fmt.Errorf("layout: section %q: %w", name, scene.ErrStageSection)
		}
		if s.Seats != nil {
			if err := s.Seats.Normalize().Validate(); err != nil {
				return nil, fmt.Errorf("layout: section %q: %w", name, err)
			}
		}
		l.Sections[i].Name = name
	}
	return &l, nil
}

// ParseCanvas đọc kích thước dạng "1200x800".
func ParseCanvas(s string) (geometry.Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return geometry.Size{}, errors.New("canvas must look like WIDTHxHEIGHT")
	}
	width, err1 := strconv.ParseFloat(strings.TrimSpace(w), 64)
	height, err2 := strconv.ParseFloat(strings.TrimSpace(h), 64)
	if err1 != nil || err2 != nil || width <= 0 || height <= 0 {
		return geometry.Size{}, fmt.Errorf("invalid canvas %q", s)
	}
	return geometry.Size{Width: width, Height: height}, nil
}

// Apply đưa tài liệu về đúng layout qua phiên soạn thảo: thêm khu vực còn thiếu,
// sửa khu vực trùng tên, sinh lại ghế khi lưới thay đổi. proj khác nil thì toạ
// độ trong layout là pixel canvas.
func (l *Layout) Apply(s *scene.Session, proj *geometry.Projection) error {
	doc := s.Document()
	doc.Name = l.Name

	wanted := map[string]bool{}
	for _, ls := range l.Sections {
		wanted[ls.Name] = true
	}
	byName := map[string]*scene.Section{}
	for _, sec := range doc.Sections() {
		if l.Prune && !wanted[sec.Name] {
			if err := s.DeleteSection(sec.Ref); err != nil {
				return err
			}
			continue
		}
		byName[sec.Name] = sec
	}

	// gỡ loại vé trước để việc đổi loại vé giữa hai khu vực không bị coi là trùng
	for _, ls := range l.Sections {
		if sec, ok := byName[ls.Name]; ok && !sameTicket(sec.TicketTypeId, ls.TicketTypeId) {
			if err := s.AssignTicketType(sec.Ref, nil); err != nil {
				return err
			}
		}
	}

	for _, ls := range l.Sections {
		box := geometry.Rect{X: ls.X, Y: ls.Y, Width: ls.Width, Height: ls.Height}
		if proj != nil {
			box = proj.InverseRect(box)
		}

		sec, ok := byName[ls.Name]
		if !ok {
			tool := scene.ToolAddSection
			if ls.Stage {
				tool = scene.ToolAddStage
			}
			s.SetTool(tool)
			sec = s.Click(box.Center())
			if err := s.RenameSection(sec.Ref, ls.Name); err != nil {
				return err
			}
		} else if sec.IsStage != ls.Stage {
			return fmt.Errorf("section %q: cannot switch between stage and seating", ls.Name)
		}

		if box.Width > 0 && box.Height > 0 {
			applied, err := s.TransformSection(sec.Ref, scene.Transform{
				X: &box.X, Y: &box.Y, Width: &box.Width, Height: &box.Height, Rotate: &ls.Rotate,
			})
			if err != nil {
				return err
			}
			if !applied {
				return fmt.Errorf("section %q: box %gx%g is smaller than the minimum size", ls.Name, box.Width, box.Height)
			}
		}
		if ls.Fill != "" {
			if err := s.SetFill(sec.Ref, ls.Fill); err != nil {
				return err
			}
		}
		if err := s.Describe(sec.Ref, ls.Message, ls.Reserving); err != nil {
			return err
		}
		if ls.TicketTypeId != nil {
			if err := s.AssignTicketType(sec.Ref, ls.TicketTypeId); err != nil {
				return fmt.Errorf("section %q: %w", ls.Name, err)
			}
		}
		if ls.Seats != nil && needsSeats(sec, ls.Seats.Normalize(), ls.Price) {
			if _, err := s.RegenerateSeats(sec.Ref, *ls.Seats, ls.Price); err != nil {
				return fmt.Errorf("section %q: %w", ls.Name, err)
			}
		}
	}

	s.ClearSelection()
	return nil
}

func sameTicket(a, b *uint) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// needsSeats so lưới hiện có với lưới mong muốn theo mã, vị trí và giá.
func needsSeats(sec *scene.Section, spec seatgrid.Spec, price *float64) bool {
	cells := seatgrid.Generate(spec)
	if len(cells) != len(sec.Seats) {
		return true
	}
	for i, c := range cells {
		seat := sec.Seats[i]
		if seat.Code != c.Code || seat.RowIndex != c.RowIndex || seat.ColIndex != c.ColIndex || !samePrice(seat.Price, price) {
			return true
		}
	}
	return false
}

func samePrice(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
