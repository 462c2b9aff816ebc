package model

type SeatMapStatus int

const (
	SeatMapInactive SeatMapStatus = 0
	SeatMapActive   SeatMapStatus = 1
)

type SeatMap struct {
	DTO
	Name      string        `gorm:"not null" validate:"required" json:"name"`
	Slug      string        `gorm:"uniqueIndex;size:255" json:"slug"`
	Status    SeatMapStatus `gorm:"not null" json:"status"`
	ViewBox   string        `gorm:"not null" validate:"required" json:"viewBox"`
	ShowingId uint          `gorm:"index;not null" json:"showingId"`
	Sections  []Section     `gorm:"foreignKey:SeatMapId;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"sections"`
}

type CreateSeatMapInput struct {
	Name      string         `json:"name" validate:"required,max=255"`
	Status    *SeatMapStatus `json:"status" validate:"omitempty,oneof=0 1"`
	ViewBox   string         `json:"viewBox" validate:"required"`
	ShowingId uint           `json:"showingId" validate:"required"`
}

type UpdateSeatMapInput struct {
	Name    *string        `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Status  *SeatMapStatus `json:"status,omitempty" validate:"omitempty,oneof=0 1"`
	ViewBox *string        `json:"viewBox,omitempty"`
}

// UpdateStatusInput dùng cho xoá mềm: status=0 (seat map, section) hoặc display=0 (element).
type UpdateStatusInput struct {
	Status *int `json:"status" validate:"required,oneof=0 1"`
}
