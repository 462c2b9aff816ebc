package model

// Data của element là nhãn ngữ nghĩa để renderer biết cách vẽ.
const (
	ElementStageArea     = "stage-area-element"
	ElementAvailableSeat = "available-seat-element"
	ElementSelectedSeat  = "selected-seat-element"
	ElementBookedSeat    = "booked-seat-element"
)

const (
	ElementHidden  = 0
	ElementVisible = 1
)

const ElementTypeRect = "rect"

type MapElement struct {
	DTO
	SectionId uint    `gorm:"index;not null" json:"sectionId"`
	Type      string  `gorm:"not null;size:32" json:"type"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Fill      string  `gorm:"size:32" json:"fill"`
	Data      string  `gorm:"size:64" json:"data"`
	Display   int     `gorm:"not null" json:"display"`
}

type MapElementInput struct {
	SectionId uint    `json:"sectionId" validate:"required"`
	Type      string  `json:"type" validate:"required,max=32"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width" validate:"gte=0"`
	Height    float64 `json:"height" validate:"gte=0"`
	Fill      string  `json:"fill" validate:"max=32"`
	Data      string  `json:"data" validate:"max=64"`
	Display   *int    `json:"display" validate:"omitempty,oneof=0 1"`
}
