package model

import "time"

type SeatStatus string

const (
	SeatAvailable   SeatStatus = "AVAILABLE"
	SeatBooked      SeatStatus = "BOOKED"
	SeatSelected    SeatStatus = "SELECTED"
	SeatSold        SeatStatus = "SOLD"
	SeatLocked      SeatStatus = "LOCKED"
	SeatUnavailable SeatStatus = "UNAVAILABLE"
)

var SeatStatuses = []string{
	string(SeatAvailable),
	string(SeatBooked),
	string(SeatSelected),
	string(SeatSold),
	string(SeatLocked),
	string(SeatUnavailable),
}

// Clickable: chỉ ghế AVAILABLE mới được chọn.
func (s SeatStatus) Clickable() bool {
	return s == SeatAvailable
}

type Seat struct {
	DTO
	SectionId   uint       `gorm:"not null;uniqueIndex:idx_section_seat_position" json:"sectionId"`
	Code        string     `gorm:"not null;size:16" json:"code"`
	RowIndex    int        `gorm:"not null;uniqueIndex:idx_section_seat_position" json:"rowIndex"`
	ColIndex    int        `gorm:"not null;uniqueIndex:idx_section_seat_position" json:"colIndex"`
	Status      SeatStatus `gorm:"not null;index" json:"status"`
	IsSalable   bool       `json:"isSalable"`
	Price       *float64   `json:"price"`
	LockedBy    string     `json:"lockedBy,omitempty"`
	LockedUntil *time.Time `json:"lockedUntil,omitempty"`
}

type CreateSeatsBatchInput struct {
	SectionId  uint       `json:"sectionId" validate:"required"`
	Price      *float64   `json:"price" validate:"omitempty,gte=0"`
	Status     SeatStatus `json:"status"`
	IsSalable  bool       `json:"isSalable"`
	Rows       int        `json:"rows" validate:"required,min=1,max=100"`
	Cols       int        `json:"cols" validate:"required,min=1,max=100"`
	StartRow   int        `json:"startRow" validate:"omitempty,min=1"`
	StartCol   int        `json:"startCol" validate:"omitempty,min=1"`
	CodePrefix string     `json:"codePrefix" validate:"max=8"`
	Overwrite  bool       `json:"overwrite"`
}

type UpdateSeatStatusInput struct {
	SeatIds []uint     `json:"seatIds" validate:"required,min=1"`
	Status  SeatStatus `json:"status" validate:"required"`
}

type LockSeatsInput struct {
	SeatIds []uint `json:"seatIds" validate:"required,min=1,max=10"`
	HeldBy  string `json:"heldBy" validate:"max=64"`
}

type ReleaseSeatsInput struct {
	SeatIds []uint `json:"seatIds" validate:"required,min=1"`
	HeldBy  string `json:"heldBy" validate:"required"`
}

type SeatLockResult struct {
	HeldBy    string    `json:"heldBy"`
	ExpiresAt time.Time `json:"expiresAt"`
	Seats     []Seat    `json:"seats"`
}
