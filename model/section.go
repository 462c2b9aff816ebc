package model

const (
	SectionInactive = 0
	SectionActive   = 1
)

type Section struct {
	DTO
	SeatMapId       uint              `gorm:"index;not null" json:"seatMapId"`
	Name            string            `gorm:"not null" validate:"required" json:"name"`
	IsStage         bool              `gorm:"not null;default:false" json:"isStage"`
	IsSalable       bool              `gorm:"not null" json:"isSalable"`
	IsReservingSeat bool              `json:"isReservingSeat"`
	Message         string            `json:"message"`
	TicketTypeId    *uint             `gorm:"index" json:"ticketTypeId"`
	Status          int               `gorm:"not null" json:"status"`
	Attribute       *SectionAttribute `gorm:"foreignKey:SectionId;constraint:OnDelete:CASCADE" json:"attribute"`
	Seats           []Seat            `gorm:"foreignKey:SectionId;constraint:OnDelete:CASCADE" json:"seats"`
	Elements        []MapElement      `gorm:"foreignKey:SectionId;constraint:OnDelete:CASCADE" json:"elements"`
}

type SectionAttribute struct {
	DTO
	SectionId uint    `gorm:"uniqueIndex;not null" json:"sectionId"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	ScaleX    float64 `json:"scaleX"`
	ScaleY    float64 `json:"scaleY"`
	Rotate    float64 `json:"rotate"`
	Fill      string  `gorm:"size:32" json:"fill"`
}

type CreateSectionInput struct {
	SeatMapId       uint   `json:"seatMapId" validate:"required"`
	Name            string `json:"name" validate:"required,max=255"`
	IsStage         bool   `json:"isStage"`
	IsSalable       bool   `json:"isSalable"`
	IsReservingSeat bool   `json:"isReservingSeat"`
	Message         string `json:"message" validate:"max=500"`
	TicketTypeId    *uint  `json:"ticketTypeId"`
	Status          *int   `json:"status" validate:"omitempty,oneof=0 1"`
}

// UpdateSectionInput là cập nhật từng phần. TicketTypeId=nil nghĩa là không đổi,
// muốn gỡ loại vé thì gửi ClearTicketType=true.
type UpdateSectionInput struct {
	Name            *string                `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	IsStage         *bool                  `json:"isStage,omitempty"`
	IsSalable       *bool                  `json:"isSalable,omitempty"`
	IsReservingSeat *bool                  `json:"isReservingSeat,omitempty"`
	Message         *string                `json:"message,omitempty" validate:"omitempty,max=500"`
	TicketTypeId    *uint                  `json:"ticketTypeId,omitempty"`
	ClearTicketType bool                   `json:"clearTicketType,omitempty"`
	Status          *int                   `json:"status,omitempty" validate:"omitempty,oneof=0 1"`
	Attribute       *SectionAttributeInput `json:"attribute,omitempty"`
}

type SectionAttributeInput struct {
	SectionId uint    `json:"sectionId"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width" validate:"gt=0"`
	Height    float64 `json:"height" validate:"gt=0"`
	ScaleX    float64 `json:"scaleX" validate:"gte=0"`
	ScaleY    float64 `json:"scaleY" validate:"gte=0"`
	Rotate    float64 `json:"rotate"`
	Fill      string  `json:"fill" validate:"max=32"`
}
