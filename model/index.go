package model

import "time"

type TokenClaim struct {
	AccountId uint   `json:"accountId"`
	Username  string `json:"username"`
}

type DTO struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	DeletedAt time.Time `json:"deletedAt,omitempty"`
}

func (d DTO) GetID() uint {
	return d.ID
}
