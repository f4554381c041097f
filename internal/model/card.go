package model

import (
	"github.com/google/uuid"
)

// Card is an access card tracked alongside physical keys.
type Card struct {
	Timestamps

	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	CardNumber       string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	CardType         string    `gorm:"type:varchar(50)"`
	RentalObjectCode string    `gorm:"type:varchar(50);index"`
	HolderContact    *string   `gorm:"type:varchar(255)"`
	Disabled         bool      `gorm:"not null;default:false"`
}

func (Card) TableName() string {
	return "cards"
}
