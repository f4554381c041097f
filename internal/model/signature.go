package model

import (
	"github.com/google/uuid"
)

// Signature holds a captured signature image for a receipt, stored as a
// base64 PNG payload.
type Signature struct {
	Timestamps

	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReceiptID uuid.UUID `gorm:"type:uuid;not null;index"`
	Receipt   *Receipt  `gorm:"foreignKey:ReceiptID"`
	SignedBy  string    `gorm:"type:varchar(255);not null"`
	ImageData string    `gorm:"type:text;not null"`
}

func (Signature) TableName() string {
	return "signatures"
}
