package model

import (
	"github.com/google/uuid"
)

// KeyLogEntry is an append-only activity record written on every mutating
// key, loan and receipt action.
type KeyLogEntry struct {
	Timestamps

	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	KeyID     *uuid.UUID `gorm:"type:uuid;index"`
	KeyLoanID *uuid.UUID `gorm:"type:uuid;index"`
	Action    string     `gorm:"type:varchar(100);not null"`
	Actor     string     `gorm:"type:varchar(255);not null"`
	Message   string     `gorm:"type:text"`
}

func (KeyLogEntry) TableName() string {
	return "key_log_entries"
}
