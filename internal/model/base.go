package model

import (
	"time"

	"gorm.io/gorm"
)

// Timestamps adds creation and update bookkeeping to a persisted model.
// The hooks keep both fields in UTC regardless of the session timezone.
type Timestamps struct {
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (ts *Timestamps) BeforeCreate(_ *gorm.DB) error {
	now := time.Now().UTC()

	if ts.CreatedAt.IsZero() {
		ts.CreatedAt = now
	}

	ts.UpdatedAt = now

	return nil
}

func (ts *Timestamps) BeforeUpdate(_ *gorm.DB) error {
	ts.UpdatedAt = time.Now().UTC()

	return nil
}
