package model

import (
	"github.com/google/uuid"
)

// KeySystem represents a lock system a key can be cut for.
type KeySystem struct {
	Timestamps

	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	SystemCode  string    `gorm:"type:varchar(50);not null;unique"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Type        string    `gorm:"type:varchar(50)"`
	Description string    `gorm:"type:text"`
}

func (KeySystem) TableName() string {
	return "key_systems"
}
