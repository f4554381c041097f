package model

import (
	"time"

	"github.com/google/uuid"
)

// KeyType enumerates the key type codes used by the lock schema of the
// property system.
type KeyType string

const (
	KeyTypeLGH KeyType = "LGH" // apartment
	KeyTypePB  KeyType = "PB"  // postbox
	KeyTypeFS  KeyType = "FS"  // facility/shared space
	KeyTypeHN  KeyType = "HN"  // main entrance
)

func (t KeyType) Valid() bool {
	switch t {
	case KeyTypeLGH, KeyTypePB, KeyTypeFS, KeyTypeHN:
		return true
	}

	return false
}

// Key represents a physical key in the registry.
type Key struct {
	Timestamps

	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	KeyName           string     `gorm:"type:varchar(255);not null"`
	KeyType           KeyType    `gorm:"type:varchar(10);not null"`
	KeySequenceNumber int        `gorm:"not null;default:0"`
	FlexNumber        int        `gorm:"not null;default:0"`
	RentalObjectCode  string     `gorm:"type:varchar(50);index"`
	KeySystemID       *uuid.UUID `gorm:"type:uuid;index"`
	KeySystem         *KeySystem `gorm:"foreignKey:KeySystemID"`
	Disposed          bool       `gorm:"not null;default:false"`
	DisposedAt        *time.Time
}

// TableName returns the table name for Key
func (Key) TableName() string {
	return "keys"
}
