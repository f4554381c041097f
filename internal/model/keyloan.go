package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type LoanType string

const (
	LoanTypeTenant      LoanType = "TENANT"
	LoanTypeMaintenance LoanType = "MAINTENANCE"
)

func (t LoanType) Valid() bool {
	switch t {
	case LoanTypeTenant, LoanTypeMaintenance:
		return true
	}

	return false
}

// KeyLoan records a set of keys handed out to a contact. A loan is active
// until ReturnedAt is set; a key may appear in at most one active loan.
type KeyLoan struct {
	Timestamps

	ID                        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Keys                      json.RawMessage `gorm:"type:jsonb"`
	LoanType                  LoanType        `gorm:"type:varchar(20);not null"`
	Contact                   string          `gorm:"type:varchar(255);not null"`
	Contact2                  *string         `gorm:"type:varchar(255)"`
	ContactPerson             *string         `gorm:"type:varchar(255)"`
	Description               *string         `gorm:"type:text"`
	LoanedAt                  time.Time       `gorm:"not null"`
	ReturnedAt                *time.Time      `gorm:"index"`
	AvailableToNextTenantFrom *time.Time
}

func (KeyLoan) TableName() string {
	return "key_loans"
}

func (l *KeyLoan) KeyIDs() ([]uuid.UUID, error) {
	return decodeKeyIDs(l.Keys)
}

func (l *KeyLoan) SetKeyIDs(ids []uuid.UUID) error {
	raw, err := encodeKeyIDs(ids)
	if err != nil {
		return err
	}

	l.Keys = raw

	return nil
}

func (l *KeyLoan) Active() bool {
	return l.ReturnedAt == nil
}
