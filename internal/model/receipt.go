package model

import (
	"github.com/google/uuid"
)

type ReceiptType string

const (
	ReceiptTypeLoan   ReceiptType = "LOAN"
	ReceiptTypeReturn ReceiptType = "RETURN"
)

func (t ReceiptType) Valid() bool {
	switch t {
	case ReceiptTypeLoan, ReceiptTypeReturn:
		return true
	}

	return false
}

// Receipt is the stored record of a loan or return document. FileID points
// at the signed scan once one has been uploaded.
type Receipt struct {
	Timestamps

	ID          uuid.UUID   `gorm:"type:uuid;primaryKey"`
	KeyLoanID   uuid.UUID   `gorm:"type:uuid;not null;index"`
	KeyLoan     *KeyLoan    `gorm:"foreignKey:KeyLoanID"`
	ReceiptType ReceiptType `gorm:"type:varchar(10);not null"`
	FileID      *string     `gorm:"type:varchar(512)"`
}

func (Receipt) TableName() string {
	return "receipts"
}

// DocumentName is the deterministic object name the rendered PDF is stored
// under.
func (r *Receipt) DocumentName() string {
	return "receipts/" + r.ID.String() + ".pdf"
}
