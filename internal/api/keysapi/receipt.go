package keysapi

import (
	"time"

	"github.com/google/uuid"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/model"
)

// Receipt is the wire form of a loan or return document record. FileID is
// set once a signed scan has been uploaded.
type Receipt struct {
	ID          uuid.UUID         `json:"id"`
	KeyLoanID   uuid.UUID         `json:"keyLoanId"`
	KeyLoan     *KeyLoan          `json:"keyLoan,omitempty"`
	ReceiptType model.ReceiptType `json:"receiptType"`
	FileID      *string           `json:"fileId,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func ReceiptToAPI(rec *model.Receipt) (Receipt, error) {
	out := Receipt{
		ID:          rec.ID,
		KeyLoanID:   rec.KeyLoanID,
		ReceiptType: rec.ReceiptType,
		FileID:      rec.FileID,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}

	if rec.KeyLoan != nil {
		loan, err := KeyLoanToAPI(rec.KeyLoan)
		if err != nil {
			return Receipt{}, err
		}

		out.KeyLoan = &loan
	}

	return out, nil
}

func ReceiptsToAPI(recs []*model.Receipt) ([]Receipt, error) {
	out := make([]Receipt, len(recs))

	for i, rec := range recs {
		apiReceipt, err := ReceiptToAPI(rec)
		if err != nil {
			return nil, err
		}

		out[i] = apiReceipt
	}

	return out, nil
}

type CreateReceiptRequest struct {
	KeyLoanID   uuid.UUID         `json:"keyLoanId"`
	ReceiptType model.ReceiptType `json:"receiptType"`
}
