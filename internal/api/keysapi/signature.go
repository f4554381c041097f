package keysapi

import (
	"time"

	"github.com/google/uuid"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/model"
	"github.com/Bostads-AB-Mimer/onecore-keys/utils/sanitise"
)

// Signature is the wire form of an on-screen signature captured for a
// receipt.
type Signature struct {
	ID        uuid.UUID `json:"id"`
	ReceiptID uuid.UUID `json:"receiptId"`
	SignedBy  string    `json:"signedBy"`
	ImageData string    `json:"imageData"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func SignatureToAPI(sig *model.Signature) Signature {
	return Signature{
		ID:        sig.ID,
		ReceiptID: sig.ReceiptID,
		SignedBy:  sig.SignedBy,
		ImageData: sig.ImageData,
		CreatedAt: sig.CreatedAt,
		UpdatedAt: sig.UpdatedAt,
	}
}

func SignaturesToAPI(sigs []*model.Signature) []Signature {
	out := make([]Signature, len(sigs))
	for i, sig := range sigs {
		out[i] = SignatureToAPI(sig)
	}

	return out
}

// CreateSignatureRequest carries a captured signature. ImageData holds the
// base64 image payload and is excluded from markup stripping.
type CreateSignatureRequest struct {
	ReceiptID uuid.UUID `json:"receiptId"`
	SignedBy  string    `json:"signedBy"`
	ImageData string    `json:"imageData" sanitise:"false"`
}

func (r *CreateSignatureRequest) ToModel() (*model.Signature, error) {
	_, err := sanitise.Stringlikes(r)
	if err != nil {
		return nil, err
	}

	return &model.Signature{
		ReceiptID: r.ReceiptID,
		SignedBy:  r.SignedBy,
		ImageData: r.ImageData,
	}, nil
}
