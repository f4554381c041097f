package keys

import (
	"net/http"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/api/keysapi"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/api/write"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/apierrors"
)

// CreateSignature handles storing a captured signature against a receipt
func (c *APIController) CreateSignature(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := decodeBody[keysapi.CreateSignatureRequest](w, r)
	if !ok {
		return
	}

	signature, err := req.ToModel()
	if err != nil {
		write.ErrorResponse(ctx, w, apierrors.BadParamsError("Invalid request body"))

		return
	}

	created, err := c.Manager.Signatures.CreateSignature(ctx, signature)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	write.JSON(ctx, w, http.StatusCreated, keysapi.SignatureToAPI(created))
}

// ListSignatures handles listing the signatures captured for a receipt.
// The receiptId query parameter is required.
func (c *APIController) ListSignatures(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	pagination, ok := parsePagination(w, r)
	if !ok {
		return
	}

	receiptID, ok := queryUUID(w, r, "receiptId")
	if !ok {
		return
	}

	if receiptID == nil {
		write.ErrorResponse(ctx, w, apierrors.BadParamsError("receiptId is required"))

		return
	}

	signatures, total, err := c.Manager.Signatures.ListSignatures(ctx, *receiptID, pagination)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	write.List(ctx, w, r, keysapi.SignaturesToAPI(signatures), total, pagination)
}
