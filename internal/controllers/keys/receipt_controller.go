package keys

import (
	"io"
	"net/http"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/api/keysapi"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/api/write"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/apierrors"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/manager"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/model"
)

// Signed scans are photographed documents, so the cap is well above the
// JSON body limit.
const maxUploadSize = 10 << 20

// ListReceipts handles listing receipts with optional filters on loan and
// receipt type
func (c *APIController) ListReceipts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	pagination, ok := parsePagination(w, r)
	if !ok {
		return
	}

	keyLoanID, ok := queryUUID(w, r, "keyLoanId")
	if !ok {
		return
	}

	filter := manager.ReceiptSearchFilter{
		KeyLoanID:   keyLoanID,
		ReceiptType: model.ReceiptType(r.URL.Query().Get("receiptType")),
	}

	receipts, total, err := c.Manager.Receipts.ListReceipts(ctx, filter, pagination)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	apiReceipts, err := keysapi.ReceiptsToAPI(receipts)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	write.List(ctx, w, r, apiReceipts, total, pagination)
}

// CreateReceipt handles generating a receipt document for a loan. The PDF
// is rendered and stored before the row is returned.
func (c *APIController) CreateReceipt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := decodeBody[keysapi.CreateReceiptRequest](w, r)
	if !ok {
		return
	}

	created, err := c.Manager.Receipts.CreateReceipt(ctx, req.KeyLoanID, req.ReceiptType)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	apiReceipt, err := keysapi.ReceiptToAPI(created)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	write.JSON(ctx, w, http.StatusCreated, apiReceipt)
}

// GetReceipt handles retrieving a receipt by its ID
func (c *APIController) GetReceipt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	receipt, err := c.Manager.Receipts.GetReceipt(ctx, id)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	apiReceipt, err := keysapi.ReceiptToAPI(receipt)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	write.JSON(ctx, w, http.StatusOK, apiReceipt)
}

// GetReceiptDocument streams the stored receipt document. The signed scan
// takes precedence over the generated PDF once attached.
func (c *APIController) GetReceiptDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	reader, name, err := c.Manager.Receipts.GetDocument(ctx, id)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}
	defer reader.Close()

	streamAttachment(ctx, w, reader, name)
}

// AttachReceiptScan handles uploading the signed scan of a receipt. The
// body is the raw document, typed by the Content-Type header.
func (c *APIController) AttachReceiptScan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	content, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadSize))
	if err != nil {
		write.ErrorResponse(ctx, w, apierrors.BadParamsError("Could not read request body"))

		return
	}

	if len(content) == 0 {
		write.ErrorResponse(ctx, w, apierrors.BadParamsError("Empty request body"))

		return
	}

	receipt, err := c.Manager.Receipts.AttachScan(ctx, id, content, r.Header.Get("Content-Type"))
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	apiReceipt, err := keysapi.ReceiptToAPI(receipt)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	write.JSON(ctx, w, http.StatusOK, apiReceipt)
}
