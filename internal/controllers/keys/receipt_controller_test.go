package keys_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/api/keysapi"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/model"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/repo/sql"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/testutils"
	"github.com/Bostads-AB-Mimer/onecore-keys/utils/ptr"
)

func TestListReceipts(t *testing.T) {
	db, r, _ := startAPI(t)
	repository := sql.NewRepository(db)

	loan1 := testutils.NewKeyLoan(func(_ *model.KeyLoan) {})
	loan2 := testutils.NewKeyLoan(func(l *model.KeyLoan) {
		l.ReturnedAt = ptr.PointTo(time.Now().UTC())
	})
	receipt1 := testutils.NewReceipt(func(rec *model.Receipt) {
		rec.KeyLoanID = loan1.ID
	})
	receipt2 := testutils.NewReceipt(func(rec *model.Receipt) {
		rec.KeyLoanID = loan2.ID
		rec.ReceiptType = model.ReceiptTypeReturn
	})
	testutils.CreateTestEntities(t.Context(), t, repository, loan1, loan2, receipt1, receipt2)

	t.Run("Should code 200 on successful receipt list", func(t *testing.T) {
		w := testutils.MakeHTTPRequest(t, r, testutils.RequestOptions{
			Method:   http.MethodGet,
			Endpoint: "/receipts",
		})

		assert.Equal(t, http.StatusOK, w.Code)

		response := testutils.GetJSONBody[listEnvelope[keysapi.Receipt]](t, w)
		assert.Len(t, response.Content, 2)
	})

	t.Run("Should filter on loan", func(t *testing.T) {
		w := testutils.MakeHTTPRequest(t, r, testutils.RequestOptions{
			Method:   http.MethodGet,
			Endpoint: fmt.Sprintf("/receipts?keyLoanId=%s", loan1.ID),
		})

		assert.Equal(t, http.StatusOK, w.Code)

		response := testutils.GetJSONBody[listEnvelope[keysapi.Receipt]](t, w)
		assert.Len(t, response.Content, 1)
		assert.Equal(t, receipt1.ID, response.Content[0].ID)
	})

	t.Run("Should filter on receipt type", func(t *testing.T) {
		w := testutils.MakeHTTPRequest(t, r, testutils.RequestOptions{
			Method:   http.MethodGet,
			Endpoint: "/receipts?receiptType=RETURN",
		})

		assert.Equal(t, http.StatusOK, w.Code)

		response := testutils.GetJSONBody[listEnvelope[keysapi.Receipt]](t, w)
		assert.Len(t, response.Content, 1)
		assert.Equal(t, receipt2.ID, response.Content[0].ID)
	})

	t.Run("Should code 400 on invalid receipt type", func(t *testing.T) {
		w := testutils.MakeHTTPRequest(t, r, testutils.RequestOptions{
			Method:   http.MethodGet,
			Endpoint: "/receipts?receiptType=VOID",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Should code 400 on invalid loan id", func(t *testing.T) {
		w := testutils.MakeHTTPRequest(t, r, testutils.RequestOptions{
			Method:   http.MethodGet,
			Endpoint: "/receipts?keyLoanId=s",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCreateReceipt(t *testing.T) {
	db, r, store := startAPI(t)
	repository := sql.NewRepository(db)

	key := testutils.NewKey(func(_ *model.Key) {})
	activeLoan := testutils.NewKeyLoan(func(l *model.KeyLoan) {
		_ = l.SetKeyIDs([]uuid.UUID{key.ID})
	})
	returnedLoan := testutils.NewKeyLoan(func(l *model.KeyLoan) {
		l.ReturnedAt = ptr.PointTo(time.Now().UTC())
	})
	testutils.CreateTestEntities(t.Context(), t, repository, key, activeLoan, returnedLoan)

	t.Run("Should code 201 on successful loan receipt", func(t *testing.T) {
		body := keysapi.CreateReceiptRequest{
			KeyLoanID:   activeLoan.ID,
			ReceiptType: model.ReceiptTypeLoan,
		}

		w := testutils.MakeHTTPRequest(t, r, testutils.RequestOptions{
			Method:   http.MethodPost,
			Endpoint: "/receipts",
			Body:     testutils.WithJSON(t, body),
		})

		assert.Equal(t, http.StatusCreated, w.Code)

		response := testutils.GetJSONBody[contentEnvelope[keysapi.Receipt]](t, w)
		assert.Equal(t, activeLoan.ID, response.Content.KeyLoanID)
		assert.Equal(t, model.ReceiptTypeLoan, response.Content.ReceiptType)
		assert.Nil(t, response.Content.FileID)

		// The rendered document must be in storage by the time the row
		// exists.
		assert.Equal(t, 1, store.ObjectCount())
	})

	t.Run("Should code 201 on return receipt for returned loan", func(t *testing.T) {
		body := keysapi.CreateReceiptRequest{
			KeyLoanID:   returnedLoan.ID,
			ReceiptType: model.ReceiptTypeReturn,
		}

		w := testutils.MakeHTTPRequest(t, r, testutils.RequestOptions{
			Method:   http.MethodPost,
			Endpoint: "/receipts",
			Body:     testutils.WithJSON(t, body),
		})

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Should code 409 on return receipt for active loan", func(t *testing.T) {
		body := keysapi.CreateReceiptRequest{
			KeyLoanID:   activeLoan.ID,
			ReceiptType: model.ReceiptTypeReturn,
		}

		w := testutils.MakeHTTPRequest(t, r, testutils.RequestOptions{
			Method:   http.MethodPost,
			Endpoint: "/receipts",
			Body:     testutils.WithJSON(t, body),
		})

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Should code 400 on invalid receipt type", func(t *testing.T) {
		body := keysapi.CreateReceiptRequest{
			KeyLoanID:   activeLoan.ID,
			ReceiptType: "VOID",
		}

		w := testutils.MakeHTTPRequest(t, r, testutils.RequestOptions{
			Method:   http.MethodPost,
			Endpoint: "/receipts",
			Body:     testutils.WithJSON(t, body),
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Should code 404 on non existing loan", func(t *testing.T) {
		body := keysapi.CreateReceiptRequest{
			KeyLoanID:   uuid.New(),
			ReceiptType: model.ReceiptTypeLoan,
		}

		w := testutils.MakeHTTPRequest(t, r, testutils.RequestOptions{
			Method:   http.MethodPost,
			Endpoint: "/receipts",
			Body:     testutils.WithJSON(t, body),
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGetReceipt(t *testing.T) {
	db, r, _ := startAPI(t)
	repository := sql.NewRepository(db)

	t.Run("Should code 200 on successful get", func(t *testing.T) {
		loan := testutils.NewKeyLoan(func(_ *model.KeyLoan) {})
		receipt := testutils.NewReceipt(func(rec *model.Receipt) {
			rec.KeyLoanID = loan.ID
		})
		testutils.CreateTestEntities(t.Context(), t, repository, loan, receipt)

		w := testutils.MakeHTTPRequest(t, r, testutils.RequestOptions{
			Method:   http.MethodGet,
			Endpoint: fmt.Sprintf("/receipts/%s", receipt.ID),
		})

		assert.Equal(t, http.StatusOK, w.Code)

		response := testutils.GetJSONBody[contentEnvelope[keysapi.Receipt]](t, w)
		assert.NotNil(t, response.Content.KeyLoan)
	})

	t.Run("Should code 404 on non existing receipt", func(t *testing.T) {
		w := testutils.MakeHTTPRequest(t, r, testutils.RequestOptions{
			Method:   http.MethodGet,
			Endpoint: fmt.Sprintf("/receipts/%s", uuid.New()),
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGetReceiptDocument(t *testing.T) {
	db, r, _ := startAPI(t)
	repository := sql.NewRepository(db)

	loan := testutils.NewKeyLoan(func(_ *model.KeyLoan) {})
	testutils.CreateTestEntities(t.Context(), t, repository, loan)

	t.Run("Should code 200 with the rendered document", func(t *testing.T) {
		body := keysapi.CreateReceiptRequest{
			KeyLoanID:   loan.ID,
			ReceiptType: model.ReceiptTypeLoan,
		}

		w := testutils.MakeHTTPRequest(t, r, testutils.RequestOptions{
			Method:   http.MethodPost,
			Endpoint: "/receipts",
			Body:     testutils.WithJSON(t, body),
		})
		require.Equal(t, http.StatusCreated, w.Code)

		created := testutils.GetJSONBody[contentEnvelope[keysapi.Receipt]](t, w)

		w = testutils.MakeHTTPRequest(t, r, testutils.RequestOptions{
			Method:   http.MethodGet,
			Endpoint: fmt.Sprintf("/receipts/%s/document", created.Content.ID),
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), ".pdf")
		assert.Positive(t, w.Body.Len())
	})

	t.Run("Should code 404 on missing document", func(t *testing.T) {
		receipt := testutils.NewReceipt(func(rec *model.Receipt) {
			rec.KeyLoanID = loan.ID
		})
		testutils.CreateTestEntities(t.Context(), t, repository, receipt)

		w := testutils.MakeHTTPRequest(t, r, testutils.RequestOptions{
			Method:   http.MethodGet,
			Endpoint: fmt.Sprintf("/receipts/%s/document", receipt.ID),
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Should code 404 on non existing receipt", func(t *testing.T) {
		w := testutils.MakeHTTPRequest(t, r, testutils.RequestOptions{
			Method:   http.MethodGet,
			Endpoint: fmt.Sprintf("/receipts/%s/document", uuid.New()),
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAttachReceiptScan(t *testing.T) {
	db, r, store := startAPI(t)
	repository := sql.NewRepository(db)

	loan := testutils.NewKeyLoan(func(_ *model.KeyLoan) {})
	receipt := testutils.NewReceipt(func(rec *model.Receipt) {
		rec.KeyLoanID = loan.ID
	})
	testutils.CreateTestEntities(t.Context(), t, repository, loan, receipt)

	t.Run("Should code 200 on successful scan upload", func(t *testing.T) {
		w := testutils.MakeHTTPRequest(t, r, testutils.RequestOptions{
			Method:   http.MethodPost,
			Endpoint: fmt.Sprintf("/receipts/%s/scan", receipt.ID),
			Body:     testutils.WithString(t, "fake jpeg bytes"),
			Headers:  map[string]string{"Content-Type": "image/jpeg"},
		})

		assert.Equal(t, http.StatusOK, w.Code)

		response := testutils.GetJSONBody[contentEnvelope[keysapi.Receipt]](t, w)
		require.NotNil(t, response.Content.FileID)
		assert.Equal(t, fmt.Sprintf("receipts/%s-scan.jpg", receipt.ID), *response.Content.FileID)
		assert.Equal(t, 1, store.ObjectCount())
	})

	t.Run("Should serve the scan instead of the original", func(t *testing.T) {
		w := testutils.MakeHTTPRequest(t, r, testutils.RequestOptions{
			Method:   http.MethodGet,
			Endpoint: fmt.Sprintf("/receipts/%s/document", receipt.ID),
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
		assert.Equal(t, "fake jpeg bytes", w.Body.String())
	})

	t.Run("Should code 400 on empty body", func(t *testing.T) {
		w := testutils.MakeHTTPRequest(t, r, testutils.RequestOptions{
			Method:   http.MethodPost,
			Endpoint: fmt.Sprintf("/receipts/%s/scan", receipt.ID),
			Body:     testutils.WithString(t, ""),
			Headers:  map[string]string{"Content-Type": "image/jpeg"},
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Should code 404 on non existing receipt", func(t *testing.T) {
		w := testutils.MakeHTTPRequest(t, r, testutils.RequestOptions{
			Method:   http.MethodPost,
			Endpoint: fmt.Sprintf("/receipts/%s/scan", uuid.New()),
			Body:     testutils.WithString(t, "fake jpeg bytes"),
			Headers:  map[string]string{"Content-Type": "image/jpeg"},
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
