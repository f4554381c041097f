package apierrors

import (
	"net/http"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/errs"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/manager"
)

var receipt = []errs.Mapping[*APIError]{
	{
		Internal: []error{manager.ErrInvalidReceiptType},
		Exposed: &APIError{
			Code:    "INVALID_RECEIPT_TYPE",
			Message: "Receipt type must be LOAN or RETURN",
			Status:  http.StatusBadRequest,
		},
	},
	{
		Internal: []error{manager.ErrReceiptNotFound},
		Exposed: &APIError{
			Code:    "RECEIPT_NOT_FOUND",
			Message: "Receipt not found",
			Status:  http.StatusNotFound,
		},
	},
	{
		Internal: []error{manager.ErrReceiptLoanNotReturned},
		Exposed: &APIError{
			Code:    "LOAN_NOT_RETURNED",
			Message: "Return receipt requires a returned loan",
			Status:  http.StatusConflict,
		},
	},
	{
		Internal: []error{manager.ErrReceiptDocumentMissing},
		Exposed: &APIError{
			Code:    "DOCUMENT_NOT_FOUND",
			Message: "Receipt document not found",
			Status:  http.StatusNotFound,
		},
	},
	{
		Internal: []error{manager.ErrRenderReceipt},
		Exposed: &APIError{
			Code:    "RENDER_RECEIPT",
			Message: "Failed to render receipt document",
			Status:  http.StatusInternalServerError,
		},
	},
	{
		Internal: []error{manager.ErrStoreReceiptDocument},
		Exposed: &APIError{
			Code:    "STORE_DOCUMENT",
			Message: "Failed to store receipt document",
			Status:  http.StatusInternalServerError,
		},
	},
	{
		Internal: []error{manager.ErrListReceiptsDB},
		Exposed: &APIError{
			Code:    "QUERY_RECEIPT_LIST",
			Message: "Failed to query receipt list",
			Status:  http.StatusInternalServerError,
		},
	},
	{
		Internal: []error{manager.ErrGetReceiptDB},
		Exposed: &APIError{
			Code:    "GET_RECEIPT",
			Message: "Failed to get receipt",
			Status:  http.StatusInternalServerError,
		},
	},
	{
		Internal: []error{manager.ErrCreateReceiptDB},
		Exposed: &APIError{
			Code:    "CREATE_RECEIPT",
			Message: "Failed to create receipt",
			Status:  http.StatusInternalServerError,
		},
	},
	{
		Internal: []error{manager.ErrUpdateReceiptDB},
		Exposed: &APIError{
			Code:    "UPDATE_RECEIPT",
			Message: "Failed to update receipt",
			Status:  http.StatusInternalServerError,
		},
	},
}
