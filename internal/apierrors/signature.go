package apierrors

import (
	"net/http"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/errs"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/manager"
)

var signature = []errs.Mapping[*APIError]{
	{
		Internal: []error{manager.ErrSignatureSignerEmpty},
		Exposed: &APIError{
			Code:    MissingProperty,
			Message: "Field is missing: signedBy",
			Status:  http.StatusBadRequest,
		},
	},
	{
		Internal: []error{manager.ErrSignatureImageEmpty},
		Exposed: &APIError{
			Code:    MissingProperty,
			Message: "Field is missing: imageData",
			Status:  http.StatusBadRequest,
		},
	},
	{
		Internal: []error{manager.ErrListSignaturesDB},
		Exposed: &APIError{
			Code:    "QUERY_SIGNATURE_LIST",
			Message: "Failed to query signature list",
			Status:  http.StatusInternalServerError,
		},
	},
	{
		Internal: []error{manager.ErrCreateSignatureDB},
		Exposed: &APIError{
			Code:    "CREATE_SIGNATURE",
			Message: "Failed to create signature",
			Status:  http.StatusInternalServerError,
		},
	},
}
