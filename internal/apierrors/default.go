package apierrors

import (
	"net/http"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/errs"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/repo"
)

var defaultMapper = []errs.Mapping[*APIError]{
	{
		Internal: []error{repo.ErrUniqueConstraint},
		Exposed: &APIError{
			Code:    UniqueError,
			Message: "Resource with such ID already exists",
			Status:  http.StatusConflict,
		},
	},
	{
		Internal: []error{repo.ErrNotFound},
		Exposed: &APIError{
			Code:    ResourceNotFound,
			Message: "The requested resource was not found",
			Status:  http.StatusNotFound,
		},
	},
	{
		Internal: []error{repo.ErrLookupFailed},
		Exposed: &APIError{
			Code:    "GET_RESOURCE",
			Message: "Failed to read the requested resource",
			Status:  http.StatusInternalServerError,
		},
	},
}
