package apierrors

import (
	"net/http"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/errs"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/manager"
)

var bundle = []errs.Mapping[*APIError]{
	{
		Internal: []error{manager.ErrBundleNameRequired},
		Exposed: &APIError{
			Code:    MissingProperty,
			Message: "Field is missing: name",
			Status:  http.StatusBadRequest,
		},
	},
	{
		Internal: []error{manager.ErrBundleNotFound},
		Exposed: &APIError{
			Code:    "BUNDLE_NOT_FOUND",
			Message: "Key bundle not found",
			Status:  http.StatusNotFound,
		},
	},
	{
		Internal: []error{manager.ErrBundleKeyNotFound},
		Exposed: &APIError{
			Code:    "KEY_NOT_FOUND",
			Message: "Bundle references a key that does not exist",
			Status:  http.StatusNotFound,
		},
	},
	{
		Internal: []error{manager.ErrListBundlesDB},
		Exposed: &APIError{
			Code:    "QUERY_BUNDLE_LIST",
			Message: "Failed to query key bundle list",
			Status:  http.StatusInternalServerError,
		},
	},
	{
		Internal: []error{manager.ErrGetBundleDB},
		Exposed: &APIError{
			Code:    "GET_BUNDLE",
			Message: "Failed to get key bundle",
			Status:  http.StatusInternalServerError,
		},
	},
	{
		Internal: []error{manager.ErrCreateBundleDB},
		Exposed: &APIError{
			Code:    "CREATE_BUNDLE",
			Message: "Failed to create key bundle",
			Status:  http.StatusInternalServerError,
		},
	},
	{
		Internal: []error{manager.ErrUpdateBundleDB},
		Exposed: &APIError{
			Code:    "UPDATE_BUNDLE",
			Message: "Failed to update key bundle",
			Status:  http.StatusInternalServerError,
		},
	},
	{
		Internal: []error{manager.ErrDeleteBundleDB},
		Exposed: &APIError{
			Code:    "DELETE_BUNDLE",
			Message: "Failed to delete key bundle",
			Status:  http.StatusInternalServerError,
		},
	},
}
