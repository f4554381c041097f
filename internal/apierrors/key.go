package apierrors

import (
	"net/http"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/errs"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/manager"
)

var key = []errs.Mapping[*APIError]{
	{
		Internal: []error{manager.ErrKeyNameRequired},
		Exposed: &APIError{
			Code:    MissingProperty,
			Message: "Field is missing: keyName",
			Status:  http.StatusBadRequest,
		},
	},
	{
		Internal: []error{manager.ErrInvalidKeyType},
		Exposed: &APIError{
			Code:    "INVALID_KEY_TYPE",
			Message: "Key type must be one of LGH, PB, FS, HN",
			Status:  http.StatusBadRequest,
		},
	},
	{
		Internal: []error{manager.ErrKeyNotFound},
		Exposed: &APIError{
			Code:    "KEY_NOT_FOUND",
			Message: "Key not found",
			Status:  http.StatusNotFound,
		},
	},
	{
		Internal: []error{manager.ErrKeySystemNotFound},
		Exposed: &APIError{
			Code:    "KEY_SYSTEM_NOT_FOUND",
			Message: "Key system not found",
			Status:  http.StatusNotFound,
		},
	},
	{
		Internal: []error{manager.ErrKeyDisposed},
		Exposed: &APIError{
			Code:    "KEY_DISPOSED",
			Message: "Key is disposed",
			Status:  http.StatusConflict,
		},
	},
	{
		Internal: []error{manager.ErrKeyInActiveLoan},
		Exposed: &APIError{
			Code:    "KEY_IN_ACTIVE_LOAN",
			Message: "Key is part of an active loan",
			Status:  http.StatusConflict,
		},
	},
	{
		Internal: []error{manager.ErrListKeysDB},
		Exposed: &APIError{
			Code:    "QUERY_KEY_LIST",
			Message: "Failed to query key list",
			Status:  http.StatusInternalServerError,
		},
	},
	{
		Internal: []error{manager.ErrGetKeyDB},
		Exposed: &APIError{
			Code:    "GET_KEY",
			Message: "Failed to get key",
			Status:  http.StatusInternalServerError,
		},
	},
	{
		Internal: []error{manager.ErrCreateKeyDB},
		Exposed: &APIError{
			Code:    "CREATE_KEY",
			Message: "Failed to create key",
			Status:  http.StatusInternalServerError,
		},
	},
	{
		Internal: []error{manager.ErrUpdateKeyDB},
		Exposed: &APIError{
			Code:    "UPDATE_KEY",
			Message: "Failed to update key",
			Status:  http.StatusInternalServerError,
		},
	},
	{
		Internal: []error{manager.ErrDeleteKeysDB},
		Exposed: &APIError{
			Code:    "DELETE_KEYS",
			Message: "Failed to delete keys",
			Status:  http.StatusInternalServerError,
		},
	},
}
