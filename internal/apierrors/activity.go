package apierrors

import (
	"net/http"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/errs"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/manager"
)

var activity = []errs.Mapping[*APIError]{
	{
		Internal: []error{manager.ErrListLogEntriesDB},
		Exposed: &APIError{
			Code:    "QUERY_LOG_LIST",
			Message: "Failed to query log entries",
			Status:  http.StatusInternalServerError,
		},
	},
	{
		Internal: []error{manager.ErrCreateLogEntryDB},
		Exposed: &APIError{
			Code:    "CREATE_LOG_ENTRY",
			Message: "Failed to write log entry",
			Status:  http.StatusInternalServerError,
		},
	},
}
