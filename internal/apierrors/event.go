package apierrors

import (
	"net/http"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/errs"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/manager"
)

var event = []errs.Mapping[*APIError]{
	{
		Internal: []error{manager.ErrInvalidEventType},
		Exposed: &APIError{
			Code:    "INVALID_EVENT_TYPE",
			Message: "Event type must be one of ORDER_KEY, ORDER_CYLINDER, REPAIR",
			Status:  http.StatusBadRequest,
		},
	},
	{
		Internal: []error{manager.ErrInvalidEventStatus},
		Exposed: &APIError{
			Code:    "INVALID_EVENT_STATUS",
			Message: "Event status must be one of ORDERED, COMPLETED, CANCELLED",
			Status:  http.StatusBadRequest,
		},
	},
	{
		Internal: []error{manager.ErrEventNotFound},
		Exposed: &APIError{
			Code:    "EVENT_NOT_FOUND",
			Message: "Key event not found",
			Status:  http.StatusNotFound,
		},
	},
	{
		Internal: []error{manager.ErrEventCannotTransition},
		Exposed: &APIError{
			Code:    "INVALID_TRANSITION",
			Message: "Key event cannot transition to the requested status",
			Status:  http.StatusConflict,
		},
	},
	{
		Internal: []error{manager.ErrListEventsDB},
		Exposed: &APIError{
			Code:    "QUERY_EVENT_LIST",
			Message: "Failed to query key event list",
			Status:  http.StatusInternalServerError,
		},
	},
	{
		Internal: []error{manager.ErrGetEventDB},
		Exposed: &APIError{
			Code:    "GET_EVENT",
			Message: "Failed to get key event",
			Status:  http.StatusInternalServerError,
		},
	},
	{
		Internal: []error{manager.ErrCreateEventDB},
		Exposed: &APIError{
			Code:    "CREATE_EVENT",
			Message: "Failed to create key event",
			Status:  http.StatusInternalServerError,
		},
	},
	{
		Internal: []error{manager.ErrUpdateEventDB},
		Exposed: &APIError{
			Code:    "UPDATE_EVENT",
			Message: "Failed to update key event",
			Status:  http.StatusInternalServerError,
		},
	},
}
