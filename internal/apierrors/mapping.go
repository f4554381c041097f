package apierrors

import (
	"slices"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/errs"
)

// APIError is the exposed form of an internal error chain. Only Message
// reaches the client body; Code and Status drive logging and the response
// status line.
type APIError struct {
	Code    string
	Message string
	Status  int
	Context *map[string]any
}

func (e *APIError) SetContext(context *map[string]any) {
	e.Context = context
}

func (e *APIError) DefaultError() *APIError {
	return InternalServerError()
}

var APIErrorMapper = errs.NewMapper(slices.Concat(
	key,
	bundle,
	loan,
	event,
	card,
	receipt,
	signature,
	activity,
	defaultMapper,
), nil)
