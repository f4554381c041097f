package apierrors

import (
	"net/http"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/errs"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/manager"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/repo"
)

var card = []errs.Mapping[*APIError]{
	{
		Internal: []error{manager.ErrCardNumberRequired},
		Exposed: &APIError{
			Code:    MissingProperty,
			Message: "Field is missing: cardNumber",
			Status:  http.StatusBadRequest,
		},
	},
	{
		Internal: []error{manager.ErrCardNotFound},
		Exposed: &APIError{
			Code:    "CARD_NOT_FOUND",
			Message: "Card not found",
			Status:  http.StatusNotFound,
		},
	},
	{
		Internal: []error{manager.ErrCreateCardDB, repo.ErrUniqueConstraint},
		Exposed: &APIError{
			Code:    "CARD_NUMBER_EXISTS",
			Message: "A card with this number already exists",
			Status:  http.StatusConflict,
		},
	},
	{
		Internal: []error{manager.ErrListCardsDB},
		Exposed: &APIError{
			Code:    "QUERY_CARD_LIST",
			Message: "Failed to query card list",
			Status:  http.StatusInternalServerError,
		},
	},
	{
		Internal: []error{manager.ErrGetCardDB},
		Exposed: &APIError{
			Code:    "GET_CARD",
			Message: "Failed to get card",
			Status:  http.StatusInternalServerError,
		},
	},
	{
		Internal: []error{manager.ErrCreateCardDB},
		Exposed: &APIError{
			Code:    "CREATE_CARD",
			Message: "Failed to create card",
			Status:  http.StatusInternalServerError,
		},
	},
	{
		Internal: []error{manager.ErrUpdateCardDB},
		Exposed: &APIError{
			Code:    "UPDATE_CARD",
			Message: "Failed to update card",
			Status:  http.StatusInternalServerError,
		},
	},
	{
		Internal: []error{manager.ErrDeleteCardDB},
		Exposed: &APIError{
			Code:    "DELETE_CARD",
			Message: "Failed to delete card",
			Status:  http.StatusInternalServerError,
		},
	},
}
