package apierrors

import (
	"net/http"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/errs"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/manager"
)

var loan = []errs.Mapping[*APIError]{
	{
		Internal: []error{manager.ErrInvalidLoanType},
		Exposed: &APIError{
			Code:    "INVALID_LOAN_TYPE",
			Message: "Loan type must be TENANT or MAINTENANCE",
			Status:  http.StatusBadRequest,
		},
	},
	{
		Internal: []error{manager.ErrLoanContactRequired},
		Exposed: &APIError{
			Code:    MissingProperty,
			Message: "Field is missing: contact",
			Status:  http.StatusBadRequest,
		},
	},
	{
		Internal: []error{manager.ErrLoanKeysRequired},
		Exposed: &APIError{
			Code:    MissingProperty,
			Message: "Field is missing: keys",
			Status:  http.StatusBadRequest,
		},
	},
	{
		Internal: []error{manager.ErrLoanKeyNotFound},
		Exposed: &APIError{
			Code:    "KEY_NOT_FOUND",
			Message: "Loan references a key that does not exist",
			Status:  http.StatusNotFound,
		},
	},
	{
		Internal: []error{manager.ErrLoanNotFound},
		Exposed: &APIError{
			Code:    "LOAN_NOT_FOUND",
			Message: "Key loan not found",
			Status:  http.StatusNotFound,
		},
	},
	{
		Internal: []error{manager.ErrKeyAlreadyOnLoan},
		Exposed: &APIError{
			Code:    "KEY_ALREADY_ON_LOAN",
			Message: "Key is already out on an active loan",
			Status:  http.StatusConflict,
		},
	},
	{
		Internal: []error{manager.ErrLoanAlreadyReturned},
		Exposed: &APIError{
			Code:    "LOAN_ALREADY_RETURNED",
			Message: "Loan has already been returned",
			Status:  http.StatusConflict,
		},
	},
	{
		Internal: []error{manager.ErrLoanContactUnknown},
		Exposed: &APIError{
			Code:    "UNKNOWN_CONTACT",
			Message: "Contact is not known to the contacts service",
			Status:  http.StatusBadRequest,
		},
	},
	{
		Internal: []error{manager.ErrLoanNoActiveLease},
		Exposed: &APIError{
			Code:    "NO_ACTIVE_LEASE",
			Message: "Contact has no active lease",
			Status:  http.StatusConflict,
		},
	},
	{
		Internal: []error{manager.ErrContactLookupFailed},
		Exposed: &APIError{
			Code:    "CONTACT_LOOKUP_FAILED",
			Message: "Failed to look up contact",
			Status:  http.StatusInternalServerError,
		},
	},
	{
		Internal: []error{manager.ErrLeaseLookupFailed},
		Exposed: &APIError{
			Code:    "LEASE_LOOKUP_FAILED",
			Message: "Failed to look up leases",
			Status:  http.StatusInternalServerError,
		},
	},
	{
		Internal: []error{manager.ErrListLoansDB},
		Exposed: &APIError{
			Code:    "QUERY_LOAN_LIST",
			Message: "Failed to query key loan list",
			Status:  http.StatusInternalServerError,
		},
	},
	{
		Internal: []error{manager.ErrGetLoanDB},
		Exposed: &APIError{
			Code:    "GET_LOAN",
			Message: "Failed to get key loan",
			Status:  http.StatusInternalServerError,
		},
	},
	{
		Internal: []error{manager.ErrCreateLoanDB},
		Exposed: &APIError{
			Code:    "CREATE_LOAN",
			Message: "Failed to create key loan",
			Status:  http.StatusInternalServerError,
		},
	},
	{
		Internal: []error{manager.ErrUpdateLoanDB},
		Exposed: &APIError{
			Code:    "UPDATE_LOAN",
			Message: "Failed to update key loan",
			Status:  http.StatusInternalServerError,
		},
	},
}
