package keys

import (
	"net/http"
	"time"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/api/keysapi"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/api/write"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/apierrors"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/manager"
)

// ListKeyLoans handles listing loans with optional filters on borrower,
// loan type, loaned key and active state.
func (c *APIController) ListKeyLoans(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	pagination, ok := parsePagination(w, r)
	if !ok {
		return
	}

	active, ok := queryBool(w, r, "active")
	if !ok {
		return
	}

	keyID, ok := queryUUID(w, r, "keyId")
	if !ok {
		return
	}

	filter := manager.LoanSearchFilter{
		Active:   active,
		Contact:  r.URL.Query().Get("contact"),
		KeyID:    keyID,
		LoanType: r.URL.Query().Get("loanType"),
	}

	loans, total, err := c.Manager.Loans.ListLoans(ctx, filter, pagination)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	apiLoans, err := keysapi.KeyLoansToAPI(loans)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	write.List(ctx, w, r, apiLoans, total, pagination)
}

// CreateKeyLoan handles lending out a set of keys to a contact
func (c *APIController) CreateKeyLoan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := decodeBody[keysapi.CreateKeyLoanRequest](w, r)
	if !ok {
		return
	}

	loan, keyIDs, err := req.ToModel()
	if err != nil {
		write.ErrorResponse(ctx, w, apierrors.BadParamsError("Invalid request body"))

		return
	}

	created, err := c.Manager.Loans.CreateLoan(ctx, loan, keyIDs)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	apiLoan, err := keysapi.KeyLoanToAPI(created)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	write.JSON(ctx, w, http.StatusCreated, apiLoan)
}

// GetKeyLoan handles retrieving a loan by its ID
func (c *APIController) GetKeyLoan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	loan, err := c.Manager.Loans.GetLoan(ctx, id)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	apiLoan, err := keysapi.KeyLoanToAPI(loan)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	write.JSON(ctx, w, http.StatusOK, apiLoan)
}

// PatchKeyLoan handles updating the mutable fields of an active loan
func (c *APIController) PatchKeyLoan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	req, ok := decodeBody[keysapi.PatchKeyLoanRequest](w, r)
	if !ok {
		return
	}

	patch, err := req.ToPatch()
	if err != nil {
		write.ErrorResponse(ctx, w, apierrors.BadParamsError("Invalid request body"))

		return
	}

	loan, err := c.Manager.Loans.PatchLoan(ctx, id, patch)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	apiLoan, err := keysapi.KeyLoanToAPI(loan)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	write.JSON(ctx, w, http.StatusOK, apiLoan)
}

// ReturnKeyLoan handles closing out a loan. The request body is optional
// and may carry the date from which the keys are available to the next
// tenant.
func (c *APIController) ReturnKeyLoan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var availableFrom *time.Time

	if r.ContentLength != 0 {
		req, ok := decodeBody[keysapi.ReturnKeyLoanRequest](w, r)
		if !ok {
			return
		}

		availableFrom = req.AvailableToNextTenantFrom
	}

	loan, err := c.Manager.Loans.ReturnLoan(ctx, id, availableFrom)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	apiLoan, err := keysapi.KeyLoanToAPI(loan)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	write.JSON(ctx, w, http.StatusOK, apiLoan)
}

// TransferKeyLoan handles returning a loan and immediately opening a new
// one for the same keys under a different borrower
func (c *APIController) TransferKeyLoan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	req, ok := decodeBody[keysapi.TransferKeyLoanRequest](w, r)
	if !ok {
		return
	}

	transfer, err := req.ToTransfer()
	if err != nil {
		write.ErrorResponse(ctx, w, apierrors.BadParamsError("Invalid request body"))

		return
	}

	loan, err := c.Manager.Loans.TransferLoan(ctx, id, transfer)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	apiLoan, err := keysapi.KeyLoanToAPI(loan)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}

	write.JSON(ctx, w, http.StatusCreated, apiLoan)
}
