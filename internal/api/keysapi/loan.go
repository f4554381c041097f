package keysapi

import (
	"time"

	"github.com/google/uuid"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/manager"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/model"
	"github.com/Bostads-AB-Mimer/onecore-keys/utils/sanitise"
)

// KeyLoan is the wire form of a loan. Keys carries the loaned key ids.
type KeyLoan struct {
	ID                        uuid.UUID      `json:"id"`
	Keys                      []uuid.UUID    `json:"keys"`
	LoanType                  model.LoanType `json:"loanType"`
	Contact                   string         `json:"contact"`
	Contact2                  *string        `json:"contact2,omitempty"`
	ContactPerson             *string        `json:"contactPerson,omitempty"`
	Description               *string        `json:"description,omitempty"`
	LoanedAt                  time.Time      `json:"loanedAt"`
	ReturnedAt                *time.Time     `json:"returnedAt,omitempty"`
	AvailableToNextTenantFrom *time.Time     `json:"availableToNextTenantFrom,omitempty"`
	CreatedAt                 time.Time      `json:"createdAt"`
	UpdatedAt                 time.Time      `json:"updatedAt"`
}

func KeyLoanToAPI(loan *model.KeyLoan) (KeyLoan, error) {
	ids, err := loan.KeyIDs()
	if err != nil {
		return KeyLoan{}, err
	}

	if ids == nil {
		ids = []uuid.UUID{}
	}

	return KeyLoan{
		ID:                        loan.ID,
		Keys:                      ids,
		LoanType:                  loan.LoanType,
		Contact:                   loan.Contact,
		Contact2:                  loan.Contact2,
		ContactPerson:             loan.ContactPerson,
		Description:               loan.Description,
		LoanedAt:                  loan.LoanedAt,
		ReturnedAt:                loan.ReturnedAt,
		AvailableToNextTenantFrom: loan.AvailableToNextTenantFrom,
		CreatedAt:                 loan.CreatedAt,
		UpdatedAt:                 loan.UpdatedAt,
	}, nil
}

func KeyLoansToAPI(loans []*model.KeyLoan) ([]KeyLoan, error) {
	out := make([]KeyLoan, len(loans))

	for i, loan := range loans {
		apiLoan, err := KeyLoanToAPI(loan)
		if err != nil {
			return nil, err
		}

		out[i] = apiLoan
	}

	return out, nil
}

type CreateKeyLoanRequest struct {
	Keys          []uuid.UUID    `json:"keys"`
	LoanType      model.LoanType `json:"loanType"`
	Contact       string         `json:"contact"`
	Contact2      *string        `json:"contact2"`
	ContactPerson *string        `json:"contactPerson"`
	Description   *string        `json:"description"`
}

func (r *CreateKeyLoanRequest) ToModel() (*model.KeyLoan, []uuid.UUID, error) {
	_, err := sanitise.Stringlikes(r)
	if err != nil {
		return nil, nil, err
	}

	return &model.KeyLoan{
		LoanType:      r.LoanType,
		Contact:       r.Contact,
		Contact2:      r.Contact2,
		ContactPerson: r.ContactPerson,
		Description:   r.Description,
	}, r.Keys, nil
}

type PatchKeyLoanRequest struct {
	Contact2                  *string    `json:"contact2"`
	ContactPerson             *string    `json:"contactPerson"`
	Description               *string    `json:"description"`
	AvailableToNextTenantFrom *time.Time `json:"availableToNextTenantFrom"`
}

func (r *PatchKeyLoanRequest) ToPatch() (manager.LoanPatch, error) {
	_, err := sanitise.Stringlikes(r)
	if err != nil {
		return manager.LoanPatch{}, err
	}

	return manager.LoanPatch{
		Contact2:                  r.Contact2,
		ContactPerson:             r.ContactPerson,
		Description:               r.Description,
		AvailableToNextTenantFrom: r.AvailableToNextTenantFrom,
	}, nil
}

type ReturnKeyLoanRequest struct {
	AvailableToNextTenantFrom *time.Time `json:"availableToNextTenantFrom"`
}

type TransferKeyLoanRequest struct {
	LoanType      model.LoanType `json:"loanType"`
	Contact       string         `json:"contact"`
	Contact2      *string        `json:"contact2"`
	ContactPerson *string        `json:"contactPerson"`
	Description   *string        `json:"description"`
}

func (r *TransferKeyLoanRequest) ToTransfer() (manager.TransferRequest, error) {
	_, err := sanitise.Stringlikes(r)
	if err != nil {
		return manager.TransferRequest{}, err
	}

	return manager.TransferRequest{
		LoanType:      r.LoanType,
		Contact:       r.Contact,
		Contact2:      r.Contact2,
		ContactPerson: r.ContactPerson,
		Description:   r.Description,
	}, nil
}
