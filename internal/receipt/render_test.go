package receipt_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/model"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/receipt"
	"github.com/Bostads-AB-Mimer/onecore-keys/utils/ptr"
)

func testLoan(loanType model.LoanType) *model.KeyLoan {
	return &model.KeyLoan{
		ID:       uuid.New(),
		LoanType: loanType,
		Contact:  "Kim Andersson",
		LoanedAt: time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC),
	}
}

func testKeys() []*model.Key {
	return []*model.Key{
		{ID: uuid.New(), KeyName: "A-101-1", KeyType: model.KeyTypeLGH, KeySequenceNumber: 1, FlexNumber: 0},
		{ID: uuid.New(), KeyName: "A-101-2", KeyType: model.KeyTypeLGH, KeySequenceNumber: 2, FlexNumber: 1},
	}
}

func TestRenderLoanReceipt(t *testing.T) {
	renderer := receipt.NewRenderer()

	tests := []struct {
		name     string
		loanType model.LoanType
	}{
		{"tenant variant", model.LoanTypeTenant},
		{"maintenance variant", model.LoanTypeMaintenance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loan := testLoan(tt.loanType)
			loan.ContactPerson = ptr.PointTo("Kim Svensson")

			doc, err := renderer.Render(receipt.Data{
				Receipt: &model.Receipt{ID: uuid.New(), KeyLoanID: loan.ID, ReceiptType: model.ReceiptTypeLoan},
				Loan:    loan,
				Keys:    testKeys(),
			})
			require.NoError(t, err)
			require.NotEmpty(t, doc)
			assert.Equal(t, "%PDF", string(doc[:4]))
		})
	}
}

func TestRenderReturnReceipt(t *testing.T) {
	renderer := receipt.NewRenderer()

	loan := testLoan(model.LoanTypeTenant)
	returned := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	available := returned.Add(7 * 24 * time.Hour)
	loan.ReturnedAt = &returned
	loan.AvailableToNextTenantFrom = &available

	doc, err := renderer.Render(receipt.Data{
		Receipt: &model.Receipt{ID: uuid.New(), KeyLoanID: loan.ID, ReceiptType: model.ReceiptTypeReturn},
		Loan:    loan,
		Keys:    testKeys(),
	})
	require.NoError(t, err)
	require.NotEmpty(t, doc)
	assert.Equal(t, "%PDF", string(doc[:4]))
}

func TestRenderRequiresLoan(t *testing.T) {
	renderer := receipt.NewRenderer()

	_, err := renderer.Render(receipt.Data{
		Receipt: &model.Receipt{ID: uuid.New(), ReceiptType: model.ReceiptTypeLoan},
	})
	assert.ErrorIs(t, err, receipt.ErrMissingLoan)
}
