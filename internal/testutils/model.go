package testutils

import (
	"time"

	"github.com/google/uuid"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/model"
	"github.com/Bostads-AB-Mimer/onecore-keys/utils/ptr"
)

const (
	TestRentalObjectCode = "705-021-03-0201"
	TestContactCode      = "P145857"
)

func NewKeySystem(m func(*model.KeySystem)) *model.KeySystem {
	mut := NewMutator(func() model.KeySystem {
		return model.KeySystem{
			ID:         uuid.New(),
			SystemCode: uuid.NewString(),
			Name:       "Huvudnyckelsystem A",
			Type:       "iLOQ",
		}
	})

	return ptr.PointTo(mut(m))
}

func NewKey(m func(*model.Key)) *model.Key {
	mut := NewMutator(func() model.Key {
		return model.Key{
			ID:               uuid.New(),
			KeyName:          uuid.NewString(),
			KeyType:          model.KeyTypeLGH,
			RentalObjectCode: TestRentalObjectCode,
		}
	})

	return ptr.PointTo(mut(m))
}

func NewKeyBundle(m func(*model.KeyBundle)) *model.KeyBundle {
	mut := NewMutator(func() model.KeyBundle {
		bundle := model.KeyBundle{
			ID:   uuid.New(),
			Name: uuid.NewString(),
		}
		_ = bundle.SetKeyIDs(nil)

		return bundle
	})

	return ptr.PointTo(mut(m))
}

func NewKeyLoan(m func(*model.KeyLoan)) *model.KeyLoan {
	mut := NewMutator(func() model.KeyLoan {
		loan := model.KeyLoan{
			ID:       uuid.New(),
			LoanType: model.LoanTypeTenant,
			Contact:  TestContactCode,
			LoanedAt: time.Now().UTC(),
		}
		_ = loan.SetKeyIDs(nil)

		return loan
	})

	return ptr.PointTo(mut(m))
}

func NewReceipt(m func(*model.Receipt)) *model.Receipt {
	mut := NewMutator(func() model.Receipt {
		return model.Receipt{
			ID:          uuid.New(),
			KeyLoanID:   uuid.New(),
			ReceiptType: model.ReceiptTypeLoan,
		}
	})

	return ptr.PointTo(mut(m))
}

func NewSignature(m func(*model.Signature)) *model.Signature {
	mut := NewMutator(func() model.Signature {
		return model.Signature{
			ID:        uuid.New(),
			ReceiptID: uuid.New(),
			SignedBy:  "Anna Andersson",
			ImageData: "iVBORw0KGgoAAAANSUhEUg==",
		}
	})

	return ptr.PointTo(mut(m))
}

func NewKeyEvent(m func(*model.KeyEvent)) *model.KeyEvent {
	mut := NewMutator(func() model.KeyEvent {
		return model.KeyEvent{
			ID:        uuid.New(),
			KeyID:     uuid.New(),
			EventType: model.EventTypeOrderKey,
			Status:    model.EventStatusRequested,
		}
	})

	return ptr.PointTo(mut(m))
}

func NewCard(m func(*model.Card)) *model.Card {
	mut := NewMutator(func() model.Card {
		return model.Card{
			ID:               uuid.New(),
			CardNumber:       uuid.NewString(),
			CardType:         "APTUS",
			RentalObjectCode: TestRentalObjectCode,
		}
	})

	return ptr.PointTo(mut(m))
}

func NewKeyLogEntry(m func(*model.KeyLogEntry)) *model.KeyLogEntry {
	mut := NewMutator(func() model.KeyLogEntry {
		return model.KeyLogEntry{
			ID:     uuid.New(),
			Action: "key.created",
			Actor:  TestActor,
		}
	})

	return ptr.PointTo(mut(m))
}
