package model

import (
	"context"
	"log/slog"

	slogctx "github.com/veqryn/slog-context"
)

// LogWithKey returns a context whose log records carry the key identity.
func LogWithKey(ctx context.Context, key *Key) context.Context {
	return slogctx.With(ctx,
		slog.String("keyId", key.ID.String()),
		slog.Group("keyData",
			slog.String("name", key.KeyName),
			slog.String("type", string(key.KeyType)),
			slog.String("rentalObjectCode", key.RentalObjectCode),
		),
	)
}

// LogWithLoan returns a context whose log records carry the loan identity.
func LogWithLoan(ctx context.Context, loan *KeyLoan) context.Context {
	return slogctx.With(ctx,
		slog.String("keyLoanId", loan.ID.String()),
		slog.Group("loanData",
			slog.String("type", string(loan.LoanType)),
			slog.String("contact", loan.Contact),
			slog.Bool("active", loan.Active()),
		),
	)
}

// LogWithReceipt returns a context whose log records carry the receipt
// identity.
func LogWithReceipt(ctx context.Context, receipt *Receipt) context.Context {
	return slogctx.With(ctx,
		slog.String("receiptId", receipt.ID.String()),
		slog.String("receiptType", string(receipt.ReceiptType)),
	)
}
