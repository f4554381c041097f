package tasks

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/config"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/errs"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/log"
)

type LoanUpdater interface {
	RemindOverdue(ctx context.Context, cutoff time.Time) (int, error)
}

type LoanReminder struct {
	updater LoanUpdater
	window  time.Duration
}

func NewLoanReminder(updater LoanUpdater, cfg config.Loans) *LoanReminder {
	return &LoanReminder{
		updater: updater,
		window:  cfg.ReminderAfter,
	}
}

var ErrRemindingLoans = errors.New("error reminding overdue loans")

func (r *LoanReminder) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	log.Info(ctx, "Starting Loan Reminder Task")

	cutoff := time.Now().UTC().Add(-r.window)

	reminded, err := r.updater.RemindOverdue(ctx, cutoff)
	if err != nil {
		log.Error(ctx, "failed to remind overdue loans", err)
		return errs.Wrap(ErrRemindingLoans, err)
	}

	log.Info(ctx, "Completed Loan Reminder Task", slog.Int("reminded", reminded))

	return nil
}

func (r *LoanReminder) TaskType() string {
	return config.TypeLoanReminderTask
}
