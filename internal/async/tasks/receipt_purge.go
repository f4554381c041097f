package tasks

import (
	"context"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/config"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/log"
)

type ReceiptUpdater interface {
	PurgeUnsigned(ctx context.Context, cutoff time.Time) (int, error)
}

type ReceiptPurger struct {
	updater ReceiptUpdater
	window  time.Duration
}

func NewReceiptPurger(updater ReceiptUpdater, cfg config.Receipts) *ReceiptPurger {
	return &ReceiptPurger{
		updater: updater,
		window:  cfg.PurgeUnsignedAfter,
	}
}

func (p *ReceiptPurger) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	log.Info(ctx, "Starting Receipt Purge Task")

	cutoff := time.Now().UTC().Add(-p.window)

	purged, err := p.updater.PurgeUnsigned(ctx, cutoff)
	if err != nil {
		log.Error(ctx, "failed to purge unsigned receipts", err)
		return err
	}

	log.Info(ctx, "Completed Receipt Purge Task", slog.Int("purged", purged))

	return nil
}

func (p *ReceiptPurger) TaskType() string {
	return config.TypeReceiptPurgeTask
}
