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

type EventUpdater interface {
	ExpireRequested(ctx context.Context, cutoff time.Time) (int, error)
}

type EventExpirer struct {
	updater EventUpdater
	window  time.Duration
}

func NewEventExpirer(updater EventUpdater, cfg config.Events) *EventExpirer {
	return &EventExpirer{
		updater: updater,
		window:  cfg.ExpireRequestedAfter,
	}
}

var ErrExpiringEvents = errors.New("error expiring requested key events")

func (e *EventExpirer) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	log.Info(ctx, "Starting Key Event Expiry Task")

	cutoff := time.Now().UTC().Add(-e.window)

	expired, err := e.updater.ExpireRequested(ctx, cutoff)
	if err != nil {
		log.Error(ctx, "failed to expire requested key events", err)
		return errs.Wrap(ErrExpiringEvents, err)
	}

	log.Info(ctx, "Completed Key Event Expiry Task", slog.Int("expired", expired))

	return nil
}

func (e *EventExpirer) TaskType() string {
	return config.TypeKeyEventExpiryTask
}
