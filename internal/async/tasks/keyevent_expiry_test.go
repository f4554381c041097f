package tasks_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/async/tasks"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/config"
)

type EventExpirerMock struct {
	cutoff time.Time
	err    error
}

func (m *EventExpirerMock) ExpireRequested(_ context.Context, cutoff time.Time) (int, error) {
	m.cutoff = cutoff

	if m.err != nil {
		return 0, m.err
	}

	return 3, nil
}

func TestEventExpirerProcessTask(t *testing.T) {
	cfg := config.Events{ExpireRequestedAfter: 60 * 24 * time.Hour}

	t.Run("Should complete successfully", func(t *testing.T) {
		mock := &EventExpirerMock{}
		expirer := tasks.NewEventExpirer(mock, cfg)

		err := expirer.ProcessTask(context.Background(), nil)
		assert.NoError(t, err)
	})

	t.Run("Should pass a cutoff one window in the past", func(t *testing.T) {
		mock := &EventExpirerMock{}
		expirer := tasks.NewEventExpirer(mock, cfg)

		err := expirer.ProcessTask(context.Background(), nil)
		assert.NoError(t, err)
		assert.WithinDuration(t, time.Now().UTC().Add(-cfg.ExpireRequestedAfter), mock.cutoff, time.Minute)
	})

	t.Run("Should wrap updater errors", func(t *testing.T) {
		mock := &EventExpirerMock{err: errors.New("db gone")}
		expirer := tasks.NewEventExpirer(mock, cfg)

		err := expirer.ProcessTask(context.Background(), nil)
		assert.ErrorIs(t, err, tasks.ErrExpiringEvents)
	})

	t.Run("Task type is correct", func(t *testing.T) {
		expirer := tasks.NewEventExpirer(&EventExpirerMock{}, cfg)

		assert.Equal(t, config.TypeKeyEventExpiryTask, expirer.TaskType())
	})
}
