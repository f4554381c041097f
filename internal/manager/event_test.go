package manager_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/manager"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/model"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/repo"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/repo/sql"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/testutils"
	"github.com/Bostads-AB-Mimer/onecore-keys/utils/ptr"
)

func TestCreateEvent(t *testing.T) {
	m, _, _ := setupManagers(t)
	ctx := testutils.ActorContext(t)

	t.Run("Should create event in requested status", func(t *testing.T) {
		keyIDs := createTestKeys(ctx, t, m, 1)

		event := testutils.NewKeyEvent(func(e *model.KeyEvent) {
			e.KeyID = keyIDs[0]
			e.Status = model.EventStatusCompleted
		})

		created, err := m.Events.CreateEvent(ctx, event)
		assert.NoError(t, err)
		assert.Equal(t, model.EventStatusRequested, created.Status)
	})

	t.Run("Should error on invalid event type", func(t *testing.T) {
		keyIDs := createTestKeys(ctx, t, m, 1)

		_, err := m.Events.CreateEvent(ctx, testutils.NewKeyEvent(func(e *model.KeyEvent) {
			e.KeyID = keyIDs[0]
			e.EventType = "PAINT"
		}))
		assert.ErrorIs(t, err, manager.ErrInvalidEventType)
	})

	t.Run("Should error on unknown key", func(t *testing.T) {
		_, err := m.Events.CreateEvent(ctx, testutils.NewKeyEvent(func(_ *model.KeyEvent) {}))
		assert.ErrorIs(t, err, manager.ErrKeyNotFound)
	})

	t.Run("Should error on disposed key", func(t *testing.T) {
		keyIDs := createTestKeys(ctx, t, m, 1)

		_, err := m.Keys.DisposeKey(ctx, keyIDs[0])
		require.NoError(t, err)

		_, err = m.Events.CreateEvent(ctx, testutils.NewKeyEvent(func(e *model.KeyEvent) {
			e.KeyID = keyIDs[0]
		}))
		assert.ErrorIs(t, err, manager.ErrKeyDisposed)
	})
}

func TestListEvents(t *testing.T) {
	m, _, _ := setupManagers(t)
	ctx := testutils.ActorContext(t)

	keyIDs := createTestKeys(ctx, t, m, 2)

	orderEvent := testutils.NewKeyEvent(func(e *model.KeyEvent) {
		e.KeyID = keyIDs[0]
		e.EventType = model.EventTypeOrderKey
	})
	_, err := m.Events.CreateEvent(ctx, orderEvent)
	require.NoError(t, err)

	repairEvent := testutils.NewKeyEvent(func(e *model.KeyEvent) {
		e.KeyID = keyIDs[1]
		e.EventType = model.EventTypeRepair
	})
	_, err = m.Events.CreateEvent(ctx, repairEvent)
	require.NoError(t, err)

	_, err = m.Events.TransitionEvent(ctx, repairEvent.ID, model.EventStatusOrdered, nil)
	require.NoError(t, err)

	t.Run("Should list all events", func(t *testing.T) {
		_, total, err := m.Events.ListEvents(ctx, manager.EventSearchFilter{}, repo.NewPagination(1, 10))
		assert.NoError(t, err)
		assert.Equal(t, 2, total)
	})

	t.Run("Should filter by key", func(t *testing.T) {
		events, total, err := m.Events.ListEvents(ctx, manager.EventSearchFilter{
			KeyID: &keyIDs[0],
		}, repo.NewPagination(1, 10))
		assert.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, orderEvent.ID, events[0].ID)
	})

	t.Run("Should filter by status", func(t *testing.T) {
		events, total, err := m.Events.ListEvents(ctx, manager.EventSearchFilter{
			Status: model.EventStatusOrdered,
		}, repo.NewPagination(1, 10))
		assert.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, repairEvent.ID, events[0].ID)
	})

	t.Run("Should filter by event type", func(t *testing.T) {
		events, total, err := m.Events.ListEvents(ctx, manager.EventSearchFilter{
			EventType: model.EventTypeOrderKey,
		}, repo.NewPagination(1, 10))
		assert.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, orderEvent.ID, events[0].ID)
	})

	t.Run("Should error on invalid status filter", func(t *testing.T) {
		_, _, err := m.Events.ListEvents(ctx, manager.EventSearchFilter{
			Status: "PENDING",
		}, repo.NewPagination(1, 10))
		assert.ErrorIs(t, err, manager.ErrInvalidEventStatus)
	})

	t.Run("Should error on invalid type filter", func(t *testing.T) {
		_, _, err := m.Events.ListEvents(ctx, manager.EventSearchFilter{
			EventType: "PAINT",
		}, repo.NewPagination(1, 10))
		assert.ErrorIs(t, err, manager.ErrInvalidEventType)
	})
}

func TestGetEvent(t *testing.T) {
	m, _, _ := setupManagers(t)
	ctx := testutils.ActorContext(t)

	t.Run("Should get event with key preloaded", func(t *testing.T) {
		key := testutils.NewKey(func(_ *model.Key) {})
		_, err := m.Keys.CreateKey(ctx, key)
		require.NoError(t, err)

		event := testutils.NewKeyEvent(func(e *model.KeyEvent) {
			e.KeyID = key.ID
		})
		_, err = m.Events.CreateEvent(ctx, event)
		require.NoError(t, err)

		got, err := m.Events.GetEvent(ctx, event.ID)
		assert.NoError(t, err)
		require.NotNil(t, got.Key)
		assert.Equal(t, key.KeyName, got.Key.KeyName)
	})

	t.Run("Should error on unknown event", func(t *testing.T) {
		_, err := m.Events.GetEvent(ctx, uuid.New())
		assert.ErrorIs(t, err, manager.ErrEventNotFound)
	})
}

func TestTransitionEvent(t *testing.T) {
	m, _, _ := setupManagers(t)
	ctx := testutils.ActorContext(t)

	newEvent := func(t *testing.T) *model.KeyEvent {
		t.Helper()

		keyIDs := createTestKeys(ctx, t, m, 1)

		event := testutils.NewKeyEvent(func(e *model.KeyEvent) {
			e.KeyID = keyIDs[0]
		})
		_, err := m.Events.CreateEvent(ctx, event)
		require.NoError(t, err)

		return event
	}

	t.Run("Should walk requested through ordered to completed", func(t *testing.T) {
		event := newEvent(t)

		ordered, err := m.Events.TransitionEvent(ctx, event.ID, model.EventStatusOrdered,
			ptr.PointTo("WO-2024-118"))
		assert.NoError(t, err)
		assert.Equal(t, model.EventStatusOrdered, ordered.Status)
		require.NotNil(t, ordered.WorkOrderCode)
		assert.Equal(t, "WO-2024-118", *ordered.WorkOrderCode)

		completed, err := m.Events.TransitionEvent(ctx, event.ID, model.EventStatusCompleted, nil)
		assert.NoError(t, err)
		assert.Equal(t, model.EventStatusCompleted, completed.Status)
		require.NotNil(t, completed.WorkOrderCode)
		assert.Equal(t, "WO-2024-118", *completed.WorkOrderCode)
	})

	t.Run("Should cancel requested event", func(t *testing.T) {
		event := newEvent(t)

		cancelled, err := m.Events.TransitionEvent(ctx, event.ID, model.EventStatusCancelled, nil)
		assert.NoError(t, err)
		assert.Equal(t, model.EventStatusCancelled, cancelled.Status)
	})

	t.Run("Should cancel ordered event", func(t *testing.T) {
		event := newEvent(t)

		_, err := m.Events.TransitionEvent(ctx, event.ID, model.EventStatusOrdered, nil)
		require.NoError(t, err)

		cancelled, err := m.Events.TransitionEvent(ctx, event.ID, model.EventStatusCancelled, nil)
		assert.NoError(t, err)
		assert.Equal(t, model.EventStatusCancelled, cancelled.Status)
	})

	t.Run("Should reject skipping ordered", func(t *testing.T) {
		event := newEvent(t)

		_, err := m.Events.TransitionEvent(ctx, event.ID, model.EventStatusCompleted, nil)
		assert.ErrorIs(t, err, manager.ErrEventCannotTransition)
	})

	t.Run("Should reject transitions out of completed", func(t *testing.T) {
		event := newEvent(t)

		_, err := m.Events.TransitionEvent(ctx, event.ID, model.EventStatusOrdered, nil)
		require.NoError(t, err)
		_, err = m.Events.TransitionEvent(ctx, event.ID, model.EventStatusCompleted, nil)
		require.NoError(t, err)

		_, err = m.Events.TransitionEvent(ctx, event.ID, model.EventStatusCancelled, nil)
		assert.ErrorIs(t, err, manager.ErrEventCannotTransition)
	})

	t.Run("Should reject transitions out of cancelled", func(t *testing.T) {
		event := newEvent(t)

		_, err := m.Events.TransitionEvent(ctx, event.ID, model.EventStatusCancelled, nil)
		require.NoError(t, err)

		_, err = m.Events.TransitionEvent(ctx, event.ID, model.EventStatusOrdered, nil)
		assert.ErrorIs(t, err, manager.ErrEventCannotTransition)
	})

	t.Run("Should reject requested as a target", func(t *testing.T) {
		event := newEvent(t)

		_, err := m.Events.TransitionEvent(ctx, event.ID, model.EventStatusRequested, nil)
		assert.ErrorIs(t, err, manager.ErrEventCannotTransition)
	})

	t.Run("Should error on invalid status", func(t *testing.T) {
		event := newEvent(t)

		_, err := m.Events.TransitionEvent(ctx, event.ID, "PENDING", nil)
		assert.ErrorIs(t, err, manager.ErrInvalidEventStatus)
	})

	t.Run("Should error on unknown event", func(t *testing.T) {
		_, err := m.Events.TransitionEvent(ctx, uuid.New(), model.EventStatusOrdered, nil)
		assert.ErrorIs(t, err, manager.ErrEventNotFound)
	})
}

func TestExpireRequested(t *testing.T) {
	m, db, _ := setupManagers(t)
	ctx := testutils.ActorContext(t)
	r := sql.NewRepository(db)

	keyIDs := createTestKeys(ctx, t, m, 3)

	// Requested events older than the cutoff are written directly so their
	// creation time lands in the past.
	stale := []*model.KeyEvent{
		testutils.NewKeyEvent(func(e *model.KeyEvent) {
			e.KeyID = keyIDs[0]
			e.CreatedAt = time.Now().UTC().AddDate(0, -2, 0)
		}),
		testutils.NewKeyEvent(func(e *model.KeyEvent) {
			e.KeyID = keyIDs[1]
			e.CreatedAt = time.Now().UTC().AddDate(0, -3, 0)
		}),
	}
	testutils.CreateTestEntities(ctx, t, r, stale[0], stale[1])

	fresh := testutils.NewKeyEvent(func(e *model.KeyEvent) {
		e.KeyID = keyIDs[2]
	})
	_, err := m.Events.CreateEvent(ctx, fresh)
	require.NoError(t, err)

	cutoff := time.Now().UTC().AddDate(0, -1, 0)

	t.Run("Should cancel stale requested events", func(t *testing.T) {
		expired, err := m.Events.ExpireRequested(ctx, cutoff)
		assert.NoError(t, err)
		assert.Equal(t, 2, expired)

		for _, event := range stale {
			got, err := m.Events.GetEvent(ctx, event.ID)
			assert.NoError(t, err)
			assert.Equal(t, model.EventStatusCancelled, got.Status)

			entries, _, err := m.Activity.ListEntries(ctx,
				manager.ActivityFilter{KeyID: &event.KeyID}, repo.NewPagination(1, 10))
			assert.NoError(t, err)
			require.NotEmpty(t, entries)
			assert.Equal(t, manager.ActionEventExpired, entries[0].Action)
		}

		got, err := m.Events.GetEvent(ctx, fresh.ID)
		assert.NoError(t, err)
		assert.Equal(t, model.EventStatusRequested, got.Status)
	})

	t.Run("Should do nothing on rerun", func(t *testing.T) {
		expired, err := m.Events.ExpireRequested(ctx, cutoff)
		assert.NoError(t, err)
		assert.Zero(t, expired)
	})
}
