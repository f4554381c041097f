package manager

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/looplab/fsm"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/errs"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/model"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/repo"
)

const (
	eventTransitionOrder    = "order"
	eventTransitionComplete = "complete"
	eventTransitionCancel   = "cancel"
)

type EventSearchFilter struct {
	KeyID     *uuid.UUID
	Status    model.EventStatus
	EventType model.EventType
}

type EventManager struct {
	repo     repo.Repo
	activity *ActivityManager
}

func NewEventManager(repository repo.Repo, activity *ActivityManager) *EventManager {
	return &EventManager{
		repo:     repository,
		activity: activity,
	}
}

// newStatusMachine builds the status transitions for a key event. Orders
// move REQUESTED -> ORDERED -> COMPLETED; cancellation is allowed until the
// work completes.
func newStatusMachine(current model.EventStatus) *fsm.FSM {
	return fsm.NewFSM(
		string(current),
		fsm.Events{
			{
				Name: eventTransitionOrder,
				Src:  []string{string(model.EventStatusRequested)},
				Dst:  string(model.EventStatusOrdered),
			},
			{
				Name: eventTransitionComplete,
				Src:  []string{string(model.EventStatusOrdered)},
				Dst:  string(model.EventStatusCompleted),
			},
			{
				Name: eventTransitionCancel,
				Src: []string{
					string(model.EventStatusRequested),
					string(model.EventStatusOrdered),
				},
				Dst: string(model.EventStatusCancelled),
			},
		},
		fsm.Callbacks{},
	)
}

// transitionFor maps a requested target status to the transition reaching
// it. REQUESTED is the initial status and cannot be a target.
func transitionFor(status model.EventStatus) (string, bool) {
	switch status {
	case model.EventStatusOrdered:
		return eventTransitionOrder, true
	case model.EventStatusCompleted:
		return eventTransitionComplete, true
	case model.EventStatusCancelled:
		return eventTransitionCancel, true
	default:
		return "", false
	}
}

func (m *EventManager) ListEvents(
	ctx context.Context,
	filter EventSearchFilter,
	pagination repo.Pagination,
) ([]*model.KeyEvent, int, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, ErrInvalidEventStatus
	}

	if filter.EventType != "" && !filter.EventType.Valid() {
		return nil, 0, ErrInvalidEventType
	}

	var conds []repo.Condition

	if filter.KeyID != nil {
		conds = append(conds, repo.Eq(repo.KeyIDField, *filter.KeyID))
	}

	if filter.Status != "" {
		conds = append(conds, repo.Eq(repo.StatusField, filter.Status))
	}

	if filter.EventType != "" {
		conds = append(conds, repo.Eq(repo.EventTypeField, filter.EventType))
	}

	query := pagination.Apply(repo.NewQuery().Where(conds...)).
		Order(repo.OrderField{Field: repo.CreatedField, Direction: repo.Desc})

	var events []*model.KeyEvent

	count, err := m.repo.List(ctx, model.KeyEvent{}, &events, *query)
	if err != nil {
		return nil, 0, errs.Wrap(ErrListEventsDB, err)
	}

	return events, count, nil
}

// CreateEvent opens a work item against a key. New events always start in
// REQUESTED; disposed keys cannot take new work.
func (m *EventManager) CreateEvent(ctx context.Context, event *model.KeyEvent) (*model.KeyEvent, error) {
	if !event.EventType.Valid() {
		return nil, ErrInvalidEventType
	}

	key := &model.Key{ID: event.KeyID}

	_, err := m.repo.First(ctx, key, *repo.NewQuery())
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errs.Wrap(ErrKeyNotFound, err)
		}

		return nil, errs.Wrap(ErrGetKeyDB, err)
	}

	if key.Disposed {
		return nil, ErrKeyDisposed
	}

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}

	event.Status = model.EventStatusRequested

	err = m.repo.Create(ctx, event)
	if err != nil {
		return nil, errs.Wrap(ErrCreateEventDB, err)
	}

	return event, nil
}

func (m *EventManager) GetEvent(ctx context.Context, id uuid.UUID) (*model.KeyEvent, error) {
	event := &model.KeyEvent{ID: id}

	_, err := m.repo.First(ctx, event, *repo.NewQuery().Preload("Key"))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errs.Wrap(ErrEventNotFound, err)
		}

		return nil, errs.Wrap(ErrGetEventDB, err)
	}

	return event, nil
}

// TransitionEvent moves an event to the requested status when the status
// machine allows it. WorkOrderCode is recorded alongside the transition
// when provided.
func (m *EventManager) TransitionEvent(
	ctx context.Context,
	id uuid.UUID,
	status model.EventStatus,
	workOrderCode *string,
) (*model.KeyEvent, error) {
	if !status.Valid() {
		return nil, ErrInvalidEventStatus
	}

	transition, ok := transitionFor(status)
	if !ok {
		return nil, errs.Wrapf(ErrEventCannotTransition, "status "+string(status)+" is not a transition target")
	}

	event := &model.KeyEvent{ID: id}

	err := m.repo.Transaction(ctx, func(ctx context.Context, tx repo.Repo) error {
		_, err := tx.First(ctx, event, *repo.NewQuery())
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return errs.Wrap(ErrEventNotFound, err)
			}

			return errs.Wrap(ErrGetEventDB, err)
		}

		machine := newStatusMachine(event.Status)

		err = machine.Event(ctx, transition)
		if err != nil {
			return errs.Wrap(ErrEventCannotTransition, err)
		}

		event.Status = model.EventStatus(machine.Current())

		if workOrderCode != nil {
			event.WorkOrderCode = workOrderCode
		}

		_, err = tx.Patch(ctx, event, *repo.NewQuery())
		if err != nil {
			return errs.Wrap(ErrUpdateEventDB, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return event, nil
}

// ExpireRequested cancels REQUESTED events created before the cutoff and
// reports how many were cancelled. Events are processed batch by batch so
// a large backlog does not load at once.
func (m *EventManager) ExpireRequested(ctx context.Context, cutoff time.Time) (int, error) {
	expired := 0

	query := repo.NewQuery().Where(
		repo.Eq(repo.StatusField, model.EventStatusRequested),
		repo.Lt(repo.CreatedField, cutoff),
	)

	for {
		var batch []*model.KeyEvent

		_, err := m.repo.List(ctx, model.KeyEvent{}, &batch,
			*query.SetLimit(loanScanBatchSize).SetOffset(0))
		if err != nil {
			return expired, errs.Wrap(ErrListEventsDB, err)
		}

		if len(batch) == 0 {
			return expired, nil
		}

		err = m.repo.Transaction(ctx, func(ctx context.Context, tx repo.Repo) error {
			for _, event := range batch {
				event.Status = model.EventStatusCancelled

				_, err := tx.Patch(ctx, event, *repo.NewQuery())
				if err != nil {
					return errs.Wrap(ErrUpdateEventDB, err)
				}

				err = m.activity.Record(ctx, tx, &model.KeyLogEntry{
					KeyID:   &event.KeyID,
					Action:  ActionEventExpired,
					Message: "requested " + string(event.EventType) + " event expired",
				})
				if err != nil {
					return err
				}
			}

			return nil
		})
		if err != nil {
			return expired, err
		}

		expired += len(batch)
	}
}
