package manager

import (
	"context"

	"github.com/google/uuid"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/errs"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/model"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/repo"
	keyscontext "github.com/Bostads-AB-Mimer/onecore-keys/utils/context"
)

// SystemActor is recorded when no authenticated actor is on the context,
// such as scheduled maintenance tasks.
const SystemActor = "system"

const (
	ActionKeyCreated      = "key.created"
	ActionKeyUpdated      = "key.updated"
	ActionKeyDisposed     = "key.disposed"
	ActionKeyRekeyed      = "key.rekeyed"
	ActionKeysDeleted     = "key.deleted"
	ActionLoanCreated     = "loan.created"
	ActionLoanReturned    = "loan.returned"
	ActionLoanTransferred = "loan.transferred"
	ActionLoanReminder    = "loan.reminder"
	ActionReceiptCreated  = "receipt.created"
	ActionReceiptScanned  = "receipt.scanned"
	ActionEventExpired    = "event.expired"
)

type ActivityFilter struct {
	KeyID     *uuid.UUID
	KeyLoanID *uuid.UUID
}

// ActivityManager reads and writes the append-only activity log kept for
// keys, loans and receipts.
type ActivityManager struct {
	repo repo.Repo
}

func NewActivityManager(repository repo.Repo) *ActivityManager {
	return &ActivityManager{
		repo: repository,
	}
}

func (m *ActivityManager) ListEntries(
	ctx context.Context,
	filter ActivityFilter,
	pagination repo.Pagination,
) ([]*model.KeyLogEntry, int, error) {
	var conds []repo.Condition

	if filter.KeyID != nil {
		conds = append(conds, repo.Eq(repo.KeyIDField, *filter.KeyID))
	}

	if filter.KeyLoanID != nil {
		conds = append(conds, repo.Eq(repo.KeyLoanIDField, *filter.KeyLoanID))
	}

	query := pagination.Apply(repo.NewQuery().Where(conds...)).
		Order(repo.OrderField{Field: repo.CreatedField, Direction: repo.Desc})

	var entries []*model.KeyLogEntry

	count, err := m.repo.List(ctx, model.KeyLogEntry{}, &entries, *query)
	if err != nil {
		return nil, 0, errs.Wrap(ErrListLogEntriesDB, err)
	}

	return entries, count, nil
}

// Record writes an activity entry through the given repository so the write
// joins a surrounding transaction when one is open. Actor defaults to the
// authenticated subject on the context.
func (m *ActivityManager) Record(
	ctx context.Context,
	repository repo.Repo,
	entry *model.KeyLogEntry,
) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}

	if entry.Actor == "" {
		entry.Actor = ActorFromContext(ctx)
	}

	err := repository.Create(ctx, entry)
	if err != nil {
		return errs.Wrap(ErrCreateLogEntryDB, err)
	}

	return nil
}

func ActorFromContext(ctx context.Context) string {
	actor, err := keyscontext.GetActor(ctx)
	if err != nil {
		return SystemActor
	}

	return actor
}
