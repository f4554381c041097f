package manager_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/manager"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/model"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/repo"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/repo/sql"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/testutils"
)

func TestListEntries(t *testing.T) {
	m, _, _ := setupManagers(t)
	ctx := testutils.ActorContext(t)

	loanedKey := createTestKeys(ctx, t, m, 1)[0]
	_ = createTestKeys(ctx, t, m, 1)

	loan := testutils.NewKeyLoan(func(_ *model.KeyLoan) {})
	_, err := m.Loans.CreateLoan(ctx, loan, []uuid.UUID{loanedKey})
	require.NoError(t, err)

	t.Run("Should list entries newest first", func(t *testing.T) {
		entries, count, err := m.Activity.ListEntries(ctx,
			manager.ActivityFilter{}, repo.NewPagination(1, 10))
		assert.NoError(t, err)
		assert.Equal(t, 3, count)
		require.NotEmpty(t, entries)
		assert.Equal(t, manager.ActionLoanCreated, entries[0].Action)
	})

	t.Run("Should filter by key", func(t *testing.T) {
		entries, count, err := m.Activity.ListEntries(ctx,
			manager.ActivityFilter{KeyID: &loanedKey}, repo.NewPagination(1, 10))
		assert.NoError(t, err)
		assert.Equal(t, 2, count)

		for _, entry := range entries {
			require.NotNil(t, entry.KeyID)
			assert.Equal(t, loanedKey, *entry.KeyID)
		}
	})

	t.Run("Should filter by loan", func(t *testing.T) {
		entries, count, err := m.Activity.ListEntries(ctx,
			manager.ActivityFilter{KeyLoanID: &loan.ID}, repo.NewPagination(1, 10))
		assert.NoError(t, err)
		assert.Equal(t, 1, count)
		require.Len(t, entries, 1)
		assert.Equal(t, manager.ActionLoanCreated, entries[0].Action)
	})

	t.Run("Should combine key and loan filters", func(t *testing.T) {
		_, count, err := m.Activity.ListEntries(ctx,
			manager.ActivityFilter{KeyID: &loanedKey, KeyLoanID: &loan.ID},
			repo.NewPagination(1, 10))
		assert.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("Should paginate", func(t *testing.T) {
		entries, count, err := m.Activity.ListEntries(ctx,
			manager.ActivityFilter{}, repo.NewPagination(1, 2))
		assert.NoError(t, err)
		assert.Equal(t, 3, count)
		assert.Len(t, entries, 2)
	})
}

func TestRecord(t *testing.T) {
	m, db, _ := setupManagers(t)
	r := sql.NewRepository(db)

	t.Run("Should default the actor from the context", func(t *testing.T) {
		entry := testutils.NewKeyLogEntry(func(e *model.KeyLogEntry) {
			e.Actor = ""
		})

		err := m.Activity.Record(testutils.ActorContext(t), r, entry)
		assert.NoError(t, err)
		assert.Equal(t, testutils.TestActor, entry.Actor)
	})

	t.Run("Should fall back to the system actor", func(t *testing.T) {
		entry := testutils.NewKeyLogEntry(func(e *model.KeyLogEntry) {
			e.Actor = ""
		})

		err := m.Activity.Record(context.Background(), r, entry)
		assert.NoError(t, err)
		assert.Equal(t, manager.SystemActor, entry.Actor)
	})

	t.Run("Should keep an explicit actor", func(t *testing.T) {
		entry := testutils.NewKeyLogEntry(func(e *model.KeyLogEntry) {
			e.Actor = "import-job"
		})

		err := m.Activity.Record(testutils.ActorContext(t), r, entry)
		assert.NoError(t, err)
		assert.Equal(t, "import-job", entry.Actor)
	})

	t.Run("Should assign id when none is given", func(t *testing.T) {
		entry := testutils.NewKeyLogEntry(func(e *model.KeyLogEntry) {
			e.ID = uuid.Nil
		})

		err := m.Activity.Record(testutils.ActorContext(t), r, entry)
		assert.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, entry.ID)
	})

	t.Run("Should error on create with DB error", func(t *testing.T) {
		restore := testutils.ForceDBError(db, ErrForced, testutils.OpCreate)
		defer restore()

		entry := testutils.NewKeyLogEntry(func(_ *model.KeyLogEntry) {})

		err := m.Activity.Record(testutils.ActorContext(t), r, entry)
		assert.ErrorIs(t, err, ErrForced)
	})
}
