package manager_test

import (
	"testing"

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

func TestCreateKey(t *testing.T) {
	m, db, _ := setupManagers(t)
	ctx := testutils.ActorContext(t)

	t.Run("Should create key", func(t *testing.T) {
		key := testutils.NewKey(func(_ *model.Key) {})

		created, err := m.Keys.CreateKey(ctx, key)
		assert.NoError(t, err)
		assert.Equal(t, key.ID, created.ID)

		got, err := m.Keys.GetKey(ctx, key.ID)
		assert.NoError(t, err)
		assert.Equal(t, key.KeyName, got.KeyName)
	})

	t.Run("Should record activity on create", func(t *testing.T) {
		key := testutils.NewKey(func(_ *model.Key) {})

		_, err := m.Keys.CreateKey(ctx, key)
		assert.NoError(t, err)

		entries, total, err := m.Activity.ListEntries(ctx,
			manager.ActivityFilter{KeyID: &key.ID}, repo.NewPagination(1, 10))
		assert.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, manager.ActionKeyCreated, entries[0].Action)
		assert.Equal(t, testutils.TestActor, entries[0].Actor)
	})

	t.Run("Should assign id when missing", func(t *testing.T) {
		key := testutils.NewKey(func(k *model.Key) {
			k.ID = uuid.Nil
		})

		created, err := m.Keys.CreateKey(ctx, key)
		assert.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, created.ID)
	})

	t.Run("Should create key linked to key system", func(t *testing.T) {
		system := testutils.NewKeySystem(func(_ *model.KeySystem) {})
		testutils.CreateTestEntities(ctx, t, sql.NewRepository(db), system)

		key := testutils.NewKey(func(k *model.Key) {
			k.KeySystemID = &system.ID
		})

		_, err := m.Keys.CreateKey(ctx, key)
		assert.NoError(t, err)

		got, err := m.Keys.GetKey(ctx, key.ID)
		assert.NoError(t, err)
		require.NotNil(t, got.KeySystem)
		assert.Equal(t, system.SystemCode, got.KeySystem.SystemCode)
	})

	t.Run("Should error on empty name", func(t *testing.T) {
		_, err := m.Keys.CreateKey(ctx, testutils.NewKey(func(k *model.Key) {
			k.KeyName = ""
		}))
		assert.ErrorIs(t, err, manager.ErrKeyNameRequired)
	})

	t.Run("Should error on invalid key type", func(t *testing.T) {
		_, err := m.Keys.CreateKey(ctx, testutils.NewKey(func(k *model.Key) {
			k.KeyType = "DOOR"
		}))
		assert.ErrorIs(t, err, manager.ErrInvalidKeyType)
	})

	t.Run("Should error on unknown key system", func(t *testing.T) {
		_, err := m.Keys.CreateKey(ctx, testutils.NewKey(func(k *model.Key) {
			k.KeySystemID = ptr.PointTo(uuid.New())
		}))
		assert.ErrorIs(t, err, manager.ErrKeySystemNotFound)
	})

	t.Run("Should error on create with DB error", func(t *testing.T) {
		restore := testutils.ForceDBError(db, ErrForced, testutils.OpCreate)
		defer restore()

		_, err := m.Keys.CreateKey(ctx, testutils.NewKey(func(_ *model.Key) {}))
		assert.Error(t, err)
	})
}

func TestSearchKeys(t *testing.T) {
	m, _, _ := setupManagers(t)
	ctx := testutils.ActorContext(t)

	seed := []*model.Key{
		testutils.NewKey(func(k *model.Key) {
			k.KeyName = "Entre A-101"
			k.KeyType = model.KeyTypeLGH
			k.RentalObjectCode = "705-021-03-0201"
		}),
		testutils.NewKey(func(k *model.Key) {
			k.KeyName = "Postbox A-101"
			k.KeyType = model.KeyTypePB
			k.RentalObjectCode = "705-021-03-0201"
		}),
		testutils.NewKey(func(k *model.Key) {
			k.KeyName = "Tvattstuga Hus A"
			k.KeyType = model.KeyTypeFS
			k.RentalObjectCode = "705-021-03-0305"
		}),
	}
	for _, key := range seed {
		_, err := m.Keys.CreateKey(ctx, key)
		require.NoError(t, err)
	}

	t.Run("Should list all keys", func(t *testing.T) {
		keys, total, err := m.Keys.SearchKeys(ctx, manager.KeySearchFilter{}, repo.NewPagination(1, 10))
		assert.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Len(t, keys, 3)
	})

	t.Run("Should filter by rental object code", func(t *testing.T) {
		keys, total, err := m.Keys.SearchKeys(ctx, manager.KeySearchFilter{
			RentalObjectCode: "705-021-03-0201",
		}, repo.NewPagination(1, 10))
		assert.NoError(t, err)
		assert.Equal(t, 2, total)
		for _, key := range keys {
			assert.Equal(t, "705-021-03-0201", key.RentalObjectCode)
		}
	})

	t.Run("Should filter by key type", func(t *testing.T) {
		keys, total, err := m.Keys.SearchKeys(ctx, manager.KeySearchFilter{
			KeyType: model.KeyTypePB,
		}, repo.NewPagination(1, 10))
		assert.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, "Postbox A-101", keys[0].KeyName)
	})

	t.Run("Should match name case insensitively", func(t *testing.T) {
		keys, total, err := m.Keys.SearchKeys(ctx, manager.KeySearchFilter{
			NameContains: "tvatt",
		}, repo.NewPagination(1, 10))
		assert.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, "Tvattstuga Hus A", keys[0].KeyName)
	})

	t.Run("Should order by name and paginate", func(t *testing.T) {
		keys, total, err := m.Keys.SearchKeys(ctx, manager.KeySearchFilter{}, repo.NewPagination(2, 1))
		assert.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, keys, 1)
		assert.Equal(t, "Postbox A-101", keys[0].KeyName)
	})

	t.Run("Should hide disposed keys by default", func(t *testing.T) {
		disposed := testutils.NewKey(func(k *model.Key) {
			k.KeyName = "Disposed cellar"
		})
		_, err := m.Keys.CreateKey(ctx, disposed)
		require.NoError(t, err)
		_, err = m.Keys.DisposeKey(ctx, disposed.ID)
		require.NoError(t, err)

		_, total, err := m.Keys.SearchKeys(ctx, manager.KeySearchFilter{}, repo.NewPagination(1, 10))
		assert.NoError(t, err)
		assert.Equal(t, 3, total)

		_, total, err = m.Keys.SearchKeys(ctx, manager.KeySearchFilter{
			IncludeDisposed: true,
		}, repo.NewPagination(1, 10))
		assert.NoError(t, err)
		assert.Equal(t, 4, total)
	})

	t.Run("Should error on invalid key type filter", func(t *testing.T) {
		_, _, err := m.Keys.SearchKeys(ctx, manager.KeySearchFilter{
			KeyType: "DOOR",
		}, repo.NewPagination(1, 10))
		assert.ErrorIs(t, err, manager.ErrInvalidKeyType)
	})
}

func TestGetKey(t *testing.T) {
	m, _, _ := setupManagers(t)
	ctx := testutils.ActorContext(t)

	t.Run("Should get key", func(t *testing.T) {
		key := testutils.NewKey(func(_ *model.Key) {})
		_, err := m.Keys.CreateKey(ctx, key)
		require.NoError(t, err)

		got, err := m.Keys.GetKey(ctx, key.ID)
		assert.NoError(t, err)
		assert.Equal(t, key.ID, got.ID)
	})

	t.Run("Should error on unknown key", func(t *testing.T) {
		_, err := m.Keys.GetKey(ctx, uuid.New())
		assert.ErrorIs(t, err, manager.ErrKeyNotFound)
	})
}

func TestPatchKey(t *testing.T) {
	m, db, _ := setupManagers(t)
	ctx := testutils.ActorContext(t)

	t.Run("Should rename key", func(t *testing.T) {
		key := testutils.NewKey(func(_ *model.Key) {})
		_, err := m.Keys.CreateKey(ctx, key)
		require.NoError(t, err)

		patched, err := m.Keys.PatchKey(ctx, key.ID, manager.KeyPatch{
			KeyName: ptr.PointTo("renamed"),
		})
		assert.NoError(t, err)
		assert.Equal(t, "renamed", patched.KeyName)

		got, err := m.Keys.GetKey(ctx, key.ID)
		assert.NoError(t, err)
		assert.Equal(t, "renamed", got.KeyName)
	})

	t.Run("Should persist zero valued patches", func(t *testing.T) {
		key := testutils.NewKey(func(k *model.Key) {
			k.KeySequenceNumber = 4
		})
		_, err := m.Keys.CreateKey(ctx, key)
		require.NoError(t, err)

		_, err = m.Keys.PatchKey(ctx, key.ID, manager.KeyPatch{
			KeySequenceNumber: ptr.PointTo(0),
			RentalObjectCode:  ptr.PointTo(""),
		})
		assert.NoError(t, err)

		got, err := m.Keys.GetKey(ctx, key.ID)
		assert.NoError(t, err)
		assert.Equal(t, 0, got.KeySequenceNumber)
		assert.Empty(t, got.RentalObjectCode)
	})

	t.Run("Should link key system", func(t *testing.T) {
		system := testutils.NewKeySystem(func(_ *model.KeySystem) {})
		testutils.CreateTestEntities(ctx, t, sql.NewRepository(db), system)

		key := testutils.NewKey(func(_ *model.Key) {})
		_, err := m.Keys.CreateKey(ctx, key)
		require.NoError(t, err)

		patched, err := m.Keys.PatchKey(ctx, key.ID, manager.KeyPatch{
			KeySystemID: &system.ID,
		})
		assert.NoError(t, err)
		require.NotNil(t, patched.KeySystemID)
		assert.Equal(t, system.ID, *patched.KeySystemID)
	})

	t.Run("Should error on empty name", func(t *testing.T) {
		key := testutils.NewKey(func(_ *model.Key) {})
		_, err := m.Keys.CreateKey(ctx, key)
		require.NoError(t, err)

		_, err = m.Keys.PatchKey(ctx, key.ID, manager.KeyPatch{
			KeyName: ptr.PointTo(" "),
		})
		assert.ErrorIs(t, err, manager.ErrKeyNameRequired)
	})

	t.Run("Should error on invalid key type", func(t *testing.T) {
		key := testutils.NewKey(func(_ *model.Key) {})
		_, err := m.Keys.CreateKey(ctx, key)
		require.NoError(t, err)

		_, err = m.Keys.PatchKey(ctx, key.ID, manager.KeyPatch{
			KeyType: ptr.PointTo(model.KeyType("DOOR")),
		})
		assert.ErrorIs(t, err, manager.ErrInvalidKeyType)
	})

	t.Run("Should error on unknown key system", func(t *testing.T) {
		key := testutils.NewKey(func(_ *model.Key) {})
		_, err := m.Keys.CreateKey(ctx, key)
		require.NoError(t, err)

		_, err = m.Keys.PatchKey(ctx, key.ID, manager.KeyPatch{
			KeySystemID: ptr.PointTo(uuid.New()),
		})
		assert.ErrorIs(t, err, manager.ErrKeySystemNotFound)
	})

	t.Run("Should error on unknown key", func(t *testing.T) {
		_, err := m.Keys.PatchKey(ctx, uuid.New(), manager.KeyPatch{
			KeyName: ptr.PointTo("renamed"),
		})
		assert.ErrorIs(t, err, manager.ErrKeyNotFound)
	})
}

func TestDisposeKey(t *testing.T) {
	m, _, _ := setupManagers(t)
	ctx := testutils.ActorContext(t)

	t.Run("Should dispose key", func(t *testing.T) {
		key := testutils.NewKey(func(_ *model.Key) {})
		_, err := m.Keys.CreateKey(ctx, key)
		require.NoError(t, err)

		disposed, err := m.Keys.DisposeKey(ctx, key.ID)
		assert.NoError(t, err)
		assert.True(t, disposed.Disposed)
		assert.NotNil(t, disposed.DisposedAt)

		entries, _, err := m.Activity.ListEntries(ctx,
			manager.ActivityFilter{KeyID: &key.ID}, repo.NewPagination(1, 10))
		assert.NoError(t, err)
		assert.Equal(t, manager.ActionKeyDisposed, entries[0].Action)
	})

	t.Run("Should error on double dispose", func(t *testing.T) {
		key := testutils.NewKey(func(_ *model.Key) {})
		_, err := m.Keys.CreateKey(ctx, key)
		require.NoError(t, err)

		_, err = m.Keys.DisposeKey(ctx, key.ID)
		assert.NoError(t, err)

		_, err = m.Keys.DisposeKey(ctx, key.ID)
		assert.ErrorIs(t, err, manager.ErrKeyDisposed)
	})

	t.Run("Should error when key is out on loan", func(t *testing.T) {
		key := testutils.NewKey(func(_ *model.Key) {})
		_, err := m.Keys.CreateKey(ctx, key)
		require.NoError(t, err)

		_, err = m.Loans.CreateLoan(ctx,
			testutils.NewKeyLoan(func(_ *model.KeyLoan) {}), []uuid.UUID{key.ID})
		require.NoError(t, err)

		_, err = m.Keys.DisposeKey(ctx, key.ID)
		assert.ErrorIs(t, err, manager.ErrKeyInActiveLoan)
	})

	t.Run("Should error on unknown key", func(t *testing.T) {
		_, err := m.Keys.DisposeKey(ctx, uuid.New())
		assert.ErrorIs(t, err, manager.ErrKeyNotFound)
	})
}

func TestRekeyKey(t *testing.T) {
	m, _, _ := setupManagers(t)
	ctx := testutils.ActorContext(t)

	t.Run("Should advance flex number", func(t *testing.T) {
		key := testutils.NewKey(func(_ *model.Key) {})
		_, err := m.Keys.CreateKey(ctx, key)
		require.NoError(t, err)

		rekeyed, err := m.Keys.RekeyKey(ctx, key.ID)
		assert.NoError(t, err)
		assert.Equal(t, 1, rekeyed.FlexNumber)

		rekeyed, err = m.Keys.RekeyKey(ctx, key.ID)
		assert.NoError(t, err)
		assert.Equal(t, 2, rekeyed.FlexNumber)

		entries, total, err := m.Activity.ListEntries(ctx,
			manager.ActivityFilter{KeyID: &key.ID}, repo.NewPagination(1, 10))
		assert.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Equal(t, manager.ActionKeyRekeyed, entries[0].Action)
	})

	t.Run("Should error on disposed key", func(t *testing.T) {
		key := testutils.NewKey(func(_ *model.Key) {})
		_, err := m.Keys.CreateKey(ctx, key)
		require.NoError(t, err)

		_, err = m.Keys.DisposeKey(ctx, key.ID)
		require.NoError(t, err)

		_, err = m.Keys.RekeyKey(ctx, key.ID)
		assert.ErrorIs(t, err, manager.ErrKeyDisposed)
	})

	t.Run("Should error on unknown key", func(t *testing.T) {
		_, err := m.Keys.RekeyKey(ctx, uuid.New())
		assert.ErrorIs(t, err, manager.ErrKeyNotFound)
	})
}

func TestBulkDeleteKeys(t *testing.T) {
	m, _, _ := setupManagers(t)
	ctx := testutils.ActorContext(t)

	t.Run("Should delete keys and skip unknown ids", func(t *testing.T) {
		first := testutils.NewKey(func(_ *model.Key) {})
		second := testutils.NewKey(func(_ *model.Key) {})

		_, err := m.Keys.CreateKey(ctx, first)
		require.NoError(t, err)
		_, err = m.Keys.CreateKey(ctx, second)
		require.NoError(t, err)

		deleted, err := m.Keys.BulkDeleteKeys(ctx, []uuid.UUID{first.ID, second.ID, uuid.New()})
		assert.NoError(t, err)
		assert.Equal(t, 2, deleted)

		_, err = m.Keys.GetKey(ctx, first.ID)
		assert.ErrorIs(t, err, manager.ErrKeyNotFound)
	})

	t.Run("Should reject batch when a key is out on loan", func(t *testing.T) {
		free := testutils.NewKey(func(_ *model.Key) {})
		loaned := testutils.NewKey(func(_ *model.Key) {})

		_, err := m.Keys.CreateKey(ctx, free)
		require.NoError(t, err)
		_, err = m.Keys.CreateKey(ctx, loaned)
		require.NoError(t, err)

		_, err = m.Loans.CreateLoan(ctx,
			testutils.NewKeyLoan(func(_ *model.KeyLoan) {}), []uuid.UUID{loaned.ID})
		require.NoError(t, err)

		_, err = m.Keys.BulkDeleteKeys(ctx, []uuid.UUID{free.ID, loaned.ID})
		assert.ErrorIs(t, err, manager.ErrKeyInActiveLoan)

		_, err = m.Keys.GetKey(ctx, free.ID)
		assert.NoError(t, err)
	})

	t.Run("Should do nothing on empty id list", func(t *testing.T) {
		deleted, err := m.Keys.BulkDeleteKeys(ctx, nil)
		assert.NoError(t, err)
		assert.Zero(t, deleted)
	})
}
