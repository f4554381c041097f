package manager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/errs"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/log"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/model"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/repo"
	"github.com/Bostads-AB-Mimer/onecore-keys/utils/ptr"
)

// KeySearchFilter narrows the key search. Disposed keys stay hidden unless
// IncludeDisposed is set.
type KeySearchFilter struct {
	RentalObjectCode string
	KeySystemID      *uuid.UUID
	KeyType          model.KeyType
	NameContains     string
	IncludeDisposed  bool
}

// KeyPatch carries the updatable key fields. Nil fields are left untouched.
type KeyPatch struct {
	KeyName           *string
	KeyType           *model.KeyType
	KeySequenceNumber *int
	RentalObjectCode  *string
	KeySystemID       *uuid.UUID
}

type KeyManager struct {
	repo     repo.Repo
	activity *ActivityManager
}

func NewKeyManager(repository repo.Repo, activity *ActivityManager) *KeyManager {
	return &KeyManager{
		repo:     repository,
		activity: activity,
	}
}

func (m *KeyManager) SearchKeys(
	ctx context.Context,
	filter KeySearchFilter,
	pagination repo.Pagination,
) ([]*model.Key, int, error) {
	if filter.KeyType != "" && !filter.KeyType.Valid() {
		return nil, 0, ErrInvalidKeyType
	}

	var conds []repo.Condition

	if filter.RentalObjectCode != "" {
		conds = append(conds, repo.Eq(repo.RentalObjectCodeField, filter.RentalObjectCode))
	}

	if filter.KeySystemID != nil {
		conds = append(conds, repo.Eq(repo.KeySystemIDField, *filter.KeySystemID))
	}

	if filter.KeyType != "" {
		conds = append(conds, repo.Eq(repo.KeyTypeField, filter.KeyType))
	}

	if filter.NameContains != "" {
		conds = append(conds, repo.Like(repo.KeyNameField, filter.NameContains))
	}

	if !filter.IncludeDisposed {
		conds = append(conds, repo.Eq(repo.DisposedField, false))
	}

	query := pagination.Apply(repo.NewQuery().Where(conds...)).
		Order(repo.OrderField{Field: repo.KeyNameField, Direction: repo.Asc})

	var keys []*model.Key

	count, err := m.repo.List(ctx, model.Key{}, &keys, *query)
	if err != nil {
		return nil, 0, errs.Wrap(ErrListKeysDB, err)
	}

	return keys, count, nil
}

func (m *KeyManager) CreateKey(ctx context.Context, key *model.Key) (*model.Key, error) {
	if key.KeyName == "" {
		return nil, ErrKeyNameRequired
	}

	if !key.KeyType.Valid() {
		return nil, ErrInvalidKeyType
	}

	if key.KeySystemID != nil {
		err := m.checkKeySystemExists(ctx, *key.KeySystemID)
		if err != nil {
			return nil, err
		}
	}

	if key.ID == uuid.Nil {
		key.ID = uuid.New()
	}

	ctx = model.LogWithKey(ctx, key)

	err := m.repo.Transaction(ctx, func(ctx context.Context, tx repo.Repo) error {
		err := tx.Create(ctx, key)
		if err != nil {
			return errs.Wrap(ErrCreateKeyDB, err)
		}

		return m.activity.Record(ctx, tx, &model.KeyLogEntry{
			KeyID:   &key.ID,
			Action:  ActionKeyCreated,
			Message: "key " + key.KeyName + " registered",
		})
	})
	if err != nil {
		return nil, err
	}

	log.Info(ctx, "key registered")

	return key, nil
}

func (m *KeyManager) GetKey(ctx context.Context, id uuid.UUID) (*model.Key, error) {
	key := &model.Key{ID: id}

	_, err := m.repo.First(ctx, key, *repo.NewQuery().Preload("KeySystem"))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errs.Wrap(ErrKeyNotFound, err)
		}

		return nil, errs.Wrap(ErrGetKeyDB, err)
	}

	return key, nil
}

func (m *KeyManager) PatchKey(ctx context.Context, id uuid.UUID, patch KeyPatch) (*model.Key, error) {
	key := &model.Key{ID: id}

	_, err := m.repo.First(ctx, key, *repo.NewQuery())
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errs.Wrap(ErrKeyNotFound, err)
		}

		return nil, errs.Wrap(ErrGetKeyDB, err)
	}

	if patch.KeyName != nil {
		if !ptr.IsValidStrPtr(patch.KeyName) {
			return nil, ErrKeyNameRequired
		}

		key.KeyName = *patch.KeyName
	}

	if patch.KeyType != nil {
		if !patch.KeyType.Valid() {
			return nil, ErrInvalidKeyType
		}

		key.KeyType = *patch.KeyType
	}

	if patch.KeySequenceNumber != nil {
		key.KeySequenceNumber = *patch.KeySequenceNumber
	}

	if patch.RentalObjectCode != nil {
		key.RentalObjectCode = *patch.RentalObjectCode
	}

	if patch.KeySystemID != nil {
		err := m.checkKeySystemExists(ctx, *patch.KeySystemID)
		if err != nil {
			return nil, err
		}

		key.KeySystemID = patch.KeySystemID
	}

	err = m.repo.Transaction(ctx, func(ctx context.Context, tx repo.Repo) error {
		// Full write-back so zero-valued patches (sequence number, cleared
		// rental object code) persist.
		_, err := tx.Patch(ctx, key, *repo.NewQuery().UpdateAll(true))
		if err != nil {
			return errs.Wrap(ErrUpdateKeyDB, err)
		}

		return m.activity.Record(ctx, tx, &model.KeyLogEntry{
			KeyID:   &key.ID,
			Action:  ActionKeyUpdated,
			Message: "key " + key.KeyName + " updated",
		})
	})
	if err != nil {
		return nil, err
	}

	return key, nil
}

// DisposeKey marks a key disposed. Keys sitting in an active loan cannot be
// disposed; the active-loan check runs inside the transaction.
func (m *KeyManager) DisposeKey(ctx context.Context, id uuid.UUID) (*model.Key, error) {
	key := &model.Key{ID: id}

	err := m.repo.Transaction(ctx, func(ctx context.Context, tx repo.Repo) error {
		_, err := tx.First(ctx, key, *repo.NewQuery())
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return errs.Wrap(ErrKeyNotFound, err)
			}

			return errs.Wrap(ErrGetKeyDB, err)
		}

		if key.Disposed {
			return ErrKeyDisposed
		}

		loan, err := activeLoanHoldingKeys(ctx, tx, []uuid.UUID{id})
		if err != nil {
			return err
		}

		if loan != nil {
			return ErrKeyInActiveLoan
		}

		key.Disposed = true
		key.DisposedAt = ptr.PointTo(time.Now().UTC())

		_, err = tx.Patch(ctx, key, *repo.NewQuery())
		if err != nil {
			return errs.Wrap(ErrUpdateKeyDB, err)
		}

		return m.activity.Record(ctx, tx, &model.KeyLogEntry{
			KeyID:   &key.ID,
			Action:  ActionKeyDisposed,
			Message: "key " + key.KeyName + " disposed",
		})
	})
	if err != nil {
		return nil, err
	}

	log.Info(model.LogWithKey(ctx, key), "key disposed")

	return key, nil
}

// RekeyKey advances the flex number by one after a cylinder switch.
func (m *KeyManager) RekeyKey(ctx context.Context, id uuid.UUID) (*model.Key, error) {
	key := &model.Key{ID: id}

	err := m.repo.Transaction(ctx, func(ctx context.Context, tx repo.Repo) error {
		_, err := tx.First(ctx, key, *repo.NewQuery())
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return errs.Wrap(ErrKeyNotFound, err)
			}

			return errs.Wrap(ErrGetKeyDB, err)
		}

		if key.Disposed {
			return ErrKeyDisposed
		}

		key.FlexNumber++

		_, err = tx.Patch(ctx, key, *repo.NewQuery())
		if err != nil {
			return errs.Wrap(ErrUpdateKeyDB, err)
		}

		return m.activity.Record(ctx, tx, &model.KeyLogEntry{
			KeyID:   &key.ID,
			Action:  ActionKeyRekeyed,
			Message: fmt.Sprintf("flex number advanced to %d", key.FlexNumber),
		})
	})
	if err != nil {
		return nil, err
	}

	log.Info(model.LogWithKey(ctx, key), "key rekeyed",
		slog.Int("flexNumber", key.FlexNumber))

	return key, nil
}

// BulkDeleteKeys removes keys permanently. The whole batch is rejected when
// any of the keys is out on an active loan. It returns the number of keys
// actually deleted; unknown ids are skipped.
func (m *KeyManager) BulkDeleteKeys(ctx context.Context, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	deleted := 0

	err := m.repo.Transaction(ctx, func(ctx context.Context, tx repo.Repo) error {
		loan, err := activeLoanHoldingKeys(ctx, tx, ids)
		if err != nil {
			return err
		}

		if loan != nil {
			return ErrKeyInActiveLoan
		}

		var keys []*model.Key

		count, err := tx.List(ctx, model.Key{}, &keys,
			*repo.NewQuery().Where(repo.Eq(repo.IDField, ids)).SetLimit(repo.MaxLimit))
		if err != nil {
			return errs.Wrap(ErrListKeysDB, err)
		}

		if count == 0 {
			return nil
		}

		_, err = tx.Delete(ctx, &model.Key{}, *repo.NewQuery().Where(idQuery))
		if err != nil {
			return errs.Wrap(ErrDeleteKeysDB, err)
		}

		deleted = count

		return m.activity.Record(ctx, tx, &model.KeyLogEntry{
			Action:  ActionKeysDeleted,
			Message: fmt.Sprintf("%d keys deleted", count),
		})
	})
	if err != nil {
		return 0, err
	}

	return deleted, nil
}

func (m *KeyManager) checkKeySystemExists(ctx context.Context, id uuid.UUID) error {
	_, err := m.repo.First(ctx, &model.KeySystem{ID: id}, *repo.NewQuery())
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errs.Wrap(ErrKeySystemNotFound, err)
		}

		return errs.Wrap(ErrGetKeyDB, err)
	}

	return nil
}
