package manager

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/errs"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/model"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/repo"
	"github.com/Bostads-AB-Mimer/onecore-keys/utils/ptr"
)

// BundlePatch carries the updatable bundle fields. A nil KeyIDs leaves the
// member set untouched; an empty non-nil slice clears it.
type BundlePatch struct {
	Name        *string
	Description *string
	KeyIDs      []uuid.UUID
}

type BundleManager struct {
	repo repo.Repo
}

func NewBundleManager(repository repo.Repo) *BundleManager {
	return &BundleManager{
		repo: repository,
	}
}

func (m *BundleManager) ListBundles(
	ctx context.Context,
	pagination repo.Pagination,
) ([]*model.KeyBundle, int, error) {
	query := pagination.Apply(repo.NewQuery()).
		Order(repo.OrderField{Field: repo.NameField, Direction: repo.Asc})

	var bundles []*model.KeyBundle

	count, err := m.repo.List(ctx, model.KeyBundle{}, &bundles, *query)
	if err != nil {
		return nil, 0, errs.Wrap(ErrListBundlesDB, err)
	}

	return bundles, count, nil
}

func (m *BundleManager) CreateBundle(
	ctx context.Context,
	bundle *model.KeyBundle,
	keyIDs []uuid.UUID,
) (*model.KeyBundle, error) {
	if bundle.Name == "" {
		return nil, ErrBundleNameRequired
	}

	keyIDs = dedupeIDs(keyIDs)

	err := m.checkBundleKeysExist(ctx, keyIDs)
	if err != nil {
		return nil, err
	}

	if bundle.ID == uuid.Nil {
		bundle.ID = uuid.New()
	}

	err = bundle.SetKeyIDs(keyIDs)
	if err != nil {
		return nil, errs.Wrap(ErrCreateBundleDB, err)
	}

	err = m.repo.Create(ctx, bundle)
	if err != nil {
		return nil, errs.Wrap(ErrCreateBundleDB, err)
	}

	return bundle, nil
}

func (m *BundleManager) GetBundle(ctx context.Context, id uuid.UUID) (*model.KeyBundle, error) {
	bundle := &model.KeyBundle{ID: id}

	_, err := m.repo.First(ctx, bundle, *repo.NewQuery())
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errs.Wrap(ErrBundleNotFound, err)
		}

		return nil, errs.Wrap(ErrGetBundleDB, err)
	}

	return bundle, nil
}

func (m *BundleManager) PatchBundle(
	ctx context.Context,
	id uuid.UUID,
	patch BundlePatch,
) (*model.KeyBundle, error) {
	bundle, err := m.GetBundle(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if !ptr.IsValidStrPtr(patch.Name) {
			return nil, ErrBundleNameRequired
		}

		bundle.Name = *patch.Name
	}

	if patch.Description != nil {
		bundle.Description = *patch.Description
	}

	if patch.KeyIDs != nil {
		keyIDs := dedupeIDs(patch.KeyIDs)

		err := m.checkBundleKeysExist(ctx, keyIDs)
		if err != nil {
			return nil, err
		}

		err = bundle.SetKeyIDs(keyIDs)
		if err != nil {
			return nil, errs.Wrap(ErrUpdateBundleDB, err)
		}
	}

	_, err = m.repo.Patch(ctx, bundle, *repo.NewQuery().UpdateAll(true))
	if err != nil {
		return nil, errs.Wrap(ErrUpdateBundleDB, err)
	}

	return bundle, nil
}

func (m *BundleManager) DeleteBundle(ctx context.Context, id uuid.UUID) error {
	deleted, err := m.repo.Delete(ctx, &model.KeyBundle{ID: id}, *repo.NewQuery())
	if err != nil {
		return errs.Wrap(ErrDeleteBundleDB, err)
	}

	if !deleted {
		return ErrBundleNotFound
	}

	return nil
}

func (m *BundleManager) checkBundleKeysExist(ctx context.Context, keyIDs []uuid.UUID) error {
	if len(keyIDs) == 0 {
		return nil
	}

	var keys []*model.Key

	count, err := m.repo.List(ctx, model.Key{}, &keys,
		*repo.NewQuery().
			Where(repo.Eq(repo.IDField, keyIDs)).
			SetLimit(repo.MaxLimit))
	if err != nil {
		return errs.Wrap(ErrGetBundleDB, err)
	}

	if count != len(keyIDs) {
		return ErrBundleKeyNotFound
	}

	return nil
}
