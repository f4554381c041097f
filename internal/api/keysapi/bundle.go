package keysapi

import (
	"time"

	"github.com/google/uuid"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/manager"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/model"
	"github.com/Bostads-AB-Mimer/onecore-keys/utils/sanitise"
)

// KeyBundle is the wire form of a named key set. The member list is
// decoded from its stored representation on the way out.
type KeyBundle struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Keys        []uuid.UUID `json:"keys"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func KeyBundleToAPI(bundle *model.KeyBundle) (KeyBundle, error) {
	ids, err := bundle.KeyIDs()
	if err != nil {
		return KeyBundle{}, err
	}

	if ids == nil {
		ids = []uuid.UUID{}
	}

	return KeyBundle{
		ID:          bundle.ID,
		Name:        bundle.Name,
		Description: bundle.Description,
		Keys:        ids,
		CreatedAt:   bundle.CreatedAt,
		UpdatedAt:   bundle.UpdatedAt,
	}, nil
}

func KeyBundlesToAPI(bundles []*model.KeyBundle) ([]KeyBundle, error) {
	out := make([]KeyBundle, len(bundles))

	for i, bundle := range bundles {
		apiBundle, err := KeyBundleToAPI(bundle)
		if err != nil {
			return nil, err
		}

		out[i] = apiBundle
	}

	return out, nil
}

type CreateKeyBundleRequest struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Keys        []uuid.UUID `json:"keys"`
}

func (r *CreateKeyBundleRequest) ToModel() (*model.KeyBundle, []uuid.UUID, error) {
	_, err := sanitise.Stringlikes(r)
	if err != nil {
		return nil, nil, err
	}

	return &model.KeyBundle{
		Name:        r.Name,
		Description: r.Description,
	}, r.Keys, nil
}

type PatchKeyBundleRequest struct {
	Name        *string     `json:"name"`
	Description *string     `json:"description"`
	Keys        []uuid.UUID `json:"keys"`
}

func (r *PatchKeyBundleRequest) ToPatch() (manager.BundlePatch, error) {
	_, err := sanitise.Stringlikes(r)
	if err != nil {
		return manager.BundlePatch{}, err
	}

	return manager.BundlePatch{
		Name:        r.Name,
		Description: r.Description,
		KeyIDs:      r.Keys,
	}, nil
}
