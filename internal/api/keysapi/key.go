package keysapi

import (
	"time"

	"github.com/google/uuid"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/manager"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/model"
	"github.com/Bostads-AB-Mimer/onecore-keys/utils/sanitise"
)

// Key is the wire form of a registry key.
type Key struct {
	ID                uuid.UUID     `json:"id"`
	KeyName           string        `json:"keyName"`
	KeyType           model.KeyType `json:"keyType"`
	KeySequenceNumber int           `json:"keySequenceNumber"`
	FlexNumber        int           `json:"flexNumber"`
	RentalObjectCode  string        `json:"rentalObjectCode,omitempty"`
	KeySystemID       *uuid.UUID    `json:"keySystemId,omitempty"`
	KeySystem         *KeySystem    `json:"keySystem,omitempty"`
	Disposed          bool          `json:"disposed"`
	DisposedAt        *time.Time    `json:"disposedAt,omitempty"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}

type KeySystem struct {
	ID          uuid.UUID `json:"id"`
	SystemCode  string    `json:"systemCode"`
	Name        string    `json:"name"`
	Type        string    `json:"type,omitempty"`
	Description string    `json:"description,omitempty"`
}

func KeyToAPI(key *model.Key) Key {
	out := Key{
		ID:                key.ID,
		KeyName:           key.KeyName,
		KeyType:           key.KeyType,
		KeySequenceNumber: key.KeySequenceNumber,
		FlexNumber:        key.FlexNumber,
		RentalObjectCode:  key.RentalObjectCode,
		KeySystemID:       key.KeySystemID,
		Disposed:          key.Disposed,
		DisposedAt:        key.DisposedAt,
		CreatedAt:         key.CreatedAt,
		UpdatedAt:         key.UpdatedAt,
	}

	if key.KeySystem != nil {
		out.KeySystem = &KeySystem{
			ID:          key.KeySystem.ID,
			SystemCode:  key.KeySystem.SystemCode,
			Name:        key.KeySystem.Name,
			Type:        key.KeySystem.Type,
			Description: key.KeySystem.Description,
		}
	}

	return out
}

func KeysToAPI(keys []*model.Key) []Key {
	out := make([]Key, len(keys))
	for i, key := range keys {
		out[i] = KeyToAPI(key)
	}

	return out
}

type CreateKeyRequest struct {
	KeyName           string        `json:"keyName"`
	KeyType           model.KeyType `json:"keyType"`
	KeySequenceNumber int           `json:"keySequenceNumber"`
	RentalObjectCode  string        `json:"rentalObjectCode"`
	KeySystemID       *uuid.UUID    `json:"keySystemId"`
}

func (r *CreateKeyRequest) ToModel() (*model.Key, error) {
	_, err := sanitise.Stringlikes(r)
	if err != nil {
		return nil, err
	}

	return &model.Key{
		KeyName:           r.KeyName,
		KeyType:           r.KeyType,
		KeySequenceNumber: r.KeySequenceNumber,
		RentalObjectCode:  r.RentalObjectCode,
		KeySystemID:       r.KeySystemID,
	}, nil
}

type PatchKeyRequest struct {
	KeyName           *string        `json:"keyName"`
	KeyType           *model.KeyType `json:"keyType"`
	KeySequenceNumber *int           `json:"keySequenceNumber"`
	RentalObjectCode  *string        `json:"rentalObjectCode"`
	KeySystemID       *uuid.UUID     `json:"keySystemId"`
}

func (r *PatchKeyRequest) ToPatch() (manager.KeyPatch, error) {
	_, err := sanitise.Stringlikes(r)
	if err != nil {
		return manager.KeyPatch{}, err
	}

	return manager.KeyPatch{
		KeyName:           r.KeyName,
		KeyType:           r.KeyType,
		KeySequenceNumber: r.KeySequenceNumber,
		RentalObjectCode:  r.RentalObjectCode,
		KeySystemID:       r.KeySystemID,
	}, nil
}

type BulkDeleteKeysRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

type BulkDeleteKeysResponse struct {
	Deleted int `json:"deleted"`
}
