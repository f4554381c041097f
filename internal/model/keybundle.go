package model

import (
	"encoding/json"

	"github.com/google/uuid"
)

// KeyBundle is a named set of keys managed as a unit. The member keys are
// stored as a serialized id list; referential checks are application level.
type KeyBundle struct {
	Timestamps

	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name        string          `gorm:"type:varchar(255);not null"`
	Description string          `gorm:"type:text"`
	Keys        json.RawMessage `gorm:"type:jsonb"`
}

func (KeyBundle) TableName() string {
	return "key_bundles"
}

func (b *KeyBundle) KeyIDs() ([]uuid.UUID, error) {
	return decodeKeyIDs(b.Keys)
}

func (b *KeyBundle) SetKeyIDs(ids []uuid.UUID) error {
	raw, err := encodeKeyIDs(ids)
	if err != nil {
		return err
	}

	b.Keys = raw

	return nil
}

func decodeKeyIDs(raw json.RawMessage) ([]uuid.UUID, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var ids []uuid.UUID

	err := json.Unmarshal(raw, &ids)
	if err != nil {
		return nil, err
	}

	return ids, nil
}

func encodeKeyIDs(ids []uuid.UUID) (json.RawMessage, error) {
	if ids == nil {
		ids = []uuid.UUID{}
	}

	return json.Marshal(ids)
}
