package model_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/model"
)

func TestKeyBundleKeyIDs(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	bundle := model.KeyBundle{}
	require.NoError(t, bundle.SetKeyIDs(ids))

	got, err := bundle.KeyIDs()
	require.NoError(t, err)
	assert.Equal(t, ids, got)
}
