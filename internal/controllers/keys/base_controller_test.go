package keys_test

import (
	"errors"
	"net/http"
	"testing"

	"gorm.io/gorm"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/api/write"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/testutils"
)

var ErrForced = errors.New("forced")

// contentEnvelope mirrors the single-resource response shape.
type contentEnvelope[T any] struct {
	Content T `json:"content"`
}

// listEnvelope mirrors the collection response shape.
type listEnvelope[T any] struct {
	Content []T         `json:"content"`
	Meta    write.Meta  `json:"_meta"`
	Links   write.Links `json:"_links"`
}

func startAPI(t *testing.T) (*gorm.DB, http.Handler, *testutils.MemoryStore) {
	t.Helper()

	db := testutils.NewTestDB(t)
	store := testutils.NewMemoryStore()

	return db, testutils.NewAPIServer(t, db, store), store
}
