package testutils

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	gormdriver "gorm.io/driver/sqlite"
	_ "modernc.org/sqlite"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/model"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/repo"
)

// NewTestDB opens a file backed SQLite database under the test temp dir and
// migrates the full schema. Each test gets its own database file, so tests
// can run in parallel without sharing state.
func NewTestDB(tb testing.TB) *gorm.DB {
	tb.Helper()

	file := filepath.Join(tb.TempDir(), "keys.db")

	db, err := gorm.Open(gormdriver.Dialector{DriverName: "sqlite", DSN: file}, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(tb, err)

	sqlDB, err := db.DB()
	require.NoError(tb, err)

	_, err = sqlDB.Exec("PRAGMA busy_timeout = 5000")
	require.NoError(tb, err)

	require.NoError(tb, db.AutoMigrate(
		&model.KeySystem{},
		&model.Key{},
		&model.KeyBundle{},
		&model.KeyLoan{},
		&model.Receipt{},
		&model.Signature{},
		&model.KeyEvent{},
		&model.Card{},
		&model.KeyLogEntry{},
	))

	tb.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

func CreateTestEntities(ctx context.Context, tb testing.TB, r repo.Repo, entities ...repo.Model) {
	tb.Helper()

	for _, e := range entities {
		err := r.Create(ctx, e)
		assert.NoError(tb, err)
	}
}
