package db

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the pgx database/sql driver

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/config"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/db/dsn"
	"github.com/Bostads-AB-Mimer/onecore-keys/migrations"
)

type migrateFunc func(ctx context.Context, db *sql.DB, dir string) error

type Migration struct {
	Downgrade bool
}

type Migrator interface {
	MigrateToLatest(ctx context.Context, migration Migration) error
	MigrateTo(ctx context.Context, migration Migration, version int64) error
}

type migrator struct {
	dsn string
}

func NewMigrator(cfg *config.Config) Migrator {
	return &migrator{
		dsn: dsn.FromDBConfig(cfg.Database),
	}
}

// MigrateToLatest runs migrations onto the latest version
// For migrations with Downgrade false, it runs all migrations up to and including the latest version
// For migrations with Downgrade true, it downgrades the latest version
func (m *migrator) MigrateToLatest(
	ctx context.Context,
	migration Migration,
) error {
	return m.migrate(ctx, func(ctx context.Context, db *sql.DB, dir string) error {
		if migration.Downgrade {
			return goose.DownContext(ctx, db, dir)
		}
		return goose.UpContext(ctx, db, dir)
	})
}

// MigrateTo runs migrations up-to a specific version
// For migrations with Downgrade false, it migrates up to the specified version
// For migrations with Downgrade true, it downgrades until the DB is the specified version
func (m *migrator) MigrateTo(
	ctx context.Context,
	migration Migration,
	version int64,
) error {
	return m.migrate(ctx, func(ctx context.Context, db *sql.DB, dir string) error {
		if migration.Downgrade {
			return goose.DownToContext(ctx, db, dir, version)
		}
		return goose.UpToContext(ctx, db, dir, version)
	})
}

func (m *migrator) migrate(
	ctx context.Context,
	f migrateFunc,
) error {
	goose.SetBaseFS(migrations.FS)

	dbCon, err := goose.OpenDBWithDriver("pgx", m.dsn)
	if err != nil {
		return err
	}
	defer dbCon.Close()

	return f(ctx, dbCon, migrations.Dir)
}
