package db

import (
	"context"
	"errors"
	"time"

	retry "github.com/avast/retry-go/v5"
	"github.com/samber/oops"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/config"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/db/dsn"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/errs"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/log"
)

const DBLogDomain = "db"

const (
	connectAttempts = 5
	connectDelay    = time.Second
	connectMaxDelay = 10 * time.Second
)

var ErrStartingDBCon = errors.New("error starting db connection")

// StartDB starts the DB connection for a configured application.
func StartDB(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	log.Info(ctx, "Starting DB connection")

	dbCon, err := StartDBConnection(ctx, cfg.Database)
	if err != nil {
		return nil, oops.In(DBLogDomain).Wrapf(err, "failed to initialize DB Connection")
	}

	return dbCon, nil
}

// StartDBConnection opens DB connection using data from `config.Database`.
// Connection attempts are retried with backoff; this is startup-only
// behaviour, request paths never retry.
func StartDBConnection(ctx context.Context, conf config.Database) (*gorm.DB, error) {
	dialector := postgres.Open(dsn.FromDBConfig(conf))

	var db *gorm.DB

	retrier := retry.New(
		retry.Delay(connectDelay),
		retry.MaxDelay(connectMaxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.Attempts(connectAttempts),
		retry.LastErrorOnly(true),
	)

	err := retrier.Do(func() error {
		var err error

		db, err = gorm.Open(dialector, &gorm.Config{
			TranslateError: true,
		})
		if err != nil {
			log.Warn(ctx, "DB connection attempt failed, retrying")
			return err
		}

		return nil
	})
	if err != nil {
		return nil, errs.Wrap(ErrStartingDBCon, err)
	}

	return db.WithContext(ctx), nil
}
