package main

import (
	"context"
	"flag"
	"os"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/config"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/db"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/log"
	"github.com/Bostads-AB-Mimer/onecore-keys/utils/cmd"
)

const defaultGracefulShutdown = 1

var (
	gracefulShutdownSec     = flag.Int64("graceful-shutdown", defaultGracefulShutdown, "seconds to linger before exiting")
	gracefulShutdownMessage = flag.String(
		"graceful-shutdown-message",
		"Shutting down in %d seconds",
		"graceful shutdown message",
	)
	version  = flag.Int64("version", 0, "run migration until targeted version")
	rollback = flag.Bool("r", false, "run down migrations (rollback)")
)

func run(ctx context.Context, cfg *config.Config) error {
	log.InitAsDefault(cfg.Logger, cfg.Application)

	m := db.NewMigrator(cfg)

	req := db.Migration{
		Downgrade: *rollback,
	}

	if *version != 0 {
		return m.MigrateTo(ctx, req, *version)
	}

	return m.MigrateToLatest(ctx, req)
}

// main only parses flags and defers to run, which is testable.
func main() {
	flag.Parse()

	exitCode := cmd.RunFuncWithSignalHandling(run, cmd.RunFlags{
		GracefulShutdownSec:     *gracefulShutdownSec,
		GracefulShutdownMessage: *gracefulShutdownMessage,
		Env:                     "DB_MIGRATOR",
	})
	os.Exit(exitCode)
}
