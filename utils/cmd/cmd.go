package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/config"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/log"
)

// RunFlags carries the command line options shared by the service entry
// points.
type RunFlags struct {
	GracefulShutdownSec     int64
	GracefulShutdownMessage string
	Env                     string
}

// RunFuncWithSignalHandling loads the configuration and runs f under a
// context that is cancelled on SIGINT or SIGTERM. It returns the process
// exit code. After f returns cleanly it waits the configured number of
// seconds so background goroutines can finish.
func RunFuncWithSignalHandling(f func(context.Context, *config.Config) error, runFlags RunFlags) int {
	ctx, cancelOnSignal := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer cancelOnSignal()

	cfg, err := config.LoadConfig(config.WithEnvOverride(runFlags.Env))
	if err != nil {
		return fail(ctx, "Failed to load the configuration", err)
	}

	log.Debug(ctx, "Configuration loaded", slog.Any("config", *cfg))

	err = f(ctx, cfg)
	if err != nil {
		return fail(ctx, "Application exited with an error", err)
	}

	// let running goroutines finish before the process exits
	if runFlags.GracefulShutdownSec > 0 {
		_, _ = fmt.Fprintf(os.Stderr, runFlags.GracefulShutdownMessage+"\n", runFlags.GracefulShutdownSec)
		time.Sleep(time.Duration(runFlags.GracefulShutdownSec) * time.Second)
	}

	return 0
}

func fail(ctx context.Context, msg string, err error) int {
	log.Error(ctx, msg, err)
	_, _ = fmt.Fprintln(os.Stderr, err)

	return 1
}
