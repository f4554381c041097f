package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/oops"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/async"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/config"
	keyslog "github.com/Bostads-AB-Mimer/onecore-keys/internal/log"
)

const AppName = "TASK_WORKER"

func start() error {
	ctx, cancelOnSignal := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)

	defer cancelOnSignal()

	cfg, err := config.LoadConfig(
		config.WithEnvOverride(AppName),
	)
	if err != nil {
		return oops.In("main").Wrapf(err, "loading config")
	}

	keyslog.InitAsDefault(cfg.Logger, cfg.Application)

	worker := async.New(cfg)

	err = worker.RunWorker(ctx)
	if err != nil {
		return oops.In("main").Wrapf(err, "starting task worker")
	}

	<-ctx.Done()

	err = worker.Shutdown(ctx)
	if err != nil {
		return oops.In("main").Wrapf(err, "stopping task worker")
	}

	keyslog.Info(ctx, "Task worker stopped")

	return nil
}

func main() {
	err := start()
	if err != nil {
		log.Fatal(err)
	}
}
