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

const AppName = "TASK_SCHEDULER"

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

	scheduler := async.New(cfg)

	err = scheduler.RunScheduler()
	if err != nil {
		return oops.In("main").Wrapf(err, "starting scheduler")
	}

	<-ctx.Done()

	err = scheduler.Shutdown(ctx)
	if err != nil {
		return oops.In("main").Wrapf(err, "stopping scheduler")
	}

	keyslog.Info(ctx, "Scheduler stopped")

	return nil
}

func main() {
	err := start()
	if err != nil {
		log.Fatal(err)
	}
}
