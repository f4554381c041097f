package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/oops"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/config"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/daemon"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/db"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/log"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/manager"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/model"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/repo"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/repo/sql"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/storage"
	"github.com/Bostads-AB-Mimer/onecore-keys/utils/cmd"
	"github.com/Bostads-AB-Mimer/onecore-keys/utils/ptr"
)

var (
	gracefulShutdownSec     = flag.Int64("graceful-shutdown", 1, "seconds to linger before exiting")
	gracefulShutdownMessage = flag.String("graceful-shutdown-message", "Shutting down in %d seconds",
		"graceful shutdown message")
	env = flag.String("env", "API_SERVER", "environment variable prefix for config overrides")
)

const (
	loanGaugeInterval = time.Minute
	labelLoanType     = "loan_type"
)

// run starts the API server and blocks until the context is cancelled.
func run(ctx context.Context, cfg *config.Config) error {
	log.InitAsDefault(cfg.Logger, cfg.Application)

	dbCon, err := db.StartDB(ctx, cfg)
	if err != nil {
		return oops.In("main").Wrapf(err, "starting db")
	}

	store, err := storage.NewMinioStore(cfg.Storage)
	if err != nil {
		return oops.In("main").Wrapf(err, "creating object store")
	}

	err = store.EnsureBucket(ctx)
	if err != nil {
		log.Error(ctx, "failed to ensure storage bucket", err)
	}

	repository := sql.NewRepository(dbCon)
	go monitorActiveLoans(ctx, manager.NewLoanManager(repository, manager.NewActivityManager(repository), nil))

	s, err := daemon.NewKeysServer(ctx, cfg, dbCon, store)
	if err != nil {
		return oops.In("main").Wrapf(err, "creating keys server")
	}

	err = s.Start(ctx)
	if err != nil {
		return oops.In("main").Wrapf(err, "starting keys api server")
	}

	<-ctx.Done()

	err = s.Close(ctx)
	if err != nil {
		return oops.In("main").Wrapf(err, "closing server")
	}

	return nil
}

// monitorActiveLoans exports the number of active loans per loan type on the
// metrics endpoint, refreshed on a fixed interval.
func monitorActiveLoans(ctx context.Context, loans *manager.LoanManager) {
	gauge := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "key_loans_active",
			Help: "The number of active key loans by loan type",
		},
		[]string{
			labelLoanType,
		},
	)
	prometheus.MustRegister(gauge)

	log.Debug(ctx, "Registered active loan gauge metric")

	ticker := time.NewTicker(loanGaugeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info(ctx, "stopping active loan monitoring")
			return
		case <-ticker.C:
			for _, loanType := range []model.LoanType{model.LoanTypeTenant, model.LoanTypeMaintenance} {
				_, count, err := loans.ListLoans(ctx, manager.LoanSearchFilter{
					Active:   ptr.PointTo(true),
					LoanType: loanType,
				}, repo.NewPagination(1, 1))
				if err != nil {
					log.Error(ctx, "failed to count active loans", err)
					continue
				}

				gauge.WithLabelValues(string(loanType)).Set(float64(count))
				log.Debug(ctx, "active loans", slog.String("loanType", string(loanType)), slog.Int("count", count))
			}
		}
	}
}

// main only parses flags and defers to run, which is testable.
func main() {
	flag.Parse()

	exitCode := cmd.RunFuncWithSignalHandling(run, cmd.RunFlags{
		GracefulShutdownSec:     *gracefulShutdownSec,
		GracefulShutdownMessage: *gracefulShutdownMessage,
		Env:                     *env,
	})
	os.Exit(exitCode)
}
