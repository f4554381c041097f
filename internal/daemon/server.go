package daemon

import (
	"context"
	"errors"
	"net/http"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samber/oops"
	"gorm.io/gorm"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/clients"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/config"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/controllers/keys"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/log"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/middleware"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/repo/sql"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/storage"
)

const (
	ReadHeaderTimeout = 5 * time.Second
	ReadTimeout       = 10 * time.Second
	WriteTimeout      = 10 * time.Second
	IdleTimeout       = 120 * time.Second

	APIVersionedNamespace = "/v1"
)

type KeysServer struct {
	cfg            *config.Config
	controller     *keys.APIController
	clientsFactory *clients.Factory
	server         *http.Server
}

type Server interface {
	Start(ctx context.Context) error
	Close(ctx context.Context) error
}

func NewKeysServer(
	ctx context.Context,
	cfg *config.Config,
	dbCon *gorm.DB,
	store storage.ObjectStore,
) (*KeysServer, error) {
	clientsFactory, err := clients.NewFactory(cfg.Services)
	if err != nil {
		log.Error(ctx, "error connecting to downstream services", err)
	}

	controller := keys.NewAPIController(sql.NewRepository(dbCon), store, clientsFactory)

	return &KeysServer{
		cfg:            cfg,
		clientsFactory: clientsFactory,
		controller:     controller,
		server:         createHTTPServer(cfg, controller),
	}, nil
}

func (s *KeysServer) Close(ctx context.Context) error {
	shutdownCtx, shutdownRelease := context.WithTimeout(ctx, s.cfg.HTTP.ShutdownTimeout)
	defer shutdownRelease()

	err := s.server.Shutdown(shutdownCtx)
	if err != nil {
		return oops.In("daemon").
			WithContext(ctx).
			Wrapf(err, "HTTP server shutdown failed")
	}

	log.Info(ctx, "HTTP server stopped cleanly")

	return nil
}

func (s *KeysServer) Start(ctx context.Context) error {
	go func() {
		err := s.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "HTTP server failed", err)

			// signalling ourselves routes the failure through the same
			// shutdown path as an operator-initiated stop
			_ = syscall.Kill(syscall.Getpid(), syscall.SIGTERM)
		}
	}()

	return nil
}

func createHTTPServer(cfg *config.Config, ctr *keys.APIController) *http.Server {
	r := chi.NewRouter()

	// The request ID middleware is registered first so every later
	// middleware and handler logs with it.
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.PanicRecovery())

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route(APIVersionedNamespace, func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret))
		r.Mount("/", ctr.Routes())
	})

	return &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           r,
		ReadHeaderTimeout: ReadHeaderTimeout,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
	}
}
