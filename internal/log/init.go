package log

import (
	"log/slog"
	"os"
	"strings"

	slogctx "github.com/veqryn/slog-context"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/config"
)

// InitAsDefault installs the configured handler as the process-wide slog
// default. The slog-context wrapper makes attributes injected on the request
// context show up on every record.
func InitAsDefault(cfg config.Logger, app config.Application) {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler

	switch strings.ToLower(cfg.Format) {
	case "text":
		handler = slog.NewTextHandler(os.Stdout, opts)
	default:
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(slogctx.NewHandler(handler, nil)).With(
		slog.String("application", app.Name),
		slog.String("environment", app.Environment),
	)

	slog.SetDefault(logger)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
