package log

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hibiken/asynq"

	slogctx "github.com/veqryn/slog-context"

	keyscontext "github.com/Bostads-AB-Mimer/onecore-keys/utils/context"
)

// WithRequest attaches the request id and request data to the context
// so every log line emitted while serving the request carries them.
func WithRequest(ctx context.Context, r *http.Request) context.Context {
	requestID, _ := keyscontext.GetRequestID(ctx)

	return slogctx.With(ctx,
		slog.String("requestId", requestID),
		slog.Group("requestData",
			slog.String("method", r.Method),
			slog.String("host", r.Host),
			slog.String("path", r.URL.Path),
			slog.String("remote", r.RemoteAddr),
		),
	)
}

// WithTask attaches the task type to the context for worker log lines.
func WithTask(ctx context.Context, task *asynq.Task) context.Context {
	return slogctx.With(ctx, slog.String("taskType", task.Type()))
}

// ErrorAttr renders err under the same key slog-context uses, so error
// attributes line up no matter which path added them.
func ErrorAttr(err error) slog.Attr {
	return slog.Attr{
		Key:   slogctx.ErrKey,
		Value: slog.StringValue(err.Error()),
	}
}

func Debug(ctx context.Context, msg string, args ...slog.Attr) {
	write(ctx, slog.LevelDebug, msg, args)
}

func Info(ctx context.Context, msg string, args ...slog.Attr) {
	write(ctx, slog.LevelInfo, msg, args)
}

func Warn(ctx context.Context, msg string, args ...slog.Attr) {
	write(ctx, slog.LevelWarn, msg, args)
}

func Error(ctx context.Context, msg string, err error, args ...slog.Attr) {
	write(ctx, slog.LevelError, msg, append(args, slogctx.Err(err)))
}

func write(ctx context.Context, level slog.Level, msg string, args []slog.Attr) {
	slogctx.LogAttrs(ctx, level, msg, args...)
}
