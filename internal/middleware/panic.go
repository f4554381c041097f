package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/api/write"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/log"
)

// PanicRecovery turns a handler panic into a 500 response. The stack is
// logged so the panic site can be found from the request log.
func PanicRecovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func(ctx context.Context) {
				if rec := recover(); rec != nil {
					//nolint:err113
					err := fmt.Errorf("%v", rec)
					log.Error(ctx, "Recovered from handler panic", err,
						slog.String("stack", string(debug.Stack())),
					)

					write.PanicResponse(ctx, w, err)
				}
			}(r.Context())

			next.ServeHTTP(w, r)
		})
	}
}
