package middleware

import (
	"net/http"

	keyscontext "github.com/Bostads-AB-Mimer/onecore-keys/utils/context"
)

// RequestIDHeader carries the request id between onecore services.
const RequestIDHeader = "X-Request-Id"

// RequestID makes a request id available to all downstream handlers.
// An id arriving on the X-Request-Id header is kept, otherwise a fresh
// one is generated. The id is echoed on the response so callers can
// correlate logs across services.
func RequestID() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if id := r.Header.Get(RequestIDHeader); id != "" {
				ctx = keyscontext.WithRequestID(ctx, id)
			} else {
				ctx = keyscontext.WithNewRequestID(ctx)
			}

			if requestID, err := keyscontext.GetRequestID(ctx); err == nil {
				w.Header().Set(RequestIDHeader, requestID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
