package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/middleware"
	keyscontext "github.com/Bostads-AB-Mimer/onecore-keys/utils/context"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims middleware.Claims) string {
	t.Helper()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	return signed
}

func TestAuthMiddleware(t *testing.T) {
	validClaims := middleware.Claims{
		Username: "maintenance-admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	tests := []struct {
		name           string
		header         string
		expectedStatus int
		expectedActor  string
	}{
		{
			name:           "missing header",
			header:         "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "not a bearer token",
			header:         "Basic dXNlcjpwYXNz",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "malformed token",
			header:         "Bearer not-a-token",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong secret",
			header:         "Bearer " + signToken(t, "other-secret", validClaims),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "expired token",
			header: "Bearer " + signToken(t, testSecret, middleware.Claims{
				Username: "maintenance-admin",
				RegisteredClaims: jwt.RegisteredClaims{
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
				},
			}),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "valid token",
			header:         "Bearer " + signToken(t, testSecret, validClaims),
			expectedStatus: http.StatusOK,
			expectedActor:  "maintenance-admin",
		},
		{
			name: "subject fallback",
			header: "Bearer " + signToken(t, testSecret, middleware.Claims{
				RegisteredClaims: jwt.RegisteredClaims{
					Subject:   "user-1",
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				},
			}),
			expectedStatus: http.StatusOK,
			expectedActor:  "user-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var actor string

			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				actor, _ = keyscontext.GetActor(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rr := httptest.NewRecorder()

			middleware.AuthMiddleware(testSecret)(handler).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)

			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, tt.expectedActor, actor)
			} else {
				assert.Contains(t, rr.Body.String(), "Unauthorized")
			}
		})
	}
}
