package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/api/write"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/apierrors"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/log"
	keyscontext "github.com/Bostads-AB-Mimer/onecore-keys/utils/context"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims are the token claims accepted on API requests.
type Claims struct {
	Username string `json:"username"`

	jwt.RegisteredClaims
}

// Actor is the identity recorded against actions performed with this token.
// Falls back to the token subject when no username claim is present.
func (c *Claims) Actor() string {
	if c.Username != "" {
		return c.Username
	}

	return c.Subject
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// token identity as the acting user for downstream activity logging.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				write.ErrorResponse(ctx, w, apierrors.UnauthorizedError())

				return
			}

			claims, err := parseToken(secret, strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				log.Warn(ctx, "Rejected bearer token", log.ErrorAttr(err))
				write.ErrorResponse(ctx, w, apierrors.UnauthorizedError())

				return
			}

			next.ServeHTTP(w, r.WithContext(keyscontext.WithActor(ctx, claims.Actor())))
		})
	}
}

func parseToken(secret, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			//nolint:err113
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
