package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/NagaSaiTejo/Secure-JWT-auth-rs256/internal/tokens"
)

type identityContextKey struct{}

// IdentityFromContext returns the verified claims that Authenticate attached
// for the current request.
func IdentityFromContext(ctx context.Context) (*tokens.Claims, bool) {
	claims, ok := ctx.Value(identityContextKey{}).(*tokens.Claims)
	return claims, ok
}

// Authenticate extracts the bearer credential, verifies it, and attaches the
// decoded identity to the request context. An expired access token gets its
// own error code so clients know to refresh instead of logging in again. The
// token string itself is never logged.
func (a *API) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized", "No token provided")
			return
		}

		token, ok := bearerToken(header)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized", "Malformed token")
			return
		}

		claims, err := a.verifier.Verify(token)
		if err != nil {
			if errors.Is(err, tokens.ErrTokenExpired) {
				writeError(w, http.StatusUnauthorized, "token_expired", "Access token has expired.")
				return
			}
			writeError(w, http.StatusUnauthorized, "unauthorized", "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), identityContextKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return token, true
}
