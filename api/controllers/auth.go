package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/danielcastillo/dealerdesk-backend/api/responses"
	pkgauth "github.com/danielcastillo/dealerdesk-backend/pkg/auth"
	"github.com/danielcastillo/dealerdesk-backend/pkg/config"
	pkgerrors "github.com/danielcastillo/dealerdesk-backend/pkg/errors"
	"github.com/danielcastillo/dealerdesk-backend/pkg/logger"
)

// TokenRevoker puts a JWT ID on the denylist. The redis client provides the
// production implementation.
type TokenRevoker interface {
	RevokeToken(ctx context.Context, jti string, ttl time.Duration) error
}

// AuthLogout denylists the caller's current token until its natural expiry.
// Tokens are minted by the external identity provider, so logout is the only
// auth write this service owns.
func AuthLogout(cfg config.JWTConfig, revoker TokenRevoker, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if revoker == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "revocation store unavailable"))
			return
		}

		raw := strings.TrimSpace(r.Header.Get("Authorization"))
		if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
			raw = strings.TrimSpace(raw[7:])
		}

		claims, err := pkgauth.ParseAccessToken(cfg, raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
			return
		}
		if claims.ID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "token has no id"))
			return
		}

		ttl := time.Minute
		if claims.ExpiresAt != nil {
			if remaining := time.Until(claims.ExpiresAt.Time); remaining > ttl {
				ttl = remaining
			}
		}

		if err := revoker.RevokeToken(r.Context(), claims.ID, ttl); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke token"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}
