package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/cleanmart/backend/api/responses"
	pkgAuth "github.com/cleanmart/backend/pkg/auth"
	"github.com/cleanmart/backend/pkg/config"
	pkgerrors "github.com/cleanmart/backend/pkg/errors"
	"github.com/cleanmart/backend/pkg/logger"
)

// Session parses an optional identity-provider bearer token and seeds the
// request context with the claims. Requests without a token pass through
// anonymously; checkout uses the presence of the email claim to decide
// between user and visitor identity.
func Session(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := pkgAuth.ParseSessionToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			ctx := context.WithValue(r.Context(), ctxSessionEmail, claims.Email)
			ctx = context.WithValue(ctx, ctxSessionRole, claims.Role)
			if logg != nil {
				ctx = logg.WithField(ctx, "session_email", claims.Email)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects requests whose session lacks the admin role claim.
// It must run after Session.
func RequireAdmin(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if SessionEmailFromContext(r.Context()) == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}
			if SessionRoleFromContext(r.Context()) != "admin" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "admin role required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}
