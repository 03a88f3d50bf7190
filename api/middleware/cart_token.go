package middleware

import (
	"net/http"
	"strings"

	"github.com/cleanmart/backend/api/responses"
	pkgerrors "github.com/cleanmart/backend/pkg/errors"
	"github.com/cleanmart/backend/pkg/logger"
)

// CartTokenHeader names the per-device token header keying cart and
// wishlist snapshots.
const CartTokenHeader = "X-Cart-Token"

// CartToken extracts the per-device cart token header. Cart and wishlist
// snapshots are keyed by this token, so it is mandatory on those routes.
func CartToken(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimSpace(r.Header.Get(CartTokenHeader))
			if token == "" {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "cart token header required").
						WithDetails(map[string]any{"header": CartTokenHeader}))
				return
			}

			ctx := WithCartToken(r.Context(), token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
