package controllers

import (
	"net/http"
	"strings"

	"github.com/cleanmart/backend/api/middleware"
	"github.com/cleanmart/backend/api/responses"
	"github.com/cleanmart/backend/api/validators"
	"github.com/cleanmart/backend/internal/cart"
	"github.com/cleanmart/backend/internal/checkout"
	"github.com/cleanmart/backend/pkg/logger"
)

// SubmitCheckout creates an order from the submitted cart and form. When
// the request carries a verified session the order is attributed to a
// registered user, otherwise to a visitor keyed by the submitted email.
// When the request also carries a cart token, the server-side cart snapshot
// is cleared once the order exists.
func SubmitCheckout(svc checkout.Service, carts *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input checkout.Input
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionEmail := middleware.SessionEmailFromContext(r.Context())
		order, err := svc.Submit(r.Context(), sessionEmail, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		// the order already exists, so a failed clear only warns
		if token := strings.TrimSpace(r.Header.Get(middleware.CartTokenHeader)); token != "" {
			if err := carts.Clear(r.Context(), token); err != nil {
				ctx := logg.WithOrderID(r.Context(), order.ID.String())
				logg.Warn(ctx, "checkout.cart_clear_failed")
			}
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
