package controllers

import (
	"net/http"

	"github.com/cleanmart/backend/api/responses"
	"github.com/cleanmart/backend/api/validators"
	"github.com/cleanmart/backend/internal/mailer"
	"github.com/cleanmart/backend/internal/orders"
	"github.com/cleanmart/backend/pkg/enums"
	pkgerrors "github.com/cleanmart/backend/pkg/errors"
	"github.com/cleanmart/backend/pkg/logger"
)

type sendEmailRequest struct {
	OrderID string `json:"orderId" validate:"required,uuid"`
	Type    string `json:"type" validate:"required,oneof=customer admin"`
}

// SendOrderEmail loads the referenced order and sends the requested
// transactional email through the provider.
func SendOrderEmail(mail mailer.Service, orderSvc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sendEmailRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := parseBodyUUID(req.OrderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		kind, err := enums.ParseEmailKind(req.Type)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, err.Error()).WithDetails(map[string]any{"field": "type"}))
			return
		}

		order, err := orderSvc.Get(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := mail.Send(r.Context(), order, kind); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "sent"})
	}
}
