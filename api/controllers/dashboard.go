package controllers

import (
	"net/http"

	"github.com/cleanmart/backend/api/responses"
	"github.com/cleanmart/backend/internal/dashboard"
	"github.com/cleanmart/backend/pkg/logger"
)

func DashboardSummary(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := svc.Summary(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}
