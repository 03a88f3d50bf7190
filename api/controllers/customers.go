package controllers

import (
	"net/http"

	"github.com/cleanmart/backend/api/responses"
	"github.com/cleanmart/backend/internal/customers"
	"github.com/cleanmart/backend/pkg/logger"
)

// ListCustomers merges registered users and visitors for the admin page.
func ListCustomers(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merged, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, merged)
	}
}
