package controllers

import (
	"net/http"

	"go.uber.org/multierr"

	"github.com/cleanmart/backend/api/responses"
	"github.com/cleanmart/backend/pkg/db"
	pkgerrors "github.com/cleanmart/backend/pkg/errors"
	"github.com/cleanmart/backend/pkg/logger"
	"github.com/cleanmart/backend/pkg/redis"
)

// Liveness reports that the process is up.
func Liveness() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}

// Readiness pings every backing store and aggregates the failures, so one
// response names everything that is down.
func Readiness(database db.Pinger, cache redis.Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var failures error
		if database != nil {
			if err := database.Ping(ctx); err != nil {
				failures = multierr.Append(failures, err)
			}
		}
		if cache != nil {
			if err := cache.Ping(ctx); err != nil {
				failures = multierr.Append(failures, err)
			}
		}

		if failures != nil {
			details := make([]string, 0)
			for _, err := range multierr.Errors(failures) {
				details = append(details, err.Error())
			}
			responses.WriteError(ctx, logg,
				w,
				pkgerrors.Wrap(pkgerrors.CodeUpstream, failures, "dependencies unavailable").WithDetails(details),
			)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
