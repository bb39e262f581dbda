package controllers

import (
	"net/http"
	"time"

	"github.com/danielcastillo/dealerdesk-backend/api/middleware"
	"github.com/danielcastillo/dealerdesk-backend/api/responses"
	"github.com/danielcastillo/dealerdesk-backend/api/validators"
	"github.com/danielcastillo/dealerdesk-backend/internal/dashboard"
	pkgerrors "github.com/danielcastillo/dealerdesk-backend/pkg/errors"
	"github.com/danielcastillo/dealerdesk-backend/pkg/logger"
)

// DashboardStats serves the caller's month-over-month dashboard cards.
func DashboardStats(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		year, month, err := validators.ParseQueryMonth(r, time.Now())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stats, err := svc.Stats(r.Context(), middleware.UserIDFromContext(r.Context()), year, month)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}
