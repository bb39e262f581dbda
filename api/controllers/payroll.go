package controllers

import (
	"net/http"
	"time"

	"github.com/danielcastillo/dealerdesk-backend/api/middleware"
	"github.com/danielcastillo/dealerdesk-backend/api/responses"
	"github.com/danielcastillo/dealerdesk-backend/api/validators"
	"github.com/danielcastillo/dealerdesk-backend/internal/payroll"
	pkgerrors "github.com/danielcastillo/dealerdesk-backend/pkg/errors"
	"github.com/danielcastillo/dealerdesk-backend/pkg/logger"
)

// PayrollReport serves the month-end payout report over approved entries.
func PayrollReport(svc payroll.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payroll service unavailable"))
			return
		}

		year, month, err := validators.ParseQueryMonth(r, time.Now())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actor := payroll.Actor{
			ID:   middleware.UserIDFromContext(r.Context()),
			Role: middleware.RoleFromContext(r.Context()),
		}

		report, err := svc.Report(r.Context(), actor, year, month)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}
