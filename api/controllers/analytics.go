package controllers

import (
	"net/http"
	"time"

	"github.com/danielcastillo/dealerdesk-backend/api/responses"
	"github.com/danielcastillo/dealerdesk-backend/api/validators"
	"github.com/danielcastillo/dealerdesk-backend/internal/analytics"
	pkgerrors "github.com/danielcastillo/dealerdesk-backend/pkg/errors"
	"github.com/danielcastillo/dealerdesk-backend/pkg/logger"
)

// SalesAnalytics serves the dealership-wide month rollup. Manager only,
// enforced by the route group.
func SalesAnalytics(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable"))
			return
		}

		year, month, err := validators.ParseQueryMonth(r, time.Now())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.SalesAnalytics(r.Context(), year, month)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// TeamPerformance ranks every salesperson for the month, idle ones included.
func TeamPerformance(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable"))
			return
		}

		year, month, err := validators.ParseQueryMonth(r, time.Now())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.TeamPerformance(r.Context(), year, month)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// IndividualReport serves one salesperson's month summary for a manager.
func IndividualReport(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable"))
			return
		}

		userID, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		year, month, err := validators.ParseQueryMonth(r, time.Now())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.IndividualReport(r.Context(), userID, year, month)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
