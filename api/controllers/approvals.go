package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/danielcastillo/dealerdesk-backend/api/middleware"
	"github.com/danielcastillo/dealerdesk-backend/api/responses"
	"github.com/danielcastillo/dealerdesk-backend/api/validators"
	"github.com/danielcastillo/dealerdesk-backend/internal/approvals"
	"github.com/danielcastillo/dealerdesk-backend/pkg/enums"
	pkgerrors "github.com/danielcastillo/dealerdesk-backend/pkg/errors"
	"github.com/danielcastillo/dealerdesk-backend/pkg/logger"
)

func approvalActor(r *http.Request) approvals.Actor {
	return approvals.Actor{
		ID:   middleware.UserIDFromContext(r.Context()),
		Role: middleware.RoleFromContext(r.Context()),
	}
}

func pathApprovalKind(r *http.Request) (enums.ApprovalKind, error) {
	kind, err := enums.ParseApprovalKind(chi.URLParam(r, "kind"))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid approval kind")
	}
	return kind, nil
}

type approvalDecisionRequest struct {
	Decision string `json:"decision" validate:"required"`
	Comment  string `json:"comment,omitempty"`
}

// DecideApproval records a manager's payroll decision on a sale or spiff.
func DecideApproval(svc approvals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "approvals service unavailable"))
			return
		}

		kind, err := pathApprovalKind(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entryID, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req approvalDecisionRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		decision, err := enums.ParseApprovalStatus(req.Decision)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid decision"))
			return
		}

		approval, err := svc.Decide(r.Context(), approvalActor(r), kind, entryID, decision, req.Comment)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, approval)
	}
}

// ApprovalStatus reports the current decision state of one entry.
func ApprovalStatus(svc approvals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "approvals service unavailable"))
			return
		}

		kind, err := pathApprovalKind(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entryID, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		approval, err := svc.Status(r.Context(), kind, entryID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, approval)
	}
}

// PendingApprovals returns the manager review backlog for a month.
func PendingApprovals(svc approvals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "approvals service unavailable"))
			return
		}

		year, month, err := validators.ParseQueryMonth(r, time.Now())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		queue, err := svc.PendingQueue(r.Context(), approvalActor(r), year, month)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, queue)
	}
}
