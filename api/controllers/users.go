package controllers

import (
	"net/http"

	"github.com/danielcastillo/dealerdesk-backend/api/middleware"
	"github.com/danielcastillo/dealerdesk-backend/api/responses"
	"github.com/danielcastillo/dealerdesk-backend/internal/users"
	pkgerrors "github.com/danielcastillo/dealerdesk-backend/pkg/errors"
	"github.com/danielcastillo/dealerdesk-backend/pkg/logger"
)

// Me echoes the identity carried by the caller's token.
func Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{
			"user_id": middleware.UserIDFromContext(r.Context()).String(),
			"email":   middleware.EmailFromContext(r.Context()),
			"role":    string(middleware.RoleFromContext(r.Context())),
		})
	}
}

// ListUsers returns the full roster for manager pickers.
func ListUsers(repo *users.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users repo unavailable"))
			return
		}

		roster, err := repo.ListAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users"))
			return
		}
		responses.WriteSuccess(w, roster)
	}
}
