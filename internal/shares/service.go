package shares

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/danielcastillo/dealerdesk-backend/internal/notifications"
	"github.com/danielcastillo/dealerdesk-backend/internal/reporting"
	"github.com/danielcastillo/dealerdesk-backend/internal/sales"
	"github.com/danielcastillo/dealerdesk-backend/pkg/db/models"
	"github.com/danielcastillo/dealerdesk-backend/pkg/enums"
	pkgerrors "github.com/danielcastillo/dealerdesk-backend/pkg/errors"
)

// SummaryCache invalidates cached month summaries after a write.
type SummaryCache interface {
	InvalidateMonth(ctx context.Context, monthKey string) error
}

// ServiceParams groups dependencies for the share service.
type ServiceParams struct {
	SaleRepo      *sales.Repository
	Notifications notifications.Service
	Cache         SummaryCache
}

// Service handles the recipient side of a shared sale.
type Service interface {
	Respond(ctx context.Context, recipientID, saleID uuid.UUID, decision enums.SharedStatus) (models.Sale, error)
	ListPending(ctx context.Context, recipientID uuid.UUID) ([]models.Sale, error)
}

type service struct {
	saleRepo      *sales.Repository
	notifications notifications.Service
	cache         SummaryCache
}

// NewService builds a share service. Cache is optional.
func NewService(params ServiceParams) (Service, error) {
	if params.SaleRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "sale repo is required")
	}
	if params.Notifications == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications service is required")
	}
	return &service{
		saleRepo:      params.SaleRepo,
		notifications: params.Notifications,
		cache:         params.Cache,
	}, nil
}

// Respond records the recipient's accept or reject on a pending share and
// notifies the sale's owner. Responses to settled shares are refused.
func (s *service) Respond(ctx context.Context, recipientID, saleID uuid.UUID, decision enums.SharedStatus) (models.Sale, error) {
	if saleID == uuid.Nil {
		return models.Sale{}, pkgerrors.New(pkgerrors.CodeValidation, "sale id is required")
	}
	if decision != enums.SharedStatusAccepted && decision != enums.SharedStatusRejected {
		return models.Sale{}, pkgerrors.New(pkgerrors.CodeValidation, "decision must be accepted or rejected")
	}

	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Sale{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "sale not found")
		}
		return models.Sale{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sale")
	}

	if sale.SharedWithID == nil || sale.SharedStatus == nil {
		return models.Sale{}, pkgerrors.New(pkgerrors.CodeStateConflict, "sale is not shared")
	}
	if *sale.SharedWithID != recipientID {
		return models.Sale{}, pkgerrors.New(pkgerrors.CodeForbidden, "only the share recipient may respond")
	}
	if !CanTransition(sale.SharedStatus, decision) {
		return models.Sale{}, pkgerrors.New(pkgerrors.CodeStateConflict, "share has already been settled")
	}

	sale.SharedStatus = &decision
	if err := s.saleRepo.Save(ctx, &sale); err != nil {
		return models.Sale{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save share response")
	}

	kind := enums.NotificationTypeSharedSaleAccepted
	if decision == enums.SharedStatusRejected {
		kind = enums.NotificationTypeSharedSaleRejected
	}
	if err := s.notifications.Notify(ctx, sale.UserID, sale.ID, kind); err != nil {
		return models.Sale{}, err
	}

	if s.cache != nil {
		// Acceptance turns the split on, which changes the month's totals.
		_ = s.cache.InvalidateMonth(ctx, reporting.MonthWindowFor(sale.Date).Key())
	}
	return sale, nil
}

// ListPending returns the sales awaiting this recipient's response.
func (s *service) ListPending(ctx context.Context, recipientID uuid.UUID) ([]models.Sale, error) {
	if recipientID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recipient id is required")
	}
	pending, err := s.saleRepo.ListPendingShares(ctx, recipientID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pending shares")
	}
	return pending, nil
}
