package sales

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/danielcastillo/dealerdesk-backend/internal/commission"
	"github.com/danielcastillo/dealerdesk-backend/internal/notifications"
	"github.com/danielcastillo/dealerdesk-backend/internal/reporting"
	"github.com/danielcastillo/dealerdesk-backend/internal/users"
	"github.com/danielcastillo/dealerdesk-backend/pkg/db/models"
	"github.com/danielcastillo/dealerdesk-backend/pkg/enums"
	pkgerrors "github.com/danielcastillo/dealerdesk-backend/pkg/errors"
	"github.com/danielcastillo/dealerdesk-backend/pkg/pagination"
)

// SummaryCache invalidates cached month summaries after a write. The analytics
// service provides the production implementation.
type SummaryCache interface {
	InvalidateMonth(ctx context.Context, monthKey string) error
}

// ServiceParams groups dependencies for the sales service.
type ServiceParams struct {
	SaleRepo      *Repository
	UserRepo      *users.Repository
	Notifications notifications.Service
	Cache         SummaryCache
}

// Service exposes business rules for sale management.
type Service interface {
	Create(ctx context.Context, actor Actor, input Input) (SaleWithCommission, error)
	Update(ctx context.Context, actor Actor, saleID uuid.UUID, input Input) (SaleWithCommission, error)
	Delete(ctx context.Context, actor Actor, saleID uuid.UUID) error
	Get(ctx context.Context, actor Actor, saleID uuid.UUID) (SaleWithCommission, error)
	ListMonth(ctx context.Context, actor Actor, ownerID uuid.UUID, year int, month time.Month) ([]SaleWithCommission, error)
	ListPage(ctx context.Context, actor Actor, ownerID uuid.UUID, cursor string, limit int) (Page, error)
}

type service struct {
	saleRepo      *Repository
	userRepo      *users.Repository
	notifications notifications.Service
	cache         SummaryCache
}

// NewService builds a sales service with the required dependencies.
// Cache is optional; the rest are not.
func NewService(params ServiceParams) (Service, error) {
	if params.SaleRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "sale repo is required")
	}
	if params.UserRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "user repo is required")
	}
	if params.Notifications == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications service is required")
	}
	return &service{
		saleRepo:      params.SaleRepo,
		userRepo:      params.UserRepo,
		notifications: params.Notifications,
		cache:         params.Cache,
	}, nil
}

// Create validates and stores a new sale for the actor. A shared_with_email
// resolves to an account, pends the share and notifies the recipient.
func (s *service) Create(ctx context.Context, actor Actor, input Input) (SaleWithCommission, error) {
	sale, err := s.buildSale(ctx, actor.ID, input)
	if err != nil {
		return SaleWithCommission{}, err
	}
	if err := commission.ValidateSale(sale); err != nil {
		return SaleWithCommission{}, err
	}

	if err := s.saleRepo.Create(ctx, &sale); err != nil {
		return SaleWithCommission{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create sale")
	}
	if sale.SharedWithID != nil {
		if err := s.notifications.Notify(ctx, *sale.SharedWithID, sale.ID, enums.NotificationTypeSharedSalePending); err != nil {
			return SaleWithCommission{}, err
		}
	}
	s.invalidate(ctx, sale.Date)

	return withCommission(sale), nil
}

// Update rewrites a sale's fields. Changing the share recipient re-pends the
// share and notifies the new recipient; an unchanged recipient keeps the
// existing response.
func (s *service) Update(ctx context.Context, actor Actor, saleID uuid.UUID, input Input) (SaleWithCommission, error) {
	existing, err := s.loadForActor(ctx, actor, saleID)
	if err != nil {
		return SaleWithCommission{}, err
	}

	sale, err := s.buildSale(ctx, existing.UserID, input)
	if err != nil {
		return SaleWithCommission{}, err
	}
	sale.ID = existing.ID
	sale.CreatedAt = existing.CreatedAt

	sameRecipient := existing.SharedWithID != nil && sale.SharedWithID != nil &&
		*existing.SharedWithID == *sale.SharedWithID
	if sameRecipient {
		sale.SharedStatus = existing.SharedStatus
	}

	if err := commission.ValidateSale(sale); err != nil {
		return SaleWithCommission{}, err
	}

	if err := s.saleRepo.Save(ctx, &sale); err != nil {
		return SaleWithCommission{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update sale")
	}
	if sale.SharedWithID != nil && !sameRecipient {
		if err := s.notifications.Notify(ctx, *sale.SharedWithID, sale.ID, enums.NotificationTypeSharedSalePending); err != nil {
			return SaleWithCommission{}, err
		}
	}

	s.invalidate(ctx, existing.Date)
	if reporting.MonthWindowFor(sale.Date) != reporting.MonthWindowFor(existing.Date) {
		s.invalidate(ctx, sale.Date)
	}

	return withCommission(sale), nil
}

// Delete hard-deletes a sale the actor may modify.
func (s *service) Delete(ctx context.Context, actor Actor, saleID uuid.UUID) error {
	existing, err := s.loadForActor(ctx, actor, saleID)
	if err != nil {
		return err
	}
	if err := s.saleRepo.Delete(ctx, saleID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete sale")
	}
	s.invalidate(ctx, existing.Date)
	return nil
}

// Get loads one sale with its computed commission.
func (s *service) Get(ctx context.Context, actor Actor, saleID uuid.UUID) (SaleWithCommission, error) {
	sale, err := s.loadForActor(ctx, actor, saleID)
	if err != nil {
		return SaleWithCommission{}, err
	}
	return withCommission(sale), nil
}

// ListMonth returns an owner's sales for one calendar month, newest first.
func (s *service) ListMonth(ctx context.Context, actor Actor, ownerID uuid.UUID, year int, month time.Month) ([]SaleWithCommission, error) {
	if ownerID == uuid.Nil {
		ownerID = actor.ID
	}
	if !actor.CanAccess(ownerID) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "cannot view another salesperson's sales")
	}

	sales, err := s.saleRepo.ListOwnedInWindow(ctx, ownerID, reporting.MonthWindow(year, month))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list sales")
	}

	items := make([]SaleWithCommission, 0, len(sales))
	for _, sale := range sales {
		items = append(items, withCommission(sale))
	}
	return items, nil
}

// ListPage returns one cursor page of an owner's sales, newest first.
func (s *service) ListPage(ctx context.Context, actor Actor, ownerID uuid.UUID, cursor string, limit int) (Page, error) {
	if ownerID == uuid.Nil {
		ownerID = actor.ID
	}
	if !actor.CanAccess(ownerID) {
		return Page{}, pkgerrors.New(pkgerrors.CodeForbidden, "cannot view another salesperson's sales")
	}

	if _, err := pagination.ParseCursor(cursor); err != nil {
		return Page{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	sales, next, err := s.saleRepo.ListPage(ctx, ownerID, cursor, limit)
	if err != nil {
		return Page{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list sales")
	}

	items := make([]SaleWithCommission, 0, len(sales))
	for _, sale := range sales {
		items = append(items, withCommission(sale))
	}
	return Page{Items: items, Cursor: next}, nil
}

func (s *service) loadForActor(ctx context.Context, actor Actor, saleID uuid.UUID) (models.Sale, error) {
	if saleID == uuid.Nil {
		return models.Sale{}, pkgerrors.New(pkgerrors.CodeValidation, "sale id is required")
	}
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Sale{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "sale not found")
		}
		return models.Sale{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sale")
	}
	if !actor.CanAccess(sale.UserID) {
		return models.Sale{}, pkgerrors.New(pkgerrors.CodeForbidden, "sale belongs to another salesperson")
	}
	return sale, nil
}

// buildSale maps an input onto a model owned by ownerID, resolving the share
// recipient when one is named.
func (s *service) buildSale(ctx context.Context, ownerID uuid.UUID, input Input) (models.Sale, error) {
	saleType, err := enums.ParseSaleType(input.SaleType)
	if err != nil {
		return models.Sale{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sale type").
			WithDetails(map[string]string{"sale_type": "must be New, Used or Trade-In"})
	}

	sale := models.Sale{
		UserID:           ownerID,
		StockNumber:      input.StockNumber,
		CustomerName:     input.CustomerName,
		SaleType:         saleType,
		SalePrice:        input.SalePrice,
		AccessoriesPrice: input.AccessoriesPrice,
		WarrantyPrice:    input.WarrantyPrice,
		WarrantyCost:     input.WarrantyCost,
		MaintenancePrice: input.MaintenancePrice,
		MaintenanceCost:  input.MaintenanceCost,
		CommissionSplit:  input.CommissionSplit,
		Date:             input.Date,
	}

	if input.SharedWithEmail == nil || *input.SharedWithEmail == "" {
		return sale, nil
	}

	email := users.NormalizeEmail(*input.SharedWithEmail)
	recipient, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Sale{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "share recipient not found").
				WithDetails(map[string]string{"shared_with_email": "no account with this email"})
		}
		return models.Sale{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve share recipient")
	}
	if recipient.ID == ownerID {
		return models.Sale{}, pkgerrors.New(pkgerrors.CodeValidation, "cannot share a sale with its owner").
			WithDetails(map[string]string{"shared_with_email": "cannot share with yourself"})
	}

	pending := enums.SharedStatusPending
	sale.SharedWithEmail = &email
	sale.SharedWithID = &recipient.ID
	sale.SharedStatus = &pending
	return sale, nil
}

func (s *service) invalidate(ctx context.Context, date time.Time) {
	if s.cache == nil {
		return
	}
	// Cache invalidation failures must not surface as write failures.
	_ = s.cache.InvalidateMonth(ctx, reporting.MonthWindowFor(date).Key())
}

func withCommission(sale models.Sale) SaleWithCommission {
	return SaleWithCommission{
		Sale:       sale,
		Commission: commission.Compute(sale),
	}
}
