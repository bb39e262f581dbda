package tradeins

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/danielcastillo/dealerdesk-backend/internal/reporting"
	"github.com/danielcastillo/dealerdesk-backend/pkg/db/models"
	"github.com/danielcastillo/dealerdesk-backend/pkg/enums"
	pkgerrors "github.com/danielcastillo/dealerdesk-backend/pkg/errors"
)

const maxCommentWords = 100

// SummaryCache invalidates cached month summaries after a write.
type SummaryCache interface {
	InvalidateMonth(ctx context.Context, monthKey string) error
}

// Actor identifies the authenticated caller for permission checks.
type Actor struct {
	ID   uuid.UUID
	Role enums.UserRole
}

// Input carries the writable fields of a trade-in entry. The comment is
// mandatory; it documents the negotiated deal.
type Input struct {
	Amount  float64   `json:"amount" validate:"gt=0"`
	Comment string    `json:"comment" validate:"required"`
	Date    time.Time `json:"date" validate:"required"`
}

// Service exposes business rules for trade-in management.
type Service interface {
	Create(ctx context.Context, actor Actor, input Input) (models.TradeIn, error)
	Update(ctx context.Context, actor Actor, tradeInID uuid.UUID, input Input) (models.TradeIn, error)
	Delete(ctx context.Context, actor Actor, tradeInID uuid.UUID) error
	ListMonth(ctx context.Context, actor Actor, ownerID uuid.UUID, year int, month time.Month) ([]models.TradeIn, error)
}

type service struct {
	repo  *Repository
	cache SummaryCache
}

// NewService builds a trade-in service. Cache is optional.
func NewService(repo *Repository, cache SummaryCache) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "trade-in repo is required")
	}
	return &service{repo: repo, cache: cache}, nil
}

func (s *service) Create(ctx context.Context, actor Actor, input Input) (models.TradeIn, error) {
	if err := validateInput(input); err != nil {
		return models.TradeIn{}, err
	}

	tradeIn := models.TradeIn{
		UserID:  actor.ID,
		Amount:  input.Amount,
		Comment: strings.TrimSpace(input.Comment),
		Date:    input.Date,
	}
	if err := s.repo.Create(ctx, &tradeIn); err != nil {
		return models.TradeIn{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create trade-in")
	}
	s.invalidate(ctx, tradeIn.Date)
	return tradeIn, nil
}

func (s *service) Update(ctx context.Context, actor Actor, tradeInID uuid.UUID, input Input) (models.TradeIn, error) {
	existing, err := s.loadForActor(ctx, actor, tradeInID)
	if err != nil {
		return models.TradeIn{}, err
	}
	if err := validateInput(input); err != nil {
		return models.TradeIn{}, err
	}

	previousDate := existing.Date
	existing.Amount = input.Amount
	existing.Comment = strings.TrimSpace(input.Comment)
	existing.Date = input.Date

	if err := s.repo.Save(ctx, &existing); err != nil {
		return models.TradeIn{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update trade-in")
	}
	s.invalidate(ctx, previousDate)
	if reporting.MonthWindowFor(input.Date) != reporting.MonthWindowFor(previousDate) {
		s.invalidate(ctx, input.Date)
	}
	return existing, nil
}

func (s *service) Delete(ctx context.Context, actor Actor, tradeInID uuid.UUID) error {
	existing, err := s.loadForActor(ctx, actor, tradeInID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, tradeInID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete trade-in")
	}
	s.invalidate(ctx, existing.Date)
	return nil
}

func (s *service) ListMonth(ctx context.Context, actor Actor, ownerID uuid.UUID, year int, month time.Month) ([]models.TradeIn, error) {
	if ownerID == uuid.Nil {
		ownerID = actor.ID
	}
	if ownerID != actor.ID && !actor.Role.CanManage() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "cannot view another salesperson's trade-ins")
	}
	tradeIns, err := s.repo.ListOwnedInWindow(ctx, ownerID, reporting.MonthWindow(year, month))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list trade-ins")
	}
	return tradeIns, nil
}

func (s *service) loadForActor(ctx context.Context, actor Actor, tradeInID uuid.UUID) (models.TradeIn, error) {
	if tradeInID == uuid.Nil {
		return models.TradeIn{}, pkgerrors.New(pkgerrors.CodeValidation, "trade-in id is required")
	}
	tradeIn, err := s.repo.FindByID(ctx, tradeInID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.TradeIn{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "trade-in not found")
		}
		return models.TradeIn{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load trade-in")
	}
	if tradeIn.UserID != actor.ID && !actor.Role.CanManage() {
		return models.TradeIn{}, pkgerrors.New(pkgerrors.CodeForbidden, "trade-in belongs to another salesperson")
	}
	return tradeIn, nil
}

func validateInput(input Input) error {
	if input.Amount <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "trade-in amount must be positive").
			WithDetails(map[string]string{"amount": "must be greater than zero"})
	}
	if input.Date.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "trade-in date is required").
			WithDetails(map[string]string{"date": "is required"})
	}
	words := len(strings.Fields(input.Comment))
	if words == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "trade-in comment is required").
			WithDetails(map[string]string{"comment": "is required"})
	}
	if words > maxCommentWords {
		return pkgerrors.New(pkgerrors.CodeValidation, "trade-in comment is too long").
			WithDetails(map[string]string{"comment": "must be at most 100 words"})
	}
	return nil
}

func (s *service) invalidate(ctx context.Context, date time.Time) {
	if s.cache == nil {
		return
	}
	_ = s.cache.InvalidateMonth(ctx, reporting.MonthWindowFor(date).Key())
}
