package spiffs

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

const maxNoteWords = 40

// SummaryCache invalidates cached month summaries after a write.
type SummaryCache interface {
	InvalidateMonth(ctx context.Context, monthKey string) error
}

// Actor identifies the authenticated caller for permission checks.
type Actor struct {
	ID   uuid.UUID
	Role enums.UserRole
}

// Input carries the writable fields of a spiff entry.
type Input struct {
	Amount   float64   `json:"amount" validate:"gt=0"`
	Note     *string   `json:"note,omitempty"`
	ImageURL *string   `json:"image_url,omitempty" validate:"omitempty,url"`
	Date     time.Time `json:"date" validate:"required"`
}

// Service exposes business rules for spiff management.
type Service interface {
	Create(ctx context.Context, actor Actor, input Input) (models.Spiff, error)
	Update(ctx context.Context, actor Actor, spiffID uuid.UUID, input Input) (models.Spiff, error)
	Delete(ctx context.Context, actor Actor, spiffID uuid.UUID) error
	ListMonth(ctx context.Context, actor Actor, ownerID uuid.UUID, year int, month time.Month) ([]models.Spiff, error)
}

type service struct {
	repo  *Repository
	cache SummaryCache
}

// NewService builds a spiff service. Cache is optional.
func NewService(repo *Repository, cache SummaryCache) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "spiff repo is required")
	}
	return &service{repo: repo, cache: cache}, nil
}

func (s *service) Create(ctx context.Context, actor Actor, input Input) (models.Spiff, error) {
	if err := validateInput(input); err != nil {
		return models.Spiff{}, err
	}

	spiff := models.Spiff{
		UserID:   actor.ID,
		Amount:   input.Amount,
		Note:     input.Note,
		ImageURL: input.ImageURL,
		Date:     input.Date,
	}
	if err := s.repo.Create(ctx, &spiff); err != nil {
		return models.Spiff{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create spiff")
	}
	s.invalidate(ctx, spiff.Date)
	return spiff, nil
}

func (s *service) Update(ctx context.Context, actor Actor, spiffID uuid.UUID, input Input) (models.Spiff, error) {
	existing, err := s.loadForActor(ctx, actor, spiffID)
	if err != nil {
		return models.Spiff{}, err
	}
	if err := validateInput(input); err != nil {
		return models.Spiff{}, err
	}

	existing.Amount = input.Amount
	existing.Note = input.Note
	existing.ImageURL = input.ImageURL
	previousDate := existing.Date
	existing.Date = input.Date

	if err := s.repo.Save(ctx, &existing); err != nil {
		return models.Spiff{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update spiff")
	}
	s.invalidate(ctx, previousDate)
	if reporting.MonthWindowFor(input.Date) != reporting.MonthWindowFor(previousDate) {
		s.invalidate(ctx, input.Date)
	}
	return existing, nil
}

func (s *service) Delete(ctx context.Context, actor Actor, spiffID uuid.UUID) error {
	existing, err := s.loadForActor(ctx, actor, spiffID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, spiffID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete spiff")
	}
	s.invalidate(ctx, existing.Date)
	return nil
}

func (s *service) ListMonth(ctx context.Context, actor Actor, ownerID uuid.UUID, year int, month time.Month) ([]models.Spiff, error) {
	if ownerID == uuid.Nil {
		ownerID = actor.ID
	}
	if ownerID != actor.ID && !actor.Role.CanManage() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "cannot view another salesperson's spiffs")
	}
	spiffs, err := s.repo.ListOwnedInWindow(ctx, ownerID, reporting.MonthWindow(year, month))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list spiffs")
	}
	return spiffs, nil
}

func (s *service) loadForActor(ctx context.Context, actor Actor, spiffID uuid.UUID) (models.Spiff, error) {
	if spiffID == uuid.Nil {
		return models.Spiff{}, pkgerrors.New(pkgerrors.CodeValidation, "spiff id is required")
	}
	spiff, err := s.repo.FindByID(ctx, spiffID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Spiff{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "spiff not found")
		}
		return models.Spiff{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load spiff")
	}
	if spiff.UserID != actor.ID && !actor.Role.CanManage() {
		return models.Spiff{}, pkgerrors.New(pkgerrors.CodeForbidden, "spiff belongs to another salesperson")
	}
	return spiff, nil
}

func validateInput(input Input) error {
	if input.Amount <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "spiff amount must be positive").
			WithDetails(map[string]string{"amount": "must be greater than zero"})
	}
	if input.Date.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "spiff date is required").
			WithDetails(map[string]string{"date": "is required"})
	}
	if input.Note != nil && wordCount(*input.Note) > maxNoteWords {
		return pkgerrors.New(pkgerrors.CodeValidation, "spiff note is too long").
			WithDetails(map[string]string{"note": "must be at most 40 words"})
	}
	return nil
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}

func (s *service) invalidate(ctx context.Context, date time.Time) {
	if s.cache == nil {
		return
	}
	_ = s.cache.InvalidateMonth(ctx, reporting.MonthWindowFor(date).Key())
}
