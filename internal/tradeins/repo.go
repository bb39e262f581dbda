package tradeins

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/danielcastillo/dealerdesk-backend/internal/reporting"
	"github.com/danielcastillo/dealerdesk-backend/pkg/db/models"
)

// Repository encapsulates trade-in persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a trade-in repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a trade-in by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (models.TradeIn, error) {
	var tradeIn models.TradeIn
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&tradeIn).
		Error
	return tradeIn, err
}

// Create inserts a trade-in row, assigning an ID when the caller did not.
func (r *Repository) Create(ctx context.Context, tradeIn *models.TradeIn) error {
	if tradeIn.ID == uuid.Nil {
		tradeIn.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(tradeIn).Error
}

// Save writes every column of an existing trade-in.
func (r *Repository) Save(ctx context.Context, tradeIn *models.TradeIn) error {
	return r.db.WithContext(ctx).Save(tradeIn).Error
}

// Delete hard-deletes a trade-in.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.TradeIn{}).Error
}

// ListOwnedInWindow returns a user's trade-ins with dates inside the window,
// newest date first.
func (r *Repository) ListOwnedInWindow(ctx context.Context, userID uuid.UUID, window reporting.Window) ([]models.TradeIn, error) {
	var tradeIns []models.TradeIn
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, dateBound(window.Start), dateBound(window.End)).
		Order("date DESC, created_at DESC").
		Find(&tradeIns).
		Error
	return tradeIns, err
}

// ListInWindow returns every trade-in inside the window, for the aggregator.
func (r *Repository) ListInWindow(ctx context.Context, window reporting.Window) ([]models.TradeIn, error) {
	var tradeIns []models.TradeIn
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", dateBound(window.Start), dateBound(window.End)).
		Order("date ASC").
		Find(&tradeIns).
		Error
	return tradeIns, err
}

func dateBound(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
