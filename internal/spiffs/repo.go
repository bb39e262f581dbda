package spiffs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/danielcastillo/dealerdesk-backend/internal/reporting"
	"github.com/danielcastillo/dealerdesk-backend/pkg/db/models"
)

// Repository encapsulates spiff persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a spiff repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a spiff by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (models.Spiff, error) {
	var spiff models.Spiff
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&spiff).
		Error
	return spiff, err
}

// Create inserts a spiff row, assigning an ID when the caller did not.
func (r *Repository) Create(ctx context.Context, spiff *models.Spiff) error {
	if spiff.ID == uuid.Nil {
		spiff.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(spiff).Error
}

// Save writes every column of an existing spiff.
func (r *Repository) Save(ctx context.Context, spiff *models.Spiff) error {
	return r.db.WithContext(ctx).Save(spiff).Error
}

// Delete hard-deletes a spiff.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Spiff{}).Error
}

// ListOwnedInWindow returns a user's spiffs with dates inside the window,
// newest date first.
func (r *Repository) ListOwnedInWindow(ctx context.Context, userID uuid.UUID, window reporting.Window) ([]models.Spiff, error) {
	var spiffs []models.Spiff
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, dateBound(window.Start), dateBound(window.End)).
		Order("date DESC, created_at DESC").
		Find(&spiffs).
		Error
	return spiffs, err
}

// ListInWindow returns every spiff inside the window, for the aggregator.
func (r *Repository) ListInWindow(ctx context.Context, window reporting.Window) ([]models.Spiff, error) {
	var spiffs []models.Spiff
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", dateBound(window.Start), dateBound(window.End)).
		Order("date ASC").
		Find(&spiffs).
		Error
	return spiffs, err
}

func dateBound(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
