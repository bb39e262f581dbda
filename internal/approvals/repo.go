package approvals

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/danielcastillo/dealerdesk-backend/internal/reporting"
	"github.com/danielcastillo/dealerdesk-backend/pkg/db/models"
	"github.com/danielcastillo/dealerdesk-backend/pkg/enums"
)

// Repository encapsulates approval persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an approvals repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByEntry loads the approval for one sale or spiff entry.
func (r *Repository) FindByEntry(ctx context.Context, kind enums.ApprovalKind, entryID uuid.UUID) (models.Approval, error) {
	var approval models.Approval
	err := r.db.WithContext(ctx).
		Where("kind = ? AND entry_id = ?", kind, entryID).
		First(&approval).
		Error
	return approval, err
}

// Create inserts an approval row, assigning an ID when the caller did not.
func (r *Repository) Create(ctx context.Context, approval *models.Approval) error {
	if approval.ID == uuid.Nil {
		approval.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(approval).Error
}

// Save writes every column of an existing approval.
func (r *Repository) Save(ctx context.Context, approval *models.Approval) error {
	return r.db.WithContext(ctx).Save(approval).Error
}

// ListUndecidedSales returns sales in the window with no terminal approval,
// oldest first. This is the manager's review queue.
func (r *Repository) ListUndecidedSales(ctx context.Context, window reporting.Window) ([]models.Sale, error) {
	var sales []models.Sale
	err := r.db.WithContext(ctx).
		Table("sales s").
		Select("s.*").
		Joins("LEFT JOIN approvals a ON a.kind = ? AND a.entry_id = s.id", enums.ApprovalKindSale).
		Where("s.date >= ? AND s.date <= ?", dateBound(window.Start), dateBound(window.End)).
		Where("a.id IS NULL OR a.status = ?", enums.ApprovalStatusPending).
		Order("s.date ASC, s.created_at ASC").
		Scan(&sales).
		Error
	return sales, err
}

// ListUndecidedSpiffs is ListUndecidedSales for spiff entries.
func (r *Repository) ListUndecidedSpiffs(ctx context.Context, window reporting.Window) ([]models.Spiff, error) {
	var spiffs []models.Spiff
	err := r.db.WithContext(ctx).
		Table("spiffs sp").
		Select("sp.*").
		Joins("LEFT JOIN approvals a ON a.kind = ? AND a.entry_id = sp.id", enums.ApprovalKindSpiff).
		Where("sp.date >= ? AND sp.date <= ?", dateBound(window.Start), dateBound(window.End)).
		Where("a.id IS NULL OR a.status = ?", enums.ApprovalStatusPending).
		Order("sp.date ASC, sp.created_at ASC").
		Scan(&spiffs).
		Error
	return spiffs, err
}

// ListApprovedSales returns the window's sales carrying an approved decision.
func (r *Repository) ListApprovedSales(ctx context.Context, window reporting.Window) ([]models.Sale, error) {
	var sales []models.Sale
	err := r.db.WithContext(ctx).
		Table("sales s").
		Select("s.*").
		Joins("JOIN approvals a ON a.kind = ? AND a.entry_id = s.id", enums.ApprovalKindSale).
		Where("a.status = ?", enums.ApprovalStatusApproved).
		Where("s.date >= ? AND s.date <= ?", dateBound(window.Start), dateBound(window.End)).
		Order("s.date ASC").
		Scan(&sales).
		Error
	return sales, err
}

// ListApprovedSpiffs returns the window's spiffs carrying an approved decision.
func (r *Repository) ListApprovedSpiffs(ctx context.Context, window reporting.Window) ([]models.Spiff, error) {
	var spiffs []models.Spiff
	err := r.db.WithContext(ctx).
		Table("spiffs sp").
		Select("sp.*").
		Joins("JOIN approvals a ON a.kind = ? AND a.entry_id = sp.id", enums.ApprovalKindSpiff).
		Where("a.status = ?", enums.ApprovalStatusApproved).
		Where("sp.date >= ? AND sp.date <= ?", dateBound(window.Start), dateBound(window.End)).
		Order("sp.date ASC").
		Scan(&spiffs).
		Error
	return spiffs, err
}

func dateBound(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
