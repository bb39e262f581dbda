package sales

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/danielcastillo/dealerdesk-backend/internal/reporting"
	"github.com/danielcastillo/dealerdesk-backend/pkg/db/models"
	"github.com/danielcastillo/dealerdesk-backend/pkg/enums"
	"github.com/danielcastillo/dealerdesk-backend/pkg/pagination"
)

// Repository encapsulates sale persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a sales repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// FindByID loads a sale by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (models.Sale, error) {
	var sale models.Sale
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&sale).
		Error
	return sale, err
}

// Create inserts a sale row, assigning an ID when the caller did not.
func (r *Repository) Create(ctx context.Context, sale *models.Sale) error {
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(sale).Error
}

// Save writes every column of an existing sale. Last write wins; the schema
// carries no version column.
func (r *Repository) Save(ctx context.Context, sale *models.Sale) error {
	return r.db.WithContext(ctx).Save(sale).Error
}

// Delete hard-deletes a sale and its notifications.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sale_id = ?", id).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Sale{}).Error
	})
}

// ListOwnedInWindow returns a user's sales with dates inside the window,
// newest date first.
func (r *Repository) ListOwnedInWindow(ctx context.Context, userID uuid.UUID, window reporting.Window) ([]models.Sale, error) {
	var sales []models.Sale
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, dateBound(window.Start), dateBound(window.End)).
		Order("date DESC, created_at DESC").
		Find(&sales).
		Error
	return sales, err
}

// ListRowsInWindow returns every sale inside the window joined with the
// owner's email, for the reporting aggregator.
func (r *Repository) ListRowsInWindow(ctx context.Context, window reporting.Window) ([]reporting.SaleRow, error) {
	var rows []reporting.SaleRow
	err := r.db.WithContext(ctx).
		Table("sales s").
		Select("s.*, u.email AS user_email").
		Joins("JOIN users u ON u.id = s.user_id").
		Where("s.date >= ? AND s.date <= ?", dateBound(window.Start), dateBound(window.End)).
		Order("s.date ASC, s.created_at ASC").
		Scan(&rows).
		Error
	return rows, err
}

// ListUserRowsInWindow is ListRowsInWindow restricted to one owner.
func (r *Repository) ListUserRowsInWindow(ctx context.Context, userID uuid.UUID, window reporting.Window) ([]reporting.SaleRow, error) {
	var rows []reporting.SaleRow
	err := r.db.WithContext(ctx).
		Table("sales s").
		Select("s.*, u.email AS user_email").
		Joins("JOIN users u ON u.id = s.user_id").
		Where("s.user_id = ? AND s.date >= ? AND s.date <= ?", userID, dateBound(window.Start), dateBound(window.End)).
		Order("s.date ASC, s.created_at ASC").
		Scan(&rows).
		Error
	return rows, err
}

// ListPendingShares returns sales shared with a recipient that still await a
// response, newest first.
func (r *Repository) ListPendingShares(ctx context.Context, recipientID uuid.UUID) ([]models.Sale, error) {
	var sales []models.Sale
	err := r.db.WithContext(ctx).
		Where("shared_with_id = ? AND shared_status = ?", recipientID, enums.SharedStatusPending).
		Order("created_at DESC").
		Find(&sales).
		Error
	return sales, err
}

// ListPage returns one cursor page of a user's sales, newest first.
func (r *Repository) ListPage(ctx context.Context, userID uuid.UUID, cursor string, limit int) ([]models.Sale, string, error) {
	normalized := pagination.NormalizeLimit(limit)
	decoded, err := pagination.ParseCursor(strings.TrimSpace(cursor))
	if err != nil {
		return nil, "", err
	}

	query := r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Where("user_id = ?", userID)
	if decoded != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)", decoded.CreatedAt, decoded.CreatedAt, decoded.ID)
	}

	var sales []models.Sale
	if err := query.
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(limit)).
		Find(&sales).
		Error; err != nil {
		return nil, "", err
	}

	next := ""
	if len(sales) > normalized {
		sales = sales[:normalized]
		last := sales[len(sales)-1]
		next = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return sales, next, nil
}

// dateBound strips time-of-day so date-typed columns compare by calendar day.
func dateBound(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
