package notifications

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/danielcastillo/dealerdesk-backend/pkg/db/models"
	"github.com/danielcastillo/dealerdesk-backend/pkg/enums"
)

// Repository exposes persistence helpers for shared-sale notifications.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, notification *models.Notification) error
	ListUnread(ctx context.Context, userID uuid.UUID) ([]Row, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) (bool, error)
}

// Row is a notification joined with the sale it announces.
type Row struct {
	ID           uuid.UUID              `gorm:"column:id" json:"id"`
	SaleID       uuid.UUID              `gorm:"column:sale_id" json:"sale_id"`
	Type         enums.NotificationType `gorm:"column:type" json:"type"`
	CreatedAt    time.Time              `gorm:"column:created_at" json:"created_at"`
	CustomerName string                 `gorm:"column:customer_name" json:"customer_name"`
	StockNumber  string                 `gorm:"column:stock_number" json:"stock_number"`
	SalePrice    float64                `gorm:"column:sale_price" json:"sale_price"`
	SaleDate     time.Time              `gorm:"column:sale_date" json:"sale_date"`
	OwnerEmail   string                 `gorm:"column:owner_email" json:"owner_email"`
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a notifications repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, notification *models.Notification) error {
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *repositoryImpl) ListUnread(ctx context.Context, userID uuid.UUID) ([]Row, error) {
	var rows []Row
	err := r.db.WithContext(ctx).
		Table("notifications n").
		Select("n.id, n.sale_id, n.type, n.created_at, s.customer_name, s.stock_number, s.sale_price, s.date AS sale_date, u.email AS owner_email").
		Joins("JOIN sales s ON s.id = n.sale_id").
		Joins("JOIN users u ON u.id = s.user_id").
		Where("n.user_id = ? AND n.read = ?", userID, false).
		Order("n.created_at DESC").
		Scan(&rows).
		Error
	return rows, err
}

func (r *repositoryImpl) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		UpdateColumn("read", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
