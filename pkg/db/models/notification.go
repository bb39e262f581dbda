package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/danielcastillo/dealerdesk-backend/pkg/enums"
)

// Notification announces shared-sale lifecycle events to a user.
type Notification struct {
	ID        uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID              `gorm:"column:user_id;type:uuid;not null;index:notifications_user_id_idx"`
	SaleID    uuid.UUID              `gorm:"column:sale_id;type:uuid;not null"`
	Type      enums.NotificationType `gorm:"column:type;type:notification_type_enum;not null"`
	Read      bool                   `gorm:"column:read;not null;default:false"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime"`
}
