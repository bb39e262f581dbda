package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/danielcastillo/dealerdesk-backend/pkg/enums"
)

// User mirrors the dashboard account managed by the external identity provider.
type User struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email     string         `gorm:"column:email;type:text;not null;uniqueIndex:users_email_key"`
	Role      enums.UserRole `gorm:"column:role;type:user_role_enum;not null;default:'salesperson'"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
