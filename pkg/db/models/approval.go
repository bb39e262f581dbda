package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/danielcastillo/dealerdesk-backend/pkg/enums"
)

// Approval tracks a manager's payroll decision on a sale or spiff entry.
// EntryID points at the sales or spiffs row depending on Kind.
type Approval struct {
	ID        uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Kind      enums.ApprovalKind   `gorm:"column:kind;type:approval_kind_enum;not null;uniqueIndex:approvals_kind_entry_key"`
	EntryID   uuid.UUID            `gorm:"column:entry_id;type:uuid;not null;uniqueIndex:approvals_kind_entry_key"`
	UserID    uuid.UUID            `gorm:"column:user_id;type:uuid;not null;index:approvals_user_id_idx"`
	ManagerID *uuid.UUID           `gorm:"column:manager_id;type:uuid"`
	Status    enums.ApprovalStatus `gorm:"column:status;type:approval_status_enum;not null;default:'pending'"`
	Comment   *string              `gorm:"column:comment;type:text"`
	DecidedAt *time.Time           `gorm:"column:decided_at"`
	CreatedAt time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
