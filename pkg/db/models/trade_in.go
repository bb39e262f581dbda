package models

import (
	"time"

	"github.com/google/uuid"
)

// TradeIn is a negotiated trade-in bonus, tracked as its own commission line.
type TradeIn struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index:trade_ins_user_id_idx"`
	Amount    float64   `gorm:"column:amount;type:numeric(12,2);not null"`
	Comment   string    `gorm:"column:comment;type:text;not null"`
	Date      time.Time `gorm:"column:date;type:date;not null;index:trade_ins_date_idx"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
