package models

import (
	"time"

	"github.com/google/uuid"
)

// Spiff is a flat bonus payment unrelated to a specific vehicle sale.
// ImageURL references proof uploaded through the external storage collaborator.
type Spiff struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index:spiffs_user_id_idx"`
	Amount    float64   `gorm:"column:amount;type:numeric(12,2);not null"`
	Note      *string   `gorm:"column:note;type:text"`
	ImageURL  *string   `gorm:"column:image_url;type:text"`
	Date      time.Time `gorm:"column:date;type:date;not null;index:spiffs_date_idx"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
