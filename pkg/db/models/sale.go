package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/danielcastillo/dealerdesk-backend/pkg/enums"
)

// Sale records one vehicle transaction logged by a salesperson.
//
// SharedWithID and SharedStatus are both set or both null; CommissionSplit is
// meaningful only while SharedStatus is accepted. The service layer enforces
// this, the schema only stores it.
type Sale struct {
	ID               uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID           uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index:sales_user_id_idx"`
	StockNumber      string              `gorm:"column:stock_number;type:text;not null"`
	CustomerName     string              `gorm:"column:customer_name;type:text;not null"`
	SaleType         enums.SaleType      `gorm:"column:sale_type;type:sale_type_enum;not null"`
	SalePrice        float64             `gorm:"column:sale_price;type:numeric(12,2);not null"`
	AccessoriesPrice *float64            `gorm:"column:accessories_price;type:numeric(12,2)"`
	WarrantyPrice    *float64            `gorm:"column:warranty_price;type:numeric(12,2)"`
	WarrantyCost     *float64            `gorm:"column:warranty_cost;type:numeric(12,2)"`
	MaintenancePrice *float64            `gorm:"column:maintenance_price;type:numeric(12,2)"`
	MaintenanceCost  *float64            `gorm:"column:maintenance_cost;type:numeric(12,2)"`
	SharedWithEmail  *string             `gorm:"column:shared_with_email;type:text"`
	SharedWithID     *uuid.UUID          `gorm:"column:shared_with_id;type:uuid;index:sales_shared_with_id_idx"`
	SharedStatus     *enums.SharedStatus `gorm:"column:shared_status;type:shared_status_enum"`
	CommissionSplit  *int                `gorm:"column:commission_split"`
	Date             time.Time           `gorm:"column:date;type:date;not null;index:sales_date_idx"`
	CreatedAt        time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
