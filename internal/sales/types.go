package sales

import (
	"time"

	"github.com/google/uuid"

	"github.com/danielcastillo/dealerdesk-backend/internal/commission"
	"github.com/danielcastillo/dealerdesk-backend/pkg/db/models"
	"github.com/danielcastillo/dealerdesk-backend/pkg/enums"
)

// Actor identifies the authenticated caller for permission checks.
type Actor struct {
	ID   uuid.UUID
	Role enums.UserRole
}

// CanAccess reports whether the actor may read or modify a sale owned by
// ownerID. Managers see everything.
func (a Actor) CanAccess(ownerID uuid.UUID) bool {
	return a.ID == ownerID || a.Role.CanManage()
}

// Input carries the writable fields of a sale. Pointer fields are optional;
// nil means the component is absent and earns nothing.
type Input struct {
	StockNumber      string    `json:"stock_number" validate:"required"`
	CustomerName     string    `json:"customer_name" validate:"required"`
	SaleType         string    `json:"sale_type" validate:"required"`
	SalePrice        float64   `json:"sale_price" validate:"gte=0"`
	AccessoriesPrice *float64  `json:"accessories_price,omitempty" validate:"omitempty,gte=0"`
	WarrantyPrice    *float64  `json:"warranty_price,omitempty" validate:"omitempty,gte=0"`
	WarrantyCost     *float64  `json:"warranty_cost,omitempty" validate:"omitempty,gte=0"`
	MaintenancePrice *float64  `json:"maintenance_price,omitempty" validate:"omitempty,gte=0"`
	MaintenanceCost  *float64  `json:"maintenance_cost,omitempty" validate:"omitempty,gte=0"`
	SharedWithEmail  *string   `json:"shared_with_email,omitempty" validate:"omitempty,email"`
	CommissionSplit  *int      `json:"commission_split,omitempty" validate:"omitempty,gte=0,lte=100"`
	Date             time.Time `json:"date" validate:"required"`
}

// SaleWithCommission pairs a stored sale with its computed breakdown, which
// is derived on read and never persisted.
type SaleWithCommission struct {
	Sale       models.Sale          `json:"sale"`
	Commission commission.Breakdown `json:"commission"`
}

// Page is one cursor page of a salesperson's sales, newest first.
type Page struct {
	Items  []SaleWithCommission `json:"items"`
	Cursor string               `json:"cursor"`
}
