package commission

import (
	"fmt"

	"github.com/danielcastillo/dealerdesk-backend/pkg/db/models"
	pkgerrors "github.com/danielcastillo/dealerdesk-backend/pkg/errors"
)

// ValidateSale fails fast on input the calculator should never see, naming
// the offending field so the API layer can surface a usable message.
func ValidateSale(sale models.Sale) error {
	if !sale.SaleType.IsValid() {
		return fieldError("sale_type", fmt.Sprintf("unknown sale type %q", sale.SaleType))
	}
	if sale.SalePrice < 0 {
		return fieldError("sale_price", "must be non-negative")
	}
	if sale.Date.IsZero() {
		return fieldError("date", "is required")
	}

	optional := map[string]*float64{
		"accessories_price": sale.AccessoriesPrice,
		"warranty_price":    sale.WarrantyPrice,
		"warranty_cost":     sale.WarrantyCost,
		"maintenance_price": sale.MaintenancePrice,
		"maintenance_cost":  sale.MaintenanceCost,
	}
	for field, value := range optional {
		if value != nil && *value < 0 {
			return fieldError(field, "must be non-negative")
		}
	}

	if (sale.SharedWithID == nil) != (sale.SharedStatus == nil) {
		return fieldError("shared_status", "shared_with_id and shared_status must be set together")
	}
	if sale.SharedStatus != nil && !sale.SharedStatus.IsValid() {
		return fieldError("shared_status", fmt.Sprintf("unknown shared status %q", *sale.SharedStatus))
	}
	if sale.CommissionSplit != nil {
		if *sale.CommissionSplit < 0 || *sale.CommissionSplit > 100 {
			return fieldError("commission_split", "must be between 0 and 100")
		}
		if sale.SharedStatus == nil {
			return fieldError("commission_split", "only meaningful on a shared sale")
		}
	}

	return nil
}

func fieldError(field, message string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, "invalid sale input").
		WithDetails(map[string]string{field: message})
}
