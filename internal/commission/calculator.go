package commission

import (
	"math"

	"github.com/danielcastillo/dealerdesk-backend/pkg/db/models"
	"github.com/danielcastillo/dealerdesk-backend/pkg/enums"
)

// Car commission tiers, half-open intervals on sale price.
const (
	carTier1Limit = 10000.0
	carTier2Limit = 20000.0
	carTier3Limit = 30000.0

	carTier1Commission = 200.0
	carTier2Commission = 300.0
	carTier3Commission = 400.0
	carTier4Commission = 500.0
)

const (
	// Accessories eligibility thresholds by sale type.
	accessoriesThresholdNew  = 988.0
	accessoriesThresholdUsed = 488.0
	// The amount above the threshold required before the flat bonus pays out.
	accessoriesEligibleFloor = 800.0

	// Warranty pays 100 per full 1000 of profit, floored toward negative infinity.
	warrantyProfitStep = 1000.0
	warrantyStepPayout = 100.0

	// Maintenance pays a flat bonus above this price; maintenance_cost is
	// collected but deliberately unused by the rule.
	maintenancePriceFloor = 800.0

	flatBonus           = 100.0
	defaultSplitPercent = 50
)

// Breakdown decomposes one sale's commission. Values are recomputed on demand
// and never persisted.
type Breakdown struct {
	Car         float64 `json:"car_commission"`
	Accessories float64 `json:"accessories_commission"`
	Warranty    float64 `json:"warranty_commission"`
	Maintenance float64 `json:"maintenance_commission"`
	Total       float64 `json:"total_commission"`
}

// Compute derives the commission breakdown for a sale. It is pure and total:
// missing optional fields contribute zero, and no rounding is applied beyond
// the floor in the warranty rule, so split totals may carry fractional cents.
func Compute(sale models.Sale) Breakdown {
	var b Breakdown

	switch {
	case sale.SalePrice < carTier1Limit:
		b.Car = carTier1Commission
	case sale.SalePrice < carTier2Limit:
		b.Car = carTier2Commission
	case sale.SalePrice < carTier3Limit:
		b.Car = carTier3Commission
	default:
		b.Car = carTier4Commission
	}

	multiplier := SplitMultiplier(sale.SharedStatus, sale.CommissionSplit)
	b.Car *= multiplier

	if sale.AccessoriesPrice != nil {
		threshold := accessoriesThresholdUsed
		if sale.SaleType == enums.SaleTypeNew {
			threshold = accessoriesThresholdNew
		}
		if *sale.AccessoriesPrice-threshold > accessoriesEligibleFloor {
			b.Accessories = flatBonus * multiplier
		}
	}

	if sale.WarrantyPrice != nil && sale.WarrantyCost != nil {
		profit := *sale.WarrantyPrice - *sale.WarrantyCost
		// Negative profit passes through un-clamped: floor(-0.5) = -1.
		b.Warranty = math.Floor(profit/warrantyProfitStep) * warrantyStepPayout * multiplier
	}

	if sale.MaintenancePrice != nil && *sale.MaintenancePrice > maintenancePriceFloor {
		b.Maintenance = flatBonus * multiplier
	}

	b.Total = b.Car + b.Accessories + b.Warranty + b.Maintenance
	return b
}

// SplitMultiplier returns the fraction of commission kept by the owning
// salesperson. Only an accepted share activates the split; pending and
// rejected shares pay out in full. A nil split on an accepted share defaults
// to an even 50/50.
func SplitMultiplier(status *enums.SharedStatus, split *int) float64 {
	if status == nil || *status != enums.SharedStatusAccepted {
		return 1
	}
	percent := defaultSplitPercent
	if split != nil {
		percent = *split
	}
	return float64(percent) / 100
}
