package commission

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielcastillo/dealerdesk-backend/pkg/db/models"
	"github.com/danielcastillo/dealerdesk-backend/pkg/enums"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func sharedPtr(s enums.SharedStatus) *enums.SharedStatus { return &s }

func dateOf(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed
}

func timeZero() time.Time { return time.Time{} }

func TestCarCommissionTiers(t *testing.T) {
	tests := []struct {
		price float64
		want  float64
	}{
		{0, 200},
		{9999.99, 200},
		{10000, 300},
		{19999.99, 300},
		{20000, 400},
		{29999.99, 400},
		{30000, 500},
		{125000, 500},
	}

	for _, tt := range tests {
		got := Compute(models.Sale{SaleType: enums.SaleTypeUsed, SalePrice: tt.price})
		assert.Equalf(t, tt.want, got.Car, "price %v", tt.price)
		assert.Equalf(t, tt.want, got.Total, "price %v should have no other components", tt.price)
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	sale := models.Sale{
		SaleType:         enums.SaleTypeNew,
		SalePrice:        25000,
		AccessoriesPrice: floatPtr(1900),
		WarrantyPrice:    floatPtr(3000),
		WarrantyCost:     floatPtr(1000),
		MaintenancePrice: floatPtr(900),
	}

	first := Compute(sale)
	second := Compute(sale)
	require.Equal(t, first, second)
}

func TestComputeFullScenario(t *testing.T) {
	sale := models.Sale{
		SaleType:         enums.SaleTypeNew,
		SalePrice:        25000,
		AccessoriesPrice: floatPtr(1900),
		WarrantyPrice:    floatPtr(3000),
		WarrantyCost:     floatPtr(1000),
		MaintenancePrice: floatPtr(900),
	}

	got := Compute(sale)
	assert.Equal(t, 400.0, got.Car)
	assert.Equal(t, 100.0, got.Accessories) // eligible = 1900-988 = 912 > 800
	assert.Equal(t, 200.0, got.Warranty)    // floor(2000/1000)*100
	assert.Equal(t, 100.0, got.Maintenance)
	assert.Equal(t, 800.0, got.Total)
}

func TestComputeAcceptedSplitScalesEveryComponent(t *testing.T) {
	recipient := sharedPtr(enums.SharedStatusAccepted)
	sale := models.Sale{
		SaleType:         enums.SaleTypeNew,
		SalePrice:        25000,
		AccessoriesPrice: floatPtr(1900),
		WarrantyPrice:    floatPtr(3000),
		WarrantyCost:     floatPtr(1000),
		MaintenancePrice: floatPtr(900),
		SharedStatus:     recipient,
		CommissionSplit:  intPtr(40),
	}

	got := Compute(sale)
	assert.InDelta(t, 160.0, got.Car, 1e-9)
	assert.InDelta(t, 40.0, got.Accessories, 1e-9)
	assert.InDelta(t, 80.0, got.Warranty, 1e-9)
	assert.InDelta(t, 40.0, got.Maintenance, 1e-9)
	assert.InDelta(t, 320.0, got.Total, 1e-9)

	full := sale
	full.CommissionSplit = intPtr(100)
	fullBreakdown := Compute(full)
	assert.InDelta(t, fullBreakdown.Total*0.4, got.Total, 1e-9)
}

func TestSplitMultiplierStates(t *testing.T) {
	assert.Equal(t, 1.0, SplitMultiplier(nil, nil))
	assert.Equal(t, 1.0, SplitMultiplier(sharedPtr(enums.SharedStatusPending), intPtr(40)))
	assert.Equal(t, 1.0, SplitMultiplier(sharedPtr(enums.SharedStatusRejected), intPtr(40)))
	assert.Equal(t, 0.5, SplitMultiplier(sharedPtr(enums.SharedStatusAccepted), nil))
	assert.Equal(t, 0.4, SplitMultiplier(sharedPtr(enums.SharedStatusAccepted), intPtr(40)))
	// An explicit zero split means the owner keeps nothing.
	assert.Equal(t, 0.0, SplitMultiplier(sharedPtr(enums.SharedStatusAccepted), intPtr(0)))
}

func TestAccessoriesAllOrNothing(t *testing.T) {
	tests := []struct {
		name     string
		saleType enums.SaleType
		price    float64
		want     float64
	}{
		{"new exactly at floor pays nothing", enums.SaleTypeNew, 988 + 800, 0},
		{"new just over floor pays flat bonus", enums.SaleTypeNew, 988 + 800.01, 100},
		{"new far over floor still pays flat bonus", enums.SaleTypeNew, 50000, 100},
		{"used threshold is lower", enums.SaleTypeUsed, 488 + 800.01, 100},
		{"trade-in uses the used threshold", enums.SaleTypeTradeIn, 488 + 800.01, 100},
		{"used below threshold pays nothing", enums.SaleTypeUsed, 1288, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sale := models.Sale{SaleType: tt.saleType, SalePrice: 5000, AccessoriesPrice: floatPtr(tt.price)}
			assert.Equal(t, tt.want, Compute(sale).Accessories)
		})
	}

	noAccessories := Compute(models.Sale{SaleType: enums.SaleTypeNew, SalePrice: 5000})
	assert.Equal(t, 0.0, noAccessories.Accessories)
}

func TestWarrantyCommission(t *testing.T) {
	tests := []struct {
		name  string
		price *float64
		cost  *float64
		want  float64
	}{
		{"both absent", nil, nil, 0},
		{"cost absent", floatPtr(3000), nil, 0},
		{"price absent", nil, floatPtr(1000), 0},
		{"profit below one step", floatPtr(1999), floatPtr(1000), 0},
		{"profit of one step", floatPtr(2000), floatPtr(1000), 100},
		{"profit rounds down within step", floatPtr(2999), floatPtr(1000), 100},
		// Negative profit is passed through, not clamped.
		{"negative profit of one cent", floatPtr(999.99), floatPtr(1000), -100},
		{"negative half step floors to a full step", floatPtr(500), floatPtr(1000), -100},
		{"negative beyond one step", floatPtr(0), floatPtr(1500), -200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sale := models.Sale{SaleType: enums.SaleTypeUsed, SalePrice: 5000, WarrantyPrice: tt.price, WarrantyCost: tt.cost}
			assert.Equal(t, tt.want, Compute(sale).Warranty)
		})
	}
}

func TestMaintenanceCommissionIgnoresCost(t *testing.T) {
	atFloor := Compute(models.Sale{SaleType: enums.SaleTypeUsed, SalePrice: 5000, MaintenancePrice: floatPtr(800)})
	assert.Equal(t, 0.0, atFloor.Maintenance)

	overFloor := Compute(models.Sale{
		SaleType:         enums.SaleTypeUsed,
		SalePrice:        5000,
		MaintenancePrice: floatPtr(900),
		MaintenanceCost:  floatPtr(10000),
	})
	assert.Equal(t, 100.0, overFloor.Maintenance)
}

func TestValidateSale(t *testing.T) {
	valid := models.Sale{SaleType: enums.SaleTypeNew, SalePrice: 12000, Date: dateOf(t, "2025-06-02")}
	require.NoError(t, ValidateSale(valid))

	tests := []struct {
		name   string
		mutate func(*models.Sale)
	}{
		{"negative sale price", func(s *models.Sale) { s.SalePrice = -1 }},
		{"missing date", func(s *models.Sale) { s.Date = timeZero() }},
		{"unknown sale type", func(s *models.Sale) { s.SaleType = "Lease" }},
		{"negative accessories price", func(s *models.Sale) { s.AccessoriesPrice = floatPtr(-5) }},
		{"orphan shared status", func(s *models.Sale) { s.SharedStatus = sharedPtr(enums.SharedStatusPending) }},
		{"split without share", func(s *models.Sale) { s.CommissionSplit = intPtr(50) }},
		{"split out of range", func(s *models.Sale) {
			id := s.UserID
			s.SharedWithID = &id
			s.SharedStatus = sharedPtr(enums.SharedStatusAccepted)
			s.CommissionSplit = intPtr(150)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sale := valid
			tt.mutate(&sale)
			err := ValidateSale(sale)
			require.Error(t, err)
		})
	}
}
