package reporting

import (
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielcastillo/dealerdesk-backend/pkg/db/models"
	"github.com/danielcastillo/dealerdesk-backend/pkg/enums"
)

func saleRow(userID uuid.UUID, email string, price float64, day time.Time) SaleRow {
	return SaleRow{
		Sale: models.Sale{
			ID:        uuid.New(),
			UserID:    userID,
			SaleType:  enums.SaleTypeNew,
			SalePrice: price,
			Date:      day,
		},
		UserEmail: email,
	}
}

func TestAggregateEmpty(t *testing.T) {
	summary := Aggregate(nil, nil, nil, MonthWindow(2025, time.June))

	assert.Equal(t, 0, summary.TotalSales)
	assert.Zero(t, summary.TotalRevenue)
	assert.Zero(t, summary.AveragePrice)
	assert.Zero(t, summary.TotalCommission)
	assert.Empty(t, summary.BySalesperson)
	assert.Empty(t, summary.DailySales)
	assert.Equal(t, map[enums.SaleType]int{
		enums.SaleTypeNew:     0,
		enums.SaleTypeUsed:    0,
		enums.SaleTypeTradeIn: 0,
	}, summary.CountByType)
}

func TestAggregateSales(t *testing.T) {
	window := MonthWindow(2025, time.June)
	alice := uuid.New()
	bob := uuid.New()

	third := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	tenth := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	shared := saleRow(alice, "alice@dealerdesk.io", 25000, tenth)
	sharedEmail := "bob@dealerdesk.io"
	shared.SharedWithEmail = &sharedEmail

	sales := []SaleRow{
		saleRow(alice, "alice@dealerdesk.io", 15000, third),
		shared,
		saleRow(bob, "bob@dealerdesk.io", 9000, third),
		// Outside the window, must be ignored.
		saleRow(bob, "bob@dealerdesk.io", 50000, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)),
	}

	summary := Aggregate(sales, nil, nil, window)

	assert.Equal(t, 3, summary.TotalSales)
	assert.InDelta(t, 49000, summary.TotalRevenue, 1e-9)
	assert.InDelta(t, 49000.0/3, summary.AveragePrice, 1e-9)
	assert.Equal(t, 3, summary.CountByType[enums.SaleTypeNew])
	assert.Equal(t, 1, summary.SharedSales)
	// Car tiers only: 300 + 400 + 200.
	assert.InDelta(t, 900, summary.TotalCommission, 1e-9)

	require.Len(t, summary.BySalesperson, 2)
	aliceStat := summary.BySalesperson[alice.String()]
	assert.Equal(t, "Alice", aliceStat.Name)
	assert.Equal(t, 2, aliceStat.Count)
	assert.InDelta(t, 40000, aliceStat.Revenue, 1e-9)
	bobStat := summary.BySalesperson[bob.String()]
	assert.Equal(t, "Bob", bobStat.Name)
	assert.Equal(t, 1, bobStat.Count)

	require.Len(t, summary.DailySales, 2)
	assert.Equal(t, DailyPoint{Date: "2025-06-03", Count: 2, Revenue: 24000}, summary.DailySales[0])
	assert.Equal(t, DailyPoint{Date: "2025-06-10", Count: 1, Revenue: 25000}, summary.DailySales[1])
}

func TestAggregateSpiffsAndTradeIns(t *testing.T) {
	window := MonthWindow(2025, time.June)
	owner := uuid.New()
	inWindow := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	outside := time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC)

	spiffs := []models.Spiff{
		{ID: uuid.New(), UserID: owner, Amount: 150, Date: inWindow},
		{ID: uuid.New(), UserID: owner, Amount: 75, Date: inWindow},
		{ID: uuid.New(), UserID: owner, Amount: 999, Date: outside},
	}
	tradeIns := []models.TradeIn{
		{ID: uuid.New(), UserID: owner, Amount: 250, Date: inWindow},
		{ID: uuid.New(), UserID: owner, Amount: 999, Date: outside},
	}

	summary := Aggregate(nil, spiffs, tradeIns, window)

	assert.Equal(t, 2, summary.SpiffCount)
	assert.InDelta(t, 225, summary.SpiffTotal, 1e-9)
	assert.Equal(t, 1, summary.TradeInCount)
	assert.InDelta(t, 250, summary.TradeInTotal, 1e-9)
	// Bonuses land in the commission total alongside sale commissions.
	assert.InDelta(t, 475, summary.TotalCommission, 1e-9)
	assert.Equal(t, 0, summary.TotalSales)
	assert.Empty(t, summary.DailySales, "bonuses do not create daily sale buckets")
}

func TestShortName(t *testing.T) {
	assert.Equal(t, "Alice", ShortName("alice@dealerdesk.io"))
	assert.Equal(t, "J.doe", ShortName("j.doe@dealerdesk.io"))
	assert.Equal(t, "Plain", ShortName("plain"))
	assert.Equal(t, "Unknown", ShortName(""))
	assert.Equal(t, "Unknown", ShortName("@dealerdesk.io"))
	assert.Equal(t, "Ødegaard", ShortName("ødegaard@dealerdesk.io"))
	assert.True(t, utf8.ValidString(ShortName("éclair@dealerdesk.io")))
}
