package reporting

import (
	"github.com/danielcastillo/dealerdesk-backend/pkg/db/models"
	"github.com/danielcastillo/dealerdesk-backend/pkg/enums"
)

// SaleRow is a sale joined with its owner's email, as the repositories
// return it for reporting queries.
type SaleRow struct {
	models.Sale `gorm:"embedded"`
	UserEmail   string `gorm:"column:user_email" json:"user_email"`
}

// SalespersonStat is a per-salesperson rollup within a period. Grouping keys
// by owner ID; the display name is derived from the email separately so two
// people with colliding local-parts never merge.
type SalespersonStat struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// DailyPoint is one day's bucket in the period series. Days with no records
// are omitted; callers needing a dense series backfill themselves.
type DailyPoint struct {
	Date    string  `json:"date"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// PeriodSummary aggregates all records whose date falls within a window.
type PeriodSummary struct {
	TotalSales      int                        `json:"total_sales"`
	TotalRevenue    float64                    `json:"total_revenue"`
	AveragePrice    float64                    `json:"average_price"`
	CountByType     map[enums.SaleType]int     `json:"count_by_type"`
	SharedSales     int                        `json:"shared_sales"`
	TotalCommission float64                    `json:"total_commission"`
	SpiffCount      int                        `json:"spiff_count"`
	SpiffTotal      float64                    `json:"spiff_total"`
	TradeInCount    int                        `json:"trade_in_count"`
	TradeInTotal    float64                    `json:"trade_in_total"`
	BySalesperson   map[string]SalespersonStat `json:"by_salesperson"`
	DailySales      []DailyPoint               `json:"daily_sales"`
}

// Change captures a current-versus-previous comparison for one stat.
// A zero delta renders as an increase so the dashboard shows "+0".
type Change struct {
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
	Increase   bool    `json:"increase"`
}
