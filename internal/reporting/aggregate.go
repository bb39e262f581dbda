package reporting

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/danielcastillo/dealerdesk-backend/internal/commission"
	"github.com/danielcastillo/dealerdesk-backend/pkg/db/models"
	"github.com/danielcastillo/dealerdesk-backend/pkg/enums"
)

// Aggregate folds sales, spiffs and trade-ins over a window into a
// PeriodSummary. One linear pass per collection; sales run through the
// commission calculator, spiffs and trade-ins contribute their raw amounts.
func Aggregate(sales []SaleRow, spiffs []models.Spiff, tradeIns []models.TradeIn, window Window) PeriodSummary {
	summary := PeriodSummary{
		CountByType: map[enums.SaleType]int{
			enums.SaleTypeNew:     0,
			enums.SaleTypeUsed:    0,
			enums.SaleTypeTradeIn: 0,
		},
		BySalesperson: map[string]SalespersonStat{},
	}

	daily := map[string]*DailyPoint{}

	for _, sale := range sales {
		if !window.Contains(sale.Date) {
			continue
		}

		summary.TotalSales++
		summary.TotalRevenue += sale.SalePrice
		summary.CountByType[sale.SaleType]++
		if sale.SharedWithEmail != nil {
			summary.SharedSales++
		}
		summary.TotalCommission += commission.Compute(sale.Sale).Total

		key := sale.UserID.String()
		stat := summary.BySalesperson[key]
		if stat.Name == "" {
			stat.Name = ShortName(sale.UserEmail)
		}
		stat.Count++
		stat.Revenue += sale.SalePrice
		summary.BySalesperson[key] = stat

		dayKey := DayKey(sale.Date)
		point, ok := daily[dayKey]
		if !ok {
			point = &DailyPoint{Date: dayKey}
			daily[dayKey] = point
		}
		point.Count++
		point.Revenue += sale.SalePrice
	}

	for _, spiff := range spiffs {
		if !window.Contains(spiff.Date) {
			continue
		}
		summary.SpiffCount++
		summary.SpiffTotal += spiff.Amount
		summary.TotalCommission += spiff.Amount
	}

	for _, tradeIn := range tradeIns {
		if !window.Contains(tradeIn.Date) {
			continue
		}
		summary.TradeInCount++
		summary.TradeInTotal += tradeIn.Amount
		summary.TotalCommission += tradeIn.Amount
	}

	if summary.TotalSales > 0 {
		summary.AveragePrice = summary.TotalRevenue / float64(summary.TotalSales)
	}

	summary.DailySales = make([]DailyPoint, 0, len(daily))
	for _, point := range daily {
		summary.DailySales = append(summary.DailySales, *point)
	}
	sort.Slice(summary.DailySales, func(i, j int) bool {
		return summary.DailySales[i].Date < summary.DailySales[j].Date
	})

	return summary
}

// ShortName derives the display name shown on team reports: the email
// local-part with its first letter capitalized.
func ShortName(email string) string {
	local, _, _ := strings.Cut(strings.TrimSpace(email), "@")
	if local == "" {
		return "Unknown"
	}
	first, width := utf8.DecodeRuneInString(local)
	return string(unicode.ToUpper(first)) + local[width:]
}
