package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/danielcastillo/dealerdesk-backend/internal/reporting"
	"github.com/danielcastillo/dealerdesk-backend/internal/sales"
	"github.com/danielcastillo/dealerdesk-backend/internal/spiffs"
	"github.com/danielcastillo/dealerdesk-backend/internal/tradeins"
	"github.com/danielcastillo/dealerdesk-backend/internal/users"
	"github.com/danielcastillo/dealerdesk-backend/pkg/enums"
	pkgerrors "github.com/danielcastillo/dealerdesk-backend/pkg/errors"
)

// SalesAnalytics is the manager's month view: the full summary plus trend
// deltas against the previous month.
type SalesAnalytics struct {
	Month        string                  `json:"month"`
	Summary      reporting.PeriodSummary `json:"summary"`
	Revenue      reporting.Change        `json:"revenue"`
	SalesCount   reporting.Change        `json:"sales_count"`
	AveragePrice reporting.Change        `json:"average_price"`
}

// SalesPerformance is one salesperson's row in the team report.
type SalesPerformance struct {
	UserID          uuid.UUID `json:"user_id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	SalesCount      int       `json:"sales_count"`
	Revenue         float64   `json:"revenue"`
	AveragePrice    float64   `json:"average_price"`
	NewCount        int       `json:"new_count"`
	UsedCount       int       `json:"used_count"`
	TradeInCount    int       `json:"trade_in_count"`
	SpiffCount      int       `json:"spiff_count"`
	TotalCommission float64   `json:"total_commission"`
}

// ServiceParams groups dependencies for the analytics service.
type ServiceParams struct {
	SaleRepo    *sales.Repository
	SpiffRepo   *spiffs.Repository
	TradeInRepo *tradeins.Repository
	UserRepo    *users.Repository
	Cache       *Cache
}

// Service produces the manager analytics views.
type Service interface {
	SalesAnalytics(ctx context.Context, year int, month time.Month) (SalesAnalytics, error)
	TeamPerformance(ctx context.Context, year int, month time.Month) ([]SalesPerformance, error)
	IndividualReport(ctx context.Context, userID uuid.UUID, year int, month time.Month) (reporting.PeriodSummary, error)
}

type service struct {
	saleRepo    *sales.Repository
	spiffRepo   *spiffs.Repository
	tradeInRepo *tradeins.Repository
	userRepo    *users.Repository
	cache       *Cache
}

// NewService builds an analytics service. Cache is optional.
func NewService(params ServiceParams) (Service, error) {
	if params.SaleRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "sale repo is required")
	}
	if params.SpiffRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "spiff repo is required")
	}
	if params.TradeInRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "trade-in repo is required")
	}
	if params.UserRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "user repo is required")
	}
	return &service{
		saleRepo:    params.SaleRepo,
		spiffRepo:   params.SpiffRepo,
		tradeInRepo: params.TradeInRepo,
		userRepo:    params.UserRepo,
		cache:       params.Cache,
	}, nil
}

// SalesAnalytics summarizes a month for every salesperson, served from cache
// when a fresh copy exists.
func (s *service) SalesAnalytics(ctx context.Context, year int, month time.Month) (SalesAnalytics, error) {
	window := reporting.MonthWindow(year, month)

	var cached SalesAnalytics
	if s.cache.get(ctx, window.Key(), &cached) {
		return cached, nil
	}

	current, err := s.summarize(ctx, window)
	if err != nil {
		return SalesAnalytics{}, err
	}
	previous, err := s.summarize(ctx, window.PreviousMonth())
	if err != nil {
		return SalesAnalytics{}, err
	}

	result := SalesAnalytics{
		Month:        window.Key(),
		Summary:      current,
		Revenue:      reporting.CompareChange(current.TotalRevenue, previous.TotalRevenue),
		SalesCount:   reporting.CompareChange(float64(current.TotalSales), float64(previous.TotalSales)),
		AveragePrice: reporting.CompareChange(current.AveragePrice, previous.AveragePrice),
	}
	s.cache.put(ctx, window.Key(), result)
	return result, nil
}

// TeamPerformance builds one row per account, including salespeople with no
// activity in the month.
func (s *service) TeamPerformance(ctx context.Context, year int, month time.Month) ([]SalesPerformance, error) {
	window := reporting.MonthWindow(year, month)

	accounts, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}

	rows := make([]SalesPerformance, 0, len(accounts))
	for _, account := range accounts {
		summary, err := s.summarizeUser(ctx, account.ID, window)
		if err != nil {
			return nil, err
		}
		rows = append(rows, SalesPerformance{
			UserID:          account.ID,
			Name:            reporting.ShortName(account.Email),
			Email:           account.Email,
			SalesCount:      summary.TotalSales,
			Revenue:         summary.TotalRevenue,
			AveragePrice:    summary.AveragePrice,
			NewCount:        summary.CountByType[enums.SaleTypeNew],
			UsedCount:       summary.CountByType[enums.SaleTypeUsed],
			TradeInCount:    summary.CountByType[enums.SaleTypeTradeIn],
			SpiffCount:      summary.SpiffCount,
			TotalCommission: summary.TotalCommission,
		})
	}
	return rows, nil
}

// IndividualReport is the month summary for one salesperson.
func (s *service) IndividualReport(ctx context.Context, userID uuid.UUID, year int, month time.Month) (reporting.PeriodSummary, error) {
	if userID == uuid.Nil {
		return reporting.PeriodSummary{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	return s.summarizeUser(ctx, userID, reporting.MonthWindow(year, month))
}

func (s *service) summarize(ctx context.Context, window reporting.Window) (reporting.PeriodSummary, error) {
	saleRows, err := s.saleRepo.ListRowsInWindow(ctx, window)
	if err != nil {
		return reporting.PeriodSummary{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sales")
	}
	monthSpiffs, err := s.spiffRepo.ListInWindow(ctx, window)
	if err != nil {
		return reporting.PeriodSummary{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load spiffs")
	}
	monthTradeIns, err := s.tradeInRepo.ListInWindow(ctx, window)
	if err != nil {
		return reporting.PeriodSummary{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load trade-ins")
	}
	return reporting.Aggregate(saleRows, monthSpiffs, monthTradeIns, window), nil
}

func (s *service) summarizeUser(ctx context.Context, userID uuid.UUID, window reporting.Window) (reporting.PeriodSummary, error) {
	saleRows, err := s.saleRepo.ListUserRowsInWindow(ctx, userID, window)
	if err != nil {
		return reporting.PeriodSummary{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sales")
	}
	monthSpiffs, err := s.spiffRepo.ListOwnedInWindow(ctx, userID, window)
	if err != nil {
		return reporting.PeriodSummary{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load spiffs")
	}
	monthTradeIns, err := s.tradeInRepo.ListOwnedInWindow(ctx, userID, window)
	if err != nil {
		return reporting.PeriodSummary{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load trade-ins")
	}
	return reporting.Aggregate(saleRows, monthSpiffs, monthTradeIns, window), nil
}
