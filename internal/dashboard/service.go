package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/danielcastillo/dealerdesk-backend/internal/reporting"
	"github.com/danielcastillo/dealerdesk-backend/internal/sales"
	"github.com/danielcastillo/dealerdesk-backend/internal/spiffs"
	"github.com/danielcastillo/dealerdesk-backend/internal/tradeins"
	"github.com/danielcastillo/dealerdesk-backend/pkg/enums"
	pkgerrors "github.com/danielcastillo/dealerdesk-backend/pkg/errors"
)

// Stats is the salesperson dashboard: this month against last month, one
// Change per card.
type Stats struct {
	TotalSales      reporting.Change       `json:"total_sales"`
	TotalCommission reporting.Change       `json:"total_commission"`
	NewSales        reporting.Change       `json:"new_sales"`
	UsedSales       reporting.Change       `json:"used_sales"`
	SharedSales     reporting.Change       `json:"shared_sales"`
	DailySales      []reporting.DailyPoint `json:"daily_sales"`
}

// ServiceParams groups dependencies for the dashboard service.
type ServiceParams struct {
	SaleRepo    *sales.Repository
	SpiffRepo   *spiffs.Repository
	TradeInRepo *tradeins.Repository
}

// Service produces per-salesperson dashboard stats.
type Service interface {
	Stats(ctx context.Context, userID uuid.UUID, year int, month time.Month) (Stats, error)
}

type service struct {
	saleRepo    *sales.Repository
	spiffRepo   *spiffs.Repository
	tradeInRepo *tradeins.Repository
}

// NewService builds a dashboard service with the required dependencies.
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
	return &service{
		saleRepo:    params.SaleRepo,
		spiffRepo:   params.SpiffRepo,
		tradeInRepo: params.TradeInRepo,
	}, nil
}

// Stats aggregates the requested month and the one before it, then diffs the
// card values.
func (s *service) Stats(ctx context.Context, userID uuid.UUID, year int, month time.Month) (Stats, error) {
	if userID == uuid.Nil {
		return Stats{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	window := reporting.MonthWindow(year, month)
	current, err := s.summarize(ctx, userID, window)
	if err != nil {
		return Stats{}, err
	}
	previous, err := s.summarize(ctx, userID, window.PreviousMonth())
	if err != nil {
		return Stats{}, err
	}

	return Stats{
		TotalSales:      reporting.CompareChange(float64(current.TotalSales), float64(previous.TotalSales)),
		TotalCommission: reporting.CompareChange(current.TotalCommission, previous.TotalCommission),
		NewSales:        reporting.CompareChange(float64(current.CountByType[enums.SaleTypeNew]), float64(previous.CountByType[enums.SaleTypeNew])),
		UsedSales:       reporting.CompareChange(float64(current.CountByType[enums.SaleTypeUsed]), float64(previous.CountByType[enums.SaleTypeUsed])),
		SharedSales:     reporting.CompareChange(float64(current.SharedSales), float64(previous.SharedSales)),
		DailySales:      current.DailySales,
	}, nil
}

func (s *service) summarize(ctx context.Context, userID uuid.UUID, window reporting.Window) (reporting.PeriodSummary, error) {
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
