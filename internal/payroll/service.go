package payroll

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/danielcastillo/dealerdesk-backend/internal/approvals"
	"github.com/danielcastillo/dealerdesk-backend/internal/commission"
	"github.com/danielcastillo/dealerdesk-backend/internal/reporting"
	"github.com/danielcastillo/dealerdesk-backend/internal/users"
	"github.com/danielcastillo/dealerdesk-backend/pkg/enums"
	pkgerrors "github.com/danielcastillo/dealerdesk-backend/pkg/errors"
)

// Actor identifies the authenticated caller for permission checks.
type Actor struct {
	ID   uuid.UUID
	Role enums.UserRole
}

// Line is one salesperson's payout for the month. Amounts are summed in
// decimal and rounded half-up to cents at this boundary; the commission
// calculator itself stays in float64.
type Line struct {
	UserID          uuid.UUID       `json:"user_id"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	SalesCount      int             `json:"sales_count"`
	SpiffCount      int             `json:"spiff_count"`
	SalesCommission decimal.Decimal `json:"sales_commission"`
	SpiffTotal      decimal.Decimal `json:"spiff_total"`
	Total           decimal.Decimal `json:"total"`
}

// Report is the month-end payout report over approved entries only.
type Report struct {
	Month      string          `json:"month"`
	Lines      []Line          `json:"lines"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// ServiceParams groups dependencies for the payroll service.
type ServiceParams struct {
	ApprovalRepo *approvals.Repository
	UserRepo     *users.Repository
}

// Service builds month-end payroll reports.
type Service interface {
	Report(ctx context.Context, actor Actor, year int, month time.Month) (Report, error)
}

type service struct {
	approvalRepo *approvals.Repository
	userRepo     *users.Repository
}

// NewService builds a payroll service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.ApprovalRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "approval repo is required")
	}
	if params.UserRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "user repo is required")
	}
	return &service{approvalRepo: params.ApprovalRepo, userRepo: params.UserRepo}, nil
}

// Report sums the month's approved sale commissions and spiffs per
// salesperson. Entries without an approved decision are excluded.
func (s *service) Report(ctx context.Context, actor Actor, year int, month time.Month) (Report, error) {
	if !actor.Role.CanManage() {
		return Report{}, pkgerrors.New(pkgerrors.CodeForbidden, "only managers may run payroll")
	}

	window := reporting.MonthWindow(year, month)
	approvedSales, err := s.approvalRepo.ListApprovedSales(ctx, window)
	if err != nil {
		return Report{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load approved sales")
	}
	approvedSpiffs, err := s.approvalRepo.ListApprovedSpiffs(ctx, window)
	if err != nil {
		return Report{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load approved spiffs")
	}
	accounts, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return Report{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}

	emails := make(map[uuid.UUID]string, len(accounts))
	for _, account := range accounts {
		emails[account.ID] = account.Email
	}

	lines := map[uuid.UUID]*Line{}
	lineFor := func(userID uuid.UUID) *Line {
		line, ok := lines[userID]
		if !ok {
			email := emails[userID]
			line = &Line{
				UserID:          userID,
				Name:            reporting.ShortName(email),
				Email:           email,
				SalesCommission: decimal.Zero,
				SpiffTotal:      decimal.Zero,
			}
			lines[userID] = line
		}
		return line
	}

	for _, sale := range approvedSales {
		line := lineFor(sale.UserID)
		line.SalesCount++
		line.SalesCommission = line.SalesCommission.Add(decimal.NewFromFloat(commission.Compute(sale).Total))
	}
	for _, spiff := range approvedSpiffs {
		line := lineFor(spiff.UserID)
		line.SpiffCount++
		line.SpiffTotal = line.SpiffTotal.Add(decimal.NewFromFloat(spiff.Amount))
	}

	report := Report{
		Month:      window.Key(),
		Lines:      make([]Line, 0, len(lines)),
		GrandTotal: decimal.Zero,
	}
	for _, line := range lines {
		line.SalesCommission = line.SalesCommission.Round(2)
		line.SpiffTotal = line.SpiffTotal.Round(2)
		line.Total = line.SalesCommission.Add(line.SpiffTotal)
		report.GrandTotal = report.GrandTotal.Add(line.Total)
		report.Lines = append(report.Lines, *line)
	}
	sort.Slice(report.Lines, func(i, j int) bool {
		return report.Lines[i].Email < report.Lines[j].Email
	})
	return report, nil
}
