package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/danielcastillo/dealerdesk-backend/internal/approvals"
	"github.com/danielcastillo/dealerdesk-backend/internal/sales"
	"github.com/danielcastillo/dealerdesk-backend/internal/spiffs"
	"github.com/danielcastillo/dealerdesk-backend/internal/users"
	"github.com/danielcastillo/dealerdesk-backend/pkg/db/models"
	"github.com/danielcastillo/dealerdesk-backend/pkg/enums"
	pkgerrors "github.com/danielcastillo/dealerdesk-backend/pkg/errors"
)

func setupPayrollTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	for _, ddl := range []string{
		`CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  role TEXT NOT NULL DEFAULT 'salesperson',
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS sales (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  stock_number TEXT NOT NULL,
  customer_name TEXT NOT NULL,
  sale_type TEXT NOT NULL,
  sale_price REAL NOT NULL,
  accessories_price REAL,
  warranty_price REAL,
  warranty_cost REAL,
  maintenance_price REAL,
  maintenance_cost REAL,
  shared_with_email TEXT,
  shared_with_id TEXT,
  shared_status TEXT,
  commission_split INTEGER,
  date DATETIME NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS spiffs (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  amount REAL NOT NULL,
  note TEXT,
  image_url TEXT,
  date DATETIME NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS approvals (
  id TEXT PRIMARY KEY,
  kind TEXT NOT NULL,
  entry_id TEXT NOT NULL,
  user_id TEXT NOT NULL,
  manager_id TEXT,
  status TEXT NOT NULL DEFAULT 'pending',
  comment TEXT,
  decided_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (kind, entry_id)
);`,
	} {
		require.NoError(t, db.Exec(ddl).Error)
	}
	return db
}

func TestPayrollReport(t *testing.T) {
	db := setupPayrollTestDB(t)
	ctx := context.Background()

	userRepo := users.NewRepository(db)
	saleRepo := sales.NewRepository(db)
	spiffRepo := spiffs.NewRepository(db)
	approvalRepo := approvals.NewRepository(db)

	approvalSvc, err := approvals.NewService(approvals.ServiceParams{
		ApprovalRepo: approvalRepo,
		SaleRepo:     saleRepo,
		SpiffRepo:    spiffRepo,
	})
	require.NoError(t, err)

	payrollSvc, err := NewService(ServiceParams{ApprovalRepo: approvalRepo, UserRepo: userRepo})
	require.NoError(t, err)

	alice := models.User{Email: "alice@dealerdesk.io"}
	require.NoError(t, userRepo.Create(ctx, &alice))
	manager := approvals.Actor{ID: uuid.New(), Role: enums.UserRoleManager}
	june := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	approvedSale := models.Sale{
		UserID:       alice.ID,
		StockNumber:  "ST-7001",
		CustomerName: "Buyer",
		SaleType:     enums.SaleTypeNew,
		SalePrice:    25000,
		Date:         june,
	}
	require.NoError(t, saleRepo.Create(ctx, &approvedSale))

	pendingSale := approvedSale
	pendingSale.ID = uuid.Nil
	require.NoError(t, saleRepo.Create(ctx, &pendingSale))

	spiff := models.Spiff{UserID: alice.ID, Amount: 150.555, Date: june}
	require.NoError(t, spiffRepo.Create(ctx, &spiff))

	_, err = approvalSvc.Decide(ctx, manager, enums.ApprovalKindSale, approvedSale.ID, enums.ApprovalStatusApproved, "")
	require.NoError(t, err)
	_, err = approvalSvc.Decide(ctx, manager, enums.ApprovalKindSpiff, spiff.ID, enums.ApprovalStatusApproved, "")
	require.NoError(t, err)

	report, err := payrollSvc.Report(ctx, Actor{ID: manager.ID, Role: enums.UserRoleManager}, 2025, time.June)
	require.NoError(t, err)
	assert.Equal(t, "2025-06", report.Month)
	require.Len(t, report.Lines, 1)

	line := report.Lines[0]
	assert.Equal(t, alice.ID, line.UserID)
	assert.Equal(t, "Alice", line.Name)
	assert.Equal(t, 1, line.SalesCount, "undecided sales stay out of payroll")
	assert.Equal(t, 1, line.SpiffCount)
	assert.Equal(t, "400", line.SalesCommission.String())
	assert.Equal(t, "150.56", line.SpiffTotal.String(), "spiff cents round half-up")
	assert.Equal(t, "550.56", line.Total.String())
	assert.True(t, report.GrandTotal.Equal(line.Total))
}

func TestPayrollManagerOnly(t *testing.T) {
	db := setupPayrollTestDB(t)
	svc, err := NewService(ServiceParams{
		ApprovalRepo: approvals.NewRepository(db),
		UserRepo:     users.NewRepository(db),
	})
	require.NoError(t, err)

	_, err = svc.Report(context.Background(), Actor{ID: uuid.New(), Role: enums.UserRoleSalesperson}, 2025, time.June)
	assert.Equal(t, pkgerrors.CodeForbidden, pkgerrors.As(err).Code())
}
