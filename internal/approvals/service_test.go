package approvals

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/danielcastillo/dealerdesk-backend/internal/reporting"
	"github.com/danielcastillo/dealerdesk-backend/internal/sales"
	"github.com/danielcastillo/dealerdesk-backend/internal/spiffs"
	"github.com/danielcastillo/dealerdesk-backend/pkg/db/models"
	"github.com/danielcastillo/dealerdesk-backend/pkg/enums"
	pkgerrors "github.com/danielcastillo/dealerdesk-backend/pkg/errors"
)

func setupApprovalTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	salesDDL := `
CREATE TABLE IF NOT EXISTS sales (
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
);`
	spiffsDDL := `
CREATE TABLE IF NOT EXISTS spiffs (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  amount REAL NOT NULL,
  note TEXT,
  image_url TEXT,
  date DATETIME NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	approvalsDDL := `
CREATE TABLE IF NOT EXISTS approvals (
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
);`
	require.NoError(t, db.Exec(salesDDL).Error)
	require.NoError(t, db.Exec(spiffsDDL).Error)
	require.NoError(t, db.Exec(approvalsDDL).Error)
	return db
}

type approvalFixture struct {
	db        *gorm.DB
	svc       Service
	saleRepo  *sales.Repository
	spiffRepo *spiffs.Repository
	repo      *Repository
}

func newApprovalFixture(t *testing.T) *approvalFixture {
	t.Helper()

	db := setupApprovalTestDB(t)
	saleRepo := sales.NewRepository(db)
	spiffRepo := spiffs.NewRepository(db)
	repo := NewRepository(db)

	svc, err := NewService(ServiceParams{
		ApprovalRepo: repo,
		SaleRepo:     saleRepo,
		SpiffRepo:    spiffRepo,
	})
	require.NoError(t, err)
	return &approvalFixture{db: db, svc: svc, saleRepo: saleRepo, spiffRepo: spiffRepo, repo: repo}
}

func (f *approvalFixture) newSale(t *testing.T, ownerID uuid.UUID, date time.Time) models.Sale {
	t.Helper()
	sale := models.Sale{
		UserID:       ownerID,
		StockNumber:  "ST-4001",
		CustomerName: "Jane Buyer",
		SaleType:     enums.SaleTypeNew,
		SalePrice:    25000,
		Date:         date,
	}
	require.NoError(t, f.saleRepo.Create(context.Background(), &sale))
	return sale
}

func (f *approvalFixture) newSpiff(t *testing.T, ownerID uuid.UUID, date time.Time) models.Spiff {
	t.Helper()
	spiff := models.Spiff{UserID: ownerID, Amount: 150, Date: date}
	require.NoError(t, f.spiffRepo.Create(context.Background(), &spiff))
	return spiff
}

func TestDecideApprove(t *testing.T) {
	f := newApprovalFixture(t)
	manager := Actor{ID: uuid.New(), Role: enums.UserRoleManager}
	owner := uuid.New()
	sale := f.newSale(t, owner, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))

	approval, err := f.svc.Decide(context.Background(), manager, enums.ApprovalKindSale, sale.ID, enums.ApprovalStatusApproved, "")
	require.NoError(t, err)
	assert.Equal(t, enums.ApprovalStatusApproved, approval.Status)
	assert.Equal(t, owner, approval.UserID)
	require.NotNil(t, approval.ManagerID)
	assert.Equal(t, manager.ID, *approval.ManagerID)
	assert.NotNil(t, approval.DecidedAt)

	// Terminal: no second decision.
	_, err = f.svc.Decide(context.Background(), manager, enums.ApprovalKindSale, sale.ID, enums.ApprovalStatusRejected, "changed my mind")
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())
}

func TestDecideRejectRequiresComment(t *testing.T) {
	f := newApprovalFixture(t)
	manager := Actor{ID: uuid.New(), Role: enums.UserRoleManager}
	spiff := f.newSpiff(t, uuid.New(), time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))

	_, err := f.svc.Decide(context.Background(), manager, enums.ApprovalKindSpiff, spiff.ID, enums.ApprovalStatusRejected, "  ")
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	approval, err := f.svc.Decide(context.Background(), manager, enums.ApprovalKindSpiff, spiff.ID, enums.ApprovalStatusRejected, "missing proof image")
	require.NoError(t, err)
	assert.Equal(t, enums.ApprovalStatusRejected, approval.Status)
	require.NotNil(t, approval.Comment)
	assert.Equal(t, "missing proof image", *approval.Comment)
}

func TestDecideGuards(t *testing.T) {
	f := newApprovalFixture(t)
	salesperson := Actor{ID: uuid.New(), Role: enums.UserRoleSalesperson}
	manager := Actor{ID: uuid.New(), Role: enums.UserRoleManager}
	sale := f.newSale(t, uuid.New(), time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	_, err := f.svc.Decide(ctx, salesperson, enums.ApprovalKindSale, sale.ID, enums.ApprovalStatusApproved, "")
	assert.Equal(t, pkgerrors.CodeForbidden, pkgerrors.As(err).Code())

	_, err = f.svc.Decide(ctx, manager, enums.ApprovalKindSale, sale.ID, enums.ApprovalStatusPending, "")
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = f.svc.Decide(ctx, manager, enums.ApprovalKindSale, uuid.New(), enums.ApprovalStatusApproved, "")
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestStatusDefaultsToPending(t *testing.T) {
	f := newApprovalFixture(t)
	sale := f.newSale(t, uuid.New(), time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))

	status, err := f.svc.Status(context.Background(), enums.ApprovalKindSale, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.ApprovalStatusPending, status.Status)
}

func TestPendingQueue(t *testing.T) {
	f := newApprovalFixture(t)
	manager := Actor{ID: uuid.New(), Role: enums.UserRoleManager}
	ctx := context.Background()
	june := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	decided := f.newSale(t, uuid.New(), june)
	open := f.newSale(t, uuid.New(), june)
	f.newSale(t, uuid.New(), june.AddDate(0, 1, 0))
	spiff := f.newSpiff(t, uuid.New(), june)

	_, err := f.svc.Decide(ctx, manager, enums.ApprovalKindSale, decided.ID, enums.ApprovalStatusApproved, "")
	require.NoError(t, err)

	queue, err := f.svc.PendingQueue(ctx, manager, 2025, time.June)
	require.NoError(t, err)
	require.Len(t, queue.Sales, 1)
	assert.Equal(t, open.ID, queue.Sales[0].ID)
	require.Len(t, queue.Spiffs, 1)
	assert.Equal(t, spiff.ID, queue.Spiffs[0].ID)

	approved, err := f.repo.ListApprovedSales(ctx, reporting.MonthWindow(2025, time.June))
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, decided.ID, approved[0].ID)
}
