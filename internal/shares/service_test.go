package shares

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/danielcastillo/dealerdesk-backend/internal/notifications"
	"github.com/danielcastillo/dealerdesk-backend/internal/sales"
	"github.com/danielcastillo/dealerdesk-backend/pkg/db/models"
	"github.com/danielcastillo/dealerdesk-backend/pkg/enums"
	pkgerrors "github.com/danielcastillo/dealerdesk-backend/pkg/errors"
)

func setupShareTestDB(t *testing.T) *gorm.DB {
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
	notificationsDDL := `
CREATE TABLE IF NOT EXISTS notifications (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  sale_id TEXT NOT NULL,
  type TEXT NOT NULL,
  read INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(salesDDL).Error)
	require.NoError(t, db.Exec(notificationsDDL).Error)
	return db
}

type shareFixture struct {
	db       *gorm.DB
	svc      Service
	saleRepo *sales.Repository
	notRepo  notifications.Repository
}

func newShareFixture(t *testing.T) *shareFixture {
	t.Helper()

	db := setupShareTestDB(t)
	saleRepo := sales.NewRepository(db)
	notRepo := notifications.NewRepository(db)
	notSvc, err := notifications.NewService(notRepo)
	require.NoError(t, err)

	svc, err := NewService(ServiceParams{SaleRepo: saleRepo, Notifications: notSvc})
	require.NoError(t, err)
	return &shareFixture{db: db, svc: svc, saleRepo: saleRepo, notRepo: notRepo}
}

func (f *shareFixture) newSharedSale(t *testing.T, ownerID, recipientID uuid.UUID, status enums.SharedStatus) models.Sale {
	t.Helper()

	email := "recipient@dealerdesk.io"
	sale := models.Sale{
		UserID:          ownerID,
		StockNumber:     "ST-2001",
		CustomerName:    "Jane Buyer",
		SaleType:        enums.SaleTypeNew,
		SalePrice:       25000,
		SharedWithEmail: &email,
		SharedWithID:    &recipientID,
		SharedStatus:    &status,
		Date:            time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, f.saleRepo.Create(context.Background(), &sale))
	return sale
}

func TestRespondAccept(t *testing.T) {
	f := newShareFixture(t)
	owner := uuid.New()
	recipient := uuid.New()
	sale := f.newSharedSale(t, owner, recipient, enums.SharedStatusPending)

	updated, err := f.svc.Respond(context.Background(), recipient, sale.ID, enums.SharedStatusAccepted)
	require.NoError(t, err)
	require.NotNil(t, updated.SharedStatus)
	assert.Equal(t, enums.SharedStatusAccepted, *updated.SharedStatus)

	var count int64
	require.NoError(t, f.db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", owner, enums.NotificationTypeSharedSaleAccepted).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRespondReject(t *testing.T) {
	f := newShareFixture(t)
	owner := uuid.New()
	recipient := uuid.New()
	sale := f.newSharedSale(t, owner, recipient, enums.SharedStatusPending)

	updated, err := f.svc.Respond(context.Background(), recipient, sale.ID, enums.SharedStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, enums.SharedStatusRejected, *updated.SharedStatus)

	var count int64
	require.NoError(t, f.db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", owner, enums.NotificationTypeSharedSaleRejected).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRespondGuards(t *testing.T) {
	f := newShareFixture(t)
	owner := uuid.New()
	recipient := uuid.New()
	ctx := context.Background()

	settled := f.newSharedSale(t, owner, recipient, enums.SharedStatusAccepted)
	_, err := f.svc.Respond(ctx, recipient, settled.ID, enums.SharedStatusRejected)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code(),
		"terminal shares refuse further responses")

	pending := f.newSharedSale(t, owner, recipient, enums.SharedStatusPending)
	_, err = f.svc.Respond(ctx, uuid.New(), pending.ID, enums.SharedStatusAccepted)
	assert.Equal(t, pkgerrors.CodeForbidden, pkgerrors.As(err).Code())

	_, err = f.svc.Respond(ctx, recipient, pending.ID, enums.SharedStatusPending)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = f.svc.Respond(ctx, recipient, uuid.New(), enums.SharedStatusAccepted)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	// Unshared sale.
	plain := models.Sale{
		UserID:       owner,
		StockNumber:  "ST-3001",
		CustomerName: "Solo Buyer",
		SaleType:     enums.SaleTypeUsed,
		SalePrice:    12000,
		Date:         time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, f.saleRepo.Create(ctx, &plain))
	_, err = f.svc.Respond(ctx, recipient, plain.ID, enums.SharedStatusAccepted)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())
}

func TestListPending(t *testing.T) {
	f := newShareFixture(t)
	owner := uuid.New()
	recipient := uuid.New()
	ctx := context.Background()

	f.newSharedSale(t, owner, recipient, enums.SharedStatusPending)
	f.newSharedSale(t, owner, recipient, enums.SharedStatusAccepted)
	f.newSharedSale(t, owner, uuid.New(), enums.SharedStatusPending)

	pending, err := f.svc.ListPending(ctx, recipient)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, recipient, *pending[0].SharedWithID)
	assert.Equal(t, enums.SharedStatusPending, *pending[0].SharedStatus)
}
