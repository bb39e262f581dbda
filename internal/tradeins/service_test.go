package tradeins

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/danielcastillo/dealerdesk-backend/pkg/enums"
	pkgerrors "github.com/danielcastillo/dealerdesk-backend/pkg/errors"
)

func setupTradeInTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ddl := `
CREATE TABLE IF NOT EXISTS trade_ins (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  amount REAL NOT NULL,
  comment TEXT NOT NULL,
  date DATETIME NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(ddl).Error)
	return db
}

func newTradeInService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(NewRepository(setupTradeInTestDB(t)), nil)
	require.NoError(t, err)
	return svc
}

func TestTradeInCreateRequiresComment(t *testing.T) {
	svc := newTradeInService(t)
	actor := Actor{ID: uuid.New(), Role: enums.UserRoleSalesperson}
	date := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	_, err := svc.Create(context.Background(), actor, Input{Amount: 250, Comment: "   ", Date: date})
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	created, err := svc.Create(context.Background(), actor, Input{
		Amount:  250,
		Comment: "negotiated 250 over book on a 2019 Camry",
		Date:    date,
	})
	require.NoError(t, err)
	assert.Equal(t, "negotiated 250 over book on a 2019 Camry", created.Comment)
}

func TestTradeInCommentWordLimit(t *testing.T) {
	svc := newTradeInService(t)
	actor := Actor{ID: uuid.New(), Role: enums.UserRoleSalesperson}
	date := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	over := strings.TrimSpace(strings.Repeat("word ", 101))
	_, err := svc.Create(context.Background(), actor, Input{Amount: 250, Comment: over, Date: date})
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	atLimit := strings.TrimSpace(strings.Repeat("word ", 100))
	_, err = svc.Create(context.Background(), actor, Input{Amount: 250, Comment: atLimit, Date: date})
	assert.NoError(t, err)
}

func TestTradeInListMonthAndOwnership(t *testing.T) {
	svc := newTradeInService(t)
	owner := Actor{ID: uuid.New(), Role: enums.UserRoleSalesperson}
	other := Actor{ID: uuid.New(), Role: enums.UserRoleSalesperson}
	ctx := context.Background()

	created, err := svc.Create(ctx, owner, Input{
		Amount:  250,
		Comment: "trade bonus",
		Date:    time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	listed, err := svc.ListMonth(ctx, owner, uuid.Nil, 2025, time.June)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	_, err = svc.ListMonth(ctx, other, owner.ID, 2025, time.June)
	assert.Equal(t, pkgerrors.CodeForbidden, pkgerrors.As(err).Code())

	err = svc.Delete(ctx, other, created.ID)
	assert.Equal(t, pkgerrors.CodeForbidden, pkgerrors.As(err).Code())

	require.NoError(t, svc.Delete(ctx, owner, created.ID))
}
