package spiffs

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

func setupSpiffTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ddl := `
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
	require.NoError(t, db.Exec(ddl).Error)
	return db
}

func newSpiffService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(NewRepository(setupSpiffTestDB(t)), nil)
	require.NoError(t, err)
	return svc
}

func TestSpiffCreateListDelete(t *testing.T) {
	svc := newSpiffService(t)
	actor := Actor{ID: uuid.New(), Role: enums.UserRoleSalesperson}
	ctx := context.Background()

	note := "warm handoff bonus"
	created, err := svc.Create(ctx, actor, Input{
		Amount: 150,
		Note:   &note,
		Date:   time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, actor.ID, created.UserID)

	listed, err := svc.ListMonth(ctx, actor, uuid.Nil, 2025, time.June)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	outside, err := svc.ListMonth(ctx, actor, uuid.Nil, 2025, time.July)
	require.NoError(t, err)
	assert.Empty(t, outside)

	require.NoError(t, svc.Delete(ctx, actor, created.ID))
	err = svc.Delete(ctx, actor, created.ID)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestSpiffNoteWordLimit(t *testing.T) {
	svc := newSpiffService(t)
	actor := Actor{ID: uuid.New(), Role: enums.UserRoleSalesperson}

	longNote := strings.TrimSpace(strings.Repeat("word ", 41))
	_, err := svc.Create(context.Background(), actor, Input{
		Amount: 150,
		Note:   &longNote,
		Date:   time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
	})
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	atLimit := strings.TrimSpace(strings.Repeat("word ", 40))
	_, err = svc.Create(context.Background(), actor, Input{
		Amount: 150,
		Note:   &atLimit,
		Date:   time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)
}

func TestSpiffValidation(t *testing.T) {
	svc := newSpiffService(t)
	actor := Actor{ID: uuid.New(), Role: enums.UserRoleSalesperson}

	_, err := svc.Create(context.Background(), actor, Input{Amount: 0, Date: time.Now()})
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.Create(context.Background(), actor, Input{Amount: 100})
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestSpiffOwnerCheck(t *testing.T) {
	svc := newSpiffService(t)
	owner := Actor{ID: uuid.New(), Role: enums.UserRoleSalesperson}
	other := Actor{ID: uuid.New(), Role: enums.UserRoleSalesperson}
	manager := Actor{ID: uuid.New(), Role: enums.UserRoleManager}
	ctx := context.Background()

	created, err := svc.Create(ctx, owner, Input{Amount: 100, Date: time.Now()})
	require.NoError(t, err)

	_, err = svc.Update(ctx, other, created.ID, Input{Amount: 200, Date: created.Date})
	assert.Equal(t, pkgerrors.CodeForbidden, pkgerrors.As(err).Code())

	updated, err := svc.Update(ctx, manager, created.ID, Input{Amount: 200, Date: created.Date})
	require.NoError(t, err)
	assert.InDelta(t, 200, updated.Amount, 1e-9)
	assert.Equal(t, owner.ID, updated.UserID, "updates never reassign ownership")
}
