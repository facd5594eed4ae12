package customers

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client/models"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/common"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE customers (
  id         TEXT PRIMARY KEY,
  user_id    TEXT NOT NULL,
  name       TEXT NOT NULL,
  phone      TEXT,
  email      TEXT,
  created_at TEXT NOT NULL
);
`)
	require.NoError(t, err)

	return db
}

func TestUpsert_InsertAndUpdate(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	phone := "+371000000"
	c := &models.Customer{
		ID:        "c1",
		UserID:    "u1",
		Name:      "Alice",
		Phone:     &phone,
		CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, r.Upsert(ctx, c))

	got, err := r.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	require.NotNil(t, got.Phone)
	assert.Equal(t, phone, *got.Phone)
	assert.Nil(t, got.Email)
	assert.Equal(t, c.CreatedAt, got.CreatedAt)

	// second upsert with the same id overwrites every column
	c.Name = "Alice B"
	c.Phone = nil
	require.NoError(t, r.Upsert(ctx, c))

	got, err = r.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Alice B", got.Name)
	assert.Nil(t, got.Phone)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM customers`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestGetByID_NotFound(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	_, err := r.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestListByUser_FiltersAndOrdersByName(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, r.Upsert(ctx, &models.Customer{ID: "c1", UserID: "u1", Name: "Zeta", CreatedAt: now}))
	require.NoError(t, r.Upsert(ctx, &models.Customer{ID: "c2", UserID: "u1", Name: "Alpha", CreatedAt: now}))
	require.NoError(t, r.Upsert(ctx, &models.Customer{ID: "c3", UserID: "u2", Name: "Other", CreatedAt: now}))

	got, err := r.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Alpha", got[0].Name)
	assert.Equal(t, "Zeta", got[1].Name)
}

func TestDeleteByUser_WipesOnlyThatUser(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, r.Upsert(ctx, &models.Customer{ID: "c1", UserID: "u1", Name: "A", CreatedAt: now}))
	require.NoError(t, r.Upsert(ctx, &models.Customer{ID: "c2", UserID: "u2", Name: "B", CreatedAt: now}))

	require.NoError(t, r.DeleteByUser(ctx, "u1"))

	_, err := r.GetByID(ctx, "c1")
	require.ErrorIs(t, err, common.ErrNotFound)
	_, err = r.GetByID(ctx, "c2")
	require.NoError(t, err)
}

func TestDeleteByID_MissingRowIsNotAnError(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	require.NoError(t, r.DeleteByID(context.Background(), "nope"))
}
