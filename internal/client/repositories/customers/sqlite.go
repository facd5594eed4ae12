// Package customers provides the SQLite-backed local cache repository for
// customer rows.
package customers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client/models"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/common"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/dbx"
)

const timeLayout = time.RFC3339Nano

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or
// *sql.Tx), so bulk upserts can run inside a sync transaction.
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a repository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Upsert inserts or replaces a customer by id. All columns are overwritten;
// the local row never holds state the remote one does not.
func (r *SQLiteRepository) Upsert(ctx context.Context, c *models.Customer) error {
	query := `INSERT INTO customers (id, user_id, name, phone, email, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				user_id = excluded.user_id,
				name = excluded.name,
				phone = excluded.phone,
				email = excluded.email,
				created_at = excluded.created_at
	`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.UserID, c.Name, c.Phone, c.Email, c.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to upsert customer: %w", err)
	}
	return nil
}

// ListByUser returns all customers owned by userID, name ascending.
func (r *SQLiteRepository) ListByUser(ctx context.Context, userID string) ([]models.Customer, error) {
	query := `SELECT id, user_id, name, phone, email, created_at FROM customers
			WHERE user_id = ? ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select customers: %w", err)
	}
	defer rows.Close()

	var result []models.Customer
	for rows.Next() {
		item, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID returns one customer or common.ErrNotFound.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	query := `SELECT id, user_id, name, phone, email, created_at FROM customers WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	c, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return c, nil
}

// DeleteByID removes a customer row. Missing rows are not an error: the
// mirror may already have dropped it.
func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}

// DeleteByUser wipes every customer row owned by userID.
func (r *SQLiteRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("failed to wipe customers: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row rowScanner) (*models.Customer, error) {
	c := &models.Customer{}
	var phone, email sql.NullString
	var createdAt string
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &phone, &email, &createdAt); err != nil {
		return nil, err
	}
	c.Phone = nullableString(phone)
	c.Email = nullableString(email)
	t, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at: %w", err)
	}
	c.CreatedAt = t
	return c, nil
}

func nullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
