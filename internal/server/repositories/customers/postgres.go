// Package customers provides the PostgreSQL-backed repository for the
// authoritative customer rows.
package customers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/varalakshmi119/RetailAssistant-sub001/internal/common"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/dbx"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/server/models"
)

// PostgresRepository implements customer storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Customer) error {
	query := `
		INSERT INTO customers (id, user_id, name, phone, email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.UserID, c.Name, c.Phone, c.Email, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	query := `SELECT id, user_id, name, phone, email, created_at FROM customers WHERE id=$1`
	row := r.db.QueryRowContext(ctx, query, id)

	c := &models.Customer{}
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Phone, &c.Email, &c.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.Customer, error) {
	query := `SELECT id, user_id, name, phone, email, created_at FROM customers
		WHERE user_id=$1 ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select customers: %w", err)
	}
	defer rows.Close()

	var result []models.Customer
	for rows.Next() {
		var item models.Customer
		if err := rows.Scan(&item.ID, &item.UserID, &item.Name, &item.Phone, &item.Email, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
