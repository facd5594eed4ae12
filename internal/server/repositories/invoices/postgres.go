// Package invoices provides the PostgreSQL-backed repository for the
// authoritative invoice rows.
package invoices

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/varalakshmi119/RetailAssistant-sub001/internal/common"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/dbx"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/server/models"
)

// PostgresRepository implements invoice storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `id, user_id, customer_id, total_amount, amount_paid, issue_date, due_date, status, image_path, created_at`

func (r *PostgresRepository) Create(ctx context.Context, inv *models.Invoice) error {
	query := `
		INSERT INTO invoices (id, user_id, customer_id, total_amount, amount_paid, issue_date, due_date, status, image_path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		inv.ID, inv.UserID, inv.CustomerID, inv.TotalAmount, inv.AmountPaid,
		inv.IssueDate, inv.DueDate, string(inv.Status), inv.ImagePath, inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Invoice, error) {
	query := `SELECT ` + selectColumns + ` FROM invoices WHERE id=$1`
	row := r.db.QueryRowContext(ctx, query, id)

	inv := &models.Invoice{}
	var status string
	if err := row.Scan(&inv.ID, &inv.UserID, &inv.CustomerID, &inv.TotalAmount, &inv.AmountPaid,
		&inv.IssueDate, &inv.DueDate, &status, &inv.ImagePath, &inv.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	inv.Status = models.InvoiceStatus(status)
	return inv, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.Invoice, error) {
	query := `SELECT ` + selectColumns + ` FROM invoices
		WHERE user_id=$1 ORDER BY due_date ASC, created_at DESC`
	return r.list(ctx, query, userID)
}

func (r *PostgresRepository) ListByCustomer(ctx context.Context, customerID string) ([]models.Invoice, error) {
	query := `SELECT ` + selectColumns + ` FROM invoices
		WHERE customer_id=$1 ORDER BY due_date ASC, created_at DESC`
	return r.list(ctx, query, customerID)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]models.Invoice, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select invoices: %w", err)
	}
	defer rows.Close()

	var result []models.Invoice
	for rows.Next() {
		var item models.Invoice
		var status string
		if err := rows.Scan(&item.ID, &item.UserID, &item.CustomerID, &item.TotalAmount, &item.AmountPaid,
			&item.IssueDate, &item.DueDate, &status, &item.ImagePath, &item.CreatedAt); err != nil {
			return nil, err
		}
		item.Status = models.InvoiceStatus(status)
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) UpdatePayment(ctx context.Context, id string, amountPaid float64, status models.InvoiceStatus) error {
	query := `UPDATE invoices SET amount_paid=$2, status=$3 WHERE id=$1`
	return r.updateOne(ctx, query, id, amountPaid, string(status))
}

func (r *PostgresRepository) UpdateDueDate(ctx context.Context, id string, dueDate time.Time, status models.InvoiceStatus) error {
	query := `UPDATE invoices SET due_date=$2, status=$3 WHERE id=$1`
	return r.updateOne(ctx, query, id, dueDate, string(status))
}

func (r *PostgresRepository) updateOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM invoices WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteByCustomer(ctx context.Context, customerID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM invoices WHERE customer_id=$1`, customerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
