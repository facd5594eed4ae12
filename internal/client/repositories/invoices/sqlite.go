// Package invoices provides the SQLite-backed local cache repository for
// invoice rows.
package invoices

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

// Upsert inserts or replaces an invoice by id. Status arrives from the
// server as-is; nothing here recomputes it.
func (r *SQLiteRepository) Upsert(ctx context.Context, inv *models.Invoice) error {
	query := `INSERT INTO invoices
			(id, user_id, customer_id, total_amount, amount_paid, issue_date, due_date, status, image_path, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				user_id = excluded.user_id,
				customer_id = excluded.customer_id,
				total_amount = excluded.total_amount,
				amount_paid = excluded.amount_paid,
				issue_date = excluded.issue_date,
				due_date = excluded.due_date,
				status = excluded.status,
				image_path = excluded.image_path,
				created_at = excluded.created_at
	`
	_, err := r.db.ExecContext(ctx, query,
		inv.ID, inv.UserID, inv.CustomerID, inv.TotalAmount, inv.AmountPaid,
		inv.IssueDate.UTC().Format(timeLayout), inv.DueDate.UTC().Format(timeLayout),
		string(inv.Status), inv.ImagePath, inv.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to upsert invoice: %w", err)
	}
	return nil
}

const selectColumns = `id, user_id, customer_id, total_amount, amount_paid, issue_date, due_date, status, image_path, created_at`

// ListByUser returns all invoices owned by userID, due date ascending then
// creation descending.
func (r *SQLiteRepository) ListByUser(ctx context.Context, userID string) ([]models.Invoice, error) {
	query := `SELECT ` + selectColumns + ` FROM invoices
			WHERE user_id = ? ORDER BY due_date ASC, created_at DESC`
	return r.list(ctx, query, userID)
}

// ListByCustomer returns the user's invoices for one customer, same ordering.
func (r *SQLiteRepository) ListByCustomer(ctx context.Context, userID, customerID string) ([]models.Invoice, error) {
	query := `SELECT ` + selectColumns + ` FROM invoices
			WHERE user_id = ? AND customer_id = ? ORDER BY due_date ASC, created_at DESC`
	return r.list(ctx, query, userID, customerID)
}

func (r *SQLiteRepository) list(ctx context.Context, query string, args ...any) ([]models.Invoice, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select invoices: %w", err)
	}
	defer rows.Close()

	var result []models.Invoice
	for rows.Next() {
		item, err := scanInvoice(rows)
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

// GetByID returns one invoice or common.ErrNotFound.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Invoice, error) {
	query := `SELECT ` + selectColumns + ` FROM invoices WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	inv, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return inv, nil
}

// DeleteByID removes an invoice row. Missing rows are not an error.
func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	return nil
}

// DeleteByUser wipes every invoice row owned by userID.
func (r *SQLiteRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM invoices WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("failed to wipe invoices: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvoice(row rowScanner) (*models.Invoice, error) {
	inv := &models.Invoice{}
	var status, issueDate, dueDate, createdAt string
	if err := row.Scan(&inv.ID, &inv.UserID, &inv.CustomerID, &inv.TotalAmount, &inv.AmountPaid,
		&issueDate, &dueDate, &status, &inv.ImagePath, &createdAt); err != nil {
		return nil, err
	}
	inv.Status = models.InvoiceStatus(status)

	for _, f := range []struct {
		raw  string
		dest *time.Time
	}{
		{issueDate, &inv.IssueDate},
		{dueDate, &inv.DueDate},
		{createdAt, &inv.CreatedAt},
	} {
		t, err := time.Parse(timeLayout, f.raw)
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp %q: %w", f.raw, err)
		}
		*f.dest = t
	}
	return inv, nil
}
