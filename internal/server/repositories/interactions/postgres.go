// Package interactions provides the PostgreSQL-backed repository for the
// append-only interaction log.
package interactions

import (
	"context"
	"fmt"

	"github.com/varalakshmi119/RetailAssistant-sub001/internal/dbx"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/server/models"
)

// PostgresRepository implements log storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, l *models.InteractionLog) error {
	query := `
		INSERT INTO interaction_logs (id, invoice_id, user_id, type, note, value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		l.ID, l.InvoiceID, l.UserID, string(l.Type), l.Note, l.Value, l.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.InteractionLog, error) {
	query := `SELECT id, invoice_id, user_id, type, note, value, created_at
		FROM interaction_logs WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select interaction logs: %w", err)
	}
	defer rows.Close()

	var result []models.InteractionLog
	for rows.Next() {
		var item models.InteractionLog
		var typ string
		if err := rows.Scan(&item.ID, &item.InvoiceID, &item.UserID, &typ, &item.Note, &item.Value, &item.CreatedAt); err != nil {
			return nil, err
		}
		item.Type = models.InteractionType(typ)
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) DeleteByInvoice(ctx context.Context, invoiceID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM interaction_logs WHERE invoice_id=$1`, invoiceID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteByCustomer(ctx context.Context, customerID string) error {
	query := `DELETE FROM interaction_logs WHERE invoice_id IN
		(SELECT id FROM invoices WHERE customer_id=$1)`
	_, err := r.db.ExecContext(ctx, query, customerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
