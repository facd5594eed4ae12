// Package interactions provides the SQLite-backed local cache repository
// for the invoice interaction log.
package interactions

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client/models"
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

// Upsert inserts or replaces a log row by id. The log is append-only
// remotely; the conflict branch only matters for repeated sync pulls.
func (r *SQLiteRepository) Upsert(ctx context.Context, l *models.InteractionLog) error {
	query := `INSERT INTO interaction_logs (id, invoice_id, user_id, type, note, value, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				invoice_id = excluded.invoice_id,
				user_id = excluded.user_id,
				type = excluded.type,
				note = excluded.note,
				value = excluded.value,
				created_at = excluded.created_at
	`
	_, err := r.db.ExecContext(ctx, query,
		l.ID, l.InvoiceID, l.UserID, string(l.Type), l.Note, l.Value,
		l.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to upsert interaction log: %w", err)
	}
	return nil
}

// ListByInvoice returns an invoice's log rows ordered by creation descending.
func (r *SQLiteRepository) ListByInvoice(ctx context.Context, invoiceID string) ([]models.InteractionLog, error) {
	query := `SELECT id, invoice_id, user_id, type, note, value, created_at
			FROM interaction_logs WHERE invoice_id = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to select interaction logs: %w", err)
	}
	defer rows.Close()

	var result []models.InteractionLog
	for rows.Next() {
		var item models.InteractionLog
		var typ, createdAt string
		var note sql.NullString
		var value sql.NullFloat64
		if err := rows.Scan(&item.ID, &item.InvoiceID, &item.UserID, &typ, &note, &value, &createdAt); err != nil {
			return nil, err
		}
		item.Type = models.InteractionType(typ)
		if note.Valid {
			n := note.String
			item.Note = &n
		}
		if value.Valid {
			v := value.Float64
			item.Value = &v
		}
		t, err := time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("invalid created_at: %w", err)
		}
		item.CreatedAt = t
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteByInvoice removes every log row attached to invoiceID.
func (r *SQLiteRepository) DeleteByInvoice(ctx context.Context, invoiceID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM interaction_logs WHERE invoice_id = ?`, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to delete interaction logs: %w", err)
	}
	return nil
}

// DeleteByUser wipes every log row owned by userID.
func (r *SQLiteRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM interaction_logs WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("failed to wipe interaction logs: %w", err)
	}
	return nil
}
