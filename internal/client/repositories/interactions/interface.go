package interactions

import (
	"context"

	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client/models"
)

// Repository describes the local cache operations for the append-only
// interaction log. Rows are never updated in place: they are inserted by the
// sync pass and bulk-deleted when their invoice or user goes away.
type Repository interface {
	// Upsert inserts a log row, or overwrites the mirror copy by ID.
	Upsert(ctx context.Context, l *models.InteractionLog) error

	// ListByInvoice returns an invoice's logs, newest first.
	ListByInvoice(ctx context.Context, invoiceID string) ([]models.InteractionLog, error)

	// DeleteByInvoice removes all logs attached to an invoice.
	DeleteByInvoice(ctx context.Context, invoiceID string) error

	// DeleteByUser wipes all of a user's log rows (sign-out).
	DeleteByUser(ctx context.Context, userID string) error
}
