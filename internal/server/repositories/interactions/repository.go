package interactions

import (
	"context"

	"github.com/varalakshmi119/RetailAssistant-sub001/internal/server/models"
)

// Repository stores the append-only interaction log. Rows are inserted and
// bulk-deleted, never updated.
type Repository interface {
	Create(ctx context.Context, l *models.InteractionLog) error
	ListByUser(ctx context.Context, userID string) ([]models.InteractionLog, error)
	DeleteByInvoice(ctx context.Context, invoiceID string) error
	DeleteByCustomer(ctx context.Context, customerID string) error
}
