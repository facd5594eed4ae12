package invoices

import (
	"context"

	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client/models"
)

// Repository describes the local cache operations for Invoice rows.
// Query ordering is part of the contract: due date ascending, then creation
// time descending, so the most urgent invoices surface first.
type Repository interface {
	// Upsert inserts a new invoice or overwrites an existing one by ID.
	Upsert(ctx context.Context, inv *models.Invoice) error

	// ListByUser returns the user's invoices in display order.
	ListByUser(ctx context.Context, userID string) ([]models.Invoice, error)

	// ListByCustomer returns the user's invoices for one customer,
	// in display order.
	ListByCustomer(ctx context.Context, userID, customerID string) ([]models.Invoice, error)

	// GetByID returns a single invoice or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Invoice, error)

	// DeleteByID removes a single invoice row.
	DeleteByID(ctx context.Context, id string) error

	// DeleteByUser wipes all of a user's invoice rows (sign-out).
	DeleteByUser(ctx context.Context, userID string) error
}
