package customers

import (
	"context"

	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client/models"
)

// Repository describes the local cache operations for Customer rows.
// Implementations are backed by the on-device SQLite database; the rows are
// a disposable mirror of the remote store.
type Repository interface {
	// Upsert inserts a new customer or overwrites an existing one by ID.
	Upsert(ctx context.Context, c *models.Customer) error

	// ListByUser returns the user's customers ordered by name ascending.
	ListByUser(ctx context.Context, userID string) ([]models.Customer, error)

	// GetByID returns a single customer or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Customer, error)

	// DeleteByID removes a single customer row.
	DeleteByID(ctx context.Context, id string) error

	// DeleteByUser wipes all of a user's customer rows (sign-out).
	DeleteByUser(ctx context.Context, userID string) error
}
