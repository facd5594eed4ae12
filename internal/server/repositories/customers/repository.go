package customers

import (
	"context"

	"github.com/varalakshmi119/RetailAssistant-sub001/internal/server/models"
)

// Repository stores customer rows, the authoritative copy.
type Repository interface {
	Create(ctx context.Context, c *models.Customer) error
	GetByID(ctx context.Context, id string) (*models.Customer, error)
	ListByUser(ctx context.Context, userID string) ([]models.Customer, error)
	DeleteByID(ctx context.Context, id string) error
}
