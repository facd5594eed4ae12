package users

import (
	"context"

	"github.com/varalakshmi119/RetailAssistant-sub001/internal/server/models"
)

// Repository stores user accounts.
type Repository interface {
	Create(ctx context.Context, u *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
