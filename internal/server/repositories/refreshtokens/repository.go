package refreshtokens

import (
	"context"

	"github.com/varalakshmi119/RetailAssistant-sub001/internal/server/models"
)

// Repository stores revocable refresh tokens.
type Repository interface {
	Create(ctx context.Context, t *models.RefreshToken) error
	Get(ctx context.Context, id string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id string) error
	RevokeAllForUser(ctx context.Context, userID string) error
}
