// Package extract defines the AI scan-extraction collaborator. It is a
// UI pre-fill convenience consumed upstream of the sync core: invoice
// creation never depends on it succeeding.
package extract

import (
	"context"
	"time"
)

// Guess is a best-effort structured reading of a scanned invoice. Every
// field is optional; absent fields stay nil.
type Guess struct {
	CustomerName *string
	IssueDate    *time.Time
	DueDate      *time.Time
	Phone        *string
	Email        *string
	TotalAmount  *float64
}

// Extractor turns raw image bytes into a Guess.
type Extractor interface {
	Extract(ctx context.Context, image []byte) (*Guess, error)
}

// Disabled is the extractor used when the feature toggle is off; it always
// returns an empty guess.
type Disabled struct{}

func (Disabled) Extract(ctx context.Context, image []byte) (*Guess, error) {
	return &Guess{}, nil
}
