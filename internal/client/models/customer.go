// Package models defines client-side data models mirrored from the remote
// data service into the local cache.
package models

import "time"

// Customer is a business contact that owns zero or more invoices.
// The local row is a disposable mirror of the remote one.
type Customer struct {
	// ID is a globally unique identifier for the customer.
	ID string `json:"id"`

	// UserID is the owning user. All queries are scoped by it.
	UserID string `json:"user_id"`

	// Name is the display name. Non-blank at creation time (enforced by the
	// repository, not the store).
	Name string `json:"name"`

	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
