package models

import "time"

// InteractionType classifies an interaction log row.
type InteractionType string

const (
	InteractionNote           InteractionType = "NOTE"
	InteractionPayment        InteractionType = "PAYMENT"
	InteractionDueDateChanged InteractionType = "DUE_DATE_CHANGED"

	// InteractionCall is a legacy variant still present in historical rows.
	// It is read and displayed but never written by current clients.
	InteractionCall InteractionType = "CALL"
)

// InteractionLog is an append-only audit trail row attached to an invoice.
// Rows are created server-side as side effects of payment/note/due-date
// procedures; the client only ever inserts mirrors and bulk-deletes them.
type InteractionLog struct {
	ID        string          `json:"id"`
	InvoiceID string          `json:"invoice_id"`
	UserID    string          `json:"user_id"`
	Type      InteractionType `json:"type"`

	// Note is optional free text (the note body, or a postpone reason).
	Note *string `json:"note,omitempty"`

	// Value is an optional numeric payload, e.g. a payment amount.
	Value *float64 `json:"value,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
