// Package models defines the server-side entities of the invoice tracker
// and the status business logic. Invoice status is computed exclusively
// here: devices mirror it, they never derive it.
package models

import "time"

// InvoiceStatus is the server-assigned payment state of an invoice.
type InvoiceStatus string

const (
	StatusUnpaid        InvoiceStatus = "UNPAID"
	StatusPaid          InvoiceStatus = "PAID"
	StatusOverdue       InvoiceStatus = "OVERDUE"
	StatusPartiallyPaid InvoiceStatus = "PARTIALLY_PAID"
)

// ComputeStatus applies the status rules after any write that can change
// them: fully paid wins over everything; a partial payment is reported even
// past the due date; an unpaid invoice flips to OVERDUE once the due date
// has passed.
func ComputeStatus(total, paid float64, due time.Time, now time.Time) InvoiceStatus {
	if paid >= total {
		return StatusPaid
	}
	if paid > 0 {
		return StatusPartiallyPaid
	}
	if dateOf(due).Before(dateOf(now)) {
		return StatusOverdue
	}
	return StatusUnpaid
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Customer is a business contact owned by a user.
type Customer struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone,omitempty"`
	Email     *string   `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Invoice is the authoritative invoice row.
type Invoice struct {
	ID          string        `json:"id"`
	UserID      string        `json:"user_id"`
	CustomerID  string        `json:"customer_id"`
	TotalAmount float64       `json:"total_amount"`
	AmountPaid  float64       `json:"amount_paid"`
	IssueDate   time.Time     `json:"issue_date"`
	DueDate     time.Time     `json:"due_date"`
	Status      InvoiceStatus `json:"status"`
	ImagePath   string        `json:"image_path"`
	CreatedAt   time.Time     `json:"created_at"`
}

// InteractionType classifies an interaction log row.
type InteractionType string

const (
	InteractionNote           InteractionType = "NOTE"
	InteractionPayment        InteractionType = "PAYMENT"
	InteractionDueDateChanged InteractionType = "DUE_DATE_CHANGED"
)

// InteractionLog is an append-only audit row created as a side effect of
// the payment/note/due-date procedures.
type InteractionLog struct {
	ID        string          `json:"id"`
	InvoiceID string          `json:"invoice_id"`
	UserID    string          `json:"user_id"`
	Type      InteractionType `json:"type"`
	Note      *string         `json:"note,omitempty"`
	Value     *float64        `json:"value,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// User is an account row.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// RefreshToken is a persisted, revocable refresh token.
type RefreshToken struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	Revoked   bool
}
