package models

import "time"

// InvoiceStatus is set by the remote data service's business logic; the
// device never computes or mutates it directly.
type InvoiceStatus string

const (
	StatusUnpaid        InvoiceStatus = "UNPAID"
	StatusPaid          InvoiceStatus = "PAID"
	StatusOverdue       InvoiceStatus = "OVERDUE"
	StatusPartiallyPaid InvoiceStatus = "PARTIALLY_PAID"
)

// Invoice is a billed amount owed by a customer, captured from a scanned
// document. ImagePath references the original scan in blob storage; it is a
// stable identifier, unlike the expiring signed URLs derived from it.
type Invoice struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	CustomerID string `json:"customer_id"`

	// TotalAmount is > 0; AmountPaid is >= 0 and defaults to 0.
	TotalAmount float64 `json:"total_amount"`
	AmountPaid  float64 `json:"amount_paid"`

	IssueDate time.Time `json:"issue_date"`
	DueDate   time.Time `json:"due_date"`

	Status    InvoiceStatus `json:"status"`
	ImagePath string        `json:"image_path"`

	CreatedAt time.Time `json:"created_at"`
}

// BalanceDue returns the outstanding amount, clamped at zero for
// overpaid invoices.
func (i *Invoice) BalanceDue() float64 {
	if i.AmountPaid >= i.TotalAmount {
		return 0
	}
	return i.TotalAmount - i.AmountPaid
}

// IsOverdue reports whether the invoice is unpaid past its due date.
// A PAID invoice is never overdue; an invoice due today is not overdue yet.
func (i *Invoice) IsOverdue(now time.Time) bool {
	if i.Status == StatusPaid {
		return false
	}
	due := dateOf(i.DueDate)
	today := dateOf(now)
	return due.Before(today)
}

// dateOf truncates a timestamp to its calendar date in UTC.
func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
