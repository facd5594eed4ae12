package invoices

import (
	"context"
	"time"

	"github.com/varalakshmi119/RetailAssistant-sub001/internal/server/models"
)

// Repository stores the authoritative invoice rows.
type Repository interface {
	Create(ctx context.Context, inv *models.Invoice) error
	GetByID(ctx context.Context, id string) (*models.Invoice, error)
	ListByUser(ctx context.Context, userID string) ([]models.Invoice, error)
	ListByCustomer(ctx context.Context, customerID string) ([]models.Invoice, error)

	// UpdatePayment sets the paid amount and the recomputed status.
	UpdatePayment(ctx context.Context, id string, amountPaid float64, status models.InvoiceStatus) error

	// UpdateDueDate sets the due date and the recomputed status.
	UpdateDueDate(ctx context.Context, id string, dueDate time.Time, status models.InvoiceStatus) error

	DeleteByID(ctx context.Context, id string) error
	DeleteByCustomer(ctx context.Context, customerID string) error
}
