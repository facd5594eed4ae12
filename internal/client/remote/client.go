// Package remote defines the client-side contract of the remote data
// service: row queries, atomic procedures, and blob storage. Every call
// takes an explicit AuthContext; there is no ambient session state.
package remote

import (
	"context"
	"time"

	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client/models"
)

// CreateInvoiceRequest is the typed payload of the create-invoice-with-
// customer procedure. Either ExistingCustomerID references a customer to
// reuse, or CustomerName (plus optional contact fields) describes a new one;
// the server applies both writes in a single transaction.
type CreateInvoiceRequest struct {
	ExistingCustomerID *string   `json:"existing_customer_id,omitempty"`
	CustomerName       string    `json:"customer_name"`
	Phone              *string   `json:"phone,omitempty"`
	Email              *string   `json:"email,omitempty"`
	IssueDate          time.Time `json:"issue_date"`
	DueDate            time.Time `json:"due_date"`
	TotalAmount        float64   `json:"total_amount"`
	ImagePath          string    `json:"image_path"`
}

// AddPaymentRequest records a payment against an invoice.
type AddPaymentRequest struct {
	InvoiceID string  `json:"invoice_id"`
	Amount    float64 `json:"amount"`
	Note      *string `json:"note,omitempty"`
}

// AddNoteRequest appends a free-text note to an invoice's log.
type AddNoteRequest struct {
	InvoiceID string `json:"invoice_id"`
	Note      string `json:"note"`
}

// PostponeDueDateRequest moves an invoice's due date.
type PostponeDueDateRequest struct {
	InvoiceID  string    `json:"invoice_id"`
	NewDueDate time.Time `json:"new_due_date"`
	Reason     *string   `json:"reason,omitempty"`
}

// Credentials authenticates a user for Login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is the server's answer to a successful Login.
type Session struct {
	UserID       string `json:"user_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Client is the remote data service seen from the device. Implementations
// map transport failures onto the sentinel errors in internal/common so the
// repository layer can translate them uniformly.
type Client interface {
	// Row queries, filtered server-side by the token's user.
	Customers(ctx context.Context, auth models.AuthContext) ([]models.Customer, error)
	Invoices(ctx context.Context, auth models.AuthContext) ([]models.Invoice, error)
	Interactions(ctx context.Context, auth models.AuthContext) ([]models.InteractionLog, error)

	// Atomic procedures. Each applies all of its writes or none.
	CreateInvoiceWithCustomer(ctx context.Context, auth models.AuthContext, req CreateInvoiceRequest) error
	AddPayment(ctx context.Context, auth models.AuthContext, req AddPaymentRequest) error
	AddNote(ctx context.Context, auth models.AuthContext, req AddNoteRequest) error
	PostponeDueDate(ctx context.Context, auth models.AuthContext, req PostponeDueDateRequest) error
	DeleteInvoice(ctx context.Context, auth models.AuthContext, invoiceID string) error
	DeleteCustomer(ctx context.Context, auth models.AuthContext, customerID string) error

	// Blob storage for invoice scans.
	UploadObject(ctx context.Context, auth models.AuthContext, path string, data []byte) error
	DeleteObject(ctx context.Context, auth models.AuthContext, path string) error
	SignObjectURL(ctx context.Context, auth models.AuthContext, path string) (string, error)

	// Session lifecycle.
	Login(ctx context.Context, creds Credentials) (*Session, error)
	Logout(ctx context.Context, auth models.AuthContext) error

	Ping(ctx context.Context) error
	Close() error
}
