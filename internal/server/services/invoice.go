package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/varalakshmi119/RetailAssistant-sub001/internal/common"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/dbx"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/server/models"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/server/repositories/customers"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/server/repositories/interactions"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/server/repositories/invoices"
)

// CreateInvoiceRequest carries both halves of the invoice-plus-customer
// procedure. ExistingCustomerID reuses a customer; otherwise CustomerName
// (plus optional contacts) creates one. Both writes land in one transaction.
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

// Indirection points for tests.
var (
	customerRepo = func(db dbx.DBTX) customers.Repository {
		return customers.NewPostgresRepository(db)
	}
	invoiceRepo = func(db dbx.DBTX) invoices.Repository {
		return invoices.NewPostgresRepository(db)
	}
	interactionRepo = func(db dbx.DBTX) interactions.Repository {
		return interactions.NewPostgresRepository(db)
	}
)

// InvoiceService implements the row queries and the atomic procedures over
// the authoritative store. Every procedure applies all of its writes or
// none, and recomputes invoice status inside the same transaction.
type InvoiceService struct {
	db  *sql.DB
	now func() time.Time
}

func NewInvoiceService(db *sql.DB) *InvoiceService {
	return &InvoiceService{db: db, now: time.Now}
}

// Customers lists the user's customers.
func (s *InvoiceService) Customers(ctx context.Context, userID string) ([]models.Customer, error) {
	return customerRepo(s.db).ListByUser(ctx, userID)
}

// Invoices lists the user's invoices.
func (s *InvoiceService) Invoices(ctx context.Context, userID string) ([]models.Invoice, error) {
	return invoiceRepo(s.db).ListByUser(ctx, userID)
}

// Interactions lists the user's interaction log rows.
func (s *InvoiceService) Interactions(ctx context.Context, userID string) ([]models.InteractionLog, error) {
	return interactionRepo(s.db).ListByUser(ctx, userID)
}

// CreateInvoiceWithCustomer creates an invoice and, when no existing
// customer is referenced, the customer row too, atomically.
func (s *InvoiceService) CreateInvoiceWithCustomer(ctx context.Context, userID string, req CreateInvoiceRequest) (*models.Invoice, error) {
	if req.TotalAmount <= 0 {
		return nil, fmt.Errorf("total amount must be positive: %w", common.ErrValidation)
	}
	if req.ExistingCustomerID == nil && req.CustomerName == "" {
		return nil, fmt.Errorf("customer name is required: %w", common.ErrValidation)
	}

	now := s.now().UTC()
	var inv *models.Invoice

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		customerID, err := s.resolveCustomer(ctx, tx, userID, req, now)
		if err != nil {
			return err
		}

		inv = &models.Invoice{
			ID:          uuid.NewString(),
			UserID:      userID,
			CustomerID:  customerID,
			TotalAmount: req.TotalAmount,
			IssueDate:   req.IssueDate,
			DueDate:     req.DueDate,
			Status:      models.ComputeStatus(req.TotalAmount, 0, req.DueDate, now),
			ImagePath:   req.ImagePath,
			CreatedAt:   now,
		}
		return invoiceRepo(tx).Create(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// AddPayment adds to the invoice's paid amount, recomputes its status, and
// appends a PAYMENT log row, atomically. Overpayment is accepted; the
// status simply becomes PAID.
func (s *InvoiceService) AddPayment(ctx context.Context, userID string, req AddPaymentRequest) error {
	if req.Amount <= 0 {
		return fmt.Errorf("payment amount must be positive: %w", common.ErrValidation)
	}

	now := s.now().UTC()
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		inv, err := s.ownedInvoice(ctx, tx, userID, req.InvoiceID)
		if err != nil {
			return err
		}

		paid := inv.AmountPaid + req.Amount
		status := models.ComputeStatus(inv.TotalAmount, paid, inv.DueDate, now)
		if err := invoiceRepo(tx).UpdatePayment(ctx, inv.ID, paid, status); err != nil {
			return err
		}

		amount := req.Amount
		return interactionRepo(tx).Create(ctx, &models.InteractionLog{
			ID:        uuid.NewString(),
			InvoiceID: inv.ID,
			UserID:    userID,
			Type:      models.InteractionPayment,
			Note:      req.Note,
			Value:     &amount,
			CreatedAt: now,
		})
	})
}

// AddNote appends a NOTE log row to an invoice the user owns.
func (s *InvoiceService) AddNote(ctx context.Context, userID string, req AddNoteRequest) error {
	if req.Note == "" {
		return fmt.Errorf("note must not be empty: %w", common.ErrValidation)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		inv, err := s.ownedInvoice(ctx, tx, userID, req.InvoiceID)
		if err != nil {
			return err
		}
		note := req.Note
		return interactionRepo(tx).Create(ctx, &models.InteractionLog{
			ID:        uuid.NewString(),
			InvoiceID: inv.ID,
			UserID:    userID,
			Type:      models.InteractionNote,
			Note:      &note,
			CreatedAt: s.now().UTC(),
		})
	})
}

// PostponeDueDate moves the due date, recomputes the status against the new
// date, and appends a DUE_DATE_CHANGED log row, atomically.
func (s *InvoiceService) PostponeDueDate(ctx context.Context, userID string, req PostponeDueDateRequest) error {
	if req.NewDueDate.IsZero() {
		return fmt.Errorf("new due date is required: %w", common.ErrValidation)
	}

	now := s.now().UTC()
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		inv, err := s.ownedInvoice(ctx, tx, userID, req.InvoiceID)
		if err != nil {
			return err
		}

		status := models.ComputeStatus(inv.TotalAmount, inv.AmountPaid, req.NewDueDate, now)
		if err := invoiceRepo(tx).UpdateDueDate(ctx, inv.ID, req.NewDueDate, status); err != nil {
			return err
		}

		return interactionRepo(tx).Create(ctx, &models.InteractionLog{
			ID:        uuid.NewString(),
			InvoiceID: inv.ID,
			UserID:    userID,
			Type:      models.InteractionDueDateChanged,
			Note:      req.Reason,
			CreatedAt: now,
		})
	})
}

// DeleteInvoice removes an invoice and its log rows atomically. The blob,
// if any, is the caller's concern.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, userID, invoiceID string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		inv, err := s.ownedInvoice(ctx, tx, userID, invoiceID)
		if err != nil {
			return err
		}
		if err := interactionRepo(tx).DeleteByInvoice(ctx, inv.ID); err != nil {
			return err
		}
		return invoiceRepo(tx).DeleteByID(ctx, inv.ID)
	})
}

// DeleteCustomer removes a customer together with all of their invoices and
// log rows, atomically.
func (s *InvoiceService) DeleteCustomer(ctx context.Context, userID, customerID string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		c, err := customerRepo(tx).GetByID(ctx, customerID)
		if err != nil {
			return err
		}
		if c.UserID != userID {
			return fmt.Errorf("customer %s: %w", customerID, common.ErrNotFound)
		}

		if err := interactionRepo(tx).DeleteByCustomer(ctx, c.ID); err != nil {
			return err
		}
		if err := invoiceRepo(tx).DeleteByCustomer(ctx, c.ID); err != nil {
			return err
		}
		return customerRepo(tx).DeleteByID(ctx, c.ID)
	})
}

// ownedInvoice fetches an invoice and hides rows the user does not own
// behind common.ErrNotFound.
func (s *InvoiceService) ownedInvoice(ctx context.Context, db dbx.DBTX, userID, invoiceID string) (*models.Invoice, error) {
	inv, err := invoiceRepo(db).GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.UserID != userID {
		return nil, fmt.Errorf("invoice %s: %w", invoiceID, common.ErrNotFound)
	}
	return inv, nil
}

func (s *InvoiceService) resolveCustomer(ctx context.Context, tx dbx.DBTX, userID string, req CreateInvoiceRequest, now time.Time) (string, error) {
	repo := customerRepo(tx)

	if req.ExistingCustomerID != nil {
		c, err := repo.GetByID(ctx, *req.ExistingCustomerID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return "", fmt.Errorf("customer %s: %w", *req.ExistingCustomerID, common.ErrNotFound)
			}
			return "", err
		}
		if c.UserID != userID {
			return "", fmt.Errorf("customer %s: %w", *req.ExistingCustomerID, common.ErrNotFound)
		}
		return c.ID, nil
	}

	c := &models.Customer{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      req.CustomerName,
		Phone:     req.Phone,
		Email:     req.Email,
		CreatedAt: now,
	}
	if err := repo.Create(ctx, c); err != nil {
		return "", err
	}
	return c.ID, nil
}
