// Package repository is the single façade the rest of the app calls.
// Reads come from the local SQLite mirror as reactive streams; mutations go
// remote-first and then re-pull the user's dataset so the mirror reflects
// the write before the call returns. The mirror is never a staging area:
// mutations fail fast when offline instead of being queued.
package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client/models"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client/remote"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client/store"
	syncpkg "github.com/varalakshmi119/RetailAssistant-sub001/internal/client/sync"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/dbx"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/logging"
)

// Repository composes local mirror reads with remote writes and sync pulls.
type Repository struct {
	remote remote.Client
	store  *store.Store
	sync   *syncpkg.Coordinator
	log    logging.Logger
}

// New wires a repository over the given remote client and local store.
func New(client remote.Client, st *store.Store, log logging.Logger) *Repository {
	return &Repository{
		remote: client,
		store:  st,
		sync:   syncpkg.NewCoordinator(client, st, log),
		log:    log,
	}
}

// AddInvoiceParams carries the inputs of AddInvoice. ExistingCustomerID nil
// means a new customer is created from CustomerName and the contact fields.
type AddInvoiceParams struct {
	ExistingCustomerID *string
	CustomerName       string
	Phone              *string
	Email              *string
	IssueDate          time.Time
	DueDate            time.Time
	TotalAmount        float64
	ImageBytes         []byte
}

// AddInvoice uploads the scan, invokes the atomic create procedure and
// refreshes the mirror. The protocol is the core correctness guarantee:
//
//  1. upload the image to a fresh per-invoice blob path; failure aborts
//     with nothing created;
//  2. call the transactional create-invoice-with-customer procedure;
//  3. on procedure failure, best-effort delete the uploaded blob (its own
//     failure is swallowed) and report the original failure;
//  4. on success, re-pull all user data; a re-sync failure fails the call
//     even though the server-side write landed.
func (r *Repository) AddInvoice(ctx context.Context, auth models.AuthContext, p AddInvoiceParams) error {
	if strings.TrimSpace(p.CustomerName) == "" {
		return failValidation("Customer name cannot be empty.")
	}
	if p.TotalAmount <= 0 {
		return failValidation("Invoice amount must be greater than zero.")
	}
	if len(p.ImageBytes) == 0 {
		return failValidation("The invoice scan is missing.")
	}

	path := fmt.Sprintf("invoice-scans/%s/%s.jpg", auth.UserID, uuid.NewString())

	if err := r.remote.UploadObject(ctx, auth, path, p.ImageBytes); err != nil {
		return fail("Could not upload the invoice scan.", err)
	}

	req := remote.CreateInvoiceRequest{
		ExistingCustomerID: p.ExistingCustomerID,
		CustomerName:       p.CustomerName,
		Phone:              p.Phone,
		Email:              p.Email,
		IssueDate:          p.IssueDate,
		DueDate:            p.DueDate,
		TotalAmount:        p.TotalAmount,
		ImagePath:          path,
	}
	if err := r.remote.CreateInvoiceWithCustomer(ctx, auth, req); err != nil {
		// Compensating action: the blob must not outlive a failed create.
		// An orphaned blob is preferable to masking the real failure, so a
		// delete error is logged and swallowed.
		if delErr := r.remote.DeleteObject(ctx, auth, path); delErr != nil {
			r.log.Warn(ctx, "could not delete orphaned scan", "path", path, "error", delErr)
		}
		return fail("Could not save the invoice.", err)
	}

	if err := r.sync.SyncAllUserData(ctx, auth); err != nil {
		return fail("The invoice was saved but the local data could not be refreshed.", err)
	}
	return nil
}

// AddPayment records a payment and refreshes the mirror.
func (r *Repository) AddPayment(ctx context.Context, auth models.AuthContext, invoiceID string, amount float64, note *string) error {
	if amount <= 0 {
		return failValidation("Payment amount must be greater than zero.")
	}
	req := remote.AddPaymentRequest{InvoiceID: invoiceID, Amount: amount, Note: note}
	if err := r.remote.AddPayment(ctx, auth, req); err != nil {
		return fail("Could not record the payment.", err)
	}
	return r.resync(ctx, auth)
}

// AddNote appends a note to an invoice's log and refreshes the mirror.
func (r *Repository) AddNote(ctx context.Context, auth models.AuthContext, invoiceID, note string) error {
	if strings.TrimSpace(note) == "" {
		return failValidation("The note cannot be empty.")
	}
	if err := r.remote.AddNote(ctx, auth, remote.AddNoteRequest{InvoiceID: invoiceID, Note: note}); err != nil {
		return fail("Could not save the note.", err)
	}
	return r.resync(ctx, auth)
}

// PostponeDueDate moves an invoice's due date and refreshes the mirror.
func (r *Repository) PostponeDueDate(ctx context.Context, auth models.AuthContext, invoiceID string, newDueDate time.Time, reason *string) error {
	req := remote.PostponeDueDateRequest{InvoiceID: invoiceID, NewDueDate: newDueDate, Reason: reason}
	if err := r.remote.PostponeDueDate(ctx, auth, req); err != nil {
		return fail("Could not change the due date.", err)
	}
	return r.resync(ctx, auth)
}

// DeleteInvoice deletes an invoice remotely, drops the local mirror rows as
// the explicit-delete side effect, and refreshes.
func (r *Repository) DeleteInvoice(ctx context.Context, auth models.AuthContext, invoiceID string) error {
	if err := r.remote.DeleteInvoice(ctx, auth, invoiceID); err != nil {
		return fail("Could not delete the invoice.", err)
	}
	if err := r.deleteInvoiceLocally(ctx, invoiceID); err != nil {
		return fail("The invoice was deleted but the local data could not be updated.", err)
	}
	return r.resync(ctx, auth)
}

// DeleteCustomer deletes a customer and their invoices remotely, drops the
// local mirror rows, and refreshes.
func (r *Repository) DeleteCustomer(ctx context.Context, auth models.AuthContext, customerID string) error {
	if err := r.remote.DeleteCustomer(ctx, auth, customerID); err != nil {
		return fail("Could not delete the customer.", err)
	}

	err := dbx.WithTx(ctx, r.store.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		invRepo := newInvoiceRepo(tx)
		logRepo := newInteractionRepo(tx)

		invs, err := invRepo.ListByCustomer(ctx, auth.UserID, customerID)
		if err != nil {
			return err
		}
		for _, inv := range invs {
			if err := logRepo.DeleteByInvoice(ctx, inv.ID); err != nil {
				return err
			}
			if err := invRepo.DeleteByID(ctx, inv.ID); err != nil {
				return err
			}
		}
		return newCustomerRepo(tx).DeleteByID(ctx, customerID)
	})
	if err != nil {
		return fail("The customer was deleted but the local data could not be updated.", err)
	}
	r.store.Notifier.Notify(store.TableCustomers, store.TableInvoices, store.TableInteractions)

	return r.resync(ctx, auth)
}

// GetPublicURL returns a time-limited (1h) signed URL for a blob path.
// The URL expires; callers must not persist it as a stable identifier.
// Derive a stable key from it instead (imagecache.StableKey).
func (r *Repository) GetPublicURL(ctx context.Context, auth models.AuthContext, path string) (string, error) {
	u, err := r.remote.SignObjectURL(ctx, auth, path)
	if err != nil {
		return "", fail("Could not load the invoice scan.", err)
	}
	return u, nil
}

// SyncAllUserData runs one pull-and-replace sync pass.
func (r *Repository) SyncAllUserData(ctx context.Context, auth models.AuthContext) error {
	return r.resync(ctx, auth)
}

// SignOut invalidates the remote session and wipes the user's local mirror.
// The wipe is unconditional once the remote call returns: stale business
// data must never survive a logout, even when the remote side failed.
func (r *Repository) SignOut(ctx context.Context, auth models.AuthContext) error {
	remoteErr := r.remote.Logout(ctx, auth)

	wipeErr := dbx.WithTx(ctx, r.store.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := newInteractionRepo(tx).DeleteByUser(ctx, auth.UserID); err != nil {
			return err
		}
		if err := newInvoiceRepo(tx).DeleteByUser(ctx, auth.UserID); err != nil {
			return err
		}
		return newCustomerRepo(tx).DeleteByUser(ctx, auth.UserID)
	})
	r.store.Notifier.Notify(store.TableCustomers, store.TableInvoices, store.TableInteractions)

	if wipeErr != nil {
		return fail("Could not clear local data.", wipeErr)
	}
	if remoteErr != nil {
		return fail("Signed out locally, but the server sign-out failed.", remoteErr)
	}
	return nil
}

// InvoicesSnapshot is a one-shot read of the user's invoices in display
// order, used where a live stream is not needed (e.g. the overdue check).
func (r *Repository) InvoicesSnapshot(ctx context.Context, userID string) ([]models.Invoice, error) {
	rows, err := r.store.Invoices.ListByUser(ctx, userID)
	if err != nil {
		return nil, fail("Could not read invoices.", err)
	}
	return rows, nil
}

func (r *Repository) resync(ctx context.Context, auth models.AuthContext) error {
	if err := r.sync.SyncAllUserData(ctx, auth); err != nil {
		return fail("The change was saved but the local data could not be refreshed.", err)
	}
	return nil
}

func (r *Repository) deleteInvoiceLocally(ctx context.Context, invoiceID string) error {
	err := dbx.WithTx(ctx, r.store.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := newInteractionRepo(tx).DeleteByInvoice(ctx, invoiceID); err != nil {
			return err
		}
		return newInvoiceRepo(tx).DeleteByID(ctx, invoiceID)
	})
	if err != nil {
		return err
	}
	r.store.Notifier.Notify(store.TableInvoices, store.TableInteractions)
	return nil
}
