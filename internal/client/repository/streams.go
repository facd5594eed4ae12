package repository

import (
	"context"

	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client/models"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client/store"
)

// Streams are pure local-store subscriptions: they never touch the network
// and keep emitting while offline. Each stream emits the current snapshot
// immediately on subscribe and re-emits whenever a write touches one of the
// observed tables. Delivery is replay-latest: a slow consumer sees the most
// recent snapshot, not every intermediate one. The channel closes when ctx
// is cancelled.

// WatchInvoices streams the user's invoices, due date ascending then
// creation descending.
func (r *Repository) WatchInvoices(ctx context.Context, userID string) <-chan []models.Invoice {
	return watch(ctx, r, []store.Table{store.TableInvoices},
		func(ctx context.Context) ([]models.Invoice, error) {
			return r.store.Invoices.ListByUser(ctx, userID)
		})
}

// WatchCustomers streams the user's customers, name ascending.
func (r *Repository) WatchCustomers(ctx context.Context, userID string) <-chan []models.Customer {
	return watch(ctx, r, []store.Table{store.TableCustomers},
		func(ctx context.Context) ([]models.Customer, error) {
			return r.store.Customers.ListByUser(ctx, userID)
		})
}

// WatchCustomerInvoices streams one customer's invoices for the user.
func (r *Repository) WatchCustomerInvoices(ctx context.Context, userID, customerID string) <-chan []models.Invoice {
	return watch(ctx, r, []store.Table{store.TableInvoices},
		func(ctx context.Context) ([]models.Invoice, error) {
			return r.store.Invoices.ListByCustomer(ctx, userID, customerID)
		})
}

// WatchInvoiceWithLogs streams a single invoice together with its log,
// newest log first. Emits nil while the invoice is absent from the mirror.
func (r *Repository) WatchInvoiceWithLogs(ctx context.Context, invoiceID string) <-chan *models.InvoiceWithLogs {
	return watch(ctx, r, []store.Table{store.TableInvoices, store.TableInteractions},
		func(ctx context.Context) (*models.InvoiceWithLogs, error) {
			inv, err := r.store.Invoices.GetByID(ctx, invoiceID)
			if err != nil {
				return nil, nil // not found: keep the stream alive, emit nil
			}
			logs, err := r.store.Interactions.ListByInvoice(ctx, invoiceID)
			if err != nil {
				return nil, err
			}
			return &models.InvoiceWithLogs{Invoice: *inv, Logs: logs}, nil
		})
}

// WatchCustomerByID streams a single customer; nil while absent.
func (r *Repository) WatchCustomerByID(ctx context.Context, customerID string) <-chan *models.Customer {
	return watch(ctx, r, []store.Table{store.TableCustomers},
		func(ctx context.Context) (*models.Customer, error) {
			c, err := r.store.Customers.GetByID(ctx, customerID)
			if err != nil {
				return nil, nil
			}
			return c, nil
		})
}

// watch runs the query once up front and once per change signal, pushing
// results with replay-latest semantics. Query errors are logged and the
// previous emission stands; the stream itself stays alive.
func watch[T any](ctx context.Context, r *Repository, tables []store.Table, query func(context.Context) (T, error)) <-chan T {
	out := make(chan T, 1)
	signals, cancel := r.store.Notifier.Subscribe(tables...)

	emit := func() {
		v, err := query(ctx)
		if err != nil {
			r.log.Error(ctx, "stream query failed", "error", err)
			return
		}
		// Drop a stale pending value so the latest snapshot always wins.
		select {
		case <-out:
		default:
		}
		select {
		case out <- v:
		default:
		}
	}

	go func() {
		defer cancel()
		defer close(out)

		emit()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-signals:
				if !ok {
					return
				}
				emit()
			}
		}
	}()

	return out
}
