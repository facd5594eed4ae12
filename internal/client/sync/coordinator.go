// Package sync pulls the full per-user dataset from the remote data service
// and overwrites the local mirror. The pull is a bulk upsert, not a diff:
// rows deleted remotely by another session are not removed here. They only
// disappear through an explicit delete procedure or a full per-user wipe.
package sync

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client/models"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client/remote"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client/repositories/customers"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client/repositories/interactions"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client/repositories/invoices"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client/store"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/dbx"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/logging"
)

// Coordinator performs the pull-and-replace sync pass.
type Coordinator struct {
	client remote.Client
	store  *store.Store
	log    logging.Logger
}

// NewCoordinator wires a coordinator over the remote client and local store.
func NewCoordinator(client remote.Client, st *store.Store, log logging.Logger) *Coordinator {
	return &Coordinator{client: client, store: st, log: log}
}

// SyncAllUserData fetches the user's customers, invoices and interaction
// logs concurrently, then commits all upserts in one local transaction.
// A failure in any fetch aborts the pass before a single local write.
func (c *Coordinator) SyncAllUserData(ctx context.Context, auth models.AuthContext) error {
	var (
		custRows []models.Customer
		invRows  []models.Invoice
		logRows  []models.InteractionLog
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := c.client.Customers(gctx, auth)
		if err != nil {
			return fmt.Errorf("fetching customers: %w", err)
		}
		custRows = rows
		return nil
	})
	g.Go(func() error {
		rows, err := c.client.Invoices(gctx, auth)
		if err != nil {
			return fmt.Errorf("fetching invoices: %w", err)
		}
		invRows = rows
		return nil
	})
	g.Go(func() error {
		rows, err := c.client.Interactions(gctx, auth)
		if err != nil {
			return fmt.Errorf("fetching interaction logs: %w", err)
		}
		logRows = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	err := dbx.WithTx(ctx, c.store.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		custRepo := customers.NewSQLiteRepository(tx)
		for i := range custRows {
			// Ownership is enforced server-side; filtering again here keeps a
			// misbehaving backend from leaking rows into the mirror.
			if custRows[i].UserID != auth.UserID {
				continue
			}
			if err := custRepo.Upsert(ctx, &custRows[i]); err != nil {
				return err
			}
		}

		invRepo := invoices.NewSQLiteRepository(tx)
		for i := range invRows {
			if invRows[i].UserID != auth.UserID {
				continue
			}
			if err := invRepo.Upsert(ctx, &invRows[i]); err != nil {
				return err
			}
		}

		logRepo := interactions.NewSQLiteRepository(tx)
		for i := range logRows {
			if logRows[i].UserID != auth.UserID {
				continue
			}
			if err := logRepo.Upsert(ctx, &logRows[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("committing sync pass: %w", err)
	}

	c.log.Debug(ctx, "sync pass committed",
		"user_id", auth.UserID,
		"customers", len(custRows),
		"invoices", len(invRows),
		"interactions", len(logRows),
	)

	c.store.Notifier.Notify(store.TableCustomers, store.TableInvoices, store.TableInteractions)
	return nil
}
