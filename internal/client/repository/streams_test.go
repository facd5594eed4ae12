package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client/models"
)

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a stream emission")
		panic("unreachable")
	}
}

func TestWatchInvoices_EmitsSnapshotImmediately(t *testing.T) {
	r, st := setup(t, &fakeRemote{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	now := time.Now().UTC()
	require.NoError(t, st.Invoices.Upsert(ctx, &models.Invoice{
		ID: "i1", UserID: "u1", CustomerID: "c1", TotalAmount: 10,
		IssueDate: now, DueDate: now, Status: models.StatusUnpaid, CreatedAt: now,
	}))

	ch := r.WatchInvoices(ctx, "u1")
	got := receive(t, ch)
	require.Len(t, got, 1)
	assert.Equal(t, "i1", got[0].ID)
}

func TestWatchInvoices_ReEmitsOnChange(t *testing.T) {
	r, st := setup(t, &fakeRemote{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := r.WatchInvoices(ctx, "u1")
	got := receive(t, ch)
	assert.Empty(t, got)

	now := time.Now().UTC()
	require.NoError(t, st.Invoices.Upsert(ctx, &models.Invoice{
		ID: "i1", UserID: "u1", CustomerID: "c1", TotalAmount: 10,
		IssueDate: now, DueDate: now, Status: models.StatusUnpaid, CreatedAt: now,
	}))
	st.Notifier.Notify("invoices")

	got = receive(t, ch)
	require.Len(t, got, 1)
	assert.Equal(t, "i1", got[0].ID)
}

func TestWatchInvoiceWithLogs_NilWhileAbsent(t *testing.T) {
	r, st := setup(t, &fakeRemote{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := r.WatchInvoiceWithLogs(ctx, "i1")
	got := receive(t, ch)
	assert.Nil(t, got)

	now := time.Now().UTC()
	require.NoError(t, st.Invoices.Upsert(ctx, &models.Invoice{
		ID: "i1", UserID: "u1", CustomerID: "c1", TotalAmount: 10,
		IssueDate: now, DueDate: now, Status: models.StatusUnpaid, CreatedAt: now,
	}))
	require.NoError(t, st.Interactions.Upsert(ctx, &models.InteractionLog{
		ID: "l1", InvoiceID: "i1", UserID: "u1", Type: models.InteractionNote, CreatedAt: now,
	}))
	st.Notifier.Notify("invoices", "interaction_logs")

	got = receive(t, ch)
	require.NotNil(t, got)
	assert.Equal(t, "i1", got.Invoice.ID)
	assert.Len(t, got.Logs, 1)
}

func TestWatch_ChannelClosesOnCancel(t *testing.T) {
	r, _ := setup(t, &fakeRemote{})
	ctx, cancel := context.WithCancel(context.Background())

	ch := r.WatchCustomers(ctx, "u1")
	receive(t, ch)

	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "channel should be closed after cancel")
	case <-time.After(2 * time.Second):
		t.Fatal("channel did not close after cancel")
	}
}

func TestWatch_ReplayLatestDropsStaleSnapshot(t *testing.T) {
	r, st := setup(t, &fakeRemote{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := r.WatchCustomers(ctx, "u1")
	// do not consume: the initial empty snapshot sits in the buffer

	now := time.Now().UTC()
	require.NoError(t, st.Customers.Upsert(ctx, &models.Customer{ID: "c1", UserID: "u1", Name: "A", CreatedAt: now}))
	st.Notifier.Notify("customers")

	// give the goroutine a moment to replace the buffered value
	deadline := time.Now().Add(2 * time.Second)
	for {
		got := receive(t, ch)
		if len(got) == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("never observed the fresh snapshot")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
