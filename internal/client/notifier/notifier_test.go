package notifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client/models"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client/remote"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client/repository"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client/store"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/logging"
)

type fakeRemote struct {
	remote.Client
	syncErr error
}

func (f *fakeRemote) Customers(ctx context.Context, auth models.AuthContext) ([]models.Customer, error) {
	return nil, f.syncErr
}

func (f *fakeRemote) Invoices(ctx context.Context, auth models.AuthContext) ([]models.Invoice, error) {
	return nil, f.syncErr
}

func (f *fakeRemote) Interactions(ctx context.Context, auth models.AuthContext) ([]models.InteractionLog, error) {
	return nil, f.syncErr
}

type fakeSink struct {
	err   error
	calls int
	key   string
	body  string
}

func (f *fakeSink) Notify(ctx context.Context, key, title, body string) error {
	f.calls++
	f.key = key
	f.body = body
	return f.err
}

func activeSession() (models.AuthContext, bool) {
	return models.AuthContext{UserID: "u1", AccessToken: "tok"}, true
}

func noSession() (models.AuthContext, bool) {
	return models.AuthContext{}, false
}

func setup(t *testing.T, client remote.Client) (*repository.Repository, *store.Store) {
	t.Helper()
	st, err := store.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return repository.New(client, st, logging.NewNop()), st
}

func seedOverdue(t *testing.T, st *store.Store, now time.Time, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		id := string(rune('a' + i))
		require.NoError(t, st.Invoices.Upsert(context.Background(), &models.Invoice{
			ID: id, UserID: "u1", CustomerID: "c1", TotalAmount: 100,
			IssueDate: now.AddDate(0, 0, -30), DueDate: now.AddDate(0, 0, -5),
			Status: models.StatusUnpaid, CreatedAt: now,
		}))
	}
}

func TestRun_NoSessionIsSuccess(t *testing.T) {
	repo, _ := setup(t, &fakeRemote{})
	sink := &fakeSink{}
	w := NewWorker(repo, sink, noSession, logging.NewNop(), 0)

	assert.Equal(t, OutcomeSuccess, w.Run(context.Background(), 0))
	assert.Equal(t, 0, sink.calls)
}

func TestRun_AttemptsExhaustedIsFailure(t *testing.T) {
	repo, _ := setup(t, &fakeRemote{})
	sink := &fakeSink{}
	w := NewWorker(repo, sink, activeSession, logging.NewNop(), 3)

	assert.Equal(t, OutcomeFailure, w.Run(context.Background(), 3))
	assert.Equal(t, 0, sink.calls)
}

func TestRun_NoOverdueInvoicesNoNotification(t *testing.T) {
	repo, _ := setup(t, &fakeRemote{})
	sink := &fakeSink{}
	w := NewWorker(repo, sink, activeSession, logging.NewNop(), 0)

	assert.Equal(t, OutcomeSuccess, w.Run(context.Background(), 0))
	assert.Equal(t, 0, sink.calls)
}

func TestRun_NotifiesWithCount(t *testing.T) {
	repo, st := setup(t, &fakeRemote{})
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	seedOverdue(t, st, now, 2)

	sink := &fakeSink{}
	w := NewWorker(repo, sink, activeSession, logging.NewNop(), 0)
	w.now = func() time.Time { return now }

	assert.Equal(t, OutcomeSuccess, w.Run(context.Background(), 0))
	assert.Equal(t, 1, sink.calls)
	assert.Equal(t, NotificationKey, sink.key)
	assert.Equal(t, "You have 2 overdue invoices.", sink.body)
}

func TestRun_SyncFailureStillChecksCachedData(t *testing.T) {
	repo, st := setup(t, &fakeRemote{syncErr: errors.New("offline")})
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	seedOverdue(t, st, now, 1)

	sink := &fakeSink{}
	w := NewWorker(repo, sink, activeSession, logging.NewNop(), 0)
	w.now = func() time.Time { return now }

	assert.Equal(t, OutcomeSuccess, w.Run(context.Background(), 0))
	assert.Equal(t, 1, sink.calls)
	assert.Equal(t, "You have 1 overdue invoice.", sink.body)
}

func TestRun_SinkFailureIsRetry(t *testing.T) {
	repo, st := setup(t, &fakeRemote{})
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	seedOverdue(t, st, now, 1)

	sink := &fakeSink{err: errors.New("notification center down")}
	w := NewWorker(repo, sink, activeSession, logging.NewNop(), 0)
	w.now = func() time.Time { return now }

	assert.Equal(t, OutcomeRetry, w.Run(context.Background(), 0))
}

func TestOverdueMessage_Pluralization(t *testing.T) {
	assert.Equal(t, "You have 1 overdue invoice.", OverdueMessage(1))
	assert.Equal(t, "You have 2 overdue invoices.", OverdueMessage(2))
	assert.Equal(t, "You have 10 overdue invoices.", OverdueMessage(10))
}

func TestRunWithBackoff_StopsAfterPermanentFailure(t *testing.T) {
	repo, st := setup(t, &fakeRemote{})
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	seedOverdue(t, st, now, 1)

	// the sink always fails, so every run is a retry until attempts run out
	sink := &fakeSink{err: errors.New("still down")}
	w := NewWorker(repo, sink, activeSession, logging.NewNop(), 2)
	w.now = func() time.Time { return now }

	err := w.RunWithBackoff(context.Background(), time.Millisecond)
	require.Error(t, err)
	assert.Equal(t, 2, sink.calls)
}
