// Package notifier implements the periodic overdue-invoice check: sync if
// possible, inspect the local mirror, and raise one notification when
// overdue invoices exist. Runs are idempotent; re-raising the same count
// replaces the previous notification rather than stacking a new one.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client/models"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client/repository"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/logging"
)

// Outcome is the terminal state of one run.
type Outcome int

const (
	// OutcomeSuccess means done, no retry.
	OutcomeSuccess Outcome = iota
	// OutcomeRetry means a transient failure; back off and re-run.
	OutcomeRetry
	// OutcomeFailure is permanent for this schedule period.
	OutcomeFailure
)

// DefaultMaxAttempts bounds retries within one schedule period.
const DefaultMaxAttempts = 3

// NotificationKey is the fixed identifier under which the overdue
// notification is raised; a sink replaces any prior notification with the
// same key instead of stacking.
const NotificationKey = "overdue-invoices"

// Sink delivers a local notification. OS integration lives behind it.
type Sink interface {
	Notify(ctx context.Context, key, title, body string) error
}

// SessionFunc reports the currently signed-in user, if any.
type SessionFunc func() (models.AuthContext, bool)

// Worker is the overdue check job.
type Worker struct {
	repo        *repository.Repository
	sink        Sink
	session     SessionFunc
	log         logging.Logger
	maxAttempts int
	now         func() time.Time
}

// NewWorker wires a worker; maxAttempts <= 0 selects DefaultMaxAttempts.
func NewWorker(repo *repository.Repository, sink Sink, session SessionFunc, log logging.Logger, maxAttempts int) *Worker {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Worker{
		repo:        repo,
		sink:        sink,
		session:     session,
		log:         log,
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}

// Run executes one pass. attempt is zero-based and counts the retries that
// already happened this period.
func (w *Worker) Run(ctx context.Context, attempt int) Outcome {
	// An absent session is a non-event, never a retry.
	auth, ok := w.session()
	if !ok {
		return OutcomeSuccess
	}

	if attempt >= w.maxAttempts {
		return OutcomeFailure
	}

	// Stale data beats no notification: a failed sync is logged and the
	// check proceeds on whatever the mirror holds.
	if err := w.repo.SyncAllUserData(ctx, auth); err != nil {
		w.log.Warn(ctx, "overdue check: sync failed, using cached data", "error", err)
	}

	invoices, err := w.repo.InvoicesSnapshot(ctx, auth.UserID)
	if err != nil {
		w.log.Error(ctx, "overdue check: snapshot failed", "error", err)
		return OutcomeRetry
	}

	count := 0
	now := w.now()
	for i := range invoices {
		if invoices[i].IsOverdue(now) {
			count++
		}
	}
	if count == 0 {
		return OutcomeSuccess
	}

	if err := w.sink.Notify(ctx, NotificationKey, "Overdue invoices", OverdueMessage(count)); err != nil {
		w.log.Error(ctx, "overdue check: notification failed", "error", err)
		return OutcomeRetry
	}
	return OutcomeSuccess
}

// OverdueMessage phrases the notification body, singular or plural.
func OverdueMessage(n int) string {
	if n == 1 {
		return "You have 1 overdue invoice."
	}
	return fmt.Sprintf("You have %d overdue invoices.", n)
}

var errTransient = errors.New("overdue check: transient failure")

// RunWithBackoff drives Run through bounded fibonacci backoff until the
// period ends in SUCCESS or FAILURE. The backoff spans scheduled re-runs,
// not work inside a single run.
func (w *Worker) RunWithBackoff(ctx context.Context, base time.Duration) error {
	if base <= 0 {
		base = 30 * time.Second
	}

	attempt := 0
	b := retry.WithMaxRetries(uint64(w.maxAttempts), retry.NewFibonacci(base))

	return retry.Do(ctx, b, func(ctx context.Context) error {
		switch w.Run(ctx, attempt) {
		case OutcomeRetry:
			attempt++
			return retry.RetryableError(errTransient)
		case OutcomeFailure:
			return errors.New("overdue check: attempts exhausted for this period")
		default:
			return nil
		}
	})
}
