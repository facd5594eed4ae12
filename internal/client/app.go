// Package client wires the invoice-tracker client: local mirror, remote
// client, repository façade, and the background sync and overdue-check
// loops. UI surfaces sit on top of the repository's streams; none of them
// live here.
package client

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client/config"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client/extract"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client/imagecache"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client/models"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client/notifier"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client/remote"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client/repository"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client/store"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/logging"
)

// App owns the client's long-running pieces.
type App struct {
	cfg       *config.Config
	log       logging.Logger
	store     *store.Store
	client    remote.Client
	repo      *repository.Repository
	images    *imagecache.Cache
	extractor extract.Extractor

	auth   models.AuthContext
	signed bool
}

// NewApp opens the local mirror and builds the repository stack.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	st, err := store.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("opening local store: %w", err)
	}

	images, err := imagecache.New(cfg.ImageCacheDir)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("opening image cache: %w", err)
	}

	rc := remote.NewHTTPClient(cfg.ServerBaseURL)
	repo := repository.New(rc, st, log)

	return &App{
		cfg:       cfg,
		log:       log,
		store:     st,
		client:    rc,
		repo:      repo,
		images:    images,
		extractor: extract.Disabled{},
	}, nil
}

// Repository exposes the façade to the embedding UI layer.
func (a *App) Repository() *repository.Repository { return a.repo }

// SetExtractor swaps in a real scan extractor; the default never guesses.
func (a *App) SetExtractor(e extract.Extractor) { a.extractor = e }

// FetchScan loads an invoice scan, downloading through the image cache so
// repeated views of the same blob cost one download despite each signed URL
// carrying a fresh token.
func (a *App) FetchScan(ctx context.Context, path string) ([]byte, error) {
	if !a.signed {
		return nil, fmt.Errorf("not signed in")
	}
	signedURL, err := a.repo.GetPublicURL(ctx, a.auth, path)
	if err != nil {
		return nil, err
	}
	return a.images.Fetch(ctx, signedURL)
}

// ExtractGuess runs the scan extractor over raw image bytes to pre-fill the
// invoice form. Failure only costs the user some typing.
func (a *App) ExtractGuess(ctx context.Context, image []byte) (*extract.Guess, error) {
	return a.extractor.Extract(ctx, image)
}

// SignIn authenticates against the remote service and remembers the session.
func (a *App) SignIn(ctx context.Context, email, password string) error {
	sess, err := a.client.Login(ctx, remote.Credentials{Email: email, Password: password})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	a.auth = models.AuthContext{UserID: sess.UserID, AccessToken: sess.AccessToken}
	a.signed = true
	return nil
}

// Session reports the current auth context, if signed in.
func (a *App) Session() (models.AuthContext, bool) {
	return a.auth, a.signed
}

// Run performs an initial sync and then drives the periodic sync and
// overdue-check loops until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if !a.signed {
		return fmt.Errorf("not signed in")
	}

	if err := a.repo.SyncAllUserData(ctx, a.auth); err != nil {
		a.log.Warn(ctx, "initial sync failed, continuing on cached data", "error", err)
	}

	worker := notifier.NewWorker(a.repo, stderrSink{}, a.Session, a.log, a.cfg.NotifyMaxAttempts)

	syncTicker := time.NewTicker(a.cfg.SyncInterval)
	defer syncTicker.Stop()
	overdueTicker := time.NewTicker(a.cfg.OverdueCheckInterval)
	defer overdueTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-syncTicker.C:
			if err := a.repo.SyncAllUserData(ctx, a.auth); err != nil {
				a.log.Warn(ctx, "periodic sync failed", "error", err)
			}
		case <-overdueTicker.C:
			if err := worker.RunWithBackoff(ctx, a.cfg.NotifyBackoffBase); err != nil {
				a.log.Warn(ctx, "overdue check gave up for this period", "error", err)
			}
		}
	}
}

// Close releases the client's resources.
func (a *App) Close() error {
	_ = a.client.Close()
	return a.store.Close()
}

// stderrSink is the headless notification sink: it prints to stderr. GUI
// builds replace it with the platform notifier.
type stderrSink struct{}

func (stderrSink) Notify(ctx context.Context, key, title, body string) error {
	_, err := fmt.Fprintf(os.Stderr, "[%s] %s: %s\n", key, title, body)
	return err
}
