package cmd

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	avcfg "airvend/internal/config"
	"airvend/internal/session"
	vendclient "airvend/pkg/clients/vend"
)

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	accentColor  = color.New(color.FgCyan, color.Bold)
)

// newSessionStore builds the session store over durable storage and restores
// any persisted session.
func newSessionStore() (*session.Store, error) {
	creds, err := avcfg.NewCredentialStore()
	if err != nil {
		return nil, fmt.Errorf("failed to open credential storage: %w", err)
	}
	store := session.NewStore(creds)
	if err := store.Restore(); err != nil {
		return nil, err
	}
	return store, nil
}

// requireSession is the guard for protected commands: the restored session
// must be authenticated, otherwise the command fails with login guidance.
func requireSession(store *session.Store) (session.Snapshot, error) {
	snap := store.Snapshot()
	if !snap.IsAuthenticated {
		return session.Snapshot{}, fmt.Errorf("not authenticated; run 'airvend login' first")
	}
	return snap, nil
}

// newPlatformClient builds an API client for the active context. The 401 hook
// is wired here: any authorization-denied response tears down the session and
// clears durable storage, independent of which call triggered it.
func newPlatformClient(store *session.Store, out io.Writer) (*vendclient.Client, error) {
	cfg, _, err := avcfg.Load()
	if err != nil {
		return nil, err
	}
	name := cfg.Current
	if contextName != "" {
		name = contextName
	}
	if _, err := avcfg.RequireContext(cfg, name); err != nil {
		return nil, err
	}
	cfg.Current = name
	baseURL := avcfg.ResolveBaseURL(cfg)

	cli := vendclient.NewClient(vendclient.Config{
		BaseURL: baseURL,
		Token:   store.Snapshot().Token,
		Timeout: 30 * time.Second,
		Logger:  log,
		OnUnauthorized: func() {
			if err := store.Logout(); err != nil && log != nil {
				log.WithError(err).Warn("Failed to clear session")
			}
			errorColor.Fprintln(out, "Session expired. Please login again.")
		},
	})
	return cli, nil
}

// mutationError maps a failed mutation to the message shown to the user: the
// server's message verbatim when present, otherwise the generic fallback.
func mutationError(err error, fallback string) error {
	var apiErr *vendclient.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return errors.New(apiErr.Message)
	}
	if log != nil {
		log.WithError(err).Debug("Request failed")
	}
	return errors.New(fallback)
}
