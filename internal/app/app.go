package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"bookreviews/internal/events"
	"bookreviews/pkg/store"
)

// Config wires required dependencies for the application core.
type Config struct {
	Store     store.Store
	Sessions  store.SessionStore
	Publisher events.Publisher
}

// App is the application core. Every operation that requires authentication
// takes the resolved caller as an explicit argument; identity is never read
// from ambient state.
type App struct {
	store     store.Store
	sessions  store.SessionStore
	publisher events.Publisher
}

// New constructs the application core.
func New(cfg Config) (*App, error) {
	if cfg.Store == nil {
		return nil, errors.New("store is required")
	}
	if cfg.Sessions == nil {
		return nil, errors.New("session store is required")
	}
	return &App{
		store:     cfg.Store,
		sessions:  cfg.Sessions,
		publisher: cfg.Publisher,
	}, nil
}

// publishReview emits a review event when a publisher is configured.
// Failures are logged and never surfaced to the caller.
func (a *App) publishReview(event events.ReviewEvent) {
	if a.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := a.publisher.PublishReview(ctx, event); err != nil {
		slog.Warn("publish review event failed", "type", event.Type, "review_id", event.ReviewID, "err", err)
	}
}
