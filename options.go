package piranha

import (
	"context"
	"log/slog"

	"github.com/hfz-r/piranha.core/hook"
)

// Option configures an App.
type Option func(*App) error

// Storer is the minimal store interface held by the App.
// It covers lifecycle operations only. The full composite interface
// (store.Store) is used in layers that don't create import cycles.
// Implementations satisfy store.Store which embeds all subsystem stores.
type Storer interface {
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

// App is the root object of the Piranha data layer. It owns the process-wide
// hook registry and the store lifecycle.
//
// Create one with New() and functional options, then use the engine package
// to wire typed repositories on top of it. Hooks must be registered during
// single-goroutine startup; after that the registry is read-only and safe
// for concurrent invocation.
type App struct {
	config Config
	logger *slog.Logger
	store  Storer
	hooks  *hook.Registry
}

// New creates a new App with the given options.
func New(opts ...Option) (*App, error) {
	a := &App{
		config: DefaultConfig(),
		logger: slog.Default(),
		hooks:  hook.NewRegistry(),
	}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Hooks returns the app's lifecycle hook registry.
func (a *App) Hooks() *hook.Registry { return a.hooks }

// Logger returns the app's logger.
func (a *App) Logger() *slog.Logger { return a.logger }

// Store returns the app's store.
func (a *App) Store() Storer { return a.store }

// Config returns a copy of the app's configuration.
func (a *App) Config() Config { return a.config }

// Migrate runs the store's schema migrations.
func (a *App) Migrate(ctx context.Context) error {
	if a.store == nil {
		return ErrNoStore
	}
	return a.store.Migrate(ctx)
}

// Close shuts down the app and releases the store.
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

// WithConfig sets the app configuration.
func WithConfig(cfg Config) Option {
	return func(a *App) error {
		a.config = cfg
		return nil
	}
}

// WithLogger sets the structured logger for the app.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) error {
		a.logger = l
		return nil
	}
}

// WithStore sets the persistence backend for the app.
// The store must implement Storer at minimum; typically it will be a
// store.Store which embeds all subsystem store interfaces.
func WithStore(s Storer) Option {
	return func(a *App) error {
		a.store = s
		return nil
	}
}
