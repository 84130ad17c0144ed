package category

import (
	"context"
	"log/slog"

	"github.com/rafaeljohn9/gh-templates/internal/cache"
	"github.com/rafaeljohn9/gh-templates/internal/config"
	"github.com/rafaeljohn9/gh-templates/internal/console"
	"github.com/rafaeljohn9/gh-templates/internal/placeholder"
	"github.com/rafaeljohn9/gh-templates/internal/platform"
	"github.com/rafaeljohn9/gh-templates/internal/remote"
)

// Fetcher retrieves remote documents. *remote.Fetcher satisfies it.
type Fetcher interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
	FetchText(ctx context.Context, url string) (string, error)
}

// Service runs category operations against the configured remotes.
type Service struct {
	settings config.Settings
	fetcher  Fetcher
	cache    *cache.Manager
	writer   *platform.Writer
	console  *console.Reporter
	logger   *slog.Logger
	prompter placeholder.Prompter
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the diagnostics logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPrompter sets the prompter used by interactive license adds.
func WithPrompter(p placeholder.Prompter) Option {
	return func(s *Service) { s.prompter = p }
}

// New creates a Service.
func New(settings config.Settings, f Fetcher, m *cache.Manager, w *platform.Writer, r *console.Reporter, opts ...Option) *Service {
	s := &Service{
		settings: settings,
		fetcher:  f,
		cache:    m,
		writer:   w,
		console:  r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Console returns the reporter the service prints to.
func (s *Service) Console() *console.Reporter { return s.console }

// AddRequest selects the templates to download and where to put them.
type AddRequest struct {
	Names []string
	// Dir replaces the default destination directory.
	Dir   string
	Force bool
	All   bool
	// Outputs renames the downloaded files, one per name.
	Outputs     []string
	UpdateCache bool
}

// ensure wraps cache.Ensure with the service logger. The spinner only runs
// while Ensure is actually fetching.
func ensure[T any](ctx context.Context, s *Service, r cache.Refresh[T], message string) (*cache.Cache[T], error) {
	r.Logger = s.logger
	fetch := r.Fetch
	r.Fetch = func(ctx context.Context) (*cache.Cache[T], error) {
		sp := s.console.Spinner(message)
		defer sp.Stop()
		return fetch(ctx)
	}
	return cache.Ensure(ctx, s.cache, r)
}

// refreshing marks ctx so raw bodies are downloaded again instead of being
// served from the response cache.
func refreshing(ctx context.Context, update bool) context.Context {
	if !update {
		return ctx
	}
	return remote.SkipResponseCache(ctx)
}
