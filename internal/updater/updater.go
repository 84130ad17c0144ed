package updater

import (
	"log/slog"
	"sync"
	"time"

	"github.com/rafaeljohn9/gh-templates/internal/cache"
	"github.com/rafaeljohn9/gh-templates/internal/sources"
)

// Updater checks for newer releases of the running binary.
type Updater struct {
	currentVersion string
	fetcher        sources.BytesFetcher
	releasesURL    string
	cache          *cache.Manager
	maxAge         time.Duration
	logger         *slog.Logger
	wg             sync.WaitGroup
}

// Option configures an Updater.
type Option func(*Updater)

// WithMaxAge sets how long a version check stays fresh.
func WithMaxAge(d time.Duration) Option {
	return func(u *Updater) {
		if d > 0 {
			u.maxAge = d
		}
	}
}

// WithLogger sets the logger for background refresh diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(u *Updater) {
		if l != nil {
			u.logger = l
		}
	}
}

// New creates an Updater for currentVersion that reads the latest release
// from releasesURL and keeps its result in m.
func New(currentVersion string, f sources.BytesFetcher, releasesURL string, m *cache.Manager, opts ...Option) *Updater {
	u := &Updater{
		currentVersion: currentVersion,
		fetcher:        f,
		releasesURL:    releasesURL,
		cache:          m,
		maxAge:         DefaultCacheMaxAge,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// CurrentVersion returns the version this updater was created with.
func (u *Updater) CurrentVersion() string {
	return u.currentVersion
}

// Wait blocks until any background refresh has finished.
func (u *Updater) Wait() {
	u.wg.Wait()
}
