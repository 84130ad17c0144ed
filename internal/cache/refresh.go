package cache

import (
	"context"
	"log/slog"
	"time"
)

// Refresh describes how to rebuild a slot from its remote source.
type Refresh[T any] struct {
	Name    string
	Version string
	MaxAge  time.Duration
	// Force skips the freshness check and always calls Fetch.
	Force bool
	Fetch func(ctx context.Context) (*Cache[T], error)
	// Logger receives refresh diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// Ensure returns the cache for r.Name, refreshing it when stale.
//
// A fresh slot is loaded from disk. A stale, forced, corrupt or missing slot
// is rebuilt with r.Fetch, then saved. When the fetch fails, the slot on
// disk is returned if it is still readable and carries r.Version, forced
// refreshes included; otherwise the fetch error is returned. A failed save
// is logged and does not fail the call.
func Ensure[T any](ctx context.Context, m *Manager, r Refresh[T]) (*Cache[T], error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if !r.Force && !m.ShouldUpdate(r.Name, r.MaxAge, r.Version) {
		c, err := Load[T](m, r.Name)
		if err == nil {
			logger.Debug("using cached data", "cache", r.Name, "entries", c.Len())
			return c, nil
		}
		logger.Debug("cache unreadable, refreshing", "cache", r.Name, "error", err)
	}

	logger.Debug("refreshing cache", "cache", r.Name, "forced", r.Force)
	fresh, err := r.Fetch(ctx)
	if err != nil {
		if stale, ok := fallback[T](m, r); ok {
			logger.Warn("refresh failed, using stale cache", "cache", r.Name, "entries", stale.Len(), "error", err)
			return stale, nil
		}
		return nil, err
	}

	if fresh.Version == "" {
		fresh.Version = r.Version
	}
	if err := Save(m, r.Name, fresh); err != nil {
		logger.Warn("could not save cache", "cache", r.Name, "error", err)
	}
	return fresh, nil
}

// fallback loads the persisted slot regardless of its age. A slot written
// under another version is not used.
func fallback[T any](m *Manager, r Refresh[T]) (*Cache[T], bool) {
	c, err := Load[T](m, r.Name)
	if err != nil {
		return nil, false
	}
	if r.Version != "" && !SameVersion(c.Version, r.Version) {
		return nil, false
	}
	return c, true
}
