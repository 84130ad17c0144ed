package updater

import (
	"errors"
	"fmt"
	"time"

	"github.com/rafaeljohn9/gh-templates/internal/cache"
)

const (
	// CacheSlot is the cache slot holding the last version check.
	CacheSlot = "version-check"
	cacheKey  = "latest"
	// DefaultCacheMaxAge is the default maximum age for the version cache.
	DefaultCacheMaxAge = 24 * time.Hour
)

// VersionCache holds cached version check results.
type VersionCache struct {
	LatestVersion   string    `json:"latest_version"`
	CurrentVersion  string    `json:"current_version"`
	ReleaseURL      string    `json:"release_url,omitempty"`
	CheckedAt       time.Time `json:"checked_at"`
	UpdateAvailable bool      `json:"update_available"`
}

// LoadCache reads the last version check.
// Returns nil, nil if no check has been recorded yet.
func LoadCache(m *cache.Manager) (*VersionCache, error) {
	c, err := cache.Load[VersionCache](m, CacheSlot)
	if errors.Is(err, cache.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading version cache: %w", err)
	}
	vc, ok := c.Get(cacheKey)
	if !ok {
		return nil, nil
	}
	return &vc, nil
}

// SaveCache records a version check.
func SaveCache(m *cache.Manager, vc *VersionCache) error {
	c := cache.New[VersionCache]("1")
	c.Insert(cacheKey, *vc)
	if err := cache.Save(m, CacheSlot, c); err != nil {
		return fmt.Errorf("writing version cache: %w", err)
	}
	return nil
}

// IsCacheStale returns true if the cache is older than maxAge or nil.
func IsCacheStale(vc *VersionCache, maxAge time.Duration) bool {
	if vc == nil {
		return true
	}
	return time.Since(vc.CheckedAt) > maxAge
}
