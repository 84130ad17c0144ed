package updater

import (
	"context"
	"fmt"
	"time"

	"github.com/rafaeljohn9/gh-templates/internal/sources"
)

// CheckResult is the outcome of comparing the running version with the
// latest release.
type CheckResult struct {
	Current   string
	Latest    string
	URL       string
	Available bool
}

// CheckLatestVersion fetches the latest release.
func (u *Updater) CheckLatestVersion(ctx context.Context) (*sources.Release, error) {
	r, err := sources.FetchRelease(ctx, u.fetcher, u.releasesURL)
	if err != nil {
		return nil, fmt.Errorf("checking latest release: %w", err)
	}
	return r, nil
}

// Check fetches the latest release, records it in the version cache and
// reports whether it is newer than the running version. Development builds
// never report an update.
func (u *Updater) Check(ctx context.Context) (*CheckResult, error) {
	release, err := u.CheckLatestVersion(ctx)
	if err != nil {
		return nil, err
	}

	res := &CheckResult{Current: u.currentVersion, Latest: release.TagName, URL: release.HTMLURL}
	if IsRelease(u.currentVersion) {
		if res.Available, err = IsUpdateAvailable(u.currentVersion, release.TagName); err != nil {
			return nil, err
		}
	}

	vc := &VersionCache{
		LatestVersion:   res.Latest,
		CurrentVersion:  res.Current,
		ReleaseURL:      res.URL,
		CheckedAt:       time.Now(),
		UpdateAvailable: res.Available,
	}
	if err := SaveCache(u.cache, vc); err != nil {
		u.logger.Debug("could not save version check", "error", err)
	}
	return res, nil
}
