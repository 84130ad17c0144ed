package updater

import (
	"context"
	"fmt"
	"io"

	"github.com/rafaeljohn9/gh-templates/internal/branding"
)

// CheckAndPrintBanner prints an update notice from the version cache when a
// newer release is known. It never blocks: a stale cache is refreshed in a
// background goroutine for the next invocation. The refresh stops when ctx
// is canceled; Wait blocks until it has returned.
func (u *Updater) CheckAndPrintBanner(ctx context.Context, w io.Writer) {
	vc, err := LoadCache(u.cache)
	if err != nil {
		u.logger.Debug("ignoring unreadable version cache", "error", err)
	}

	if vc != nil && vc.UpdateAvailable && vc.CurrentVersion == u.currentVersion {
		PrintUpdateBanner(w, vc.CurrentVersion, vc.LatestVersion, vc.ReleaseURL)
	}

	if IsCacheStale(vc, u.maxAge) || (vc != nil && vc.CurrentVersion != u.currentVersion) {
		u.wg.Add(1)
		go func() {
			defer u.wg.Done()
			if _, err := u.Check(ctx); err != nil {
				u.logger.Debug("background version check failed", "error", err)
			}
		}()
	}
}

// PrintUpdateBanner prints the update notification to w.
func PrintUpdateBanner(w io.Writer, current, latest, url string) {
	fmt.Fprintf(w, "\nUpdate available: %s -> %s\n", current, latest)
	if url == "" {
		url = fmt.Sprintf("https://github.com/%s/releases/latest", branding.GitHubRepo())
	}
	fmt.Fprintf(w, "    Download it from %s\n\n", url)
}
