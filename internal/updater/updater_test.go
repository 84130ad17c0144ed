package updater

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rafaeljohn9/gh-templates/internal/cache"
	"github.com/rafaeljohn9/gh-templates/internal/config"
	"github.com/rafaeljohn9/gh-templates/internal/remote"
)

const releaseJSON = `{"tag_name": "v1.4.0", "html_url": "https://example.com/releases/v1.4.0"}`

func newTestUpdater(t *testing.T, version string) (*Updater, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(releaseJSON))
	}))
	t.Cleanup(srv.Close)

	s := config.Defaults()
	s.Timeout = 5 * time.Second
	u := New(version, remote.New(s), srv.URL+"/releases/latest", cache.NewManager(t.TempDir()))
	return u, &hits
}

func TestCheck(t *testing.T) {
	u, _ := newTestUpdater(t, "v1.3.0")

	res, err := u.Check(context.Background())
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if !res.Available || res.Latest != "v1.4.0" {
		t.Errorf("Check = %+v, want v1.4.0 available", res)
	}

	vc, err := LoadCache(u.cache)
	if err != nil || vc == nil {
		t.Fatalf("LoadCache = %v, %v", vc, err)
	}
	if vc.LatestVersion != "v1.4.0" || !vc.UpdateAvailable {
		t.Errorf("cached %+v", vc)
	}
}

func TestCheck_DevBuild(t *testing.T) {
	u, _ := newTestUpdater(t, "dev")

	res, err := u.Check(context.Background())
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if res.Available {
		t.Error("dev builds should never report an update")
	}
}

func TestCheckAndPrintBanner(t *testing.T) {
	u, hits := newTestUpdater(t, "v1.3.0")
	ctx := context.Background()

	var buf bytes.Buffer
	u.CheckAndPrintBanner(ctx, &buf)
	u.Wait()
	if buf.Len() != 0 {
		t.Errorf("first run printed %q, want nothing", buf.String())
	}
	if atomic.LoadInt32(hits) != 1 {
		t.Fatalf("expected one background check, got %d", atomic.LoadInt32(hits))
	}

	u.CheckAndPrintBanner(ctx, &buf)
	u.Wait()
	out := buf.String()
	if !strings.Contains(out, "Update available: v1.3.0 -> v1.4.0") {
		t.Errorf("banner = %q", out)
	}
	if !strings.Contains(out, "https://example.com/releases/v1.4.0") {
		t.Errorf("banner missing release URL: %q", out)
	}
	if atomic.LoadInt32(hits) != 1 {
		t.Errorf("fresh cache should not be refreshed, got %d checks", atomic.LoadInt32(hits))
	}
}

func TestCheckAndPrintBanner_OtherVersionCached(t *testing.T) {
	u, hits := newTestUpdater(t, "v1.4.0")
	if err := SaveCache(u.cache, &VersionCache{
		LatestVersion:   "v1.4.0",
		CurrentVersion:  "v1.3.0",
		CheckedAt:       time.Now(),
		UpdateAvailable: true,
	}); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	u.CheckAndPrintBanner(context.Background(), &buf)
	u.Wait()
	if buf.Len() != 0 {
		t.Errorf("banner for another version: %q", buf.String())
	}
	if atomic.LoadInt32(hits) != 1 {
		t.Errorf("expected a recheck after upgrading, got %d", atomic.LoadInt32(hits))
	}
}
