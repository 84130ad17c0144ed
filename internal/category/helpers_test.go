package category

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/require"

	"github.com/rafaeljohn9/gh-templates/internal/cache"
	"github.com/rafaeljohn9/gh-templates/internal/config"
	"github.com/rafaeljohn9/gh-templates/internal/console"
	"github.com/rafaeljohn9/gh-templates/internal/platform"
	"github.com/rafaeljohn9/gh-templates/internal/remote"
)

// fakeRemote serves fixed bodies by request path and counts requests.
type fakeRemote struct {
	*httptest.Server
	mu     sync.Mutex
	routes map[string]string
	hits   map[string]int
}

func newFakeRemote(t *testing.T, routes map[string]string) *fakeRemote {
	t.Helper()
	f := &fakeRemote{routes: routes, hits: make(map[string]int)}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.hits[r.URL.Path]++
		body, ok := f.routes[r.URL.Path]
		f.mu.Unlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeRemote) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

type fixture struct {
	remote   *fakeRemote
	svc      *Service
	out      *bytes.Buffer
	errOut   *bytes.Buffer
	repo     string
	cacheDir string
}

func settingsFor(base string) config.Settings {
	return config.Settings{
		TemplatesRawURL:      base + "/raw/templates",
		TemplatesAPIURL:      base + "/api/templates",
		GitignoreAPIURL:      base + "/gitignore/contents",
		GitignoreRawURL:      base + "/gitignore/raw",
		GitHubLicensesURL:    base + "/licenses",
		SPDXListURL:          base + "/spdx/licenses.json",
		SPDXDetailsURL:       base + "/spdx/details",
		ChooseALicenseURL:    base + "/cal",
		UserAgent:            "gh-templates-test",
		Timeout:              5 * time.Second,
		LicenseCacheMaxAge:   time.Hour,
		GitignoreCacheMaxAge: time.Hour,
		Workers:              4,
	}
}

// newFixture builds a Service against a fake remote, working inside a
// fresh git repository.
func newFixture(t *testing.T, routes map[string]string, opts ...Option) *fixture {
	t.Helper()
	fr := newFakeRemote(t, routes)

	repo := t.TempDir()
	_, err := git.PlainInit(repo, false)
	require.NoError(t, err)
	repo, err = filepath.EvalSymlinks(repo)
	require.NoError(t, err)

	cacheDir := filepath.Join(t.TempDir(), "cache")
	settings := settingsFor(fr.URL)
	var out, errOut bytes.Buffer
	svc := New(
		settings,
		remote.New(settings),
		cache.NewManager(cacheDir),
		platform.NewWriter(repo),
		console.New(&out, &errOut),
		opts...,
	)
	return &fixture{remote: fr, svc: svc, out: &out, errOut: &errOut, repo: repo, cacheDir: cacheDir}
}

func (f *fixture) read(t *testing.T, rel string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(f.repo, rel))
	require.NoError(t, err)
	return string(b)
}

const spdxListJSON = `{
  "licenseListVersion": "3.24",
  "licenses": [
    {"licenseId": "MIT", "name": "MIT License", "detailsUrl": "https://spdx.org/licenses/MIT.json", "isOsiApproved": true, "isFsfLibre": true, "isDeprecatedLicenseId": false},
    {"licenseId": "Apache-2.0", "name": "Apache License 2.0", "isOsiApproved": true, "isFsfLibre": true, "isDeprecatedLicenseId": false},
    {"licenseId": "GPL-2.0", "name": "GNU General Public License v2.0 only", "isOsiApproved": true, "isDeprecatedLicenseId": true},
    {"licenseId": "CC0-1.0", "name": "Creative Commons Zero v1.0 Universal", "isOsiApproved": false, "isFsfLibre": true, "isDeprecatedLicenseId": false},
    {"licenseId": "Beerware", "name": "Beerware License", "isOsiApproved": false, "isDeprecatedLicenseId": false}
  ]
}`

const mitDetailJSON = `{
  "licenseId": "MIT",
  "name": "MIT License",
  "licenseText": "MIT License\n\nCopyright (c) <year> <copyright holders>\n\nPermission is hereby granted, free of charge.\n"
}`

const githubLicensesJSON = `[
  {"key": "mit", "name": "MIT License", "spdx_id": "MIT"},
  {"key": "apache-2.0", "name": "Apache License 2.0", "spdx_id": "Apache-2.0"},
  {"key": "other", "name": "Other", "spdx_id": "NOASSERTION"}
]`

func licenseRoutes() map[string]string {
	routes := make(map[string]string)
	routes["/spdx/licenses.json"] = spdxListJSON
	routes["/spdx/details/MIT.json"] = mitDetailJSON
	routes["/spdx/details/Apache-2.0.json"] = `{"licenseId": "Apache-2.0", "name": "Apache License 2.0", "licenseText": "Apache License\nVersion 2.0\n"}`
	routes["/licenses"] = githubLicensesJSON
	routes["/cal/mit.txt"] = "---\ntitle: MIT License\nspdx-id: MIT\ndescription: A short and simple permissive license.\n" +
		"permissions:\n  - commercial-use\n  - modifications\nconditions:\n  - include-copyright\n" +
		"limitations:\n  - liability\n  - warranty\n---\n\nMIT License\n"
	return routes
}
