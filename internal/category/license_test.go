package category

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafaeljohn9/gh-templates/internal/cache"
	"github.com/rafaeljohn9/gh-templates/internal/placeholder"
	"github.com/rafaeljohn9/gh-templates/internal/platform"
	"github.com/rafaeljohn9/gh-templates/internal/sources"
)

func TestLicenseAdd_CreateRefuseForce(t *testing.T) {
	f := newFixture(t, licenseRoutes())
	ctx := context.Background()
	req := LicenseAddRequest{IDs: []string{"mit"}, Dir: f.repo}

	require.NoError(t, f.svc.LicenseAdd(ctx, req))
	assert.Contains(t, f.read(t, "LICENSE.MIT"), "MIT License")

	err := f.svc.LicenseAdd(ctx, req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, platform.ErrAlreadyExists))
	assert.Contains(t, err.Error(), "already exists")

	req.Force = true
	req.Params = map[string]string{"year": "2024"}
	require.NoError(t, f.svc.LicenseAdd(ctx, req))
	assert.Contains(t, f.read(t, "LICENSE.MIT"), "Copyright (c) 2024 <copyright holders>")
}

func TestLicenseAdd_ReportsPlaceholders(t *testing.T) {
	f := newFixture(t, licenseRoutes())
	err := f.svc.LicenseAdd(context.Background(), LicenseAddRequest{
		IDs:    []string{"MIT"},
		Dir:    f.repo,
		Params: map[string]string{"Year": "2024", "copyright holders": "Ada", "email": "a@b.c"},
	})
	require.NoError(t, err)

	assert.Contains(t, f.read(t, "LICENSE.MIT"), "Copyright (c) 2024 Ada\n")
	assert.Contains(t, f.out.String(), "filled 2 of 2 placeholders")
	assert.Contains(t, f.errOut.String(), "unused parameter: email")
	assert.NotContains(t, f.errOut.String(), "unfilled")
}

type answers map[string]string

func (a answers) Prompt(tok placeholder.Token) (string, error) { return a[tok.Name], nil }

func TestLicenseAdd_Interactive(t *testing.T) {
	f := newFixture(t, licenseRoutes(), WithPrompter(answers{"copyright-holders": "Grace"}))
	err := f.svc.LicenseAdd(context.Background(), LicenseAddRequest{
		IDs:         []string{"mit"},
		Dir:         f.repo,
		Params:      map[string]string{"year": "1985"},
		Interactive: true,
	})
	require.NoError(t, err)
	assert.Contains(t, f.read(t, "LICENSE.MIT"), "Copyright (c) 1985 Grace")
}

func TestLicenseAdd_InteractiveWithoutPrompter(t *testing.T) {
	f := newFixture(t, licenseRoutes())
	err := f.svc.LicenseAdd(context.Background(), LicenseAddRequest{IDs: []string{"mit"}, Interactive: true})
	assert.ErrorIs(t, err, errNoPrompter)
}

func TestLicenseAdd_UnknownID(t *testing.T) {
	f := newFixture(t, licenseRoutes())
	err := f.svc.LicenseAdd(context.Background(), LicenseAddRequest{IDs: []string{"nope"}, Dir: f.repo})
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
}

func TestLicenseAdd_All(t *testing.T) {
	f := newFixture(t, licenseRoutes())
	require.NoError(t, f.svc.LicenseAdd(context.Background(), LicenseAddRequest{All: true, Dir: f.repo}))

	assert.FileExists(t, filepath.Join(f.repo, "LICENSE.MIT"))
	assert.FileExists(t, filepath.Join(f.repo, "LICENSE.APACHE-2.0"))
}

func TestLicenseAdd_DirectoryMissing(t *testing.T) {
	f := newFixture(t, licenseRoutes())
	err := f.svc.LicenseAdd(context.Background(), LicenseAddRequest{IDs: []string{"mit"}, Dir: filepath.Join(f.repo, "nope")})
	assert.True(t, errors.Is(err, platform.ErrDirectoryMissing), "got %v", err)
}

func TestSPDXCatalog_CachedBetweenCalls(t *testing.T) {
	f := newFixture(t, licenseRoutes())
	ctx := context.Background()

	c, err := f.svc.spdxCatalog(ctx, false)
	require.NoError(t, err)
	_, err = f.svc.spdxCatalog(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 1, f.remote.count("/spdx/licenses.json"))

	mit, ok := c.Get("mit")
	require.True(t, ok)
	assert.Equal(t, "MIT", mit.LicenseID)
	assert.Equal(t, map[string]string{"osi": "true", "fsf": "true", "deprecated": "false"}, c.Metadata("mit"))

	_, err = f.svc.spdxCatalog(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 2, f.remote.count("/spdx/licenses.json"))

	saved, err := cache.Load[sources.SPDXLicense](cache.NewManager(f.cacheDir), SPDXSlot)
	require.NoError(t, err)
	assert.Equal(t, 5, saved.Len())
}

func TestLicenseAdd_StaleCatalogWhenListUnreachable(t *testing.T) {
	f := newFixture(t, licenseRoutes())
	ctx := context.Background()

	_, err := f.svc.spdxCatalog(ctx, false)
	require.NoError(t, err)
	m := cache.NewManager(f.cacheDir)
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(m.Path(SPDXSlot), old, old))

	f.remote.mu.Lock()
	delete(f.remote.routes, "/spdx/licenses.json")
	f.remote.mu.Unlock()

	require.NoError(t, f.svc.LicenseAdd(ctx, LicenseAddRequest{IDs: []string{"mit"}, Dir: f.repo}))
	assert.Contains(t, f.read(t, "LICENSE.MIT"), "MIT License")
	assert.Equal(t, 2, f.remote.count("/spdx/licenses.json"))

	// an explicit refresh also degrades to the stale catalog
	f.out.Reset()
	require.NoError(t, f.svc.LicenseList(ctx, LicenseListOptions{Search: "mit", UpdateCache: true}))
	assert.Contains(t, f.out.String(), "MIT License")
}

func TestLicenseAdd_NoCatalogWhenListUnreachable(t *testing.T) {
	routes := licenseRoutes()
	delete(routes, "/spdx/licenses.json")
	f := newFixture(t, routes)

	err := f.svc.LicenseAdd(context.Background(), LicenseAddRequest{IDs: []string{"mit"}, Dir: f.repo})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestLicenseList_SPDX(t *testing.T) {
	f := newFixture(t, licenseRoutes())
	require.NoError(t, f.svc.LicenseList(context.Background(), LicenseListOptions{}))

	out := f.out.String()
	assert.True(t, strings.HasPrefix(out, "Available SPDX licenses (4 found):\n"), out)
	assert.Contains(t, out, "  MIT - MIT License\n")
	assert.NotContains(t, out, "GPL-2.0")
	assert.Contains(t, out, "deprecated licenses are hidden")
}

func TestLicenseList_Filters(t *testing.T) {
	tests := []struct {
		name string
		opts LicenseListOptions
		want []string
	}{
		{"search adds trailing star", LicenseListOptions{Search: "apache"}, []string{"Apache-2.0"}},
		{"search matches name", LicenseListOptions{Search: "*creative*"}, []string{"CC0-1.0"}},
		{"osi", LicenseListOptions{OSIApproved: true}, []string{"Apache-2.0", "MIT"}},
		{"fsf", LicenseListOptions{FSFLibre: true}, []string{"Apache-2.0", "CC0-1.0", "MIT"}},
		{"deprecated", LicenseListOptions{IncludeDeprecated: true, Search: "gpl"}, []string{"GPL-2.0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, licenseRoutes())
			require.NoError(t, f.svc.LicenseList(context.Background(), tt.opts))

			var got []string
			for _, line := range strings.Split(f.out.String(), "\n") {
				if id, _, ok := strings.Cut(strings.TrimPrefix(line, "  "), " - "); ok && strings.HasPrefix(line, "  ") {
					got = append(got, id)
				}
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLicenseList_NoMatch(t *testing.T) {
	f := newFixture(t, licenseRoutes())
	require.NoError(t, f.svc.LicenseList(context.Background(), LicenseListOptions{Search: "zzz"}))
	assert.Equal(t, "No licenses found matching 'zzz'\n", f.out.String())
}

func TestLicenseList_Popular(t *testing.T) {
	f := newFixture(t, licenseRoutes())
	ctx := context.Background()

	require.NoError(t, f.svc.LicenseList(ctx, LicenseListOptions{Popular: true}))
	assert.Equal(t,
		"Popular licenses (3 found):\n  apache-2.0 - Apache License 2.0\n  mit - MIT License\n  other - Other\n",
		f.out.String())

	f.out.Reset()
	require.NoError(t, f.svc.LicenseList(ctx, LicenseListOptions{Popular: true, Search: "M*"}))
	assert.Equal(t, "Popular licenses matching 'M*' (1 found):\n  mit - MIT License\n", f.out.String())
}

func TestLicenseList_NonSoftware(t *testing.T) {
	f := newFixture(t, licenseRoutes())
	require.NoError(t, f.svc.LicenseList(context.Background(), LicenseListOptions{NonSoftware: true}))

	out := f.out.String()
	assert.Contains(t, out, "Data, media, etc.\n  CC0-1.0 - Creative Commons Zero v1.0 Universal\n")
	assert.Contains(t, out, "  CC-BY-4.0 - (not found in SPDX cache)\n")
	assert.Contains(t, out, "Hardware\n")
	assert.Contains(t, out, "https://choosealicense.com/non-software/")
}

func TestLicensePreview_FullText(t *testing.T) {
	f := newFixture(t, licenseRoutes())
	require.NoError(t, f.svc.LicensePreview(context.Background(), "mit", PreviewOptions{}))

	out := f.out.String()
	assert.True(t, strings.HasPrefix(out, "License: MIT License (MIT)\n"), out)
	assert.Contains(t, out, "License Text:\n")
	assert.Contains(t, out, "Permission is hereby granted")
}

func TestLicensePreview_TextUnavailableDoesNotFail(t *testing.T) {
	f := newFixture(t, licenseRoutes())
	require.NoError(t, f.svc.LicensePreview(context.Background(), "beerware", PreviewOptions{}))
	assert.Contains(t, f.errOut.String(), "Could not fetch license text: HTTP 404")
}

func TestLicensePreview_Sections(t *testing.T) {
	f := newFixture(t, licenseRoutes())
	require.NoError(t, f.svc.LicensePreview(context.Background(), "MIT", PreviewOptions{Details: true}))

	out := f.out.String()
	assert.Contains(t, out, "Description:\nA short and simple permissive license.\n")
	assert.Contains(t, out, "Permissions:\n  ✓ Commercial use\n  ✓ Modify\n")
	assert.Contains(t, out, "Limitations:\n  ✗ Liability\n  ✗ Warranty\n")
	assert.Contains(t, out, "Conditions:\n  ! License and copyright notice\n")
	assert.Contains(t, out, "OSI Approved: ✓ Yes")
	assert.NotContains(t, out, "License Text:")
}

func TestLicensePreview_SPDXFallback(t *testing.T) {
	f := newFixture(t, licenseRoutes())
	require.NoError(t, f.svc.LicensePreview(context.Background(), "apache-2.0", PreviewOptions{Permissions: true}))
	assert.Contains(t, f.out.String(), "Permissions:\n  Not available from SPDX.\n")
}

func TestRuleLabel(t *testing.T) {
	assert.Equal(t, "Patent use", RuleLabel("patent-use"))
	assert.Equal(t, "network use disclose", RuleLabel("network-use-disclose"))
}
