package category

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rafaeljohn9/gh-templates/internal/cache"
	"github.com/rafaeljohn9/gh-templates/internal/console"
	"github.com/rafaeljohn9/gh-templates/internal/placeholder"
	"github.com/rafaeljohn9/gh-templates/internal/sources"
)

// Cache slot names and the layout version of the entries stored in them.
const (
	SPDXSlot       = "spdx_licenses"
	GitHubSlot     = "github_licenses"
	catalogVersion = "1.0.0"
)

// errNoPrompter is returned for interactive adds on a Service without a
// prompter.
var errNoPrompter = errors.New("interactive mode is not available")

// spdxCatalog returns the SPDX license list keyed by lower-case license ID.
func (s *Service) spdxCatalog(ctx context.Context, force bool) (*cache.Cache[sources.SPDXLicense], error) {
	return ensure(ctx, s, cache.Refresh[sources.SPDXLicense]{
		Name:    SPDXSlot,
		Version: catalogVersion,
		MaxAge:  s.settings.LicenseCacheMaxAge,
		Force:   force,
		Fetch: func(ctx context.Context) (*cache.Cache[sources.SPDXLicense], error) {
			list, err := sources.FetchSPDXList(ctx, s.fetcher, s.settings.SPDXListURL)
			if err != nil {
				return nil, fmt.Errorf("updating SPDX license list: %w", err)
			}
			c := cache.New[sources.SPDXLicense](catalogVersion)
			for _, l := range list.Licenses {
				c.InsertWithMetadata(strings.ToLower(l.LicenseID), l, map[string]string{
					"osi":        strconv.FormatBool(l.OSIApproved),
					"fsf":        strconv.FormatBool(l.FSFLibre),
					"deprecated": strconv.FormatBool(l.Deprecated),
				})
			}
			return c, nil
		},
	}, "Updating SPDX license cache")
}

// githubCatalog returns GitHub's popular licenses keyed by license key.
func (s *Service) githubCatalog(ctx context.Context, force bool) (*cache.Cache[sources.GitHubLicense], error) {
	return ensure(ctx, s, cache.Refresh[sources.GitHubLicense]{
		Name:    GitHubSlot,
		Version: catalogVersion,
		MaxAge:  s.settings.LicenseCacheMaxAge,
		Force:   force,
		Fetch: func(ctx context.Context) (*cache.Cache[sources.GitHubLicense], error) {
			list, err := sources.FetchGitHubLicenses(ctx, s.fetcher, s.settings.GitHubLicensesURL)
			if err != nil {
				return nil, fmt.Errorf("updating popular licenses: %w", err)
			}
			c := cache.New[sources.GitHubLicense](catalogVersion)
			for _, l := range list {
				c.InsertWithMetadata(strings.ToLower(l.Key), l, map[string]string{
					"category": "popular",
					"spdx":     l.SPDXID,
				})
			}
			return c, nil
		},
	}, "Updating popular license cache")
}

// lookupLicense finds id in the SPDX catalog, ignoring case.
func lookupLicense(c *cache.Cache[sources.SPDXLicense], id string) (sources.SPDXLicense, error) {
	l, ok := c.Get(strings.ToLower(strings.TrimSpace(id)))
	if !ok {
		return sources.SPDXLicense{}, fmt.Errorf("%w: license %q is not in the SPDX license list (try --update-cache)", ErrNotFound, id)
	}
	return l, nil
}

// LicenseFileName is the file a license is written to, e.g. LICENSE.MIT.
func LicenseFileName(id string) string {
	return "LICENSE." + strings.ToUpper(id)
}

// LicenseAddRequest selects licenses to write and how to fill their
// placeholders.
type LicenseAddRequest struct {
	IDs   []string
	Dir   string
	Force bool
	// All adds every popular license.
	All    bool
	Params map[string]string
	// Interactive prompts for placeholders that Params does not cover.
	Interactive bool
	UpdateCache bool
}

type licenseResult struct {
	Path   string
	Filled placeholder.Result
}

// LicenseAdd writes the SPDX text of each license as LICENSE.<ID> in
// req.Dir (the working directory by default), filling placeholders from
// req.Params and, in interactive mode, from the prompter.
func (s *Service) LicenseAdd(ctx context.Context, req LicenseAddRequest) error {
	ctx = refreshing(ctx, req.UpdateCache)
	ids := req.IDs
	if req.All {
		popular, err := s.githubCatalog(ctx, req.UpdateCache)
		if err != nil {
			return err
		}
		ids = nil
		for _, key := range popular.Keys() {
			l, _ := popular.Get(key)
			if l.SPDXID != "" && l.SPDXID != "NOASSERTION" {
				ids = append(ids, l.SPDXID)
			}
		}
	} else if len(ids) == 0 {
		return &MissingNamesError{Kind: "license", AllowAll: true}
	}

	opts := placeholder.Options{Params: req.Params}
	workers := s.settings.Workers
	if req.Interactive {
		if s.prompter == nil {
			return errNoPrompter
		}
		opts.Prompter = s.prompter
		workers = 1
	}

	catalog, err := s.spdxCatalog(ctx, req.UpdateCache)
	if err != nil {
		return err
	}

	var sp *console.Spinner
	if !req.Interactive {
		sp = s.console.Spinner(fmt.Sprintf("Downloading %d licenses", len(ids)))
	}
	results := runBatch(ctx, workers, ids, func(ctx context.Context, _ int, id string) (licenseResult, error) {
		l, err := lookupLicense(catalog, id)
		if err != nil {
			return licenseResult{}, err
		}
		detail, err := sources.FetchSPDXDetail(ctx, s.fetcher, s.settings.SPDXDetailsURL, l.LicenseID)
		if err != nil {
			return licenseResult{}, fmt.Errorf("fetching license text: %w", err)
		}
		filled, err := placeholder.Fill(detail.LicenseText, opts)
		if err != nil {
			return licenseResult{}, err
		}
		dest, err := s.writer.Write(filepath.Join(req.Dir, LicenseFileName(l.LicenseID)), filled.Text, req.Force)
		if err != nil {
			return licenseResult{}, err
		}
		return licenseResult{Path: dest, Filled: filled}, nil
	})
	sp.Stop()

	s.reportLicenses(results, len(req.Params))
	return batchErr("adding licenses", results)
}

func (s *Service) reportLicenses(results []outcome[licenseResult], params int) {
	unused := make(map[string]int)
	succeeded := 0
	for _, r := range results {
		if r.Err != nil {
			if len(results) > 1 {
				s.console.Failure("%s: %v", r.Name, r.Err)
			}
			continue
		}
		succeeded++
		f := r.Value.Filled
		s.console.Success("Added license %s to %s", r.Name, r.Value.Path)
		if len(f.Found) > 0 {
			s.console.Info("  filled %d of %d placeholders", len(f.Filled), len(f.Found))
		}
		if len(f.Unfilled) > 0 {
			s.console.Warn("%s: unfilled placeholders: %s", r.Name, joinNames(f.Unfilled))
		}
		for _, p := range f.UnusedParams {
			unused[p]++
		}
	}

	if params == 0 || succeeded == 0 {
		return
	}
	var keys []string
	for p, n := range unused {
		if n == succeeded {
			keys = append(keys, p)
		}
	}
	sort.Strings(keys)
	for _, p := range keys {
		s.console.Warn("unused parameter: %s", p)
	}
}
