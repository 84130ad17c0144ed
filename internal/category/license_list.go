package category

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rafaeljohn9/gh-templates/internal/sources"
	"github.com/rafaeljohn9/gh-templates/internal/wildcard"
)

var printer = message.NewPrinter(language.English)

// LicenseListOptions selects the license list view.
type LicenseListOptions struct {
	// Popular lists GitHub's featured licenses instead of the SPDX list.
	Popular bool
	// NonSoftware lists licenses suited to data, fonts and hardware.
	NonSoftware bool
	// Search is a wildcard pattern matched against license IDs and names.
	Search            string
	IncludeDeprecated bool
	OSIApproved       bool
	FSFLibre          bool
	UpdateCache       bool
}

type nonSoftwareGroup struct {
	Title string
	IDs   []string
	Note  string
}

var nonSoftwareGroups = []nonSoftwareGroup{
	{
		Title: "Data, media, etc.",
		IDs:   []string{"CC0-1.0", "CC-BY-4.0", "CC-BY-SA-4.0"},
		Note:  "Creative Commons licenses are for non-software material. Not recommended for software/hardware.",
	},
	{Title: "Fonts", IDs: []string{"OFL-1.1"}},
	{Title: "Hardware", IDs: []string{"CERN-OHL-P-2.0", "CERN-OHL-W-2.0", "CERN-OHL-S-2.0"}},
}

// searchPattern lower-cases p and appends * unless p already ends in a
// wildcard, so "apache" finds "apache-2.0".
func searchPattern(p string) string {
	p = strings.ToLower(p)
	if !strings.HasSuffix(p, "*") && !strings.HasSuffix(p, "?") {
		p += "*"
	}
	return p
}

func matchesLicense(pattern, id, name string) bool {
	return wildcard.Match(pattern, strings.ToLower(id)) || wildcard.Match(pattern, strings.ToLower(name))
}

// LicenseList prints licenses from the SPDX list or GitHub's popular set.
func (s *Service) LicenseList(ctx context.Context, opts LicenseListOptions) error {
	ctx = refreshing(ctx, opts.UpdateCache)
	switch {
	case opts.NonSoftware:
		return s.listNonSoftware(ctx, opts.UpdateCache)
	case opts.Popular:
		return s.listPopular(ctx, opts)
	default:
		return s.listSPDX(ctx, opts)
	}
}

func (s *Service) listPopular(ctx context.Context, opts LicenseListOptions) error {
	c, err := s.githubCatalog(ctx, opts.UpdateCache)
	if err != nil {
		return err
	}

	pattern := strings.ToLower(opts.Search)
	var rows []sources.GitHubLicense
	for _, item := range c.FilterByMetadata("category", "popular") {
		if pattern != "" && !matchesLicense(pattern, item.Data.Key, item.Data.Name) {
			continue
		}
		rows = append(rows, item.Data)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })

	if len(rows) == 0 {
		if opts.Search != "" {
			s.console.Info("No popular licenses found matching '%s'", opts.Search)
		} else {
			s.console.Info("No popular licenses found.")
		}
		return nil
	}
	if opts.Search != "" {
		s.console.Heading(printer.Sprintf("Popular licenses matching '%s' (%d found):", opts.Search, len(rows)))
	} else {
		s.console.Heading(printer.Sprintf("Popular licenses (%d found):", len(rows)))
	}
	for _, l := range rows {
		s.console.Item(l.Key, l.Name)
	}
	return nil
}

func (s *Service) listSPDX(ctx context.Context, opts LicenseListOptions) error {
	c, err := s.spdxCatalog(ctx, opts.UpdateCache)
	if err != nil {
		return err
	}

	var pattern string
	if opts.Search != "" {
		pattern = searchPattern(opts.Search)
	}

	var rows []sources.SPDXLicense
	for _, key := range c.Keys() {
		l, _ := c.Get(key)
		switch {
		case l.Deprecated && !opts.IncludeDeprecated:
			continue
		case opts.OSIApproved && !l.OSIApproved:
			continue
		case opts.FSFLibre && !l.FSFLibre:
			continue
		case pattern != "" && !matchesLicense(pattern, l.LicenseID, l.Name):
			continue
		}
		rows = append(rows, l)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].LicenseID < rows[j].LicenseID })

	if len(rows) == 0 {
		if opts.Search != "" {
			s.console.Info("No licenses found matching '%s'", opts.Search)
		} else {
			s.console.Info("No licenses found")
		}
		return nil
	}

	if opts.Search != "" {
		s.console.Heading(printer.Sprintf("Licenses matching '%s' (%d found):", opts.Search, len(rows)))
	} else {
		s.console.Heading(printer.Sprintf("Available SPDX licenses (%d found):", len(rows)))
	}
	for _, l := range rows {
		name := l.Name
		if l.Deprecated {
			name += " (deprecated)"
		}
		s.console.Item(l.LicenseID, name)
	}
	if !opts.IncludeDeprecated {
		s.console.Info("\nNote: deprecated licenses are hidden. Use --include-deprecated to show them.")
	}
	return nil
}

func (s *Service) listNonSoftware(ctx context.Context, force bool) error {
	c, err := s.spdxCatalog(ctx, force)
	if err != nil {
		return err
	}

	s.console.Heading("Non-Software Licenses:")
	for _, g := range nonSoftwareGroups {
		s.console.Info("")
		s.console.Heading(g.Title)
		for _, id := range g.IDs {
			if l, ok := c.Get(strings.ToLower(id)); ok {
				s.console.Item(l.LicenseID, l.Name)
			} else {
				s.console.Item(id, "(not found in SPDX cache)")
			}
		}
		if g.Note != "" {
			s.console.Info("    %s", g.Note)
		}
	}
	s.console.Info("\nFor more information, see: https://choosealicense.com/non-software/")
	return nil
}
