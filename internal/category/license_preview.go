package category

import (
	"context"
	"fmt"
	"strings"

	"github.com/rafaeljohn9/gh-templates/internal/sources"
)

// PreviewOptions selects the license sections to show. With no section
// selected the full license text is printed.
type PreviewOptions struct {
	Description bool
	Permissions bool
	Limitations bool
	Conditions  bool
	// Details shows every section plus the SPDX metadata.
	Details     bool
	UpdateCache bool
}

func (o PreviewOptions) anySection() bool {
	return o.Description || o.Permissions || o.Limitations || o.Conditions || o.Details
}

var ruleLabels = map[string]string{
	"commercial-use":    "Commercial use",
	"modifications":     "Modify",
	"distribution":      "Distribute",
	"patent-use":        "Patent use",
	"private-use":       "Private use",
	"liability":         "Liability",
	"warranty":          "Warranty",
	"trademark-use":     "Trademark use",
	"include-copyright": "License and copyright notice",
	"document-changes":  "State changes",
	"disclose-source":   "Disclose source",
	"same-license":      "Same license",
}

// RuleLabel turns a choosealicense.com rule key into readable text.
func RuleLabel(key string) string {
	if label, ok := ruleLabels[key]; ok {
		return label
	}
	return strings.ReplaceAll(key, "-", " ")
}

// LicensePreview prints a license, or the selected sections of its
// metadata, without writing anything.
func (s *Service) LicensePreview(ctx context.Context, id string, opts PreviewOptions) error {
	ctx = refreshing(ctx, opts.UpdateCache)
	if strings.TrimSpace(id) == "" {
		return &MissingNamesError{Kind: "license"}
	}
	catalog, err := s.spdxCatalog(ctx, opts.UpdateCache)
	if err != nil {
		return err
	}

	spdx, found := catalog.Get(strings.ToLower(strings.TrimSpace(id)))
	licenseID, name := spdx.LicenseID, spdx.Name
	if !found {
		licenseID, name = strings.TrimSpace(id), strings.TrimSpace(id)
	}
	s.console.Heading(fmt.Sprintf("License: %s (%s)", name, strings.ToUpper(id)))
	s.console.Info("")

	if !opts.anySection() {
		s.showLicenseText(ctx, licenseID)
		return nil
	}

	var spdxMeta *sources.SPDXLicense
	if found {
		spdxMeta = &spdx
	}
	meta, _, err := sources.FetchLicenseMeta(ctx, s.fetcher, s.settings.ChooseALicenseURL, id)
	if err != nil {
		s.logger.Debug("no choosealicense.com metadata", "license", id, "error", err)
		meta = nil
	}

	if opts.Description || opts.Details {
		s.console.Heading("Description:")
		switch {
		case meta != nil && meta.Description != "":
			s.console.Info("%s", strings.TrimSpace(meta.Description))
		case meta != nil:
			s.console.Info("  No description available from ChooseALicense.")
		case spdxMeta != nil && spdxMeta.DetailsURL != "":
			s.console.Info("  See SPDX details: %s", spdxMeta.DetailsURL)
		default:
			s.console.Info("  No description available.")
		}
		s.console.Info("")
	}

	section := func(title, marker string, rules func(*sources.LicenseMeta) []string) {
		s.console.Heading(title)
		switch {
		case meta != nil && len(rules(meta)) > 0:
			for _, r := range rules(meta) {
				s.console.Info("  %s %s", marker, RuleLabel(r))
			}
		case meta != nil:
			s.console.Info("  Not available from ChooseALicense.")
		case spdxMeta != nil:
			s.console.Info("  Not available from SPDX.")
			if spdxMeta.DetailsURL != "" {
				s.console.Info("  See SPDX details: %s", spdxMeta.DetailsURL)
			}
		default:
			s.console.Info("  Not available.")
		}
		s.console.Info("")
	}
	if opts.Permissions || opts.Details {
		section("Permissions:", "✓", func(m *sources.LicenseMeta) []string { return m.Permissions })
	}
	if opts.Limitations || opts.Details {
		section("Limitations:", "✗", func(m *sources.LicenseMeta) []string { return m.Limitations })
	}
	if opts.Conditions || opts.Details {
		section("Conditions:", "!", func(m *sources.LicenseMeta) []string { return m.Conditions })
	}

	if opts.Details && spdxMeta != nil {
		s.console.Heading("SPDX Metadata:")
		s.console.Detail("License ID", spdxMeta.LicenseID)
		s.console.Detail("OSI Approved", yesNo(spdxMeta.OSIApproved))
		s.console.Detail("FSF Libre", yesNo(spdxMeta.FSFLibre))
		if spdxMeta.Deprecated {
			s.console.Detail("Status", "DEPRECATED")
			if spdxMeta.DetailsURL != "" {
				s.console.Detail("See details", spdxMeta.DetailsURL)
			}
		}
		s.console.Info("")
	}
	return nil
}

func (s *Service) showLicenseText(ctx context.Context, licenseID string) {
	rule := strings.Repeat("─", 80)
	s.console.Heading("License Text:")
	s.console.Info("%s", rule)
	defer s.console.Info("%s", rule)

	sp := s.console.Spinner("Fetching license text")
	detail, err := sources.FetchSPDXDetail(ctx, s.fetcher, s.settings.SPDXDetailsURL, licenseID)
	sp.Stop()
	if err != nil {
		s.console.Warn("Could not fetch license text: %v", err)
		s.console.Info("This may not be a valid SPDX license ID or the license text may not be available.")
		s.console.Info("Try using --update-cache to refresh the license database.")
		return
	}
	if detail.LicenseText == "" {
		s.console.Warn("License text not found.")
		return
	}
	s.console.Info("%s", strings.TrimRight(detail.LicenseText, "\n"))
}

func yesNo(b bool) string {
	if b {
		return "✓ Yes"
	}
	return "✗ No"
}
