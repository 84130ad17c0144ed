package category

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/rafaeljohn9/gh-templates/internal/manifest"
	"github.com/rafaeljohn9/gh-templates/internal/platform"
	"github.com/rafaeljohn9/gh-templates/internal/sources"
)

// templateKind describes one folder of the template repository.
type templateKind struct {
	kind    string
	plural  string
	folder  string
	ext     string
	destDir string
	// defaultName, when requested without --output, is written to
	// defaultPath instead of destDir.
	defaultName string
	defaultPath string
	// listFromManifest lists the folder through its manifest.yml instead
	// of the contents API.
	listFromManifest bool
}

var issueTemplates = templateKind{
	kind:    "issue template",
	plural:  "issue templates",
	folder:  "issue-templates",
	ext:     ".yml",
	destDir: filepath.Join(platform.ManagedDir, "ISSUE_TEMPLATE"),
}

var prTemplates = templateKind{
	kind:             "pull request template",
	plural:           "pull request templates",
	folder:           "pr-templates",
	ext:              ".md",
	destDir:          filepath.Join(platform.ManagedDir, "PULL_REQUEST_TEMPLATE"),
	defaultName:      "default",
	defaultPath:      "pull_request_template.md",
	listFromManifest: true,
}

func (k templateKind) name(arg string) string {
	return strings.TrimSuffix(arg, k.ext)
}

func (k templateKind) rawURL(raw, name string) string {
	return strings.TrimRight(raw, "/") + "/" + k.folder + "/" + name + k.ext
}

func (k templateKind) manifestURL(raw string) string {
	return strings.TrimRight(raw, "/") + "/" + k.folder + "/manifest.yml"
}

// dest returns where name is written. dir and output may be empty.
func (k templateKind) dest(name, dir, output string) string {
	base, file := k.destDir, name+k.ext
	switch {
	case output != "":
		file = output
		if path.Ext(file) == "" {
			file += k.ext
		}
	case k.defaultName != "" && name == k.defaultName:
		base, file = platform.ManagedDir, k.defaultPath
	}
	if dir != "" {
		base = dir
	}
	return filepath.Join(base, file)
}

func (k templateKind) location(dir string) string {
	if dir != "" {
		return dir
	}
	return k.destDir
}

// files returns the template file names (with extension) published for k.
func (s *Service) files(ctx context.Context, k templateKind) ([]string, error) {
	var names []string
	if k.listFromManifest {
		nav, err := manifest.New(k.manifestURL(s.settings.TemplatesRawURL), s.fetcher)
		if err != nil {
			return nil, err
		}
		entries, err := nav.ListEntries(ctx)
		if err != nil {
			return nil, err
		}
		names = manifest.Files(entries)
	} else {
		url := strings.TrimRight(s.settings.TemplatesAPIURL, "/") + "/" + k.folder
		entries, err := sources.FetchContents(ctx, s.fetcher, url)
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", k.plural, err)
		}
		for _, e := range entries {
			if e.IsFile() {
				names = append(names, e.Name)
			}
		}
	}

	out := names[:0]
	for _, n := range names {
		if path.Ext(n) == k.ext && n != "manifest.yml" {
			out = append(out, n)
		}
	}
	return out, nil
}

// allNames returns every template name of k from the folder manifest.
func (s *Service) allNames(ctx context.Context, k templateKind) ([]string, error) {
	nav, err := manifest.New(k.manifestURL(s.settings.TemplatesRawURL), s.fetcher)
	if err != nil {
		return nil, err
	}
	entries, err := nav.ListEntries(ctx)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, f := range manifest.Files(entries) {
		names = append(names, strings.TrimSuffix(f, path.Ext(f)))
	}
	return names, nil
}

func (s *Service) listTemplates(ctx context.Context, k templateKind) error {
	sp := s.console.Spinner("Fetching " + k.plural)
	files, err := s.files(ctx, k)
	if err != nil {
		sp.Stop()
		return err
	}

	results := runBatch(ctx, s.settings.Workers, files, func(ctx context.Context, _ int, file string) (string, error) {
		content, err := s.fetcher.FetchText(ctx, strings.TrimRight(s.settings.TemplatesRawURL, "/")+"/"+k.folder+"/"+file)
		if err != nil {
			return "", err
		}
		return describe(content, file), nil
	})
	sp.Stop()

	if len(results) == 0 {
		s.console.Info("No %s found.", k.plural)
		return nil
	}
	s.console.Heading(fmt.Sprintf("Available %s:", k.plural))
	for _, r := range results {
		if r.Err != nil {
			s.logger.Debug("no description", "template", r.Name, "error", r.Err)
		}
		s.console.Item(k.name(r.Name), r.Value)
	}
	return nil
}

func (s *Service) addTemplates(ctx context.Context, k templateKind, req AddRequest) error {
	ctx = refreshing(ctx, req.UpdateCache)
	names := make([]string, len(req.Names))
	for i, n := range req.Names {
		names[i] = k.name(n)
	}
	if req.All {
		all, err := s.allNames(ctx, k)
		if err != nil {
			return err
		}
		names = all
	} else if len(names) == 0 {
		return &MissingNamesError{Kind: k.kind, AllowAll: true}
	}

	outputs := req.Outputs
	if len(outputs) > 0 && len(outputs) != len(names) {
		return ErrOutputCount
	}

	sp := s.console.Spinner(fmt.Sprintf("Downloading %d %s", len(names), k.plural))
	results := runBatch(ctx, s.settings.Workers, names, func(ctx context.Context, i int, name string) (string, error) {
		content, err := s.fetcher.FetchText(ctx, k.rawURL(s.settings.TemplatesRawURL, name))
		if err != nil {
			return "", err
		}
		var output string
		if len(outputs) > 0 {
			output = outputs[i]
		}
		return s.writer.Write(k.dest(name, req.Dir, output), content, req.Force)
	})
	sp.Stop()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			if len(results) > 1 {
				s.console.Failure("%s: %v", r.Name, r.Err)
			}
			continue
		}
		s.console.Success("Added %s: %s to %s", k.kind, r.Name, r.Value)
	}
	if req.All && failed == 0 {
		s.console.Success("Downloaded all %s to %s", k.plural, k.location(req.Dir))
	}
	return batchErr("adding "+k.plural, results)
}

func (s *Service) previewTemplates(ctx context.Context, k templateKind, names []string) error {
	if len(names) == 0 {
		return &MissingNamesError{Kind: k.kind}
	}
	for _, arg := range names {
		name := k.name(arg)
		sp := s.console.Spinner("Fetching " + k.kind + ": " + name)
		content, err := s.fetcher.FetchText(ctx, k.rawURL(s.settings.TemplatesRawURL, name))
		sp.Stop()
		if err != nil {
			return fmt.Errorf("%s %q: %w", k.kind, name, err)
		}
		if len(names) > 1 {
			s.console.Heading(name + k.ext)
		}
		s.console.Highlight(content, k.ext)
	}
	return nil
}

// IssueList prints the published issue templates with their descriptions.
func (s *Service) IssueList(ctx context.Context) error {
	return s.listTemplates(ctx, issueTemplates)
}

// IssueAdd downloads issue templates into .github/ISSUE_TEMPLATE or req.Dir.
func (s *Service) IssueAdd(ctx context.Context, req AddRequest) error {
	return s.addTemplates(ctx, issueTemplates, req)
}

// IssuePreview prints issue templates without writing them.
func (s *Service) IssuePreview(ctx context.Context, names []string) error {
	return s.previewTemplates(ctx, issueTemplates, names)
}

// PRList prints the published pull request templates.
func (s *Service) PRList(ctx context.Context) error {
	return s.listTemplates(ctx, prTemplates)
}

// PRAdd downloads pull request templates. The "default" template becomes
// .github/pull_request_template.md.
func (s *Service) PRAdd(ctx context.Context, req AddRequest) error {
	return s.addTemplates(ctx, prTemplates, req)
}

// PRPreview prints pull request templates without writing them.
func (s *Service) PRPreview(ctx context.Context, names []string) error {
	return s.previewTemplates(ctx, prTemplates, names)
}
