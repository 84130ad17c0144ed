package category

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rafaeljohn9/gh-templates/internal/cache"
	"github.com/rafaeljohn9/gh-templates/internal/sources"
	"github.com/rafaeljohn9/gh-templates/internal/wildcard"
)

// GitignoreSlot is the cache slot holding the gitignore catalog.
const GitignoreSlot = "gitignore"

const gitignoreExt = ".gitignore"

// GitignoreTemplate is one file of the github/gitignore repository.
type GitignoreTemplate struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Category string `json:"category"`
}

// gitignoreFolders maps repository folders to categories, in display order.
var gitignoreFolders = []struct {
	Folder   string
	Category string
}{
	{"", "popular"},
	{"Global", "global"},
	{"community", "community"},
}

func gitignoreKey(p string) string {
	return strings.ToLower(strings.TrimSuffix(p, gitignoreExt))
}

func (s *Service) gitignoreCatalog(ctx context.Context, force bool) (*cache.Cache[GitignoreTemplate], error) {
	return ensure(ctx, s, cache.Refresh[GitignoreTemplate]{
		Name:    GitignoreSlot,
		Version: catalogVersion,
		MaxAge:  s.settings.GitignoreCacheMaxAge,
		Force:   force,
		Fetch:   s.fetchGitignoreCatalog,
	}, "Updating gitignore cache")
}

func (s *Service) fetchGitignoreCatalog(ctx context.Context) (*cache.Cache[GitignoreTemplate], error) {
	folders := make([]string, len(gitignoreFolders))
	for i, f := range gitignoreFolders {
		folders[i] = f.Folder
	}

	results := runBatch(ctx, s.settings.Workers, folders, func(ctx context.Context, i int, folder string) ([]GitignoreTemplate, error) {
		url := strings.TrimRight(s.settings.GitignoreAPIURL, "/") + "/"
		if folder != "" {
			url += folder
		}
		entries, err := sources.FetchContents(ctx, s.fetcher, url)
		if err != nil {
			return nil, fmt.Errorf("listing gitignore templates in %q: %w", "/"+folder, err)
		}
		var out []GitignoreTemplate
		for _, e := range entries {
			if !e.IsFile() || !strings.HasSuffix(e.Name, gitignoreExt) {
				continue
			}
			p := e.Name
			if folder != "" {
				p = folder + "/" + e.Name
			}
			out = append(out, GitignoreTemplate{
				Name:     strings.TrimSuffix(e.Name, gitignoreExt),
				Path:     p,
				Category: gitignoreFolders[i].Category,
			})
		}
		return out, nil
	})

	c := cache.New[GitignoreTemplate](catalogVersion)
	for _, r := range results {
		if r.Err != nil {
			return nil, r.Err
		}
		for _, t := range r.Value {
			c.InsertWithMetadata(gitignoreKey(t.Path), t, map[string]string{
				"category": t.Category,
				"path":     t.Path,
			})
		}
	}
	return c, nil
}

// FindGitignore resolves name to a catalog entry. It tries the exact key,
// then the global/ and community/ folders, then a unique match on the file
// name alone.
func FindGitignore(c *cache.Cache[GitignoreTemplate], name string) (GitignoreTemplate, error) {
	key := gitignoreKey(strings.TrimSpace(name))
	for _, candidate := range []string{key, "global/" + key, "community/" + key} {
		if t, ok := c.Get(candidate); ok {
			return t, nil
		}
	}

	var matches []string
	for _, k := range c.Keys() {
		if path.Base(k) == key {
			matches = append(matches, k)
		}
	}
	switch len(matches) {
	case 1:
		t, _ := c.Get(matches[0])
		return t, nil
	case 0:
		return GitignoreTemplate{}, fmt.Errorf("%w: gitignore template %q", ErrNotFound, name)
	default:
		return GitignoreTemplate{}, fmt.Errorf("%w: gitignore template %q is ambiguous (%s)", ErrNotFound, name, joinNames(matches))
	}
}

func (s *Service) gitignoreURL(t GitignoreTemplate) string {
	return strings.TrimRight(s.settings.GitignoreRawURL, "/") + "/" + t.Path
}

// GitignoreListOptions selects the categories to list. With none selected
// the popular templates are listed.
type GitignoreListOptions struct {
	Popular     bool
	Global      bool
	Community   bool
	Search      string
	UpdateCache bool
}

func (o GitignoreListOptions) categories() map[string]bool {
	if !o.Popular && !o.Global && !o.Community {
		return map[string]bool{"popular": true}
	}
	return map[string]bool{"popular": o.Popular, "global": o.Global, "community": o.Community}
}

// GitignoreList prints the catalog grouped by category.
func (s *Service) GitignoreList(ctx context.Context, opts GitignoreListOptions) error {
	ctx = refreshing(ctx, opts.UpdateCache)
	c, err := s.gitignoreCatalog(ctx, opts.UpdateCache)
	if err != nil {
		return err
	}

	var pattern string
	if opts.Search != "" {
		pattern = searchPattern(opts.Search)
	}

	selected := opts.categories()
	groups := make(map[string][]GitignoreTemplate)
	total := 0
	for _, f := range gitignoreFolders {
		if !selected[f.Category] {
			continue
		}
		for _, item := range c.FilterByMetadata("category", f.Category) {
			if pattern != "" && !wildcard.Match(pattern, strings.ToLower(item.Data.Name)) {
				continue
			}
			groups[f.Category] = append(groups[f.Category], item.Data)
			total++
		}
	}

	if total == 0 {
		s.console.Info("No gitignore templates found.")
		return nil
	}

	s.console.Heading("Available gitignore templates:")
	for _, f := range gitignoreFolders {
		rows := groups[f.Category]
		if len(rows) == 0 {
			continue
		}
		sort.Slice(rows, func(i, j int) bool {
			return strings.ToLower(rows[i].Name) < strings.ToLower(rows[j].Name)
		})
		s.console.Info("")
		s.console.Heading(strings.ToUpper(f.Category) + ":")
		for _, t := range rows {
			s.console.Item(t.Name, t.Path)
		}
	}
	return nil
}

// GitignoreAdd merges the requested templates into a single .gitignore in
// req.Dir or at the repository root.
//
// With named templates nothing is written unless every template was
// fetched. With req.All the templates that were fetched are written and
// the rest are reported in a *BatchError.
func (s *Service) GitignoreAdd(ctx context.Context, req AddRequest) error {
	ctx = refreshing(ctx, req.UpdateCache)
	c, err := s.gitignoreCatalog(ctx, req.UpdateCache)
	if err != nil {
		return err
	}

	names := req.Names
	if req.All {
		names = c.Keys()
	} else if len(names) == 0 {
		return &MissingNamesError{Kind: "gitignore template", AllowAll: true}
	}

	dir := req.Dir
	if dir == "" {
		if dir, err = s.writer.RepoRoot(); err != nil {
			return err
		}
	}

	sp := s.console.Spinner(fmt.Sprintf("Downloading %d gitignore templates", len(names)))
	results := runBatch(ctx, s.settings.Workers, names, func(ctx context.Context, _ int, name string) (string, error) {
		t, err := FindGitignore(c, name)
		if err != nil {
			return "", err
		}
		return s.fetcher.FetchText(ctx, s.gitignoreURL(t))
	})
	sp.Stop()

	batch := batchErr("adding gitignore templates", results)
	if batch != nil && !req.All {
		return batch
	}

	var merged strings.Builder
	var added []string
	for _, r := range results {
		if r.Err != nil {
			s.console.Failure("%s: %v", r.Name, r.Err)
			continue
		}
		fmt.Fprintf(&merged, "# ===== %s%s =====\n%s\n\n", r.Name, gitignoreExt, r.Value)
		added = append(added, r.Name)
	}
	if len(added) == 0 {
		return batch
	}

	dest, err := s.writer.Write(filepath.Join(dir, gitignoreExt), merged.String(), req.Force)
	if err != nil {
		return err
	}
	if req.All {
		s.console.Success("Downloaded and merged all gitignore templates to %s", dest)
	} else {
		s.console.Success("Added gitignore templates: %s to %s", joinNames(added), dest)
	}
	return batch
}

// GitignorePreview prints gitignore templates without writing them.
func (s *Service) GitignorePreview(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return &MissingNamesError{Kind: "gitignore template"}
	}
	c, err := s.gitignoreCatalog(ctx, false)
	if err != nil {
		return err
	}
	for _, name := range names {
		t, err := FindGitignore(c, name)
		if err != nil {
			return err
		}
		sp := s.console.Spinner("Fetching gitignore template: " + t.Name)
		content, err := s.fetcher.FetchText(ctx, s.gitignoreURL(t))
		sp.Stop()
		if err != nil {
			return fmt.Errorf("gitignore template %q: %w", name, err)
		}
		if len(names) > 1 {
			s.console.Heading(t.Path)
		}
		s.console.Highlight(content, "gitignore")
	}
	return nil
}
