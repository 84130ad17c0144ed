package manifest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rafaeljohn9/gh-templates/internal/remote"
)

const manifestFile = "manifest.yml"

// metadataKeys are top-level manifest fields that describe the manifest
// itself rather than a template.
var metadataKeys = map[string]bool{
	"type": true,
}

// TextFetcher is the subset of remote.Fetcher the navigator needs.
type TextFetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// FileEntry is one listed template file or directory.
type FileEntry struct {
	Name        string
	IsDirectory bool
	FullURL     string
}

// Navigator reads a single manifest.yml and resolves its entries against
// the manifest's parent URL.
type Navigator struct {
	url     string
	baseURL string
	fetcher TextFetcher
}

// New validates url and returns a Navigator for it.
func New(url string, fetcher TextFetcher) (*Navigator, error) {
	url = strings.TrimRight(url, "/")
	if !strings.HasSuffix(url, manifestFile) {
		return nil, fmt.Errorf("%w: %s: URL must point to a %s file", ErrInvalidPath, url, manifestFile)
	}
	base := strings.TrimRight(strings.TrimSuffix(url, manifestFile), "/")
	return &Navigator{url: url, baseURL: base, fetcher: fetcher}, nil
}

// URL returns the manifest URL.
func (n *Navigator) URL() string { return n.url }

// BaseURL returns the directory URL entries resolve against.
func (n *Navigator) BaseURL() string { return n.baseURL }

// FetchManifest downloads and parses the manifest.
func (n *Navigator) FetchManifest(ctx context.Context) (map[string]string, error) {
	content, err := n.fetcher.FetchText(ctx, n.url)
	if err != nil {
		var se *remote.HTTPStatusError
		if errors.As(err, &se) {
			return nil, fmt.Errorf("%w at %s (%s)", ErrNotFound, n.url, se.Status)
		}
		return nil, fmt.Errorf("fetching manifest: %w", err)
	}
	return Parse(content)
}

// ListEntries returns the manifest's entries, directories first, each group
// sorted by name.
func (n *Navigator) ListEntries(ctx context.Context) ([]FileEntry, error) {
	m, err := n.FetchManifest(ctx)
	if err != nil {
		return nil, err
	}
	return Entries(m, n.baseURL), nil
}

// Entries converts a parsed manifest into sorted FileEntry values.
func Entries(m map[string]string, baseURL string) []FileEntry {
	entries := make([]FileEntry, 0, len(m))
	for key, value := range m {
		if metadataKeys[key] {
			continue
		}
		isDir := strings.HasSuffix(key, "/") || strings.HasSuffix(value, "/")
		name := strings.TrimRight(key, "/")
		entries = append(entries, FileEntry{
			Name:        name,
			IsDirectory: isDir,
			FullURL:     baseURL + "/" + name,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDirectory != entries[j].IsDirectory {
			return entries[i].IsDirectory
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// Files returns the names of the non-directory entries in sorted order.
func Files(entries []FileEntry) []string {
	var names []string
	for _, e := range entries {
		if !e.IsDirectory {
			names = append(names, e.Name)
		}
	}
	return names
}
