package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"
)

// BytesFetcher is the subset of remote.Fetcher used here.
type BytesFetcher interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// TextFetcher is the subset of remote.Fetcher used for text documents.
type TextFetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

func fetchChecked(ctx context.Context, f BytesFetcher, url string, schema Schema, v any) error {
	data, err := f.FetchBytes(ctx, url)
	if err != nil {
		return err
	}
	if err := check(schema, data); err != nil {
		return fmt.Errorf("%s: %w", url, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidResponse, url, err)
	}
	return nil
}

// FetchSPDXList downloads the SPDX license list.
func FetchSPDXList(ctx context.Context, f BytesFetcher, url string) (*SPDXLicenseList, error) {
	var list SPDXLicenseList
	if err := fetchChecked(ctx, f, url, SchemaSPDXList, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// SPDXDetailURL returns the details document URL for an SPDX license ID.
func SPDXDetailURL(baseURL, id string) string {
	return strings.TrimRight(baseURL, "/") + "/" + id + ".json"
}

// FetchSPDXDetail downloads the details document (including license text)
// for id. id must use the canonical SPDX casing, e.g. "MIT" or "Apache-2.0".
func FetchSPDXDetail(ctx context.Context, f BytesFetcher, baseURL, id string) (*SPDXLicenseDetail, error) {
	var d SPDXLicenseDetail
	if err := fetchChecked(ctx, f, SPDXDetailURL(baseURL, id), SchemaSPDXDetail, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// FetchGitHubLicenses downloads GitHub's list of commonly used licenses.
func FetchGitHubLicenses(ctx context.Context, f BytesFetcher, url string) ([]GitHubLicense, error) {
	var list []GitHubLicense
	if err := fetchChecked(ctx, f, url, SchemaGitHubLicenses, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// FetchContents downloads a GitHub repository contents listing.
func FetchContents(ctx context.Context, f BytesFetcher, url string) ([]ContentEntry, error) {
	var entries []ContentEntry
	if err := fetchChecked(ctx, f, url, SchemaGitHubContents, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// FetchRelease downloads a GitHub release document.
func FetchRelease(ctx context.Context, f BytesFetcher, url string) (*Release, error) {
	var r Release
	if err := fetchChecked(ctx, f, url, SchemaGitHubRelease, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// FetchLicenseMeta downloads a choosealicense.com license file and returns
// its front matter and body. key is the lower-case license key, e.g. "mit".
func FetchLicenseMeta(ctx context.Context, f TextFetcher, baseURL, key string) (*LicenseMeta, string, error) {
	url := strings.TrimRight(baseURL, "/") + "/" + strings.ToLower(key) + ".txt"
	text, err := f.FetchText(ctx, url)
	if err != nil {
		return nil, "", err
	}
	meta, body, err := ParseLicenseDocument(text)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", url, err)
	}
	return meta, body, nil
}

// ParseLicenseDocument splits a `---` delimited YAML front matter block
// from the body that follows it.
func ParseLicenseDocument(text string) (*LicenseMeta, string, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	rest, ok := strings.CutPrefix(text, "---\n")
	if !ok {
		return nil, "", fmt.Errorf("%w: missing front matter", ErrInvalidResponse)
	}
	front, body, ok := strings.Cut(rest, "\n---")
	if !ok {
		return nil, "", fmt.Errorf("%w: unterminated front matter", ErrInvalidResponse)
	}

	var meta LicenseMeta
	if err := yaml.Unmarshal([]byte(front), &meta); err != nil {
		return nil, "", fmt.Errorf("%w: front matter: %v", ErrInvalidResponse, err)
	}

	body = strings.TrimPrefix(body, "\n")
	return &meta, strings.TrimLeft(body, "\n"), nil
}
