package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/rafaeljohn9/gh-templates/internal/config"
)

// maxBodySize caps a single response; the largest documents fetched (the
// SPDX license list) are a few hundred KB.
const maxBodySize = 16 << 20

// ResponseCache stores raw text bodies by URL.
type ResponseCache interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte, ttl time.Duration) error
}

// Fetcher issues GET requests with the configured timeout and User-Agent.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	cache      ResponseCache
	cacheTTL   time.Duration
	logger     *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient sets a custom HTTP client (useful for testing). The client's
// own timeout is kept as-is.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		if c != nil {
			f.httpClient = c
		}
	}
}

// WithResponseCache makes FetchText reuse bodies fetched within ttl.
func WithResponseCache(c ResponseCache, ttl time.Duration) Option {
	return func(f *Fetcher) {
		f.cache = c
		f.cacheTTL = ttl
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(f *Fetcher) {
		if l != nil {
			f.logger = l
		}
	}
}

// New creates a Fetcher from the consolidated settings.
func New(s config.Settings, opts ...Option) *Fetcher {
	f := &Fetcher{
		httpClient: &http.Client{Timeout: s.Timeout},
		userAgent:  s.UserAgent,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchBytes returns the body of url.
func (f *Fetcher) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/vnd.github+json, application/json;q=0.9, */*;q=0.8")

	start := time.Now()
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	f.logger.Debug("fetched", "url", url, "status", resp.StatusCode, "elapsed", time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		status := resp.Status
		if status == "" {
			status = strconv.Itoa(resp.StatusCode) + " " + http.StatusText(resp.StatusCode)
		}
		return nil, &HTTPStatusError{URL: url, StatusCode: resp.StatusCode, Status: status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, &TransportError{URL: url, Err: fmt.Errorf("reading response body: %w", err)}
	}
	if len(body) > maxBodySize {
		return nil, &TransportError{URL: url, Err: fmt.Errorf("response body exceeds %d bytes", maxBodySize)}
	}
	return body, nil
}

type skipCacheKey struct{}

// SkipResponseCache returns a context under which FetchText always goes to
// the network. Fetched bodies are still written to the response cache.
func SkipResponseCache(ctx context.Context) context.Context {
	return context.WithValue(ctx, skipCacheKey{}, true)
}

func skipsResponseCache(ctx context.Context) bool {
	skip, _ := ctx.Value(skipCacheKey{}).(bool)
	return skip
}

// FetchText returns the body of url as a string. When a response cache is
// configured, a body fetched within its TTL is served from it unless ctx
// comes from SkipResponseCache.
func (f *Fetcher) FetchText(ctx context.Context, url string) (string, error) {
	if f.cache != nil && !skipsResponseCache(ctx) {
		if body, err := f.cache.Get(url); err == nil {
			f.logger.Debug("response cache hit", "url", url)
			return string(body), nil
		}
	}

	body, err := f.FetchBytes(ctx, url)
	if err != nil {
		return "", err
	}

	if f.cache != nil {
		if err := f.cache.Put(url, body, f.cacheTTL); err != nil {
			f.logger.Debug("response cache write failed", "url", url, "error", err)
		}
	}
	return string(body), nil
}

// FetchJSON decodes the JSON body of url into v.
func (f *Fetcher) FetchJSON(ctx context.Context, url string, v any) error {
	body, err := f.FetchBytes(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("parsing JSON from %s: %w", url, err)
	}
	return nil
}

// FetchToPath downloads url and writes it to path, replacing any existing
// file. The parent directory must exist.
func (f *Fetcher) FetchToPath(ctx context.Context, url, path string) error {
	body, err := f.FetchBytes(ctx, url)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, body, 0644); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("writing %s: parent directory does not exist", path)
		}
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
