package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rafaeljohn9/gh-templates/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings() config.Settings {
	return config.Settings{UserAgent: "gh-templates-fetcher", Timeout: 5 * time.Second}
}

func TestFetchText_SendsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("MIT License"))
	}))
	defer srv.Close()

	f := New(testSettings())
	body, err := f.FetchText(context.Background(), srv.URL+"/mit.txt")
	require.NoError(t, err)
	assert.Equal(t, "MIT License", body)
	assert.Equal(t, "gh-templates-fetcher", gotUA)
}

func TestFetch_HTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := New(testSettings())
	_, err := f.FetchText(context.Background(), srv.URL+"/missing")

	var se *HTTPStatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Contains(t, err.Error(), "404 Not Found")
	assert.True(t, IsNotFound(err))
}

func TestFetch_RateLimitHint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := New(testSettings()).FetchBytes(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
	assert.False(t, IsNotFound(err))
}

func TestFetch_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(testSettings()).FetchText(context.Background(), url)
	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, url, te.URL)
}

func TestFetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	s := testSettings()
	s.Timeout = 50 * time.Millisecond
	_, err := New(s).FetchText(context.Background(), srv.URL)

	var te *TransportError
	assert.True(t, errors.As(err, &te))
}

func TestFetchJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"licenseId":"MIT","name":"MIT License"}`))
	}))
	defer srv.Close()

	var v struct {
		ID   string `json:"licenseId"`
		Name string `json:"name"`
	}
	require.NoError(t, New(testSettings()).FetchJSON(context.Background(), srv.URL, &v))
	assert.Equal(t, "MIT", v.ID)
	assert.Equal(t, "MIT License", v.Name)
}

func TestFetchJSON_Malformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	var v map[string]any
	err := New(testSettings()).FetchJSON(context.Background(), srv.URL, &v)
	assert.ErrorContains(t, err, "parsing JSON")
}

func TestFetchToPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("*.log\n"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, ".gitignore")
	require.NoError(t, New(testSettings()).FetchToPath(context.Background(), srv.URL, dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "*.log\n", string(data))

	err = New(testSettings()).FetchToPath(context.Background(), srv.URL, filepath.Join(dir, "nope", "x"))
	assert.ErrorContains(t, err, "parent directory does not exist")
}

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memCache) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, errors.New("miss")
	}
	return v, nil
}

func (m *memCache) Put(key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func TestFetchText_ResponseCache(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte("name: Bug report"))
	}))
	defer srv.Close()

	f := New(testSettings(), WithResponseCache(&memCache{data: map[string][]byte{}}, time.Hour))
	for i := 0; i < 3; i++ {
		body, err := f.FetchText(context.Background(), srv.URL+"/bug.yml")
		require.NoError(t, err)
		assert.Equal(t, "name: Bug report", body)
	}
	assert.Equal(t, 1, hits)
}

func TestFetchText_SkipResponseCache(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		fmt.Fprintf(w, "body %d", hits)
	}))
	defer srv.Close()

	f := New(testSettings(), WithResponseCache(&memCache{data: map[string][]byte{}}, time.Hour))
	ctx := context.Background()

	body, err := f.FetchText(ctx, srv.URL+"/bug.yml")
	require.NoError(t, err)
	assert.Equal(t, "body 1", body)

	body, err = f.FetchText(SkipResponseCache(ctx), srv.URL+"/bug.yml")
	require.NoError(t, err)
	assert.Equal(t, "body 2", body)

	// the refetched body replaced the cached one
	body, err = f.FetchText(ctx, srv.URL+"/bug.yml")
	require.NoError(t, err)
	assert.Equal(t, "body 2", body)
	assert.Equal(t, 2, hits)
}
