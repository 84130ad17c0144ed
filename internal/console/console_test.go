package console

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestReporter_PlainOutput(t *testing.T) {
	var out, errOut bytes.Buffer
	r := New(&out, &errOut)

	r.Success("Added license: %s", "MIT")
	r.Heading("Available licenses")
	r.Item("mit", "MIT License")
	r.Item("unlicense", "")
	r.Detail("SPDX ID", "MIT")
	r.Warn("unused parameter: %s", "email")
	r.Failure("bug: %s", "404 Not Found")

	assert.Equal(t, "✓ Added license: MIT\nAvailable licenses\n  mit - MIT License\n  unlicense\n  SPDX ID: MIT\n", out.String())
	assert.Equal(t, "! unused parameter: email\n✗ bug: 404 Not Found\n", errOut.String())
}

func TestReporter_ColorWrapsMarkers(t *testing.T) {
	var out bytes.Buffer
	r := New(&out, &out, WithColor(true))
	r.Success("done")
	assert.Contains(t, out.String(), "\x1b[")
	assert.Contains(t, out.String(), "done")
}

func TestHighlight_PlainWithoutColor(t *testing.T) {
	var out bytes.Buffer
	r := New(&out, &out)
	r.Highlight("name: Bug report", "yml")
	assert.Equal(t, "name: Bug report\n", out.String())
}

func TestHighlight_Color(t *testing.T) {
	var out bytes.Buffer
	r := New(&out, &out, WithColor(true))
	r.Highlight("name: Bug report\n", "yml")
	assert.Contains(t, out.String(), "Bug report")
	assert.Contains(t, out.String(), "\x1b[")
}

func TestIsTerminal_Buffer(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Popular", Title("popular"))
	assert.Equal(t, "Non Software", Title("non software"))
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinner_StopsGoroutine(t *testing.T) {
	var errOut syncBuffer
	r := New(&bytes.Buffer{}, &errOut, WithSpinner(true))

	s := r.Spinner("Fetching licenses")
	time.Sleep(3 * spinnerInterval / 2)
	s.Update("Fetching %d templates", 3)
	s.Stop()
	s.Stop()

	got := errOut.String()
	assert.Contains(t, got, "Fetching licenses")
	assert.True(t, strings.HasSuffix(got, "\r\033[K"))
}

func TestSpinner_NoopWhenDisabled(t *testing.T) {
	var errOut bytes.Buffer
	r := New(&bytes.Buffer{}, &errOut)

	s := r.Spinner("quiet")
	s.Stop()
	assert.Empty(t, errOut.String())

	var none *Spinner
	none.Stop()
}
