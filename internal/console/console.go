package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/mattn/go-isatty"
	"github.com/mgutz/ansi"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// Reporter writes results to out and diagnostics to errOut.
type Reporter struct {
	out     io.Writer
	errOut  io.Writer
	color   bool
	spinner bool
	mu      sync.Mutex
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithColor forces color on or off.
func WithColor(on bool) Option {
	return func(r *Reporter) { r.color = on }
}

// WithSpinner forces the stderr spinner on or off.
func WithSpinner(on bool) Option {
	return func(r *Reporter) { r.spinner = on }
}

// New returns a Reporter. Color is enabled when out is a terminal and the
// spinner when errOut is one.
func New(out, errOut io.Writer, opts ...Option) *Reporter {
	r := &Reporter{
		out:     out,
		errOut:  errOut,
		color:   IsTerminal(out) && os.Getenv("NO_COLOR") == "",
		spinner: IsTerminal(errOut),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// IsTerminal reports whether w is a terminal file.
func IsTerminal(w any) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Out returns the result stream.
func (r *Reporter) Out() io.Writer { return r.out }

// Err returns the diagnostic stream.
func (r *Reporter) Err() io.Writer { return r.errOut }

func (r *Reporter) paint(s, style string) string {
	if !r.color {
		return s
	}
	return ansi.Color(s, style)
}

func (r *Reporter) printf(w io.Writer, format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(w, format, args...)
}

// Success prints a completed action.
func (r *Reporter) Success(format string, args ...any) {
	r.printf(r.out, "%s %s\n", r.paint("✓", "green+b"), fmt.Sprintf(format, args...))
}

// Info prints a plain line.
func (r *Reporter) Info(format string, args ...any) {
	r.printf(r.out, "%s\n", fmt.Sprintf(format, args...))
}

// Warn prints a non-fatal problem to the diagnostic stream.
func (r *Reporter) Warn(format string, args ...any) {
	r.printf(r.errOut, "%s %s\n", r.paint("!", "yellow+b"), fmt.Sprintf(format, args...))
}

// Failure prints a failed item to the diagnostic stream.
func (r *Reporter) Failure(format string, args ...any) {
	r.printf(r.errOut, "%s %s\n", r.paint("✗", "red+b"), fmt.Sprintf(format, args...))
}

// Heading prints a section title.
func (r *Reporter) Heading(title string) {
	r.printf(r.out, "%s\n", r.paint(title, "cyan+b"))
}

// Item prints one listing row. desc may be empty.
func (r *Reporter) Item(name, desc string) {
	if desc == "" {
		r.printf(r.out, "  %s\n", r.paint(name, "green"))
		return
	}
	r.printf(r.out, "  %s %s\n", r.paint(name, "green"), r.paint("- "+desc, "white+h"))
}

// Detail prints an indented "label: value" row.
func (r *Reporter) Detail(label, value string) {
	r.printf(r.out, "  %s %s\n", r.paint(label+":", "blue+b"), value)
}

// Highlight prints content with syntax highlighting chosen by lang (a file
// extension or chroma lexer name). Without color the content is printed
// unchanged.
func (r *Reporter) Highlight(content, lang string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if !r.color {
		io.WriteString(r.out, content)
		return
	}
	if err := quick.Highlight(r.out, content, lexerName(lang), "terminal256", "monokai"); err != nil {
		io.WriteString(r.out, content)
	}
}

func lexerName(lang string) string {
	switch strings.TrimPrefix(strings.ToLower(lang), ".") {
	case "yml", "yaml":
		return "yaml"
	case "md", "markdown":
		return "markdown"
	case "gitignore":
		return "ignore"
	case "", "txt", "text":
		return "plaintext"
	default:
		return lang
	}
}

// Title upper-cases the first letter of each word, e.g. "popular" → "Popular".
func Title(s string) string {
	return titleCaser.String(s)
}
