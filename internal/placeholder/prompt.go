package placeholder

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrInterrupted is returned when the user aborts an interactive prompt.
var ErrInterrupted = errors.New("prompt interrupted")

// LinePrompter reads one answer per line from a plain reader. It is used
// when stdin is not a terminal.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter returns a LinePrompter reading from r and writing prompts to w.
func NewLinePrompter(r io.Reader, w io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(r), out: w}
}

// Prompt asks for tok and returns the trimmed answer. End of input counts as
// an empty answer.
func (p *LinePrompter) Prompt(tok Token) (string, error) {
	fmt.Fprintf(p.out, "Enter value for %s: ", tok.Raw)
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// SurveyPrompter asks on the terminal with survey's line editor.
type SurveyPrompter struct {
	opts []survey.AskOpt
}

// NewSurveyPrompter returns a SurveyPrompter. opts are passed to every
// survey.AskOne call (tests use survey.WithStdio).
func NewSurveyPrompter(opts ...survey.AskOpt) *SurveyPrompter {
	return &SurveyPrompter{opts: opts}
}

// Prompt asks for tok. Ctrl-C maps to ErrInterrupted.
func (p *SurveyPrompter) Prompt(tok Token) (string, error) {
	var answer string
	prompt := &survey.Input{
		Message: fmt.Sprintf("Enter value for %s:", tok.Raw),
		Help:    "Leave empty to keep the placeholder in the file",
	}
	if err := survey.AskOne(prompt, &answer, p.opts...); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", ErrInterrupted
		}
		return "", err
	}
	return strings.TrimSpace(answer), nil
}
