package placeholder

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"year", "year"},
		{"  Full Name ", "full-name"},
		{"FULLNAME", "fullname"},
		{"name of\tcopyright   owner", "name-of-copyright-owner"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func TestScan_DistinctInDiscoveryOrder(t *testing.T) {
	tokens := Scan("Copyright <year> [Full Name]. Again [YEAR] and [full name]. Empty [].")

	require.Len(t, tokens, 3)
	assert.Equal(t, Token{Raw: "<year>", Name: "year"}, tokens[0])
	assert.Equal(t, Token{Raw: "[Full Name]", Name: "full-name"}, tokens[1])
	assert.Equal(t, Token{Raw: "[]", Name: ""}, tokens[2])
}

func TestScan_FirstCloseEndsToken(t *testing.T) {
	tokens := Scan("[a [b] c]")
	require.Len(t, tokens, 1)
	assert.Equal(t, "[a [b]", tokens[0].Raw)
}

func TestFill_PartialParams(t *testing.T) {
	res, err := Fill("Copyright [year] [fullname]", Options{
		Params: map[string]string{"year": "2024"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Copyright 2024 [fullname]", res.Text)
	assert.Equal(t, []string{"year", "fullname"}, res.Found)
	assert.Equal(t, []string{"year"}, res.Filled)
	assert.Equal(t, []string{"fullname"}, res.Unfilled)
	assert.Empty(t, res.UnusedParams)
}

func TestFill_MatchesAcrossSpellings(t *testing.T) {
	res, err := Fill("<Full Name> wrote this. Signed, [full name].", Options{
		Params: map[string]string{"Full-Name": "Ada Lovelace"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace wrote this. Signed, Ada Lovelace.", res.Text)
	assert.Empty(t, res.Unfilled)
}

func TestFill_NoTokens(t *testing.T) {
	text := "Plain text without any placeholders."
	res, err := Fill(text, Options{Params: map[string]string{"year": "2024", "owner": "me"}})
	require.NoError(t, err)

	assert.Equal(t, text, res.Text)
	assert.Empty(t, res.Found)
	assert.Equal(t, []string{"owner", "year"}, res.UnusedParams)
}

func TestFill_SinglePass(t *testing.T) {
	res, err := Fill("[a] [b]", Options{Params: map[string]string{"a": "[b]", "b": "B"}})
	require.NoError(t, err)
	assert.Equal(t, "[b] B", res.Text)
}

func TestFill_Idempotent(t *testing.T) {
	params := map[string]string{"year": "2024"}
	first, err := Fill("Copyright [year] [fullname]", Options{Params: params})
	require.NoError(t, err)

	second, err := Fill(first.Text, Options{Params: params})
	require.NoError(t, err)
	assert.Equal(t, first.Text, second.Text)
}

type scriptedPrompter struct {
	answers map[string]string
	asked   []string
}

func (p *scriptedPrompter) Prompt(tok Token) (string, error) {
	p.asked = append(p.asked, tok.Name)
	return p.answers[tok.Name], nil
}

func TestFill_PromptsOnlyForMissing(t *testing.T) {
	p := &scriptedPrompter{answers: map[string]string{"fullname": "Grace Hopper"}}
	res, err := Fill("[year] [fullname] [email]", Options{
		Params:   map[string]string{"year": "1952"},
		Prompter: p,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"fullname", "email"}, p.asked)
	assert.Equal(t, "1952 Grace Hopper [email]", res.Text)
	assert.Equal(t, []string{"email"}, res.Unfilled)
	assert.Equal(t, []string{"fullname", "year"}, res.Filled)
}

type failingPrompter struct{}

func (failingPrompter) Prompt(Token) (string, error) { return "", ErrInterrupted }

func TestFill_PromptError(t *testing.T) {
	_, err := Fill("[x]", Options{Prompter: failingPrompter{}})
	assert.True(t, errors.Is(err, ErrInterrupted))
}

func TestLinePrompter(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader("  Jane Doe \n"), &out)

	got, err := p.Prompt(Token{Raw: "[fullname]", Name: "fullname"})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", got)
	assert.Contains(t, out.String(), "Enter value for [fullname]")

	got, err = p.Prompt(Token{Raw: "[year]", Name: "year"})
	require.NoError(t, err)
	assert.Equal(t, "", got, "EOF is an empty answer")
}

func TestParseParams(t *testing.T) {
	params, err := ParseParams([]string{"year=2024", "fullname=Jane Doe", "expr=a=b"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"year":     "2024",
		"fullname": "Jane Doe",
		"expr":     "a=b",
	}, params)

	_, err = ParseParams([]string{"novalue"})
	assert.Error(t, err)
	_, err = ParseParams([]string{"=x"})
	assert.Error(t, err)
}
