package placeholder

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// tokenPattern matches a bracketed or angle-bracketed run. A run ends at the
// first closing character, so nested brackets are not supported.
var tokenPattern = regexp.MustCompile(`\[[^\]]*\]|<[^>]*>`)

// Token is a placeholder occurrence.
type Token struct {
	// Raw is the token as written, including its delimiters.
	Raw string
	// Name is the normalized identity used for matching.
	Name string
}

// Prompter supplies a value for a token that no parameter covered. An empty
// answer leaves the token in place.
type Prompter interface {
	Prompt(tok Token) (string, error)
}

// Options controls how tokens are resolved.
type Options struct {
	Params   map[string]string
	Prompter Prompter
}

// Result reports what a Fill call did.
type Result struct {
	Text string
	// Found lists the distinct token names in the order they first appear.
	Found []string
	// Filled lists the names that received a value, sorted.
	Filled []string
	// Unfilled lists the names left in place, sorted.
	Unfilled []string
	// UnusedParams lists supplied parameter keys that matched no token, sorted.
	UnusedParams []string
}

// Normalize trims s, lower-cases it and joins whitespace-separated words
// with a single hyphen.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}

func tokenName(raw string) string {
	return Normalize(raw[1 : len(raw)-1])
}

// Scan returns the distinct tokens in text in discovery order. When the same
// name is written several ways, the first spelling is kept.
func Scan(text string) []Token {
	var tokens []Token
	seen := make(map[string]bool)
	for _, raw := range tokenPattern.FindAllString(text, -1) {
		name := tokenName(raw)
		if seen[name] {
			continue
		}
		seen[name] = true
		tokens = append(tokens, Token{Raw: raw, Name: name})
	}
	return tokens
}

// Fill resolves every token in text and rewrites it in a single pass, so a
// substituted value is never scanned again.
func Fill(text string, opts Options) (Result, error) {
	params, keysByName := normalizeParams(opts.Params)

	tokens := Scan(text)
	values := make(map[string]string, len(tokens))
	used := make(map[string]bool)
	res := Result{Found: make([]string, 0, len(tokens))}

	for _, tok := range tokens {
		res.Found = append(res.Found, tok.Name)

		if v, ok := params[tok.Name]; ok {
			values[tok.Name] = v
			used[tok.Name] = true
			res.Filled = append(res.Filled, tok.Name)
			continue
		}

		if opts.Prompter != nil {
			answer, err := opts.Prompter.Prompt(tok)
			if err != nil {
				return Result{}, fmt.Errorf("prompting for %s: %w", tok.Raw, err)
			}
			if answer != "" {
				values[tok.Name] = answer
				res.Filled = append(res.Filled, tok.Name)
				continue
			}
		}

		res.Unfilled = append(res.Unfilled, tok.Name)
	}

	res.Text = tokenPattern.ReplaceAllStringFunc(text, func(raw string) string {
		if v, ok := values[tokenName(raw)]; ok {
			return v
		}
		return raw
	})

	for name, keys := range keysByName {
		if !used[name] {
			res.UnusedParams = append(res.UnusedParams, keys...)
		}
	}

	sort.Strings(res.Filled)
	sort.Strings(res.Unfilled)
	sort.Strings(res.UnusedParams)
	return res, nil
}

// normalizeParams keys params by normalized name. When several keys collapse
// to the same name, the lexically last key wins.
func normalizeParams(in map[string]string) (map[string]string, map[string][]string) {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]string, len(in))
	byName := make(map[string][]string, len(in))
	for _, k := range keys {
		name := Normalize(k)
		out[name] = in[k]
		byName[name] = append(byName[name], k)
	}
	return out, byName
}

// ParseParams turns "key=value" arguments into a parameter map. The value
// may itself contain '='.
func ParseParams(args []string) (map[string]string, error) {
	params := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid parameter %q: expected key=value", arg)
		}
		params[strings.TrimSpace(key)] = value
	}
	return params, nil
}
