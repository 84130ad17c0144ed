package category

import (
	"path"
	"strings"
)

// ExtractComment returns the comment text found in line, using the comment
// syntax of the file extension ext (with or without the leading dot).
// Unknown extensions have no comments.
func ExtractComment(line, ext string) (string, bool) {
	switch strings.TrimPrefix(strings.ToLower(ext), ".") {
	case "rs", "c", "cpp", "js", "ts", "java", "go":
		if text, ok := between(line, "/*", "*/"); ok {
			return text, true
		}
		if _, rest, ok := strings.Cut(line, "//"); ok {
			return strings.TrimSpace(rest), true
		}
	case "yml", "yaml", "py", "sh", "rb":
		if _, rest, ok := strings.Cut(line, "#"); ok {
			return strings.TrimSpace(rest), true
		}
	case "md", "html":
		if text, ok := between(line, "<!--", "-->"); ok {
			return text, true
		}
	}
	return "", false
}

func between(s, open, close string) (string, bool) {
	start := strings.Index(s, open)
	if start < 0 {
		return "", false
	}
	end := strings.Index(s[start+len(open):], close)
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(s[start+len(open) : start+len(open)+end]), true
}

// describe returns the comment on the first line of content.
func describe(content, name string) string {
	first, _, _ := strings.Cut(content, "\n")
	text, _ := ExtractComment(strings.TrimRight(first, "\r"), path.Ext(name))
	return text
}
