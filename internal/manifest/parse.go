package manifest

import (
	"bufio"
	"fmt"
	"strings"
)

const templatesSection = "templates"

// Parse reads manifest content into a flat map.
//
// Top-level `key: value` pairs are kept as-is (quotes trimmed). Inside the
// `templates:` section, `name: dir/` becomes the directory key "name/",
// `name: file.yml` becomes the file key "name", `name:` with no value opens
// a subsection whose `- item` entries become "name/item", and bare `- item`
// entries become file keys. Blank lines and `#` comments are skipped.
func Parse(content string) (map[string]string, error) {
	m := make(map[string]string)

	var (
		section       string
		subsection    string
		sectionIndent int
	)

	sc := bufio.NewScanner(strings.NewReader(content))
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))

		if item, ok := strings.CutPrefix(trimmed, "- "); ok {
			name := unquote(strings.TrimSpace(item))
			if name == "" {
				continue
			}
			if subsection != "" {
				name = subsection + "/" + name
			}
			m[name] = ""
			continue
		}

		key, value, ok := strings.Cut(trimmed, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if indent == 0 {
			subsection = ""
			if key == templatesSection {
				section = key
				sectionIndent = indent
				continue
			}
			section = ""
			if value != "" {
				m[key] = unquote(value)
			}
			continue
		}

		if section != templatesSection || indent <= sectionIndent {
			continue
		}

		value = unquote(value)
		switch {
		case strings.HasSuffix(value, "/"):
			subsection = ""
			m[key+"/"] = value
		case value == "":
			subsection = key
		default:
			subsection = ""
			m[key] = ""
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	if len(m) == 0 {
		return nil, fmt.Errorf("%w: no valid entries found in manifest", ErrParse)
	}
	return m, nil
}

func unquote(s string) string {
	return strings.Trim(s, `"'`)
}
