// Package wildcard implements shell-style glob matching over whole strings.
// `*` matches any run of characters (including none) and `?` matches exactly
// one character. Matching is case-sensitive and rune-aware; callers that want
// case-insensitive matching lower-case both sides first.
package wildcard

// Match reports whether text matches pattern in its entirety.
func Match(pattern, text string) bool {
	p := []rune(pattern)
	s := []rune(text)

	// prev[j] reports whether p[:i] matches s[:j] for the previous row i.
	prev := make([]bool, len(s)+1)
	cur := make([]bool, len(s)+1)
	prev[0] = true

	for i := 1; i <= len(p); i++ {
		cur[0] = prev[0] && p[i-1] == '*'
		for j := 1; j <= len(s); j++ {
			switch p[i-1] {
			case '*':
				cur[j] = prev[j] || cur[j-1]
			case '?':
				cur[j] = prev[j-1]
			default:
				cur[j] = prev[j-1] && p[i-1] == s[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(s)]
}

// Filter returns the items matching pattern, preserving their input order.
func Filter(pattern string, items []string) []string {
	var out []string
	for _, item := range items {
		if Match(pattern, item) {
			out = append(out, item)
		}
	}
	return out
}
