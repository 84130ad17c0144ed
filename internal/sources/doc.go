// Package sources defines the typed documents fetched from GitHub, the SPDX
// license list and choosealicense.com. Every JSON response is checked
// against an embedded JSON Schema before it is decoded, so a changed or
// truncated upstream format fails at the fetch boundary with
// ErrInvalidResponse instead of surfacing as empty fields later.
package sources
