// Package console formats user-facing output: status lines, listings,
// highlighted previews and a stderr spinner for slow network calls. Color and
// the spinner are only enabled when the stream is a terminal and NO_COLOR is
// unset, so piped output stays plain.
package console
