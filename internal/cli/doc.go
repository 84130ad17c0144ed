// Package cli defines the Cobra command tree for gh-templates. Each category
// (issue, pr, license, gitignore) registers add, list and preview
// subcommands; the top-level add, list and preview commands dispatch to the
// same operations. Commands only parse flags and delegate to internal/category.
package cli
