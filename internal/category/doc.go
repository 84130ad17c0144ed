// Package category implements the add, list and preview operations for each
// template domain: issue templates, pull request templates, licenses and
// .gitignore files.
//
// Every operation follows the same shape: resolve the requested names,
// consult or refresh a cache slot where a catalog is involved, fetch the
// content, optionally transform it, and write it with overwrite protection.
// Downloading several items runs on a bounded worker pool; results are
// reported in input order and failures are collected into a *BatchError.
package category
