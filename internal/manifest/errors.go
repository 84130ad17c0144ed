package manifest

import "errors"

var (
	// ErrInvalidPath is returned when a navigator URL does not end in manifest.yml.
	ErrInvalidPath = errors.New("invalid manifest path")
	// ErrParse is returned when a manifest yields no entries.
	ErrParse = errors.New("manifest parse error")
	// ErrNotFound is returned when the manifest URL answers with a non-2xx status.
	ErrNotFound = errors.New("manifest not found")
)
