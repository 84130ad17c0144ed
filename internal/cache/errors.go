package cache

import "errors"

var (
	// ErrNotFound is returned by Load when the slot has never been saved.
	ErrNotFound = errors.New("cache slot not found")
	// ErrCorrupt is returned by Load when the slot exists but cannot be decoded.
	ErrCorrupt = errors.New("cache slot is corrupt")
)
