package cache

import (
	"sort"
	"time"
)

// Entry is a single cached value with its metadata.
type Entry[T any] struct {
	Data       T                 `json:"data"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	InsertedAt time.Time         `json:"inserted_at"`
}

// Cache is a versioned, keyed collection of entries. A key maps to at most
// one entry; inserting an existing key replaces it wholesale.
type Cache[T any] struct {
	Version string              `json:"version"`
	Entries map[string]Entry[T] `json:"entries"`
}

// Item is a key/value pair returned by metadata queries.
type Item[T any] struct {
	Key      string
	Data     T
	Metadata map[string]string
}

// New returns an empty cache tagged with version.
func New[T any](version string) *Cache[T] {
	return &Cache[T]{
		Version: version,
		Entries: make(map[string]Entry[T]),
	}
}

// Insert stores value under key with no metadata.
func (c *Cache[T]) Insert(key string, value T) {
	c.InsertWithMetadata(key, value, nil)
}

// InsertWithMetadata stores value under key, replacing any previous entry.
func (c *Cache[T]) InsertWithMetadata(key string, value T, metadata map[string]string) {
	if c.Entries == nil {
		c.Entries = make(map[string]Entry[T])
	}
	var md map[string]string
	if len(metadata) > 0 {
		md = make(map[string]string, len(metadata))
		for k, v := range metadata {
			md[k] = v
		}
	}
	c.Entries[key] = Entry[T]{
		Data:       value,
		Metadata:   md,
		InsertedAt: time.Now(),
	}
}

// Get returns the value stored under key. Keys are matched exactly.
func (c *Cache[T]) Get(key string) (T, bool) {
	e, ok := c.Entries[key]
	if !ok {
		var zero T
		return zero, false
	}
	return e.Data, true
}

// Metadata returns the metadata stored for key, or nil.
func (c *Cache[T]) Metadata(key string) map[string]string {
	return c.Entries[key].Metadata
}

// FilterByMetadata returns every entry whose metadata[field] equals value.
// The result is in no particular order.
func (c *Cache[T]) FilterByMetadata(field, value string) []Item[T] {
	var out []Item[T]
	for k, e := range c.Entries {
		if v, ok := e.Metadata[field]; ok && v == value {
			out = append(out, Item[T]{Key: k, Data: e.Data, Metadata: e.Metadata})
		}
	}
	return out
}

// Keys returns every key in sorted order.
func (c *Cache[T]) Keys() []string {
	keys := make([]string, 0, len(c.Entries))
	for k := range c.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of entries.
func (c *Cache[T]) Len() int {
	return len(c.Entries)
}
