// Package respcache keeps raw response bodies in a bbolt file so repeated
// invocations within a short window reuse them instead of refetching.
package respcache

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	defaultBucket      = "responses"
	defaultOpenTimeout = time.Second
	// expiryLen is the size of the big-endian expiry prefix on every value.
	expiryLen = 8
)

// ErrNotFound is returned by Get when no body is stored under the key.
var ErrNotFound = errors.New("respcache: not found")

// ErrExpired is returned by Get when the stored body outlived its TTL. The
// entry stays on disk until it is overwritten or purged.
var ErrExpired = errors.New("respcache: expired")

// Options configures Open. The zero value is usable.
type Options struct {
	// Bucket names the bbolt bucket holding the entries. Defaults to
	// "responses".
	Bucket string
	// DefaultTTL applies when Put is given a non-positive ttl. Zero means
	// such entries never expire.
	DefaultTTL time.Duration
	// OpenTimeout bounds the wait for the file lock held by another
	// process. Defaults to one second.
	OpenTimeout time.Duration
}

// Store is a bbolt-backed body cache keyed by URL. It is safe for
// concurrent use; only one process can hold the file at a time.
type Store struct {
	db     *bolt.DB
	bucket []byte
	ttl    time.Duration
}

// Open opens the store at path, creating the file and bucket if needed.
func Open(path string, opts Options) (*Store, error) {
	if opts.Bucket == "" {
		opts.Bucket = defaultBucket
	}
	if opts.OpenTimeout <= 0 {
		opts.OpenTimeout = defaultOpenTimeout
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: opts.OpenTimeout})
	if err != nil {
		return nil, fmt.Errorf("opening response cache %s: %w", path, err)
	}
	s := &Store{db: db, bucket: []byte(opts.Bucket), ttl: opts.DefaultTTL}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(s.bucket)
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating bucket %q: %w", opts.Bucket, err)
	}
	return s, nil
}

// Close releases the file. Closing a nil Store is a no-op.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// encode prefixes value with its expiry in unix nanoseconds; zero means
// the entry never expires.
func encode(value []byte, expires time.Time) []byte {
	var stamp uint64
	if !expires.IsZero() {
		stamp = uint64(expires.UnixNano())
	}
	out := make([]byte, expiryLen, expiryLen+len(value))
	binary.BigEndian.PutUint64(out, stamp)
	return append(out, value...)
}

// decode splits a stored value. ok is false for values too short to carry
// the expiry prefix.
func decode(raw []byte) (value []byte, expires time.Time, ok bool) {
	if len(raw) < expiryLen {
		return nil, time.Time{}, false
	}
	if stamp := binary.BigEndian.Uint64(raw[:expiryLen]); stamp != 0 {
		expires = time.Unix(0, int64(stamp))
	}
	return raw[expiryLen:], expires, true
}

// Put stores value under key for ttl, or for DefaultTTL when ttl <= 0.
func (s *Store) Put(key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.ttl
	}
	var expires time.Time
	if ttl > 0 {
		expires = time.Now().Add(ttl)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(key), encode(value, expires))
	})
}

// Get returns a copy of the body stored under key.
func (s *Store) Get(key string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		value, expires, ok := decode(tx.Bucket(s.bucket).Get([]byte(key)))
		switch {
		case !ok:
			return ErrNotFound
		case !expires.IsZero() && time.Now().After(expires):
			return ErrExpired
		}
		// bbolt memory is only valid inside the transaction.
		out = append([]byte(nil), value...)
		return nil
	})
	return out, err
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Delete([]byte(key))
	})
}

// Purge drops every entry and reports how many there were.
func (s *Store) Purge() (int, error) {
	var n int
	err := s.db.Update(func(tx *bolt.Tx) error {
		n = tx.Bucket(s.bucket).Stats().KeyN
		if err := tx.DeleteBucket(s.bucket); err != nil {
			return err
		}
		_, err := tx.CreateBucket(s.bucket)
		return err
	})
	return n, err
}

// Len counts the stored entries, expired ones included.
func (s *Store) Len() (int, error) {
	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(s.bucket).Stats().KeyN
		return nil
	})
	return n, err
}
