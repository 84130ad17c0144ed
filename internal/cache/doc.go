// Package cache persists keyed collections of remote data between runs.
//
// A Cache[T] is a versioned map of entries, each carrying its payload, a flat
// string metadata map and an insertion time. A Manager saves and loads caches
// to named slots (<dir>/<name>.json) and decides staleness from the slot
// file's modification time, so freshness is never stored per entry. Ensure
// wraps the load-or-refresh policy every category shares.
package cache
