// Package cache provides the memoization store the engine keys by input
// fingerprint: a generic LRU with TTL expiry and hit/miss counters.
package cache

// Cache defines a generic cache interface
type Cache[T any] interface {
	// Get retrieves a value from the cache
	Get(key string) (T, bool)

	// Set stores a value in the cache
	Set(key string, data T)

	// Delete removes a key from the cache
	Delete(key string)

	// Size returns the current number of items in the cache
	Size() int

	// Stats returns hit/miss counters accumulated since creation
	Stats() Stats
}

// Stats exposes cache observability counters.
type Stats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Entries int   `json:"entries"`
}
