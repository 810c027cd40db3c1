package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memo is a typed in-memory memo safe for concurrent use
type Memo[V any] struct {
	cache *gocache.Cache
}

// NewMemo creates a memo whose entries expire after ttl. A ttl of zero keeps
// entries until Clear, which is what pure lookups want.
func NewMemo[V any](ttl time.Duration) *Memo[V] {
	if ttl <= 0 {
		return &Memo[V]{cache: gocache.New(gocache.NoExpiration, 0)}
	}
	return &Memo[V]{cache: gocache.New(ttl, 2*ttl)}
}

// Get retrieves a value from the memo
func (m *Memo[V]) Get(key string) (V, bool) {
	var zero V
	val, found := m.cache.Get(key)
	if !found {
		return zero, false
	}
	v, ok := val.(V)
	if !ok {
		return zero, false
	}
	return v, true
}

// Set stores a value with the memo's default expiration
func (m *Memo[V]) Set(key string, value V) {
	m.cache.SetDefault(key, value)
}

// Len returns the number of stored entries
func (m *Memo[V]) Len() int {
	return m.cache.ItemCount()
}

// Clear removes all entries
func (m *Memo[V]) Clear() {
	m.cache.Flush()
}
