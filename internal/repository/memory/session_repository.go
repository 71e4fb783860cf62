package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// SessionRepository is an in-process keyed store with idle expiration. Every
// successful Get pushes the entry's expiry back by the configured TTL.
type SessionRepository[T any] struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewSessionRepository evicts entries idle for longer than ttl, sweeping at
// cleanupInterval. A non-positive ttl keeps entries forever.
func NewSessionRepository[T any](ttl, cleanupInterval time.Duration) *SessionRepository[T] {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	if cleanupInterval <= 0 {
		cleanupInterval = 10 * time.Minute
	}
	return &SessionRepository[T]{
		cache: cache.New(ttl, cleanupInterval),
		ttl:   ttl,
	}
}

func (r *SessionRepository[T]) Save(key string, value T) {
	r.cache.Set(key, value, cache.DefaultExpiration)
}

func (r *SessionRepository[T]) Get(key string) (T, bool) {
	var zero T
	x, found := r.cache.Get(key)
	if !found {
		return zero, false
	}
	value, ok := x.(T)
	if !ok {
		return zero, false
	}
	// refresh idle expiry
	r.cache.Set(key, value, cache.DefaultExpiration)
	return value, true
}

// GetOrCreate returns the stored value or stores and returns create(). The
// check and insert are atomic.
func (r *SessionRepository[T]) GetOrCreate(key string, create func() T) T {
	if value, ok := r.Get(key); ok {
		return value
	}
	value := create()
	if err := r.cache.Add(key, value, cache.DefaultExpiration); err != nil {
		// lost the race, someone else inserted first
		if existing, ok := r.Get(key); ok {
			return existing
		}
		r.Save(key, value)
	}
	return value
}

func (r *SessionRepository[T]) Delete(key string) {
	r.cache.Delete(key)
}

func (r *SessionRepository[T]) Items() map[string]T {
	items := r.cache.Items()
	out := make(map[string]T, len(items))
	for k, item := range items {
		if value, ok := item.Object.(T); ok {
			out[k] = value
		}
	}
	return out
}

func (r *SessionRepository[T]) Count() int {
	return r.cache.ItemCount()
}
