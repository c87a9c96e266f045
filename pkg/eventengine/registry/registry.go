package registry

import (
	"slices"
	"sync"
)

// Registry is a thread-safe registry of ordered, deduplicated value lists.
// It uses sync.RWMutex for read-heavy workloads.
type Registry[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K][]V
	order   []K
	equal   func(a, b V) bool
}

// New creates an empty registry. equal decides whether two values are the
// same; a nil equal disables deduplication.
func New[K comparable, V any](equal func(a, b V) bool) *Registry[K, V] {
	return &Registry[K, V]{
		entries: make(map[K][]V),
		equal:   equal,
	}
}

// Append adds value to the end of key's list. It returns false, leaving the
// list untouched, when an equal value is already listed under key.
func (r *Registry[K, V]) Append(key K, value V) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, exists := r.entries[key]
	if r.equal != nil {
		for _, v := range list {
			if r.equal(v, value) {
				return false
			}
		}
	}

	if !exists {
		r.order = append(r.order, key)
	}
	r.entries[key] = append(list, value)
	return true
}

// Get returns a copy of key's list, or nil if nothing was appended under key.
func (r *Registry[K, V]) Get(key K) []V {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.entries[key])
}

// Contains reports whether an equal value is listed under key.
func (r *Registry[K, V]) Contains(key K, value V) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.equal == nil {
		return false
	}
	for _, v := range r.entries[key] {
		if r.equal(v, value) {
			return true
		}
	}
	return false
}

// Has returns true if at least one value is listed under key.
func (r *Registry[K, V]) Has(key K) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries[key]) > 0
}

// Count returns the length of key's list.
func (r *Registry[K, V]) Count(key K) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries[key])
}

// Keys returns all keys in the order they first received a value.
func (r *Registry[K, V]) Keys() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// Len returns the number of keys in the registry.
func (r *Registry[K, V]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Range iterates over all keys in first-use order with a copy of each list.
// If fn returns false, iteration stops.
//
// Range iterates over a snapshot of the registry, so it is safe to call
// Append during iteration without affecting the current iteration.
func (r *Registry[K, V]) Range(fn func(K, []V) bool) {
	r.mu.RLock()
	keys := slices.Clone(r.order)
	snapshot := make(map[K][]V, len(r.entries))
	for k, v := range r.entries {
		snapshot[k] = slices.Clone(v)
	}
	r.mu.RUnlock()

	for _, k := range keys {
		if !fn(k, snapshot[k]) {
			return
		}
	}
}
