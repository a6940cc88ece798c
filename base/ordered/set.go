// Package ordered provides ordered data structure.
package ordered

import (
	"slices"

	"golang.org/x/exp/maps"
)

// Set is a set of values deduplicated by a string key.
// The first value stored for a key is kept.
type Set[V any] struct {
	key  func(V) string
	keys []string
	m    map[string]V
}

// NewSet returns a new set using key to identify values.
func NewSet[V any](key func(V) string) *Set[V] {
	return &Set[V]{key: key, m: make(map[string]V)}
}

// Add values to the set. Values with a key already present are ignored.
func (s *Set[V]) Add(vs ...V) {
	for _, v := range vs {
		k := s.key(v)
		if _, in := s.m[k]; in {
			continue
		}
		s.keys = append(s.keys, k)
		s.m[k] = v
	}
}

// All returns an iterator over the values in the order in which they have been added.
func (s *Set[V]) All() func(func(V) bool) {
	return func(yield func(V) bool) {
		for _, k := range s.keys {
			if !yield(s.m[k]) {
				break
			}
		}
	}
}

// Sorted returns the values of the set sorted by key.
func (s *Set[V]) Sorted() []V {
	keys := maps.Keys(s.m)
	slices.Sort(keys)
	vs := make([]V, len(keys))
	for i, k := range keys {
		vs[i] = s.m[k]
	}
	return vs
}

// Size returns the number of elements in the set.
func (s *Set[V]) Size() int {
	return len(s.keys)
}
