// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package shapecache memoizes values built for shape templates.
//
// A template is a shape with all its variables unbound. Shapes only differing
// by the values bound to their variables share the same cache entry.
package shapecache

import (
	"sync/atomic"

	"github.com/gx-org/symbolic/base/sync"
	"github.com/gx-org/symbolic/shape"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// BuildFunc builds the value of a shape template.
type BuildFunc[V any] func(tmpl shape.Shape) (V, error)

// Cache of values indexed by shape templates. It is safe for concurrent use.
type Cache[V any] struct {
	build   BuildFunc[V]
	entries sync.Map[string, V]

	hits, misses atomic.Int64
}

// Stats of a cache.
type Stats struct {
	Hits, Misses int64
}

// New returns a new cache given a function to build values on a miss.
func New[V any](build BuildFunc[V]) *Cache[V] {
	return &Cache[V]{build: build}
}

// Get returns the value of the template of a shape and the values bound
// to the variables of the shape.
// Concurrent misses on the same template may call the build function more than once.
// The first value stored is the one returned to all callers.
func (c *Cache[V]) Get(s shape.Shape) (V, map[string]int, error) {
	var zero V
	tmpl, vals, err := s.Unbind()
	if err != nil {
		return zero, nil, err
	}
	key := tmpl.Key()
	if v, ok := c.entries.Load(key); ok {
		c.hits.Add(1)
		klog.V(2).Infof("shape cache hit: %s for %s", key, s)
		return v, vals, nil
	}
	c.misses.Add(1)
	klog.V(2).Infof("shape cache miss: %s for %s", key, s)
	v, err := c.build(tmpl)
	if err != nil {
		return zero, nil, errors.Wrapf(err, "cannot build value for shape %s", key)
	}
	v, _ = c.entries.LoadOrStore(key, v)
	return v, vals, nil
}

// Size returns the number of entries in the cache.
func (c *Cache[V]) Size() int {
	return c.entries.Size()
}

// Stats returns the number of hits and misses since the cache was created or reset.
func (c *Cache[V]) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}

// Reset removes all the entries and the statistics.
func (c *Cache[V]) Reset() {
	c.entries.Clear()
	c.hits.Store(0)
	c.misses.Store(0)
}
