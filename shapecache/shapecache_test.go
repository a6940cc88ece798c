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

package shapecache_test

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/symbolic/shape"
	"github.com/gx-org/symbolic/shapecache"
	"github.com/gx-org/symbolic/symbolic"
	"github.com/pkg/errors"
)

func batchShape(t *testing.T, batch int) shape.Shape {
	t.Helper()
	v := symbolic.MustVariable("batch", 1, 128)
	if _, err := v.Bind(batch); err != nil {
		t.Fatalf("%+v", err)
	}
	return shape.Shape{v, symbolic.Const(16)}
}

func TestGet(t *testing.T) {
	var built []string
	cache := shapecache.New(func(tmpl shape.Shape) (string, error) {
		built = append(built, tmpl.Key())
		return fmt.Sprintf("program%d", len(built)), nil
	})
	for i, batch := range []int{32, 64, 32} {
		got, vals, err := cache.Get(batchShape(t, batch))
		if err != nil {
			t.Fatalf("%+v", err)
		}
		if got != "program1" {
			t.Errorf("call %d: got %s but want program1", i, got)
		}
		if diff := cmp.Diff(map[string]int{"batch": batch}, vals); diff != "" {
			t.Errorf("call %d: incorrect values (-want +got):\n%s", i, diff)
		}
	}
	if diff := cmp.Diff([]string{"(batch[1-128], 16)"}, built); diff != "" {
		t.Errorf("incorrect templates built (-want +got):\n%s", diff)
	}
	if got, want := cache.Stats(), (shapecache.Stats{Hits: 2, Misses: 1}); got != want {
		t.Errorf("got stats %+v but want %+v", got, want)
	}
	// Different bounds give a different template.
	other := shape.Shape{symbolic.MustVariable("batch", 1, 64), symbolic.Const(16)}
	if got, _, err := cache.Get(other); err != nil || got != "program2" {
		t.Errorf("got %s, %v but want program2", got, err)
	}
	if got := cache.Size(); got != 2 {
		t.Errorf("got size %d but want 2", got)
	}
	cache.Reset()
	if got := cache.Size(); got != 0 {
		t.Errorf("got size %d after reset but want 0", got)
	}
	if got := cache.Stats(); got != (shapecache.Stats{}) {
		t.Errorf("got stats %+v after reset", got)
	}
}

func TestBuildError(t *testing.T) {
	errBuild := errors.New("cannot compile")
	cache := shapecache.New(func(shape.Shape) (int, error) {
		return 0, errBuild
	})
	if _, _, err := cache.Get(batchShape(t, 3)); !errors.Is(err, errBuild) {
		t.Errorf("got error %v but want %v", err, errBuild)
	}
	if got := cache.Size(); got != 0 {
		t.Errorf("failed build has been cached")
	}
}

func TestConcurrentGet(t *testing.T) {
	var builds atomic.Int32
	cache := shapecache.New(func(tmpl shape.Shape) (*int, error) {
		n := int(builds.Add(1))
		return &n, nil
	})
	const numGoroutines = 32
	results := make([]*int, numGoroutines)
	shapes := make([]shape.Shape, numGoroutines)
	for i := range shapes {
		shapes[i] = batchShape(t, i+1)
	}
	var wg sync.WaitGroup
	for i := range numGoroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, vals, err := cache.Get(shapes[i])
			if err != nil {
				t.Errorf("%+v", err)
				return
			}
			if vals["batch"] != i+1 {
				t.Errorf("got batch %d but want %d", vals["batch"], i+1)
			}
			results[i] = v
		}()
	}
	wg.Wait()
	for i, r := range results {
		if r != results[0] {
			t.Errorf("goroutine %d got a different value", i)
		}
	}
	if got := cache.Size(); got != 1 {
		t.Errorf("got size %d but want 1", got)
	}
	stats := cache.Stats()
	if stats.Hits+stats.Misses != numGoroutines {
		t.Errorf("got %d lookups but want %d", stats.Hits+stats.Misses, numGoroutines)
	}
}
