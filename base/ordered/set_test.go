package ordered_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/symbolic/base/ordered"
)

func TestSet(t *testing.T) {
	tests := []struct {
		values     []string
		wantAll    []string
		wantSorted []string
	}{
		{
			values:     []string{"c", "a", "b"},
			wantAll:    []string{"c", "a", "b"},
			wantSorted: []string{"a", "b", "c"},
		},
		{
			values:     []string{"b", "B", "a", "b"},
			wantAll:    []string{"b", "a"},
			wantSorted: []string{"a", "b"},
		},
		{
			values: nil,
		},
	}
	for ti, test := range tests {
		set := ordered.NewSet(strings.ToLower)
		set.Add(test.values...)
		if set.Size() != len(test.wantAll) {
			t.Errorf("test %d: set has %d elements but want %d", ti, set.Size(), len(test.wantAll))
		}
		all := slices.Collect(set.All())
		if diff := cmp.Diff(test.wantAll, all); diff != "" {
			t.Errorf("test %d: incorrect insertion order (-want +got):\n%s", ti, diff)
		}
		sorted := set.Sorted()
		if len(sorted) == 0 {
			sorted = nil
		}
		if diff := cmp.Diff(test.wantSorted, sorted); diff != "" {
			t.Errorf("test %d: incorrect sorted order (-want +got):\n%s", ti, diff)
		}
	}
}
