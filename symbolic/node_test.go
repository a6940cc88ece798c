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

package symbolic_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/symbolic/internal/testing/exprgen"
	"github.com/gx-org/symbolic/symbolic"
	"github.com/pkg/errors"
)

func TestEqualHash(t *testing.T) {
	x1 := symbolic.MustVariable("x", 0, 10)
	x2 := symbolic.MustVariable("x", 0, 10)
	y := symbolic.MustVariable("y", 1, 5)
	tests := []struct {
		a, b  symbolic.Node
		equal bool
	}{
		{a: x1, b: x2, equal: true},
		{a: x1, b: y, equal: false},
		{a: x1, b: symbolic.MustVariable("x", 0, 11), equal: false},
		{a: x1, b: bound("x", 0, 10, 3), equal: false},
		{a: symbolic.Add(x1, y), b: symbolic.Add(y, x2), equal: true},
		{a: symbolic.Const(3), b: symbolic.Add(symbolic.Const(1), symbolic.Const(2)), equal: true},
		{a: symbolic.Mul(x1, y), b: symbolic.Mul(y, x2), equal: true},
		{a: symbolic.FloorDiv(x1, 2), b: symbolic.Mod(x1, 2), equal: false},
	}
	for i, test := range tests {
		if got := symbolic.Equal(test.a, test.b); got != test.equal {
			t.Errorf("test %d: Equal(%s, %s) = %v but want %v", i, test.a, test.b, got, test.equal)
		}
		if got := test.a.Key() == test.b.Key(); got != test.equal {
			t.Errorf("test %d: key equality is %v but want %v", i, got, test.equal)
		}
		if test.equal && symbolic.Hash(test.a) != symbolic.Hash(test.b) {
			t.Errorf("test %d: equal nodes %s and %s have different hashes", i, test.a, test.b)
		}
	}
}

func TestTruthy(t *testing.T) {
	x := symbolic.MustVariable("x", 0, 10)
	tests := []struct {
		node symbolic.Node
		want bool
	}{
		{node: symbolic.Const(0), want: false},
		{node: symbolic.Sub(x, x), want: false},
		{node: symbolic.FloorDiv(x, 20), want: false},
		{node: symbolic.Const(1), want: true},
		{node: symbolic.Const(-1), want: true},
		{node: x, want: true},
		{node: symbolic.Neg(x), want: true},
	}
	for i, test := range tests {
		if got := symbolic.Truthy(test.node); got != test.want {
			t.Errorf("test %d: Truthy(%s) = %v but want %v", i, test.node, got, test.want)
		}
	}
	zero, err := symbolic.NewVariable("x", 0, 0)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if symbolic.Truthy(zero) {
		t.Errorf("variable with range [0, 0] is truthy")
	}
}

func TestSubstitute(t *testing.T) {
	x := symbolic.MustVariable("x", 0, 10)
	y := symbolic.MustVariable("y", 1, 5)
	z := symbolic.MustVariable("z", 0, 3)
	exprs := []symbolic.Node{
		x,
		symbolic.Add(x, y),
		symbolic.Mul(x, symbolic.Const(4)),
		symbolic.Mul(x, y),
		symbolic.FloorDiv(symbolic.Add(x, y), 3),
		symbolic.Mod(symbolic.Add(x, y), 3),
		symbolic.MinOf(x, y),
		symbolic.LessThan(x, y),
	}
	for i, expr := range exprs {
		varsBefore := keys(expr.Vars())
		substituted := symbolic.Substitute(expr, map[*symbolic.Variable]symbolic.Node{x: z})
		for _, v := range substituted.Vars() {
			if v.Name() == "x" {
				t.Errorf("test %d: %s still contains x after substitution", i, substituted)
			}
		}
		restored := symbolic.Substitute(substituted, map[*symbolic.Variable]symbolic.Node{z: x})
		if diff := cmp.Diff(varsBefore, keys(restored.Vars())); diff != "" {
			t.Errorf("test %d: incorrect variables after inverse substitution (-want +got):\n%s", i, diff)
		}
		if !symbolic.Equal(restored, expr) {
			t.Errorf("test %d: got %s after inverse substitution but want %s", i, restored, expr)
		}
	}
}

func TestSubstituteSharing(t *testing.T) {
	x := symbolic.MustVariable("x", 0, 10)
	y := symbolic.MustVariable("y", 1, 5)
	z := symbolic.MustVariable("z", 0, 3)
	expr := symbolic.Add(x, y)
	if got := symbolic.Substitute(expr, map[*symbolic.Variable]symbolic.Node{z: x}); got != expr {
		t.Errorf("substitution without match returned a new node %s", got)
	}
	// Variables are matched by key, not by pointer.
	xCopy := symbolic.MustVariable("x", 0, 10)
	got := symbolic.Substitute(expr, map[*symbolic.Variable]symbolic.Node{xCopy: symbolic.Const(2)})
	if want := "(y[1-5]+2)"; got.Key() != want {
		t.Errorf("got %s but want %s", got.Key(), want)
	}
}

func TestUnbind(t *testing.T) {
	batch := bound("batch", 1, 128, 32)
	n, val, ok := symbolic.Unbind(batch)
	if !ok || val != 32 {
		t.Errorf("got value %d, %v but want 32, true", val, ok)
	}
	if got, want := n.Key(), "batch[1-128]"; got != want {
		t.Errorf("got %s but want %s", got, want)
	}

	seq := symbolic.MustVariable("seq", 1, 512)
	expr := symbolic.Add(symbolic.Mul(batch, seq), symbolic.Const(1))
	if got, want := expr.Key(), "((batch[1-128]=32*seq[1-512])+1)"; got != want {
		t.Errorf("got %s but want %s", got, want)
	}
	tmpl, _, ok := symbolic.Unbind(expr)
	if ok {
		t.Errorf("unbinding an expression returned a value")
	}
	if got, want := tmpl.Key(), "((batch[1-128]*seq[1-512])+1)"; got != want {
		t.Errorf("got %s but want %s", got, want)
	}
	if !batch.Bound() {
		t.Errorf("unbinding an expression modified its variables")
	}
	if got, _, _ := symbolic.Unbind(tmpl); got != tmpl {
		t.Errorf("unbinding an expression without bound variables returned a new node")
	}
}

func TestKeyAfterBind(t *testing.T) {
	x := symbolic.MustVariable("x", 0, 10)
	expr := symbolic.Add(x, symbolic.Const(1))
	if got, want := expr.Key(), "(x[0-10]+1)"; got != want {
		t.Errorf("got %s but want %s", got, want)
	}
	if _, err := symbolic.Eval(expr); !errors.Is(err, symbolic.ErrUnbound) {
		t.Errorf("got error %v but want %v", err, symbolic.ErrUnbound)
	}
	if _, err := x.Bind(4); err != nil {
		t.Fatalf("%+v", err)
	}
	for range 2 {
		if got, want := expr.Key(), "(x[0-10]=4+1)"; got != want {
			t.Errorf("got %s but want %s", got, want)
		}
	}
	if got := mustEval(t, expr); got != 5 {
		t.Errorf("got %d but want 5", got)
	}
}

func TestGeneratedExprs(t *testing.T) {
	x := symbolic.MustVariable("x", 0, 12)
	y := symbolic.MustVariable("y", 1, 7)
	exprs := exprgen.New(2, x, y).Exprs(2)
	for xVal := x.Min(); xVal <= x.Max(); xVal += 3 {
		for yVal := y.Min(); yVal <= y.Max(); yVal += 2 {
			sub := map[*symbolic.Variable]symbolic.Node{
				x: bound("x", x.Min(), x.Max(), xVal),
				y: bound("y", y.Min(), y.Max(), yVal),
			}
			for i, expr := range exprs {
				if expr.Min() > expr.Max() {
					t.Fatalf("expr %d: %s has invalid bounds [%d, %d]", i, expr, expr.Min(), expr.Max())
				}
				concrete := symbolic.Substitute(expr, sub)
				val := mustEval(t, concrete)
				if val < expr.Min() || val > expr.Max() {
					t.Errorf("expr %d: %s = %d with x=%d, y=%d is out of bounds [%d, %d]", i, expr, val, xVal, yVal, expr.Min(), expr.Max())
				}
				// Normalization is idempotent.
				if again := symbolic.Sum(expr); !symbolic.Equal(again, expr) {
					t.Errorf("expr %d: Sum(%s) = %s", i, expr, again)
				}
				tmpl, _, _ := symbolic.Unbind(concrete)
				if !symbolic.Equal(tmpl, expr) {
					t.Errorf("expr %d: unbinding %s gives %s but want %s", i, concrete, tmpl, expr)
				}
			}
		}
	}
}
