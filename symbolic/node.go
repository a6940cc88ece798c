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

// Package symbolic implements symbolic integer expressions used as tensor axis lengths
// when the length is only known at runtime.
//
// Nodes are immutable once constructed. The only mutable state is the one-shot value
// of a Variable set by Bind. The identity of a node is its canonical key, that is its
// rendering in the debug context: two nodes are equal if and only if their keys are equal.
package symbolic

import (
	"hash/fnv"
	"sync/atomic"

	"github.com/gomlx/exceptions"
	"github.com/gx-org/symbolic/base/ordered"
)

type (
	// Node is a symbolic integer expression.
	//
	// The set of implementations is closed and limited to the types of this package.
	Node interface {
		// Kind of the node.
		Kind() Kind
		// Min returns the inclusive lower bound of the values of the expression.
		Min() int
		// Max returns the inclusive upper bound of the values of the expression.
		Max() int
		// Key returns the canonical key of the node.
		Key() string
		// Vars returns the variables used in the expression, sorted by key.
		Vars() []*Variable
		// String returns the key of the node between angle brackets.
		String() string

		lessThan(b Node) Node
		substitute(sub map[string]Node) Node
		eval() (int, error)
	}

	// compound is the state shared by all the nodes built from other nodes.
	compound struct {
		lo, hi   int
		operands []Node
		key      atomic.Pointer[string]
	}
)

func (c *compound) Min() int {
	return c.lo
}

func (c *compound) Max() int {
	return c.hi
}

// Vars returns the variables of all the operands.
func (c *compound) Vars() []*Variable {
	return collectVars(c.operands...)
}

// cachedKey returns the key of n.
// The key is only stored once all the variables in n are bound
// because binding a variable changes its key.
func (c *compound) cachedKey(n Node) string {
	if key := c.key.Load(); key != nil {
		return *key
	}
	key := mustRender(n)
	if allBound(c.Vars()) {
		c.key.Store(&key)
	}
	return key
}

func (c *compound) substituteOperands(sub map[string]Node) ([]Node, bool) {
	changed := false
	ops := make([]Node, len(c.operands))
	for i, op := range c.operands {
		ops[i] = op.substitute(sub)
		if ops[i] != op {
			changed = true
		}
	}
	return ops, changed
}

func (c *compound) evalOperands() ([]int, error) {
	vals := make([]int, len(c.operands))
	for i, op := range c.operands {
		var err error
		if vals[i], err = op.eval(); err != nil {
			return nil, err
		}
	}
	return vals, nil
}

func mustRender(n Node) string {
	s, err := Default.Render(n, DebugContext)
	if err != nil {
		exceptions.Panicf("cannot compute the key of a %s node: %+v", n.Kind(), err)
	}
	return s
}

func collectVars(nodes ...Node) []*Variable {
	set := ordered.NewSet(func(v *Variable) string { return v.Key() })
	for _, n := range nodes {
		for _, v := range n.Vars() {
			set.Add(v)
		}
	}
	return set.Sorted()
}

func allBound(vars []*Variable) bool {
	for _, v := range vars {
		if !v.Bound() {
			return false
		}
	}
	return true
}

// Equal returns true if two nodes have the same canonical key.
func Equal(a, b Node) bool {
	return a.Key() == b.Key()
}

// Hash returns a hash of the canonical key of a node.
// Equal nodes have the same hash.
func Hash(n Node) uint64 {
	h := fnv.New64a()
	h.Write([]byte(n.Key()))
	return h.Sum64()
}

// Truthy returns false if and only if the node is statically zero.
func Truthy(n Node) bool {
	return !(n.Min() == 0 && n.Max() == 0)
}

// Substitute replaces every variable in n present in sub by its associated node.
// Variables are matched by key. Subtrees without substitution are returned as is.
func Substitute(n Node, sub map[*Variable]Node) Node {
	keyed := make(map[string]Node, len(sub))
	for v, r := range sub {
		keyed[v.Key()] = r
	}
	return n.substitute(keyed)
}

// Unbind replaces all the bound variables in n by unbound duplicates.
// If n is a bound variable, Unbind also returns its value and true.
func Unbind(n Node) (Node, int, bool) {
	if v, ok := n.(*Variable); ok && v.Bound() {
		unbound, val, err := v.Unbind()
		if err != nil {
			exceptions.Panicf("cannot unbind %s: %+v", v, err)
		}
		return unbound, val, true
	}
	sub := make(map[*Variable]Node)
	for _, v := range n.Vars() {
		if !v.Bound() {
			continue
		}
		unbound, _, err := v.Unbind()
		if err != nil {
			exceptions.Panicf("cannot unbind %s: %+v", v, err)
		}
		sub[v] = unbound
	}
	if len(sub) == 0 {
		return n, 0, false
	}
	return Substitute(n, sub), 0, false
}

// Eval returns the value of n. All the variables of n need to be bound.
func Eval(n Node) (int, error) {
	return n.eval()
}
