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

package symbolic

// MinNode is the minimum of two nodes, ordered by key.
type MinNode struct {
	compound
}

var _ Node = (*MinNode)(nil)

// MinOf returns the minimum of a and b.
func MinOf(a, b Node) Node {
	if a.Max() <= b.Min() {
		return a
	}
	if b.Max() <= a.Min() {
		return b
	}
	if Equal(a, b) {
		return a
	}
	if b.Key() < a.Key() {
		a, b = b, a
	}
	lo, hi := min(a.Min(), b.Min()), min(a.Max(), b.Max())
	if lo == hi {
		return Const(lo)
	}
	return &MinNode{compound: compound{lo: lo, hi: hi, operands: []Node{a, b}}}
}

// MaxOf returns the maximum of a and b.
func MaxOf(a, b Node) Node {
	return Neg(MinOf(Neg(a), Neg(b)))
}

// Operands returns the two operands.
func (n *MinNode) Operands() (Node, Node) {
	return n.operands[0], n.operands[1]
}

// Kind of the node.
func (n *MinNode) Kind() Kind {
	return MinKind
}

// Key returns the canonical key of the minimum.
func (n *MinNode) Key() string {
	return n.cachedKey(n)
}

func (n *MinNode) String() string {
	return "<" + n.Key() + ">"
}

func (n *MinNode) lessThan(b Node) Node {
	return boundedLessThan(n, b)
}

func (n *MinNode) substitute(sub map[string]Node) Node {
	ops, changed := n.substituteOperands(sub)
	if !changed {
		return n
	}
	return MinOf(ops[0], ops[1])
}

func (n *MinNode) eval() (int, error) {
	vals, err := n.evalOperands()
	if err != nil {
		return 0, err
	}
	return min(vals[0], vals[1]), nil
}
