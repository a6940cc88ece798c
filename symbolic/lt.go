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

// LtNode is the comparison a < b. Its value is 1 if true, 0 otherwise.
type LtNode struct {
	compound
}

var _ Node = (*LtNode)(nil)

// LessThan returns a node for a < b.
// The result is a constant (0 or 1) when the bounds of the operands decide the comparison.
func LessThan(a, b Node) Node {
	return a.lessThan(b)
}

// LessOrEqual returns a node for a <= b, that is a < b+1.
func LessOrEqual(a, b Node) Node {
	return LessThan(a, Add(b, Const(1)))
}

// GreaterThan returns a node for a > b, that is -a < -b.
func GreaterThan(a, b Node) Node {
	return LessThan(Neg(a), Neg(b))
}

// GreaterOrEqual returns a node for a >= b, that is -a < -b+1.
func GreaterOrEqual(a, b Node) Node {
	return LessThan(Neg(a), Add(Neg(b), Const(1)))
}

// boundedLessThan compares two nodes using only their bounds.
func boundedLessThan(a, b Node) Node {
	if a.Max() < b.Min() {
		return Const(1)
	}
	if a.Min() >= b.Max() {
		return Const(0)
	}
	return &LtNode{compound: compound{lo: 0, hi: 1, operands: []Node{a, b}}}
}

// Operands returns the left and right operands of the comparison.
func (n *LtNode) Operands() (Node, Node) {
	return n.operands[0], n.operands[1]
}

// Kind of the node.
func (n *LtNode) Kind() Kind {
	return LtKind
}

// Key returns the canonical key of the comparison.
func (n *LtNode) Key() string {
	return n.cachedKey(n)
}

func (n *LtNode) String() string {
	return "<" + n.Key() + ">"
}

func (n *LtNode) lessThan(b Node) Node {
	return boundedLessThan(n, b)
}

func (n *LtNode) substitute(sub map[string]Node) Node {
	ops, changed := n.substituteOperands(sub)
	if !changed {
		return n
	}
	return LessThan(ops[0], ops[1])
}

func (n *LtNode) eval() (int, error) {
	vals, err := n.evalOperands()
	if err != nil {
		return 0, err
	}
	return b2i(vals[0] < vals[1]), nil
}
