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

type (
	// DivNode is the floor division of a node by a positive constant.
	DivNode struct {
		compound
		divisor int
	}

	// ModNode is the modulo of a node by a positive constant.
	// The result is always in [0, divisor).
	ModNode struct {
		compound
		divisor int
	}
)

var (
	_ Node = (*DivNode)(nil)
	_ Node = (*ModNode)(nil)
)

func checkDivisor(op string, a Node, b int) {
	if b > 0 {
		return
	}
	panicRange("cannot compute %s of %s by %d: divisor must be positive", op, a, b)
}

// FloorDiv returns the floor division of a by b.
// It panics if b is not positive.
func FloorDiv(a Node, b int) Node {
	checkDivisor("floor division", a, b)
	if b == 1 {
		return a
	}
	switch aT := a.(type) {
	case *Num:
		return Const(floorDiv(aT.val, b))
	case *MulNode:
		if factor, ok := aT.factor(); ok && factor%b == 0 {
			return mulConst(aT.x(), factor/b)
		}
	case *DivNode:
		return FloorDiv(aT.x(), mulInt(aT.divisor, b))
	}
	lo, hi := floorDiv(a.Min(), b), floorDiv(a.Max(), b)
	if lo == hi {
		return Const(lo)
	}
	return &DivNode{
		compound: compound{lo: lo, hi: hi, operands: []Node{a}},
		divisor:  b,
	}
}

// Mod returns a modulo b.
// It panics if b is not positive.
func Mod(a Node, b int) Node {
	checkDivisor("modulo", a, b)
	if b == 1 {
		return Const(0)
	}
	switch aT := a.(type) {
	case *Num:
		return Const(floorMod(aT.val, b))
	case *MulNode:
		if factor, ok := aT.factor(); ok && factor%b == 0 {
			return Const(0)
		}
	}
	if a.Min() >= 0 && a.Max() < b {
		return a
	}
	lo, hi := 0, b-1
	if floorDiv(a.Min(), b) == floorDiv(a.Max(), b) {
		lo, hi = floorMod(a.Min(), b), floorMod(a.Max(), b)
	}
	if lo == hi {
		return Const(lo)
	}
	return &ModNode{
		compound: compound{lo: lo, hi: hi, operands: []Node{a}},
		divisor:  b,
	}
}

// X returns the dividend.
func (n *DivNode) X() Node {
	return n.x()
}

func (n *DivNode) x() Node {
	return n.operands[0]
}

// Divisor returns the constant divisor.
func (n *DivNode) Divisor() int {
	return n.divisor
}

// Kind of the node.
func (n *DivNode) Kind() Kind {
	return DivKind
}

// Key returns the canonical key of the division.
func (n *DivNode) Key() string {
	return n.cachedKey(n)
}

func (n *DivNode) String() string {
	return "<" + n.Key() + ">"
}

// x//c < k is rewritten as x < k*c.
func (n *DivNode) lessThan(b Node) Node {
	bNum, ok := b.(*Num)
	if !ok {
		return boundedLessThan(n, b)
	}
	return LessThan(n.x(), Const(mulInt(bNum.val, n.divisor)))
}

func (n *DivNode) substitute(sub map[string]Node) Node {
	ops, changed := n.substituteOperands(sub)
	if !changed {
		return n
	}
	return FloorDiv(ops[0], n.divisor)
}

func (n *DivNode) eval() (int, error) {
	vals, err := n.evalOperands()
	if err != nil {
		return 0, err
	}
	return floorDiv(vals[0], n.divisor), nil
}

// X returns the dividend.
func (n *ModNode) X() Node {
	return n.operands[0]
}

// Divisor returns the constant divisor.
func (n *ModNode) Divisor() int {
	return n.divisor
}

// Kind of the node.
func (n *ModNode) Kind() Kind {
	return ModKind
}

// Key returns the canonical key of the modulo.
func (n *ModNode) Key() string {
	return n.cachedKey(n)
}

func (n *ModNode) String() string {
	return "<" + n.Key() + ">"
}

func (n *ModNode) lessThan(b Node) Node {
	return boundedLessThan(n, b)
}

func (n *ModNode) substitute(sub map[string]Node) Node {
	ops, changed := n.substituteOperands(sub)
	if !changed {
		return n
	}
	return Mod(ops[0], n.divisor)
}

func (n *ModNode) eval() (int, error) {
	vals, err := n.evalOperands()
	if err != nil {
		return 0, err
	}
	return floorMod(vals[0], n.divisor), nil
}
