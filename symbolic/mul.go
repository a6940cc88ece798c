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

// MulNode is the product of two nodes.
// When one of the operands is a constant, it is always the second one.
type MulNode struct {
	compound
}

var _ Node = (*MulNode)(nil)

// Mul returns a*b.
func Mul(a, b Node) Node {
	aNum, aIsNum := a.(*Num)
	bNum, bIsNum := b.(*Num)
	switch {
	case aIsNum && bIsNum:
		return Const(mulInt(aNum.val, bNum.val))
	case aIsNum:
		return mulConst(b, aNum.val)
	case bIsNum:
		return mulConst(a, bNum.val)
	}
	// Constant factors are moved out of the product of two symbolic operands.
	c := 1
	a, c = splitFactor(a, c)
	b, c = splitFactor(b, c)
	if b.Key() < a.Key() {
		a, b = b, a
	}
	return mulConst(newMul(a, b), c)
}

func splitFactor(n Node, c int) (Node, int) {
	mul, ok := n.(*MulNode)
	if !ok {
		return n, c
	}
	factor, ok := mul.factor()
	if !ok {
		return n, c
	}
	return mul.x(), mulInt(c, factor)
}

// Neg returns -a.
func Neg(a Node) Node {
	return Mul(a, Const(-1))
}

func mulConst(a Node, c int) Node {
	switch c {
	case 0:
		return Const(0)
	case 1:
		return a
	}
	switch aT := a.(type) {
	case *Num:
		return Const(mulInt(aT.val, c))
	case *MulNode:
		if factor, ok := aT.factor(); ok {
			return mulConst(aT.x(), mulInt(factor, c))
		}
	case *SumNode:
		terms := make([]Node, 0, len(aT.operands)+1)
		for _, term := range aT.operands {
			terms = append(terms, mulConst(term, c))
		}
		return Sum(append(terms, Const(mulInt(aT.constant, c)))...)
	}
	return newMul(a, Const(c))
}

func newMul(a, b Node) Node {
	corners := [4]int{
		mulInt(a.Min(), b.Min()),
		mulInt(a.Min(), b.Max()),
		mulInt(a.Max(), b.Min()),
		mulInt(a.Max(), b.Max()),
	}
	lo, hi := corners[0], corners[0]
	for _, c := range corners[1:] {
		lo = min(lo, c)
		hi = max(hi, c)
	}
	if lo == hi {
		return Const(lo)
	}
	return &MulNode{compound: compound{lo: lo, hi: hi, operands: []Node{a, b}}}
}

// Operands returns the two operands of the product.
func (n *MulNode) Operands() (Node, Node) {
	return n.operands[0], n.operands[1]
}

func (n *MulNode) x() Node {
	return n.operands[0]
}

func (n *MulNode) factor() (int, bool) {
	c, ok := n.operands[1].(*Num)
	if !ok {
		return 0, false
	}
	return c.val, true
}

// Kind of the node.
func (n *MulNode) Kind() Kind {
	return MulKind
}

// Key returns the canonical key of the product.
func (n *MulNode) Key() string {
	return n.cachedKey(n)
}

func (n *MulNode) String() string {
	return "<" + n.Key() + ">"
}

// x*c < k is rewritten as x < ceil(k/c) when c is positive.
func (n *MulNode) lessThan(b Node) Node {
	factor, ok := n.factor()
	bNum, bIsNum := b.(*Num)
	if !ok || !bIsNum || factor <= 0 {
		return boundedLessThan(n, b)
	}
	return LessThan(n.x(), Const(ceilDiv(bNum.val, factor)))
}

func (n *MulNode) substitute(sub map[string]Node) Node {
	ops, changed := n.substituteOperands(sub)
	if !changed {
		return n
	}
	return Mul(ops[0], ops[1])
}

func (n *MulNode) eval() (int, error) {
	vals, err := n.evalOperands()
	if err != nil {
		return 0, err
	}
	return vals[0] * vals[1], nil
}
