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

import "sort"

// SumNode is a sum of terms plus a constant.
//
// Terms are in canonical order: sorted by the key of their base,
// that is the term without its constant coefficient.
type SumNode struct {
	compound
	constant int
}

var _ Node = (*SumNode)(nil)

type linearTerm struct {
	base Node
	key  string
	coef int
}

type linearForm struct {
	terms    map[string]*linearTerm
	constant int
}

func (lf *linearForm) add(n Node, coef int) {
	switch nT := n.(type) {
	case *Num:
		lf.constant = addInt(lf.constant, mulInt(nT.val, coef))
		return
	case *SumNode:
		for _, term := range nT.operands {
			lf.add(term, coef)
		}
		lf.constant = addInt(lf.constant, mulInt(nT.constant, coef))
		return
	case *MulNode:
		if factor, ok := nT.factor(); ok {
			lf.add(nT.x(), mulInt(coef, factor))
			return
		}
	}
	key := n.Key()
	term := lf.terms[key]
	if term == nil {
		term = &linearTerm{base: n, key: key}
		lf.terms[key] = term
	}
	term.coef = addInt(term.coef, coef)
}

func (lf *linearForm) node() Node {
	terms := make([]*linearTerm, 0, len(lf.terms))
	for _, term := range lf.terms {
		if term.coef == 0 {
			continue
		}
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		return terms[i].key < terms[j].key
	})
	if len(terms) == 0 {
		return Const(lf.constant)
	}
	operands := make([]Node, len(terms))
	for i, term := range terms {
		operands[i] = mulConst(term.base, term.coef)
	}
	if len(operands) == 1 && lf.constant == 0 {
		return operands[0]
	}
	lo, hi := lf.constant, lf.constant
	for _, op := range operands {
		lo = addInt(lo, op.Min())
		hi = addInt(hi, op.Max())
	}
	if lo == hi {
		return Const(lo)
	}
	return &SumNode{
		compound: compound{lo: lo, hi: hi, operands: operands},
		constant: lf.constant,
	}
}

// Sum returns the canonical sum of nodes.
//
// Nested sums are flattened, constants are folded, terms sharing
// the same base are merged and terms with a zero coefficient are dropped.
// The result does not depend on the order or the association of the nodes.
func Sum(nodes ...Node) Node {
	lf := linearForm{terms: make(map[string]*linearTerm)}
	for _, n := range nodes {
		lf.add(n, 1)
	}
	return lf.node()
}

// Add returns a+b.
func Add(a, b Node) Node {
	return Sum(a, b)
}

// Sub returns a-b.
func Sub(a, b Node) Node {
	return Sum(a, Neg(b))
}

// Terms returns the non-constant terms of the sum.
func (n *SumNode) Terms() []Node {
	return append([]Node{}, n.operands...)
}

// Constant returns the constant part of the sum.
func (n *SumNode) Constant() int {
	return n.constant
}

// Kind of the node.
func (n *SumNode) Kind() Kind {
	return SumKind
}

// Key returns the canonical key of the sum.
func (n *SumNode) Key() string {
	return n.cachedKey(n)
}

func (n *SumNode) String() string {
	return "<" + n.Key() + ">"
}

// x+c < b is rewritten as x < b-c.
func (n *SumNode) lessThan(b Node) Node {
	if n.constant == 0 {
		return boundedLessThan(n, b)
	}
	return LessThan(Sum(n.operands...), Sub(b, Const(n.constant)))
}

func (n *SumNode) substitute(sub map[string]Node) Node {
	ops, changed := n.substituteOperands(sub)
	if !changed {
		return n
	}
	return Sum(append(ops, Const(n.constant))...)
}

func (n *SumNode) eval() (int, error) {
	vals, err := n.evalOperands()
	if err != nil {
		return 0, err
	}
	r := n.constant
	for _, val := range vals {
		r += val
	}
	return r, nil
}
