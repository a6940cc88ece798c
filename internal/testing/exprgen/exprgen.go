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

// Package exprgen generates families of symbolic expressions for tests.
//
// Constants and divisors are drawn from a sequence of prime numbers
// so that generated expressions are deterministic.
package exprgen

import (
	"fmt"

	"github.com/gx-org/symbolic/symbolic"
)

type (
	// Op builds a node from a node and a leaf.
	Op struct {
		Name  string
		Apply func(x, leaf symbolic.Node) symbolic.Node
	}

	// Generator generates expressions over a set of leaves.
	Generator struct {
		min       int
		generated []int
		leaves    []symbolic.Node
	}
)

// Ops applied between a generated expression and a leaf.
var Ops = []Op{
	{Name: "add", Apply: symbolic.Add},
	{Name: "sub", Apply: symbolic.Sub},
	{Name: "mul", Apply: symbolic.Mul},
	{Name: "min", Apply: symbolic.MinOf},
	{Name: "max", Apply: symbolic.MaxOf},
	{Name: "lt", Apply: symbolic.LessThan},
}

// New returns a generator using the given leaves.
// Primes used as constants and divisors are greater or equal to min.
func New(min int, leaves ...symbolic.Node) *Generator {
	if min < 0 {
		panic(fmt.Sprintf("got minimum prime number %d, want >= 0", min))
	}
	return &Generator{min: min, leaves: leaves}
}

func (g *Generator) isDivisible(val int) bool {
	for _, v := range g.generated[1:] {
		if val%v == 0 {
			return true
		}
	}
	return false
}

func (g *Generator) findNext() int {
	switch len(g.generated) {
	case 0:
		return 2
	case 1:
		return 3
	}
	last := g.generated[len(g.generated)-1]
	for i := 2; ; i += 2 {
		if val := last + i; !g.isDivisible(val) {
			return val
		}
	}
}

// Prime returns the next prime number greater or equal to the generator minimum.
func (g *Generator) Prime() int {
	for {
		next := g.findNext()
		g.generated = append(g.generated, next)
		if next >= g.min {
			return next
		}
	}
}

// Exprs builds all the expressions obtained by applying level times
// an operation between an expression and a leaf, a floor division or a modulo.
func (g *Generator) Exprs(level int) []symbolic.Node {
	if level == 0 {
		return append(append([]symbolic.Node{}, g.leaves...), symbolic.Const(g.Prime()))
	}
	var exprs []symbolic.Node
	for _, x := range g.Exprs(level - 1) {
		for _, op := range Ops {
			for _, leaf := range g.leaves {
				exprs = append(exprs, op.Apply(x, leaf))
			}
		}
		exprs = append(exprs,
			symbolic.FloorDiv(x, g.Prime()),
			symbolic.Mod(x, g.Prime()),
		)
	}
	return exprs
}
