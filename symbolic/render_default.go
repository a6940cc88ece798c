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

import (
	"fmt"
	"strconv"
	"strings"
)

func renderNum(r *Registry, n Node, ctx Context) (string, error) {
	num := n.(*Num)
	switch ctx {
	case CodeContext, DebugContext:
		return strconv.Itoa(num.val), nil
	case ReprContext:
		return fmt.Sprintf("Const(%d)", num.val), nil
	default:
		return "", UnsupportedContext(r, n, ctx)
	}
}

func renderVariable(r *Registry, n Node, ctx Context) (string, error) {
	v := n.(*Variable)
	val := v.val.Load()
	switch ctx {
	case CodeContext:
		return v.name, nil
	case DebugContext:
		s := fmt.Sprintf("%s[%d-%d]", v.name, v.lo, v.hi)
		if val != nil {
			s += fmt.Sprintf("=%d", *val)
		}
		return s, nil
	case ReprContext:
		s := fmt.Sprintf("Variable(%q, %d, %d)", v.name, v.lo, v.hi)
		if val != nil {
			s += fmt.Sprintf(".Bind(%d)", *val)
		}
		return s, nil
	default:
		return "", UnsupportedContext(r, n, ctx)
	}
}

func renderSum(r *Registry, n Node, ctx Context) (string, error) {
	sum := n.(*SumNode)
	terms, err := r.RenderAll(ctx, sum.operands...)
	if err != nil {
		return "", err
	}
	switch ctx {
	case CodeContext, DebugContext:
		if sum.constant != 0 {
			terms = append(terms, strconv.Itoa(sum.constant))
		}
		return "(" + strings.Join(terms, "+") + ")", nil
	case ReprContext:
		if sum.constant != 0 {
			terms = append(terms, fmt.Sprintf("Const(%d)", sum.constant))
		}
		return "Sum(" + strings.Join(terms, ", ") + ")", nil
	default:
		return "", UnsupportedContext(r, n, ctx)
	}
}

func renderBinary(r *Registry, n Node, ctx Context, a, b Node, infix, repr string) (string, error) {
	ops, err := r.RenderAll(ctx, a, b)
	if err != nil {
		return "", err
	}
	switch ctx {
	case CodeContext, DebugContext:
		return fmt.Sprintf("(%s%s%s)", ops[0], infix, ops[1]), nil
	case ReprContext:
		return fmt.Sprintf("%s(%s, %s)", repr, ops[0], ops[1]), nil
	default:
		return "", UnsupportedContext(r, n, ctx)
	}
}

func renderMul(r *Registry, n Node, ctx Context) (string, error) {
	a, b := n.(*MulNode).Operands()
	return renderBinary(r, n, ctx, a, b, "*", "Mul")
}

func renderLt(r *Registry, n Node, ctx Context) (string, error) {
	a, b := n.(*LtNode).Operands()
	return renderBinary(r, n, ctx, a, b, "<", "LessThan")
}

func renderMin(r *Registry, n Node, ctx Context) (string, error) {
	a, b := n.(*MinNode).Operands()
	ops, err := r.RenderAll(ctx, a, b)
	if err != nil {
		return "", err
	}
	switch ctx {
	case CodeContext, DebugContext:
		return fmt.Sprintf("min(%s, %s)", ops[0], ops[1]), nil
	case ReprContext:
		return fmt.Sprintf("MinOf(%s, %s)", ops[0], ops[1]), nil
	default:
		return "", UnsupportedContext(r, n, ctx)
	}
}

func renderDivisor(r *Registry, n Node, ctx Context, x Node, divisor int, infix, repr string) (string, error) {
	s, err := r.Render(x, ctx)
	if err != nil {
		return "", err
	}
	switch ctx {
	case CodeContext, DebugContext:
		return fmt.Sprintf("(%s%s%d)", s, infix, divisor), nil
	case ReprContext:
		return fmt.Sprintf("%s(%s, %d)", repr, s, divisor), nil
	default:
		return "", UnsupportedContext(r, n, ctx)
	}
}

func renderDiv(r *Registry, n Node, ctx Context) (string, error) {
	div := n.(*DivNode)
	return renderDivisor(r, n, ctx, div.x(), div.divisor, "//", "FloorDiv")
}

func renderMod(r *Registry, n Node, ctx Context) (string, error) {
	mod := n.(*ModNode)
	return renderDivisor(r, n, ctx, mod.X(), mod.divisor, "%", "Mod")
}
