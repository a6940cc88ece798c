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

// Package parse builds symbolic expressions from Go expression syntax.
//
// The parser accepts arithmetic over integer literals and identifiers,
// calls to min and max, the helpers of generated Go code, and the constructor
// calls produced by rendering a node in the repr context.
package parse

import (
	"fmt"
	"go/ast"
	goparser "go/parser"
	"go/token"
	"strconv"

	"github.com/gx-org/symbolic/symbolic"
	"github.com/pkg/errors"
)

// Scope resolves identifiers to nodes.
type Scope map[string]symbolic.Node

// ScopeOf returns a scope in which every variable is accessible by its name.
func ScopeOf(vars ...*symbolic.Variable) Scope {
	scope := make(Scope, len(vars))
	for _, v := range vars {
		scope[v.Name()] = v
	}
	return scope
}

type parser struct {
	fset  *token.FileSet
	scope Scope
	// Variables created by constructor calls, indexed by their arguments.
	vars map[string]symbolic.Node
}

// Expr parses an expression and returns its node.
func Expr(src string, scope Scope) (symbolic.Node, error) {
	p := &parser{
		fset:  token.NewFileSet(),
		scope: scope,
		vars:  make(map[string]symbolic.Node),
	}
	expr, err := goparser.ParseExprFrom(p.fset, "", src, 0)
	if err != nil {
		return nil, errors.Errorf("cannot parse %q: %v", src, err)
	}
	return p.expr(expr)
}

func (p *parser) errorf(node ast.Node, format string, a ...any) error {
	return errors.Errorf("%s: %s", p.fset.Position(node.Pos()), fmt.Sprintf(format, a...))
}

func (p *parser) wrap(node ast.Node, err error) error {
	return errors.Wrapf(err, "%s", p.fset.Position(node.Pos()))
}

func (p *parser) expr(expr ast.Expr) (symbolic.Node, error) {
	switch exprT := expr.(type) {
	case *ast.BasicLit:
		return p.basicLit(exprT)
	case *ast.Ident:
		n, ok := p.scope[exprT.Name]
		if !ok {
			return nil, p.errorf(exprT, "undefined: %s", exprT.Name)
		}
		return n, nil
	case *ast.ParenExpr:
		return p.expr(exprT.X)
	case *ast.UnaryExpr:
		return p.unaryExpr(exprT)
	case *ast.BinaryExpr:
		return p.binaryExpr(exprT)
	case *ast.CallExpr:
		return p.callExpr(exprT)
	default:
		return nil, p.errorf(expr, "unsupported expression %T", expr)
	}
}

func (p *parser) basicLit(lit *ast.BasicLit) (symbolic.Node, error) {
	if lit.Kind != token.INT {
		return nil, p.errorf(lit, "unsupported literal %s", lit.Value)
	}
	val, err := strconv.ParseInt(lit.Value, 0, 64)
	if err != nil {
		return nil, p.errorf(lit, "invalid integer literal %s: %v", lit.Value, err)
	}
	return symbolic.ConstOf(val), nil
}

func (p *parser) unaryExpr(expr *ast.UnaryExpr) (symbolic.Node, error) {
	x, err := p.expr(expr.X)
	if err != nil {
		return nil, err
	}
	switch expr.Op {
	case token.SUB:
		return symbolic.Neg(x), nil
	case token.ADD:
		return x, nil
	default:
		return nil, p.errorf(expr, "unsupported unary operator %s", expr.Op)
	}
}

// constant returns the value of an expression which needs to be statically known.
func (p *parser) constant(expr ast.Expr) (int, error) {
	n, err := p.expr(expr)
	if err != nil {
		return 0, err
	}
	num, ok := n.(*symbolic.Num)
	if !ok {
		return 0, p.errorf(expr, "%s is not a constant", n)
	}
	return num.Value(), nil
}

func (p *parser) divisor(expr ast.Expr) (int, error) {
	k, err := p.constant(expr)
	if err != nil {
		return 0, err
	}
	if k <= 0 {
		return 0, p.errorf(expr, "divisor %d is not strictly positive", k)
	}
	return k, nil
}

func (p *parser) binaryExpr(expr *ast.BinaryExpr) (symbolic.Node, error) {
	x, err := p.expr(expr.X)
	if err != nil {
		return nil, err
	}
	switch expr.Op {
	case token.QUO, token.REM:
		k, err := p.divisor(expr.Y)
		if err != nil {
			return nil, err
		}
		if expr.Op == token.QUO {
			return symbolic.FloorDiv(x, k), nil
		}
		return symbolic.Mod(x, k), nil
	}
	y, err := p.expr(expr.Y)
	if err != nil {
		return nil, err
	}
	switch expr.Op {
	case token.ADD:
		return symbolic.Add(x, y), nil
	case token.SUB:
		return symbolic.Sub(x, y), nil
	case token.MUL:
		return symbolic.Mul(x, y), nil
	case token.LSS:
		return symbolic.LessThan(x, y), nil
	case token.LEQ:
		return symbolic.LessOrEqual(x, y), nil
	case token.GTR:
		return symbolic.GreaterThan(x, y), nil
	case token.GEQ:
		return symbolic.GreaterOrEqual(x, y), nil
	default:
		return nil, p.errorf(expr, "unsupported binary operator %s", expr.Op)
	}
}

func (p *parser) args(call *ast.CallExpr, name string, num int) ([]symbolic.Node, error) {
	if num >= 0 && len(call.Args) != num {
		return nil, p.errorf(call, "%s expects %d arguments but got %d", name, num, len(call.Args))
	}
	nodes := make([]symbolic.Node, len(call.Args))
	for i, arg := range call.Args {
		var err error
		if nodes[i], err = p.expr(arg); err != nil {
			return nil, err
		}
	}
	return nodes, nil
}

type binaryFunc func(a, b symbolic.Node) symbolic.Node

var binaryFuncs = map[string]binaryFunc{
	"min":      symbolic.MinOf,
	"MinOf":    symbolic.MinOf,
	"max":      symbolic.MaxOf,
	"MaxOf":    symbolic.MaxOf,
	"Mul":      symbolic.Mul,
	"LessThan": symbolic.LessThan,
}

type divisorFunc func(a symbolic.Node, b int) symbolic.Node

var divisorFuncs = map[string]divisorFunc{
	"FloorDiv": symbolic.FloorDiv,
	"floorDiv": symbolic.FloorDiv,
	"Mod":      symbolic.Mod,
	"floorMod": symbolic.Mod,
}

func (p *parser) callExpr(call *ast.CallExpr) (symbolic.Node, error) {
	if sel, ok := call.Fun.(*ast.SelectorExpr); ok {
		return p.bindCall(call, sel)
	}
	ident, ok := call.Fun.(*ast.Ident)
	if !ok {
		return nil, p.errorf(call, "unsupported function %T", call.Fun)
	}
	name := ident.Name
	if f := binaryFuncs[name]; f != nil {
		args, err := p.args(call, name, 2)
		if err != nil {
			return nil, err
		}
		return f(args[0], args[1]), nil
	}
	if f := divisorFuncs[name]; f != nil {
		if len(call.Args) != 2 {
			return nil, p.errorf(call, "%s expects 2 arguments but got %d", name, len(call.Args))
		}
		x, err := p.expr(call.Args[0])
		if err != nil {
			return nil, err
		}
		k, err := p.divisor(call.Args[1])
		if err != nil {
			return nil, err
		}
		return f(x, k), nil
	}
	switch name {
	case "Sum":
		args, err := p.args(call, name, -1)
		if err != nil {
			return nil, err
		}
		return symbolic.Sum(args...), nil
	case "Const":
		if len(call.Args) != 1 {
			return nil, p.errorf(call, "Const expects 1 argument but got %d", len(call.Args))
		}
		val, err := p.constant(call.Args[0])
		if err != nil {
			return nil, err
		}
		return symbolic.Const(val), nil
	case "b2i":
		args, err := p.args(call, name, 1)
		if err != nil {
			return nil, err
		}
		if args[0].Min() < 0 || args[0].Max() > 1 {
			return nil, p.errorf(call, "%s is not a comparison", args[0])
		}
		return args[0], nil
	case "Variable":
		return p.variable(call, nil)
	default:
		return nil, p.errorf(call, "unknown function %s", name)
	}
}

// bindCall parses Variable(name, min, max).Bind(val).
func (p *parser) bindCall(call *ast.CallExpr, sel *ast.SelectorExpr) (symbolic.Node, error) {
	if sel.Sel.Name != "Bind" {
		return nil, p.errorf(sel.Sel, "unknown method %s", sel.Sel.Name)
	}
	ctor, ok := sel.X.(*ast.CallExpr)
	if !ok {
		return nil, p.errorf(sel.X, "Bind can only be called on a Variable constructor")
	}
	if ident, ok := ctor.Fun.(*ast.Ident); !ok || ident.Name != "Variable" {
		return nil, p.errorf(sel.X, "Bind can only be called on a Variable constructor")
	}
	if len(call.Args) != 1 {
		return nil, p.errorf(call, "Bind expects 1 argument but got %d", len(call.Args))
	}
	val, err := p.constant(call.Args[0])
	if err != nil {
		return nil, err
	}
	return p.variable(ctor, &val)
}

// variable returns the variable of a constructor call.
// Calls with the same arguments return the same variable.
func (p *parser) variable(call *ast.CallExpr, val *int) (symbolic.Node, error) {
	if len(call.Args) != 3 {
		return nil, p.errorf(call, "Variable expects 3 arguments but got %d", len(call.Args))
	}
	lit, ok := call.Args[0].(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return nil, p.errorf(call.Args[0], "variable name needs to be a string literal")
	}
	name, err := strconv.Unquote(lit.Value)
	if err != nil {
		return nil, p.errorf(lit, "invalid variable name %s: %v", lit.Value, err)
	}
	lo, err := p.constant(call.Args[1])
	if err != nil {
		return nil, err
	}
	hi, err := p.constant(call.Args[2])
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("%q[%d-%d]", name, lo, hi)
	if val != nil {
		key += fmt.Sprintf("=%d", *val)
	}
	if n, ok := p.vars[key]; ok {
		return n, nil
	}
	n, err := symbolic.NewVariable(name, lo, hi)
	if err != nil {
		return nil, p.wrap(call, err)
	}
	if v, isVar := n.(*symbolic.Variable); isVar && val != nil {
		if _, err := v.Bind(*val); err != nil {
			return nil, p.wrap(call, err)
		}
	}
	p.vars[key] = n
	return n, nil
}
