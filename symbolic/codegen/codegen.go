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

// Package codegen renders symbolic expressions as Go source code.
package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"io"
	"strconv"
	"strings"
	"text/template"

	"github.com/gx-org/symbolic/base/tmpl"
	"github.com/gx-org/symbolic/symbolic"
	"github.com/pkg/errors"
)

// Go renders nodes as Go expressions of type int.
// Only the code context is supported.
var Go *symbolic.Registry

func init() {
	Go = symbolic.NewRegistry("go", map[symbolic.Kind]symbolic.RenderFunc{
		symbolic.NumKind:      renderNum,
		symbolic.VariableKind: renderVariable,
		symbolic.SumKind:      renderSum,
		symbolic.MulKind:      renderMul,
		symbolic.DivKind:      renderDiv,
		symbolic.ModKind:      renderMod,
		symbolic.MinKind:      renderMin,
		symbolic.LtKind:       renderLt,
	})
}

func checkContext(r *symbolic.Registry, n symbolic.Node, ctx symbolic.Context) error {
	if ctx != symbolic.CodeContext {
		return symbolic.UnsupportedContext(r, n, ctx)
	}
	return nil
}

func renderNum(r *symbolic.Registry, n symbolic.Node, ctx symbolic.Context) (string, error) {
	if err := checkContext(r, n, ctx); err != nil {
		return "", err
	}
	return strconv.Itoa(n.(*symbolic.Num).Value()), nil
}

// reserved are the identifiers called by generated expressions.
// They cannot be redeclared by a variable or a function.
var reserved = map[string]bool{
	"min":      true,
	"floorDiv": true,
	"floorMod": true,
	"b2i":      true,
}

func checkIdentifier(what, name string) error {
	if !token.IsIdentifier(name) {
		return errors.Errorf("%s name %q is not a valid Go identifier", what, name)
	}
	if reserved[name] {
		return errors.Errorf("%s name %q is reserved in generated code", what, name)
	}
	return nil
}

func renderVariable(r *symbolic.Registry, n symbolic.Node, ctx symbolic.Context) (string, error) {
	if err := checkContext(r, n, ctx); err != nil {
		return "", err
	}
	name := n.(*symbolic.Variable).Name()
	if err := checkIdentifier("variable", name); err != nil {
		return "", err
	}
	return name, nil
}

func renderSum(r *symbolic.Registry, n symbolic.Node, ctx symbolic.Context) (string, error) {
	if err := checkContext(r, n, ctx); err != nil {
		return "", err
	}
	sum := n.(*symbolic.SumNode)
	terms, err := r.RenderAll(ctx, sum.Terms()...)
	if err != nil {
		return "", err
	}
	if c := sum.Constant(); c != 0 {
		terms = append(terms, strconv.Itoa(c))
	}
	return "(" + strings.Join(terms, " + ") + ")", nil
}

func renderMul(r *symbolic.Registry, n symbolic.Node, ctx symbolic.Context) (string, error) {
	if err := checkContext(r, n, ctx); err != nil {
		return "", err
	}
	a, b := n.(*symbolic.MulNode).Operands()
	ops, err := r.RenderAll(ctx, a, b)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(%s * %s)", ops[0], ops[1]), nil
}

// renderDivisor uses the native operator when the dividend is never negative.
// Otherwise, Go truncates towards zero and a helper from the preamble is called.
func renderDivisor(r *symbolic.Registry, n symbolic.Node, ctx symbolic.Context, x symbolic.Node, divisor int, op, helper string) (string, error) {
	if err := checkContext(r, n, ctx); err != nil {
		return "", err
	}
	s, err := r.Render(x, ctx)
	if err != nil {
		return "", err
	}
	if x.Min() >= 0 {
		return fmt.Sprintf("(%s %s %d)", s, op, divisor), nil
	}
	return fmt.Sprintf("%s(%s, %d)", helper, s, divisor), nil
}

func renderDiv(r *symbolic.Registry, n symbolic.Node, ctx symbolic.Context) (string, error) {
	div := n.(*symbolic.DivNode)
	return renderDivisor(r, n, ctx, div.X(), div.Divisor(), "/", "floorDiv")
}

func renderMod(r *symbolic.Registry, n symbolic.Node, ctx symbolic.Context) (string, error) {
	mod := n.(*symbolic.ModNode)
	return renderDivisor(r, n, ctx, mod.X(), mod.Divisor(), "%", "floorMod")
}

func renderMin(r *symbolic.Registry, n symbolic.Node, ctx symbolic.Context) (string, error) {
	if err := checkContext(r, n, ctx); err != nil {
		return "", err
	}
	a, b := n.(*symbolic.MinNode).Operands()
	ops, err := r.RenderAll(ctx, a, b)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("min(%s, %s)", ops[0], ops[1]), nil
}

func renderLt(r *symbolic.Registry, n symbolic.Node, ctx symbolic.Context) (string, error) {
	if err := checkContext(r, n, ctx); err != nil {
		return "", err
	}
	a, b := n.(*symbolic.LtNode).Operands()
	ops, err := r.RenderAll(ctx, a, b)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("b2i(%s < %s)", ops[0], ops[1]), nil
}

// Expr returns the Go expression computing a node.
func Expr(n symbolic.Node) (string, error) {
	return Go.Render(n, symbolic.CodeContext)
}

// Func is a Go function computing a node given the values of its variables.
type Func struct {
	Name   string
	Params []string
	Body   string
}

// NewFunc returns a function computing a node.
// Parameters are the variables of the node, ordered by key.
func NewFunc(name string, n symbolic.Node) (*Func, error) {
	if err := checkIdentifier("function", name); err != nil {
		return nil, err
	}
	f := &Func{Name: name}
	seen := make(map[string]*symbolic.Variable)
	for _, v := range n.Vars() {
		if other := seen[v.Name()]; other != nil {
			return nil, errors.Errorf("cannot generate %s: variables %s and %s have the same name", name, other.Key(), v.Key())
		}
		seen[v.Name()] = v
		f.Params = append(f.Params, v.Name())
	}
	var err error
	if f.Body, err = Expr(n); err != nil {
		return nil, errors.Wrapf(err, "cannot generate %s", name)
	}
	return f, nil
}

// Signature returns the parameter list of the function.
func (f *Func) Signature() (string, error) {
	if len(f.Params) == 0 {
		return "", nil
	}
	return tmpl.IterateFunc(f.Params, ", ", func(i int, p string) (string, error) {
		if i == len(f.Params)-1 {
			return p + " int", nil
		}
		return p, nil
	})
}

const preamble = `
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
`

var (
	funcTmpl = template.Must(template.New("funcTMPL").Parse(`
func {{.Name}}({{.Signature}}) int {
	return {{.Body}}
}
`))

	fileTmpl = template.Must(template.New("fileTMPL").Parse(`// Code generated by symdim. DO NOT EDIT.

package {{.Package}}
{{.Preamble}}{{.Funcs}}`))
)

// Write generates a Go file declaring a list of functions.
func Write(w io.Writer, pkg string, funcs ...*Func) error {
	if !token.IsIdentifier(pkg) {
		return errors.Errorf("package name %q is not a valid Go identifier", pkg)
	}
	body, err := tmpl.IterateTmpl(funcs, funcTmpl)
	if err != nil {
		return err
	}
	source, err := tmpl.Execute(fileTmpl, map[string]string{
		"Package":  pkg,
		"Preamble": preamble,
		"Funcs":    body,
	})
	if err != nil {
		return err
	}
	formatted, err := format.Source([]byte(source))
	if err != nil {
		// We copy the generated content to the writer for debugging.
		io.Copy(w, bytes.NewBufferString(source))
		return errors.Errorf("cannot format source code: %v", err)
	}
	_, err = w.Write(formatted)
	return err
}
