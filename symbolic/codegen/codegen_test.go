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

package codegen_test

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/symbolic/symbolic"
	"github.com/gx-org/symbolic/symbolic/codegen"
	"github.com/pkg/errors"
)

func TestExpr(t *testing.T) {
	x := symbolic.MustVariable("x", 0, 10)
	y := symbolic.MustVariable("y", 1, 5)
	c := symbolic.Const
	tests := []struct {
		node symbolic.Node
		want string
	}{
		{node: c(-4), want: "-4"},
		{node: x, want: "x"},
		{node: symbolic.Add(x, c(3)), want: "(x + 3)"},
		{node: symbolic.Sub(x, y), want: "(x + (y * -1))"},
		{node: symbolic.Mul(x, y), want: "(x * y)"},
		{node: symbolic.FloorDiv(x, 3), want: "(x / 3)"},
		{node: symbolic.Mod(x, 3), want: "(x % 3)"},
		{node: symbolic.FloorDiv(symbolic.Sub(x, c(5)), 3), want: "floorDiv((x + -5), 3)"},
		{node: symbolic.Mod(symbolic.Neg(x), 4), want: "floorMod((x * -1), 4)"},
		{node: symbolic.MinOf(x, y), want: "min(x, y)"},
		{node: symbolic.LessThan(x, y), want: "b2i(x < y)"},
	}
	for i, test := range tests {
		got, err := codegen.Expr(test.node)
		if err != nil {
			t.Errorf("test %d: %+v", i, err)
			continue
		}
		if got != test.want {
			t.Errorf("test %d: got %s but want %s", i, got, test.want)
		}
	}
}

func TestGoRegistry(t *testing.T) {
	if err := symbolic.Complete(codegen.Go); err != nil {
		t.Errorf("Go registry is not complete: %+v", err)
	}
	x := symbolic.MustVariable("x", 0, 10)
	if _, err := codegen.Go.Render(x, symbolic.DebugContext); !errors.Is(err, symbolic.ErrUnimplemented) {
		t.Errorf("got error %v but want %v", err, symbolic.ErrUnimplemented)
	}
	bad := symbolic.MustVariable("not-an-ident", 0, 10)
	if _, err := codegen.Expr(symbolic.Add(bad, symbolic.Const(1))); err == nil {
		t.Errorf("expected an error for an invalid identifier")
	}
}

func TestNewFunc(t *testing.T) {
	batch := symbolic.MustVariable("batch", 1, 128)
	seq := symbolic.MustVariable("seq", 1, 512)
	f, err := codegen.NewFunc("numel", symbolic.Mul(batch, seq))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if diff := cmp.Diff([]string{"batch", "seq"}, f.Params); diff != "" {
		t.Errorf("incorrect parameters (-want +got):\n%s", diff)
	}
	sig, err := f.Signature()
	if err != nil {
		t.Fatal(err)
	}
	if want := "batch, seq int"; sig != want {
		t.Errorf("got signature %q but want %q", sig, want)
	}
	other := symbolic.MustVariable("batch", 1, 64)
	if _, err := codegen.NewFunc("f", symbolic.Add(batch, other)); err == nil {
		t.Errorf("expected an error for variables sharing a name")
	}
	if _, err := codegen.NewFunc("1f", batch); err == nil {
		t.Errorf("expected an error for an invalid function name")
	}
}

func TestReservedNames(t *testing.T) {
	for _, name := range []string{"min", "floorDiv", "floorMod", "b2i"} {
		v := symbolic.MustVariable(name, -4, 4)
		_, err := codegen.Expr(symbolic.MinOf(v, symbolic.FloorDiv(v, 3)))
		if err == nil || !strings.Contains(err.Error(), "reserved") {
			t.Errorf("variable %s: got error %v but want a reserved name error", name, err)
		}
		if _, err := codegen.NewFunc("f", v); err == nil {
			t.Errorf("variable %s: expected an error from NewFunc", name)
		}
		x := symbolic.MustVariable("x", 0, 10)
		_, err = codegen.NewFunc(name, x)
		if err == nil || !strings.Contains(err.Error(), "reserved") {
			t.Errorf("function %s: got error %v but want a reserved name error", name, err)
		}
	}
}

func TestWrite(t *testing.T) {
	batch := symbolic.MustVariable("batch", 1, 128)
	seq := symbolic.MustVariable("seq", 1, 512)
	var funcs []*codegen.Func
	for name, n := range map[string]symbolic.Node{
		"numel":  symbolic.Mul(batch, seq),
		"blocks": symbolic.FloorDiv(symbolic.Sub(seq, symbolic.Const(8)), 16),
		"one":    symbolic.Const(1),
	} {
		f, err := codegen.NewFunc(name, n)
		if err != nil {
			t.Fatalf("%+v", err)
		}
		funcs = append(funcs, f)
	}
	var out strings.Builder
	if err := codegen.Write(&out, "dims", funcs...); err != nil {
		t.Fatalf("%+v\n%s", err, out.String())
	}
	src := out.String()
	file, err := parser.ParseFile(token.NewFileSet(), "dims.go", src, 0)
	if err != nil {
		t.Fatalf("generated code does not parse: %v\n%s", err, src)
	}
	if file.Name.Name != "dims" {
		t.Errorf("got package %s but want dims", file.Name.Name)
	}
	decls := map[string]bool{}
	for _, decl := range file.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok {
			decls[fn.Name.Name] = true
		}
	}
	for _, name := range []string{"floorDiv", "floorMod", "b2i", "numel", "blocks", "one"} {
		if !decls[name] {
			t.Errorf("function %s not found in generated code:\n%s", name, src)
		}
	}
	if !strings.Contains(src, "floorDiv((seq + -8), 16)") {
		t.Errorf("generated code does not call floorDiv:\n%s", src)
	}
	if err := codegen.Write(&out, "not a package"); err == nil {
		t.Errorf("expected an error for an invalid package name")
	}
}
