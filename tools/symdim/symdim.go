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

// Package main parses symbolic dimension expressions and prints them.
//
// Usage:
//
//	symdim --vars=batch=1:128,seq=1:512 --bind=batch=32 --ctx=debug "batch*seq" "seq/2"
//
// With --pkg, a Go file is printed instead with one function per expression,
// named by --funcs.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gx-org/symbolic/parse"
	"github.com/gx-org/symbolic/shape"
	"github.com/gx-org/symbolic/symbolic"
	"github.com/gx-org/symbolic/symbolic/codegen"
	"github.com/gx-org/symbolic/tools/symflag"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

const goContext = "go"

var (
	vars     = symflag.VarDecls("vars", "comma-separated list of variable declarations name=min:max")
	bindings = symflag.Bindings("bind", "comma-separated list of variable values name=value")
	ctxName  = flag.String("ctx", symbolic.DebugContext.String(), "rendering context: code, debug, repr, or go")
	eval     = flag.Bool("eval", false, "print the value of each expression (all variables need to be bound)")
	pkg      = flag.String("pkg", "", "if set, print a Go file of that package computing each expression")
	funcs    = symflag.StringList("funcs", "comma-separated list of function names used with --pkg")
)

type renderer func(symbolic.Node) (string, error)

func newRenderer(name string) (renderer, error) {
	if name == goContext {
		return codegen.Expr, nil
	}
	ctx, err := symbolic.ParseContext(name)
	if err != nil {
		return nil, err
	}
	return func(n symbolic.Node) (string, error) {
		return symbolic.Render(n, nil, ctx)
	}, nil
}

func scope() (parse.Scope, error) {
	scope := make(parse.Scope, len(*vars))
	for _, decl := range *vars {
		if _, ok := scope[decl.Name]; ok {
			return nil, errors.Errorf("variable %s declared more than once", decl.Name)
		}
		n, err := decl.Variable()
		if err != nil {
			return nil, err
		}
		scope[decl.Name] = n
	}
	return scope, nil
}

func parseAll(srcs []string) (shape.Shape, error) {
	sc, err := scope()
	if err != nil {
		return nil, err
	}
	exprs := make(shape.Shape, len(srcs))
	for i, src := range srcs {
		if exprs[i], err = parse.Expr(src, sc); err != nil {
			return nil, err
		}
		klog.V(1).Infof("parsed %q: %s", src, exprs[i])
	}
	if err := exprs.BindAll(bindings); err != nil {
		return nil, err
	}
	return exprs, nil
}

func printExprs(w io.Writer, exprs shape.Shape) error {
	render, err := newRenderer(*ctxName)
	if err != nil {
		return err
	}
	for _, expr := range exprs {
		s, err := render(expr)
		if err != nil {
			return err
		}
		if !*eval {
			fmt.Fprintln(w, s)
			continue
		}
		val, err := symbolic.Eval(expr)
		if err != nil {
			return errors.Wrapf(err, "cannot evaluate %s", s)
		}
		fmt.Fprintf(w, "%s = %d\n", s, val)
	}
	return nil
}

func printGo(w io.Writer, exprs shape.Shape) error {
	if len(*funcs) != len(exprs) {
		return errors.Errorf("got %d function names for %d expressions", len(*funcs), len(exprs))
	}
	fs := make([]*codegen.Func, len(exprs))
	for i, expr := range exprs {
		var err error
		if fs[i], err = codegen.NewFunc((*funcs)[i], expr); err != nil {
			return err
		}
	}
	return codegen.Write(w, *pkg, fs...)
}

func run(w io.Writer, srcs []string) error {
	if len(srcs) == 0 {
		return errors.Errorf("no expression to process")
	}
	exprs, err := parseAll(srcs)
	if err != nil {
		return err
	}
	if *pkg != "" {
		return printGo(w, exprs)
	}
	return printExprs(w, exprs)
}

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if err := run(os.Stdout, flag.Args()); err != nil {
		klog.Exitf("%+v", err)
	}
}
