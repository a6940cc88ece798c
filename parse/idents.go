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

package parse

import (
	"go/ast"
	goparser "go/parser"

	"github.com/gx-org/symbolic/base/ordered"
	"github.com/pkg/errors"
)

func identName(id *ast.Ident) string {
	return id.Name
}

func idents(done *ordered.Set[*ast.Ident], expr ast.Expr) {
	switch exprT := expr.(type) {
	case *ast.Ident:
		if exprT == nil {
			return
		}
		done.Add(exprT)
	case *ast.ParenExpr:
		idents(done, exprT.X)
	case *ast.UnaryExpr:
		idents(done, exprT.X)
	case *ast.BinaryExpr:
		idents(done, exprT.X)
		idents(done, exprT.Y)
	case *ast.CallExpr:
		// Function names are not free identifiers.
		if sel, ok := exprT.Fun.(*ast.SelectorExpr); ok {
			idents(done, sel.X)
		}
		for _, arg := range exprT.Args {
			idents(done, arg)
		}
	}
}

// Idents returns the free identifiers of an expression in order of first appearance.
func Idents(src string) ([]string, error) {
	expr, err := goparser.ParseExpr(src)
	if err != nil {
		return nil, errors.Errorf("cannot parse %q: %v", src, err)
	}
	done := ordered.NewSet(identName)
	idents(done, expr)
	names := make([]string, 0, done.Size())
	for id := range done.All() {
		names = append(names, id.Name)
	}
	return names, nil
}
