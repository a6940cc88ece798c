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

// Package shape represents the shape of arrays with symbolic dimensions.
package shape

import (
	"strings"

	"github.com/gx-org/backend/dtype"
	backendshape "github.com/gx-org/backend/shape"
	"github.com/gx-org/symbolic/base/ordered"
	"github.com/gx-org/symbolic/symbolic"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Shape is a list of symbolic dimensions.
type Shape []symbolic.Node

// Of returns a shape given a list of dimensions.
// Each dimension is either an integer or a symbolic node.
func Of(dims ...any) (Shape, error) {
	s := make(Shape, len(dims))
	for i, dim := range dims {
		switch dimT := dim.(type) {
		case int:
			s[i] = symbolic.Const(dimT)
		case int32:
			s[i] = symbolic.ConstOf(dimT)
		case int64:
			s[i] = symbolic.ConstOf(dimT)
		case symbolic.Node:
			s[i] = dimT
		case nil:
			return nil, errors.Errorf("axis %d: nil dimension", i)
		default:
			return nil, errors.Errorf("axis %d: cannot use %v of type %T as a dimension", i, dim, dim)
		}
	}
	return s, nil
}

// Ints returns a shape of constant dimensions.
func Ints(dims ...int) Shape {
	s := make(Shape, len(dims))
	for i, dim := range dims {
		s[i] = symbolic.Const(dim)
	}
	return s
}

// Key returns the canonical key of the shape.
// Two shapes with the same key are equal.
func (s Shape) Key() string {
	keys := make([]string, len(s))
	for i, dim := range s {
		keys[i] = dim.Key()
	}
	return "(" + strings.Join(keys, ", ") + ")"
}

// String representation of the shape.
func (s Shape) String() string {
	return s.Key()
}

// Vars returns the variables of all the dimensions, sorted by key.
func (s Shape) Vars() []*symbolic.Variable {
	set := ordered.NewSet(func(v *symbolic.Variable) string { return v.Key() })
	for _, dim := range s {
		set.Add(dim.Vars()...)
	}
	return set.Sorted()
}

// Substitute variables in all the dimensions.
func (s Shape) Substitute(sub map[*symbolic.Variable]symbolic.Node) Shape {
	r := make(Shape, len(s))
	for i, dim := range s {
		r[i] = symbolic.Substitute(dim, sub)
	}
	return r
}

// Unbind returns the template of a shape, that is the shape with all its variables unbound,
// and the values of the bound variables indexed by variable names.
// An error is returned if two variables with the same name are bound to different values.
func (s Shape) Unbind() (Shape, map[string]int, error) {
	vals := make(map[string]int)
	sub := make(map[*symbolic.Variable]symbolic.Node)
	for _, v := range s.Vars() {
		if !v.Bound() {
			continue
		}
		unbound, val, err := v.Unbind()
		if err != nil {
			return nil, nil, err
		}
		if prev, ok := vals[v.Name()]; ok && prev != val {
			return nil, nil, errors.Errorf("shape %s: variable %s bound to %d and %d", s, v.Name(), prev, val)
		}
		vals[v.Name()] = val
		sub[v] = unbound
	}
	if len(sub) == 0 {
		return s, vals, nil
	}
	return s.Substitute(sub), vals, nil
}

// BindAll binds every variable of the shape with a value in vals.
// Variables already bound to the same value are ignored.
// All binding failures are returned.
func (s Shape) BindAll(vals map[string]int) error {
	var errs error
	for _, v := range s.Vars() {
		val, ok := vals[v.Name()]
		if !ok {
			continue
		}
		if cur, err := v.Val(); err == nil && cur == val {
			continue
		}
		if _, err := v.Bind(val); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

// MissingBindings returns the variables of the shape that are not bound.
func (s Shape) MissingBindings() []*symbolic.Variable {
	var missing []*symbolic.Variable
	for _, v := range s.Vars() {
		if !v.Bound() {
			missing = append(missing, v)
		}
	}
	return missing
}

// Numel returns the number of elements of an array of that shape.
func (s Shape) Numel() symbolic.Node {
	var numel symbolic.Node = symbolic.Const(1)
	for _, dim := range s {
		numel = symbolic.Mul(numel, dim)
	}
	return numel
}

func missingError(s Shape, missing []*symbolic.Variable) error {
	names := make([]string, len(missing))
	for i, v := range missing {
		names[i] = v.Key()
	}
	return errors.Wrapf(symbolic.ErrUnbound, "shape %s: variables %s are not bound", s, strings.Join(names, ", "))
}

// Eval returns the value of all the dimensions.
func (s Shape) Eval() ([]int, error) {
	if missing := s.MissingBindings(); len(missing) > 0 {
		return nil, missingError(s, missing)
	}
	vals := make([]int, len(s))
	for i, dim := range s {
		var err error
		if vals[i], err = symbolic.Eval(dim); err != nil {
			return nil, err
		}
	}
	return vals, nil
}

// Concrete returns the backend shape of an array of a given data type
// with the current values of the dimensions.
func (s Shape) Concrete(dt dtype.DataType) (*backendshape.Shape, error) {
	axes, err := s.Eval()
	if err != nil {
		return nil, err
	}
	return &backendshape.Shape{
		DType:       dt,
		AxisLengths: axes,
	}, nil
}

// Equal returns true if two shapes have the same key.
func Equal(a, b Shape) bool {
	return a.Key() == b.Key()
}
