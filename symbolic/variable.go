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
	"sync/atomic"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// Variable is a named integer in a bounded range.
// It can be bound once to a concrete value.
type Variable struct {
	name   string
	lo, hi int
	val    atomic.Pointer[int]
}

var _ Node = (*Variable)(nil)

// NewVariable returns a new variable node given a name and inclusive bounds.
// If the range is a single value, the value is returned as a constant
// instead of a variable.
func NewVariable(name string, min, max int) (Node, error) {
	if min < 0 || min > max {
		return nil, errors.Wrapf(ErrRange, "invalid variable %s with range [%d, %d]", name, min, max)
	}
	if min == max {
		return Const(min), nil
	}
	return &Variable{name: name, lo: min, hi: max}, nil
}

// MustVariable returns a new variable. It panics if the bounds are invalid
// or if they do not define a variable.
func MustVariable(name string, min, max int) *Variable {
	n, err := NewVariable(name, min, max)
	if err != nil {
		exceptions.Panicf("%+v", err)
	}
	v, ok := n.(*Variable)
	if !ok {
		exceptions.Panicf("range [%d, %d] of %s is a single value", min, max, name)
	}
	return v
}

// Name of the variable.
func (v *Variable) Name() string {
	return v.name
}

// Kind of the node.
func (v *Variable) Kind() Kind {
	return VariableKind
}

// Min returns the lower bound of the variable.
func (v *Variable) Min() int {
	return v.lo
}

// Max returns the upper bound of the variable.
func (v *Variable) Max() int {
	return v.hi
}

// Key returns the debug rendering of the variable.
// The key of a bound variable includes its value.
func (v *Variable) Key() string {
	return mustRender(v)
}

// Vars returns the variable itself.
func (v *Variable) Vars() []*Variable {
	return []*Variable{v}
}

func (v *Variable) String() string {
	return "<" + v.Key() + ">"
}

// Bound returns true if a value has been bound to the variable.
func (v *Variable) Bound() bool {
	return v.val.Load() != nil
}

// Val returns the value bound to the variable.
func (v *Variable) Val() (int, error) {
	val := v.val.Load()
	if val == nil {
		return 0, errors.Wrapf(ErrUnbound, "cannot access the value of %s", v)
	}
	return *val, nil
}

// Bind a value to the variable. A variable can only be bound once.
// Bind returns the variable itself.
func (v *Variable) Bind(val int) (*Variable, error) {
	if v.Bound() {
		return nil, errors.Wrapf(ErrRebind, "cannot bind %d to %s", val, v)
	}
	if val < v.lo || val > v.hi {
		return nil, errors.Wrapf(ErrRange, "cannot bind %d to %s", val, v)
	}
	if !v.val.CompareAndSwap(nil, &val) {
		return nil, errors.Wrapf(ErrRebind, "cannot bind %d to %s", val, v)
	}
	return v, nil
}

// Unbind returns an unbound copy of the variable and the value bound to the variable.
// The variable is not modified.
func (v *Variable) Unbind() (*Variable, int, error) {
	val, err := v.Val()
	if err != nil {
		return nil, 0, errors.Wrapf(ErrUnbound, "cannot unbind %s", v)
	}
	return &Variable{name: v.name, lo: v.lo, hi: v.hi}, val, nil
}

func (v *Variable) lessThan(b Node) Node {
	return boundedLessThan(v, b)
}

func (v *Variable) substitute(sub map[string]Node) Node {
	if r, ok := sub[v.Key()]; ok {
		return r
	}
	return v
}

func (v *Variable) eval() (int, error) {
	return v.Val()
}
