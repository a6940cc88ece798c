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

// Package symflag provides flag types for symbolic dimension tools.
package symflag

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/gx-org/symbolic/symbolic"
	"github.com/pkg/errors"
)

func splitList(values string) []string {
	var list []string
	for _, value := range strings.Split(values, ",") {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		list = append(list, value)
	}
	return list
}

func splitPair(value, sep string) (string, string, error) {
	name, rhs, ok := strings.Cut(value, sep)
	if !ok {
		return "", "", errors.Errorf("missing %q in %q", sep, value)
	}
	return strings.TrimSpace(name), strings.TrimSpace(rhs), nil
}

func atoi(name, s string) (int, error) {
	val, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Errorf("%s: %q is not an integer", name, s)
	}
	return val, nil
}

// VarDecl declares a variable with its bounds.
type VarDecl struct {
	Name     string
	Min, Max int
}

// Variable returns the node declared by the variable declaration.
func (d VarDecl) Variable() (symbolic.Node, error) {
	return symbolic.NewVariable(d.Name, d.Min, d.Max)
}

func (d VarDecl) String() string {
	return fmt.Sprintf("%s=%d:%d", d.Name, d.Min, d.Max)
}

// VarDeclList is a flag value parsing a comma-separated list of name=min:max.
type VarDeclList struct {
	list *[]VarDecl
}

func (l *VarDeclList) String() string {
	if l == nil || l.list == nil {
		return ""
	}
	ss := make([]string, len(*l.list))
	for i, d := range *l.list {
		ss[i] = d.String()
	}
	return strings.Join(ss, ",")
}

// Set parses a list of variable declarations and appends them to the list.
func (l *VarDeclList) Set(values string) error {
	for _, value := range splitList(values) {
		name, bounds, err := splitPair(value, "=")
		if err != nil {
			return err
		}
		lo, hi, err := splitPair(bounds, ":")
		if err != nil {
			return err
		}
		d := VarDecl{Name: name}
		if d.Min, err = atoi(name, lo); err != nil {
			return err
		}
		if d.Max, err = atoi(name, hi); err != nil {
			return err
		}
		*l.list = append(*l.list, d)
	}
	return nil
}

// NewVarDeclList returns a flag value storing declarations in list.
func NewVarDeclList(list *[]VarDecl) *VarDeclList {
	return &VarDeclList{list: list}
}

// VarDecls returns a flag to declare variables from the command line.
func VarDecls(name, doc string) *[]VarDecl {
	var list []VarDecl
	flag.Var(NewVarDeclList(&list), name, doc)
	return &list
}

// BindingMap is a flag value parsing a comma-separated list of name=value.
type BindingMap struct {
	vals map[string]int
}

func (m *BindingMap) String() string {
	if m == nil {
		return ""
	}
	ss := make([]string, 0, len(m.vals))
	for name, val := range m.vals {
		ss = append(ss, fmt.Sprintf("%s=%d", name, val))
	}
	return strings.Join(ss, ",")
}

// Set parses a list of bindings and adds them to the map.
func (m *BindingMap) Set(values string) error {
	for _, value := range splitList(values) {
		name, rhs, err := splitPair(value, "=")
		if err != nil {
			return err
		}
		val, err := atoi(name, rhs)
		if err != nil {
			return err
		}
		if prev, ok := m.vals[name]; ok && prev != val {
			return errors.Errorf("%s bound to %d and %d", name, prev, val)
		}
		m.vals[name] = val
	}
	return nil
}

// NewBindingMap returns a flag value storing bindings in vals.
func NewBindingMap(vals map[string]int) *BindingMap {
	return &BindingMap{vals: vals}
}

// Bindings returns a flag to bind variables to values from the command line.
func Bindings(name, doc string) map[string]int {
	vals := make(map[string]int)
	flag.Var(NewBindingMap(vals), name, doc)
	return vals
}

type stringList struct {
	list *[]string
}

func (sl *stringList) String() string {
	return ""
}

func (sl *stringList) Set(values string) error {
	*sl.list = append(*sl.list, splitList(values)...)
	return nil
}

// StringList returns a flag to pass a list of string from the command line.
func StringList(name, doc string) *[]string {
	var list []string
	flag.Var(&stringList{&list}, name, doc)
	return &list
}
