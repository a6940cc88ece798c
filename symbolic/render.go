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
	"maps"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Context selects the textual projection of a node.
type Context int

const (
	// CodeContext renders bare variable names, for building expressions or backend code.
	CodeContext Context = iota
	// DebugContext renders variables with their bounds and values.
	// It is the canonical key of a node.
	DebugContext
	// ReprContext renders Go-syntax constructor calls reconstructing the node.
	ReprContext
)

// Contexts returns all the rendering contexts.
func Contexts() []Context {
	return []Context{CodeContext, DebugContext, ReprContext}
}

// String returns the name of the context.
func (ctx Context) String() string {
	switch ctx {
	case CodeContext:
		return "code"
	case DebugContext:
		return "debug"
	case ReprContext:
		return "repr"
	default:
		return fmt.Sprintf("Context(%d)", int(ctx))
	}
}

// ParseContext returns a context given its name.
func ParseContext(s string) (Context, error) {
	for _, ctx := range Contexts() {
		if ctx.String() == s {
			return ctx, nil
		}
	}
	return 0, errors.Errorf("unknown rendering context %q", s)
}

type (
	// RenderFunc renders a node in a given context.
	// Operands are rendered by calling the registry again.
	RenderFunc func(r *Registry, n Node, ctx Context) (string, error)

	// Registry maps node kinds to render functions.
	// A registry is immutable once created.
	Registry struct {
		name  string
		funcs map[Kind]RenderFunc
	}
)

// Default is the registry used to compute keys.
// It supports all node kinds in all contexts.
var Default *Registry

func init() {
	Default = NewRegistry("default", map[Kind]RenderFunc{
		NumKind:      renderNum,
		VariableKind: renderVariable,
		SumKind:      renderSum,
		MulKind:      renderMul,
		DivKind:      renderDiv,
		ModKind:      renderMod,
		MinKind:      renderMin,
		LtKind:       renderLt,
	})
}

// NewRegistry returns a new registry given render functions for each kind.
func NewRegistry(name string, funcs map[Kind]RenderFunc) *Registry {
	return &Registry{name: name, funcs: maps.Clone(funcs)}
}

// Name of the registry.
func (r *Registry) Name() string {
	return r.name
}

// With returns a copy of the registry with the function for a kind replaced by f.
func (r *Registry) With(name string, kind Kind, f RenderFunc) *Registry {
	funcs := maps.Clone(r.funcs)
	if funcs == nil {
		funcs = make(map[Kind]RenderFunc)
	}
	funcs[kind] = f
	return &Registry{name: name, funcs: funcs}
}

// Render a node in a given context.
func (r *Registry) Render(n Node, ctx Context) (string, error) {
	kind := n.Kind()
	if kind != NumKind && kind != VariableKind && n.Min() == n.Max() {
		return "", internal(errors.Errorf("%s node has a constant range [%d, %d] and should have been folded", kind, n.Min(), n.Max()))
	}
	f := r.funcs[kind]
	if f == nil {
		return "", errors.Wrapf(ErrUnimplemented, "registry %q cannot render %s nodes", r.name, kind)
	}
	return f(r, n, ctx)
}

// RenderAll renders a list of nodes in a given context.
func (r *Registry) RenderAll(ctx Context, nodes ...Node) ([]string, error) {
	ss := make([]string, len(nodes))
	for i, n := range nodes {
		var err error
		if ss[i], err = r.Render(n, ctx); err != nil {
			return nil, err
		}
	}
	return ss, nil
}

// Render a node using a registry. Default is used if the registry is nil.
func Render(n Node, r *Registry, ctx Context) (string, error) {
	if r == nil {
		r = Default
	}
	return r.Render(n, ctx)
}

// Complete returns an error for each node kind that the registry cannot render.
func Complete(r *Registry) error {
	var errs error
	for _, kind := range Kinds() {
		if r.funcs[kind] != nil {
			continue
		}
		errs = multierr.Append(errs, errors.Wrapf(ErrUnimplemented, "registry %q has no render function for %s nodes", r.name, kind))
	}
	return errs
}

// UnsupportedContext returns the error of a render function not supporting a context.
func UnsupportedContext(r *Registry, n Node, ctx Context) error {
	return errors.Wrapf(ErrUnimplemented, "registry %q cannot render %s nodes in %s context", r.name, n.Kind(), ctx)
}
