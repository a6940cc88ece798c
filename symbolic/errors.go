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

	"github.com/pkg/errors"
)

// Errors returned (or raised) by the package. Use errors.Is to test for them.
var (
	// ErrRange is returned when variable bounds are invalid or when a value is outside of the bounds.
	ErrRange = errors.New("out of range")

	// ErrRebind is returned when binding a variable which is already bound.
	ErrRebind = errors.New("variable already bound")

	// ErrUnbound is returned when reading the value of a variable which is not bound.
	ErrUnbound = errors.New("variable not bound")

	// ErrUnimplemented signals that a node kind or a rendering context has no implementation.
	// It is a bug in the caller or in the registry, not a data problem.
	ErrUnimplemented = errors.New("not implemented")
)

// internal wraps an error signaling a bug in the package.
func internal(err error) error {
	return fmt.Errorf("symbolic internal error. This is a bug. Error:\n%+v", err)
}
