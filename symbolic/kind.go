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

import "fmt"

// Kind is the tag of a concrete node type.
type Kind int

// The set of node kinds is closed: every Node returned by this package has one of these kinds.
const (
	NumKind Kind = iota
	VariableKind
	SumKind
	MulKind
	DivKind
	ModKind
	MinKind
	LtKind
	numKinds
)

var kindNames = [numKinds]string{
	NumKind:      "num",
	VariableKind: "variable",
	SumKind:      "sum",
	MulKind:      "mul",
	DivKind:      "div",
	ModKind:      "mod",
	MinKind:      "min",
	LtKind:       "lt",
}

// Kinds returns all the node kinds.
func Kinds() []Kind {
	kinds := make([]Kind, numKinds)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// String returns the name of the kind.
func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}
