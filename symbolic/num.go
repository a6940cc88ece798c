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
	"math"
	"strconv"

	"github.com/gomlx/exceptions"
	"golang.org/x/exp/constraints"
)

// Num is a constant integer.
type Num struct {
	val int
}

var _ Node = (*Num)(nil)

// Const returns a constant node.
func Const(val int) *Num {
	return &Num{val: val}
}

// ConstOf returns a constant node from any integer type.
func ConstOf[T constraints.Integer](val T) *Num {
	return Const(int(val))
}

// Value of the constant.
func (n *Num) Value() int {
	return n.val
}

// Kind of the node.
func (n *Num) Kind() Kind {
	return NumKind
}

// Min returns the value of the constant.
func (n *Num) Min() int {
	return n.val
}

// Max returns the value of the constant.
func (n *Num) Max() int {
	return n.val
}

// Key returns the decimal representation of the constant.
func (n *Num) Key() string {
	return strconv.Itoa(n.val)
}

// Vars returns nil: a constant has no variable.
func (n *Num) Vars() []*Variable {
	return nil
}

func (n *Num) String() string {
	return "<" + n.Key() + ">"
}

func (n *Num) lessThan(b Node) Node {
	if bNum, ok := b.(*Num); ok {
		return Const(b2i(n.val < bNum.val))
	}
	return boundedLessThan(n, b)
}

func (n *Num) substitute(map[string]Node) Node {
	return n
}

func (n *Num) eval() (int, error) {
	return n.val, nil
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

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

func ceilDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) == (b < 0)) {
		q++
	}
	return q
}

// panicRange panics with a programming error reported as an ErrRange.
func panicRange(format string, a ...any) {
	exceptions.Panicf("%v: "+format, append([]any{ErrRange}, a...)...)
}

// addInt returns a+b. It panics if the result does not fit in an int.
func addInt(a, b int) int {
	r := a + b
	if (b > 0 && r < a) || (b < 0 && r > a) {
		panicRange("%d+%d overflows int", a, b)
	}
	return r
}

// mulInt returns a*b. It panics if the result does not fit in an int.
func mulInt(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	r := a * b
	if r/b != a || (a == -1 && b == math.MinInt) || (b == -1 && a == math.MinInt) {
		panicRange("%d*%d overflows int", a, b)
	}
	return r
}
