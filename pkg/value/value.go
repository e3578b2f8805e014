// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package value

import (
	"fmt"
	"strconv"
)

// Sort identifies the kind of a value, such as an integer or a boolean.
type Sort uint8

const (
	// INT is the sort of (unbounded in principle, 64bit in practice) integers.
	INT Sort = iota
	// BOOL is the sort of booleans.
	BOOL
)

func (s Sort) String() string {
	switch s {
	case INT:
		return "Int"
	case BOOL:
		return "Bool"
	}
	//
	return fmt.Sprintf("Sort(%d)", uint8(s))
}

// ParseSort converts a sort name as it appears in a task file into a Sort.
func ParseSort(name string) (Sort, bool) {
	switch name {
	case "Int":
		return INT, true
	case "Bool":
		return BOOL, true
	}
	//
	return 0, false
}

// Value represents the result of running a program on some input.  Values are
// immutable, and two values are equal when they have the same sort and
// contents.
type Value interface {
	// Sort returns the sort of this value.
	Sort() Sort
	// Equals checks whether this value is the same as another.
	Equals(Value) bool
	// String returns this value in task file syntax, such as "(- 1)" for a
	// negative integer.
	String() string
}

// Int is an integer value.
type Int int64

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ Value = Int(0)

// Sort of an integer value.
func (v Int) Sort() Sort { return INT }

// Equals implementation for the Value interface.
func (v Int) Equals(other Value) bool {
	o, ok := other.(Int)
	return ok && o == v
}

func (v Int) String() string {
	if v < 0 {
		return fmt.Sprintf("(- %d)", -int64(v))
	}
	//
	return strconv.FormatInt(int64(v), 10)
}

// Bool is a boolean value.
type Bool bool

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ Value = Bool(false)

// Sort of a boolean value.
func (v Bool) Sort() Sort { return BOOL }

// Equals implementation for the Value interface.
func (v Bool) Equals(other Value) bool {
	o, ok := other.(Bool)
	return ok && o == v
}

func (v Bool) String() string {
	return strconv.FormatBool(bool(v))
}

// ParseLiteral parses a literal symbol (e.g. "12" or "true") into a value.
// Observe that negative literals in task files are written as applications of
// unary minus, and hence are not literals.
func ParseLiteral(text string) (Value, bool) {
	switch text {
	case "true":
		return Bool(true), true
	case "false":
		return Bool(false), true
	}
	// Only plain decimal numerals are literals.
	for _, c := range text {
		if c < '0' || c > '9' {
			return nil, false
		}
	}
	//
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return Int(n), true
	}
	//
	return nil, false
}

// Equals checks whether two value sequences are pairwise equal.
func Equals(lhs []Value, rhs []Value) bool {
	if len(lhs) != len(rhs) {
		return false
	}
	//
	for i := range lhs {
		if !lhs[i].Equals(rhs[i]) {
			return false
		}
	}
	//
	return true
}
