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
package example

import (
	"slices"
	"strings"

	"github.com/consensys/go-sygus/pkg/env"
	"github.com/consensys/go-sygus/pkg/grammar"
	"github.com/consensys/go-sygus/pkg/value"
)

// IOExample pairs an input for the function being synthesised with the output
// it is expected to produce.
type IOExample struct {
	Input  []value.Value
	Output value.Value
}

// NewIOExample constructs a new example.
func NewIOExample(output value.Value, input ...value.Value) IOExample {
	return IOExample{input, output}
}

// Equals checks whether two examples have the same input and output.
func (e IOExample) Equals(other IOExample) bool {
	return value.Equals(e.Input, other.Input) && e.Output.Equals(other.Output)
}

// Accepts checks whether a given program produces the expected output for this
// example.  A program which faults is not accepted.
func (e IOExample) Accepts(environment env.Environment, program *grammar.Program) bool {
	actual, err := environment.Run(program, e.Input)
	//
	return err == nil && actual.Equals(e.Output)
}

func (e IOExample) String() string {
	var builder strings.Builder
	//
	builder.WriteString("(")
	//
	for i, v := range e.Input {
		if i != 0 {
			builder.WriteString(" ")
		}
		//
		builder.WriteString(v.String())
	}
	//
	builder.WriteString(") => ")
	builder.WriteString(e.Output.String())
	//
	return builder.String()
}

// Contains checks whether a given example is in a list of examples.
func Contains(examples []IOExample, example IOExample) bool {
	return slices.ContainsFunc(examples, example.Equals)
}

// Space is a (potentially unbounded) collection of examples which together
// define when a program is correct.
type Space interface {
	// Examples returns a finite subset of at most n examples from this space.
	// For a finite space, n == 0 returns all examples.
	Examples(n uint) []IOExample
	// Check whether a given program is correct over this space, returning nil
	// if so.  Otherwise, return an example witnessing a disagreement.  An
	// error indicates the space itself could not be checked.
	Check(program *grammar.Program) (*IOExample, error)
}

// FiniteSpace is a space consisting of a fixed, finite list of examples.
type FiniteSpace struct {
	environment env.Environment
	examples    []IOExample
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ Space = (*FiniteSpace)(nil)

// NewFiniteSpace constructs a space from a given list of examples.
func NewFiniteSpace(environment env.Environment, examples ...IOExample) *FiniteSpace {
	return &FiniteSpace{environment, examples}
}

// Len returns the number of examples in this space.
func (s *FiniteSpace) Len() uint {
	return uint(len(s.examples))
}

// Examples returns the first n examples of this space, or all examples when n
// is zero.
func (s *FiniteSpace) Examples(n uint) []IOExample {
	if n == 0 || n >= uint(len(s.examples)) {
		return slices.Clone(s.examples)
	}
	//
	return slices.Clone(s.examples[:n])
}

// Check a program against every example in this space, returning the first
// one it disagrees with (if any).
func (s *FiniteSpace) Check(program *grammar.Program) (*IOExample, error) {
	for _, e := range s.examples {
		if !e.Accepts(s.environment, program) {
			return &e, nil
		}
	}
	//
	return nil, nil
}
