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
package env

import (
	"fmt"

	"github.com/consensys/go-sygus/pkg/grammar"
	"github.com/consensys/go-sygus/pkg/value"
)

// Environment is responsible for running a program on a given input.  Runs
// must be deterministic.  An error indicates the program is ill-defined on the
// given input (e.g. it divides by zero).
type Environment interface {
	Run(program *grammar.Program, input []value.Value) (value.Value, error)
}

// Fault reports a program which could not be executed on a given input.
type Fault struct {
	// Program which faulted.
	Program *grammar.Program
	// Input on which it faulted.
	Input []value.Value
	// Underlying cause
	Cause error
}

// Error implements the error interface.
func (e *Fault) Error() string {
	return fmt.Sprintf("%s faulted on %v: %s", e.Program, e.Input, e.Cause)
}

// Unwrap returns the underlying cause of this fault.
func (e *Fault) Unwrap() error {
	return e.Cause
}

// Interpreter is an environment which executes programs by walking their
// trees, applying the semantics of each node to the values of its children.
type Interpreter struct{}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ Environment = (*Interpreter)(nil)

// NewInterpreter constructs a new tree-walking interpreter.
func NewInterpreter() *Interpreter {
	return &Interpreter{}
}

// Run a given program on a given input, producing a value or a fault.
func (p *Interpreter) Run(program *grammar.Program, input []value.Value) (value.Value, error) {
	val, err := eval(program, input)
	if err != nil {
		return nil, &Fault{program, input, err}
	}
	//
	return val, nil
}

func eval(program *grammar.Program, input []value.Value) (value.Value, error) {
	var (
		children = program.Children()
		args     = make([]value.Value, len(children))
	)
	//
	for i, child := range children {
		var err error
		//
		if args[i], err = eval(child, input); err != nil {
			return nil, err
		}
	}
	//
	return program.Rule().Semantics().Apply(args, input)
}
