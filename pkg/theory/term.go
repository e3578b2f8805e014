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
package theory

import (
	"fmt"
	"strings"

	"github.com/consensys/go-sygus/pkg/value"
)

// Function is anything which can be applied to a list of argument values, such
// as a built-in operator or a user-defined macro.
type Function interface {
	Name() string
	Apply(args []value.Value, input []value.Value) (value.Value, error)
}

// Term is an expression appearing in a task file outside of a grammar, such as
// the body of a define-fun or the right-hand side of a constraint.  Terms are
// evaluated against an environment which binds their variables by position.
type Term interface {
	Eval(env []value.Value) (value.Value, error)
	String() string
}

// Var reads a variable bound in the environment by position.
type Var struct {
	name  string
	index uint
}

// NewVar constructs a variable term.
func NewVar(name string, index uint) *Var {
	return &Var{name, index}
}

// Name returns the name of this variable.
func (t *Var) Name() string {
	return t.name
}

// Index returns the position of this variable in the environment.
func (t *Var) Index() uint {
	return t.index
}

// Eval returns the value bound to this variable.
func (t *Var) Eval(env []value.Value) (value.Value, error) {
	if t.index >= uint(len(env)) {
		return nil, fmt.Errorf("unbound variable %s", t.name)
	}
	//
	return env[t.index], nil
}

func (t *Var) String() string {
	return t.name
}

// Lit is a literal value.
type Lit struct {
	val value.Value
}

// NewLit constructs a literal term.
func NewLit(val value.Value) *Lit {
	return &Lit{val}
}

// Value returns the value of this literal.
func (t *Lit) Value() value.Value {
	return t.val
}

// Eval returns the literal value.
func (t *Lit) Eval(_ []value.Value) (value.Value, error) {
	return t.val, nil
}

func (t *Lit) String() string {
	return t.val.String()
}

// Call applies a function to zero or more argument terms.
type Call struct {
	fn   Function
	args []Term
}

// NewCall constructs a function application term.
func NewCall(fn Function, args ...Term) *Call {
	return &Call{fn, args}
}

// Function returns the function being applied.
func (t *Call) Function() Function {
	return t.fn
}

// Args returns the argument terms.
func (t *Call) Args() []Term {
	return t.args
}

// Eval evaluates all arguments and applies the function to them.
func (t *Call) Eval(env []value.Value) (value.Value, error) {
	args := make([]value.Value, len(t.args))
	//
	for i, arg := range t.args {
		var err error
		//
		if args[i], err = arg.Eval(env); err != nil {
			return nil, err
		}
	}
	//
	return t.fn.Apply(args, env)
}

func (t *Call) String() string {
	var builder strings.Builder
	//
	builder.WriteString("(")
	builder.WriteString(t.fn.Name())
	//
	for _, arg := range t.args {
		builder.WriteString(" ")
		builder.WriteString(arg.String())
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}

// Macro is a user-defined function (i.e. a define-fun), whose body is a term
// over its parameters.
type Macro struct {
	name   string
	params []string
	sorts  []value.Sort
	result value.Sort
	body   Term
}

// NewMacro constructs a new macro.  The body's variables index the given
// parameters by position.
func NewMacro(name string, params []string, sorts []value.Sort, result value.Sort, body Term) *Macro {
	return &Macro{name, params, sorts, result, body}
}

// Name returns the name of this macro.
func (m *Macro) Name() string {
	return m.name
}

// Arity returns the number of parameters of this macro.
func (m *Macro) Arity() uint {
	return uint(len(m.params))
}

// Result returns the sort returned by this macro.
func (m *Macro) Result() value.Sort {
	return m.result
}

// Apply evaluates the body of this macro with its parameters bound to the
// given arguments.
func (m *Macro) Apply(args []value.Value, _ []value.Value) (value.Value, error) {
	if len(args) != len(m.params) {
		return nil, fmt.Errorf("%s applied to %d arguments", m.name, len(args))
	}
	//
	for i, arg := range args {
		if arg.Sort() != m.sorts[i] {
			return nil, fmt.Errorf("%s expects %s for %s, got %s", m.name, m.sorts[i], m.params[i], arg.Sort())
		}
	}
	//
	return m.body.Eval(args)
}
