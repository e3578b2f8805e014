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
package grammar

import (
	"github.com/consensys/go-sygus/pkg/value"
)

// Semantics determines what a rule means when a program built from it is
// executed.  For example, integer addition, a parameter of the function being
// synthesised, or a constant.
type Semantics interface {
	// Name returns the name used to render this semantics (e.g. "+").
	Name() string
	// Apply this semantics to the values produced by the children of a program
	// node, for a given input to the function being synthesised.
	Apply(args []value.Value, input []value.Value) (value.Value, error)
}

// Symbol represents a non-terminal of a grammar, such as "Start".  Every
// symbol holds an ordered list of rules from which programs rooted at that
// symbol are built.
type Symbol struct {
	name  string
	sort  value.Sort
	rules []*Rule
}

// NewSymbol constructs a new symbol with a given name, whose programs produce
// values of a given sort.
func NewSymbol(name string, sort value.Sort) *Symbol {
	return &Symbol{name, sort, nil}
}

// Name returns the name of this symbol.
func (s *Symbol) Name() string {
	return s.name
}

// Sort returns the sort of values produced by programs of this symbol.
func (s *Symbol) Sort() value.Sort {
	return s.sort
}

// Rules returns the rules of this symbol in declaration order.
func (s *Symbol) Rules() []*Rule {
	return s.rules
}

// AddRule appends a new rule to this symbol, whose programs apply a given
// semantics to programs drawn from the given parameter symbols.
func (s *Symbol) AddRule(semantics Semantics, params ...*Symbol) *Rule {
	rule := &Rule{s, semantics, params}
	s.rules = append(s.rules, rule)
	//
	return rule
}

func (s *Symbol) String() string {
	return s.name
}
