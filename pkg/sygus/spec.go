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
package sygus

import (
	"github.com/consensys/go-sygus/pkg/env"
	"github.com/consensys/go-sygus/pkg/example"
	"github.com/consensys/go-sygus/pkg/grammar"
	"github.com/consensys/go-sygus/pkg/util/source/sexp"
	"github.com/consensys/go-sygus/pkg/value"
)

// Spec is a synthesis task loaded from a task file.  This determines the
// signature of the function being synthesised, the grammar of its candidate
// bodies, and the examples (or oracle) determining correctness.
type Spec struct {
	// Logic declared by the task (e.g. "LIA"), or empty if none.
	Logic string
	// Name of the function being synthesised.
	Function string
	// Names of the function's parameters.
	Params []string
	// Sorts of the function's parameters.
	Sorts []value.Sort
	// Sort returned by the function.
	Result value.Sort
	// Grammar of candidate bodies, whose first symbol is the start symbol.
	Grammar *grammar.Grammar
	// Examples given by ground constraints.
	Examples []example.IOExample
	// Oracle given by a constraint over declared variables, or nil if the task
	// consists only of ground constraints.
	Oracle example.Oracle
}

// Space constructs the example space of this task.  Tasks with only ground
// constraints give a finite space, whilst an oracle gives a sampled space.
func (s *Spec) Space(environment env.Environment, config example.SamplerConfig) example.Space {
	if s.Oracle == nil {
		return example.NewFiniteSpace(environment, s.Examples...)
	}
	//
	return example.NewSampledSpace(environment, s.Sorts, s.Oracle, s.Examples, config)
}

// Definition converts a program for the synthesised function into a
// define-fun command.
func (s *Spec) Definition(program *grammar.Program) sexp.SExp {
	params := make([]sexp.SExp, len(s.Params))
	//
	for i, name := range s.Params {
		params[i] = sexp.NewList([]sexp.SExp{sexp.NewSymbol(name), sexp.NewSymbol(s.Sorts[i].String())})
	}
	//
	return sexp.NewList([]sexp.SExp{
		sexp.NewSymbol("define-fun"),
		sexp.NewSymbol(s.Function),
		sexp.NewList(params),
		sexp.NewSymbol(s.Result.String()),
		program.SExp(),
	})
}

// Render a program for the synthesised function as a define-fun command on a
// single line.
func (s *Spec) Render(program *grammar.Program) string {
	return s.Definition(program).String()
}
