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
	"fmt"

	"github.com/consensys/go-sygus/pkg/example"
	"github.com/consensys/go-sygus/pkg/theory"
	"github.com/consensys/go-sygus/pkg/util/source"
	"github.com/consensys/go-sygus/pkg/util/source/sexp"
	"github.com/consensys/go-sygus/pkg/value"
)

// Parse a constraint, which must equate an application of the synthesised
// function with some term.  When the arguments are ground, this gives an
// example.  When they are distinct declared variables, this gives an oracle.
// For example:
//
// (constraint (= (f 2 3) 5))
// (constraint (= (f x y) (+ x y)))
func (p *parser) parseConstraint(list *sexp.List) []source.SyntaxError {
	if list.Len() != 2 {
		return p.errors(list, "malformed constraint")
	} else if p.spec.Grammar == nil {
		return p.errors(list, "constraint before synth-fun")
	}
	//
	eq := list.Get(1).AsList()
	//
	if eq == nil || eq.Len() != 3 || eq.Head() != "=" {
		return p.errors(list.Get(1), fmt.Sprintf("unsupported constraint (expected (= (%s ...) term))", p.spec.Function))
	}
	//
	app, rhs := eq.Get(1).AsList(), eq.Get(2)
	// Allow application on either side
	if app == nil || app.Head() != p.spec.Function {
		app, rhs = eq.Get(2).AsList(), eq.Get(1)
	}
	//
	if app == nil || app.Head() != p.spec.Function {
		return p.errors(eq, fmt.Sprintf("unsupported constraint (expected (= (%s ...) term))", p.spec.Function))
	} else if app.Len()-1 != len(p.spec.Params) {
		return p.errors(app, fmt.Sprintf("%s requires %d arguments", p.spec.Function, len(p.spec.Params)))
	}
	//
	translator := p.translator(p.vars)
	args := make([]theory.Term, len(p.spec.Params))
	//
	for i, arg := range app.Elements[1:] {
		var errs []source.SyntaxError
		//
		if args[i], errs = translator.Translate(arg); len(errs) > 0 {
			return errs
		}
	}
	//
	expected, errs := translator.Translate(rhs)
	if len(errs) > 0 {
		return errs
	}
	//
	if isGround(expected) && allGround(args) {
		return p.addExample(app, args, expected)
	}
	//
	return p.addOracle(app, args, expected)
}

// Add the example given by a ground constraint.
func (p *parser) addExample(app *sexp.List, args []theory.Term, expected theory.Term) []source.SyntaxError {
	input := make([]value.Value, len(args))
	//
	for i, arg := range args {
		var err error
		//
		if input[i], err = arg.Eval(nil); err != nil {
			return p.errors(app.Get(i+1), err.Error())
		} else if input[i].Sort() != p.spec.Sorts[i] {
			return p.errors(app.Get(i+1), fmt.Sprintf("expected %s, found %s", p.spec.Sorts[i], input[i].Sort()))
		}
	}
	//
	output, err := expected.Eval(nil)
	if err != nil {
		return p.errors(app, err.Error())
	} else if output.Sort() != p.spec.Result {
		return p.errors(app, fmt.Sprintf("expected %s, found %s", p.spec.Result, output.Sort()))
	}
	//
	p.spec.Examples = append(p.spec.Examples, example.IOExample{Input: input, Output: output})
	//
	return nil
}

// Add the oracle given by a constraint over declared variables.  Each argument
// must be a distinct variable of the matching sort, and the expected term can
// only use these variables.
func (p *parser) addOracle(app *sexp.List, args []theory.Term, expected theory.Term) []source.SyntaxError {
	var (
		nvars = len(p.vars)
		// Position of each declared variable in the input, or -1.
		positions = make([]int, nvars)
	)
	//
	if p.spec.Oracle != nil {
		return p.errors(app, "multiple non-ground constraints are not supported")
	}
	//
	for i := range positions {
		positions[i] = -1
	}
	//
	for i, arg := range args {
		v, ok := arg.(*theory.Var)
		//
		if !ok {
			return p.errors(app.Get(i+1), "expected declared variable or ground term")
		} else if positions[v.Index()] >= 0 {
			return p.errors(app.Get(i+1), fmt.Sprintf("variable %s used twice", v.Name()))
		} else if p.sorts[v.Index()] != p.spec.Sorts[i] {
			return p.errors(app.Get(i+1), fmt.Sprintf("expected %s, found %s", p.spec.Sorts[i], p.sorts[v.Index()]))
		}
		//
		positions[v.Index()] = i
	}
	//
	for _, v := range variables(expected) {
		if positions[v.Index()] < 0 {
			return p.errors(app, fmt.Sprintf("variable %s is not an argument of %s", v.Name(), p.spec.Function))
		}
	}
	//
	p.spec.Oracle = func(input []value.Value) (value.Value, error) {
		env := make([]value.Value, nvars)
		//
		for i, pos := range positions {
			if pos >= 0 {
				env[i] = input[pos]
			}
		}
		//
		return expected.Eval(env)
	}
	//
	return nil
}

func allGround(terms []theory.Term) bool {
	for _, t := range terms {
		if !isGround(t) {
			return false
		}
	}
	//
	return true
}

func isGround(term theory.Term) bool {
	return len(variables(term)) == 0
}

// Determine the variables used within a given term.
func variables(term theory.Term) []*theory.Var {
	switch t := term.(type) {
	case *theory.Var:
		return []*theory.Var{t}
	case *theory.Call:
		var vars []*theory.Var
		//
		for _, arg := range t.Args() {
			vars = append(vars, variables(arg)...)
		}
		//
		return vars
	default:
		return nil
	}
}
