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
	"slices"

	"github.com/consensys/go-sygus/pkg/theory"
	"github.com/consensys/go-sygus/pkg/util/source"
	"github.com/consensys/go-sygus/pkg/util/source/sexp"
	"github.com/consensys/go-sygus/pkg/value"
)

// Parse a task file into a synthesis task.  Task files follow the SyGuS input
// format, and consist of a sequence of commands such as set-logic, synth-fun,
// declare-var, define-fun, constraint and check-synth.  Parsing stops at the
// first command which is malformed.
func Parse(srcfile *source.File) (*Spec, []source.SyntaxError) {
	terms, srcmap, err := sexp.ParseAll(srcfile)
	if err != nil {
		return nil, []source.SyntaxError{*err}
	}
	//
	p := newParser(srcfile, srcmap)
	//
	for _, term := range terms {
		if errs := p.parseCommand(term); len(errs) > 0 {
			return nil, errs
		}
	}
	//
	if p.spec.Grammar == nil {
		return nil, []source.SyntaxError{*srcfile.SyntaxError(source.NewSpan(0, 0), "missing synth-fun")}
	}
	//
	return p.spec, nil
}

type parser struct {
	srcfile *source.File
	srcmap  *source.Map[sexp.SExp]
	// Task being constructed
	spec *Spec
	// User-defined functions
	macros map[string]*theory.Macro
	// Declared variables and their sorts
	vars  []string
	sorts []value.Sort
}

func newParser(srcfile *source.File, srcmap *source.Map[sexp.SExp]) *parser {
	return &parser{srcfile, srcmap, &Spec{}, make(map[string]*theory.Macro), nil, nil}
}

func (p *parser) parseCommand(term sexp.SExp) []source.SyntaxError {
	list := term.AsList()
	//
	if list == nil || list.Head() == "" {
		return p.errors(term, "invalid command")
	}
	//
	switch list.Head() {
	case "set-logic":
		return p.parseSetLogic(list)
	case "synth-fun":
		return p.parseSynthFun(list)
	case "declare-var":
		return p.parseDeclareVar(list)
	case "define-fun":
		return p.parseDefineFun(list)
	case "constraint":
		return p.parseConstraint(list)
	case "check-synth", "set-option", "set-info":
		return nil
	}
	//
	return p.errors(list.Get(0), fmt.Sprintf("unknown command \"%s\"", list.Head()))
}

// (set-logic LIA)
func (p *parser) parseSetLogic(list *sexp.List) []source.SyntaxError {
	if list.Len() != 2 || list.Get(1).AsSymbol() == nil {
		return p.errors(list, "malformed set-logic")
	}
	//
	p.spec.Logic = list.Get(1).String()
	//
	return nil
}

// (synth-fun f ((x Int) (y Int)) Int [grammar])
func (p *parser) parseSynthFun(list *sexp.List) []source.SyntaxError {
	if list.Len() < 4 || list.Len() > 6 {
		return p.errors(list, "malformed synth-fun")
	} else if p.spec.Grammar != nil {
		return p.errors(list, "multiple synth-fun commands")
	}
	//
	name, errs := p.parseName(list.Get(1))
	if len(errs) > 0 {
		return errs
	}
	//
	params, sorts, errs := p.parseParams(list.Get(2))
	if len(errs) > 0 {
		return errs
	}
	//
	result, errs := p.parseSort(list.Get(3))
	if len(errs) > 0 {
		return errs
	}
	//
	p.spec.Function, p.spec.Params, p.spec.Sorts, p.spec.Result = name, params, sorts, result
	//
	switch list.Len() {
	case 4:
		p.spec.Grammar = defaultGrammar(params, sorts, result)
	case 5:
		p.spec.Grammar, errs = p.parseGrammar(list.Get(4))
	default:
		p.spec.Grammar, errs = p.parsePredeclaredGrammar(list.Get(4), list.Get(5))
	}
	//
	return errs
}

// (declare-var x Int)
func (p *parser) parseDeclareVar(list *sexp.List) []source.SyntaxError {
	if list.Len() != 3 {
		return p.errors(list, "malformed declare-var")
	}
	//
	name, errs := p.parseName(list.Get(1))
	if len(errs) > 0 {
		return errs
	}
	//
	sort, errs := p.parseSort(list.Get(2))
	if len(errs) > 0 {
		return errs
	}
	//
	p.vars = append(p.vars, name)
	p.sorts = append(p.sorts, sort)
	//
	return nil
}

// (define-fun g ((x Int)) Int body)
func (p *parser) parseDefineFun(list *sexp.List) []source.SyntaxError {
	if list.Len() != 5 {
		return p.errors(list, "malformed define-fun")
	}
	//
	name, errs := p.parseName(list.Get(1))
	if len(errs) > 0 {
		return errs
	}
	//
	params, sorts, errs := p.parseParams(list.Get(2))
	if len(errs) > 0 {
		return errs
	}
	//
	result, errs := p.parseSort(list.Get(3))
	if len(errs) > 0 {
		return errs
	}
	//
	body, errs := p.translator(params).Translate(list.Get(4))
	if len(errs) > 0 {
		return errs
	}
	//
	p.macros[name] = theory.NewMacro(name, params, sorts, result, body)
	//
	return nil
}

// Parse a name being declared, ensuring it does not clash with an existing
// declaration.
func (p *parser) parseName(term sexp.SExp) (string, []source.SyntaxError) {
	symbol := term.AsSymbol()
	//
	if symbol == nil {
		return "", p.errors(term, "expected identifier")
	} else if p.isDeclared(symbol.Value) {
		return "", p.errors(term, fmt.Sprintf("%s already declared", symbol.Value))
	}
	//
	return symbol.Value, nil
}

func (p *parser) isDeclared(name string) bool {
	_, operator := theory.Lookup(name)
	_, macro := p.macros[name]
	//
	return operator || macro || name == p.spec.Function || slices.Contains(p.vars, name)
}

// Parse a list of parameter declarations, such as ((x Int) (y Int)).
func (p *parser) parseParams(term sexp.SExp) ([]string, []value.Sort, []source.SyntaxError) {
	var (
		list   = term.AsList()
		params []string
		sorts  []value.Sort
	)
	//
	if list == nil {
		return nil, nil, p.errors(term, "expected parameter list")
	}
	//
	for _, element := range list.Elements {
		decl := element.AsList()
		//
		if decl == nil || decl.Len() != 2 || decl.Get(0).AsSymbol() == nil {
			return nil, nil, p.errors(element, "malformed parameter")
		}
		//
		name := decl.Get(0).AsSymbol().Value
		//
		if slices.Contains(params, name) {
			return nil, nil, p.errors(element, fmt.Sprintf("parameter %s declared twice", name))
		}
		//
		sort, errs := p.parseSort(decl.Get(1))
		if len(errs) > 0 {
			return nil, nil, errs
		}
		//
		params = append(params, name)
		sorts = append(sorts, sort)
	}
	//
	return params, sorts, nil
}

func (p *parser) parseSort(term sexp.SExp) (value.Sort, []source.SyntaxError) {
	if symbol := term.AsSymbol(); symbol != nil {
		if sort, ok := value.ParseSort(symbol.Value); ok {
			return sort, nil
		}
	}
	//
	return 0, p.errors(term, fmt.Sprintf("unknown sort %s", term))
}

// Construct a translator for terms over a given set of variables, which are
// bound by position.
func (p *parser) translator(scope []string) *sexp.Translator[theory.Term] {
	t := sexp.NewTranslator[theory.Term](p.srcfile, p.srcmap)
	//
	t.AddSymbolRule(func(name string) (theory.Term, bool, error) {
		if index := slices.Index(scope, name); index >= 0 {
			return theory.NewVar(name, uint(index)), true, nil
		}
		//
		return nil, false, nil
	})
	//
	t.AddSymbolRule(func(name string) (theory.Term, bool, error) {
		if v, ok := value.ParseLiteral(name); ok {
			return theory.NewLit(v), true, nil
		}
		//
		return nil, false, nil
	})
	//
	t.AddSymbolRule(func(name string) (theory.Term, bool, error) {
		if macro, ok := p.macros[name]; ok {
			if macro.Arity() != 0 {
				return nil, true, fmt.Errorf("%s requires %d arguments", name, macro.Arity())
			}
			//
			return theory.NewCall(macro), true, nil
		}
		//
		return nil, false, nil
	})
	//
	t.AddDefaultRecursiveListRule(func(name string, args []theory.Term) (theory.Term, error) {
		fn, err := p.function(name, len(args))
		if err != nil {
			return nil, err
		}
		//
		return theory.NewCall(fn, args...), nil
	})
	//
	return t
}

// Resolve a function applied to a given number of arguments.
func (p *parser) function(name string, arity int) (theory.Function, error) {
	if macro, ok := p.macros[name]; ok {
		if macro.Arity() != uint(arity) {
			return nil, fmt.Errorf("%s requires %d arguments", name, macro.Arity())
		}
		//
		return macro, nil
	} else if op, ok := theory.Lookup(name); ok {
		if !op.Accepts(arity) {
			return nil, fmt.Errorf("%s cannot accept %d arguments", name, arity)
		}
		//
		return op, nil
	} else if name == p.spec.Function {
		return nil, fmt.Errorf("%s can only be applied at the top of a constraint", name)
	}
	//
	return nil, fmt.Errorf("unknown function %s", name)
}

func (p *parser) errors(term sexp.SExp, msg string) []source.SyntaxError {
	return []source.SyntaxError{*p.srcmap.SyntaxError(term, msg)}
}
