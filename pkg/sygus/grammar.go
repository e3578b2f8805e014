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

	"github.com/consensys/go-sygus/pkg/grammar"
	"github.com/consensys/go-sygus/pkg/theory"
	"github.com/consensys/go-sygus/pkg/util/source"
	"github.com/consensys/go-sygus/pkg/util/source/sexp"
	"github.com/consensys/go-sygus/pkg/value"
)

// Parse a grammar which is given with predeclared symbols, such as:
//
// ((Start Int) (B Bool)) ((Start Int (...)) (B Bool (...)))
//
// The predeclaration must list exactly the symbols of the grammar, in order.
func (p *parser) parsePredeclaredGrammar(decls sexp.SExp, rules sexp.SExp) (*grammar.Grammar,
	[]source.SyntaxError) {
	var (
		declList = decls.AsList()
		ruleList = rules.AsList()
	)
	//
	if declList == nil || ruleList == nil || declList.Len() != ruleList.Len() {
		return nil, p.errors(decls, "grammar declaration does not match grammar")
	}
	//
	for i, element := range declList.Elements {
		decl, def := element.AsList(), ruleList.Get(i).AsList()
		//
		if decl == nil || def == nil || decl.Len() != 2 || def.Len() != 3 ||
			decl.Get(0).String() != def.Get(0).String() || decl.Get(1).String() != def.Get(1).String() {
			return nil, p.errors(element, "grammar declaration does not match grammar")
		}
	}
	//
	return p.parseGrammar(rules)
}

// Parse a grammar given as a list of symbol definitions, such as:
//
// ((Start Int (x y 0 (+ Start Start) (ite B Start Start))) (B Bool ((<= Start Start))))
//
// The first symbol defined is the start symbol.
func (p *parser) parseGrammar(term sexp.SExp) (*grammar.Grammar, []source.SyntaxError) {
	var (
		list    = term.AsList()
		symbols []*grammar.Symbol
		rules   []*sexp.List
	)
	//
	if list == nil || list.Len() == 0 {
		return nil, p.errors(term, "expected grammar")
	}
	// Declare symbols
	for _, element := range list.Elements {
		def := element.AsList()
		//
		if def == nil || def.Len() != 3 || def.Get(0).AsSymbol() == nil || def.Get(2).AsList() == nil {
			return nil, p.errors(element, "malformed grammar symbol")
		}
		//
		name := def.Get(0).AsSymbol().Value
		//
		if slices.Contains(p.spec.Params, name) || findSymbol(symbols, name) != nil {
			return nil, p.errors(def.Get(0), fmt.Sprintf("%s already declared", name))
		}
		//
		sort, errs := p.parseSort(def.Get(1))
		if len(errs) > 0 {
			return nil, errs
		}
		//
		symbols = append(symbols, grammar.NewSymbol(name, sort))
		rules = append(rules, def.Get(2).AsList())
	}
	// Define rules
	for i, symbol := range symbols {
		for _, rule := range rules[i].Elements {
			if errs := p.parseProduction(symbol, rule, symbols); len(errs) > 0 {
				return nil, errs
			}
		}
	}
	//
	return grammar.NewGrammar(symbols[0], symbols...), nil
}

// Parse a single production of a given symbol.  This is either a terminal (a
// parameter, a literal or a nullary function), or a function applied to
// symbols of the grammar.
func (p *parser) parseProduction(owner *grammar.Symbol, term sexp.SExp, symbols []*grammar.Symbol) []source.SyntaxError {
	var semantics grammar.Semantics
	//
	if symbol := term.AsSymbol(); symbol != nil {
		var sort value.Sort
		//
		if index := slices.Index(p.spec.Params, symbol.Value); index >= 0 {
			semantics, sort = theory.NewParam(symbol.Value, uint(index)), p.spec.Sorts[index]
		} else if v, ok := value.ParseLiteral(symbol.Value); ok {
			semantics, sort = theory.NewConstant(v), v.Sort()
		} else if macro, ok := p.macros[symbol.Value]; ok && macro.Arity() == 0 {
			semantics, sort = macro, macro.Result()
		} else if findSymbol(symbols, symbol.Value) != nil {
			return p.errors(term, "unit productions are not supported")
		} else {
			return p.errors(term, fmt.Sprintf("unknown symbol \"%s\"", symbol.Value))
		}
		//
		return p.addTerminal(owner, term, semantics, sort)
	}
	//
	list := term.AsList()
	// Negative literals, such as (- 1)
	if v, ok := negativeLiteral(list); ok {
		return p.addTerminal(owner, term, theory.NewConstant(v), value.INT)
	}
	//
	switch list.Head() {
	case "":
		return p.errors(term, "invalid production")
	case "Constant", "Variable":
		return p.errors(term, fmt.Sprintf("(%s ...) productions are not supported", list.Head()))
	}
	//
	params := make([]*grammar.Symbol, list.Len()-1)
	//
	for i, arg := range list.Elements[1:] {
		if arg.AsSymbol() == nil {
			return p.errors(arg, "nested productions are not supported")
		} else if params[i] = findSymbol(symbols, arg.AsSymbol().Value); params[i] == nil {
			return p.errors(arg, fmt.Sprintf("expected grammar symbol, found \"%s\"", arg))
		}
	}
	//
	fn, err := p.function(list.Head(), len(params))
	if err != nil {
		return p.errors(term, err.Error())
	}
	//
	owner.AddRule(fn, params...)
	//
	return nil
}

func (p *parser) addTerminal(owner *grammar.Symbol, term sexp.SExp, semantics grammar.Semantics,
	sort value.Sort) []source.SyntaxError {
	if sort != owner.Sort() {
		return p.errors(term, fmt.Sprintf("expected %s, found %s", owner.Sort(), sort))
	}
	//
	owner.AddRule(semantics)
	//
	return nil
}

func negativeLiteral(list *sexp.List) (value.Value, bool) {
	if list.Len() != 2 || list.Head() != "-" || list.Get(1).AsSymbol() == nil {
		return nil, false
	}
	//
	if v, ok := value.ParseLiteral(list.Get(1).AsSymbol().Value); ok && v.Sort() == value.INT {
		return -v.(value.Int), true
	}
	//
	return nil, false
}

func findSymbol(symbols []*grammar.Symbol, name string) *grammar.Symbol {
	for _, s := range symbols {
		if s.Name() == name {
			return s
		}
	}
	//
	return nil
}

// Construct the grammar used when a synth-fun gives none.  This consists of an
// integer symbol and a boolean symbol, covering the parameters, the constants
// 0 and 1, and the common operators of linear integer arithmetic.
func defaultGrammar(params []string, sorts []value.Sort, result value.Sort) *grammar.Grammar {
	var ints, bools *grammar.Symbol
	//
	if result == value.BOOL {
		ints, bools = grammar.NewSymbol("StartInt", value.INT), grammar.NewSymbol("Start", value.BOOL)
	} else {
		ints, bools = grammar.NewSymbol("Start", value.INT), grammar.NewSymbol("StartBool", value.BOOL)
	}
	//
	for i, name := range params {
		if sorts[i] == value.BOOL {
			bools.AddRule(theory.NewParam(name, uint(i)))
		} else {
			ints.AddRule(theory.NewParam(name, uint(i)))
		}
	}
	//
	ints.AddRule(theory.NewConstant(value.Int(0)))
	ints.AddRule(theory.NewConstant(value.Int(1)))
	ints.AddRule(operator("+"), ints, ints)
	ints.AddRule(operator("-"), ints, ints)
	ints.AddRule(operator("ite"), bools, ints, ints)
	bools.AddRule(operator("and"), bools, bools)
	bools.AddRule(operator("or"), bools, bools)
	bools.AddRule(operator("not"), bools)
	bools.AddRule(operator("<="), ints, ints)
	bools.AddRule(operator("="), ints, ints)
	//
	if result == value.BOOL {
		return grammar.NewGrammar(bools, bools, ints)
	}
	//
	return grammar.NewGrammar(ints, ints, bools)
}

func operator(name string) *theory.Operator {
	op, ok := theory.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("unknown operator %s", name))
	}
	//
	return op
}
