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

import "fmt"

// Indexed is a grammar whose symbols have been assigned dense indices
// [0, n) in declaration order.  Indices are stable for the lifetime of the
// indexed grammar, and all storage lookups during enumeration go through them.
type Indexed struct {
	grammar *Grammar
	start   uint
	indices map[*Symbol]uint
	// Parameter indices for each rule, computed once.
	params map[*Rule][]uint
}

// Index assigns each symbol of a grammar a unique index, whilst checking the
// grammar is well-formed.  Specifically, the start symbol must be declared,
// symbol names must be unique, each rule must belong to the symbol listing it
// and every rule parameter must be a declared symbol.  This is the only way to
// obtain an enumerable grammar.
func Index(g *Grammar) (*Indexed, error) {
	var (
		indices = make(map[*Symbol]uint, len(g.symbols))
		names   = make(map[string]bool, len(g.symbols))
		params  = make(map[*Rule][]uint)
	)
	//
	if g.start == nil {
		return nil, malformed("missing start symbol")
	}
	// Assign indices
	for i, s := range g.symbols {
		if _, ok := indices[s]; ok || names[s.name] {
			return nil, malformed("symbol %s declared twice", s.name)
		}
		//
		indices[s] = uint(i)
		names[s.name] = true
	}
	//
	start, ok := indices[g.start]
	if !ok {
		return nil, malformed("start symbol %s not declared", g.start.name)
	}
	// Resolve rule parameters
	for _, s := range g.symbols {
		for _, r := range s.rules {
			if r.owner != s {
				return nil, malformed("rule %s listed by symbol %s", r, s.name)
			}
			//
			ps := make([]uint, len(r.params))
			//
			for i, p := range r.params {
				if ps[i], ok = indices[p]; !ok {
					return nil, malformed("rule %s references undeclared symbol %s", r, p.name)
				}
			}
			//
			params[r] = ps
		}
	}
	//
	return &Indexed{g, start, indices, params}, nil
}

// Grammar returns the underlying grammar.
func (g *Indexed) Grammar() *Grammar {
	return g.grammar
}

// Len returns the number of symbols in this grammar.
func (g *Indexed) Len() uint {
	return uint(len(g.grammar.symbols))
}

// Start returns the start symbol.
func (g *Indexed) Start() *Symbol {
	return g.grammar.start
}

// StartIndex returns the index of the start symbol.
func (g *Indexed) StartIndex() uint {
	return g.start
}

// Symbols returns all symbols in index order.
func (g *Indexed) Symbols() []*Symbol {
	return g.grammar.symbols
}

// Symbol returns the symbol with a given index.
func (g *Indexed) Symbol(index uint) *Symbol {
	return g.grammar.symbols[index]
}

// IndexOf returns the index of a given symbol.  Note, this panics if the symbol
// is not part of this grammar.
func (g *Indexed) IndexOf(symbol *Symbol) uint {
	if index, ok := g.indices[symbol]; ok {
		return index
	}
	//
	panic(fmt.Sprintf("unknown symbol %s", symbol.name))
}

// Params returns the indices of the parameter symbols of a given rule.  Note,
// this panics if the rule is not part of this grammar.
func (g *Indexed) Params(rule *Rule) []uint {
	if ps, ok := g.params[rule]; ok {
		return ps
	}
	//
	panic(fmt.Sprintf("unknown rule %s", rule))
}

func (g *Indexed) String() string {
	return g.grammar.String()
}
