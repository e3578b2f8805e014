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
	"fmt"
	"strings"
)

// Grammar describes a space of candidate programs as a set of symbols, one of
// which is the start symbol.  A grammar cannot be enumerated directly, instead
// it must first be indexed (see Index).
type Grammar struct {
	start   *Symbol
	symbols []*Symbol
}

// NewGrammar constructs a grammar from a start symbol and the list of symbols
// in declaration order (which should include the start symbol).
func NewGrammar(start *Symbol, symbols ...*Symbol) *Grammar {
	return &Grammar{start, symbols}
}

// Start returns the start symbol of this grammar.
func (g *Grammar) Start() *Symbol {
	return g.start
}

// Symbols returns the symbols of this grammar in declaration order.
func (g *Grammar) Symbols() []*Symbol {
	return g.symbols
}

// Symbol looks up a symbol by name, returning nil if no such symbol exists.
func (g *Grammar) Symbol(name string) *Symbol {
	for _, s := range g.symbols {
		if s.name == name {
			return s
		}
	}
	//
	return nil
}

func (g *Grammar) String() string {
	var builder strings.Builder
	//
	for _, s := range g.symbols {
		builder.WriteString(fmt.Sprintf("%s %s:\n", s.name, s.sort))
		//
		for _, r := range s.rules {
			builder.WriteString(fmt.Sprintf("\t%s\n", r))
		}
	}
	//
	return builder.String()
}

// MalformedError reports a grammar which cannot be enumerated, for example
// because a rule references a symbol which is not part of the grammar.
type MalformedError struct {
	msg string
}

// Error implements the error interface.
func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed grammar: %s", e.msg)
}

func malformed(format string, args ...any) *MalformedError {
	return &MalformedError{fmt.Sprintf(format, args...)}
}
