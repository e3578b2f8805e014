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
	"slices"
	"strings"
)

// Rule represents a single production of a grammar, such as Start -> (+ Start
// Start).  A rule belongs to exactly one symbol and is read-only once the
// grammar is indexed.
type Rule struct {
	// Symbol to which this rule belongs.
	owner *Symbol
	// Meaning of programs built from this rule.
	semantics Semantics
	// Parameter symbols, in order.  This is empty for terminals.
	params []*Symbol
}

// Owner returns the symbol to which this rule belongs.
func (r *Rule) Owner() *Symbol {
	return r.owner
}

// Semantics returns the semantics of this rule.
func (r *Rule) Semantics() Semantics {
	return r.semantics
}

// Params returns the parameter symbols of this rule.
func (r *Rule) Params() []*Symbol {
	return r.params
}

// Arity returns the number of parameters of this rule.
func (r *Rule) Arity() uint {
	return uint(len(r.params))
}

// Build constructs a program node from a given list of sub-programs, which
// must match the parameter symbols of this rule pairwise.  The sub-programs are
// shared with the new node, not copied.
func (r *Rule) Build(children []*Program) *Program {
	var size uint = 1
	//
	if len(children) != len(r.params) {
		panic(fmt.Sprintf("rule %s expects %d children, got %d", r, len(r.params), len(children)))
	}
	//
	for i, child := range children {
		if child.rule.owner != r.params[i] {
			panic(fmt.Sprintf("rule %s expects child %d of %s, got %s", r, i, r.params[i], child.rule.owner))
		}
		//
		size += child.size
	}
	//
	return &Program{r, slices.Clone(children), size}
}

func (r *Rule) String() string {
	var builder strings.Builder
	//
	builder.WriteString(r.owner.name)
	builder.WriteString(" -> ")
	//
	if len(r.params) == 0 {
		builder.WriteString(r.semantics.Name())
		return builder.String()
	}
	//
	builder.WriteString("(")
	builder.WriteString(r.semantics.Name())
	//
	for _, p := range r.params {
		builder.WriteString(" ")
		builder.WriteString(p.name)
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}
