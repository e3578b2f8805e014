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
	"strings"

	"github.com/consensys/go-sygus/pkg/util/source/sexp"
)

// Program is a node in a program tree, tagged by the rule which produced it.
// Programs are immutable once built, and a single program is typically shared
// as a child of many larger programs.
type Program struct {
	rule     *Rule
	children []*Program
	// Cached size of this program
	size uint
}

// Rule returns the rule from which this program node was built.
func (p *Program) Rule() *Rule {
	return p.rule
}

// Symbol returns the symbol at which this program is rooted.
func (p *Program) Symbol() *Symbol {
	return p.rule.owner
}

// Children returns the sub-programs of this node (which is empty for leaves).
func (p *Program) Children() []*Program {
	return p.children
}

// Size returns the number of nodes in this program, such that a leaf has size
// 1 and a node has size one more than the sum of its children.
func (p *Program) Size() uint {
	return p.size
}

// SExp converts this program into an S-Expression, for example to format it.
func (p *Program) SExp() sexp.SExp {
	head := sexp.NewSymbol(p.rule.semantics.Name())
	//
	if len(p.children) == 0 {
		return head
	}
	//
	elements := make([]sexp.SExp, len(p.children)+1)
	elements[0] = head
	//
	for i, c := range p.children {
		elements[i+1] = c.SExp()
	}
	//
	return sexp.NewList(elements)
}

func (p *Program) String() string {
	var builder strings.Builder
	//
	p.write(&builder)
	//
	return builder.String()
}

func (p *Program) write(builder *strings.Builder) {
	if len(p.children) == 0 {
		builder.WriteString(p.rule.semantics.Name())
		return
	}
	//
	builder.WriteString("(")
	builder.WriteString(p.rule.semantics.Name())
	//
	for _, c := range p.children {
		builder.WriteString(" ")
		c.write(builder)
	}
	//
	builder.WriteString(")")
}
