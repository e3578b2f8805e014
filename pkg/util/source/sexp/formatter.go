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
package sexp

import "strings"

// Formatter lays out S-Expressions so that, where possible, no line exceeds a
// given width.  A list which fits on the current line is written as is.
// Otherwise, it is broken as follows:
//
//	(head child1
//	   child2
//	   ...
//	   childn)
//
// Here, the number of leading children kept on the first line is determined by
// the formatting rule registered for the head (if any).
type Formatter struct {
	// Maximum desired width
	maxWidth uint
	// Number of children to keep on the head line, indexed by head symbol.
	rules map[string]uint
}

// NewFormatter constructs a new formatter which aims to fit its output within a
// given width.
func NewFormatter(width uint) *Formatter {
	return &Formatter{width, make(map[string]uint)}
}

// Add a formatting rule which keeps the first n children of any list headed by
// a given symbol on the same line as the head.
func (p *Formatter) Add(head string, n uint) {
	p.rules[head] = n
}

// Format a given S-Expression using the rules embedded within this formatter.
func (p *Formatter) Format(sexp SExp) string {
	var text FormattedText
	//
	p.format(sexp, &text)
	//
	return text.String()
}

func (p *Formatter) format(sexp SExp, text *FormattedText) {
	var (
		flat = sexp.String()
		list = sexp.AsList()
	)
	// Fits on the current line?
	if list == nil || list.Len() <= 1 || text.LineWidth()+uint(len(flat)) <= p.maxWidth {
		text.WriteString(flat)
		return
	}
	//
	inline := p.rules[list.Head()]
	//
	text.WriteString("(")
	p.format(list.Get(0), text)
	//
	text.Indent(1)
	//
	for i := 1; i < list.Len(); i++ {
		if uint(i) <= inline {
			text.WriteString(" ")
		} else {
			text.NewLine()
		}
		//
		p.format(list.Get(i), text)
	}
	//
	text.Indent(-1)
	text.WriteString(")")
}

// FormattedText encapsulates the notion of formatted chunk of text.
type FormattedText struct {
	// Current indent level
	indent int
	// Lines being written
	lines []string
}

func (p *FormattedText) String() string {
	return strings.Join(p.lines, "\n")
}

// Indent increases or decreases the current indent level.
func (p *FormattedText) Indent(delta int) {
	p.indent += delta
}

// NewLine starts a new line at the current indent level.
func (p *FormattedText) NewLine() {
	p.lines = append(p.lines, strings.Repeat("   ", p.indent))
}

// LineWidth returns the width of the current line.
func (p *FormattedText) LineWidth() uint {
	var n = len(p.lines)
	//
	if n == 0 {
		return 0
	}
	// Width of last line
	return uint(len(p.lines[n-1]))
}

// WriteString writes a string into the current line of this formatted text
// block.
func (p *FormattedText) WriteString(str string) {
	if n := len(p.lines); n == 0 {
		p.lines = append(p.lines, str)
	} else {
		p.lines[n-1] = p.lines[n-1] + str
	}
}
