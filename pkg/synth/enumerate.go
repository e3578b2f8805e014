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
package synth

import (
	"runtime"

	"github.com/consensys/go-sygus/pkg/env"
	"github.com/consensys/go-sygus/pkg/example"
	"github.com/consensys/go-sygus/pkg/grammar"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Enumerator constructs the programs of a grammar bottom-up, in order of
// increasing size.  All programs of size s are constructed (for every symbol)
// before any program of size s+1.
type Enumerator struct {
	grammar *grammar.Indexed
	config  Config
	store   *Store
}

// NewEnumerator constructs an enumerator for a given grammar.
func NewEnumerator(g *grammar.Indexed, config Config) *Enumerator {
	return &Enumerator{g, config, NewStore(g.Len())}
}

// Store returns the programs enumerated so far.
func (p *Enumerator) Store() *Store {
	return p.store
}

// Search enumerates programs up to the maximum size, returning the first
// program of the start symbol which is accepted.  If none is accepted then an
// UnrealizableError is returned.
func (p *Enumerator) Search(accept func(*grammar.Program) bool) (*grammar.Program, error) {
	var start = p.grammar.StartIndex()
	//
	if err := p.config.Validate(); err != nil {
		return nil, err
	}
	//
	for size := uint(1); size <= p.config.MaxSize; size++ {
		for i := range p.grammar.Len() {
			p.store.Grow(i)
		}
		//
		batches, err := p.expand(size)
		if err != nil {
			return nil, err
		}
		// Merge in (symbol, rule) order
		for _, batch := range batches {
			for _, program := range batch.programs {
				p.store.Append(batch.symbol, program)
				//
				if batch.symbol == start && accept(program) {
					log.Debugf("found %s at size %d", program, size)
					return program, nil
				}
			}
		}
		//
		log.Debugf("enumerated %d programs of size %d (%d in total)", countBatches(batches), size, p.store.Total())
	}
	//
	return nil, &UnrealizableError{p.config.MaxSize}
}

// Programs constructed from a single rule at a given size.
type batch struct {
	symbol   uint
	programs []*grammar.Program
}

// Expand every rule of every symbol at a given size, in declaration order.
// This only reads buckets of smaller size, hence expansion can proceed
// concurrently.
func (p *Enumerator) expand(size uint) ([]batch, error) {
	var batches []batch
	//
	for i, symbol := range p.grammar.Symbols() {
		for range symbol.Rules() {
			batches = append(batches, batch{symbol: uint(i)})
		}
	}
	//
	if !p.config.Parallel {
		p.forEachRule(func(index int, rule *grammar.Rule) {
			batches[index].programs = Expand(p.grammar, rule, size, p.store)
		})
		//
		return batches, nil
	}
	//
	var group errgroup.Group
	//
	group.SetLimit(runtime.GOMAXPROCS(0))
	//
	p.forEachRule(func(index int, rule *grammar.Rule) {
		group.Go(func() error {
			batches[index].programs = Expand(p.grammar, rule, size, p.store)
			return nil
		})
	})
	//
	return batches, group.Wait()
}

// Apply a function to every rule in declaration order, along with its
// position in that order.
func (p *Enumerator) forEachRule(fn func(int, *grammar.Rule)) {
	var index int
	//
	for _, symbol := range p.grammar.Symbols() {
		for _, rule := range symbol.Rules() {
			fn(index, rule)
			index++
		}
	}
}

func countBatches(batches []batch) uint {
	var count uint
	//
	for _, b := range batches {
		count += uint(len(b.programs))
	}
	//
	return count
}

// Enumerate searches for the smallest program of the start symbol which agrees
// with every example, considering programs of size up to the configured
// maximum.  Amongst programs of equal size, the first enumerated is returned.
// The store of enumerated programs is also returned, regardless of outcome.
func Enumerate(g *grammar.Indexed, examples []example.IOExample, environment env.Environment,
	config Config) (*grammar.Program, *Store, error) {
	enumerator := NewEnumerator(g, config)
	//
	program, err := enumerator.Search(func(candidate *grammar.Program) bool {
		return Verify(candidate, examples, environment)
	})
	//
	return program, enumerator.Store(), err
}
