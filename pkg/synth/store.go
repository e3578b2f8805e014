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
	"fmt"

	"github.com/consensys/go-sygus/pkg/grammar"
)

// Store holds every program enumerated so far, organised by symbol index and
// then by size.  Thus, buckets[i][s] holds the programs of symbol i with size
// s.  Bucket 0 exists for every symbol but is always empty.  Programs are only
// ever appended, and only to the largest bucket of a symbol.
type Store struct {
	buckets [][][]*grammar.Program
}

// NewStore constructs a store for n symbols, each with a single (empty) bucket
// for size 0.
func NewStore(n uint) *Store {
	buckets := make([][][]*grammar.Program, n)
	//
	for i := range buckets {
		buckets[i] = make([][]*grammar.Program, 1)
	}
	//
	return &Store{buckets}
}

// Len returns the number of symbols in this store.
func (s *Store) Len() uint {
	return uint(len(s.buckets))
}

// MaxSize returns the size of the largest bucket held for a given symbol.
func (s *Store) MaxSize(symbol uint) uint {
	return uint(len(s.buckets[symbol]) - 1)
}

// Grow appends a new (empty) bucket for a given symbol, returning its size.
func (s *Store) Grow(symbol uint) uint {
	s.buckets[symbol] = append(s.buckets[symbol], nil)
	//
	return s.MaxSize(symbol)
}

// Append a program to the largest bucket of a given symbol.  The program must
// have the size of that bucket.  This is the only point at which programs
// enter the store.
func (s *Store) Append(symbol uint, program *grammar.Program) {
	top := s.MaxSize(symbol)
	//
	if program.Size() != top {
		panic(fmt.Sprintf("program %s of size %d appended to bucket %d", program, program.Size(), top))
	}
	//
	s.buckets[symbol][top] = append(s.buckets[symbol][top], program)
}

// Bucket returns the programs of a given symbol with a given size.  This is
// empty for sizes which have not yet been enumerated.  The returned slice must
// not be modified.
func (s *Store) Bucket(symbol uint, size uint) []*grammar.Program {
	if size >= uint(len(s.buckets[symbol])) {
		return nil
	}
	//
	return s.buckets[symbol][size]
}

// Counts returns the number of programs held for a given symbol at each size.
func (s *Store) Counts(symbol uint) []uint {
	counts := make([]uint, len(s.buckets[symbol]))
	//
	for size, bucket := range s.buckets[symbol] {
		counts[size] = uint(len(bucket))
	}
	//
	return counts
}

// Total returns the number of programs held across all symbols and sizes.
func (s *Store) Total() uint {
	var total uint
	//
	for i := range s.buckets {
		for _, bucket := range s.buckets[i] {
			total += uint(len(bucket))
		}
	}
	//
	return total
}
