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
	"slices"

	"github.com/consensys/go-sygus/pkg/grammar"
	"github.com/consensys/go-sygus/pkg/util/collection/enum"
	"github.com/consensys/go-sygus/pkg/util/collection/stack"
)

// Expand constructs every program of a given size which can be built from a
// given rule, using sub-programs already held in the store.  Only buckets of
// size strictly less than the target size are read.  Programs are produced in
// a deterministic order: by composition of child sizes (lexicographically),
// and then by position of each child within its bucket (with the first
// parameter varying slowest).
func Expand(g *grammar.Indexed, rule *grammar.Rule, size uint, store *Store) []*grammar.Program {
	var (
		params   = g.Params(rule)
		programs []*grammar.Program
	)
	//
	if size == 0 {
		panic("cannot expand rule at size 0")
	} else if len(params) == 0 {
		// Terminals exist only at size 1
		if size == 1 {
			return []*grammar.Program{rule.Build(nil)}
		}
		//
		return nil
	}
	// Determine available sizes for each parameter
	pools := make([][]uint, len(params))
	//
	for i, param := range params {
		for s := uint(1); s < size; s++ {
			if len(store.Bucket(param, s)) > 0 {
				pools[i] = append(pools[i], s)
			}
		}
	}
	// Combine children for each composition
	for _, composition := range Compositions(size-1, pools) {
		lists := make([][]*grammar.Program, len(params))
		//
		for i, param := range params {
			lists[i] = store.Bucket(param, composition[i])
		}
		//
		for iter := enum.Product(lists); iter.HasNext(); {
			programs = append(programs, rule.Build(iter.Next()))
		}
	}
	//
	return programs
}

// Compositions determines every way of choosing one size from each pool such
// that the chosen sizes sum to exactly the given budget.  Pools must be sorted
// in ascending order.  Compositions are returned in lexicographic order.  For
// example, a budget of 4 over pools [1,2,3] and [1,2,3] gives [1,3], [2,2] and
// [3,1].  When there are no pools, the only composition of a zero budget is
// the empty one.
func Compositions(budget uint, pools [][]uint) [][]uint {
	var (
		compositions [][]uint
		current      = make([]uint, len(pools))
		// Least budget required by the pools following each position.
		minRest = make([]uint, len(pools))
		worklist = stack.NewStack[frame]()
	)
	//
	if len(pools) == 0 {
		if budget == 0 {
			return [][]uint{{}}
		}
		//
		return nil
	}
	//
	for i := len(pools) - 1; i >= 0; i-- {
		if len(pools[i]) == 0 {
			return nil
		} else if i+1 < len(pools) {
			minRest[i] = minRest[i+1] + pools[i+1][0]
		}
	}
	//
	worklist.Push(frame{0, budget, 0})
	//
	for !worklist.IsEmpty() {
		f := worklist.Pop()
		pool := pools[f.position]
		//
		if f.next >= uint(len(pool)) || pool[f.next] > f.remaining ||
			f.remaining-pool[f.next] < minRest[f.position] {
			// Since pools are ascending, no later choice at this position can
			// fit either.
			continue
		}
		//
		size := pool[f.next]
		current[f.position] = size
		// Sibling is explored after the entire subtree of this choice.
		worklist.Push(frame{f.position, f.remaining, f.next + 1})
		//
		if f.position+1 < uint(len(pools)) {
			worklist.Push(frame{f.position + 1, f.remaining - size, 0})
		} else if size == f.remaining {
			compositions = append(compositions, slices.Clone(current))
		}
	}
	//
	return compositions
}

// Frame of the composition search, identifying the next choice to try at a
// given position with a given remaining budget.
type frame struct {
	position  uint
	remaining uint
	next      uint
}
