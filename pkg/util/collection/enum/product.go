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
package enum

// Product returns an enumerator over the cartesian product of the given lists.
// That is, every array whose ith element is drawn from the ith list.  The
// first list varies slowest and the last list fastest.  For example, given
// [[A,B],[C,D]] this enumerates [[A,C],[A,D],[B,C],[B,D]].  If any list is
// empty, the product is empty.  If there are no lists at all, the product
// holds exactly one (empty) array.
func Product[E any](lists [][]E) Enumerator[[]E] {
	var count uint64 = 1
	//
	for _, l := range lists {
		count *= uint64(len(l))
	}
	//
	return &productEnumerator[E]{lists, 0, count}
}

type productEnumerator[E any] struct {
	lists      [][]E
	index, end uint64
}

// HasNext checks whether or not there are any items remaining to visit.
//
//nolint:revive
func (p *productEnumerator[E]) HasNext() bool {
	return p.index < p.end
}

// Count returns the number of items left in this enumeration.
//
//nolint:revive
func (p *productEnumerator[E]) Count() uint {
	return uint(p.end - p.index)
}

// Nth returns the nth item in this iterator.  This will mutate the iterator.
func (p *productEnumerator[E]) Nth(n uint) []E {
	next := p.index + uint64(n)
	p.index = next + 1
	//
	return p.extract(next)
}

// Next returns the next item, and advance the iterator.
//
//nolint:revive
func (p *productEnumerator[E]) Next() []E {
	next := p.index
	p.index++

	return p.extract(next)
}

// Extract the combination mapped to a given index, treating the index as a
// mixed-radix number whose least significant digit selects from the last list.
func (p *productEnumerator[E]) extract(index uint64) []E {
	rs := make([]E, len(p.lists))
	//
	for i := len(p.lists) - 1; i >= 0; i-- {
		m := uint64(len(p.lists[i]))
		rs[i] = p.lists[i][index%m]
		index = index / m
	}
	//
	return rs
}
