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

	"github.com/consensys/go-sygus/pkg/example"
	"github.com/consensys/go-sygus/pkg/grammar"
)

// UnrealizableError indicates no program up to the maximum size satisfies all
// examples.  This does not mean no such program exists, only that none was
// found within the bound.
type UnrealizableError struct {
	MaxSize uint
}

func (e *UnrealizableError) Error() string {
	return fmt.Sprintf("no program of size at most %d satisfies all examples", e.MaxSize)
}

// NonConvergenceError indicates the CEGIS loop stopped without producing a
// correct program.  This records the last candidate and the counterexample
// which refuted it.
type NonConvergenceError struct {
	// Number of iterations completed.
	Iterations uint
	// Last candidate enumerated.
	Candidate *grammar.Program
	// Counterexample refuting the last candidate.
	Counterexample example.IOExample
	// Reason the loop stopped.
	Reason string
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("no convergence after %d iterations (%s): %s refuted by %s", e.Iterations, e.Reason,
		e.Candidate, e.Counterexample)
}
