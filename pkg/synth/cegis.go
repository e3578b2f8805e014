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

	"github.com/consensys/go-sygus/pkg/env"
	"github.com/consensys/go-sygus/pkg/example"
	"github.com/consensys/go-sygus/pkg/grammar"
	log "github.com/sirupsen/logrus"
)

// Result of a successful CEGIS run.
type Result struct {
	// Program which passed the final check.
	Program *grammar.Program
	// Examples against which the program was enumerated.
	Examples []example.IOExample
	// Number of iterations taken.
	Iterations uint
}

// Cegis repeatedly enumerates a candidate consistent with a working set of
// examples, and then checks it against the full example space.  Whenever the
// check fails, the counterexample is added to the working set and enumeration
// restarts.  The working set begins with the given initial examples or, if
// there are none, with examples drawn from the space.  The working set only
// ever grows.
func Cegis(g *grammar.Indexed, initial []example.IOExample, environment env.Environment, space example.Space,
	config Config) (*Result, error) {
	var (
		examples  = slices.Clone(initial)
		candidate *grammar.Program
		cex       *example.IOExample
	)
	//
	if err := config.Validate(); err != nil {
		return nil, err
	} else if len(examples) == 0 {
		examples = space.Examples(config.InitialExamples)
	}
	//
	for i := uint(1); i <= config.MaxIterations; i++ {
		var err error
		//
		log.Debugf("iteration %d with %d examples", i, len(examples))
		//
		if candidate, _, err = Enumerate(g, examples, environment, config); err != nil {
			return nil, err
		} else if cex, err = space.Check(candidate); err != nil {
			return nil, err
		} else if cex == nil {
			log.Infof("synthesised %s after %d iterations", candidate, i)
			return &Result{candidate, examples, i}, nil
		}
		//
		log.Debugf("candidate %s refuted by %s", candidate, cex)
		//
		if example.Contains(examples, *cex) {
			return nil, &NonConvergenceError{i, candidate, *cex, "counterexample repeated"}
		}
		//
		examples = append(examples, *cex)
	}
	//
	return nil, &NonConvergenceError{config.MaxIterations, candidate, *cex, "iteration bound reached"}
}
