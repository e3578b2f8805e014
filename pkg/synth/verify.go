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
	"github.com/consensys/go-sygus/pkg/env"
	"github.com/consensys/go-sygus/pkg/example"
	"github.com/consensys/go-sygus/pkg/grammar"
)

// Verify checks whether a program produces the expected output on every
// example, stopping at the first disagreement.  A program which faults on
// some example disagrees with it.
func Verify(program *grammar.Program, examples []example.IOExample, environment env.Environment) bool {
	for _, e := range examples {
		if !e.Accepts(environment, program) {
			return false
		}
	}
	//
	return true
}
