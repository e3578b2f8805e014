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

import "errors"

// Config determines the bounds and mode of a synthesis run.
type Config struct {
	// Largest program size to enumerate before giving up.
	MaxSize uint `yaml:"max-size"`
	// Number of CEGIS iterations permitted before giving up.
	MaxIterations uint `yaml:"max-iterations"`
	// Number of examples drawn from the example space to seed CEGIS, when no
	// initial examples are given.
	InitialExamples uint `yaml:"initial-examples"`
	// Expand all rules of a given size concurrently.
	Parallel bool `yaml:"parallel"`
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		MaxSize:         12,
		MaxIterations:   64,
		InitialExamples: 1,
		Parallel:        false,
	}
}

// Validate checks this configuration can be used for a synthesis run.
func (c Config) Validate() error {
	if c.MaxSize == 0 {
		return errors.New("maximum program size must be positive")
	} else if c.MaxIterations == 0 {
		return errors.New("maximum iterations must be positive")
	}
	//
	return nil
}
