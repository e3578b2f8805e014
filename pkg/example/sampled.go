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
package example

import (
	"math/rand/v2"

	"github.com/consensys/go-sygus/pkg/env"
	"github.com/consensys/go-sygus/pkg/grammar"
	"github.com/consensys/go-sygus/pkg/util/collection/enum"
	"github.com/consensys/go-sygus/pkg/value"
	log "github.com/sirupsen/logrus"
)

// Oracle determines the expected output for a given input.  An error indicates
// the input lies outside the domain of the oracle, and should be ignored.
type Oracle func(input []value.Value) (value.Value, error)

// SamplerConfig determines how inputs are drawn from an unbounded space.
type SamplerConfig struct {
	// Seed for the source of randomness.
	Seed uint64 `yaml:"seed"`
	// Number of inputs to check for each candidate.
	Samples uint `yaml:"samples"`
	// Smallest integer drawn.
	Lower int64 `yaml:"lower"`
	// Largest integer drawn.
	Upper int64 `yaml:"upper"`
}

// DefaultSamplerConfig returns the sampler configuration used when none is
// given.
func DefaultSamplerConfig() SamplerConfig {
	return SamplerConfig{Seed: 1, Samples: 512, Lower: -16, Upper: 16}
}

// SampledSpace is a space defined by an oracle over all inputs of given sorts.
// Since this is typically too large to check exhaustively, candidates are
// checked against a finite set of ground examples followed by a sample of
// inputs drawn from the configured integer range.  When that range is small
// enough, every input in it is checked.
type SampledSpace struct {
	environment env.Environment
	sorts       []value.Sort
	oracle      Oracle
	ground      []IOExample
	config      SamplerConfig
	// Number of checks performed so far, used to vary the samples drawn.
	checks uint64
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ Space = (*SampledSpace)(nil)

// NewSampledSpace constructs a new space for a function with parameters of the
// given sorts, whose outputs are determined by the given oracle.  Ground
// examples are always checked first.
func NewSampledSpace(environment env.Environment, sorts []value.Sort, oracle Oracle, ground []IOExample,
	config SamplerConfig) *SampledSpace {
	return &SampledSpace{environment, sorts, oracle, ground, config, 0}
}

// Examples returns up to n examples from this space, beginning with the ground
// examples.  When n is zero, only the ground examples are returned.
func (s *SampledSpace) Examples(n uint) []IOExample {
	var examples []IOExample
	//
	for _, e := range s.ground {
		if uint(len(examples)) < n || n == 0 {
			examples = append(examples, e)
		}
	}
	// Fill up with sampled inputs, allowing for those which duplicate a ground
	// example.
	for iter := s.inputs(n+uint(len(s.ground)), s.config.Seed); iter.HasNext() && uint(len(examples)) < n; {
		input := iter.Next()
		//
		if output, err := s.oracle(input); err == nil {
			example := IOExample{input, output}
			if !Contains(examples, example) {
				examples = append(examples, example)
			}
		}
	}
	//
	return examples
}

// Check a program against the ground examples, and then a sample of inputs.
// Inputs for which the oracle fails are skipped.
func (s *SampledSpace) Check(program *grammar.Program) (*IOExample, error) {
	for _, e := range s.ground {
		if !e.Accepts(s.environment, program) {
			return &e, nil
		}
	}
	// Vary the samples drawn between checks, whilst remaining deterministic.
	seed := s.config.Seed + s.checks
	s.checks++
	//
	for iter := s.inputs(s.config.Samples, seed); iter.HasNext(); {
		input := iter.Next()
		//
		expected, err := s.oracle(input)
		if err != nil {
			log.Debugf("skipping input %v outside oracle domain: %s", input, err)
			continue
		}
		//
		if e := (IOExample{input, expected}); !e.Accepts(s.environment, program) {
			return &e, nil
		}
	}
	//
	return nil, nil
}

// Construct an enumerator over (at most) n inputs drawn from the configured
// domain of each parameter.
func (s *SampledSpace) inputs(n uint, seed uint64) enum.Enumerator[[]value.Value] {
	domains := make([][]value.Value, len(s.sorts))
	//
	for i, sort := range s.sorts {
		domains[i] = domain(sort, s.config.Lower, s.config.Upper)
	}
	//
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	//
	return enum.Sample(n, enum.Product(domains), rng)
}

// Determine the values of a given sort within the given bounds, ordered by
// increasing magnitude so that small counterexamples are preferred.
func domain(sort value.Sort, lower int64, upper int64) []value.Value {
	var values []value.Value
	//
	if sort == value.BOOL {
		return []value.Value{value.Bool(false), value.Bool(true)}
	}
	//
	if lower <= 0 && upper >= 0 {
		values = append(values, value.Int(0))
	}
	//
	for i := int64(1); i <= upper || -i >= lower; i++ {
		if i >= lower && i <= upper {
			values = append(values, value.Int(i))
		}
		//
		if -i >= lower && -i <= upper {
			values = append(values, value.Int(-i))
		}
	}
	//
	return values
}
