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
package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/consensys/go-sygus/pkg/example"
	"github.com/consensys/go-sygus/pkg/synth"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// fileConfig is the layout of a configuration file, such as:
//
//	synth:
//	  max-size: 10
//	  parallel: true
//	sampler:
//	  seed: 7
//	  samples: 128
//
// Fields which are omitted retain their default values.
type fileConfig struct {
	Synth   synth.Config          `yaml:"synth"`
	Sampler example.SamplerConfig `yaml:"sampler"`
}

func defaultFileConfig() fileConfig {
	return fileConfig{synth.DefaultConfig(), example.DefaultSamplerConfig()}
}

// Decode a configuration file on top of a given configuration.  Unknown fields
// are reported as errors.
func decodeConfig(data []byte, config *fileConfig) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	//
	if err := decoder.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	//
	return config.Synth.Validate()
}

// Determine the configuration for a command.  This begins with the defaults,
// which are overridden by the configuration file (if given), and then by any
// flags explicitly set on the command line.
func getConfig(cmd *cobra.Command) fileConfig {
	config := defaultFileConfig()
	//
	if filename := GetString(cmd, "config"); filename != "" {
		data, err := os.ReadFile(filename)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		if err := decodeConfig(data, &config); err != nil {
			fmt.Printf("%s: %s\n", filename, err)
			os.Exit(2)
		}
	}
	//
	applyFlags(cmd, &config)
	//
	if err := config.Synth.Validate(); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return config
}

// Override configuration with flags explicitly set on the command line.
func applyFlags(cmd *cobra.Command, config *fileConfig) {
	flags := cmd.Flags()
	//
	if flags.Changed("max-size") {
		config.Synth.MaxSize = GetUint(cmd, "max-size")
	}
	//
	if flags.Changed("max-iterations") {
		config.Synth.MaxIterations = GetUint(cmd, "max-iterations")
	}
	//
	if flags.Changed("initial") {
		config.Synth.InitialExamples = GetUint(cmd, "initial")
	}
	//
	if flags.Changed("parallel") {
		config.Synth.Parallel = GetFlag(cmd, "parallel")
	}
	//
	if flags.Changed("seed") {
		config.Sampler.Seed = GetUint64(cmd, "seed")
	}
	//
	if flags.Changed("samples") {
		config.Sampler.Samples = GetUint(cmd, "samples")
	}
	//
	if flags.Changed("lower") {
		config.Sampler.Lower = GetInt64(cmd, "lower")
	}
	//
	if flags.Changed("upper") {
		config.Sampler.Upper = GetInt64(cmd, "upper")
	}
}

// Register the flags determining a synthesis configuration.
func addConfigFlags(cmd *cobra.Command) {
	synthDefaults := synth.DefaultConfig()
	samplerDefaults := example.DefaultSamplerConfig()
	//
	cmd.Flags().String("config", "", "read configuration from a YAML file")
	cmd.Flags().Uint("max-size", synthDefaults.MaxSize, "largest program size to enumerate")
	cmd.Flags().Uint("max-iterations", synthDefaults.MaxIterations, "maximum number of CEGIS iterations")
	cmd.Flags().Uint("initial", synthDefaults.InitialExamples, "number of examples to begin CEGIS with")
	cmd.Flags().Bool("parallel", synthDefaults.Parallel, "expand rules of the same size in parallel")
	cmd.Flags().Uint64("seed", samplerDefaults.Seed, "seed for sampling inputs")
	cmd.Flags().Uint("samples", samplerDefaults.Samples, "number of inputs sampled to check each candidate")
	cmd.Flags().Int64("lower", samplerDefaults.Lower, "smallest integer input sampled")
	cmd.Flags().Int64("upper", samplerDefaults.Upper, "largest integer input sampled")
}
