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
	"fmt"
	"os"

	"github.com/consensys/go-sygus/pkg/env"
	"github.com/consensys/go-sygus/pkg/synth"
	"github.com/consensys/go-sygus/pkg/util"
	"github.com/consensys/go-sygus/pkg/util/source/sexp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// synthCmd represents the synth command
var synthCmd = &cobra.Command{
	Use:   "synth [flags] task_file",
	Short: "synthesise a function meeting a given task.",
	Long: `Synthesise the smallest function admitted by the grammar of a given task
which satisfies all of its constraints.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var (
			config      = getConfig(cmd)
			stats       = GetFlag(cmd, "stats")
			width       = GetUint(cmd, "width")
			spec        = readSpecFile(args[0])
			g           = indexGrammar(spec)
			environment = env.NewInterpreter()
			space       = spec.Space(environment, config.Sampler)
			perf        = util.NewPerfStats()
		)
		//
		log.Debugf("synthesising %s using %v", spec.Function, config.Synth)
		//
		result, err := synth.Cegis(g, nil, environment, space, config.Synth)
		//
		perf.Log("synthesis")
		//
		if err != nil {
			exitWithError(err)
		}
		//
		if width == 0 {
			fmt.Println(spec.Render(result.Program))
		} else {
			fmt.Println(sexp.NewFormatter(width).Format(spec.Definition(result.Program)))
		}
		//
		if stats {
			fmt.Printf("; size %d, %d examples, %d iterations, %0.2fs\n", result.Program.Size(),
				len(result.Examples), result.Iterations, perf.Elapsed().Seconds())
		}
	},
}

func init() {
	rootCmd.AddCommand(synthCmd)
	addConfigFlags(synthCmd)
	synthCmd.Flags().Bool("stats", false, "report statistics about the synthesised function")
	synthCmd.Flags().Uint("width", 0, "wrap the synthesised function to a given width (0 for a single line)")
}
