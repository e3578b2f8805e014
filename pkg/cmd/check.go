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
	"github.com/consensys/go-sygus/pkg/example"
	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [flags] task_file",
	Short: "check a given task is well-formed.",
	Long: `Check a given task file can be parsed, and that its grammar is
well-formed.  A summary of the task is then printed.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var (
			quiet = GetFlag(cmd, "quiet")
			spec  = readSpecFile(args[0])
			g     = indexGrammar(spec)
		)
		//
		if quiet {
			return
		}
		//
		fmt.Printf("function: %s\n", spec.Function)
		//
		if spec.Logic != "" {
			fmt.Printf("logic: %s\n", spec.Logic)
		}
		//
		fmt.Printf("grammar: %d symbols, start %s\n", g.Len(), g.Start().Name())
		fmt.Println(g.String())
		//
		switch space := spec.Space(env.NewInterpreter(), example.DefaultSamplerConfig()).(type) {
		case *example.FiniteSpace:
			fmt.Printf("examples: %d\n", space.Len())
		default:
			fmt.Printf("examples: sampled (%d ground)\n", len(spec.Examples))
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolP("quiet", "q", false, "suppress the task summary")
}
