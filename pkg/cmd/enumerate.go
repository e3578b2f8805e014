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
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/consensys/go-sygus/pkg/grammar"
	"github.com/consensys/go-sygus/pkg/synth"
	"github.com/consensys/go-sygus/pkg/util"
	"github.com/consensys/go-sygus/pkg/util/source/sexp"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// enumerateCmd represents the enumerate command
var enumerateCmd = &cobra.Command{
	Use:   "enumerate [flags] task_file",
	Short: "enumerate all programs of a given task's grammar.",
	Long: `Enumerate all programs admitted by the grammar of a given task, up to the
maximum size, and report how many there are of each size.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var (
			config     = getConfig(cmd)
			printing   = GetFlag(cmd, "print")
			spec       = readSpecFile(args[0])
			g          = indexGrammar(spec)
			enumerator = synth.NewEnumerator(g, config.Synth)
			perf       = util.NewPerfStats()
			formatter  = sexp.NewFormatter(terminalWidth())
		)
		// Reject everything, so the store is filled to the maximum size.
		_, err := enumerator.Search(func(program *grammar.Program) bool {
			if printing {
				fmt.Println(formatter.Format(program.SExp()))
			}
			//
			return false
		})
		//
		perf.Log("enumeration")
		//
		var exhausted *synth.UnrealizableError
		//
		if !errors.As(err, &exhausted) {
			exitWithError(err)
		}
		//
		printCounts(g, enumerator.Store())
	},
}

// Print the number of programs of each size derived from each symbol.
func printCounts(g *grammar.Indexed, store *synth.Store) {
	for i, symbol := range g.Symbols() {
		var (
			counts = store.Counts(uint(i))
			items  = make([]string, len(counts))
			total  uint
		)
		//
		for j, n := range counts {
			items[j] = fmt.Sprintf("%d", n)
			total += n
		}
		//
		fmt.Printf("%s: %d [%s]\n", symbol.Name(), total, strings.Join(items, ", "))
	}
	//
	fmt.Printf("total: %d\n", store.Total())
}

// Determine the width of the terminal, or fall back to a sensible default when
// output is not going to a terminal.
func terminalWidth() uint {
	fd := int(os.Stdout.Fd())
	//
	if term.IsTerminal(fd) {
		if width, _, err := term.GetSize(fd); err == nil && width > 0 {
			return uint(width)
		}
	}
	//
	return 80
}

func init() {
	rootCmd.AddCommand(enumerateCmd)
	addConfigFlags(enumerateCmd)
	enumerateCmd.Flags().Bool("print", false, "print programs of the start symbol as they are enumerated")
}
