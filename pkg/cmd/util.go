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
	"github.com/consensys/go-sygus/pkg/sygus"
	"github.com/consensys/go-sygus/pkg/synth"
	"github.com/consensys/go-sygus/pkg/util/source"
	"github.com/spf13/cobra"
)

// GetFlag gets an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetUint gets an expected unsigned int flag, or exits if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetUint64 gets an expected unsigned 64bit int flag, or exits if an error
// arises.
func GetUint64(cmd *cobra.Command, flag string) uint64 {
	r, err := cmd.Flags().GetUint64(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetInt64 gets an expected 64bit int flag, or exits if an error arises.
func GetInt64(cmd *cobra.Command, flag string) int64 {
	r, err := cmd.Flags().GetInt64(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string flag, or exits if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Read and parse a given task file, or exit if an error arises.
func readSpecFile(filename string) *sygus.Spec {
	srcfile, err := source.ReadFile(filename)
	// Handle I/O errors
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	spec, errs := sygus.Parse(srcfile)
	// Handle syntax errors
	if len(errs) > 0 {
		for _, e := range errs {
			printSyntaxError(&e)
		}
		//
		os.Exit(3)
	}
	//
	return spec
}

// Index the grammar of a given task, or exit if it is malformed.
func indexGrammar(spec *sygus.Spec) *grammar.Indexed {
	g, err := grammar.Index(spec.Grammar)
	if err != nil {
		fmt.Println(err)
		os.Exit(4)
	}
	//
	return g
}

// Report a failed synthesis run, and exit with a code determined by the kind of
// failure.
func exitWithError(err error) {
	var (
		unrealizable *synth.UnrealizableError
		nonconverged *synth.NonConvergenceError
		malformed    *grammar.MalformedError
	)
	//
	fmt.Println(err)
	//
	switch {
	case errors.As(err, &unrealizable), errors.As(err, &nonconverged):
		os.Exit(1)
	case errors.As(err, &malformed):
		os.Exit(4)
	}
	//
	os.Exit(2)
}

// Print a syntax error with appropriate highlighting.
func printSyntaxError(err *source.SyntaxError) {
	span := err.Span()
	line := err.FirstEnclosingLine()
	// Calculate length (ensures don't overflow line)
	length := min(line.Start()+line.Length()-span.Start(), span.Length())
	// Print error + line number
	fmt.Printf("%s:%d: %s\n", err.SourceFile().Filename(), line.Number(), err.Message())
	// Print separator line
	fmt.Println()
	// Print line
	fmt.Println(line.String())
	// Print indent (todo: account for tabs)
	fmt.Print(strings.Repeat(" ", max(0, span.Start()-line.Start())))
	// Print highlight
	fmt.Println(strings.Repeat("^", max(1, length)))
}
