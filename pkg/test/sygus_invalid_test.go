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
package test

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/consensys/go-sygus/pkg/sygus"
	"github.com/consensys/go-sygus/pkg/util/source"
)

// Determines the (relative) location of the invalid task files.  Each begins
// with one or more lines of the form ";;error:line:start-end:message" giving
// the errors expected.
const InvalidTestDir = "../../testdata/sygus/invalid"

// ===================================================================
// Invalid Tests
// ===================================================================

func Test_Invalid_Command_01(t *testing.T) {
	CheckInvalid(t, "command_01")
}

func Test_Invalid_Missing_01(t *testing.T) {
	CheckInvalid(t, "missing_01")
}

func Test_Invalid_Order_01(t *testing.T) {
	CheckInvalid(t, "order_01")
}

func Test_Invalid_Sort_01(t *testing.T) {
	CheckInvalid(t, "sort_01")
}

func Test_Invalid_Declare_01(t *testing.T) {
	CheckInvalid(t, "declare_01")
}

func Test_Invalid_Define_01(t *testing.T) {
	CheckInvalid(t, "define_01")
}

func Test_Invalid_Define_02(t *testing.T) {
	CheckInvalid(t, "define_02")
}

func Test_Invalid_Grammar_01(t *testing.T) {
	CheckInvalid(t, "grammar_01")
}

func Test_Invalid_Grammar_02(t *testing.T) {
	CheckInvalid(t, "grammar_02")
}

func Test_Invalid_Grammar_03(t *testing.T) {
	CheckInvalid(t, "grammar_03")
}

func Test_Invalid_Grammar_04(t *testing.T) {
	CheckInvalid(t, "grammar_04")
}

func Test_Invalid_Unit_01(t *testing.T) {
	CheckInvalid(t, "unit_01")
}

func Test_Invalid_Nested_01(t *testing.T) {
	CheckInvalid(t, "nested_01")
}

func Test_Invalid_Constant_01(t *testing.T) {
	CheckInvalid(t, "constant_01")
}

func Test_Invalid_Constraint_01(t *testing.T) {
	CheckInvalid(t, "constraint_01")
}

func Test_Invalid_Constraint_02(t *testing.T) {
	CheckInvalid(t, "constraint_02")
}

func Test_Invalid_Constraint_03(t *testing.T) {
	CheckInvalid(t, "constraint_03")
}

func Test_Invalid_Constraint_04(t *testing.T) {
	CheckInvalid(t, "constraint_04")
}

func Test_Invalid_Constraint_05(t *testing.T) {
	CheckInvalid(t, "constraint_05")
}

// ===================================================================
// Test Helpers
// ===================================================================

// CheckInvalid checks that a given task file fails to load, reporting exactly
// the errors it expects.
func CheckInvalid(t *testing.T, test string) {
	filename := fmt.Sprintf("%s/%s.sl", InvalidTestDir, test)
	// Enable testing each file in parallel
	t.Parallel()
	// Read task file
	bytes, err := os.ReadFile(filename)
	// Check test file read ok
	if err != nil {
		t.Fatal(err)
	}
	// Package up as source file
	srcfile := source.NewSourceFile(filename, bytes)
	// Parse task file
	_, errs := sygus.Parse(srcfile)
	// Extract expected errors for comparison
	expectedErrs, lineOffsets := extractExpectedErrors(bytes)
	// Check task did not load!
	if len(errs) == 0 {
		t.Fatalf("Error %s should not have loaded\n", filename)
	} else {
		failed := false
		// Construct initial message
		msg := fmt.Sprintf("Error %s\n", filename)
		// Pad out with what received
		for i := 0; i < max(len(errs), len(expectedErrs)); i++ {
			if i < len(errs) && i < len(expectedErrs) {
				expected := expectedErrs[i]
				actual := errs[i]
				// Check whether message OK
				if expected.msg == actual.Message() && expected.span == actual.Span() {
					continue
				}
			}
			// Indicate error arose
			failed = true
			// actual
			if i < len(errs) {
				actual := errs[i]
				msg = fmt.Sprintf("%s unexpected error %s:%s\n", msg, spanToString(actual.Span(), lineOffsets),
					actual.Message())
			}
			// expected
			if i < len(expectedErrs) {
				expected := expectedErrs[i]
				msg = fmt.Sprintf("%s   expected error %s:%s\n", msg, spanToString(expected.span, lineOffsets),
					expected.msg)
			}
		}
		//
		if failed {
			t.Fatal(msg)
		}
	}
}

// SyntaxError captures key information about an expected error
type SyntaxError struct {
	// The range of characters in the original file to which this error is
	// associated.
	span source.Span
	// The error message reported.
	msg string
}

func extractExpectedErrors(bytes []byte) ([]SyntaxError, []int) {
	// Calculate the character offset of each line
	offsets, lines := splitFileLines(bytes)
	// Now construct errors
	errors := make([]SyntaxError, 0)
	// scan file line-by-line until no more errors found
	for _, line := range lines {
		err := extractSyntaxError(line, offsets)
		// Keep going until no more errors
		if err == nil {
			return errors, offsets
		}

		errors = append(errors, *err)
	}
	//
	return errors, offsets
}

// Split out a given file into the line contents and the line offsets.  This
// needs to be done carefully to ensure that these both align properly,
// otherwise error messages tend to have the wrong column numbers, etc.
func splitFileLines(bytes []byte) ([]int, []string) {
	contents := []rune(string(bytes))
	// Calculate the character offset of each line
	offsets := make([]int, 1)
	lines := make([]string, 0)
	start := 0
	// Iterate each character
	for i := 0; i <= len(contents); i++ {
		if i == len(contents) || contents[i] == '\n' {
			line := string(contents[start:i])
			offsets = append(offsets, i+1)
			lines = append(lines, line)
			//
			start = i + 1
		}
	}
	// Done
	return offsets, lines
}

// Extract the syntax error from a given line in the task file, or return nil
// if it does not describe an error.
func extractSyntaxError(line string, offsets []int) *SyntaxError {
	if strings.HasPrefix(line, ";;error") {
		splits := strings.Split(line, ":")
		span := determineFileSpan(splits[1], splits[2], offsets)
		msg := strings.Join(splits[3:], ":")
		// Done
		return &SyntaxError{span, msg}
	}
	// No error
	return nil
}

// Determine the span that the given line string and span string corresponds
// to.  We need the line offsets so that the computed span includes the starting
// offset of the relevant line.
func determineFileSpan(lineStr string, spanStr string, offsets []int) source.Span {
	line, err := strconv.Atoi(lineStr)
	if err != nil {
		panic(err)
	}
	// Split the span
	spanSplits := strings.Split(spanStr, "-")
	// Parse span start as integer
	start, err := strconv.Atoi(spanSplits[0])
	if err != nil {
		panic(err)
	} else if start == 0 {
		panic("columns numbered from 1")
	}
	// Parse span end as integer
	end, err := strconv.Atoi(spanSplits[1])
	if err != nil {
		panic(err)
	}
	// Add line offset
	start += offsets[line-1]
	end += offsets[line-1]
	// Sanity check
	if start >= offsets[line] || end > offsets[line] {
		panic("span overflows to following line")
	}
	// Create span, recalling that span's start from zero whereas column numbers
	// start from 1.
	return source.NewSpan(start-1, end-1)
}

// Convert a span into a useful human readable string.
func spanToString(span source.Span, offsets []int) string {
	line := 0
	last := 0
	start := span.Start()
	end := span.End()
	//
	for i, o := range offsets {
		if o > start {
			break
		}
		// Update status
		last = o
		line = i + 1
	}
	//
	return fmt.Sprintf("%d:%d-%d", line, 1+start-last, 1+end-last)
}
