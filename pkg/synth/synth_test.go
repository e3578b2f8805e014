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
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/consensys/go-sygus/pkg/env"
	"github.com/consensys/go-sygus/pkg/example"
	"github.com/consensys/go-sygus/pkg/grammar"
	"github.com/consensys/go-sygus/pkg/theory"
	"github.com/consensys/go-sygus/pkg/value"
	"github.com/google/go-cmp/cmp"
)

// ===================================================================
// Compositions
// ===================================================================

func Test_Compositions_1(t *testing.T) {
	checkCompositions(t, 4, [][]uint{{1, 2, 3}, {1, 2, 3}}, [][]uint{{1, 3}, {2, 2}, {3, 1}})
}

func Test_Compositions_2(t *testing.T) {
	checkCompositions(t, 0, nil, [][]uint{{}})
}

func Test_Compositions_3(t *testing.T) {
	checkCompositions(t, 2, nil, nil)
}

func Test_Compositions_4(t *testing.T) {
	checkCompositions(t, 2, [][]uint{{1}}, nil)
}

func Test_Compositions_5(t *testing.T) {
	checkCompositions(t, 4, [][]uint{{1, 3}, {1, 2}}, [][]uint{{3, 1}})
}

func Test_Compositions_6(t *testing.T) {
	checkCompositions(t, 4, [][]uint{{1, 2}, {1, 2}, {1, 2}}, [][]uint{{1, 1, 2}, {1, 2, 1}, {2, 1, 1}})
}

func Test_Compositions_7(t *testing.T) {
	checkCompositions(t, 4, [][]uint{{1, 2, 3}, {}}, nil)
}

func Test_Compositions_8(t *testing.T) {
	checkCompositions(t, 2, [][]uint{{1}, {1, 2}, {1}}, nil)
}

// ===================================================================
// Expansion
// ===================================================================

func Test_Expand_1(t *testing.T) {
	g := exampleGrammar(t, "x")
	store := fill(t, g, 1)
	zero, plus := rules(g)[0], rules(g)[2]
	//
	checkPrograms(t, Expand(g, zero, 1, store), "0")
	checkPrograms(t, Expand(g, zero, 2, store))
	checkPrograms(t, Expand(g, plus, 1, store))
	checkPrograms(t, Expand(g, plus, 2, store))
	checkPrograms(t, Expand(g, plus, 3, store), "(+ 0 0)", "(+ 0 x)", "(+ x 0)", "(+ x x)")
}

func Test_Expand_2(t *testing.T) {
	g := exampleGrammar(t, "x")
	store := fill(t, g, 3)
	plus := rules(g)[2]
	// Only (1,3) and (3,1) compositions exist at size 5.
	programs := Expand(g, plus, 5, store)
	//
	if len(programs) != 16 {
		t.Errorf("expected 16 programs, got %d", len(programs))
	} else if programs[0].String() != "(+ 0 (+ 0 0))" || programs[15].String() != "(+ (+ x x) x)" {
		t.Errorf("unexpected order: %s ... %s", programs[0], programs[15])
	}
}

func Test_Expand_3(t *testing.T) {
	g := exampleGrammar(t, "x")
	//
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic expanding at size 0")
		}
	}()
	//
	Expand(g, rules(g)[0], 0, NewStore(g.Len()))
}

// ===================================================================
// Store
// ===================================================================

func Test_Store_1(t *testing.T) {
	g := exampleGrammar(t, "x")
	store := fill(t, g, 5)
	//
	if diff := cmp.Diff([]uint{0, 2, 0, 4, 0, 16}, store.Counts(0)); diff != "" {
		t.Errorf("unexpected counts (-want +got):\n%s", diff)
	}
	//
	if store.Total() != 22 || store.MaxSize(0) != 5 || len(store.Bucket(0, 9)) != 0 {
		t.Errorf("unexpected store")
	}
}

func Test_Store_2(t *testing.T) {
	g := exampleGrammar(t, "x")
	store := NewStore(g.Len())
	store.Grow(0)
	//
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic appending to wrong bucket")
		}
	}()
	// Size 3 program cannot enter size 1 bucket
	store.Append(0, Expand(g, rules(g)[2], 3, fill(t, g, 1))[0])
}

// Every program stored in bucket s has size s, and every child of it was
// stored in a smaller bucket.
func Test_Store_SizeMonotonic(t *testing.T) {
	g := mixedGrammar(t)
	store := fill(t, g, 7)
	//
	for i := range g.Len() {
		for size := range store.MaxSize(i) + 1 {
			for _, p := range store.Bucket(i, size) {
				if p.Size() != size {
					t.Errorf("program %s of size %d in bucket %d", p, p.Size(), size)
				}
				//
				for _, c := range p.Children() {
					if c.Size() >= size || !slices.Contains(store.Bucket(g.IndexOf(c.Symbol()), c.Size()), c) {
						t.Errorf("child %s of %s not stored in a smaller bucket", c, p)
					}
				}
			}
		}
	}
}

// Bottom-up enumeration constructs exactly the programs of each size, as
// determined by a naive recursive enumeration.
func Test_Store_Complete(t *testing.T) {
	g := mixedGrammar(t)
	store := fill(t, g, 7)
	//
	for i, symbol := range g.Symbols() {
		for size := range uint(8) {
			expected := render(reference(symbol, size))
			actual := render(store.Bucket(uint(i), size))
			// Order is irrelevant here
			slices.Sort(expected)
			slices.Sort(actual)
			//
			if diff := cmp.Diff(expected, actual); diff != "" {
				t.Errorf("symbol %s size %d (-want +got):\n%s", symbol.Name(), size, diff)
			}
		}
	}
}

// ===================================================================
// Enumeration
// ===================================================================

func Test_Enumerate_1(t *testing.T) {
	// x + x
	g := exampleGrammar(t, "x")
	checkEnumerate(t, g, "(+ x x)", ioExample(4, 2, 3), ioExample(2, 1, 1))
}

func Test_Enumerate_2(t *testing.T) {
	// x + y
	g := exampleGrammar(t, "x", "y")
	checkEnumerate(t, g, "(+ x y)", ioExample(5, 2, 3), ioExample(2, 1, 1))
}

func Test_Enumerate_3(t *testing.T) {
	g := exampleGrammar(t, "x")
	checkEnumerate(t, g, "x", ioExample(2, 2, 3), ioExample(1, 1, 1))
}

func Test_Enumerate_4(t *testing.T) {
	// No examples, hence first program
	g := exampleGrammar(t, "x")
	checkEnumerate(t, g, "0")
}

func Test_Enumerate_5(t *testing.T) {
	g := exampleGrammar(t, "x", "y")
	checkEnumerate(t, g, "(+ x (+ y y))", ioExample(8, 2, 3), ioExample(3, 1, 1), ioExample(0, 0, 0))
}

func Test_Enumerate_6(t *testing.T) {
	g := mixedGrammar(t)
	// max(x, 1)
	checkEnumerate(t, g, "(ite (<= x 1) 1 x)", ioExample(1, 0), ioExample(1, -1), ioExample(5, 5))
}

// Even sums of x cannot produce 5 from 2, so no program exists at any size.
func Test_Enumerate_Unrealizable_1(t *testing.T) {
	g := exampleGrammar(t, "x")
	checkUnrealizable(t, g, 7, ioExample(5, 2, 3), ioExample(2, 1, 1))
}

func Test_Enumerate_Unrealizable_2(t *testing.T) {
	start := grammar.NewSymbol("Start", value.INT)
	start.AddRule(theory.NewParam("x", 0))
	g := index(t, grammar.NewGrammar(start, start))
	store := checkUnrealizable(t, g, 5, ioExample(2, 1))
	//
	if diff := cmp.Diff([]uint{0, 1, 0, 0, 0, 0}, store.Counts(0)); diff != "" {
		t.Errorf("unexpected counts (-want +got):\n%s", diff)
	}
}

func Test_Enumerate_Config_1(t *testing.T) {
	g := exampleGrammar(t, "x")
	config := DefaultConfig()
	config.MaxSize = 0
	//
	if _, _, err := Enumerate(g, nil, env.NewInterpreter(), config); err == nil {
		t.Errorf("expected configuration error")
	}
}

// Repeated runs, both sequential and parallel, return the same program and
// construct the same store.
func Test_Enumerate_Deterministic(t *testing.T) {
	g := mixedGrammar(t)
	examples := []example.IOExample{ioExample(4, 3), ioExample(2, -2), ioExample(2, 0)}
	//
	expected, store, err := Enumerate(g, examples, env.NewInterpreter(), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	//
	for _, parallel := range []bool{false, true, true} {
		config := DefaultConfig()
		config.Parallel = parallel
		//
		actual, other, err := Enumerate(g, examples, env.NewInterpreter(), config)
		if err != nil {
			t.Fatal(err)
		} else if actual.String() != expected.String() {
			t.Errorf("expected %s, got %s (parallel=%t)", expected, actual, parallel)
		}
		//
		for i := range g.Len() {
			for size := range store.MaxSize(i) + 1 {
				if diff := cmp.Diff(render(store.Bucket(i, size)), render(other.Bucket(i, size))); diff != "" {
					t.Errorf("bucket %d of symbol %d differs (parallel=%t):\n%s", size, i, parallel, diff)
				}
			}
		}
	}
}

// The returned program is never larger than the smallest correct program,
// which is determined by checking every program in the store.
func Test_Enumerate_SmallestFirst(t *testing.T) {
	g := mixedGrammar(t)
	examples := []example.IOExample{ioExample(5, 2), ioExample(-1, -1), ioExample(1, 0)}
	//
	program, store, err := Enumerate(g, examples, env.NewInterpreter(), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	//
	for size := range program.Size() {
		for _, p := range store.Bucket(g.StartIndex(), size) {
			if Verify(p, examples, env.NewInterpreter()) {
				t.Errorf("smaller program %s also correct", p)
			}
		}
	}
	//
	if !Verify(program, examples, env.NewInterpreter()) {
		t.Errorf("program %s incorrect", program)
	}
}

// ===================================================================
// Verification
// ===================================================================

func Test_Verify_1(t *testing.T) {
	g := exampleGrammar(t, "x")
	store := fill(t, g, 3)
	xx := store.Bucket(0, 3)[3]
	//
	if !Verify(xx, []example.IOExample{ioExample(4, 2)}, env.NewInterpreter()) {
		t.Errorf("expected %s to pass", xx)
	} else if Verify(xx, []example.IOExample{ioExample(4, 2), ioExample(3, 1)}, env.NewInterpreter()) {
		t.Errorf("expected %s to fail", xx)
	}
}

// A program which faults disagrees with the example, even when it would
// otherwise produce the right output.
func Test_Verify_Fault(t *testing.T) {
	g := exampleGrammar(t, "x")
	environment := &faultingEnv{"x"}
	//
	program, _, err := Enumerate(g, []example.IOExample{ioExample(3, 3)}, environment, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	} else if program.String() != "(+ 0 x)" {
		t.Errorf("expected (+ 0 x), got %s", program)
	}
}

func Test_Verify_Fault_2(t *testing.T) {
	start, zero := grammar.NewSymbol("Start", value.INT), grammar.NewSymbol("Zero", value.INT)
	div, _ := theory.Lookup("div")
	start.AddRule(div, start, zero)
	start.AddRule(theory.NewParam("x", 0))
	zero.AddRule(theory.NewConstant(value.Int(0)))
	g := index(t, grammar.NewGrammar(start, start, zero))
	store := fill(t, g, 3)
	//
	program := store.Bucket(0, 3)[0]
	if Verify(program, []example.IOExample{ioExample(0, 4)}, env.NewInterpreter()) {
		t.Errorf("expected %s to fault", program)
	}
}

// ===================================================================
// CEGIS
// ===================================================================

func Test_Cegis_1(t *testing.T) {
	g := exampleGrammar(t, "x", "y", "1")
	space := example.NewSampledSpace(env.NewInterpreter(), []value.Sort{value.INT, value.INT}, addOracle, nil,
		example.DefaultSamplerConfig())
	initial := []example.IOExample{ioExample(2, 1, 1)}
	//
	result, err := Cegis(g, initial, env.NewInterpreter(), space, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	//
	if result.Program.String() != "(+ x y)" {
		t.Errorf("expected (+ x y), got %s", result.Program)
	} else if result.Iterations != 2 || len(result.Examples) != 2 || !result.Examples[0].Equals(initial[0]) {
		t.Errorf("unexpected result after %d iterations: %v", result.Iterations, result.Examples)
	}
	// Initial examples are not modified
	if len(initial) != 1 {
		t.Errorf("initial examples modified")
	}
	//
	if !Verify(result.Program, result.Examples, env.NewInterpreter()) {
		t.Errorf("%s inconsistent with working set", result.Program)
	}
}

func Test_Cegis_2(t *testing.T) {
	g := exampleGrammar(t, "x")
	space := example.NewFiniteSpace(env.NewInterpreter(), ioExample(4, 2, 3), ioExample(2, 1, 1),
		ioExample(0, 0, 5))
	// Seeded from space
	result, err := Cegis(g, nil, env.NewInterpreter(), space, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	} else if result.Program.String() != "(+ x x)" || result.Iterations != 1 || len(result.Examples) != 1 {
		t.Errorf("unexpected result %s after %d iterations", result.Program, result.Iterations)
	}
}

// The working set grows on every iteration, and each candidate is consistent
// with every example added before it.
func Test_Cegis_Monotonic(t *testing.T) {
	g := mixedGrammar(t)
	// max(x, 2)
	space := example.NewFiniteSpace(env.NewInterpreter(), ioExample(2, -3), ioExample(2, 0), ioExample(2, 2),
		ioExample(3, 3), ioExample(9, 9))
	recorder := &recordingSpace{space: space}
	//
	result, err := Cegis(g, nil, env.NewInterpreter(), recorder, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	//
	if uint(len(recorder.candidates)) != result.Iterations {
		t.Errorf("expected %d candidates, got %d", result.Iterations, len(recorder.candidates))
	} else if uint(len(result.Examples)) != result.Iterations {
		t.Errorf("expected %d examples, got %d", result.Iterations, len(result.Examples))
	}
	//
	for i, candidate := range recorder.candidates {
		if !Verify(candidate, result.Examples[:i+1], env.NewInterpreter()) {
			t.Errorf("candidate %s inconsistent with %v", candidate, result.Examples[:i+1])
		}
	}
	//
	if cex, _ := space.Check(result.Program); cex != nil {
		t.Errorf("%s refuted by %s", result.Program, cex)
	}
}

func Test_Cegis_NonConvergence_1(t *testing.T) {
	g := exampleGrammar(t, "x", "y", "1")
	space := example.NewSampledSpace(env.NewInterpreter(), []value.Sort{value.INT, value.INT}, addOracle, nil,
		example.DefaultSamplerConfig())
	config := DefaultConfig()
	config.MaxIterations = 1
	//
	_, err := Cegis(g, []example.IOExample{ioExample(2, 1, 1)}, env.NewInterpreter(), space, config)
	//
	var nerr *NonConvergenceError
	//
	if !errors.As(err, &nerr) {
		t.Fatalf("expected non-convergence, got %v", err)
	} else if nerr.Iterations != 1 || nerr.Candidate.String() != "(+ x x)" {
		t.Errorf("unexpected error %s", nerr)
	}
}

// An unsound space which keeps returning the same counterexample.
func Test_Cegis_NonConvergence_2(t *testing.T) {
	g := exampleGrammar(t, "x")
	e := ioExample(2, 2)
	//
	_, err := Cegis(g, []example.IOExample{e}, env.NewInterpreter(), &stubbornSpace{e}, DefaultConfig())
	//
	var nerr *NonConvergenceError
	//
	if !errors.As(err, &nerr) {
		t.Fatalf("expected non-convergence, got %v", err)
	} else if nerr.Iterations != 1 || !nerr.Counterexample.Equals(e) {
		t.Errorf("unexpected error %s", nerr)
	}
}

func Test_Cegis_Unrealizable(t *testing.T) {
	g := exampleGrammar(t, "x")
	space := example.NewFiniteSpace(env.NewInterpreter(), ioExample(5, 2, 3))
	config := DefaultConfig()
	config.MaxSize = 5
	//
	_, err := Cegis(g, nil, env.NewInterpreter(), space, config)
	//
	var uerr *UnrealizableError
	//
	if !errors.As(err, &uerr) || uerr.MaxSize != 5 {
		t.Errorf("expected unrealizable, got %v", err)
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

func checkCompositions(t *testing.T, budget uint, pools [][]uint, expected [][]uint) {
	actual := Compositions(budget, pools)
	//
	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("compositions of %d over %v (-want +got):\n%s", budget, pools, diff)
	}
}

func checkPrograms(t *testing.T, programs []*grammar.Program, expected ...string) {
	t.Helper()
	//
	if diff := cmp.Diff(expected, render(programs)); diff != "" {
		t.Errorf("unexpected programs (-want +got):\n%s", diff)
	}
}

func checkEnumerate(t *testing.T, g *grammar.Indexed, expected string, examples ...example.IOExample) {
	t.Helper()
	//
	program, _, err := Enumerate(g, examples, env.NewInterpreter(), DefaultConfig())
	//
	if err != nil {
		t.Fatal(err)
	} else if program.String() != expected {
		t.Errorf("expected %s, got %s", expected, program)
	}
}

func checkUnrealizable(t *testing.T, g *grammar.Indexed, maxSize uint, examples ...example.IOExample) *Store {
	t.Helper()
	//
	config := DefaultConfig()
	config.MaxSize = maxSize
	//
	program, store, err := Enumerate(g, examples, env.NewInterpreter(), config)
	//
	var uerr *UnrealizableError
	//
	if !errors.As(err, &uerr) {
		t.Errorf("expected unrealizable, got %s (%v)", program, err)
	} else if uerr.MaxSize != maxSize {
		t.Errorf("expected bound %d, got %d", maxSize, uerr.MaxSize)
	}
	//
	return store
}

// Fill a store with every program up to a given size.
func fill(t *testing.T, g *grammar.Indexed, maxSize uint) *Store {
	config := DefaultConfig()
	config.MaxSize = maxSize
	enumerator := NewEnumerator(g, config)
	//
	if _, err := enumerator.Search(func(*grammar.Program) bool { return false }); err == nil {
		t.Fatalf("expected enumeration to be exhausted")
	}
	//
	return enumerator.Store()
}

func render(programs []*grammar.Program) []string {
	var strs []string
	//
	for _, p := range programs {
		strs = append(strs, p.String())
	}
	//
	return strs
}

// Naive recursive enumeration of all programs of a symbol with a given size.
func reference(symbol *grammar.Symbol, size uint) []*grammar.Program {
	var programs []*grammar.Program
	//
	if size == 0 {
		return nil
	}
	//
	for _, rule := range symbol.Rules() {
		if rule.Arity() == 0 {
			if size == 1 {
				programs = append(programs, rule.Build(nil))
			}
			//
			continue
		}
		//
		for _, split := range splits(size-1, rule.Arity()) {
			for _, children := range combine(rule.Params(), split) {
				programs = append(programs, rule.Build(children))
			}
		}
	}
	//
	return programs
}

// All ways of writing n as an ordered sum of k positive parts.
func splits(n uint, k uint) [][]uint {
	if k == 0 {
		if n == 0 {
			return [][]uint{{}}
		}
		//
		return nil
	}
	//
	var result [][]uint
	//
	for first := uint(1); first <= n; first++ {
		for _, rest := range splits(n-first, k-1) {
			result = append(result, append([]uint{first}, rest...))
		}
	}
	//
	return result
}

func combine(params []*grammar.Symbol, sizes []uint) [][]*grammar.Program {
	if len(params) == 0 {
		return [][]*grammar.Program{{}}
	}
	//
	var result [][]*grammar.Program
	//
	for _, head := range reference(params[0], sizes[0]) {
		for _, tail := range combine(params[1:], sizes[1:]) {
			result = append(result, append([]*grammar.Program{head}, tail...))
		}
	}
	//
	return result
}

// Construct a single symbol grammar Start -> 0 | p1 | ... | (+ Start Start),
// where each name is either a parameter or an integer constant.
func exampleGrammar(t *testing.T, names ...string) *grammar.Indexed {
	start := grammar.NewSymbol("Start", value.INT)
	plus, _ := theory.Lookup("+")
	//
	start.AddRule(theory.NewConstant(value.Int(0)))
	//
	for i, name := range names {
		if v, ok := value.ParseLiteral(name); ok {
			start.AddRule(theory.NewConstant(v))
		} else {
			start.AddRule(theory.NewParam(name, uint(i)))
		}
	}
	//
	start.AddRule(plus, start, start)
	//
	return index(t, grammar.NewGrammar(start, start))
}

// Construct a grammar with integer and boolean symbols:
//
// Start -> x | 1 | (+ Start Start) | (ite B Start Start)
// B -> (<= Start Start) | (not B)
func mixedGrammar(t *testing.T) *grammar.Indexed {
	start := grammar.NewSymbol("Start", value.INT)
	b := grammar.NewSymbol("B", value.BOOL)
	plus, _ := theory.Lookup("+")
	ite, _ := theory.Lookup("ite")
	leq, _ := theory.Lookup("<=")
	not, _ := theory.Lookup("not")
	//
	start.AddRule(theory.NewParam("x", 0))
	start.AddRule(theory.NewConstant(value.Int(1)))
	start.AddRule(plus, start, start)
	start.AddRule(ite, b, start, start)
	b.AddRule(leq, start, start)
	b.AddRule(not, b)
	//
	return index(t, grammar.NewGrammar(start, start, b))
}

func index(t *testing.T, g *grammar.Grammar) *grammar.Indexed {
	indexed, err := grammar.Index(g)
	if err != nil {
		t.Fatal(err)
	}
	//
	return indexed
}

func rules(g *grammar.Indexed) []*grammar.Rule {
	return g.Start().Rules()
}

func ioExample(output int64, inputs ...int64) example.IOExample {
	values := make([]value.Value, len(inputs))
	//
	for i, v := range inputs {
		values[i] = value.Int(v)
	}
	//
	return example.NewIOExample(value.Int(output), values...)
}

func addOracle(input []value.Value) (value.Value, error) {
	return input[0].(value.Int) + input[1].(value.Int), nil
}

// Environment which faults on every program with a given rendering.
type faultingEnv struct {
	program string
}

func (e *faultingEnv) Run(program *grammar.Program, input []value.Value) (value.Value, error) {
	if program.String() == e.program {
		return nil, &env.Fault{Program: program, Input: input, Cause: fmt.Errorf("refusing %s", e.program)}
	}
	//
	return env.NewInterpreter().Run(program, input)
}

// Space recording the candidates it checks.
type recordingSpace struct {
	space      example.Space
	candidates []*grammar.Program
}

func (s *recordingSpace) Examples(n uint) []example.IOExample {
	return s.space.Examples(n)
}

func (s *recordingSpace) Check(program *grammar.Program) (*example.IOExample, error) {
	s.candidates = append(s.candidates, program)
	return s.space.Check(program)
}

// Space which rejects every program with the same example.
type stubbornSpace struct {
	example example.IOExample
}

func (s *stubbornSpace) Examples(uint) []example.IOExample {
	return []example.IOExample{s.example}
}

func (s *stubbornSpace) Check(*grammar.Program) (*example.IOExample, error) {
	return &s.example, nil
}
