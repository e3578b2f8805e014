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
package theory

import (
	"errors"
	"testing"

	"github.com/consensys/go-sygus/pkg/value"
)

func Test_Operator_Arith_1(t *testing.T) {
	checkApply(t, "+", value.Int(5), value.Int(2), value.Int(3))
	checkApply(t, "+", value.Int(6), value.Int(1), value.Int(2), value.Int(3))
	checkApply(t, "-", value.Int(-1), value.Int(2), value.Int(3))
	checkApply(t, "-", value.Int(-2), value.Int(2))
	checkApply(t, "*", value.Int(6), value.Int(2), value.Int(3))
	checkApply(t, "abs", value.Int(4), value.Int(-4))
}

// SMT-LIB division always yields a non-negative remainder
func Test_Operator_Div_1(t *testing.T) {
	checkApply(t, "div", value.Int(3), value.Int(7), value.Int(2))
	checkApply(t, "mod", value.Int(1), value.Int(7), value.Int(2))
	checkApply(t, "div", value.Int(-4), value.Int(-7), value.Int(2))
	checkApply(t, "mod", value.Int(1), value.Int(-7), value.Int(2))
	checkApply(t, "div", value.Int(4), value.Int(-7), value.Int(-2))
	checkApply(t, "mod", value.Int(1), value.Int(-7), value.Int(-2))
	checkApply(t, "div", value.Int(-3), value.Int(7), value.Int(-2))
	checkApply(t, "mod", value.Int(1), value.Int(7), value.Int(-2))
}

func Test_Operator_Div_2(t *testing.T) {
	op, _ := Lookup("div")
	//
	if _, err := op.Apply([]value.Value{value.Int(1), value.Int(0)}, nil); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("expected division by zero, got %v", err)
	}
}

func Test_Operator_Logic_1(t *testing.T) {
	checkApply(t, "<=", value.Bool(true), value.Int(2), value.Int(2))
	checkApply(t, "<", value.Bool(false), value.Int(2), value.Int(2))
	checkApply(t, ">=", value.Bool(false), value.Int(1), value.Int(2))
	checkApply(t, ">", value.Bool(true), value.Int(3), value.Int(2))
	checkApply(t, "=", value.Bool(true), value.Bool(false), value.Bool(false))
	checkApply(t, "and", value.Bool(false), value.Bool(true), value.Bool(false))
	checkApply(t, "or", value.Bool(true), value.Bool(true), value.Bool(false))
	checkApply(t, "not", value.Bool(false), value.Bool(true))
	checkApply(t, "=>", value.Bool(true), value.Bool(false), value.Bool(false))
	checkApply(t, "ite", value.Int(1), value.Bool(true), value.Int(1), value.Int(2))
	checkApply(t, "ite", value.Int(2), value.Bool(false), value.Int(1), value.Int(2))
}

func Test_Operator_Invalid_1(t *testing.T) {
	checkFault(t, "+", value.Int(1), value.Bool(true))
	checkFault(t, "not", value.Int(1))
	checkFault(t, "=", value.Int(1), value.Bool(true))
	checkFault(t, "ite", value.Int(1), value.Int(1), value.Int(2))
	checkFault(t, "<=", value.Int(1))
	checkFault(t, "not", value.Bool(true), value.Bool(true))
}

func Test_Param_1(t *testing.T) {
	y := NewParam("y", 1)
	//
	if v, err := y.Apply(nil, []value.Value{value.Int(2), value.Int(3)}); err != nil || !v.Equals(value.Int(3)) {
		t.Errorf("expected 3, got %v (%v)", v, err)
	}
	//
	if _, err := y.Apply(nil, []value.Value{value.Int(2)}); err == nil {
		t.Errorf("reading missing parameter should fail")
	}
}

func Test_Macro_1(t *testing.T) {
	plus, _ := Lookup("+")
	// (define-fun double ((a Int)) Int (+ a a))
	a := NewVar("a", 0)
	double := NewMacro("double", []string{"a"}, []value.Sort{value.INT}, value.INT, NewCall(plus, a, a))
	// (double (double 3))
	term := NewCall(double, NewCall(double, NewLit(value.Int(3))))
	//
	if v, err := term.Eval(nil); err != nil || !v.Equals(value.Int(12)) {
		t.Errorf("expected 12, got %v (%v)", v, err)
	}
	//
	if s := term.String(); s != "(double (double 3))" {
		t.Errorf("unexpected rendering %s", s)
	}
}

func Test_Macro_2(t *testing.T) {
	a := NewVar("a", 0)
	id := NewMacro("id", []string{"a"}, []value.Sort{value.INT}, value.INT, a)
	//
	if _, err := id.Apply([]value.Value{value.Bool(true)}, nil); err == nil {
		t.Errorf("sort mismatch should fail")
	} else if _, err := id.Apply(nil, nil); err == nil {
		t.Errorf("arity mismatch should fail")
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

func checkApply(t *testing.T, name string, expected value.Value, args ...value.Value) {
	op, ok := Lookup(name)
	if !ok {
		t.Fatalf("unknown operator %s", name)
	}
	//
	actual, err := op.Apply(args, nil)
	//
	if err != nil {
		t.Errorf("(%s %v) failed: %s", name, args, err)
	} else if !actual.Equals(expected) {
		t.Errorf("(%s %v) expected %s, got %s", name, args, expected, actual)
	}
}

func checkFault(t *testing.T, name string, args ...value.Value) {
	op, _ := Lookup(name)
	//
	if v, err := op.Apply(args, nil); err == nil {
		t.Errorf("(%s %v) should fail, got %s", name, args, v)
	}
}
