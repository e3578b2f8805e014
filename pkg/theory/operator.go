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
	"fmt"

	"github.com/consensys/go-sygus/pkg/value"
)

// ErrDivisionByZero is reported when div or mod are applied with a zero
// divisor.
var ErrDivisionByZero = errors.New("division by zero")

// Operator is a built-in function of the theory of (conditional) linear integer
// arithmetic, such as "+" or "ite".
type Operator struct {
	name string
	// Minimum number of arguments
	minArity int
	// Maximum number of arguments, where negative indicates no upper bound.
	maxArity int
	// Evaluation function, applied to arity-checked arguments.
	eval func([]value.Value) (value.Value, error)
}

// Name returns the name of this operator.
func (o *Operator) Name() string {
	return o.name
}

// Accepts checks whether this operator can be applied to n arguments.
func (o *Operator) Accepts(n int) bool {
	return n >= o.minArity && (o.maxArity < 0 || n <= o.maxArity)
}

// Apply this operator to a given set of arguments.  The input is ignored, since
// operators depend only on their arguments.
func (o *Operator) Apply(args []value.Value, _ []value.Value) (value.Value, error) {
	if !o.Accepts(len(args)) {
		return nil, fmt.Errorf("%s applied to %d arguments", o.name, len(args))
	}
	//
	return o.eval(args)
}

// Lookup a built-in operator by name.
func Lookup(name string) (*Operator, bool) {
	op, ok := operators[name]
	return op, ok
}

var operators = map[string]*Operator{
	"+":   {"+", 1, -1, foldInts("+", func(l, r int64) int64 { return l + r })},
	"*":   {"*", 1, -1, foldInts("*", func(l, r int64) int64 { return l * r })},
	"-":   {"-", 1, -1, minus},
	"div": {"div", 2, 2, divmod("div", true)},
	"mod": {"mod", 2, 2, divmod("mod", false)},
	"abs": {"abs", 1, 1, abs},
	"<":   {"<", 2, 2, compare("<", func(l, r int64) bool { return l < r })},
	"<=":  {"<=", 2, 2, compare("<=", func(l, r int64) bool { return l <= r })},
	">":   {">", 2, 2, compare(">", func(l, r int64) bool { return l > r })},
	">=":  {">=", 2, 2, compare(">=", func(l, r int64) bool { return l >= r })},
	"=":   {"=", 2, 2, equals},
	"ite": {"ite", 3, 3, ite},
	"and": {"and", 1, -1, foldBools("and", func(l, r bool) bool { return l && r })},
	"or":  {"or", 1, -1, foldBools("or", func(l, r bool) bool { return l || r })},
	"xor": {"xor", 2, 2, foldBools("xor", func(l, r bool) bool { return l != r })},
	"=>":  {"=>", 2, 2, foldBools("=>", func(l, r bool) bool { return !l || r })},
	"not": {"not", 1, 1, not},
}

func foldInts(name string, fn func(int64, int64) int64) func([]value.Value) (value.Value, error) {
	return func(args []value.Value) (value.Value, error) {
		vals, err := ints(name, args)
		if err != nil {
			return nil, err
		}
		//
		acc := vals[0]
		for _, v := range vals[1:] {
			acc = fn(acc, v)
		}
		//
		return value.Int(acc), nil
	}
}

func foldBools(name string, fn func(bool, bool) bool) func([]value.Value) (value.Value, error) {
	return func(args []value.Value) (value.Value, error) {
		vals, err := bools(name, args)
		if err != nil {
			return nil, err
		}
		//
		acc := vals[0]
		for _, v := range vals[1:] {
			acc = fn(acc, v)
		}
		//
		return value.Bool(acc), nil
	}
}

func compare(name string, fn func(int64, int64) bool) func([]value.Value) (value.Value, error) {
	return func(args []value.Value) (value.Value, error) {
		vals, err := ints(name, args)
		if err != nil {
			return nil, err
		}
		//
		return value.Bool(fn(vals[0], vals[1])), nil
	}
}

// Unary minus negates, otherwise subtraction associates to the left.
func minus(args []value.Value) (value.Value, error) {
	vals, err := ints("-", args)
	if err != nil {
		return nil, err
	} else if len(vals) == 1 {
		return value.Int(-vals[0]), nil
	}
	//
	acc := vals[0]
	for _, v := range vals[1:] {
		acc -= v
	}
	//
	return value.Int(acc), nil
}

// Integer division and remainder following SMT-LIB, where the remainder is
// always non-negative.
func divmod(name string, quotient bool) func([]value.Value) (value.Value, error) {
	return func(args []value.Value) (value.Value, error) {
		vals, err := ints(name, args)
		if err != nil {
			return nil, err
		}
		//
		n, d := vals[0], vals[1]
		if d == 0 {
			return nil, ErrDivisionByZero
		}
		//
		q := n / d
		if n-d*q < 0 {
			if d > 0 {
				q--
			} else {
				q++
			}
		}
		//
		if quotient {
			return value.Int(q), nil
		}
		//
		return value.Int(n - d*q), nil
	}
}

func abs(args []value.Value) (value.Value, error) {
	vals, err := ints("abs", args)
	if err != nil {
		return nil, err
	} else if vals[0] < 0 {
		return value.Int(-vals[0]), nil
	}
	//
	return value.Int(vals[0]), nil
}

func equals(args []value.Value) (value.Value, error) {
	if args[0].Sort() != args[1].Sort() {
		return nil, fmt.Errorf("= applied to %s and %s", args[0].Sort(), args[1].Sort())
	}
	//
	return value.Bool(args[0].Equals(args[1])), nil
}

func ite(args []value.Value) (value.Value, error) {
	cond, ok := args[0].(value.Bool)
	//
	if !ok {
		return nil, fmt.Errorf("ite expects Bool condition, got %s", args[0].Sort())
	} else if args[1].Sort() != args[2].Sort() {
		return nil, fmt.Errorf("ite branches have sorts %s and %s", args[1].Sort(), args[2].Sort())
	} else if cond {
		return args[1], nil
	}
	//
	return args[2], nil
}

func not(args []value.Value) (value.Value, error) {
	vals, err := bools("not", args)
	if err != nil {
		return nil, err
	}
	//
	return value.Bool(!vals[0]), nil
}

func ints(name string, args []value.Value) ([]int64, error) {
	vals := make([]int64, len(args))
	//
	for i, arg := range args {
		v, ok := arg.(value.Int)
		if !ok {
			return nil, fmt.Errorf("%s expects Int arguments, got %s", name, arg.Sort())
		}
		//
		vals[i] = int64(v)
	}
	//
	return vals, nil
}

func bools(name string, args []value.Value) ([]bool, error) {
	vals := make([]bool, len(args))
	//
	for i, arg := range args {
		v, ok := arg.(value.Bool)
		if !ok {
			return nil, fmt.Errorf("%s expects Bool arguments, got %s", name, arg.Sort())
		}
		//
		vals[i] = bool(v)
	}
	//
	return vals, nil
}
