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
	"fmt"

	"github.com/consensys/go-sygus/pkg/value"
)

// Param reads one component of the input given to the function being
// synthesised.  For example, in a function f(x, y), x is parameter 0.
type Param struct {
	name  string
	index uint
}

// NewParam constructs a parameter with a given name and position.
func NewParam(name string, index uint) *Param {
	return &Param{name, index}
}

// Name returns the name of this parameter.
func (p *Param) Name() string {
	return p.name
}

// Index returns the position of this parameter in the input.
func (p *Param) Index() uint {
	return p.index
}

// Apply reads this parameter from the given input.
func (p *Param) Apply(_ []value.Value, input []value.Value) (value.Value, error) {
	if p.index >= uint(len(input)) {
		return nil, fmt.Errorf("parameter %s missing from input of length %d", p.name, len(input))
	}
	//
	return input[p.index], nil
}

// Constant is a terminal which always evaluates to a fixed value.
type Constant struct {
	val value.Value
}

// NewConstant constructs a constant with a given value.
func NewConstant(val value.Value) *Constant {
	return &Constant{val}
}

// Name returns the value of this constant in task file syntax.
func (p *Constant) Name() string {
	return p.val.String()
}

// Value returns the value of this constant.
func (p *Constant) Value() value.Value {
	return p.val
}

// Apply returns the value of this constant.
func (p *Constant) Apply(_ []value.Value, _ []value.Value) (value.Value, error) {
	return p.val, nil
}
