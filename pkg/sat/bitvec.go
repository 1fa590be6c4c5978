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
package sat

import (
	"fmt"
	"math/bits"

	"github.com/consensys/go-bidsys/pkg/constraint"
	"github.com/go-air/gini/z"
)

// BitVec is an unsigned integer represented as a vector of literals, least
// significant bit first.
type BitVec []z.Lit

// Var returns a fresh unconstrained bit-vector of a given width.
func (c *Circuit) Var(width uint) BitVec {
	v := make(BitVec, width)
	//
	for i := range v {
		v[i] = c.Fresh()
	}
	//
	return v
}

// Const returns the (narrowest) bit-vector holding a given value.
func (c *Circuit) Const(value uint) BitVec {
	v := make(BitVec, bits.Len(value))
	//
	for i := range v {
		v[i] = c.Bool(value&(1<<i) != 0)
	}
	//
	return v
}

// Add returns the sum of two bit-vectors, which is one bit wider than the
// widest of them and so never overflows.
func (c *Circuit) Add(a BitVec, b BitVec) BitVec {
	var (
		width = max(len(a), len(b))
		sum   = make(BitVec, width+1)
		carry = c.False()
	)
	//
	a, b = c.pad(a, width), c.pad(b, width)
	// Ripple carry
	for i := 0; i < width; i++ {
		half := c.Xor(a[i], b[i])
		sum[i] = c.Xor(half, carry)
		carry = c.Or(c.And(a[i], b[i]), c.And(carry, half))
	}
	//
	sum[width] = carry
	//
	return sum
}

// Sum returns the sum of zero or more bit-vectors.
func (c *Circuit) Sum(vs ...BitVec) BitVec {
	var acc BitVec
	//
	for _, v := range vs {
		acc = c.Add(acc, v)
	}
	//
	return acc
}

// Eq returns a literal which holds when two bit-vectors are equal.
func (c *Circuit) Eq(a BitVec, b BitVec) z.Lit {
	width := max(len(a), len(b))
	a, b = c.pad(a, width), c.pad(b, width)
	//
	eqs := make([]z.Lit, width)
	//
	for i := range eqs {
		eqs[i] = c.Equiv(a[i], b[i])
	}
	//
	return c.AndN(eqs...)
}

// EqConst returns a literal which holds when a bit-vector equals a given value.
func (c *Circuit) EqConst(a BitVec, value uint) z.Lit {
	return c.Eq(a, c.Const(value))
}

// Ult returns a literal which holds when a is strictly less than b.
func (c *Circuit) Ult(a BitVec, b BitVec) z.Lit {
	var (
		width = max(len(a), len(b))
		lt    = c.False()
	)
	//
	a, b = c.pad(a, width), c.pad(b, width)
	// From least to most significant bit, where higher bits take precedence.
	for i := 0; i < width; i++ {
		lt = c.Or(c.And(a[i].Not(), b[i]), c.And(c.Equiv(a[i], b[i]), lt))
	}
	//
	return lt
}

// Ule returns a literal which holds when a is less than or equal to b.
func (c *Circuit) Ule(a BitVec, b BitVec) z.Lit {
	return c.Ult(b, a).Not()
}

// Compare returns a literal which holds when a given operator relates two
// bit-vectors.
func (c *Circuit) Compare(op constraint.Comparator, a BitVec, b BitVec) z.Lit {
	switch op {
	case constraint.LessThan:
		return c.Ult(a, b)
	case constraint.LessThanOrEqual:
		return c.Ule(a, b)
	case constraint.Equal:
		return c.Eq(a, b)
	case constraint.GreaterThanOrEqual:
		return c.Ule(b, a)
	case constraint.GreaterThan:
		return c.Ult(b, a)
	}
	//
	panic(fmt.Sprintf("invalid comparator %d", op))
}

// InRange returns a literal which holds when a bit-vector lies within an
// inclusive range.
func (c *Circuit) InRange(a BitVec, lo uint, hi uint) z.Lit {
	return c.And(c.Ule(c.Const(lo), a), c.Ule(a, c.Const(hi)))
}

// Uint returns the value of a bit-vector in the model found by the last
// successful solve.
func (c *Circuit) Uint(a BitVec) uint {
	var value uint
	//
	for i, m := range a {
		if c.Value(m) {
			value |= 1 << i
		}
	}
	//
	return value
}

// Extend a bit-vector with leading zeros up to a given width.
func (c *Circuit) pad(a BitVec, width int) BitVec {
	if len(a) >= width {
		return a
	}
	//
	padded := make(BitVec, width)
	copy(padded, a)
	//
	for i := len(a); i < width; i++ {
		padded[i] = c.False()
	}
	//
	return padded
}
