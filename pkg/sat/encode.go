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
	"reflect"

	"github.com/consensys/go-bidsys/pkg/bid"
	"github.com/consensys/go-bidsys/pkg/constraint"
	"github.com/go-air/gini/z"
)

// MinPrimaryLength is the fewest cards a primary suit can hold.
const MinPrimaryLength = 5

// Encode lowers a constraint on the current caller into a literal which holds
// exactly when the constraint does.  Honors, top cards and secondary suits are
// not modelled and therefore encode as true.
func Encode(c constraint.Constraint, ctx *SATContext) z.Lit {
	var (
		circuit = ctx.Circuit()
		me      = ctx.Me()
	)
	//
	switch c := c.(type) {
	case *constraint.Constant:
		return circuit.Bool(c.Value)
	case *constraint.Conjunction:
		return circuit.AndN(encodeArgs(c.Args, ctx)...)
	case *constraint.Disjunction:
		return circuit.OrN(encodeArgs(c.Args, ctx)...)
	case *constraint.Negation:
		return Encode(c.Arg, ctx).Not()
	case *constraint.PointRange:
		return circuit.InRange(me.Points, c.Min, c.Max)
	case *constraint.SuitRange:
		return circuit.InRange(me.Lengths[c.Suit], c.Min, c.Max)
	case *constraint.SuitComparison:
		return circuit.Compare(c.Op, me.Lengths[c.Left], me.Lengths[c.Right])
	case *constraint.SuitHonors, *constraint.SuitTop, *constraint.SuitSecondary:
		return circuit.True()
	case *constraint.SuitPrimary:
		return encodePrimary(c.Suit, ctx)
	case *constraint.AnyShape:
		perms := constraint.Permutations(c.Counts)
		shapes := make([]z.Lit, len(perms))
		//
		for i, perm := range perms {
			shapes[i] = encodeLengths(perm, me, circuit)
		}
		//
		return circuit.And(circuit.OrN(shapes...), ctx.Thirteen())
	case *constraint.SpecificShape:
		return circuit.And(encodeLengths(c.Lengths, me, circuit), ctx.Thirteen())
	case *constraint.Force:
		return circuit.Ule(ctx.Forcing, circuit.Const(c.Strength()))
	case *constraint.Relay:
		return circuit.Ule(ctx.Forcing, circuit.Const(c.Strength()))
	default:
		name := reflect.TypeOf(c).String()
		panic(fmt.Sprintf("unknown constraint \"%s\"", name))
	}
}

func encodeArgs(args []constraint.Constraint, ctx *SATContext) []z.Lit {
	lits := make([]z.Lit, len(args))
	//
	for i, arg := range args {
		lits[i] = Encode(arg, ctx)
	}
	//
	return lits
}

// A suit is primary when it is recorded as such, has at least five cards, is
// no shorter than any higher suit, and is strictly longer than any lower suit.
func encodePrimary(suit bid.Suit, ctx *SATContext) z.Lit {
	var (
		circuit = ctx.Circuit()
		me      = ctx.Me()
		length  = me.Lengths[suit]
		lits    = []z.Lit{
			circuit.EqConst(me.Primary, uint(suit)),
			circuit.Ule(circuit.Const(MinPrimaryLength), length),
		}
	)
	//
	for _, s := range bid.Suits() {
		if s > suit {
			lits = append(lits, circuit.Ule(me.Lengths[s], length))
		} else if s < suit {
			lits = append(lits, circuit.Ult(me.Lengths[s], length))
		}
	}
	//
	return circuit.AndN(lits...)
}

// Encode that each suit holds exactly the given number of cards.
func encodeLengths(lengths [bid.NumSuits]uint, me *PlayerContext, circuit *Circuit) z.Lit {
	lits := make([]z.Lit, bid.NumSuits)
	//
	for _, s := range bid.Suits() {
		lits[s] = circuit.EqConst(me.Lengths[s], lengths[s])
	}
	//
	return circuit.AndN(lits...)
}
