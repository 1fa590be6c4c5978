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
package constraint

import (
	"fmt"
	"reflect"

	"github.com/consensys/go-bidsys/pkg/bid"
	"github.com/consensys/go-bidsys/pkg/hand"
)

// Satisfies determines whether a given hand satisfies a given constraint in a
// given context, returning the context updated with any inferences made along
// the way (e.g. suits established as primary, or forces placed on partner).
// Arguments of conjunctions and disjunctions are evaluated strictly
// left-to-right, so later arguments observe the inferences of earlier ones.
func Satisfies(c Constraint, h hand.Hand, ctx BidContext) (bool, BidContext) {
	switch c := c.(type) {
	case *Constant:
		return c.Value, ctx
	case *Conjunction:
		for _, arg := range c.Args {
			var ok bool
			//
			if ok, ctx = Satisfies(arg, h, ctx); !ok {
				return false, ctx
			}
		}
		//
		return true, ctx
	case *Disjunction:
		for _, arg := range c.Args {
			var ok bool
			//
			if ok, ctx = Satisfies(arg, h, ctx); ok {
				return true, ctx
			}
		}
		//
		return false, ctx
	case *Negation:
		var ok bool
		//
		ok, ctx = Satisfies(c.Arg, h, ctx)
		//
		return !ok, ctx
	case *PointRange:
		return inRange(h.Points(), c.Min, c.Max), ctx
	case *SuitRange:
		return inRange(h.Length(c.Suit), c.Min, c.Max), ctx
	case *SuitComparison:
		return c.Op.Apply(h.Length(c.Left), h.Length(c.Right)), ctx
	case *SuitHonors:
		return holdsHonors(h, c.Suit, c.Honors), ctx
	case *SuitTop:
		return h.CountAtLeast(c.Suit, c.Rank) >= c.Count, ctx
	case *SuitPrimary:
		if isPrimary(h.Lengths(), c.Suit) {
			return true, ctx.WithPrimary(c.Suit)
		}
		//
		return false, ctx
	case *SuitSecondary:
		if ctx.primary.HasValue() && isSecondary(h.Lengths(), ctx.primary.Unwrap(), c.Suit) {
			return true, ctx.WithSecondary(c.Suit)
		}
		//
		return false, ctx
	case *AnyShape:
		return matchesAnyShape(h.Lengths(), c.Counts), ctx
	case *SpecificShape:
		return h.Lengths() == c.Lengths, ctx
	case *Force:
		return true, ctx.WithForce(c)
	case *Relay:
		return true, ctx.WithForce(c)
	default:
		name := reflect.TypeOf(c).String()
		panic(fmt.Sprintf("unknown constraint \"%s\"", name))
	}
}

// EvaluateBid determines whether a given hand may make a given call, whose
// meaning is described by a given constraint, in the given context.  The
// returned context includes the call itself.  A pending relay restricts the
// call which may follow: a pass satisfies the relay outright (regardless of
// its constraint), the relay target is evaluated as normal, and any other call
// fails.  Other pending forces are consumed without restricting the call.
func EvaluateBid(b bid.Bid, c Constraint, h hand.Hand, ctx BidContext) (bool, BidContext) {
	pending := ctx.force
	ctx = ctx.Extend(b)
	//
	if pending.HasValue() {
		if relay, ok := pending.Unwrap().(*Relay); ok {
			if b.IsPass() {
				return true, ctx
			} else if b != relay.Bid {
				return false, ctx
			}
		}
	}
	//
	return Satisfies(c, h, ctx)
}

// Advance threads a call made by some other player (whose hand is unknown)
// through the context.  The call is appended to the path, and any force it
// unconditionally places on partner becomes pending.
func Advance(b bid.Bid, c Constraint, ctx BidContext) BidContext {
	ctx = ctx.Extend(b)
	//
	if force := ForcingOf(c); force != nil {
		ctx = ctx.WithForce(force)
	}
	//
	return ctx
}

// ForcingOf returns the strongest force unconditionally placed by a given
// constraint, or nil if there is none.  A force is unconditional when it is
// reached only through conjunctions.
func ForcingOf(c Constraint) Forcing {
	switch c := c.(type) {
	case *Force:
		return c
	case *Relay:
		return c
	case *Conjunction:
		var strongest Forcing
		//
		for _, arg := range c.Args {
			if f := ForcingOf(arg); f != nil && (strongest == nil || f.Strength() > strongest.Strength()) {
				strongest = f
			}
		}
		//
		return strongest
	default:
		return nil
	}
}

func inRange(value uint, min uint, max uint) bool {
	return min <= value && value <= max
}

func holdsHonors(h hand.Hand, suit bid.Suit, honors []hand.Rank) bool {
	for _, r := range honors {
		if !h.Holds(hand.Card{Suit: suit, Rank: r}) {
			return false
		}
	}
	//
	return true
}

// A suit is primary when it has at least five cards, no higher ranking suit is
// strictly longer and every lower ranking suit is strictly shorter.
func isPrimary(lengths [bid.NumSuits]uint, suit bid.Suit) bool {
	n := lengths[suit]
	//
	if n < 5 {
		return false
	}
	//
	for _, s := range bid.Suits() {
		if s > suit && lengths[s] > n {
			return false
		} else if s < suit && lengths[s] >= n {
			return false
		}
	}
	//
	return true
}

// A suit is secondary when it has at least five cards, is strictly shorter than
// the primary suit, and both strictly exceed every other suit.
func isSecondary(lengths [bid.NumSuits]uint, primary bid.Suit, suit bid.Suit) bool {
	n := lengths[suit]
	//
	if suit == primary || n < 5 || n >= lengths[primary] {
		return false
	}
	//
	for _, s := range bid.Suits() {
		if s != primary && s != suit && lengths[s] >= n {
			return false
		}
	}
	//
	return true
}

func matchesAnyShape(lengths [bid.NumSuits]uint, counts [bid.NumSuits]uint) bool {
	for _, perm := range Permutations(counts) {
		if perm == lengths {
			return true
		}
	}
	//
	return false
}

// Visit applies a given function to every node of a constraint, in pre-order.
func Visit(c Constraint, fn func(Constraint)) {
	fn(c)
	//
	switch c := c.(type) {
	case *Conjunction:
		for _, arg := range c.Args {
			Visit(arg, fn)
		}
	case *Disjunction:
		for _, arg := range c.Args {
			Visit(arg, fn)
		}
	case *Negation:
		Visit(c.Arg, fn)
	}
}
