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

	"github.com/consensys/go-bidsys/pkg/bid"
	"github.com/consensys/go-bidsys/pkg/hand"
)

// Constraint represents a resolved predicate over the hand of the player making
// a given call.  The set of constraints is closed: every implementation lives in
// this package, and code which dispatches over constraints should panic on
// anything it does not recognise.
type Constraint interface {
	// Marks the implementations of this interface.
	constraint()
}

// Forcing represents a constraint which places an obligation on partner to
// continue the auction.
type Forcing interface {
	Constraint
	// Strength returns the forcing level of this obligation, where no force is
	// 0 and a relay is the strongest obligation.
	Strength() uint
}

// ============================================================================
// Constant
// ============================================================================

// Constant represents a constraint which either always holds, or never holds.
type Constant struct{ Value bool }

func (p *Constant) constraint() {}

// ============================================================================
// Conjunction
// ============================================================================

// Conjunction represents a constraint which holds when all of its arguments
// hold.  Arguments are evaluated strictly left-to-right.
type Conjunction struct{ Args []Constraint }

func (p *Conjunction) constraint() {}

// ============================================================================
// Disjunction
// ============================================================================

// Disjunction represents a constraint which holds when any of its arguments
// holds.  Arguments are evaluated strictly left-to-right.
type Disjunction struct{ Args []Constraint }

func (p *Disjunction) constraint() {}

// ============================================================================
// Negation
// ============================================================================

// Negation represents a constraint which holds when its argument does not.
type Negation struct{ Arg Constraint }

func (p *Negation) constraint() {}

// ============================================================================
// PointRange
// ============================================================================

// PointRange holds when the number of high card points in a hand lies within an
// inclusive range.
type PointRange struct {
	Min uint
	Max uint
}

func (p *PointRange) constraint() {}

// ============================================================================
// SuitRange
// ============================================================================

// SuitRange holds when the number of cards held in a given suit lies within an
// inclusive range.
type SuitRange struct {
	Suit bid.Suit
	Min  uint
	Max  uint
}

func (p *SuitRange) constraint() {}

// ============================================================================
// SuitComparison
// ============================================================================

// Comparator identifies a relational operator between two suit lengths.
type Comparator uint8

const (
	// LessThan holds when the left suit is strictly shorter.
	LessThan Comparator = iota
	// LessThanOrEqual holds when the left suit is no longer.
	LessThanOrEqual
	// Equal holds when both suits are the same length.
	Equal
	// GreaterThanOrEqual holds when the left suit is no shorter.
	GreaterThanOrEqual
	// GreaterThan holds when the left suit is strictly longer.
	GreaterThan
)

var comparatorSymbols = []string{"<", "<=", "=", ">=", ">"}

// Apply this comparator to two values.
func (op Comparator) Apply(lhs uint, rhs uint) bool {
	switch op {
	case LessThan:
		return lhs < rhs
	case LessThanOrEqual:
		return lhs <= rhs
	case Equal:
		return lhs == rhs
	case GreaterThanOrEqual:
		return lhs >= rhs
	case GreaterThan:
		return lhs > rhs
	}
	//
	panic(fmt.Sprintf("invalid comparator %d", op))
}

func (op Comparator) String() string {
	if int(op) >= len(comparatorSymbols) {
		panic(fmt.Sprintf("invalid comparator %d", op))
	}
	//
	return comparatorSymbols[op]
}

// ParseComparator parses a comparator from its symbol.
func ParseComparator(text string) (Comparator, error) {
	for i, s := range comparatorSymbols {
		if s == text {
			return Comparator(i), nil
		}
	}
	//
	return 0, fmt.Errorf("unknown comparator \"%s\"", text)
}

// SuitComparison holds when the lengths of two suits are related by a given
// operator.
type SuitComparison struct {
	Op    Comparator
	Left  bid.Suit
	Right bid.Suit
}

func (p *SuitComparison) constraint() {}

// ============================================================================
// SuitHonors
// ============================================================================

// SuitHonors holds when every one of a set of honors is held in a given suit.
type SuitHonors struct {
	Suit   bid.Suit
	Honors []hand.Rank
}

func (p *SuitHonors) constraint() {}

// ============================================================================
// SuitTop
// ============================================================================

// SuitTop holds when at least Count cards ranked Rank or higher are held in a
// given suit.  For example, "two of the top three" is SuitTop{Rank: Queen,
// Count: 2}.
type SuitTop struct {
	Suit  bid.Suit
	Rank  hand.Rank
	Count uint
}

func (p *SuitTop) constraint() {}

// ============================================================================
// SuitPrimary / SuitSecondary
// ============================================================================

// SuitPrimary holds when a given suit of at least five cards is not shorter
// than any higher ranking suit, and strictly longer than every lower ranking
// suit.  On success, the suit is recorded as the primary suit of the current
// call.
type SuitPrimary struct{ Suit bid.Suit }

func (p *SuitPrimary) constraint() {}

// SuitSecondary holds when a given suit of at least five cards is strictly
// shorter than the recorded primary suit, and both strictly exceed every other
// suit.  This never holds without a recorded primary suit.
type SuitSecondary struct{ Suit bid.Suit }

func (p *SuitSecondary) constraint() {}

// ============================================================================
// AnyShape / SpecificShape
// ============================================================================

// AnyShape holds when the suit lengths of a hand match a given 4-tuple under
// some assignment of lengths to suits.  For example, AnyShape{4,4,3,2} is held
// by any hand with two four card suits, a three card suit and a doubleton.
type AnyShape struct{ Counts [bid.NumSuits]uint }

func (p *AnyShape) constraint() {}

// SpecificShape holds when the suit lengths of a hand match exactly, where
// Lengths is indexed by suit.
type SpecificShape struct{ Lengths [bid.NumSuits]uint }

func (p *SpecificShape) constraint() {}

// ============================================================================
// Force / Relay
// ============================================================================

// ForceKind identifies the strength of a forcing call.
type ForceKind uint8

const (
	// OneRound obliges partner to bid once more.
	OneRound ForceKind = iota + 1
	// Game obliges the partnership to reach game.
	Game
	// Slam obliges the partnership to reach slam.
	Slam
)

// RelayStrength is the forcing level of a relay, which outranks all other
// forces.
const RelayStrength = 4

// Force marks the current call as forcing partner to a given extent.
type Force struct{ Kind ForceKind }

func (p *Force) constraint() {}

// Strength returns the forcing level of this force.
func (p *Force) Strength() uint { return uint(p.Kind) }

// Relay marks the current call as requiring partner to make a specific reply.
type Relay struct{ Bid bid.Bid }

func (p *Relay) constraint() {}

// Strength returns the forcing level of a relay.
func (p *Relay) Strength() uint { return RelayStrength }

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var (
	_ Constraint = (*Constant)(nil)
	_ Constraint = (*Conjunction)(nil)
	_ Constraint = (*Disjunction)(nil)
	_ Constraint = (*Negation)(nil)
	_ Constraint = (*PointRange)(nil)
	_ Constraint = (*SuitRange)(nil)
	_ Constraint = (*SuitComparison)(nil)
	_ Constraint = (*SuitHonors)(nil)
	_ Constraint = (*SuitTop)(nil)
	_ Constraint = (*SuitPrimary)(nil)
	_ Constraint = (*SuitSecondary)(nil)
	_ Constraint = (*AnyShape)(nil)
	_ Constraint = (*SpecificShape)(nil)
	_ Forcing    = (*Force)(nil)
	_ Forcing    = (*Relay)(nil)
)

// ============================================================================
// Constructors
// ============================================================================

// True returns a constraint which always holds.
func True() Constraint { return &Constant{true} }

// False returns a constraint which never holds.
func False() Constraint { return &Constant{false} }

// And constructs the conjunction of zero or more constraints.
func And(args ...Constraint) Constraint { return &Conjunction{args} }

// Or constructs the disjunction of zero or more constraints.
func Or(args ...Constraint) Constraint { return &Disjunction{args} }

// Not constructs the negation of a constraint.
func Not(arg Constraint) Constraint { return &Negation{arg} }

// Points constructs an inclusive high card point range.
func Points(min uint, max uint) Constraint { return &PointRange{min, max} }

// Length constructs an inclusive suit length range.
func Length(suit bid.Suit, min uint, max uint) Constraint { return &SuitRange{suit, min, max} }

// Shape constructs a suit-agnostic shape constraint from four lengths.
func Shape(a, b, c, d uint) Constraint { return &AnyShape{[bid.NumSuits]uint{a, b, c, d}} }

// ExactShape constructs an exact shape constraint from the lengths of spades,
// hearts, diamonds and clubs (in that order).
func ExactShape(spades, hearts, diamonds, clubs uint) Constraint {
	var lengths [bid.NumSuits]uint
	//
	lengths[bid.Spades] = spades
	lengths[bid.Hearts] = hearts
	lengths[bid.Diamonds] = diamonds
	lengths[bid.Clubs] = clubs
	//
	return &SpecificShape{lengths}
}

// ============================================================================
// ConstrainedBid
// ============================================================================

// ConstrainedBid associates a bid with the resolved constraint describing the
// hands which may make it.
type ConstrainedBid struct {
	Bid        bid.Bid
	Constraint Constraint
}

func (p ConstrainedBid) String() string {
	return fmt.Sprintf("%s %s", p.Bid, String(p.Constraint))
}

// Bids extracts the bids from a sequence of constrained bids.
func Bids(bids []ConstrainedBid) []bid.Bid {
	result := make([]bid.Bid, len(bids))
	//
	for i, b := range bids {
		result[i] = b.Bid
	}
	//
	return result
}
