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
package syntax

import (
	"fmt"

	"github.com/consensys/go-bidsys/pkg/bid"
	"github.com/consensys/go-bidsys/pkg/constraint"
	"github.com/consensys/go-bidsys/pkg/hand"
)

// Syntax represents the rule attached to a bid, as written by the author of a
// system.  Unlike a constraint, syntax may refer to its surroundings: suits can
// be given relative to the bid being made, sub-expressions can be named and
// reused further down the tree, and a rule can refer to the rules of earlier
// sibling bids.  The set of syntax forms is closed.
type Syntax interface {
	// Marks the implementations of this interface.
	syntax()
}

// Wrapper holds a fully resolved constraint.  This is the terminal form of
// expansion.
type Wrapper struct{ Constraint constraint.Constraint }

// Constant either always holds, or never holds.
type Constant struct{ Value bool }

// Conjunction holds when all of its arguments hold.
type Conjunction struct{ Args []Syntax }

// Disjunction holds when any of its arguments holds.
type Disjunction struct{ Args []Syntax }

// Negation holds when its argument does not.
type Negation struct{ Arg Syntax }

// SuitRange bounds the length of a (possibly contextual) suit.
type SuitRange struct {
	Suit bid.SuitSpecifier
	Min  uint
	Max  uint
}

// SuitComparison relates the lengths of two (possibly contextual) suits.
type SuitComparison struct {
	Op    constraint.Comparator
	Left  bid.SuitSpecifier
	Right bid.SuitSpecifier
}

// SuitHonors requires a set of honors in a (possibly contextual) suit.
type SuitHonors struct {
	Suit   bid.SuitSpecifier
	Honors []hand.Rank
}

// SuitTop requires a number of top cards in a (possibly contextual) suit.
type SuitTop struct {
	Suit  bid.SuitSpecifier
	Rank  hand.Rank
	Count uint
}

// SuitPrimary asserts that a (possibly contextual) suit is primary.
type SuitPrimary struct{ Suit bid.SuitSpecifier }

// SuitSecondary asserts that a (possibly contextual) suit is secondary.
type SuitSecondary struct{ Suit bid.SuitSpecifier }

// Balanced holds for balanced hands.
type Balanced struct{}

// SemiBalanced holds for balanced or semi-balanced hands.
type SemiBalanced struct{}

// Unbalanced holds for hands which are neither balanced nor semi-balanced.
type Unbalanced struct{}

// LabelDef names a sub-expression, such that it can be referred to by later
// bids along the same path.  Defining a name which is already defined refines
// it, rather than replacing it.
type LabelDef struct {
	Name string
	Def  Syntax
}

// LabelRef refers to a named sub-expression defined earlier along the path.
type LabelRef struct{ Name string }

// OtherBid refers to the rule of an earlier sibling bid.
type OtherBid struct{ Bid bid.Bid }

// Otherwise holds when none of the earlier sibling bids applies.
type Otherwise struct{}

func (p *Wrapper) syntax()        {}
func (p *Constant) syntax()       {}
func (p *Conjunction) syntax()    {}
func (p *Disjunction) syntax()    {}
func (p *Negation) syntax()       {}
func (p *SuitRange) syntax()      {}
func (p *SuitComparison) syntax() {}
func (p *SuitHonors) syntax()     {}
func (p *SuitTop) syntax()        {}
func (p *SuitPrimary) syntax()    {}
func (p *SuitSecondary) syntax()  {}
func (p *Balanced) syntax()       {}
func (p *SemiBalanced) syntax()   {}
func (p *Unbalanced) syntax()     {}
func (p *LabelDef) syntax()       {}
func (p *LabelRef) syntax()       {}
func (p *OtherBid) syntax()       {}
func (p *Otherwise) syntax()      {}

// Wrap a constraint as syntax.
func Wrap(c constraint.Constraint) Syntax { return &Wrapper{c} }

// And constructs the conjunction of one or more syntax trees.
func And(args ...Syntax) Syntax { return &Conjunction{args} }

// Or constructs the disjunction of one or more syntax trees.
func Or(args ...Syntax) Syntax { return &Disjunction{args} }

// Not constructs the negation of a syntax tree.
func Not(arg Syntax) Syntax { return &Negation{arg} }

// ============================================================================
// SyntacticBid
// ============================================================================

// SyntacticBid associates a bid with the rule describing the hands which may
// make it.
type SyntacticBid struct {
	Bid    bid.Bid
	Syntax Syntax
}

func (p SyntacticBid) String() string {
	return fmt.Sprintf("%s %s", p.Bid, String(p.Syntax))
}
