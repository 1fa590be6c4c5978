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
	"strings"

	"github.com/consensys/go-bidsys/pkg/bid"
	"github.com/consensys/go-bidsys/pkg/hand"
	"github.com/consensys/go-bidsys/pkg/util/source/sexp"
)

// String returns the canonical textual form of a constraint.
func String(c Constraint) string {
	return Lisp(c).String()
}

// Lisp converts a constraint into an S-Expression, for example so it can be
// printed.  The result is canonical, in that two constraints are structurally
// equal exactly when their S-Expressions are.
func Lisp(c Constraint) sexp.SExp {
	switch c := c.(type) {
	case *Constant:
		if c.Value {
			return sexp.NewSymbol("true")
		}
		//
		return sexp.NewSymbol("false")
	case *Conjunction:
		return nary2Lisp("and", c.Args)
	case *Disjunction:
		return nary2Lisp("or", c.Args)
	case *Negation:
		return sexp.NewList(sexp.NewSymbol("not"), Lisp(c.Arg))
	case *PointRange:
		return sexp.NewList(sexp.NewSymbol("hcp"), sexp.Symbolf("%d", c.Min), sexp.Symbolf("%d", c.Max))
	case *SuitRange:
		return sexp.NewList(sexp.NewSymbol("len"), suit2Lisp(c.Suit), sexp.Symbolf("%d", c.Min),
			sexp.Symbolf("%d", c.Max))
	case *SuitComparison:
		return sexp.NewList(sexp.NewSymbol("cmp"), sexp.NewSymbol(c.Op.String()), suit2Lisp(c.Left),
			suit2Lisp(c.Right))
	case *SuitHonors:
		return sexp.NewList(sexp.NewSymbol("honors"), suit2Lisp(c.Suit), sexp.NewSymbol(Honors(c.Honors)))
	case *SuitTop:
		return sexp.NewList(sexp.NewSymbol("top"), suit2Lisp(c.Suit), sexp.NewSymbol(c.Rank.String()),
			sexp.Symbolf("%d", c.Count))
	case *SuitPrimary:
		return sexp.NewList(sexp.NewSymbol("primary"), suit2Lisp(c.Suit))
	case *SuitSecondary:
		return sexp.NewList(sexp.NewSymbol("secondary"), suit2Lisp(c.Suit))
	case *AnyShape:
		return counts2Lisp("shape", c.Counts[0], c.Counts[1], c.Counts[2], c.Counts[3])
	case *SpecificShape:
		l := c.Lengths
		return counts2Lisp("exact-shape", l[bid.Spades], l[bid.Hearts], l[bid.Diamonds], l[bid.Clubs])
	case *Force:
		return sexp.NewSymbol(c.Kind.String())
	case *Relay:
		return sexp.NewList(sexp.NewSymbol("relay"), sexp.NewSymbol(c.Bid.String()))
	default:
		name := reflect.TypeOf(c).String()
		panic(fmt.Sprintf("unknown constraint \"%s\"", name))
	}
}

// Honors returns the textual form of a set of honors, such as "AKQ".
func Honors(ranks []hand.Rank) string {
	var builder strings.Builder
	//
	for _, r := range ranks {
		builder.WriteString(r.String())
	}
	//
	return builder.String()
}

func (k ForceKind) String() string {
	switch k {
	case OneRound:
		return "forcing"
	case Game:
		return "game-forcing"
	case Slam:
		return "slam-forcing"
	}
	//
	panic(fmt.Sprintf("invalid force kind %d", k))
}

func nary2Lisp(op string, args []Constraint) sexp.SExp {
	list := sexp.NewList(sexp.NewSymbol(op))
	//
	for _, arg := range args {
		list.Append(Lisp(arg))
	}
	//
	return list
}

func counts2Lisp(op string, counts ...uint) sexp.SExp {
	list := sexp.NewList(sexp.NewSymbol(op))
	//
	for _, c := range counts {
		list.Append(sexp.Symbolf("%d", c))
	}
	//
	return list
}

func suit2Lisp(suit bid.Suit) sexp.SExp {
	return sexp.NewSymbol(suit.Symbol())
}
