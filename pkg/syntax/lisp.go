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
	"reflect"

	"github.com/consensys/go-bidsys/pkg/constraint"
	"github.com/consensys/go-bidsys/pkg/util/source/sexp"
)

// String returns the textual form of a syntax tree.
func String(s Syntax) string {
	return Lisp(s).String()
}

// Lisp converts a syntax tree into an S-Expression.  The result is in the form
// accepted by the system file loader, and wrapped constraints print exactly as
// constraints do.
func Lisp(s Syntax) sexp.SExp {
	switch s := s.(type) {
	case *Wrapper:
		return constraint.Lisp(s.Constraint)
	case *Constant:
		return constraint.Lisp(&constraint.Constant{Value: s.Value})
	case *Conjunction:
		return nary2Lisp("and", s.Args)
	case *Disjunction:
		return nary2Lisp("or", s.Args)
	case *Negation:
		return sexp.NewList(sexp.NewSymbol("not"), Lisp(s.Arg))
	case *SuitRange:
		return sexp.NewList(sexp.NewSymbol("len"), sexp.NewSymbol(s.Suit.String()), sexp.Symbolf("%d", s.Min),
			sexp.Symbolf("%d", s.Max))
	case *SuitComparison:
		return sexp.NewList(sexp.NewSymbol("cmp"), sexp.NewSymbol(s.Op.String()), sexp.NewSymbol(s.Left.String()),
			sexp.NewSymbol(s.Right.String()))
	case *SuitHonors:
		return sexp.NewList(sexp.NewSymbol("honors"), sexp.NewSymbol(s.Suit.String()),
			sexp.NewSymbol(constraint.Honors(s.Honors)))
	case *SuitTop:
		return sexp.NewList(sexp.NewSymbol("top"), sexp.NewSymbol(s.Suit.String()), sexp.NewSymbol(s.Rank.String()),
			sexp.Symbolf("%d", s.Count))
	case *SuitPrimary:
		return sexp.NewList(sexp.NewSymbol("primary"), sexp.NewSymbol(s.Suit.String()))
	case *SuitSecondary:
		return sexp.NewList(sexp.NewSymbol("secondary"), sexp.NewSymbol(s.Suit.String()))
	case *Balanced:
		return sexp.NewSymbol("balanced")
	case *SemiBalanced:
		return sexp.NewSymbol("semi-balanced")
	case *Unbalanced:
		return sexp.NewSymbol("unbalanced")
	case *LabelDef:
		return sexp.NewList(sexp.NewSymbol("def"), sexp.NewSymbol(s.Name), Lisp(s.Def))
	case *LabelRef:
		return sexp.NewList(sexp.NewSymbol("ref"), sexp.NewSymbol(s.Name))
	case *OtherBid:
		return sexp.NewList(sexp.NewSymbol("other"), sexp.NewSymbol(s.Bid.String()))
	case *Otherwise:
		return sexp.NewSymbol("otherwise")
	default:
		name := reflect.TypeOf(s).String()
		panic(fmt.Sprintf("unknown syntax \"%s\"", name))
	}
}

func nary2Lisp(op string, args []Syntax) sexp.SExp {
	list := sexp.NewList(sexp.NewSymbol(op))
	//
	for _, arg := range args {
		list.Append(Lisp(arg))
	}
	//
	return list
}
