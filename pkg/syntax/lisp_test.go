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
	"testing"

	"github.com/consensys/go-bidsys/pkg/bid"
	"github.com/consensys/go-bidsys/pkg/constraint"
	"github.com/consensys/go-bidsys/pkg/hand"
)

func Test_Lisp_01(t *testing.T) {
	check_String(t, And(Wrap(constraint.Points(15, 17)), &Balanced{}), "(and (hcp 15 17) balanced)")
}

func Test_Lisp_02(t *testing.T) {
	wildcard := bid.Contextual(bid.WildcardSuit)
	check_String(t, Or(&SuitRange{wildcard, 5, 13}, &SuitPrimary{bid.Concrete(bid.Hearts)}),
		"(or (len * 5 13) (primary H))")
}

func Test_Lisp_03(t *testing.T) {
	check_String(t, And(&LabelDef{"strong", Wrap(constraint.Points(16, 37))}, &LabelRef{"strong"}),
		"(and (def strong (hcp 16 37)) (ref strong))")
}

func Test_Lisp_04(t *testing.T) {
	check_String(t, Or(&OtherBid{bid.MustParse("1NT")}, &Otherwise{}, Not(&Constant{false})),
		"(or (other 1NT) otherwise (not false))")
}

func Test_Lisp_05(t *testing.T) {
	major := bid.Contextual(bid.MajorSuit)
	check_String(t, And(&SuitHonors{major, []hand.Rank{hand.King, hand.Queen}}, &SuitTop{major, hand.Queen, 2},
		&SuitComparison{constraint.GreaterThan, major, bid.Concrete(bid.Clubs)}, &SemiBalanced{}, &Unbalanced{}),
		"(and (honors major KQ) (top major Q 2) (cmp > major C) semi-balanced unbalanced)")
}

func Test_Lisp_06(t *testing.T) {
	b := SyntacticBid{bid.MustParse("2C"), &SuitSecondary{bid.Contextual(bid.OtherMinorSuit)}}
	//
	if b.String() != "2C (secondary other-minor)" {
		t.Errorf("unexpected string %s", b)
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

func check_String(t *testing.T, s Syntax, expected string) {
	if actual := String(s); actual != expected {
		t.Errorf("expected %s, got %s", expected, actual)
	}
}
