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
package system

import (
	"testing"

	"github.com/consensys/go-bidsys/pkg/bid"
	"github.com/consensys/go-bidsys/pkg/expand"
	"github.com/consensys/go-bidsys/pkg/hand"
	"github.com/consensys/go-bidsys/pkg/syntax"
	"github.com/consensys/go-bidsys/pkg/util/source"
	"github.com/google/go-cmp/cmp"
)

func Test_Parse_01(t *testing.T) {
	f := check_Parse(t, `
(bid 1NT (and (hcp 15 17) balanced)
  (bid 2C (and (hcp 8 37) (relay 2D)))
  ; transfer
  (bid 2D (len H 5 13)))`)
	//
	if len(f) != 1 || len(f[0].Children) != 2 {
		t.Fatalf("unexpected system shape")
	}
	//
	check_Bid(t, f[0].Value, "1NT", "(and (hcp 15 17) balanced)")
	check_Bid(t, f[0].Children[0].Value, "2C", "(and (hcp 8 37) (relay 2D))")
	check_Bid(t, f[0].Children[1].Value, "2D", "(len H 5 13)")
}

func Test_Parse_02(t *testing.T) {
	f := check_Parse(t, "(bid 1C (hcp 12 21)) (bid P true) (bid X (def strong (hcp 16 37)))")
	//
	if len(f) != 3 {
		t.Fatalf("expected 3 roots, got %d", len(f))
	}
	//
	check_Bid(t, f[1].Value, "P", "true")
	check_Bid(t, f[2].Value, "X", "(def strong (hcp 16 37))")
}

func Test_Parse_03(t *testing.T) {
	check_RoundTrip(t, "true")
	check_RoundTrip(t, "otherwise")
	check_RoundTrip(t, "semi-balanced")
	check_RoundTrip(t, "unbalanced")
	check_RoundTrip(t, "game-forcing")
	check_RoundTrip(t, "(relay 3C)")
	check_RoundTrip(t, "(or (len major 5 13) (not (cmp < S H)))")
	check_RoundTrip(t, "(cmp >= other-minor *)")
}

func Test_Parse_04(t *testing.T) {
	check_RoundTrip(t, "(honors * AKQ)")
	check_RoundTrip(t, "(top other-minor Q 2)")
	check_RoundTrip(t, "(primary S)")
	check_RoundTrip(t, "(secondary other-major)")
	check_RoundTrip(t, "(shape 4 4 3 2)")
	check_RoundTrip(t, "(exact-shape 5 4 3 1)")
}

func Test_Parse_05(t *testing.T) {
	check_RoundTrip(t, "(def opening (and (hcp 12 21) (len minor 3 13)))")
	check_RoundTrip(t, "(and (ref opening) (other 1C))")
}

func Test_Parse_06(t *testing.T) {
	check_ParseError(t, "(bid 1C (hcp 12))", "expected 2 arguments, found 1")
	check_ParseError(t, "(bid 9C true)", "invalid bid level in \"9C\"")
	check_ParseError(t, "(bid 1C (foo 1))", "unknown list encountered")
	check_ParseError(t, "(bid 1C maybe)", "unknown symbol \"maybe\"")
	check_ParseError(t, "(bid 1C (shape 4 4 3 3))", "shape has 14 cards (expected 13)")
	check_ParseError(t, "(bid 1C (len Z 4 13))", "unknown suit specifier \"Z\"")
	check_ParseError(t, "(bid 1C)", "expected (bid BID SYNTAX CHILD...)")
}

func Test_Parse_07(t *testing.T) {
	// Errors are reported against the offending expression
	srcfile := source.NewSourceFile("test.bid", []byte("(bid 1C true)\n(bid 1D (and true (hcp x 2)))"))
	f, errs := Parse(srcfile)
	//
	if len(f) != 1 || len(errs) != 1 {
		t.Fatalf("expected one bid and one error, got %d and %d", len(f), len(errs))
	}
	//
	if line := errs[0].FirstEnclosingLine(); line.Number() != 2 {
		t.Errorf("expected error on line 2, got %d", line.Number())
	}
	//
	if span := errs[0].Span(); span.Start() != 32 || span.End() != 41 {
		t.Errorf("unexpected span %d-%d", span.Start(), span.End())
	}
}

func Test_Continuations_01(t *testing.T) {
	f := check_Expand(t, `
(bid 1C (hcp 12 21)
  (bid 1D (and (hcp 6 37) (len D 4 13)))
  (bid 1H (and (hcp 6 37) (len H 4 13))))`)
	//
	continuations, err := Continuations(f, check_Auction(t, "1C"), hand.MustParse("AK3.K542.Q76.J54"))
	if err != nil {
		t.Fatal(err)
	}
	//
	var satisfied []string
	//
	for _, c := range continuations {
		if c.Satisfied {
			satisfied = append(satisfied, c.Bid.String())
		}
	}
	//
	if diff := cmp.Diff([]string{"1H"}, satisfied); diff != "" {
		t.Errorf("unexpected continuations (-want +got):\n%s", diff)
	}
}

func Test_Continuations_02(t *testing.T) {
	f := check_Expand(t, "(bid 1C (hcp 12 21) (bid 1D true))")
	//
	if _, err := Continuations(f, check_Auction(t, "1C 1H"), hand.MustParse("AK3.K542.Q76.J54")); err == nil {
		t.Errorf("expected uncovered auction to fail")
	}
	// The empty auction gives the openings
	continuations, err := Continuations(f, nil, hand.MustParse("AK3.K542.Q76.J54"))
	//
	if err != nil {
		t.Fatal(err)
	} else if len(continuations) != 1 || !continuations[0].Satisfied {
		t.Errorf("expected 1C to be satisfied")
	}
}

func Test_Continuations_03(t *testing.T) {
	// Over a relay, only the relay target or a pass is permitted
	f := check_Expand(t, `
(bid 2C (and (hcp 22 37) (relay 2D))
  (bid P true)
  (bid 2D true)
  (bid 2H true))`)
	//
	continuations, err := Continuations(f, check_Auction(t, "2C"), hand.MustParse("AK3.K542.Q76.J54"))
	if err != nil {
		t.Fatal(err)
	}
	//
	expected := []bool{true, true, false}
	//
	for i, c := range continuations {
		if c.Satisfied != expected[i] {
			t.Errorf("unexpected result for %s", c.Bid)
		}
	}
}

func Test_Auction_01(t *testing.T) {
	auction := check_Auction(t, "1C P", "1H X")
	expected := []bid.Bid{bid.MustParse("1C"), bid.Pass, bid.MustParse("1H"), bid.Double}
	//
	if bid.Join(auction, " ") != bid.Join(expected, " ") {
		t.Errorf("expected %s, got %s", bid.Join(expected, " "), bid.Join(auction, " "))
	}
	//
	if _, err := ParseAuction("1C 8H"); err == nil {
		t.Errorf("expected invalid auction to fail")
	}
}

// ============================================================================
// Helpers
// ============================================================================

func check_Parse(t *testing.T, text string) Forest {
	f, errs := Parse(source.NewSourceFile("test.bid", []byte(text)))
	//
	for _, err := range errs {
		t.Errorf("unexpected error: %s", err.Message())
	}
	//
	return f
}

func check_Expand(t *testing.T, text string) Expanded {
	f, errs := expand.ExpandForest(check_Parse(t, text))
	//
	for _, err := range errs {
		t.Fatalf("unexpected error: %s", err)
	}
	//
	return f
}

func check_Auction(t *testing.T, calls ...string) []bid.Bid {
	auction, err := ParseAuction(calls...)
	if err != nil {
		t.Fatal(err)
	}
	//
	return auction
}

func check_Bid(t *testing.T, b syntax.SyntacticBid, expectedBid string, expectedSyntax string) {
	if b.Bid.String() != expectedBid {
		t.Errorf("expected bid %s, got %s", expectedBid, b.Bid)
	} else if actual := syntax.String(b.Syntax); actual != expectedSyntax {
		t.Errorf("expected %s, got %s", expectedSyntax, actual)
	}
}

func check_RoundTrip(t *testing.T, text string) {
	s, err := ParseSyntax(text)
	//
	if err != nil {
		t.Errorf("unexpected error: %s", err.Message())
	} else if actual := syntax.String(s); actual != text {
		t.Errorf("expected %s, got %s", text, actual)
	}
}

func check_ParseError(t *testing.T, text string, expected string) {
	_, errs := Parse(source.NewSourceFile("test.bid", []byte(text)))
	//
	if len(errs) != 1 {
		t.Fatalf("expected one error for %s, got %d", text, len(errs))
	} else if errs[0].Message() != expected {
		t.Errorf("expected error \"%s\", got \"%s\"", expected, errs[0].Message())
	}
}
