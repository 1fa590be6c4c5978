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
package validate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/consensys/go-bidsys/pkg/bid"
	"github.com/consensys/go-bidsys/pkg/constraint"
	"github.com/consensys/go-bidsys/pkg/forest"
	"github.com/consensys/go-bidsys/pkg/sat"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type Node = forest.Node[constraint.ConstrainedBid]

// Bids carry unexported state, so are compared directly.
var bidComparer = cmp.Comparer(func(l, r bid.Bid) bool { return l == r })

func Test_Validate_01(t *testing.T) {
	f := system(leaf("1C", constraint.True()), leaf("1D", constraint.True()))
	check_Valid(t, f)
}

func Test_Validate_02(t *testing.T) {
	f := system(leaf("1D", constraint.True()), leaf("1C", constraint.True()))
	check_Invalid(t, f, &SystemValidationError{Kind: BidsOutOfOrder, Left: bid.MustParse("1D"),
		Right: bid.MustParse("1C"), Path: []bid.Bid{}})
}

func Test_Validate_03(t *testing.T) {
	// Ordering applies at every depth, and is reported once
	f := system(
		branch("1C", constraint.True(),
			leaf("1H", constraint.True()),
			branch("1D", constraint.True(), leaf("P", constraint.True()), leaf("1S", constraint.True()))))
	check_Invalid(t, f, &SystemValidationError{Kind: BidsOutOfOrder, Left: bid.MustParse("1H"),
		Right: bid.MustParse("1D"), Path: bids("1C")})
}

func Test_Validate_04(t *testing.T) {
	f := system(
		branch("2C", constraint.Points(21, 37),
			leaf("P", constraint.Points(0, 3)),
			leaf("2D", constraint.Points(21, 37))))
	check_Invalid(t, f, &SystemValidationError{Kind: SAT, Path: bids("2C", "2D")})
}

func Test_Validate_05(t *testing.T) {
	// Defects in independent paths are all collected
	f := system(
		branch("1C", constraint.Points(21, 37), leaf("1D", constraint.Points(21, 37))),
		branch("1H", constraint.True(), leaf("2C", constraint.True()), leaf("1S", constraint.True())))
	check_Invalid(t, f,
		&SystemValidationError{Kind: SAT, Path: bids("1C", "1D")},
		&SystemValidationError{Kind: BidsOutOfOrder, Left: bid.MustParse("2C"), Right: bid.MustParse("1S"),
			Path: bids("1H")})
}

func Test_Validate_06(t *testing.T) {
	// Optional rules are disabled by default
	f := system(leaf("1C", constraint.Points(22, 12)))
	check_Invalid(t, f, &SystemValidationError{Kind: SAT, Path: bids("1C")})
	check_InvalidWith(t, f, map[string]bool{"range-sanity": true},
		&SystemValidationError{Kind: InvalidRange, Path: bids("1C"), Detail: "(hcp 22 12)"})
}

func Test_Validate_07(t *testing.T) {
	force := constraint.And(constraint.Points(12, 21), &constraint.Force{Kind: constraint.OneRound})
	f := system(branch("1C", force, leaf("P", constraint.True()), leaf("1D", constraint.True())))
	//
	check_Valid(t, f)
	check_InvalidWith(t, f, map[string]bool{"pass-while-forcing": true},
		&SystemValidationError{Kind: PassWhileForcing, Path: bids("1C", "P"), Detail: "forcing"})
}

func Test_Validate_08(t *testing.T) {
	relay := constraint.And(constraint.Points(8, 37), &constraint.Relay{Bid: bid.MustParse("2D")})
	f := system(branch("2C", relay,
		leaf("P", constraint.True()), leaf("2D", constraint.True()), leaf("2H", constraint.True())))
	//
	check_InvalidWith(t, f, map[string]bool{"pass-while-forcing": true},
		&SystemValidationError{Kind: PassWhileForcing, Path: bids("2C", "2H"), Detail: "expected 2D after (relay 2D)"})
}

func Test_Validate_09(t *testing.T) {
	spades := constraint.And(&constraint.SuitPrimary{Suit: bid.Spades}, constraint.Length(bid.Spades, 5, 13))
	hearts := constraint.And(&constraint.SuitPrimary{Suit: bid.Hearts}, constraint.Length(bid.Hearts, 5, 13))
	// The same seat bids both suits
	f := system(branch("1S", spades,
		branch("P", constraint.True(),
			branch("2C", constraint.True(),
				branch("P", constraint.True(), leaf("2H", hearts))))))
	//
	check_InvalidWith(t, f, map[string]bool{"primary-conflict": true, "soundness": false},
		&SystemValidationError{Kind: PrimaryConflict, Path: bids("1S", "P", "2C", "P", "2H"), Detail: "S and H"})
	// Partner may bid another suit
	g := system(branch("1S", spades, branch("P", constraint.True(), leaf("2H", hearts))))
	check_ValidWith(t, g, map[string]bool{"primary-conflict": true})
}

func Test_Validate_10(t *testing.T) {
	if _, err := NewValidator(Config{Rules: map[string]bool{"unknown": true}}); err == nil {
		t.Errorf("expected unknown rule to be rejected")
	}
}

func Test_Validate_11(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	//
	v := check_NewValidator(t, nil)
	err := v.ValidateForest(ctx, system(leaf("1C", constraint.Points(12, 21))))
	//
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected cancellation, got %v", err)
	}
}

func Test_Validate_12(t *testing.T) {
	// Results are memoised per path
	f := system(branch("1C", constraint.Points(12, 21),
		leaf("1D", constraint.True()), leaf("1H", constraint.True())))
	v := check_NewValidator(t, nil)
	//
	if err := v.ValidateForest(context.Background(), f); err != nil {
		t.Fatal(err)
	} else if n := v.Verifier().Cache().Len(); n != 2 {
		t.Errorf("expected 2 cached results, got %d", n)
	}
	// Revalidating hits the cache
	if err := v.ValidateForest(context.Background(), f); err != nil {
		t.Fatal(err)
	} else if n := v.Verifier().Cache().Len(); n != 2 {
		t.Errorf("expected 2 cached results, got %d", n)
	}
}

func Test_Validate_13(t *testing.T) {
	err := Errors{
		{Kind: SAT, Path: bids("1C", "1D")},
		{Kind: BidsOutOfOrder, Left: bid.MustParse("1D"), Right: bid.MustParse("1C"), Path: bids("1NT")},
	}
	expected := "1C 1D: unsatisfiable\n1NT: bids out of order (1D before 1C)"
	//
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func Test_Validate_14(t *testing.T) {
	// Every path runs out of time
	v := NewValidatorWithRules(2, &OrderingRule{}, NewSoundnessRule(sat.NewVerifier(0), time.Nanosecond))
	f := system(leaf("1C", constraint.True()), leaf("1D", constraint.True()))
	//
	check_Errors(t, v, f,
		&SystemValidationError{Kind: SolverTimeout, Path: bids("1C"), Detail: "gave up after 1ns"},
		&SystemValidationError{Kind: SolverTimeout, Path: bids("1D"), Detail: "gave up after 1ns"})
}

func Test_Validate_15(t *testing.T) {
	// A cancelled run is not a validation failure
	v := NewValidatorWithRules(1, NewSoundnessRule(sat.NewVerifier(0), time.Nanosecond))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	//
	err := v.ValidateForest(ctx, system(leaf("1C", constraint.True())))
	//
	var errs Errors
	if errors.As(err, &errs) || !errors.Is(err, context.Canceled) {
		t.Errorf("expected cancellation, got %v", err)
	}
}

// ============================================================================
// Helpers
// ============================================================================

func system(nodes ...*Node) forest.Forest[constraint.ConstrainedBid] {
	return nodes
}

func leaf(b string, c constraint.Constraint) *Node {
	return forest.Leaf(constraint.ConstrainedBid{Bid: bid.MustParse(b), Constraint: c})
}

func branch(b string, c constraint.Constraint, children ...*Node) *Node {
	return forest.Branch(constraint.ConstrainedBid{Bid: bid.MustParse(b), Constraint: c}, children...)
}

func bids(bs ...string) []bid.Bid {
	path := make([]bid.Bid, len(bs))
	//
	for i, b := range bs {
		path[i] = bid.MustParse(b)
	}
	//
	return path
}

func check_NewValidator(t *testing.T, rules map[string]bool) *Validator {
	config := DefaultConfig()
	config.Workers = 2
	//
	for name, on := range rules {
		config.Rules[name] = on
	}
	//
	v, err := NewValidator(config)
	if err != nil {
		t.Fatal(err)
	}
	//
	return v
}

func check_Valid(t *testing.T, f forest.Forest[constraint.ConstrainedBid]) {
	check_ValidWith(t, f, nil)
}

func check_ValidWith(t *testing.T, f forest.Forest[constraint.ConstrainedBid], rules map[string]bool) {
	v := check_NewValidator(t, rules)
	//
	if err := v.ValidateForest(context.Background(), f); err != nil {
		t.Errorf("unexpected error: %s", err)
	}
}

func check_Invalid(t *testing.T, f forest.Forest[constraint.ConstrainedBid], expected ...*SystemValidationError) {
	check_InvalidWith(t, f, nil, expected...)
}

func check_InvalidWith(t *testing.T, f forest.Forest[constraint.ConstrainedBid], rules map[string]bool,
	expected ...*SystemValidationError) {
	check_Errors(t, check_NewValidator(t, rules), f, expected...)
}

func check_Errors(t *testing.T, v *Validator, f forest.Forest[constraint.ConstrainedBid],
	expected ...*SystemValidationError) {
	var (
		err  = v.ValidateForest(context.Background(), f)
		errs Errors
	)
	//
	if !errors.As(err, &errs) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	//
	if diff := cmp.Diff(Errors(expected), errs, bidComparer); diff != "" {
		t.Errorf("unexpected errors (-want +got):\n%s", diff)
	}
}
