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
	"fmt"
	"time"

	"github.com/consensys/go-bidsys/pkg/bid"
	"github.com/consensys/go-bidsys/pkg/constraint"
	"github.com/consensys/go-bidsys/pkg/forest"
	"github.com/consensys/go-bidsys/pkg/hand"
	"github.com/consensys/go-bidsys/pkg/sat"
)

// Walk is a leaf path through an expanded bidding system.
type Walk = forest.Walk[constraint.ConstrainedBid]

// Rule is a check applied independently to each leaf path of a bidding system.
// A rule returns the defect it finds (if any), or an error if the check itself
// could not be completed (e.g. because the context is done).
type Rule interface {
	// Name identifies this rule in configuration.
	Name() string
	// Check a given leaf path.
	Check(ctx context.Context, walk Walk) (*SystemValidationError, error)
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ Rule = (*OrderingRule)(nil)
var _ Rule = (*SoundnessRule)(nil)
var _ Rule = (*RangeRule)(nil)
var _ Rule = (*ForcingRule)(nil)
var _ Rule = (*PrimaryRule)(nil)

// ============================================================================
// Ordering
// ============================================================================

// OrderingRule requires that adjacent siblings along a path never decrease in
// bid order.
type OrderingRule struct{}

// Name implementation for Rule interface.
func (p *OrderingRule) Name() string { return "ordering" }

// Check implementation for Rule interface.
func (p *OrderingRule) Check(_ context.Context, walk Walk) (*SystemValidationError, error) {
	path := constraint.Bids(walk.Path())
	//
	for i, step := range walk {
		if step.Index == 0 {
			continue
		}
		//
		left, right := step.Siblings[step.Index-1].Bid, step.Value().Bid
		//
		if bid.Compare(left, right) > 0 {
			return &SystemValidationError{Kind: BidsOutOfOrder, Left: left, Right: right, Path: path[:i]}, nil
		}
	}
	//
	return nil, nil
}

// ============================================================================
// Soundness
// ============================================================================

// SoundnessRule requires that some deal satisfies every constraint along a
// path.  Each path is given a fixed time to solve, where zero means no limit.
type SoundnessRule struct {
	verifier *sat.Verifier
	timeout  time.Duration
}

// NewSoundnessRule constructs a soundness rule over a given verifier.
func NewSoundnessRule(verifier *sat.Verifier, timeout time.Duration) *SoundnessRule {
	return &SoundnessRule{verifier, timeout}
}

// Name implementation for Rule interface.
func (p *SoundnessRule) Name() string { return "soundness" }

// Check implementation for Rule interface.
func (p *SoundnessRule) Check(ctx context.Context, walk Walk) (*SystemValidationError, error) {
	var (
		path  = walk.Path()
		unsat *sat.UnsatisfiableError
		tctx  = ctx
	)
	//
	if p.timeout > 0 {
		var cancel context.CancelFunc
		//
		tctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	//
	err := p.verifier.PathIsSound(tctx, path)
	//
	switch {
	case err == nil:
		return nil, nil
	case errors.As(err, &unsat):
		return &SystemValidationError{Kind: SAT, Path: constraint.Bids(unsat.Prefix)}, nil
	case ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded):
		// Only this path ran out of time
		return &SystemValidationError{Kind: SolverTimeout, Path: constraint.Bids(path),
			Detail: fmt.Sprintf("gave up after %s", p.timeout)}, nil
	default:
		return nil, err
	}
}

// ============================================================================
// Range Sanity
// ============================================================================

// RangeRule requires that every point and suit range is non-empty, and lies
// within what a single hand can hold.
type RangeRule struct{}

// Name implementation for Rule interface.
func (p *RangeRule) Name() string { return "range-sanity" }

// Check implementation for Rule interface.
func (p *RangeRule) Check(_ context.Context, walk Walk) (*SystemValidationError, error) {
	path := walk.Path()
	//
	for i, b := range path {
		var bad constraint.Constraint
		//
		constraint.Visit(b.Constraint, func(c constraint.Constraint) {
			switch c := c.(type) {
			case *constraint.PointRange:
				if bad == nil && (c.Min > c.Max || c.Max > sat.MaxHandPoints) {
					bad = c
				}
			case *constraint.SuitRange:
				if bad == nil && (c.Min > c.Max || c.Max > hand.SuitSize) {
					bad = c
				}
			}
		})
		//
		if bad != nil {
			return &SystemValidationError{Kind: InvalidRange, Path: constraint.Bids(path.Prefix(i + 1)),
				Detail: constraint.String(bad)}, nil
		}
	}
	//
	return nil, nil
}

// ============================================================================
// Pass While Forcing
// ============================================================================

// ForcingRule requires that the call following an unconditional force is not
// a pass, and that the call following a relay is either a pass or the relay
// target.
type ForcingRule struct{}

// Name implementation for Rule interface.
func (p *ForcingRule) Name() string { return "pass-while-forcing" }

// Check implementation for Rule interface.
func (p *ForcingRule) Check(_ context.Context, walk Walk) (*SystemValidationError, error) {
	path := walk.Path()
	//
	for i := 1; i < len(path); i++ {
		var (
			force = constraint.ForcingOf(path[i-1].Constraint)
			next  = path[i].Bid
		)
		//
		if force == nil {
			continue
		} else if relay, ok := force.(*constraint.Relay); ok {
			if !next.IsPass() && next != relay.Bid {
				return &SystemValidationError{Kind: PassWhileForcing, Path: constraint.Bids(path.Prefix(i + 1)),
					Detail: fmt.Sprintf("expected %s after %s", relay.Bid, constraint.String(relay))}, nil
			}
		} else if next.IsPass() {
			return &SystemValidationError{Kind: PassWhileForcing, Path: constraint.Bids(path.Prefix(i + 1)),
				Detail: constraint.String(force)}, nil
		}
	}
	//
	return nil, nil
}

// ============================================================================
// Primary Conflict
// ============================================================================

// PrimaryRule requires that no player unconditionally asserts two different
// primary suits along a path.
type PrimaryRule struct{}

// Name implementation for Rule interface.
func (p *PrimaryRule) Name() string { return "primary-conflict" }

// Check implementation for Rule interface.
func (p *PrimaryRule) Check(_ context.Context, walk Walk) (*SystemValidationError, error) {
	var (
		path    = walk.Path()
		primary [sat.NumSeats][]bid.Suit
	)
	//
	for i, b := range path {
		seat := i % sat.NumSeats
		primary[seat] = append(primary[seat], primariesOf(b.Constraint)...)
		//
		for _, s := range primary[seat] {
			if s != primary[seat][0] {
				return &SystemValidationError{Kind: PrimaryConflict, Path: constraint.Bids(path.Prefix(i + 1)),
					Detail: fmt.Sprintf("%s and %s", primary[seat][0], s)}, nil
			}
		}
	}
	//
	return nil, nil
}

// Determine the primary suits asserted unconditionally (i.e. only through
// conjunctions) by a given constraint.
func primariesOf(c constraint.Constraint) []bid.Suit {
	switch c := c.(type) {
	case *constraint.SuitPrimary:
		return []bid.Suit{c.Suit}
	case *constraint.Conjunction:
		var suits []bid.Suit
		//
		for _, arg := range c.Args {
			suits = append(suits, primariesOf(arg)...)
		}
		//
		return suits
	default:
		return nil
	}
}
