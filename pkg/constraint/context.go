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
	"slices"

	"github.com/consensys/go-bidsys/pkg/bid"
	"github.com/consensys/go-bidsys/pkg/util"
)

// BidContext captures the state accumulated whilst evaluating the calls of an
// auction from left to right.  Contexts are plain values: every operation
// which updates a context returns the updated copy and leaves its receiver
// untouched.
type BidContext struct {
	// Calls made so far.
	path []bid.Bid
	// Force placed on the next call (if any).
	force util.Option[Forcing]
	// Primary suit of the current call (if established).
	primary util.Option[bid.Suit]
	// Secondary suit of the current call (if established).
	secondary util.Option[bid.Suit]
}

// EmptyContext returns the context at the start of an auction.
func EmptyContext() BidContext {
	return BidContext{nil, util.None[Forcing](), util.None[bid.Suit](), util.None[bid.Suit]()}
}

// Path returns the calls made so far.
func (p BidContext) Path() []bid.Bid {
	return p.path
}

// Force returns the force pending on the next call (if any).
func (p BidContext) Force() util.Option[Forcing] {
	return p.force
}

// Primary returns the primary suit established for the current call (if any).
func (p BidContext) Primary() util.Option[bid.Suit] {
	return p.primary
}

// Secondary returns the secondary suit established for the current call (if
// any).
func (p BidContext) Secondary() util.Option[bid.Suit] {
	return p.secondary
}

// Extend returns a context for the next call in the auction, where the given
// bid is appended to the path and the pending force is discarded.  Suit
// inferences made for the previous call do not carry over.
func (p BidContext) Extend(b bid.Bid) BidContext {
	return BidContext{
		// Clip ensures the append never writes into a shared array.
		path:      append(slices.Clip(p.path), b),
		force:     util.None[Forcing](),
		primary:   util.None[bid.Suit](),
		secondary: util.None[bid.Suit](),
	}
}

// WithForce returns this context with a given force pending.
func (p BidContext) WithForce(force Forcing) BidContext {
	p.force = util.Some(force)
	return p
}

// WithPrimary returns this context with a given primary suit recorded.
func (p BidContext) WithPrimary(suit bid.Suit) BidContext {
	p.primary = util.Some(suit)
	return p
}

// WithSecondary returns this context with a given secondary suit recorded.
func (p BidContext) WithSecondary(suit bid.Suit) BidContext {
	p.secondary = util.Some(suit)
	return p
}

func (p BidContext) String() string {
	var force = "_"
	//
	if p.force.HasValue() {
		force = String(p.force.Unwrap())
	}
	//
	return fmt.Sprintf("{path: [%s], force: %s, primary: %s, secondary: %s}", bid.Join(p.path, " "), force,
		p.primary, p.secondary)
}
