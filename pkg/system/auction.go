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
	"fmt"
	"strings"

	"github.com/consensys/go-bidsys/pkg/bid"
	"github.com/consensys/go-bidsys/pkg/constraint"
	"github.com/consensys/go-bidsys/pkg/forest"
	"github.com/consensys/go-bidsys/pkg/hand"
)

// Expanded is a bidding system after expansion.
type Expanded = forest.Forest[constraint.ConstrainedBid]

// Continuation is a call which the system permits after some auction, along
// with whether a given hand satisfies its meaning.
type Continuation struct {
	constraint.ConstrainedBid
	Satisfied bool
}

// ParseAuction parses a sequence of calls, such as "1C P 1H".
func ParseAuction(calls ...string) ([]bid.Bid, error) {
	var auction []bid.Bid
	//
	for _, c := range calls {
		for _, field := range strings.Fields(c) {
			b, err := bid.Parse(field)
			if err != nil {
				return nil, err
			}
			//
			auction = append(auction, b)
		}
	}
	//
	return auction, nil
}

// Lookup follows an auction from the roots of a system, returning the path of
// constrained bids it corresponds to together with the calls the system permits
// next.  This fails if the system does not cover the auction.
func Lookup(system Expanded, auction []bid.Bid) ([]constraint.ConstrainedBid, Expanded, error) {
	var (
		path  []constraint.ConstrainedBid
		nodes = system
	)
	//
	for i, b := range auction {
		next := find(nodes, b)
		//
		if next == nil {
			return nil, nil, fmt.Errorf("auction %s is not covered by the system", bid.Join(auction[:i+1], " "))
		}
		//
		path = append(path, next.Value)
		nodes = next.Children
	}
	//
	return path, nodes, nil
}

// Continuations determines which calls the system permits a given hand to
// make after a given auction.  The hand belongs to the next player to call, so
// the calls of the auction are threaded through the context without a hand.
func Continuations(system Expanded, auction []bid.Bid, h hand.Hand) ([]Continuation, error) {
	path, nodes, err := Lookup(system, auction)
	if err != nil {
		return nil, err
	}
	//
	ctx := constraint.EmptyContext()
	//
	for _, b := range path {
		ctx = constraint.Advance(b.Bid, b.Constraint, ctx)
	}
	//
	continuations := make([]Continuation, len(nodes))
	//
	for i, n := range nodes {
		ok, _ := constraint.EvaluateBid(n.Value.Bid, n.Value.Constraint, h, ctx)
		continuations[i] = Continuation{n.Value, ok}
	}
	//
	return continuations, nil
}

func find(nodes Expanded, b bid.Bid) *forest.Node[constraint.ConstrainedBid] {
	for _, n := range nodes {
		if n.Value.Bid == b {
			return n
		}
	}
	//
	return nil
}
