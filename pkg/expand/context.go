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
package expand

import (
	"maps"
	"slices"

	"github.com/consensys/go-bidsys/pkg/bid"
	"github.com/consensys/go-bidsys/pkg/syntax"
	"github.com/consensys/go-bidsys/pkg/util"
)

// Peer records an earlier sibling of the bid being expanded, along with its
// expanded rule.  A sibling whose rule failed to expand records the error
// instead, which is reported only if the sibling is referred to.
type Peer struct {
	Bid    bid.Bid
	Syntax syntax.Syntax
	Err    error
}

// ExpandBidContext captures the state of expansion at a given bid.  Contexts
// are values, and updating one never affects a copy taken earlier: in
// particular, the label map is copied whenever a label is (re)defined.
type ExpandBidContext struct {
	// Bids leading up to the current bid (exclusive).
	path []bid.Bid
	// Bid whose rule is being expanded (if any).
	bid util.Option[bid.Bid]
	// Earlier siblings of the current bid, in order.
	peers []Peer
	// Labels defined so far along the path.
	labels map[string]syntax.Syntax
}

// NewExpandBidContext constructs an empty context, with no current bid, peers
// or labels.
func NewExpandBidContext() ExpandBidContext {
	return ExpandBidContext{nil, util.None[bid.Bid](), nil, nil}
}

// Bid returns the bid currently being expanded (if any).
func (p ExpandBidContext) Bid() util.Option[bid.Bid] {
	return p.bid
}

// Peers returns the earlier siblings of the current bid.
func (p ExpandBidContext) Peers() []Peer {
	return p.peers
}

// Label returns the definition of a given label, or false if it is undefined.
func (p ExpandBidContext) Label(name string) (syntax.Syntax, bool) {
	s, ok := p.labels[name]
	return s, ok
}

// At returns this context positioned at a given bid with a given set of
// peers.  Labels are retained.
func (p ExpandBidContext) At(b bid.Bid, peers []Peer) ExpandBidContext {
	p.bid = util.Some(b)
	p.peers = peers
	//
	return p
}

// Descend returns the context for the children of the current bid, which
// inherit its labels but not its peers.
func (p ExpandBidContext) Descend() ExpandBidContext {
	if p.bid.HasValue() {
		p.path = append(slices.Clip(p.path), p.bid.Unwrap())
	}
	//
	p.bid = util.None[bid.Bid]()
	p.peers = nil
	//
	return p
}

// Define returns this context with a given label (re)defined.  Redefining an
// existing label conjoins the new definition onto the old one.
func (p ExpandBidContext) Define(name string, def syntax.Syntax) (syntax.Syntax, ExpandBidContext) {
	if old, ok := p.labels[name]; ok {
		def = syntax.And(old, def)
	}
	//
	p.labels = maps.Clone(p.labels)
	//
	if p.labels == nil {
		p.labels = make(map[string]syntax.Syntax)
	}
	//
	p.labels[name] = def
	//
	return def, p
}

// Location returns the bids leading up to, and including, the current bid.
func (p ExpandBidContext) Location() []bid.Bid {
	if p.bid.HasValue() {
		return append(slices.Clip(p.path), p.bid.Unwrap())
	}
	//
	return p.path
}
