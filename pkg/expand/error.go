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
	"fmt"

	"github.com/consensys/go-bidsys/pkg/bid"
)

// ErrorKind identifies the reason why a rule could not be expanded.
type ErrorKind uint8

const (
	// NotImplemented indicates a form which is recognised, but cannot yet be
	// resolved (e.g. a contextual major or minor suit).
	NotImplemented ErrorKind = iota
	// OtherBidNotFound indicates a reference to a sibling bid which does not
	// precede the referring bid.
	OtherBidNotFound
	// LabelNotFound indicates a reference to a label which has not been
	// defined along the path.
	LabelNotFound
	// WildcardWithoutBid indicates a wildcard suit used by a call which is not
	// a contract bid.
	WildcardWithoutBid
	// WildcardInNTContext indicates a wildcard suit used by a notrump bid.
	WildcardInNTContext
	// RewriteLimit indicates a rule which did not resolve within the rewrite
	// bound, such as a label defined in terms of itself.
	RewriteLimit
)

func (k ErrorKind) String() string {
	switch k {
	case NotImplemented:
		return "not implemented"
	case OtherBidNotFound:
		return "other bid not found"
	case LabelNotFound:
		return "label not found"
	case WildcardWithoutBid:
		return "wildcard without bid"
	case WildcardInNTContext:
		return "wildcard in notrump context"
	case RewriteLimit:
		return "rewrite limit exceeded"
	}
	//
	panic(fmt.Sprintf("invalid error kind %d", k))
}

// SyntaxError reports a rule which cannot be expanded into a constraint.  Such
// errors are defects in the system being expanded.
type SyntaxError struct {
	Kind ErrorKind
	// Bids leading up to (and including) the bid whose rule failed.
	Path []bid.Bid
	// Offending item, such as the name of a label or a suit specifier.
	Detail string
}

func (e *SyntaxError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", bid.Join(e.Path, " "), e.Kind)
	}
	//
	return fmt.Sprintf("%s: %s (%s)", bid.Join(e.Path, " "), e.Kind, e.Detail)
}
