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
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/consensys/go-bidsys/pkg/bid"
)

// ErrorKind identifies the kind of defect found in a bidding system.
type ErrorKind uint8

const (
	// BidsOutOfOrder indicates two adjacent siblings which decrease in bid order.
	BidsOutOfOrder ErrorKind = iota
	// SAT indicates a sequence for which no deal exists.
	SAT
	// SolverTimeout indicates a sequence whose soundness could not be decided
	// in the time allowed.
	SolverTimeout
	// InvalidRange indicates a point or suit range which is empty, or lies
	// outside what a single hand can hold.
	InvalidRange
	// PassWhileForcing indicates a call which ignores the force placed by the
	// call before it.
	PassWhileForcing
	// PrimaryConflict indicates a player asserting two different primary suits.
	PrimaryConflict
)

func (k ErrorKind) String() string {
	switch k {
	case BidsOutOfOrder:
		return "bids out of order"
	case SAT:
		return "unsatisfiable"
	case SolverTimeout:
		return "solver timeout"
	case InvalidRange:
		return "invalid range"
	case PassWhileForcing:
		return "pass while forcing"
	case PrimaryConflict:
		return "primary conflict"
	}
	//
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

// SystemValidationError describes a defect found in an (expanded) bidding
// system.  The path identifies where the defect arises, whilst left and right
// identify the offending siblings of a BidsOutOfOrder error (and are otherwise
// unused).
type SystemValidationError struct {
	Kind ErrorKind
	// Left and Right are the siblings found out of order.
	Left  bid.Bid
	Right bid.Bid
	// Path to the defect.
	Path []bid.Bid
	// Detail is optional additional information.
	Detail string
}

func (e *SystemValidationError) Error() string {
	var builder strings.Builder
	//
	if len(e.Path) > 0 {
		builder.WriteString(bid.Join(e.Path, " "))
		builder.WriteString(": ")
	}
	//
	builder.WriteString(e.Kind.String())
	//
	if e.Kind == BidsOutOfOrder {
		fmt.Fprintf(&builder, " (%s before %s)", e.Left, e.Right)
	}
	//
	if e.Detail != "" {
		fmt.Fprintf(&builder, " (%s)", e.Detail)
	}
	//
	return builder.String()
}

// Errors is a non-empty collection of validation errors, sorted by path.
type Errors []*SystemValidationError

func (e Errors) Error() string {
	var builder strings.Builder
	//
	for i, err := range e {
		if i != 0 {
			builder.WriteString("\n")
		}
		//
		builder.WriteString(err.Error())
	}
	//
	return builder.String()
}

// Sort validation errors by path, then kind and then message, removing any
// duplicates.
func normalise(errs []*SystemValidationError) Errors {
	slices.SortFunc(errs, func(l, r *SystemValidationError) int {
		if c := slices.CompareFunc(l.Path, r.Path, bid.Compare); c != 0 {
			return c
		} else if c := cmp.Compare(l.Kind, r.Kind); c != 0 {
			return c
		}
		//
		return strings.Compare(l.Error(), r.Error())
	})
	//
	return slices.CompactFunc(errs, func(l, r *SystemValidationError) bool {
		return l.Error() == r.Error()
	})
}
