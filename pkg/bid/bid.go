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
package bid

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// Kind distinguishes contract bids from the non-contract calls.  Kinds are
// numbered so that every non-contract call orders before any contract bid.
type Kind uint8

const (
	// PassKind identifies a pass.
	PassKind Kind = iota
	// DoubleKind identifies a double.
	DoubleKind
	// RedoubleKind identifies a redouble.
	RedoubleKind
	// ContractKind identifies a contract bid (e.g. 1H or 3NT).
	ContractKind
)

// Bid represents a single call in an auction.  This is either a contract bid,
// which names a level and a strain, or one of the non-contract calls (pass,
// double or redouble).  The zero value is a pass.  Bids are comparable and can
// therefore be used directly as map keys.
type Bid struct {
	kind   Kind
	level  uint8
	strain Strain
}

// Pass is the pass call.
var Pass = Bid{kind: PassKind}

// Double is the double call.
var Double = Bid{kind: DoubleKind}

// Redouble is the redouble call.
var Redouble = Bid{kind: RedoubleKind}

// Contract constructs a contract bid at a given level (1-7) and strain.
func Contract(level uint, strain Strain) Bid {
	if level < 1 || level > 7 {
		panic(fmt.Sprintf("invalid bid level %d", level))
	} else if strain > NoTrump {
		panic(fmt.Sprintf("invalid strain %d", strain))
	}
	//
	return Bid{ContractKind, uint8(level), strain}
}

// Kind returns the kind of this bid.
func (b Bid) Kind() Kind {
	return b.kind
}

// IsContract checks whether this is a contract bid.
func (b Bid) IsContract() bool {
	return b.kind == ContractKind
}

// IsPass checks whether this is a pass.
func (b Bid) IsPass() bool {
	return b.kind == PassKind
}

// Level returns the level of a contract bid, or 0 for a non-contract call.
func (b Bid) Level() uint {
	return uint(b.level)
}

// Strain returns the strain of a contract bid, or false for a non-contract call.
func (b Bid) Strain() (Strain, bool) {
	if b.kind != ContractKind {
		return 0, false
	}
	//
	return b.strain, true
}

// Cmp implements the total order over bids.  Non-contract calls precede
// contract bids, and contract bids are ordered first by level and then by the
// rank of their strain.
func (b Bid) Cmp(o Bid) int {
	if c := cmp.Compare(b.kind, o.kind); c != 0 {
		return c
	} else if c := cmp.Compare(b.level, o.level); c != 0 {
		return c
	}
	//
	return cmp.Compare(b.strain, o.strain)
}

// Compare two bids according to the total order over bids.
func Compare(l, r Bid) int {
	return l.Cmp(r)
}

func (b Bid) String() string {
	switch b.kind {
	case PassKind:
		return "P"
	case DoubleKind:
		return "X"
	case RedoubleKind:
		return "XX"
	}
	//
	return fmt.Sprintf("%d%s", b.level, b.strain.String())
}

// Parse a bid from a string, such as "1C", "3NT", "P" (or "Pass"), "X" or
// "XX".
func Parse(text string) (Bid, error) {
	switch t := strings.ToUpper(text); t {
	case "P", "PASS":
		return Pass, nil
	case "X", "DBL", "DOUBLE":
		return Double, nil
	case "XX", "RDBL", "REDOUBLE":
		return Redouble, nil
	}
	//
	if len(text) < 2 {
		return Pass, fmt.Errorf("invalid bid \"%s\"", text)
	}
	//
	level, err := strconv.ParseUint(text[:1], 10, 8)
	if err != nil || level < 1 || level > 7 {
		return Pass, fmt.Errorf("invalid bid level in \"%s\"", text)
	}
	//
	strain, err := ParseStrain(text[1:])
	if err != nil {
		return Pass, fmt.Errorf("invalid bid \"%s\": %w", text, err)
	}
	//
	return Contract(uint(level), strain), nil
}

// MustParse parses a bid, panicking if the string is malformed.  This is
// intended for tests and static tables.
func MustParse(text string) Bid {
	b, err := Parse(text)
	if err != nil {
		panic(err.Error())
	}
	//
	return b
}

// Join the string forms of a sequence of bids using a given separator.
func Join(bids []Bid, sep string) string {
	var builder strings.Builder
	//
	for i, b := range bids {
		if i != 0 {
			builder.WriteString(sep)
		}
		//
		builder.WriteString(b.String())
	}
	//
	return builder.String()
}
