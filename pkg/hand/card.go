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
package hand

import (
	"fmt"
	"strings"

	"github.com/consensys/go-bidsys/pkg/bid"
)

// Rank identifies the rank of a card, from Two (lowest) to Ace (highest).
type Rank uint8

// Card ranks in increasing order.
const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

const rankSymbols = "23456789TJQKA"

// Points returns the high card points for this rank (A=4, K=3, Q=2, J=1).
func (r Rank) Points() uint {
	if r >= Jack {
		return uint(r-Jack) + 1
	}
	//
	return 0
}

// IsHonor checks whether this rank is one of the point-carrying honors.
func (r Rank) IsHonor() bool {
	return r >= Jack
}

func (r Rank) String() string {
	if int(r) >= len(rankSymbols) {
		panic(fmt.Sprintf("invalid rank %d", r))
	}
	//
	return rankSymbols[r : r+1]
}

// ParseRank parses a rank from its single character symbol, where tens are
// written as "T".
func ParseRank(r rune) (Rank, error) {
	if i := strings.IndexRune(rankSymbols, r); i >= 0 {
		return Rank(i), nil
	} else if i := strings.IndexRune(strings.ToLower(rankSymbols), r); i >= 0 {
		return Rank(i), nil
	}
	//
	return 0, fmt.Errorf("unknown rank '%c'", r)
}

// Card represents a single playing card.
type Card struct {
	Suit bid.Suit
	Rank Rank
}

func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Suit, c.Rank)
}
