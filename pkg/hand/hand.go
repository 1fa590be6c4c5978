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
	"math/bits"
	"slices"
	"strings"

	"github.com/consensys/go-bidsys/pkg/bid"
)

// Size is the number of cards in a hand.
const Size = 13

// SuitSize is the number of cards of each suit in a deck.
const SuitSize = 13

// MaxPoints is the total number of high card points in a deck.
const MaxPoints = 40

// Hand represents the cards held by a single player.  Cards are held per suit
// as a bitset over ranks, which makes hands comparable and cheap to copy.
type Hand struct {
	suits [bid.NumSuits]uint16
}

// New constructs a hand from a given set of cards.  This fails if any card is
// duplicated.  Observe that hands with fewer (or more) than 13 cards are
// permitted, since they remain meaningful for evaluation.
func New(cards ...Card) (Hand, error) {
	var h Hand
	//
	for _, c := range cards {
		if h.Holds(c) {
			return h, fmt.Errorf("duplicate card %s", c)
		}
		//
		h.suits[c.Suit] |= 1 << c.Rank
	}
	//
	return h, nil
}

// Holds checks whether this hand holds a given card.
func (h Hand) Holds(c Card) bool {
	return h.suits[c.Suit]&(1<<c.Rank) != 0
}

// Cards returns the cards in this hand, ordered by suit and then rank (both
// descending).
func (h Hand) Cards() []Card {
	var cards []Card
	//
	for s := int(bid.Spades); s >= int(bid.Clubs); s-- {
		cards = append(cards, h.Suit(bid.Suit(s))...)
	}
	//
	return cards
}

// Suit returns the cards held in a given suit, in descending rank order.
func (h Hand) Suit(suit bid.Suit) []Card {
	var cards []Card
	//
	for r := int(Ace); r >= int(Two); r-- {
		c := Card{suit, Rank(r)}
		if h.Holds(c) {
			cards = append(cards, c)
		}
	}
	//
	return cards
}

// Len returns the total number of cards in this hand.
func (h Hand) Len() uint {
	var n uint
	//
	for _, s := range bid.Suits() {
		n += h.Length(s)
	}
	//
	return n
}

// Length returns the number of cards held in a given suit.
func (h Hand) Length(suit bid.Suit) uint {
	return uint(bits.OnesCount16(h.suits[suit]))
}

// Lengths returns the number of cards held in each suit, indexed by suit.
func (h Hand) Lengths() [bid.NumSuits]uint {
	var lengths [bid.NumSuits]uint
	//
	for _, s := range bid.Suits() {
		lengths[s] = h.Length(s)
	}
	//
	return lengths
}

// Shape returns the suit lengths of this hand sorted in descending order.
func (h Hand) Shape() [bid.NumSuits]uint {
	lengths := h.Lengths()
	slices.SortFunc(lengths[:], func(l, r uint) int { return int(r) - int(l) })
	//
	return lengths
}

// Points returns the high card points held in this hand, using the 4-3-2-1
// count.
func (h Hand) Points() uint {
	var n uint
	//
	for _, s := range bid.Suits() {
		n += h.SuitPoints(s)
	}
	//
	return n
}

// SuitPoints returns the high card points held in a given suit.
func (h Hand) SuitPoints(suit bid.Suit) uint {
	var n uint
	//
	for _, c := range h.Suit(suit) {
		n += c.Rank.Points()
	}
	//
	return n
}

// CountAtLeast returns the number of cards held in a given suit whose rank is
// at least a given rank.
func (h Hand) CountAtLeast(suit bid.Suit, rank Rank) uint {
	var n uint
	//
	for _, c := range h.Suit(suit) {
		if c.Rank >= rank {
			n++
		}
	}
	//
	return n
}

// String returns the hand in dotted form, with suits listed from spades down
// to clubs (e.g. "AKQ2.J63.T98.54").  A void is shown as "-".
func (h Hand) String() string {
	var builder strings.Builder
	//
	for s := int(bid.Spades); s >= int(bid.Clubs); s-- {
		if s != int(bid.Spades) {
			builder.WriteString(".")
		}
		//
		cards := h.Suit(bid.Suit(s))
		if len(cards) == 0 {
			builder.WriteString("-")
		}
		//
		for _, c := range cards {
			builder.WriteString(c.Rank.String())
		}
	}
	//
	return builder.String()
}

// Parse a hand given in dotted form, with suits listed from spades down to
// clubs (e.g. "AKQ2.J63.T98.54").  Voids can be written as "-" or left empty.
// The hand must contain exactly 13 cards.
func Parse(text string) (Hand, error) {
	var (
		cards []Card
		parts = strings.Split(text, ".")
	)
	//
	if len(parts) != bid.NumSuits {
		return Hand{}, fmt.Errorf("hand \"%s\" must have four suits", text)
	}
	//
	for i, part := range parts {
		suit := bid.Suit(int(bid.Spades) - i)
		//
		if part == "-" {
			continue
		}
		//
		for _, r := range part {
			rank, err := ParseRank(r)
			if err != nil {
				return Hand{}, fmt.Errorf("hand \"%s\": %w", text, err)
			}
			//
			cards = append(cards, Card{suit, rank})
		}
	}
	//
	if len(cards) != Size {
		return Hand{}, fmt.Errorf("hand \"%s\" has %d cards (expected %d)", text, len(cards), Size)
	}
	//
	return New(cards...)
}

// MustParse parses a hand, panicking if it is malformed.
func MustParse(text string) Hand {
	h, err := Parse(text)
	if err != nil {
		panic(err.Error())
	}
	//
	return h
}
