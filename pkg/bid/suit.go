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
	"fmt"
	"strings"
)

// Suit identifies one of the four suits.  Suits are numbered in increasing
// rank order, such that Clubs is the lowest and Spades the highest.
type Suit uint8

const (
	// Clubs is the lowest ranking suit.
	Clubs Suit = iota
	// Diamonds is the second lowest ranking suit.
	Diamonds
	// Hearts is the second highest ranking suit.
	Hearts
	// Spades is the highest ranking suit.
	Spades
)

// NumSuits is the number of suits in a deck.
const NumSuits = 4

// Suits returns all suits in increasing rank order.
func Suits() [NumSuits]Suit {
	return [NumSuits]Suit{Clubs, Diamonds, Hearts, Spades}
}

// Symbol returns the single letter used to denote this suit.
func (s Suit) Symbol() string {
	switch s {
	case Clubs:
		return "C"
	case Diamonds:
		return "D"
	case Hearts:
		return "H"
	case Spades:
		return "S"
	}
	//
	panic(fmt.Sprintf("invalid suit %d", s))
}

func (s Suit) String() string {
	return s.Symbol()
}

// ParseSuit parses a suit from its single letter symbol (case insensitive).
func ParseSuit(text string) (Suit, error) {
	switch strings.ToUpper(text) {
	case "C":
		return Clubs, nil
	case "D":
		return Diamonds, nil
	case "H":
		return Hearts, nil
	case "S":
		return Spades, nil
	}
	//
	return 0, fmt.Errorf("unknown suit \"%s\"", text)
}

// Strain identifies the denomination of a contract bid, which is either a suit
// or notrump.  Strains are numbered in increasing rank order.
type Strain uint8

const (
	// ClubStrain denotes a contract in clubs.
	ClubStrain Strain = Strain(Clubs)
	// DiamondStrain denotes a contract in diamonds.
	DiamondStrain Strain = Strain(Diamonds)
	// HeartStrain denotes a contract in hearts.
	HeartStrain Strain = Strain(Hearts)
	// SpadeStrain denotes a contract in spades.
	SpadeStrain Strain = Strain(Spades)
	// NoTrump denotes a notrump contract, which outranks every suit.
	NoTrump Strain = 4
)

// StrainOf returns the strain corresponding to a given suit.
func StrainOf(suit Suit) Strain {
	return Strain(suit)
}

// Suit returns the suit of this strain, or false if this is notrump.
func (s Strain) Suit() (Suit, bool) {
	if s == NoTrump {
		return 0, false
	}
	//
	return Suit(s), true
}

func (s Strain) String() string {
	if s == NoTrump {
		return "NT"
	}
	//
	return Suit(s).Symbol()
}

// ParseStrain parses a strain from its symbol, such as "H" or "NT".
func ParseStrain(text string) (Strain, error) {
	if t := strings.ToUpper(text); t == "NT" || t == "N" {
		return NoTrump, nil
	}
	//
	suit, err := ParseSuit(text)
	if err != nil {
		return 0, fmt.Errorf("unknown strain \"%s\"", text)
	}
	//
	return StrainOf(suit), nil
}
