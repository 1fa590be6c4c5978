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

// SpecifierKind determines how a suit specifier is resolved.
type SpecifierKind uint8

const (
	// ConcreteSuit is a specifier naming a specific suit.
	ConcreteSuit SpecifierKind = iota
	// MajorSuit refers to "a major", relative to the bid being made.
	MajorSuit
	// MinorSuit refers to "a minor", relative to the bid being made.
	MinorSuit
	// OtherMajorSuit refers to the major not named by the bid being made.
	OtherMajorSuit
	// OtherMinorSuit refers to the minor not named by the bid being made.
	OtherMinorSuit
	// WildcardSuit refers to the strain of the bid being made.
	WildcardSuit
)

// SuitSpecifier identifies a suit either directly, or contextually in terms of
// the bid currently being made.  Contextual specifiers are resolved during
// expansion.
type SuitSpecifier struct {
	Kind SpecifierKind
	// Suit is only meaningful for concrete specifiers.
	Suit Suit
}

// Concrete constructs a specifier for a given suit.
func Concrete(suit Suit) SuitSpecifier {
	return SuitSpecifier{ConcreteSuit, suit}
}

// Contextual constructs a contextual specifier of a given kind.
func Contextual(kind SpecifierKind) SuitSpecifier {
	if kind == ConcreteSuit {
		panic("concrete specifier requires a suit")
	}
	//
	return SuitSpecifier{Kind: kind}
}

// IsConcrete checks whether this specifier names a specific suit.
func (p SuitSpecifier) IsConcrete() bool {
	return p.Kind == ConcreteSuit
}

func (p SuitSpecifier) String() string {
	switch p.Kind {
	case ConcreteSuit:
		return p.Suit.Symbol()
	case MajorSuit:
		return "major"
	case MinorSuit:
		return "minor"
	case OtherMajorSuit:
		return "other-major"
	case OtherMinorSuit:
		return "other-minor"
	case WildcardSuit:
		return "*"
	}
	//
	panic(fmt.Sprintf("invalid specifier kind %d", p.Kind))
}

// ParseSpecifier parses a suit specifier, which is either a suit symbol or one
// of "major", "minor", "other-major", "other-minor" or "*".
func ParseSpecifier(text string) (SuitSpecifier, error) {
	switch strings.ToLower(text) {
	case "major":
		return Contextual(MajorSuit), nil
	case "minor":
		return Contextual(MinorSuit), nil
	case "other-major":
		return Contextual(OtherMajorSuit), nil
	case "other-minor":
		return Contextual(OtherMinorSuit), nil
	case "*":
		return Contextual(WildcardSuit), nil
	}
	//
	suit, err := ParseSuit(text)
	if err != nil {
		return SuitSpecifier{}, fmt.Errorf("unknown suit specifier \"%s\"", text)
	}
	//
	return Concrete(suit), nil
}
