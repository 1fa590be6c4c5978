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
package sexp

import (
	"reflect"
	"testing"

	"github.com/consensys/go-bidsys/pkg/util/source"
)

// ============================================================================
// Positive Tests
// ============================================================================

func TestSexp_0(t *testing.T) {
	CheckOk(t, nil, "")
}

func TestSexp_1(t *testing.T) {
	CheckOk(t, NewList(), "()")
}

func TestSexp_2(t *testing.T) {
	CheckOk(t, NewList(NewList()), "(())")
}

func TestSexp_3(t *testing.T) {
	CheckOk(t, NewSymbol("1NT"), "1NT")
}

func TestSexp_4(t *testing.T) {
	CheckOk(t, NewList(NewSymbol("hcp"), NewSymbol("15"), NewSymbol("17")), "(hcp 15 17)")
}

func TestSexp_5(t *testing.T) {
	e := NewList(NewSymbol("and"), NewList(NewSymbol("len"), NewSymbol("*"), NewSymbol("5"), NewSymbol("13")),
		NewSymbol("balanced"))
	CheckOk(t, e, "(and (len * 5 13)\n  balanced)")
}

func TestSexp_6(t *testing.T) {
	CheckOk(t, NewList(NewSymbol("a"), NewSymbol("b")), "; comment\n(a ; inner\n b)")
}

func TestSexp_7(t *testing.T) {
	e := NewList(NewSymbol("a"), NewList(NewSymbol("b")), NewSymbol("c"))
	//
	if e.String() != "(a (b) c)" {
		t.Errorf("unexpected string %s", e.String())
	} else if e.Head() != "a" || !e.MatchSymbols(1, "a") {
		t.Errorf("unexpected head %s", e.Head())
	}
}

func TestSexp_8(t *testing.T) {
	file := source.NewSourceFile("test", []byte("(a) (b c)\nd"))
	terms, _, err := ParseAll(file)
	//
	if err != nil {
		t.Fatal(err)
	} else if len(terms) != 3 {
		t.Fatalf("expected 3 terms, got %d", len(terms))
	} else if terms[2].String() != "d" {
		t.Errorf("unexpected term %s", terms[2])
	}
}

// ============================================================================
// Negative Tests
// ============================================================================

func TestSexp_Err_0(t *testing.T) {
	CheckErr(t, "(")
}

func TestSexp_Err_1(t *testing.T) {
	CheckErr(t, ")")
}

func TestSexp_Err_2(t *testing.T) {
	CheckErr(t, "(a))")
}

func TestSexp_Err_3(t *testing.T) {
	CheckErr(t, "(a (b)")
}

func TestSexp_Err_4(t *testing.T) {
	CheckErr(t, "a b")
}

// ============================================================================
// Test Helpers
// ============================================================================

// CheckOk checks that a given string parses into the expected S-Expression.
func CheckOk(t *testing.T, sexp1 SExp, input string) {
	file := source.NewSourceFile("test", []byte(input))
	sexp2, _, err := Parse(file)
	//
	if err != nil {
		t.Error(err)
	} else if sexp1 == nil && sexp2 != nil {
		t.Errorf("expected nothing, got %s", sexp2)
	} else if sexp1 != nil && !reflect.DeepEqual(sexp1, sexp2) {
		t.Errorf("expected %s, got %v", sexp1, sexp2)
	}
}

// CheckErr checks that a given string fails to parse.
func CheckErr(t *testing.T, input string) {
	file := source.NewSourceFile("test", []byte(input))
	//
	if _, _, err := Parse(file); err == nil {
		t.Errorf("expected error parsing \"%s\"", input)
	}
}
