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
	"slices"
	"testing"
)

func Test_Bid_01(t *testing.T) {
	check_Ordered(t, "P", "X", "XX", "1C")
}

func Test_Bid_02(t *testing.T) {
	check_Ordered(t, "1C", "1D", "1H", "1S", "1NT", "2C")
}

func Test_Bid_03(t *testing.T) {
	check_Ordered(t, "6NT", "7C", "7NT")
}

func Test_Bid_04(t *testing.T) {
	check_Ordered(t, "Pass", "Double", "Redouble", "1N")
}

func Test_Bid_05(t *testing.T) {
	for _, s := range []string{"P", "X", "XX", "1C", "3NT", "7S"} {
		if b := MustParse(s); b.String() != s {
			t.Errorf("expected %s, got %s", s, b.String())
		}
	}
}

func Test_Bid_06(t *testing.T) {
	for _, s := range []string{"", "8C", "0H", "1Z", "C", "1", "H1"} {
		if _, err := Parse(s); err == nil {
			t.Errorf("expected error parsing \"%s\"", s)
		}
	}
}

func Test_Bid_07(t *testing.T) {
	b := MustParse("4H")
	//
	if strain, ok := b.Strain(); !ok || strain != HeartStrain {
		t.Errorf("expected hearts strain, got %v", strain)
	} else if b.Level() != 4 {
		t.Errorf("expected level 4, got %d", b.Level())
	} else if _, ok := Pass.Strain(); ok {
		t.Errorf("pass should have no strain")
	}
}

func Test_Bid_08(t *testing.T) {
	bids := []Bid{MustParse("2C"), Pass, MustParse("1NT"), Double}
	slices.SortFunc(bids, Compare)
	//
	if Join(bids, " ") != "P X 1NT 2C" {
		t.Errorf("unexpected order %s", Join(bids, " "))
	}
}

func Test_Specifier_01(t *testing.T) {
	for _, s := range []string{"S", "H", "D", "C", "major", "minor", "other-major", "other-minor", "*"} {
		sp, err := ParseSpecifier(s)
		if err != nil {
			t.Error(err)
		} else if sp.String() != s {
			t.Errorf("expected %s, got %s", s, sp.String())
		}
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

func check_Ordered(t *testing.T, bids ...string) {
	for i := 0; i+1 < len(bids); i++ {
		l := MustParse(bids[i])
		r := MustParse(bids[i+1])
		//
		if l.Cmp(r) >= 0 {
			t.Errorf("expected %s < %s", l, r)
		} else if r.Cmp(l) <= 0 {
			t.Errorf("expected %s > %s", r, l)
		} else if l.Cmp(l) != 0 {
			t.Errorf("expected %s = %s", l, l)
		}
	}
}
