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
package util

import (
	"slices"
	"testing"
)

func Test_Permutation_01(t *testing.T) {
	check_DistinctPermutations(t, []uint{4, 3, 3, 3}, 4)
}

func Test_Permutation_02(t *testing.T) {
	check_DistinctPermutations(t, []uint{4, 4, 3, 2}, 12)
}

func Test_Permutation_03(t *testing.T) {
	check_DistinctPermutations(t, []uint{5, 4, 3, 1}, 24)
}

func Test_Permutation_04(t *testing.T) {
	check_DistinctPermutations(t, []uint{13, 0, 0, 0}, 4)
}

func Test_Permutation_05(t *testing.T) {
	check_DistinctPermutations(t, []uint{4, 4, 4, 1}, 4)
}

func Test_Permutation_06(t *testing.T) {
	check_DistinctPermutations(t, []uint{}, 1)
}

func Test_Option_01(t *testing.T) {
	some := Some(3)
	none := None[int]()
	//
	if !some.HasValue() || some.Unwrap() != 3 || some.String() != "3" {
		t.Errorf("unexpected option %s", some)
	} else if !none.IsEmpty() || none.UnwrapOr(7) != 7 || none.String() != "_" {
		t.Errorf("unexpected option %s", none)
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

func check_DistinctPermutations(t *testing.T, items []uint, expected int) {
	perms := DistinctPermutations(items)
	//
	if len(perms) != expected {
		t.Fatalf("expected %d permutations of %v, got %d", expected, items, len(perms))
	}
	//
	for i, p := range perms {
		if !isPermutationOf(p, items) {
			t.Errorf("%v is not a permutation of %v", p, items)
		}
		//
		for _, q := range perms[:i] {
			if slices.Equal(p, q) {
				t.Errorf("duplicate permutation %v", p)
			}
		}
	}
}

func isPermutationOf(lhs []uint, rhs []uint) bool {
	l := slices.Clone(lhs)
	r := slices.Clone(rhs)
	slices.Sort(l)
	slices.Sort(r)
	//
	return slices.Equal(l, r)
}
