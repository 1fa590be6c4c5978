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
	"cmp"
	"slices"
)

// DistinctPermutations returns every distinct ordering of the given items.
// Repeated items yield only one ordering for each arrangement, so (for
// example) [4,4,3,2] has 12 distinct permutations rather than 24.  The
// permutations are returned in lexicographic order and the input is not
// modified.
func DistinctPermutations[T cmp.Ordered](items []T) [][]T {
	var (
		perms   [][]T
		current = slices.Clone(items)
	)
	// Start from the lowest permutation
	slices.Sort(current)
	//
	for {
		perms = append(perms, slices.Clone(current))
		//
		if !nextPermutation(current) {
			return perms
		}
	}
}

// Rearrange items into the lexicographically next greater permutation,
// returning false when no such permutation exists (i.e. the items are sorted
// in descending order).
func nextPermutation[T cmp.Ordered](items []T) bool {
	// Find rightmost ascent
	i := len(items) - 2
	for i >= 0 && items[i] >= items[i+1] {
		i--
	}
	//
	if i < 0 {
		return false
	}
	// Find rightmost element exceeding the pivot
	j := len(items) - 1
	for items[j] <= items[i] {
		j--
	}
	//
	items[i], items[j] = items[j], items[i]
	slices.Reverse(items[i+1:])
	//
	return true
}
