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
package constraint

import (
	"slices"
	"sync"

	"github.com/consensys/go-bidsys/pkg/bid"
	"github.com/consensys/go-bidsys/pkg/util"
)

// BalancedShapes lists the shapes of a balanced hand.
var BalancedShapes = [][bid.NumSuits]uint{{4, 3, 3, 3}, {5, 3, 3, 2}, {4, 4, 3, 2}}

// SemiBalancedShapes lists the shapes of a semi-balanced hand, which includes
// all balanced shapes.
var SemiBalancedShapes = append(slices.Clone(BalancedShapes), [bid.NumSuits]uint{5, 4, 2, 2},
	[bid.NumSuits]uint{6, 3, 2, 2})

// Balanced returns a constraint held by any balanced hand.
func Balanced() Constraint {
	return anyOfShapes(BalancedShapes)
}

// SemiBalanced returns a constraint held by any balanced or semi-balanced hand.
func SemiBalanced() Constraint {
	return anyOfShapes(SemiBalancedShapes)
}

// Unbalanced returns a constraint held by any hand which is neither balanced
// nor semi-balanced.
func Unbalanced() Constraint {
	return Not(Or(Balanced(), SemiBalanced()))
}

func anyOfShapes(shapes [][bid.NumSuits]uint) Constraint {
	args := make([]Constraint, len(shapes))
	//
	for i, s := range shapes {
		args[i] = &AnyShape{s}
	}
	//
	return Or(args...)
}

// Cache of distinct permutations, keyed by the (sorted) multiset of counts.
var permutations = struct {
	sync.Mutex
	cache map[[bid.NumSuits]uint][][bid.NumSuits]uint
}{cache: make(map[[bid.NumSuits]uint][][bid.NumSuits]uint)}

// Permutations returns every distinct assignment of the given counts to suits.
// The set is computed once for each distinct multiset of counts, and the
// returned slice must not be modified.
func Permutations(counts [bid.NumSuits]uint) [][bid.NumSuits]uint {
	key := counts
	slices.Sort(key[:])
	//
	permutations.Lock()
	defer permutations.Unlock()
	//
	if perms, ok := permutations.cache[key]; ok {
		return perms
	}
	//
	var perms [][bid.NumSuits]uint
	//
	for _, p := range util.DistinctPermutations(key[:]) {
		perms = append(perms, [bid.NumSuits]uint(p))
	}
	//
	permutations.cache[key] = perms
	//
	return perms
}
