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
package sat

import (
	"context"
	"errors"
	"fmt"

	"github.com/consensys/go-bidsys/pkg/bid"
	"github.com/consensys/go-bidsys/pkg/constraint"
	"github.com/consensys/go-bidsys/pkg/util"
	"github.com/go-air/gini/z"
	log "github.com/sirupsen/logrus"
)

// UnsatisfiableError reports a path for which no deal exists.  The prefix is
// the shortest prefix of the path which is already unsatisfiable.
type UnsatisfiableError struct {
	Prefix []constraint.ConstrainedBid
}

func (e *UnsatisfiableError) Error() string {
	return fmt.Sprintf("no deal satisfies %s", bid.Join(constraint.Bids(e.Prefix), " "))
}

// Verifier determines whether bidding sequences are realisable by actual deals.
// Every check constructs its own solver, such that a verifier can be shared
// freely between goroutines.  Results are memoised by path content.
type Verifier struct {
	// Memo of results (or nil if disabled).
	cache *Cache
}

// NewVerifier constructs a verifier which memoises up to a given number of
// results, where zero disables memoisation.
func NewVerifier(cacheSize uint) *Verifier {
	var cache *Cache
	//
	if cacheSize > 0 {
		cache = NewCache(cacheSize)
	}
	//
	return &Verifier{cache}
}

// Cache returns the memo used by this verifier (or nil if disabled).
func (v *Verifier) Cache() *Cache {
	return v.cache
}

// PathIsSound checks whether some deal satisfies every constraint along a
// given path, where the first constraint applies to the first caller, the
// second to the next player in turn and so on.  This returns nil for a sound
// path, an *UnsatisfiableError carrying the shortest unsatisfiable prefix, or
// the error of the given context if it is done before the check completes.
func (v *Verifier) PathIsSound(ctx context.Context, path []constraint.ConstrainedBid) error {
	key := KeyOf(path)
	//
	if v.cache != nil {
		if n, ok := v.cache.Get(key); ok {
			log.Debugf("soundness of %s cached", bid.Join(constraint.Bids(path), " "))
			return unsatisfiable(path, n)
		}
	}
	//
	stats := util.NewPerfStats()
	//
	n, _, err := solvePath(ctx, path, false)
	if err != nil {
		return err
	}
	//
	stats.Log(fmt.Sprintf("soundness check of %s", bid.Join(constraint.Bids(path), " ")))
	//
	if v.cache != nil {
		v.cache.Put(key, n)
	}
	//
	return unsatisfiable(path, n)
}

// Witness returns a deal satisfying every constraint along a given path, or an
// *UnsatisfiableError if there is no such deal.  Witnesses are not memoised.
func (v *Verifier) Witness(ctx context.Context, path []constraint.ConstrainedBid) (*Deal, error) {
	n, deal, err := solvePath(ctx, path, true)
	//
	if err != nil {
		return nil, err
	} else if n > 0 {
		return nil, unsatisfiable(path, n)
	}
	//
	return deal, nil
}

func unsatisfiable(path []constraint.ConstrainedBid, n uint) error {
	if n == 0 {
		return nil
	}
	//
	return &UnsatisfiableError{path[:n]}
}

// Solve a path against a fresh solver, returning the length of the shortest
// unsatisfiable prefix (or zero if the path is satisfiable), along with the
// model found (if requested and the path is satisfiable).  Each bid is encoded
// as a literal which is assumed, rather than asserted, so the same solver can
// be queried for successively longer prefixes.
func solvePath(ctx context.Context, path []constraint.ConstrainedBid, model bool) (uint, *Deal, error) {
	var (
		circuit = NewCircuit()
		sctx    = NewSATContext(circuit)
		lits    = make([]z.Lit, len(path))
	)
	//
	for i, b := range path {
		lits[i] = Encode(b.Constraint, sctx)
		sctx.Rotate()
	}
	// Optimistically check the whole path
	if sat, err := solve(ctx, circuit, lits); err != nil {
		return 0, nil, err
	} else if sat && model {
		return 0, extractDeal(sctx), nil
	} else if sat {
		return 0, nil, nil
	}
	// Find the earliest conflict
	for i := range lits {
		if sat, err := solve(ctx, circuit, lits[:i+1]); err != nil {
			return 0, nil, err
		} else if !sat {
			return uint(i + 1), nil, nil
		}
	}
	//
	return uint(len(lits)), nil, nil
}

func solve(ctx context.Context, circuit *Circuit, assumptions []z.Lit) (bool, error) {
	result, err := circuit.Solve(ctx, assumptions...)
	//
	switch {
	case err != nil:
		return false, err
	case result == ResultSat:
		return true, nil
	case result == ResultUnsat:
		return false, nil
	default:
		return false, errors.New("solver returned no result")
	}
}
