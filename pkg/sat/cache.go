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
	"crypto/sha256"
	"sync"

	"github.com/consensys/go-bidsys/pkg/constraint"
	"github.com/golang/groupcache/lru"
)

// PathKey is the content address of a path, derived from the canonical form of
// each of its bids.
type PathKey [sha256.Size]byte

// KeyOf computes the content address of a given path.  Two paths have the same
// key exactly when they have the same bids and structurally equal constraints.
func KeyOf(path []constraint.ConstrainedBid) PathKey {
	hash := sha256.New()
	//
	for _, b := range path {
		hash.Write([]byte(b.Bid.String()))
		hash.Write([]byte{' '})
		hash.Write([]byte(constraint.String(b.Constraint)))
		hash.Write([]byte{'\n'})
	}
	//
	var key PathKey
	//
	copy(key[:], hash.Sum(nil))
	//
	return key
}

// Cache is a bounded, goroutine-safe memo of soundness results, which evicts
// the least recently used entry when full.  Each entry records the length of
// the shortest unsatisfiable prefix, or zero for a sound path.
type Cache struct {
	mutex sync.Mutex
	cache *lru.Cache
}

// NewCache constructs a cache holding at most a given number of results.
func NewCache(size uint) *Cache {
	return &Cache{cache: lru.New(int(size))}
}

// Get looks up the result for a given path key.
func (p *Cache) Get(key PathKey) (uint, bool) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	//
	if value, ok := p.cache.Get(key); ok {
		return value.(uint), true
	}
	//
	return 0, false
}

// Put records the result for a given path key.
func (p *Cache) Put(key PathKey, unsat uint) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	//
	p.cache.Add(key, unsat)
}

// Len returns the number of results currently held.
func (p *Cache) Len() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	//
	return p.cache.Len()
}
