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
package validate

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"time"

	"github.com/consensys/go-bidsys/pkg/bid"
	"github.com/consensys/go-bidsys/pkg/constraint"
	"github.com/consensys/go-bidsys/pkg/forest"
	"github.com/consensys/go-bidsys/pkg/sat"
	"github.com/consensys/go-bidsys/pkg/util"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// RuleNames lists the names of all known rules, in the order they are applied.
// Soundness comes last, being by far the most expensive.
var RuleNames = []string{"ordering", "range-sanity", "pass-while-forcing", "primary-conflict", "soundness"}

// Config determines which rules a validator applies, and how it schedules
// them.
type Config struct {
	// Workers is the number of paths checked concurrently, where zero means
	// one per available core less the reserve.
	Workers uint
	// Reserve is the number of cores left free when Workers is zero.
	Reserve uint
	// Timeout bounds the time spent solving any one path, where zero means no
	// limit.
	Timeout time.Duration
	// CacheSize bounds the number of memoised soundness results, where zero
	// disables memoisation.
	CacheSize uint
	// Rules maps rule names to whether they are enabled.  Rules not
	// mentioned take their default.
	Rules map[string]bool
}

// DefaultRules returns whether each rule is enabled by default.  Only ordering
// and soundness are enabled.
func DefaultRules() map[string]bool {
	return map[string]bool{
		"ordering":           true,
		"soundness":          true,
		"range-sanity":       false,
		"pass-while-forcing": false,
		"primary-conflict":   false,
	}
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{Reserve: 1, Timeout: 30 * time.Second, CacheSize: 4096, Rules: DefaultRules()}
}

// Validator checks every leaf path of an expanded bidding system against a set
// of rules.  Paths are checked independently and concurrently, so a defect in
// one path never prevents others being checked.  Within a path, rules are
// applied in order and checking stops at the first defect.
type Validator struct {
	rules    []Rule
	workers  int
	verifier *sat.Verifier
}

// NewValidator constructs a validator from a given configuration, failing if
// it names an unknown rule.
func NewValidator(config Config) (*Validator, error) {
	var (
		enabled  = DefaultRules()
		verifier = sat.NewVerifier(config.CacheSize)
		rules    []Rule
	)
	//
	for name, on := range config.Rules {
		if _, ok := enabled[name]; !ok {
			return nil, fmt.Errorf("unknown rule \"%s\"", name)
		}
		//
		enabled[name] = on
	}
	//
	for _, name := range RuleNames {
		if enabled[name] {
			rules = append(rules, newRule(name, verifier, config.Timeout))
		}
	}
	//
	return &Validator{rules, workerCount(config), verifier}, nil
}

// NewValidatorWithRules constructs a validator applying exactly the given
// rules.
func NewValidatorWithRules(workers uint, rules ...Rule) *Validator {
	return &Validator{rules, workerCount(Config{Workers: workers}), nil}
}

// Rules returns the rules applied by this validator, in order.
func (v *Validator) Rules() []Rule {
	return v.rules
}

// Workers returns the number of paths this validator checks concurrently.
func (v *Validator) Workers() int {
	return v.workers
}

// Verifier returns the soundness verifier used by this validator (or nil if
// it was constructed from explicit rules).
func (v *Validator) Verifier() *sat.Verifier {
	return v.verifier
}

// ValidateForest checks every leaf path of a given bidding system.  This
// returns nil if no defects are found, Errors holding every defect found
// (de-duplicated and sorted by path) otherwise, or the context's error if it
// is done before checking completes.
func (v *Validator) ValidateForest(ctx context.Context, f forest.Forest[constraint.ConstrainedBid]) error {
	var (
		walks   = f.Walks()
		results = make([]*SystemValidationError, len(walks))
		stats   = util.NewPerfStats()
	)
	//
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(v.workers)
	//
	for i, walk := range walks {
		if gctx.Err() != nil {
			break
		}
		//
		group.Go(func() error {
			var err error
			results[i], err = v.ValidatePath(gctx, walk)
			//
			return err
		})
	}
	//
	if err := group.Wait(); err != nil {
		return err
	} else if err := ctx.Err(); err != nil {
		return err
	}
	//
	stats.Log(fmt.Sprintf("Validating %d paths", len(walks)))
	//
	errs := normalise(slices.DeleteFunc(results, func(e *SystemValidationError) bool { return e == nil }))
	//
	if len(errs) == 0 {
		return nil
	}
	//
	return errs
}

// ValidatePath applies each rule in turn to a given leaf path, returning the
// first defect found (if any).
func (v *Validator) ValidatePath(ctx context.Context, walk Walk) (*SystemValidationError, error) {
	path := bid.Join(constraint.Bids(walk.Path()), " ")
	//
	for _, rule := range v.rules {
		defect, err := rule.Check(ctx, walk)
		//
		if err != nil {
			return nil, err
		} else if defect != nil {
			log.Debugf("path %s fails %s: %s", path, rule.Name(), defect)
			return defect, nil
		}
	}
	//
	log.Debugf("path %s ok", path)
	//
	return nil, nil
}

func newRule(name string, verifier *sat.Verifier, timeout time.Duration) Rule {
	switch name {
	case "ordering":
		return &OrderingRule{}
	case "soundness":
		return NewSoundnessRule(verifier, timeout)
	case "range-sanity":
		return &RangeRule{}
	case "pass-while-forcing":
		return &ForcingRule{}
	case "primary-conflict":
		return &PrimaryRule{}
	}
	//
	panic(fmt.Sprintf("unknown rule \"%s\"", name))
}

func workerCount(config Config) int {
	if config.Workers > 0 {
		return int(config.Workers)
	}
	//
	return max(1, runtime.NumCPU()-int(config.Reserve))
}
