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
package expand

import (
	"fmt"
	"reflect"

	"github.com/consensys/go-bidsys/pkg/bid"
	"github.com/consensys/go-bidsys/pkg/constraint"
	"github.com/consensys/go-bidsys/pkg/forest"
	"github.com/consensys/go-bidsys/pkg/syntax"
)

// MaxRewrites bounds the number of rewriting steps applied to a single rule.
const MaxRewrites = 1024

// ExpandForest expands every leaf path of a system independently, and
// reassembles the successfully expanded paths into a forest by shared bid
// prefix.  The errors of paths which failed to expand are returned in the
// order encountered, without duplicates.
func ExpandForest(f forest.Forest[syntax.SyntacticBid]) (forest.Forest[constraint.ConstrainedBid], []error) {
	var (
		paths []forest.Path[constraint.ConstrainedBid]
		errs  []error
		seen  = make(map[string]bool)
	)
	//
	for _, walk := range f.Walks() {
		path, err := ExpandPath(walk)
		//
		if err == nil {
			paths = append(paths, path)
		} else if !seen[err.Error()] {
			seen[err.Error()] = true
			errs = append(errs, err)
		}
	}
	//
	return forest.FromPaths(paths, func(b constraint.ConstrainedBid) bid.Bid { return b.Bid }), errs
}

// ExpandPath expands the rules along a single leaf path, starting from an empty
// context.  At each depth, the earlier siblings of the chosen bid are expanded
// first so that its rule can refer to them.  Any error aborts the whole path,
// including errors in earlier siblings referred to along it.
func ExpandPath(walk forest.Walk[syntax.SyntacticBid]) (forest.Path[constraint.ConstrainedBid], error) {
	var (
		ctx  = NewExpandBidContext()
		path = make(forest.Path[constraint.ConstrainedBid], 0, len(walk))
	)
	//
	for _, step := range walk {
		var (
			peers   = expandPeers(step.Prior(), ctx)
			current = step.Value()
		)
		//
		c, next, err := ExpandSyntax(current.Syntax, ctx.At(current.Bid, peers))
		if err != nil {
			return nil, err
		}
		//
		path = append(path, constraint.ConstrainedBid{Bid: current.Bid, Constraint: c})
		ctx = next.Descend()
	}
	//
	return path, nil
}

// Expand the earlier siblings of a bid, each in the context of the siblings
// before it.  Labels defined by siblings are not visible outside of them.
func expandPeers(prior []syntax.SyntacticBid, ctx ExpandBidContext) []Peer {
	var peers []Peer
	//
	for _, p := range prior {
		if c, _, err := ExpandSyntax(p.Syntax, ctx.At(p.Bid, peers)); err != nil {
			peers = append(peers, Peer{p.Bid, nil, err})
		} else {
			peers = append(peers, Peer{p.Bid, syntax.Wrap(c), nil})
		}
	}
	//
	return peers
}

// ExpandSyntax rewrites a rule repeatedly until it is fully resolved, returning
// the resolved constraint and the updated context.
func ExpandSyntax(s syntax.Syntax, ctx ExpandBidContext) (constraint.Constraint, ExpandBidContext, error) {
	var err error
	//
	for i := 0; i < MaxRewrites; i++ {
		if w, ok := s.(*syntax.Wrapper); ok {
			return w.Constraint, ctx, nil
		} else if s, ctx, err = expandOnce(s, ctx); err != nil {
			return nil, ctx, err
		}
	}
	//
	return nil, ctx, newError(RewriteLimit, ctx, "")
}

// Apply a single rewriting step to a rule.  Compound rules rewrite each of
// their arguments once, and collapse into a wrapped constraint once every
// argument is resolved.
func expandOnce(s syntax.Syntax, ctx ExpandBidContext) (syntax.Syntax, ExpandBidContext, error) {
	switch s := s.(type) {
	case *syntax.Wrapper:
		return s, ctx, nil
	case *syntax.Constant:
		return syntax.Wrap(&constraint.Constant{Value: s.Value}), ctx, nil
	case *syntax.Balanced:
		return syntax.Wrap(constraint.Balanced()), ctx, nil
	case *syntax.SemiBalanced:
		return syntax.Wrap(constraint.SemiBalanced()), ctx, nil
	case *syntax.Unbalanced:
		return syntax.Wrap(constraint.Unbalanced()), ctx, nil
	case *syntax.Conjunction:
		return expandConnective(s.Args, true, ctx)
	case *syntax.Disjunction:
		return expandConnective(s.Args, false, ctx)
	case *syntax.Negation:
		arg, ctx, err := expandOnce(s.Arg, ctx)
		if err != nil {
			return nil, ctx, err
		} else if w, ok := arg.(*syntax.Wrapper); ok {
			return syntax.Wrap(constraint.Not(w.Constraint)), ctx, nil
		}
		//
		return syntax.Not(arg), ctx, nil
	case *syntax.SuitRange, *syntax.SuitComparison, *syntax.SuitHonors, *syntax.SuitTop, *syntax.SuitPrimary,
		*syntax.SuitSecondary:
		c, err := resolveSuits(s, ctx)
		if err != nil {
			return nil, ctx, err
		}
		//
		return syntax.Wrap(c), ctx, nil
	case *syntax.OtherBid:
		for _, peer := range ctx.Peers() {
			if peer.Bid == s.Bid {
				return peer.Syntax, ctx, peer.Err
			}
		}
		//
		return nil, ctx, newError(OtherBidNotFound, ctx, s.Bid.String())
	case *syntax.Otherwise:
		if len(ctx.Peers()) == 0 {
			return syntax.Wrap(constraint.True()), ctx, nil
		}
		//
		args := make([]syntax.Syntax, len(ctx.Peers()))
		//
		for i, peer := range ctx.Peers() {
			if peer.Err != nil {
				return nil, ctx, peer.Err
			}
			//
			args[i] = peer.Syntax
		}
		//
		return syntax.Not(syntax.Or(args...)), ctx, nil
	case *syntax.LabelDef:
		def, ctx := ctx.Define(s.Name, s.Def)
		return def, ctx, nil
	case *syntax.LabelRef:
		if def, ok := ctx.Label(s.Name); ok {
			return def, ctx, nil
		}
		//
		return nil, ctx, newError(LabelNotFound, ctx, s.Name)
	default:
		name := reflect.TypeOf(s).String()
		panic(fmt.Sprintf("unknown syntax \"%s\"", name))
	}
}

// Rewrite each argument of a conjunction (when sign holds) or disjunction
// once, threading the context from left to right.  When every argument is
// resolved, the identity element of the connective is filtered out.
func expandConnective(args []syntax.Syntax, sign bool, ctx ExpandBidContext) (syntax.Syntax,
	ExpandBidContext, error) {
	var (
		nargs    = make([]syntax.Syntax, len(args))
		resolved = true
		err      error
	)
	//
	for i, arg := range args {
		if nargs[i], ctx, err = expandOnce(arg, ctx); err != nil {
			return nil, ctx, err
		}
		//
		_, ok := nargs[i].(*syntax.Wrapper)
		resolved = resolved && ok
	}
	//
	if !resolved && sign {
		return syntax.And(nargs...), ctx, nil
	} else if !resolved {
		return syntax.Or(nargs...), ctx, nil
	}
	//
	var constraints []constraint.Constraint
	//
	for _, arg := range nargs {
		c := arg.(*syntax.Wrapper).Constraint
		// Drop identity elements
		if k, ok := c.(*constraint.Constant); !ok || k.Value != sign {
			constraints = append(constraints, c)
		}
	}
	//
	switch {
	case len(constraints) == 0:
		return syntax.Wrap(&constraint.Constant{Value: sign}), ctx, nil
	case sign:
		return syntax.Wrap(constraint.And(constraints...)), ctx, nil
	default:
		return syntax.Wrap(constraint.Or(constraints...)), ctx, nil
	}
}

// Resolve the suit specifiers of a suit-parameterised rule, producing the
// corresponding constraint.
func resolveSuits(s syntax.Syntax, ctx ExpandBidContext) (constraint.Constraint, error) {
	switch s := s.(type) {
	case *syntax.SuitRange:
		suit, err := resolveSuit(s.Suit, ctx)
		return &constraint.SuitRange{Suit: suit, Min: s.Min, Max: s.Max}, err
	case *syntax.SuitComparison:
		left, err := resolveSuit(s.Left, ctx)
		if err != nil {
			return nil, err
		}
		//
		right, err := resolveSuit(s.Right, ctx)
		//
		return &constraint.SuitComparison{Op: s.Op, Left: left, Right: right}, err
	case *syntax.SuitHonors:
		suit, err := resolveSuit(s.Suit, ctx)
		return &constraint.SuitHonors{Suit: suit, Honors: s.Honors}, err
	case *syntax.SuitTop:
		suit, err := resolveSuit(s.Suit, ctx)
		return &constraint.SuitTop{Suit: suit, Rank: s.Rank, Count: s.Count}, err
	case *syntax.SuitPrimary:
		suit, err := resolveSuit(s.Suit, ctx)
		return &constraint.SuitPrimary{Suit: suit}, err
	case *syntax.SuitSecondary:
		suit, err := resolveSuit(s.Suit, ctx)
		return &constraint.SuitSecondary{Suit: suit}, err
	default:
		name := reflect.TypeOf(s).String()
		panic(fmt.Sprintf("unknown suit syntax \"%s\"", name))
	}
}

// Resolve a suit specifier against the bid being expanded.  Wildcards denote
// the strain of the current bid.
func resolveSuit(sp bid.SuitSpecifier, ctx ExpandBidContext) (bid.Suit, error) {
	if sp.IsConcrete() {
		return sp.Suit, nil
	}
	//
	switch sp.Kind {
	case bid.WildcardSuit:
		if ctx.bid.IsEmpty() || !ctx.bid.Unwrap().IsContract() {
			return 0, newError(WildcardWithoutBid, ctx, sp.String())
		}
		//
		strain, _ := ctx.bid.Unwrap().Strain()
		//
		if suit, ok := strain.Suit(); ok {
			return suit, nil
		}
		//
		return 0, newError(WildcardInNTContext, ctx, sp.String())
	default:
		return 0, newError(NotImplemented, ctx, sp.String())
	}
}

func newError(kind ErrorKind, ctx ExpandBidContext, detail string) *SyntaxError {
	return &SyntaxError{kind, ctx.Location(), detail}
}
