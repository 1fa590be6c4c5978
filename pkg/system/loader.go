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
package system

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/consensys/go-bidsys/pkg/bid"
	"github.com/consensys/go-bidsys/pkg/constraint"
	"github.com/consensys/go-bidsys/pkg/forest"
	"github.com/consensys/go-bidsys/pkg/hand"
	"github.com/consensys/go-bidsys/pkg/syntax"
	"github.com/consensys/go-bidsys/pkg/util/source"
	"github.com/consensys/go-bidsys/pkg/util/source/sexp"
)

// Forest is a bidding system, prior to expansion.
type Forest = forest.Forest[syntax.SyntacticBid]

// LoadFiles reads and parses a given set of system files into a single
// bidding system, whose roots are the roots of each file in turn.  Syntax
// errors from every file are reported together.
func LoadFiles(filenames ...string) (Forest, []source.SyntaxError, error) {
	var (
		roots Forest
		errs  []source.SyntaxError
	)
	//
	files, err := source.ReadFiles(filenames...)
	if err != nil {
		return nil, nil, err
	}
	//
	for i := range files {
		f, ferrs := Parse(&files[i])
		roots = append(roots, f...)
		errs = append(errs, ferrs...)
	}
	//
	return roots, errs, nil
}

// Parse a system file into a bidding system.  A system file contains zero or
// more bids of the form "(bid BID SYNTAX CHILD...)", where each child is
// itself a bid.  For example:
//
//	(bid 1NT (and (hcp 15 17) balanced)
//	  (bid 2C (and (hcp 8 37) (relay 2D))))
//
// Parsing continues after a malformed bid, such that all errors are reported.
func Parse(srcfile *source.File) (Forest, []source.SyntaxError) {
	terms, srcmap, err := sexp.ParseAll(srcfile)
	if err != nil {
		return nil, []source.SyntaxError{*err}
	}
	//
	p := newParser(srcmap)
	//
	var (
		roots Forest
		errs  []source.SyntaxError
	)
	//
	for _, term := range terms {
		if node, err := p.parseBid(term); err != nil {
			errs = append(errs, *err)
		} else {
			roots = append(roots, node)
		}
	}
	//
	return roots, errs
}

// ParseSyntax parses the textual form of a single syntax tree, as printed by
// syntax.String.
func ParseSyntax(text string) (syntax.Syntax, *source.SyntaxError) {
	srcfile := source.NewSourceFile("<syntax>", []byte(text))
	//
	term, srcmap, err := sexp.Parse(srcfile)
	if err != nil {
		return nil, err
	} else if term == nil {
		return nil, srcfile.SyntaxError(source.NewSpan(0, 0), "expected syntax")
	}
	//
	return newParser(srcmap).parseSyntax(term)
}

type parser struct {
	srcmap     *source.Map[sexp.SExp]
	translator *sexp.Translator[syntax.Syntax]
}

func newParser(srcmap *source.Map[sexp.SExp]) *parser {
	t := sexp.NewTranslator[syntax.Syntax](srcmap)
	// Connectives
	t.AddRecursiveListRule("and", andRule)
	t.AddRecursiveListRule("or", orRule)
	t.AddRecursiveListRule("not", notRule)
	t.AddSymbolRule(symbolRule)
	// Points and suits
	t.AddListRule("hcp", hcpRule)
	t.AddListRule("len", lenRule)
	t.AddListRule("cmp", cmpRule)
	t.AddListRule("honors", honorsRule)
	t.AddListRule("top", topRule)
	t.AddListRule("primary", primaryRule)
	t.AddListRule("secondary", secondaryRule)
	// Shapes
	t.AddListRule("shape", shapeRule)
	t.AddListRule("exact-shape", exactShapeRule)
	// Forcing
	t.AddListRule("relay", relayRule)
	// References
	t.AddListRule("def", defRule(t))
	t.AddListRule("ref", refRule)
	t.AddListRule("other", otherRule)
	//
	return &parser{srcmap, t}
}

func (p *parser) parseBid(term sexp.SExp) (*forest.Node[syntax.SyntacticBid], *source.SyntaxError) {
	list := term.AsList()
	//
	if list == nil || list.Len() < 3 || list.Head() != "bid" {
		return nil, p.srcmap.SyntaxError(term, "expected (bid BID SYNTAX CHILD...)")
	} else if list.Get(1).AsSymbol() == nil {
		return nil, p.srcmap.SyntaxError(list.Get(1), "expected bid")
	}
	//
	b, err := bid.Parse(list.Get(1).AsSymbol().Value)
	if err != nil {
		return nil, p.srcmap.SyntaxError(list.Get(1), err.Error())
	}
	//
	s, serr := p.parseSyntax(list.Get(2))
	if serr != nil {
		return nil, serr
	}
	//
	node := forest.Leaf(syntax.SyntacticBid{Bid: b, Syntax: s})
	//
	for _, child := range list.Elements[3:] {
		n, err := p.parseBid(child)
		if err != nil {
			return nil, err
		}
		//
		node.Children = append(node.Children, n)
	}
	//
	return node, nil
}

func (p *parser) parseSyntax(term sexp.SExp) (syntax.Syntax, *source.SyntaxError) {
	s, err := p.translator.Translate(term)
	//
	if err == nil {
		return s, nil
	}
	//
	var serr *source.SyntaxError
	//
	if errors.As(err, &serr) {
		return nil, serr
	}
	//
	return nil, p.srcmap.SyntaxError(term, err.Error())
}

// ============================================================================
// Rules
// ============================================================================

func symbolRule(symbol string) (syntax.Syntax, bool, error) {
	switch symbol {
	case "true":
		return &syntax.Constant{Value: true}, true, nil
	case "false":
		return &syntax.Constant{Value: false}, true, nil
	case "balanced":
		return &syntax.Balanced{}, true, nil
	case "semi-balanced":
		return &syntax.SemiBalanced{}, true, nil
	case "unbalanced":
		return &syntax.Unbalanced{}, true, nil
	case "otherwise":
		return &syntax.Otherwise{}, true, nil
	case "forcing":
		return syntax.Wrap(&constraint.Force{Kind: constraint.OneRound}), true, nil
	case "game-forcing":
		return syntax.Wrap(&constraint.Force{Kind: constraint.Game}), true, nil
	case "slam-forcing":
		return syntax.Wrap(&constraint.Force{Kind: constraint.Slam}), true, nil
	}
	//
	return nil, false, nil
}

func andRule(_ string, args []syntax.Syntax) (syntax.Syntax, error) {
	return syntax.And(args...), nil
}

func orRule(_ string, args []syntax.Syntax) (syntax.Syntax, error) {
	return syntax.Or(args...), nil
}

func notRule(_ string, args []syntax.Syntax) (syntax.Syntax, error) {
	if len(args) != 1 {
		return nil, errors.New("expected exactly one argument")
	}
	//
	return syntax.Not(args[0]), nil
}

func hcpRule(list *sexp.List) (syntax.Syntax, error) {
	if err := arity(list, 2); err != nil {
		return nil, err
	}
	//
	bounds, err := numbers(list.Elements[1:])
	if err != nil {
		return nil, err
	}
	//
	return syntax.Wrap(constraint.Points(bounds[0], bounds[1])), nil
}

func lenRule(list *sexp.List) (syntax.Syntax, error) {
	if err := arity(list, 3); err != nil {
		return nil, err
	}
	//
	suit, err := specifier(list.Get(1))
	if err != nil {
		return nil, err
	}
	//
	bounds, err := numbers(list.Elements[2:])
	if err != nil {
		return nil, err
	}
	//
	return &syntax.SuitRange{Suit: suit, Min: bounds[0], Max: bounds[1]}, nil
}

func cmpRule(list *sexp.List) (syntax.Syntax, error) {
	if err := arity(list, 3); err != nil {
		return nil, err
	}
	//
	op, err := constraint.ParseComparator(symbol(list.Get(1)))
	if err != nil {
		return nil, err
	}
	//
	left, err := specifier(list.Get(2))
	if err != nil {
		return nil, err
	}
	//
	right, err := specifier(list.Get(3))
	if err != nil {
		return nil, err
	}
	//
	return &syntax.SuitComparison{Op: op, Left: left, Right: right}, nil
}

func honorsRule(list *sexp.List) (syntax.Syntax, error) {
	if err := arity(list, 2); err != nil {
		return nil, err
	}
	//
	suit, err := specifier(list.Get(1))
	if err != nil {
		return nil, err
	}
	//
	var honors []hand.Rank
	//
	for _, r := range symbol(list.Get(2)) {
		rank, err := hand.ParseRank(r)
		if err != nil {
			return nil, err
		}
		//
		honors = append(honors, rank)
	}
	//
	return &syntax.SuitHonors{Suit: suit, Honors: honors}, nil
}

func topRule(list *sexp.List) (syntax.Syntax, error) {
	if err := arity(list, 3); err != nil {
		return nil, err
	}
	//
	suit, err := specifier(list.Get(1))
	if err != nil {
		return nil, err
	}
	//
	text := []rune(symbol(list.Get(2)))
	if len(text) != 1 {
		return nil, fmt.Errorf("invalid rank \"%s\"", string(text))
	}
	//
	rank, err := hand.ParseRank(text[0])
	if err != nil {
		return nil, err
	}
	//
	count, err := numbers(list.Elements[3:])
	if err != nil {
		return nil, err
	}
	//
	return &syntax.SuitTop{Suit: suit, Rank: rank, Count: count[0]}, nil
}

func primaryRule(list *sexp.List) (syntax.Syntax, error) {
	if err := arity(list, 1); err != nil {
		return nil, err
	}
	//
	suit, err := specifier(list.Get(1))
	if err != nil {
		return nil, err
	}
	//
	return &syntax.SuitPrimary{Suit: suit}, nil
}

func secondaryRule(list *sexp.List) (syntax.Syntax, error) {
	if err := arity(list, 1); err != nil {
		return nil, err
	}
	//
	suit, err := specifier(list.Get(1))
	if err != nil {
		return nil, err
	}
	//
	return &syntax.SuitSecondary{Suit: suit}, nil
}

func shapeRule(list *sexp.List) (syntax.Syntax, error) {
	counts, err := shape(list)
	if err != nil {
		return nil, err
	}
	//
	return syntax.Wrap(constraint.Shape(counts[0], counts[1], counts[2], counts[3])), nil
}

func exactShapeRule(list *sexp.List) (syntax.Syntax, error) {
	lengths, err := shape(list)
	if err != nil {
		return nil, err
	}
	//
	return syntax.Wrap(constraint.ExactShape(lengths[0], lengths[1], lengths[2], lengths[3])), nil
}

func relayRule(list *sexp.List) (syntax.Syntax, error) {
	if err := arity(list, 1); err != nil {
		return nil, err
	}
	//
	target, err := bid.Parse(symbol(list.Get(1)))
	if err != nil {
		return nil, err
	}
	//
	return syntax.Wrap(&constraint.Relay{Bid: target}), nil
}

func defRule(t *sexp.Translator[syntax.Syntax]) sexp.ListRule[syntax.Syntax] {
	return func(list *sexp.List) (syntax.Syntax, error) {
		if err := arity(list, 2); err != nil {
			return nil, err
		}
		//
		name, err := label(list.Get(1))
		if err != nil {
			return nil, err
		}
		//
		def, err := t.Translate(list.Get(2))
		if err != nil {
			return nil, err
		}
		//
		return &syntax.LabelDef{Name: name, Def: def}, nil
	}
}

func refRule(list *sexp.List) (syntax.Syntax, error) {
	if err := arity(list, 1); err != nil {
		return nil, err
	}
	//
	name, err := label(list.Get(1))
	if err != nil {
		return nil, err
	}
	//
	return &syntax.LabelRef{Name: name}, nil
}

func otherRule(list *sexp.List) (syntax.Syntax, error) {
	if err := arity(list, 1); err != nil {
		return nil, err
	}
	//
	b, err := bid.Parse(symbol(list.Get(1)))
	if err != nil {
		return nil, err
	}
	//
	return &syntax.OtherBid{Bid: b}, nil
}

// ============================================================================
// Helpers
// ============================================================================

func arity(list *sexp.List, n int) error {
	if list.Len() != n+1 {
		return fmt.Errorf("expected %d arguments, found %d", n, list.Len()-1)
	}
	//
	return nil
}

// Returns the value of a symbol, or "" for a list.
func symbol(e sexp.SExp) string {
	if s := e.AsSymbol(); s != nil {
		return s.Value
	}
	//
	return ""
}

func numbers(elements []sexp.SExp) ([]uint, error) {
	values := make([]uint, len(elements))
	//
	for i, e := range elements {
		n, err := strconv.ParseUint(symbol(e), 10, 8)
		if err != nil {
			return nil, fmt.Errorf("expected number, found %s", e)
		}
		//
		values[i] = uint(n)
	}
	//
	return values, nil
}

func shape(list *sexp.List) ([]uint, error) {
	if err := arity(list, bid.NumSuits); err != nil {
		return nil, err
	}
	//
	counts, err := numbers(list.Elements[1:])
	if err != nil {
		return nil, err
	}
	//
	var total uint
	//
	for _, n := range counts {
		total += n
	}
	//
	if total != hand.Size {
		return nil, fmt.Errorf("shape has %d cards (expected %d)", total, hand.Size)
	}
	//
	return counts, nil
}

func specifier(e sexp.SExp) (bid.SuitSpecifier, error) {
	if e.AsSymbol() == nil {
		return bid.SuitSpecifier{}, fmt.Errorf("expected suit, found %s", e)
	}
	//
	return bid.ParseSpecifier(e.AsSymbol().Value)
}

func label(e sexp.SExp) (string, error) {
	if e.AsSymbol() == nil {
		return "", fmt.Errorf("expected label, found %s", e)
	}
	//
	return e.AsSymbol().Value, nil
}
