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
	"fmt"

	"github.com/consensys/go-bidsys/pkg/util/source"
)

// SymbolRule is responsible for converting a terminating expression (i.e. a
// symbol) into an expression type T.  The boolean indicates whether the rule
// applied, such that rules which do not apply are skipped.
type SymbolRule[T any] func(string) (T, bool, error)

// ListRule is responsible for converting a list into an expression type T.  The
// rule is given the raw list, and can use the translator to translate any
// nested elements.
type ListRule[T any] func(*List) (T, error)

// RecursiveRule is a wrapper for translating lists whose elements can be built
// by recursively reusing the enclosing translator.
type RecursiveRule[T any] func(string, []T) (T, error)

// Translator is a generic mechanism for translating S-Expressions into a structured
// form.
type Translator[T any] struct {
	// Source map of the S-Expressions being translated.
	srcmap *source.Map[SExp]
	// Rules for parsing lists
	lists map[string]ListRule[T]
	// Rules for parsing symbols
	symbols []SymbolRule[T]
}

// NewTranslator constructs a new Translator instance.
func NewTranslator[T any](srcmap *source.Map[SExp]) *Translator[T] {
	return &Translator[T]{
		srcmap:  srcmap,
		lists:   make(map[string]ListRule[T]),
		symbols: make([]SymbolRule[T], 0),
	}
}

// AddListRule adds a raw list rule to this translator.
func (p *Translator[T]) AddListRule(name string, rule ListRule[T]) {
	p.lists[name] = rule
}

// AddRecursiveListRule adds a rule for lists whose arguments are all themselves
// translated by this translator.
func (p *Translator[T]) AddRecursiveListRule(name string, rule RecursiveRule[T]) {
	p.lists[name] = func(l *List) (T, error) {
		var empty T
		//
		args := make([]T, len(l.Elements)-1)
		//
		for i, e := range l.Elements[1:] {
			arg, err := p.Translate(e)
			if err != nil {
				return empty, err
			}
			//
			args[i] = arg
		}
		//
		return rule(l.Head(), args)
	}
}

// AddSymbolRule adds a new symbol rule to this translator.  Symbol rules are
// tried in the order they were added.
func (p *Translator[T]) AddSymbolRule(rule SymbolRule[T]) {
	p.symbols = append(p.symbols, rule)
}

// Translate an S-Expression into the structured form.  Errors which do not
// already identify their location are reported against the given expression.
func (p *Translator[T]) Translate(s SExp) (T, error) {
	var empty T
	//
	switch e := s.(type) {
	case *List:
		rule, ok := p.lists[e.Head()]
		if !ok {
			return empty, p.SyntaxError(e, "unknown list encountered")
		}
		//
		term, err := rule(e)
		//
		return term, p.adorn(e, err)
	case *Symbol:
		for _, rule := range p.symbols {
			if term, ok, err := rule(e.Value); ok {
				return term, p.adorn(e, err)
			}
		}
		//
		return empty, p.SyntaxError(e, fmt.Sprintf("unknown symbol \"%s\"", e.Value))
	}
	//
	return empty, p.SyntaxError(s, "invalid s-expression")
}

// SyntaxError constructs a suitable syntax error for a given S-Expression.
func (p *Translator[T]) SyntaxError(s SExp, msg string) *source.SyntaxError {
	return p.srcmap.SyntaxError(s, msg)
}

func (p *Translator[T]) adorn(s SExp, err error) error {
	if err == nil {
		return nil
	} else if _, ok := err.(*source.SyntaxError); ok {
		return err
	}
	//
	return p.SyntaxError(s, err.Error())
}
