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
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
)

// Result codes returned by the solver.
const (
	// ResultUnknown indicates the solver was stopped before reaching an answer.
	ResultUnknown = 0
	// ResultSat indicates the solver found a model.
	ResultSat = 1
	// ResultUnsat indicates the solver proved no model exists.
	ResultUnsat = -1
)

// Interval at which a running solve is checked for cancellation.
const pollInterval = 5 * time.Millisecond

// Circuit constructs boolean gates as an and-inverter graph, whose nodes are
// handed to an incremental SAT solver (in CNF) as they become reachable from an
// asserted or assumed literal.  Structurally equal gates are shared, and gates
// over constant inputs are folded away.  A circuit is not safe for concurrent
// use.
type Circuit struct {
	gates  *logic.C
	solver *gini.Gini
	// Nodes of the graph already added to the solver.
	marks []int8
}

// NewCircuit constructs a circuit over a fresh solver.
func NewCircuit() *Circuit {
	return &Circuit{gates: logic.NewC(), solver: gini.New()}
}

// True returns the literal which always holds.
func (c *Circuit) True() z.Lit { return c.gates.T }

// False returns the literal which never holds.
func (c *Circuit) False() z.Lit { return c.gates.F }

// Bool returns the constant literal for a given value.
func (c *Circuit) Bool(value bool) z.Lit {
	if value {
		return c.gates.T
	}
	//
	return c.gates.F
}

// Fresh returns a new unconstrained literal.
func (c *Circuit) Fresh() z.Lit { return c.gates.Lit() }

// Assert adds a literal as a permanent fact.
func (c *Circuit) Assert(m z.Lit) {
	c.flush(m)
	c.solver.Add(m)
	c.solver.Add(z.LitNull)
}

// Not returns the negation of a literal.
func (c *Circuit) Not(a z.Lit) z.Lit { return a.Not() }

// And returns a literal equal to the conjunction of two literals.
func (c *Circuit) And(a z.Lit, b z.Lit) z.Lit { return c.gates.And(a, b) }

// Or returns a literal equal to the disjunction of two literals.
func (c *Circuit) Or(a z.Lit, b z.Lit) z.Lit { return c.gates.Or(a, b) }

// Xor returns a literal equal to the exclusive-or of two literals.
func (c *Circuit) Xor(a z.Lit, b z.Lit) z.Lit { return c.gates.Xor(a, b) }

// Equiv returns a literal which holds when two literals are equal.
func (c *Circuit) Equiv(a z.Lit, b z.Lit) z.Lit { return c.gates.Xor(a, b).Not() }

// Implies returns a literal equal to a implies b.
func (c *Circuit) Implies(a z.Lit, b z.Lit) z.Lit { return c.gates.Implies(a, b) }

// Ite returns a literal equal to t when s holds, and e otherwise.
func (c *Circuit) Ite(s z.Lit, t z.Lit, e z.Lit) z.Lit {
	if t == e {
		return t
	}
	//
	return c.gates.Choice(s, t, e)
}

// AndN returns a literal equal to the conjunction of zero or more literals.
func (c *Circuit) AndN(lits ...z.Lit) z.Lit { return c.gates.Ands(lits...) }

// OrN returns a literal equal to the disjunction of zero or more literals.
func (c *Circuit) OrN(lits ...z.Lit) z.Lit { return c.gates.Ors(lits...) }

// Gates returns the number of nodes in the underlying graph.
func (c *Circuit) Gates() int { return c.gates.Len() }

// Solve the asserted facts under a set of (one-shot) assumptions, returning
// ResultSat or ResultUnsat.  The solver runs on its own goroutine, and is
// stopped if the given context is done first, in which case the context's
// error is returned.
func (c *Circuit) Solve(ctx context.Context, assumptions ...z.Lit) (int, error) {
	if err := ctx.Err(); err != nil {
		return ResultUnknown, err
	}
	//
	c.flush(assumptions...)
	c.solver.Assume(assumptions...)
	//
	if ctx.Done() == nil {
		return c.solver.Solve(), nil
	}
	//
	var (
		solve  = c.solver.GoSolve()
		ticker = time.NewTicker(pollInterval)
	)
	//
	defer ticker.Stop()
	//
	for {
		if result, done := solve.Test(); done {
			return result, nil
		}
		//
		select {
		case <-ctx.Done():
			solve.Stop()
			return ResultUnknown, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Value returns the value of a literal in the model found by the last
// successful solve.  Inputs which nothing constrains take the value false.
func (c *Circuit) Value(m z.Lit) bool {
	if m.Var() > c.solver.MaxVar() {
		return !m.IsPos()
	}
	//
	return c.solver.Value(m)
}

// Add the clauses of every gate reachable from the given roots which the
// solver does not yet have.
func (c *Circuit) flush(roots ...z.Lit) {
	c.marks, _ = c.gates.CnfSince(c.solver, c.marks, roots...)
}
