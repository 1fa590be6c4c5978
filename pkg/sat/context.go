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
	"github.com/consensys/go-bidsys/pkg/bid"
	"github.com/consensys/go-bidsys/pkg/hand"
	"github.com/go-air/gini/z"
)

const (
	// NumSeats is the number of players at the table.
	NumSeats = 4
	// MaxHandPoints is the most high card points a single hand can hold.
	MaxHandPoints = 37
	// Bits needed for high card points (0..40) of a single hand.
	pointsWidth = 6
	// Bits needed for the length (0..13) of a single suit.
	lengthWidth = 4
	// Bits needed to identify a suit.
	suitWidth = 2
	// Bits needed for the forcing level (0..4).
	forcingWidth = 3
)

// PlayerContext holds the variables describing the hand of one player.
type PlayerContext struct {
	// High card points held.
	Points BitVec
	// Number of cards held in each suit.
	Lengths [bid.NumSuits]BitVec
	// Suit established as primary.
	Primary BitVec
	// Suit established as secondary.
	Secondary BitVec
	// Literal holding when the suit lengths total 13.
	thirteen z.Lit
}

// PartnershipContext holds the variables shared by a partnership.
type PartnershipContext struct {
	// Suit agreed as trumps.
	Trump BitVec
}

// SATContext holds the variables of a deal relative to the opening seat,
// together with the seat of the player making the current call.  The context
// rotates one seat for each call, such that Me always denotes the caller.
type SATContext struct {
	circuit *Circuit
	// Forcing level currently in effect.
	Forcing BitVec
	// Players, indexed by seat relative to the first caller.
	players [NumSeats]PlayerContext
	// Partnerships, indexed by seat modulo two.
	partnerships [2]PartnershipContext
	// Seat of the current caller.
	seat uint
}

// NewSATContext allocates the variables of a deal over a given circuit, and
// asserts the resources fixed by any deal: 40 high card points in total (of
// which no hand holds more than 37), 13 cards in each suit, and 13 cards in
// each hand.
func NewSATContext(circuit *Circuit) *SATContext {
	ctx := &SATContext{circuit: circuit, Forcing: circuit.Var(forcingWidth)}
	//
	for i := range ctx.players {
		p := &ctx.players[i]
		p.Points = circuit.Var(pointsWidth)
		p.Primary = circuit.Var(suitWidth)
		p.Secondary = circuit.Var(suitWidth)
		//
		for _, s := range bid.Suits() {
			p.Lengths[s] = circuit.Var(lengthWidth)
		}
	}
	//
	for i := range ctx.partnerships {
		ctx.partnerships[i].Trump = circuit.Var(suitWidth)
	}
	//
	ctx.assertResources()
	//
	return ctx
}

// Circuit returns the circuit over which this context is built.
func (p *SATContext) Circuit() *Circuit {
	return p.circuit
}

// Seat returns the seat of the current caller, relative to the first caller.
func (p *SATContext) Seat() uint {
	return p.seat
}

// Me returns the player making the current call.
func (p *SATContext) Me() *PlayerContext {
	return &p.players[p.seat]
}

// Partner returns the partner of the player making the current call.
func (p *SATContext) Partner() *PlayerContext {
	return &p.players[(p.seat+2)%NumSeats]
}

// Player returns the player in a given seat, relative to the first caller.
func (p *SATContext) Player(seat uint) *PlayerContext {
	return &p.players[seat%NumSeats]
}

// Partnership returns the partnership of the player making the current call.
func (p *SATContext) Partnership() *PartnershipContext {
	return &p.partnerships[p.seat%2]
}

// Rotate moves the context on to the next caller.
func (p *SATContext) Rotate() {
	p.seat = (p.seat + 1) % NumSeats
}

// Thirteen returns a literal which holds when the current caller holds 13
// cards.
func (p *SATContext) Thirteen() z.Lit {
	return p.Me().thirteen
}

func (p *SATContext) assertResources() {
	var (
		c      = p.circuit
		points []BitVec
	)
	// Points
	for i := range p.players {
		points = append(points, p.players[i].Points)
		c.Assert(c.Ule(p.players[i].Points, c.Const(MaxHandPoints)))
	}
	//
	c.Assert(c.EqConst(c.Sum(points...), hand.MaxPoints))
	// Cards in each suit
	for _, s := range bid.Suits() {
		var lengths []BitVec
		//
		for i := range p.players {
			lengths = append(lengths, p.players[i].Lengths[s])
		}
		//
		c.Assert(c.EqConst(c.Sum(lengths...), hand.SuitSize))
	}
	// Cards in each hand
	for i := range p.players {
		player := &p.players[i]
		player.thirteen = c.EqConst(c.Sum(player.Lengths[:]...), hand.Size)
		c.Assert(player.thirteen)
	}
}
