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
	"fmt"
	"strings"

	"github.com/consensys/go-bidsys/pkg/bid"
)

// SeatNames names the seats of a deal, relative to the first caller.
var SeatNames = [NumSeats]string{"1st", "2nd", "3rd", "4th"}

// Seat summarises the hand held in one seat of a deal.
type Seat struct {
	Points  uint
	Lengths [bid.NumSuits]uint
}

// Deal summarises the four hands of a deal, indexed by seat relative to the
// first caller.
type Deal struct {
	Seats [NumSeats]Seat
}

func (p *Deal) String() string {
	var builder strings.Builder
	//
	for i, s := range p.Seats {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		l := s.Lengths
		fmt.Fprintf(&builder, "%s: %d hcp %d-%d-%d-%d", SeatNames[i], s.Points, l[bid.Spades], l[bid.Hearts],
			l[bid.Diamonds], l[bid.Clubs])
	}
	//
	return builder.String()
}

func extractDeal(ctx *SATContext) *Deal {
	var (
		deal    Deal
		circuit = ctx.Circuit()
	)
	//
	for i := range deal.Seats {
		player := ctx.Player(uint(i))
		deal.Seats[i].Points = circuit.Uint(player.Points)
		//
		for _, s := range bid.Suits() {
			deal.Seats[i].Lengths[s] = circuit.Uint(player.Lengths[s])
		}
	}
	//
	return &deal
}
