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
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/consensys/go-bidsys/pkg/constraint"
	"github.com/consensys/go-bidsys/pkg/hand"
	"github.com/consensys/go-bidsys/pkg/system"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// evalCmd represents the eval command
var evalCmd = &cobra.Command{
	Use:   "eval [flags] system_file hand [call...]",
	Short: "Show which calls a hand may make after some auction.",
	Long: `Show which calls a bidding system permits after a given auction, and which
	of those a given hand satisfies.  Hands are written as four dot-separated suits
	in the order spades, hearts, diamonds and clubs (e.g. AK3.K542.Q76.J54).`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 2 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		h, err := hand.Parse(args[1])
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		auction, err := system.ParseAuction(args[2:]...)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		expanded := ExpandSystem(args[0])
		//
		continuations, err := system.Continuations(expanded, auction, h)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		//
		printContinuations(os.Stdout, continuations, GetFlag(cmd, "all"))
	},
}

func printContinuations(w io.Writer, continuations []system.Continuation, all bool) {
	for _, c := range continuations {
		if c.Satisfied {
			fmt.Fprintf(w, "%s %s %s\n", color.GreenString("+"), c.Bid, constraint.String(c.Constraint))
		} else if all {
			fmt.Fprintf(w, "%s %s %s\n", color.RedString("-"), c.Bid, constraint.String(c.Constraint))
		}
	}
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().BoolP("all", "a", false, "also show calls the hand does not satisfy")
}
