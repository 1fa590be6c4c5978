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
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/consensys/go-bidsys/pkg/bid"
	"github.com/consensys/go-bidsys/pkg/constraint"
	"github.com/consensys/go-bidsys/pkg/sat"
	"github.com/consensys/go-bidsys/pkg/system"
	"github.com/consensys/go-bidsys/pkg/validate"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [flags] system_file(s)",
	Short: "Check that a bidding system is sound.",
	Long: `Check that every auction in a bidding system is well formed and can arise
	from at least one deal.  Each complete auction is checked independently, and all
	defects found are reported.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		cfg, err := LoadConfig(GetString(cmd, "config"), cmd.Flags())
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		validator, err := validate.NewValidator(cfg.Validation())
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		log.Debugf("checking with %d rule(s) across %d worker(s)", len(validator.Rules()), validator.Workers())
		//
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		//
		expanded, xerrs := ExpandSystemPartial(args...)
		err = validator.ValidateForest(ctx, expanded)
		//
		if status := reportCheck(os.Stdout, expanded, xerrs, err); status != 0 {
			os.Exit(status)
		}
		//
		if GetFlag(cmd, "witness") {
			printWitnesses(ctx, os.Stdout, validator.Verifier(), expanded)
		}
	},
}

// Report the outcome of checking a system whose expansion produced a given set
// of errors, returning the exit status.  Defects take precedence over
// expansion errors.
func reportCheck(w io.Writer, expanded system.Expanded, xerrs []error, err error) int {
	var (
		errs validate.Errors
		n    = len(expanded.Paths())
	)
	//
	printErrors(w, xerrs)
	//
	switch {
	case errors.As(err, &errs):
		for _, e := range errs {
			fmt.Fprintln(w, color.RedString("error:"), e)
		}
		//
		fmt.Fprintf(w, "%d defect(s) found in %d auction(s)\n", len(errs), n)
		//
		return 1
	case err != nil:
		fmt.Fprintln(w, err)
		return 1
	case len(xerrs) > 0:
		fmt.Fprintf(w, "%d auction(s) checked, %d failed to expand\n", n, len(xerrs))
		return 4
	}
	//
	fmt.Fprintln(w, color.GreenString("ok:"), fmt.Sprintf("%d auction(s) checked", n))
	//
	return 0
}

// Print a witness deal for every complete auction in a system.
func printWitnesses(ctx context.Context, w io.Writer, verifier *sat.Verifier, expanded system.Expanded) {
	if verifier == nil {
		verifier = sat.NewVerifier(0)
	}
	//
	for _, path := range expanded.Paths() {
		deal, err := verifier.Witness(ctx, path)
		if err != nil {
			fmt.Fprintln(w, color.RedString("error:"), err)
			continue
		}
		//
		renderDeal(w, path, deal)
	}
}

func renderDeal(w io.Writer, path []constraint.ConstrainedBid, deal *sat.Deal) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(bid.Join(constraint.Bids(path), " "))
	t.AppendHeader(table.Row{"Seat", "HCP", "S", "H", "D", "C"})
	//
	for i, s := range deal.Seats {
		l := s.Lengths
		t.AppendRow(table.Row{sat.SeatNames[i], s.Points, l[bid.Spades], l[bid.Hearts], l[bid.Diamonds], l[bid.Clubs]})
	}
	//
	t.Render()
}

func init() {
	rootCmd.AddCommand(checkCmd)
	addConfigFlags(checkCmd.Flags())
	checkCmd.Flags().Bool("witness", false, "print a witness deal for every auction")
}
