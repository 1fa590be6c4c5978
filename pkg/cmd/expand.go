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
	"strings"

	"github.com/consensys/go-bidsys/pkg/constraint"
	"github.com/consensys/go-bidsys/pkg/forest"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// expandCmd represents the expand command
var expandCmd = &cobra.Command{
	Use:   "expand [flags] system_file(s)",
	Short: "Print the resolved constraints of a bidding system.",
	Long: `Print every bid of a bidding system together with the constraint it resolves
	to, after references, definitions and otherwise clauses have been eliminated.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		printForest(os.Stdout, ExpandSystem(args...), 0)
	},
}

func printForest(w io.Writer, f forest.Forest[constraint.ConstrainedBid], depth int) {
	indent := strings.Repeat("  ", depth)
	//
	for _, n := range f {
		fmt.Fprintf(w, "%s%s %s\n", indent, color.CyanString(n.Value.Bid.String()), constraint.String(n.Value.Constraint))
		printForest(w, n.Children, depth+1)
	}
}

func init() {
	rootCmd.AddCommand(expandCmd)
}
