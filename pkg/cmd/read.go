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

	"github.com/consensys/go-bidsys/pkg/expand"
	"github.com/consensys/go-bidsys/pkg/system"
	"github.com/consensys/go-bidsys/pkg/util"
	"github.com/consensys/go-bidsys/pkg/util/source"
	"github.com/fatih/color"
)

// ReadSystemFiles reads and parses one or more bidding system files into a
// single forest.  Any syntax errors are reported and the program exits.
func ReadSystemFiles(filenames ...string) system.Forest {
	stats := util.NewPerfStats()
	f, errs, err := system.LoadFiles(filenames...)
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(3)
	} else if len(errs) > 0 {
		printSyntaxErrors(errs)
		os.Exit(4)
	}
	//
	stats.Log("Reading system files")
	//
	return f
}

// ExpandSystem reads, parses and then expands one or more bidding system
// files.  Any errors arising are reported and the program exits.
func ExpandSystem(filenames ...string) system.Expanded {
	expanded, errs := ExpandSystemPartial(filenames...)
	//
	if len(errs) > 0 {
		printErrors(os.Stdout, errs)
		os.Exit(4)
	}
	//
	return expanded
}

// ExpandSystemPartial reads, parses and then expands one or more bidding
// system files.  Paths which fail to expand are dropped, and their errors are
// returned alongside the paths which did expand.
func ExpandSystemPartial(filenames ...string) (system.Expanded, []error) {
	f := ReadSystemFiles(filenames...)
	stats := util.NewPerfStats()
	expanded, errs := expand.ExpandForest(f)
	//
	stats.Log("Expanding system")
	//
	return expanded, errs
}

func printErrors(w io.Writer, errs []error) {
	for _, err := range errs {
		fmt.Fprintln(w, color.RedString("error:"), err)
	}
}

func printSyntaxErrors(errs []source.SyntaxError) {
	for i := range errs {
		printSyntaxError(os.Stdout, &errs[i])
	}
}

// Print a syntax error with appropriate highlighting.
func printSyntaxError(w io.Writer, err *source.SyntaxError) {
	span := err.Span()
	line := err.FirstEnclosingLine()
	offset := span.Start() - line.Start()
	length := max(1, min(len([]rune(line.String()))-offset, span.Length()))
	//
	fmt.Fprintf(w, "%s:%d:%d-%d %s\n\n", err.SourceFile().Filename(),
		line.Number(), 1+offset, 1+offset+length, color.RedString(err.Message()))
	fmt.Fprintln(w, err.Highlight())
}
