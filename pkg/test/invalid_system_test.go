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
package test

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/consensys/go-bidsys/pkg/system"
	"github.com/consensys/go-bidsys/pkg/util/source"
)

// ===================================================================
// Syntax Tests
// ===================================================================

func Test_Invalid_Arity_01(t *testing.T) {
	CheckInvalid(t, "arity_01")
}

func Test_Invalid_Bid_01(t *testing.T) {
	CheckInvalid(t, "bid_01")
}

func Test_Invalid_Shape_01(t *testing.T) {
	CheckInvalid(t, "shape_01")
}

func Test_Invalid_Symbol_01(t *testing.T) {
	CheckInvalid(t, "symbol_01")
}

// ===================================================================
// Test Helpers
// ===================================================================

// CheckInvalid checks that a given system file fails to parse, reporting
// exactly the errors given by the ";;error:LINE:START-END:MESSAGE" lines at the
// start of the file.  Columns are numbered from 1, and the end is exclusive.
func CheckInvalid(t *testing.T, test string) {
	filename := fmt.Sprintf("%s/invalid/%s.bid", TestDir, test)
	// Enable testing each file in parallel
	t.Parallel()
	// Read system file
	bytes, err := os.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	//
	_, errs := system.Parse(source.NewSourceFile(filename, bytes))
	// Extract expected errors for comparison
	expectedErrs, lineOffsets := extractExpectedErrors(bytes)
	// Check system did not parse!
	if len(errs) == 0 {
		t.Fatalf("Error %s should not have parsed\n", filename)
	}
	//
	failed := false
	msg := fmt.Sprintf("Error %s\n", filename)
	//
	for i := 0; i < max(len(errs), len(expectedErrs)); i++ {
		if i < len(errs) && i < len(expectedErrs) {
			expected := expectedErrs[i]
			actual := errs[i]
			//
			if expected.msg == actual.Message() && expected.span == actual.Span() {
				continue
			}
		}
		//
		failed = true
		//
		if i < len(errs) {
			actual := errs[i]
			msg = fmt.Sprintf("%s unexpected error %s:%s\n", msg, spanToString(actual.Span(), lineOffsets),
				actual.Message())
		}
		//
		if i < len(expectedErrs) {
			expected := expectedErrs[i]
			msg = fmt.Sprintf("%s   expected error %s:%s\n", msg, spanToString(expected.span, lineOffsets),
				expected.msg)
		}
	}
	//
	if failed {
		t.Fatal(msg)
	}
}

// expectedError captures key information about an expected error
type expectedError struct {
	// The range of characters in the original file to which this error is
	// associated.
	span source.Span
	// The error message reported.
	msg string
}

func extractExpectedErrors(bytes []byte) ([]expectedError, []int) {
	offsets, lines := splitFileLines(bytes)
	errs := make([]expectedError, 0)
	// Expected errors are listed at the start of the file
	for _, line := range lines {
		err := extractSyntaxError(line, offsets)
		if err == nil {
			break
		}
		//
		errs = append(errs, *err)
	}
	//
	return errs, offsets
}

// Split out a given file into the line contents and the line offsets.  Offsets
// are in characters, not bytes, to line up with the spans of syntax errors.
func splitFileLines(bytes []byte) ([]int, []string) {
	var (
		contents = []rune(string(bytes))
		offsets  = make([]int, 1)
		lines    []string
		start    = 0
	)
	//
	for i := 0; i <= len(contents); i++ {
		if i == len(contents) || contents[i] == '\n' {
			offsets = append(offsets, i+1)
			lines = append(lines, string(contents[start:i]))
			start = i + 1
		}
	}
	//
	return offsets, lines
}

// Extract the syntax error from a given line in the source file, or return nil
// if it does not describe an error.
func extractSyntaxError(line string, offsets []int) *expectedError {
	if !strings.HasPrefix(line, ";;error:") {
		return nil
	}
	//
	splits := strings.Split(line, ":")
	span := determineFileSpan(splits[1], splits[2], offsets)
	//
	return &expectedError{span, strings.Join(splits[3:], ":")}
}

// Determine the span that the given line and column range corresponds to.
func determineFileSpan(lineStr string, spanStr string, offsets []int) source.Span {
	line, err := strconv.Atoi(lineStr)
	if err != nil {
		panic(err)
	}
	//
	splits := strings.Split(spanStr, "-")
	//
	start, err := strconv.Atoi(splits[0])
	if err != nil {
		panic(err)
	} else if start == 0 {
		panic("columns numbered from 1")
	}
	//
	end, err := strconv.Atoi(splits[1])
	if err != nil {
		panic(err)
	}
	//
	start += offsets[line-1]
	end += offsets[line-1]
	//
	if start >= offsets[line] || end > offsets[line] {
		panic("span overflows to following line")
	}
	// Spans start from zero, whereas columns start from 1.
	return source.NewSpan(start-1, end-1)
}

// Convert a span into a useful human readable string.
func spanToString(span source.Span, offsets []int) string {
	line := 0
	last := 0
	//
	for i, o := range offsets {
		if o > span.Start() {
			break
		}
		//
		line, last = i, o
	}
	//
	return fmt.Sprintf("%d:%d-%d", line+1, 1+span.Start()-last, 1+span.End()-last)
}
