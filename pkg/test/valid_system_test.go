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
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/consensys/go-bidsys/pkg/expand"
	"github.com/consensys/go-bidsys/pkg/system"
	"github.com/consensys/go-bidsys/pkg/validate"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
)

// Determines the (relative) location of the test directory.  That is where
// the system files are found.
const TestDir = "../../testdata"

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// ===================================================================
// Valid Systems
// ===================================================================

func Test_Valid_Openings_01(t *testing.T) {
	CheckValid(t, "openings_01")
}

func Test_Valid_Notrump_01(t *testing.T) {
	CheckValid(t, "notrump_01")
}

func Test_Valid_Otherwise_01(t *testing.T) {
	CheckValid(t, "otherwise_01")
}

func Test_Valid_Shapes_01(t *testing.T) {
	CheckValid(t, "shapes_01")
}

func Test_Valid_Combined_01(t *testing.T) {
	// Roots of each file are concatenated
	f := loadSystem(t, validFile("openings_01"), validFile("notrump_01"))
	//
	if len(f) != 9 {
		t.Fatalf("expected 9 roots, found %d", len(f))
	}
}

// ===================================================================
// Unsound Systems
// ===================================================================

func Test_Unsound_Sat_01(t *testing.T) {
	CheckUnsound(t, "sat_01")
}

func Test_Unsound_Order_01(t *testing.T) {
	CheckUnsound(t, "order_01")
}

func Test_Unsound_Forcing_01(t *testing.T) {
	CheckUnsound(t, "forcing_01")
}

// ===================================================================
// Test Helpers
// ===================================================================

// CheckValid checks a given system file is accepted by the default rules,
// along with range sanity.
func CheckValid(t *testing.T, test string) {
	t.Parallel()
	//
	config := validate.DefaultConfig()
	config.Rules["range-sanity"] = true
	//
	if err := checkSystem(t, config, validFile(test)); err != nil {
		t.Errorf("Error %s should have been valid:\n%s", test, err)
	}
}

// CheckUnsound checks a given system file is rejected when every rule is
// enabled, with exactly the defects given by the ";;defect:MESSAGE" lines at the
// start of the file.
func CheckUnsound(t *testing.T, test string) {
	t.Parallel()
	//
	filename := fmt.Sprintf("%s/unsound/%s.bid", TestDir, test)
	config := validate.DefaultConfig()
	//
	for _, name := range validate.RuleNames {
		config.Rules[name] = true
	}
	//
	var (
		errs   validate.Errors
		actual []string
		err    = checkSystem(t, config, filename)
	)
	//
	if !errors.As(err, &errs) {
		t.Fatalf("Error %s should have been unsound (got %v)", test, err)
	}
	//
	for _, e := range errs {
		actual = append(actual, e.Error())
	}
	//
	if diff := cmp.Diff(extractExpectedDefects(t, filename), actual); diff != "" {
		t.Errorf("unexpected defects in %s (-want +got):\n%s", test, diff)
	}
}

func checkSystem(t *testing.T, config validate.Config, filenames ...string) error {
	config.Workers = 2
	//
	validator, err := validate.NewValidator(config)
	if err != nil {
		t.Fatal(err)
	}
	//
	expanded, errs := expand.ExpandForest(loadSystem(t, filenames...))
	//
	for _, err := range errs {
		t.Fatalf("unexpected error: %s", err)
	}
	//
	return validator.ValidateForest(context.Background(), expanded)
}

func loadSystem(t *testing.T, filenames ...string) system.Forest {
	f, errs, err := system.LoadFiles(filenames...)
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	for _, e := range errs {
		t.Fatalf("unexpected error: %s", e.Error())
	}
	//
	return f
}

func validFile(test string) string {
	return fmt.Sprintf("%s/valid/%s.bid", TestDir, test)
}

func extractExpectedDefects(t *testing.T, filename string) []string {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	//
	var defects []string
	//
	for _, line := range strings.Split(string(bytes), "\n") {
		msg, ok := strings.CutPrefix(line, ";;defect:")
		if !ok {
			break
		}
		//
		defects = append(defects, msg)
	}
	//
	return defects
}
