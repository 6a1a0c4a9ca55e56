// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package fptest bootstraps the test binding and carries small logging
// helpers shared across the suite.
package fptest

import (
	"fmt"
	"testing"

	"github.com/openconfig/ygnmi/ygnmi"
	"github.com/openconfig/ygot/ygot"
)

// LogQuery logs a ygot GoStruct as RFC 7951 JSON together with the path it
// is about to be pushed to or was fetched from.
func LogQuery[T any](t testing.TB, desc string, query ygnmi.SingletonQuery[T], value T) {
	t.Helper()
	pathText := "<unresolved>"
	if path, _, err := ygnmi.ResolvePath(query.PathStruct()); err == nil {
		if s, err := ygot.PathToString(path); err == nil {
			pathText = s
		}
	}
	var valueText string
	if v, ok := any(value).(ygot.ValidatedGoStruct); ok {
		jsonText, err := ygot.EmitJSON(v, &ygot.EmitJSONConfig{
			Format: ygot.RFC7951,
			Indent: "  ",
			RFC7951Config: &ygot.RFC7951JSONConfig{
				AppendModuleName: true,
			},
		})
		if err != nil {
			jsonText = fmt.Sprintf("error marshalling: %v", err)
		}
		valueText = jsonText
	} else {
		valueText = fmt.Sprintf("%v", value)
	}
	t.Logf("%s at %s:\n%s", desc, pathText, valueText)
}
