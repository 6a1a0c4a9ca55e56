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

// Package helpers provides helper APIs to simplify writing test cases.
package helpers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openconfig/ondatra/binding"
)

// WaitUntil polls fn every interval until it returns true or timeout
// elapses, sleeping delay before the first attempt. It reports whether fn
// ever returned true. The timeout covers polling only, not the initial
// delay.
func WaitUntil(timeout, interval, delay time.Duration, fn func() bool) bool {
	time.Sleep(delay)
	deadline := time.Now().Add(timeout)
	for {
		if fn() {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(interval)
	}
}

// LastNonEmptyLine returns the final non-blank line of a command output,
// which for single-value show commands is the value itself.
func LastNonEmptyLine(output string) string {
	lines := strings.Split(output, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}

// RunCommand executes cmd over the DUT CLI and returns its combined output.
func RunCommand(ctx context.Context, cli binding.CLIClient, cmd string) (string, error) {
	out, err := cli.RunCommand(ctx, cmd)
	if err != nil {
		return "", fmt.Errorf("command %q failed: %w", cmd, err)
	}
	return out.Output(), nil
}
