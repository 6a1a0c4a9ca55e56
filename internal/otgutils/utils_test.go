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

package otgutils

import "testing"

func TestIncrementedMac(t *testing.T) {
	tests := []struct {
		mac  string
		inc  int
		want string
	}{
		{mac: "02:11:22:33:00:00", inc: 0, want: "02:11:22:33:00:00"},
		{mac: "02:11:22:33:00:00", inc: 5, want: "02:11:22:33:00:05"},
		{mac: "02:11:22:33:00:ff", inc: 1, want: "02:11:22:33:01:00"},
	}
	for _, tt := range tests {
		got, err := IncrementedMac(tt.mac, tt.inc)
		if err != nil {
			t.Fatalf("IncrementedMac(%q, %d) failed: %v", tt.mac, tt.inc, err)
		}
		if got != tt.want {
			t.Errorf("IncrementedMac(%q, %d) = %q, want %q", tt.mac, tt.inc, got, tt.want)
		}
	}
}

func TestIncrementedMacInvalid(t *testing.T) {
	if _, err := IncrementedMac("not-a-mac", 1); err == nil {
		t.Error("IncrementedMac() succeeded on an invalid address")
	}
}
