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

package snmputils

import "testing"

func TestMACFromOID(t *testing.T) {
	tests := []struct {
		name    string
		oid     string
		want    string
		wantErr bool
	}{{
		name: "full instance",
		oid:  ".1.3.6.1.2.1.17.7.1.2.2.1.2.1.2.17.34.51.0.5",
		want: "02:11:22:33:00:05",
	}, {
		name: "no leading dot",
		oid:  "1.3.6.1.2.1.17.7.1.2.2.1.2.1.255.255.255.255.255.255",
		want: "ff:ff:ff:ff:ff:ff",
	}, {
		name:    "too short",
		oid:     ".1.2.3",
		wantErr: true,
	}, {
		name:    "octet out of range",
		oid:     ".1.3.6.1.2.1.17.7.1.2.2.1.2.1.2.17.34.51.0.500",
		wantErr: true,
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MACFromOID(tt.oid)
			if (err != nil) != tt.wantErr {
				t.Fatalf("MACFromOID(%q) error = %v, wantErr %v", tt.oid, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("MACFromOID(%q) = %q, want %q", tt.oid, got, tt.want)
			}
		})
	}
}
