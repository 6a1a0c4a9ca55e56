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

import (
	"testing"
	"time"

	"github.com/open-traffic-generator/snappi/gosnappi"
	"github.com/openconfig/ondatra/gnmi"
	otgpkg "github.com/openconfig/ondatra/otg"
	"github.com/openconfig/ygnmi/ygnmi"
)

// WaitForARP waits for all OTG interfaces of the given ipType ("IPv4" or
// "IPv6") to resolve their gateway neighbor entries.
func WaitForARP(t *testing.T, otg *otgpkg.OTG, c gosnappi.Config, ipType string) {
	t.Helper()
	var intfs []string
	for _, d := range c.Devices().Items() {
		for _, eth := range d.Ethernets().Items() {
			intfs = append(intfs, eth.Name())
		}
	}
	for _, intf := range intfs {
		switch ipType {
		case "IPv4":
			got, ok := gnmi.WatchAll(t, otg, gnmi.OTG().Interface(intf).Ipv4NeighborAny().LinkLayerAddress().State(), time.Minute, func(val *ygnmi.Value[string]) bool {
				return val.IsPresent()
			}).Await(t)
			if !ok {
				t.Fatalf("Did not receive an ARP entry for interface %s, last got: %v", intf, got)
			}
		case "IPv6":
			got, ok := gnmi.WatchAll(t, otg, gnmi.OTG().Interface(intf).Ipv6NeighborAny().LinkLayerAddress().State(), time.Minute, func(val *ygnmi.Value[string]) bool {
				return val.IsPresent()
			}).Await(t)
			if !ok {
				t.Fatalf("Did not receive an NDP entry for interface %s, last got: %v", intf, got)
			}
		}
	}
}
