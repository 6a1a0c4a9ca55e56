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

// Package deviations documents and controls vendor and platform deviation
// workarounds used by the test suite.
package deviations

import (
	"flag"

	"github.com/openconfig/ondatra"
)

var (
	quaggaRoutingStack = flag.Bool("deviation_quagga_routing_stack", false,
		"Set to true for devices whose BGP container runs Quagga instead of FRR. Quagga batches outgoing updates, so propagation tests use longer sleeps and thresholds and sessions are configured multihop.")

	interfaceEnabled = flag.Bool("deviation_interface_enabled", true,
		"Set the interface enabled leaf explicitly to true; some vendors leave interfaces down otherwise.")

	defaultNetworkInstance = flag.String("deviation_default_network_instance", "DEFAULT",
		"Name of the default network instance on the DUT.")

	routePolicyUnderAFIUnsupported = flag.Bool("deviation_route_policy_under_afi_unsupported", false,
		"Set to true for devices that only accept apply-policy at the peer-group level, not under the AFI-SAFI.")
)

// QuaggaRoutingStack returns true for devices running a Quagga-based BGP
// stack.
func QuaggaRoutingStack(*ondatra.DUTDevice) bool {
	return *quaggaRoutingStack
}

// InterfaceEnabled returns whether interface configs must carry an explicit
// enabled=true leaf.
func InterfaceEnabled(*ondatra.DUTDevice) bool {
	return *interfaceEnabled
}

// DefaultNetworkInstance returns the name of the device's default network
// instance.
func DefaultNetworkInstance(*ondatra.DUTDevice) string {
	return *defaultNetworkInstance
}

// RoutePolicyUnderAFIUnsupported returns whether routing policies must be
// attached at the peer-group level.
func RoutePolicyUnderAFIUnsupported(*ondatra.DUTDevice) bool {
	return *routePolicyUnderAFIUnsupported
}
