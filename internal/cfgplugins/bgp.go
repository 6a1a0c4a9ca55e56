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

// Package cfgplugins contains shared DUT configuration builders keyed on
// feature. The builders write OpenConfig over gNMI and lean on deviations
// for platform differences.
package cfgplugins

import (
	"testing"
	"time"

	"github.com/openconfig/ondatra"
	"github.com/openconfig/ondatra/gnmi"
	"github.com/openconfig/ondatra/gnmi/oc"
	"github.com/openconfig/ygot/ygot"

	"github.com/azmyali98/sonic-mgmt/internal/deviations"
	"github.com/azmyali98/sonic-mgmt/internal/helpers"
)

const (
	// RPLPermitAll is the name of the accept-all routing policy.
	RPLPermitAll = "PERMIT-ALL"

	// BGPName is the name keyed on the BGP protocol instance.
	BGPName = "BGP"
)

// BgpNeighbor holds the parameters of a single DUT BGP neighbor.
type BgpNeighbor struct {
	LocalAS    uint32
	PeerAS     uint32
	Neighborip string
	PeerGrp    string
	IsMultihop bool
	IsPassive  bool
}

// NewBGPConfig returns the BGP protocol subtree for the DUT with the given
// router ID and neighbors. Each neighbor gets its peer group with the
// accept-all policy applied so routes propagate unfiltered between the
// emulated peers.
func NewBGPConfig(dut *ondatra.DUTDevice, routerID string, nbrs []*BgpNeighbor) *oc.NetworkInstance_Protocol {
	d := &oc.Root{}
	ni := d.GetOrCreateNetworkInstance(deviations.DefaultNetworkInstance(dut))
	niProto := ni.GetOrCreateProtocol(oc.PolicyTypes_INSTALL_PROTOCOL_TYPE_BGP, BGPName)
	bgp := niProto.GetOrCreateBgp()

	global := bgp.GetOrCreateGlobal()
	global.RouterId = ygot.String(routerID)
	global.GetOrCreateAfiSafi(oc.BgpTypes_AFI_SAFI_TYPE_IPV4_UNICAST).Enabled = ygot.Bool(true)

	for _, nbr := range nbrs {
		global.As = ygot.Uint32(nbr.LocalAS)

		pg := bgp.GetOrCreatePeerGroup(nbr.PeerGrp)
		pg.PeerAs = ygot.Uint32(nbr.PeerAS)
		pg.PeerGroupName = ygot.String(nbr.PeerGrp)
		if deviations.RoutePolicyUnderAFIUnsupported(dut) {
			rpl := pg.GetOrCreateApplyPolicy()
			rpl.ImportPolicy = []string{RPLPermitAll}
			rpl.ExportPolicy = []string{RPLPermitAll}
		} else {
			af := pg.GetOrCreateAfiSafi(oc.BgpTypes_AFI_SAFI_TYPE_IPV4_UNICAST)
			af.Enabled = ygot.Bool(true)
			rpl := af.GetOrCreateApplyPolicy()
			rpl.ImportPolicy = []string{RPLPermitAll}
			rpl.ExportPolicy = []string{RPLPermitAll}
		}

		nv4 := bgp.GetOrCreateNeighbor(nbr.Neighborip)
		nv4.PeerGroup = ygot.String(nbr.PeerGrp)
		nv4.PeerAs = ygot.Uint32(nbr.PeerAS)
		nv4.Enabled = ygot.Bool(true)
		if nbr.IsMultihop {
			eh := nv4.GetOrCreateEbgpMultihop()
			eh.Enabled = ygot.Bool(true)
			eh.MultihopTtl = ygot.Uint8(8)
		}
		if nbr.IsPassive {
			nv4.GetOrCreateTransport().PassiveMode = ygot.Bool(true)
		}
		nv4.GetOrCreateAfiSafi(oc.BgpTypes_AFI_SAFI_TYPE_IPV4_UNICAST).Enabled = ygot.Bool(true)
	}
	return niProto
}

// ConfigureRoutePolicyAllow installs an accept-all policy definition under
// the given name.
func ConfigureRoutePolicyAllow(t *testing.T, dut *ondatra.DUTDevice, name string) {
	t.Helper()
	d := &oc.Root{}
	rp := d.GetOrCreateRoutingPolicy()
	pd := rp.GetOrCreatePolicyDefinition(name)
	st, err := pd.AppendNewStatement("20")
	if err != nil {
		t.Fatalf("AppendNewStatement(%s) failed: %v", name, err)
	}
	st.GetOrCreateActions().PolicyResult = oc.RoutingPolicy_PolicyResultType_ACCEPT_ROUTE
	gnmi.Update(t, dut, gnmi.OC().RoutingPolicy().Config(), rp)
}

// AwaitBGPEstablished polls the DUT until every neighbor in nbrIPs reports
// an ESTABLISHED session, sleeping delay before the first poll and interval
// between polls. It fails the test when timeout elapses first.
func AwaitBGPEstablished(t *testing.T, dut *ondatra.DUTDevice, nbrIPs []string, timeout, interval, delay time.Duration) {
	t.Helper()
	bgpPath := gnmi.OC().NetworkInstance(deviations.DefaultNetworkInstance(dut)).
		Protocol(oc.PolicyTypes_INSTALL_PROTOCOL_TYPE_BGP, BGPName).Bgp()
	ok := helpers.WaitUntil(timeout, interval, delay, func() bool {
		for _, ip := range nbrIPs {
			state, present := gnmi.Lookup(t, dut, bgpPath.Neighbor(ip).SessionState().State()).Val()
			if !present || state != oc.Bgp_Neighbor_SessionState_ESTABLISHED {
				return false
			}
		}
		return true
	})
	if !ok {
		t.Fatal("could not establish bgp sessions")
	}
}

// BGPClearConfig removes the BGP protocol instance and the routing policies
// from the DUT.
func BGPClearConfig(t *testing.T, dut *ondatra.DUTDevice) {
	t.Helper()
	resetBatch := &gnmi.SetBatch{}
	gnmi.BatchDelete(resetBatch, gnmi.OC().NetworkInstance(deviations.DefaultNetworkInstance(dut)).
		Protocol(oc.PolicyTypes_INSTALL_PROTOCOL_TYPE_BGP, BGPName).Bgp().Config())
	gnmi.BatchDelete(resetBatch, gnmi.OC().RoutingPolicy().Config())
	resetBatch.Set(t, dut)
}

// VerifyPortsUp asserts that all reserved ports on the device are admin and
// oper up.
func VerifyPortsUp(t *testing.T, dev *ondatra.Device) {
	t.Helper()
	for _, p := range dev.Ports() {
		status := gnmi.Get(t, dev, gnmi.OC().Interface(p.Name()).OperStatus().State())
		if want := oc.Interface_OperStatus_UP; status != want {
			t.Errorf("%s Status: got %v, want %v", p, status, want)
		}
	}
}
