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

// Package fdb_snmp_test checks that MAC addresses learned in the L2
// forwarding database show up in the Q-BRIDGE-MIB over SNMP. It clears the
// FDB, floods frames with recognizable locally administered source MACs
// from both ATE ports, and compares what the CLI and SNMP report.
package fdb_snmp_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/open-traffic-generator/snappi/gosnappi"
	"github.com/openconfig/ondatra"

	"github.com/azmyali98/sonic-mgmt/internal/args"
	"github.com/azmyali98/sonic-mgmt/internal/fptest"
	"github.com/azmyali98/sonic-mgmt/internal/helpers"
	"github.com/azmyali98/sonic-mgmt/internal/otgutils"
	"github.com/azmyali98/sonic-mgmt/internal/snmputils"
)

func TestMain(m *testing.M) {
	fptest.RunTests(m)
}

const (
	// Source MACs carry this locally administered prefix so test entries
	// are easy to tell apart from anything else the switch has learned.
	dummyMACPrefix = "02:11:22:33"

	macsPerPort   = 10
	framesPerMAC  = 10
	frameSize     = 256
	clearTimeout  = 20 * time.Second
	clearInterval = 2 * time.Second
	settleTime    = 20 * time.Second
)

// portBaseMAC returns the first source MAC flooded from the n-th port.
func portBaseMAC(n int) string {
	return fmt.Sprintf("%s:%02x:00", dummyMACPrefix, n)
}

// expectedMACs lists every source MAC the flows flood from both ports.
func expectedMACs(t *testing.T) map[string]bool {
	t.Helper()
	macs := make(map[string]bool, 2*macsPerPort)
	for n := 1; n <= 2; n++ {
		for i := 0; i < macsPerPort; i++ {
			mac, err := otgutils.IncrementedMac(portBaseMAC(n), i)
			if err != nil {
				t.Fatalf("incrementing %s by %d failed: %v", portBaseMAC(n), i, err)
			}
			macs[mac] = true
		}
	}
	return macs
}

// clearFDB flushes the DUT FDB and waits for the dynamic entries to drain.
func clearFDB(t *testing.T, dut *ondatra.DUTDevice) {
	t.Helper()
	ctx := context.Background()
	cli := dut.RawAPIs().CLI(t)
	if out, err := helpers.RunCommand(ctx, cli, "sonic-clear fdb all"); err != nil {
		t.Fatalf("clearing the FDB failed: %v\n%s", err, out)
	}
	ok := helpers.WaitUntil(clearTimeout, clearInterval, 0, func() bool {
		out, err := helpers.RunCommand(ctx, cli, "show mac")
		if err != nil {
			return false
		}
		return !strings.Contains(strings.ToLower(out), "dynamic")
	})
	if !ok {
		t.Fatal("FDB still has dynamic entries after clearing")
	}
}

// dynamicDummyMACs returns the dummy-prefixed dynamic MACs in show mac.
func dynamicDummyMACs(t *testing.T, dut *ondatra.DUTDevice) []string {
	t.Helper()
	out, err := helpers.RunCommand(context.Background(), dut.RawAPIs().CLI(t), "show mac")
	if err != nil {
		t.Fatalf("reading the FDB failed: %v", err)
	}
	var macs []string
	for _, line := range strings.Split(out, "\n") {
		for _, field := range strings.Fields(line) {
			mac := strings.ToLower(field)
			if strings.HasPrefix(mac, dummyMACPrefix) {
				macs = append(macs, mac)
			}
		}
	}
	return macs
}

func configureOTG(t *testing.T, ate *ondatra.ATEDevice) gosnappi.Config {
	t.Helper()
	top := gosnappi.NewConfig()
	ap1 := ate.Port(t, "port1")
	ap2 := ate.Port(t, "port2")
	top.Ports().Add().SetName(ap1.ID())
	top.Ports().Add().SetName(ap2.ID())

	addFlow(top, ap1.ID(), ap2.ID(), 1)
	addFlow(top, ap2.ID(), ap1.ID(), 2)
	return top
}

// addFlow floods broadcast frames from tx to rx with macsPerPort
// incrementing source MACs.
func addFlow(top gosnappi.Config, tx, rx string, n int) {
	flow := top.Flows().Add().SetName(fmt.Sprintf("fdbFlood%d", n))
	flow.Metrics().SetEnable(true)
	flow.TxRx().Port().SetTxName(tx).SetRxNames([]string{rx})
	flow.Size().SetFixed(frameSize)
	flow.Rate().SetPps(100)
	flow.Duration().FixedPackets().SetPackets(macsPerPort * framesPerMAC)
	eth := flow.Packet().Add().Ethernet()
	eth.Src().Increment().
		SetStart(portBaseMAC(n)).
		SetStep("00:00:00:00:00:01").
		SetCount(macsPerPort)
	eth.Dst().SetValue("ff:ff:ff:ff:ff:ff")
}

func TestFDBReportedOverSNMP(t *testing.T) {
	dut := ondatra.DUT(t, "dut")
	ate := ondatra.ATE(t, "ate")
	otg := ate.OTG()

	clearFDB(t, dut)

	top := configureOTG(t, ate)
	otg.PushConfig(t, top)
	otg.StartProtocols(t)
	defer otg.StopProtocols(t)

	otg.StartTraffic(t)
	time.Sleep(settleTime)
	otg.StopTraffic(t)
	otgutils.LogPortMetrics(t, otg, top)
	otgutils.LogFlowMetrics(t, otg, top)

	cliMACs := dynamicDummyMACs(t, dut)
	if want := 2 * macsPerPort; len(cliMACs) != want {
		t.Errorf("FDB has %d dummy MACs (%v), want %d", len(cliMACs), cliMACs, want)
	}
	sent := expectedMACs(t)
	for _, mac := range cliMACs {
		if !sent[mac] {
			t.Errorf("FDB has dummy MAC %s that was never sent", mac)
		}
	}

	fdb, err := snmputils.FDBPorts(snmputils.Options{
		Target:    dut.Name(),
		Community: *args.SNMPCommunity,
	})
	if err != nil {
		t.Fatalf("SNMP FDB walk failed: %v", err)
	}
	snmpMACs := make(map[string]bool)
	for mac := range fdb {
		if strings.HasPrefix(mac, dummyMACPrefix) {
			snmpMACs[mac] = true
		}
	}
	if len(snmpMACs) != len(cliMACs) {
		t.Errorf("SNMP reports %d dummy MACs, CLI reports %d", len(snmpMACs), len(cliMACs))
	}
	for _, mac := range cliMACs {
		if !snmpMACs[mac] {
			t.Errorf("MAC %s is in the CLI FDB but missing from SNMP", mac)
		}
	}
}
