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

// Package snmputils reads the Q-BRIDGE-MIB forwarding database of a device
// over SNMP v2c.
package snmputils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gosnmp/gosnmp"
)

// Dot1qTpFdbPort is the Q-BRIDGE-MIB column mapping learned MAC addresses
// to bridge ports.
const Dot1qTpFdbPort = ".1.3.6.1.2.1.17.7.1.2.2.1.2"

// Options parameterize the SNMP session to the device.
type Options struct {
	Target    string
	Port      uint16
	Community string
	Timeout   time.Duration
}

// MACFromOID extracts the MAC address from a dot1qTpFdbPort instance OID,
// whose final six sub-identifiers are the address octets.
func MACFromOID(oid string) (string, error) {
	arcs := strings.Split(strings.Trim(oid, "."), ".")
	if len(arcs) < 6 {
		return "", fmt.Errorf("OID %q has no MAC suffix", oid)
	}
	octets := make([]string, 6)
	for i, arc := range arcs[len(arcs)-6:] {
		v, err := strconv.Atoi(arc)
		if err != nil || v < 0 || v > 255 {
			return "", fmt.Errorf("OID %q: sub-identifier %q is not an octet", oid, arc)
		}
		octets[i] = fmt.Sprintf("%02x", v)
	}
	return strings.Join(octets, ":"), nil
}

// FDBPorts walks dot1qTpFdbPort and returns the learned MAC addresses with
// the bridge port each one was learned on.
func FDBPorts(opts Options) (map[string]int, error) {
	if opts.Port == 0 {
		opts.Port = 161
	}
	if opts.Timeout == 0 {
		opts.Timeout = 5 * time.Second
	}
	snmp := &gosnmp.GoSNMP{
		Target:         opts.Target,
		Port:           opts.Port,
		Community:      opts.Community,
		Version:        gosnmp.Version2c,
		Timeout:        opts.Timeout,
		Retries:        3,
		MaxRepetitions: 50,
	}
	if err := snmp.Connect(); err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", opts.Target, err)
	}
	defer snmp.Conn.Close()

	pdus, err := snmp.BulkWalkAll(Dot1qTpFdbPort)
	if err != nil {
		return nil, fmt.Errorf("walking dot1qTpFdbPort on %s: %w", opts.Target, err)
	}
	fdb := make(map[string]int, len(pdus))
	for _, pdu := range pdus {
		mac, err := MACFromOID(pdu.Name)
		if err != nil {
			return nil, err
		}
		port, ok := toInt(pdu.Value)
		if !ok {
			return nil, fmt.Errorf("entry %s has non-integer port %v", pdu.Name, pdu.Value)
		}
		fdb[mac] = port
	}
	return fdb, nil
}

func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case uint:
		return int(n), true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case uint32:
		return int(n), true
	case int32:
		return int(n), true
	}
	return 0, false
}
