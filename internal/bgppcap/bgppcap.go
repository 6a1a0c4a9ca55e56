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

// Package bgppcap extracts BGP UPDATE messages from packet captures and
// classifies them as announcements or withdrawals of individual routes.
//
// The propagation-latency tests capture traffic on the ATE ports facing the
// DUT, so every UPDATE of interest is an Ethernet/IPv4/TCP packet on the BGP
// port. Decoding uses the pure-Go pcapgo reader so that captures returned by
// OTG can be parsed without libpcap on the test runner.
package bgppcap

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"sort"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/osrg/gobgp/v3/pkg/packet/bgp"
)

const bgpPort = layers.TCPPort(179)

// Action identifies how a route appears in a BGP UPDATE.
type Action string

// The two ways a route can appear in an UPDATE message.
const (
	Announce Action = "announce"
	Withdraw Action = "withdraw"
)

// Route is a prefix announced and later withdrawn during a measurement.
type Route struct {
	// Prefix in CIDR notation, e.g. "10.10.100.0/27".
	Prefix string
	// Nexthop carried in the announcement.
	Nexthop string
}

func (r Route) String() string {
	return fmt.Sprintf("%s via %s", r.Prefix, r.Nexthop)
}

// Update is a single BGP UPDATE observed in a capture.
type Update struct {
	Timestamp time.Time
	SrcIP     string
	DstIP     string
	Body      *bgp.BGPUpdate
}

// Updates decodes a pcap capture and returns every BGP UPDATE carried on a
// TCP segment to or from the BGP port, in capture order. Packets that are
// not IPv4/TCP or carry no complete UPDATE are skipped.
func Updates(pcapData []byte) ([]Update, error) {
	r, err := pcapgo.NewReader(bytes.NewReader(pcapData))
	if err != nil {
		return nil, fmt.Errorf("could not read pcap header: %w", err)
	}
	var updates []Update
	for {
		data, ci, err := r.ReadPacketData()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("could not read packet: %w", err)
		}
		pkt := gopacket.NewPacket(data, r.LinkType(), gopacket.Default)
		ip4, _ := pkt.Layer(layers.LayerTypeIPv4).(*layers.IPv4)
		tcp, _ := pkt.Layer(layers.LayerTypeTCP).(*layers.TCP)
		if ip4 == nil || tcp == nil {
			continue
		}
		if tcp.SrcPort != bgpPort && tcp.DstPort != bgpPort {
			continue
		}
		for _, msg := range messages(tcp.Payload) {
			body, ok := msg.Body.(*bgp.BGPUpdate)
			if !ok {
				continue
			}
			updates = append(updates, Update{
				Timestamp: ci.Timestamp,
				SrcIP:     ip4.SrcIP.String(),
				DstIP:     ip4.DstIP.String(),
				Body:      body,
			})
		}
	}
	return updates, nil
}

// messages splits a TCP segment into the BGP messages it carries. A segment
// routinely packs several messages, and a capture that starts mid-stream may
// begin inside one; malformed or truncated trailing bytes are dropped rather
// than reported.
func messages(payload []byte) []*bgp.BGPMessage {
	var msgs []*bgp.BGPMessage
	for len(payload) >= bgp.BGP_HEADER_LENGTH {
		mlen := int(binary.BigEndian.Uint16(payload[16:18]))
		if mlen < bgp.BGP_HEADER_LENGTH || mlen > len(payload) {
			break
		}
		msg, err := bgp.ParseBGPMessage(payload[:mlen])
		if err != nil {
			break
		}
		msgs = append(msgs, msg)
		payload = payload[mlen:]
	}
	return msgs
}

// Matches reports whether the update travels src to dst and carries the
// route under the given action. An announcement must have a nonzero
// path-attribute length and the prefix in its NLRI; a withdrawal must have a
// nonzero withdrawn-routes length and the prefix in its withdrawn list.
func (u Update) Matches(srcIP, dstIP string, action Action, route Route) bool {
	if u.SrcIP != srcIP || u.DstIP != dstIP {
		return false
	}
	switch action {
	case Announce:
		return u.Body.TotalPathAttributeLen > 0 && containsPrefix(u.Body.NLRI, route.Prefix)
	case Withdraw:
		return u.Body.WithdrawnRoutesLen > 0 && containsPrefix(u.Body.WithdrawnRoutes, route.Prefix)
	}
	return false
}

// FirstMatch returns the first update matching the given classification.
func FirstMatch(updates []Update, srcIP, dstIP string, action Action, route Route) (Update, bool) {
	for _, u := range updates {
		if u.Matches(srcIP, dstIP, action, route) {
			return u, true
		}
	}
	return Update{}, false
}

func containsPrefix(prefixes []*bgp.IPAddrPrefix, cidr string) bool {
	want := canonicalCIDR(cidr)
	for _, p := range prefixes {
		if canonicalCIDR(p.String()) == want {
			return true
		}
	}
	return false
}

func canonicalCIDR(cidr string) string {
	_, ipnet, err := net.ParseCIDR(cidr)
	if err != nil {
		return cidr
	}
	return ipnet.String()
}

// Interval returns how long the update took to propagate from the ingress
// observation to the egress one.
func Interval(in, out Update) time.Duration {
	return out.Timestamp.Sub(in.Timestamp)
}

// Median returns the middle element of the intervals after sorting, using
// index (n-1)/2 so an even-length list yields the lower middle. It must not
// be called with an empty list.
func Median(intervals []time.Duration) time.Duration {
	s := append([]time.Duration(nil), intervals...)
	sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
	return s[(len(s)-1)/2]
}

// MedianByAction returns the median of each action's interval list. The
// lists are never pooled: each action is measured against its own median.
func MedianByAction(intervals map[Action][]time.Duration) map[Action]time.Duration {
	medians := make(map[Action]time.Duration, len(intervals))
	for action, list := range intervals {
		medians[action] = Median(list)
	}
	return medians
}
