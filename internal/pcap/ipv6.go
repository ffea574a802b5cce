package pcap

import (
	"errors"
	"fmt"
	"net/netip"
)

// IPv6HeaderSize is the fixed size, in bytes, of an IPv6 header (spec
// §4.5): 1 (version+flow high nibble) + 3 (flow) + 2 (length) + 1
// (next header) + 1 (hop limit) + 16 (source) + 16 (destination).
const IPv6HeaderSize = 40

// ErrIPv6HeaderTooShort indicates fewer than IPv6HeaderSize bytes were
// offered to ParseIPv6Header.
var ErrIPv6HeaderTooShort = errors.New("pcap: ipv6 header too short")

// IPv6Header is the decoded form of an IPv6 header (spec §3, §4.5).
type IPv6Header struct {
	Version       uint8
	FlowLabel     uint32
	PayloadLength uint16
	NextHeader    TransportProtocol
	HopLimit      uint8
	Source        netip.Addr
	Destination   netip.Addr
}

// ParseIPv6Header decodes the first IPv6HeaderSize bytes of buf by
// walking the field sequence V -> FLOW -> LEN -> PRT -> HOPL -> SRC ->
// DST (spec §4.5). swapped is the byte order every multi-octet field is
// read in.
func ParseIPv6Header(buf []byte, swapped bool) (IPv6Header, error) {
	if len(buf) < IPv6HeaderSize {
		return IPv6Header{}, fmt.Errorf("pcap: need %d bytes, got %d: %w",
			IPv6HeaderSize, len(buf), ErrIPv6HeaderTooShort)
	}

	var h IPv6Header
	h.Version = HighNibble(buf[0])
	// The combined traffic-class/flow-label word starts with the low
	// nibble of the version octet, followed by the next three octets.
	h.FlowLabel = Combine4(LowNibble(buf[0]), buf[1], buf[2], buf[3], swapped)
	h.PayloadLength = Combine2(buf[4], buf[5], swapped)
	h.NextHeader = TransportProtocolFrom(buf[6])
	h.HopLimit = buf[7]

	h.Source = ipv6AddrFromGroups(buf[8:24], swapped)
	h.Destination = ipv6AddrFromGroups(buf[24:40], swapped)

	return h, nil
}

// ipv6AddrFromGroups decodes 16 bytes as eight 16-bit groups, each
// combined in the given byte order, and reassembles them into a
// net/netip address (spec §4.5).
func ipv6AddrFromGroups(buf []byte, swapped bool) netip.Addr {
	var out [16]byte
	for i := 0; i < 8; i++ {
		group := Combine2(buf[2*i], buf[2*i+1], swapped)
		out[2*i] = byte(group >> 8)
		out[2*i+1] = byte(group)
	}
	return netip.AddrFrom16(out)
}
