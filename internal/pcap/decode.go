package pcap

import (
	"errors"
	"fmt"
)

// ErrPayloadTooShort indicates a record payload shorter than the minimum
// 14 octets required to attempt Ethernet framing (spec §4.10).
var ErrPayloadTooShort = errors.New("pcap: record payload too short for ethernet framing")

// DecodedRecord is the fully decoded form of one captured frame, built
// by dispatching on EtherType and, for IPv4, on the decoded transport
// protocol (spec §4.10).
type DecodedRecord struct {
	Ethernet EthernetFrame

	ARP  *ARPHeader
	IPv4 *IPv4Header
	IPv6 *IPv6Header
	TCP  *TCPHeader
	UDP  *UDPHeader

	// Unsupported carries a human-readable note when the EtherType or
	// transport protocol selects a branch this decoder does not walk
	// further (spec §4.10 step 5, and the TCP/UDP dispatch correction
	// in spec §9), or when the payload ends before an ARP, IPv4, IPv6,
	// TCP or UDP header is complete.
	Unsupported string
}

// ErrUnsupportedLink indicates a record's file-wide LinkType is not
// Ethernet and assumeEthernet was not set to force the Ethernet path
// (spec §4.9: "Only LinkEthernet is wired to a link-layer decoder").
var ErrUnsupportedLink = errors.New("pcap: link type has no frame decoder")

// DecodeRecordForLink decodes payload the same way DecodeRecord does, but
// first checks the capture file's LinkType: only LinkEthernet frames are
// decodable, unless assumeEthernet overrides the check and forces the
// Ethernet path regardless of the recorded link type (spec §4.9; the
// decode.assume_ethernet configuration key).
func DecodeRecordForLink(payload []byte, linkType LinkType, assumeEthernet bool) (DecodedRecord, error) {
	if linkType != LinkEthernet && !assumeEthernet {
		return DecodedRecord{}, fmt.Errorf("pcap: link type %v: %w", linkType, ErrUnsupportedLink)
	}
	return DecodeRecord(payload)
}

// DecodeRecord decodes a single record's payload per the dispatch table
// of spec §4.10:
//
//  1. bytes [0,14) always go to the Ethernet parser.
//  2. ARP EtherType: bytes [14,42) go to the ARP parser; stop.
//  3. IPv4 EtherType: bytes [14,34) go to the IPv4 parser, then the
//     transport offset and the TCP-vs-UDP choice are derived from the
//     decoded header rather than always assuming TCP — the corrected
//     dispatch from spec §9's design notes rather than the reference's
//     unconditional TCP attempt.
//  4. IPv6 EtherType: bytes [14,54) go to the IPv6 parser; stop.
//  5. Anything else: recorded as unsupported.
func DecodeRecord(payload []byte) (DecodedRecord, error) {
	if len(payload) < EthernetFrameSize {
		return DecodedRecord{}, fmt.Errorf("pcap: need %d bytes, got %d: %w",
			EthernetFrameSize, len(payload), ErrPayloadTooShort)
	}

	eth, err := ParseEthernetFrame(payload[:EthernetFrameSize])
	if err != nil {
		return DecodedRecord{}, err
	}
	dec := DecodedRecord{Ethernet: eth}

	switch {
	case eth.Type.IsARP():
		end := EthernetFrameSize + ARPHeaderSize
		if len(payload) < end {
			dec.Unsupported = "ARP header truncated"
			return dec, nil
		}
		arp, err := ParseARPHeader(payload[EthernetFrameSize:end])
		if err != nil {
			return DecodedRecord{}, err
		}
		dec.ARP = &arp

	case eth.Type.Kind == EtherIPv4:
		ipEnd := EthernetFrameSize + IPv4HeaderSize
		if len(payload) < ipEnd {
			dec.Unsupported = "IPv4 header truncated"
			return dec, nil
		}
		ip, err := ParseIPv4Header(payload[EthernetFrameSize:ipEnd], true)
		if err != nil {
			return DecodedRecord{}, err
		}
		dec.IPv4 = &ip

		// transport_start = 14 + IHL*4: the IHL-aware offset correction
		// noted in spec §9, applied instead of the reference's fixed
		// [34,54) window.
		transportStart := EthernetFrameSize + int(ip.IHL)*4

		switch {
		case ip.Protocol.IsTCP():
			end := transportStart + TCPHeaderSize
			if len(payload) < end {
				dec.Unsupported = "TCP header truncated"
				return dec, nil
			}
			tcp, err := ParseTCPHeader(payload[transportStart:end])
			if err != nil {
				return DecodedRecord{}, err
			}
			dec.TCP = &tcp
		case ip.Protocol.IsUDP():
			end := transportStart + UDPHeaderSize
			if len(payload) < end {
				dec.Unsupported = "UDP header truncated"
				return dec, nil
			}
			udp, err := ParseUDPHeader(payload[transportStart:end])
			if err != nil {
				return DecodedRecord{}, err
			}
			dec.UDP = &udp
		default:
			dec.Unsupported = fmt.Sprintf("transport protocol %v not decoded", ip.Protocol)
		}

	case eth.Type.Kind == EtherIPv6:
		end := EthernetFrameSize + IPv6HeaderSize
		if len(payload) < end {
			dec.Unsupported = "IPv6 header truncated"
			return dec, nil
		}
		ip6, err := ParseIPv6Header(payload[EthernetFrameSize:end], true)
		if err != nil {
			return DecodedRecord{}, err
		}
		dec.IPv6 = &ip6

	default:
		dec.Unsupported = fmt.Sprintf("%v header parsing not implemented", eth.Type)
	}

	return dec, nil
}
