package pcap

import "fmt"

// TransportProtocol tags the one-byte IANA protocol number carried in an
// IPv4 header's protocol field or an IPv6 header's next-header field
// (spec §3, §4.4, §4.5).
type TransportProtocol struct {
	kind protocolKind
	raw  uint8
}

type protocolKind uint8

const (
	protoIPv6HopByHop protocolKind = iota
	protoICMP
	protoIGMP
	protoGGP
	protoIPinIP
	protoST
	protoTCP
	protoCBT
	protoEGP
	protoIGP
	protoNVP2
	protoUDP
	protoUnknown
)

var protocolNames = [...]string{
	protoIPv6HopByHop: "IPv6 Hop-By-Hop Option",
	protoICMP:         "ICMP",
	protoIGMP:         "Internet Group Management Protocol",
	protoGGP:          "Gateway-to-Gateway",
	protoIPinIP:       "IP in IP (encapsulated)",
	protoST:           "Internet Stream Protocol",
	protoTCP:          "TCP",
	protoCBT:          "Core Based Trees",
	protoEGP:          "Exterior Gateway",
	protoIGP:          "Interior Gateway",
	protoNVP2:         "Network Voice Protocol",
	protoUDP:          "UDP",
}

// IANA protocol numbers named by this decoder (spec §3, §8).
const (
	ianaIPv6HopByHop uint8 = 0
	ianaICMP         uint8 = 1
	ianaIGMP         uint8 = 2
	ianaGGP          uint8 = 3
	ianaIPinIP       uint8 = 4
	ianaST           uint8 = 5
	ianaTCP          uint8 = 6
	ianaCBT          uint8 = 7
	ianaEGP          uint8 = 8
	ianaIGP          uint8 = 9
	ianaNVP2         uint8 = 11
	ianaUDP          uint8 = 17
)

// TransportProtocolFrom maps an IANA protocol number to its named
// TransportProtocol, or an unknown(p) catch-all for every other value
// (spec §3, §8: for all p not in {0,1,2,3,4,5,6,7,8,9,11,17},
// TransportProtocol::from(p) is unknown(p)).
func TransportProtocolFrom(p uint8) TransportProtocol {
	switch p {
	case ianaIPv6HopByHop:
		return TransportProtocol{kind: protoIPv6HopByHop, raw: p}
	case ianaICMP:
		return TransportProtocol{kind: protoICMP, raw: p}
	case ianaIGMP:
		return TransportProtocol{kind: protoIGMP, raw: p}
	case ianaGGP:
		return TransportProtocol{kind: protoGGP, raw: p}
	case ianaIPinIP:
		return TransportProtocol{kind: protoIPinIP, raw: p}
	case ianaST:
		return TransportProtocol{kind: protoST, raw: p}
	case ianaTCP:
		return TransportProtocol{kind: protoTCP, raw: p}
	case ianaCBT:
		return TransportProtocol{kind: protoCBT, raw: p}
	case ianaEGP:
		return TransportProtocol{kind: protoEGP, raw: p}
	case ianaIGP:
		return TransportProtocol{kind: protoIGP, raw: p}
	case ianaNVP2:
		return TransportProtocol{kind: protoNVP2, raw: p}
	case ianaUDP:
		return TransportProtocol{kind: protoUDP, raw: p}
	default:
		return TransportProtocol{kind: protoUnknown, raw: p}
	}
}

// IsTCP reports whether this protocol is TCP.
func (t TransportProtocol) IsTCP() bool { return t.kind == protoTCP }

// IsUDP reports whether this protocol is UDP.
func (t TransportProtocol) IsUDP() bool { return t.kind == protoUDP }

// IsUnknown reports whether this protocol number had no named mapping.
func (t TransportProtocol) IsUnknown() bool { return t.kind == protoUnknown }

// Number returns the original IANA protocol byte.
func (t TransportProtocol) Number() uint8 { return t.raw }

// String renders the protocol's name, or "Unknown(p)" when unmapped.
func (t TransportProtocol) String() string {
	if t.kind == protoUnknown {
		return fmt.Sprintf(unknownFmt, t.raw)
	}
	return protocolNames[t.kind]
}
