package pcap

import (
	"errors"
	"fmt"
)

// MacAddressLen is the fixed length, in octets, of a MAC address.
const MacAddressLen = 6

// ErrInvalidMacAddress indicates fewer than MacAddressLen bytes were
// offered to NewMacAddress.
var ErrInvalidMacAddress = errors.New("pcap: invalid MAC address length")

// MacAddress is a fixed 6-octet link-layer address.
type MacAddress [MacAddressLen]byte

// NewMacAddress builds a MacAddress from the first MacAddressLen bytes of b.
func NewMacAddress(b []byte) (MacAddress, error) {
	var m MacAddress
	if len(b) < MacAddressLen {
		return m, fmt.Errorf("pcap: need %d bytes, got %d: %w", MacAddressLen, len(b), ErrInvalidMacAddress)
	}
	copy(m[:], b[:MacAddressLen])
	return m, nil
}

// String renders the address as six colon-separated uppercase hex octets,
// e.g. "DE:AD:BE:EF:00:00" (spec §8 scenario 2).
func (m MacAddress) String() string {
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X", m[0], m[1], m[2], m[3], m[4], m[5])
}

// EtherTypeKind tags the classification of an Ethernet II EtherType word
// (spec §3 Data Model).
type EtherTypeKind uint8

const (
	EtherIPv4 EtherTypeKind = iota
	EtherIPv6
	EtherARP
	EtherIPX
	Ether8023Length
	EtherUnknown
)

var etherTypeKindNames = [...]string{
	EtherIPv4:       "IPv4",
	EtherIPv6:       "IPv6",
	EtherARP:        "ARP",
	EtherIPX:        "IPX",
	Ether8023Length: "IEEE 802.3 Length",
	EtherUnknown:    "Unknown",
}

// EtherType is the classified form of the 16-bit word following the
// source MAC in an Ethernet II frame (spec §3, §4.9). Values of the raw
// word at or below 1500 are reinterpreted as an IEEE 802.3 length field
// rather than an EtherType code.
type EtherType struct {
	Kind EtherTypeKind
	// Raw is the original 16-bit word: the IEEE 802.3 length when
	// Kind == Ether8023Length, the EtherType code otherwise.
	Raw uint16
}

// ieee8023LengthCeiling is the inclusive upper bound below which the
// 16-bit word is a length rather than an EtherType code (spec §3, §4.9).
const ieee8023LengthCeiling = 1500

// Known EtherType codes (spec §4.9).
const (
	etherTypeIPv4 uint16 = 0x0800
	etherTypeARP  uint16 = 0x0806
	etherTypeIPX  uint16 = 0x8137
	etherTypeIPv6 uint16 = 0x86DD
)

// classifyEtherType implements the EtherType decision table of spec §4.9.
func classifyEtherType(word uint16) EtherType {
	if word <= ieee8023LengthCeiling {
		return EtherType{Kind: Ether8023Length, Raw: word}
	}
	switch word {
	case etherTypeIPv4:
		return EtherType{Kind: EtherIPv4, Raw: word}
	case etherTypeARP:
		return EtherType{Kind: EtherARP, Raw: word}
	case etherTypeIPX:
		return EtherType{Kind: EtherIPX, Raw: word}
	case etherTypeIPv6:
		return EtherType{Kind: EtherIPv6, Raw: word}
	default:
		return EtherType{Kind: EtherUnknown, Raw: word}
	}
}

// IsARP reports whether this EtherType classifies as ARP.
func (e EtherType) IsARP() bool { return e.Kind == EtherARP }

// Is8023 reports whether this EtherType classifies as an IEEE 802.3 length
// field rather than an EtherType code.
func (e EtherType) Is8023() bool { return e.Kind == Ether8023Length }

// String renders the EtherType's classification name, including the raw
// length when it is an IEEE 802.3 length field.
func (e EtherType) String() string {
	name := unknownStr
	if int(e.Kind) < len(etherTypeKindNames) {
		name = etherTypeKindNames[e.Kind]
	}
	if e.Kind == Ether8023Length {
		return fmt.Sprintf("%s(%d)", name, e.Raw)
	}
	return name
}

// EthernetFrameSize is the fixed size, in bytes, of an Ethernet II / IEEE
// 802.3 frame header (spec §4.9): 6 (dest) + 6 (src) + 2 (type/length).
const EthernetFrameSize = 14

// ErrEthernetFrameTooShort indicates fewer than EthernetFrameSize bytes
// were offered to ParseEthernetFrame.
var ErrEthernetFrameTooShort = errors.New("pcap: ethernet frame too short")

// EthernetFrame is the decoded form of an Ethernet II / IEEE 802.3 frame
// header (spec §3, §4.9).
type EthernetFrame struct {
	Destination MacAddress
	Source      MacAddress
	Type        EtherType
}

// ParseEthernetFrame decodes the first EthernetFrameSize bytes of buf: a
// cursor-based walk over destination MAC (bytes 0-5), source MAC (bytes
// 6-11), and EtherType (bytes 12-13), always in network byte order
// (spec §4.9).
func ParseEthernetFrame(buf []byte) (EthernetFrame, error) {
	if len(buf) < EthernetFrameSize {
		return EthernetFrame{}, fmt.Errorf("pcap: need %d bytes, got %d: %w",
			EthernetFrameSize, len(buf), ErrEthernetFrameTooShort)
	}

	dest, _ := NewMacAddress(buf[0:6])
	src, _ := NewMacAddress(buf[6:12])
	typeWord := Combine2(buf[12], buf[13], false)

	return EthernetFrame{
		Destination: dest,
		Source:      src,
		Type:        classifyEtherType(typeWord),
	}, nil
}
