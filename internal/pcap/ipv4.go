package pcap

import (
	"errors"
	"fmt"
	"net/netip"
)

// IPv4HeaderSize is the fixed size, in bytes, of an IPv4 header without
// options (spec §4.4): the decoder never advances past IHL, so options
// are simply left unconsumed in the record payload.
const IPv4HeaderSize = 20

// ErrIPv4HeaderTooShort indicates fewer than IPv4HeaderSize bytes were
// offered to ParseIPv4Header.
var ErrIPv4HeaderTooShort = errors.New("pcap: ipv4 header too short")

// IPv4Header is the decoded form of an IPv4 header (spec §3, §4.4).
type IPv4Header struct {
	Version        uint8
	IHL            uint8
	ToS            uint8
	TotalLength    uint16
	Identification uint16
	FlagsAndFrag   uint16
	TTL            uint8
	Protocol       TransportProtocol
	Checksum       uint16
	Source         netip.Addr
	Destination    netip.Addr
}

// ipv4Field names the field-state sequence of spec §4.4:
// V -> TOS -> LEN -> ID -> FF -> TTL -> PRT -> CHECK -> SRC -> DST -> UNSET.
type ipv4Field uint8

const (
	ipv4FieldV ipv4Field = iota
	ipv4FieldTOS
	ipv4FieldLEN
	ipv4FieldID
	ipv4FieldFF
	ipv4FieldTTL
	ipv4FieldPRT
	ipv4FieldCHECK
	ipv4FieldSRC
	ipv4FieldDST
	ipv4FieldUNSET
)

// ipv4Parser drives a ByteAccumulator field-by-field, the single-shot
// incremental discipline spec §4.4 describes for IPv4. ParseIPv4Header
// wraps it for callers holding the whole header in one buffer.
type ipv4Parser struct {
	acc   *ByteAccumulator
	field ipv4Field
	h     IPv4Header

	// srcRaw/dstRaw hold the four address octets in insertion order;
	// spec's reference applies the swap twice when re-reading a 4-octet
	// word as an address, and the reversals cancel, so these are kept
	// unswapped rather than performing and undoing the reversal.
	srcRaw [4]byte
	dstRaw [4]byte
}

func newIPv4Parser(swapped bool) *ipv4Parser {
	return &ipv4Parser{acc: NewByteAccumulator(swapped), field: ipv4FieldV}
}

// step feeds one octet to the parser, advancing through the field
// sequence exactly as spec §4.4 lays out.
func (p *ipv4Parser) step(b byte) {
	switch p.field {
	case ipv4FieldV:
		p.h.Version = HighNibble(b)
		p.h.IHL = LowNibble(b)
		p.field = ipv4FieldTOS

	case ipv4FieldTOS:
		p.h.ToS = b
		p.field = ipv4FieldLEN

	case ipv4FieldLEN:
		_ = p.acc.Push2(b)
		if p.acc.Done2() {
			// total-length is read with the swap flag inverted, then
			// restored — preserved verbatim from spec §4.4/§9.
			p.acc.ToggleSwap()
			p.h.TotalLength = p.acc.Value2()
			p.acc.ToggleSwap()
			p.acc.Reset()
			p.field = ipv4FieldID
		}

	case ipv4FieldID:
		_ = p.acc.Push2(b)
		if p.acc.Done2() {
			p.h.Identification = p.acc.Value2()
			p.acc.Reset()
			p.field = ipv4FieldFF
		}

	case ipv4FieldFF:
		_ = p.acc.Push2(b)
		if p.acc.Done2() {
			p.h.FlagsAndFrag = p.acc.Value2()
			p.acc.Reset()
			p.field = ipv4FieldTTL
		}

	case ipv4FieldTTL:
		p.h.TTL = b
		p.field = ipv4FieldPRT

	case ipv4FieldPRT:
		p.h.Protocol = TransportProtocolFrom(b)
		p.field = ipv4FieldCHECK

	case ipv4FieldCHECK:
		_ = p.acc.Push2(b)
		if p.acc.Done2() {
			p.h.Checksum = p.acc.Value2()
			p.acc.Reset()
			p.field = ipv4FieldSRC
		}

	case ipv4FieldSRC:
		_ = p.acc.Push4(b)
		if p.acc.Done4() {
			p.srcRaw = p.acc.Bytes4()
			p.acc.Reset()
			p.field = ipv4FieldDST
		}

	case ipv4FieldDST:
		_ = p.acc.Push4(b)
		if p.acc.Done4() {
			p.dstRaw = p.acc.Bytes4()
			p.acc.Reset()
			p.field = ipv4FieldUNSET
		}

	case ipv4FieldUNSET:
		// No-op per spec §4.4's edge case: feeding UNSET is silently ignored.
	}
}

func (p *ipv4Parser) header() IPv4Header {
	h := p.h
	h.Source = netip.AddrFrom4(p.srcRaw)
	h.Destination = netip.AddrFrom4(p.dstRaw)
	return h
}

// ParseIPv4Header decodes the first IPv4HeaderSize bytes of buf by
// walking the field sequence V -> TOS -> LEN -> ID -> FF -> TTL -> PRT ->
// CHECK -> SRC -> DST (spec §4.4). swapped is the byte order this
// header's fields are read in; the reference always constructs its IPv4
// parser with swapped=true regardless of the capture file's own order, a
// quirk preserved here rather than corrected.
func ParseIPv4Header(buf []byte, swapped bool) (IPv4Header, error) {
	if len(buf) < IPv4HeaderSize {
		return IPv4Header{}, fmt.Errorf("pcap: need %d bytes, got %d: %w",
			IPv4HeaderSize, len(buf), ErrIPv4HeaderTooShort)
	}

	p := newIPv4Parser(swapped)
	for _, b := range buf[:IPv4HeaderSize] {
		p.step(b)
	}
	return p.header(), nil
}
