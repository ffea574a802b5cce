package pcap

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// HeaderSize is the fixed size, in bytes, of the capture file preamble
// (spec §4.2).
const HeaderSize = 24

// ErrShortPreamble indicates fewer than HeaderSize bytes were offered to
// ParseFileHeader (spec §7, "Input-truncation errors").
var ErrShortPreamble = errors.New("pcap: short file preamble")

// MagicKind classifies a capture file's magic number (spec §4.2).
type MagicKind uint8

const (
	// MagicCanonical is the standard libpcap magic, unswapped.
	MagicCanonical MagicKind = iota
	// MagicSwapped is the standard libpcap magic with reversed byte order.
	MagicSwapped
	// MagicNextGen is the block-structured next-generation capture format
	// (pcapng). Detected and reported, never decoded further (Non-goal).
	MagicNextGen
	// MagicUnknown is any value that does not match a recognized magic.
	MagicUnknown
)

// Magic number constants, always classified in canonical (big-endian)
// byte order (spec §6).
const (
	magicCanonicalValue uint32 = 0xA1B2C3D4
	magicSwappedValue   uint32 = 0xD4C3B2A1
	magicNextGenValue   uint32 = 0x0A0D0D0A
)

// magicKindStrings mirrors the four-way rendering in the original Rust
// implementation's MagicNumber::Display (pcaprs pcap/src/file.rs), kept so
// rendered output matches the lineage this spec was distilled from.
var magicKindStrings = [...]string{
	MagicCanonical: "PCAP",
	MagicSwapped:   "PCAP (swapped)",
	MagicNextGen:   "PCAPNG (not supported)",
	MagicUnknown:   "Invalid Magic Number",
}

// String renders the magic kind using the same four strings as the
// original implementation's Display impl.
func (k MagicKind) String() string {
	if int(k) < len(magicKindStrings) {
		return magicKindStrings[k]
	}
	return fmt.Sprintf(unknownFmt, uint8(k))
}

// classifyMagic returns the MagicKind for a 32-bit value read in canonical
// (big-endian) byte order.
func classifyMagic(v uint32) MagicKind {
	switch v {
	case magicCanonicalValue:
		return MagicCanonical
	case magicSwappedValue:
		return MagicSwapped
	case magicNextGenValue:
		return MagicNextGen
	default:
		return MagicUnknown
	}
}

// LinkType tags the 16-bit link-layer type word carried in the file header
// (spec §4.2). Only LinkEthernet is wired to a link-layer decoder; every
// other value is recognized and named but its frames are not decoded.
type LinkType uint16

const (
	LinkNull               LinkType = 0
	LinkEthernet           LinkType = 1
	LinkExperimentalEthern LinkType = 2
	LinkAX25               LinkType = 3
	LinkProNET             LinkType = 4
	LinkChaos              LinkType = 5
)

var linkTypeNames = map[LinkType]string{
	LinkNull:               "Null",
	LinkEthernet:           "Ethernet",
	LinkExperimentalEthern: "Experimental Ethernet",
	LinkAX25:               "AX.25",
	LinkProNET:             "ProNET",
	LinkChaos:              "Chaos",
}

// String renders the link type name, or "Unknown" for any value not in
// the table above (spec §4.2).
func (lt LinkType) String() string {
	if name, ok := linkTypeNames[lt]; ok {
		return name
	}
	return unknownStr
}

// FileHeader is the parsed form of the 24-byte capture file preamble
// (spec §3, §4.2). It is built once from the first HeaderSize bytes and is
// immutable thereafter.
type FileHeader struct {
	Magic        MagicKind
	MajorVersion uint16
	MinorVersion uint16
	SnapLen      uint32
	LinkType     LinkType
	fcsLen       uint8
}

// IsSwapped reports whether multi-octet fields in this file's metadata
// (file header and record headers) should be read in reversed byte order.
// Per spec §9 Open Question 3, next-generation captures report false here:
// that format carries its own per-block byte-order signalling, which this
// decoder does not implement (Non-goal).
func (h FileHeader) IsSwapped() bool {
	return h.Magic == MagicSwapped
}

// FCSLen returns the Frame Check Sequence length recorded in the header,
// or 0 if the "present" flag (bit 0 of the FCS nibble) is clear (spec
// §4.2).
func (h FileHeader) FCSLen() uint8 {
	return h.fcsLen
}

// ParseFileHeader decodes the first HeaderSize bytes of buf into a
// FileHeader. Returns ErrShortPreamble if buf is shorter than HeaderSize.
func ParseFileHeader(buf []byte) (FileHeader, error) {
	if len(buf) < HeaderSize {
		return FileHeader{}, fmt.Errorf("pcap: need %d bytes, got %d: %w", HeaderSize, len(buf), ErrShortPreamble)
	}

	magic := classifyMagic(binary.BigEndian.Uint32(buf[0:4]))
	h := FileHeader{Magic: magic}
	swapped := h.IsSwapped()

	h.MajorVersion = Combine2(buf[4], buf[5], swapped)
	h.MinorVersion = Combine2(buf[6], buf[7], swapped)
	// Bytes 8-11 (time zone offset) and 12-15 (timestamp accuracy) are
	// reserved fields from the original tcpdump format; not surfaced.
	h.SnapLen = Combine4(buf[16], buf[17], buf[18], buf[19], swapped)

	// The link-type word occupies the low 16 bits of the final quadword in
	// canonical order, and the high 16 bits when swapped (spec §4.2).
	var reservedOctet byte
	if swapped {
		h.LinkType = LinkType(Combine2(buf[20], buf[21], swapped))
		reservedOctet = buf[23]
	} else {
		h.LinkType = LinkType(Combine2(buf[22], buf[23], swapped))
		reservedOctet = buf[20]
	}

	// The FCS length lives in the high nibble of the reserved octet, and is
	// only meaningful if bit 0 of that nibble (the "present" flag) is set.
	nibble := HighNibble(reservedOctet)
	if Bit(nibble, 0) {
		h.fcsLen = nibble
	}

	return h, nil
}
