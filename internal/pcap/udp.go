package pcap

import (
	"errors"
	"fmt"
)

// UDPHeaderSize is the fixed size, in bytes, of a UDP header (spec §4.8).
const UDPHeaderSize = 8

// ErrUDPHeaderTooShort indicates fewer than UDPHeaderSize bytes were
// offered to ParseUDPHeader.
var ErrUDPHeaderTooShort = errors.New("pcap: udp header too short")

// UDPHeader is the decoded form of a UDP header (spec §3, §4.8).
type UDPHeader struct {
	SourcePort uint16
	DestPort   uint16
	Length     uint16
	Checksum   uint16
}

// ParseUDPHeader decodes the first UDPHeaderSize bytes of buf by walking
// the field sequence SRC -> DST -> LEN -> CHECK (spec §4.8), always in
// network byte order regardless of the capture file's own order.
func ParseUDPHeader(buf []byte) (UDPHeader, error) {
	if len(buf) < UDPHeaderSize {
		return UDPHeader{}, fmt.Errorf("pcap: need %d bytes, got %d: %w",
			UDPHeaderSize, len(buf), ErrUDPHeaderTooShort)
	}

	var h UDPHeader
	h.SourcePort = Combine2(buf[0], buf[1], false)
	h.DestPort = Combine2(buf[2], buf[3], false)
	h.Length = Combine2(buf[4], buf[5], false)
	h.Checksum = Combine2(buf[6], buf[7], false)

	return h, nil
}
