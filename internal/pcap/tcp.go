package pcap

import (
	"errors"
	"fmt"
)

// TCPHeaderSize is the fixed size, in bytes, of a TCP header without
// options (spec §4.7).
const TCPHeaderSize = 20

// ErrTCPHeaderTooShort indicates fewer than TCPHeaderSize bytes were
// offered to ParseTCPHeader.
var ErrTCPHeaderTooShort = errors.New("pcap: tcp header too short")

// TCPHeader is the decoded form of a TCP header (spec §3, §4.7). Options
// beyond the fixed 20 bytes are never decoded.
type TCPHeader struct {
	SourcePort    uint16
	DestPort      uint16
	SeqNum        uint32
	AckNum        uint32
	DataOffset    uint8
	Flags         uint8
	WindowSize    uint16
	Checksum      uint16
	UrgentPointer uint16
}

// ParseTCPHeader decodes the first TCPHeaderSize bytes of buf by walking
// the field sequence SRC -> DST -> SEQ -> ACK -> HLEN -> FLAGS -> WSIZE
// -> CHECK -> UPOINT (spec §4.7), always in network byte order
// regardless of the capture file's own order.
func ParseTCPHeader(buf []byte) (TCPHeader, error) {
	if len(buf) < TCPHeaderSize {
		return TCPHeader{}, fmt.Errorf("pcap: need %d bytes, got %d: %w",
			TCPHeaderSize, len(buf), ErrTCPHeaderTooShort)
	}

	var h TCPHeader
	h.SourcePort = Combine2(buf[0], buf[1], false)
	h.DestPort = Combine2(buf[2], buf[3], false)
	h.SeqNum = Combine4(buf[4], buf[5], buf[6], buf[7], false)
	h.AckNum = Combine4(buf[8], buf[9], buf[10], buf[11], false)
	// Data offset is the high nibble of the 13th octet; the low nibble
	// (reserved bits plus the NS flag) is discarded.
	h.DataOffset = HighNibble(buf[12])
	h.Flags = buf[13]
	h.WindowSize = Combine2(buf[14], buf[15], false)
	h.Checksum = Combine2(buf[16], buf[17], false)
	h.UrgentPointer = Combine2(buf[18], buf[19], false)

	return h, nil
}
