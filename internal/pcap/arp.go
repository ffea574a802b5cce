package pcap

import (
	"errors"
	"fmt"
	"net/netip"
)

// arpState names the fields of an ARP header in wire order (spec §4.?):
// hardware type, protocol type, hardware address size, protocol address
// size, operation, sender hardware address, sender protocol address,
// target hardware address, target protocol address.
type arpState uint8

const (
	arpHardwareType arpState = iota
	arpProtocolType
	arpHardwareSize
	arpProtocolSize
	arpOperation
	arpSenderMAC
	arpSenderIP
	arpTargetMAC
	arpTargetIP
	arpDone
)

// ARPHeaderSize is the fixed size, in bytes, of an ARP header carrying
// IPv4-over-Ethernet addresses (spec §4): 8 fixed octets plus two 6-octet
// MACs and two 4-octet IPv4 addresses.
const ARPHeaderSize = 28

// ErrARPHeaderTooShort indicates fewer than ARPHeaderSize bytes were
// offered to ParseARPHeader.
var ErrARPHeaderTooShort = errors.New("pcap: arp header too short")

// ARPOperation is the ARP opcode (request or reply).
type ARPOperation uint16

const (
	ARPRequest ARPOperation = 1
	ARPReply   ARPOperation = 2
)

// String renders the ARP opcode.
func (op ARPOperation) String() string {
	switch op {
	case ARPRequest:
		return "Request"
	case ARPReply:
		return "Reply"
	default:
		return fmt.Sprintf(unknownFmt, uint16(op))
	}
}

// ARPHeader is the decoded form of an ARP message for IPv4-over-Ethernet
// (spec §3, §4). ARP fields are always read in network byte order,
// irrespective of the capture file's own byte order (spec §4.4).
type ARPHeader struct {
	HardwareType uint16
	ProtocolType uint16
	HardwareSize uint8
	ProtocolSize uint8
	Operation    ARPOperation
	SenderMAC    MacAddress
	SenderIP     netip.Addr
	TargetMAC    MacAddress
	TargetIP     netip.Addr
}

// ParseARPHeader decodes the first ARPHeaderSize bytes of buf by walking
// arpHardwareType through arpTargetIP in order (spec §4), always in
// network byte order.
func ParseARPHeader(buf []byte) (ARPHeader, error) {
	if len(buf) < ARPHeaderSize {
		return ARPHeader{}, fmt.Errorf("pcap: need %d bytes, got %d: %w",
			ARPHeaderSize, len(buf), ErrARPHeaderTooShort)
	}

	var h ARPHeader
	h.HardwareType = Combine2(buf[0], buf[1], false)
	h.ProtocolType = Combine2(buf[2], buf[3], false)
	h.HardwareSize = buf[4]
	h.ProtocolSize = buf[5]
	h.Operation = ARPOperation(Combine2(buf[6], buf[7], false))

	senderMAC, _ := NewMacAddress(buf[8:14])
	h.SenderMAC = senderMAC
	h.SenderIP = netip.AddrFrom4([4]byte{buf[14], buf[15], buf[16], buf[17]})

	targetMAC, _ := NewMacAddress(buf[18:24])
	h.TargetMAC = targetMAC
	h.TargetIP = netip.AddrFrom4([4]byte{buf[24], buf[25], buf[26], buf[27]})

	return h, nil
}
