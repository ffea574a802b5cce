package pcap_test

import (
	"testing"

	"github.com/rcrowley/pcapdump/internal/pcap"
)

func ethernetHeader(typ uint16) []byte {
	return []byte{
		0xA1, 0xA1, 0xA1, 0xA1, 0xA1, 0xA1,
		0xB1, 0xB1, 0xB1, 0xB1, 0xB1, 0xB1,
		byte(typ >> 8), byte(typ),
	}
}

func TestDecodeRecordARP(t *testing.T) {
	t.Parallel()

	payload := append(ethernetHeader(0x0806), make([]byte, pcap.ARPHeaderSize)...)
	dec, err := pcap.DecodeRecord(payload)
	if err != nil {
		t.Fatalf("DecodeRecord: %v", err)
	}
	if dec.ARP == nil {
		t.Fatal("expected ARP header to be decoded")
	}
	if dec.IPv4 != nil || dec.IPv6 != nil {
		t.Error("expected no IP headers for ARP frame")
	}
}

func TestDecodeRecordIPv4TCP(t *testing.T) {
	t.Parallel()

	ipv4 := make([]byte, pcap.IPv4HeaderSize)
	ipv4[0] = 0x45 // version 4, IHL 5
	ipv4[9] = 6    // protocol: TCP
	tcp := make([]byte, pcap.TCPHeaderSize)

	payload := append(ethernetHeader(0x0800), ipv4...)
	payload = append(payload, tcp...)

	dec, err := pcap.DecodeRecord(payload)
	if err != nil {
		t.Fatalf("DecodeRecord: %v", err)
	}
	if dec.IPv4 == nil {
		t.Fatal("expected IPv4 header to be decoded")
	}
	if dec.TCP == nil {
		t.Fatal("expected TCP header to be decoded")
	}
	if dec.UDP != nil {
		t.Error("expected no UDP header for a TCP payload")
	}
}

func TestDecodeRecordIPv4UDP(t *testing.T) {
	t.Parallel()

	ipv4 := make([]byte, pcap.IPv4HeaderSize)
	ipv4[0] = 0x45
	ipv4[9] = 17 // protocol: UDP
	udp := make([]byte, pcap.UDPHeaderSize)

	payload := append(ethernetHeader(0x0800), ipv4...)
	payload = append(payload, udp...)

	dec, err := pcap.DecodeRecord(payload)
	if err != nil {
		t.Fatalf("DecodeRecord: %v", err)
	}
	if dec.UDP == nil {
		t.Fatal("expected UDP header to be decoded")
	}
	if dec.TCP != nil {
		t.Error("expected no TCP header for a UDP payload")
	}
}

func TestDecodeRecordIPv4UnsupportedTransport(t *testing.T) {
	t.Parallel()

	ipv4 := make([]byte, pcap.IPv4HeaderSize)
	ipv4[0] = 0x45
	ipv4[9] = 1 // protocol: ICMP

	payload := append(ethernetHeader(0x0800), ipv4...)

	dec, err := pcap.DecodeRecord(payload)
	if err != nil {
		t.Fatalf("DecodeRecord: %v", err)
	}
	if dec.TCP != nil || dec.UDP != nil {
		t.Error("expected no transport header for ICMP")
	}
	if dec.Unsupported == "" {
		t.Error("expected an Unsupported note for ICMP")
	}
}

func TestDecodeRecordIPv6(t *testing.T) {
	t.Parallel()

	ipv6 := make([]byte, pcap.IPv6HeaderSize)
	ipv6[0] = 0x60

	payload := append(ethernetHeader(0x86DD), ipv6...)
	dec, err := pcap.DecodeRecord(payload)
	if err != nil {
		t.Fatalf("DecodeRecord: %v", err)
	}
	if dec.IPv6 == nil {
		t.Fatal("expected IPv6 header to be decoded")
	}
}

func TestDecodeRecordUnknownEtherType(t *testing.T) {
	t.Parallel()

	payload := ethernetHeader(0x9999)
	dec, err := pcap.DecodeRecord(payload)
	if err != nil {
		t.Fatalf("DecodeRecord: %v", err)
	}
	if dec.Unsupported == "" {
		t.Error("expected an Unsupported note for an unrecognized EtherType")
	}
}

func TestDecodeRecordTooShort(t *testing.T) {
	t.Parallel()

	if _, err := pcap.DecodeRecord(make([]byte, 13)); err == nil {
		t.Fatal("expected error for payload shorter than an ethernet frame")
	}
}

func TestDecodeRecordForLinkRejectsNonEthernet(t *testing.T) {
	t.Parallel()

	payload := append(ethernetHeader(0x0806), make([]byte, pcap.ARPHeaderSize)...)
	_, err := pcap.DecodeRecordForLink(payload, pcap.LinkChaos, false)
	if err == nil {
		t.Fatal("expected error for a non-Ethernet link type")
	}
}

func TestDecodeRecordForLinkAssumeEthernetOverride(t *testing.T) {
	t.Parallel()

	payload := append(ethernetHeader(0x0806), make([]byte, pcap.ARPHeaderSize)...)
	dec, err := pcap.DecodeRecordForLink(payload, pcap.LinkChaos, true)
	if err != nil {
		t.Fatalf("DecodeRecordForLink: %v", err)
	}
	if dec.ARP == nil {
		t.Fatal("expected ARP header to be decoded when assumeEthernet forces the Ethernet path")
	}
}

func TestDecodeRecordForLinkEthernet(t *testing.T) {
	t.Parallel()

	payload := append(ethernetHeader(0x0806), make([]byte, pcap.ARPHeaderSize)...)
	dec, err := pcap.DecodeRecordForLink(payload, pcap.LinkEthernet, false)
	if err != nil {
		t.Fatalf("DecodeRecordForLink: %v", err)
	}
	if dec.ARP == nil {
		t.Fatal("expected ARP header to be decoded for a native Ethernet link type")
	}
}
