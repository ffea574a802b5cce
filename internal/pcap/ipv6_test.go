package pcap_test

import (
	"net/netip"
	"testing"

	"github.com/rcrowley/pcapdump/internal/pcap"
)

func TestParseIPv6Header(t *testing.T) {
	t.Parallel()

	buf := make([]byte, pcap.IPv6HeaderSize)
	buf[0] = 0x60 // version 6, flow high nibble 0
	buf[5] = 0x10 // payload length low byte = 16
	buf[6] = 6    // next header: TCP
	buf[7] = 64   // hop limit

	src := netip.MustParseAddr("2001:db8::1")
	dst := netip.MustParseAddr("2001:db8::2")
	srcBytes := src.As16()
	dstBytes := dst.As16()
	copy(buf[8:24], srcBytes[:])
	copy(buf[24:40], dstBytes[:])

	h, err := pcap.ParseIPv6Header(buf, false)
	if err != nil {
		t.Fatalf("ParseIPv6Header: %v", err)
	}
	if h.Version != 6 {
		t.Errorf("Version = %d, want 6", h.Version)
	}
	if h.PayloadLength != 16 {
		t.Errorf("PayloadLength = %d, want 16", h.PayloadLength)
	}
	if !h.NextHeader.IsTCP() {
		t.Errorf("NextHeader = %v, want TCP", h.NextHeader)
	}
	if h.HopLimit != 64 {
		t.Errorf("HopLimit = %d, want 64", h.HopLimit)
	}
	if h.Source != src {
		t.Errorf("Source = %v, want %v", h.Source, src)
	}
	if h.Destination != dst {
		t.Errorf("Destination = %v, want %v", h.Destination, dst)
	}
}

func TestParseIPv6HeaderFlowLabel(t *testing.T) {
	t.Parallel()

	buf := make([]byte, pcap.IPv6HeaderSize)
	buf[0] = 0x6A // version 6, flow high nibble 0xA
	buf[1], buf[2], buf[3] = 0xBC, 0xDE, 0xF0

	h, err := pcap.ParseIPv6Header(buf, false)
	if err != nil {
		t.Fatalf("ParseIPv6Header: %v", err)
	}
	if want := uint32(0x0ABCDEF0); h.FlowLabel != want {
		t.Errorf("FlowLabel = %#x, want %#x", h.FlowLabel, want)
	}
}

func TestParseIPv6HeaderTooShort(t *testing.T) {
	t.Parallel()

	if _, err := pcap.ParseIPv6Header(make([]byte, 39), false); err == nil {
		t.Fatal("expected error for short input")
	}
}
