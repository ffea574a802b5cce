package pcap_test

import (
	"testing"

	"github.com/rcrowley/pcapdump/internal/pcap"
)

// TestMacAddressString exercises spec §8 scenario 2.
func TestMacAddressString(t *testing.T) {
	t.Parallel()

	m, err := pcap.NewMacAddress([]byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0x00})
	if err != nil {
		t.Fatalf("NewMacAddress: %v", err)
	}
	if got, want := m.String(), "DE:AD:BE:EF:00:00"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestNewMacAddressTooShort(t *testing.T) {
	t.Parallel()

	if _, err := pcap.NewMacAddress([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected error for short input")
	}
}

// TestParseEthernetFrame exercises spec §8 scenario 3.
func TestParseEthernetFrame(t *testing.T) {
	t.Parallel()

	buf := []byte{
		0xA1, 0xA1, 0xA1, 0xA1, 0xA1, 0xA1,
		0xB1, 0xB1, 0xB1, 0xB1, 0xB1, 0xB1,
		0x08, 0x00,
	}

	f, err := pcap.ParseEthernetFrame(buf)
	if err != nil {
		t.Fatalf("ParseEthernetFrame: %v", err)
	}
	if got, want := f.Destination.String(), "A1:A1:A1:A1:A1:A1"; got != want {
		t.Errorf("Destination = %q, want %q", got, want)
	}
	if got, want := f.Source.String(), "B1:B1:B1:B1:B1:B1"; got != want {
		t.Errorf("Source = %q, want %q", got, want)
	}
	if f.Type.Kind != pcap.EtherIPv4 {
		t.Errorf("Type.Kind = %v, want EtherIPv4", f.Type.Kind)
	}
	if f.Type.IsARP() {
		t.Error("IsARP() = true, want false")
	}
	if f.Type.Is8023() {
		t.Error("Is8023() = true, want false")
	}
}

func TestParseEthernetFrameTooShort(t *testing.T) {
	t.Parallel()

	if _, err := pcap.ParseEthernetFrame(make([]byte, 13)); err == nil {
		t.Fatal("expected error for short input")
	}
}

func TestEtherTypeClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		word   uint16
		kind   pcap.EtherTypeKind
		is8023 bool
		isARP  bool
	}{
		{"length word", 1500, pcap.Ether8023Length, true, false},
		{"length word zero", 0, pcap.Ether8023Length, true, false},
		{"ipv4", 0x0800, pcap.EtherIPv4, false, false},
		{"arp", 0x0806, pcap.EtherARP, false, true},
		{"ipx", 0x8137, pcap.EtherIPX, false, false},
		{"ipv6", 0x86DD, pcap.EtherIPv6, false, false},
		{"unknown", 0x1234, pcap.EtherUnknown, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			buf := []byte{
				0, 0, 0, 0, 0, 0,
				0, 0, 0, 0, 0, 0,
				byte(tt.word >> 8), byte(tt.word),
			}
			f, err := pcap.ParseEthernetFrame(buf)
			if err != nil {
				t.Fatalf("ParseEthernetFrame: %v", err)
			}
			if f.Type.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", f.Type.Kind, tt.kind)
			}
			if f.Type.Is8023() != tt.is8023 {
				t.Errorf("Is8023() = %v, want %v", f.Type.Is8023(), tt.is8023)
			}
			if f.Type.IsARP() != tt.isARP {
				t.Errorf("IsARP() = %v, want %v", f.Type.IsARP(), tt.isARP)
			}
		})
	}
}

func TestEtherTypeString(t *testing.T) {
	t.Parallel()

	if got, want := (pcap.EtherType{Kind: pcap.EtherIPv4}).String(), "IPv4"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := (pcap.EtherType{Kind: pcap.Ether8023Length, Raw: 46}).String(), "IEEE 802.3 Length(46)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
