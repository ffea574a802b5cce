package pcap_test

import (
	"testing"

	"github.com/rcrowley/pcapdump/internal/pcap"
)

// TestTransportProtocolMapping exercises spec §8 scenario 5.
func TestTransportProtocolMapping(t *testing.T) {
	t.Parallel()

	if p := pcap.TransportProtocolFrom(6); !p.IsTCP() {
		t.Errorf("from(6) = %v, want TCP", p)
	}
	if p := pcap.TransportProtocolFrom(17); !p.IsUDP() {
		t.Errorf("from(17) = %v, want UDP", p)
	}
	p := pcap.TransportProtocolFrom(18)
	if !p.IsUnknown() {
		t.Errorf("from(18) = %v, want unknown", p)
	}
	if got, want := p.String(), "Unknown(18)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

// TestTransportProtocolUnknownRange exercises spec §8's quantified
// invariant over every protocol number not in the named set.
func TestTransportProtocolUnknownRange(t *testing.T) {
	t.Parallel()

	named := map[uint8]bool{
		0: true, 1: true, 2: true, 3: true, 4: true, 5: true,
		6: true, 7: true, 8: true, 9: true, 11: true, 17: true,
	}
	for p := 0; p <= 255; p++ {
		b := uint8(p)
		got := pcap.TransportProtocolFrom(b)
		if named[b] {
			if got.IsUnknown() {
				t.Errorf("from(%d) unexpectedly unknown", b)
			}
			continue
		}
		if !got.IsUnknown() {
			t.Errorf("from(%d) = %v, want unknown", b, got)
		}
		if got.Number() != b {
			t.Errorf("from(%d).Number() = %d, want %d", b, got.Number(), b)
		}
	}
}

func TestTransportProtocolNames(t *testing.T) {
	t.Parallel()

	tests := map[uint8]string{
		0:  "IPv6 Hop-By-Hop Option",
		1:  "ICMP",
		6:  "TCP",
		17: "UDP",
	}
	for b, want := range tests {
		if got := pcap.TransportProtocolFrom(b).String(); got != want {
			t.Errorf("from(%d).String() = %q, want %q", b, got, want)
		}
	}
}
