package pcap_test

import (
	"bytes"
	"testing"

	"github.com/rcrowley/pcapdump/internal/pcap"
)

// buildRecord returns the wire bytes for one record: a 16-byte header
// (unswapped) followed by payload.
func buildRecord(tsSec, tsFrac, origLen uint32, payload []byte) []byte {
	buf := make([]byte, pcap.RecordHeaderSize+len(payload))
	put4 := func(off int, v uint32) {
		buf[off] = byte(v >> 24)
		buf[off+1] = byte(v >> 16)
		buf[off+2] = byte(v >> 8)
		buf[off+3] = byte(v)
	}
	put4(0, tsSec)
	put4(4, tsFrac)
	put4(8, uint32(len(payload)))
	put4(12, origLen)
	copy(buf[pcap.RecordHeaderSize:], payload)
	return buf
}

// TestRecordHeaderUnswapped exercises spec §8 scenario 6.
func TestRecordHeaderUnswapped(t *testing.T) {
	t.Parallel()

	buf := []byte{
		0x00, 0x00, 0x00, 0x01,
		0x00, 0x00, 0x00, 0x02,
		0x00, 0x00, 0x00, 0xAA,
		0x00, 0x00, 0x00, 0xAA,
	}
	// The header declares 0xAA captured octets, so supply that payload.
	buf = append(buf, make([]byte, 0xAA)...)
	records, truncated := pcap.ParseRecords(buf, false)
	if truncated {
		t.Fatal("expected no trailing partial record")
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	h := records[0].Header
	if h.TimestampSec != 1 || h.TimestampFrac != 2 || h.CapturedLen != 0xAA || h.OriginalLen != 0xAA {
		t.Errorf("header = %+v, want {1 2 0xAA 0xAA}", h)
	}
}

func TestParseRecordsExactCount(t *testing.T) {
	t.Parallel()

	lens := []int{0, 1, 14, 60}
	var data []byte
	for i, l := range lens {
		payload := bytes.Repeat([]byte{byte(i + 1)}, l)
		data = append(data, buildRecord(uint32(i), 0, uint32(l), payload)...)
	}

	records, truncated := pcap.ParseRecords(data, false)
	if truncated {
		t.Fatal("expected no truncation for exact-length input")
	}
	if len(records) != len(lens) {
		t.Fatalf("len(records) = %d, want %d", len(records), len(lens))
	}
	for i, l := range lens {
		if len(records[i].Payload) != l {
			t.Errorf("records[%d].Payload len = %d, want %d", i, len(records[i].Payload), l)
		}
		if records[i].Header.TimestampSec != uint32(i) {
			t.Errorf("records[%d].Header.TimestampSec = %d, want %d", i, records[i].Header.TimestampSec, i)
		}
	}
}

func TestParseRecordsTrailingPartialDropped(t *testing.T) {
	t.Parallel()

	full := buildRecord(0, 0, 4, []byte{1, 2, 3, 4})
	partialHeader := []byte{0x00, 0x00, 0x00, 0x01, 0x00, 0x00}
	data := append(append([]byte{}, full...), partialHeader...)

	records, truncated := pcap.ParseRecords(data, false)
	if !truncated {
		t.Error("expected Truncated true for a dangling partial header")
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1 (partial record dropped)", len(records))
	}
}

func TestParseRecordsTrailingPartialBodyDropped(t *testing.T) {
	t.Parallel()

	full := buildRecord(0, 0, 4, []byte{1, 2, 3, 4})
	partial := buildRecord(1, 0, 10, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	// Truncate the second record's body to 3 of its declared 10 bytes.
	partial = partial[:pcap.RecordHeaderSize+3]
	data := append(append([]byte{}, full...), partial...)

	records, truncated := pcap.ParseRecords(data, false)
	if !truncated {
		t.Error("expected Truncated true for a dangling partial body")
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1 (partial record dropped)", len(records))
	}
}

func TestParseRecordsZeroLengthRecord(t *testing.T) {
	t.Parallel()

	zero := buildRecord(0, 0, 0, nil)
	next := buildRecord(1, 0, 2, []byte{0xAB, 0xCD})
	data := append(append([]byte{}, zero...), next...)

	records, truncated := pcap.ParseRecords(data, false)
	if truncated {
		t.Fatal("unexpected truncation")
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if len(records[0].Payload) != 0 {
		t.Errorf("records[0].Payload len = %d, want 0", len(records[0].Payload))
	}
	if !bytes.Equal(records[1].Payload, []byte{0xAB, 0xCD}) {
		t.Errorf("records[1].Payload = %x, want abcd", records[1].Payload)
	}
}
