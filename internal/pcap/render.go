package pcap

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

const valueNA = "N/A"

// RenderFileHeader renders a capture file's preamble as a multi-line
// block, mirroring the original implementation's FileHeader Display impl
// (Magic/Version/Snap Length/Link/FCS, in that order).
func RenderFileHeader(h FileHeader) string {
	var buf strings.Builder
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "Magic:\t%s\n", h.Magic)
	fmt.Fprintf(w, "Version:\t%d.%d\n", h.MajorVersion, h.MinorVersion)
	fmt.Fprintf(w, "Snap Length:\t%d\n", h.SnapLen)
	fmt.Fprintf(w, "Link:\t%s\n", h.LinkType)
	fmt.Fprintf(w, "FCS:\t%d\n", h.FCSLen())

	w.Flush()
	return buf.String()
}

// RenderRecord renders one decoded record as a multi-line tabwriter
// detail block: the record header, the link-layer frame, and whichever
// network/transport headers DecodeRecord populated.
func RenderRecord(header RecordHeader, dec DecodedRecord) string {
	var buf strings.Builder
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "Timestamp:\t%d.%d\n", header.TimestampSec, header.TimestampFrac)
	fmt.Fprintf(w, "Captured Length:\t%d\n", header.CapturedLen)
	fmt.Fprintf(w, "Original Length:\t%d\n", header.OriginalLen)
	renderEthernet(w, dec.Ethernet)

	switch {
	case dec.ARP != nil:
		renderARP(w, *dec.ARP)
	case dec.IPv4 != nil:
		renderIPv4(w, *dec.IPv4)
		switch {
		case dec.TCP != nil:
			renderTCP(w, *dec.TCP)
		case dec.UDP != nil:
			renderUDP(w, *dec.UDP)
		}
	case dec.IPv6 != nil:
		renderIPv6(w, *dec.IPv6)
	}

	if dec.Unsupported != "" {
		fmt.Fprintf(w, "Note:\t%s\n", dec.Unsupported)
	}

	w.Flush()
	return buf.String()
}

func renderEthernet(w *tabwriter.Writer, f EthernetFrame) {
	fmt.Fprintf(w, "Destination MAC:\t%s\n", f.Destination)
	fmt.Fprintf(w, "Source MAC:\t%s\n", f.Source)
	fmt.Fprintf(w, "EtherType:\t%s\n", f.Type)
}

func renderARP(w *tabwriter.Writer, h ARPHeader) {
	fmt.Fprintf(w, "ARP Operation:\t%s\n", h.Operation)
	fmt.Fprintf(w, "Sender MAC:\t%s\n", h.SenderMAC)
	fmt.Fprintf(w, "Sender IP:\t%s\n", h.SenderIP)
	fmt.Fprintf(w, "Target MAC:\t%s\n", h.TargetMAC)
	fmt.Fprintf(w, "Target IP:\t%s\n", h.TargetIP)
}

func renderIPv4(w *tabwriter.Writer, h IPv4Header) {
	fmt.Fprintf(w, "IP Version:\t%d\n", h.Version)
	fmt.Fprintf(w, "Header Length:\t%d\n", h.IHL)
	fmt.Fprintf(w, "Total Length:\t%d\n", h.TotalLength)
	fmt.Fprintf(w, "TTL:\t%d\n", h.TTL)
	fmt.Fprintf(w, "Protocol:\t%s\n", h.Protocol)
	fmt.Fprintf(w, "Source:\t%s\n", h.Source)
	fmt.Fprintf(w, "Destination:\t%s\n", h.Destination)
}

func renderIPv6(w *tabwriter.Writer, h IPv6Header) {
	fmt.Fprintf(w, "IP Version:\t%d\n", h.Version)
	fmt.Fprintf(w, "Payload Length:\t%d\n", h.PayloadLength)
	fmt.Fprintf(w, "Next Header:\t%s\n", h.NextHeader)
	fmt.Fprintf(w, "Hop Limit:\t%d\n", h.HopLimit)
	fmt.Fprintf(w, "Source:\t%s\n", h.Source)
	fmt.Fprintf(w, "Destination:\t%s\n", h.Destination)
}

func renderTCP(w *tabwriter.Writer, h TCPHeader) {
	fmt.Fprintf(w, "TCP Source Port:\t%d\n", h.SourcePort)
	fmt.Fprintf(w, "TCP Dest Port:\t%d\n", h.DestPort)
	fmt.Fprintf(w, "Sequence:\t%d\n", h.SeqNum)
	fmt.Fprintf(w, "Acknowledgment:\t%d\n", h.AckNum)
	fmt.Fprintf(w, "Flags:\t%#010b\n", h.Flags)
	fmt.Fprintf(w, "Window Size:\t%d\n", h.WindowSize)
}

func renderUDP(w *tabwriter.Writer, h UDPHeader) {
	fmt.Fprintf(w, "UDP Source Port:\t%d\n", h.SourcePort)
	fmt.Fprintf(w, "UDP Dest Port:\t%d\n", h.DestPort)
	fmt.Fprintf(w, "Length:\t%d\n", h.Length)
}

// SummarizeRecord renders a single-line summary of a decoded record,
// suitable for a record-listing table.
func SummarizeRecord(index int, header RecordHeader, dec DecodedRecord) string {
	src, dst, proto := valueNA, valueNA, valueNA

	switch {
	case dec.ARP != nil:
		src, dst, proto = dec.ARP.SenderIP.String(), dec.ARP.TargetIP.String(), "ARP"
	case dec.IPv4 != nil:
		src, dst, proto = dec.IPv4.Source.String(), dec.IPv4.Destination.String(), dec.IPv4.Protocol.String()
	case dec.IPv6 != nil:
		src, dst, proto = dec.IPv6.Source.String(), dec.IPv6.Destination.String(), dec.IPv6.NextHeader.String()
	}

	return fmt.Sprintf("%6d  %d.%d  %-21s %-21s %-10s len=%d", index, header.TimestampSec, header.TimestampFrac,
		src, dst, proto, header.CapturedLen)
}
