// Package pcap implements a byte-accurate decoder for the classic libpcap
// capture file format: a 24-byte file header followed by a stream of
// variable-length records, each carrying a captured link-layer frame.
//
// The package is organized leaves-first, matching the data flow of a single
// record: a shared ByteAccumulator substrate feeds a FileHeader parser and a
// Framer (§4.2, §4.3), whose output payloads are handed to the link-layer
// Ethernet parser (§4.9), then to a network-layer parser selected by
// EtherType (ARP, IPv4, IPv6; §4.4-§4.6), then to a transport-layer parser
// selected by IP protocol number (TCP, UDP; §4.7-§4.8). DecodeRecord (§4.10)
// drives the full chain for one record.
//
// Every multi-octet field inside a capture file's metadata (file header,
// record headers) honors the byte order detected from the magic number.
// Fields inside a captured frame's Ethernet, ARP, TCP and UDP headers are
// always decoded in network byte order regardless of the file's byte
// order. ParseIPv4Header and ParseIPv6Header instead take an explicit
// swapped argument, which DecodeRecord sets to true; ParseIPv4Header reads
// the total-length field with that flag inverted, and IPv4 addresses are
// kept in wire order.
package pcap
