package pcap

// unknownStr is the string representation for unrecognized enum values
// that have no associated numeric code to report (e.g. LinkType).
const unknownStr = "Unknown"

// unknownFmt is the format string for unrecognized enum values that do
// carry a numeric code worth reporting.
const unknownFmt = "Unknown(%d)"
