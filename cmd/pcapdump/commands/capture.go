package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/rcrowley/pcapdump/internal/pcap"
)

// loadCapture reads the file at path and splits it into its parsed file
// header and the sequence of records following it (spec §4.2-§4.3).
// truncated reports whether a trailing partial record was dropped
// (spec §4.3, §7): this is documented behaviour, not an error, so
// callers are expected to log/count it rather than fail on it.
func loadCapture(path string) (header pcap.FileHeader, records []pcap.Record, truncated bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return pcap.FileHeader{}, nil, false, fmt.Errorf("read capture file %s: %w", path, err)
	}

	header, err = pcap.ParseFileHeader(data)
	if err != nil {
		return pcap.FileHeader{}, nil, false, fmt.Errorf("parse file header: %w", err)
	}

	records, truncated = pcap.ParseRecords(data[pcap.HeaderSize:], header.IsSwapped())
	return header, records, truncated, nil
}

// logTruncated logs and counts a dropped trailing partial record (spec
// §4.3, §7). Truncation is documented non-error behaviour, so this never
// returns an error; it only surfaces the anomaly for observability.
func logTruncated(deps *Deps, truncated bool) {
	if !truncated {
		return
	}
	deps.Logger.Warn("trailing partial record dropped",
		slog.String("file", deps.Cfg.Capture.File),
	)
	deps.Collector.IncDecodeError("truncated")
}
