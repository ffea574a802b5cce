package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rcrowley/pcapdump/internal/config"
	"github.com/rcrowley/pcapdump/internal/pcap"
)

// dumpCmd decodes and renders a single record selected by --idx
// (spec.md §6).
func dumpCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Decode and render one record",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := config.Validate(deps.Cfg); err != nil {
				return err
			}
			return runDump(deps)
		},
	}

	cmd.Flags().IntVar(&deps.Cfg.Capture.Index, "idx", deps.Cfg.Capture.Index,
		"index of the record to decode and render")

	return cmd
}

func runDump(deps *Deps) error {
	header, records, truncated, err := loadCapture(deps.Cfg.Capture.File)
	if err != nil {
		deps.Collector.IncDecodeError("file_read")
		return err
	}
	logTruncated(deps, truncated)

	fmt.Print(pcap.RenderFileHeader(header))

	idx := deps.Cfg.Capture.Index
	if idx < 0 || idx >= len(records) {
		deps.Logger.Error("record index out of bounds",
			slog.Int("record_index", idx),
			slog.Int("record_count", len(records)),
		)
		deps.Collector.IncDecodeError("index_out_of_bounds")
		return fmt.Errorf("record index %d out of bounds (have %d records)", idx, len(records))
	}

	record := records[idx]
	deps.Collector.IncRecordsDecoded(header.LinkType.String())

	dec, err := pcap.DecodeRecordForLink(record.Payload, header.LinkType, deps.Cfg.Decode.AssumeEthernet)
	if err != nil {
		deps.Logger.Error("failed to decode record",
			slog.Int("record_index", idx),
			slog.String("reason", err.Error()),
		)
		deps.Collector.IncDecodeError("decode_failed")
		return fmt.Errorf("decode record %d: %w", idx, err)
	}

	recordHeaderMetrics(deps, dec)

	fmt.Print(pcap.RenderRecord(record.Header, dec))
	return nil
}

// recordHeaderMetrics increments the header-decoded / unsupported-hit
// counters for whichever headers DecodeRecord populated.
func recordHeaderMetrics(deps *Deps, dec pcap.DecodedRecord) {
	ether := dec.Ethernet.Type.String()

	switch {
	case dec.ARP != nil:
		deps.Collector.IncHeaderDecoded(ether, "ARP")
	case dec.IPv4 != nil:
		deps.Collector.IncHeaderDecoded(ether, dec.IPv4.Protocol.String())
		switch {
		case dec.TCP != nil:
			deps.Collector.IncHeaderDecoded(ether, "TCP")
		case dec.UDP != nil:
			deps.Collector.IncHeaderDecoded(ether, "UDP")
		}
	case dec.IPv6 != nil:
		deps.Collector.IncHeaderDecoded(ether, dec.IPv6.NextHeader.String())
	}

	if dec.Unsupported != "" {
		proto := "-"
		if dec.IPv4 != nil {
			proto = dec.IPv4.Protocol.String()
		}
		deps.Collector.IncUnsupported(ether, proto)
	}
}
