package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rcrowley/pcapdump/internal/config"
	"github.com/rcrowley/pcapdump/internal/pcap"
)

// listCmd summarizes every record in the capture file: index, timestamp,
// captured length, and a one-line decode summary.
func listCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Summarize every record in the capture file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := config.ValidateCaptureFile(deps.Cfg); err != nil {
				return err
			}
			return runList(deps)
		},
	}
}

func runList(deps *Deps) error {
	header, records, truncated, err := loadCapture(deps.Cfg.Capture.File)
	if err != nil {
		deps.Collector.IncDecodeError("file_read")
		return err
	}
	logTruncated(deps, truncated)

	fmt.Print(pcap.RenderFileHeader(header))

	deps.Logger.Info("capture file loaded",
		slog.String("link_type", header.LinkType.String()),
		slog.Int("record_count", len(records)),
	)

	for i, record := range records {
		deps.Collector.IncRecordsDecoded(header.LinkType.String())

		dec, err := pcap.DecodeRecordForLink(record.Payload, header.LinkType, deps.Cfg.Decode.AssumeEthernet)
		if err != nil {
			deps.Logger.Warn("skipping unparseable record",
				slog.Int("record_index", i),
				slog.String("reason", err.Error()),
			)
			deps.Collector.IncDecodeError("decode_failed")
			continue
		}
		recordHeaderMetrics(deps, dec)

		fmt.Println(pcap.SummarizeRecord(i, record.Header, dec))
	}

	return nil
}
