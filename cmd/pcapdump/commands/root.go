// Package commands implements the pcapdump cobra command tree: dump,
// list, and version.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcrowley/pcapdump/internal/config"
	pcapmetrics "github.com/rcrowley/pcapdump/internal/metrics"
)

// Deps bundles the dependencies every subcommand needs: the merged
// configuration, a structured logger, and the decode metrics collector.
// Subcommands read and, for capture.file/capture.idx, override fields on
// Cfg from their own flags before running.
type Deps struct {
	Cfg       *config.Config
	Logger    *slog.Logger
	Collector *pcapmetrics.Collector
}

// rootCmd is the top-level cobra command for pcapdump.
var rootCmd = &cobra.Command{
	Use:   "pcapdump",
	Short: "Decode and inspect libpcap capture files",
	Long:  "pcapdump decodes libpcap capture files record by record: Ethernet, ARP, IPv4, IPv6, TCP, and UDP headers.",
	// Silence cobra's built-in usage/error printing so we control it.
	SilenceUsage:  true,
	SilenceErrors: true,
}

// NewRootCommand builds the pcapdump command tree bound to deps and
// returns it for execution. Flags on the root and each subcommand bind
// directly into deps.Cfg, so cobra's parsed values are the final layer
// over the file/env/default layers loaded by config.Load.
func NewRootCommand(deps *Deps) *cobra.Command {
	rootCmd.PersistentFlags().StringVar(&deps.Cfg.Capture.File, "file", deps.Cfg.Capture.File,
		"path to the pcap capture file")

	rootCmd.AddCommand(dumpCmd(deps))
	rootCmd.AddCommand(listCmd(deps))
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

// Execute runs cmd and exits with code 1 on error.
func Execute(cmd *cobra.Command) {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
