// pcapdump decodes libpcap capture files: Ethernet, ARP, IPv4, IPv6, TCP,
// and UDP headers, record by record.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rcrowley/pcapdump/cmd/pcapdump/commands"
	"github.com/rcrowley/pcapdump/internal/config"
	pcapmetrics "github.com/rcrowley/pcapdump/internal/metrics"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to configuration file (YAML)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("failed to load configuration",
			slog.String("error", err.Error()),
		)
		return 1
	}

	logLevel := new(slog.LevelVar)
	logLevel.Set(config.ParseLogLevel(cfg.Log.Level))
	logger := newLogger(cfg.Log, logLevel)

	reg := prometheus.NewRegistry()
	collector := pcapmetrics.NewCollector(reg)

	deps := &commands.Deps{Cfg: cfg, Logger: logger, Collector: collector}
	cmd := commands.NewRootCommand(deps)
	cmd.SetArgs(flag.Args())

	if err := runWithMetrics(cfg, reg, logger, cmd); err != nil {
		logger.Error("pcapdump exited with error", slog.String("error", err.Error()))
		return 1
	}

	return 0
}

// runWithMetrics runs the metrics HTTP listener alongside cmd's execution
// using an errgroup over a signal-aware context; both are cancelled
// together once cmd completes or SIGINT/SIGTERM arrives.
func runWithMetrics(cfg *config.Config, reg *prometheus.Registry, logger *slog.Logger, cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	metricsSrv := newMetricsServer(cfg.Metrics, reg)
	lc := net.ListenConfig{}

	g.Go(func() error {
		logger.Info("metrics server listening",
			slog.String("addr", cfg.Metrics.Addr),
			slog.String("path", cfg.Metrics.Path),
		)
		return listenAndServe(gCtx, &lc, metricsSrv, cfg.Metrics.Addr)
	})

	cmdErr := make(chan error, 1)
	g.Go(func() error {
		cmdErr <- cmd.ExecuteContext(gCtx)
		return nil
	})

	g.Go(func() error {
		select {
		case err := <-cmdErr:
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if shutErr := metricsSrv.Shutdown(shutdownCtx); shutErr != nil {
				return errors.Join(err, fmt.Errorf("shutdown metrics server: %w", shutErr))
			}
			return err
		case <-gCtx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if shutErr := metricsSrv.Shutdown(shutdownCtx); shutErr != nil {
				return fmt.Errorf("shutdown metrics server: %w", shutErr)
			}
			return nil
		}
	})

	if err := g.Wait(); err != nil {
		return err
	}
	return nil
}

// listenAndServe creates a TCP listener via lc and serves HTTP requests
// until srv is shut down. ctx governs only the listen call.
func listenAndServe(ctx context.Context, lc *net.ListenConfig, srv *http.Server, addr string) error {
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve on %s: %w", addr, err)
	}
	return nil
}

// newMetricsServer creates an HTTP server for the Prometheus metrics endpoint.
func newMetricsServer(cfg config.MetricsConfig, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// newLogger creates a structured logger using a shared LevelVar.
func newLogger(cfg config.LogConfig, level *slog.LevelVar) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch cfg.Format {
	case "text":
		handler = slog.NewTextHandler(os.Stderr, opts)
	default:
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
