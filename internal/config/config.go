// Package config manages pcapdump configuration using koanf/v2.
//
// Supports YAML files, environment variables, and CLI flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// -------------------------------------------------------------------------
// Configuration Structures
// -------------------------------------------------------------------------

// Config holds the complete pcapdump configuration.
type Config struct {
	Capture CaptureConfig `koanf:"capture"`
	Decode  DecodeConfig  `koanf:"decode"`
	Metrics MetricsConfig `koanf:"metrics"`
	Log     LogConfig     `koanf:"log"`
}

// CaptureConfig holds the input-file selection for the dump/list commands.
type CaptureConfig struct {
	// File is the path to the pcap capture file to read (spec §6 --file).
	File string `koanf:"file"`

	// Index selects which record to decode and render for the dump
	// command (spec §6 --idx). -1 means "not set" and is rejected by
	// Validate when dump is invoked without an explicit index.
	Index int `koanf:"idx"`
}

// DecodeConfig holds knobs that shape link-layer decoding.
type DecodeConfig struct {
	// AssumeEthernet forces every record's link-layer framing to be
	// treated as Ethernet (spec §4.10's dispatch assumes this already;
	// the knob exists for capture files whose global header reports a
	// link type pcapdump does not otherwise recognize).
	AssumeEthernet bool `koanf:"assume_ethernet"`
}

// MetricsConfig holds the Prometheus metrics endpoint configuration.
type MetricsConfig struct {
	// Addr is the HTTP listen address for the metrics endpoint (e.g., ":9100").
	Addr string `koanf:"addr"`
	// Path is the URL path for the metrics endpoint (e.g., "/metrics").
	Path string `koanf:"path"`
}

// LogConfig holds the logging configuration.
type LogConfig struct {
	// Level is the log level: "debug", "info", "warn", "error".
	Level string `koanf:"level"`
	// Format is the log output format: "json" or "text".
	Format string `koanf:"format"`
}

// -------------------------------------------------------------------------
// Defaults
// -------------------------------------------------------------------------

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Capture: CaptureConfig{
			Index: -1,
		},
		Decode: DecodeConfig{
			AssumeEthernet: true,
		},
		Metrics: MetricsConfig{
			Addr: ":9100",
			Path: "/metrics",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// -------------------------------------------------------------------------
// Loader
// -------------------------------------------------------------------------

// envPrefix is the environment variable prefix for pcapdump configuration.
// Variables are named PCAPDUMP_<section>_<key>, e.g., PCAPDUMP_METRICS_ADDR.
const envPrefix = "PCAPDUMP_"

// Load reads configuration from a YAML file at path, overlays environment
// variable overrides (PCAPDUMP_ prefix), and merges on top of
// DefaultConfig(). Missing fields inherit defaults. An empty path skips
// the file layer; a non-empty path that cannot be read or parsed is an
// error.
//
// Environment variable mapping:
//
//	PCAPDUMP_CAPTURE_FILE       -> capture.file
//	PCAPDUMP_CAPTURE_IDX        -> capture.idx
//	PCAPDUMP_DECODE_ASSUME_ETHERNET -> decode.assume_ethernet
//	PCAPDUMP_METRICS_ADDR       -> metrics.addr
//	PCAPDUMP_METRICS_PATH       -> metrics.path
//	PCAPDUMP_LOG_LEVEL          -> log.level
//	PCAPDUMP_LOG_FORMAT         -> log.format
//
// Uses koanf/v2 with file + env providers and YAML parser.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Load defaults first.
	defaults := DefaultConfig()
	if err := loadDefaults(k, defaults); err != nil {
		return nil, fmt.Errorf("load config defaults: %w", err)
	}

	// Load YAML file on top of defaults, if one was given.
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config from %s: %w", path, err)
		}
	}

	// Load environment variable overrides on top of YAML.
	// PCAPDUMP_METRICS_ADDR -> metrics.addr (strip prefix, lowercase, _ -> .).
	if err := k.Load(env.Provider(envPrefix, ".", envKeyMapper), nil); err != nil {
		return nil, fmt.Errorf("load env overrides: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}

// envKeyMapper transforms PCAPDUMP_METRICS_ADDR -> metrics.addr.
// Strips the PCAPDUMP_ prefix, lowercases, and replaces the first _ (the
// section separator) with ., so keys such as assume_ethernet keep theirs.
func envKeyMapper(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	s = strings.ToLower(s)
	return strings.Replace(s, "_", ".", 1)
}

// loadDefaults marshals the default config into koanf as the base layer.
func loadDefaults(k *koanf.Koanf, defaults *Config) error {
	defaultMap := map[string]any{
		"capture.file":           defaults.Capture.File,
		"capture.idx":            defaults.Capture.Index,
		"decode.assume_ethernet": defaults.Decode.AssumeEthernet,
		"metrics.addr":           defaults.Metrics.Addr,
		"metrics.path":           defaults.Metrics.Path,
		"log.level":              defaults.Log.Level,
		"log.format":             defaults.Log.Format,
	}

	for key, val := range defaultMap {
		if err := k.Set(key, val); err != nil {
			return fmt.Errorf("set default %s: %w", key, err)
		}
	}

	return nil
}

// -------------------------------------------------------------------------
// Validation
// -------------------------------------------------------------------------

// Validation errors.
var (
	// ErrEmptyCaptureFile indicates no capture file path was supplied.
	ErrEmptyCaptureFile = errors.New("capture.file must not be empty")

	// ErrNegativeIndex indicates the requested record index was never set
	// or was given as negative.
	ErrNegativeIndex = errors.New("capture.idx must be >= 0")

	// ErrEmptyMetricsAddr indicates the metrics listen address is empty.
	ErrEmptyMetricsAddr = errors.New("metrics.addr must not be empty")
)

// Validate checks the configuration for logical errors required to run the
// dump command: a capture file path and a non-negative record index. The
// list command validates only the capture file via ValidateCaptureFile.
func Validate(cfg *Config) error {
	if err := ValidateCaptureFile(cfg); err != nil {
		return err
	}

	if cfg.Capture.Index < 0 {
		return ErrNegativeIndex
	}

	return nil
}

// ValidateCaptureFile checks only that a capture file path was supplied,
// the subset of Validate required by commands that do not select a single
// record (e.g. list).
func ValidateCaptureFile(cfg *Config) error {
	if cfg.Capture.File == "" {
		return ErrEmptyCaptureFile
	}
	return nil
}

// ValidateMetrics checks the metrics endpoint configuration.
func ValidateMetrics(cfg *Config) error {
	if cfg.Metrics.Addr == "" {
		return ErrEmptyMetricsAddr
	}
	return nil
}

// -------------------------------------------------------------------------
// Log Level Parsing
// -------------------------------------------------------------------------

// ParseLogLevel maps a configuration log level string to the corresponding
// slog.Level. Unknown values default to slog.LevelInfo.
//
// Recognized values: "debug", "info", "warn", "error" (case-insensitive).
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
