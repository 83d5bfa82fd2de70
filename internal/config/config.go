// Package config handles command-line and environment configuration.
// Priority order: CLI flags > environment variables > defaults.
//
// The sampling interval and the metric set are deliberately not
// configurable; the widget always refreshes once per second.
package config

import (
	"flag"
	"fmt"
	"io"

	apperrors "github.com/agbru/pivisor/internal/errors"
)

// EnvPrefix is prepended to all environment variable names.
const EnvPrefix = "PIVISOR_"

// DefaultListenAddr is the default bind address for the Prometheus
// exporter in serve mode.
const DefaultListenAddr = ":9110"

// AppConfig holds the resolved application configuration.
type AppConfig struct {
	// Once takes a single measurement window, prints it, and exits.
	Once bool
	// Serve runs the headless Prometheus exporter instead of the widget.
	Serve bool
	// ListenAddr is the exporter bind address (serve mode only).
	ListenAddr string
	// Theme selects the color scheme: "dark", "light" or "none".
	Theme string
	// NoColor disables all color output.
	NoColor bool
	// Verbose enables debug-level logging (serve and once modes).
	Verbose bool
}

// ParseConfig parses command-line arguments into an AppConfig, applying
// environment variable overrides for flags not explicitly set.
//
// Parameters:
//   - programName: Name used in usage output.
//   - args: Command-line arguments (without the program name).
//   - errWriter: Destination for usage and error output.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: flag.ErrHelp when --help was requested, or a ConfigError.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	cfg := AppConfig{
		ListenAddr: DefaultListenAddr,
		Theme:      "dark",
	}

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)
	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [options]\n\n", programName)
		fmt.Fprintf(errWriter, "Floating host telemetry monitor. Without options it opens the\n")
		fmt.Fprintf(errWriter, "interactive widget; it samples CPU, memory, disk, network and\n")
		fmt.Fprintf(errWriter, "CPU temperature once per second.\n\nOptions:\n")
		fs.PrintDefaults()
	}

	fs.BoolVar(&cfg.Once, "once", false, "print a single snapshot and exit")
	fs.BoolVar(&cfg.Serve, "serve", false, "run the headless Prometheus exporter")
	fs.StringVar(&cfg.ListenAddr, "listen", DefaultListenAddr, "exporter bind address (serve mode)")
	fs.StringVar(&cfg.Theme, "theme", "dark", "color theme: dark, light or none")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "disable color output")
	fs.BoolVar(&cfg.Verbose, "v", false, "enable debug logging")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&cfg, fs)

	if err := validate(cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// validate rejects inconsistent flag combinations.
func validate(cfg AppConfig) error {
	if cfg.Once && cfg.Serve {
		return apperrors.NewConfigError("--once and --serve are mutually exclusive")
	}
	if cfg.Serve && cfg.ListenAddr == "" {
		return apperrors.NewConfigError("--serve requires a non-empty --listen address")
	}
	switch cfg.Theme {
	case "dark", "light", "none":
	default:
		return apperrors.NewConfigError("unknown theme %q (valid: dark, light, none)", cfg.Theme)
	}
	return nil
}
