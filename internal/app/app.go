// Package app wires configuration, logging and the telemetry sampler
// together and dispatches to one of the three run modes: the
// interactive widget (default), one-shot print, or the Prometheus
// exporter.
package app

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/pivisor/internal/cli"
	"github.com/agbru/pivisor/internal/config"
	apperrors "github.com/agbru/pivisor/internal/errors"
	"github.com/agbru/pivisor/internal/logging"
	"github.com/agbru/pivisor/internal/server"
	"github.com/agbru/pivisor/internal/telemetry"
	"github.com/agbru/pivisor/internal/tui"
	"github.com/agbru/pivisor/internal/ui"
)

// Application represents the pivisor application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer) (*Application, error) {
	app := &Application{ErrWriter: errWriter}

	programName := "pivisor"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ui.InitTheme(a.Config.NoColor)
	if !a.Config.NoColor {
		ui.SetTheme(a.Config.Theme)
	}

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	switch {
	case a.Config.Serve:
		return a.runServe(ctx)
	case a.Config.Once:
		return a.runOnce(ctx, out)
	default:
		return a.runTUI(ctx)
	}
}

// runServe runs the headless Prometheus exporter until interrupted.
func (a *Application) runServe(ctx context.Context) int {
	logger := logging.NewLogger(os.Stderr, "server")
	sampler := telemetry.NewSampler(telemetry.WithLogger(logger))

	srv := server.New(a.Config.ListenAddr, sampler, logger)
	if err := srv.Run(ctx); err != nil {
		logger.Error("exporter failed", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runOnce prints a single snapshot and exits.
func (a *Application) runOnce(ctx context.Context, out io.Writer) int {
	logger := logging.NewLogger(a.ErrWriter, "once")
	sampler := telemetry.NewSampler(telemetry.WithLogger(logger))

	if err := cli.RunOnce(ctx, sampler, out, logger); err != nil {
		if apperrors.IsContextError(err) {
			return apperrors.ExitErrorCanceled
		}
		logger.Error("measurement failed", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runTUI launches the interactive widget. Sampler diagnostics are
// discarded: the alternate screen owns the terminal.
func (a *Application) runTUI(ctx context.Context) int {
	sampler := telemetry.NewSampler(telemetry.WithLogger(logging.NewNopLogger()))
	return tui.Run(ctx, sampler, a.Config, Version)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// ExitCodeForStartupError maps an error from New to the process exit
// code: help requests succeed, configuration errors get their dedicated
// code, anything else is generic.
func ExitCodeForStartupError(err error) int {
	if IsHelpError(err) {
		return apperrors.ExitSuccess
	}
	var cfgErr apperrors.ConfigError
	if errors.As(err, &cfgErr) {
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitErrorGeneric
}
