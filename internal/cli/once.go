//go:generate mockgen -source=once.go -destination=mocks/mock_once.go -package=mocks

// Package cli implements the one-shot mode: take a single telemetry
// reading and print it, suitable for scripting and quick checks.
//
// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on
// their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//   - Run* functions drive a complete mode end to end.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"

	apperrors "github.com/agbru/pivisor/internal/errors"
	"github.com/agbru/pivisor/internal/format"
	"github.com/agbru/pivisor/internal/logging"
	"github.com/agbru/pivisor/internal/presenter"
	"github.com/agbru/pivisor/internal/telemetry"
	"github.com/agbru/pivisor/internal/ui"
)

// SpinnerRefreshRate defines the refresh frequency of the wait spinner.
const SpinnerRefreshRate = 200 * time.Millisecond

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This allows the one-shot flow to be decoupled from a specific spinner
// implementation, facilitating easier testing. It defines the essential
// controls: starting, stopping, and updating the status message.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	//
	// Parameters:
	//   - suffix: The text string to display.
	UpdateSuffix(suffix string)
}

// realSpinner is a wrapper for the `spinner.Spinner` that implements the
// `Spinner` interface.
type realSpinner struct {
	s *spinner.Spinner
}

// Start begins the spinner animation.
func (rs *realSpinner) Start() {
	rs.s.Start()
}

// Stop halts the spinner animation.
func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

// UpdateSuffix sets the text that is displayed after the spinner.
//
// Parameters:
//   - suffix: The string to display.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Suffix = suffix
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], SpinnerRefreshRate, options...)
	return &realSpinner{s}
}

// sleep is a seam for tests; the real implementation honors ctx.
var sleep = func(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RunOnce takes a single telemetry reading and prints it to out.
//
// Network throughput needs two counter readings separated by a
// measurement window, so the flow is: seed the counters, wait one
// sample interval behind a spinner, sample again, and display that
// second snapshot.
//
// Parameters:
//   - ctx: Context for cancellation (Ctrl+C aborts the wait).
//   - sampler: The telemetry sampler to read from.
//   - out: The output writer.
//   - logger: Structured logger for diagnostics.
//
// Returns:
//   - error: ctx.Err() if the wait was interrupted, nil otherwise.
func RunOnce(ctx context.Context, sampler *telemetry.Sampler, out io.Writer, logger logging.Logger) error {
	logger.Debug("one-shot measurement starting")

	// First sample seeds the network counter baseline; its throughput
	// values are zero and are discarded.
	seed := sampler.Sample(ctx)

	sp := newSpinner()
	sp.UpdateSuffix(" measuring...")
	sp.Start()

	err := sleep(ctx, telemetry.SampleInterval)
	sp.Stop()
	if err != nil {
		if apperrors.IsContextError(err) {
			logger.Debug("one-shot measurement canceled")
		}
		return err
	}

	snap := sampler.Sample(ctx)
	DisplaySnapshot(out, snap)
	fmt.Fprintf(out, "%smeasured over %s%s\n",
		ui.ColorSecondary(),
		format.FormatExecutionDuration(snap.TakenAt.Sub(seed.TakenAt)),
		ui.ColorReset())
	return nil
}

// DisplaySnapshot writes the five metric lines of a snapshot to out,
// one per line, with the metric labels in the theme's primary color.
//
// Parameters:
//   - out: The output writer.
//   - snap: The snapshot to display.
func DisplaySnapshot(out io.Writer, snap telemetry.Snapshot) {
	lines := presenter.Format(snap)
	for _, line := range lines.Slots() {
		fmt.Fprintf(out, "%s%s%s\n", ui.ColorPrimary(), line, ui.ColorReset())
	}
}
