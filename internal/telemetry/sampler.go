package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/pivisor/internal/errors"
	"github.com/agbru/pivisor/internal/logging"
)

// netState holds the previous cumulative network counters for delta
// computation. It always contains the most recent successfully-read
// counters; it is seeded on the first read and never reset afterwards.
type netState struct {
	bytesRecv  uint64
	bytesSent  uint64
	measuredAt time.Time
	seeded     bool
}

// Sampler produces one Snapshot per tick. It owns the network counter state
// across ticks; everything else is a stateless per-tick read.
//
// A Sampler is driven from a single tick loop and is not safe for
// concurrent use.
type Sampler struct {
	src    Source
	probes []TempProbe
	log    logging.Logger
	tracer trace.Tracer
	now    func() time.Time

	net netState
}

// SamplerOption configures a Sampler during construction.
type SamplerOption func(*Sampler)

// WithSource replaces the host-backed metric source.
func WithSource(src Source) SamplerOption {
	return func(s *Sampler) { s.src = src }
}

// WithTempProbes replaces the temperature probe chain.
func WithTempProbes(probes ...TempProbe) SamplerOption {
	return func(s *Sampler) { s.probes = probes }
}

// WithLogger sets the logger used for probe failure diagnostics.
func WithLogger(log logging.Logger) SamplerOption {
	return func(s *Sampler) { s.log = log }
}

// WithClock replaces the wall-clock source. Tests use this to drive the
// elapsed-time arithmetic deterministically.
func WithClock(now func() time.Time) SamplerOption {
	return func(s *Sampler) { s.now = now }
}

// NewSampler creates a Sampler reading from the running host unless
// overridden by options.
func NewSampler(opts ...SamplerOption) *Sampler {
	s := &Sampler{
		src:    NewSystemSource(),
		probes: defaultTempProbes(),
		log:    logging.NewNopLogger(),
		tracer: otel.Tracer("pivisor/telemetry"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sample assembles one Snapshot. Every metric read that fails is replaced
// by its sentinel (zero for the numeric slots, TempOK=false for
// temperature) and the remaining slots still populate; Sample never
// returns an error and never panics past its own boundary.
func (s *Sampler) Sample(ctx context.Context) Snapshot {
	ctx, span := s.tracer.Start(ctx, "telemetry.sample")
	defer span.End()

	snap := Snapshot{TakenAt: s.now()}

	if pct, err := s.src.CPUPercent(ctx); err != nil {
		s.log.Debug("cpu read failed", logging.Err(apperrors.NewProbeError("cpu", err)))
	} else {
		snap.CPUPercent = clampPercent(pct)
	}

	if pct, err := s.src.MemPercent(ctx); err != nil {
		s.log.Debug("memory read failed", logging.Err(apperrors.NewProbeError("memory", err)))
	} else {
		snap.MemPercent = clampPercent(pct)
	}

	if pct, err := s.src.DiskPercent(ctx); err != nil {
		s.log.Debug("disk read failed", logging.Err(apperrors.NewProbeError("disk", err)))
	} else {
		snap.DiskPercent = clampPercent(pct)
	}

	snap.TempCelsius, snap.TempOK = s.readTemperature(ctx)
	snap.DownKBps, snap.UpKBps = s.netThroughput(ctx, snap.TakenAt)

	span.SetAttributes(
		attribute.Float64("cpu.percent", snap.CPUPercent),
		attribute.Bool("temp.available", snap.TempOK),
	)
	return snap
}

// readTemperature walks the probe chain in order; the first success wins.
func (s *Sampler) readTemperature(ctx context.Context) (float64, bool) {
	for _, probe := range s.probes {
		temp, err := probe.Read(ctx)
		if err == nil {
			return temp, true
		}
		s.log.Debug("temperature probe failed",
			logging.String("probe", probe.Name()),
			logging.Err(apperrors.NewProbeError("temperature", err)))
	}
	return 0, false
}

// netThroughput computes KB/s deltas against the previous cumulative
// counters and advances the counter state.
//
// The very first read has no baseline and reports zero. Elapsed time is the
// wall-clock difference between reads, not an assumed fixed period, so a
// stalled tick does not overstate throughput. A counter going backwards
// (reset or wrap) reseeds the baseline and also reports zero.
func (s *Sampler) netThroughput(ctx context.Context, now time.Time) (down, up float64) {
	recv, sent, err := s.src.NetCounters(ctx)
	if err != nil {
		// Counter state is left untouched: the next successful read
		// computes its delta over the full elapsed interval.
		s.log.Debug("network counters read failed", logging.Err(apperrors.NewProbeError("network", err)))
		return 0, 0
	}

	prev := s.net
	s.net = netState{bytesRecv: recv, bytesSent: sent, measuredAt: now, seeded: true}

	if !prev.seeded {
		return 0, 0
	}
	elapsed := now.Sub(prev.measuredAt).Seconds()
	if elapsed <= 0 || recv < prev.bytesRecv || sent < prev.bytesSent {
		return 0, 0
	}
	down = float64(recv-prev.bytesRecv) / 1024.0 / elapsed
	up = float64(sent-prev.bytesSent) / 1024.0 / elapsed
	return down, up
}
