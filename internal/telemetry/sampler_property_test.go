package telemetry

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestThroughputDelta_PropertyBased verifies the defining delta equation:
// for any baseline counters, byte increase and elapsed interval,
//
//	down_kbps == (recvNow - recvPrev) / 1024 / elapsedSeconds
//
// within floating rounding tolerance.
func TestThroughputDelta_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("delta matches counters over elapsed time", prop.ForAll(
		func(base uint64, deltaRecv uint64, deltaSent uint64, elapsedMs int64) bool {
			elapsed := time.Duration(elapsedMs) * time.Millisecond
			src := &fakeSource{recv: base, sent: base}
			s := newTestSampler(src, elapsed)

			s.Sample(context.Background())

			src.recv = base + deltaRecv
			src.sent = base + deltaSent
			snap := s.Sample(context.Background())

			secs := elapsed.Seconds()
			wantDown := float64(deltaRecv) / 1024.0 / secs
			wantUp := float64(deltaSent) / 1024.0 / secs
			return math.Abs(snap.DownKBps-wantDown) < 1e-6 &&
				math.Abs(snap.UpKBps-wantUp) < 1e-6
		},
		gen.UInt64Range(0, 1<<40),
		gen.UInt64Range(0, 1<<30),
		gen.UInt64Range(0, 1<<30),
		gen.Int64Range(1, 60_000),
	))

	properties.Property("first sample is always zero throughput", prop.ForAll(
		func(recv, sent uint64) bool {
			src := &fakeSource{recv: recv, sent: sent}
			s := newTestSampler(src, time.Second)
			snap := s.Sample(context.Background())
			return snap.DownKBps == 0 && snap.UpKBps == 0
		},
		gen.UInt64(),
		gen.UInt64(),
	))

	properties.TestingRun(t)
}

// TestPercentClamp_PropertyBased verifies every percentage slot stays inside
// [0, 100] regardless of what the underlying source reports.
func TestPercentClamp_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	inRange := func(v float64) bool { return v >= 0 && v <= 100 }

	properties.Property("cpu, mem and disk percents clamped", prop.ForAll(
		func(cpu, mem, disk float64) bool {
			src := &fakeSource{cpu: cpu, mem: mem, disk: disk}
			s := newTestSampler(src, time.Second)
			snap := s.Sample(context.Background())
			return inRange(snap.CPUPercent) && inRange(snap.MemPercent) && inRange(snap.DiskPercent)
		},
		gen.Float64Range(-1000, 1000),
		gen.Float64Range(-1000, 1000),
		gen.Float64Range(-1000, 1000),
	))

	properties.TestingRun(t)
}
