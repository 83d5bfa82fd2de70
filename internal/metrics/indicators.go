// Package metrics derives session-level indicators from the snapshot
// stream: temperature extremes, throughput peaks and a running CPU average.
// The tracker is pure bookkeeping; it never reads the host itself.
package metrics

import "github.com/agbru/pivisor/internal/telemetry"

// Indicators is a point-in-time view of the tracked aggregates.
type Indicators struct {
	// Samples is the number of snapshots observed.
	Samples int
	// TempMin and TempMax are the observed temperature extremes.
	// Only meaningful when TempSeen is true.
	TempMin  float64
	TempMax  float64
	TempSeen bool
	// AvgCPU is the running mean of the CPU percentage.
	AvgCPU float64
	// PeakDown and PeakUp are the highest observed throughput readings.
	PeakDown float64
	PeakUp   float64
}

// Tracker accumulates indicators over the life of a session. It is driven
// from the single tick loop and is not safe for concurrent use.
type Tracker struct {
	ind    Indicators
	cpuSum float64
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Observe folds one snapshot into the aggregates. Snapshots with an
// unavailable temperature do not disturb the extremes.
func (t *Tracker) Observe(snap telemetry.Snapshot) {
	t.ind.Samples++
	t.cpuSum += snap.CPUPercent
	t.ind.AvgCPU = t.cpuSum / float64(t.ind.Samples)

	if snap.DownKBps > t.ind.PeakDown {
		t.ind.PeakDown = snap.DownKBps
	}
	if snap.UpKBps > t.ind.PeakUp {
		t.ind.PeakUp = snap.UpKBps
	}

	if snap.TempOK {
		if !t.ind.TempSeen || snap.TempCelsius < t.ind.TempMin {
			t.ind.TempMin = snap.TempCelsius
		}
		if !t.ind.TempSeen || snap.TempCelsius > t.ind.TempMax {
			t.ind.TempMax = snap.TempCelsius
		}
		t.ind.TempSeen = true
	}
}

// Indicators returns the current aggregate view.
func (t *Tracker) Indicators() Indicators {
	return t.ind
}

// Reset discards all accumulated state.
func (t *Tracker) Reset() {
	*t = Tracker{}
}
