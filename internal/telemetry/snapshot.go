// Package telemetry samples host-wide resource usage: CPU, memory and disk
// percentages, CPU temperature, and network throughput derived from the
// kernel's cumulative byte counters.
package telemetry

import "time"

// SampleInterval is the fixed refresh period of the monitor. The widget,
// the one-shot mode and the exporter all sample at this rate.
const SampleInterval = time.Second

// Snapshot is one tick's fully-assembled set of telemetry values.
// It is produced fresh on every sample and never mutated afterwards.
type Snapshot struct {
	// CPUPercent is the system-wide CPU utilization, clamped to [0, 100].
	CPUPercent float64
	// MemPercent is the RAM usage percentage, clamped to [0, 100].
	MemPercent float64
	// DiskPercent is the root filesystem usage percentage, clamped to [0, 100].
	DiskPercent float64
	// TempCelsius is the CPU temperature. Only meaningful when TempOK is true.
	TempCelsius float64
	// TempOK reports whether any temperature probe succeeded this tick.
	TempOK bool
	// DownKBps is the receive throughput since the previous sample, in KB/s.
	DownKBps float64
	// UpKBps is the transmit throughput since the previous sample, in KB/s.
	UpKBps float64
	// TakenAt is the wall-clock time the snapshot was taken.
	TakenAt time.Time
}

// clampPercent bounds a percentage reading to [0, 100]. Some platforms
// report transient values slightly outside the range.
func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
