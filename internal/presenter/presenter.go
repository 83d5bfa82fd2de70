// Package presenter formats telemetry snapshots into the fixed-width text
// slots the monitor displays. It is a pure projection: the same snapshot
// always yields the same strings, and no state is kept between calls.
package presenter

import (
	"fmt"

	"github.com/agbru/pivisor/internal/telemetry"
)

// TempUnavailable is rendered when no temperature probe succeeded.
const TempUnavailable = "N/A"

// Lines holds the five formatted display slots.
type Lines struct {
	CPU  string
	Mem  string
	Disk string
	Net  string
	Temp string
}

// Format renders a snapshot into its display lines. Percentages are shown
// with one decimal in a fixed five-character field; throughput with one
// decimal in a six-character field, so columns stay aligned as values
// change magnitude.
func Format(snap telemetry.Snapshot) Lines {
	return Lines{
		CPU:  fmt.Sprintf("CPU:  %5.1f%%", snap.CPUPercent),
		Mem:  fmt.Sprintf("RAM:  %5.1f%%", snap.MemPercent),
		Disk: fmt.Sprintf("DISK: %5.1f%%", snap.DiskPercent),
		Net:  fmt.Sprintf("NET:  ↓%6.1f KB/s  ↑%6.1f KB/s", snap.DownKBps, snap.UpKBps),
		Temp: formatTemp(snap),
	}
}

// Slots returns the lines in display order, top to bottom.
func (l Lines) Slots() []string {
	return []string{l.CPU, l.Mem, l.Disk, l.Net, l.Temp}
}

func formatTemp(snap telemetry.Snapshot) string {
	if !snap.TempOK {
		return fmt.Sprintf("TEMP: %5s", TempUnavailable)
	}
	return fmt.Sprintf("TEMP: %5.1f°C", snap.TempCelsius)
}
