//go:build !linux && !darwin

package telemetry

import "errors"

// statfsUsedPercent is unavailable on platforms without statfs; the gopsutil
// reading is the only disk probe there.
func statfsUsedPercent(string) (float64, error) {
	return 0, errors.New("statfs not supported on this platform")
}
