package telemetry

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v4/sensors"
)

// Temperature probing is an ordered chain of fallible reads: the structured
// sensor API first, then the raw kernel thermal-zone file. The first probe
// to succeed wins; if all fail the snapshot carries the unavailable sentinel.

const (
	// cpuSensorKey is the sensor name the Raspberry Pi kernel exposes.
	cpuSensorKey = "cpu_thermal"
	// thermalZonePath is the raw millidegree fallback file.
	thermalZonePath = "/sys/class/thermal/thermal_zone0/temp"
)

// TempProbe is a single fallible temperature read returning degrees Celsius.
type TempProbe interface {
	Name() string
	Read(ctx context.Context) (float64, error)
}

// defaultTempProbes returns the standard probe chain.
func defaultTempProbes() []TempProbe {
	return []TempProbe{
		sensorsProbe{},
		thermalZoneProbe{path: thermalZonePath},
	}
}

// sensorsProbe reads the structured sensor API, preferring the CPU sensor
// key and falling back to the first reported sensor. An empty sensor list
// is a failure, not a zero reading.
type sensorsProbe struct{}

func (sensorsProbe) Name() string { return "sensors" }

func (sensorsProbe) Read(ctx context.Context) (float64, error) {
	temps, err := sensors.TemperaturesWithContext(ctx)
	if err != nil {
		return 0, err
	}
	if len(temps) == 0 {
		return 0, errors.New("no temperature sensors reported")
	}
	for _, t := range temps {
		if t.SensorKey == cpuSensorKey {
			return t.Temperature, nil
		}
	}
	return temps[0].Temperature, nil
}

// thermalZoneProbe reads a kernel thermal-zone file containing an integer
// in millidegrees Celsius.
type thermalZoneProbe struct {
	path string
}

func (thermalZoneProbe) Name() string { return "thermal_zone" }

func (p thermalZoneProbe) Read(_ context.Context) (float64, error) {
	raw, err := os.ReadFile(p.path)
	if err != nil {
		return 0, err
	}
	milli, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return 0, err
	}
	return float64(milli) / 1000.0, nil
}
