//go:generate mockgen -source=source.go -destination=mocks/mock_source.go -package=mocks

package telemetry

import (
	"context"
	"errors"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/net"
)

// RootMount is the filesystem whose usage the disk slot reports.
const RootMount = "/"

// Source abstracts the OS-level metric reads so the sampler can be tested
// against synthetic counters. All methods are point-in-time reads; none
// block beyond a local OS call.
type Source interface {
	// CPUPercent returns the system-wide CPU utilization percentage since
	// the previous call (delta measurement, non-blocking).
	CPUPercent(ctx context.Context) (float64, error)
	// MemPercent returns the percentage of RAM currently in use.
	MemPercent(ctx context.Context) (float64, error)
	// DiskPercent returns the usage percentage of the root filesystem.
	DiskPercent(ctx context.Context) (float64, error)
	// NetCounters returns the cumulative bytes received and sent across
	// all interfaces since boot.
	NetCounters(ctx context.Context) (recv, sent uint64, err error)
}

// systemSource reads live metrics through gopsutil, with a raw statfs
// fallback for disk usage.
type systemSource struct{}

// NewSystemSource returns the Source backed by the running host.
func NewSystemSource() Source {
	return systemSource{}
}

// CPUPercent reads utilization with interval=0: gopsutil computes the delta
// against its previous call, so the first reading of a process is 0.
func (systemSource) CPUPercent(ctx context.Context) (float64, error) {
	pcts, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return 0, err
	}
	if len(pcts) == 0 {
		return 0, errors.New("cpu: no utilization reading")
	}
	return pcts[0], nil
}

func (systemSource) MemPercent(ctx context.Context) (float64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, err
	}
	if vm == nil {
		return 0, errors.New("mem: no virtual memory reading")
	}
	return vm.UsedPercent, nil
}

// DiskPercent tries gopsutil first and falls back to a direct statfs call,
// mirroring the probe-chain policy used for temperature.
func (systemSource) DiskPercent(ctx context.Context) (float64, error) {
	usage, err := disk.UsageWithContext(ctx, RootMount)
	if err == nil && usage != nil {
		return usage.UsedPercent, nil
	}
	pct, statErr := statfsUsedPercent(RootMount)
	if statErr != nil {
		if err != nil {
			return 0, err
		}
		return 0, statErr
	}
	return pct, nil
}

// NetCounters returns the aggregate counters across all interfaces
// (pernic=false collapses them into a single entry).
func (systemSource) NetCounters(ctx context.Context) (uint64, uint64, error) {
	counters, err := net.IOCountersWithContext(ctx, false)
	if err != nil {
		return 0, 0, err
	}
	if len(counters) == 0 {
		return 0, 0, errors.New("net: no interface counters")
	}
	return counters[0].BytesRecv, counters[0].BytesSent, nil
}
