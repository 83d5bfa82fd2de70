//go:build linux || darwin

package telemetry

import "golang.org/x/sys/unix"

// statfsUsedPercent reads filesystem usage straight from the kernel.
// Used as a fallback when the structured disk reader fails.
func statfsUsedPercent(path string) (float64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, err
	}
	total := st.Blocks * uint64(st.Bsize)
	if total == 0 {
		return 0, nil
	}
	free := st.Bfree * uint64(st.Bsize)
	return float64(total-free) / float64(total) * 100, nil
}
