package status

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
)

// VolumeUsage describes the filesystem holding a scanned path.
type VolumeUsage struct {
	Path        string  `json:"path"`
	Total       uint64  `json:"total"`
	Free        uint64  `json:"free"`
	Used        uint64  `json:"used"`
	UsedPercent float64 `json:"used_percent"`
}

// Volume reports usage of the filesystem containing path.
func Volume(path string) (VolumeUsage, error) {
	u, err := disk.Usage(path)
	if err != nil {
		return VolumeUsage{}, fmt.Errorf("disk usage for %s: %w", path, err)
	}
	return VolumeUsage{
		Path:        path,
		Total:       u.Total,
		Free:        u.Free,
		Used:        u.Used,
		UsedPercent: u.UsedPercent,
	}, nil
}

// LogicalCPUs returns the logical CPU count, falling back to the Go runtime's
// view when gopsutil cannot read it.
func LogicalCPUs() int {
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		return runtime.NumCPU()
	}
	return n
}
