package report

import (
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
)

// systemStats holds the host resource snapshot rendered in the system
// health section. Sizes are in GB.
type systemStats struct {
	CPUPercent  float64
	MemPercent  float64
	MemUsedGB   float64
	MemTotalGB  float64
	DiskPercent float64
	DiskUsedGB  float64
	DiskTotalGB float64
}

const gb = 1024 * 1024 * 1024

// collectSystemStats is a variable so tests can substitute a fixed snapshot.
var collectSystemStats = func() (*systemStats, error) {
	percents, err := cpu.Percent(0, false)
	if err != nil {
		return nil, err
	}
	vm, err := mem.VirtualMemory()
	if err != nil {
		return nil, err
	}
	du, err := disk.Usage("/")
	if err != nil {
		return nil, err
	}

	s := &systemStats{
		MemPercent:  vm.UsedPercent,
		MemUsedGB:   float64(vm.Used) / gb,
		MemTotalGB:  float64(vm.Total) / gb,
		DiskPercent: du.UsedPercent,
		DiskUsedGB:  float64(du.Used) / gb,
		DiskTotalGB: float64(du.Total) / gb,
	}
	if len(percents) > 0 {
		s.CPUPercent = percents[0]
	}
	return s, nil
}
