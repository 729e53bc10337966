package report

import (
	"context"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

type Hardware struct {
	Hostname      string `json:"hostname"`
	Kernel        string `json:"kernel"`
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	GoVersion     string `json:"go_version"`
	CPUModel      string `json:"cpu_model"`
	LogicalCPUs   int    `json:"logical_cpus"`
	PhysicalCores int    `json:"physical_cores"`
	MemoryTotalMB int64  `json:"memory_total_mb"`
}

// CollectHardware describes the machine the benchmark ran on. Fields that
// cannot be read are left at their zero value or "unknown".
func CollectHardware(ctx context.Context) Hardware {
	hw := Hardware{
		OS:          runtime.GOOS,
		Arch:        runtime.GOARCH,
		GoVersion:   runtime.Version(),
		CPUModel:    "unknown",
		LogicalCPUs: runtime.NumCPU(),
	}
	hw.Hostname, _ = os.Hostname()

	if info, err := host.InfoWithContext(ctx); err == nil {
		hw.Kernel = info.KernelVersion
		if hw.Hostname == "" {
			hw.Hostname = info.Hostname
		}
	}
	if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 && infos[0].ModelName != "" {
		hw.CPUModel = infos[0].ModelName
	}
	if n, err := cpu.CountsWithContext(ctx, false); err == nil {
		hw.PhysicalCores = n
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		hw.MemoryTotalMB = int64(vm.Total / (1024 * 1024))
	}
	return hw
}
