package pool

import (
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
)

// DefaultSize leaves half of the physical cores idle for the coordinator
// and the rest of the system, with a floor of one worker.
func DefaultSize() int {
	cores, err := cpu.Counts(false)
	if err != nil || cores <= 0 {
		cores = runtime.NumCPU()
	}
	return max(1, cores/2)
}
