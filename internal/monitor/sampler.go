package monitor

import (
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Sampler produces one Sample per call. Implementations must not fail: a
// metric that cannot be read degrades to its zero or absent value instead.
type Sampler interface {
	Sample() Sample
}

// GPUQueryFunc reads GPU load and memory utilization percentages for the
// given device index. Both results are nil when no GPU is available.
type GPUQueryFunc func(index int) (load, memory *float64)

// HostSampler reads CPU and RAM via gopsutil and, optionally, GPU/VRAM via
// an injected query function.
type HostSampler struct {
	gpuIndex int
	queryGPU GPUQueryFunc
}

// NewHostSampler creates a sampler for the local host. queryGPU may be nil
// to disable GPU sampling entirely. The constructor primes gopsutil's CPU
// delta state so the first real Sample reports utilization since startup
// rather than a spurious 0.
func NewHostSampler(gpuIndex int, queryGPU GPUQueryFunc) *HostSampler {
	cpu.Percent(0, false)
	return &HostSampler{
		gpuIndex: gpuIndex,
		queryGPU: queryGPU,
	}
}

// Sample collects one snapshot. CPU uses interval=0, i.e. utilization since
// the previous call. Read errors leave the affected field at zero (CPU, RAM)
// or absent (GPU, VRAM); they never propagate.
func (h *HostSampler) Sample() Sample {
	s := Sample{Taken: time.Now()}

	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		s.CPU = pcts[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		s.RAM = vm.UsedPercent
	}
	if h.queryGPU != nil {
		s.GPU, s.VRAM = h.queryGPU(h.gpuIndex)
	}

	return s
}
