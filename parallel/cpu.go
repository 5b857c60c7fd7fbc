package parallel

import "runtime"

import "github.com/klauspost/cpuid/v2"

// DefaultWorkers is the number of logical cores reported by the CPU, or the
// Go runtime's view when the CPU could not be identified.
func DefaultWorkers() int {
	if n := cpuid.CPU.LogicalCores; n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// CPUName describes the processor for logging
func CPUName() string {
	if cpuid.CPU.BrandName == "" {
		return runtime.GOARCH
	}
	return cpuid.CPU.BrandName
}
