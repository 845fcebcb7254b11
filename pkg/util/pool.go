package util

import "runtime"

// GetOptimalPoolSize returns the worker count for CPU-bound batch work.
//
// Formula: min(max(runtime.NumCPU() * 2, 4), 32)
//
// Node matching is pure computation over shared read-only indices, so a
// small multiple of the core count saturates the CPU without oversubscribing.
func GetOptimalPoolSize() int {
	cores := runtime.NumCPU()
	poolSize := cores * 2

	if poolSize < 4 {
		poolSize = 4
	}
	if poolSize > 32 {
		poolSize = 32
	}

	return poolSize
}

// GetOptimalPoolSizeWithOverride returns pool size with optional override.
//
// If override > 0, uses override value (for testing/tuning).
// Otherwise, uses GetOptimalPoolSize().
func GetOptimalPoolSizeWithOverride(override int) int {
	if override > 0 {
		return override
	}
	return GetOptimalPoolSize()
}
