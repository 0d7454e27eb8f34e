package scale

import "time"

// bytesPerCacheEntry is the fixed per-entry size estimate behind the
// memory-usage metric. It is a rough figure, not a measurement.
const bytesPerCacheEntry = 256

// Metrics is a snapshot of the engine's running performance counters.
type Metrics struct {
	TotalOperations        int64         `json:"totalOperations"`
	CacheHitRate           float64       `json:"cacheHitRate"`
	AverageComputationTime time.Duration `json:"averageComputationTime"`
	MemoryUsage            int64         `json:"memoryUsage"`
	PeakMemoryUsage        int64         `json:"peakMemoryUsage"`
}

// metricsState aggregates incrementally after every scale request. Averages
// are folded in place rather than recomputed from a history. The engine's
// lock guards all mutation.
type metricsState struct {
	totalOperations int64
	cacheHitRate    float64
	avgComputation  time.Duration
	memoryUsage     int64
	peakMemory      int64
}

// recordHit folds a cache hit into the hit rate. Hits contribute zero
// computation time, so the average is left untouched.
func (m *metricsState) recordHit(entries int) {
	m.totalOperations++
	n := float64(m.totalOperations)
	m.cacheHitRate = (m.cacheHitRate*(n-1) + 1) / n
	m.syncMemory(entries)
}

// recordMiss folds a computed result into the hit rate and running average.
func (m *metricsState) recordMiss(elapsed time.Duration, entries int) {
	m.totalOperations++
	n := m.totalOperations
	m.cacheHitRate = (m.cacheHitRate * float64(n-1)) / float64(n)
	m.avgComputation = (m.avgComputation*time.Duration(n-1) + elapsed) / time.Duration(n)
	m.syncMemory(entries)
}

// syncMemory re-derives the memory estimate from the current entry count.
// Counters are deliberately not reset when the cache empties; only the
// memory estimate follows the cache.
func (m *metricsState) syncMemory(entries int) {
	m.memoryUsage = int64(entries) * bytesPerCacheEntry
	if m.memoryUsage > m.peakMemory {
		m.peakMemory = m.memoryUsage
	}
}

func (m *metricsState) snapshot() Metrics {
	return Metrics{
		TotalOperations:        m.totalOperations,
		CacheHitRate:           m.cacheHitRate,
		AverageComputationTime: m.avgComputation,
		MemoryUsage:            m.memoryUsage,
		PeakMemoryUsage:        m.peakMemory,
	}
}
