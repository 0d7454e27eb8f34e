package scale

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsIncrementalAggregation(t *testing.T) {
	var m metricsState

	m.recordMiss(100*time.Millisecond, 1)
	s := m.snapshot()
	assert.Equal(t, int64(1), s.TotalOperations)
	assert.Equal(t, 0.0, s.CacheHitRate)
	assert.Equal(t, 100*time.Millisecond, s.AverageComputationTime)
	assert.Equal(t, int64(bytesPerCacheEntry), s.MemoryUsage)

	m.recordHit(1)
	s = m.snapshot()
	assert.Equal(t, int64(2), s.TotalOperations)
	assert.Equal(t, 0.5, s.CacheHitRate)
	assert.Equal(t, 100*time.Millisecond, s.AverageComputationTime,
		"hits contribute zero measured time")

	m.recordMiss(50*time.Millisecond, 2)
	s = m.snapshot()
	assert.Equal(t, int64(3), s.TotalOperations)
	assert.InDelta(t, 1.0/3.0, s.CacheHitRate, 1e-12)
	// Average folds over all operations: (100ms*2 + 50ms) / 3.
	assert.Equal(t, 250*time.Millisecond/3, s.AverageComputationTime)
	assert.Equal(t, int64(2*bytesPerCacheEntry), s.MemoryUsage)
}

func TestMetricsPeakMemory(t *testing.T) {
	var m metricsState

	m.syncMemory(10)
	m.syncMemory(3)
	s := m.snapshot()
	assert.Equal(t, int64(3*bytesPerCacheEntry), s.MemoryUsage)
	assert.Equal(t, int64(10*bytesPerCacheEntry), s.PeakMemoryUsage)

	m.syncMemory(0)
	s = m.snapshot()
	assert.Equal(t, int64(0), s.MemoryUsage)
	assert.Equal(t, int64(10*bytesPerCacheEntry), s.PeakMemoryUsage, "peak is sticky")
}

func TestEngineMetricsFlow(t *testing.T) {
	e := newTestEngine(t)
	mobile := Breakpoint{Name: "mobile", Width: 390, Height: 844}

	_, err := e.ScaleValue(24, mobile, Options{})
	require.NoError(t, err)
	_, err = e.ScaleValue(24, mobile, Options{})
	require.NoError(t, err)

	m := e.Metrics()
	assert.Equal(t, int64(2), m.TotalOperations)
	assert.Equal(t, 0.5, m.CacheHitRate)
	assert.GreaterOrEqual(t, m.AverageComputationTime, time.Duration(0))
	assert.Equal(t, int64(bytesPerCacheEntry), m.MemoryUsage)

	e.ClearCache()
	m = e.Metrics()
	assert.Equal(t, int64(2), m.TotalOperations, "clear does not reset counters")
	assert.Equal(t, int64(0), m.MemoryUsage)
	assert.Equal(t, int64(bytesPerCacheEntry), m.PeakMemoryUsage)
}
