package metrics

import (
	"sync"
	"time"
)

// MetricsCollector aggregates in-process counters and latency samples.
// It backs the /metrics endpoint; latency series keep a sliding window
// of the most recent observations.
type MetricsCollector struct {
	counters  map[string]int64
	latencies map[string][]time.Duration
	mutex     sync.RWMutex
}

const latencyWindow = 100

func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		counters:  make(map[string]int64),
		latencies: make(map[string][]time.Duration),
	}
}

func (mc *MetricsCollector) IncrementCounter(name string) {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()
	mc.counters[name]++
}

func (mc *MetricsCollector) ObserveLatency(name string, duration time.Duration) {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	samples := append(mc.latencies[name], duration)
	if len(samples) > latencyWindow {
		samples = samples[len(samples)-latencyWindow:]
	}
	mc.latencies[name] = samples
}

func (mc *MetricsCollector) GetCounters() map[string]int64 {
	mc.mutex.RLock()
	defer mc.mutex.RUnlock()

	counters := make(map[string]int64, len(mc.counters))
	for name, value := range mc.counters {
		counters[name] = value
	}
	return counters
}

// GetLatencies reports the windowed average per series in milliseconds.
func (mc *MetricsCollector) GetLatencies() map[string]float64 {
	mc.mutex.RLock()
	defer mc.mutex.RUnlock()

	result := make(map[string]float64, len(mc.latencies))
	for name, durations := range mc.latencies {
		if len(durations) == 0 {
			continue
		}
		var sum time.Duration
		for _, d := range durations {
			sum += d
		}
		result[name] = float64(sum) / float64(len(durations)) / float64(time.Millisecond)
	}
	return result
}
