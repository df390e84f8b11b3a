package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCountersAndLatencies(t *testing.T) {
	mc := NewMetricsCollector()

	mc.IncrementCounter("processes_created")
	mc.IncrementCounter("processes_created")
	mc.IncrementCounter("accesses_denied")
	mc.ObserveLatency("process_access", 10*time.Millisecond)
	mc.ObserveLatency("process_access", 30*time.Millisecond)

	counters := mc.GetCounters()
	assert.EqualValues(t, 2, counters["processes_created"])
	assert.EqualValues(t, 1, counters["accesses_denied"])

	latencies := mc.GetLatencies()
	assert.InDelta(t, 20.0, latencies["process_access"], 0.01)
}

func TestLatencyWindowIsBounded(t *testing.T) {
	mc := NewMetricsCollector()

	for i := 0; i < latencyWindow*2; i++ {
		mc.ObserveLatency("process_create", time.Millisecond)
	}

	mc.mutex.RLock()
	defer mc.mutex.RUnlock()
	assert.Len(t, mc.latencies["process_create"], latencyWindow)
}

func TestConcurrentUse(t *testing.T) {
	mc := NewMetricsCollector()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				mc.IncrementCounter("shares_recorded")
				mc.ObserveLatency("process_share", time.Millisecond)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1600, mc.GetCounters()["shares_recorded"])
}
