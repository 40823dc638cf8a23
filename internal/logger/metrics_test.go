package logger

import (
	"sync"
	"testing"
	"time"
)

func TestMetrics_Counter(t *testing.T) {
	m := NewMetrics()

	m.IncrCounter("events.extracted")
	m.IncrCounter("events.extracted")
	m.AddCounter("events.extracted", 5)

	snapshot := m.GetSnapshot()
	counters := snapshot["counters"].(map[string]int64)

	if counters["events.extracted"] != 7 {
		t.Errorf("Counter = %v, want 7", counters["events.extracted"])
	}
	if m.Counter("missing") != 0 {
		t.Errorf("Counter(missing) = %v, want 0", m.Counter("missing"))
	}
}

func TestMetrics_ConcurrentCounter(t *testing.T) {
	m := NewMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.IncrCounter("rows")
		}()
	}
	wg.Wait()

	if got := m.Counter("rows"); got != 50 {
		t.Errorf("Counter(rows) = %d, want 50", got)
	}
}

func TestMetrics_Gauge(t *testing.T) {
	m := NewMetrics()

	m.SetGauge("season_year", 2024)
	m.SetGauge("season_year", 2025)

	gauges := m.GetSnapshot()["gauges"].(map[string]float64)

	if gauges["season_year"] != 2025 {
		t.Errorf("Gauge = %v, want 2025", gauges["season_year"])
	}
}

func TestMetrics_Timing(t *testing.T) {
	m := NewMetrics()

	m.RecordTiming("fetch.page", 100*time.Millisecond)
	m.RecordTiming("fetch.page", 200*time.Millisecond)
	m.RecordTiming("fetch.page", 150*time.Millisecond)

	timings := m.GetSnapshot()["timings"].(map[string]map[string]interface{})

	fetch := timings["fetch.page"]
	if fetch["count"].(int) != 3 {
		t.Errorf("Timing count = %v, want 3", fetch["count"])
	}
	if fetch["min"].(string) != "100ms" {
		t.Errorf("Min timing = %v, want 100ms", fetch["min"])
	}
	if fetch["max"].(string) != "200ms" {
		t.Errorf("Max timing = %v, want 200ms", fetch["max"])
	}
	if fetch["average"].(string) != "150ms" {
		t.Errorf("Average timing = %v, want 150ms", fetch["average"])
	}
}

func TestPackageLevelMetrics(t *testing.T) {
	IncrCounter("test")
	AddCounter("test", 2)
	SetGauge("test", 42.0)
	RecordTiming("test", time.Second)

	snapshot := GetMetricsSnapshot()
	if snapshot == nil {
		t.Fatal("GetMetricsSnapshot() returned nil")
	}
	if snapshot["counters"].(map[string]int64)["test"] < 3 {
		t.Errorf("counter test = %v, want at least 3", snapshot["counters"])
	}
}
