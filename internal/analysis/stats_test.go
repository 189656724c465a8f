// # internal/analysis/stats_test.go
package analysis

import (
	"sync"
	"testing"
	"time"
)

func TestStatisticsCounters(t *testing.T) {
	s := NewStatistics()

	s.Increment(StatScannedFiles)
	s.Increment(StatScannedFiles)
	s.Add(StatSkippedFiles, 3)

	if got := s.Counter(StatScannedFiles); got != 2 {
		t.Errorf("Expected 2, got %d", got)
	}
	if got := s.Counter(StatSkippedFiles); got != 3 {
		t.Errorf("Expected 3, got %d", got)
	}
	if got := s.Counter("never_touched"); got != 0 {
		t.Errorf("Expected 0 for unknown key, got %d", got)
	}
}

func TestStatisticsDurations(t *testing.T) {
	s := NewStatistics()

	s.AddDuration(StatScanningRuntime, 100*time.Millisecond)
	s.AddDuration(StatScanningRuntime, 50*time.Millisecond)

	if got := s.Durations()[StatScanningRuntime]; got != 150*time.Millisecond {
		t.Errorf("Expected 150ms, got %v", got)
	}
}

func TestStatisticsCopies(t *testing.T) {
	s := NewStatistics()
	s.Increment(StatScannedFiles)

	counters := s.Counters()
	counters[StatScannedFiles] = 99

	if got := s.Counter(StatScannedFiles); got != 1 {
		t.Errorf("Counters() must return a copy, got %d", got)
	}
}

func TestStatisticsConcurrentIncrements(t *testing.T) {
	s := NewStatistics()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Increment(StatScannedFiles)
			}
		}()
	}
	wg.Wait()

	if got := s.Counter(StatScannedFiles); got != 1000 {
		t.Errorf("Expected 1000, got %d", got)
	}
}
