// # internal/analysis/stats.go
package analysis

import (
	"sync"
	"time"
)

// Additional statistics keys recorded by the runner (the parsing hit/miss
// keys live in the parser package).
const (
	StatScannedFiles    = "scanned_files"
	StatSkippedFiles    = "skipped_files"
	StatScanningRuntime = "scanning_runtime"
	StatEntityRuntime   = "entity_generation_runtime"
)

// Statistics is the analysis-scoped counter sink. It only observes; nothing
// reads it to make control flow decisions.
type Statistics struct {
	mu        sync.Mutex
	counters  map[string]int64
	durations map[string]time.Duration
}

func NewStatistics() *Statistics {
	return &Statistics{
		counters:  make(map[string]int64),
		durations: make(map[string]time.Duration),
	}
}

func (s *Statistics) Increment(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[key]++
}

func (s *Statistics) Add(key string, n int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[key] += n
}

func (s *Statistics) AddDuration(key string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.durations[key] += d
}

// Counter returns the current value for a key, zero if never incremented.
func (s *Statistics) Counter(key string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters[key]
}

// Counters returns a copy of all counter values.
func (s *Statistics) Counters() map[string]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int64, len(s.counters))
	for k, v := range s.counters {
		out[k] = v
	}
	return out
}

// Durations returns a copy of all recorded runtimes.
func (s *Statistics) Durations() map[string]time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]time.Duration, len(s.durations))
	for k, v := range s.durations {
		out[k] = v
	}
	return out
}
