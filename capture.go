package xredislog

import (
	"sync"
)

// CaptureSink records everything it accepts in memory. It stands in
// for a Redis destination in tests and local development.
type CaptureSink struct {
	mu      sync.Mutex
	min     Level
	records []Record
	flushes int
}

// NewCaptureSink accepts records at min and above.
func NewCaptureSink(min Level) *CaptureSink {
	return &CaptureSink{min: min}
}

func (s *CaptureSink) Enabled(lvl Level) bool { return lvl.passes(s.min) }

func (s *CaptureSink) Log(rec Record) {
	if !s.Enabled(rec.Level) {
		return
	}
	s.mu.Lock()
	s.records = append(s.records, rec)
	s.mu.Unlock()
}

func (s *CaptureSink) Flush() {
	s.mu.Lock()
	s.flushes++
	s.mu.Unlock()
}

// Records returns a copy of everything captured so far, in arrival order.
func (s *CaptureSink) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len reports the number of captured records.
func (s *CaptureSink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Flushes reports how many times Flush was called.
func (s *CaptureSink) Flushes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushes
}

// Reset drops all captured state.
func (s *CaptureSink) Reset() {
	s.mu.Lock()
	s.records = nil
	s.flushes = 0
	s.mu.Unlock()
}
