// Package scheduler decides when the aggregator should flush.
package scheduler

import (
	"sync"
	"time"
)

// DefaultFlushInterval is the merge cadence used when FLUSH_INTERVAL is unset.
const DefaultFlushInterval = 60 * time.Second

// Scheduler tracks the time of the last flush attempt. It is reset after
// every attempt regardless of outcome, so a failed delivery still waits a
// full interval before the next try.
type Scheduler struct {
	mu        sync.Mutex
	interval  time.Duration
	lastFlush time.Time
}

// New creates a Scheduler with lastFlush initialized to now. The first
// check after startup is therefore usually not yet due; the consumer loop
// performs its startup flush explicitly rather than relying on this.
func New(interval time.Duration, now time.Time) *Scheduler {
	if interval <= 0 {
		interval = DefaultFlushInterval
	}
	return &Scheduler{interval: interval, lastFlush: now}
}

// ShouldFlush reports whether a full interval has elapsed since the last
// flush attempt.
func (s *Scheduler) ShouldFlush(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastFlush) >= s.interval
}

// Reset records a flush attempt at now, success or failure.
func (s *Scheduler) Reset(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastFlush = now
}

// Interval returns the configured flush interval.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}
