package ttlmap

import (
	"sync"
	"time"
)

// ManualScheduler is a Scheduler driven by virtual time. Nothing fires until
// Advance is called, which makes expiration deterministic in tests.
type ManualScheduler struct {
	mu      sync.Mutex
	elapsed time.Duration
	seq     uint64
	pending []*manualTimer
}

type manualTimer struct {
	s    *ManualScheduler
	when time.Duration
	seq  uint64
	f    func()
}

// NewManualScheduler returns a ManualScheduler at virtual time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// AfterFunc registers f to run once Advance moves virtual time d past now.
func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d < 0 {
		d = 0
	}
	s.seq++
	t := &manualTimer{s: s, when: s.elapsed + d, seq: s.seq, f: f}
	s.pending = append(s.pending, t)
	return t
}

// Stop removes the timer from the pending set.
func (t *manualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	for i, p := range t.s.pending {
		if p == t {
			t.s.pending = append(t.s.pending[:i], t.s.pending[i+1:]...)
			return true
		}
	}
	return false
}

// Advance moves virtual time forward by d (never backward) and fires every timer that falls
// due, in deadline order (registration order breaks ties). Callbacks run on
// the calling goroutine without the scheduler's lock held, so they may
// schedule or stop timers; new timers due within the window fire too.
// Advance returns the number of callbacks it ran.
func (s *ManualScheduler) Advance(d time.Duration) int {
	if d < 0 {
		d = 0
	}
	s.mu.Lock()
	target := s.elapsed + d
	s.mu.Unlock()

	fired := 0
	for {
		s.mu.Lock()
		next := -1
		for i, t := range s.pending {
			if t.when > target {
				continue
			}
			if next < 0 || t.when < s.pending[next].when ||
				(t.when == s.pending[next].when && t.seq < s.pending[next].seq) {
				next = i
			}
		}
		if next < 0 {
			s.elapsed = target
			s.mu.Unlock()
			return fired
		}
		t := s.pending[next]
		s.pending = append(s.pending[:next], s.pending[next+1:]...)
		s.elapsed = t.when
		s.mu.Unlock()

		t.f()
		fired++
	}
}

// Elapsed returns the virtual time since the scheduler was created.
func (s *ManualScheduler) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

// Pending returns the number of timers that have neither fired nor been stopped.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
