package ttlmap

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestManualSchedulerOrder(t *testing.T) {
	s := NewManualScheduler()

	var fired []string
	record := func(name string) func() {
		return func() { fired = append(fired, name) }
	}
	s.AfterFunc(300*time.Millisecond, record("c"))
	s.AfterFunc(100*time.Millisecond, record("a"))
	s.AfterFunc(100*time.Millisecond, record("b"))
	s.AfterFunc(time.Second, record("late"))

	if n := s.Advance(300 * time.Millisecond); n != 3 {
		t.Fatalf("Expected 3 callbacks, got %d", n)
	}
	if diff := cmp.Diff(fired, []string{"a", "b", "c"}); diff != "" {
		t.Fatalf("fire order (-got +want):\n%s", diff)
	}
	if s.Elapsed() != 300*time.Millisecond {
		t.Fatalf("Expected elapsed 300ms, got %v", s.Elapsed())
	}
	if s.Pending() != 1 {
		t.Fatalf("Expected 1 pending timer, got %d", s.Pending())
	}
}

func TestManualSchedulerStop(t *testing.T) {
	s := NewManualScheduler()

	ran := false
	timer := s.AfterFunc(time.Second, func() { ran = true })
	if !timer.Stop() {
		t.Fatal("Expected Stop to report a pending timer")
	}
	if timer.Stop() {
		t.Fatal("Expected a second Stop to report false")
	}

	s.Advance(2 * time.Second)
	if ran {
		t.Fatal("Expected a stopped timer not to fire")
	}

	fired := s.AfterFunc(0, func() {})
	s.Advance(0)
	if fired.Stop() {
		t.Fatal("Expected Stop after firing to report false")
	}
}

func TestManualSchedulerRescheduleInWindow(t *testing.T) {
	s := NewManualScheduler()

	var at []time.Duration
	var tick func()
	tick = func() {
		at = append(at, s.Elapsed())
		if len(at) < 5 {
			s.AfterFunc(200*time.Millisecond, tick)
		}
	}
	s.AfterFunc(200*time.Millisecond, tick)

	if n := s.Advance(time.Second); n != 5 {
		t.Fatalf("Expected 5 callbacks, got %d", n)
	}
	want := []time.Duration{200 * time.Millisecond, 400 * time.Millisecond, 600 * time.Millisecond, 800 * time.Millisecond, time.Second}
	if diff := cmp.Diff(at, want); diff != "" {
		t.Fatalf("fire times (-got +want):\n%s", diff)
	}
}

func TestManualSchedulerNegativeAdvance(t *testing.T) {
	s := NewManualScheduler()
	s.Advance(time.Second)

	ran := false
	s.AfterFunc(0, func() { ran = true })
	if n := s.Advance(-500 * time.Millisecond); n != 1 {
		t.Fatalf("Expected the due timer to fire, got %d callbacks", n)
	}
	if !ran {
		t.Fatal("Expected a zero-delay timer to fire on a negative Advance")
	}
	if s.Elapsed() != time.Second {
		t.Fatalf("Expected elapsed to stay at 1s, got %v", s.Elapsed())
	}
}
