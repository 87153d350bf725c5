package ttlmap

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/xtdlib/rat"
)

// TestAddRatConcurrent tests concurrent AddRat operations for atomicity
func TestAddRatConcurrent(t *testing.T) {
	kv := New[string, *rat.Rational](time.Minute)
	defer kv.Clear()

	kv.Set("counter", rat.Rat(0))

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			kv.AddRat("counter", rat.Rat(1))
		}()
	}
	wg.Wait()

	result, _ := kv.Get("counter")
	expected := rat.Rat(100)
	if !result.Equal(expected) {
		t.Fatalf("Expected %s, got %s", expected, result)
	}
}

// TestAddRatConcurrentFractional tests concurrent fractional additions
func TestAddRatConcurrentFractional(t *testing.T) {
	kv := New[string, *rat.Rational](time.Minute)
	defer kv.Clear()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			kv.AddRat("sum", "3/10")
		}()
	}
	wg.Wait()

	result, _ := kv.Get("sum")
	expected := rat.Rat(30)
	if !result.Equal(expected) {
		t.Fatalf("Expected %s, got %s", expected, result)
	}
}

// TestAddRatConcurrentMixed tests concurrent mixed operations
func TestAddRatConcurrentMixed(t *testing.T) {
	kv := New[string, *rat.Rational](time.Minute)
	defer kv.Clear()

	kv.Set("balance", rat.Rat(1000))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			kv.AddInt("balance", 1)
		}()
		go func() {
			defer wg.Done()
			kv.AddInt("balance", -1)
		}()
	}
	wg.Wait()

	result, _ := kv.Get("balance")
	expected := rat.Rat(1000)
	if !result.Equal(expected) {
		t.Fatalf("Expected %s, got %s", expected, result)
	}
}

func TestAddRatSlidesExpiration(t *testing.T) {
	kv, s := newManual[string, *rat.Rational](time.Second)

	kv.AddInt("hits", 1)
	s.Advance(600 * time.Millisecond)
	kv.AddInt("hits", 1)
	s.Advance(600 * time.Millisecond)

	hits, ok := kv.Peek("hits")
	if !ok || !hits.Equal(2) {
		t.Fatalf("Expected 2 hits inside the window, got %v (ok=%v)", hits, ok)
	}

	s.Advance(400 * time.Millisecond)
	if kv.Has("hits") {
		t.Fatal("Expected the counter to expire after a quiet ttl")
	}
	if got := kv.AddRat("hits", "1/3"); !got.Equal("1/3") {
		t.Fatalf("Expected a fresh counter at 1/3, got %s", got)
	}
}

func TestTryAddRatWrongType(t *testing.T) {
	kv, _ := newManual[string, int](time.Second)

	if _, err := kv.TryAddRat("k", 1); !errors.Is(err, ErrNotRational) {
		t.Fatalf("Expected ErrNotRational, got %v", err)
	}
	if kv.Has("k") {
		t.Fatal("Expected a failed TryAddRat to leave the map untouched")
	}

	defer func() {
		if recover() == nil {
			t.Fatal("Expected AddInt to panic on a non-rational map")
		}
	}()
	kv.AddInt("k", 1)
}

func TestSetNX(t *testing.T) {
	kv, s := newManual[string, int](time.Second)

	if !kv.SetNX("key1", 100) {
		t.Fatal("Expected SetNX to return true on first set")
	}
	if v, _ := kv.Peek("key1"); v != 100 {
		t.Fatalf("Expected 100, got %d", v)
	}

	s.Advance(600 * time.Millisecond)
	if kv.SetNX("key1", 200) {
		t.Fatal("Expected SetNX to return false for an existing key")
	}
	if v, _ := kv.Peek("key1"); v != 100 {
		t.Fatalf("Expected value to remain 100, got %d", v)
	}

	s.Advance(400 * time.Millisecond)
	if kv.Has("key1") {
		t.Fatal("Expected a refused SetNX not to extend the ttl")
	}
	if !kv.SetNX("key1", 300) {
		t.Fatal("Expected SetNX to succeed once the key expired")
	}
}

func TestSetNZ(t *testing.T) {
	kv, _ := newManual[string, int](time.Second)

	if got := kv.SetNZ("key1", 0); got != 0 {
		t.Fatalf("Expected 0 for a zero value on a missing key, got %d", got)
	}
	if kv.Has("key1") {
		t.Fatal("Expected SetNZ not to store a zero value")
	}

	if got := kv.SetNZ("key1", 100); got != 100 {
		t.Fatalf("Expected 100, got %d", got)
	}
	if got := kv.SetNZ("key1", 0); got != 100 {
		t.Fatalf("Expected existing value 100, got %d", got)
	}

	type session struct {
		User  string
		Roles []string
	}
	sessions, _ := newManual[string, session](time.Second)
	sessions.SetNZ("s1", session{User: "alice", Roles: []string{"admin"}})
	got := sessions.SetNZ("s1", session{})
	if diff := cmp.Diff(got, session{User: "alice", Roles: []string{"admin"}}); diff != "" {
		t.Fatalf("SetNZ (-got +want):\n%s", diff)
	}
}

func TestUpdate(t *testing.T) {
	kv, s := newManual[string, []string](time.Second)

	kv.Update("log", func(v []string) []string { return append(v, "a") })
	s.Advance(600 * time.Millisecond)
	got := kv.Update("log", func(v []string) []string { return append(v, "b") })
	if diff := cmp.Diff(got, []string{"a", "b"}); diff != "" {
		t.Fatalf("Update (-got +want):\n%s", diff)
	}

	s.Advance(600 * time.Millisecond)
	if !kv.Has("log") {
		t.Fatal("Expected Update to restart the expiration")
	}
}

func TestWithLock(t *testing.T) {
	kv, s := newManual[string, int](time.Second)
	kv.Set("counter1", 0).Set("counter2", 0)

	kv.WithLock(func(tx *Tx[string, int]) {
		c1, _ := tx.Get("counter1")
		c2, _ := tx.Peek("counter2")
		tx.Set("counter1", c1+10).Set("counter2", c2+20)
		if !tx.Delete("counter2") || tx.Has("counter2") {
			t.Fatal("Expected counter2 to be deleted inside the lock")
		}
		tx.Set("counter2", c2+20)
		if tx.Len() != 2 {
			t.Fatalf("Expected 2 entries inside the lock, got %d", tx.Len())
		}
	})

	got := map[string]int{}
	for k, v := range kv.All {
		got[k] = v
	}
	if diff := cmp.Diff(got, map[string]int{"counter1": 10, "counter2": 20}); diff != "" {
		t.Fatalf("after WithLock (-got +want):\n%s", diff)
	}
	if s.Pending() != 2 {
		t.Fatalf("Expected 2 pending timers, got %d", s.Pending())
	}
}

func TestTxAll(t *testing.T) {
	kv, s := newManual[string, int](time.Second)
	kv.Set("item1", 100).Set("item2", 200).Set("item3", 300)

	s.Advance(600 * time.Millisecond)
	var keys []string
	kv.WithLock(func(tx *Tx[string, int]) {
		for k, v := range tx.All {
			keys = append(keys, k)
			if k == "item1" {
				tx.Delete("item2")
				tx.Set("item4", v+300)
			}
		}
	})
	if diff := cmp.Diff(keys, []string{"item1", "item3", "item4"}); diff != "" {
		t.Fatalf("Tx.All (-got +want):\n%s", diff)
	}

	s.Advance(600 * time.Millisecond)
	if diff := cmp.Diff(keysOf(kv), []string{"item4"}); diff != "" {
		t.Fatalf("Expected Tx.All to leave expirations untouched (-got +want):\n%s", diff)
	}
	if kv.store.iters != 0 {
		t.Fatalf("Expected no running iterators, got %d", kv.store.iters)
	}
}
