package ttlmap

import (
	"errors"

	"github.com/google/go-cmp/cmp"
	"github.com/xtdlib/rat"
)

// ErrNotRational is returned by TryAddRat when the map's value type is not *rat.Rational.
var ErrNotRational = errors.New("ttlmap: value type is not *rat.Rational")

// SetNX sets a value only if the key doesn't exist, returns true if the value was set.
// An existing key is left untouched.
func (kv *Map[K, V]) SetNX(key K, value V) bool {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	if _, ok := kv.store.get(key); ok {
		return false
	}
	kv.setLocked(key, value)
	return true
}

// SetNZ sets a value only if it's not zero, returns the value.
// For a zero value it returns the existing value instead, touching it, or
// value itself if key is missing. Values are compared with cmp.Equal, so V
// must be comparable by go-cmp (exported fields or an Equal method).
func (kv *Map[K, V]) SetNZ(key K, value V) V {
	var zero V
	if !cmp.Equal(value, zero) {
		kv.Set(key, value)
		return value
	}
	return kv.GetOr(key, value)
}

// Update atomically replaces the value at key with fn applied to it and
// returns the new value. A missing key starts from the zero value. Either way
// the key's expiration restarts. fn runs with the map locked and must not
// call back into the map.
func (kv *Map[K, V]) Update(key K, fn func(V) V) V {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	current, _ := kv.lookupLocked(key, false)
	result := fn(current)
	kv.setLocked(key, result)
	return result
}

// AddRat adds delta to the counter at key, panics on error.
func (kv *Map[K, V]) AddRat(key K, delta any) *rat.Rational {
	out, err := kv.TryAddRat(key, delta)
	if err != nil {
		panic(err)
	}
	return out
}

// AddInt adds an integer delta to the counter at key, panics on error.
func (kv *Map[K, V]) AddInt(key K, delta int) *rat.Rational {
	out, err := kv.TryAddRat(key, delta)
	if err != nil {
		panic(err)
	}
	return out
}

// TryAddRat adds delta to the counter at key and returns the new total. A
// missing or expired counter starts from zero. delta is anything rat.Rat
// accepts: integers, floats, "3/10" style strings or *rat.Rational.
// Every increment restarts the key's expiration, so a counter lives for as
// long as it keeps being bumped.
func (kv *Map[K, V]) TryAddRat(key K, delta any) (*rat.Rational, error) {
	var zero V
	if _, ok := any(zero).(*rat.Rational); !ok {
		return nil, ErrNotRational
	}

	var out *rat.Rational
	kv.Update(key, func(v V) V {
		old, _ := any(v).(*rat.Rational)
		if old == nil {
			old = rat.Rat(0)
		}
		out = old.Add(delta)
		return any(out).(V)
	})
	return out, nil
}

// Tx is a view of a Map whose lock is already held, handed out by WithLock.
// It must not be used after the WithLock callback returns.
type Tx[K comparable, V any] struct {
	kv *Map[K, V]
}

// WithLock runs fn holding the map's lock, so a group of reads and writes
// through tx is atomic with respect to other callers and to expirations.
// fn must use tx, not the map itself, or it deadlocks.
func (kv *Map[K, V]) WithLock(fn func(tx *Tx[K, V])) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	fn(&Tx[K, V]{kv: kv})
}

// Get returns the value for key and restarts its expiration.
func (tx *Tx[K, V]) Get(key K) (V, bool) {
	return tx.kv.lookupLocked(key, true)
}

// Peek returns the value for key without affecting its expiration.
func (tx *Tx[K, V]) Peek(key K) (V, bool) {
	return tx.kv.lookupLocked(key, false)
}

// Set stores value under key and restarts its expiration.
func (tx *Tx[K, V]) Set(key K, value V) *Tx[K, V] {
	tx.kv.setLocked(key, value)
	return tx
}

// Delete removes key, reporting whether it was present.
func (tx *Tx[K, V]) Delete(key K) bool {
	return tx.kv.deleteLocked(key)
}

// Has reports whether key is present without touching it.
func (tx *Tx[K, V]) Has(key K) bool {
	_, ok := tx.kv.store.get(key)
	return ok
}

// Len returns the number of live entries.
func (tx *Tx[K, V]) Len() int {
	return tx.kv.store.len()
}

// All iterates over all key-value pairs in insertion order without touching
// them. The loop body runs with the lock held, so it may only use tx.
func (tx *Tx[K, V]) All(yield func(K, V) bool) {
	s := tx.kv.store
	s.beginIter()
	defer s.endIter()

	for i := 0; ; {
		e, ok := s.next(i)
		if !ok {
			return
		}
		i = e.idx + 1
		if !yield(e.key, e.value) {
			return
		}
	}
}
