// Package ttlmap provides an insertion-ordered map whose entries expire after
// a fixed idle period. Every entry owns one scheduled expiration; reading or
// rewriting the entry reschedules it, so the deadline slides forward from the
// last touch.
package ttlmap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/samber/mo"
)

const (
	// DefaultTTL is used when New is given a zero ttl and TTLMAP_TTL is unset.
	DefaultTTL = time.Second
	// MinTTL is the floor a negative ttl is clamped to.
	MinTTL = time.Millisecond
)

// Map is an insertion-ordered map with sliding per-entry expiration.
// It is safe for concurrent use.
type Map[K comparable, V any] struct {
	mu     sync.Mutex
	ttl    time.Duration
	sched  Scheduler
	logger *slog.Logger
	store  *store[K, V]
	gen    uint64
}

// Option is a functional option for configuring a Map
type Option func(*config)

type config struct {
	scheduler Scheduler
	logger    *slog.Logger
}

// WithScheduler sets the scheduler expirations are registered with.
// The default schedules on the wall clock.
func WithScheduler(s Scheduler) Option {
	return func(c *config) {
		c.scheduler = s
	}
}

// WithLogger sets the logger for expiration and clear events.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// TryNew creates an empty Map whose entries expire ttl after their last touch.
// A zero ttl falls back to the TTLMAP_TTL env var and then to DefaultTTL;
// a negative ttl is clamped to MinTTL.
func TryNew[K comparable, V any](ttl time.Duration, opts ...Option) (*Map[K, V], error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	if ttl == 0 && os.Getenv("TTLMAP_TTL") != "" {
		d, err := time.ParseDuration(os.Getenv("TTLMAP_TTL"))
		if err != nil {
			return nil, fmt.Errorf("ttlmap: parsing TTLMAP_TTL: %w", err)
		}
		ttl = d
	}
	if ttl == 0 {
		ttl = DefaultTTL
	}
	if ttl < MinTTL {
		ttl = MinTTL
	}

	if cfg.scheduler == nil {
		cfg.scheduler = wallClock{}
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	return &Map[K, V]{
		ttl:    ttl,
		sched:  cfg.scheduler,
		logger: cfg.logger,
		store:  newStore[K, V](),
	}, nil
}

// New creates an empty Map, panics on error.
func New[K comparable, V any](ttl time.Duration, opts ...Option) *Map[K, V] {
	kv, err := TryNew[K, V](ttl, opts...)
	if err != nil {
		panic(err)
	}
	return kv
}

// TTL returns the idle period after which untouched entries expire.
func (kv *Map[K, V]) TTL() time.Duration {
	return kv.ttl
}

// Set stores value under key and restarts the key's expiration.
// A new key is appended to the iteration order; an existing key keeps its
// position. Set returns kv so calls can be chained.
func (kv *Map[K, V]) Set(key K, value V) *Map[K, V] {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.setLocked(key, value)
	return kv
}

// Get returns the value for key and restarts its expiration.
func (kv *Map[K, V]) Get(key K) (V, bool) {
	return kv.Lookup(key, true)
}

// Peek returns the value for key without affecting its expiration.
func (kv *Map[K, V]) Peek(key K) (V, bool) {
	return kv.Lookup(key, false)
}

// Lookup returns the value for key, restarting its expiration when touch is set.
func (kv *Map[K, V]) Lookup(key K, touch bool) (V, bool) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	return kv.lookupLocked(key, touch)
}

// GetOr returns the value for key, or defaultValue if it is missing.
func (kv *Map[K, V]) GetOr(key K, defaultValue V) V {
	if v, ok := kv.Get(key); ok {
		return v
	}
	return defaultValue
}

// GetOption is Get with the result wrapped in an option.
func (kv *Map[K, V]) GetOption(key K) mo.Option[V] {
	if v, ok := kv.Get(key); ok {
		return mo.Some(v)
	}
	return mo.None[V]()
}

// Has reports whether key is present. It does not touch the entry.
func (kv *Map[K, V]) Has(key K) bool {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	_, ok := kv.store.get(key)
	return ok
}

// Touch restarts the expiration of key without reading it. It reports whether
// key was present.
func (kv *Map[K, V]) Touch(key K) bool {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	e, ok := kv.store.get(key)
	if !ok {
		return false
	}
	kv.touchLocked(e)
	return true
}

// Delete removes key and cancels its pending expiration. It reports whether
// the key was present.
func (kv *Map[K, V]) Delete(key K) bool {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	return kv.deleteLocked(key)
}

// Clear cancels every pending expiration and removes all entries.
func (kv *Map[K, V]) Clear() {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	n := kv.store.len()
	for _, e := range kv.store.index {
		e.timer.Stop()
	}
	kv.store.reset()
	kv.logger.Log(context.Background(), slog.LevelDebug, "ttlmap: cleared", "entries", n)
}

// Len returns the number of live entries. It can drop at any moment as
// entries expire.
func (kv *Map[K, V]) Len() int {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	return kv.store.len()
}

func (kv *Map[K, V]) setLocked(key K, value V) {
	if e, ok := kv.store.get(key); ok {
		e.value = value
		kv.touchLocked(e)
		return
	}
	kv.schedule(kv.store.add(key, value))
}

func (kv *Map[K, V]) lookupLocked(key K, touch bool) (V, bool) {
	e, ok := kv.store.get(key)
	if !ok {
		var zero V
		return zero, false
	}
	if touch {
		kv.touchLocked(e)
	}
	return e.value, true
}

func (kv *Map[K, V]) deleteLocked(key K) bool {
	e, ok := kv.store.get(key)
	if !ok {
		return false
	}
	e.timer.Stop()
	kv.store.remove(e)
	return true
}

// touchLocked replaces the entry's pending expiration with a fresh one.
func (kv *Map[K, V]) touchLocked(e *entry[K, V]) {
	e.timer.Stop()
	kv.schedule(e)
}

// schedule gives e a new expiration one ttl from now. The callback carries
// the generation it was created for, so a fire that lost the race against
// Stop finds a newer generation and does nothing.
func (kv *Map[K, V]) schedule(e *entry[K, V]) {
	kv.gen++
	gen := kv.gen
	key := e.key
	e.gen = gen
	e.timer = kv.sched.AfterFunc(kv.ttl, func() {
		kv.expire(key, gen)
	})
}

func (kv *Map[K, V]) expire(key K, gen uint64) {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	e, ok := kv.store.get(key)
	if !ok || e.gen != gen {
		return
	}
	kv.store.remove(e)
	kv.logger.Log(context.Background(), slog.LevelDebug, "ttlmap: expired", "key", key)
}
