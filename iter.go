package ttlmap

// Iterators walk the live store in insertion order. The lock is held only
// while stepping the cursor, never while the loop body runs, so the body may
// call back into the map. Entries removed before the cursor reaches them are
// skipped and entries appended meanwhile are visited.

// All iterates over all key-value pairs in insertion order without touching them.
func (kv *Map[K, V]) All(yield func(K, V) bool) {
	kv.walk(false, func(e *entry[K, V]) bool {
		return yield(e.key, e.value)
	})
}

// Entries returns an iterator over key-value pairs in insertion order. With
// touch set, each entry's expiration restarts as it is yielded, so iterating
// keeps the entries alive.
func (kv *Map[K, V]) Entries(touch bool) func(yield func(K, V) bool) {
	return func(yield func(K, V) bool) {
		kv.walk(touch, func(e *entry[K, V]) bool {
			return yield(e.key, e.value)
		})
	}
}

// Values returns an iterator over values in insertion order, touching each
// entry as it is yielded when touch is set.
func (kv *Map[K, V]) Values(touch bool) func(yield func(V) bool) {
	return func(yield func(V) bool) {
		kv.walk(touch, func(e *entry[K, V]) bool {
			return yield(e.value)
		})
	}
}

// Keys iterates over all keys in insertion order. Keys never touches entries.
func (kv *Map[K, V]) Keys(yield func(K) bool) {
	kv.walk(false, func(e *entry[K, V]) bool {
		return yield(e.key)
	})
}

// KeysBackward iterates over all keys in reverse insertion order
func (kv *Map[K, V]) KeysBackward(yield func(K) bool) {
	kv.mu.Lock()
	kv.store.beginIter()
	i := len(kv.store.order) - 1
	kv.mu.Unlock()
	defer kv.endIter()

	for {
		kv.mu.Lock()
		e, ok := kv.store.prev(i)
		var key K
		if ok {
			key = e.key
			i = e.idx - 1
		}
		kv.mu.Unlock()

		if !ok || !yield(key) {
			return
		}
	}
}

// AllWhere returns an iterator over the key-value pairs match accepts, in
// insertion order. Entries are not touched, whether they match or not.
func (kv *Map[K, V]) AllWhere(match func(K, V) bool) func(yield func(K, V) bool) {
	return func(yield func(K, V) bool) {
		for k, v := range kv.All {
			if !match(k, v) {
				continue
			}
			if !yield(k, v) {
				return
			}
		}
	}
}

// KeysWhere returns an iterator over the keys match accepts, in insertion order
func (kv *Map[K, V]) KeysWhere(match func(K) bool) func(yield func(K) bool) {
	return func(yield func(K) bool) {
		for k := range kv.Keys {
			if match(k) && !yield(k) {
				return
			}
		}
	}
}

// ForEach calls fn for each entry in insertion order. Like All, it leaves
// expiration untouched.
func (kv *Map[K, V]) ForEach(fn func(V, K, *Map[K, V])) {
	for k, v := range kv.All {
		fn(v, k, kv)
	}
}

// walk drives a forward iteration. visit receives a copy of the entry taken
// under the lock, after the touch (if any) was applied.
func (kv *Map[K, V]) walk(touch bool, visit func(e *entry[K, V]) bool) {
	kv.mu.Lock()
	kv.store.beginIter()
	kv.mu.Unlock()
	defer kv.endIter()

	for i := 0; ; {
		e, ok := kv.step(&i, touch)
		if !ok || !visit(&e) {
			return
		}
	}
}

// step advances the cursor to the next live entry and applies the touch.
func (kv *Map[K, V]) step(i *int, touch bool) (entry[K, V], bool) {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	e, ok := kv.store.next(*i)
	if !ok {
		return entry[K, V]{}, false
	}
	*i = e.idx + 1
	if touch {
		kv.touchLocked(e)
	}
	return entry[K, V]{key: e.key, value: e.value}, true
}

func (kv *Map[K, V]) endIter() {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.store.endIter()
}
