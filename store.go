package ttlmap

// entry is one stored key-value pair and the expiration callback it owns.
type entry[K comparable, V any] struct {
	key   K
	value V
	timer Timer
	gen   uint64
	idx   int
}

// store keeps entries in insertion order.
//
// Removal leaves a nil tombstone in order instead of shifting it, so an
// iterator holding a position stays valid while the map changes under it.
// Tombstones are compacted away only while no iterator is running.
type store[K comparable, V any] struct {
	index map[K]*entry[K, V]
	order []*entry[K, V]
	dead  int
	iters int
}

func newStore[K comparable, V any]() *store[K, V] {
	return &store[K, V]{
		index: make(map[K]*entry[K, V]),
	}
}

func (s *store[K, V]) get(key K) (*entry[K, V], bool) {
	e, ok := s.index[key]
	return e, ok
}

func (s *store[K, V]) len() int {
	return len(s.index)
}

// add appends a new entry for key; the caller has checked it is absent.
func (s *store[K, V]) add(key K, value V) *entry[K, V] {
	e := &entry[K, V]{key: key, value: value, idx: len(s.order)}
	s.index[key] = e
	s.order = append(s.order, e)
	return e
}

func (s *store[K, V]) remove(e *entry[K, V]) {
	delete(s.index, e.key)
	s.order[e.idx] = nil
	s.dead++
	s.compact()
}

// reset drops every entry. With iterators running the slots are tombstoned
// rather than truncated, so entries added afterwards land past their cursors.
func (s *store[K, V]) reset() {
	clear(s.index)
	if s.iters > 0 {
		for i, e := range s.order {
			if e != nil {
				s.order[i] = nil
				s.dead++
			}
		}
		return
	}
	s.order = nil
	s.dead = 0
}

// next returns the first live entry at or after position i.
func (s *store[K, V]) next(i int) (*entry[K, V], bool) {
	for ; i < len(s.order); i++ {
		if e := s.order[i]; e != nil {
			return e, true
		}
	}
	return nil, false
}

// prev returns the last live entry at or before position i.
func (s *store[K, V]) prev(i int) (*entry[K, V], bool) {
	if i >= len(s.order) {
		i = len(s.order) - 1
	}
	for ; i >= 0; i-- {
		if e := s.order[i]; e != nil {
			return e, true
		}
	}
	return nil, false
}

func (s *store[K, V]) beginIter() {
	s.iters++
}

func (s *store[K, V]) endIter() {
	s.iters--
	s.compact()
}

// compact squeezes tombstones out once they make up half of order.
func (s *store[K, V]) compact() {
	if s.iters > 0 || s.dead == 0 {
		return
	}
	if len(s.index) == 0 {
		s.order = nil
		s.dead = 0
		return
	}
	if s.dead < 32 || s.dead*2 < len(s.order) {
		return
	}
	live := make([]*entry[K, V], 0, len(s.index))
	for _, e := range s.order {
		if e != nil {
			e.idx = len(live)
			live = append(live, e)
		}
	}
	s.order = live
	s.dead = 0
}
