package hamtrie

import "github.com/hamtrie/hamtrie/internal/trie"

// Map is a concurrent, lock-free map from K to V (spec.md §1, "ConMap").
// Multiple goroutines may call Insert, GetOrInsertWith, Get, Delete and
// Range on the same Map concurrently without external synchronisation; see
// SPEC_FULL.md §5 for the exact ordering guarantees each method offers.
//
// A zero Map is not usable; construct one with NewMap.
type Map[K comparable, V any] struct {
	raw *trie.Raw[K, Payload[K, V]]
}

// NewMap constructs an empty Map keyed by K, using hash to place keys in
// the trie. hash need not be cryptographically strong, only well
// distributed; see StringHasher, XXHashString and ConstantHasher for ready
// made choices.
func NewMap[K comparable, V any](hash Hasher[K]) *Map[K, V] {
	cfg := trie.Config[K, Payload[K, V]]{
		Hash:  hash,
		Equal: func(a, b K) bool { return a == b },
		Key:   func(p Payload[K, V]) K { return p.key },
	}
	return &Map[K, V]{raw: trie.New(cfg)}
}

// Insert associates value with key, returning the value it replaced, if
// any (spec.md §6's insert).
func (m *Map[K, V]) Insert(key K, value V) (previous V, replaced bool) {
	displaced, found := m.raw.Insert(Payload[K, V]{key: key, value: value})
	return displaced.value, found
}

// GetOrInsertWith returns the value already stored under key, or calls
// ctor(key) to build one, stores it, and returns it. ctor runs at most
// once per call, but may run zero times if a concurrent writer inserts the
// key first (spec.md §6).
func (m *Map[K, V]) GetOrInsertWith(key K, ctor func(K) V) V {
	return m.raw.GetOrInsertWith(key, func(k K) Payload[K, V] {
		return Payload[K, V]{key: k, value: ctor(k)}
	}).value
}

// Get returns the value stored under key, and whether one was found.
func (m *Map[K, V]) Get(key K) (V, bool) {
	p, ok := m.raw.Get(key)
	return p.value, ok
}

// Delete removes and returns the value stored under key, and whether one
// was found.
func (m *Map[K, V]) Delete(key K) (V, bool) {
	p, ok := m.raw.Delete(key)
	return p.value, ok
}

// IsEmpty reports whether the map currently holds no entries. Like every
// other observation of a concurrent Map, this is a point-in-time snapshot
// that a racing writer may invalidate immediately after the call returns.
func (m *Map[K, V]) IsEmpty() bool {
	return m.raw.IsEmpty()
}

// Len counts the entries currently reachable from the root by walking the
// whole trie; unlike a plain Go map, Map keeps no running counter (one
// would need its own synchronisation, defeating the point of a lock-free
// structure), so Len is O(n) and, under concurrent mutation, only ever an
// approximation (SPEC_FULL.md §4.G).
func (m *Map[K, V]) Len() int {
	n := 0
	m.raw.Range(func(Payload[K, V]) bool {
		n++
		return true
	})
	return n
}

// Range calls yield once for every (key, value) pair currently reachable
// from the root, stopping early if yield returns false. It offers no
// snapshot isolation: entries inserted or removed concurrently may or may
// not be observed (SPEC_FULL.md §4.H).
func (m *Map[K, V]) Range(yield func(key K, value V) bool) {
	m.raw.Range(func(p Payload[K, V]) bool {
		return yield(p.key, p.value)
	})
}
