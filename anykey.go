package hamtrie

import (
	"hash/maphash"

	"github.com/hamtrie/hamtrie/internal/trie"
)

// KeyHasher defines a hash function and an equivalence relation over
// values of type K, for keys that are not necessarily `comparable` in the
// Go sense (slices, for instance). It mirrors the Hasher interface of
// anyhash.Map in this repo's teacher lineage
// (_examples/rogpeppe-generic/anyhash/map.go), adapted here to drive the
// lock-free trie in internal/trie instead of a plain Go map-of-buckets:
// AnyMap below is what that package's Map becomes once it needs to survive
// concurrent access without a table-wide lock.
type KeyHasher[K any] interface {
	Hash(*maphash.Hash, K)
	Equal(x, y K) bool
}

// ComparableKeyHasher adapts any comparable type to KeyHasher using
// maphash.WriteComparable, exactly as anyhash.ComparableHasher does.
type ComparableKeyHasher[K comparable] struct{}

// Hash implements KeyHasher.
func (ComparableKeyHasher[K]) Hash(h *maphash.Hash, v K) { maphash.WriteComparable(h, v) }

// Equal implements KeyHasher.
func (ComparableKeyHasher[K]) Equal(x, y K) bool { return x == y }

// AnyMap is Map's counterpart for keys that cannot satisfy Go's
// `comparable` constraint, such as []byte or struct types embedding a
// slice. It shares Map's lock-free engine (internal/trie.Raw); only the
// key-handling collaborator differs: instead of `==`, every comparison and
// every hash goes through the supplied KeyHasher.
type AnyMap[K any, V any] struct {
	raw *trie.Raw[K, Payload[K, V]]
}

// NewAnyMap constructs an empty AnyMap using h to hash and compare keys.
func NewAnyMap[K any, V any](h KeyHasher[K]) *AnyMap[K, V] {
	seed := maphash.MakeSeed()
	cfg := trie.Config[K, Payload[K, V]]{
		Hash: func(k K) uint64 {
			var mh maphash.Hash
			mh.SetSeed(seed)
			h.Hash(&mh, k)
			return mh.Sum64()
		},
		Equal: h.Equal,
		Key:   func(p Payload[K, V]) K { return p.key },
	}
	return &AnyMap[K, V]{raw: trie.New(cfg)}
}

// Insert associates value with key, returning the value it replaced, if
// any.
func (m *AnyMap[K, V]) Insert(key K, value V) (previous V, replaced bool) {
	displaced, found := m.raw.Insert(Payload[K, V]{key: key, value: value})
	return displaced.value, found
}

// Get returns the value stored under key, and whether one was found.
func (m *AnyMap[K, V]) Get(key K) (V, bool) {
	p, ok := m.raw.Get(key)
	return p.value, ok
}

// Delete removes and returns the value stored under key, and whether one
// was found.
func (m *AnyMap[K, V]) Delete(key K) (V, bool) {
	p, ok := m.raw.Delete(key)
	return p.value, ok
}

// IsEmpty reports whether the map currently holds no entries.
func (m *AnyMap[K, V]) IsEmpty() bool {
	return m.raw.IsEmpty()
}

// Len counts the entries currently reachable from the root; see Map.Len
// for why this walks the tree rather than reading a cached counter.
func (m *AnyMap[K, V]) Len() int {
	n := 0
	m.raw.Range(func(Payload[K, V]) bool {
		n++
		return true
	})
	return n
}

// Range calls yield once for every (key, value) pair currently reachable
// from the root, stopping early if yield returns false.
func (m *AnyMap[K, V]) Range(yield func(key K, value V) bool) {
	m.raw.Range(func(p Payload[K, V]) bool {
		return yield(p.key, p.value)
	})
}
