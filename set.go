package hamtrie

import "github.com/hamtrie/hamtrie/internal/trie"

// setEntry is the key-only payload the Set facade instantiates Raw with;
// it exists so the engine in internal/trie never has to special-case a
// valueless payload (SPEC_FULL.md §4.F).
type setEntry[K any] struct {
	key K
}

// Set is a concurrent, lock-free set of K (spec.md §1, "ConSet"). It
// shares its engine with Map (internal/trie.Raw); a Set is simply a Map
// whose payload carries no value.
type Set[K comparable] struct {
	raw *trie.Raw[K, setEntry[K]]
}

// NewSet constructs an empty Set keyed by K, using hash to place keys in
// the trie.
func NewSet[K comparable](hash Hasher[K]) *Set[K] {
	cfg := trie.Config[K, setEntry[K]]{
		Hash:  hash,
		Equal: func(a, b K) bool { return a == b },
		Key:   func(e setEntry[K]) K { return e.key },
	}
	return &Set[K]{raw: trie.New(cfg)}
}

// Insert adds key to the set, reporting whether it was already present.
func (s *Set[K]) Insert(key K) (alreadyPresent bool) {
	_, found := s.raw.Insert(setEntry[K]{key: key})
	return found
}

// Contains reports whether key is a member of the set.
func (s *Set[K]) Contains(key K) bool {
	_, ok := s.raw.Get(key)
	return ok
}

// Delete removes key from the set, reporting whether it was present.
func (s *Set[K]) Delete(key K) (removed bool) {
	_, ok := s.raw.Delete(key)
	return ok
}

// IsEmpty reports whether the set currently holds no members.
func (s *Set[K]) IsEmpty() bool {
	return s.raw.IsEmpty()
}

// Len counts the members currently reachable from the root; see Map.Len
// for why this is O(n) rather than a cached counter.
func (s *Set[K]) Len() int {
	n := 0
	s.raw.Range(func(setEntry[K]) bool {
		n++
		return true
	})
	return n
}

// Range calls yield once for every member currently reachable from the
// root, stopping early if yield returns false.
func (s *Set[K]) Range(yield func(key K) bool) {
	s.raw.Range(func(e setEntry[K]) bool {
		return yield(e.key)
	})
}
