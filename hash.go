package hamtrie

import (
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
)

// Hasher produces the 64-bit hash the trie uses to pick a branch at each
// level (spec.md §4.A, "the hash function is a collaborator supplied by the
// caller, not part of the trie itself"). Map and Set both require one at
// construction, the same way original_source/src/raw/mod.rs's Config trait
// requires a hash method rather than baking one in.
type Hasher[K any] func(K) uint64

// StringHasher returns a Hasher[string] with its own hash/maphash seed,
// chosen afresh on every call, matching the teacher's own use of maphash for string keys
// (_examples/rogpeppe-generic/ctrie/ctrie.go). Two different StringHasher
// values will not agree on a hash for the same string, so don't persist
// hashes across them.
func StringHasher() Hasher[string] {
	var seed = maphash.MakeSeed()
	return func(s string) uint64 {
		return maphash.String(seed, s)
	}
}

// BytesHasher is StringHasher's []byte counterpart.
func BytesHasher() Hasher[[]byte] {
	var seed = maphash.MakeSeed()
	return func(b []byte) uint64 {
		return maphash.Bytes(seed, b)
	}
}

// XXHashString is a StringHasher built on xxhash instead of maphash: it is
// not randomly seeded, so (unlike StringHasher) hashes are stable across
// process restarts and separate Map/Set instances, at the cost of being
// predictable to an adversary who controls the keys. Prefer StringHasher
// for hash tables exposed to untrusted input.
func XXHashString(s string) uint64 {
	return xxhash.Sum64String(s)
}

// XXHashBytes is XXHashString's []byte counterpart.
func XXHashBytes(b []byte) uint64 {
	return xxhash.Sum64(b)
}

// ConstantHasher returns a Hasher that always returns 0, forcing every key
// into the same bucket at the deepest level of the trie. It exists for tests that want to drive
// every key down the same collision path deterministically, mirroring
// original_source/src/raw/mod.rs's NoHasher test helper; production callers
// should never use it, since it turns every lookup into a linear scan.
func ConstantHasher[K any]() Hasher[K] {
	return func(K) uint64 { return 0 }
}
