package hamtrie

// Payload is what Map stores inside the trie: a key alongside its value.
// It mirrors original_source/src/raw/mod.rs's Leaf<K, V> — a small,
// cheaply-copied struct rather than a reference-counted handle, which is
// enough to satisfy spec.md §4.B's "payloads are cheaply cloneable"
// contract in Go, where copying a Payload[K, V] just copies two fields.
// Callers who want shared ownership of V can instantiate Map with a
// pointer or interface V themselves.
type Payload[K any, V any] struct {
	key   K
	value V
}

// Key returns the payload's key.
func (p Payload[K, V]) Key() K { return p.key }

// Value returns the payload's value.
func (p Payload[K, V]) Value() V { return p.value }
