package trie

// Config tells the engine how to pull the key out of a payload,
// hash that key, and compare two keys for equality. Splitting it out like
// this (rather than requiring Payload and Key to be the same type) is what
// lets a single engine back both a key-only Set and a key+value Map facade:
// the Map's payload carries a value alongside the key, the Set's doesn't,
// and neither needs the engine to know which.
type Config[K any, P any] struct {
	Hash  func(K) uint64
	Equal func(a, b K) bool
	Key   func(P) K
}

// bucket is an immutable leaf holding every payload that currently shares
// the hash prefix reaching this position (spec.md §4.B). Mutation is always
// copy-on-write: Insert/Remove return a new bucket and leave the receiver
// untouched, so a bucket can be read without any synchronisation once it
// has been published into a cell.
type bucket[K any, P any] struct {
	cfg     Config[K, P]
	entries []P
}

func (b *bucket[K, P]) isBranch() {}

func newBucket[K any, P any](cfg Config[K, P], entry P) *bucket[K, P] {
	return &bucket[K, P]{cfg: cfg, entries: []P{entry}}
}

// find returns the first payload (by scan order) whose key equals key, and
// whether one was found. Bucket order is otherwise unobserved and need not
// be stable across rewrites (spec.md §4.D.2, "Tie-breaks").
func (b *bucket[K, P]) find(key K) (P, bool) {
	for _, e := range b.entries {
		if b.cfg.Equal(b.cfg.Key(e), key) {
			return e, true
		}
	}
	var zero P
	return zero, false
}

// withInserted returns a new bucket equal to b but with any entry sharing
// payload's key removed and payload appended, plus the displaced payload
// (if any) and whether one existed. The engine only calls this once it has
// already decided a mutation is required (spec.md §4.D.2's IfMissing
// short-circuit, when a match already exists, never reaches here).
func (b *bucket[K, P]) withInserted(payload P) (*bucket[K, P], P, bool) {
	key := b.cfg.Key(payload)
	next := make([]P, 0, len(b.entries)+1)
	var displaced P
	hadExisting := false
	for _, e := range b.entries {
		if b.cfg.Equal(b.cfg.Key(e), key) {
			displaced = e
			hadExisting = true
			continue
		}
		next = append(next, e)
	}
	next = append(next, payload)
	nb := &bucket[K, P]{cfg: b.cfg, entries: next}
	return nb, displaced, hadExisting
}

// withRemoved returns either b unchanged (no match) or a new bucket,
// possibly empty, with the matching payload omitted, plus the removed
// payload if any (spec.md §4.B).
func (b *bucket[K, P]) withRemoved(key K) (*bucket[K, P], P, bool) {
	idx := -1
	for i, e := range b.entries {
		if b.cfg.Equal(b.cfg.Key(e), key) {
			idx = i
			break
		}
	}
	if idx < 0 {
		var zero P
		return b, zero, false
	}
	next := make([]P, 0, len(b.entries)-1)
	next = append(next, b.entries[:idx]...)
	next = append(next, b.entries[idx+1:]...)
	nb := &bucket[K, P]{cfg: b.cfg, entries: next}
	return nb, b.entries[idx], true
}

// len reports how many payloads this bucket currently holds.
func (b *bucket[K, P]) len() int {
	return len(b.entries)
}
