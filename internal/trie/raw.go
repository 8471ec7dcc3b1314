// Package trie implements the concurrent, lock-free hash-array-mapped trie
// core: tagged node pointers, leaf buckets, inner nodes, and the traversal
// state machine that implements insert/lookup/remove/prune over them under
// epoch-style reclamation (see SPEC_FULL.md §4).
//
// This package is deliberately unaware of what a "payload" means beyond the
// Config it is given — map.go and set.go supply that, exactly mirroring how
// the original Rust source's raw::Raw<C, S> is generic over a Config trait
// that the higher-level ConMap/ConSet wrap (original_source/src/raw/mod.rs).
package trie

import "github.com/hamtrie/hamtrie/internal/reclaim"

// Mode selects Overwrite vs IfMissing behaviour for Insert-family calls,
// matching spec.md §4.D.2's TraverseMode.
type Mode int

const (
	// Overwrite replaces any existing payload for the key.
	Overwrite Mode = iota
	// IfMissing leaves an existing payload untouched.
	IfMissing
)

// entryState carries either an already-constructed payload or a deferred
// constructor plus the key it will be built from, matching the original
// source's TraverseState. The constructor is invoked at most once per call,
// memoized here, regardless of how many CAS retries the traversal takes —
// satisfying spec.md §6's "MUST NOT be assumed to run exactly once if a
// race occurs" (it may run zero times, if another writer wins first, or
// once; never more).
type entryState[K any, P any] struct {
	key        K
	payload    P
	hasPayload bool
	ctor       func(K) P
}

func (s *entryState[K, P]) get() P {
	if !s.hasPayload {
		s.payload = s.ctor(s.key)
		s.hasPayload = true
	}
	return s.payload
}

// Raw is the lock-free trie engine (spec.md §4.D / §6's Raw<C, S>). It is
// parameterized over a key type K and a payload type P via Config; map.go
// and set.go instantiate it with different P shapes.
type Raw[K any, P any] struct {
	cfg  Config[K, P]
	root cell
	dom  *reclaim.Domain
}

// New constructs an empty trie using the given Config.
func New[K any, P any](cfg Config[K, P]) *Raw[K, P] {
	return &Raw[K, P]{cfg: cfg, dom: &reclaim.Domain{}}
}

// pruneParent remembers, for the cell we are about to descend through, the
// cell itself and the slot value observed there — exactly what prune needs
// if a deeper cell later turns out to be condemned (spec.md §4.D.2 step 2).
type pruneParent struct {
	cell *cell
	old  *slot
}

// Insert inserts or replaces payload by its own key, returning the
// displaced payload if one existed (spec.md §6's insert).
func (e *Raw[K, P]) Insert(payload P) (P, bool) {
	st := &entryState[K, P]{key: e.cfg.Key(payload), payload: payload, hasPayload: true}
	return e.traverse(st, Overwrite)
}

// GetOrInsertWith returns the existing payload for key, or invokes ctor(key)
// once to create one, inserts it, and returns it (spec.md §6).
func (e *Raw[K, P]) GetOrInsertWith(key K, ctor func(K) P) P {
	st := &entryState[K, P]{key: key, ctor: ctor}
	result, _ := e.traverse(st, IfMissing)
	return result
}

// traverse implements the unified insert/overwrite/get-or-insert walk of
// spec.md §4.D.2. It returns (result, found): for Overwrite, found reports
// whether a previous payload was displaced and result is that payload
// (zero value otherwise); for IfMissing, result is always the payload now
// associated with the key and found is always true.
func (e *Raw[K, P]) traverse(st *entryState[K, P], mode Mode) (P, bool) {
	hash := e.cfg.Hash(st.key)
	var shift uint
	current := &e.root
	var parent *pruneParent
	guard := e.dom.Pin()
	defer guard.Unpin()

	for {
		node := current.load()

		switch {
		case node != nil && node.condemned:
			if parent == nil {
				fatalf("trie: encountered a condemned root cell")
			}
			prune(e.dom, parent.cell, parent.old)
			shift = 0
			current = &e.root
			parent = nil

		case node.isNull():
			next := &slot{branch: newBucket(e.cfg, st.get())}
			if current.cas(node, next) {
				if mode == Overwrite {
					var zero P
					return zero, false
				}
				return st.get(), true
			}
			// Another writer won the race for this cell; retry it.

		default:
			if b, ok := node.branch.(*bucket[K, P]); ok {
				if done, result, found := e.insertIntoBucket(current, node, b, st, mode, hash, shift); done {
					return result, found
				}
				continue
			}
			inner := node.branch.(*innerNode)
			idx := cellIndex(hash, shift)
			parent = &pruneParent{cell: current, old: node}
			current = &inner.cells[idx]
			shift += levelBits
		}
	}
}

// insertIntoBucket handles the three DATA-branch sub-cases of spec.md
// §4.D.2 step 4. done reports whether the calling traverse loop should
// return (result, found) immediately; when done is false, the caller
// should reload the same cell and try again (a split attempt, or a lost
// CAS race).
func (e *Raw[K, P]) insertIntoBucket(
	cur *cell, node *slot, data *bucket[K, P], st *entryState[K, P], mode Mode, hash uint64, shift uint,
) (done bool, result P, found bool) {
	if data.len() == 1 && shift < 64 {
		onlyKey := e.cfg.Key(data.entries[0])
		if !e.cfg.Equal(onlyKey, st.key) {
			otherHash := e.cfg.Hash(onlyKey)
			split := newInnerNode()
			split.cells[cellIndex(otherHash, shift)].p.Store(node)
			// Whether or not this CAS wins, we never retire the old bucket:
			// it is still reachable (from the new inner node, or because
			// the cell still holds it after a lost race) — spec.md §4.D.2.
			cur.cas(node, &slot{branch: split})
			return false, result, found
		}
	}

	existing, matched := data.find(st.key)
	if matched && mode == IfMissing {
		return true, existing, true
	}

	payload := st.get()
	next, displaced, hadExisting := data.withInserted(payload)
	if !cur.cas(node, &slot{branch: next}) {
		return false, result, found
	}
	e.dom.DeferDestroy(data)
	if hadExisting {
		return true, displaced, true
	}
	if mode == Overwrite {
		var zero P
		return true, zero, false
	}
	return true, payload, true
}

// Get performs a pure descent for key, never mutating the tree (spec.md
// §4.D.3).
func (e *Raw[K, P]) Get(key K) (P, bool) {
	hash := e.cfg.Hash(key)
	var shift uint
	current := &e.root
	guard := e.dom.Pin()
	defer guard.Unpin()

	for {
		node := current.load()
		if node.isNull() {
			var zero P
			return zero, false
		}
		if b, ok := node.branch.(*bucket[K, P]); ok {
			return b.find(key)
		}
		inner := node.branch.(*innerNode)
		current = &inner.cells[cellIndex(hash, shift)]
		shift += levelBits
	}
}

// Delete removes and returns the payload for key (spec.md §4.D.5),
// pruning the path back up towards the root opportunistically.
func (e *Raw[K, P]) Delete(key K) (P, bool) {
	hash := e.cfg.Hash(key)
	var shift uint
	current := &e.root
	var levels []pruneParent
	guard := e.dom.Pin()
	defer guard.Unpin()

	var deleted P
	var found bool
descend:
	for {
		node := current.load()

		switch {
		case node != nil && node.condemned:
			if len(levels) == 0 {
				fatalf("trie: encountered a condemned root cell")
			}
			top := levels[len(levels)-1]
			prune(e.dom, top.cell, top.old)
			levels = nil
			shift = 0
			current = &e.root

		case node.isNull():
			var zero P
			return zero, false

		default:
			if b, ok := node.branch.(*bucket[K, P]); ok {
				next, removed, matched := b.withRemoved(key)
				if !matched {
					return removed, false
				}
				var replacement *slot
				if next.len() > 0 {
					replacement = &slot{branch: next}
				}
				if !current.cas(node, replacement) {
					continue
				}
				e.dom.DeferDestroy(b)
				deleted, found = removed, true
				break descend
			}
			inner := node.branch.(*innerNode)
			levels = append(levels, pruneParent{cell: current, old: node})
			current = &inner.cells[cellIndex(hash, shift)]
			shift += levelBits
		}
	}

	for i := len(levels) - 1; i >= 0; i-- {
		lvl := levels[i]
		inner := lvl.old.branch.(*innerNode)
		nonNull := 0
		for j := range inner.cells {
			if inner.cells[j].load() != nil {
				nonNull++
			}
		}
		if nonNull > 1 {
			break
		}
		if prune(e.dom, lvl.cell, lvl.old) == pruneCopy {
			break
		}
	}
	return deleted, found
}

// IsEmpty reports whether the trie currently has no stored payloads. This
// is a relaxed read (spec.md §5): a concurrent writer may complete
// immediately after, so a true result only ever means "was empty a moment
// ago" — exactly like every other observation of a concurrent structure.
func (e *Raw[K, P]) IsEmpty() bool {
	return e.root.load().isNull()
}

// Range walks every payload currently reachable from the root, calling
// yield for each one. It does not provide a stable snapshot across
// concurrent mutation — a payload inserted or removed during the walk may
// or may not be observed — but it never revisits freed memory, the same
// guarantee Get relies on. Iteration stops early if yield returns false.
func (e *Raw[K, P]) Range(yield func(P) bool) {
	guard := e.dom.Pin()
	defer guard.Unpin()
	e.rangeCell(&e.root, yield)
}

func (e *Raw[K, P]) rangeCell(c *cell, yield func(P) bool) bool {
	node := c.load()
	if node.isNull() {
		return true
	}
	if b, ok := node.branch.(*bucket[K, P]); ok {
		for _, entry := range b.entries {
			if !yield(entry) {
				return false
			}
		}
		return true
	}
	inner := node.branch.(*innerNode)
	for i := range inner.cells {
		if !e.rangeCell(&inner.cells[i], yield) {
			return false
		}
	}
	return true
}

// Destroy recursively walks every node reachable from the root, calling
// visit on each. It assumes single-owner access (spec.md §4.D.6): no
// concurrent operation may be in flight. It unlinks and frees nothing; Go's
// garbage collector reclaims the nodes once the Raw is unreachable. The walk
// lets tests assert every reachable node is visited exactly once (spec.md §8
// property 6).
func (e *Raw[K, P]) Destroy(visit func(any)) {
	e.destroyCell(&e.root, visit)
}

func (e *Raw[K, P]) destroyCell(c *cell, visit func(any)) {
	node := c.p.Load()
	if node.isNull() {
		return
	}
	if visit != nil {
		visit(node.branch)
	}
	if b, ok := node.branch.(*bucket[K, P]); ok {
		_ = b
		return
	}
	inner := node.branch.(*innerNode)
	for i := range inner.cells {
		e.destroyCell(&inner.cells[i], visit)
	}
}
