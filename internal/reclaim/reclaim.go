// Package reclaim provides the memory-reclamation collaborator that the
// trie engine in internal/trie depends on but never implements itself.
//
// The data structure this repo builds on top of (see internal/trie) comes
// from a design that assumes manual memory management: a thread walking the
// structure "pins" an epoch so that concurrent writers know not to free
// anything that pin could still observe, and a writer that unlinks a node
// hands it to the epoch collaborator for "deferred destruction" once every
// pin that predates the unlink has gone away.
//
// Go already provides exactly that guarantee for every live pointer: the
// garbage collector will not collect an object while any goroutine still
// holds a reference to it, pinned or not. So the Domain/Guard type here
// keeps the call shape the original algorithm relies on (Pin, then read;
// CAS out, then DeferDestroy) without doing any bookkeeping beyond counting
// active guards, which ActiveGuards exposes for tests and diagnostics.
// Swapping in a real epoch or hazard-pointer scheme
// later (e.g. to manage off-heap allocations) only requires replacing this
// package; internal/trie never reaches past the Domain/Guard interface.
package reclaim

import "sync/atomic"

// Domain hands out Guards and accepts deferred-destruction callbacks for
// nodes that have been unlinked from a shared structure.
type Domain struct {
	active atomic.Int64
}

// Guard is held for the duration of an operation that may dereference
// pointers read from the structure the Domain protects. While a Guard is
// live, any value the operation observed through the Domain remains safe to
// dereference.
type Guard struct {
	d *Domain
}

// Pin starts a new guarded scope. Callers must call Unpin when the scope
// ends, typically via defer.
func (d *Domain) Pin() *Guard {
	d.active.Add(1)
	return &Guard{d: d}
}

// Unpin ends the guarded scope started by Pin.
func (g *Guard) Unpin() {
	g.d.active.Add(-1)
}

// ActiveGuards reports the number of currently pinned guards. It exists for
// tests and diagnostics; the engine itself never branches on it.
func (d *Domain) ActiveGuards() int64 {
	return d.active.Load()
}

// DeferDestroy retires an object that has just been unlinked from the
// structure. The contract the caller must uphold (see internal/trie) is
// that the unlink (the CAS that removed the last reference reachable from
// the root) has already happened by the time DeferDestroy is called.
//
// Because the garbage collector — not this Domain — is what actually
// reclaims the memory, DeferDestroy has nothing to schedule; it exists so
// that the call site reads the same way the epoch-based original does, and
// so a future hazard-pointer or generation-counted Domain can slot in
// without touching internal/trie.
func (d *Domain) DeferDestroy(node any) {
	_ = node
}
