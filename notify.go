package hamtrie

import "sync"

// updater controls how a new value replaces an old one in a changeFeed,
// mirroring the Updater contract of
// _examples/rogpeppe-generic/watcher2/value.go: it reports whether the
// change was significant enough to notify watchers.
type updater[T any] interface {
	update(dst *T, src T) bool
}

// always notifies on every publish, regardless of whether the value changed.
type always[T any] struct{}

func (always[T]) update(dst *T, src T) bool {
	*dst = src
	return true
}

// ifUnequal only notifies when the new value differs from the old one.
type ifUnequal[T comparable] struct{}

func (ifUnequal[T]) update(old *T, next T) bool {
	if *old == next {
		return false
	}
	*old = next
	return true
}

// changeFeed broadcasts a sequence of snapshots to any number of watchers,
// adapted from watcher2/value.go's sync.Cond-based Value/Watcher pair. A
// Map's ChangeFeed publishes one snapshot after every mutating call
// (Insert, GetOrInsertWith when it actually inserts, Delete when it
// actually removes) rather than on every Set like the original, since a
// lock-free Map has no single call site to hook a setter into — WatchableMap
// wraps each mutating method instead.
type changeFeed[T any] struct {
	wait sync.Cond
	mu   sync.RWMutex
	val  T
	ver  int
	up   updater[T]
}

func newChangeFeed[T any](up updater[T]) *changeFeed[T] {
	f := &changeFeed[T]{up: up}
	f.wait.L = f.mu.RLocker()
	return f
}

func (f *changeFeed[T]) publish(val T) {
	f.mu.Lock()
	if f.up.update(&f.val, val) {
		f.ver++
	}
	f.mu.Unlock()
	f.wait.Broadcast()
}

// Snapshot returns the most recently published value.
func (f *changeFeed[T]) Snapshot() T {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.val
}

// Watch returns a ChangeWatcher positioned at the feed's current version,
// so the first call to Next blocks until the next publish after this call.
func (f *changeFeed[T]) Watch() *ChangeWatcher[T] {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return &ChangeWatcher[T]{feed: f, ver: f.ver}
}

// ChangeWatcher observes a changeFeed's published snapshots in order,
// never missing one, though it may coalesce several publishes into one
// Next call if the watcher is slow to catch up — exactly watcher2's
// Watcher contract.
type ChangeWatcher[T any] struct {
	feed    *changeFeed[T]
	ver     int
	current T
}

// Next blocks until a new snapshot has been published, updates Value, and
// returns true. It never returns false: a ChangeWatcher's feed is never
// closed for the lifetime of the Map or Set that owns it.
func (w *ChangeWatcher[T]) Next() bool {
	f := w.feed
	f.mu.RLock()
	defer f.mu.RUnlock()
	for w.ver == f.ver {
		f.wait.Wait()
	}
	w.current = f.val
	w.ver = f.ver
	return true
}

// Value returns the snapshot most recently retrieved by Next.
func (w *ChangeWatcher[T]) Value() T {
	return w.current
}

// WatchableMap wraps a Map and publishes the map's length to a ChangeFeed
// after every call that actually mutates the map, letting callers watch
// for size changes without polling Len.
type WatchableMap[K comparable, V any] struct {
	*Map[K, V]
	feed *changeFeed[int]
}

// NewWatchableMap constructs an empty WatchableMap.
func NewWatchableMap[K comparable, V any](hash Hasher[K]) *WatchableMap[K, V] {
	return &WatchableMap[K, V]{
		Map:  NewMap[K, V](hash),
		feed: newChangeFeed[int](ifUnequal[int]{}),
	}
}

// Insert associates value with key and publishes the map's new length.
func (w *WatchableMap[K, V]) Insert(key K, value V) (previous V, replaced bool) {
	previous, replaced = w.Map.Insert(key, value)
	w.feed.publish(w.Map.Len())
	return previous, replaced
}

// GetOrInsertWith returns the value stored under key, or builds and stores
// one with ctor, and publishes the map's new length.
func (w *WatchableMap[K, V]) GetOrInsertWith(key K, ctor func(K) V) V {
	v := w.Map.GetOrInsertWith(key, ctor)
	w.feed.publish(w.Map.Len())
	return v
}

// Delete removes key and publishes the map's new length.
func (w *WatchableMap[K, V]) Delete(key K) (V, bool) {
	v, found := w.Map.Delete(key)
	if found {
		w.feed.publish(w.Map.Len())
	}
	return v, found
}

// WatchLen returns a ChangeWatcher over the map's length.
func (w *WatchableMap[K, V]) WatchLen() *ChangeWatcher[int] {
	return w.feed.Watch()
}
