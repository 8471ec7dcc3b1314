package hamtrie

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// InsertAll inserts every (key, value) pair from pairs into m, distributing
// the work across workers goroutines. Because Map.Insert is itself
// lock-free, callers get no benefit from a global lock here — so, grounded
// on _examples/ethereum-go-verkle's go.mod (golang.org/x/sync is pulled in
// there for exactly this kind of bounded fan-out over trie work), InsertAll
// just shards pairs across an errgroup.Group and lets the trie's own CAS
// retries absorb the contention.
//
// workers <= 0 is treated as 1. InsertAll returns the first non-nil error
// any worker produced; since Map.Insert cannot itself fail, this is only
// ever the error returned by ctx's cancellation, if ctx is cancelled by the
// caller through some other path while InsertAll is running.
func InsertAll[K comparable, V any](ctx context.Context, m *Map[K, V], pairs []Payload[K, V], workers int) error {
	if workers <= 0 {
		workers = 1
	}
	if workers > len(pairs) {
		workers = len(pairs)
	}
	if workers == 0 {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	chunk := (len(pairs) + workers - 1) / workers
	for start := 0; start < len(pairs); start += chunk {
		end := start + chunk
		if end > len(pairs) {
			end = len(pairs)
		}
		slice := pairs[start:end]
		g.Go(func() error {
			for _, p := range slice {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				m.Insert(p.key, p.value)
			}
			return nil
		})
	}
	return g.Wait()
}

// InsertAllSet is InsertAll's Set counterpart.
func InsertAllSet[K comparable](ctx context.Context, s *Set[K], keys []K, workers int) error {
	if workers <= 0 {
		workers = 1
	}
	if workers > len(keys) {
		workers = len(keys)
	}
	if workers == 0 {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	chunk := (len(keys) + workers - 1) / workers
	for start := 0; start < len(keys); start += chunk {
		end := start + chunk
		if end > len(keys) {
			end = len(keys)
		}
		slice := keys[start:end]
		g.Go(func() error {
			for _, k := range slice {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				s.Insert(k)
			}
			return nil
		})
	}
	return g.Wait()
}
