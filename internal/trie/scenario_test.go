package trie

import (
	"fmt"
	"testing"

	qt "github.com/frankban/quicktest"
)

// TestEndToEndScenarios implements spec.md §8's table of concrete
// end-to-end scenarios verbatim, using the constant-zero hasher the table
// itself calls for.
func TestEndToEndScenarios(t *testing.T) {
	t.Run("scenario1", func(t *testing.T) {
		c := qt.New(t)
		r := New(zeroCfg())
		r.Insert(entry{"a", 1})
		r.Insert(entry{"b", 2})
		a, _ := r.Get("a")
		b, _ := r.Get("b")
		_, foundC := r.Get("c")
		c.Assert(a.value, qt.Equals, 1)
		c.Assert(b.value, qt.Equals, 2)
		c.Assert(foundC, qt.IsFalse)
	})

	t.Run("scenario2", func(t *testing.T) {
		c := qt.New(t)
		r := New(zeroCfg())
		r.Insert(entry{"a", 1})
		old, replaced := r.Insert(entry{"a", 2})
		c.Assert(replaced, qt.IsTrue)
		c.Assert(old.value, qt.Equals, 1)
		got, _ := r.Get("a")
		c.Assert(got.value, qt.Equals, 2)
	})

	t.Run("scenario3", func(t *testing.T) {
		c := qt.New(t)
		r := New(zeroCfg())
		r.Insert(entry{"a", 1})
		removed, found := r.Delete("a")
		c.Assert(found, qt.IsTrue)
		c.Assert(removed.value, qt.Equals, 1)
		_, found = r.Get("a")
		c.Assert(found, qt.IsFalse)
		c.Assert(r.IsEmpty(), qt.IsTrue)
	})

	t.Run("scenario4", func(t *testing.T) {
		c := qt.New(t)
		r := New(zeroCfg())
		calls := 0
		first := r.GetOrInsertWith("a", func(string) entry { calls++; return entry{"a", 1} })
		second := r.GetOrInsertWith("a", func(string) entry { calls++; return entry{"a", 9} })
		c.Assert(first.value, qt.Equals, 1)
		c.Assert(second.value, qt.Equals, 1)
		c.Assert(calls, qt.Equals, 1)
	})

	t.Run("scenario5", func(t *testing.T) {
		c := qt.New(t)
		r := New(zeroCfg())
		r.Insert(entry{"a", 1})
		r.Insert(entry{"b", 2})
		r.Insert(entry{"c", 3})
		r.Delete("b")
		a, _ := r.Get("a")
		_, foundB := r.Get("b")
		cc, _ := r.Get("c")
		c.Assert(a.value, qt.Equals, 1)
		c.Assert(foundB, qt.IsFalse)
		c.Assert(cc.value, qt.Equals, 3)
	})

	t.Run("scenario6", func(t *testing.T) {
		c := qt.New(t)
		r := New(intCfg())
		for i := 0; i < 1000; i++ {
			r.Insert(entry{fmt.Sprintf("key-%d", i), i})
		}
		for i := 0; i < 1000; i++ {
			got, found := r.Get(fmt.Sprintf("key-%d", i))
			c.Assert(found, qt.IsTrue)
			c.Assert(got.value, qt.Equals, i)
		}
		for i := 0; i < 1000; i += 2 {
			r.Delete(fmt.Sprintf("key-%d", i))
		}
		c.Assert(r.IsEmpty(), qt.IsFalse)
		for i := 0; i < 1000; i++ {
			got, found := r.Get(fmt.Sprintf("key-%d", i))
			if i%2 == 0 {
				c.Assert(found, qt.IsFalse)
			} else {
				c.Assert(found, qt.IsTrue)
				c.Assert(got.value, qt.Equals, i)
			}
		}
	})
}

// TestSplitOnSharedLowBits covers spec.md §8's boundary behaviour: 17 keys
// whose hashes share their low 4 bits. The second key splits the shared
// bucket on bits 0-3 and again on bits 4-7; since bits 4-7 can take only 16
// values, k16 lands in k0's cell at that level and forces one more split on
// bits 8-11.
func TestSplitOnSharedLowBits(t *testing.T) {
	c := qt.New(t)

	hashes := make(map[string]uint64, 17)
	for i := 0; i < 17; i++ {
		// low 4 bits constant (0), bits 4-7 hold i&15, bit 8 set only for i=16.
		hashes[fmt.Sprintf("k%d", i)] = uint64(i) << 4
	}
	cfg := Config[string, entry]{
		Hash:  func(s string) uint64 { return hashes[s] },
		Equal: func(a, b string) bool { return a == b },
		Key:   func(e entry) string { return e.key },
	}
	r := New(cfg)
	for i := 0; i < 17; i++ {
		key := fmt.Sprintf("k%d", i)
		r.Insert(entry{key, i})
	}
	for i := 0; i < 17; i++ {
		key := fmt.Sprintf("k%d", i)
		got, found := r.Get(key)
		c.Assert(found, qt.IsTrue)
		c.Assert(got.value, qt.Equals, i)
	}
}

// TestDeepCollisionBucket covers spec.md §8's boundary behaviour: keys
// whose hashes are identical across all 64 bits must all land in one
// bucket at the deepest possible level, rather than ever attempting to
// split past maxLevels.
func TestDeepCollisionBucket(t *testing.T) {
	c := qt.New(t)
	r := New(zeroCfg())
	for i := 0; i < 32; i++ {
		r.Insert(entry{fmt.Sprintf("id%d", i), i})
	}
	for i := 0; i < 32; i++ {
		got, found := r.Get(fmt.Sprintf("id%d", i))
		c.Assert(found, qt.IsTrue)
		c.Assert(got.value, qt.Equals, i)
	}
}

// TestPruneUpAfterDeepRemoval covers spec.md §8's boundary behaviour:
// removing the last element of a bucket several levels down should
// contract the path back up, and the tree should end up empty at the
// root.
func TestPruneUpAfterDeepRemoval(t *testing.T) {
	c := qt.New(t)

	hashes := map[string]uint64{
		"deep-a": 0x1,
		"deep-b": 0x1<<4 | 0x1,
	}
	cfg := Config[string, entry]{
		Hash:  func(s string) uint64 { return hashes[s] },
		Equal: func(a, b string) bool { return a == b },
		Key:   func(e entry) string { return e.key },
	}
	r := New(cfg)
	r.Insert(entry{"deep-a", 1})
	r.Insert(entry{"deep-b", 2})

	_, found := r.Delete("deep-b")
	c.Assert(found, qt.IsTrue)
	got, found := r.Get("deep-a")
	c.Assert(found, qt.IsTrue)
	c.Assert(got.value, qt.Equals, 1)

	_, found = r.Delete("deep-a")
	c.Assert(found, qt.IsTrue)
	c.Assert(r.IsEmpty(), qt.IsTrue)
}
