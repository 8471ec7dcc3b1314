package hamtrie

import (
	"hash/maphash"
	"slices"
	"testing"

	qt "github.com/frankban/quicktest"
)

// sliceKeyHasher lets []int keys, which are not `comparable`, be used with
// AnyMap.
type sliceKeyHasher[T comparable] struct{}

func (sliceKeyHasher[T]) Equal(a, b []T) bool { return slices.Equal(a, b) }

func (sliceKeyHasher[T]) Hash(h *maphash.Hash, s []T) {
	for _, v := range s {
		maphash.WriteComparable(h, v)
	}
}

func TestAnyMapWithSliceKeys(t *testing.T) {
	c := qt.New(t)
	m := NewAnyMap[[]int, string](sliceKeyHasher[int]{})

	_, found := m.Get([]int{1, 2, 3})
	c.Assert(found, qt.IsFalse)

	_, replaced := m.Insert([]int{1, 2, 3}, "a")
	c.Assert(replaced, qt.IsFalse)

	v, found := m.Get([]int{1, 2, 3})
	c.Assert(found, qt.IsTrue)
	c.Assert(v, qt.Equals, "a")

	// A distinct slice with equal contents must be treated as the same key.
	old, replaced := m.Insert([]int{1, 2, 3}, "b")
	c.Assert(replaced, qt.IsTrue)
	c.Assert(old, qt.Equals, "a")

	removed, found := m.Delete([]int{1, 2, 3})
	c.Assert(found, qt.IsTrue)
	c.Assert(removed, qt.Equals, "b")
	c.Assert(m.IsEmpty(), qt.IsTrue)
}

func TestAnyMapComparableKeyHasher(t *testing.T) {
	c := qt.New(t)
	m := NewAnyMap[string, int](ComparableKeyHasher[string]{})
	m.Insert("x", 1)
	v, ok := m.Get("x")
	c.Assert(ok, qt.IsTrue)
	c.Assert(v, qt.Equals, 1)
	c.Assert(m.Len(), qt.Equals, 1)
}
