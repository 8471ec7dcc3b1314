package trie

import "github.com/hamtrie/hamtrie/internal/reclaim"

// pruneResult reports how a prune attempt went (spec.md §4.D.4).
type pruneResult int

const (
	// pruneNull removed the node completely; the parent cell is now empty.
	pruneNull pruneResult = iota
	// pruneSingleton contracted an edge straight to the lone surviving
	// leaf bucket.
	pruneSingleton
	// pruneCopy published a clean copy, because more than one branch (or
	// any inner-node branch) survived under the condemned node.
	pruneCopy
	// pruneCasFail means another writer already replaced the parent cell.
	pruneCasFail
)

// prune implements spec.md §4.D.4. parentCell is the cell that, as of
// old, pointed at the inner node being condemned; old is the slot value
// observed there (its branch must be an *innerNode, never a *bucket).
//
// It condemns every cell of that inner node, decides whether the edge can
// be nulled out, contracted to a lone leaf, or merely copied clean, and
// publishes the decision into parentCell with a single CAS against old.
func prune(dom *reclaim.Domain, parentCell *cell, old *slot) pruneResult {
	if old.isNull() {
		fatalf("trie: null child node passed to prune")
	}
	inner, ok := old.branch.(*innerNode)
	if !ok {
		fatalf("trie: data node passed to prune")
	}

	newChild := newInnerNode()
	allowContract := true
	childCount := 0
	var lastLeaf *slot

	for i := range inner.cells {
		captured := inner.cells[i].condemn()
		var cleared *slot
		if captured != nil {
			cleared = &slot{branch: captured.branch}
		}
		switch {
		case cleared == nil:
			// Empty cell, nothing to do.
		case isInnerBranch(cleared.branch):
			allowContract = false
			childCount++
		default:
			lastLeaf = cleared
			childCount++
		}
		newChild.cells[i].p.Store(cleared)
	}

	var replacement *slot
	var result pruneResult
	switch {
	case allowContract && childCount == 1 && lastLeaf != nil:
		replacement = lastLeaf
		result = pruneSingleton
	case childCount == 0:
		replacement = nil
		result = pruneNull
	default:
		replacement = &slot{branch: newChild}
		result = pruneCopy
	}

	if !parentCell.cas(old, replacement) {
		// newChild, if built, is simply left for the garbage collector:
		// nothing ever observed it, unlike the manually-managed original
		// where the caller must free it explicitly.
		return pruneCasFail
	}
	dom.DeferDestroy(inner)
	return result
}

func isInnerBranch(b branch) bool {
	_, ok := b.(*innerNode)
	return ok
}
