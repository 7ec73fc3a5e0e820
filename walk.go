package bptree

// WalkFn is a pre-order visitor over a tree's pairs; returning true
// stops the walk early, mirroring the teacher's radix-tree Walk
// convention.
type WalkFn[K, V any] func(k K, v V) bool

// Walk visits every pair in ascending key order (a B+ tree's natural
// leaf order makes pre-order and in-order coincide), stopping early if
// fn returns true.
func (t *Tree[K, V]) Walk(fn WalkFn[K, V]) {
	walkNode(t.root, fn)
}

func walkNode[K, V any](n node[K, V], fn WalkFn[K, V]) bool {
	switch nd := n.(type) {
	case *leafNode[K, V]:
		for i := range nd.keys {
			if fn(nd.keys[i], nd.values[i]) {
				return true
			}
		}
		return false
	case *internalNode[K, V]:
		for _, ch := range nd.children {
			if walkNode(ch, fn) {
				return true
			}
		}
		return false
	default:
		panic("bptree: unknown node type")
	}
}

// Equal reports whether t and other hold the same keys (per t's
// comparator) mapped to equal values, per valueEqual. V is not
// constrained as comparable, so the caller supplies the equality test —
// this is the companion checkValid's test suite leans on informally by
// diffing two trees' materialised contents.
func (t *Tree[K, V]) Equal(other *Tree[K, V], valueEqual func(a, b V) bool) bool {
	if t.size != other.size {
		return false
	}
	ca := t.Entries(nil)
	cb := other.Entries(nil)
	for {
		ka, va, oka := ca.Next()
		kb, vb, okb := cb.Next()
		if oka != okb {
			return false
		}
		if !oka {
			return true
		}
		if t.cmp(ka, kb) != 0 || !valueEqual(va, vb) {
			return false
		}
	}
}
