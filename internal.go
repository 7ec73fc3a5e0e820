package bptree

// internalNode is component C3: a sequence of child references keyed by
// each child's subtree maximum (spec.md §3, invariant 2). maxKeys is kept
// strictly ascending, and its last entry is this node's own maxKey in
// O(1) (spec.md §4.3, "Maximum key").
type internalNode[K, V any] struct {
	own      *cowToken
	children []node[K, V]
	maxKeys  []K
}

func (n *internalNode[K, V]) isLeaf() bool     { return false }
func (n *internalNode[K, V]) owner() *cowToken { return n.own }

func (n *internalNode[K, V]) maxKey() K {
	return n.maxKeys[len(n.maxKeys)-1]
}

func (n *internalNode[K, V]) mutableFor(tok *cowToken) node[K, V] {
	if n.own == tok {
		return n
	}
	return &internalNode[K, V]{
		own:      tok,
		children: append([]node[K, V](nil), n.children...),
		maxKeys:  append([]K(nil), n.maxKeys...),
	}
}

// insertNode dispatches to the leaf or internal insert routine. It is the
// single recursive entry point used by both Tree.Set and the internal
// node's own child recursion.
func insertNode[K, V any](n node[K, V], tok *cowToken, cmp CompareFunc[K], k K, v V, overwrite bool, m int) (node[K, V], bool, *splitInfo[K, V], bool) {
	switch nd := n.(type) {
	case *leafNode[K, V]:
		return leafInsert(nd, tok, cmp, k, v, overwrite, m)
	case *internalNode[K, V]:
		return internalInsert(nd, tok, cmp, k, v, overwrite, m)
	default:
		panic("bptree: unknown node type")
	}
}

// internalInsert implements spec.md §4.3's Insert: recurse into the
// selected child, splice in a returned split, and split this node in turn
// if it grew past M children.
func internalInsert[K, V any](n *internalNode[K, V], tok *cowToken, cmp CompareFunc[K], k K, v V, overwrite bool, m int) (node[K, V], bool, *splitInfo[K, V], bool) {
	idx := childIndex(n.maxKeys, cmp, k)
	if idx == len(n.children) {
		idx = len(n.children) - 1
	}

	newChild, grew, childSplit, added := insertNode(n.children[idx], tok, cmp, k, v, overwrite, m)
	if newChild == n.children[idx] && childSplit == nil && !grew {
		// Key already present (left alone, or overwritten in place in an
		// already-owned leaf): the key set below this node, and so every
		// stored max key, is unchanged.
		return n, grew, nil, added
	}

	nn := n.mutableFor(tok).(*internalNode[K, V])
	nn.children[idx] = newChild
	nn.maxKeys[idx] = newChild.maxKey()

	if childSplit != nil {
		nn.children = insertAt(nn.children, idx+1, childSplit.right)
		nn.maxKeys = insertAt(nn.maxKeys, idx+1, childSplit.right.maxKey())
	}

	if len(nn.children) <= m {
		return nn, grew, nil, added
	}

	leftCount := ceilDiv(len(nn.children), 2)
	right := &internalNode[K, V]{
		own:      tok,
		children: append([]node[K, V](nil), nn.children[leftCount:]...),
		maxKeys:  append([]K(nil), nn.maxKeys[leftCount:]...),
	}
	nn.children = append([]node[K, V](nil), nn.children[:leftCount]...)
	nn.maxKeys = append([]K(nil), nn.maxKeys[:leftCount]...)

	return nn, grew, &splitInfo[K, V]{right: right, sepKey: nn.maxKey()}, added
}

// deleteNode dispatches to the leaf or internal delete routine.
func deleteNode[K, V any](n node[K, V], tok *cowToken, cmp CompareFunc[K], k K, m int, isRoot bool) (node[K, V], bool, bool, bool) {
	switch nd := n.(type) {
	case *leafNode[K, V]:
		return leafDeleteRec(nd, tok, cmp, k, m, isRoot)
	case *internalNode[K, V]:
		return internalDeleteRec(nd, tok, cmp, k, m, isRoot)
	default:
		panic("bptree: unknown node type")
	}
}

// internalDeleteRec implements spec.md §4.3's Delete: recurse, update the
// stored max key for the child that changed, and borrow or merge if the
// child underflowed.
func internalDeleteRec[K, V any](n *internalNode[K, V], tok *cowToken, cmp CompareFunc[K], k K, m int, isRoot bool) (node[K, V], bool, bool, bool) {
	idx := childIndex(n.maxKeys, cmp, k)
	if idx == len(n.children) {
		return n, false, false, false
	}

	oldSelfMax := n.maxKeys[len(n.maxKeys)-1]

	newChild, removed, _, childUnderflow := deleteNode(n.children[idx], tok, cmp, k, m, false)
	if !removed {
		return n, false, false, false
	}

	nn := n.mutableFor(tok).(*internalNode[K, V])
	nn.children[idx] = newChild
	nn.maxKeys[idx] = newChild.maxKey()

	if childUnderflow {
		nn = rebalanceChild(nn, tok, idx, m)
	}

	minFill := ceilDiv(m, 2)
	underflow := !isRoot && len(nn.children) < minFill
	maxChanged := cmp(oldSelfMax, nn.maxKeys[len(nn.maxKeys)-1]) != 0
	return nn, true, maxChanged, underflow
}

// rebalanceChild implements spec.md §4.3's borrow-or-merge step for the
// underflowed child at idx: borrow one entry from whichever neighbour can
// spare it, or merge with a neighbour (preferring the left one) and drop
// the now-redundant slot.
func rebalanceChild[K, V any](n *internalNode[K, V], tok *cowToken, idx int, m int) *internalNode[K, V] {
	minFill := ceilDiv(m, 2)

	if idx > 0 && nodeLen(n.children[idx-1]) > minFill {
		newLeft, newChild := borrowLeft(n.children[idx-1], n.children[idx], tok)
		n.children[idx-1] = newLeft
		n.children[idx] = newChild
		n.maxKeys[idx-1] = newLeft.maxKey()
		return n
	}
	if idx < len(n.children)-1 && nodeLen(n.children[idx+1]) > minFill {
		newChild, newRight := borrowRight(n.children[idx], n.children[idx+1], tok)
		n.children[idx] = newChild
		n.children[idx+1] = newRight
		n.maxKeys[idx] = newChild.maxKey()
		return n
	}
	if idx > 0 {
		merged := mergeNodes(n.children[idx-1], n.children[idx], tok)
		n.children[idx-1] = merged
		n.maxKeys[idx-1] = merged.maxKey()
		n.children = removeAt(n.children, idx)
		n.maxKeys = removeAt(n.maxKeys, idx)
		return n
	}
	merged := mergeNodes(n.children[idx], n.children[idx+1], tok)
	n.children[idx] = merged
	n.maxKeys[idx] = merged.maxKey()
	n.children = removeAt(n.children, idx+1)
	n.maxKeys = removeAt(n.maxKeys, idx+1)
	return n
}

// borrowLeft moves the last entry of left onto the front of child. Both
// must be the same concrete kind — guaranteed by invariant 3 (uniform
// leaf depth).
func borrowLeft[K, V any](left, child node[K, V], tok *cowToken) (node[K, V], node[K, V]) {
	switch l := left.(type) {
	case *leafNode[K, V]:
		c := child.(*leafNode[K, V])
		nl := l.mutableFor(tok).(*leafNode[K, V])
		nc := c.mutableFor(tok).(*leafNode[K, V])
		i := len(nl.keys) - 1
		k, v := nl.keys[i], nl.values[i]
		nl.keys = nl.keys[:i]
		nl.values = nl.values[:i]
		nc.keys = insertAt(nc.keys, 0, k)
		nc.values = insertAt(nc.values, 0, v)
		return nl, nc
	case *internalNode[K, V]:
		c := child.(*internalNode[K, V])
		nl := l.mutableFor(tok).(*internalNode[K, V])
		nc := c.mutableFor(tok).(*internalNode[K, V])
		i := len(nl.children) - 1
		ch, mk := nl.children[i], nl.maxKeys[i]
		nl.children = nl.children[:i]
		nl.maxKeys = nl.maxKeys[:i]
		nc.children = insertAt(nc.children, 0, ch)
		nc.maxKeys = insertAt(nc.maxKeys, 0, mk)
		return nl, nc
	default:
		panic("bptree: unknown node type")
	}
}

// borrowRight is the mirror of borrowLeft: the child's first entry moves
// from the right sibling's front to the child's end.
func borrowRight[K, V any](child, right node[K, V], tok *cowToken) (node[K, V], node[K, V]) {
	switch c := child.(type) {
	case *leafNode[K, V]:
		r := right.(*leafNode[K, V])
		nc := c.mutableFor(tok).(*leafNode[K, V])
		nr := r.mutableFor(tok).(*leafNode[K, V])
		k, v := nr.keys[0], nr.values[0]
		nr.keys = removeAt(nr.keys, 0)
		nr.values = removeAt(nr.values, 0)
		nc.keys = append(nc.keys, k)
		nc.values = append(nc.values, v)
		return nc, nr
	case *internalNode[K, V]:
		r := right.(*internalNode[K, V])
		nc := c.mutableFor(tok).(*internalNode[K, V])
		nr := r.mutableFor(tok).(*internalNode[K, V])
		ch, mk := nr.children[0], nr.maxKeys[0]
		nr.children = removeAt(nr.children, 0)
		nr.maxKeys = removeAt(nr.maxKeys, 0)
		nc.children = append(nc.children, ch)
		nc.maxKeys = append(nc.maxKeys, mk)
		return nc, nr
	default:
		panic("bptree: unknown node type")
	}
}

// mergeNodes appends b's entries onto a mutable copy of a. The caller is
// responsible for dropping b's now-redundant slot in the parent. The
// merge only ever joins an underflowed node (fewer than ceil(M/2)
// entries) with a neighbour that could not lend (at most ceil(M/2)
// entries), so the result never exceeds M.
func mergeNodes[K, V any](a, b node[K, V], tok *cowToken) node[K, V] {
	switch la := a.(type) {
	case *leafNode[K, V]:
		lb := b.(*leafNode[K, V])
		na := la.mutableFor(tok).(*leafNode[K, V])
		na.keys = append(na.keys, lb.keys...)
		na.values = append(na.values, lb.values...)
		return na
	case *internalNode[K, V]:
		ib := b.(*internalNode[K, V])
		na := la.mutableFor(tok).(*internalNode[K, V])
		na.children = append(na.children, ib.children...)
		na.maxKeys = append(na.maxKeys, ib.maxKeys...)
		return na
	default:
		panic("bptree: unknown node type")
	}
}
