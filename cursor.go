package bptree

// frame is one level of the path stack shared by forward and reverse
// iteration (spec.md §4.5): the node at this level, and the index of
// the entry (leaf) or child (internal) currently being visited.
type frame[K, V any] struct {
	n   node[K, V]
	idx int
}

// Cursor walks a tree in ascending key order from a fixed starting
// point. It is built once from a root-to-leaf path and advances by
// incrementing the deepest index, ascending only when a leaf is
// exhausted — exactly the mechanism spec.md §4.5 describes.
//
// A Cursor must not be used across structural mutations of the tree it
// was built from. A Clone performed after a Cursor is built never
// mutates any node the Cursor's path already holds, so the Cursor keeps
// observing that snapshot for free — no special-casing needed.
type Cursor[K, V any] struct {
	cmp  CompareFunc[K]
	path []frame[K, V]
}

func newCursor[K, V any](root node[K, V], cmp CompareFunc[K], lowestKey *K) *Cursor[K, V] {
	return &Cursor[K, V]{cmp: cmp, path: buildPathFrom(root, cmp, lowestKey)}
}

// buildPathFrom descends from root, choosing at each internal level the
// child whose max key is the smallest one ≥ lowestKey, and landing on
// the leaf position of the smallest key ≥ lowestKey within it. A nil
// lowestKey descends leftmost, positioning at the tree's minimum key.
func buildPathFrom[K, V any](root node[K, V], cmp CompareFunc[K], lowestKey *K) []frame[K, V] {
	if lowestKey == nil {
		return descendLeftmost[K, V](nil, root)
	}
	var path []frame[K, V]
	n := root
	for {
		if l, ok := n.(*leafNode[K, V]); ok {
			idx, _ := searchKeys(l.keys, cmp, *lowestKey)
			return append(path, frame[K, V]{n: l, idx: idx})
		}
		in := n.(*internalNode[K, V])
		idx := childIndex(in.maxKeys, cmp, *lowestKey)
		if idx == len(in.children) {
			idx = len(in.children) - 1
		}
		path = append(path, frame[K, V]{n: in, idx: idx})
		n = in.children[idx]
	}
}

func descendLeftmost[K, V any](path []frame[K, V], n node[K, V]) []frame[K, V] {
	for {
		if l, ok := n.(*leafNode[K, V]); ok {
			return append(path, frame[K, V]{n: l, idx: 0})
		}
		in := n.(*internalNode[K, V])
		path = append(path, frame[K, V]{n: in, idx: 0})
		n = in.children[0]
	}
}

// ascendForward pops exhausted ancestors until it finds one with an
// unvisited next child, then descends that child's leftmost leaf. An
// empty result means the walk is over.
func ascendForward[K, V any](path []frame[K, V]) []frame[K, V] {
	for len(path) > 0 {
		top := &path[len(path)-1]
		in := top.n.(*internalNode[K, V])
		top.idx++
		if top.idx < len(in.children) {
			return descendLeftmost(path, in.children[top.idx])
		}
		path = path[:len(path)-1]
	}
	return path
}

// Next returns the next pair in ascending order, or ok == false once the
// walk is exhausted.
func (c *Cursor[K, V]) Next() (k K, v V, ok bool) {
	for len(c.path) > 0 {
		top := &c.path[len(c.path)-1]
		leaf := top.n.(*leafNode[K, V])
		if top.idx < len(leaf.keys) {
			k, v = leaf.keys[top.idx], leaf.values[top.idx]
			top.idx++
			return k, v, true
		}
		c.path = ascendForward(c.path[:len(c.path)-1])
	}
	var zk K
	var zv V
	return zk, zv, false
}

// NextInto is Next but fills a caller-owned Pair instead of allocating a
// new return value — the reusable-buffer idiom of spec.md §4.5.
func (c *Cursor[K, V]) NextInto(buf *Pair[K, V]) bool {
	k, v, ok := c.Next()
	if !ok {
		return false
	}
	buf.Key, buf.Value = k, v
	return true
}

// ReverseCursor is Cursor's mirror image: it walks in descending key
// order from a fixed starting point.
type ReverseCursor[K, V any] struct {
	cmp  CompareFunc[K]
	path []frame[K, V]
}

func newReverseCursor[K, V any](root node[K, V], cmp CompareFunc[K], highestKey *K, skipHighest bool) *ReverseCursor[K, V] {
	return &ReverseCursor[K, V]{cmp: cmp, path: buildPathAtReverse(root, cmp, highestKey, skipHighest)}
}

// buildPathAtReverse positions at the largest key ≤ highestKey; when
// highestKey is given and skipHighest is true, one step lower still. A
// nil highestKey descends rightmost, positioning at the tree's maximum
// key — spec.md §4.5's "next lower key" reading of an absent highestKey.
func buildPathAtReverse[K, V any](root node[K, V], cmp CompareFunc[K], highestKey *K, skipHighest bool) []frame[K, V] {
	if highestKey == nil {
		return descendRightmost[K, V](nil, root)
	}
	var path []frame[K, V]
	n := root
	for {
		if l, ok := n.(*leafNode[K, V]); ok {
			idx, found := searchKeys(l.keys, cmp, *highestKey)
			if !found {
				idx--
			} else if skipHighest {
				idx--
			}
			path = append(path, frame[K, V]{n: l, idx: idx})
			return seedReverse(path)
		}
		in := n.(*internalNode[K, V])
		idx := childIndex(in.maxKeys, cmp, *highestKey)
		if idx == len(in.children) {
			idx = len(in.children) - 1
		}
		path = append(path, frame[K, V]{n: in, idx: idx})
		n = in.children[idx]
	}
}

// seedReverse repairs a path whose final leaf frame landed with idx < 0
// (highestKey fell before every key in that leaf) by ascending to the
// previous leaf, same as an exhausted Prev() would.
func seedReverse[K, V any](path []frame[K, V]) []frame[K, V] {
	top := &path[len(path)-1]
	if top.idx >= 0 {
		return path
	}
	return ascendBackward(path[:len(path)-1])
}

func descendRightmost[K, V any](path []frame[K, V], n node[K, V]) []frame[K, V] {
	for {
		if l, ok := n.(*leafNode[K, V]); ok {
			return append(path, frame[K, V]{n: l, idx: len(l.keys) - 1})
		}
		in := n.(*internalNode[K, V])
		last := len(in.children) - 1
		path = append(path, frame[K, V]{n: in, idx: last})
		n = in.children[last]
	}
}

// ascendBackward is ascendForward's mirror: pop exhausted ancestors
// until one has an unvisited previous child, then descend that child's
// rightmost leaf.
func ascendBackward[K, V any](path []frame[K, V]) []frame[K, V] {
	for len(path) > 0 {
		top := &path[len(path)-1]
		top.idx--
		if top.idx >= 0 {
			in := top.n.(*internalNode[K, V])
			return descendRightmost(path, in.children[top.idx])
		}
		path = path[:len(path)-1]
	}
	return path
}

// Prev returns the next pair in descending order, or ok == false once
// the walk is exhausted.
func (c *ReverseCursor[K, V]) Prev() (k K, v V, ok bool) {
	for len(c.path) > 0 {
		top := &c.path[len(c.path)-1]
		leaf := top.n.(*leafNode[K, V])
		if top.idx >= 0 {
			k, v = leaf.keys[top.idx], leaf.values[top.idx]
			top.idx--
			return k, v, true
		}
		c.path = ascendBackward(c.path[:len(c.path)-1])
	}
	var zk K
	var zv V
	return zk, zv, false
}

// PrevInto is Prev but fills a caller-owned Pair instead of allocating.
func (c *ReverseCursor[K, V]) PrevInto(buf *Pair[K, V]) bool {
	k, v, ok := c.Prev()
	if !ok {
		return false
	}
	buf.Key, buf.Value = k, v
	return true
}

// KeyCursor projects a Cursor onto keys alone.
type KeyCursor[K, V any] struct{ c *Cursor[K, V] }

func (kc *KeyCursor[K, V]) Next() (K, bool) {
	k, _, ok := kc.c.Next()
	return k, ok
}

// ValueCursor projects a Cursor onto values alone.
type ValueCursor[K, V any] struct{ c *Cursor[K, V] }

func (vc *ValueCursor[K, V]) Next() (V, bool) {
	_, v, ok := vc.c.Next()
	return v, ok
}

// Entries returns a forward Cursor starting at the smallest key ≥
// lowestKey, or at MinKey when lowestKey is nil.
func (t *Tree[K, V]) Entries(lowestKey *K) *Cursor[K, V] {
	return newCursor(t.root, t.cmp, lowestKey)
}

// EntriesReversed returns a ReverseCursor starting at the largest key ≤
// highestKey (one step lower still when skipHighest), or at MaxKey when
// highestKey is nil.
func (t *Tree[K, V]) EntriesReversed(highestKey *K, skipHighest bool) *ReverseCursor[K, V] {
	return newReverseCursor(t.root, t.cmp, highestKey, skipHighest)
}

// Keys returns a forward, keys-only cursor starting at firstKey.
func (t *Tree[K, V]) Keys(firstKey *K) *KeyCursor[K, V] {
	return &KeyCursor[K, V]{c: t.Entries(firstKey)}
}

// Values returns a forward, values-only cursor starting at firstKey.
func (t *Tree[K, V]) Values(firstKey *K) *ValueCursor[K, V] {
	return &ValueCursor[K, V]{c: t.Entries(firstKey)}
}
