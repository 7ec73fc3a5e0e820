package bptree

import (
	"cmp"
	"fmt"
	"strings"
)

// Pair is the Go substitute for the source language's anonymous [k, v]
// tuple — used by ToArray, SetRange, and WithInitialPairs.
type Pair[K, V any] struct {
	Key   K
	Value V
}

// Tree is component C4, the facade of spec.md §4.4: a root pointer, an
// entry count, the configured branching factor, the caller's comparator,
// and a frozen flag.
type Tree[K, V any] struct {
	root   node[K, V]
	size   int
	m      int
	cmp    CompareFunc[K]
	owner  *cowToken
	frozen bool
}

// Option configures a Tree at construction time.
type Option[K, V any] func(*Tree[K, V])

// WithMaxNodeSize sets the branching factor M, clamped to [4, 256] per
// spec.md §3. Apply it before WithInitialPairs so the clamp is in effect
// for the initial inserts.
func WithMaxNodeSize[K, V any](m int) Option[K, V] {
	return func(t *Tree[K, V]) {
		t.m = clampMaxNodeSize(m)
	}
}

// WithInitialPairs seeds the tree via Set, later duplicates winning, as
// spec.md §8 property 5 requires.
func WithInitialPairs[K, V any](pairs []Pair[K, V]) Option[K, V] {
	return func(t *Tree[K, V]) {
		for _, p := range pairs {
			_, _ = t.Set(p.Key, p.Value, true)
		}
	}
}

func clampMaxNodeSize(m int) int {
	switch {
	case m < 4:
		return 4
	case m > 256:
		return 256
	default:
		return m
	}
}

// New constructs an empty tree ordered by cmp.
func New[K, V any](cmp CompareFunc[K], opts ...Option[K, V]) *Tree[K, V] {
	t := &Tree[K, V]{
		cmp:   cmp,
		m:     32,
		owner: new(cowToken),
	}
	t.root = newEmptyLeaf[K, V](t.owner)
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewOrdered is the convenience constructor of spec.md §6: it wires the
// natural order of any cmp.Ordered key type, sparing callers the need to
// write their own comparator for plain numbers and strings.
func NewOrdered[K cmp.Ordered, V any](opts ...Option[K, V]) *Tree[K, V] {
	return New[K, V](Ordered[K], opts...)
}

// Get implements spec.md §4.4's get: descend to the owning leaf and
// return its value, or the Go sentinel (ok == false) if absent.
func (t *Tree[K, V]) Get(k K) (V, bool) {
	n := t.root
	for {
		if l, ok := n.(*leafNode[K, V]); ok {
			return l.get(t.cmp, k)
		}
		in := n.(*internalNode[K, V])
		idx := childIndex(in.maxKeys, t.cmp, k)
		if idx == len(in.children) {
			var zero V
			return zero, false
		}
		n = in.children[idx]
	}
}

// GetOr is Get with a caller-supplied default instead of the sentinel.
func (t *Tree[K, V]) GetOr(k K, def V) V {
	if v, ok := t.Get(k); ok {
		return v
	}
	return def
}

// Has reports whether k is present.
func (t *Tree[K, V]) Has(k K) bool {
	_, ok := t.Get(k)
	return ok
}

// Size is the number of key/value pairs stored.
func (t *Tree[K, V]) Size() int { return t.size }

// MaxNodeSize is the configured branching factor M.
func (t *Tree[K, V]) MaxNodeSize() int { return t.m }

// Frozen reports whether mutators are currently rejected.
func (t *Tree[K, V]) Frozen() bool { return t.frozen }

// MinKey returns the smallest key, or ok == false on an empty tree.
func (t *Tree[K, V]) MinKey() (K, bool) {
	var zero K
	if t.size == 0 {
		return zero, false
	}
	n := t.root
	for {
		if l, ok := n.(*leafNode[K, V]); ok {
			return l.keys[0], true
		}
		n = n.(*internalNode[K, V]).children[0]
	}
}

// MaxKey returns the largest key in O(1) (spec.md §4.3, "Maximum key"),
// or ok == false on an empty tree.
func (t *Tree[K, V]) MaxKey() (K, bool) {
	var zero K
	if t.size == 0 {
		return zero, false
	}
	return t.root.maxKey(), true
}

// Height is the number of levels from root to leaf, inclusive; a tree
// whose root is itself a leaf has height 1.
func (t *Tree[K, V]) Height() int {
	h := 1
	n := t.root
	for {
		in, ok := n.(*internalNode[K, V])
		if !ok {
			return h
		}
		h++
		n = in.children[0]
	}
}

// Set implements spec.md §4.4's set: true iff a new entry was added, not
// merely overwritten. Adopts a new root when the old root splits.
func (t *Tree[K, V]) Set(k K, v V, overwrite bool) (bool, error) {
	if t.frozen {
		return false, &FrozenMutationError{Op: "Set"}
	}
	newRoot, grew, split, added := insertNode(t.root, t.owner, t.cmp, k, v, overwrite, t.m)
	if split != nil {
		newRoot = &internalNode[K, V]{
			own:      t.owner,
			children: []node[K, V]{newRoot, split.right},
			maxKeys:  []K{split.sepKey, split.right.maxKey()},
		}
	}
	t.root = newRoot
	if grew {
		t.size++
	}
	return added, nil
}

// SetIfNotPresent is Set(k, v, overwrite=false).
func (t *Tree[K, V]) SetIfNotPresent(k K, v V) (bool, error) {
	return t.Set(k, v, false)
}

// ChangeIfPresent sets v only if k already exists; it never adds a new
// entry (spec.md §4.4: "expressible via ... a guarded set").
func (t *Tree[K, V]) ChangeIfPresent(k K, v V) (bool, error) {
	if t.frozen {
		return false, &FrozenMutationError{Op: "ChangeIfPresent"}
	}
	if !t.Has(k) {
		return false, nil
	}
	_, err := t.Set(k, v, true)
	return err == nil, err
}

// Delete implements spec.md §4.4's delete: true iff an entry was
// removed. Collapses the root if it is an internal node left with a
// single child.
func (t *Tree[K, V]) Delete(k K) (bool, error) {
	if t.frozen {
		return false, &FrozenMutationError{Op: "Delete"}
	}
	newRoot, removed, _, _ := deleteNode(t.root, t.owner, t.cmp, k, t.m, true)
	for {
		in, ok := newRoot.(*internalNode[K, V])
		if !ok || len(in.children) != 1 {
			break
		}
		newRoot = in.children[0]
	}
	t.root = newRoot
	if removed {
		t.size--
	}
	return removed, nil
}

// Clear discards every entry, replacing the root with a fresh empty leaf.
func (t *Tree[K, V]) Clear() error {
	if t.frozen {
		return &FrozenMutationError{Op: "Clear"}
	}
	t.root = newEmptyLeaf[K, V](t.owner)
	t.size = 0
	return nil
}

// SetRange bulk-applies Set, later duplicates in pairs winning.
func (t *Tree[K, V]) SetRange(pairs []Pair[K, V]) error {
	if t.frozen {
		return &FrozenMutationError{Op: "SetRange"}
	}
	for _, p := range pairs {
		if _, err := t.Set(p.Key, p.Value, true); err != nil {
			return err
		}
	}
	return nil
}

// Clone is the O(1) logical snapshot of spec.md §4.4 / §5: both the
// receiver and the returned tree remain independently mutable afterward,
// and neither blocks on the other. See SPEC_FULL.md §4.7.
func (t *Tree[K, V]) Clone() *Tree[K, V] {
	mine, theirs := t.owner.split()
	t.owner = mine
	return &Tree[K, V]{
		root:   t.root,
		size:   t.size,
		m:      t.m,
		cmp:    t.cmp,
		owner:  theirs,
		frozen: t.frozen,
	}
}

// Freeze causes every mutating call to fail until Unfreeze (spec.md §5,
// §7). Reads remain permitted.
func (t *Tree[K, V]) Freeze() { t.frozen = true }

// Unfreeze reverses Freeze.
func (t *Tree[K, V]) Unfreeze() { t.frozen = false }

// GetRange materialises the contiguous slice of pairs whose keys lie in
// [lo, hi) or [lo, hi] depending on includeHigh (spec.md §8 property 10).
// max, if given, caps the number of pairs returned.
func (t *Tree[K, V]) GetRange(lo, hi K, includeHigh bool, max ...int) []Pair[K, V] {
	limit := -1
	if len(max) > 0 {
		limit = max[0]
	}
	if limit == 0 {
		return nil
	}
	var out []Pair[K, V]
	t.ForRange(lo, hi, includeHigh, func(k K, v V, _ int) bool {
		out = append(out, Pair[K, V]{Key: k, Value: v})
		return limit >= 0 && len(out) >= limit
	}, 0)
	return out
}

// ToArray materialises every pair in ascending order, optionally capped
// at a maximum length.
func (t *Tree[K, V]) ToArray(max ...int) []Pair[K, V] {
	limit := -1
	if len(max) > 0 {
		limit = max[0]
	}
	out := make([]Pair[K, V], 0, t.size)
	cur := t.Entries(nil)
	for {
		if limit >= 0 && len(out) >= limit {
			break
		}
		k, v, ok := cur.Next()
		if !ok {
			break
		}
		out = append(out, Pair[K, V]{Key: k, Value: v})
	}
	return out
}

// KeysArray materialises every key in ascending order.
func (t *Tree[K, V]) KeysArray() []K {
	out := make([]K, 0, t.size)
	cur := t.Entries(nil)
	for {
		k, _, ok := cur.Next()
		if !ok {
			break
		}
		out = append(out, k)
	}
	return out
}

// ValuesArray materialises every value in ascending key order.
func (t *Tree[K, V]) ValuesArray() []V {
	out := make([]V, 0, t.size)
	cur := t.Entries(nil)
	for {
		_, v, ok := cur.Next()
		if !ok {
			break
		}
		out = append(out, v)
	}
	return out
}

// String renders the tree's in-order contents, mainly for debugging.
func (t *Tree[K, V]) String() string {
	var b strings.Builder
	b.WriteByte('{')
	cur := t.Entries(nil)
	first := true
	for {
		k, v, ok := cur.Next()
		if !ok {
			break
		}
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%v: %v", k, v)
	}
	b.WriteByte('}')
	return b.String()
}

// CheckValid runs the structural audit of spec.md §8 property 12 /
// §7's InvariantViolation: strictly-ascending keys within every leaf,
// strictly-ascending and accurate per-child max keys within every
// internal node, uniform leaf depth, and a size counter that matches an
// in-order walk.
func (t *Tree[K, V]) CheckValid() error {
	count, _, err := checkNode[K, V](t.root, t.cmp, t.m)
	if err != nil {
		return err
	}
	if count != t.size {
		return &InvariantViolationError{Reason: fmt.Sprintf("size mismatch: tree reports %d, in-order walk counted %d", t.size, count)}
	}
	return nil
}
