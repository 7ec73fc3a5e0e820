package bptree

// ScanDirective is the typed return of a ForRange callback's break
// signal (spec.md §4.6, §6's "callback break protocol"): zero value
// means "keep scanning", Break == true means "stop now and bubble
// Value up as the operation's result".
type ScanDirective[R any] struct {
	Break bool
	Value R
}

// BreakWith builds a ScanDirective that stops the scan and returns v.
func BreakWith[R any](v R) ScanDirective[R] {
	return ScanDirective[R]{Break: true, Value: v}
}

// EditDirective is the directive shape Tree.EditRange's callback
// returns: any combination of a value replacement, a deletion, and an
// untyped stop signal.
type EditDirective[V any] struct {
	SetValue bool
	Value    V
	Delete   bool
	Break    bool
}

// TypedEditDirective is EditDirective plus a typed break value, for the
// fully generic EditRange free function below.
type TypedEditDirective[V, R any] struct {
	SetValue bool
	Value    V
	Delete   bool
	Break    bool
	BreakVal R
}

// inRange reports whether k lies within [lo, hi) or [lo, hi], per
// includeHigh, given the scan has already started at lo.
func inRange[K any](cmp CompareFunc[K], k, hi K, includeHigh bool) bool {
	c := cmp(k, hi)
	return c < 0 || (c == 0 && includeHigh)
}

// ForRange implements spec.md §4.6's forRange: visit every pair with
// key in [lo, hi) or [lo, hi], in order, passing a counter that starts
// at c0 and increments per call. It never mutates the tree.
func (t *Tree[K, V]) ForRange(lo, hi K, includeHigh bool, onFound func(k K, v V, counter int) bool, c0 int) int {
	counter := c0
	cur := t.Entries(&lo)
	for {
		k, v, ok := cur.Next()
		if !ok || !inRange(t.cmp, k, hi, includeHigh) {
			break
		}
		stop := onFound(k, v, counter)
		counter++
		if stop {
			break
		}
	}
	return counter
}

// ForRangeTyped is the fully generic form of ForRange: onFound may
// break with an arbitrary typed value R. Go forbids introducing a new
// type parameter on a method beyond the receiver's, so this lives as a
// free function taking the tree explicitly, rather than as a method.
func ForRangeTyped[K, V, R any](t *Tree[K, V], lo, hi K, includeHigh bool, onFound func(k K, v V, counter int) ScanDirective[R], c0 int) (result R, count int, broke bool) {
	counter := c0
	cur := t.Entries(&lo)
	for {
		k, v, ok := cur.Next()
		if !ok || !inRange(t.cmp, k, hi, includeHigh) {
			break
		}
		d := onFound(k, v, counter)
		counter++
		if d.Break {
			return d.Value, counter, true
		}
	}
	var zero R
	return zero, counter, false
}

// ForEach visits every pair in ascending order, teacher-style callback
// argument order (value, key, tree) — see spec.md §6.
func (t *Tree[K, V]) ForEach(onFound func(v V, k K, tree *Tree[K, V])) {
	cur := t.Entries(nil)
	for {
		k, v, ok := cur.Next()
		if !ok {
			return
		}
		onFound(v, k, t)
	}
}

// ForEachPair visits every pair in ascending order with a counter that
// starts at c0 (defaulting to 0) and increments per call; returning true
// stops the walk early.
func (t *Tree[K, V]) ForEachPair(onFound func(k K, v V, counter int) bool, c0 ...int) int {
	counter := 0
	if len(c0) > 0 {
		counter = c0[0]
	}
	cur := t.Entries(nil)
	for {
		k, v, ok := cur.Next()
		if !ok {
			break
		}
		stop := onFound(k, v, counter)
		counter++
		if stop {
			break
		}
	}
	return counter
}

// EditRange implements spec.md §4.6's editRange. The scan itself is
// read-only — onFound is only ever handed values already visible in the
// tree, never a half-mutated leaf — and every collected {value}/{delete}
// directive is then applied through Set/Delete, which already perform
// the exact un-share-on-first-write and maxKey/rebalance bookkeeping
// this module's insert and delete paths guarantee elsewhere. That keeps
// checkValid true immediately after every call (spec.md §8 property 12)
// without a second, leaf-local maxKey-fixup pass.
func (t *Tree[K, V]) EditRange(lo, hi K, includeHigh bool, onFound func(k K, v V, counter int) EditDirective[V], c0 int) (int, error) {
	if t.frozen {
		return c0, &FrozenMutationError{Op: "EditRange"}
	}
	type pending struct {
		key  K
		edit EditDirective[V]
	}
	var edits []pending

	counter := c0
	cur := t.Entries(&lo)
scan:
	for {
		k, v, ok := cur.Next()
		if !ok || !inRange(t.cmp, k, hi, includeHigh) {
			break
		}
		d := onFound(k, v, counter)
		counter++
		if d.SetValue || d.Delete {
			edits = append(edits, pending{key: k, edit: d})
		}
		if d.Break {
			break scan
		}
	}

	for _, p := range edits {
		if p.edit.Delete {
			if _, err := t.Delete(p.key); err != nil {
				return counter, err
			}
		} else if p.edit.SetValue {
			if _, err := t.Set(p.key, p.edit.Value, true); err != nil {
				return counter, err
			}
		}
	}
	return counter, nil
}

// EditRangeTyped is EditRange's fully generic form, returning a typed
// break value alongside the count and whether the scan broke early.
func EditRangeTyped[K, V, R any](t *Tree[K, V], lo, hi K, includeHigh bool, onFound func(k K, v V, counter int) TypedEditDirective[V, R], c0 int) (result R, count int, broke bool, err error) {
	if t.frozen {
		var zero R
		return zero, c0, false, &FrozenMutationError{Op: "EditRange"}
	}
	type pending struct {
		key  K
		edit TypedEditDirective[V, R]
	}
	var edits []pending

	counter := c0
	var breakVal R
	cur := t.Entries(&lo)
scan:
	for {
		k, v, ok := cur.Next()
		if !ok || !inRange(t.cmp, k, hi, includeHigh) {
			break
		}
		d := onFound(k, v, counter)
		counter++
		if d.SetValue || d.Delete {
			edits = append(edits, pending{key: k, edit: d})
		}
		if d.Break {
			breakVal = d.BreakVal
			broke = true
			break scan
		}
	}

	for _, p := range edits {
		if p.edit.Delete {
			if _, err := t.Delete(p.key); err != nil {
				return breakVal, counter, broke, err
			}
		} else if p.edit.SetValue {
			if _, err := t.Set(p.key, p.edit.Value, true); err != nil {
				return breakVal, counter, broke, err
			}
		}
	}
	return breakVal, counter, broke, nil
}

// DeleteRange implements spec.md §4.6's deleteRange: editRange whose
// callback always deletes. Returns the count deleted.
func (t *Tree[K, V]) DeleteRange(lo, hi K, includeHigh bool) (int, error) {
	return t.EditRange(lo, hi, includeHigh, func(k K, v V, counter int) EditDirective[V] {
		return EditDirective[V]{Delete: true}
	}, 0)
}
