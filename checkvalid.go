package bptree

// checkNode is the recursive structural audit behind Tree.CheckValid: it
// enforces invariants 1-3 of spec.md §3 (ascending leaf keys, ascending
// and accurate per-child max keys, uniform leaf depth) and invariant 6's
// minimum-fill tolerance for non-root nodes. It returns the number of
// key/value pairs found and the subtree's leaf depth.
func checkNode[K, V any](n node[K, V], cmp CompareFunc[K], m int) (count int, depth int, err error) {
	return checkNodeRec(n, cmp, m, true)
}

func checkNodeRec[K, V any](n node[K, V], cmp CompareFunc[K], m int, isRoot bool) (int, int, error) {
	minFill := ceilDiv(m, 2)

	switch nd := n.(type) {
	case *leafNode[K, V]:
		if len(nd.keys) > m {
			return 0, 0, &InvariantViolationError{Reason: "leaf exceeds configured max node size"}
		}
		if !isRoot && len(nd.keys) < minFill {
			return 0, 0, &InvariantViolationError{Reason: "non-root leaf underflowed below minimum fill"}
		}
		for i := 1; i < len(nd.keys); i++ {
			if cmp(nd.keys[i-1], nd.keys[i]) >= 0 {
				return 0, 0, &InvariantViolationError{Reason: "leaf keys are not strictly ascending"}
			}
		}
		return len(nd.keys), 1, nil

	case *internalNode[K, V]:
		if len(nd.children) > m {
			return 0, 0, &InvariantViolationError{Reason: "internal node exceeds configured max node size"}
		}
		if !isRoot && len(nd.children) < minFill {
			return 0, 0, &InvariantViolationError{Reason: "non-root internal node underflowed below minimum fill"}
		}
		if len(nd.children) != len(nd.maxKeys) {
			return 0, 0, &InvariantViolationError{Reason: "children and max-key slices have different lengths"}
		}
		if len(nd.children) == 0 {
			return 0, 0, &InvariantViolationError{Reason: "internal node has no children"}
		}

		total := 0
		depth := -1
		for i, ch := range nd.children {
			if cmp(ch.maxKey(), nd.maxKeys[i]) != 0 {
				return 0, 0, &InvariantViolationError{Reason: "stored per-child max key does not match the child's actual max key"}
			}
			if i > 0 && cmp(nd.maxKeys[i-1], nd.maxKeys[i]) >= 0 {
				return 0, 0, &InvariantViolationError{Reason: "per-child max keys are not strictly ascending"}
			}
			c, d, err := checkNodeRec(ch, cmp, m, false)
			if err != nil {
				return 0, 0, err
			}
			if depth == -1 {
				depth = d
			} else if d != depth {
				return 0, 0, &InvariantViolationError{Reason: "leaves are not all at the same depth"}
			}
			total += c
		}
		return total, depth + 1, nil

	default:
		panic("bptree: unknown node type")
	}
}
