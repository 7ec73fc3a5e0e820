package bptree

// cowToken is the copy-on-write ownership marker described in
// SPEC_FULL.md §4.7. Only its address is ever inspected — a node whose
// owner field holds the same address as the write in progress is
// exclusively owned by that write and may be mutated in place; any other
// address means the node might still be visible through another tree and
// must be cloned before it is touched.
//
// Grounded on other_examples/HurmousDay-btree__btree_generic.go's
// copyOnWriteContext + node.mutableFor(cow), a generic translation of
// google/btree's COW mechanism.
//
// The unused byte keeps the struct from being zero-sized: distinct
// zero-size values may share one address, which would make every token
// compare equal.
type cowToken struct{ _ byte }

// split produces two fresh, mutually foreign tokens from one. Every node
// reachable from the tree at the moment of the split keeps the old token,
// so both the original and the returned token are strangers to it — the
// next write through either tree clones on first touch, one level at a
// time.
func (t *cowToken) split() (*cowToken, *cowToken) {
	a, b := *t, *t
	return &a, &b
}
