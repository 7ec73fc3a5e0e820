// Package bptree implements an ordered, in-memory key/value container as a
// B+ tree with copy-on-write node sharing. Lookups, inserts, and deletes run
// in O(log n); Clone is O(1) and produces a tree that is independently
// mutable from the original — shared subtrees are duplicated lazily, one
// level at a time, on the first write that actually touches them.
//
// There is no I/O, persistence, or concurrency story here: a Tree is not
// safe for concurrent mutation by more than one goroutine, and an iterator
// is invalidated by structural mutation performed by its own owning tree
// while the iterator is live.
package bptree
