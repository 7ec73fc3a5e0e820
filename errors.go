package bptree

import (
	"errors"
	"fmt"
)

// ErrFrozenMutation and ErrInvariantViolation are the sentinels spec.md
// §7 calls for; FrozenMutationError and InvariantViolationError carry the
// context (the operation attempted, or what checkValid found wrong) and
// both satisfy errors.Is against their sentinel.
var (
	ErrFrozenMutation    = errors.New("bptree: mutation attempted on a frozen tree")
	ErrInvariantViolation = errors.New("bptree: structural invariant violated")
)

// FrozenMutationError is returned by every mutator when the tree has been
// Frozen (spec.md §5, §7).
type FrozenMutationError struct {
	Op string
}

func (e *FrozenMutationError) Error() string {
	return fmt.Sprintf("bptree: %s on a frozen tree", e.Op)
}

func (e *FrozenMutationError) Is(target error) bool {
	return target == ErrFrozenMutation
}

// InvariantViolationError is returned by CheckValid when the structural
// audit of spec.md §8 (size mismatch, unordered per-child max keys,
// uneven leaf depth, oversized node) fails.
type InvariantViolationError struct {
	Reason string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("bptree: invariant violation: %s", e.Reason)
}

func (e *InvariantViolationError) Is(target error) bool {
	return target == ErrInvariantViolation
}
