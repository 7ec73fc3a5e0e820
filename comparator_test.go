package bptree

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOrdered(t *testing.T) {
	require.Negative(t, Ordered(1, 2))
	require.Zero(t, Ordered(2, 2))
	require.Positive(t, Ordered(3, 2))
	require.Negative(t, Ordered("a", "b"))
}

func TestOrdered_NaNConsistentPlacement(t *testing.T) {
	nan := math.NaN()
	// cmp.Compare gives NaN a single, self-consistent place in the
	// order: it always compares less than every other float.
	require.Negative(t, Ordered(nan, 1.0))
	require.Positive(t, Ordered(1.0, nan))
	require.Zero(t, Ordered(nan, nan))
}

func TestDefaultCompare_Numeric(t *testing.T) {
	require.Negative(t, DefaultCompare(1, 2))
	require.Zero(t, DefaultCompare(int32(5), int64(5)))
	require.Positive(t, DefaultCompare(3.5, 3))
	require.Negative(t, DefaultCompare(uint8(1), uint64(2)))
}

func TestDefaultCompare_String(t *testing.T) {
	require.Negative(t, DefaultCompare("apple", "banana"))
	require.Zero(t, DefaultCompare("same", "same"))
	require.Negative(t, DefaultCompare([]byte("a"), []byte("b")))
}

func TestDefaultCompare_Slice(t *testing.T) {
	require.Negative(t, DefaultCompare([]int{1, 2}, []int{1, 3}))
	require.Negative(t, DefaultCompare([]int{1, 2}, []int{1, 2, 3}))
	require.Zero(t, DefaultCompare([]int{1, 2, 3}, []int{1, 2, 3}))
}

func TestDefaultCompare_DateLike(t *testing.T) {
	now := time.Now()
	later := now.Add(time.Hour)
	require.Negative(t, DefaultCompare(now, later))

	a, err := time.Parse(time.RFC3339, "2024-01-01T00:00:00Z")
	require.NoError(t, err)
	b, err := time.Parse(time.RFC3339, "2024-06-01T00:00:00Z")
	require.NoError(t, err)
	require.Negative(t, DefaultCompare(a, b))

	require.Negative(t, DefaultCompare("2024-01-01", "2024-06-01"))
}
