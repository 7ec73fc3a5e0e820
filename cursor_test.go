package bptree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCursor_EntriesFromStart(t *testing.T) {
	tr := NewOrdered[int, int]()
	for i := 1; i <= 10; i++ {
		mustSet(t, tr, i, i)
	}

	cur := tr.Entries(nil)
	var got []int
	for {
		k, _, ok := cur.Next()
		if !ok {
			break
		}
		got = append(got, k)
	}
	require.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, got)
}

func TestCursor_EntriesFromLowestKey(t *testing.T) {
	tr := NewOrdered[int, int]()
	for i := 1; i <= 10; i++ {
		mustSet(t, tr, i*2, i*2)
	}

	from := 5
	cur := tr.Entries(&from)
	k, _, ok := cur.Next()
	require.True(t, ok)
	require.Equal(t, 6, k)
}

func TestCursor_NextInto(t *testing.T) {
	tr := NewOrdered[int, string]()
	mustSet(t, tr, 1, "a")
	mustSet(t, tr, 2, "b")

	cur := tr.Entries(nil)
	var buf Pair[int, string]
	require.True(t, cur.NextInto(&buf))
	require.Equal(t, Pair[int, string]{Key: 1, Value: "a"}, buf)
	require.True(t, cur.NextInto(&buf))
	require.Equal(t, Pair[int, string]{Key: 2, Value: "b"}, buf)
	require.False(t, cur.NextInto(&buf))
}

func TestReverseCursor_FromEnd(t *testing.T) {
	tr := NewOrdered[int, int]()
	for i := 1; i <= 10; i++ {
		mustSet(t, tr, i, i)
	}

	cur := tr.EntriesReversed(nil, false)
	var got []int
	for {
		k, _, ok := cur.Prev()
		if !ok {
			break
		}
		got = append(got, k)
	}
	require.Equal(t, []int{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}, got)
}

func TestReverseCursor_HighestKeyAndSkipHighest(t *testing.T) {
	tr := NewOrdered[int, int]()
	for i := 1; i <= 10; i++ {
		mustSet(t, tr, i, i)
	}

	high := 5
	cur := tr.EntriesReversed(&high, false)
	k, _, ok := cur.Prev()
	require.True(t, ok)
	require.Equal(t, 5, k)

	cur2 := tr.EntriesReversed(&high, true)
	k, _, ok = cur2.Prev()
	require.True(t, ok)
	require.Equal(t, 4, k)
}

func TestReverseCursor_HighestKeyBelowAllKeys(t *testing.T) {
	tr := NewOrdered[int, int]()
	for i := 5; i <= 10; i++ {
		mustSet(t, tr, i, i)
	}

	low := 1
	cur := tr.EntriesReversed(&low, false)
	_, _, ok := cur.Prev()
	require.False(t, ok)
}

func TestKeysAndValuesCursors(t *testing.T) {
	tr := NewOrdered[int, string]()
	mustSet(t, tr, 1, "a")
	mustSet(t, tr, 2, "b")

	kc := tr.Keys(nil)
	k, ok := kc.Next()
	require.True(t, ok)
	require.Equal(t, 1, k)

	vc := tr.Values(nil)
	v, ok := vc.Next()
	require.True(t, ok)
	require.Equal(t, "a", v)
}

func TestClone_DuringIterationObservesSnapshot(t *testing.T) {
	tr := NewOrdered[int, int]()
	for i := 1; i <= 5; i++ {
		mustSet(t, tr, i, i)
	}

	cur := tr.Entries(nil)
	k, _, ok := cur.Next()
	require.True(t, ok)
	require.Equal(t, 1, k)

	clone := tr.Clone()
	_, err := clone.Set(100, 100, true)
	require.NoError(t, err)

	var rest []int
	for {
		k, _, ok := cur.Next()
		if !ok {
			break
		}
		rest = append(rest, k)
	}
	require.Equal(t, []int{2, 3, 4, 5}, rest)
}

func TestWalk(t *testing.T) {
	tr := NewOrdered[int, int]()
	for i := 1; i <= 20; i++ {
		mustSet(t, tr, i, i)
	}

	var got []int
	tr.Walk(func(k, v int) bool {
		got = append(got, k)
		return k == 10
	})
	require.Equal(t, 10, got[len(got)-1])
	require.True(t, len(got) <= 10)
}

func TestEqual(t *testing.T) {
	a := NewOrdered[int, string]()
	b := NewOrdered[int, string]()
	for i := 1; i <= 5; i++ {
		mustSet(t, a, i, "v")
		mustSet(t, b, i, "v")
	}
	require.True(t, a.Equal(b, func(x, y string) bool { return x == y }))

	mustSet(t, b, 6, "v")
	require.False(t, a.Equal(b, func(x, y string) bool { return x == y }))
}
