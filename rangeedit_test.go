package bptree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestForRange_ScenarioS5(t *testing.T) {
	tr := NewOrdered[int, int]()
	for i := 1; i <= 100; i++ {
		mustSet(t, tr, i, i)
	}

	result := tr.ForRange(10, 20, true, func(k, v, counter int) bool {
		return counter == 3
	}, 0)
	require.Equal(t, 4, result)
}

func TestForRangeTyped_BreaksWithTypedValue(t *testing.T) {
	tr := NewOrdered[int, int]()
	for i := 1; i <= 100; i++ {
		mustSet(t, tr, i, i)
	}

	result, count, broke := ForRangeTyped[int, int, int](tr, 10, 20, true, func(k, v, counter int) ScanDirective[int] {
		if counter == 3 {
			return BreakWith(k)
		}
		return ScanDirective[int]{}
	}, 0)
	require.True(t, broke)
	require.Equal(t, 13, result)
	require.Equal(t, 4, count)
}

func TestForRange_NoBreakReturnsTotalCount(t *testing.T) {
	tr := NewOrdered[int, int]()
	for i := 1; i <= 10; i++ {
		mustSet(t, tr, i, i)
	}

	var seen []int
	result := tr.ForRange(1, 10, true, func(k, v, counter int) bool {
		seen = append(seen, k)
		return false
	}, 0)
	require.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, seen)
	require.Equal(t, 10, result)
}

func TestEditRange_ScenarioS6(t *testing.T) {
	tr := NewOrdered[int, int]()
	for i := 1; i <= 10; i++ {
		mustSet(t, tr, i, i)
	}

	_, err := tr.EditRange(1, 10, true, func(k, v, counter int) EditDirective[int] {
		if k%2 == 0 {
			return EditDirective[int]{Delete: true}
		}
		return EditDirective[int]{SetValue: true, Value: -v}
	}, 0)
	require.NoError(t, err)

	require.Equal(t, []Pair[int, int]{
		{Key: 1, Value: -1},
		{Key: 3, Value: -3},
		{Key: 5, Value: -5},
		{Key: 7, Value: -7},
		{Key: 9, Value: -9},
	}, tr.ToArray())
	require.NoError(t, tr.CheckValid())
}

func TestEditRange_BreakStopsFurtherEdits(t *testing.T) {
	tr := NewOrdered[int, int]()
	for i := 1; i <= 10; i++ {
		mustSet(t, tr, i, i)
	}

	counter, err := tr.EditRange(1, 10, true, func(k, v, c int) EditDirective[int] {
		d := EditDirective[int]{SetValue: true, Value: v * 10}
		if k == 5 {
			d.Break = true
		}
		return d
	}, 0)
	require.NoError(t, err)
	require.Equal(t, 5, counter)

	for i := 1; i <= 5; i++ {
		v, _ := tr.Get(i)
		require.Equal(t, i*10, v)
	}
	for i := 6; i <= 10; i++ {
		v, _ := tr.Get(i)
		require.Equal(t, i, v)
	}
	require.NoError(t, tr.CheckValid())
}

func TestEditRangeTyped_BreakValPropagates(t *testing.T) {
	tr := NewOrdered[int, int]()
	for i := 1; i <= 10; i++ {
		mustSet(t, tr, i, i)
	}

	breakVal, count, broke, err := EditRangeTyped[int, int, string](tr, 1, 10, true, func(k, v, c int) TypedEditDirective[int, string] {
		if k == 4 {
			return TypedEditDirective[int, string]{Delete: true, Break: true, BreakVal: "stopped at 4"}
		}
		return TypedEditDirective[int, string]{}
	}, 0)
	require.NoError(t, err)
	require.True(t, broke)
	require.Equal(t, "stopped at 4", breakVal)
	require.Equal(t, 4, count)
	require.False(t, tr.Has(4))
	require.NoError(t, tr.CheckValid())
}

func TestDeleteRange(t *testing.T) {
	tr := NewOrdered[int, int]()
	for i := 1; i <= 20; i++ {
		mustSet(t, tr, i, i)
	}

	count, err := tr.DeleteRange(5, 10, true)
	require.NoError(t, err)
	require.Equal(t, 6, count)

	for i := 5; i <= 10; i++ {
		require.False(t, tr.Has(i))
	}
	require.Equal(t, 14, tr.Size())
	require.NoError(t, tr.CheckValid())
}

func TestEditRange_FrozenRejected(t *testing.T) {
	tr := NewOrdered[int, int]()
	mustSet(t, tr, 1, 1)
	tr.Freeze()

	_, err := tr.EditRange(0, 10, true, func(k, v, c int) EditDirective[int] {
		return EditDirective[int]{Delete: true}
	}, 0)
	require.ErrorIs(t, err, ErrFrozenMutation)
}

func TestGetRange(t *testing.T) {
	tr := NewOrdered[int, int]()
	for i := 1; i <= 20; i++ {
		mustSet(t, tr, i, i)
	}

	got := tr.GetRange(5, 10, false)
	require.Len(t, got, 5)
	for i, p := range got {
		require.Equal(t, 5+i, p.Key)
	}

	gotIncl := tr.GetRange(5, 10, true)
	require.Len(t, gotIncl, 6)
}

func TestForEachAndForEachPair(t *testing.T) {
	tr := NewOrdered[int, string]()
	mustSet(t, tr, 1, "a")
	mustSet(t, tr, 2, "b")
	mustSet(t, tr, 3, "c")

	var got []string
	tr.ForEach(func(v string, k int, tree *Tree[int, string]) {
		got = append(got, v)
	})
	require.Equal(t, []string{"a", "b", "c"}, got)

	final := tr.ForEachPair(func(k int, v string, counter int) bool {
		return k == 2
	})
	require.Equal(t, 2, final)
}
