package bptree

import (
	"bytes"
	"cmp"
	"fmt"
	"reflect"
	"time"

	"github.com/araddon/dateparse"
)

// CompareFunc is the comparator contract of spec.md §4.1: a pure, total
// order over K, returning <0, 0, or >0. The tree treats it as an opaque
// collaborator and never inspects its internals; behavior is undefined if
// two calls disagree about the order of the same pair over the lifetime
// of a tree (spec.md §4.1, ComparatorNonTotal).
type CompareFunc[K any] func(a, b K) int

// Ordered delegates to the standard library's cmp.Compare, which already
// gives floating-point NaN a single, self-consistent place in the order —
// exactly the "consistent placement for not-a-number values" spec.md §6
// asks the default comparator to provide.
func Ordered[K cmp.Ordered](a, b K) int {
	return cmp.Compare(a, b)
}

// DefaultCompare is the convenience ordering of spec.md §6 for keys typed
// as `any`: numbers ordered numerically, strings and byte slices ordered
// byte-wise, slices ordered element-by-element with the same rules and
// shorter-is-less on a common prefix, and date-like values — a
// time.Time, or a string/[]byte that
// github.com/araddon/dateparse.ParseAny can parse — ordered by the parsed
// instant. It is a convenience helper, not part of the core algorithms
// (spec.md §1): the core only ever consumes a CompareFunc.
func DefaultCompare(a, b any) int {
	if c, ok := compareDateLike(a, b); ok {
		return c
	}
	if c, ok := compareNumeric(a, b); ok {
		return c
	}
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return bytes.Compare([]byte(av), []byte(bv))
		}
	case []byte:
		if bv, ok := b.([]byte); ok {
			return bytes.Compare(av, bv)
		}
	}
	if c, ok := compareSlice(a, b); ok {
		return c
	}
	// Last resort: compare the values' printed form, a stand-in for "a
	// type exposing a string coercion" in a dynamically typed source.
	return bytes.Compare([]byte(fmt.Sprint(a)), []byte(fmt.Sprint(b)))
}

func compareDateLike(a, b any) (int, bool) {
	ta, aok := asTime(a)
	tb, bok := asTime(b)
	if !aok || !bok {
		return 0, false
	}
	switch {
	case ta.Before(tb):
		return -1, true
	case ta.After(tb):
		return 1, true
	default:
		return 0, true
	}
}

func asTime(v any) (time.Time, bool) {
	switch tv := v.(type) {
	case time.Time:
		return tv, true
	case string:
		t, err := dateparse.ParseAny(tv)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	case []byte:
		t, err := dateparse.ParseAny(string(tv))
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	default:
		return time.Time{}, false
	}
}

func compareNumeric(a, b any) (int, bool) {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if !aok || !bok {
		return 0, false
	}
	return cmp.Compare(af, bf), true
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func compareSlice(a, b any) (int, bool) {
	av := reflect.ValueOf(a)
	bv := reflect.ValueOf(b)
	if av.Kind() != reflect.Slice || bv.Kind() != reflect.Slice {
		return 0, false
	}
	n := av.Len()
	if bv.Len() < n {
		n = bv.Len()
	}
	for i := 0; i < n; i++ {
		c := DefaultCompare(av.Index(i).Interface(), bv.Index(i).Interface())
		if c != 0 {
			return c, true
		}
	}
	return cmp.Compare(av.Len(), bv.Len()), true
}
