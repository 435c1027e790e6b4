package common

import (
	"reflect"

	"golang.org/x/exp/constraints"
)

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// Clamp limits v to the closed range [lo, hi].
//
// Parameters:
//   - v: the value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - T: v limited to [lo, hi]
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp linearly interpolates between a and b. t=0 returns a, t=1 returns b.
func Lerp[T constraints.Float](a, b, t T) T {
	return a + (b-a)*t
}

// Identical reports whether a and b hold the same dynamic type and equal values. Comparable values
// are compared with ==; values holding slices, maps or funcs fall back to reflect.DeepEqual instead
// of panicking.
//
// Parameters:
//   - a: first value
//   - b: second value
//
// Returns:
//   - bool: true if a and b are the same value
func Identical(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	if !va.Comparable() || !vb.Comparable() {
		return reflect.DeepEqual(a, b)
	}
	return a == b
}
