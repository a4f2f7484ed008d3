package interpreter

import "math"

// Checked 64-bit arithmetic. The language's reference semantics use
// unbounded integers; this implementation restricts values to int64
// and raises ArithmeticOverflow instead of silently wrapping.

func addChecked(a, b int64) (int64, bool) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, false
	}

	return a + b, true
}

func subChecked(a, b int64) (int64, bool) {
	if (b < 0 && a > math.MaxInt64+b) || (b > 0 && a < math.MinInt64+b) {
		return 0, false
	}

	return a - b, true
}

func mulChecked(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a == math.MinInt64 && b == -1 || b == math.MinInt64 && a == -1 {
		return 0, false
	}

	result := a * b
	if result/b != a {
		return 0, false
	}
	return result, true
}

// divChecked performs floor division: the quotient is rounded toward
// negative infinity, matching the reference language's integer
// semantics rather than Go's truncation toward zero. The only
// overflowing case is MinInt64 / -1. b must be non-zero.
func divChecked(a, b int64) (int64, bool) {
	if a == math.MinInt64 && b == -1 {
		return 0, false
	}

	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q, true
}

// floorMod returns the remainder matching floor division: the result
// takes the sign of the divisor. b must be non-zero.
func floorMod(a, b int64) int64 {
	r := a % b
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}
