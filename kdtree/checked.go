package kdtree

import "golang.org/x/exp/constraints"

// addChecked returns a+b and false if the addition overflowed.
func addChecked[T constraints.Signed](a, b T) (T, bool) {
	c := a + b
	if (b > 0 && c < a) || (b < 0 && c > a) {
		return 0, false
	}
	return c, true
}

// subChecked returns a-b and false if the subtraction overflowed.
func subChecked[T constraints.Signed](a, b T) (T, bool) {
	c := a - b
	if (b > 0 && c > a) || (b < 0 && c < a) {
		return 0, false
	}
	return c, true
}

// floorMidpoint returns ⌊(a+b)/2⌋ without overflowing.
func floorMidpoint[T constraints.Signed](a, b T) T {
	return (a & b) + (a^b)>>1
}
