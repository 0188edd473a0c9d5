package util

import (
	"golang.org/x/exp/constraints"
)

func IfThenElse[T any](condition bool, a T, b T) T {
	if condition {
		return a
	}
	return b
}

func Abs[T constraints.Signed | constraints.Float](a T) T {
	if a < 0 {
		return -a
	}
	return a
}

// Clamp limits v to the inclusive range [lo, hi].
func Clamp[T constraints.Ordered](v T, lo T, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampToByte clamps an intermediate sample value to 0-255.
func ClampToByte(v int) uint8 {
	return uint8(Clamp(v, 0, 255))
}

func FillSlice[T any](a []T, val T) {
	for i := range a {
		a[i] = val
	}
}

// RoundDownToEven clears the lowest bit of a non negative value.
func RoundDownToEven(v int) int {
	return v - v%2
}
