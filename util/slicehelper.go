package util

import (
	"golang.org/x/exp/constraints"
)

// Make 1D slice appear as 2D slice and helper functions.
// Row major, Width is also the row stride.

type Matrix[T constraints.Ordered] struct {
	Width  int
	Height int
	Data   []T
}

// New2DMatrix creates a new 2D matrix with the given dimensions
// Note height is the first dimension, width is the second
func New2DMatrix[T constraints.Ordered](height int, width int) *Matrix[T] {
	matrix := make([]T, width*height)
	return &Matrix[T]{Width: width, Height: height, Data: matrix}
}

// New2DMatrixFromSlice wraps existing storage. data must hold at least
// width*height elements; anything past that is ignored.
func New2DMatrixFromSlice[T constraints.Ordered](height int, width int, data []T) *Matrix[T] {
	return &Matrix[T]{Width: width, Height: height, Data: data[:width*height]}
}

// Note y is first param...  just for compatibility
func (s *Matrix[T]) Get(y int, x int) T {
	return s.Data[y*s.Width+x]
}

func (s *Matrix[T]) Set(y int, x int, value T) {
	s.Data[y*s.Width+x] = value
}

func (s *Matrix[T]) InBounds(y int, x int) bool {
	return y >= 0 && y < s.Height && x >= 0 && x < s.Width
}

func (s *Matrix[T]) GetRow(y int) []T {
	return s.Data[y*s.Width : (y+1)*s.Width]
}

func (s *Matrix[T]) Fill(value T) {
	FillSlice(s.Data, value)
}

// Count returns how many cells hold value.
func (s *Matrix[T]) Count(value T) int {
	n := 0
	for _, v := range s.Data {
		if v == value {
			n++
		}
	}
	return n
}
