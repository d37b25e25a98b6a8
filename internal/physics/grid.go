package physics

import (
	"errors"
	"fmt"
)

// ErrGridSize is returned when a grid side length is odd or too small.
var ErrGridSize = errors.New("grid size must be an even number >= 2")

// Bounds is a square grid of side Size centered on the origin.
// Valid coordinates on each axis are [-Size/2, Size/2-1].
type Bounds struct {
	size int
	half int
}

// NewBounds creates bounds for a grid with the given side length.
func NewBounds(size int) (Bounds, error) {
	if size < 2 || size%2 != 0 {
		return Bounds{}, fmt.Errorf("%w: got %d", ErrGridSize, size)
	}
	return Bounds{size: size, half: size / 2}, nil
}

// Size returns the side length of the grid.
func (b Bounds) Size() int {
	return b.size
}

// Min returns the lowest valid coordinate on either axis.
func (b Bounds) Min() int {
	return -b.half
}

// Max returns the highest valid coordinate on either axis.
func (b Bounds) Max() int {
	return b.half - 1
}

// Area returns the number of cells in the grid.
func (b Bounds) Area() int {
	return b.size * b.size
}

// Contains reports whether (x, z) lies on the grid.
func (b Bounds) Contains(x, z int) bool {
	return x >= -b.half && x < b.half && z >= -b.half && z < b.half
}

// Index maps an in-bounds cell to a flat row-major index in [0, Area).
func (b Bounds) Index(x, z int) int {
	return (z+b.half)*b.size + (x + b.half)
}

// At is the inverse of Index.
func (b Bounds) At(index int) (x, z int) {
	return index%b.size - b.half, index/b.size - b.half
}
