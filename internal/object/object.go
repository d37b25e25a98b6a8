// Package object defines the entities that live on the grid: cells,
// directions, the snake body and the food spawner.
package object

import "fmt"

// Cell is an integer coordinate on the grid plane.
// X grows to the east, Z grows to the south.
type Cell struct {
	X int
	Z int
}

// Move returns the neighbouring cell one step in direction d.
func (c Cell) Move(d Direction) Cell {
	dx, dz := d.Delta()
	return Cell{X: c.X + dx, Z: c.Z + dz}
}

// String implements fmt.Stringer.
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Z)
}
