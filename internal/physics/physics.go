// Package physics provides the grid model and cell overlap tests.
// The only physics in a grid game is whether two things share a cell.
package physics

// Occupancy is a per-cell occupied flag over a Bounds, giving O(1) overlap
// tests instead of scanning every segment.
type Occupancy struct {
	bounds Bounds
	cells  []bool
	count  int
}

// NewOccupancy creates an empty occupancy map covering b.
func NewOccupancy(b Bounds) *Occupancy {
	return &Occupancy{
		bounds: b,
		cells:  make([]bool, b.Area()),
	}
}

// Set marks (x, z) as occupied. Out-of-bounds cells are ignored.
func (o *Occupancy) Set(x, z int) {
	if !o.bounds.Contains(x, z) {
		return
	}
	i := o.bounds.Index(x, z)
	if !o.cells[i] {
		o.cells[i] = true
		o.count++
	}
}

// Clear marks (x, z) as free. Out-of-bounds cells are ignored.
func (o *Occupancy) Clear(x, z int) {
	if !o.bounds.Contains(x, z) {
		return
	}
	i := o.bounds.Index(x, z)
	if o.cells[i] {
		o.cells[i] = false
		o.count--
	}
}

// Occupied reports whether (x, z) is occupied. Out-of-bounds cells are never occupied.
func (o *Occupancy) Occupied(x, z int) bool {
	if !o.bounds.Contains(x, z) {
		return false
	}
	return o.cells[o.bounds.Index(x, z)]
}

// Count returns the number of occupied cells.
func (o *Occupancy) Count() int {
	return o.count
}

// Full reports whether every cell is occupied.
func (o *Occupancy) Full() bool {
	return o.count == len(o.cells)
}

// Reset frees every cell without reallocating.
func (o *Occupancy) Reset() {
	clear(o.cells)
	o.count = 0
}

// AppendFree appends the flat indices of all free cells to dst and returns it.
// Use Bounds.At to turn an index back into coordinates.
func (o *Occupancy) AppendFree(dst []int) []int {
	for i, occupied := range o.cells {
		if !occupied {
			dst = append(dst, i)
		}
	}
	return dst
}
