package object

import "github.com/tomz197/snake/internal/physics"

// Snake is the ordered body of the player, head first.
// It keeps an occupancy map in step with the body so overlap tests are O(1).
type Snake struct {
	body []Cell
	occ  *physics.Occupancy
}

// NewSnake creates a snake from the given cells (head first) on bounds b.
// The caller is responsible for the cells being in bounds and distinct.
func NewSnake(b physics.Bounds, cells ...Cell) *Snake {
	s := &Snake{
		body: make([]Cell, 0, max(len(cells), 16)),
		occ:  physics.NewOccupancy(b),
	}
	for _, c := range cells {
		s.body = append(s.body, c)
		s.occ.Set(c.X, c.Z)
	}
	return s
}

// Reset replaces the body with cells (head first), reusing its storage.
func (s *Snake) Reset(cells ...Cell) {
	s.body = s.body[:0]
	s.occ.Reset()
	for _, c := range cells {
		s.body = append(s.body, c)
		s.occ.Set(c.X, c.Z)
	}
}

// Head returns the first segment.
func (s *Snake) Head() Cell {
	return s.body[0]
}

// Tail returns the last segment.
func (s *Snake) Tail() Cell {
	return s.body[len(s.body)-1]
}

// Len returns the number of segments.
func (s *Snake) Len() int {
	return len(s.body)
}

// Contains reports whether any segment, tail included, occupies c.
func (s *Snake) Contains(c Cell) bool {
	return s.occ.Occupied(c.X, c.Z)
}

// Occupancy exposes the occupancy map for food placement.
// Callers must not mutate it.
func (s *Snake) Occupancy() *physics.Occupancy {
	return s.occ
}

// PushHead prepends c as the new head.
func (s *Snake) PushHead(c Cell) {
	s.body = append(s.body, Cell{})
	copy(s.body[1:], s.body)
	s.body[0] = c
	s.occ.Set(c.X, c.Z)
}

// PopTail removes and returns the last segment.
func (s *Snake) PopTail() Cell {
	last := len(s.body) - 1
	tail := s.body[last]
	s.body = s.body[:last]
	s.occ.Clear(tail.X, tail.Z)
	return tail
}

// AppendSegments appends a copy of the body (head first) to dst.
func (s *Snake) AppendSegments(dst []Cell) []Cell {
	return append(dst, s.body...)
}
