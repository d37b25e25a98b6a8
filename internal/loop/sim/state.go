package sim

import "github.com/tomz197/snake/internal/object"

// Cause records why a game ended. The core does not need it; screens use it.
type Cause int

const (
	CauseNone Cause = iota // Still running, or never started
	CauseWall              // Head left the grid
	CauseSelf              // Head ran into a segment
)

// String implements fmt.Stringer.
func (c Cause) String() string {
	switch c {
	case CauseWall:
		return "wall-collision"
	case CauseSelf:
		return "self-collision"
	default:
		return "none"
	}
}

// state is the mutable game state owned by a Simulation.
type state struct {
	snake   *object.Snake
	heading object.Direction // direction of the most recent step
	pending object.Direction // direction the next step will take
	food    object.Cell
	score   int
	running bool
	cause   Cause
	tick    uint64
}

// Snapshot is an immutable copy of the game state for one tick.
// Renderers read it; nothing in it aliases simulation memory.
type Snapshot struct {
	GridSize  int
	Segments  []object.Cell    // Head first
	Food      object.Cell      // Current food cell
	Direction object.Direction // Direction of the most recent step
	Score     int
	Running   bool
	Cause     Cause  // Why the game ended, CauseNone while running
	Tick      uint64 // Successful steps since Reset
}

// Head returns the first segment, or the zero cell for an empty snapshot.
func (s Snapshot) Head() object.Cell {
	if len(s.Segments) == 0 {
		return object.Cell{}
	}
	return s.Segments[0]
}

// Len returns the snake length.
func (s Snapshot) Len() int {
	return len(s.Segments)
}
