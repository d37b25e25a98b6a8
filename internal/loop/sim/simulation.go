// Package sim implements the snake grid simulation: movement, collision,
// growth and scoring, advanced one discrete step at a time.
//
// A Simulation is not safe for concurrent use. It is owned by a single loop
// that feeds it input, steps it on a fixed cadence and reads snapshots.
package sim

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/tomz197/snake/internal/object"
	"github.com/tomz197/snake/internal/physics"
)

// ErrInvalidState is returned by Load for snapshots that break a game invariant.
var ErrInvalidState = errors.New("invalid game state")

// ErrGridSize is returned by New for odd or too small grid sizes.
var ErrGridSize = physics.ErrGridSize

// Option configures a Simulation.
type Option func(*options)

type options struct {
	rng *rand.Rand
}

// WithSeed makes food placement deterministic.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.rng = rand.New(rand.NewSource(seed))
	}
}

// Simulation owns one game of snake on a square grid centered at the origin.
type Simulation struct {
	bounds  physics.Bounds
	spawner *object.FoodSpawner
	st      state
}

// New creates a simulation on a grid of side size and resets it.
func New(size int, opts ...Option) (*Simulation, error) {
	b, err := physics.NewBounds(size)
	if err != nil {
		return nil, err
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s := &Simulation{
		bounds:  b,
		spawner: object.NewFoodSpawner(b, o.rng),
	}
	s.Reset()
	return s, nil
}

// Reset starts a fresh game: one segment at the origin heading south,
// zero score, running, food on a random free cell.
func (s *Simulation) Reset() {
	snake := s.st.snake
	if snake == nil {
		snake = object.NewSnake(s.bounds, object.Cell{})
	} else {
		snake.Reset(object.Cell{})
	}
	s.st = state{
		snake:   snake,
		heading: object.South,
		pending: object.South,
		running: true,
	}
	s.placeFood()
}

// SetDirection sets the direction for the next step. Requests for the exact
// opposite of the current heading are ignored, as is everything once the
// game is over.
func (s *Simulation) SetDirection(d object.Direction) {
	if !s.st.running || !d.Valid() {
		return
	}
	if d == s.st.heading.Opposite() {
		return
	}
	s.st.pending = d
}

// Step advances the snake by one cell. It is a no-op once the game is over.
func (s *Simulation) Step() {
	if !s.st.running {
		return
	}

	next := s.st.snake.Head().Move(s.st.pending)
	if cause := checkCollision(s.bounds, s.st.snake, next); cause != CauseNone {
		s.st.running = false
		s.st.cause = cause
		return
	}

	s.st.snake.PushHead(next)
	s.st.heading = s.st.pending
	s.st.tick++

	if next == s.st.food {
		s.st.score++
		s.placeFood()
		return
	}
	s.st.snake.PopTail()
}

// placeFood moves the food to a free cell. On a full board the food stays
// where it was; the next step is then a collision whatever the direction.
func (s *Simulation) placeFood() {
	if c, ok := s.spawner.Place(s.st.snake.Occupancy()); ok {
		s.st.food = c
	}
}

// Snapshot returns a copy of the current state.
func (s *Simulation) Snapshot() Snapshot {
	return Snapshot{
		GridSize:  s.bounds.Size(),
		Segments:  s.st.snake.AppendSegments(make([]object.Cell, 0, s.st.snake.Len())),
		Food:      s.st.food,
		Direction: s.st.heading,
		Score:     s.st.score,
		Running:   s.st.running,
		Cause:     s.st.cause,
		Tick:      s.st.tick,
	}
}

// Load replaces the current state with snap after checking it is a state the
// game could be in. The snapshot's GridSize is ignored; cells are checked
// against this simulation's grid.
func (s *Simulation) Load(snap Snapshot) error {
	if len(snap.Segments) == 0 {
		return fmt.Errorf("%w: snake has no segments", ErrInvalidState)
	}
	if !snap.Direction.Valid() {
		return fmt.Errorf("%w: direction %d", ErrInvalidState, snap.Direction)
	}
	if snap.Score < 0 {
		return fmt.Errorf("%w: negative score %d", ErrInvalidState, snap.Score)
	}
	if !s.bounds.Contains(snap.Food.X, snap.Food.Z) {
		return fmt.Errorf("%w: food %v out of bounds", ErrInvalidState, snap.Food)
	}

	snake := object.NewSnake(s.bounds)
	for i := len(snap.Segments) - 1; i >= 0; i-- {
		c := snap.Segments[i]
		if !s.bounds.Contains(c.X, c.Z) {
			return fmt.Errorf("%w: segment %v out of bounds", ErrInvalidState, c)
		}
		if snake.Contains(c) {
			return fmt.Errorf("%w: segment %v repeated", ErrInvalidState, c)
		}
		snake.PushHead(c)
	}

	cause := snap.Cause
	if snap.Running {
		cause = CauseNone
	}
	s.st = state{
		snake:   snake,
		heading: snap.Direction,
		pending: snap.Direction,
		food:    snap.Food,
		score:   snap.Score,
		running: snap.Running,
		cause:   cause,
		tick:    snap.Tick,
	}
	return nil
}

// Running reports whether the game is still in progress.
func (s *Simulation) Running() bool {
	return s.st.running
}

// Heading returns the direction of the most recent step.
func (s *Simulation) Heading() object.Direction {
	return s.st.heading
}

// Pending returns the direction the next step will take.
func (s *Simulation) Pending() object.Direction {
	return s.st.pending
}

// Score returns the number of food items eaten since Reset.
func (s *Simulation) Score() int {
	return s.st.score
}

// Bounds returns the grid the simulation runs on.
func (s *Simulation) Bounds() physics.Bounds {
	return s.bounds
}
