package sim

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"github.com/tomz197/snake/internal/object"
)

func newTestSim(t *testing.T, seed int64) *Simulation {
	t.Helper()
	s, err := New(20, WithSeed(seed))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func load(t *testing.T, s *Simulation, snap Snapshot) {
	t.Helper()
	if err := s.Load(snap); err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func cells(xz ...int) []object.Cell {
	out := make([]object.Cell, 0, len(xz)/2)
	for i := 0; i+1 < len(xz); i += 2 {
		out = append(out, object.Cell{X: xz[i], Z: xz[i+1]})
	}
	return out
}

func TestNewRejectsBadGridSize(t *testing.T) {
	for _, size := range []int{0, 1, 3, 19, -2} {
		if _, err := New(size); !errors.Is(err, ErrGridSize) {
			t.Errorf("New(%d) err = %v, want ErrGridSize", size, err)
		}
	}
}

func TestResetInitialState(t *testing.T) {
	s := newTestSim(t, 1)
	snap := s.Snapshot()

	if !reflect.DeepEqual(snap.Segments, cells(0, 0)) {
		t.Errorf("segments = %v, want [(0,0)]", snap.Segments)
	}
	if snap.Direction != object.South {
		t.Errorf("direction = %v, want south", snap.Direction)
	}
	if snap.Score != 0 || !snap.Running || snap.Cause != CauseNone || snap.Tick != 0 {
		t.Errorf("unexpected fresh state: %+v", snap)
	}
	if snap.Food == (object.Cell{}) {
		t.Errorf("food placed on the snake: %v", snap.Food)
	}
	if snap.GridSize != 20 {
		t.Errorf("grid size = %d, want 20", snap.GridSize)
	}
}

func TestStepEatsFood(t *testing.T) {
	s := newTestSim(t, 2)
	load(t, s, Snapshot{
		Segments:  cells(0, 0),
		Food:      object.Cell{X: 0, Z: 1},
		Direction: object.South,
		Running:   true,
	})

	s.Step()
	snap := s.Snapshot()

	if snap.Head() != (object.Cell{X: 0, Z: 1}) {
		t.Fatalf("head = %v, want (0,1)", snap.Head())
	}
	if snap.Len() != 2 {
		t.Fatalf("length = %d, want 2", snap.Len())
	}
	if snap.Score != 1 {
		t.Fatalf("score = %d, want 1", snap.Score)
	}
	if !snap.Running {
		t.Fatal("game should still be running")
	}
	for _, c := range snap.Segments {
		if c == snap.Food {
			t.Fatalf("new food %v placed on snake %v", snap.Food, snap.Segments)
		}
	}
}

func TestStepBoundaryCollision(t *testing.T) {
	s := newTestSim(t, 3)
	load(t, s, Snapshot{
		Segments:  cells(-10, 0),
		Food:      object.Cell{X: 5, Z: 5},
		Direction: object.West,
		Running:   true,
	})

	s.Step()
	snap := s.Snapshot()

	if snap.Running {
		t.Fatal("moving to (-11,0) should end the game")
	}
	if snap.Cause != CauseWall {
		t.Errorf("cause = %v, want wall", snap.Cause)
	}
	if !reflect.DeepEqual(snap.Segments, cells(-10, 0)) {
		t.Errorf("segments changed on collision: %v", snap.Segments)
	}
}

func TestStepBoundaryEachEdge(t *testing.T) {
	tests := []struct {
		name string
		at   object.Cell
		dir  object.Direction
	}{
		{"north", object.Cell{X: 0, Z: -10}, object.North},
		{"south", object.Cell{X: 0, Z: 9}, object.South},
		{"west", object.Cell{X: -10, Z: 0}, object.West},
		{"east", object.Cell{X: 9, Z: 0}, object.East},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSim(t, 4)
			load(t, s, Snapshot{
				Segments:  []object.Cell{tt.at},
				Food:      object.Cell{X: 1, Z: 1},
				Direction: tt.dir,
				Running:   true,
			})
			s.Step()
			if s.Running() {
				t.Fatalf("step %v from %v should leave the grid", tt.dir, tt.at)
			}
		})
	}
}

func TestStepSelfCollision(t *testing.T) {
	s := newTestSim(t, 5)
	load(t, s, Snapshot{
		Segments:  cells(0, 0, 0, 1, 0, 2),
		Food:      object.Cell{X: 5, Z: 5},
		Direction: object.South,
		Running:   true,
	})

	s.Step()
	snap := s.Snapshot()
	if snap.Running {
		t.Fatal("moving onto the second segment should end the game")
	}
	if snap.Cause != CauseSelf {
		t.Errorf("cause = %v, want self", snap.Cause)
	}
}

func TestStepOntoTailIsFatal(t *testing.T) {
	// A 2x2 loop: head at (0,0), tail at (1,0). Moving east lands on the tail,
	// which would vacate this tick, but the check runs before the tail moves.
	s := newTestSim(t, 6)
	load(t, s, Snapshot{
		Segments:  cells(0, 0, 0, 1, 1, 1, 1, 0),
		Food:      object.Cell{X: 5, Z: 5},
		Direction: object.North,
		Running:   true,
	})

	s.SetDirection(object.East)
	s.Step()
	if s.Running() {
		t.Fatal("moving onto the current tail cell should end the game")
	}
	if got := s.Snapshot().Cause; got != CauseSelf {
		t.Errorf("cause = %v, want self", got)
	}
}

func TestStepMovesWithoutGrowing(t *testing.T) {
	s := newTestSim(t, 7)
	load(t, s, Snapshot{
		Segments:  cells(0, 0, 0, -1, 0, -2),
		Food:      object.Cell{X: 5, Z: 5},
		Direction: object.South,
		Running:   true,
	})

	s.SetDirection(object.East)
	s.Step()
	snap := s.Snapshot()

	want := cells(1, 0, 0, 0, 0, -1)
	if !reflect.DeepEqual(snap.Segments, want) {
		t.Fatalf("segments = %v, want %v", snap.Segments, want)
	}
	if snap.Direction != object.East {
		t.Errorf("direction = %v, want east", snap.Direction)
	}
	if snap.Score != 0 || snap.Tick != 1 {
		t.Errorf("score=%d tick=%d, want 0 and 1", snap.Score, snap.Tick)
	}
}

func TestStepAfterGameOverIsNoop(t *testing.T) {
	s := newTestSim(t, 8)
	load(t, s, Snapshot{
		Segments:  cells(9, 0),
		Food:      object.Cell{X: 0, Z: 0},
		Direction: object.East,
		Running:   true,
	})
	s.Step()
	before := s.Snapshot()
	if before.Running {
		t.Fatal("expected game over")
	}

	for i := 0; i < 5; i++ {
		s.Step()
	}
	s.SetDirection(object.North)
	if after := s.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Fatalf("state changed after game over:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestSetDirectionRejectsReversal(t *testing.T) {
	s := newTestSim(t, 9)
	for _, d := range []object.Direction{object.East, object.North, object.West, object.South} {
		load(t, s, Snapshot{
			Segments:  cells(0, 0),
			Food:      object.Cell{X: 5, Z: 5},
			Direction: d,
			Running:   true,
		})
		s.SetDirection(d.Opposite())
		if s.Pending() != d || s.Heading() != d {
			t.Errorf("heading %v: reversal changed pending to %v", d, s.Pending())
		}
	}
}

func TestSetDirectionGuardsAgainstLastStep(t *testing.T) {
	// Two turns between ticks must not allow a reversal into the neck.
	s := newTestSim(t, 10)
	load(t, s, Snapshot{
		Segments:  cells(0, 0, -1, 0, -2, 0),
		Food:      object.Cell{X: 5, Z: 5},
		Direction: object.East,
		Running:   true,
	})

	s.SetDirection(object.North)
	s.SetDirection(object.West)
	if s.Pending() != object.North {
		t.Fatalf("pending = %v, want north (west reverses the last step)", s.Pending())
	}
	s.Step()
	if !s.Running() {
		t.Fatal("turning north should be safe")
	}
}

func TestSetDirectionLastWins(t *testing.T) {
	s := newTestSim(t, 11)
	load(t, s, Snapshot{
		Segments:  cells(0, 0),
		Food:      object.Cell{X: 5, Z: 5},
		Direction: object.South,
		Running:   true,
	})
	s.SetDirection(object.East)
	s.SetDirection(object.West)
	s.Step()
	if got := s.Snapshot().Head(); got != (object.Cell{X: -1, Z: 0}) {
		t.Fatalf("head = %v, want (-1,0)", got)
	}
}

func TestSetDirectionIgnoresInvalid(t *testing.T) {
	s := newTestSim(t, 12)
	s.SetDirection(object.Direction(0))
	s.SetDirection(object.Direction(99))
	if s.Pending() != object.South {
		t.Fatalf("pending = %v, want south", s.Pending())
	}
}

func TestResetAfterGameOver(t *testing.T) {
	s := newTestSim(t, 13)
	load(t, s, Snapshot{
		Segments:  cells(0, 9, 0, 8),
		Food:      object.Cell{X: 5, Z: 5},
		Direction: object.South,
		Score:     4,
		Running:   true,
	})
	s.Step()
	if s.Running() {
		t.Fatal("expected game over")
	}

	s.Reset()
	snap := s.Snapshot()
	if !reflect.DeepEqual(snap.Segments, cells(0, 0)) || snap.Direction != object.South ||
		snap.Score != 0 || !snap.Running || snap.Cause != CauseNone {
		t.Fatalf("unexpected state after reset: %+v", snap)
	}
	if s.st.snake.Contains(object.Cell{X: 0, Z: 8}) || s.st.snake.Occupancy().Count() != 1 {
		t.Fatal("reset left old segments occupied")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	s := newTestSim(t, 14)
	valid := Snapshot{
		Segments:  cells(0, 0),
		Food:      object.Cell{X: 1, Z: 1},
		Direction: object.South,
		Running:   true,
	}
	tests := []struct {
		name   string
		mutate func(*Snapshot)
	}{
		{"empty", func(s *Snapshot) { s.Segments = nil }},
		{"out of bounds", func(s *Snapshot) { s.Segments = cells(10, 0) }},
		{"repeated", func(s *Snapshot) { s.Segments = cells(0, 0, 0, 1, 0, 0) }},
		{"direction", func(s *Snapshot) { s.Direction = 0 }},
		{"score", func(s *Snapshot) { s.Score = -1 }},
		{"food", func(s *Snapshot) { s.Food = object.Cell{X: 0, Z: -11} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := valid
			tt.mutate(&snap)
			if err := s.Load(snap); !errors.Is(err, ErrInvalidState) {
				t.Fatalf("Load err = %v, want ErrInvalidState", err)
			}
		})
	}
}

func TestSnapshotDoesNotAlias(t *testing.T) {
	s := newTestSim(t, 15)
	snap := s.Snapshot()
	snap.Segments[0] = object.Cell{X: 7, Z: 7}
	if s.Snapshot().Head() != (object.Cell{}) {
		t.Fatal("mutating a snapshot changed the simulation")
	}
}

// TestRandomPlayInvariants drives the game with random turns and checks the
// invariants that must hold on every reachable state.
func TestRandomPlayInvariants(t *testing.T) {
	dirs := []object.Direction{object.North, object.South, object.West, object.East}
	for seed := int64(0); seed < 30; seed++ {
		s, err := New(8, WithSeed(seed))
		if err != nil {
			t.Fatal(err)
		}
		turns := rand.New(rand.NewSource(seed + 1000))

		for step := 0; step < 400 && s.Running(); step++ {
			before := s.Snapshot()
			if turns.Intn(3) == 0 {
				s.SetDirection(dirs[turns.Intn(len(dirs))])
			}
			s.Step()
			after := s.Snapshot()

			if !after.Running {
				if after.Cause == CauseNone {
					t.Fatalf("seed %d: game over without a cause", seed)
				}
				if !reflect.DeepEqual(before.Segments, after.Segments) {
					t.Fatalf("seed %d: body changed on the fatal step", seed)
				}
				break
			}

			seen := make(map[object.Cell]bool, after.Len())
			for _, c := range after.Segments {
				if seen[c] {
					t.Fatalf("seed %d step %d: duplicate segment %v in %v", seed, step, c, after.Segments)
				}
				seen[c] = true
			}

			switch {
			case after.Score == before.Score+1:
				if after.Len() != before.Len()+1 {
					t.Fatalf("seed %d: ate food but length %d -> %d", seed, before.Len(), after.Len())
				}
				if seen[after.Food] && after.Len() < 64 {
					t.Fatalf("seed %d: food %v placed under snake", seed, after.Food)
				}
			case after.Score == before.Score:
				if after.Len() != before.Len() {
					t.Fatalf("seed %d: length changed without eating", seed)
				}
			default:
				t.Fatalf("seed %d: score jumped %d -> %d", seed, before.Score, after.Score)
			}
		}
	}
}

func TestCauseString(t *testing.T) {
	if CauseWall.String() != "wall-collision" || CauseSelf.String() != "self-collision" || CauseNone.String() != "none" {
		t.Fatal("unexpected cause names")
	}
}
