package sim

import (
	"github.com/tomz197/snake/internal/object"
	"github.com/tomz197/snake/internal/physics"
)

// checkCollision returns the cause of death if the head moved to next, or
// CauseNone if the move is safe.
//
// The self test runs against the body before the move, so the tail cell
// counts as occupied even on ticks where the tail is about to vacate it.
func checkCollision(b physics.Bounds, snake *object.Snake, next object.Cell) Cause {
	if !b.Contains(next.X, next.Z) {
		return CauseWall
	}
	if snake.Contains(next) {
		return CauseSelf
	}
	return CauseNone
}
