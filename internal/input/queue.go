package input

import "github.com/tomz197/snake/internal/object"

// Steerer is the part of the simulation the queue drives.
type Steerer interface {
	Running() bool
	Heading() object.Direction
	SetDirection(d object.Direction)
}

// Queue collects directional keys between ticks and hands the simulation at
// most one direction per flush: the last one that does not reverse the snake.
type Queue struct {
	pending []object.Direction
}

// Push classifies k, buffering it if it is a direction.
func (q *Queue) Push(k Key) Action {
	a := Classify(k)
	if a == ActionMove {
		d, _ := Direction(k)
		q.pending = append(q.pending, d)
	}
	return a
}

// Flush applies the buffered directions to s and empties the buffer.
// Input is dropped while s is not running.
func (q *Queue) Flush(s Steerer) {
	defer q.Reset()
	if !s.Running() {
		return
	}

	reverse := s.Heading().Opposite()
	var accepted object.Direction
	for _, d := range q.pending {
		if d != reverse {
			accepted = d
		}
	}
	if accepted.Valid() {
		s.SetDirection(accepted)
	}
}

// Len returns the number of buffered directions.
func (q *Queue) Len() int {
	return len(q.pending)
}

// Reset drops buffered directions.
func (q *Queue) Reset() {
	q.pending = q.pending[:0]
}
