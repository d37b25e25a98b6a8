// Package loop provides the fixed-rate tick scheduler that drives the
// simulation independently of how often frames are drawn.
package loop

import (
	"context"
	"time"
)

// Stepper advances a simulation by one discrete tick.
type Stepper interface {
	Step()
}

// Scheduler invokes Step at most once per call to Tick, and only when at
// least one interval has elapsed since the previous step. Missed intervals
// are not caught up.
type Scheduler struct {
	interval time.Duration
	target   Stepper
	last     time.Time
}

// NewScheduler creates a scheduler whose first step is due one interval after start.
func NewScheduler(interval time.Duration, target Stepper, start time.Time) *Scheduler {
	return &Scheduler{
		interval: interval,
		target:   target,
		last:     start,
	}
}

// Tick steps the target if the interval has elapsed since the last step.
// Returns true if a step was taken.
func (s *Scheduler) Tick(now time.Time) bool {
	if now.Sub(s.last) < s.interval {
		return false
	}
	s.target.Step()
	s.last = now
	return true
}

// Reset re-arms the scheduler so the next step is one interval after now.
func (s *Scheduler) Reset(now time.Time) {
	s.last = now
}

// Interval returns the tick interval.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Run calls fn once per frame until ctx is cancelled or fn returns false.
// Frame pacing sleeps off whatever time fn did not use.
func Run(ctx context.Context, frame time.Duration, fn func(now time.Time) bool) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		frameStart := time.Now()
		if !fn(frameStart) {
			return
		}

		elapsed := time.Since(frameStart)
		if elapsed < frame {
			time.Sleep(frame - elapsed)
		}
	}
}
