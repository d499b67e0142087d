package clock

import "time"

// Stepper runs a fixed-timestep update from a variable frame rate. Wall
// time accumulates between frames and is consumed in whole steps; the
// remainder carries over.
type Stepper struct {
	step    time.Duration
	acc     time.Duration
	elapsed time.Duration
	last    time.Time
	now     func() time.Time
}

func NewStepper(step time.Duration) *Stepper {
	return newStepper(step, time.Now)
}

func newStepper(step time.Duration, now func() time.Time) *Stepper {
	return &Stepper{
		step: step,
		last: now(),
		now:  now,
	}
}

// Step returns the fixed step length.
func (s *Stepper) Step() time.Duration {
	return s.step
}

// Elapsed returns the simulated time consumed so far.
func (s *Stepper) Elapsed() time.Duration {
	return s.elapsed
}

// Advance adds the wall time since the previous call and runs update once
// per whole step. It returns the number of steps run.
func (s *Stepper) Advance(update func(dt float64)) int {
	current := s.now()
	s.acc += current.Sub(s.last)
	s.last = current

	steps := 0
	dt := s.step.Seconds()
	for s.acc >= s.step {
		update(dt)
		s.acc -= s.step
		s.elapsed += s.step
		steps++
	}
	return steps
}
