package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time { return f.t }

func TestAdvanceRunsWholeSteps(t *testing.T) {
	fc := &fakeClock{t: time.Unix(0, 0)}
	s := newStepper(10*time.Millisecond, fc.now)

	var dts []float64
	update := func(dt float64) { dts = append(dts, dt) }

	fc.t = fc.t.Add(25 * time.Millisecond)
	assert.Equal(t, 2, s.Advance(update))

	fc.t = fc.t.Add(4 * time.Millisecond)
	assert.Equal(t, 0, s.Advance(update))

	fc.t = fc.t.Add(1 * time.Millisecond)
	assert.Equal(t, 1, s.Advance(update))

	assert.Equal(t, []float64{0.01, 0.01, 0.01}, dts)
	assert.Equal(t, 30*time.Millisecond, s.Elapsed())
}

func TestAdvanceWithoutTimePassing(t *testing.T) {
	fc := &fakeClock{t: time.Unix(100, 0)}
	s := newStepper(time.Second, fc.now)

	called := false
	assert.Equal(t, 0, s.Advance(func(float64) { called = true }))
	assert.False(t, called)
	assert.Equal(t, time.Second, s.Step())
}
