// Package animation provides the timing primitives behind the drawer's
// height transitions, animated scrolling, and inertial fling simulation.
//
// The package is deliberately host-agnostic: nothing here owns a thread or
// a timer. The embedding application drives all animation by calling
// [StepTickers] once per frame (or per timer tick), and tests substitute a
// fake time source with [SetClock] to advance animations deterministically.
//
//   - [Ticker]: low-level frame callback, registered while active.
//   - [Transition]: interpolates a value from Start to End over Duration
//     through an easing [Curve], reporting each value and completion.
//   - [Curve]: easing functions, including [CubicBezier] and CSS presets.
package animation

import "time"

// Transition animates a single float64 value from Start to End.
//
// A Transition is the explicit form of what UI frameworks usually hide
// behind implicit tweening: a defined start value, end value, duration,
// easing curve, and completion callback. The same type drives drag-end
// snaps, externally commanded collapses/expands, and animated scrolling.
//
// OnTick receives every interpolated value, including the final one.
// OnComplete fires once, after the final OnTick, unless the transition is
// cancelled first. A non-positive Duration completes on the first frame.
type Transition struct {
	Start    float64
	End      float64
	Duration time.Duration
	Curve    Curve
	// OnTick receives each interpolated value while the transition runs.
	OnTick func(value float64)
	// OnComplete fires once when the transition reaches End.
	OnComplete func()

	ticker *Ticker
	done   bool
}

// NewTransition creates a transition from start to end over the given
// duration. A nil curve defaults to [Linear].
func NewTransition(start, end float64, duration time.Duration, curve Curve) *Transition {
	if curve == nil {
		curve = Linear
	}
	return &Transition{
		Start:    start,
		End:      end,
		Duration: duration,
		Curve:    curve,
	}
}

// Begin starts the transition. Calling Begin on a running transition
// restarts it from Start.
func (t *Transition) Begin() {
	t.Cancel()
	t.done = false
	t.ticker = NewTicker(t.tick)
	t.ticker.Start()
}

// Cancel stops the transition without firing OnComplete. The last value
// delivered to OnTick remains in effect.
func (t *Transition) Cancel() {
	if t.ticker != nil {
		t.ticker.Stop()
		t.ticker = nil
	}
}

// IsRunning reports whether the transition is active.
func (t *Transition) IsRunning() bool {
	return t.ticker != nil && t.ticker.IsActive()
}

// Value returns the interpolated value for linear progress p in [0, 1].
func (t *Transition) Value(p float64) float64 {
	if p <= 0 {
		return t.Start
	}
	if p >= 1 {
		return t.End
	}
	eased := p
	if t.Curve != nil {
		eased = t.Curve(p)
	}
	return t.Start + (t.End-t.Start)*eased
}

func (t *Transition) tick(elapsed time.Duration) {
	if t.done {
		return
	}

	progress := 1.0
	if t.Duration > 0 {
		progress = float64(elapsed) / float64(t.Duration)
		if progress > 1 {
			progress = 1
		}
	}

	value := t.Value(progress)
	if t.OnTick != nil {
		t.OnTick(value)
	}

	if progress >= 1 {
		t.done = true
		t.Cancel()
		if t.OnComplete != nil {
			t.OnComplete()
		}
	}
}
