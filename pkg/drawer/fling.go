package drawer

import (
	"math"
	"time"

	"github.com/credeo/bottomdrawer/pkg/animation"
	"github.com/credeo/bottomdrawer/pkg/scrollable"
)

// Inertial scroll constants. The decay is applied per millisecond; the
// simulation ends once the decayed velocity falls below the epsilon.
const (
	flingDecay   = 0.99
	flingEpsilon = 0.1
)

// flingRate is the exponential rate constant k = 1000*(d-1)/d, negative.
var flingRate = 1000 * (flingDecay - 1) / flingDecay

// flingSimulation drives an exponentially decaying scroll on the list
// after a drag releases at full expansion with residual velocity.
//
// The host's native fling physics cannot be used here because the gesture
// ends on the drawer, not on the list, so the deceleration is synthesized:
// starting from offset0 with release velocity v0 (px/s, positive meaning
// the pointer moved down), the offset at t milliseconds is
//
//	offset0 + (decay^t - 1)/k * (-v0)
//
// which converges on offset0 + v0/k. The simulation stops when the
// velocity decays below flingEpsilon or the scrollable reports it ran out
// of range.
type flingSimulation struct {
	scroll   scrollable.Scrollable
	offset0  float64
	v0       float64
	duration time.Duration
	ticker   *animation.Ticker
}

// newFlingSimulation prepares a simulation. v0 is the release velocity in
// px/s. A velocity of exactly zero, or one already below the stopping
// threshold, yields a simulation that never starts.
func newFlingSimulation(scroll scrollable.Scrollable, v0 float64) *flingSimulation {
	f := &flingSimulation{
		scroll:  scroll,
		offset0: scroll.Offset(),
		v0:      v0,
	}
	if v0 != 0 {
		// Time in seconds for |v| to decay below the epsilon.
		t := math.Log(-flingRate*flingEpsilon/math.Abs(v0)) / flingRate
		if t > 0 {
			f.duration = time.Duration(t * float64(time.Second))
		}
	}
	return f
}

// destination returns the offset the simulation converges on.
func (f *flingSimulation) destination() float64 {
	return f.offset0 + f.v0/flingRate
}

// start begins driving the scrollable. It is a no-op when the release
// velocity was zero or already below the stopping threshold.
func (f *flingSimulation) start() {
	if f.v0 == 0 || f.duration <= 0 {
		return
	}
	f.ticker = animation.NewTicker(f.tick)
	f.ticker.Start()
}

// stop cancels the simulation, keeping the current offset.
func (f *flingSimulation) stop() {
	if f.ticker != nil {
		f.ticker.Stop()
		f.ticker = nil
	}
}

func (f *flingSimulation) active() bool {
	return f.ticker != nil && f.ticker.IsActive()
}

func (f *flingSimulation) tick(elapsed time.Duration) {
	if elapsed > f.duration {
		elapsed = f.duration
	}
	ms := float64(elapsed) / float64(time.Millisecond)
	offset := f.offset0 + (math.Pow(flingDecay, ms)-1)/flingRate*(-f.v0)
	f.scroll.JumpTo(offset)

	if elapsed >= f.duration || f.scroll.IsOutOfRange() {
		f.stop()
	}
}
