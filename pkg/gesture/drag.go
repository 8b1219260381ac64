// Package gesture translates raw pointer events into vertical drag
// callbacks for the drawer.
//
// The drawer's interaction controller consumes already-recognized drag
// events (start position, per-tick deltas, release velocity). This package
// supplies the recognition step for hosts that only have raw pointer
// input: touch slop, axis dominance, and velocity smoothing, following the
// usual mobile-framework conventions.
//
// Coordinates are screen-space: Y grows downward, so a positive
// PrimaryDelta means the pointer moved toward the bottom of the screen.
// Velocities are reported in pixels per second.
package gesture

import (
	"math"
	"time"
)

// DefaultTouchSlop is the distance in pixels a pointer must travel before
// a drag is recognized.
const DefaultTouchSlop = 18.0

// Offset is a 2D position or displacement in pixels.
type Offset struct {
	X float64
	Y float64
}

// PointerPhase identifies the stage of a pointer event.
type PointerPhase int

const (
	// PointerDown begins tracking a pointer.
	PointerDown PointerPhase = iota
	// PointerMove reports pointer movement while down.
	PointerMove
	// PointerUp ends a pointer contact.
	PointerUp
	// PointerCancel aborts a pointer contact (e.g. the host stole it).
	PointerCancel
)

// PointerEvent is one raw input sample from the host.
type PointerEvent struct {
	Phase    PointerPhase
	Position Offset
	// Time is the event timestamp. Recognizers use it for velocity
	// estimation, so hosts must supply monotonically non-decreasing values.
	Time time.Time
}

// DragStartDetails describes a recognized drag's starting point.
type DragStartDetails struct {
	// Position is where the pointer first went down.
	Position Offset
}

// DragUpdateDetails describes one tick of pointer movement.
type DragUpdateDetails struct {
	Position Offset
	Delta    Offset
	// PrimaryDelta is the vertical component of Delta; positive means the
	// pointer moved down the screen.
	PrimaryDelta float64
}

// DragEndDetails describes the release of a recognized drag.
type DragEndDetails struct {
	Position Offset
	// PrimaryVelocity is the smoothed vertical velocity at release in
	// pixels per second; positive means downward.
	PrimaryVelocity float64
}

// VerticalDragRecognizer recognizes vertical drags from a pointer event
// stream.
//
// The recognizer stays silent until the pointer travels more than Slop
// pixels with vertical movement dominant; horizontal-dominant movement
// rejects the gesture for the remainder of the contact. Release velocity
// is exponentially smoothed so a momentary stall just before lift-off does
// not zero out a fling.
type VerticalDragRecognizer struct {
	OnStart  func(DragStartDetails)
	OnUpdate func(DragUpdateDetails)
	OnEnd    func(DragEndDetails)
	OnCancel func()

	// Slop overrides DefaultTouchSlop when positive.
	Slop float64

	tracking bool
	accepted bool
	rejected bool
	start    Offset
	last     Offset
	lastTime time.Time
	velocity float64
}

// NewVerticalDragRecognizer returns a recognizer with default touch slop.
func NewVerticalDragRecognizer() *VerticalDragRecognizer {
	return &VerticalDragRecognizer{}
}

// IsDragging reports whether a drag has been recognized and not yet ended.
func (r *VerticalDragRecognizer) IsDragging() bool {
	return r.tracking && r.accepted
}

// Handle feeds one pointer event to the recognizer.
func (r *VerticalDragRecognizer) Handle(event PointerEvent) {
	switch event.Phase {
	case PointerDown:
		r.tracking = true
		r.accepted = false
		r.rejected = false
		r.start = event.Position
		r.last = event.Position
		r.lastTime = event.Time
		r.velocity = 0
	case PointerMove:
		if !r.tracking || r.rejected {
			return
		}
		r.handleMove(event)
	case PointerUp:
		if !r.tracking || r.rejected {
			r.tracking = false
			return
		}
		r.handleUp(event)
	case PointerCancel:
		if r.tracking && r.accepted && r.OnCancel != nil {
			r.OnCancel()
		}
		r.tracking = false
		r.rejected = true
	}
}

func (r *VerticalDragRecognizer) slop() float64 {
	if r.Slop > 0 {
		return r.Slop
	}
	return DefaultTouchSlop
}

func (r *VerticalDragRecognizer) handleMove(event PointerEvent) {
	total := Offset{X: event.Position.X - r.start.X, Y: event.Position.Y - r.start.Y}
	primary := math.Abs(total.Y)
	orthogonal := math.Abs(total.X)

	if !r.accepted {
		switch {
		case primary > r.slop() && primary >= orthogonal:
			r.accepted = true
			if r.OnStart != nil {
				r.OnStart(DragStartDetails{Position: r.start})
			}
		case orthogonal > r.slop():
			// Horizontal movement dominant: not our gesture.
			r.rejected = true
			return
		}
	}

	delta := Offset{X: event.Position.X - r.last.X, Y: event.Position.Y - r.last.Y}
	if dt := event.Time.Sub(r.lastTime).Seconds(); dt > 0 {
		inst := delta.Y / dt
		r.velocity = r.velocity*0.8 + inst*0.2
	}

	if r.accepted && r.OnUpdate != nil {
		r.OnUpdate(DragUpdateDetails{
			Position:     event.Position,
			Delta:        delta,
			PrimaryDelta: delta.Y,
		})
	}

	r.last = event.Position
	r.lastTime = event.Time
}

func (r *VerticalDragRecognizer) handleUp(event PointerEvent) {
	accepted := r.accepted
	r.tracking = false
	r.accepted = false
	if accepted && r.OnEnd != nil {
		r.OnEnd(DragEndDetails{
			Position:        event.Position,
			PrimaryVelocity: r.velocity,
		})
	}
}
