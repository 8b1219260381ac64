// Package scrollable defines the scrollable-list collaborator the drawer
// coordinates with, plus a concrete offset-tracking implementation.
//
// The drawer never owns scrolling: it only reads the offset, issues jumps
// when a drag tick is forwarded to the list, and requests animated scrolls
// for external commands. Hosts with their own list implementation satisfy
// [Scrollable] directly; hosts without one can use [ListPosition].
package scrollable

import (
	"time"

	"github.com/credeo/bottomdrawer/pkg/animation"
)

// Scrollable is the list collaborator consumed by the drawer.
type Scrollable interface {
	// Offset returns the current scroll offset in pixels.
	Offset() float64
	// JumpTo moves immediately to the given offset. Implementations clamp
	// to their own extents.
	JumpTo(offset float64)
	// AnimateTo scrolls to the given offset over the duration.
	AnimateTo(offset float64, duration time.Duration, curve animation.Curve)
	// IsOutOfRange reports whether the most recent position request fell
	// outside the valid scroll extents.
	IsOutOfRange() bool
}

// ListPosition tracks a scroll offset between fixed extents.
//
// Offsets committed through JumpTo are clamped to [MinExtent, MaxExtent],
// but the position remembers when a request exceeded the extents; the
// drawer's fling simulation uses that to terminate early at an edge.
type ListPosition struct {
	offset     float64
	min        float64
	max        float64
	outOfRange bool

	transition *animation.Transition

	listeners      map[int]func()
	nextListenerID int
}

// NewListPosition creates a position at offset zero with zero extents.
func NewListPosition() *ListPosition {
	return &ListPosition{}
}

// SetExtents updates the valid offset range and re-clamps the current
// offset. A max below min collapses to min.
func (p *ListPosition) SetExtents(min, max float64) {
	if max < min {
		max = min
	}
	p.min = min
	p.max = max
	p.JumpTo(p.offset)
}

// MinExtent returns the lower scroll bound.
func (p *ListPosition) MinExtent() float64 { return p.min }

// MaxExtent returns the upper scroll bound.
func (p *ListPosition) MaxExtent() float64 { return p.max }

// Offset returns the current scroll offset.
func (p *ListPosition) Offset() float64 { return p.offset }

// AtStart reports whether the list is scrolled to its beginning.
func (p *ListPosition) AtStart() bool { return p.offset <= p.min }

// AtEnd reports whether the list is scrolled to its end.
func (p *ListPosition) AtEnd() bool { return p.offset >= p.max }

// IsOutOfRange reports whether the last requested offset exceeded the
// extents before clamping.
func (p *ListPosition) IsOutOfRange() bool { return p.outOfRange }

// JumpTo moves to the requested offset, clamped to the extents.
func (p *ListPosition) JumpTo(offset float64) {
	p.outOfRange = offset < p.min || offset > p.max
	clamped := offset
	if clamped < p.min {
		clamped = p.min
	}
	if clamped > p.max {
		clamped = p.max
	}
	if clamped == p.offset {
		return
	}
	p.offset = clamped
	p.notify()
}

// AnimateTo scrolls to the given offset over the duration. A non-positive
// duration jumps immediately. Starting a new animation cancels any
// animation already in flight.
func (p *ListPosition) AnimateTo(offset float64, duration time.Duration, curve animation.Curve) {
	p.StopAnimation()
	if duration <= 0 {
		p.JumpTo(offset)
		return
	}
	p.transition = animation.NewTransition(p.offset, offset, duration, curve)
	p.transition.OnTick = p.JumpTo
	p.transition.Begin()
}

// StopAnimation cancels an in-flight AnimateTo, keeping the current offset.
func (p *ListPosition) StopAnimation() {
	if p.transition != nil {
		p.transition.Cancel()
		p.transition = nil
	}
}

// AddListener registers a callback invoked whenever the offset changes.
// It returns an unsubscribe function.
func (p *ListPosition) AddListener(listener func()) func() {
	if listener == nil {
		return func() {}
	}
	if p.listeners == nil {
		p.listeners = make(map[int]func())
	}
	id := p.nextListenerID
	p.nextListenerID++
	p.listeners[id] = listener
	return func() {
		delete(p.listeners, id)
	}
}

func (p *ListPosition) notify() {
	for _, listener := range p.listeners {
		listener()
	}
}
