// Package drawer implements a draggable, snap-to-stop bottom drawer
// interaction controller.
//
// The controller owns all the non-rendering logic of a bottom-anchored,
// height-resizable panel with a scrollable list inside: the height state
// and its stop constraints, the per-tick decision of whether a drag
// resizes the drawer or scrolls the list, the snap resolution after a drag
// releases, the synthetic inertial scroll for flings at full expansion,
// and an external command channel for imperative collapse/expand/scroll.
//
// It is host-agnostic. The host framework delivers layout passes via
// [Drawer.Layout], recognized drag events via [Drawer.DragStart],
// [Drawer.DragUpdate] and [Drawer.DragEnd] (see the gesture package for
// the recognition step), steps [animation.StepTickers] once per frame, and
// draws the panel at [Drawer.DisplayHeight]. Everything runs on the host's
// UI thread; nothing here blocks or spawns goroutines.
package drawer

import (
	"time"

	"github.com/credeo/bottomdrawer/pkg/animation"
	"github.com/credeo/bottomdrawer/pkg/scrollable"
)

// Drawer is the interaction controller for one bottom drawer.
//
// All callback fields are optional; a nil callback is skipped. Callbacks
// fire synchronously on the host's UI thread from whichever event caused
// them.
type Drawer struct {
	// OnDragStart fires when a drag session begins.
	OnDragStart func()
	// OnDragEnd fires when a drag session releases, before snapping.
	OnDragEnd func()
	// OnHeightChanged fires on every committed height change with the new
	// height and its fraction of the container height.
	OnHeightChanged func(height, fraction float64)
	// OnSnapEnd fires once per completed snap with the settled stop index.
	// Only fires while snapping is enabled.
	OnSnapEnd func(stopIndex int)

	opts   Options
	height HeightState

	scroll         scrollable.Scrollable
	renderedHeight func() float64

	controller       *Controller
	detachController func()

	// rendered is the animated height the host draws, trailing the
	// committed height while a transition plays. Overridden by an injected
	// renderedHeight query.
	rendered   float64
	transition *animation.Transition
	fling      *flingSimulation

	// forceResize is fixed once per drag session from the start position.
	forceResize bool

	// externalActive overrides the next height transition's duration and
	// curve with the values carried by an external command.
	externalActive   bool
	externalDuration time.Duration
	externalCurve    animation.Curve

	laidOut bool
}

// New creates a drawer controller. The options are validated and then
// immutable for the drawer's lifetime.
func New(opts Options) (*Drawer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.SnapDuration <= 0 {
		opts.SnapDuration = DefaultOptions().SnapDuration
	}
	return &Drawer{opts: opts}, nil
}

// Options returns the drawer's configuration.
func (d *Drawer) Options() Options { return d.opts }

// State exposes the height state for reading.
func (d *Drawer) State() *HeightState { return &d.height }

// DisplayHeight returns the height the host should draw: the animated
// value while a snap or command transition plays, the committed height
// otherwise.
func (d *Drawer) DisplayHeight() float64 {
	if d.renderedHeight != nil {
		return d.renderedHeight()
	}
	return d.rendered
}

// AttachScrollable connects the inner list. Passing nil detaches it, after
// which drag deltas are never forwarded and scroll commands are dropped.
func (d *Drawer) AttachScrollable(s scrollable.Scrollable) {
	d.scroll = s
}

// SetRenderedHeightFunc injects the host's query for the actually rendered
// drawer height. Hosts whose rendering can lag the controller (external
// animation systems) supply this so drag sessions re-baseline from what is
// on screen; without it the drawer tracks its own animated height.
func (d *Drawer) SetRenderedHeightFunc(fn func() float64) {
	d.renderedHeight = fn
}

// AttachController subscribes the drawer to an external command channel.
// It returns a detach function. Attaching replaces any previous channel.
func (d *Drawer) AttachController(c *Controller) func() {
	if d.detachController != nil {
		d.detachController()
		d.detachController = nil
	}
	d.controller = c
	if c == nil {
		return func() {}
	}
	unsubscribe := c.AddListener(d.handleCommand)
	d.detachController = func() {
		unsubscribe()
		if d.controller == c {
			d.controller = nil
		}
	}
	return d.detachController
}

// Dispose cancels in-flight animations and detaches the command channel.
func (d *Drawer) Dispose() {
	d.cancelTransition()
	d.stopFling()
	if d.detachController != nil {
		d.detachController()
		d.detachController = nil
	}
}

// Layout delivers one layout pass with the available container height.
//
// The first pass derives the height constraints and places the drawer at
// its initial stop. Later passes recompute constraints only when
// Options.RebuildOnResize is set; otherwise the first pass's bounds are
// retained even if the container resized. Height change notification is
// evaluated once per pass.
func (d *Drawer) Layout(containerHeight float64) {
	if containerHeight <= 0 {
		return
	}
	if !d.laidOut || d.opts.RebuildOnResize {
		first := !d.laidOut
		d.height.rebuild(containerHeight, d.opts.Stops, d.opts.InitialStop, first)
		if first || d.transition == nil || !d.transition.IsRunning() {
			d.rendered = d.height.Current()
		}
		d.laidOut = true
	}
	d.notifyHeight()
}

// DragStart begins a drag session. startDistance is the pointer's distance
// from the drawer's top edge at the moment the drag was recognized; it
// decides, once per session, whether the force-resize zone applies.
//
// Starting a drag cancels any in-flight snap or command animation and any
// inertial scroll, and re-baselines the committed height from the rendered
// height so there is no visible jump.
func (d *Drawer) DragStart(startDistance float64) {
	if !d.laidOut {
		return
	}
	baseline := d.DisplayHeight()
	d.cancelTransition()
	d.stopFling()
	d.externalActive = false

	d.height.setCurrent(baseline)
	d.rendered = d.height.Current()

	d.forceResize = d.opts.ForceResizeDistance > 0 && startDistance <= d.opts.ForceResizeDistance
	d.height.dragging = true

	if d.OnDragStart != nil {
		d.OnDragStart()
	}
	d.notifyHeight()
}

// DragUpdate applies one drag tick. delta is the primary-axis pointer
// movement in pixels, positive meaning the pointer moved toward the bottom
// of the screen (shrinking a bottom-anchored drawer).
//
// In a force-resize session every tick resizes. Otherwise, once the drawer
// is fully expanded, ticks scroll the inner list first — growing ticks
// always, shrinking ticks while the list is still away from its start —
// and only resize the drawer after the list has scrolled back. A tick
// moves either the drawer height or the scroll offset, never both.
func (d *Drawer) DragUpdate(delta float64) {
	if !d.height.dragging {
		return
	}
	if d.forceResize {
		d.resizeBy(delta)
		return
	}
	if d.height.IsAtMax() && d.scroll != nil {
		if delta < 0 {
			// Pointer moving up with the drawer already fully expanded:
			// the gesture scrolls the list forward.
			d.scroll.JumpTo(d.scroll.Offset() - delta)
			return
		}
		if delta > 0 && d.scroll.Offset() > 0 {
			// Pointer moving down but the list is not back at its start:
			// keep scrolling until it is.
			d.scroll.JumpTo(d.scroll.Offset() - delta)
			return
		}
	}
	d.resizeBy(delta)
}

// DragEnd releases the drag session. velocity is the primary-axis release
// velocity in px/s, positive meaning downward, as reported by the gesture
// recognizer.
func (d *Drawer) DragEnd(velocity float64) {
	if !d.height.dragging {
		return
	}
	d.height.dragging = false

	if d.OnDragEnd != nil {
		d.OnDragEnd()
	}

	if !d.opts.Snap {
		return
	}

	target := resolveSnapTarget(d.opts.Stops, d.height.Current(), d.height.Container())

	if !d.forceResize && d.height.IsAtMax() {
		// Fully expanded: the release belongs to the list, not the drawer.
		// Residual velocity becomes a synthetic fling; the snap target is
		// reported immediately since no height animation will play.
		if velocity != 0 && d.scroll != nil {
			d.startFling(velocity)
		}
		d.reportSnapEnd(target)
		return
	}

	if d.height.IsAtMin() {
		// Already resting at the bottom stop, nothing to animate.
		d.reportSnapEnd(target)
		return
	}

	d.height.setCurrent(d.opts.Stops[target] * d.height.Container())
	d.notifyHeight()
	d.animateHeightTo(d.height.Current(), target, true)
}

// Height returns the committed drawer height.
func (d *Drawer) Height() float64 { return d.height.Current() }

func (d *Drawer) resizeBy(delta float64) {
	d.height.setCurrent(d.height.Current() - delta)
	d.rendered = d.height.Current()
	d.notifyHeight()
}

// transitionParams returns the duration and curve for the next height
// transition, honoring an in-progress external command's override.
func (d *Drawer) transitionParams() (time.Duration, animation.Curve) {
	if d.externalActive {
		return d.externalDuration, d.externalCurve
	}
	return d.opts.SnapDuration, animation.EaseOut
}

// animateHeightTo tweens the rendered height to the already committed
// target. When report is set, the snap completion is deferred to the
// animation-finished signal and suppressed if a new drag started or
// snapping was disabled in the meantime.
func (d *Drawer) animateHeightTo(target float64, stopIndex int, report bool) {
	d.cancelTransition()

	duration, curve := d.transitionParams()
	t := animation.NewTransition(d.rendered, target, duration, curve)
	t.OnTick = func(value float64) {
		d.rendered = value
	}
	t.OnComplete = func() {
		d.transition = nil
		d.externalActive = false
		if report {
			d.reportSnapEnd(stopIndex)
		}
	}
	d.transition = t
	t.Begin()
}

func (d *Drawer) cancelTransition() {
	if d.transition != nil {
		d.transition.Cancel()
		d.transition = nil
	}
}

func (d *Drawer) startFling(v0 float64) {
	d.stopFling()
	f := newFlingSimulation(d.scroll, v0)
	f.start()
	if f.active() {
		d.fling = f
	}
}

func (d *Drawer) stopFling() {
	if d.fling != nil {
		d.fling.stop()
		d.fling = nil
	}
}

func (d *Drawer) reportSnapEnd(stopIndex int) {
	if d.height.dragging || !d.opts.Snap {
		return
	}
	if d.OnSnapEnd != nil {
		d.OnSnapEnd(stopIndex)
	}
}

// handleCommand consumes the pending external command. Commands may arrive
// mid-drag; the override they carry applies to the next height transition
// either way.
func (d *Drawer) handleCommand() {
	if d.controller == nil {
		return
	}
	cmd := d.controller.take()
	if cmd == nil {
		return
	}

	d.externalActive = true
	d.externalDuration = cmd.Duration
	d.externalCurve = cmd.Curve

	switch cmd.Kind {
	case CommandCollapse:
		if !d.laidOut {
			return
		}
		d.stopFling()
		d.height.setCurrent(d.height.Min())
		d.notifyHeight()
		d.animateHeightTo(d.height.Current(), 0, false)
		if cmd.UpdateScroll && d.scroll != nil {
			d.scroll.AnimateTo(0, cmd.Duration/2, cmd.Curve)
		}
	case CommandExpand:
		if !d.laidOut {
			return
		}
		d.stopFling()
		d.height.setCurrent(d.height.Max())
		d.notifyHeight()
		d.animateHeightTo(d.height.Current(), len(d.opts.Stops)-1, false)
	case CommandScrollTo:
		if d.scroll != nil {
			d.scroll.AnimateTo(cmd.Position, cmd.Duration/2, cmd.Curve)
		}
	}
}

func (d *Drawer) notifyHeight() {
	height, fraction, changed := d.height.consumeChange()
	if !changed {
		return
	}
	if d.OnHeightChanged != nil {
		d.OnHeightChanged(height, fraction)
	}
}
