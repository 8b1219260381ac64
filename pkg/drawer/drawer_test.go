package drawer

import (
	"testing"
	"time"

	"github.com/credeo/bottomdrawer/pkg/animation"
	"github.com/credeo/bottomdrawer/pkg/scrollable"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func withFakeClock(t *testing.T) *fakeClock {
	t.Helper()
	clk := &fakeClock{now: time.Unix(1000, 0)}
	prev := animation.SetClock(clk)
	t.Cleanup(func() { animation.SetClock(prev) })
	return clk
}

// newTestDrawer builds a drawer with stops 0.2/0.6/1.0 laid out in a
// 1000px container, with a 400px-range list attached.
func newTestDrawer(t *testing.T, mutate func(*Options)) (*Drawer, *scrollable.ListPosition) {
	t.Helper()
	opts := DefaultOptions()
	opts.Stops = []float64{0.2, 0.6, 1.0}
	opts.ItemBuilder = func(i int) any { return i }
	opts.ItemCount = 20
	if mutate != nil {
		mutate(&opts)
	}
	d, err := New(opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	list := scrollable.NewListPosition()
	list.SetExtents(0, 400)
	d.AttachScrollable(list)
	d.Layout(1000)
	// Tickers are registered globally, so animations left running would
	// leak into the next test.
	t.Cleanup(d.Dispose)
	return d, list
}

// dragToMax expands the drawer to its maximum height in one session.
func dragToMax(t *testing.T, d *Drawer) {
	t.Helper()
	d.DragStart(100)
	d.DragUpdate(-2000)
	if !d.State().IsAtMax() {
		t.Fatalf("Drawer should be at max, height %v", d.Height())
	}
}

func TestLayoutDerivesConstraints(t *testing.T) {
	withFakeClock(t)
	var gotHeight, gotFraction float64
	calls := 0

	opts := DefaultOptions()
	opts.Stops = []float64{0.2, 0.6, 1.0}
	opts.InitialStop = 1
	opts.Items = []any{"a"}
	d, err := New(opts)
	if err != nil {
		t.Fatal(err)
	}
	d.OnHeightChanged = func(h, f float64) {
		gotHeight, gotFraction = h, f
		calls++
	}

	d.Layout(1000)

	if d.State().Min() != 200 || d.State().Max() != 1000 {
		t.Errorf("Expected bounds [200, 1000], got [%v, %v]", d.State().Min(), d.State().Max())
	}
	if d.Height() != 600 {
		t.Errorf("Expected initial height 600, got %v", d.Height())
	}
	if calls != 1 || gotHeight != 600 || gotFraction != 0.6 {
		t.Errorf("Expected one notification of (600, 0.6), got %d of (%v, %v)", calls, gotHeight, gotFraction)
	}

	// A second pass without height movement stays quiet.
	d.Layout(1000)
	if calls != 1 {
		t.Errorf("Unchanged height should not re-notify, got %d calls", calls)
	}
}

func TestLayoutRetainsStaleBounds(t *testing.T) {
	withFakeClock(t)
	d, _ := newTestDrawer(t, nil)

	d.Layout(800)

	if d.State().Min() != 200 || d.State().Max() != 1000 {
		t.Errorf("Bounds should be retained across resizes, got [%v, %v]", d.State().Min(), d.State().Max())
	}
	if d.State().Container() != 1000 {
		t.Errorf("Container should be retained, got %v", d.State().Container())
	}
}

func TestLayoutRebuildOnResize(t *testing.T) {
	withFakeClock(t)
	d, _ := newTestDrawer(t, func(o *Options) { o.RebuildOnResize = true })

	d.Layout(800)

	if d.State().Min() != 160 || d.State().Max() != 800 {
		t.Errorf("Bounds should rebuild for the new container, got [%v, %v]", d.State().Min(), d.State().Max())
	}
}

func TestClampInvariantUnderDrag(t *testing.T) {
	withFakeClock(t)
	d, _ := newTestDrawer(t, nil)

	d.DragStart(100)
	for _, delta := range []float64{-5000, 300, 17, -42, 9999, -9999, 0.5, -0.5} {
		d.DragUpdate(delta)
		h := d.Height()
		if h < d.State().Min() || h > d.State().Max() {
			t.Fatalf("Height %v escaped [%v, %v] after delta %v", h, d.State().Min(), d.State().Max(), delta)
		}
	}
}

func TestDragResizesAgainstDelta(t *testing.T) {
	withFakeClock(t)
	d, _ := newTestDrawer(t, nil)

	started, ended := 0, 0
	d.OnDragStart = func() { started++ }
	d.OnDragEnd = func() { ended++ }

	d.DragStart(100)
	d.DragUpdate(-100) // pointer up 100px grows the drawer
	if d.Height() != 300 {
		t.Errorf("Expected height 300, got %v", d.Height())
	}
	d.DragUpdate(40) // pointer down shrinks
	if d.Height() != 260 {
		t.Errorf("Expected height 260, got %v", d.Height())
	}
	d.DragEnd(0)

	if started != 1 || ended != 1 {
		t.Errorf("Expected 1 start and 1 end, got %d/%d", started, ended)
	}
}

func TestDragUpdateIgnoredOutsideSession(t *testing.T) {
	withFakeClock(t)
	d, _ := newTestDrawer(t, nil)

	d.DragUpdate(-100)
	if d.Height() != 200 {
		t.Errorf("Update without a session should be ignored, got %v", d.Height())
	}
	d.DragEnd(0)
}

func TestAtMaxGrowingDeltaScrollsList(t *testing.T) {
	withFakeClock(t)
	d, list := newTestDrawer(t, nil)
	dragToMax(t, d)

	d.DragUpdate(-50)

	if list.Offset() != 50 {
		t.Errorf("Expected list offset 50, got %v", list.Offset())
	}
	if d.Height() != 1000 {
		t.Errorf("Height should be unchanged at max, got %v", d.Height())
	}
}

func TestAtMaxShrinkingDeltaScrollsListBackFirst(t *testing.T) {
	withFakeClock(t)
	d, list := newTestDrawer(t, nil)
	dragToMax(t, d)
	d.DragUpdate(-80) // scroll the list away from its start

	d.DragUpdate(30)
	if list.Offset() != 50 {
		t.Errorf("Expected list scrolled back to 50, got %v", list.Offset())
	}
	if d.Height() != 1000 {
		t.Errorf("Height should be unchanged while the list scrolls back, got %v", d.Height())
	}

	d.DragUpdate(50)
	if list.Offset() != 0 {
		t.Errorf("Expected list back at start, got %v", list.Offset())
	}

	// List is at its start: further shrinking resizes the drawer.
	d.DragUpdate(25)
	if d.Height() != 975 {
		t.Errorf("Expected height 975, got %v", d.Height())
	}
	if list.Offset() != 0 {
		t.Errorf("List should not move while the drawer resizes, got %v", list.Offset())
	}
}

func TestForceResizeSessionNeverScrolls(t *testing.T) {
	withFakeClock(t)
	d, list := newTestDrawer(t, func(o *Options) { o.ForceResizeDistance = 50 })
	dragToMax(t, d)
	d.DragUpdate(-80)
	d.DragEnd(0)

	// New session starting inside the force-resize zone.
	d.DragStart(10)
	d.DragUpdate(40)

	if d.Height() != 960 {
		t.Errorf("Force-resize drag should shrink the drawer, got %v", d.Height())
	}
	if list.Offset() != 80 {
		t.Errorf("List offset should be untouched, got %v", list.Offset())
	}
}

func TestForceResizeZoneBoundary(t *testing.T) {
	withFakeClock(t)
	d, list := newTestDrawer(t, func(o *Options) { o.ForceResizeDistance = 50 })
	dragToMax(t, d)
	d.DragEnd(0)

	// Outside the zone: normal precedence applies.
	d.DragStart(51)
	d.DragUpdate(-30)
	if list.Offset() != 30 {
		t.Errorf("Drag outside the zone should scroll the list, got offset %v", list.Offset())
	}
}

func TestSnapAnimatesToNearestStop(t *testing.T) {
	clk := withFakeClock(t)
	d, _ := newTestDrawer(t, nil)

	var snapped []int
	d.OnSnapEnd = func(i int) { snapped = append(snapped, i) }

	d.DragStart(100)
	d.DragUpdate(-300) // 200 -> 500
	d.DragEnd(0)

	if d.Height() != 600 {
		t.Errorf("Release at 500 should commit to stop 600, got %v", d.Height())
	}
	if len(snapped) != 0 {
		t.Fatal("Snap completion should wait for the animation")
	}

	clk.advance(150 * time.Millisecond)
	animation.StepTickers()
	display := d.DisplayHeight()
	if display <= 500 || display > 600 {
		t.Errorf("Display height should be animating between 500 and 600, got %v", display)
	}

	clk.advance(200 * time.Millisecond)
	animation.StepTickers()
	if d.DisplayHeight() != 600 {
		t.Errorf("Display height should settle at 600, got %v", d.DisplayHeight())
	}
	if len(snapped) != 1 || snapped[0] != 1 {
		t.Errorf("Expected snap end at stop 1, got %v", snapped)
	}
}

func TestSnapDisabled(t *testing.T) {
	clk := withFakeClock(t)
	d, _ := newTestDrawer(t, func(o *Options) { o.Snap = false })

	snapped := false
	d.OnSnapEnd = func(int) { snapped = true }

	d.DragStart(100)
	d.DragUpdate(-300)
	d.DragEnd(0)

	if d.Height() != 500 {
		t.Errorf("Without snapping the drawer should rest where released, got %v", d.Height())
	}
	clk.advance(time.Second)
	animation.StepTickers()
	if snapped {
		t.Error("OnSnapEnd must not fire while snapping is disabled")
	}
	if d.DisplayHeight() != 500 {
		t.Errorf("No animation should play, got display height %v", d.DisplayHeight())
	}
}

func TestReleaseAtMinReportsImmediately(t *testing.T) {
	withFakeClock(t)
	d, _ := newTestDrawer(t, nil)

	var snapped []int
	d.OnSnapEnd = func(i int) { snapped = append(snapped, i) }

	d.DragStart(100)
	d.DragUpdate(50) // already clamped at min
	d.DragEnd(0)

	if len(snapped) != 1 || snapped[0] != 0 {
		t.Errorf("Release at min should report stop 0 immediately, got %v", snapped)
	}
	if animation.HasActiveTickers() {
		t.Error("No animation should play at min")
	}
}

func TestDragStartCancelsSnapAnimation(t *testing.T) {
	clk := withFakeClock(t)
	d, _ := newTestDrawer(t, nil)

	snapped := false
	d.OnSnapEnd = func(int) { snapped = true }

	d.DragStart(100)
	d.DragUpdate(-300)
	d.DragEnd(0) // snapping 500 -> 600

	clk.advance(150 * time.Millisecond)
	animation.StepTickers()
	midway := d.DisplayHeight()

	d.DragStart(100)

	if d.Height() != midway {
		t.Errorf("New drag should adopt the rendered height %v, got %v", midway, d.Height())
	}
	if d.DisplayHeight() != d.Height() {
		t.Error("Committed and display heights should coincide after drag start")
	}

	clk.advance(time.Second)
	animation.StepTickers()
	if snapped {
		t.Error("Cancelled snap must not report completion")
	}
	d.DragEnd(0)
}

func TestAtMaxReleaseHandsOffToFling(t *testing.T) {
	clk := withFakeClock(t)
	d, list := newTestDrawer(t, nil)
	dragToMax(t, d)

	var snapped []int
	d.OnSnapEnd = func(i int) { snapped = append(snapped, i) }

	d.DragEnd(-800)

	if len(snapped) != 1 || snapped[0] != 2 {
		t.Errorf("At-max release should report the top stop immediately, got %v", snapped)
	}
	if d.DisplayHeight() != 1000 {
		t.Errorf("No height animation should play, got %v", d.DisplayHeight())
	}
	if !animation.HasActiveTickers() {
		t.Fatal("Residual velocity should start an inertial scroll")
	}

	clk.advance(100 * time.Millisecond)
	animation.StepTickers()
	if list.Offset() <= 0 {
		t.Errorf("Inertial scroll should move the list, got offset %v", list.Offset())
	}
}

func TestAtMaxReleaseWithZeroVelocity(t *testing.T) {
	withFakeClock(t)
	d, list := newTestDrawer(t, nil)
	dragToMax(t, d)

	var snapped []int
	d.OnSnapEnd = func(i int) { snapped = append(snapped, i) }

	d.DragEnd(0)

	if len(snapped) != 1 || snapped[0] != 2 {
		t.Errorf("Expected immediate top-stop report, got %v", snapped)
	}
	if animation.HasActiveTickers() {
		t.Error("Zero release velocity must not start an inertial scroll")
	}
	if list.Offset() != 0 {
		t.Errorf("List should not move, got %v", list.Offset())
	}
}

func TestCollapseCommand(t *testing.T) {
	clk := withFakeClock(t)
	d, list := newTestDrawer(t, nil)
	dragToMax(t, d)
	d.DragUpdate(-80) // leave the list scrolled
	d.DragEnd(0)

	ctrl := NewController()
	d.AttachController(ctrl)

	ctrl.Collapse(400*time.Millisecond, animation.Linear, true)

	if d.Height() != 200 {
		t.Errorf("Collapse should commit the minimum height, got %v", d.Height())
	}

	// The command's duration overrides the snap default: still animating
	// past the 300ms default.
	clk.advance(320 * time.Millisecond)
	animation.StepTickers()
	if d.DisplayHeight() == 200 {
		t.Error("Height animation should use the command duration, not the snap default")
	}
	if list.Offset() != 0 {
		t.Errorf("Scroll should reset over half the duration (200ms), got %v", list.Offset())
	}

	clk.advance(100 * time.Millisecond)
	animation.StepTickers()
	if d.DisplayHeight() != 200 {
		t.Errorf("Display height should settle at 200, got %v", d.DisplayHeight())
	}
}

func TestCollapseCommandWithoutScrollReset(t *testing.T) {
	clk := withFakeClock(t)
	d, list := newTestDrawer(t, nil)
	dragToMax(t, d)
	d.DragUpdate(-80)
	d.DragEnd(0)

	ctrl := NewController()
	d.AttachController(ctrl)
	ctrl.Collapse(100*time.Millisecond, animation.Linear, false)

	clk.advance(200 * time.Millisecond)
	animation.StepTickers()
	if list.Offset() != 80 {
		t.Errorf("Scroll offset should be preserved, got %v", list.Offset())
	}
}

func TestExpandCommand(t *testing.T) {
	clk := withFakeClock(t)
	d, _ := newTestDrawer(t, nil)

	ctrl := NewController()
	d.AttachController(ctrl)
	ctrl.Expand(100*time.Millisecond, animation.Linear)

	if d.Height() != 1000 {
		t.Errorf("Expand should commit the maximum height, got %v", d.Height())
	}
	clk.advance(100 * time.Millisecond)
	animation.StepTickers()
	if d.DisplayHeight() != 1000 {
		t.Errorf("Display height should settle at 1000, got %v", d.DisplayHeight())
	}
}

func TestScrollToCommand(t *testing.T) {
	clk := withFakeClock(t)
	d, list := newTestDrawer(t, nil)

	ctrl := NewController()
	d.AttachController(ctrl)
	ctrl.ScrollTo(120, 200*time.Millisecond, animation.Linear)

	if d.Height() != 200 {
		t.Errorf("ScrollTo should not move the drawer, got %v", d.Height())
	}
	clk.advance(50 * time.Millisecond)
	animation.StepTickers()
	if list.Offset() != 60 {
		t.Errorf("Scroll should be halfway through its 100ms animation, got %v", list.Offset())
	}
	clk.advance(50 * time.Millisecond)
	animation.StepTickers()
	if list.Offset() != 120 {
		t.Errorf("Scroll should reach 120, got %v", list.Offset())
	}
}

func TestCommandMailboxLastWriteWins(t *testing.T) {
	ctrl := NewController()
	ctrl.Collapse(time.Second, animation.Linear, true)
	ctrl.Expand(time.Second, animation.Linear)

	cmd := ctrl.take()
	if cmd == nil || cmd.Kind != CommandExpand {
		t.Fatalf("Expected the later Expand command, got %+v", cmd)
	}
	if ctrl.take() != nil {
		t.Error("Commands must be consumed exactly once")
	}
}

func TestDetachControllerStopsDelivery(t *testing.T) {
	withFakeClock(t)
	d, _ := newTestDrawer(t, nil)

	ctrl := NewController()
	detach := d.AttachController(ctrl)
	detach()

	ctrl.Expand(100*time.Millisecond, animation.Linear)
	if d.Height() != 200 {
		t.Errorf("Detached drawer should ignore commands, got height %v", d.Height())
	}
}

func TestDragStartCancelsExternalAction(t *testing.T) {
	clk := withFakeClock(t)
	d, _ := newTestDrawer(t, nil)
	dragToMax(t, d)
	d.DragEnd(0)

	ctrl := NewController()
	d.AttachController(ctrl)
	ctrl.Collapse(time.Second, animation.Linear, false)

	clk.advance(500 * time.Millisecond)
	animation.StepTickers()
	midway := d.DisplayHeight()
	if midway <= 200 || midway >= 1000 {
		t.Fatalf("Collapse should be mid-animation, got %v", midway)
	}

	d.DragStart(100)
	if d.Height() != midway {
		t.Errorf("Drag should adopt the mid-animation height %v, got %v", midway, d.Height())
	}

	// The external override is gone: the next snap uses the default
	// duration again.
	d.DragUpdate(100) // move off the midway value
	d.DragEnd(0)
	clk.advance(350 * time.Millisecond)
	animation.StepTickers()
	if d.DisplayHeight() != d.Height() {
		t.Errorf("Snap should finish within the default duration, display %v vs committed %v",
			d.DisplayHeight(), d.Height())
	}
}

func TestRenderedHeightQueryInjected(t *testing.T) {
	withFakeClock(t)
	d, _ := newTestDrawer(t, nil)

	d.SetRenderedHeightFunc(func() float64 { return 333 })
	d.DragStart(100)

	if d.Height() != 333 {
		t.Errorf("Drag start should baseline from the injected rendered height, got %v", d.Height())
	}
	d.DragEnd(0)
}

func TestHeightChangedFiresOnEveryResize(t *testing.T) {
	withFakeClock(t)
	d, _ := newTestDrawer(t, nil)

	var fractions []float64
	d.OnHeightChanged = func(_, f float64) { fractions = append(fractions, f) }

	d.DragStart(100)
	d.DragUpdate(-100)
	d.DragUpdate(-100)
	d.DragUpdate(0) // no movement, no notification
	d.DragEnd(0)

	if len(fractions) < 2 {
		t.Fatalf("Expected a notification per resize, got %v", fractions)
	}
	if fractions[0] != 0.3 || fractions[1] != 0.4 {
		t.Errorf("Expected fractions 0.3 then 0.4, got %v", fractions)
	}
}
