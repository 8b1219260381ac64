package drawer

import (
	"sync"
	"time"

	"github.com/credeo/bottomdrawer/pkg/animation"
)

// CommandKind identifies an external drawer command.
type CommandKind int

const (
	// CommandCollapse animates the drawer to its minimum stop.
	CommandCollapse CommandKind = iota
	// CommandExpand animates the drawer to its maximum stop.
	CommandExpand
	// CommandScrollTo animates the inner list to a scroll offset.
	CommandScrollTo
)

// Command is one externally issued drawer action. Commands are consumed
// exactly once by the drawer they are delivered to.
type Command struct {
	Kind     CommandKind
	Duration time.Duration
	Curve    animation.Curve
	// Position is the target scroll offset for CommandScrollTo.
	Position float64
	// UpdateScroll makes CommandCollapse also animate the list back to
	// offset zero.
	UpdateScroll bool
}

// Controller lets external code drive a drawer imperatively.
//
// It is a single-slot mailbox: issuing a command overwrites any command
// that has not been consumed yet (last write wins) and notifies
// subscribers. The drawer subscribes via Drawer.AttachController and takes
// the pending command on each notification.
type Controller struct {
	mu             sync.Mutex
	pending        *Command
	listeners      map[int]func()
	nextListenerID int
}

// NewController creates an empty controller.
func NewController() *Controller {
	return &Controller{}
}

// Collapse asks the drawer to settle at its minimum stop. When
// updateScroll is true, the inner list is also animated back to offset
// zero over half the duration.
func (c *Controller) Collapse(duration time.Duration, curve animation.Curve, updateScroll bool) {
	c.post(&Command{
		Kind:         CommandCollapse,
		Duration:     duration,
		Curve:        curve,
		UpdateScroll: updateScroll,
	})
}

// Expand asks the drawer to settle at its maximum stop.
func (c *Controller) Expand(duration time.Duration, curve animation.Curve) {
	c.post(&Command{
		Kind:     CommandExpand,
		Duration: duration,
		Curve:    curve,
	})
}

// ScrollTo asks the drawer to animate the inner list to the given offset
// over half the duration.
func (c *Controller) ScrollTo(position float64, duration time.Duration, curve animation.Curve) {
	c.post(&Command{
		Kind:     CommandScrollTo,
		Duration: duration,
		Curve:    curve,
		Position: position,
	})
}

// AddListener registers a callback fired after each posted command. It
// returns an unsubscribe function.
func (c *Controller) AddListener(listener func()) func() {
	if listener == nil {
		return func() {}
	}
	c.mu.Lock()
	if c.listeners == nil {
		c.listeners = make(map[int]func())
	}
	id := c.nextListenerID
	c.nextListenerID++
	c.listeners[id] = listener
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

func (c *Controller) post(cmd *Command) {
	c.mu.Lock()
	c.pending = cmd
	// Copy listeners so callbacks can subscribe or unsubscribe.
	listeners := make([]func(), 0, len(c.listeners))
	for _, listener := range c.listeners {
		listeners = append(listeners, listener)
	}
	c.mu.Unlock()
	for _, listener := range listeners {
		listener()
	}
}

// take removes and returns the pending command, or nil when it was already
// consumed.
func (c *Controller) take() *Command {
	c.mu.Lock()
	defer c.mu.Unlock()
	cmd := c.pending
	c.pending = nil
	return cmd
}
