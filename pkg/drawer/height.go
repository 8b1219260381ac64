package drawer

// HeightState tracks the drawer's committed height and its constraints.
//
// The committed height is the value the interaction logic reasons about;
// the animated (rendered) height the host actually draws may lag behind it
// while a transition plays. Constraints are derived from the container
// height and the stop list on the first layout pass, and recomputed on
// later passes only when Options.RebuildOnResize is set.
type HeightState struct {
	current   float64
	min       float64
	max       float64
	container float64
	dragging  bool

	notified     bool
	lastNotified float64
}

// Current returns the committed drawer height in pixels.
func (h *HeightState) Current() float64 { return h.current }

// Min returns the minimum drawer height (first stop x container).
func (h *HeightState) Min() float64 { return h.min }

// Max returns the maximum drawer height (last stop x container).
func (h *HeightState) Max() float64 { return h.max }

// Container returns the container height the constraints were derived
// from.
func (h *HeightState) Container() float64 { return h.container }

// Dragging reports whether a drag session is in progress.
func (h *HeightState) Dragging() bool { return h.dragging }

// IsAtMax reports whether the drawer is fully expanded.
func (h *HeightState) IsAtMax() bool { return h.current >= h.max }

// IsAtMin reports whether the drawer is fully collapsed.
func (h *HeightState) IsAtMin() bool { return h.current <= h.min }

// Fraction returns the committed height as a fraction of the container,
// or zero before the first layout pass.
func (h *HeightState) Fraction() float64 {
	if h.container <= 0 {
		return 0
	}
	return h.current / h.container
}

// Clamp bounds value to [Min, Max].
func (h *HeightState) Clamp(value float64) float64 {
	if value < h.min {
		return h.min
	}
	if value > h.max {
		return h.max
	}
	return value
}

// rebuild derives constraints from the container height. On the first
// pass the committed height starts at the initial stop; afterwards it is
// re-clamped into the new bounds.
func (h *HeightState) rebuild(container float64, stops []float64, initialStop int, first bool) {
	h.container = container
	h.min = stops[0] * container
	h.max = stops[len(stops)-1] * container
	if first {
		h.current = stops[initialStop] * container
		return
	}
	h.current = h.Clamp(h.current)
}

func (h *HeightState) setCurrent(value float64) {
	h.current = h.Clamp(value)
}

// consumeChange reports whether the committed height moved since the last
// observation and records the new value.
func (h *HeightState) consumeChange() (height, fraction float64, changed bool) {
	if h.notified && h.current == h.lastNotified {
		return 0, 0, false
	}
	h.notified = true
	h.lastNotified = h.current
	return h.current, h.Fraction(), true
}
