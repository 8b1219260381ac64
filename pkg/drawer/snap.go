package drawer

// resolveSnapTarget picks the stop the drawer should settle at after a
// drag releases at the given committed height.
//
// The stop list is scanned in ascending order. The first stop whose pixel
// height is at or above the current height decides the outcome: the
// midpoint between it and the previous stop is the threshold, and a height
// exactly on the midpoint goes to the higher stop. A height above every
// stop falls through to the top stop, so a target always exists even if
// the clamp invariant should ever be violated.
func resolveSnapTarget(stops []float64, current, container float64) int {
	last := 0
	for i := 1; i < len(stops); i++ {
		if current <= stops[i]*container {
			mid := stops[last]*container + (stops[i]-stops[last])/2*container
			if current >= mid {
				return i
			}
			return last
		}
		last = i
	}
	return len(stops) - 1
}
