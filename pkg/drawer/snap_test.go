package drawer

import "testing"

func TestResolveSnapTarget(t *testing.T) {
	stops := []float64{0.2, 0.6, 1.0}
	const container = 1000.0

	tests := []struct {
		name    string
		current float64
		want    int
	}{
		{"at minimum stop", 200, 0},
		{"below first midpoint", 399, 0},
		{"exactly on first midpoint goes higher", 400, 1},
		{"release at 500 goes to 600", 500, 1},
		{"at middle stop", 600, 1},
		{"below second midpoint", 799, 1},
		{"exactly on second midpoint goes higher", 800, 2},
		{"near the top", 950, 2},
		{"at maximum stop", 1000, 2},
		{"above every stop falls through to the top", 1200, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveSnapTarget(stops, tt.current, container)
			if got != tt.want {
				t.Errorf("resolveSnapTarget(%v) = %d, want %d", tt.current, got, tt.want)
			}
		})
	}
}

func TestResolveSnapTargetTwoStops(t *testing.T) {
	stops := []float64{0.3, 0.9}
	const container = 500.0

	// Midpoint is (0.3 + 0.6/2) * 500 = 300.
	if got := resolveSnapTarget(stops, 299, container); got != 0 {
		t.Errorf("Below midpoint should pick the lower stop, got %d", got)
	}
	if got := resolveSnapTarget(stops, 300, container); got != 1 {
		t.Errorf("Midpoint boundary should pick the higher stop, got %d", got)
	}
}
