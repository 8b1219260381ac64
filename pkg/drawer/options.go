package drawer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Shadow describes the drawer panel's drop shadow.
type Shadow struct {
	Elevation float64 `yaml:"elevation"`
	Opacity   float64 `yaml:"opacity"`
}

// Options configures a drawer for its whole lifetime. Validate reports
// configuration errors; New calls it and refuses invalid options.
type Options struct {
	// Stops are the height fractions of the container the drawer can rest
	// at, strictly ascending within [0, 1], at least two entries. The first
	// stop is the minimum height, the last the maximum.
	Stops []float64 `yaml:"stops"`
	// InitialStop is the index into Stops used on the first layout pass.
	InitialStop int `yaml:"initialStop"`

	// Snap enables settling to the nearest stop after a drag ends.
	Snap bool `yaml:"snap"`
	// SnapDuration is the length of the snap animation.
	SnapDuration time.Duration `yaml:"-"`

	// RebuildOnResize recomputes the height constraints on every layout
	// pass. When false, constraints derived on the first pass are retained
	// even if the container resizes.
	RebuildOnResize bool `yaml:"rebuildOnResize"`

	// ForceResizeDistance is the height of the zone below the drawer's top
	// edge where a drag always resizes the drawer, never the list. Zero or
	// negative disables the zone.
	ForceResizeDistance float64 `yaml:"forceResizeDistance"`

	// Presentation hints passed through to the host.
	ListPadding  float64 `yaml:"listPadding"`
	BorderRadius float64 `yaml:"borderRadius"`
	Shadow       Shadow  `yaml:"shadow"`
	HeaderHeight float64 `yaml:"headerHeight"`

	// Items is the fixed content sequence. Mutually exclusive with
	// ItemBuilder.
	Items []any `yaml:"-"`
	// ItemBuilder generates content lazily; ItemCount gives the number of
	// items. Mutually exclusive with Items.
	ItemBuilder func(index int) any `yaml:"-"`
	ItemCount   int                 `yaml:"-"`
}

// DefaultOptions returns the options used when a field is left at its zero
// value. Content (Items or ItemBuilder) must still be supplied by the
// caller.
func DefaultOptions() Options {
	return Options{
		Stops:        []float64{0.15, 0.5, 1.0},
		InitialStop:  0,
		Snap:         true,
		SnapDuration: 300 * time.Millisecond,
		ListPadding:  8,
		BorderRadius: 16,
		Shadow:       Shadow{Elevation: 8, Opacity: 0.25},
		HeaderHeight: 32,
	}
}

// Validate checks the construction-time contract.
func (o *Options) Validate() error {
	if len(o.Stops) < 2 {
		return fmt.Errorf("drawer: need at least 2 stops, got %d", len(o.Stops))
	}
	prev := -1.0
	for i, stop := range o.Stops {
		if stop < 0 || stop > 1 {
			return fmt.Errorf("drawer: stop %d is %v, must be within [0, 1]", i, stop)
		}
		if stop <= prev {
			return fmt.Errorf("drawer: stops must be strictly ascending, stop %d is %v", i, stop)
		}
		prev = stop
	}
	if o.InitialStop < 0 || o.InitialStop >= len(o.Stops) {
		return fmt.Errorf("drawer: initial stop %d out of range for %d stops", o.InitialStop, len(o.Stops))
	}
	hasItems := o.Items != nil
	hasBuilder := o.ItemBuilder != nil
	if hasItems == hasBuilder {
		return errors.New("drawer: exactly one of Items or ItemBuilder must be supplied")
	}
	if hasBuilder && o.ItemCount < 0 {
		return fmt.Errorf("drawer: item count %d must be non-negative", o.ItemCount)
	}
	return nil
}

// Len returns the number of content items.
func (o *Options) Len() int {
	if o.ItemBuilder != nil {
		return o.ItemCount
	}
	return len(o.Items)
}

// ItemAt returns the content item at index i, invoking the builder for
// generated content.
func (o *Options) ItemAt(i int) any {
	if o.ItemBuilder != nil {
		return o.ItemBuilder(i)
	}
	return o.Items[i]
}

// fileOptions is the drawer.yaml schema. Durations are in milliseconds and
// pointer fields distinguish "absent" from zero so file values only
// override what they set.
type fileOptions struct {
	Stops               []float64 `yaml:"stops"`
	InitialStop         *int      `yaml:"initialStop"`
	Snap                *bool     `yaml:"snap"`
	SnapDurationMS      *int      `yaml:"snapDurationMs"`
	RebuildOnResize     *bool     `yaml:"rebuildOnResize"`
	ForceResizeDistance *float64  `yaml:"forceResizeDistance"`
	ListPadding         *float64  `yaml:"listPadding"`
	BorderRadius        *float64  `yaml:"borderRadius"`
	HeaderHeight        *float64  `yaml:"headerHeight"`
	Shadow              *Shadow   `yaml:"shadow"`
}

// LoadOptions reads drawer.yaml from dir if present and merges it over
// DefaultOptions. A missing file yields the defaults.
func LoadOptions(dir string) (Options, error) {
	opts := DefaultOptions()

	path := filepath.Join(dir, "drawer.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return opts, nil
		}
		return opts, fmt.Errorf("drawer: failed to read %s: %w", path, err)
	}

	var file fileOptions
	if err := yaml.Unmarshal(data, &file); err != nil {
		return opts, fmt.Errorf("drawer: failed to parse %s: %w", path, err)
	}

	if file.Stops != nil {
		opts.Stops = file.Stops
	}
	if file.InitialStop != nil {
		opts.InitialStop = *file.InitialStop
	}
	if file.Snap != nil {
		opts.Snap = *file.Snap
	}
	if file.SnapDurationMS != nil {
		opts.SnapDuration = time.Duration(*file.SnapDurationMS) * time.Millisecond
	}
	if file.RebuildOnResize != nil {
		opts.RebuildOnResize = *file.RebuildOnResize
	}
	if file.ForceResizeDistance != nil {
		opts.ForceResizeDistance = *file.ForceResizeDistance
	}
	if file.ListPadding != nil {
		opts.ListPadding = *file.ListPadding
	}
	if file.BorderRadius != nil {
		opts.BorderRadius = *file.BorderRadius
	}
	if file.HeaderHeight != nil {
		opts.HeaderHeight = *file.HeaderHeight
	}
	if file.Shadow != nil {
		opts.Shadow = *file.Shadow
	}
	return opts, nil
}
