package dragkit

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"
)

const (
	defaultDragThreshold  = 5.0 // pixels
	defaultHandleSize     = 10.0
	defaultScrollZone     = 50.0
	defaultScrollSpeed    = 600.0 // pixels per second at the boundary
	defaultAbortAnimation = 200 * time.Millisecond
)

// Options configures a Controller and its strategy. Function-valued fields
// cannot be loaded from YAML and are set in code.
type Options struct {
	// DragThreshold is the pointer travel in pixels before a grab becomes
	// an active session.
	DragThreshold float64 `yaml:"dragThreshold"`
	// TouchStartDelay is how long a touch must hold before movement is
	// treated as a drag rather than a scroll.
	TouchStartDelay time.Duration `yaml:"touchStartDelay"`

	// CloneTarget drags a disposable clone instead of the element itself
	// (translate and resize modes; reorder always floats a clone).
	CloneTarget bool `yaml:"cloneTarget"`
	// RemoveProxyAfterDrop disposes the proxy after a valid drop. When
	// false the proxy stays in the tree and belongs to the caller.
	RemoveProxyAfterDrop bool `yaml:"removeProxyAfterDrop"`
	// IgnoreSamePositionDrop treats a reorder drop back onto the original
	// slot as invalid.
	IgnoreSamePositionDrop bool `yaml:"ignoreSamePositionDrop"`

	// Translate bounds.
	Constrain bool   `yaml:"constrain"`
	XRange    *Range `yaml:"xRange"`
	YRange    *Range `yaml:"yRange"`
	LockX     bool   `yaml:"lockX"`
	LockY     bool   `yaml:"lockY"`

	// Resize bounds. A zero maximum means unbounded.
	Axis              Axis    `yaml:"axis"`
	MinWidth          float64 `yaml:"minWidth"`
	MaxWidth          float64 `yaml:"maxWidth"`
	MinHeight         float64 `yaml:"minHeight"`
	MaxHeight         float64 `yaml:"maxHeight"`
	HandleSize        float64 `yaml:"handleSize"`
	LeadingHandle     bool    `yaml:"leadingHandle"`
	TrailingHandle    bool    `yaml:"trailingHandle"`
	DynamicHandleSize bool    `yaml:"dynamicHandleSize"`
	ReservedSpace     float64 `yaml:"reservedSpace"`
	AllowEdgeSwitch   bool    `yaml:"allowEdgeSwitch"`

	// Auto-scroll while the pointer rests near a scrollable boundary.
	AutoScroll  bool    `yaml:"autoScroll"`
	ScrollZone  float64 `yaml:"scrollZone"`
	ScrollSpeed float64 `yaml:"scrollSpeed"`

	// AbortAnimation is the duration of the restore animation after an
	// invalid drop or abort. Zero restores immediately.
	AbortAnimation time.Duration `yaml:"abortAnimation"`

	Ease        ease.TweenFunc   `yaml:"-"`
	Snap        func(Vec2) Vec2  `yaml:"-"`
	IsDraggable func(*Node) bool `yaml:"-"`
	IsContainer func(*Node) bool `yaml:"-"`
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		DragThreshold:          defaultDragThreshold,
		RemoveProxyAfterDrop:   true,
		IgnoreSamePositionDrop: true,
		HandleSize:             defaultHandleSize,
		LeadingHandle:          true,
		TrailingHandle:         true,
		ScrollZone:             defaultScrollZone,
		ScrollSpeed:            defaultScrollSpeed,
		AbortAnimation:         defaultAbortAnimation,
	}
}

// LoadOptions parses YAML (or JSON) over DefaultOptions and validates the
// result.
func LoadOptions(data []byte) (Options, error) {
	opts := DefaultOptions()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("parse options: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// Validate reports configuration that cannot produce a usable session.
func (o Options) Validate() error {
	var errs []error
	if o.DragThreshold < 0 {
		errs = append(errs, errors.New("dragThreshold must not be negative"))
	}
	if o.TouchStartDelay < 0 {
		errs = append(errs, errors.New("touchStartDelay must not be negative"))
	}
	if o.HandleSize < 0 {
		errs = append(errs, errors.New("handleSize must not be negative"))
	}
	if o.MinWidth < 0 || o.MinHeight < 0 {
		errs = append(errs, errors.New("minimum size must not be negative"))
	}
	if o.MaxWidth > 0 && o.MaxWidth < o.MinWidth {
		errs = append(errs, fmt.Errorf("maxWidth %v is below minWidth %v", o.MaxWidth, o.MinWidth))
	}
	if o.MaxHeight > 0 && o.MaxHeight < o.MinHeight {
		errs = append(errs, fmt.Errorf("maxHeight %v is below minHeight %v", o.MaxHeight, o.MinHeight))
	}
	ranges := []struct {
		name string
		r    *Range
	}{{"xRange", o.XRange}, {"yRange", o.YRange}}
	for _, nr := range ranges {
		if r := nr.r; r != nil && r.Max < r.Min {
			errs = append(errs, fmt.Errorf("%s max %v is below min %v", nr.name, r.Max, r.Min))
		}
	}
	if o.ScrollSpeed < 0 || o.ScrollZone < 0 {
		errs = append(errs, errors.New("scroll zone and speed must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid options: %w", errors.Join(errs...))
	}
	return nil
}

// sizeLimits returns the [min, max] extent for axis.
func (o Options) sizeLimits(axis Axis) (float64, float64) {
	lo, hi := o.MinWidth, o.MaxWidth
	if axis == AxisVertical {
		lo, hi = o.MinHeight, o.MaxHeight
	}
	if hi <= 0 {
		hi = math.Inf(1)
	}
	return lo, hi
}

// handleCount returns how many virtual handles the resize mode exposes.
func (o Options) handleCount() int {
	n := 0
	if o.LeadingHandle {
		n++
	}
	if o.TrailingHandle {
		n++
	}
	return n
}

// UnmarshalText parses "horizontal" or "vertical".
func (a *Axis) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "horizontal", "x", "width":
		*a = AxisHorizontal
	case "vertical", "y", "height":
		*a = AxisVertical
	default:
		return fmt.Errorf("unknown axis %q", text)
	}
	return nil
}

// MarshalText renders the axis name.
func (a Axis) MarshalText() ([]byte, error) {
	if a == AxisVertical {
		return []byte("vertical"), nil
	}
	return []byte("horizontal"), nil
}
