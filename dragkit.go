package dragkit

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default node color.
var ColorWhite = Color{1, 1, 1, 1}

// Vec2 is a 2D vector used for positions, offsets, sizes, and deltas
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// ContainsRect reports whether other lies entirely inside r.
func (r Rect) ContainsRect(other Rect) bool {
	return other.X >= r.X && other.Y >= r.Y &&
		other.X+other.Width <= r.X+r.Width &&
		other.Y+other.Height <= r.Y+r.Height
}

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the center point of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Origin returns the top-left corner.
func (r Rect) Origin() Vec2 { return Vec2{r.X, r.Y} }

// Range is a general-purpose min/max range.
type Range struct {
	Min, Max float64
}

// Clamp returns v limited to [Min, Max]. A nil range leaves v untouched.
func (r *Range) Clamp(v float64) float64 {
	if r == nil {
		return v
	}
	return Clamp(v, r.Min, r.Max)
}

// Layout selects how a container positions its children.
type Layout uint8

const (
	LayoutNone       Layout = iota // children keep their own X/Y
	LayoutHorizontal               // children flow left to right (right to left when RightToLeft)
	LayoutVertical                 // children flow top to bottom
)

// Axis selects the dimension a resize session changes.
type Axis uint8

const (
	AxisHorizontal Axis = iota // width
	AxisVertical               // height
)

// Edge identifies the side of an element a resize session drags.
type Edge uint8

const (
	EdgeNone     Edge = iota
	EdgeLeading       // left for horizontal, top for vertical
	EdgeTrailing      // right for horizontal, bottom for vertical
)

// String returns a readable edge name.
func (e Edge) String() string {
	switch e {
	case EdgeLeading:
		return "leading"
	case EdgeTrailing:
		return "trailing"
	default:
		return "none"
	}
}

// Mode identifies the interaction a strategy implements.
type Mode uint8

const (
	ModeReorder   Mode = iota // container reorder
	ModeTranslate             // free translate
	ModeResize                // edge resize
)

// String returns the mode name used in logs.
func (m Mode) String() string {
	switch m {
	case ModeReorder:
		return "reorder"
	case ModeTranslate:
		return "translate"
	case ModeResize:
		return "resize"
	default:
		return "unknown"
	}
}

// EventType identifies a lifecycle notification.
type EventType uint8

const (
	EventBeforeDragStart  EventType = iota // vetoable, fires once the threshold is crossed
	EventDragStart                         // fires after the strategy started the session
	EventDrag                              // fires after every update ("resizing" in resize mode)
	EventDrop                              // fires on pointer up ("resize" in resize mode)
	EventDropFinalized                     // fires after the finalize step and its animation
	EventAbort                             // fires when a started session is cancelled ("cancel")
	EventAbortFinalized                    // fires after the abort restore animation ends
	EventReset                             // fires whenever a session is released
)

var eventNames = [...]string{
	EventBeforeDragStart: "beforeDragStart",
	EventDragStart:       "dragStart",
	EventDrag:            "drag",
	EventDrop:            "drop",
	EventDropFinalized:   "dropFinalized",
	EventAbort:           "abort",
	EventAbortFinalized:  "abortFinalized",
	EventReset:           "reset",
}

// String returns the event name.
func (e EventType) String() string {
	if int(e) < len(eventNames) {
		return eventNames[e]
	}
	return "unknown"
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Key identifies a keyboard key delivered to Controller.KeyDown.
type Key uint8

const (
	KeyUnknown Key = iota
	KeyEscape
)

// PointerEvent is one raw pointer sample in screen space.
type PointerEvent struct {
	X, Y      float64
	Button    MouseButton
	Touch     bool
	PointerID int
	Modifiers KeyModifiers
}

// Pos returns the event position as a vector.
func (e PointerEvent) Pos() Vec2 { return Vec2{e.X, e.Y} }
