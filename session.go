package dragkit

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// State is the lifecycle tag of a session.
type State uint8

const (
	StateIdle       State = iota // no session, or a released one
	StateGrabbed                 // pointer is down on a candidate, threshold not reached
	StateActive                  // threshold crossed, strategy is tracking the pointer
	StateFinalizing              // pointer released, completion pending or animating
	StateAborting                // cancelled, restore pending or animating
)

var stateNames = [...]string{
	StateIdle:       "idle",
	StateGrabbed:    "grabbed",
	StateActive:     "active",
	StateFinalizing: "finalizing",
	StateAborting:   "aborting",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Outcome describes how a finished session affected its element.
type Outcome uint8

const (
	OutcomePending   Outcome = iota // session not finished
	OutcomeChanged                  // committed and the element changed
	OutcomeUnchanged                // committed but nothing changed (resize no-op)
	OutcomeRestored                 // invalid or aborted, element restored
)

func (o Outcome) String() string {
	switch o {
	case OutcomeChanged:
		return "changed"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeRestored:
		return "restored"
	default:
		return "pending"
	}
}

// Position is the placement snapshot of an element among its siblings.
type Position struct {
	Container *Node
	Previous  *Node
	Next      *Node
}

func capturePosition(n *Node) Position {
	return Position{
		Container: n.Parent,
		Previous:  n.PreviousSibling(),
		Next:      n.NextSibling(),
	}
}

// Matches reports whether n currently sits exactly at p.
func (p Position) Matches(n *Node) bool {
	return n.Parent == p.Container &&
		n.PreviousSibling() == p.Previous &&
		n.NextSibling() == p.Next
}

type deferStage uint8

const (
	stageNone deferStage = iota
	stageStart
	stageDrop
)

// Session is the record of one in-flight interaction. It is created on an
// accepted grab, owned by its Controller, passed by reference to every
// handler, and dropped on reset. Handlers may set Valid, Related and
// RelatedStart, and may call Defer and Finalize.
type Session struct {
	ID    uuid.UUID
	Mode  Mode
	State State

	// Element is the node being manipulated. Proxy is the stand-in used
	// when the mode clones instead of mutating Element in place.
	Element *Node
	Proxy   *Node

	// Original is captured at grab time, before any placement mutation.
	Original Position

	// Start and Current are screen-space pointer positions. Offset is the
	// pointer position relative to the element's top-left at grab time.
	Start, Current Vec2
	Offset         Vec2

	// StartRect is the element's local rectangle at grab time.
	StartRect Rect

	Valid   bool
	Started bool

	// Related elements move with Element in translate mode. RelatedStart
	// is index aligned; entries missing when an element is first moved or
	// restored are captured from its position at that moment.
	Related      []*Node
	RelatedStart []Vec2

	// Edge is the active edge in resize mode. It may flip mid-session when
	// edge switching is allowed.
	Edge Edge

	// Target is the container currently receiving the element (reorder)
	// or the element's parent (other modes).
	Target *Node

	Outcome Outcome
	Touch   bool

	ctrl      *Controller
	pointerID int
	lastEvent PointerEvent

	finalized bool
	aborted   bool

	touchWait    float32
	startPending bool

	deferStage deferStage
	deferKind  deferStage
	deferral   chan bool

	anim *Animation

	// strategy scratch
	anchor      Vec2
	edgeAnchor  float64
	edgeStart   float64
	pointerEdge float64
}

func newSession(c *Controller, mode Mode, ev PointerEvent) *Session {
	return &Session{
		ID:        uuid.New(),
		Mode:      mode,
		State:     StateIdle,
		Start:     ev.Pos(),
		Current:   ev.Pos(),
		Valid:     true,
		Touch:     ev.Touch,
		ctrl:      c,
		pointerID: ev.PointerID,
		lastEvent: ev,
	}
}

// Delta returns the pointer travel since the grab.
func (s *Session) Delta() Vec2 {
	return s.Current.Sub(s.Start)
}

// Finalized reports whether the finalize step has run.
func (s *Session) Finalized() bool { return s.finalized }

// Aborted reports whether the session was aborted.
func (s *Session) Aborted() bool { return s.aborted }

// Async reports whether a handler deferred completion and it has not been
// resolved yet.
func (s *Session) Async() bool { return s.deferral != nil }

// Animating reports whether a restore animation holds the session open.
func (s *Session) Animating() bool { return s.anim != nil }

// Defer suspends completion of the current step. It is honoured while
// dispatching EventDragStart (the session stops applying moves until it is
// resolved) and EventDrop (finalization waits). Sending true or false on
// the returned channel, from any goroutine, resolves it on the next
// Controller.Update; calling Finalize resolves it immediately. Outside those
// two notifications Defer logs a warning and returns a channel that is never
// read.
//
// The channel has a buffer of one and takes exactly one send. It is
// abandoned once the deferral resolves, so a sender that may race with
// Finalize should send with a select and a default case.
func (s *Session) Defer() chan<- bool {
	if s.deferral != nil {
		return s.deferral
	}
	if s.deferStage == stageNone {
		s.ctrl.log.Warn("defer outside dragStart/drop ignored", s.fields()...)
		return make(chan bool, 1)
	}
	s.deferral = make(chan bool, 1)
	s.deferKind = s.deferStage
	return s.deferral
}

// Finalize completes the session with the given validity. While a
// DragStart deferral is pending it resolves that instead (false aborts).
// Calls after the session completed are logged and ignored.
func (s *Session) Finalize(valid bool) {
	c := s.ctrl
	if s.deferral != nil && s.deferKind == stageStart {
		c.resolveDeferral(s, valid)
		return
	}
	if s.State != StateFinalizing && !s.finalized && !s.aborted {
		c.log.Warn("finalize before drop ignored", s.fields()...)
		return
	}
	c.finalize(s, valid)
}

func (s *Session) fields() []zap.Field {
	fields := []zap.Field{
		zap.String("session", s.ID.String()),
		zap.Stringer("mode", s.Mode),
		zap.Stringer("state", s.State),
	}
	if s.Element != nil {
		fields = append(fields, zap.String("element", s.Element.Name))
	}
	return fields
}

// subject is the node the strategy moves: the proxy when cloning,
// otherwise the element itself.
func (s *Session) subject() *Node {
	if s.Proxy != nil {
		return s.Proxy
	}
	return s.Element
}
