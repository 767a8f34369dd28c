package dragkit

import "github.com/google/uuid"

const numEvents = int(EventReset) + 1

// --- Handler registry ---

type sessionHandler struct {
	id uint32
	fn func(*Session)
}

type vetoHandler struct {
	id uint32
	fn func(*Session) bool
}

type handlerRegistry struct {
	beforeStart []vetoHandler
	lists       [numEvents][]sessionHandler
	nextID      uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires. Removing a
// handler while an event is dispatching takes effect from the next event.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	if h.event == EventBeforeDragStart {
		h.reg.beforeStart = removeVetoHandler(h.reg.beforeStart, h.id)
		return
	}
	h.reg.lists[h.event] = removeSessionHandler(h.reg.lists[h.event], h.id)
}

func removeSessionHandler(s []sessionHandler, id uint32) []sessionHandler {
	for i := range s {
		if s[i].id == id {
			out := make([]sessionHandler, 0, len(s)-1)
			out = append(out, s[:i]...)
			return append(out, s[i+1:]...)
		}
	}
	return s
}

func removeVetoHandler(s []vetoHandler, id uint32) []vetoHandler {
	for i := range s {
		if s[i].id == id {
			out := make([]vetoHandler, 0, len(s)-1)
			out = append(out, s[:i]...)
			return append(out, s[i+1:]...)
		}
	}
	return s
}

func (r *handlerRegistry) on(event EventType, fn func(*Session)) CallbackHandle {
	r.nextID++
	id := r.nextID
	r.lists[event] = append(r.lists[event], sessionHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: r, event: event}
}

// --- Registration ---

// OnBeforeDragStart registers a veto callback fired once the threshold is
// crossed, before the strategy mutates anything. Returning false cancels the
// session silently.
func (c *Controller) OnBeforeDragStart(fn func(*Session) bool) CallbackHandle {
	c.handlers.nextID++
	id := c.handlers.nextID
	c.handlers.beforeStart = append(c.handlers.beforeStart, vetoHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &c.handlers, event: EventBeforeDragStart}
}

// OnDragStart registers a callback fired when a session becomes active.
// The callback may call Session.Defer to hold further updates.
func (c *Controller) OnDragStart(fn func(*Session)) CallbackHandle {
	return c.handlers.on(EventDragStart, fn)
}

// OnDrag registers a callback fired after every update ("resizing" in resize
// mode). Setting Session.Valid to false marks the current drop invalid.
func (c *Controller) OnDrag(fn func(*Session)) CallbackHandle {
	return c.handlers.on(EventDrag, fn)
}

// OnDrop registers a callback fired when the pointer is released on an
// active session ("resize" in resize mode). The callback may call
// Session.Defer to postpone finalization.
func (c *Controller) OnDrop(fn func(*Session)) CallbackHandle {
	return c.handlers.on(EventDrop, fn)
}

// OnDropFinalized registers a callback fired after finalization, once any
// restore animation ended.
func (c *Controller) OnDropFinalized(fn func(*Session)) CallbackHandle {
	return c.handlers.on(EventDropFinalized, fn)
}

// OnAbort registers a callback fired when a started session is cancelled.
func (c *Controller) OnAbort(fn func(*Session)) CallbackHandle {
	return c.handlers.on(EventAbort, fn)
}

// OnAbortFinalized registers a callback fired after the abort restore
// animation ended.
func (c *Controller) OnAbortFinalized(fn func(*Session)) CallbackHandle {
	return c.handlers.on(EventAbortFinalized, fn)
}

// OnReset registers a callback fired whenever a session is released.
func (c *Controller) OnReset(fn func(*Session)) CallbackHandle {
	return c.handlers.on(EventReset, fn)
}

// --- Dispatch ---

// publish notifies handlers in registration order, then the event sink.
// Handlers see a snapshot of the registry taken before dispatch.
func (c *Controller) publish(event EventType, s *Session) {
	list := c.handlers.lists[event]
	for _, h := range list {
		h.fn(s)
	}
	c.emit(event, s)
}

// publishVeto runs the before-start handlers and reports whether all of
// them allowed the session. Dispatch stops at the first veto.
func (c *Controller) publishVeto(s *Session) bool {
	list := c.handlers.beforeStart
	for _, h := range list {
		if !h.fn(s) {
			c.emit(EventBeforeDragStart, s)
			return false
		}
	}
	c.emit(EventBeforeDragStart, s)
	return true
}

// --- Event sink ---

// EventSink is the interface for optional external integration (such as an
// ECS world). When set on a Controller, every notification is forwarded as
// an InteractionEvent after the handlers ran.
type EventSink interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent is a flat record of one lifecycle notification.
type InteractionEvent struct {
	Type      EventType
	SessionID uuid.UUID
	Mode      Mode
	ElementID uint32
	Element   string
	State     State
	X, Y      float64
	DeltaX    float64
	DeltaY    float64
	Valid     bool
	Outcome   Outcome
	Edge      Edge
}

// SetEventSink sets the optional event sink. Pass nil to detach.
func (c *Controller) SetEventSink(sink EventSink) {
	c.sink = sink
}

func (c *Controller) emit(event EventType, s *Session) {
	if c.sink == nil {
		return
	}
	ev := InteractionEvent{
		Type:      event,
		SessionID: s.ID,
		Mode:      s.Mode,
		State:     s.State,
		X:         s.Current.X,
		Y:         s.Current.Y,
		DeltaX:    s.Current.X - s.Start.X,
		DeltaY:    s.Current.Y - s.Start.Y,
		Valid:     s.Valid,
		Outcome:   s.Outcome,
		Edge:      s.Edge,
	}
	if s.Element != nil {
		ev.ElementID = s.Element.ID
		ev.Element = s.Element.Name
	}
	c.sink.EmitEvent(ev)
}
