package dragkit

import "go.uber.org/zap"

// Controller runs the interaction state machine for one surface. At most
// one session exists at a time. All methods must be called from the same
// goroutine (the host's frame loop); the only cross-goroutine entry point
// is the channel returned by Session.Defer.
type Controller struct {
	opts     Options
	strategy Strategy
	root     *Node
	overlay  *Node
	log      *zap.Logger

	handlers handlerRegistry
	sink     EventSink
	proxies  *proxyManager
	scroller autoScroller

	session   *Session
	pending   *PointerEvent // cached move, flushed after the in-flight step
	updating  bool
	destroyed bool
	debug     bool
}

// ControllerOption customizes a Controller.
type ControllerOption func(*Controller)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) ControllerOption {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// WithOverlay sets the node floating proxies are attached to. The default
// is the root.
func WithOverlay(n *Node) ControllerOption {
	return func(c *Controller) {
		if n != nil {
			c.overlay = n
		}
	}
}

// NewController creates a controller for the tree under root using the
// given strategy.
func NewController(root *Node, strategy Strategy, opts Options, options ...ControllerOption) *Controller {
	c := &Controller{
		opts:     opts,
		strategy: strategy,
		root:     root,
		overlay:  root,
		log:      zap.NewNop(),
	}
	for _, o := range options {
		o(c)
	}
	c.proxies = newProxyManager(c.log)
	return c
}

// Root returns the surface root.
func (c *Controller) Root() *Node { return c.root }

// Options returns the controller's options.
func (c *Controller) Options() Options { return c.opts }

// Session returns the current session, or nil when idle.
func (c *Controller) Session() *Session { return c.session }

// Busy reports whether a session exists.
func (c *Controller) Busy() bool { return c.session != nil }

func (c *Controller) isDraggable(n *Node) bool {
	if n.Flags&FlagProxy != 0 {
		return false
	}
	if c.opts.IsDraggable != nil {
		return c.opts.IsDraggable(n)
	}
	return defaultDraggable(n)
}

func (c *Controller) isContainer(n *Node) bool {
	if c.opts.IsContainer != nil {
		return c.opts.IsContainer(n)
	}
	return defaultContainer(n)
}

// --- Input ---

// PointerDown offers a grab to the strategy. A pointer down while a session
// exists is ignored.
func (c *Controller) PointerDown(ev PointerEvent) {
	if c.destroyed {
		return
	}
	if s := c.session; s != nil {
		c.log.Warn("pointer down while busy ignored", s.fields()...)
		return
	}
	s := newSession(c, c.strategy.Mode(), ev)
	if !c.strategy.Grab(c, s, ev) || s.Element == nil {
		return
	}
	el := s.Element
	if c.debug {
		debugCheckDisposed(el, "grab")
		c.debugCheckTree(el)
	}
	s.Original = capturePosition(el)
	s.StartRect = el.LocalRect()
	s.Offset = ev.Pos().Sub(el.WorldOrigin())
	s.Target = el.Parent
	if ev.Touch && c.opts.TouchStartDelay > 0 {
		s.touchWait = float32(c.opts.TouchStartDelay.Seconds())
	}
	c.session = s
	c.transition(s, StateGrabbed)
}

// PointerMove feeds one pointer sample.
func (c *Controller) PointerMove(ev PointerEvent) {
	s := c.session
	if s == nil || ev.PointerID != s.pointerID {
		return
	}
	switch s.State {
	case StateGrabbed:
		s.Current = ev.Pos()
		s.lastEvent = ev
		reached := Distance(s.Start, s.Current) >= c.opts.DragThreshold
		if s.touchWait > 0 {
			if reached {
				if ce := c.log.Check(zap.DebugLevel, "touch moved before start delay, treating as scroll"); ce != nil {
					ce.Write(s.fields()...)
				}
				c.reset(s)
			}
			return
		}
		if reached {
			c.start(s, ev)
		}
	case StateActive:
		if s.startPending || c.updating {
			c.pending = &ev
			return
		}
		c.update(s, ev)
	}
}

// PointerUp ends the session: a grab that never started is reset, an
// active session is finalized.
func (c *Controller) PointerUp(ev PointerEvent) {
	s := c.session
	if s == nil || ev.PointerID != s.pointerID {
		return
	}
	switch s.State {
	case StateGrabbed:
		c.reset(s)
	case StateActive:
		if s.startPending {
			c.abort(s)
			return
		}
		if c.pending != nil {
			p := *c.pending
			c.pending = nil
			c.update(s, p)
			if c.session != s || s.State != StateActive {
				return
			}
		}
		// A release away from the last sample counts as a final move.
		if ev.Pos() != s.Current {
			c.update(s, ev)
			if c.session != s || s.State != StateActive {
				return
			}
		}
		c.beginFinalize(s)
	}
}

// KeyDown handles keyboard input. Escape cancels the session.
func (c *Controller) KeyDown(k Key) {
	if k == KeyEscape {
		c.cancel("escape")
	}
}

// Blur cancels the session, as when the window loses focus.
func (c *Controller) Blur() {
	c.cancel("blur")
}

func (c *Controller) cancel(reason string) {
	s := c.session
	if s == nil {
		return
	}
	if s.State == StateGrabbed {
		c.reset(s)
		return
	}
	if s.aborted || s.finalized {
		return
	}
	if ce := c.log.Check(zap.DebugLevel, "session cancelled"); ce != nil {
		ce.Write(append(s.fields(), zap.String("reason", reason))...)
	}
	c.abort(s)
}

// Abort cancels the current session programmatically. It is a no-op when
// idle, resets a grab that never started, and logs a warning when the
// session already completed or was already aborted.
func (c *Controller) Abort() {
	s := c.session
	if s == nil {
		c.log.Warn("abort with no session ignored")
		return
	}
	c.abort(s)
}

// Update advances timers, deferrals, auto-scroll and restore animations by
// dt seconds. Call it once per frame.
func (c *Controller) Update(dt float32) {
	s := c.session
	if s == nil {
		return
	}
	switch {
	case s.anim != nil:
		s.anim.Update(dt)
		if s.anim.Done {
			s.anim = nil
			c.complete(s)
		}
	case s.deferral != nil:
		select {
		case v := <-s.deferral:
			c.resolveDeferral(s, v)
		default:
		}
	case s.State == StateGrabbed && s.touchWait > 0:
		s.touchWait -= dt
		if s.touchWait < 0 {
			s.touchWait = 0
		}
	case s.State == StateActive && c.opts.AutoScroll:
		if c.scroller.step(c, s, dt) {
			c.requestUpdate(s, s.lastEvent)
		}
	}
}

// Destroy releases the current session, short-circuiting any animation,
// and detaches every handler. The controller ignores input afterwards.
func (c *Controller) Destroy() {
	if s := c.session; s != nil {
		if !s.aborted && !s.finalized {
			c.abort(s)
		}
		if s.anim != nil && c.session == s {
			s.anim.Finish()
			s.anim = nil
			c.complete(s)
		}
		if c.session == s {
			c.reset(s)
		}
	}
	c.handlers = handlerRegistry{}
	c.sink = nil
	c.destroyed = true
}

// --- Lifecycle steps ---

func (c *Controller) start(s *Session, ev PointerEvent) {
	if !c.publishVeto(s) {
		if ce := c.log.Check(zap.DebugLevel, "session vetoed before start"); ce != nil {
			ce.Write(s.fields()...)
		}
		c.reset(s)
		return
	}
	if c.session != s {
		return
	}
	s.Started = true
	c.strategy.Start(c, s)
	c.transition(s, StateActive)

	s.deferStage = stageStart
	c.publish(EventDragStart, s)
	s.deferStage = stageNone
	if c.session != s || s.State != StateActive {
		return
	}
	if s.deferral != nil {
		s.startPending = true
		c.pending = &ev
		return
	}
	c.update(s, ev)
}

// update runs one strategy update and the drag notification. Updates never
// nest; a request arriving mid-update is cached and flushed afterwards.
func (c *Controller) update(s *Session, ev PointerEvent) {
	c.updating = true
	s.Current = ev.Pos()
	s.lastEvent = ev
	c.strategy.Update(c, s)
	if s.State == StateActive {
		c.publish(EventDrag, s)
		syncValidity(s)
	}
	c.updating = false
	c.flush(s)
}

func (c *Controller) requestUpdate(s *Session, ev PointerEvent) {
	if c.updating || s.startPending {
		c.pending = &ev
		return
	}
	c.update(s, ev)
}

func (c *Controller) flush(s *Session) {
	if c.pending == nil || c.session != s || s.State != StateActive || s.startPending {
		return
	}
	ev := *c.pending
	c.pending = nil
	c.update(s, ev)
}

func (c *Controller) resolveDeferral(s *Session, v bool) {
	kind := s.deferKind
	s.deferral = nil
	s.deferKind = stageNone
	switch kind {
	case stageStart:
		s.startPending = false
		if !v {
			c.abort(s)
			return
		}
		c.flush(s)
	case stageDrop:
		c.finalize(s, v)
	}
}

func (c *Controller) beginFinalize(s *Session) {
	c.pending = nil
	c.scroller.stop()
	c.transition(s, StateFinalizing)
	if v, ok := c.strategy.(dropValidator); ok && s.Valid && !v.validDrop(c, s) {
		s.Valid = false
	}
	syncValidity(s)

	s.deferStage = stageDrop
	c.publish(EventDrop, s)
	s.deferStage = stageNone
	if c.session != s || s.finalized || s.aborted || s.deferral != nil {
		return
	}
	c.finalize(s, s.Valid)
}

// finalize is the one-shot terminal step of a released session.
func (c *Controller) finalize(s *Session, valid bool) {
	if s.finalized || s.aborted {
		c.log.Warn("finalize on completed session ignored", s.fields()...)
		return
	}
	s.finalized = true
	s.deferral = nil
	s.Valid = valid
	syncValidity(s)
	anim := c.strategy.Finish(c, s, valid)
	if anim != nil {
		s.anim = anim
		s.Element.Flags |= FlagRestoring
		return
	}
	c.complete(s)
}

// abort is the one-shot cancellation step.
func (c *Controller) abort(s *Session) {
	if s.aborted || s.finalized {
		c.log.Warn("abort on completed session ignored", s.fields()...)
		return
	}
	if !s.Started {
		c.reset(s)
		return
	}
	s.aborted = true
	s.deferral = nil
	s.startPending = false
	c.pending = nil
	c.scroller.stop()
	c.transition(s, StateAborting)
	s.Valid = false
	s.Outcome = OutcomeRestored
	anim := c.strategy.Abort(c, s)
	if anim != nil {
		s.anim = anim
		s.Element.Flags |= FlagRestoring
	}
	c.publish(EventAbort, s)
	if anim == nil && c.session == s {
		c.complete(s)
	}
}

// complete publishes the terminal notification and releases the session.
func (c *Controller) complete(s *Session) {
	if c.session != s {
		return
	}
	if s.aborted {
		c.publish(EventAbortFinalized, s)
	} else {
		c.publish(EventDropFinalized, s)
	}
	if s.finalized && s.Valid && !c.opts.RemoveProxyAfterDrop {
		c.proxies.detach(s)
	}
	c.reset(s)
}

// reset releases every resource of s and returns the controller to idle.
func (c *Controller) reset(s *Session) {
	if c.session != s {
		return
	}
	if s.anim != nil {
		s.anim.Finish()
		s.anim = nil
	}
	if s.Proxy != nil && s.Proxy.Flags&FlagProxy != 0 {
		c.proxies.release(s)
	}
	c.scroller.stop()
	c.pending = nil
	c.transition(s, StateIdle)
	c.session = nil
	c.publish(EventReset, s)
}
