package dragkit

import (
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// recorder collects lifecycle notification names in dispatch order.
type recorder struct {
	events []string
}

func (r *recorder) attach(c *Controller) {
	add := func(name string) func(*Session) {
		return func(*Session) { r.events = append(r.events, name) }
	}
	c.OnDragStart(add("start"))
	c.OnDrag(add("drag"))
	c.OnDrop(add("drop"))
	c.OnDropFinalized(add("dropFinalized"))
	c.OnAbort(add("abort"))
	c.OnAbortFinalized(add("abortFinalized"))
	c.OnReset(add("reset"))
}

// compact drops repeated drag notifications so sequences are easy to compare.
func (r *recorder) compact() string {
	var out []string
	for _, e := range r.events {
		if e == "drag" && len(out) > 0 && out[len(out)-1] == "drag" {
			continue
		}
		out = append(out, e)
	}
	return strings.Join(out, ",")
}

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return zap.New(core), logs
}

// newTranslateFixture returns a controller over a 400x400 root holding one
// 50x50 item at the origin. Restores are immediate.
func newTranslateFixture(t *testing.T, mutate func(*Options)) (*Controller, *Node, *observer.ObservedLogs) {
	t.Helper()
	root := NewNode("root", 400, 400)
	item := NewNode("item", 50, 50)
	root.AddChild(item)
	opts := DefaultOptions()
	opts.AbortAnimation = 0
	if mutate != nil {
		mutate(&opts)
	}
	log, logs := observedLogger()
	return NewController(root, NewTranslateStrategy(), opts, WithLogger(log)), item, logs
}

func at(x, y float64) PointerEvent { return PointerEvent{X: x, Y: y} }

func TestThresholdGatesStart(t *testing.T) {
	tests := []struct {
		name      string
		threshold float64
		move      float64
		started   bool
	}{
		{"below", 5, 4.9, false},
		{"exactly", 5, 5, true},
		{"above", 5, 12, true},
		{"zero threshold", 0, 0.1, true},
		{"larger threshold", 20, 12, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _ := newTranslateFixture(t, func(o *Options) { o.DragThreshold = tt.threshold })
			c.PointerDown(at(10, 10))
			c.PointerMove(at(10+tt.move, 10))
			if got := c.Session().State == StateActive; got != tt.started {
				t.Errorf("active = %v, want %v", got, tt.started)
			}
		})
	}
}

func TestThresholdMonotonic(t *testing.T) {
	// Once a sample crossed the threshold, moving back inside it must not
	// return the session to grabbed.
	c, _, _ := newTranslateFixture(t, nil)
	c.PointerDown(at(10, 10))
	c.PointerMove(at(30, 10))
	c.PointerMove(at(11, 10))
	if s := c.Session(); s == nil || s.State != StateActive {
		t.Fatal("session should stay active")
	}
}

func TestPointerUpBeforeThresholdOnlyResets(t *testing.T) {
	c, item, _ := newTranslateFixture(t, nil)
	var r recorder
	r.attach(c)
	c.PointerDown(at(10, 10))
	c.PointerMove(at(12, 10))
	c.PointerUp(at(12, 10))
	if got := r.compact(); got != "reset" {
		t.Errorf("events = %s, want reset", got)
	}
	if item.X != 0 || c.Busy() {
		t.Error("a click must not move the item or leave a session")
	}
}

func TestPointerDownOnNothing(t *testing.T) {
	c, _, _ := newTranslateFixture(t, nil)
	c.PointerDown(at(1000, 1000))
	if c.Busy() {
		t.Error("no session expected outside the surface")
	}
}

func TestFullDragEventOrder(t *testing.T) {
	c, item, _ := newTranslateFixture(t, nil)
	var r recorder
	r.attach(c)
	c.PointerDown(at(10, 10))
	c.PointerMove(at(20, 10))
	c.PointerMove(at(40, 30))
	c.PointerUp(at(40, 30))
	if got := r.compact(); got != "start,drag,drop,dropFinalized,reset" {
		t.Errorf("events = %s", got)
	}
	if item.X != 30 || item.Y != 20 {
		t.Errorf("item at (%v,%v), want (30,20)", item.X, item.Y)
	}
}

func TestActiveFlags(t *testing.T) {
	c, item, _ := newTranslateFixture(t, nil)
	c.PointerDown(at(10, 10))
	c.PointerMove(at(30, 10))
	if item.Flags&FlagDragging == 0 {
		t.Error("element should carry FlagDragging while active")
	}
	if c.Root().Flags&FlagDropTarget == 0 {
		t.Error("parent should carry FlagDropTarget while active")
	}
	c.PointerUp(at(30, 10))
	if item.Flags != 0 || c.Root().Flags != 0 {
		t.Errorf("flags should be cleared on reset: item=%b root=%b", item.Flags, c.Root().Flags)
	}
}

func TestVetoCancelsSilently(t *testing.T) {
	c, item, _ := newTranslateFixture(t, nil)
	var r recorder
	r.attach(c)
	c.OnBeforeDragStart(func(s *Session) bool { return s.Element.Name != "item" })
	c.PointerDown(at(10, 10))
	c.PointerMove(at(40, 10))
	if got := r.compact(); got != "reset" {
		t.Errorf("events = %s, want reset", got)
	}
	if item.X != 0 || c.Busy() {
		t.Error("vetoed session must not touch the element")
	}
}

func TestVetoStopsAtFirstFalse(t *testing.T) {
	c, _, _ := newTranslateFixture(t, nil)
	var calls int
	c.OnBeforeDragStart(func(*Session) bool { calls++; return false })
	c.OnBeforeDragStart(func(*Session) bool { calls++; return true })
	c.PointerDown(at(10, 10))
	c.PointerMove(at(40, 10))
	if calls != 1 {
		t.Errorf("veto handlers called %d times, want 1", calls)
	}
}

func TestTouchDelay(t *testing.T) {
	touch := func(x, y float64) PointerEvent { return PointerEvent{X: x, Y: y, Touch: true} }
	mutate := func(o *Options) { o.TouchStartDelay = 100 * time.Millisecond }

	t.Run("early move scrolls", func(t *testing.T) {
		c, item, _ := newTranslateFixture(t, mutate)
		c.PointerDown(touch(10, 10))
		c.PointerMove(touch(10, 40))
		if c.Busy() || item.Y != 0 {
			t.Error("a touch moving before the delay should be released as a scroll")
		}
	})
	t.Run("held touch drags", func(t *testing.T) {
		c, item, _ := newTranslateFixture(t, mutate)
		c.PointerDown(touch(10, 10))
		c.Update(0.2)
		c.PointerMove(touch(10, 40))
		if !c.Busy() || item.Y != 30 {
			t.Errorf("held touch should drag, item.Y = %v", item.Y)
		}
	})
	t.Run("mouse ignores delay", func(t *testing.T) {
		c, item, _ := newTranslateFixture(t, mutate)
		c.PointerDown(at(10, 10))
		c.PointerMove(at(10, 40))
		if item.Y != 30 {
			t.Errorf("mouse drag should start immediately, item.Y = %v", item.Y)
		}
	})
}

func TestCancelRestores(t *testing.T) {
	for name, cancel := range map[string]func(*Controller){
		"escape": func(c *Controller) { c.KeyDown(KeyEscape) },
		"blur":   func(c *Controller) { c.Blur() },
		"abort":  func(c *Controller) { c.Abort() },
	} {
		t.Run(name, func(t *testing.T) {
			c, item, _ := newTranslateFixture(t, nil)
			var r recorder
			r.attach(c)
			c.PointerDown(at(10, 10))
			c.PointerMove(at(60, 60))
			cancel(c)
			if got := r.compact(); got != "start,drag,abort,abortFinalized,reset" {
				t.Errorf("events = %s", got)
			}
			if item.X != 0 || item.Y != 0 {
				t.Errorf("item at (%v,%v), want restored", item.X, item.Y)
			}
			// Late input from the same gesture is ignored.
			c.PointerUp(at(60, 60))
			if c.Busy() {
				t.Error("controller should be idle")
			}
		})
	}
}

func TestEscapeIgnoresOtherKeys(t *testing.T) {
	c, _, _ := newTranslateFixture(t, nil)
	c.PointerDown(at(10, 10))
	c.PointerMove(at(60, 60))
	c.KeyDown(KeyUnknown)
	if s := c.Session(); s == nil || s.State != StateActive {
		t.Error("non-escape keys must not cancel")
	}
}

func TestAbortIdempotentWithAnimation(t *testing.T) {
	c, item, logs := newTranslateFixture(t, func(o *Options) { o.AbortAnimation = 100 * time.Millisecond })
	var r recorder
	r.attach(c)
	c.PointerDown(at(10, 10))
	c.PointerMove(at(110, 10))
	c.Abort()
	s := c.Session()
	if s == nil || !s.Animating() || item.Flags&FlagRestoring == 0 {
		t.Fatal("abort should start a restore animation")
	}
	c.Abort()
	c.KeyDown(KeyEscape)
	if n := logs.FilterMessage("abort on completed session ignored").Len(); n != 1 {
		t.Errorf("expected 1 warning for the repeated abort, got %d", n)
	}
	for i := 0; i < 20 && c.Busy(); i++ {
		c.Update(1.0 / 60)
	}
	if got := r.compact(); got != "start,drag,abort,abortFinalized,reset" {
		t.Errorf("events = %s", got)
	}
	if item.X != 0 || item.Y != 0 {
		t.Errorf("item at (%v,%v), want exact start", item.X, item.Y)
	}
}

func TestAbortWithoutSessionWarns(t *testing.T) {
	c, _, logs := newTranslateFixture(t, nil)
	c.Abort()
	if logs.FilterMessage("abort with no session ignored").Len() != 1 {
		t.Error("expected a warning")
	}
}

func TestPointerDownWhileBusyIgnored(t *testing.T) {
	c, _, logs := newTranslateFixture(t, nil)
	c.PointerDown(at(10, 10))
	s := c.Session()
	c.PointerDown(at(20, 20))
	if c.Session() != s {
		t.Error("second pointer down must not replace the session")
	}
	if logs.FilterMessage("pointer down while busy ignored").Len() != 1 {
		t.Error("expected a warning")
	}
}

func TestOtherPointerIgnored(t *testing.T) {
	c, item, _ := newTranslateFixture(t, nil)
	c.PointerDown(at(10, 10))
	c.PointerMove(PointerEvent{X: 90, Y: 10, PointerID: 3})
	c.PointerUp(PointerEvent{X: 90, Y: 10, PointerID: 3})
	if !c.Busy() || item.X != 0 {
		t.Error("events from another pointer must be ignored")
	}
}

func TestInvalidFromDragHandler(t *testing.T) {
	c, item, _ := newTranslateFixture(t, nil)
	c.OnDrag(func(s *Session) { s.Valid = s.Current.X < 100 })
	var outcome Outcome
	c.OnDropFinalized(func(s *Session) { outcome = s.Outcome })

	c.PointerDown(at(10, 10))
	c.PointerMove(at(150, 10))
	if item.Flags&FlagInvalid == 0 {
		t.Error("invalid flag should mirror Session.Valid")
	}
	c.PointerUp(at(150, 10))
	if outcome != OutcomeRestored || item.X != 0 {
		t.Errorf("outcome = %v, item.X = %v; want restored at 0", outcome, item.X)
	}
}

func TestDeferredDropViaChannel(t *testing.T) {
	c, item, _ := newTranslateFixture(t, nil)
	var verdict chan<- bool
	c.OnDrop(func(s *Session) { verdict = s.Defer() })
	var r recorder
	r.attach(c)

	c.PointerDown(at(10, 10))
	c.PointerMove(at(60, 10))
	c.PointerUp(at(60, 10))
	s := c.Session()
	if s == nil || !s.Async() || s.State != StateFinalizing {
		t.Fatal("drop should be pending")
	}
	c.Update(1.0 / 60)
	if !c.Busy() {
		t.Fatal("session must wait for the verdict")
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		verdict <- false
	}()
	wg.Wait()
	c.Update(1.0 / 60)

	if c.Busy() {
		t.Fatal("verdict should complete the session")
	}
	if s.Outcome != OutcomeRestored || item.X != 0 {
		t.Errorf("rejected drop should restore, outcome %v item.X %v", s.Outcome, item.X)
	}
	if got := r.compact(); got != "start,drag,drop,dropFinalized,reset" {
		t.Errorf("events = %s", got)
	}
}

func TestDeferredDropViaFinalize(t *testing.T) {
	c, item, logs := newTranslateFixture(t, nil)
	var held *Session
	c.OnDrop(func(s *Session) {
		s.Defer()
		held = s
	})
	c.PointerDown(at(10, 10))
	c.PointerMove(at(60, 10))
	c.PointerUp(at(60, 10))

	held.Finalize(true)
	if c.Busy() || item.X != 50 || held.Outcome != OutcomeChanged {
		t.Errorf("accepted drop should commit, item.X = %v outcome %v", item.X, held.Outcome)
	}
	held.Finalize(true)
	if n := logs.FilterMessage("finalize on completed session ignored").Len(); n != 1 {
		t.Errorf("expected 1 warning for double finalize, got %d", n)
	}
}

func TestDeferChannelAfterFinalize(t *testing.T) {
	c, item, _ := newTranslateFixture(t, nil)
	var held *Session
	var verdict chan<- bool
	c.OnDrop(func(s *Session) {
		verdict = s.Defer()
		held = s
	})
	c.PointerDown(at(10, 10))
	c.PointerMove(at(60, 10))
	c.PointerUp(at(60, 10))

	held.Finalize(true)
	select {
	case verdict <- false:
	default:
		t.Fatal("one send after Finalize should not block")
	}
	c.Update(1.0 / 60)
	if c.Busy() || item.X != 50 || held.Outcome != OutcomeChanged {
		t.Errorf("late verdict must be ignored, item.X = %v outcome %v", item.X, held.Outcome)
	}
}

func TestFinalizeBeforeDropWarns(t *testing.T) {
	c, _, logs := newTranslateFixture(t, nil)
	c.PointerDown(at(10, 10))
	c.PointerMove(at(60, 10))
	c.Session().Finalize(true)
	if logs.FilterMessage("finalize before drop ignored").Len() != 1 {
		t.Error("expected a warning")
	}
	if c.Session().State != StateActive {
		t.Error("session should still be active")
	}
}

func TestDeferOutsideStageWarns(t *testing.T) {
	c, _, logs := newTranslateFixture(t, nil)
	c.OnDrag(func(s *Session) { s.Defer() })
	c.PointerDown(at(10, 10))
	c.PointerMove(at(60, 10))
	if logs.FilterMessage("defer outside dragStart/drop ignored").Len() == 0 {
		t.Error("expected a warning")
	}
	if c.Session().Async() {
		t.Error("defer during drag must not suspend the session")
	}
}

func TestDeferredStartHoldsUpdates(t *testing.T) {
	c, item, _ := newTranslateFixture(t, nil)
	var held *Session
	c.OnDragStart(func(s *Session) {
		s.Defer()
		held = s
	})
	c.PointerDown(at(10, 10))
	c.PointerMove(at(30, 10))
	c.PointerMove(at(50, 10))
	c.PointerMove(at(70, 10))
	if item.X != 0 {
		t.Fatalf("updates must wait for the start verdict, item.X = %v", item.X)
	}
	held.Finalize(true)
	if item.X != 60 {
		t.Errorf("latest cached move should apply, item.X = %v", item.X)
	}
}

func TestDeferredStartRejected(t *testing.T) {
	c, item, _ := newTranslateFixture(t, nil)
	var r recorder
	r.attach(c)
	var verdict chan<- bool
	c.OnDragStart(func(s *Session) { verdict = s.Defer() })
	c.PointerDown(at(10, 10))
	c.PointerMove(at(30, 10))
	verdict <- false
	c.Update(1.0 / 60)
	if c.Busy() || item.X != 0 {
		t.Error("rejected start should abort")
	}
	if got := r.compact(); got != "start,abort,abortFinalized,reset" {
		t.Errorf("events = %s", got)
	}
}

func TestPointerUpDuringPendingStartAborts(t *testing.T) {
	c, _, _ := newTranslateFixture(t, nil)
	var r recorder
	r.attach(c)
	c.OnDragStart(func(s *Session) { s.Defer() })
	c.PointerDown(at(10, 10))
	c.PointerMove(at(30, 10))
	c.PointerUp(at(30, 10))
	if got := r.compact(); got != "start,abort,abortFinalized,reset" {
		t.Errorf("events = %s", got)
	}
}

func TestDestroyShortCircuits(t *testing.T) {
	c, item, _ := newTranslateFixture(t, func(o *Options) { o.AbortAnimation = time.Second })
	var r recorder
	r.attach(c)
	c.PointerDown(at(10, 10))
	c.PointerMove(at(110, 60))
	c.KeyDown(KeyEscape)
	c.Update(0.1)
	c.Destroy()
	if c.Busy() || item.X != 0 || item.Y != 0 {
		t.Errorf("destroy should land the restore, item at (%v,%v)", item.X, item.Y)
	}
	if item.Flags != 0 {
		t.Errorf("flags left behind: %b", item.Flags)
	}
	c.PointerDown(at(10, 10))
	if c.Busy() {
		t.Error("destroyed controller must ignore input")
	}
	if got := r.compact(); got != "start,drag,abort,abortFinalized,reset" {
		t.Errorf("events = %s", got)
	}
}

func TestReentrantMoveFromHandler(t *testing.T) {
	c, item, _ := newTranslateFixture(t, nil)
	var depth, maxDepth int
	c.OnDrag(func(s *Session) {
		depth++
		if depth > maxDepth {
			maxDepth = depth
		}
		if s.Current.X == 30 {
			c.PointerMove(at(80, 10))
		}
		depth--
	})
	c.PointerDown(at(10, 10))
	c.PointerMove(at(30, 10))
	if maxDepth != 1 {
		t.Errorf("updates nested to depth %d", maxDepth)
	}
	if item.X != 70 {
		t.Errorf("move requested mid-update should be flushed, item.X = %v", item.X)
	}
}

func TestSessionIDsUnique(t *testing.T) {
	c, _, _ := newTranslateFixture(t, nil)
	c.PointerDown(at(10, 10))
	first := c.Session().ID
	c.PointerUp(at(10, 10))
	c.PointerDown(at(10, 10))
	if c.Session().ID == first {
		t.Error("sessions should get fresh identifiers")
	}
}
