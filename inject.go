package dragkit

type injectKind uint8

const (
	injectPress injectKind = iota
	injectMove
	injectRelease
	injectKey
	injectBlur
)

// syntheticInput is a single queued input event in surface coordinates.
type syntheticInput struct {
	kind injectKind
	ev   PointerEvent
	key  Key
}

// Injector queues synthetic input and feeds it to a Controller one event
// per frame, exactly as a host would feed polled device input. Hosts skip
// real pointer input on frames where Step consumed an event.
type Injector struct {
	ctrl  *Controller
	queue []syntheticInput

	// Touch marks injected pointer events as touch input.
	Touch bool
}

// NewInjector creates an injector feeding c.
func NewInjector(c *Controller) *Injector {
	return &Injector{ctrl: c}
}

func (in *Injector) pointer(kind injectKind, x, y float64) {
	in.queue = append(in.queue, syntheticInput{
		kind: kind,
		ev:   PointerEvent{X: x, Y: y, Button: MouseButtonLeft, Touch: in.Touch},
	})
}

// Press queues a pointer press at (x, y).
func (in *Injector) Press(x, y float64) { in.pointer(injectPress, x, y) }

// Move queues a pointer move to (x, y) with the pointer held down.
func (in *Injector) Move(x, y float64) { in.pointer(injectMove, x, y) }

// Release queues a pointer release at (x, y).
func (in *Injector) Release(x, y float64) { in.pointer(injectRelease, x, y) }

// Key queues a key press.
func (in *Injector) Key(k Key) {
	in.queue = append(in.queue, syntheticInput{kind: injectKey, key: k})
}

// Blur queues a focus loss.
func (in *Injector) Blur() {
	in.queue = append(in.queue, syntheticInput{kind: injectBlur})
}

// Drag queues a full drag: press at from, frames-2 linearly interpolated
// moves, and release at to. The sequence consumes frames frames, at least 2.
func (in *Injector) Drag(from, to Vec2, frames int) {
	if frames < 2 {
		frames = 2
	}
	in.Press(from.X, from.Y)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		in.Move(from.X+(to.X-from.X)*t, from.Y+(to.Y-from.Y)*t)
	}
	in.Release(to.X, to.Y)
}

// Pending returns the number of queued events.
func (in *Injector) Pending() int { return len(in.queue) }

// Step pops one event and dispatches it. It reports whether an event was
// consumed.
func (in *Injector) Step() bool {
	if len(in.queue) == 0 {
		return false
	}
	e := in.queue[0]
	copy(in.queue, in.queue[1:])
	in.queue = in.queue[:len(in.queue)-1]

	switch e.kind {
	case injectPress:
		in.ctrl.PointerDown(e.ev)
	case injectMove:
		in.ctrl.PointerMove(e.ev)
	case injectRelease:
		in.ctrl.PointerUp(e.ev)
	case injectKey:
		in.ctrl.KeyDown(e.key)
	case injectBlur:
		in.ctrl.Blur()
	}
	return true
}
