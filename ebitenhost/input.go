package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/dragkit"
)

const (
	mousePointer = 0
	touchPointer = 1
)

// pointerSample is the polled state of the tracked pointer for one frame.
type pointerSample struct {
	x, y    float64
	pressed bool
	touch   bool
	button  dragkit.MouseButton
	mods    dragkit.KeyModifiers
}

// Input polls ebiten devices once per frame and turns level state into the
// controller's edge events: press, move, release, escape and focus loss.
// Only the mouse and the first active touch are tracked.
type Input struct {
	ctrl *dragkit.Controller

	down     bool
	last     dragkit.PointerEvent
	touchID  ebiten.TouchID
	touching bool
	focused  bool
	touchBuf []ebiten.TouchID
}

// NewInput creates an input poller feeding ctrl.
func NewInput(ctrl *dragkit.Controller) *Input {
	return &Input{ctrl: ctrl, focused: true}
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() dragkit.KeyModifiers {
	var mods dragkit.KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= dragkit.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= dragkit.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= dragkit.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= dragkit.ModMeta
	}
	return mods
}

// Poll reads device state and dispatches the resulting events.
func (in *Input) Poll() {
	in.feedFocus(ebiten.IsFocused())
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		in.ctrl.KeyDown(dragkit.KeyEscape)
	}
	mods := readModifiers()

	in.touchBuf = ebiten.AppendTouchIDs(in.touchBuf[:0])
	if s, ok := in.pollTouch(mods); ok {
		in.feed(s)
		return
	}
	in.feed(pollMouse(mods))
}

// pollTouch follows the first touch until it ends. It reports false when
// no touch is tracked, so the mouse is polled instead.
func (in *Input) pollTouch(mods dragkit.KeyModifiers) (pointerSample, bool) {
	if in.touching {
		for _, id := range in.touchBuf {
			if id == in.touchID {
				tx, ty := ebiten.TouchPosition(id)
				return pointerSample{x: float64(tx), y: float64(ty), pressed: true, touch: true, mods: mods}, true
			}
		}
		// Released: report the last known position.
		in.touching = false
		return pointerSample{x: in.last.X, y: in.last.Y, touch: true, mods: mods}, true
	}
	if len(in.touchBuf) == 0 || in.down {
		return pointerSample{}, false
	}
	in.touching = true
	in.touchID = in.touchBuf[0]
	tx, ty := ebiten.TouchPosition(in.touchID)
	return pointerSample{x: float64(tx), y: float64(ty), pressed: true, touch: true, mods: mods}, true
}

func pollMouse(mods dragkit.KeyModifiers) pointerSample {
	mx, my := ebiten.CursorPosition()
	s := pointerSample{x: float64(mx), y: float64(my), mods: mods}
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		s.pressed, s.button = true, dragkit.MouseButtonLeft
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		s.pressed, s.button = true, dragkit.MouseButtonRight
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		s.pressed, s.button = true, dragkit.MouseButtonMiddle
	}
	return s
}

// feed runs the pointer edge detector for one sample. The button is latched
// at press time so it cannot change mid-interaction.
func (in *Input) feed(s pointerSample) {
	ev := dragkit.PointerEvent{
		X:         s.x,
		Y:         s.y,
		Button:    s.button,
		Touch:     s.touch,
		PointerID: mousePointer,
		Modifiers: s.mods,
	}
	if s.touch {
		ev.PointerID = touchPointer
	}
	switch {
	case s.pressed && !in.down:
		in.down = true
		in.last = ev
		in.ctrl.PointerDown(ev)
	case s.pressed && in.down:
		if ev.X == in.last.X && ev.Y == in.last.Y {
			return
		}
		ev.Button = in.last.Button
		in.last = ev
		in.ctrl.PointerMove(ev)
	case !s.pressed && in.down:
		in.down = false
		ev.Button = in.last.Button
		in.ctrl.PointerUp(ev)
	}
}

// feedFocus cancels the session when the window loses focus.
func (in *Input) feedFocus(focused bool) {
	if in.focused && !focused {
		in.ctrl.Blur()
	}
	in.focused = focused
}
