package ebitenhost

import (
	"testing"

	"github.com/phanxgames/dragkit"
)

func newHostController(t *testing.T) (*dragkit.Controller, *dragkit.Node) {
	t.Helper()
	root := dragkit.NewNode("root", 400, 400)
	item := dragkit.NewNode("item", 50, 50)
	root.AddChild(item)
	return dragkit.NewController(root, dragkit.NewTranslateStrategy(), dragkit.DefaultOptions()), item
}

func TestFeedPressMoveRelease(t *testing.T) {
	ctrl, item := newHostController(t)
	in := NewInput(ctrl)

	var events []string
	ctrl.OnDragStart(func(*dragkit.Session) { events = append(events, "start") })
	ctrl.OnDrop(func(*dragkit.Session) { events = append(events, "drop") })

	in.feed(pointerSample{x: 10, y: 10, pressed: true})
	if ctrl.Session() == nil || ctrl.Session().State != dragkit.StateGrabbed {
		t.Fatal("press should grab the item")
	}
	// Same position: no move dispatched.
	in.feed(pointerSample{x: 10, y: 10, pressed: true})
	in.feed(pointerSample{x: 40, y: 10, pressed: true})
	in.feed(pointerSample{x: 40, y: 10})

	if len(events) != 2 || events[0] != "start" || events[1] != "drop" {
		t.Fatalf("events = %v", events)
	}
	if item.X != 30 || item.Y != 0 {
		t.Errorf("item at (%v,%v), want (30,0)", item.X, item.Y)
	}
	if ctrl.Busy() {
		t.Error("controller should be idle after release")
	}
}

func TestFeedLatchesButton(t *testing.T) {
	ctrl, _ := newHostController(t)
	in := NewInput(ctrl)

	var buttons []dragkit.MouseButton
	ctrl.OnDrag(func(s *dragkit.Session) { buttons = append(buttons, in.last.Button) })

	in.feed(pointerSample{x: 10, y: 10, pressed: true, button: dragkit.MouseButtonRight})
	in.feed(pointerSample{x: 30, y: 10, pressed: true, button: dragkit.MouseButtonLeft})
	for _, b := range buttons {
		if b != dragkit.MouseButtonRight {
			t.Errorf("button changed mid-interaction: %v", b)
		}
	}
}

func TestFeedTouchUsesTouchPointer(t *testing.T) {
	ctrl, _ := newHostController(t)
	in := NewInput(ctrl)

	in.feed(pointerSample{x: 10, y: 10, pressed: true, touch: true})
	s := ctrl.Session()
	if s == nil || !s.Touch {
		t.Fatal("expected a touch session")
	}
	// A mouse release does not end a touch session.
	ctrl.PointerUp(dragkit.PointerEvent{X: 10, Y: 10, PointerID: mousePointer})
	if ctrl.Session() != s {
		t.Error("mouse release should not end the touch session")
	}
	in.feed(pointerSample{x: 10, y: 10, touch: true})
	if ctrl.Busy() {
		t.Error("touch release should end the session")
	}
}

func TestFeedFocusLossCancels(t *testing.T) {
	ctrl, item := newHostController(t)
	in := NewInput(ctrl)

	var aborted bool
	ctrl.OnAbort(func(*dragkit.Session) { aborted = true })

	in.feed(pointerSample{x: 10, y: 10, pressed: true})
	in.feed(pointerSample{x: 60, y: 60, pressed: true})
	in.feedFocus(false)
	if !aborted {
		t.Fatal("focus loss should abort the session")
	}
	// Finish the restore animation.
	for i := 0; i < 60 && ctrl.Busy(); i++ {
		ctrl.Update(1.0 / 60)
	}
	if item.X != 0 || item.Y != 0 {
		t.Errorf("item at (%v,%v), want restored to (0,0)", item.X, item.Y)
	}
	// Staying unfocused does not cancel again.
	in.feedFocus(false)
	in.feedFocus(true)
}
