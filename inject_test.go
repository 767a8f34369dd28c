package dragkit

import "testing"

func TestInjectDrag(t *testing.T) {
	c, item, _ := newTranslateFixture(t, nil)
	var r recorder
	r.attach(c)
	in := NewInjector(c)

	// Drag from (10,10) to (110,50) over 6 frames:
	// frame 0: press, frames 1-4: interpolated moves, frame 5: release.
	in.Drag(Vec2{10, 10}, Vec2{110, 50}, 6)
	if in.Pending() != 6 {
		t.Fatalf("expected 6 queued events, got %d", in.Pending())
	}
	if !in.Step() {
		t.Fatal("press should be consumed")
	}
	if c.Session() == nil || c.Session().State != StateGrabbed {
		t.Fatal("press frame should grab")
	}
	for in.Step() {
	}
	if got := r.compact(); got != "start,drag,drop,dropFinalized,reset" {
		t.Errorf("events = %s", got)
	}
	if item.X != 100 || item.Y != 40 {
		t.Errorf("item at (%v,%v), want (100,40)", item.X, item.Y)
	}
}

func TestInjectMinimumFrames(t *testing.T) {
	c, _, _ := newTranslateFixture(t, nil)
	in := NewInjector(c)
	in.Drag(Vec2{10, 10}, Vec2{50, 50}, 0)
	if in.Pending() != 2 {
		t.Errorf("expected press and release only, got %d", in.Pending())
	}
}

func TestInjectKeyAndBlur(t *testing.T) {
	c, _, _ := newTranslateFixture(t, nil)
	var aborts int
	c.OnAbort(func(*Session) { aborts++ })
	in := NewInjector(c)

	in.Press(10, 10)
	in.Move(60, 10)
	in.Key(KeyEscape)
	in.Press(10, 10)
	in.Move(60, 10)
	in.Blur()
	for in.Step() {
	}
	if aborts != 2 {
		t.Errorf("aborts = %d, want 2", aborts)
	}
}

func TestInjectTouch(t *testing.T) {
	c, _, _ := newTranslateFixture(t, nil)
	in := NewInjector(c)
	in.Touch = true
	in.Press(10, 10)
	in.Step()
	if s := c.Session(); s == nil || !s.Touch {
		t.Error("injected touch should produce a touch session")
	}
}
