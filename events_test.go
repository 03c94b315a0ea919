package aster

import "testing"

func TestInjectPressRelease(t *testing.T) {
	ev := NewEvents()

	ev.InjectPress(MouseButtonLeft)
	ev.InjectPress(MouseButtonRight)
	buttons := ev.MouseDown.Get()
	if !buttons.Has(MouseButtonLeft) || !buttons.Has(MouseButtonRight) {
		t.Errorf("buttons = %b, want left and right held", buttons)
	}
	if buttons.Has(MouseButtonMiddle) {
		t.Error("middle reported held")
	}

	ev.InjectRelease(MouseButtonLeft)
	buttons = ev.MouseDown.Get()
	if buttons.Has(MouseButtonLeft) {
		t.Error("left still held after release")
	}
	if !buttons.Has(MouseButtonRight) {
		t.Error("release of left also released right")
	}
}

func TestScrollAlwaysNotifies(t *testing.T) {
	ev := NewEvents()
	calls := 0
	ev.Scroll.On(nil, func(Vec2) { calls++ })

	// Identical consecutive deltas are distinct scroll events.
	ev.InjectScroll(0, 1)
	ev.InjectScroll(0, 1)
	if calls != 2 {
		t.Errorf("scroll notified %d times, want 2", calls)
	}
}

func TestTickAlwaysNotifies(t *testing.T) {
	ev := NewEvents()
	calls := 0
	ev.Tick.On(nil, func(float32) { calls++ })

	ev.InjectTick(0.016)
	ev.InjectTick(0.016)
	if calls != 2 {
		t.Errorf("tick notified %d times, want 2", calls)
	}
}

func TestMouseMoveFiltersDuplicates(t *testing.T) {
	ev := NewEvents()
	calls := 0
	ev.MousePosition.On(nil, func(Vec2) { calls++ })

	ev.InjectMouseMove(10, 10)
	ev.InjectMouseMove(10, 10)
	if calls != 1 {
		t.Errorf("mouse move notified %d times, want 1", calls)
	}
}

func TestOnWindowEventKinds(t *testing.T) {
	ev := NewEvents()
	var got []WindowEvent
	ev.OnWindowEvent(nil, func(e WindowEvent) { got = append(got, e) })

	ev.InjectResize(Rect{0, 0, 640, 480})
	ev.WindowOpen.Set(true)
	ev.InjectMouseMove(3, 4)
	ev.InjectPress(MouseButtonLeft)
	ev.InjectScroll(0, -1)

	wantKinds := []WindowEventKind{
		WindowEventArea, WindowEventOpen, WindowEventMouse,
		WindowEventButton, WindowEventScroll,
	}
	if len(got) != len(wantKinds) {
		t.Fatalf("received %d events, want %d", len(got), len(wantKinds))
	}
	for i, e := range got {
		if e.Kind != wantKinds[i] {
			t.Errorf("event %d kind = %v, want %v", i, e.Kind, wantKinds[i])
		}
	}
	if got[0].Area != (Rect{0, 0, 640, 480}) {
		t.Errorf("area event payload = %v", got[0].Area)
	}
	if !got[1].Open {
		t.Error("open event payload = false")
	}
	if got[2].Mouse != (Vec2{3, 4}) {
		t.Errorf("mouse event payload = %v", got[2].Mouse)
	}
	if !got[3].Buttons.Has(MouseButtonLeft) {
		t.Error("button event payload missing left")
	}
	if got[4].Scroll != (Vec2{0, -1}) {
		t.Errorf("scroll event payload = %v", got[4].Scroll)
	}
}

func TestOnWindowEventRelease(t *testing.T) {
	ev := NewEvents()
	owner := &HandleSet{}
	calls := 0
	ev.OnWindowEvent(owner, func(WindowEvent) { calls++ })

	owner.ReleaseAll()
	ev.InjectResize(Rect{0, 0, 1, 1})
	ev.InjectScroll(1, 0)
	if calls != 0 {
		t.Errorf("released subscriber still received %d events", calls)
	}
}
