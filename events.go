package aster

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// MouseButtons is a bitmask of currently pressed mouse buttons.
type MouseButtons uint8

const (
	ButtonMaskLeft   MouseButtons = 1 << iota // left button held
	ButtonMaskRight                           // right button held
	ButtonMaskMiddle                          // middle button held
)

// Has reports whether button b is pressed in the mask.
func (m MouseButtons) Has(b MouseButton) bool {
	return m&(1<<b) != 0
}

// KeyModifiers is a bitmask of keyboard modifier keys. Values combine with
// bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Events is the shared event sink consumed by root scenes and camera
// controllers. It is shared by reference across an entire scene subtree
// unless a child is created with its own sink; mutations are therefore
// visible to every scene in the subtree immediately.
//
// Backends write into the sink; scene-graph code only reads or subscribes.
type Events struct {
	// WindowArea is the current window rectangle in device pixels.
	// Root scenes derive their pixel area from it.
	WindowArea *Observable[Rect]
	// WindowOpen signals window liveness; IsOpen on a scene reads it.
	WindowOpen *Observable[bool]

	MousePosition *Observable[Vec2]
	MouseDown     *Observable[MouseButtons]
	Scroll        *Observable[Vec2]
	Modifiers     *Observable[KeyModifiers]

	// Tick carries the frame delta time in seconds. Driven by the backend
	// once per frame; controllers use it to advance animations.
	Tick *Observable[float32]
}

// NewEvents creates an event sink with zero-valued state.
func NewEvents() *Events {
	return &Events{
		WindowArea:    NewObservable(Rect{}),
		WindowOpen:    NewObservable(false),
		MousePosition: NewObservable(Vec2{}),
		MouseDown:     NewObservable(MouseButtons(0)),
		Scroll:        NewObservable(Vec2{}).AlwaysNotify(),
		Modifiers:     NewObservable(KeyModifiers(0)),
		Tick:          NewObservable(float32(0)).AlwaysNotify(),
	}
}

// --- Synthetic event injection ---
//
// These helpers feed the sink without a real window, so interaction logic
// (camera controllers, resize propagation) can be driven from tests or
// scripted playback exactly like real input.

// InjectResize sets the window area to the given rectangle.
func (e *Events) InjectResize(area Rect) {
	e.WindowArea.Set(area)
}

// InjectMouseMove moves the pointer to (x, y) in window coordinates.
func (e *Events) InjectMouseMove(x, y float32) {
	e.MousePosition.Set(Vec2{x, y})
}

// InjectPress presses the given mouse button.
func (e *Events) InjectPress(b MouseButton) {
	e.MouseDown.Set(e.MouseDown.Get() | 1<<b)
}

// InjectRelease releases the given mouse button.
func (e *Events) InjectRelease(b MouseButton) {
	e.MouseDown.Set(e.MouseDown.Get() &^ (1 << b))
}

// InjectScroll emits a scroll delta.
func (e *Events) InjectScroll(dx, dy float32) {
	e.Scroll.Set(Vec2{dx, dy})
}

// InjectTick advances one frame of dt seconds.
func (e *Events) InjectTick(dt float32) {
	e.Tick.Set(dt)
}

// WindowEventKind identifies the field of Events that changed, for
// consumers that bridge the sink onto an external event bus (see the ecs
// submodule).
type WindowEventKind uint8

const (
	WindowEventArea   WindowEventKind = iota // window resized or moved
	WindowEventOpen                          // window opened or closed
	WindowEventMouse                         // pointer moved
	WindowEventButton                        // button state changed
	WindowEventScroll                        // scroll wheel moved
)

// WindowEvent is a flattened snapshot of one sink change.
type WindowEvent struct {
	Kind    WindowEventKind
	Area    Rect
	Open    bool
	Mouse   Vec2
	Buttons MouseButtons
	Scroll  Vec2
}

// OnWindowEvent subscribes fn to every sink change, delivering flattened
// WindowEvent values. Handles are recorded in owner when non-nil.
func (e *Events) OnWindowEvent(owner *HandleSet, fn func(WindowEvent)) {
	e.WindowArea.On(owner, func(r Rect) {
		fn(WindowEvent{Kind: WindowEventArea, Area: r})
	})
	e.WindowOpen.On(owner, func(open bool) {
		fn(WindowEvent{Kind: WindowEventOpen, Open: open})
	})
	e.MousePosition.On(owner, func(p Vec2) {
		fn(WindowEvent{Kind: WindowEventMouse, Mouse: p})
	})
	e.MouseDown.On(owner, func(b MouseButtons) {
		fn(WindowEvent{Kind: WindowEventButton, Buttons: b})
	})
	e.Scroll.On(owner, func(s Vec2) {
		fn(WindowEvent{Kind: WindowEventScroll, Scroll: s})
	})
}
