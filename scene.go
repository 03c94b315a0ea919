package aster

import "errors"

// ClearPolicy selects how the scene's clear flag is derived when no
// explicit observable is supplied.
type ClearPolicy uint8

const (
	// ClearAuto uses the theme's explicit clear attribute when present,
	// otherwise derives the flag live from the background color: clear
	// iff the background is fully opaque.
	ClearAuto ClearPolicy = iota
	ClearAlways
	ClearNever
)

// LightMode selects between theme-derived default lights and an explicit
// light list.
type LightMode uint8

const (
	// LightsAuto derives a point light (placed per the theme's
	// lightposition attribute) plus an ambient light from the theme.
	LightsAuto LightMode = iota
	// LightsExplicit uses SceneConfig.Lights as given, possibly empty.
	LightsExplicit
)

// SSAO holds screen-space ambient-occlusion tuning, each parameter
// independently observable.
type SSAO struct {
	Radius *Observable[float32]
	Bias   *Observable[float32]
	Blur   *Observable[float32]
}

// SceneConfig carries the optional inputs to scene construction. The zero
// value requests defaults everywhere: theme-derived pixel area, background,
// clear flag, lights, a fresh camera, and no-op controls.
type SceneConfig struct {
	// PixelArea, when non-nil, is used instead of creating one. Root
	// scenes without it derive theirs from the theme resolution and bind
	// it to the event sink's window area; children derive theirs from
	// the parent's area through AreaMap.
	PixelArea *Observable[Rect]
	// AreaMap maps the parent's pixel area into the child's. Identity
	// when nil. Only consulted by NewChild when PixelArea is nil.
	AreaMap func(Rect) Rect

	// Events, when non-nil, overrides the inherited/shared event sink
	// for this scene and its future children.
	Events *Events

	// Clear selects the clear-flag policy; ClearFlag, when non-nil,
	// supplies the observable directly and wins over Clear.
	Clear     ClearPolicy
	ClearFlag *Observable[bool]

	// Camera supplies an existing camera; CameraFunc builds one from the
	// partially constructed scene. When both are nil a child shares its
	// parent's camera and a root gets a fresh one.
	Camera     *Camera
	CameraFunc func(*Scene) *Camera
	// Controls supplies the camera controller. A child requesting a
	// camera different from its parent's has its controls forced to
	// EmptyCamera regardless of this field.
	Controls CameraController

	// TransformFunc seeds the transformation's pointwise data transform.
	TransformFunc PointTransform

	// Visible overrides the theme's visibility default.
	Visible *bool

	// SSAO overrides; nil fields fall back to the theme's ssao group.
	SSAORadius *float32
	SSAOBias   *float32
	SSAOBlur   *float32

	Lights    []Light
	LightMode LightMode

	// Theme is deep-merged over the inherited (or default) theme: nested
	// groups merge, leaves overwrite.
	Theme *Theme

	// Plots are attached after construction; Screens are registered
	// before plots attach so insertion hooks fan out to them.
	Plots   []*Plot
	Screens []Screen
}

// Scene is the hierarchical container at the center of the graph: it owns
// plots, child scenes, a camera, lighting, a transformation, and display
// state, and holds non-owning references to its parent and to attached
// backends. All mutation happens on a single logical owner thread;
// observable notification is synchronous.
type Scene struct {
	Camera         *Camera
	Transformation *Transformation

	PixelArea       *Observable[Rect]
	ClearFlag       *Observable[bool]
	BackgroundColor *Observable[Color]
	Visible         *Observable[bool]
	SSAO            SSAO

	parent   *Scene
	children []*Scene
	plots    []*Plot
	lights   []Light
	theme    *Theme
	screens  []Screen
	controls CameraController
	events   *Events

	// handles records every listener registered on behalf of this scene,
	// released en masse at teardown.
	handles HandleSet

	// ownsCamera and ownsControls distinguish resources created by (or
	// given to) this scene from ones shared with the parent, so teardown
	// never severs a sibling's or parent's subscriptions.
	ownsCamera   bool
	ownsControls bool
}

// NewScene constructs a root scene from the given configuration merged
// with theme defaults. Construction fails on configuration errors such as
// an invalid lightposition theme value.
func NewScene(cfg SceneConfig) (*Scene, error) {
	return newScene(nil, cfg)
}

// NewChild constructs a scene parented to s: the pixel area derives from
// s's area unless supplied, the theme is inherited as a snapshot, the
// transformation composes with s's model matrix, and the event sink is
// shared by reference. On success the child is appended to s's children
// and its parent back-reference is set, with no observer able to see one
// without the other.
func (s *Scene) NewChild(cfg SceneConfig) (*Scene, error) {
	return newScene(s, cfg)
}

func newScene(parent *Scene, cfg SceneConfig) (*Scene, error) {
	sc := &Scene{}

	// Event sink: shared by reference down the tree unless overridden.
	switch {
	case cfg.Events != nil:
		sc.events = cfg.Events
	case parent != nil:
		sc.events = parent.events
	default:
		sc.events = NewEvents()
	}

	// Theme: snapshot of the parent's (or the defaults), then overrides.
	if parent != nil {
		sc.theme = parent.theme.Copy()
	} else {
		sc.theme = DefaultTheme()
	}
	sc.theme.Merge(cfg.Theme)

	// Pixel area.
	switch {
	case cfg.PixelArea != nil:
		sc.PixelArea = cfg.PixelArea
	case parent != nil:
		mapArea := cfg.AreaMap
		if mapArea == nil {
			mapArea = func(r Rect) Rect { return r }
		}
		sc.PixelArea = Map(&sc.handles, parent.PixelArea, mapArea)
	default:
		res := sc.theme.Vec2(themeResolution, Vec2{800, 600})
		sc.PixelArea = NewObservable(Rect{0, 0, res.X, res.Y})
		// Maximum priority: the pixel area must update before any user
		// listener observes the resize. Degenerate areas (a minimized
		// window) do not write through.
		area := sc.PixelArea
		sc.events.WindowArea.OnPriority(&sc.handles, PriorityMax, false, func(r Rect) {
			if r.Empty() {
				return
			}
			area.Set(r)
		})
	}

	sc.BackgroundColor = NewObservable(sc.theme.Color(themeBackgroundColor, ColorWhite))

	// Clear flag.
	switch {
	case cfg.ClearFlag != nil:
		sc.ClearFlag = cfg.ClearFlag
	case cfg.Clear == ClearAlways:
		sc.ClearFlag = NewObservable(true)
	case cfg.Clear == ClearNever:
		sc.ClearFlag = NewObservable(false)
	default:
		if v, ok := sc.theme.Get(themeClear); ok {
			if b, isBool := v.(bool); isBool {
				sc.ClearFlag = NewObservable(b)
				break
			}
		}
		sc.ClearFlag = Map(&sc.handles, sc.BackgroundColor, func(c Color) bool {
			return c.Opaque()
		})
	}

	visible := sc.theme.Bool(themeVisible, true)
	if cfg.Visible != nil {
		visible = *cfg.Visible
	}
	sc.Visible = NewObservable(visible)

	// SSAO parameters: explicit overrides, then the theme's ssao group.
	ssao := sc.theme.Group(themeSSAO)
	if ssao == nil {
		ssao = NewTheme()
	}
	sc.SSAO = SSAO{
		Radius: NewObservable(ssao.Float(themeSSAORadius, 0.5)),
		Bias:   NewObservable(ssao.Float(themeSSAOBias, 0.025)),
		Blur:   NewObservable(ssao.Float(themeSSAOBlur, 2)),
	}
	if cfg.SSAORadius != nil {
		sc.SSAO.Radius.Set(*cfg.SSAORadius)
	}
	if cfg.SSAOBias != nil {
		sc.SSAO.Bias.Set(*cfg.SSAOBias)
	}
	if cfg.SSAOBlur != nil {
		sc.SSAO.Blur.Set(*cfg.SSAOBlur)
	}

	// Transformation: children compose with the parent's model matrix.
	if parent != nil {
		sc.Transformation = NewTransformation(parent.Transformation.Model)
	} else {
		sc.Transformation = NewTransformation(nil)
	}
	if cfg.TransformFunc != nil {
		sc.Transformation.TransformFunc.Set(cfg.TransformFunc)
	}

	// Camera.
	switch {
	case cfg.Camera != nil:
		sc.Camera = cfg.Camera
		sc.ownsCamera = parent == nil || cfg.Camera != parent.Camera
	case cfg.CameraFunc != nil:
		sc.Camera = cfg.CameraFunc(sc)
		sc.ownsCamera = true
	case parent != nil:
		sc.Camera = parent.Camera
	default:
		sc.Camera = NewCamera(sc.PixelArea)
		sc.ownsCamera = true
	}

	// Controls. A child whose camera diverges from its parent's gets the
	// no-op variant regardless of the requested controller; controls are
	// replaced, never mutated into a different variant.
	switch {
	case parent != nil && sc.Camera != parent.Camera:
		if cfg.Controls != nil {
			if _, isEmpty := cfg.Controls.(EmptyCamera); !isEmpty {
				warnf("camera controls %q ignored: child camera differs from parent's", cfg.Controls.Name())
			}
		}
		sc.controls = EmptyCamera{}
		sc.ownsControls = true
	case cfg.Controls != nil:
		sc.controls = cfg.Controls
		sc.ownsControls = true
		sc.controls.Connect(sc)
	case parent != nil:
		sc.controls = parent.controls
	default:
		sc.controls = EmptyCamera{}
		sc.ownsControls = true
	}

	// Lights.
	switch cfg.LightMode {
	case LightsExplicit:
		sc.lights = append(sc.lights, cfg.Lights...)
	default:
		lights, err := lightsFromTheme(sc.theme, sc.Camera, &sc.handles)
		if err != nil {
			// Undo every subscription made so far: a caller-supplied
			// pixel area or event sink must not keep driving the
			// discarded scene. The camera link lives in the camera's
			// handle set and a connected controller's in its own, so
			// releasing sc.handles alone is not enough.
			if sc.ownsCamera {
				sc.Camera.Disconnect()
			}
			if sc.ownsControls {
				sc.controls.Disconnect()
			}
			sc.handles.ReleaseAll()
			return nil, err
		}
		sc.lights = lights
	}

	sc.screens = append(sc.screens, cfg.Screens...)

	// Child hookup: the append and the back-reference are adjacent with
	// no listener invocation in between, so no reader observes one
	// without the other.
	if parent != nil {
		parent.children = append(parent.children, sc)
		sc.parent = parent
	}

	for _, p := range cfg.Plots {
		sc.Attach(p)
	}
	return sc, nil
}

// Parent returns the parent scene, or nil for a root.
func (s *Scene) Parent() *Scene { return s.parent }

// IsRoot reports whether the scene has no parent.
func (s *Scene) IsRoot() bool { return s.parent == nil }

// RootScene returns the root of the tree containing s.
func (s *Scene) RootScene() *Scene {
	r := s
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Children returns the child list. The returned slice must not be mutated.
func (s *Scene) Children() []*Scene { return s.children }

// Plots returns the attached plot list. The returned slice must not be
// mutated.
func (s *Scene) Plots() []*Plot { return s.plots }

// Lights returns the light list in insertion order. The returned slice
// must not be mutated.
func (s *Scene) Lights() []Light { return s.lights }

// AddLight appends a light.
func (s *Scene) AddLight(l Light) {
	s.lights = append(s.lights, l)
}

// Theme returns the scene's attribute store.
func (s *Scene) Theme() *Theme { return s.theme }

// Events returns the scene's event sink.
func (s *Scene) Events() *Events { return s.events }

// Controls returns the current camera controller.
func (s *Scene) Controls() CameraController { return s.controls }

// SetControls replaces the camera controller wholesale: the old controller
// (if owned by this scene) is disconnected, the new one is connected.
func (s *Scene) SetControls(c CameraController) {
	if s.controls != nil && s.ownsControls {
		s.controls.Disconnect()
	}
	if c == nil {
		c = EmptyCamera{}
	}
	s.controls = c
	s.ownsControls = true
	c.Connect(s)
}

// Screens returns the attached backends. The returned slice must not be
// mutated.
func (s *Scene) Screens() []Screen { return s.screens }

// Handles returns the scene's deregistration list. Listeners registered
// through it are released en masse at teardown.
func (s *Scene) Handles() *HandleSet { return &s.handles }

// IsOpen reports window liveness via the shared event sink.
func (s *Scene) IsOpen() bool {
	return s.events.WindowOpen.Get()
}

// AttachScreen registers a backend so subsequent plot attach/detach calls
// fan out to it. No-op if already attached.
func (s *Scene) AttachScreen(scr Screen) {
	for _, existing := range s.screens {
		if existing == scr {
			return
		}
	}
	s.screens = append(s.screens, scr)
}

// DetachScreen removes a backend from the fan-out list without invoking
// any hook on it.
func (s *Scene) DetachScreen(scr Screen) {
	for i, existing := range s.screens {
		if existing == scr {
			copy(s.screens[i:], s.screens[i+1:])
			s.screens[len(s.screens)-1] = nil
			s.screens = s.screens[:len(s.screens)-1]
			return
		}
	}
}

// Push makes child follow this scene's camera: the child's own camera
// wiring is disconnected, one-way links mirror every parent camera field
// into the child's, and the child's controls are replaced by the link set
// so a later disconnect is a single operation. The child is reparented to
// this scene.
func (s *Scene) Push(child *Scene) {
	child.Camera.Disconnect()

	links := &cameraLinks{}
	Link(&links.handles, s.Camera.View, child.Camera.View)
	Link(&links.handles, s.Camera.Projection, child.Camera.Projection)
	Link(&links.handles, s.Camera.ProjectionView, child.Camera.ProjectionView)
	Link(&links.handles, s.Camera.Resolution, child.Camera.Resolution)
	Link(&links.handles, s.Camera.EyePosition, child.Camera.EyePosition)

	if child.controls != nil && child.ownsControls {
		child.controls.Disconnect()
	}
	child.controls = links
	child.ownsControls = true

	if child.parent != s {
		if child.parent != nil {
			child.parent.removeChild(child)
		}
		s.children = append(s.children, child)
		child.parent = s
	}
}

// removeChild removes child from s.children without touching child.parent.
func (s *Scene) removeChild(child *Scene) {
	for i, c := range s.children {
		if c == child {
			copy(s.children[i:], s.children[i+1:])
			s.children[len(s.children)-1] = nil
			s.children = s.children[:len(s.children)-1]
			return
		}
	}
}

// Teardown destroys the scene: children first (recursively), then plots
// (detached and freed), then backend-side scene state, then every local
// observable link and listener. Teardown does not return until every
// backend's removal hook has been invoked, so callers may discard or reuse
// resources immediately after it returns. Idempotent: a second call
// operates on already-empty collections.
//
// After teardown the scene is an empty, parent-less, listener-less husk;
// it is not a valid operational scene unless re-initialized.
func (s *Scene) Teardown() {
	// Snapshot copies: teardown mutates the live lists.
	children := append([]*Scene(nil), s.children...)
	for _, c := range children {
		c.Teardown()
	}

	plots := append([]*Plot(nil), s.plots...)
	for _, p := range plots {
		if err := s.Detach(p); err != nil {
			warnf("teardown: %v", err)
		}
	}

	for _, scr := range s.screens {
		if err := scr.DeleteScene(s); err != nil {
			if errors.Is(err, ErrUnsupported) {
				notef("backend %T does not support scene deletion; skipping", scr)
			} else {
				warnf("backend %T failed to delete scene: %v", scr, err)
			}
		}
	}
	s.screens = nil

	if s.parent != nil {
		s.parent.removeChild(s)
		s.parent = nil
	}
	s.children = nil
	s.plots = nil
	s.lights = nil
	if s.theme != nil {
		s.theme.Clear()
	}

	if s.Camera != nil && s.ownsCamera {
		s.Camera.Disconnect()
		s.Camera.clearListeners()
	}
	if s.controls != nil && s.ownsControls {
		s.controls.Disconnect()
	}
	s.controls = EmptyCamera{}
	s.ownsControls = true

	if s.BackgroundColor != nil {
		s.BackgroundColor.Clear()
	}
	if s.PixelArea != nil {
		s.PixelArea.Clear()
	}
	if s.Visible != nil {
		s.Visible.Clear()
	}
	if s.ClearFlag != nil {
		s.ClearFlag.Clear()
	}
	if s.SSAO.Radius != nil {
		s.SSAO.Radius.Clear()
	}
	if s.SSAO.Bias != nil {
		s.SSAO.Bias.Clear()
	}
	if s.SSAO.Blur != nil {
		s.SSAO.Blur.Clear()
	}
	if s.Transformation != nil {
		s.Transformation.Free()
	}
	s.handles.ReleaseAll()
}
