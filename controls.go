package aster

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// CameraController is the pluggable input-to-camera-mutation policy. A
// controller subscribes to the owning scene's event sink on Connect and may
// mutate the scene's camera; Disconnect releases every subscription and
// must be idempotent.
//
// Controllers are replaced wholesale, never mutated into a different
// variant: a child scene whose requested camera differs from its parent's
// gets an EmptyCamera, and Push installs a cameraLinks controller.
type CameraController interface {
	Connect(scene *Scene)
	Disconnect()
	Name() string
}

// EmptyCamera is the no-op controller: it ignores input and never touches
// the camera.
type EmptyCamera struct{}

// Connect implements CameraController.
func (EmptyCamera) Connect(*Scene) {}

// Disconnect implements CameraController.
func (EmptyCamera) Disconnect() {}

// Name implements CameraController.
func (EmptyCamera) Name() string { return "empty" }

// PixelCamera maps world units 1:1 to device pixels with no interaction:
// the projection is an orthographic view over the scene's pixel area.
type PixelCamera struct {
	handles HandleSet
}

// Connect implements CameraController.
func (p *PixelCamera) Connect(scene *Scene) {
	cam := scene.Camera
	scene.PixelArea.OnPriority(&p.handles, 0, true, func(r Rect) {
		if r.Empty() {
			return
		}
		cam.Projection.Set(Ortho(0, r.W, 0, r.H, -10_000, 10_000))
		cam.View.Set(Mat4Identity())
		cam.EyePosition.Set(Vec3{r.W / 2, r.H / 2, 100})
	})
}

// Disconnect implements CameraController.
func (p *PixelCamera) Disconnect() { p.handles.ReleaseAll() }

// Name implements CameraController.
func (p *PixelCamera) Name() string { return "pixel" }

// RelativeCamera maps the unit square (0..1 in both axes) onto the scene's
// pixel area, with no interaction.
type RelativeCamera struct {
	handles HandleSet
}

// Connect implements CameraController.
func (r *RelativeCamera) Connect(scene *Scene) {
	cam := scene.Camera
	scene.PixelArea.OnPriority(&r.handles, 0, true, func(Rect) {
		cam.Projection.Set(Ortho(0, 1, 0, 1, -100, 100))
		cam.View.Set(Mat4Identity())
		cam.EyePosition.Set(Vec3{0.5, 0.5, 1})
	})
}

// Disconnect implements CameraController.
func (r *RelativeCamera) Disconnect() { r.handles.ReleaseAll() }

// Name implements CameraController.
func (r *RelativeCamera) Name() string { return "relative" }

// areaAnim interpolates the visible area between two rectangles, driven by
// a single normalized tween.
type areaAnim struct {
	from, to Rect
	t        *gween.Tween
}

// Camera2D provides scroll-to-zoom and drag-to-pan over a world-space view
// rectangle. Zoom changes animate smoothly toward the target area.
type Camera2D struct {
	// Area is the world-space rectangle currently visible.
	Area *Observable[Rect]
	// ZoomSpeed scales the per-scroll-step zoom factor. Default 0.1.
	ZoomSpeed float32
	// ZoomDuration is the zoom animation length in seconds. Default 0.2.
	ZoomDuration float32
	// PanButton is the mouse button that drags the view. Default left.
	PanButton MouseButton

	scene     *Scene
	handles   HandleSet
	anim      *areaAnim
	panning   bool
	lastMouse Vec2
}

// NewCamera2D creates a 2D pan-zoom controller showing the given initial
// world area.
func NewCamera2D(area Rect) *Camera2D {
	return &Camera2D{
		Area:         NewObservable(area),
		ZoomSpeed:    0.1,
		ZoomDuration: 0.2,
		PanButton:    MouseButtonLeft,
	}
}

// Connect implements CameraController.
func (c *Camera2D) Connect(scene *Scene) {
	c.scene = scene
	ev := scene.Events()

	c.Area.OnPriority(&c.handles, 0, true, func(r Rect) { c.apply(r) })
	ev.Scroll.On(&c.handles, func(s Vec2) { c.onScroll(s.Y) })
	ev.MouseDown.On(&c.handles, func(b MouseButtons) { c.onButtons(b) })
	ev.MousePosition.On(&c.handles, func(p Vec2) { c.onMouseMove(p) })
	ev.Tick.On(&c.handles, func(dt float32) { c.step(dt) })
}

// Disconnect implements CameraController.
func (c *Camera2D) Disconnect() {
	c.handles.ReleaseAll()
	c.anim = nil
	c.panning = false
	c.scene = nil
}

// Name implements CameraController.
func (c *Camera2D) Name() string { return "2d" }

// apply writes the view rectangle into the scene camera.
func (c *Camera2D) apply(r Rect) {
	if c.scene == nil || r.Empty() {
		return
	}
	cam := c.scene.Camera
	cam.Projection.Set(Ortho(r.X, r.X+r.W, r.Y, r.Y+r.H, -10_000, 10_000))
	cam.View.Set(Mat4Identity())
	cam.EyePosition.Set(Vec3{r.X + r.W/2, r.Y + r.H/2, 100})
}

// onScroll starts (or retargets) a smooth zoom about the area center.
// Positive scroll zooms in.
func (c *Camera2D) onScroll(dy float32) {
	if dy == 0 {
		return
	}
	base := c.Area.Get()
	if c.anim != nil {
		base = c.anim.to // compound with an in-flight zoom
	}
	factor := 1 - c.ZoomSpeed*dy
	if factor <= 0 {
		return
	}
	target := scaleRectAboutCenter(base, factor)
	c.anim = &areaAnim{
		from: c.Area.Get(),
		to:   target,
		t:    gween.New(0, 1, c.ZoomDuration, ease.OutQuad),
	}
}

func (c *Camera2D) onButtons(b MouseButtons) {
	held := b.Has(c.PanButton)
	if held && !c.panning {
		c.panning = true
		c.lastMouse = c.scene.Events().MousePosition.Get()
	} else if !held {
		c.panning = false
	}
}

func (c *Camera2D) onMouseMove(p Vec2) {
	if !c.panning || c.scene == nil {
		return
	}
	px := c.scene.PixelArea.Get()
	if px.Empty() {
		return
	}
	area := c.Area.Get()
	dx := (p.X - c.lastMouse.X) * area.W / px.W
	dy := (p.Y - c.lastMouse.Y) * area.H / px.H
	c.lastMouse = p
	c.Area.Set(area.Offset(-dx, -dy))
}

// step advances the zoom animation by dt seconds.
func (c *Camera2D) step(dt float32) {
	if c.anim == nil {
		return
	}
	v, done := c.anim.t.Update(dt)
	c.Area.Set(lerpRect(c.anim.from, c.anim.to, v))
	if done {
		c.anim = nil
	}
}

func scaleRectAboutCenter(r Rect, factor float32) Rect {
	cx := r.X + r.W/2
	cy := r.Y + r.H/2
	w := r.W * factor
	h := r.H * factor
	return Rect{cx - w/2, cy - h/2, w, h}
}

func lerpRect(a, b Rect, t float32) Rect {
	return Rect{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.W + (b.W-a.W)*t,
		a.H + (b.H-a.H)*t,
	}
}

// cameraLinks is the controller installed by Push: it holds the one-way
// observable links mirroring a source camera into this scene's camera, so
// unlinking later is a single Disconnect.
type cameraLinks struct {
	handles HandleSet
}

// Connect implements CameraController. The links are established by Push;
// nothing to do here.
func (*cameraLinks) Connect(*Scene) {}

// Disconnect implements CameraController.
func (l *cameraLinks) Disconnect() { l.handles.ReleaseAll() }

// Name implements CameraController.
func (*cameraLinks) Name() string { return "links" }
