package aster

// Camera holds per-scene view state as observable fields so that backends
// and linked child scenes follow every update. Camera controllers write
// View, Projection, and EyePosition; ProjectionView is derived, and
// Resolution follows the owning scene's pixel area.
type Camera struct {
	View           *Observable[Mat4]
	Projection     *Observable[Mat4]
	ProjectionView *Observable[Mat4]
	Resolution     *Observable[Vec2]
	EyePosition    *Observable[Vec3]

	handles HandleSet
}

// NewCamera creates a camera bound to the given pixel area: the resolution
// observable tracks the area's extent, and the combined projection-view
// matrix is kept current from its two factors.
func NewCamera(pixelArea *Observable[Rect]) *Camera {
	c := &Camera{
		View:           NewObservable(Mat4Identity()),
		Projection:     NewObservable(Mat4Identity()),
		ProjectionView: NewObservable(Mat4Identity()),
		Resolution:     NewObservable(Vec2{}),
		EyePosition:    NewObservable(Vec3{0, 0, 1}),
	}
	if pixelArea != nil {
		pixelArea.OnPriority(&c.handles, 0, true, func(r Rect) {
			c.Resolution.Set(Vec2{r.W, r.H})
		})
	}
	OnAny(&c.handles, func() {
		c.ProjectionView.Set(c.Projection.Get().Mul(c.View.Get()))
	}, c.View, c.Projection)
	return c
}

// Disconnect releases every listener the camera registered on other
// observables (the pixel-area link and the projection-view derivation).
// A disconnected camera no longer updates itself; its fields can still be
// driven externally, which is how Push mirrors a parent camera into a
// child. Idempotent.
func (c *Camera) Disconnect() {
	c.handles.ReleaseAll()
}

// clearListeners severs all subscriptions on the camera's own fields.
// Used by scene teardown after Disconnect.
func (c *Camera) clearListeners() {
	c.View.Clear()
	c.Projection.Clear()
	c.ProjectionView.Clear()
	c.Resolution.Clear()
	c.EyePosition.Clear()
}
