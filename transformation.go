package aster

// PointTransform is a pointwise data-space transform applied to plot
// coordinates before the model matrix (e.g. a log scale on one axis).
type PointTransform func(Vec3) Vec3

// Transformation is a composable affine transform. Rotation, Translation,
// and Scale are independently observable; Model is the derived matrix,
// recomputed eagerly and composed with the parent's model matrix when the
// transformation was created as a child.
type Transformation struct {
	Translation   *Observable[Vec3]
	Rotation      *Observable[Quat]
	Scale         *Observable[Vec3]
	TransformFunc *Observable[PointTransform]
	Model         *Observable[Mat4]

	handles HandleSet
}

// NewTransformation creates a transformation. When parent is non-nil the
// derived model matrix is parent * local and follows parent updates.
func NewTransformation(parent *Observable[Mat4]) *Transformation {
	t := &Transformation{
		Translation:   NewObservable(Vec3{}),
		Rotation:      NewObservable(QuatIdentity()),
		Scale:         NewObservable(Vec3{1, 1, 1}),
		TransformFunc: NewObservableFunc[PointTransform](nil, nil),
		Model:         NewObservable(Mat4Identity()),
	}

	recompute := func() {
		local := ComposeTransform(t.Translation.Get(), t.Rotation.Get(), t.Scale.Get())
		if parent != nil {
			t.Model.Set(parent.Get().Mul(local))
		} else {
			t.Model.Set(local)
		}
	}
	OnAny(&t.handles, recompute, t.Translation, t.Rotation, t.Scale)
	if parent != nil {
		OnAny(&t.handles, recompute, parent)
	}
	recompute()
	return t
}

// Apply transforms a data-space point: the point transform (if set) first,
// then the model matrix.
func (t *Transformation) Apply(p Vec3) Vec3 {
	if fn := t.TransformFunc.Get(); fn != nil {
		p = fn(p)
	}
	return t.Model.Get().TransformPoint(p)
}

// Free releases the derivation listeners (including the parent link) and
// clears every observable's listener list. Values are left in place; the
// transformation simply stops propagating. Idempotent.
func (t *Transformation) Free() {
	t.handles.ReleaseAll()
	t.Translation.Clear()
	t.Rotation.Clear()
	t.Scale.Clear()
	t.TransformFunc.Clear()
	t.Model.Clear()
}
