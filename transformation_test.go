package aster

import "testing"

func TestTransformationModelFollowsFields(t *testing.T) {
	tr := NewTransformation(nil)

	tr.Translation.Set(Vec3{10, 20, 30})
	got := tr.Model.Get().TransformPoint(Vec3{})
	if got != (Vec3{10, 20, 30}) {
		t.Errorf("translated origin = %v, want {10 20 30}", got)
	}

	tr.Scale.Set(Vec3{2, 2, 2})
	got = tr.Model.Get().TransformPoint(Vec3{1, 0, 0})
	if got != (Vec3{12, 20, 30}) {
		t.Errorf("scaled point = %v, want {12 20 30}", got)
	}
}

func TestTransformationParentComposition(t *testing.T) {
	parent := NewTransformation(nil)
	child := NewTransformation(parent.Model)

	parent.Translation.Set(Vec3{5, 0, 0})
	child.Translation.Set(Vec3{0, 3, 0})

	got := child.Model.Get().TransformPoint(Vec3{})
	if got != (Vec3{5, 3, 0}) {
		t.Errorf("composed origin = %v, want {5 3 0}", got)
	}

	// A parent update propagates into the child's model.
	parent.Translation.Set(Vec3{7, 0, 0})
	got = child.Model.Get().TransformPoint(Vec3{})
	if got != (Vec3{7, 3, 0}) {
		t.Errorf("composed origin after parent move = %v, want {7 3 0}", got)
	}
}

func TestTransformationApplyPointTransform(t *testing.T) {
	tr := NewTransformation(nil)
	tr.TransformFunc.Set(func(p Vec3) Vec3 { return Vec3{p.X * 2, p.Y, p.Z} })
	tr.Translation.Set(Vec3{1, 0, 0})

	got := tr.Apply(Vec3{3, 0, 0})
	if got != (Vec3{7, 0, 0}) {
		t.Errorf("Apply = %v, want {7 0 0} (point transform before model)", got)
	}
}

func TestTransformationFreeStopsPropagation(t *testing.T) {
	parent := NewTransformation(nil)
	child := NewTransformation(parent.Model)

	child.Free()
	child.Free() // idempotent

	parent.Translation.Set(Vec3{9, 9, 9})
	got := child.Model.Get().TransformPoint(Vec3{})
	if got != (Vec3{}) {
		t.Errorf("freed child model moved to %v, want origin", got)
	}

	calls := 0
	child.Model.On(nil, func(Mat4) { calls++ })
	child.Translation.Set(Vec3{1, 1, 1})
	if calls != 0 {
		t.Errorf("freed transformation still recomputes (%d calls)", calls)
	}
}
