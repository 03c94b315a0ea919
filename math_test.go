package aster

import "testing"

func almostEqual(a, b float32) bool {
	d := a - b
	return d > -1e-5 && d < 1e-5
}

func vecsAlmostEqual(a, b Vec3) bool {
	return almostEqual(a.X, b.X) && almostEqual(a.Y, b.Y) && almostEqual(a.Z, b.Z)
}

func TestRectEmpty(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		want bool
	}{
		{"normal", Rect{0, 0, 10, 10}, false},
		{"zero width", Rect{0, 0, 0, 10}, true},
		{"zero height", Rect{0, 0, 10, 0}, true},
		{"negative", Rect{0, 0, -1, 10}, true},
	}
	for _, tt := range tests {
		if got := tt.r.Empty(); got != tt.want {
			t.Errorf("%s: Empty() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestRectOffsetAndZeroOrigin(t *testing.T) {
	r := Rect{10, 20, 30, 40}
	if got := r.Offset(5, -5); got != (Rect{15, 15, 30, 40}) {
		t.Errorf("Offset = %v", got)
	}
	if got := r.ZeroOrigin(); got != (Rect{0, 0, 30, 40}) {
		t.Errorf("ZeroOrigin = %v", got)
	}
}

func TestMat4IdentityMul(t *testing.T) {
	m := ComposeTransform(Vec3{1, 2, 3}, QuatIdentity(), Vec3{2, 2, 2})
	if got := Mat4Identity().Mul(m); got != m {
		t.Error("I * m != m")
	}
	if got := m.Mul(Mat4Identity()); got != m {
		t.Error("m * I != m")
	}
}

func TestOrthoMapsCorners(t *testing.T) {
	m := Ortho(0, 100, 0, 50, -1, 1)

	bl := m.TransformPoint(Vec3{0, 0, 0})
	if !vecsAlmostEqual(bl, Vec3{-1, -1, 0}) {
		t.Errorf("bottom-left -> %v, want {-1 -1 0}", bl)
	}
	tr := m.TransformPoint(Vec3{100, 50, 0})
	if !vecsAlmostEqual(tr, Vec3{1, 1, 0}) {
		t.Errorf("top-right -> %v, want {1 1 0}", tr)
	}
	center := m.TransformPoint(Vec3{50, 25, 0})
	if !vecsAlmostEqual(center, Vec3{0, 0, 0}) {
		t.Errorf("center -> %v, want origin", center)
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := Vec3{0, 0, 5}
	m := LookAt(eye, Vec3{}, Vec3{0, 1, 0})
	if got := m.TransformPoint(eye); !vecsAlmostEqual(got, Vec3{}) {
		t.Errorf("eye maps to %v, want origin", got)
	}
	// The look target sits on the negative Z axis in view space.
	if got := m.TransformPoint(Vec3{}); !vecsAlmostEqual(got, Vec3{0, 0, -5}) {
		t.Errorf("target maps to %v, want {0 0 -5}", got)
	}
}

func TestAxisAngleRotation(t *testing.T) {
	// 180 degrees around Z maps +X to -X.
	q := AxisAngle(Vec3{0, 0, 1}, 3.14159265)
	m := ComposeTransform(Vec3{}, q, Vec3{1, 1, 1})
	if got := m.TransformPoint(Vec3{1, 0, 0}); !vecsAlmostEqual(got, Vec3{-1, 0, 0}) {
		t.Errorf("rotated point = %v, want {-1 0 0}", got)
	}
}

func TestVec3Ops(t *testing.T) {
	if got := (Vec3{1, 2, 3}).Add(Vec3{1, 1, 1}); got != (Vec3{2, 3, 4}) {
		t.Errorf("Add = %v", got)
	}
	if got := (Vec3{3, 0, 0}).Normalize(); got != (Vec3{1, 0, 0}) {
		t.Errorf("Normalize = %v", got)
	}
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("Normalize of zero = %v, want zero", got)
	}
	if got := (Vec3{1, 0, 0}).Cross(Vec3{0, 1, 0}); got != (Vec3{0, 0, 1}) {
		t.Errorf("Cross = %v", got)
	}
}

func TestColorOpaque(t *testing.T) {
	if !ColorWhite.Opaque() {
		t.Error("white should be opaque")
	}
	if (Color{1, 1, 1, 0.5}).Opaque() {
		t.Error("half-transparent should not be opaque")
	}
}
