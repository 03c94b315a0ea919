package aster

import "github.com/chewxy/math32"

// Vec2 is a 2D vector used for resolutions, mouse positions, and offsets.
type Vec2 struct {
	X, Y float32
}

// Vec3 is a 3D vector used for positions, scales, and directions.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 { return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z} }

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 { return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z} }

// Scale returns v scaled by s.
func (v Vec3) Scale(s float32) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product of v and w.
func (v Vec3) Dot(w Vec3) float32 { return v.X*w.X + v.Y*w.Y + v.Z*w.Z }

// Cross returns the cross product of v and w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		v.Y*w.Z - v.Z*w.Y,
		v.Z*w.X - v.X*w.Z,
		v.X*w.Y - v.Y*w.X,
	}
}

// Normalize returns v scaled to unit length, or the zero vector if v is zero.
func (v Vec3) Normalize() Vec3 {
	len := math32.Sqrt(v.Dot(v))
	if len == 0 {
		return Vec3{}
	}
	return v.Scale(1 / len)
}

// Quat is a rotation quaternion.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns the identity rotation.
func QuatIdentity() Quat { return Quat{0, 0, 0, 1} }

// AxisAngle builds a quaternion rotating angle radians around axis.
func AxisAngle(axis Vec3, angle float32) Quat {
	sin, cos := math32.Sincos(angle / 2)
	a := axis.Normalize()
	return Quat{a.X * sin, a.Y * sin, a.Z * sin, cos}
}

// Mat4 is a 4x4 matrix in column-major order: element (row r, col c) is
// at index c*4+r.
type Mat4 [16]float32

// Mat4Identity returns the identity matrix.
func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mul returns m * n.
func (m Mat4) Mul(n Mat4) Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+r] * n[c*4+k]
			}
			out[c*4+r] = sum
		}
	}
	return out
}

// TransformPoint applies m to the point (x, y, z, 1) and returns the
// transformed point (without perspective divide).
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	return Vec3{
		m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12],
		m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13],
		m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14],
	}
}

// ComposeTransform builds translate * rotate * scale.
func ComposeTransform(translation Vec3, rotation Quat, scale Vec3) Mat4 {
	x, y, z, w := rotation.X, rotation.Y, rotation.Z, rotation.W

	// Rotation matrix from quaternion, columns scaled.
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	return Mat4{
		(1 - 2*(yy+zz)) * scale.X, 2 * (xy + wz) * scale.X, 2 * (xz - wy) * scale.X, 0,
		2 * (xy - wz) * scale.Y, (1 - 2*(xx+zz)) * scale.Y, 2 * (yz + wx) * scale.Y, 0,
		2 * (xz + wy) * scale.Z, 2 * (yz - wx) * scale.Z, (1 - 2*(xx+yy)) * scale.Z, 0,
		translation.X, translation.Y, translation.Z, 1,
	}
}

// Ortho returns an orthographic projection matrix.
func Ortho(left, right, bottom, top, near, far float32) Mat4 {
	rml := right - left
	tmb := top - bottom
	fmn := far - near
	return Mat4{
		2 / rml, 0, 0, 0,
		0, 2 / tmb, 0, 0,
		0, 0, -2 / fmn, 0,
		-(right + left) / rml, -(top + bottom) / tmb, -(far + near) / fmn, 1,
	}
}

// Perspective returns a perspective projection matrix. fovy is in radians.
func Perspective(fovy, aspect, near, far float32) Mat4 {
	f := 1 / math32.Tan(fovy/2)
	fmn := far - near
	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, -(far + near) / fmn, -1,
		0, 0, -2 * far * near / fmn, 0,
	}
}

// LookAt returns a view matrix for a camera at eye looking at target.
func LookAt(eye, target, up Vec3) Mat4 {
	f := target.Sub(eye).Normalize()
	s := f.Cross(up.Normalize()).Normalize()
	u := s.Cross(f)
	return Mat4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	}
}

// Rect is an axis-aligned rectangle in device pixels: origin at the
// top-left, Y increasing downward.
type Rect struct {
	X, Y, W, H float32
}

// Empty reports whether the rectangle has a zero (or negative) extent.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x <= r.X+r.W &&
		y >= r.Y && y <= r.Y+r.H
}

// Intersects reports whether r and other overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.W &&
		r.X+r.W >= other.X &&
		r.Y <= other.Y+other.H &&
		r.Y+r.H >= other.Y
}

// Offset returns r translated by (dx, dy).
func (r Rect) Offset(dx, dy float32) Rect {
	return Rect{r.X + dx, r.Y + dy, r.W, r.H}
}

// ZeroOrigin returns r with its origin moved to (0, 0).
func (r Rect) ZeroOrigin() Rect {
	return Rect{0, 0, r.W, r.H}
}

// Color is an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float32
}

// ColorWhite and ColorBlack are common colors.
var (
	ColorWhite = Color{1, 1, 1, 1}
	ColorBlack = Color{0, 0, 0, 1}
)

// Opaque reports whether the color is fully opaque.
func (c Color) Opaque() bool {
	return c.A >= 1
}
