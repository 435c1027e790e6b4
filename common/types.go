// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"github.com/chewxy/math32"
)

// Vec2 is a 2D vector, used for screen-space coordinates and velocities.
// Screen coordinates have their origin at the top-left corner with y pointing down.
type Vec2 [2]float32

// Vec3 is a 3D world-space vector.
type Vec3 [3]float32

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v[0] + o[0], v[1] + o[1]} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v[0] - o[0], v[1] - o[1]} }

// Scale returns v * s.
func (v Vec2) Scale(s float32) Vec2 { return Vec2{v[0] * s, v[1] * s} }

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]} }

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]} }

// Scale returns v * s.
func (v Vec3) Scale(s float32) Vec3 { return Vec3{v[0] * s, v[1] * s, v[2] * s} }

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float32 { return v[0]*o[0] + v[1]*o[1] + v[2]*o[2] }

// Cross returns the cross product v x o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v[1]*o[2] - v[2]*o[1],
		v[2]*o[0] - v[0]*o[2],
		v[0]*o[1] - v[1]*o[0],
	}
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float32 { return math32.Sqrt(v.Dot(v)) }

// Normalize returns v scaled to unit length.
// A zero-length vector is returned unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l < 1e-12 {
		return v
	}
	return v.Scale(1 / l)
}

// IsZero reports whether all components of v are zero.
func (v Vec3) IsZero() bool { return v[0] == 0 && v[1] == 0 && v[2] == 0 }

// Min returns the componentwise minimum of v and o.
func (v Vec3) Min(o Vec3) Vec3 {
	return Vec3{min(v[0], o[0]), min(v[1], o[1]), min(v[2], o[2])}
}

// Max returns the componentwise maximum of v and o.
func (v Vec3) Max(o Vec3) Vec3 {
	return Vec3{max(v[0], o[0]), max(v[1], o[1]), max(v[2], o[2])}
}

// Lerp linearly interpolates from v to o by t.
func (v Vec3) Lerp(o Vec3, t float32) Vec3 {
	return Vec3{Lerp(v[0], o[0], t), Lerp(v[1], o[1], t), Lerp(v[2], o[2], t)}
}

// Orthogonalize returns v with its component along the unit vector axis removed, normalized.
// When v is parallel to axis the result is an arbitrary unit vector perpendicular to axis.
//
// Parameters:
//   - axis: the unit vector to orthogonalize against
//
// Returns:
//   - Vec3: unit vector perpendicular to axis
func (v Vec3) Orthogonalize(axis Vec3) Vec3 {
	o := v.Sub(axis.Scale(v.Dot(axis)))
	if o.Length() > 1e-6 {
		return o.Normalize()
	}
	// pick the world axis least aligned with axis
	ref := Vec3{0, 1, 0}
	if math32.Abs(axis[1]) > 0.9 {
		ref = Vec3{0, 0, 1}
	}
	return ref.Sub(axis.Scale(ref.Dot(axis))).Normalize()
}

// Projector maps world-space points onto the screen.
// It is implemented by the camera and referenced from HitLine so hit tests can report back in screen space.
type Projector interface {
	WorldToScreen(point Vec3) Vec2
}

// HitLine is a world-space ray produced by unprojecting a screen coordinate.
type HitLine struct {
	// Front is the intersection with the near clipping plane.
	Front Vec3
	// Back is the intersection with the far clipping plane.
	Back Vec3
	// Screen is the originating screen coordinate in pixels.
	Screen Vec2
	// Source is the camera that produced the line, or nil for synthetic lines.
	Source Projector
}

// Direction returns the unit vector from Front to Back.
func (h HitLine) Direction() Vec3 {
	return h.Back.Sub(h.Front).Normalize()
}

// PointAt returns Front + t*(Back-Front).
func (h HitLine) PointAt(t float32) Vec3 {
	return h.Front.Add(h.Back.Sub(h.Front).Scale(t))
}
