// Package bounds provides an accumulating axis-aligned bounding volume used for
// fit-to-view framing, ray/box hit testing and nice axis ranges.
package bounds

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-view/common"
)

// Bounds is an axis-aligned box that only ever grows until Reset.
// The zero value is unset and ready to use.
type Bounds struct {
	minima common.Vec3
	maxima common.Vec3
	set    bool
}

// New returns bounds enclosing the given points. With no points the result is unset.
//
// Parameters:
//   - points: points to enclose
//
// Returns:
//   - Bounds: the accumulated bounds
func New(points ...common.Vec3) Bounds {
	var b Bounds
	for _, p := range points {
		b.Resize(p)
	}
	return b
}

// IsSet reports whether at least one point has been accumulated since the last Reset.
func (b Bounds) IsSet() bool { return b.set }

// Min returns the minimum corner. Meaningless when the bounds are unset.
func (b Bounds) Min() common.Vec3 { return b.minima }

// Max returns the maximum corner. Meaningless when the bounds are unset.
func (b Bounds) Max() common.Vec3 { return b.maxima }

// Resize grows the bounds to include point. The first call after creation or Reset
// sets both corners to point.
//
// Parameters:
//   - point: the point to include
func (b *Bounds) Resize(point common.Vec3) {
	if !b.set {
		b.minima, b.maxima, b.set = point, point, true
		return
	}
	b.minima = b.minima.Min(point)
	b.maxima = b.maxima.Max(point)
}

// ResizeBounds grows the bounds to include other. Unset bounds are ignored.
//
// Parameters:
//   - other: the bounds to merge
func (b *Bounds) ResizeBounds(other Bounds) {
	if !other.set {
		return
	}
	b.Resize(other.minima)
	b.Resize(other.maxima)
}

// Reset marks the bounds unset. The stored corners are overwritten by the next Resize.
func (b *Bounds) Reset() {
	b.set = false
}

// Expand grows each corner outward by margin on every axis. No-op when unset.
func (b *Bounds) Expand(margin float32) {
	if !b.set {
		return
	}
	m := common.Vec3{margin, margin, margin}
	b.minima = b.minima.Sub(m)
	b.maxima = b.maxima.Add(m)
}

// Center returns the midpoint of the box, or the zero vector when unset.
func (b Bounds) Center() common.Vec3 {
	if !b.set {
		return common.Vec3{}
	}
	return b.minima.Add(b.maxima).Scale(0.5)
}

// Size returns the extent along each axis, or the zero vector when unset.
func (b Bounds) Size() common.Vec3 {
	if !b.set {
		return common.Vec3{}
	}
	return b.maxima.Sub(b.minima)
}

// Radius returns half the length of the diagonal, or 0 when unset.
func (b Bounds) Radius() float32 {
	return b.Size().Length() / 2
}

// MaxWidth returns the largest extent over the three axes, or 0 when unset.
func (b Bounds) MaxWidth() float32 {
	s := b.Size()
	return max(s[0], s[1], s[2])
}

// Contains reports whether point lies inside the closed box. Unset bounds contain nothing.
func (b Bounds) Contains(point common.Vec3) bool {
	if !b.set {
		return false
	}
	for i := 0; i < 3; i++ {
		if point[i] < b.minima[i] || point[i] > b.maxima[i] {
			return false
		}
	}
	return true
}

// Corners returns the eight corners of the box. All corners are zero when unset.
func (b Bounds) Corners() [8]common.Vec3 {
	var cs [8]common.Vec3
	if !b.set {
		return cs
	}
	for i := range cs {
		for axis := 0; axis < 3; axis++ {
			if i&(1<<axis) != 0 {
				cs[i][axis] = b.maxima[axis]
			} else {
				cs[i][axis] = b.minima[axis]
			}
		}
	}
	return cs
}

// Equals reports whether other describes the same box. Two unset bounds are equal.
// Passing anything other than a Bounds or *Bounds is a caller bug and panics.
//
// Parameters:
//   - other: a Bounds or *Bounds
//
// Returns:
//   - bool: true if both are unset, or both are set with identical corners
func (b Bounds) Equals(other any) bool {
	var o Bounds
	switch v := other.(type) {
	case Bounds:
		o = v
	case *Bounds:
		if v == nil {
			panic("bounds: Equals called with a nil *Bounds")
		}
		o = *v
	default:
		panic(fmt.Sprintf("bounds: Equals called with %T, want Bounds", other))
	}
	if b.set != o.set {
		return false
	}
	return !b.set || (b.minima == o.minima && b.maxima == o.maxima)
}

// String formats the bounds for logs.
func (b Bounds) String() string {
	if !b.set {
		return "Bounds{unset}"
	}
	return fmt.Sprintf("Bounds{min: %v, max: %v}", b.minima, b.maxima)
}

// HitTest reports whether the infinite line through hit.Front and hit.Back intersects the box.
// Unset bounds are never hit.
//
// The test rejects lines whose two points lie beyond the same face, accepts lines whose
// front point is strictly inside, and otherwise intersects the line with each of the six
// face planes, accepting the first intersection that lies within that face.
//
// Parameters:
//   - hit: the line to test
//
// Returns:
//   - bool: true if the line passes through the box
func (b Bounds) HitTest(hit common.HitLine) bool {
	if !b.set {
		return false
	}
	front, back := hit.Front, hit.Back

	for i := 0; i < 3; i++ {
		if front[i] < b.minima[i] && back[i] < b.minima[i] {
			return false
		}
		if front[i] > b.maxima[i] && back[i] > b.maxima[i] {
			return false
		}
	}

	inside := true
	for i := 0; i < 3; i++ {
		if front[i] <= b.minima[i] || front[i] >= b.maxima[i] {
			inside = false
			break
		}
	}
	if inside {
		return true
	}

	for axis := 0; axis < 3; axis++ {
		for _, plane := range [2]float32{b.minima[axis], b.maxima[axis]} {
			d1 := front[axis] - plane
			d2 := back[axis] - plane
			if d1 == d2 {
				continue
			}
			t := -d1 / (d2 - d1)
			if b.withinFace(hit.PointAt(t), axis) {
				return true
			}
		}
	}
	return false
}

// withinFace reports whether p lies inside the box range on both axes other than axis.
func (b Bounds) withinFace(p common.Vec3, axis int) bool {
	for j := 0; j < 3; j++ {
		if j == axis {
			continue
		}
		if p[j] < b.minima[j] || p[j] > b.maxima[j] {
			return false
		}
	}
	return true
}
