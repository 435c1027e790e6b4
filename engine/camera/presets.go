package camera

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/bounds"
	"github.com/chewxy/math32"
)

// ViewDirection names a standard viewpoint. Each direction is the side of the scene the eye sits on.
type ViewDirection int

const (
	ViewFront ViewDirection = iota
	ViewBack
	ViewLeft
	ViewRight
	ViewTop
	ViewBottom
	ViewIsometric
)

var viewDirectionNames = map[ViewDirection]string{
	ViewFront:     "front",
	ViewBack:      "back",
	ViewLeft:      "left",
	ViewRight:     "right",
	ViewTop:       "top",
	ViewBottom:    "bottom",
	ViewIsometric: "isometric",
}

func (v ViewDirection) String() string {
	if name, ok := viewDirectionNames[v]; ok {
		return name
	}
	return fmt.Sprintf("ViewDirection(%d)", int(v))
}

// ParseViewDirection reads a view direction name as used in configuration files.
//
// Parameters:
//   - name: one of front, back, left, right, top, bottom, isometric
//
// Returns:
//   - ViewDirection: the parsed direction
//   - error: if the name is unknown
func ParseViewDirection(name string) (ViewDirection, error) {
	for v, n := range viewDirectionNames {
		if n == name {
			return v, nil
		}
	}
	return ViewFront, fmt.Errorf("unknown view direction %q", name)
}

// vectors returns the unit offset from center to eye and the up vector for the direction.
func (v ViewDirection) vectors() (offset, up common.Vec3) {
	switch v {
	case ViewFront:
		return common.Vec3{0, 0, 1}, common.Vec3{0, 1, 0}
	case ViewBack:
		return common.Vec3{0, 0, -1}, common.Vec3{0, 1, 0}
	case ViewLeft:
		return common.Vec3{-1, 0, 0}, common.Vec3{0, 1, 0}
	case ViewRight:
		return common.Vec3{1, 0, 0}, common.Vec3{0, 1, 0}
	case ViewTop:
		return common.Vec3{0, 1, 0}, common.Vec3{0, 0, -1}
	case ViewBottom:
		return common.Vec3{0, -1, 0}, common.Vec3{0, 0, 1}
	case ViewIsometric:
		offset = common.Vec3{1, 1, 1}.Normalize()
		return offset, common.Vec3{0, 1, 0}.Orthogonalize(offset)
	default:
		panic(fmt.Sprintf("camera: unknown view direction %d", int(v)))
	}
}

func (c *cameraImpl) ViewFrom(direction ViewDirection, b bounds.Bounds, options AnimationOptions) {
	offset, up := direction.vectors()
	center, dist := c.center, c.Distance()
	if b.IsSet() {
		center, dist = b.Center(), c.fitDistance(b)
	}
	c.AnimateTo(center, center.Add(offset.Scale(dist)), up, options)
}

func (c *cameraImpl) FitToView(b bounds.Bounds, options AnimationOptions) {
	if !b.IsSet() {
		return
	}
	dir, _ := splitOffset(c.position.Sub(c.center))
	if dir.IsZero() {
		dir = common.Vec3{0, 0, 1}
	}
	center := b.Center()
	c.AnimateTo(center, center.Add(dir.Scale(c.fitDistance(b))), c.up, options)
}

// fitDistance returns the eye distance at which the bounding sphere of b fits the narrower
// field of view.
func (c *cameraImpl) fitDistance(b bounds.Bounds) float32 {
	radius := max(b.Radius(), c.minDistance)
	halfV := c.fov / 2
	aspect := float32(c.width) / float32(c.height)
	halfH := math32.Atan(math32.Tan(halfV) * aspect)
	half := min(halfV, halfH)
	if c.projection == Parallel {
		return radius / math32.Tan(half)
	}
	return radius / math32.Sin(half)
}
