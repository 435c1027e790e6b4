package camera

import (
	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/chewxy/math32"
)

// subPixel is the delta below which pointer motion is treated as noise.
const subPixel = 0.01

func (c *cameraImpl) Pan(dx, dy float32) {
	if ignorable(dx, dy) {
		return
	}
	c.interruptInertia()
	v := common.Vec2{dx * c.panFactor, dy * c.panFactor}
	c.inertiaVelocity = v
	c.inertiaType = gesturePan
	c.panBy(v[0], v[1])
}

func (c *cameraImpl) Rotate(dx, dy float32) {
	if ignorable(dx, dy) {
		return
	}
	c.interruptInertia()
	c.inertiaVelocity = common.Vec2{dx, dy}
	c.inertiaType = gestureRotate
	c.rotateBy(dx, dy)
}

func (c *cameraImpl) Dolly(factor float32) bool {
	d := c.Distance()
	if d*(1-factor) < c.minDistance {
		common.Logger().Debug("camera dolly rejected", "factor", factor, "distance", d)
		return false
	}
	c.position = c.position.Add(c.center.Sub(c.position).Scale(factor))
	c.dirty = true
	if c.projection == Parallel {
		c.Configure(c.width, c.height)
	}
	return true
}

func (c *cameraImpl) Zoom(x0, y0, x1, y1 float32) (common.Vec2, float32) {
	c.interruptInertia()
	w, h := float32(c.width), float32(c.height)

	rectCenter := common.Vec2{(x0 + x1) / 2, (y0 + y1) / 2}
	pan := rectCenter.Sub(common.Vec2{w / 2, h / 2})
	c.panBy(pan[0], pan[1])

	ratio := max(math32.Abs(x1-x0)/w, math32.Abs(y1-y0)/h)
	if ratio == 0 || !c.Dolly(1-ratio) {
		return pan, 0
	}
	return pan, ratio
}

// panBy translates position and center by a screen-space delta without touching inertia state.
func (c *cameraImpl) panBy(dx, dy float32) {
	s := c.SceneToWorldScaling()
	_, right, up := c.basis()
	offset := right.Scale(dx * s).Sub(up.Scale(dy * s))
	c.position = c.position.Add(offset)
	c.center = c.center.Add(offset)
	c.up = up
	c.dirty = true
}

// rotateBy orbits position around center by a screen-space delta without touching inertia state.
// The moved eye is projected back onto the sphere of the original distance.
func (c *cameraImpl) rotateBy(dx, dy float32) {
	d := c.Distance()
	if d < minClipDistance {
		return
	}
	s := c.SceneToWorldScaling()
	_, right, up := c.basis()
	moved := c.position.Add(right.Scale(dx * s)).Sub(up.Scale(dy * s))
	dir := moved.Sub(c.center).Normalize()

	c.position = c.center.Add(dir.Scale(d))
	c.up = up.Orthogonalize(dir)
	c.dirty = true
}

// interruptInertia stops a running inertia decay so a new gesture takes over.
func (c *cameraImpl) interruptInertia() {
	if c.motion != MotionInertia {
		return
	}
	if c.animator != nil {
		c.animator.Cancel(c)
	}
	c.resetInertia()
	c.motion = MotionIdle
}

func ignorable(dx, dy float32) bool {
	return math32.Abs(dx) < subPixel && math32.Abs(dy) < subPixel
}
