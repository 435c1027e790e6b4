package camera

import (
	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/chewxy/math32"
)

func (c *cameraImpl) Configure(width, height int) [16]float32 {
	width, height = max(width, 1), max(height, 1)
	if width != c.width || height != c.height {
		common.Logger().Debug("camera configure", "width", width, "height", height, "projection", c.projection)
	}
	c.width, c.height = width, height
	c.projectionMatrix, c.frustum = ProjectionFor(c.State(), width, height)
	c.updateDerived()
	return c.projectionMatrix
}

func (c *cameraImpl) Place() [16]float32 {
	if c.dirty {
		c.projectionMatrix, c.frustum = ProjectionFor(c.State(), c.width, c.height)
		c.dirty = false
	}
	c.viewMatrix = ViewFor(c.State())
	c.updateDerived()
	return c.viewMatrix
}

func (c *cameraImpl) PlaceOverlay(corner Corner) [16]float32 {
	c.overlayMatrix = OverlayFor(c.State(), c.width, c.height, corner)
	return c.overlayMatrix
}

func (c *cameraImpl) WorldToScreen(point common.Vec3) common.Vec2 {
	c.ensureCurrent()
	v := common.TransformPoint4(c.viewMatrix[:], point[0], point[1], point[2], 1)
	clip := common.TransformPoint4(c.projectionMatrix[:], v[0], v[1], v[2], v[3])
	w := clip[3]
	if math32.Abs(w) < 1e-30 {
		w = 1e-30
	}
	ndcX, ndcY := clip[0]/w, clip[1]/w
	return common.Vec2{
		(ndcX + 1) / 2 * float32(c.width),
		(1 - ndcY) / 2 * float32(c.height),
	}
}

func (c *cameraImpl) ScreenToWorld(screen common.Vec2) common.HitLine {
	c.ensureCurrent()
	ndcX := 2*screen[0]/float32(c.width) - 1
	ndcY := 1 - 2*screen[1]/float32(c.height)
	return common.HitLine{
		Front:  c.unproject(ndcX, ndcY, c.frustum.Near),
		Back:   c.unproject(ndcX, ndcY, c.frustum.Far),
		Screen: screen,
		Source: c,
	}
}

func (c *cameraImpl) SceneToWorldScaling() float32 {
	return 2 * math32.Tan(c.fov/2) * c.Distance() / float32(c.height)
}

func (c *cameraImpl) Uniform() []byte {
	c.ensureCurrent()
	u := GPUCameraUniform{
		ViewProj:       c.viewProjectionMatrix,
		CameraPosition: c.position,
	}
	return u.Marshal()
}

// ensureCurrent re-places the camera if its state changed since the last Place.
func (c *cameraImpl) ensureCurrent() {
	if c.dirty {
		c.Place()
	}
}

// updateDerived refreshes the combined matrix after the projection or view changed.
func (c *cameraImpl) updateDerived() {
	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
}

// unproject maps a normalized device coordinate to the world point at the given view depth.
// It works from the camera basis and frustum rather than inverting the projection, since the
// clip range is too wide for a float32 inverse to resolve the far plane.
func (c *cameraImpl) unproject(x, y, depth float32) common.Vec3 {
	forward, right, up := c.basis()
	halfH := c.frustum.NearHeight / 2
	if c.projection == Perspective {
		halfH = math32.Tan(c.fov/2) * depth
	}
	halfW := halfH * c.frustum.Aspect
	return c.position.
		Add(forward.Scale(depth)).
		Add(right.Scale(x * halfW)).
		Add(up.Scale(y * halfH))
}
