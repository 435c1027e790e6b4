package camera

import (
	"time"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/animator"
)

type CameraBuilderOption func(*cameraImpl)

// WithPosition sets the camera's eye position.
//
// Parameters:
//   - position: world-space eye position
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's position
func WithPosition(position common.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = position
	}
}

// WithCenter sets the camera's look-at point.
//
// Parameters:
//   - center: world-space look-at point
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's center
func WithCenter(center common.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.center = center
	}
}

// WithUp sets the camera's up vector. It is orthogonalized against the view direction once all options are applied.
//
// Parameters:
//   - up: up vector
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's up vector
func WithUp(up common.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = up
	}
}

// WithFov sets the camera's vertical field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = common.Clamp(fov, minFov, maxFov)
	}
}

// WithProjection sets the projection mode.
//
// Parameters:
//   - p: Perspective or Parallel
//
// Returns:
//   - CameraBuilderOption: a function that sets the projection
func WithProjection(p Projection) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.projection = p
	}
}

// WithViewport sets the initial viewport size used until the first Configure.
//
// Parameters:
//   - width, height: viewport size in pixels
//
// Returns:
//   - CameraBuilderOption: a function that sets the viewport
func WithViewport(width, height int) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.width, c.height = max(width, 1), max(height, 1)
	}
}

// WithDollyFactor sets the dolly fraction applied per pixel of pointer motion.
//
// Parameters:
//   - factor: dolly fraction per pixel
//
// Returns:
//   - CameraBuilderOption: a function that sets the dolly factor
func WithDollyFactor(factor float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.dollyFactor = factor
	}
}

// WithPanFactor sets the multiplier applied to pan deltas.
//
// Parameters:
//   - factor: pan multiplier, 1 keeps content under the pointer
//
// Returns:
//   - CameraBuilderOption: a function that sets the pan factor
func WithPanFactor(factor float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.panFactor = factor
	}
}

// WithMinDistance sets the closest the eye may dolly to the center.
//
// Parameters:
//   - d: minimum distance in world units
//
// Returns:
//   - CameraBuilderOption: a function that sets the minimum distance
func WithMinDistance(d float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.minDistance = max(d, minClipDistance)
	}
}

// WithInertiaDuration sets how long a released pan or rotate keeps decaying. Zero disables inertia.
//
// Parameters:
//   - d: inertia duration
//
// Returns:
//   - CameraBuilderOption: a function that sets the inertia duration
func WithInertiaDuration(d time.Duration) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.inertiaDuration = d
	}
}

// WithAnimator attaches the scene animator.
//
// Parameters:
//   - a: the animator that drives scripted moves and inertia
//
// Returns:
//   - CameraBuilderOption: a function that attaches the animator
func WithAnimator(a animator.Animator) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.animator = a
	}
}
