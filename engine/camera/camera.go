package camera

import (
	"math"
	"time"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/animator"
	"github.com/Carmen-Shannon/oxy-view/engine/bounds"
)

type cameraImpl struct {
	position common.Vec3
	center   common.Vec3
	up       common.Vec3

	fov        float32
	projection Projection

	dollyFactor     float32
	panFactor       float32
	minDistance     float32
	inertiaDuration time.Duration

	width   int
	height  int
	frustum FrustumDef
	dirty   bool

	projectionMatrix     [16]float32
	viewMatrix           [16]float32
	overlayMatrix        [16]float32
	viewProjectionMatrix [16]float32

	animator animator.Animator
	motion   Motion
	options  AnimationOptions

	startCenter, startDir, startUp common.Vec3
	stopCenter, stopDir, stopUp    common.Vec3
	startDist, stopDist            float32

	inertiaVelocity common.Vec2
	inertiaType     gesture
}

// Camera is a look-at camera with a consistent screen/world mapping, pointer gestures and
// animated transitions.
//
// Camera is not safe for concurrent use. All methods are meant to be called from the render
// thread, with input events handled between frames and the Animator ticked once per frame.
type Camera interface {
	// Position returns the eye position in world space.
	//
	// Returns:
	//   - common.Vec3: the eye position
	Position() common.Vec3

	// Center returns the look-at point in world space.
	//
	// Returns:
	//   - common.Vec3: the look-at point
	Center() common.Vec3

	// Up returns the up vector. It is kept orthogonal to the view direction.
	//
	// Returns:
	//   - common.Vec3: the unit up vector
	Up() common.Vec3

	// Distance returns |Position - Center|.
	Distance() float32

	// Fov returns the vertical field of view in radians.
	Fov() float32

	// Projection returns the current projection mode.
	Projection() Projection

	// State returns a snapshot of the inputs to the matrix recompute functions.
	//
	// Returns:
	//   - State: position, center, up, fov and projection
	State() State

	// Viewport returns the viewport size passed to the last Configure, clamped to at least 1x1.
	//
	// Returns:
	//   - width, height: viewport size in pixels
	Viewport() (width, height int)

	// FrustumDef returns the view volume computed by the last Configure.
	FrustumDef() FrustumDef

	// ClipFrustum returns the six world-space clip planes of the current view-projection.
	//
	// Returns:
	//   - common.Frustum: normalized planes with inward-pointing normals
	ClipFrustum() common.Frustum

	// ProjectionMatrix returns the cached projection matrix.
	ProjectionMatrix() [16]float32

	// ViewMatrix returns the cached view matrix.
	ViewMatrix() [16]float32

	// ViewProjectionMatrix returns the cached combined projection * view matrix.
	ViewProjectionMatrix() [16]float32

	// DollyFactor returns the dolly amount per pixel of pointer motion.
	DollyFactor() float32

	// PanFactor returns the multiplier applied to pan deltas.
	PanFactor() float32

	// Motion returns the current animation mode.
	Motion() Motion

	// InertiaVelocity returns the last recorded gesture delta that inertia would replay.
	InertiaVelocity() common.Vec2

	// SetView moves the camera immediately, without animation.
	//
	// Parameters:
	//   - center: the new look-at point
	//   - position: the new eye position
	//   - up: the new up vector, re-orthogonalized against the view direction
	SetView(center, position, up common.Vec3)

	// SetFov sets the vertical field of view in radians, clamped to (0, pi).
	//
	// Parameters:
	//   - fov: the field of view in radians
	SetFov(fov float32)

	// SetProjection switches between perspective and parallel projection and reconfigures.
	// An unknown projection panics.
	//
	// Parameters:
	//   - p: the projection mode
	SetProjection(p Projection)

	// SetAnimator attaches the animator that drives scripted moves and inertia.
	// Without an animator AnimateTo jumps to its target and inertia is disabled.
	//
	// Parameters:
	//   - a: the scene animator
	SetAnimator(a animator.Animator)

	// Configure recomputes the projection matrix for a viewport of width x height pixels.
	// Dimensions below 1 are clamped to 1.
	//
	// Parameters:
	//   - width: viewport width in pixels
	//   - height: viewport height in pixels
	//
	// Returns:
	//   - [16]float32: the projection matrix
	Configure(width, height int) [16]float32

	// Place recomputes the view matrix from position, center and up and caches it for
	// unprojection. Projection changes implied by distance changes since the last Place are
	// applied as well.
	//
	// Returns:
	//   - [16]float32: the view matrix
	Place() [16]float32

	// PlaceOverlay returns a view matrix that maps the z=0 plane one unit to one pixel under the
	// current projection, with pixel (0, 0) at the given corner. An unknown corner panics.
	//
	// Parameters:
	//   - corner: the screen location of the overlay origin
	//
	// Returns:
	//   - [16]float32: the overlay view matrix
	PlaceOverlay(corner Corner) [16]float32

	// WorldToScreen projects a world point into screen pixels, origin top-left, y down.
	//
	// Parameters:
	//   - point: world-space point
	//
	// Returns:
	//   - common.Vec2: screen position in pixels
	WorldToScreen(point common.Vec3) common.Vec2

	// ScreenToWorld unprojects a screen pixel onto the near and far clip planes.
	//
	// Parameters:
	//   - screen: screen position in pixels, origin top-left, y down
	//
	// Returns:
	//   - common.HitLine: the world-space line through the pixel
	ScreenToWorld(screen common.Vec2) common.HitLine

	// SceneToWorldScaling returns the world-space size of one pixel at the center distance.
	SceneToWorldScaling() float32

	// Pan moves position and center together by dx pixels right and dy pixels down.
	// Deltas where both components are below 0.01 are ignored. Cancels running inertia and
	// records the delta as the inertia velocity.
	//
	// Parameters:
	//   - dx: horizontal delta in pixels
	//   - dy: vertical delta in pixels, positive down
	Pan(dx, dy float32)

	// Rotate orbits the eye around the center by dx pixels right and dy pixels down,
	// preserving the distance. Same thresholds and inertia recording as Pan.
	//
	// Parameters:
	//   - dx: horizontal delta in pixels
	//   - dy: vertical delta in pixels, positive down
	Rotate(dx, dy float32)

	// Dolly moves the eye by factor * (center - position). Positive factors move closer.
	// Results closer than the minimum distance are rejected.
	//
	// Parameters:
	//   - factor: fraction of the distance to travel
	//
	// Returns:
	//   - bool: false if the move was rejected
	Dolly(factor float32) bool

	// Zoom frames a screen rectangle: it pans the rectangle's center to the viewport center, then
	// dollies so the distance is multiplied by the larger rectangle-to-viewport ratio.
	//
	// Parameters:
	//   - x0, y0: one corner of the rectangle in pixels
	//   - x1, y1: the opposite corner in pixels
	//
	// Returns:
	//   - common.Vec2: the pan applied in pixels
	//   - float32: the ratio applied to the distance, 0 if no dolly happened
	Zoom(x0, y0, x1, y1 float32) (common.Vec2, float32)

	// AnimateTo starts a scripted move to the given view. Running inertia is cancelled.
	//
	// Parameters:
	//   - center: target look-at point
	//   - position: target eye position
	//   - up: target up vector
	//   - options: duration and easing
	AnimateTo(center, position, up common.Vec3, options AnimationOptions)

	// Animate applies the given progress of the current animation mode. Called by the Animator.
	//
	// Parameters:
	//   - progress: linear progress in [0, 1]
	Animate(progress float32)

	// EndAnimation returns the camera to idle and clears inertia state.
	EndAnimation()

	// EndPan hands a finished pan gesture to inertia if it was the last recorded gesture.
	EndPan()

	// EndRotate hands a finished rotate gesture to inertia if it was the last recorded gesture.
	EndRotate()

	// StopInertia cancels a running inertia decay and forgets the last recorded gesture, so a
	// following EndPan or EndRotate starts nothing.
	StopInertia()

	// ViewFrom animates to a standard view of b along the given direction. Unset bounds keep the
	// current center and distance. An unknown direction panics.
	//
	// Parameters:
	//   - direction: the preset view direction
	//   - b: the bounds to frame
	//   - options: duration and easing
	ViewFrom(direction ViewDirection, b bounds.Bounds, options AnimationOptions)

	// FitToView animates so b fills the viewport, keeping the current view direction.
	// No-op for unset bounds.
	//
	// Parameters:
	//   - b: the bounds to frame
	//   - options: duration and easing
	FitToView(b bounds.Bounds, options AnimationOptions)

	// Uniform returns the 80-byte GPU camera uniform for the current view.
	Uniform() []byte
}

var _ Camera = &cameraImpl{}

// NewCamera creates a perspective camera at (0, 0, 10) looking at the origin with a 45 degree
// field of view, then configures it for a 1x1 viewport until the first Configure.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		position:        common.Vec3{0, 0, 10},
		up:              common.Vec3{0, 1, 0},
		fov:             45.0 * (math.Pi / 180.0),
		projection:      Perspective,
		dollyFactor:     DefaultDollyFactor,
		panFactor:       1,
		minDistance:     DefaultMinDistance,
		inertiaDuration: DefaultInertiaDuration,
		width:           1,
		height:          1,

		projectionMatrix: common.IdentityMatrix,
		viewMatrix:       common.IdentityMatrix,
	}
	for _, option := range options {
		option(c)
	}
	c.up = c.up.Orthogonalize(c.forward())
	c.Configure(c.width, c.height)
	c.Place()
	return c
}

func (c *cameraImpl) Position() common.Vec3 { return c.position }

func (c *cameraImpl) Center() common.Vec3 { return c.center }

func (c *cameraImpl) Up() common.Vec3 { return c.up }

func (c *cameraImpl) Distance() float32 { return c.position.Sub(c.center).Length() }

func (c *cameraImpl) Fov() float32 { return c.fov }

func (c *cameraImpl) Projection() Projection { return c.projection }

func (c *cameraImpl) State() State {
	return State{
		Position:   c.position,
		Center:     c.center,
		Up:         c.up,
		Fov:        c.fov,
		Projection: c.projection,
	}
}

func (c *cameraImpl) Viewport() (width, height int) { return c.width, c.height }

func (c *cameraImpl) FrustumDef() FrustumDef { return c.frustum }

func (c *cameraImpl) ClipFrustum() common.Frustum {
	c.ensureCurrent()
	return common.ExtractFrustumFromMatrix(c.viewProjectionMatrix[:])
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 { return c.projectionMatrix }

func (c *cameraImpl) ViewMatrix() [16]float32 { return c.viewMatrix }

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 { return c.viewProjectionMatrix }

func (c *cameraImpl) DollyFactor() float32 { return c.dollyFactor }

func (c *cameraImpl) PanFactor() float32 { return c.panFactor }

func (c *cameraImpl) Motion() Motion { return c.motion }

func (c *cameraImpl) InertiaVelocity() common.Vec2 { return c.inertiaVelocity }

func (c *cameraImpl) SetView(center, position, up common.Vec3) {
	c.center = center
	c.position = position
	c.up = up.Orthogonalize(c.forward())
	c.dirty = true
}

func (c *cameraImpl) SetFov(fov float32) {
	c.fov = common.Clamp(fov, minFov, maxFov)
	c.dirty = true
}

func (c *cameraImpl) SetProjection(p Projection) {
	if p != Perspective && p != Parallel {
		panic("camera: unknown projection " + p.String())
	}
	c.projection = p
	c.Configure(c.width, c.height)
	c.dirty = true
}

func (c *cameraImpl) SetAnimator(a animator.Animator) {
	c.animator = a
}

// forward returns the unit view direction, or -Z when position and center coincide.
func (c *cameraImpl) forward() common.Vec3 {
	f := c.center.Sub(c.position)
	if f.Length() < minClipDistance {
		return common.Vec3{0, 0, -1}
	}
	return f.Normalize()
}

// basis returns the view direction and the screen right and up axes in world space.
func (c *cameraImpl) basis() (forward, right, up common.Vec3) {
	forward = c.forward()
	right = forward.Cross(c.up)
	if right.Length() < 1e-6 {
		right = common.Vec3{1, 0, 0}.Orthogonalize(forward)
	} else {
		right = right.Normalize()
	}
	up = right.Cross(forward)
	return forward, right, up
}
