package camera

import (
	"fmt"
	"time"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/animator"
	"github.com/Carmen-Shannon/oxy-view/engine/easing"
)

// Defaults applied by NewCamera.
const (
	DefaultDollyFactor     = 0.01
	DefaultMinDistance     = 1e-3
	DefaultInertiaDuration = 400 * time.Millisecond
	DefaultAnimateDuration = 500 * time.Millisecond
)

const (
	minFov = 0.01
	maxFov = 3.13
)

// Motion is the camera's animation mode. At most one mode is active at a time.
type Motion int

const (
	// MotionIdle means no animation is driving the camera.
	MotionIdle Motion = iota
	// MotionScripted means an AnimateTo transition is running.
	MotionScripted
	// MotionInertia means a pan or rotate gesture is decaying after release.
	MotionInertia
)

func (m Motion) String() string {
	switch m {
	case MotionIdle:
		return "idle"
	case MotionScripted:
		return "scripted"
	case MotionInertia:
		return "inertia"
	default:
		return fmt.Sprintf("Motion(%d)", int(m))
	}
}

// gesture is the kind of pointer motion inertia replays.
type gesture int

const (
	gestureNone gesture = iota
	gesturePan
	gestureRotate
)

// AnimationOptions controls a scripted camera move.
type AnimationOptions struct {
	// Duration of the move. Zero or negative completes on the next animator tick.
	Duration time.Duration
	// Easing applied to the linear progress.
	Easing easing.Type
}

// DefaultAnimationOptions returns a 500ms cubic in-out move.
func DefaultAnimationOptions() AnimationOptions {
	return AnimationOptions{Duration: DefaultAnimateDuration, Easing: easing.DefaultEasing}
}

func (c *cameraImpl) AnimateTo(center, position, up common.Vec3, options AnimationOptions) {
	c.resetInertia()

	c.startCenter = c.center
	c.startDir, c.startDist = splitOffset(c.position.Sub(c.center))
	c.startUp = c.up

	c.stopCenter = center
	c.stopDir, c.stopDist = splitOffset(position.Sub(center))
	if c.stopDir.IsZero() {
		c.stopDir = c.startDir
	}
	if c.startDir.IsZero() {
		c.startDir = c.stopDir
	}
	if c.stopDir.IsZero() {
		c.startDir, c.stopDir = common.Vec3{0, 0, 1}, common.Vec3{0, 0, 1}
	}
	c.stopDist = max(c.stopDist, c.minDistance)
	c.stopUp = up.Orthogonalize(c.stopDir)
	c.options = options
	c.motion = MotionScripted

	if c.animator == nil {
		c.Animate(1)
		c.EndAnimation()
		return
	}
	c.animator.Register(animator.Animation{
		Kind:     animator.KindScriptedCameraMove,
		Target:   c,
		Duration: options.Duration,
		Step:     c.Animate,
		End:      c.endMotion(MotionScripted),
	})
}

func (c *cameraImpl) Animate(progress float32) {
	switch c.motion {
	case MotionScripted:
		c.animateScripted(progress)
	case MotionInertia:
		v := c.inertiaVelocity.Scale(1 - common.Clamp(progress, 0, 1))
		switch c.inertiaType {
		case gesturePan:
			c.panBy(v[0], v[1])
		case gestureRotate:
			c.rotateBy(v[0], v[1])
		}
	}
}

func (c *cameraImpl) EndAnimation() {
	c.resetInertia()
	c.motion = MotionIdle
}

func (c *cameraImpl) EndPan() { c.startInertia(gesturePan) }

func (c *cameraImpl) EndRotate() { c.startInertia(gestureRotate) }

func (c *cameraImpl) StopInertia() {
	c.interruptInertia()
	c.resetInertia()
}

// animateScripted interpolates center, distance, direction and up independently.
func (c *cameraImpl) animateScripted(progress float32) {
	if progress >= 1 {
		c.center = c.stopCenter
		c.position = c.stopCenter.Add(c.stopDir.Scale(c.stopDist))
		c.up = c.stopUp
		c.dirty = true
		return
	}

	f := easing.Factor(progress, c.options.Easing)
	c.center = c.startCenter.Lerp(c.stopCenter, f)
	dist := common.Lerp(c.startDist, c.stopDist, f)
	dir := c.startDir.Lerp(c.stopDir, f)
	if dir.Length() < 1e-6 {
		dir = c.stopDir
	}
	dir = dir.Normalize()

	c.position = c.center.Add(dir.Scale(dist))
	c.up = c.startUp.Lerp(c.stopUp, f).Orthogonalize(dir)
	c.dirty = true
}

// startInertia registers an inertia decay if g was the last recorded gesture and the camera is idle.
// A gesture recorded during a scripted move is discarded.
func (c *cameraImpl) startInertia(g gesture) {
	switch {
	case c.motion == MotionScripted:
		c.resetInertia()
		return
	case c.motion == MotionInertia || c.inertiaType != g:
		return
	}
	if c.animator == nil || c.inertiaDuration <= 0 || ignorable(c.inertiaVelocity[0], c.inertiaVelocity[1]) {
		c.resetInertia()
		return
	}
	c.motion = MotionInertia
	common.Logger().Debug("camera inertia", "gesture", g, "velocity", c.inertiaVelocity, "duration", c.inertiaDuration)
	c.animator.Register(animator.Animation{
		Kind:     animator.KindInertiaDecay,
		Target:   c,
		Duration: c.inertiaDuration,
		Step:     c.Animate,
		End:      c.endMotion(MotionInertia),
	})
}

// endMotion returns an End callback that only idles the camera if m is still the active mode.
func (c *cameraImpl) endMotion(m Motion) func() {
	return func() {
		if c.motion == m {
			c.EndAnimation()
		}
	}
}

func (c *cameraImpl) resetInertia() {
	c.inertiaVelocity = common.Vec2{}
	c.inertiaType = gestureNone
}

// splitOffset separates an offset into a unit direction and a length.
func splitOffset(v common.Vec3) (common.Vec3, float32) {
	l := v.Length()
	if l < minClipDistance {
		return common.Vec3{}, 0
	}
	return v.Scale(1 / l), l
}
