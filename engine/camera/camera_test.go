package camera

import (
	"math"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/animator"
	"github.com/Carmen-Shannon/oxy-view/engine/bounds"
	"github.com/Carmen-Shannon/oxy-view/engine/easing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-3

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) time.Time {
	c.now = c.now.Add(d)
	return c.now
}

func newAnimatedCamera(options ...CameraBuilderOption) (Camera, animator.Animator, *fakeClock) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	a := animator.NewAnimator(animator.WithClock(clock.Now))
	options = append([]CameraBuilderOption{WithViewport(200, 200), WithAnimator(a)}, options...)
	return NewCamera(options...), a, clock
}

func assertVec3(t *testing.T, expected, actual common.Vec3, delta float64, msgAndArgs ...any) {
	t.Helper()
	for i := range expected {
		assert.InDelta(t, expected[i], actual[i], delta, msgAndArgs...)
	}
}

func assertVec2(t *testing.T, expected, actual common.Vec2, delta float64, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, expected[0], actual[0], delta, msgAndArgs...)
	assert.InDelta(t, expected[1], actual[1], delta, msgAndArgs...)
}

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()
	assert.Equal(t, common.Vec3{0, 0, 10}, c.Position())
	assert.Equal(t, common.Vec3{}, c.Center())
	assertVec3(t, common.Vec3{0, 1, 0}, c.Up(), 1e-6)
	assert.Equal(t, Perspective, c.Projection())
	assert.Equal(t, MotionIdle, c.Motion())
	w, h := c.Viewport()
	assert.Equal(t, 1, w)
	assert.Equal(t, 1, h)
}

func TestConfigureClampsAndKeepsClipHeuristic(t *testing.T) {
	c := NewCamera()
	c.Configure(100, 0)
	w, h := c.Viewport()
	assert.Equal(t, 100, w)
	assert.Equal(t, 1, h)

	def := c.FrustumDef()
	assert.InDelta(t, 100, def.Aspect, 1e-6)
	assert.InDelta(t, 0.001, def.Near, 1e-7)
	assert.InDelta(t, 10000, def.Far, 1e-2)
	assert.InDelta(t, 2*math.Tan(math.Pi/8)*0.001, def.NearHeight, 1e-7)

	c.SetProjection(Parallel)
	def = c.FrustumDef()
	assert.InDelta(t, 2*math.Tan(math.Pi/8)*10, def.NearHeight, 1e-4)
	assert.Equal(t, def.NearHeight, def.FarHeight)
	assert.InDelta(t, 0.001, def.Near, 1e-7)
}

func TestProjectionForIsPure(t *testing.T) {
	s := State{Position: common.Vec3{0, 0, 4}, Up: common.Vec3{0, 1, 0}, Fov: 1, Projection: Perspective}
	m1, d1 := ProjectionFor(s, 640, 480)
	m2, d2 := ProjectionFor(s, 640, 480)
	assert.Equal(t, m1, m2)
	assert.Equal(t, d1, d2)
	assert.Equal(t, ViewFor(s), ViewFor(s))

	assert.Panics(t, func() { ProjectionFor(State{Projection: Projection(7), Fov: 1}, 1, 1) })
}

func TestRotatePreservesDistance(t *testing.T) {
	deltas := []common.Vec2{{10, 0}, {0, 10}, {-35, 12}, {150, -80}, {0.5, 0.02}, {400, 400}}
	c := NewCamera(WithViewport(200, 200), WithPosition(common.Vec3{3, 4, 5}), WithCenter(common.Vec3{1, -1, 2}))
	want := c.Distance()

	for _, d := range deltas {
		c.Rotate(d[0], d[1])
		assert.InDelta(t, want, c.Distance(), 1e-4, "delta %v", d)
		forward := c.Center().Sub(c.Position()).Normalize()
		assert.InDelta(t, 0, c.Up().Dot(forward), 1e-4, "up stays orthogonal")
		assert.InDelta(t, 1, c.Up().Length(), 1e-4)
	}
	assertVec3(t, common.Vec3{1, -1, 2}, c.Center(), 1e-6, "rotate keeps the center")
}

func TestRotateDirection(t *testing.T) {
	c := NewCamera(WithViewport(200, 200))
	c.Rotate(20, 0)
	assert.Greater(t, c.Position()[0], float32(0), "positive dx orbits right")

	c = NewCamera(WithViewport(200, 200))
	c.Rotate(0, 20)
	assert.Less(t, c.Position()[1], float32(0), "positive dy orbits down")
}

func TestPanMovesPositionAndCenterTogether(t *testing.T) {
	c := NewCamera(WithViewport(200, 200))
	s := c.SceneToWorldScaling()
	require.InDelta(t, 2*math.Tan(math.Pi/8)*10/200, s, 1e-6)

	c.Pan(10, 20)
	assertVec3(t, common.Vec3{10 * s, -20 * s, 0}, c.Center(), 1e-5)
	assertVec3(t, common.Vec3{10 * s, -20 * s, 10}, c.Position(), 1e-5)
	assert.Equal(t, common.Vec2{10, 20}, c.InertiaVelocity())
}

func TestSubPixelDeltasAreIgnored(t *testing.T) {
	c := NewCamera(WithViewport(200, 200))
	c.Pan(0.005, -0.009)
	c.Rotate(0.001, 0)
	assert.Equal(t, common.Vec3{0, 0, 10}, c.Position())
	assert.Equal(t, common.Vec2{}, c.InertiaVelocity())

	c.Pan(0.005, 0.5)
	assert.NotEqual(t, common.Vec3{0, 0, 10}, c.Position(), "one component above the threshold is enough")
}

func TestDolly(t *testing.T) {
	c := NewCamera(WithViewport(200, 200))
	require.True(t, c.Dolly(0.5))
	assert.InDelta(t, 5, c.Distance(), 1e-5)

	require.True(t, c.Dolly(-1))
	assert.InDelta(t, 10, c.Distance(), 1e-5)

	assert.False(t, c.Dolly(1), "reaching the center is rejected")
	assert.False(t, c.Dolly(1.5), "passing through the center is rejected")
	assert.InDelta(t, 10, c.Distance(), 1e-5)
}

func TestDollyReconfiguresParallel(t *testing.T) {
	c := NewCamera(WithViewport(200, 200), WithProjection(Parallel))
	before := c.FrustumDef().NearHeight
	require.True(t, c.Dolly(0.5))
	assert.InDelta(t, before/2, c.FrustumDef().NearHeight, 1e-4)
}

func TestZoomScenario(t *testing.T) {
	c := NewCamera(WithViewport(200, 200))
	s := c.SceneToWorldScaling()
	target := common.Vec3{-40 * s, 40 * s, 0}
	assertVec2(t, common.Vec2{60, 60}, c.WorldToScreen(target), 1e-2)

	pan, ratio := c.Zoom(10, 10, 110, 110)
	assert.Equal(t, common.Vec2{-40, -40}, pan)
	assert.Equal(t, float32(0.5), ratio)

	assert.InDelta(t, 5, c.Distance(), 1e-4)
	assertVec3(t, target, c.Center(), 1e-4)
	assertVec2(t, common.Vec2{100, 100}, c.WorldToScreen(target), 1e-2)
	assert.Equal(t, common.Vec2{}, c.InertiaVelocity(), "zoom does not feed inertia")
}

func TestZoomDegenerateRectangle(t *testing.T) {
	c := NewCamera(WithViewport(200, 200))
	pan, ratio := c.Zoom(100, 100, 100, 100)
	assert.Equal(t, common.Vec2{}, pan)
	assert.Equal(t, float32(0), ratio)
	assert.InDelta(t, 10, c.Distance(), 1e-5)
}

func TestScreenToWorldRoundTrip(t *testing.T) {
	screens := []common.Vec2{{100, 100}, {0, 0}, {10, 190}, {150, 42}, {199, 1}}

	t.Run("perspective front", func(t *testing.T) {
		c := NewCamera(WithViewport(200, 200), WithPosition(common.Vec3{}), WithCenter(common.Vec3{0, 0, -5}))
		for _, p := range screens {
			hit := c.ScreenToWorld(p)
			assert.Equal(t, p, hit.Screen)
			assert.Same(t, c.(*cameraImpl), hit.Source.(*cameraImpl))
			assertVec2(t, p, c.WorldToScreen(hit.Front), 1e-2, "screen %v", p)
		}
	})

	for _, proj := range []Projection{Perspective, Parallel} {
		t.Run(proj.String()+" along the line", func(t *testing.T) {
			c := NewCamera(WithViewport(300, 200), WithProjection(proj),
				WithPosition(common.Vec3{2, 3, 8}), WithCenter(common.Vec3{0, 1, 0}))
			for _, p := range screens {
				hit := c.ScreenToWorld(p)
				assertVec2(t, p, c.WorldToScreen(hit.PointAt(0.001)), 5e-2, "screen %v", p)
				if proj == Perspective {
					assertVec2(t, p, c.WorldToScreen(hit.Back), 5e-2, "screen %v", p)
				}
			}
		})
	}
}

func TestScreenCenterRayHitsCenter(t *testing.T) {
	c := NewCamera(WithViewport(200, 200), WithPosition(common.Vec3{3, 4, 12}))
	hit := c.ScreenToWorld(common.Vec2{100, 100})
	forward := c.Center().Sub(c.Position()).Normalize()
	assertVec3(t, forward, hit.Direction(), tol)

	b := bounds.New(common.Vec3{-0.5, -0.5, -0.5}, common.Vec3{0.5, 0.5, 0.5})
	assert.True(t, b.HitTest(hit))
	assert.False(t, b.HitTest(c.ScreenToWorld(common.Vec2{0, 0})))
}

func TestTransformsFollowStateChanges(t *testing.T) {
	c := NewCamera(WithViewport(200, 200))
	c.SetView(common.Vec3{5, 0, 0}, common.Vec3{5, 0, 10}, common.Vec3{0, 1, 0})
	assertVec2(t, common.Vec2{100, 100}, c.WorldToScreen(common.Vec3{5, 0, 0}), 1e-2)
}

// project maps p through projection and view the same way WorldToScreen does.
func project(proj, view [16]float32, p common.Vec3, w, h float32) common.Vec2 {
	v := common.TransformPoint4(view[:], p[0], p[1], p[2], 1)
	clip := common.TransformPoint4(proj[:], v[0], v[1], v[2], v[3])
	return common.Vec2{(clip[0]/clip[3] + 1) / 2 * w, (1 - clip[1]/clip[3]) / 2 * h}
}

func TestPlaceOverlayMapsPixels(t *testing.T) {
	tests := []struct {
		corner   Corner
		pixel    common.Vec3
		expected common.Vec2
	}{
		{CornerTopLeft, common.Vec3{50, 30, 0}, common.Vec2{50, 30}},
		{CornerTopRight, common.Vec3{-50, 30, 0}, common.Vec2{250, 30}},
		{CornerBottomLeft, common.Vec3{50, 30, 0}, common.Vec2{50, 170}},
		{CornerBottomRight, common.Vec3{-10, 10, 0}, common.Vec2{290, 190}},
		{CornerCenter, common.Vec3{20, 20, 0}, common.Vec2{170, 80}},
	}

	for _, proj := range []Projection{Perspective, Parallel} {
		c := NewCamera(WithViewport(300, 200), WithProjection(proj), WithPosition(common.Vec3{1, 2, 30}))
		for _, tt := range tests {
			t.Run(proj.String()+" "+tt.corner.String(), func(t *testing.T) {
				overlay := c.PlaceOverlay(tt.corner)
				got := project(c.ProjectionMatrix(), overlay, tt.pixel, 300, 200)
				assertVec2(t, tt.expected, got, 1e-2)
			})
		}
	}

	c := NewCamera()
	assert.Panics(t, func() { c.PlaceOverlay(Corner(99)) })
}

func TestAnimateToScripted(t *testing.T) {
	c, a, clock := newAnimatedCamera()
	c.AnimateTo(common.Vec3{1, 0, 0}, common.Vec3{1, 0, 5}, common.Vec3{0, 1, 0},
		AnimationOptions{Duration: 100 * time.Millisecond, Easing: easing.LinearType})
	assert.Equal(t, MotionScripted, c.Motion())
	kind, ok := a.Kind(c)
	require.True(t, ok)
	assert.Equal(t, animator.KindScriptedCameraMove, kind)

	a.Tick(clock.Advance(50 * time.Millisecond))
	assertVec3(t, common.Vec3{0.5, 0, 0}, c.Center(), 1e-5)
	assertVec3(t, common.Vec3{0.5, 0, 7.5}, c.Position(), 1e-5)

	a.Tick(clock.Advance(50 * time.Millisecond))
	assertVec3(t, common.Vec3{1, 0, 0}, c.Center(), 1e-6)
	assertVec3(t, common.Vec3{1, 0, 5}, c.Position(), 1e-6)
	assert.Equal(t, MotionIdle, c.Motion())
	assert.False(t, a.Active(c))
}

func TestAnimateToInterpolatesDirectionAndDistanceSeparately(t *testing.T) {
	c, a, clock := newAnimatedCamera()
	c.AnimateTo(common.Vec3{}, common.Vec3{20, 0, 0}, common.Vec3{0, 1, 0},
		AnimationOptions{Duration: time.Second, Easing: easing.CubicInOut})

	for i := 1; i <= 10; i++ {
		a.Tick(clock.Advance(100 * time.Millisecond))
		f := easing.Factor(float32(i)/10, easing.CubicInOut)
		assert.InDelta(t, 10+10*f, c.Distance(), 1e-3, "step %d", i)
		forward := c.Center().Sub(c.Position()).Normalize()
		assert.InDelta(t, 0, c.Up().Dot(forward), 1e-4)
	}
	assertVec3(t, common.Vec3{20, 0, 0}, c.Position(), 1e-5)
}

func TestAnimateToWithoutAnimatorJumps(t *testing.T) {
	c := NewCamera(WithViewport(200, 200))
	c.AnimateTo(common.Vec3{1, 1, 1}, common.Vec3{1, 1, 4}, common.Vec3{0, 1, 0}, DefaultAnimationOptions())
	assertVec3(t, common.Vec3{1, 1, 4}, c.Position(), 1e-6)
	assert.Equal(t, MotionIdle, c.Motion())
}

func TestInertiaReplaysDecayingPan(t *testing.T) {
	c, a, clock := newAnimatedCamera(WithInertiaDuration(100 * time.Millisecond))
	s := c.SceneToWorldScaling()

	c.Pan(10, 0)
	afterGesture := c.Center()[0]
	c.EndPan()
	assert.Equal(t, MotionInertia, c.Motion())
	kind, _ := a.Kind(c)
	assert.Equal(t, animator.KindInertiaDecay, kind)

	a.Tick(clock.Advance(50 * time.Millisecond))
	assert.InDelta(t, afterGesture+5*s, c.Center()[0], 1e-5, "half the velocity at half progress")

	a.Tick(clock.Advance(50 * time.Millisecond))
	assert.InDelta(t, afterGesture+5*s, c.Center()[0], 1e-5, "no motion at full progress")
	assert.Equal(t, MotionIdle, c.Motion())
	assert.Equal(t, common.Vec2{}, c.InertiaVelocity())
}

func TestInertiaForRotate(t *testing.T) {
	c, a, clock := newAnimatedCamera()
	c.Rotate(15, 5)
	c.EndPan()
	assert.Equal(t, MotionIdle, c.Motion(), "EndPan does not start rotate inertia")

	c.EndRotate()
	assert.Equal(t, MotionInertia, c.Motion())
	d := c.Distance()
	for i := 0; i < 10; i++ {
		a.Tick(clock.Advance(50 * time.Millisecond))
		assert.InDelta(t, d, c.Distance(), 1e-4)
	}
	assert.Equal(t, MotionIdle, c.Motion())
}

func TestNewGestureInterruptsInertia(t *testing.T) {
	c, a, _ := newAnimatedCamera()
	c.Pan(10, 0)
	c.EndPan()
	require.Equal(t, MotionInertia, c.Motion())

	c.Pan(-3, 0)
	assert.Equal(t, MotionIdle, c.Motion())
	assert.False(t, a.Active(c))
	assert.Equal(t, common.Vec2{-3, 0}, c.InertiaVelocity())
}

func TestEndPanWhileCoastingKeepsDecay(t *testing.T) {
	c, a, clock := newAnimatedCamera(WithInertiaDuration(100 * time.Millisecond))
	s := c.SceneToWorldScaling()

	c.Pan(10, 0)
	c.EndPan()
	a.Tick(clock.Advance(90 * time.Millisecond))
	before := c.Center()[0]

	c.EndPan()
	require.Equal(t, MotionInertia, c.Motion())
	a.Tick(clock.Advance(5 * time.Millisecond))
	assert.InDelta(t, before+0.5*s, c.Center()[0], 1e-5, "decay continues from 95%, not from full velocity")
}

func TestGestureDuringScriptedMoveLeavesNoInertia(t *testing.T) {
	c, a, clock := newAnimatedCamera()
	c.AnimateTo(common.Vec3{}, common.Vec3{0, 0, 10}, common.Vec3{0, 1, 0},
		AnimationOptions{Duration: 100 * time.Millisecond})
	c.Pan(10, 0)
	a.Tick(clock.Advance(100 * time.Millisecond))
	require.Equal(t, MotionIdle, c.Motion())
	assert.Equal(t, common.Vec2{}, c.InertiaVelocity())

	c.EndPan()
	assert.Equal(t, MotionIdle, c.Motion())
	assert.False(t, a.Active(c))
	assertVec3(t, common.Vec3{}, c.Center(), 1e-6)
}

func TestEndPanDuringScriptedMoveDiscardsGesture(t *testing.T) {
	c, a, clock := newAnimatedCamera()
	c.AnimateTo(common.Vec3{}, common.Vec3{0, 0, 10}, common.Vec3{0, 1, 0},
		AnimationOptions{Duration: 100 * time.Millisecond})
	c.Pan(10, 0)
	c.EndPan()
	assert.Equal(t, MotionScripted, c.Motion())
	assert.Equal(t, common.Vec2{}, c.InertiaVelocity())

	a.Tick(clock.Advance(100 * time.Millisecond))
	c.EndPan()
	assert.Equal(t, MotionIdle, c.Motion())
}

func TestStopInertia(t *testing.T) {
	c, a, _ := newAnimatedCamera()
	c.Pan(10, 0)
	c.EndPan()
	require.Equal(t, MotionInertia, c.Motion())

	c.StopInertia()
	assert.Equal(t, MotionIdle, c.Motion())
	assert.False(t, a.Active(c))
	assert.Equal(t, common.Vec2{}, c.InertiaVelocity())

	c.Rotate(5, 5)
	c.StopInertia()
	c.EndRotate()
	assert.Equal(t, MotionIdle, c.Motion(), "a forgotten gesture starts nothing")
}

func TestScriptedMoveCancelsInertia(t *testing.T) {
	c, a, clock := newAnimatedCamera()
	c.Pan(10, 0)
	c.EndPan()
	require.Equal(t, MotionInertia, c.Motion())

	c.AnimateTo(common.Vec3{}, common.Vec3{0, 0, 3}, common.Vec3{0, 1, 0},
		AnimationOptions{Duration: 100 * time.Millisecond})
	assert.Equal(t, MotionScripted, c.Motion())
	assert.Equal(t, common.Vec2{}, c.InertiaVelocity())
	assert.Equal(t, 1, a.Len())

	a.Tick(clock.Advance(time.Second))
	assertVec3(t, common.Vec3{0, 0, 3}, c.Position(), 1e-6)
	assert.Equal(t, MotionIdle, c.Motion())
}

func TestViewFrom(t *testing.T) {
	b := bounds.New(common.Vec3{-1, -1, -1}, common.Vec3{1, 1, 1})
	want := b.Radius() / float32(math.Sin(math.Pi/8))

	c := NewCamera(WithViewport(200, 200))
	c.ViewFrom(ViewTop, b, DefaultAnimationOptions())
	assertVec3(t, common.Vec3{0, want, 0}, c.Position(), 1e-4)
	assertVec3(t, common.Vec3{0, 0, -1}, c.Up(), 1e-5)

	c.ViewFrom(ViewRight, bounds.Bounds{}, DefaultAnimationOptions())
	assertVec3(t, common.Vec3{want, 0, 0}, c.Position(), 1e-4, "unset bounds keep the distance")

	assert.Panics(t, func() { c.ViewFrom(ViewDirection(42), b, DefaultAnimationOptions()) })

	v, err := ParseViewDirection("isometric")
	require.NoError(t, err)
	assert.Equal(t, ViewIsometric, v)
	_, err = ParseViewDirection("sideways")
	assert.Error(t, err)
}

func TestFitToViewKeepsDirection(t *testing.T) {
	c := NewCamera(WithViewport(200, 200), WithPosition(common.Vec3{0, 0, 50}))
	b := bounds.New(common.Vec3{9, 9, 9}, common.Vec3{11, 11, 11})
	c.FitToView(b, DefaultAnimationOptions())

	assertVec3(t, common.Vec3{10, 10, 10}, c.Center(), 1e-5)
	dir := c.Position().Sub(c.Center()).Normalize()
	assertVec3(t, common.Vec3{0, 0, 1}, dir, 1e-5)
	assert.InDelta(t, b.Radius()/float32(math.Sin(math.Pi/8)), c.Distance(), 1e-4)

	before := c.Position()
	c.FitToView(bounds.Bounds{}, DefaultAnimationOptions())
	assert.Equal(t, before, c.Position())
}

func TestUniform(t *testing.T) {
	c := NewCamera(WithViewport(200, 200))
	buf := c.Uniform()
	require.Len(t, buf, 80)
	assert.Equal(t, []byte{0, 0, 0x20, 0x41}, buf[72:76], "camera z = 10.0 little endian")
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "parallel", Parallel.String())
	assert.Equal(t, "top-left", CornerTopLeft.String())
	assert.Equal(t, "inertia", MotionInertia.String())
	p, err := ParseProjection("orthographic")
	require.NoError(t, err)
	assert.Equal(t, Parallel, p)
	assert.Panics(t, func() { NewCamera().SetProjection(Projection(3)) })
}
