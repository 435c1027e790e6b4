package engine

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/config"
	"github.com/Carmen-Shannon/oxy-view/engine/bounds"
	"github.com/Carmen-Shannon/oxy-view/engine/interaction"
	"github.com/Carmen-Shannon/oxy-view/engine/scene"
	"github.com/Carmen-Shannon/oxy-view/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWindow replays one scripted event per loop iteration and returns from ProcessMessages
// where a real window would block waiting for input.
type fakeWindow struct {
	width, height int
	running       bool
	closed        int
	wakes         atomic.Int32
	cursor        interaction.Cursor
	events        []func()

	onUpdate      func()
	onNeedsFrame  func() bool
	onResize      func(width, height int)
	onScroll      func(delta float32)
	onKeyDown     func(keyCode uint32)
	onKeyUp       func(keyCode uint32)
	onMouseButton func(button common.MouseButton, pressed bool, mods common.Modifier, x, y float32)
	onMouseMove   func(x, y float32)
}

var _ window.Window = &fakeWindow{}

func newFakeWindow() *fakeWindow {
	return &fakeWindow{width: 200, height: 200, running: true}
}

func (w *fakeWindow) SetCursor(cursor interaction.Cursor) { w.cursor = cursor }

func (w *fakeWindow) SetUpdateCallback(callback func()) { w.onUpdate = callback }

func (w *fakeWindow) SetNeedsFrameCallback(callback func() bool) { w.onNeedsFrame = callback }

func (w *fakeWindow) SetResizeCallback(callback func(width, height int)) { w.onResize = callback }

func (w *fakeWindow) SetScrollCallback(callback func(delta float32)) { w.onScroll = callback }

func (w *fakeWindow) SetKeyDownCallback(callback func(keyCode uint32)) { w.onKeyDown = callback }

func (w *fakeWindow) SetKeyUpCallback(callback func(keyCode uint32)) { w.onKeyUp = callback }

func (w *fakeWindow) SetMouseButtonCallback(callback func(button common.MouseButton, pressed bool, mods common.Modifier, x, y float32)) {
	w.onMouseButton = callback
}

func (w *fakeWindow) SetMouseMoveCallback(callback func(x, y float32)) { w.onMouseMove = callback }

func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }

func (w *fakeWindow) Wake() { w.wakes.Add(1) }

func (w *fakeWindow) IsRunning() bool { return w.running }

func (w *fakeWindow) Width() int { return w.width }

func (w *fakeWindow) Height() int { return w.height }

func (w *fakeWindow) Close() error {
	w.closed++
	w.running = false
	return nil
}

func (w *fakeWindow) ProcessMessages() {
	for w.running {
		if len(w.events) == 0 && w.onNeedsFrame != nil && !w.onNeedsFrame() {
			return
		}
		if len(w.events) > 0 {
			event := w.events[0]
			w.events = w.events[1:]
			event()
		}
		if w.onUpdate != nil {
			w.onUpdate()
		}
	}
}

type countingPipeline struct {
	mu     sync.Mutex
	scenes int
	err    error
}

func (p *countingPipeline) ClearScene(background [4]float32) {}

func (p *countingPipeline) DrawScene(ctx *scene.RenderContext, visible []scene.Renderable) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scenes++
	return p.err
}

func (p *countingPipeline) DrawOverlay(ctx *scene.RenderContext) error { return nil }

func (p *countingPipeline) drawn() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.scenes
}

type panBlocker struct {
	pans int
}

func (b *panBlocker) Bounds() bounds.Bounds { return bounds.New(common.Vec3{-1, -1, -1}, common.Vec3{1, 1, 1}) }

func (b *panBlocker) HandlePan(dx, dy float32) bool {
	b.pans++
	return true
}

func factoryFor(p scene.RenderPipeline) PipelineFactory {
	return func(w window.Window) (scene.RenderPipeline, error) { return p, nil }
}

func newTestEngine(t *testing.T, w *fakeWindow, p *countingPipeline, options ...EngineBuilderOption) Engine {
	t.Helper()
	e, err := NewEngine(config.Default(), factoryFor(p), append([]EngineBuilderOption{WithWindow(w)}, options...)...)
	require.NoError(t, err)
	return e
}

func TestNewEngineErrors(t *testing.T) {
	_, err := NewEngine(config.Default(), nil, WithWindow(newFakeWindow()))
	require.Error(t, err)

	cfg := config.Default()
	cfg.Window.Width = 0
	_, err = NewEngine(cfg, factoryFor(&countingPipeline{}), WithWindow(newFakeWindow()))
	require.Error(t, err)

	boom := errors.New("no adapter")
	w := newFakeWindow()
	_, err = NewEngine(config.Default(), func(window.Window) (scene.RenderPipeline, error) { return nil, boom }, WithWindow(w))
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, w.closed, "a supplied window is left to its owner")
}

func TestRunDrawsOnceThenIdles(t *testing.T) {
	w := newFakeWindow()
	p := &countingPipeline{}
	e := newTestEngine(t, w, p)

	require.NoError(t, e.Run())
	assert.Equal(t, 1, p.drawn())
	width, height := e.Scene().Camera().Viewport()
	assert.Equal(t, 200, width)
	assert.Equal(t, 200, height)
	assert.False(t, e.Scene().NeedsRepaint())
}

func TestInputIsRoutedToScene(t *testing.T) {
	w := newFakeWindow()
	p := &countingPipeline{}
	blocker := &panBlocker{}
	frames := 0
	e := newTestEngine(t, w, p, WithSceneOptions(scene.WithRenderables(blocker)))
	e.SetFrameCallback(func(time.Time) { frames++ })

	w.events = []func(){
		func() { w.onMouseMove(5, 5) },
		func() { w.onMouseButton(common.MouseButtonRight, true, common.ModNone, 10, 10) },
		func() { w.onMouseMove(40, 10) },
		func() { w.onMouseButton(common.MouseButtonRight, false, common.ModNone, 40, 10) },
		func() { w.onResize(640, 480) },
	}
	require.NoError(t, e.Run())

	assert.Equal(t, 1, blocker.pans)
	assert.Equal(t, interaction.TypeNone, e.Scene().Dispatcher().Active())
	assert.Equal(t, interaction.CursorArrow, w.cursor)
	width, height := e.Scene().Camera().Viewport()
	assert.Equal(t, 640, width)
	assert.Equal(t, 480, height)
	assert.Equal(t, frames, p.drawn())
	assert.GreaterOrEqual(t, frames, 4)
}

func TestKeysAreRoutedToController(t *testing.T) {
	w := newFakeWindow()
	e := newTestEngine(t, w, &countingPipeline{})

	w.events = []func(){
		func() { w.onKeyDown(common.KeyD) },
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		time.Sleep(20 * time.Millisecond)
		e.Quit()
	}()
	require.NoError(t, e.Run())
	<-done

	assert.True(t, e.Scene().Keys().Held(common.KeyD))
	assert.Equal(t, 1, w.closed)
}

func TestFrameErrorStopsLoop(t *testing.T) {
	w := newFakeWindow()
	p := &countingPipeline{err: errors.New("device lost")}
	e := newTestEngine(t, w, p)

	err := e.Run()
	require.ErrorIs(t, err, p.err)
	assert.Equal(t, 1, w.closed)
	assert.Equal(t, 1, p.drawn())
}

func TestErrorHandlerKeepsLoopAlive(t *testing.T) {
	w := newFakeWindow()
	p := &countingPipeline{err: errors.New("surface outdated")}
	var got []error
	e := newTestEngine(t, w, p, WithErrorHandler(func(err error) { got = append(got, err) }))

	require.NoError(t, e.Run())
	require.Len(t, got, 1)
	assert.ErrorIs(t, got[0], p.err)
	assert.Equal(t, 0, w.closed)
}

func TestQuitIsIdempotent(t *testing.T) {
	w := newFakeWindow()
	p := &countingPipeline{}
	e := newTestEngine(t, w, p)
	before := w.wakes.Load()

	var wg sync.WaitGroup
	for range 3 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.Quit()
		}()
	}
	wg.Wait()
	assert.Equal(t, before+1, w.wakes.Load())

	require.NoError(t, e.Run())
	assert.Equal(t, 1, w.closed)
	assert.Equal(t, 0, p.drawn())
}

func TestProfilerCountsDrawnFrames(t *testing.T) {
	w := newFakeWindow()
	e := newTestEngine(t, w, &countingPipeline{},
		WithProfiling(true),
		WithProfilerInterval(time.Millisecond),
		WithClock(func() time.Time { return time.Now().Add(time.Hour) }),
	)

	require.NoError(t, e.Run())
	stats := e.(*engine).profiler.Last()
	assert.Equal(t, 1, stats.Frames)
	assert.Equal(t, 0, stats.Idle)
}

func TestKeyHandlerConsumesPresses(t *testing.T) {
	w := newFakeWindow()
	var seen []uint32
	e := newTestEngine(t, w, &countingPipeline{}, WithKeyHandler(func(keyCode uint32) bool {
		seen = append(seen, keyCode)
		return keyCode == '1'
	}))

	w.onKeyDown('1')
	assert.False(t, e.Scene().Keys().Held('1'))
	w.onKeyDown(common.KeyD)
	assert.True(t, e.Scene().Keys().Held(common.KeyD))
	assert.Equal(t, []uint32{'1', common.KeyD}, seen)
}
