package scene

import (
	"cmp"
	"fmt"
	"runtime"
	"slices"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/config"
	"github.com/Carmen-Shannon/oxy-view/engine/animator"
	"github.com/Carmen-Shannon/oxy-view/engine/bounds"
	"github.com/Carmen-Shannon/oxy-view/engine/camera"
	"github.com/Carmen-Shannon/oxy-view/engine/interaction"
)

// Scene owns a camera, its animator and the pointer and keyboard controllers that drive it,
// together with the list of renderables it frames, hit-tests and hands to the render pipeline.
//
// A Scene belongs to the render thread. Only Resize and RequestRepaint may be called from
// other goroutines.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Config returns the configuration the scene was built with.
	Config() config.Config

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// Animator returns the animator advanced once per Frame.
	Animator() animator.Animator

	// Dispatcher returns the pointer gesture dispatcher bound to the camera.
	Dispatcher() interaction.Dispatcher

	// Keys returns the keyboard controller bound to the camera.
	Keys() interaction.KeyController

	// Registry returns the gesture interceptor registry shared with the dispatcher.
	Registry() *interaction.Registry

	// Add appends renderables to the scene and registers any gesture interceptors they implement.
	//
	// Parameters:
	//   - items: the renderables to add
	Add(items ...Renderable)

	// Remove deletes a renderable and its interceptor registrations.
	//
	// Parameters:
	//   - item: the renderable to remove
	//
	// Returns:
	//   - bool: false if item was not in the scene
	Remove(item Renderable) bool

	// Clear removes every renderable.
	Clear()

	// Renderables returns the renderables in insertion order. The slice must not be modified.
	Renderables() []Renderable

	// Count returns the number of renderables.
	Count() int

	// ComputeBounds merges the bounds of every renderable. Large scenes fold in parallel on the
	// scene's worker pool.
	//
	// Returns:
	//   - bounds.Bounds: the union of all set bounds; unset if none are set
	ComputeBounds() bounds.Bounds

	// FitToView animates the camera to frame the whole scene.
	FitToView()

	// ViewFrom animates the camera to a standard view of the whole scene.
	//
	// Parameters:
	//   - direction: the side to view from
	ViewFrom(direction camera.ViewDirection)

	// ApplyPreset animates the camera to a named view preset from the configuration.
	//
	// Parameters:
	//   - name: the preset name
	//
	// Returns:
	//   - error: if no preset has that name
	ApplyPreset(name string) error

	// HitTest returns the renderables whose bounds the pointer ray at (x, y) crosses, nearest first.
	//
	// Parameters:
	//   - x, y: pointer position in pixels
	//
	// Returns:
	//   - []Renderable: the hit renderables
	HitTest(x, y float32) []Renderable

	// Visible returns the renderables not culled by the camera frustum, in scene order.
	Visible() []Renderable

	// Resize records a new framebuffer size, applied at the start of the next Frame.
	// Safe to call from any goroutine.
	//
	// Parameters:
	//   - width, height: framebuffer size in pixels
	Resize(width, height int)

	// RequestRepaint marks the scene dirty and wakes the render loop. Safe to call from any goroutine.
	RequestRepaint()

	// NeedsRepaint reports whether a frame should be drawn.
	NeedsRepaint() bool

	// Frame draws one frame: pending resize, animation tick, keyboard step, then scene and overlay.
	//
	// Parameters:
	//   - now: the frame timestamp
	//
	// Returns:
	//   - error: if the pipeline failed to draw
	Frame(now time.Time) error
}

type scene struct {
	name     string
	cfg      config.Config
	pipeline RenderPipeline

	cam        camera.Camera
	anim       animator.Animator
	dispatcher interaction.Dispatcher
	keys       interaction.KeyController
	registry   *interaction.Registry

	cursor   interaction.CursorSetter
	onSelect interaction.SelectHandler
	waker    func()
	corner   camera.Corner

	renderables []Renderable
	ctx         RenderContext

	// Written from any goroutine.
	pendingSize   atomic.Uint64
	resizePending atomic.Bool
	repaint       atomic.Bool

	// computePool folds renderable bounds in parallel. Workers persist across calls.
	computePool    worker.DynamicWorkerPool
	computeWorkers int
}

var _ Scene = &scene{}

var _ interaction.CameraControl = camera.Camera(nil)

// NewScene creates a Scene from a validated configuration. The camera, animator, dispatcher and
// key controller are built from cfg unless supplied through options. Panics if cfg is invalid
// or pipeline is nil.
//
// Parameters:
//   - name: the name of the scene
//   - cfg: the scene configuration
//   - pipeline: the render pipeline that draws frames (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cfg config.Config, pipeline RenderPipeline, options ...SceneBuilderOption) Scene {
	if pipeline == nil {
		panic("scene: NewScene requires a non-nil RenderPipeline")
	}
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("scene: invalid config: %v", err))
	}

	s := &scene{
		name:           name,
		cfg:            cfg,
		pipeline:       pipeline,
		registry:       interaction.NewRegistry(),
		corner:         camera.CornerTopLeft,
		computeWorkers: min(cfg.Scene.BoundsWorkers, max(runtime.NumCPU(), 1)),
	}

	for _, option := range options {
		option(s)
	}

	if s.anim == nil {
		s.anim = animator.NewAnimator()
	}
	if s.cam == nil {
		opts := append(cfg.CameraOptions(cfg.Window.Width, cfg.Window.Height), camera.WithAnimator(s.anim))
		s.cam = camera.NewCamera(opts...)
	} else {
		s.cam.SetAnimator(s.anim)
	}

	dispatcherOpts, err := cfg.DispatcherOptions()
	if err != nil {
		panic(fmt.Sprintf("scene: %v", err))
	}
	dispatcherOpts = append(dispatcherOpts,
		interaction.WithRegistry(s.registry),
		interaction.WithCursorSetter(s.cursor),
		interaction.WithSelectHandler(s.onSelect),
	)
	s.dispatcher = interaction.NewDispatcher(s.cam, dispatcherOpts...)
	s.keys = interaction.NewKeyController(s.cam, append(cfg.KeyControllerOptions(), interaction.WithFitHandler(s.FitToView))...)

	// Initialize the compute pool after options so WithComputeWorkers can override the default.
	s.computePool = worker.NewDynamicWorkerPool(s.computeWorkers, 256, 1*time.Second)

	s.repaint.Store(true)
	common.Logger().Info("scene created", "name", name, "renderables", len(s.renderables), "workers", s.computeWorkers)
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Config() config.Config {
	return s.cfg
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Animator() animator.Animator {
	return s.anim
}

func (s *scene) Dispatcher() interaction.Dispatcher {
	return s.dispatcher
}

func (s *scene) Keys() interaction.KeyController {
	return s.keys
}

func (s *scene) Registry() *interaction.Registry {
	return s.registry
}

func (s *scene) Add(items ...Renderable) {
	for _, item := range items {
		if item == nil {
			continue
		}
		s.renderables = append(s.renderables, item)
		s.registry.Register(item)
	}
	s.RequestRepaint()
}

func (s *scene) Remove(item Renderable) bool {
	i := slices.IndexFunc(s.renderables, func(r Renderable) bool { return common.Identical(r, item) })
	if i < 0 {
		return false
	}
	s.renderables = slices.Delete(s.renderables, i, i+1)
	s.registry.Unregister(item)
	s.RequestRepaint()
	return true
}

func (s *scene) Clear() {
	for _, item := range s.renderables {
		s.registry.Unregister(item)
	}
	s.renderables = nil
	s.RequestRepaint()
}

func (s *scene) Renderables() []Renderable {
	return s.renderables
}

func (s *scene) Count() int {
	return len(s.renderables)
}

func (s *scene) FitToView() {
	s.cam.FitToView(s.ComputeBounds(), s.cfg.AnimationOptions())
	s.RequestRepaint()
}

func (s *scene) ViewFrom(direction camera.ViewDirection) {
	s.cam.ViewFrom(direction, s.ComputeBounds(), s.cfg.AnimationOptions())
	s.RequestRepaint()
}

func (s *scene) ApplyPreset(name string) error {
	p, ok := s.cfg.Preset(name)
	if !ok {
		return fmt.Errorf("scene: no view preset named %q", name)
	}
	if p.Direction != "" {
		direction, err := camera.ParseViewDirection(p.Direction)
		if err != nil {
			return fmt.Errorf("scene: preset %q: %w", name, err)
		}
		s.ViewFrom(direction)
		return nil
	}
	up := p.Up
	if up.IsZero() {
		up = common.Vec3{0, 1, 0}
	}
	s.cam.AnimateTo(p.Center, p.Position, up, s.cfg.AnimationOptions())
	s.RequestRepaint()
	return nil
}

func (s *scene) HitTest(x, y float32) []Renderable {
	line := s.cam.ScreenToWorld(common.Vec2{x, y})
	type hit struct {
		item     Renderable
		distance float32
	}
	var hits []hit
	for _, item := range s.renderables {
		b := item.Bounds()
		if !b.IsSet() || !b.HitTest(line) {
			continue
		}
		hits = append(hits, hit{item, b.Center().Sub(line.Front).Length()})
	}
	slices.SortStableFunc(hits, func(a, b hit) int { return cmp.Compare(a.distance, b.distance) })

	out := make([]Renderable, len(hits))
	for i, h := range hits {
		out[i] = h.item
	}
	return out
}

func (s *scene) Visible() []Renderable {
	frustum := s.cam.ClipFrustum()
	out := make([]Renderable, 0, len(s.renderables))
	for _, item := range s.renderables {
		b := item.Bounds()
		if b.IsSet() && !frustum.ContainsBox(b.Min(), b.Max()) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (s *scene) Resize(width, height int) {
	s.pendingSize.Store(uint64(uint32(width))<<32 | uint64(uint32(height)))
	s.resizePending.Store(true)
	s.RequestRepaint()
}

func (s *scene) RequestRepaint() {
	s.repaint.Store(true)
	if s.waker != nil {
		s.waker()
	}
}

func (s *scene) NeedsRepaint() bool {
	return s.repaint.Load()
}

func (s *scene) Frame(now time.Time) error {
	s.repaint.Store(false)
	if s.resizePending.Swap(false) {
		size := s.pendingSize.Load()
		s.cam.Configure(int(int32(size>>32)), int(int32(size)))
	}

	s.keys.Update()
	animating := s.anim.Tick(now)

	s.pipeline.ClearScene(s.cfg.Scene.Background)

	s.ctx.reset()
	s.ctx.View = s.cam.Place()
	s.ctx.Projection = s.cam.ProjectionMatrix()
	s.ctx.ViewProjection = s.cam.ViewProjectionMatrix()
	s.ctx.CameraUniform = s.cam.Uniform()
	s.ctx.Width, s.ctx.Height = s.cam.Viewport()
	if err := s.pipeline.DrawScene(&s.ctx, s.Visible()); err != nil {
		return fmt.Errorf("scene: draw scene: %w", err)
	}

	s.ctx.reset()
	s.ctx.Overlay = s.cam.PlaceOverlay(s.corner)
	if err := s.pipeline.DrawOverlay(&s.ctx); err != nil {
		return fmt.Errorf("scene: draw overlay: %w", err)
	}

	if animating || s.keys.AnyHeld() {
		s.repaint.Store(true)
	}
	return nil
}
