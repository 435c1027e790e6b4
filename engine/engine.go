package engine

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/config"
	"github.com/Carmen-Shannon/oxy-view/engine/interaction"
	"github.com/Carmen-Shannon/oxy-view/engine/profiler"
	"github.com/Carmen-Shannon/oxy-view/engine/scene"
	"github.com/Carmen-Shannon/oxy-view/engine/window"
)

// PipelineFactory creates the render pipeline once the window exists, so the pipeline can build
// its surface from the window's surface descriptor.
type PipelineFactory func(w window.Window) (scene.RenderPipeline, error)

// engine implements the Engine interface.
// Owns the window, the scene and the single-threaded draw-on-demand loop that ties them together.
type engine struct {
	cfg    config.Config
	window window.Window
	scene  scene.Scene

	sceneOptions []scene.SceneBuilderOption

	profiler         *profiler.Profiler
	profilingEnabled bool

	clock         func() time.Time
	frameCallback func(now time.Time)
	errorHandler  func(err error)
	keyHandler    func(keyCode uint32) bool

	quitting atomic.Bool
	quitOnce sync.Once
	errMu    sync.Mutex
	err      error
}

// Engine is the main entry point for the viewer.
// It routes window input into the scene's dispatcher and key controller and draws frames only
// when the scene asks for a repaint.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Scene returns the scene driven by the engine.
	//
	// Returns:
	//   - scene.Scene: the scene instance
	Scene() scene.Scene

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetFrameCallback registers a function called after every drawn frame.
	//
	// Parameters:
	//   - callback: function receiving the frame timestamp (or nil to disable)
	SetFrameCallback(callback func(now time.Time))

	// Run processes window messages until the window closes or Quit is called.
	// Must be called from the thread that created the window.
	//
	// Returns:
	//   - error: the first frame error that stopped the loop, or nil
	Run() error

	// Quit asks the loop to close the window and return. Safe to call from any goroutine and more
	// than once.
	Quit()
}

// NewEngine creates a new Engine from a configuration. A window is created from cfg.Window unless
// one is supplied with WithWindow, then the pipeline factory is invoked and the scene is built
// around the resulting pipeline.
//
// Parameters:
//   - cfg: the viewer configuration
//   - factory: creates the render pipeline for the window
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
//   - error: if the configuration is invalid or the pipeline could not be created
func NewEngine(cfg config.Config, factory PipelineFactory, options ...EngineBuilderOption) (Engine, error) {
	if factory == nil {
		return nil, errors.New("engine: NewEngine requires a PipelineFactory")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	e := &engine{
		cfg:      cfg,
		profiler: profiler.NewProfiler(time.Second),
		clock:    time.Now,
	}

	for _, opt := range options {
		opt(e)
	}

	ownsWindow := e.window == nil
	if ownsWindow {
		e.window = window.NewWindow(window.WithConfig(cfg.Window))
	}

	pipeline, err := factory(e.window)
	if err != nil {
		if ownsWindow {
			_ = e.window.Close()
		}
		return nil, fmt.Errorf("engine: create pipeline: %w", err)
	}

	sceneOptions := append([]scene.SceneBuilderOption{
		scene.WithCursorSetter(e.window),
		scene.WithWaker(e.window.Wake),
	}, e.sceneOptions...)
	e.scene = scene.NewScene(cfg.Window.Title, cfg, pipeline, sceneOptions...)
	e.scene.Resize(e.window.Width(), e.window.Height())

	e.bind()
	common.Logger().Info("engine created", "scene", e.scene.Name(), "profiling", e.profilingEnabled)
	return e, nil
}

// bind installs the window callbacks. Every input event asks the scene for a repaint.
func (e *engine) bind() {
	d := e.scene.Dispatcher()
	keys := e.scene.Keys()

	e.window.SetMouseButtonCallback(func(button common.MouseButton, pressed bool, mods common.Modifier, x, y float32) {
		if pressed {
			d.Press(button, mods, x, y)
		} else {
			d.Release(button, x, y)
		}
		e.scene.RequestRepaint()
	})
	e.window.SetMouseMoveCallback(func(x, y float32) {
		if d.Active() == interaction.TypeNone {
			return
		}
		d.Move(x, y)
		e.scene.RequestRepaint()
	})
	e.window.SetScrollCallback(func(delta float32) {
		d.Scroll(delta)
		e.scene.RequestRepaint()
	})
	e.window.SetKeyDownCallback(func(keyCode uint32) {
		if e.keyHandler != nil && e.keyHandler(keyCode) {
			e.scene.RequestRepaint()
			return
		}
		keys.KeyDown(keyCode)
		e.scene.RequestRepaint()
	})
	e.window.SetKeyUpCallback(func(keyCode uint32) {
		keys.KeyUp(keyCode)
		e.scene.RequestRepaint()
	})
	e.window.SetResizeCallback(e.scene.Resize)
	e.window.SetNeedsFrameCallback(func() bool {
		return e.quitting.Load() || e.scene.NeedsRepaint()
	})
	e.window.SetUpdateCallback(e.update)
}

// update runs once per message loop iteration.
func (e *engine) update() {
	if e.quitting.Load() {
		if err := e.window.Close(); err != nil {
			common.Logger().Error("window close failed", "error", err)
		}
		return
	}

	now := e.clock()
	drawn := e.scene.NeedsRepaint()
	if drawn {
		if err := e.scene.Frame(now); err != nil {
			e.fail(err)
			return
		}
		if e.frameCallback != nil {
			e.frameCallback(now)
		}
	}

	if e.profilingEnabled {
		e.profiler.Tick(now, drawn)
	}
}

// fail reports a frame error. Without an error handler the first error stops the loop.
func (e *engine) fail(err error) {
	common.Logger().Error("frame failed", "scene", e.scene.Name(), "error", err)
	if e.errorHandler != nil {
		e.errorHandler(err)
		return
	}
	e.errMu.Lock()
	if e.err == nil {
		e.err = err
	}
	e.errMu.Unlock()
	e.Quit()
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetFrameCallback(callback func(now time.Time)) {
	e.frameCallback = callback
}

func (e *engine) Run() error {
	common.Logger().Info("engine running", "scene", e.scene.Name())
	e.window.ProcessMessages()
	common.Logger().Info("engine stopped", "scene", e.scene.Name())

	e.errMu.Lock()
	defer e.errMu.Unlock()
	return e.err
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		e.quitting.Store(true)
		e.window.Wake()
	})
}
