package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-view/engine/profiler"
	"github.com/Carmen-Shannon/oxy-view/engine/scene"
	"github.com/Carmen-Shannon/oxy-view/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfilerInterval sets how often profiling statistics are logged.
//
// Parameters:
//   - interval: time between reports (non-positive values default to 1 second)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfilerInterval(interval time.Duration) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = profiler.NewProfiler(interval)
	}
}

// WithWindow sets a custom configured window for the engine to use rather than allowing the engine
// to create and manage one internally.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithSceneOptions forwards options to the scene the engine builds. The engine always installs the
// window as cursor setter and waker; options given here are applied after those.
//
// Parameters:
//   - options: scene builder options
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSceneOptions(options ...scene.SceneBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.sceneOptions = append(e.sceneOptions, options...)
	}
}

// WithErrorHandler sets a function that receives frame errors. When set, frame errors no longer
// stop the loop.
//
// Parameters:
//   - handler: the error handler
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithErrorHandler(handler func(err error)) EngineBuilderOption {
	return func(e *engine) {
		e.errorHandler = handler
	}
}

// WithClock overrides the source of frame timestamps.
func WithClock(now func() time.Time) EngineBuilderOption {
	return func(e *engine) {
		if now != nil {
			e.clock = now
		}
	}
}

// WithKeyHandler installs a function that sees key presses before the scene's key controller.
// Returning true consumes the press.
//
// Parameters:
//   - handler: receives the virtual key code
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithKeyHandler(handler func(keyCode uint32) bool) EngineBuilderOption {
	return func(e *engine) {
		e.keyHandler = handler
	}
}
