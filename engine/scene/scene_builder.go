package scene

import (
	"github.com/Carmen-Shannon/oxy-view/engine/animator"
	"github.com/Carmen-Shannon/oxy-view/engine/camera"
	"github.com/Carmen-Shannon/oxy-view/engine/interaction"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithCamera supplies a prebuilt camera instead of one built from the configuration.
// The scene's animator is attached to it.
//
// Parameters:
//   - cam: the camera to use
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCamera(cam camera.Camera) SceneBuilderOption {
	return func(s *scene) {
		s.cam = cam
	}
}

// WithAnimator supplies the animator advanced by Frame, typically one sharing a test clock.
//
// Parameters:
//   - a: the animator to use
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithAnimator(a animator.Animator) SceneBuilderOption {
	return func(s *scene) {
		s.anim = a
	}
}

// WithRenderables adds initial renderables to the scene.
// Gesture interceptors among them are registered.
//
// Parameters:
//   - items: the renderables to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithRenderables(items ...Renderable) SceneBuilderOption {
	return func(s *scene) {
		for _, item := range items {
			if item == nil {
				continue
			}
			s.renderables = append(s.renderables, item)
			s.registry.Register(item)
		}
	}
}

// WithCursorSetter routes the dispatcher's cursor requests, usually to the window.
//
// Parameters:
//   - setter: the cursor target
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCursorSetter(setter interaction.CursorSetter) SceneBuilderOption {
	return func(s *scene) {
		s.cursor = setter
	}
}

// WithSelectHandler receives rubber-band selections.
//
// Parameters:
//   - handler: called with each finished selection rectangle
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSelectHandler(handler interaction.SelectHandler) SceneBuilderOption {
	return func(s *scene) {
		s.onSelect = handler
	}
}

// WithWaker sets the function RequestRepaint calls to wake a render loop blocked waiting for events.
// It must be safe to call from any goroutine.
//
// Parameters:
//   - wake: the wake function, e.g. glfw.PostEmptyEvent
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithWaker(wake func()) SceneBuilderOption {
	return func(s *scene) {
		s.waker = wake
	}
}

// WithOverlayCorner sets where the overlay's pixel origin sits. Defaults to the top-left corner.
//
// Parameters:
//   - corner: the overlay origin
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithOverlayCorner(corner camera.Corner) SceneBuilderOption {
	return func(s *scene) {
		s.corner = corner
	}
}

// WithComputeWorkers sets the number of worker goroutines used by ComputeBounds.
// Defaults to the configured bounds_workers, capped at runtime.NumCPU().
//
// Parameters:
//   - n: the number of compute workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithComputeWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.computeWorkers = n
	}
}
