package renderer

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.presentMode = mode
	}
}

// WithWireColor sets the color of the bounding box outlines.
//
// Parameters:
//   - color: linear RGB in [0, 1]
//
// Returns:
//   - RendererBuilderOption: a function that applies the color option to a renderer
func WithWireColor(color [3]float32) RendererBuilderOption {
	return func(r *renderer) {
		r.wireColor = color
	}
}

// WithAxisTriad sets the size of the overlay axis triad.
//
// Parameters:
//   - length: axis length in pixels
//   - offset: distance of the triad origin from the overlay corner in pixels
//
// Returns:
//   - RendererBuilderOption: a function that applies the triad option to a renderer
func WithAxisTriad(length, offset float32) RendererBuilderOption {
	return func(r *renderer) {
		if length > 0 {
			r.triadLength = length
		}
		if offset >= 0 {
			r.triadOffset = offset
		}
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}
