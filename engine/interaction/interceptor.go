package interaction

import (
	"slices"

	"github.com/Carmen-Shannon/oxy-view/common"
)

// PanInterceptor is implemented by scene content that consumes pan gestures itself.
type PanInterceptor interface {
	// HandlePan is offered a pan delta before the camera sees it.
	//
	// Parameters:
	//   - dx: horizontal pointer delta in pixels
	//   - dy: vertical pointer delta in pixels, positive down
	//
	// Returns:
	//   - bool: true to consume the delta and block the camera pan
	HandlePan(dx, dy float32) bool
}

// DollyInterceptor is implemented by scene content that consumes dolly gestures itself.
type DollyInterceptor interface {
	// HandleDolly is offered a dolly factor before the camera sees it.
	//
	// Parameters:
	//   - factor: fraction of the view distance the camera would travel
	//
	// Returns:
	//   - bool: true to consume the factor and block the camera dolly
	HandleDolly(factor float32) bool
}

// ZoomInterceptor is implemented by scene content that consumes rubber-band zooms itself.
type ZoomInterceptor interface {
	// HandleZoom is offered the finished rubber band before the camera zooms to it.
	//
	// Parameters:
	//   - band: the screen rectangle the user dragged out
	//
	// Returns:
	//   - bool: true to consume the band and block the camera zoom
	HandleZoom(band RubberBand) bool
}

// Registry holds gesture interceptors in registration order. A value may implement any subset
// of the interceptor interfaces; it is offered only the gestures it implements.
type Registry struct {
	pan   []PanInterceptor
	dolly []DollyInterceptor
	zoom  []ZoomInterceptor
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds v for every interceptor interface it implements.
//
// Parameters:
//   - v: a candidate interceptor
//
// Returns:
//   - bool: false if v implements none of the interceptor interfaces
func (r *Registry) Register(v any) bool {
	registered := false
	if p, ok := v.(PanInterceptor); ok {
		r.pan = append(r.pan, p)
		registered = true
	}
	if d, ok := v.(DollyInterceptor); ok {
		r.dolly = append(r.dolly, d)
		registered = true
	}
	if z, ok := v.(ZoomInterceptor); ok {
		r.zoom = append(r.zoom, z)
		registered = true
	}
	return registered
}

// Unregister removes every registration of v. Values whose type is not comparable match by deep
// equality.
func (r *Registry) Unregister(v any) {
	r.pan = slices.DeleteFunc(r.pan, func(p PanInterceptor) bool { return common.Identical(p, v) })
	r.dolly = slices.DeleteFunc(r.dolly, func(d DollyInterceptor) bool { return common.Identical(d, v) })
	r.zoom = slices.DeleteFunc(r.zoom, func(z ZoomInterceptor) bool { return common.Identical(z, v) })
}

// HandlePan offers the delta to pan interceptors in order until one consumes it.
func (r *Registry) HandlePan(dx, dy float32) bool {
	for _, p := range r.pan {
		if p.HandlePan(dx, dy) {
			return true
		}
	}
	return false
}

// HandleDolly offers the factor to dolly interceptors in order until one consumes it.
func (r *Registry) HandleDolly(factor float32) bool {
	for _, d := range r.dolly {
		if d.HandleDolly(factor) {
			return true
		}
	}
	return false
}

// HandleZoom offers the band to zoom interceptors in order until one consumes it.
func (r *Registry) HandleZoom(band RubberBand) bool {
	for _, z := range r.zoom {
		if z.HandleZoom(band) {
			return true
		}
	}
	return false
}

// Len returns the number of distinct registrations across all gesture kinds.
func (r *Registry) Len() int {
	return len(r.pan) + len(r.dolly) + len(r.zoom)
}
