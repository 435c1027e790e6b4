package interaction

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-view/common"
)

// CameraControl is the part of a camera the dispatcher drives. camera.Camera satisfies it.
type CameraControl interface {
	Pan(dx, dy float32)
	Rotate(dx, dy float32)
	Dolly(factor float32) bool
	Zoom(x0, y0, x1, y1 float32) (common.Vec2, float32)
	EndPan()
	EndRotate()
	StopInertia()
	DollyFactor() float32
}

// SelectHandler receives a finished selection rectangle.
type SelectHandler func(band RubberBand)

// DefaultScrollFactor is the dolly factor applied per scroll wheel notch.
const DefaultScrollFactor float32 = 0.1

// Dispatcher turns raw pointer events into camera gestures or rubber-band updates.
// It holds the state of one gesture at a time and is driven from the render thread.
type Dispatcher interface {
	// Press starts a gesture for the given button. Ignored while another gesture is active.
	//
	// Parameters:
	//   - button: the pressed button
	//   - mods: modifier keys held at press time
	//   - x, y: pointer position in pixels
	//
	// Returns:
	//   - Type: the interaction the press started, TypeNone if nothing started
	Press(button common.MouseButton, mods common.Modifier, x, y float32) Type

	// Move routes the pointer delta since the last event to the active gesture.
	//
	// Parameters:
	//   - x, y: new pointer position in pixels
	Move(x, y float32)

	// Release finishes the active gesture if button started it.
	//
	// Parameters:
	//   - button: the released button
	//   - x, y: pointer position in pixels
	Release(button common.MouseButton, x, y float32)

	// Scroll dollies by delta notches. Positive values move closer.
	//
	// Parameters:
	//   - delta: wheel notches
	Scroll(delta float32)

	// Active returns the interaction in progress.
	Active() Type

	// RubberBand returns the current rubber band. Enabled is false outside zoom and select gestures.
	RubberBand() RubberBand

	// Mode returns how bindings are interpreted.
	Mode() Mode

	// SetMode changes how bindings are interpreted. Takes effect at the next press.
	SetMode(mode Mode)

	// Bindings returns the binding table in use.
	Bindings() Bindings

	// Registry returns the interceptor registry consulted before the camera.
	Registry() *Registry
}

type dispatcher struct {
	camera       CameraControl
	bindings     Bindings
	registry     *Registry
	cursor       CursorSetter
	onSelect     SelectHandler
	scrollFactor float32
	mode         Mode
	active       Type
	button       common.MouseButton
	last         common.Vec2
	band         RubberBand
}

var _ Dispatcher = &dispatcher{}

// NewDispatcher creates a Dispatcher driving camera.
//
// Parameters:
//   - camera: the camera receiving gestures
//   - options: functional options to configure the dispatcher
//
// Returns:
//   - Dispatcher: the newly created dispatcher
func NewDispatcher(camera CameraControl, options ...DispatcherBuilderOption) Dispatcher {
	if camera == nil {
		panic("interaction: dispatcher requires a camera")
	}
	d := &dispatcher{
		camera:       camera,
		bindings:     DefaultBindings(),
		registry:     NewRegistry(),
		cursor:       nopCursorSetter{},
		onSelect:     func(RubberBand) {},
		scrollFactor: DefaultScrollFactor,
	}
	for _, option := range options {
		option(d)
	}
	return d
}

func (d *dispatcher) Press(button common.MouseButton, mods common.Modifier, x, y float32) Type {
	if d.active != TypeNone {
		return TypeNone
	}
	t := d.mode.remap(d.bindings.Resolve(button, mods))
	if _, ok := typeNames[t]; !ok {
		panic(fmt.Sprintf("interaction: binding %v resolves to unknown %v", Binding{button, mods}, t))
	}
	if t == TypeNone {
		return TypeNone
	}

	d.camera.StopInertia()
	d.active = t
	d.button = button
	d.last = common.Vec2{x, y}
	if t == TypeZoom || t == TypeSelect {
		d.band = RubberBand{Start: d.last, Stop: d.last, Enabled: true}
	}
	d.cursor.SetCursor(CursorFor(t))
	common.Logger().Debug("interaction start", "type", t, "button", button, "mods", mods)
	return t
}

func (d *dispatcher) Move(x, y float32) {
	if d.active == TypeNone {
		return
	}
	pos := common.Vec2{x, y}
	delta := pos.Sub(d.last)
	d.last = pos

	switch d.active {
	case TypeRotate:
		d.camera.Rotate(-delta[0], -delta[1])
	case TypePan:
		if !d.registry.HandlePan(delta[0], delta[1]) {
			d.camera.Pan(-delta[0], -delta[1])
		}
	case TypeDolly:
		d.dolly(-delta[1] * d.camera.DollyFactor())
	case TypeZoom, TypeSelect:
		d.band.Stop = pos
	}
}

func (d *dispatcher) Release(button common.MouseButton, x, y float32) {
	if d.active == TypeNone || button != d.button {
		return
	}
	finished := d.active
	if finished == TypeZoom || finished == TypeSelect {
		d.band.Stop = common.Vec2{x, y}
		d.finishBand(finished)
	}

	d.band = RubberBand{}
	d.active = TypeNone
	d.cursor.SetCursor(CursorArrow)

	switch finished {
	case TypePan:
		d.camera.EndPan()
	case TypeRotate:
		d.camera.EndRotate()
	}
	common.Logger().Debug("interaction end", "type", finished)
}

func (d *dispatcher) Scroll(delta float32) {
	if delta == 0 {
		return
	}
	d.dolly(delta * d.scrollFactor)
}

func (d *dispatcher) Active() Type {
	return d.active
}

func (d *dispatcher) RubberBand() RubberBand {
	return d.band
}

func (d *dispatcher) Mode() Mode {
	return d.mode
}

func (d *dispatcher) SetMode(mode Mode) {
	d.mode = mode
}

func (d *dispatcher) Bindings() Bindings {
	return d.bindings
}

func (d *dispatcher) Registry() *Registry {
	return d.registry
}

func (d *dispatcher) dolly(factor float32) {
	if factor == 0 || d.registry.HandleDolly(factor) {
		return
	}
	d.camera.Dolly(factor)
}

// finishBand applies a completed zoom or select rectangle. Bands without area are dropped.
func (d *dispatcher) finishBand(t Type) {
	band := d.band
	if band.Empty() {
		return
	}
	if t == TypeSelect {
		d.onSelect(band)
		return
	}
	if d.registry.HandleZoom(band) {
		return
	}
	lo, hi := band.Rect()
	d.camera.Zoom(lo[0], lo[1], hi[0], hi[1])
}
