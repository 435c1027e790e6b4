package interaction

// DispatcherBuilderOption is a functional option for configuring a Dispatcher.
type DispatcherBuilderOption func(*dispatcher)

// WithBindings replaces the default binding table.
//
// Parameters:
//   - bindings: the table to resolve presses against; copied
//
// Returns:
//   - DispatcherBuilderOption: functional option to set the bindings
func WithBindings(bindings Bindings) DispatcherBuilderOption {
	return func(d *dispatcher) {
		if bindings != nil {
			d.bindings = bindings.Clone()
		}
	}
}

// WithRegistry shares an interceptor registry with the dispatcher, typically the scene's.
//
// Parameters:
//   - registry: the registry consulted before the camera
//
// Returns:
//   - DispatcherBuilderOption: functional option to set the registry
func WithRegistry(registry *Registry) DispatcherBuilderOption {
	return func(d *dispatcher) {
		if registry != nil {
			d.registry = registry
		}
	}
}

// WithCursorSetter sets the target for cursor shape requests.
//
// Parameters:
//   - setter: usually the window
//
// Returns:
//   - DispatcherBuilderOption: functional option to set the cursor setter
func WithCursorSetter(setter CursorSetter) DispatcherBuilderOption {
	return func(d *dispatcher) {
		if setter != nil {
			d.cursor = setter
		}
	}
}

// WithSelectHandler sets the callback receiving finished selection rectangles.
//
// Parameters:
//   - handler: called on release of a select gesture
//
// Returns:
//   - DispatcherBuilderOption: functional option to set the select handler
func WithSelectHandler(handler SelectHandler) DispatcherBuilderOption {
	return func(d *dispatcher) {
		if handler != nil {
			d.onSelect = handler
		}
	}
}

// WithScrollFactor sets the dolly factor per scroll notch.
//
// Parameters:
//   - factor: dolly factor per notch
//
// Returns:
//   - DispatcherBuilderOption: functional option to set the scroll factor
func WithScrollFactor(factor float32) DispatcherBuilderOption {
	return func(d *dispatcher) {
		d.scrollFactor = factor
	}
}

// WithMode sets the initial binding interpretation.
//
// Parameters:
//   - mode: Mode3D or Mode2DSelection
//
// Returns:
//   - DispatcherBuilderOption: functional option to set the mode
func WithMode(mode Mode) DispatcherBuilderOption {
	return func(d *dispatcher) {
		d.mode = mode
	}
}
