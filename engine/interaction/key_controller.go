package interaction

import "github.com/Carmen-Shannon/oxy-view/common"

// KeyController nudges the camera from held keys once per frame. Arrow keys orbit,
// A/D and Q/E pan along the screen axes, W/S dolly and F requests a fit-to-view.
type KeyController interface {
	// KeyDown records key as held. F fires the fit handler once per press.
	//
	// Parameters:
	//   - key: GLFW key code
	KeyDown(key uint32)

	// KeyUp records key as released.
	//
	// Parameters:
	//   - key: GLFW key code
	KeyUp(key uint32)

	// Update applies one step for every held key. Call once per frame.
	Update()

	// Held reports whether key is currently down.
	//
	// Parameters:
	//   - key: GLFW key code
	//
	// Returns:
	//   - bool: true if the key is held
	Held(key uint32) bool

	// AnyHeld reports whether any key is down, meaning Update will keep moving the camera.
	AnyHeld() bool

	// OrbitStep returns the orbit step in pixels per frame.
	OrbitStep() float32

	// PanStep returns the pan step in pixels per frame.
	PanStep() float32

	// DollyStep returns the dolly factor per frame.
	DollyStep() float32
}

type keyController struct {
	camera    CameraControl
	held      map[uint32]bool
	orbitStep float32
	panStep   float32
	dollyStep float32
	onFit     func()
}

var _ KeyController = &keyController{}

// NewKeyController creates a KeyController driving camera.
//
// Parameters:
//   - camera: the camera receiving gestures
//   - options: functional options to configure the controller
//
// Returns:
//   - KeyController: the newly created controller
func NewKeyController(camera CameraControl, options ...KeyControllerBuilderOption) KeyController {
	kc := &keyController{
		camera:    camera,
		held:      make(map[uint32]bool),
		orbitStep: 4,
		panStep:   4,
		dollyStep: 0.02,
		onFit:     func() {},
	}
	for _, option := range options {
		option(kc)
	}
	return kc
}

func (kc *keyController) KeyDown(key uint32) {
	if key == common.KeyF && !kc.held[key] {
		kc.onFit()
	}
	kc.held[key] = true
}

func (kc *keyController) KeyUp(key uint32) {
	delete(kc.held, key)
}

func (kc *keyController) Held(key uint32) bool {
	return kc.held[key]
}

func (kc *keyController) AnyHeld() bool {
	return len(kc.held) > 0
}

func (kc *keyController) Update() {
	var orbit, pan common.Vec2
	if kc.held[common.KeyLeft] {
		orbit[0] -= kc.orbitStep
	}
	if kc.held[common.KeyRight] {
		orbit[0] += kc.orbitStep
	}
	if kc.held[common.KeyUp] {
		orbit[1] -= kc.orbitStep
	}
	if kc.held[common.KeyDown] {
		orbit[1] += kc.orbitStep
	}
	if kc.held[common.KeyA] {
		pan[0] -= kc.panStep
	}
	if kc.held[common.KeyD] {
		pan[0] += kc.panStep
	}
	if kc.held[common.KeyQ] {
		pan[1] -= kc.panStep
	}
	if kc.held[common.KeyE] {
		pan[1] += kc.panStep
	}

	if orbit != (common.Vec2{}) {
		kc.camera.Rotate(orbit[0], orbit[1])
	}
	if pan != (common.Vec2{}) {
		kc.camera.Pan(pan[0], pan[1])
	}
	if orbit != (common.Vec2{}) || pan != (common.Vec2{}) {
		kc.camera.StopInertia()
	}
	switch {
	case kc.held[common.KeyW] && !kc.held[common.KeyS]:
		kc.camera.Dolly(kc.dollyStep)
	case kc.held[common.KeyS] && !kc.held[common.KeyW]:
		kc.camera.Dolly(-kc.dollyStep)
	}
}

func (kc *keyController) OrbitStep() float32 {
	return kc.orbitStep
}

func (kc *keyController) PanStep() float32 {
	return kc.panStep
}

func (kc *keyController) DollyStep() float32 {
	return kc.dollyStep
}

// KeyControllerBuilderOption is a functional option for configuring a KeyController.
type KeyControllerBuilderOption func(*keyController)

// WithOrbitStep sets the keyboard orbit step.
//
// Parameters:
//   - step: pixels of orbit per frame
//
// Returns:
//   - KeyControllerBuilderOption: functional option to set the orbit step
func WithOrbitStep(step float32) KeyControllerBuilderOption {
	return func(kc *keyController) {
		kc.orbitStep = step
	}
}

// WithPanStep sets the keyboard pan step.
//
// Parameters:
//   - step: pixels of pan per frame
//
// Returns:
//   - KeyControllerBuilderOption: functional option to set the pan step
func WithPanStep(step float32) KeyControllerBuilderOption {
	return func(kc *keyController) {
		kc.panStep = step
	}
}

// WithDollyStep sets the keyboard dolly factor.
//
// Parameters:
//   - step: dolly factor per frame
//
// Returns:
//   - KeyControllerBuilderOption: functional option to set the dolly step
func WithDollyStep(step float32) KeyControllerBuilderOption {
	return func(kc *keyController) {
		kc.dollyStep = step
	}
}

// WithFitHandler sets the callback run when F is pressed.
//
// Parameters:
//   - fit: usually the scene's FitToView
//
// Returns:
//   - KeyControllerBuilderOption: functional option to set the fit handler
func WithFitHandler(fit func()) KeyControllerBuilderOption {
	return func(kc *keyController) {
		if fit != nil {
			kc.onFit = fit
		}
	}
}
