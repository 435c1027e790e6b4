package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW = 87 // W key (ASCII)
	KeyA = 65 // A key (ASCII)
	KeyS = 83 // S key (ASCII)
	KeyD = 68 // D key (ASCII)
	KeyQ = 81 // Q key (ASCII)
	KeyE = 69 // E key (ASCII)
	KeyF = 70 // F key (ASCII)

	KeyRight = 262 // Right arrow (GLFW)
	KeyLeft  = 263 // Left arrow (GLFW)
	KeyDown  = 264 // Down arrow (GLFW)
	KeyUp    = 265 // Up arrow (GLFW)
	KeyEsc   = 256 // Escape key (GLFW)
)

// Additional non-printable keys
const (
	KeyLeftShift  = 340 // Left Shift (GLFW)
	KeyRightShift = 344 // Right Shift (GLFW)
)

// MouseButton identifies a pointer button. Values match glfw.MouseButton.
type MouseButton int

const (
	MouseButtonLeft   MouseButton = 0
	MouseButtonRight  MouseButton = 1
	MouseButtonMiddle MouseButton = 2
)

// String returns the lower-case button name used in configuration files.
func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "left"
	case MouseButtonRight:
		return "right"
	case MouseButtonMiddle:
		return "middle"
	}
	return "unknown"
}

// ParseMouseButton converts a configuration name into a MouseButton.
//
// Parameters:
//   - name: "left", "right" or "middle"
//
// Returns:
//   - MouseButton: the parsed button
//   - bool: false if the name is not recognized
func ParseMouseButton(name string) (MouseButton, bool) {
	switch name {
	case "left":
		return MouseButtonLeft, true
	case "right":
		return MouseButtonRight, true
	case "middle":
		return MouseButtonMiddle, true
	}
	return 0, false
}

// Modifier is a bit set of held modifier keys. Values match glfw.ModifierKey.
type Modifier int

const (
	ModNone    Modifier = 0
	ModShift   Modifier = 0x0001
	ModControl Modifier = 0x0002
	ModAlt     Modifier = 0x0004
)

// String returns the configuration name of the modifier set.
func (m Modifier) String() string {
	switch m {
	case ModNone:
		return "none"
	case ModShift:
		return "shift"
	case ModControl:
		return "control"
	case ModAlt:
		return "alt"
	}
	return "combined"
}

// ParseModifier converts a configuration name into a Modifier.
//
// Parameters:
//   - name: "none", "shift", "control" or "alt"
//
// Returns:
//   - Modifier: the parsed modifier
//   - bool: false if the name is not recognized
func ParseModifier(name string) (Modifier, bool) {
	switch name {
	case "", "none":
		return ModNone, true
	case "shift":
		return ModShift, true
	case "control", "ctrl":
		return ModControl, true
	case "alt":
		return ModAlt, true
	}
	return 0, false
}
