package interaction

import "fmt"

// Cursor is a standard pointer shape requested from the window.
type Cursor int

const (
	CursorArrow Cursor = iota
	CursorHand
	CursorCrosshair
	CursorHResize
	CursorVResize
)

func (c Cursor) String() string {
	switch c {
	case CursorArrow:
		return "arrow"
	case CursorHand:
		return "hand"
	case CursorCrosshair:
		return "crosshair"
	case CursorHResize:
		return "hresize"
	case CursorVResize:
		return "vresize"
	default:
		return fmt.Sprintf("Cursor(%d)", int(c))
	}
}

// CursorSetter changes the pointer shape. The window adapter implements it.
type CursorSetter interface {
	SetCursor(cursor Cursor)
}

// CursorFor returns the cursor shown while an interaction is active.
//
// Parameters:
//   - t: the active interaction
//
// Returns:
//   - Cursor: the cursor to request
func CursorFor(t Type) Cursor {
	switch t {
	case TypeRotate:
		return CursorHand
	case TypePan:
		return CursorHResize
	case TypeDolly:
		return CursorVResize
	case TypeZoom, TypeSelect:
		return CursorCrosshair
	default:
		return CursorArrow
	}
}

type nopCursorSetter struct{}

func (nopCursorSetter) SetCursor(Cursor) {}
