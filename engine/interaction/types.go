// Package interaction classifies pointer gestures by button and modifier and routes them to
// camera gestures, gesture interceptors or a screen-space rubber band.
package interaction

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-view/common"
)

// Type is the gesture a pointer drag performs.
type Type int

const (
	TypeNone Type = iota
	TypeRotate
	TypePan
	TypeDolly
	TypeZoom
	TypeSelect
)

var typeNames = map[Type]string{
	TypeNone:   "none",
	TypeRotate: "rotate",
	TypePan:    "pan",
	TypeDolly:  "dolly",
	TypeZoom:   "zoom",
	TypeSelect: "select",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType reads an interaction name as used in binding configuration.
//
// Parameters:
//   - name: one of none, rotate, pan, dolly, zoom, select
//
// Returns:
//   - Type: the parsed interaction
//   - error: if the name is unknown
func ParseType(name string) (Type, error) {
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}
	return TypeNone, fmt.Errorf("unknown interaction type %q", name)
}

// Mode changes how resolved bindings are interpreted.
type Mode int

const (
	// Mode3D routes bindings as configured.
	Mode3D Mode = iota
	// Mode2DSelection turns Rotate into Select and Dolly into Zoom, for flat content where orbiting makes no sense.
	Mode2DSelection
)

func (m Mode) String() string {
	switch m {
	case Mode3D:
		return "3d"
	case Mode2DSelection:
		return "2d-selection"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode reads a mode name, "3d" or "2d-selection".
//
// Parameters:
//   - name: the mode name
//
// Returns:
//   - Mode: the parsed mode
//   - error: if the name is unknown
func ParseMode(name string) (Mode, error) {
	switch name {
	case "", "3d":
		return Mode3D, nil
	case "2d-selection":
		return Mode2DSelection, nil
	default:
		return Mode3D, fmt.Errorf("unknown interaction mode %q", name)
	}
}

// remap applies the mode's overrides to a resolved interaction.
func (m Mode) remap(t Type) Type {
	if m != Mode2DSelection {
		return t
	}
	switch t {
	case TypeRotate:
		return TypeSelect
	case TypeDolly:
		return TypeZoom
	default:
		return t
	}
}

// RubberBand is the screen-space rectangle dragged out by a zoom or select gesture.
type RubberBand struct {
	Start   common.Vec2
	Stop    common.Vec2
	Enabled bool
}

// Rect returns the band's corners ordered as minimum and maximum.
//
// Returns:
//   - common.Vec2: top-left corner in pixels
//   - common.Vec2: bottom-right corner in pixels
func (r RubberBand) Rect() (common.Vec2, common.Vec2) {
	return common.Vec2{min(r.Start[0], r.Stop[0]), min(r.Start[1], r.Stop[1])},
		common.Vec2{max(r.Start[0], r.Stop[0]), max(r.Start[1], r.Stop[1])}
}

// Empty reports whether the band has no area.
func (r RubberBand) Empty() bool {
	return r.Start[0] == r.Stop[0] || r.Start[1] == r.Stop[1]
}
