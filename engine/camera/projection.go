package camera

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/chewxy/math32"
)

// Projection selects how the camera maps view space onto the screen.
type Projection int

const (
	// Perspective uses a symmetric frustum defined by the field of view.
	Perspective Projection = iota
	// Parallel uses an orthographic box whose half-height is tan(fov/2) * distance,
	// so switching modes keeps the content at the center plane the same size.
	Parallel
)

func (p Projection) String() string {
	switch p {
	case Perspective:
		return "perspective"
	case Parallel:
		return "parallel"
	default:
		return fmt.Sprintf("Projection(%d)", int(p))
	}
}

// ParseProjection reads a projection name as used in configuration files.
//
// Parameters:
//   - name: "perspective" or "parallel"
//
// Returns:
//   - Projection: the parsed mode
//   - error: if the name is unknown
func ParseProjection(name string) (Projection, error) {
	switch name {
	case "perspective", "":
		return Perspective, nil
	case "parallel", "orthographic":
		return Parallel, nil
	default:
		return Perspective, fmt.Errorf("unknown projection %q", name)
	}
}

const (
	// nearFactor and farFactor place the clip planes relative to the distance to the center.
	nearFactor = 0.0001
	farFactor  = 1000

	// minClipDistance keeps the clip planes apart when position and center coincide.
	minClipDistance = 1e-6
)

// State is the minimal camera description the matrix recompute functions work from.
type State struct {
	Position   common.Vec3
	Center     common.Vec3
	Up         common.Vec3
	Fov        float32
	Projection Projection
}

// Distance returns |Position - Center|.
func (s State) Distance() float32 {
	return s.Position.Sub(s.Center).Length()
}

// FrustumDef describes the view volume produced by the last Configure.
type FrustumDef struct {
	Aspect     float32
	Near       float32
	Far        float32
	NearHeight float32
	FarHeight  float32
}

// ProjectionFor computes the projection matrix and frustum for s on a viewport of width x height pixels.
// Zero or negative dimensions are clamped to 1. Clip planes sit at 0.0001 and 1000 times the distance
// to the center in both modes.
//
// Parameters:
//   - s: the camera state
//   - width: viewport width in pixels
//   - height: viewport height in pixels
//
// Returns:
//   - [16]float32: the column-major projection matrix
//   - FrustumDef: the resulting view volume
func ProjectionFor(s State, width, height int) ([16]float32, FrustumDef) {
	w := float32(max(width, 1))
	h := float32(max(height, 1))
	d := max(s.Distance(), minClipDistance)

	def := FrustumDef{
		Aspect: w / h,
		Near:   nearFactor * d,
		Far:    farFactor * d,
	}
	tanHalf := math32.Tan(s.Fov / 2)

	var m [16]float32
	switch s.Projection {
	case Perspective:
		common.Perspective(m[:], s.Fov, def.Aspect, def.Near, def.Far)
		def.NearHeight = 2 * tanHalf * def.Near
		def.FarHeight = 2 * tanHalf * def.Far
	case Parallel:
		halfH := tanHalf * d
		halfW := halfH * def.Aspect
		common.Orthographic(m[:], -halfW, halfW, -halfH, halfH, def.Near, def.Far)
		def.NearHeight = 2 * halfH
		def.FarHeight = 2 * halfH
	default:
		panic(fmt.Sprintf("camera: unknown projection %d", int(s.Projection)))
	}
	return m, def
}

// ViewFor computes the view matrix looking from s.Position toward s.Center.
//
// Parameters:
//   - s: the camera state
//
// Returns:
//   - [16]float32: the column-major view matrix
func ViewFor(s State) [16]float32 {
	var m [16]float32
	common.LookAt(m[:], s.Position, s.Center, s.Up)
	return m
}

// Corner picks which screen point the overlay's pixel origin maps to.
type Corner int

const (
	// CornerCenter puts the origin at the viewport center with y pointing up.
	CornerCenter Corner = iota
	// CornerBottomLeft puts the origin at the bottom-left corner with y pointing up.
	CornerBottomLeft
	// CornerBottomRight puts the origin at the bottom-right corner with y pointing up.
	CornerBottomRight
	// CornerTopLeft puts the origin at the top-left corner with y pointing down, matching screen coordinates.
	CornerTopLeft
	// CornerTopRight puts the origin at the top-right corner with y pointing down.
	CornerTopRight
)

func (c Corner) String() string {
	switch c {
	case CornerCenter:
		return "center"
	case CornerBottomLeft:
		return "bottom-left"
	case CornerBottomRight:
		return "bottom-right"
	case CornerTopLeft:
		return "top-left"
	case CornerTopRight:
		return "top-right"
	default:
		return fmt.Sprintf("Corner(%d)", int(c))
	}
}

// pixelOrigin returns the overlay shift and y direction for a corner on a width x height viewport.
func (c Corner) pixelOrigin(width, height float32) (dx, dy, ySign float32) {
	hw, hh := width/2, height/2
	switch c {
	case CornerCenter:
		return 0, 0, 1
	case CornerBottomLeft:
		return -hw, -hh, 1
	case CornerBottomRight:
		return hw, -hh, 1
	case CornerTopLeft:
		return -hw, hh, -1
	case CornerTopRight:
		return hw, hh, -1
	default:
		panic(fmt.Sprintf("camera: unknown overlay corner %d", int(c)))
	}
}

// OverlayFor computes a view matrix under which the z=0 plane maps one unit to one pixel
// with the current projection. In perspective mode the plane is pushed to the depth where
// the frustum is exactly height units tall; in parallel mode it sits at the center distance.
//
// Parameters:
//   - s: the camera state
//   - width: viewport width in pixels
//   - height: viewport height in pixels
//   - corner: where pixel (0, 0) lands on screen
//
// Returns:
//   - [16]float32: the column-major overlay view matrix
func OverlayFor(s State, width, height int, corner Corner) [16]float32 {
	w := float32(max(width, 1))
	h := float32(max(height, 1))
	d := max(s.Distance(), minClipDistance)
	tanHalf := math32.Tan(s.Fov / 2)

	var depth, scale float32
	switch s.Projection {
	case Perspective:
		dz := 0.5 / tanHalf
		depth = dz * d
		scale = d / h
	case Parallel:
		depth = d
		scale = 2 * tanHalf * d / h
	default:
		panic(fmt.Sprintf("camera: unknown projection %d", int(s.Projection)))
	}

	ox, oy, ySign := corner.pixelOrigin(w, h)

	var origin, flip, zoom, push [16]float32
	common.Translation(origin[:], ox, oy, 0)
	common.Scaling(flip[:], 1, ySign, 1)
	common.Scaling(zoom[:], scale, scale, scale)
	common.Translation(push[:], 0, 0, -depth)

	var a, b [16]float32
	common.Mul4(a[:], origin[:], flip[:])
	common.Mul4(b[:], zoom[:], a[:])
	common.Mul4(a[:], push[:], b[:])
	return a
}
