package renderer

import (
	"encoding/binary"
	"math"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/bounds"
)

// vertexStride is the size in bytes of one line vertex: a vec3 position followed by a vec3 color.
const vertexStride = 24

// boxEdges indexes Bounds.Corners pairwise. Corner i has bit 0, 1, 2 set for max x, y, z.
var boxEdges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7}, // along x
	{0, 2}, {1, 3}, {4, 6}, {5, 7}, // along y
	{0, 4}, {1, 5}, {2, 6}, {3, 7}, // along z
}

// Axis colors for the orientation triad.
var (
	axisRed   = [3]float32{0.9, 0.2, 0.2}
	axisGreen = [3]float32{0.2, 0.8, 0.2}
	axisBlue  = [3]float32{0.25, 0.4, 1}
)

func appendVertex(buf []byte, p common.Vec3, color [3]float32) []byte {
	for _, v := range [6]float32{p[0], p[1], p[2], color[0], color[1], color[2]} {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	}
	return buf
}

// appendBoxLines appends the 24 line-list vertices outlining b. Unset bounds append nothing.
func appendBoxLines(buf []byte, b bounds.Bounds, color [3]float32) []byte {
	if !b.IsSet() {
		return buf
	}
	corners := b.Corners()
	for _, e := range boxEdges {
		buf = appendVertex(buf, corners[e[0]], color)
		buf = appendVertex(buf, corners[e[1]], color)
	}
	return buf
}

// axisTriad returns line-list vertices for the world axes as seen through view, in overlay
// pixel units. Screen up is negative y because overlay pixels grow away from the corner.
func axisTriad(view [16]float32, origin common.Vec2, length float32) []byte {
	buf := make([]byte, 0, 6*vertexStride)
	base := common.Vec3{origin[0], origin[1], 0}
	for axis, color := range [3][3]float32{axisRed, axisGreen, axisBlue} {
		// Column-major: world axis a lands on view-space (view[4a], view[4a+1]).
		tip := common.Vec3{
			origin[0] + length*view[axis*4],
			origin[1] - length*view[axis*4+1],
			0,
		}
		buf = appendVertex(buf, base, color)
		buf = appendVertex(buf, tip, color)
	}
	return buf
}

func matrixBytes(m [16]float32) []byte {
	buf := make([]byte, 0, 64)
	for _, v := range m {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	}
	return buf
}
