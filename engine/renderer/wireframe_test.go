package renderer

import (
	"encoding/binary"
	"math"
	"math/bits"
	"testing"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/bounds"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeVertices(t *testing.T, buf []byte) [][6]float32 {
	t.Helper()
	require.Zero(t, len(buf)%vertexStride)
	out := make([][6]float32, len(buf)/vertexStride)
	for i := range out {
		for j := range 6 {
			out[i][j] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*vertexStride+j*4:]))
		}
	}
	return out
}

func TestBoxEdgesConnectAdjacentCorners(t *testing.T) {
	seen := map[[2]int]bool{}
	for _, e := range boxEdges {
		assert.Equal(t, 1, bits.OnesCount(uint(e[0]^e[1])), "edge %v", e)
		assert.False(t, seen[e], "duplicate edge %v", e)
		seen[e] = true
	}
}

func TestAppendBoxLines(t *testing.T) {
	assert.Empty(t, appendBoxLines(nil, bounds.Bounds{}, axisRed))

	b := bounds.New(common.Vec3{-1, -2, -3}, common.Vec3{1, 2, 3})
	buf := appendBoxLines([]byte{}, b, axisBlue)
	vertices := decodeVertices(t, buf)
	require.Len(t, vertices, 24)

	for i := 0; i < len(vertices); i += 2 {
		p, q := vertices[i], vertices[i+1]
		differing := 0
		for axis := range 3 {
			assert.Equal(t, b.Max()[axis], abs(p[axis]), "corners of a symmetric box")
			if p[axis] != q[axis] {
				differing++
			}
		}
		assert.Equal(t, 1, differing, "segment %d runs along one axis", i/2)
		assert.Equal(t, axisBlue, [3]float32{p[3], p[4], p[5]})
	}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func TestAxisTriadIdentityView(t *testing.T) {
	vertices := decodeVertices(t, axisTriad(common.IdentityMatrix, common.Vec2{60, 60}, 40))
	require.Len(t, vertices, 6)

	for i := 0; i < 6; i += 2 {
		assert.Equal(t, [3]float32{60, 60, 0}, [3]float32{vertices[i][0], vertices[i][1], vertices[i][2]})
	}
	assert.Equal(t, [3]float32{100, 60, 0}, [3]float32{vertices[1][0], vertices[1][1], vertices[1][2]})
	assert.Equal(t, [3]float32{60, 20, 0}, [3]float32{vertices[3][0], vertices[3][1], vertices[3][2]})
	assert.Equal(t, [3]float32{60, 60, 0}, [3]float32{vertices[5][0], vertices[5][1], vertices[5][2]}, "z points at the viewer")
	assert.Equal(t, axisGreen, [3]float32{vertices[2][3], vertices[2][4], vertices[2][5]})
}

func TestMatrixBytesIsColumnMajorLittleEndian(t *testing.T) {
	var m [16]float32
	common.Translation(m[:], 1, 2, 3)
	buf := matrixBytes(m)
	require.Len(t, buf, 64)
	assert.Equal(t, float32(2), math.Float32frombits(binary.LittleEndian.Uint32(buf[13*4:])))
}

func TestPresentModeMapping(t *testing.T) {
	assert.Equal(t, wgpu.PresentModeFifo, wgpuPresentMode(PresentModeVSync))
	assert.Equal(t, wgpu.PresentModeImmediate, wgpuPresentMode(PresentModeUncapped))
	assert.Equal(t, wgpu.PresentModeFifo, wgpuPresentMode(PresentMode(42)))
}
