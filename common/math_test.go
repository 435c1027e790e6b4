package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-4

func TestMul4Identity(t *testing.T) {
	var m [16]float32
	Translation(m[:], 1, 2, 3)
	var out [16]float32
	Mul4(out[:], IdentityMatrix[:], m[:])
	assert.Equal(t, m, out)
}

func TestInvert4RoundTrip(t *testing.T) {
	var proj, inv, prod [16]float32
	Perspective(proj[:], 0.8, 1.5, 0.1, 100)
	require.True(t, Invert4(inv[:], proj[:]))
	Mul4(prod[:], proj[:], inv[:])
	for i := range prod {
		assert.InDelta(t, IdentityMatrix[i], prod[i], tol, "element %d", i)
	}
}

func TestInvert4Singular(t *testing.T) {
	var zero, out [16]float32
	out[0] = 42
	assert.False(t, Invert4(out[:], zero[:]))
	assert.Equal(t, float32(42), out[0])
}

func TestLookAtMapsCenterOntoNegativeZ(t *testing.T) {
	var view [16]float32
	LookAt(view[:], Vec3{0, 0, 10}, Vec3{0, 0, 0}, Vec3{0, 1, 0})
	p := TransformPoint4(view[:], 0, 0, 0, 1)
	assert.InDelta(t, 0, p[0], tol)
	assert.InDelta(t, 0, p[1], tol)
	assert.InDelta(t, -10, p[2], tol)
}

func TestPerspectiveDepthRange(t *testing.T) {
	var proj [16]float32
	Perspective(proj[:], 1, 1, 1, 10)
	near := TransformPoint4(proj[:], 0, 0, -1, 1)
	far := TransformPoint4(proj[:], 0, 0, -10, 1)
	assert.InDelta(t, 0, near[2]/near[3], tol)
	assert.InDelta(t, 1, far[2]/far[3], tol)
}

func TestOrthographicDepthRange(t *testing.T) {
	var proj [16]float32
	Orthographic(proj[:], -2, 2, -1, 1, 1, 10)
	near := TransformPoint4(proj[:], 2, 1, -1, 1)
	far := TransformPoint4(proj[:], -2, -1, -10, 1)
	assert.InDelta(t, 1, near[0], tol)
	assert.InDelta(t, 1, near[1], tol)
	assert.InDelta(t, 0, near[2], tol)
	assert.InDelta(t, -1, far[0], tol)
	assert.InDelta(t, 1, far[2], tol)
}

func TestFrustumContainsBox(t *testing.T) {
	var view, proj, vp [16]float32
	LookAt(view[:], Vec3{0, 0, 10}, Vec3{}, Vec3{0, 1, 0})
	Perspective(proj[:], 1, 1, 0.1, 100)
	Mul4(vp[:], proj[:], view[:])
	f := ExtractFrustumFromMatrix(vp[:])

	assert.True(t, f.ContainsBox(Vec3{-1, -1, -1}, Vec3{1, 1, 1}))
	assert.False(t, f.ContainsBox(Vec3{-1, -1, 20}, Vec3{1, 1, 30}), "behind the camera")
	assert.False(t, f.ContainsBox(Vec3{100, -1, -1}, Vec3{101, 1, 1}), "far to the right")
}

func TestOrthogonalize(t *testing.T) {
	axis := Vec3{0, 0, 1}
	up := Vec3{0, 1, 0.5}.Orthogonalize(axis)
	assert.InDelta(t, 0, up.Dot(axis), tol)
	assert.InDelta(t, 1, up.Length(), tol)

	degenerate := Vec3{0, 0, 2}.Orthogonalize(axis)
	assert.InDelta(t, 0, degenerate.Dot(axis), tol)
	assert.InDelta(t, 1, degenerate.Length(), tol)
}

func TestClampAndCoalesce(t *testing.T) {
	assert.Equal(t, 1, Clamp(-5, 1, 3))
	assert.Equal(t, 3, Clamp(9, 1, 3))
	assert.Equal(t, float32(2), Clamp(float32(2), 1, 3))
	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.InDelta(t, 2.5, Lerp(2.0, 3.0, 0.5), 1e-9)
}

func TestParseBindingNames(t *testing.T) {
	b, ok := ParseMouseButton("middle")
	require.True(t, ok)
	assert.Equal(t, MouseButtonMiddle, b)
	assert.Equal(t, "middle", b.String())

	m, ok := ParseModifier("shift")
	require.True(t, ok)
	assert.Equal(t, ModShift, m)

	_, ok = ParseModifier("hyper")
	assert.False(t, ok)
}
