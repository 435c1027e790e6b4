package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type pathValue struct {
	points []Vec3
}

func TestIdentical(t *testing.T) {
	a, b := &pathValue{}, &pathValue{}
	v := pathValue{points: []Vec3{{1, 2, 3}}}

	tests := []struct {
		name     string
		x, y     any
		expected bool
	}{
		{"same pointer", a, a, true},
		{"distinct pointers", a, b, false},
		{"equal values", Vec3{1, 2, 3}, Vec3{1, 2, 3}, true},
		{"different types", Vec2{}, Vec3{}, false},
		{"both nil", nil, nil, true},
		{"one nil", a, nil, false},
		{"not comparable, equal content", v, pathValue{points: []Vec3{{1, 2, 3}}}, true},
		{"not comparable, different content", v, pathValue{}, false},
		{"maps", map[int]int{1: 2}, map[int]int{1: 2}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Equal(t, tt.expected, Identical(tt.x, tt.y))
			})
		})
	}
}

func TestClampAndLerp(t *testing.T) {
	assert.Equal(t, 3, Clamp(7, 0, 3))
	assert.Equal(t, float32(0), Clamp(float32(-1), 0, 1))
	assert.InDelta(t, 2.5, Lerp(2.0, 3.0, 0.5), 1e-9)
	assert.Equal(t, "b", Coalesce("", "b", "c"))
}
