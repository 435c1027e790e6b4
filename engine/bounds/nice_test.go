package bounds

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNiceStep(t *testing.T) {
	tests := []struct {
		name     string
		min, max float64
		expected float64
	}{
		{"hundred", 0, 100, 12.5},
		{"ten", 0, 10, 1.25},
		{"unit", 0, 1, 0.125},
		{"offset", 50, 150, 12.5},
		{"negative", -10, 0, 1.25},
		{"zero width", 5, 5, 0},
		{"inverted", 5, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, NiceStep(tt.min, tt.max, DefaultSteps), 1e-12)
		})
	}
}

func TestNiceStepRatioWithinTarget(t *testing.T) {
	for _, width := range []float64{1, 2, 3, 7, 10, 100, 1000} {
		step := NiceStep(0, width, DefaultSteps)
		require.Greater(t, step, 0.0)
		ratio := width / step
		assert.GreaterOrEqual(t, ratio, float64(DefaultSteps-1), "width %v", width)
		assert.LessOrEqual(t, ratio, float64(DefaultSteps+1), "width %v", width)
	}
}

func TestNiceStepBetweenBands(t *testing.T) {
	tests := []struct {
		width    float64
		expected float64
	}{
		{9, 1},
		{90, 10},
		{4.5, 0.5},
	}

	for _, tt := range tests {
		step := NiceStep(0, tt.width, DefaultSteps)
		assert.InDelta(t, tt.expected, step, 1e-12, "width %v", tt.width)
		assert.InDelta(t, float64(DefaultSteps+2), tt.width/step, 1e-9, "width %v", tt.width)
	}
}

func TestNiceRange(t *testing.T) {
	values := NiceRange(0, 100, DefaultSteps, false)
	require.Len(t, values, 9)
	assert.Equal(t, 0.0, values[0])
	assert.InDelta(t, 100.0, values[len(values)-1], 1e-9)

	values = NiceRange(3, 97, DefaultSteps, false)
	assert.LessOrEqual(t, values[0], 3.0)
	assert.GreaterOrEqual(t, values[len(values)-1], 97.0)
	for i := 1; i < len(values); i++ {
		assert.Greater(t, values[i], values[i-1])
	}
}

func TestNiceRangeTruncate(t *testing.T) {
	values := NiceRange(3, 97, DefaultSteps, true)
	require.NotEmpty(t, values)
	for _, v := range values {
		assert.GreaterOrEqual(t, v, 3.0)
		assert.LessOrEqual(t, v, 97.0)
	}
	assert.Equal(t, 10.0, values[0])
	assert.Equal(t, 90.0, values[len(values)-1])
}

func TestNiceRangeDegenerate(t *testing.T) {
	assert.Equal(t, []float64{4}, NiceRange(4, 4, DefaultSteps, false))
}

func TestPrettify(t *testing.T) {
	b := New(common.Vec3{3, 0, 5}, common.Vec3{97, 10, 5})
	b.Prettify()
	assert.Equal(t, common.Vec3{0, 0, 5}, b.Min())
	assert.Equal(t, common.Vec3{100, 10, 5}, b.Max())

	assert.Nil(t, Bounds{}.AxisRange(0, DefaultSteps, false))
	assert.Len(t, b.AxisRange(1, DefaultSteps, false), 9)
}
