package window

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/interaction"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestModifierFrom(t *testing.T) {
	tests := []struct {
		in   glfw.ModifierKey
		want common.Modifier
	}{
		{0, common.ModNone},
		{glfw.ModShift, common.ModShift},
		{glfw.ModControl | glfw.ModAlt, common.ModControl | common.ModAlt},
		{glfw.ModShift | glfw.ModSuper | glfw.ModCapsLock, common.ModShift},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, modifierFrom(tt.in))
	}
}

func TestStandardCursor(t *testing.T) {
	assert.Equal(t, glfw.ArrowCursor, standardCursor(interaction.CursorArrow))
	assert.Equal(t, glfw.HandCursor, standardCursor(interaction.CursorHand))
	assert.Equal(t, glfw.CrosshairCursor, standardCursor(interaction.CursorCrosshair))
	assert.Equal(t, glfw.HResizeCursor, standardCursor(interaction.CursorHResize))
	assert.Equal(t, glfw.VResizeCursor, standardCursor(interaction.CursorVResize))
	assert.Equal(t, glfw.ArrowCursor, standardCursor(interaction.Cursor(99)))
}

func TestMouseButtonValuesMatchGLFW(t *testing.T) {
	assert.Equal(t, common.MouseButtonLeft, common.MouseButton(glfw.MouseButtonLeft))
	assert.Equal(t, common.MouseButtonRight, common.MouseButton(glfw.MouseButtonRight))
	assert.Equal(t, common.MouseButtonMiddle, common.MouseButton(glfw.MouseButtonMiddle))
}
