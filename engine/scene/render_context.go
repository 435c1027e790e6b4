package scene

import (
	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/bounds"
)

// Renderable is anything the scene draws and frames. Unset bounds mean the item has no spatial
// extent: it is always drawn but never hit and never framed.
//
// A Renderable may also implement interaction.PanInterceptor, DollyInterceptor or ZoomInterceptor;
// the scene registers those capabilities when the item is added.
//
// Scene.Remove matches items by ==, so pointer renderables are removed by identity. Values whose
// type is not comparable (a struct holding a slice) match by deep equality, which removes the
// first item with equal content.
type Renderable interface {
	Bounds() bounds.Bounds
}

// RenderPipeline draws frames. It is supplied by the graphics backend.
type RenderPipeline interface {
	// ClearScene starts a frame by clearing the target to background.
	//
	// Parameters:
	//   - background: RGBA clear color
	ClearScene(background [4]float32)

	// DrawScene draws the visible renderables with the camera's scene matrices.
	//
	// Parameters:
	//   - ctx: matrices and position stack for this frame
	//   - visible: renderables not culled by the view frustum, in scene order
	//
	// Returns:
	//   - error: if drawing failed
	DrawScene(ctx *RenderContext, visible []Renderable) error

	// DrawOverlay draws pixel-space content with the overlay matrix.
	//
	// Parameters:
	//   - ctx: matrices and position stack for this frame
	//
	// Returns:
	//   - error: if drawing failed
	DrawOverlay(ctx *RenderContext) error
}

// RenderContext carries per-frame camera state to the pipeline along with a stack of
// model transforms for hierarchical drawing.
type RenderContext struct {
	Projection     [16]float32
	View           [16]float32
	ViewProjection [16]float32
	Overlay        [16]float32

	// CameraUniform is the GPU camera uniform, ready for upload.
	CameraUniform []byte

	Width, Height int

	positions [][16]float32
}

// PushPosition composes m onto the current model transform and makes the result current.
//
// Parameters:
//   - m: column-major model transform relative to the current one
func (c *RenderContext) PushPosition(m [16]float32) {
	top := c.Position()
	var out [16]float32
	common.Mul4(out[:], top[:], m[:])
	c.positions = append(c.positions, out)
}

// PopPosition restores the transform that was current before the matching PushPosition.
// Popping an empty stack panics.
//
// Returns:
//   - [16]float32: the transform that was removed
func (c *RenderContext) PopPosition() [16]float32 {
	n := len(c.positions)
	if n == 0 {
		panic("scene: PopPosition on empty position stack")
	}
	top := c.positions[n-1]
	c.positions = c.positions[:n-1]
	return top
}

// Position returns the current model transform, the identity when the stack is empty.
func (c *RenderContext) Position() [16]float32 {
	if n := len(c.positions); n > 0 {
		return c.positions[n-1]
	}
	return common.IdentityMatrix
}

// Depth returns the number of pushed transforms.
func (c *RenderContext) Depth() int {
	return len(c.positions)
}

// reset clears the stack between frames, keeping its capacity.
func (c *RenderContext) reset() {
	c.positions = c.positions[:0]
}
