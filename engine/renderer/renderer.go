package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

// Renderer is a WebGPU render pipeline that outlines every visible renderable with its bounding
// box and draws a world-axis triad in the overlay. The surface follows the size reported by the
// render context, so window resizes need no extra wiring.
type Renderer interface {
	scene.RenderPipeline

	// Resize reconfigures the surface and depth buffer for a new size in pixels.
	//
	// Parameters:
	//   - width: the new surface width
	//   - height: the new surface height
	//
	// Returns:
	//   - error: if the depth buffer could not be recreated
	Resize(width, height int) error

	// Release frees every GPU resource held by the renderer. The renderer must not be used after.
	Release()
}

type renderer struct {
	mu sync.Mutex

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface

	surfaceFormat wgpu.TextureFormat
	depthTexture  *wgpu.Texture
	depthView     *wgpu.TextureView
	width         int
	height        int

	layout          *wgpu.BindGroupLayout
	pipeline        *wgpu.RenderPipeline
	sceneUniform    *wgpu.Buffer
	overlayUniform  *wgpu.Buffer
	sceneGroup      *wgpu.BindGroup
	overlayGroup    *wgpu.BindGroup
	sceneVertices   *wgpu.Buffer
	sceneCapacity   uint64
	overlayVertices *wgpu.Buffer

	// Frame state between DrawScene and DrawOverlay.
	frameEncoder *wgpu.CommandEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
	vertexData   []byte

	clear                wgpu.Color
	wireColor            [3]float32
	triadLength          float32
	triadOffset          float32
	presentMode          PresentMode
	forceFallbackAdapter bool
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer drawing to the surface described by descriptor.
// Must be called from the thread that owns the window.
//
// Parameters:
//   - descriptor: the platform surface descriptor, usually from window.Window.SurfaceDescriptor
//   - width: the initial surface width in pixels
//   - height: the initial surface height in pixels
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the newly created renderer
//   - error: if no adapter or device could be acquired or the pipeline failed to build
func NewRenderer(descriptor *wgpu.SurfaceDescriptor, width, height int, options ...RendererBuilderOption) (Renderer, error) {
	if descriptor == nil {
		return nil, errors.New("renderer: NewRenderer requires a surface descriptor")
	}
	runtime.LockOSThread()

	r := &renderer{
		clear:       wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1},
		wireColor:   [3]float32{0.85, 0.85, 0.85},
		triadLength: 40,
		triadOffset: 60,
		presentMode: PresentModeVSync,
	}
	for _, opt := range options {
		opt(r)
	}

	r.instance = wgpu.CreateInstance(nil)
	r.surface = r.instance.CreateSurface(descriptor)

	adapter, err := r.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: r.forceFallbackAdapter,
		CompatibleSurface:    r.surface,
	})
	if err != nil {
		r.Release()
		return nil, fmt.Errorf("renderer: request adapter: %w", err)
	}
	r.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{Label: "Viewer Device"})
	if err != nil {
		r.Release()
		return nil, fmt.Errorf("renderer: request device: %w", err)
	}
	r.device = device
	r.queue = device.GetQueue()

	if err := r.configure(width, height); err != nil {
		r.Release()
		return nil, err
	}
	if err := r.createPipeline(); err != nil {
		r.Release()
		return nil, err
	}

	common.Logger().Info("renderer created", "format", r.surfaceFormat, "width", width, "height", height)
	return r, nil
}

// configure sizes the surface and recreates the depth buffer.
func (r *renderer) configure(width, height int) error {
	width, height = max(width, 1), max(height, 1)

	capabilities := r.surface.GetCapabilities(r.adapter)
	if len(capabilities.Formats) == 0 {
		return errors.New("renderer: surface reports no formats")
	}
	r.surfaceFormat = capabilities.Formats[0]

	r.surface.Configure(r.adapter, r.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      r.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpuPresentMode(r.presentMode),
		AlphaMode:   capabilities.AlphaModes[0],
	})

	r.releaseDepth()
	depthTexture, err := r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("renderer: create depth texture: %w", err)
	}
	depthView, err := depthTexture.CreateView(nil)
	if err != nil {
		depthTexture.Release()
		return fmt.Errorf("renderer: create depth view: %w", err)
	}
	r.depthTexture, r.depthView = depthTexture, depthView
	r.width, r.height = width, height

	common.Logger().Debug("surface configured", "width", width, "height", height)
	return nil
}

func (r *renderer) createPipeline() error {
	module, err := r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "Line Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: lineShader,
		},
	})
	if err != nil {
		return fmt.Errorf("renderer: create shader module: %w", err)
	}
	defer module.Release()

	r.layout, err = r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Line Transform Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: 64,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("renderer: create bind group layout: %w", err)
	}

	pipelineLayout, err := r.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Line Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{r.layout},
	})
	if err != nil {
		return fmt.Errorf("renderer: create pipeline layout: %w", err)
	}
	defer pipelineLayout.Release()

	r.pipeline, err = r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Line Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: vertexStride,
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
						{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    r.surfaceFormat,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyLineList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("renderer: create render pipeline: %w", err)
	}

	if r.sceneUniform, r.sceneGroup, err = r.createTransform("Scene"); err != nil {
		return err
	}
	if r.overlayUniform, r.overlayGroup, err = r.createTransform("Overlay"); err != nil {
		return err
	}

	r.overlayVertices, err = r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Overlay Vertex Buffer",
		Size:  6 * vertexStride,
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("renderer: create overlay vertex buffer: %w", err)
	}
	return nil
}

// createTransform creates a 64-byte uniform buffer and its bind group.
func (r *renderer) createTransform(label string) (*wgpu.Buffer, *wgpu.BindGroup, error) {
	buf, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Transform Buffer",
		Size:  64,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("renderer: create %s transform: %w", label, err)
	}
	group, err := r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label + " Bind Group",
		Layout: r.layout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  buf,
				Offset:  0,
				Size:    wgpu.WholeSize,
			},
		},
	})
	if err != nil {
		buf.Release()
		return nil, nil, fmt.Errorf("renderer: create %s bind group: %w", label, err)
	}
	return buf, group, nil
}

// ensureSceneCapacity grows the scene vertex buffer to hold at least size bytes.
func (r *renderer) ensureSceneCapacity(size uint64) error {
	if size <= r.sceneCapacity {
		return nil
	}
	capacity := max(size, 2*r.sceneCapacity, 24*vertexStride)
	buf, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Scene Vertex Buffer",
		Size:  capacity,
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("renderer: grow scene vertex buffer: %w", err)
	}
	if r.sceneVertices != nil {
		r.sceneVertices.Release()
	}
	r.sceneVertices, r.sceneCapacity = buf, capacity
	common.Logger().Debug("scene vertex buffer grown", "bytes", capacity)
	return nil
}

func (r *renderer) ClearScene(background [4]float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clear = wgpu.Color{
		R: float64(background[0]),
		G: float64(background[1]),
		B: float64(background[2]),
		A: float64(background[3]),
	}
}

func (r *renderer) DrawScene(ctx *scene.RenderContext, visible []scene.Renderable) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ctx.Width != r.width || ctx.Height != r.height {
		if err := r.configure(ctx.Width, ctx.Height); err != nil {
			return err
		}
	}
	if err := r.beginFrame(); err != nil {
		return err
	}

	r.vertexData = r.vertexData[:0]
	for _, item := range visible {
		r.vertexData = appendBoxLines(r.vertexData, item.Bounds(), r.wireColor)
	}
	size := uint64(len(r.vertexData))
	if err := r.ensureSceneCapacity(size); err != nil {
		r.abortFrame()
		return err
	}
	r.queue.WriteBuffer(r.sceneUniform, 0, matrixBytes(ctx.ViewProjection))
	if size > 0 {
		r.queue.WriteBuffer(r.sceneVertices, 0, r.vertexData)
	}

	pass := r.frameEncoder.BeginRenderPass(r.passDescriptor(wgpu.LoadOpClear))
	if size > 0 {
		pass.SetPipeline(r.pipeline)
		pass.SetBindGroup(0, r.sceneGroup, nil)
		pass.SetVertexBuffer(0, r.sceneVertices, 0, size)
		pass.Draw(uint32(size/vertexStride), 1, 0, 0)
	}
	pass.End()
	return nil
}

func (r *renderer) DrawOverlay(ctx *scene.RenderContext) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frameEncoder == nil {
		return errors.New("renderer: DrawOverlay called without a frame in progress")
	}

	var transform [16]float32
	common.Mul4(transform[:], ctx.Projection[:], ctx.Overlay[:])
	r.queue.WriteBuffer(r.overlayUniform, 0, matrixBytes(transform))
	triad := axisTriad(ctx.View, common.Vec2{r.triadOffset, r.triadOffset}, r.triadLength)
	r.queue.WriteBuffer(r.overlayVertices, 0, triad)

	pass := r.frameEncoder.BeginRenderPass(r.passDescriptor(wgpu.LoadOpLoad))
	pass.SetPipeline(r.pipeline)
	pass.SetBindGroup(0, r.overlayGroup, nil)
	pass.SetVertexBuffer(0, r.overlayVertices, 0, uint64(len(triad)))
	pass.Draw(uint32(len(triad)/vertexStride), 1, 0, 0)
	pass.End()

	return r.endFrame()
}

// passDescriptor targets the current swapchain view. The depth buffer is always cleared so the
// overlay pass draws over the scene.
func (r *renderer) passDescriptor(load wgpu.LoadOp) *wgpu.RenderPassDescriptor {
	return &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       r.frameView,
				LoadOp:     load,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: r.clear,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            r.depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}
}

func (r *renderer) beginFrame() error {
	if r.frameSurface != nil {
		return errors.New("renderer: previous frame not yet presented")
	}

	surfaceTexture, err := r.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("renderer: acquire surface texture: %w", err)
	}
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return fmt.Errorf("renderer: create surface view: %w", err)
	}
	encoder, err := r.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return fmt.Errorf("renderer: create command encoder: %w", err)
	}

	r.frameEncoder = encoder
	r.frameSurface = surfaceTexture
	r.frameView = view
	return nil
}

// endFrame submits the encoded passes and presents the surface.
func (r *renderer) endFrame() error {
	commandBuffer, err := r.frameEncoder.Finish(nil)
	if err != nil {
		r.abortFrame()
		return fmt.Errorf("renderer: finish frame: %w", err)
	}
	r.queue.Submit(commandBuffer)
	commandBuffer.Release()

	r.surface.Present()
	r.abortFrame()
	return nil
}

// abortFrame releases the frame state whether or not it was submitted.
func (r *renderer) abortFrame() {
	if r.frameEncoder != nil {
		r.frameEncoder.Release()
		r.frameEncoder = nil
	}
	if r.frameView != nil {
		r.frameView.Release()
		r.frameView = nil
	}
	if r.frameSurface != nil {
		r.frameSurface.Release()
		r.frameSurface = nil
	}
}

func (r *renderer) releaseDepth() {
	if r.depthView != nil {
		r.depthView.Release()
		r.depthView = nil
	}
	if r.depthTexture != nil {
		r.depthTexture.Release()
		r.depthTexture = nil
	}
}

func (r *renderer) Resize(width, height int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.configure(width, height)
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.abortFrame()
	r.releaseDepth()
	for _, buf := range []*wgpu.Buffer{r.sceneVertices, r.overlayVertices, r.sceneUniform, r.overlayUniform} {
		if buf != nil {
			buf.Release()
		}
	}
	for _, group := range []*wgpu.BindGroup{r.sceneGroup, r.overlayGroup} {
		if group != nil {
			group.Release()
		}
	}
	if r.pipeline != nil {
		r.pipeline.Release()
	}
	if r.layout != nil {
		r.layout.Release()
	}
	if r.queue != nil {
		r.queue.Release()
	}
	if r.device != nil {
		r.device.Release()
	}
	if r.adapter != nil {
		r.adapter.Release()
	}
	if r.surface != nil {
		r.surface.Release()
	}
	if r.instance != nil {
		r.instance.Release()
	}
	r.sceneVertices, r.overlayVertices, r.sceneUniform, r.overlayUniform = nil, nil, nil, nil
	r.sceneGroup, r.overlayGroup, r.pipeline, r.layout = nil, nil, nil, nil
	r.queue, r.device, r.adapter, r.surface, r.instance = nil, nil, nil, nil, nil
	r.sceneCapacity = 0
	common.Logger().Info("renderer released")
}
