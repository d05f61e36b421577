//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/logicsim/atlas"
	"github.com/gogpu/logicsim/pipeline"
	"github.com/gogpu/logicsim/platform"
)

// Renderer errors.
var (
	// ErrNilDevice is returned when NewRenderer gets a nil device or queue.
	ErrNilDevice = errors.New("gpu: device or queue is nil")

	// ErrNilAtlas is returned when NewRenderer gets a nil atlas.
	ErrNilAtlas = errors.New("gpu: atlas is nil")

	// ErrNilView is returned when Render is called without a target view.
	ErrNilView = errors.New("gpu: target view is nil")

	// ErrNilFrame is returned when Render is called without a frame.
	ErrNilFrame = errors.New("gpu: frame is nil")

	// ErrDestroyed is returned when rendering with a destroyed renderer.
	ErrDestroyed = errors.New("gpu: renderer destroyed")

	// ErrWaitTimeout is returned when the GPU does not finish a frame in time.
	ErrWaitTimeout = errors.New("gpu: timed out waiting for frame")
)

// Config holds renderer settings.
type Config struct {
	// Format is the color format of the views passed to Render.
	// Default: BGRA8Unorm
	Format gputypes.TextureFormat

	// InitialVertices is the initial vertex buffer capacity.
	// Default: 4096
	InitialVertices int

	// InitialIndices is the initial index buffer capacity.
	// Default: 8192
	InitialIndices int

	// WaitTimeout bounds the wait for each submitted frame.
	// Default: 5s
	WaitTimeout time.Duration
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		Format:          gputypes.TextureFormatBGRA8Unorm,
		InitialVertices: 4096,
		InitialIndices:  8192,
		WaitTimeout:     5 * time.Second,
	}
}

func (c Config) normalize() Config {
	d := DefaultConfig()
	if c.Format == gputypes.TextureFormatUndefined {
		c.Format = d.Format
	}
	if c.InitialVertices <= 0 {
		c.InitialVertices = d.InitialVertices
	}
	if c.InitialIndices <= 0 {
		c.InitialIndices = d.InitialIndices
	}
	if c.WaitTimeout <= 0 {
		c.WaitTimeout = d.WaitTimeout
	}
	return c
}

// Renderer draws platform frames with the UI render pipeline.
//
// Renderer is NOT safe for concurrent use.
type Renderer struct {
	device hal.Device
	queue  hal.Queue
	cfg    Config

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline

	atlasTex  hal.Texture
	atlasView hal.TextureView
	atlasSize uint32
	sampler   hal.Sampler

	uniformBuf hal.Buffer
	vertBuf    hal.Buffer
	vertCap    uint64
	idxBuf     hal.Buffer
	idxCap     uint64
	bindGroup  hal.BindGroup

	vertStaging []byte
	idxStaging  []byte
	uniform     [pipeline.LocalsSize]byte

	frames    uint64
	destroyed bool
}

// NewRenderer creates every GPU object the pipeline needs and uploads the
// atlas. On failure all partially created objects are released.
func NewRenderer(device hal.Device, queue hal.Queue, a *atlas.Atlas, cfg Config) (*Renderer, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	if a == nil {
		return nil, ErrNilAtlas
	}
	r := &Renderer{device: device, queue: queue, cfg: cfg.normalize()}
	if err := r.init(a); err != nil {
		r.Destroy()
		return nil, err
	}
	slogger().Info("gpu: renderer ready", "format", r.cfg.Format, "atlas", r.atlasSize)
	return r, nil
}

func (r *Renderer) init(a *atlas.Atlas) error {
	if err := r.createPipeline(); err != nil {
		return err
	}
	if err := r.createAtlas(a); err != nil {
		return err
	}
	uniformBuf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "ui_locals",
		Size:  pipeline.LocalsSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("gpu: create locals buffer: %w", err)
	}
	r.uniformBuf = uniformBuf

	if err := r.ensureVertices(uint64(r.cfg.InitialVertices) * pipeline.VertexStride); err != nil {
		return err
	}
	if err := r.ensureIndices(uint64(r.cfg.InitialIndices) * pipeline.IndexSize); err != nil {
		return err
	}

	bindGroup, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "ui_bind",
		Layout: r.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: pipeline.BindingLocals, Resource: gputypes.BufferBinding{
				Buffer: r.uniformBuf.NativeHandle(), Offset: 0, Size: pipeline.LocalsSize,
			}},
			{Binding: pipeline.BindingAtlas, Resource: gputypes.TextureViewBinding{
				TextureView: r.atlasView.NativeHandle(),
			}},
			{Binding: pipeline.BindingSampler, Resource: gputypes.SamplerBinding{
				Sampler: r.sampler.NativeHandle(),
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: create bind group: %w", err)
	}
	r.bindGroup = bindGroup
	return nil
}

// createPipeline compiles the UI shader and creates the render pipeline with
// premultiplied alpha blending.
func (r *Renderer) createPipeline() error {
	src := pipeline.ShaderSource()
	if src == "" {
		return pipeline.ErrEmptyShader
	}
	shader, err := r.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "ui_shader",
		Source: hal.ShaderSource{WGSL: src},
	})
	if err != nil {
		return fmt.Errorf("gpu: compile ui shader: %w", err)
	}
	r.shader = shader

	bindLayout, err := r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   "ui_bind_layout",
		Entries: pipeline.BindGroupLayoutEntries(),
	})
	if err != nil {
		return fmt.Errorf("gpu: create bind group layout: %w", err)
	}
	r.bindLayout = bindLayout

	pipeLayout, err := r.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "ui_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{r.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("gpu: create pipeline layout: %w", err)
	}
	r.pipeLayout = pipeLayout

	premulBlend := gputypes.BlendStatePremultiplied()
	pipe, err := r.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "ui_pipeline",
		Layout: r.pipeLayout,
		Vertex: hal.VertexState{
			Module:     r.shader,
			EntryPoint: pipeline.VertexEntryPoint,
			Buffers:    pipeline.VertexBufferLayouts(),
		},
		Fragment: &hal.FragmentState{
			Module:     r.shader,
			EntryPoint: pipeline.FragmentEntryPoint,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    r.cfg.Format,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: create render pipeline: %w", err)
	}
	r.pipeline = pipe
	return nil
}

// createAtlas creates the atlas texture, uploads its pixels once and creates
// the sampler.
func (r *Renderer) createAtlas(a *atlas.Atlas) error {
	img := a.Image()
	size := a.Size()
	r.atlasSize = size

	tex, err := r.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "ui_atlas",
		Size:          hal.Extent3D{Width: size, Height: size, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        pipeline.AtlasFormat,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("gpu: create atlas texture: %w", err)
	}
	r.atlasTex = tex

	view, err := r.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "ui_atlas_view",
		Format:        pipeline.AtlasFormat,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		return fmt.Errorf("gpu: create atlas view: %w", err)
	}
	r.atlasView = view

	err = r.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: r.atlasTex, MipLevel: 0},
		img.Pix,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(img.Stride), //nolint:gosec // atlas stride is bounded by its size
			RowsPerImage: size,
		},
		&hal.Extent3D{Width: size, Height: size, DepthOrArrayLayers: 1},
	)
	if err != nil {
		return fmt.Errorf("gpu: upload atlas: %w", err)
	}

	sampler, err := r.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "ui_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeNearest,
		MinFilter:    gputypes.FilterModeNearest,
		MipmapFilter: gputypes.FilterModeNearest,
	})
	if err != nil {
		return fmt.Errorf("gpu: create sampler: %w", err)
	}
	r.sampler = sampler
	return nil
}

// growCapacity doubles current (256 when empty) until it holds need bytes.
func growCapacity(current, need uint64) uint64 {
	c := current
	if c == 0 {
		c = 256
	}
	for c < need {
		c *= 2
	}
	return c
}

func (r *Renderer) ensureVertices(size uint64) error {
	if size <= r.vertCap && r.vertBuf != nil {
		return nil
	}
	newCap := growCapacity(r.vertCap, size)
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "ui_vertices",
		Size:  newCap,
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("gpu: create vertex buffer (%d bytes): %w", newCap, err)
	}
	if r.vertBuf != nil {
		r.device.DestroyBuffer(r.vertBuf)
	}
	r.vertBuf, r.vertCap = buf, newCap
	slogger().Debug("gpu: vertex buffer resized", "bytes", newCap)
	return nil
}

func (r *Renderer) ensureIndices(size uint64) error {
	if size <= r.idxCap && r.idxBuf != nil {
		return nil
	}
	newCap := growCapacity(r.idxCap, size)
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "ui_indices",
		Size:  newCap,
		Usage: gputypes.BufferUsageIndex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("gpu: create index buffer (%d bytes): %w", newCap, err)
	}
	if r.idxBuf != nil {
		r.device.DestroyBuffer(r.idxBuf)
	}
	r.idxBuf, r.idxCap = buf, newCap
	slogger().Debug("gpu: index buffer resized", "bytes", newCap)
	return nil
}

// Frames returns the number of frames submitted so far.
func (r *Renderer) Frames() uint64 { return r.frames }

// AtlasSize returns the edge length of the uploaded atlas in texels.
func (r *Renderer) AtlasSize() uint32 { return r.atlasSize }

// Render clears view to the frame's clear color, draws the frame's list in
// one indexed draw and waits for the GPU to finish.
func (r *Renderer) Render(view hal.TextureView, frame *platform.Frame) error {
	switch {
	case r.destroyed:
		return ErrDestroyed
	case view == nil:
		return ErrNilView
	case frame == nil:
		return ErrNilFrame
	}

	indexCount := 0
	if frame.List != nil {
		indexCount = len(frame.List.Indices)
		r.vertStaging = pipeline.EncodeVertices(frame.List.Vertices, r.vertStaging)
		r.idxStaging = pipeline.EncodeIndices(frame.List.Indices, r.idxStaging)
		if err := r.ensureVertices(uint64(len(r.vertStaging))); err != nil {
			return err
		}
		if err := r.ensureIndices(uint64(len(r.idxStaging))); err != nil {
			return err
		}
		if indexCount > 0 {
			if err := r.queue.WriteBuffer(r.vertBuf, 0, r.vertStaging); err != nil {
				return fmt.Errorf("gpu: upload ui_vertices: %w", err)
			}
			if err := r.queue.WriteBuffer(r.idxBuf, 0, r.idxStaging); err != nil {
				return fmt.Errorf("gpu: upload ui_indices: %w", err)
			}
		}
	}
	frame.Locals.Put(r.uniform[:])
	if err := r.queue.WriteBuffer(r.uniformBuf, 0, r.uniform[:]); err != nil {
		return fmt.Errorf("gpu: upload ui_locals: %w", err)
	}

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "ui_encoder",
	})
	if err != nil {
		return fmt.Errorf("gpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("ui_frame"); err != nil {
		return fmt.Errorf("gpu: begin encoding: %w", err)
	}

	bg := frame.Clear.Unpack()
	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "ui_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:    view,
			LoadOp:  gputypes.LoadOpClear,
			StoreOp: gputypes.StoreOpStore,
			ClearValue: gputypes.Color{
				R: float64(bg[0]), G: float64(bg[1]), B: float64(bg[2]), A: float64(bg[3]),
			},
		}},
	})
	if indexCount > 0 {
		rp.SetPipeline(r.pipeline)
		rp.SetBindGroup(0, r.bindGroup, nil)
		rp.SetVertexBuffer(0, r.vertBuf, 0)
		rp.SetIndexBuffer(r.idxBuf, gputypes.IndexFormatUint32, 0)
		rp.DrawIndexed(uint32(indexCount), 1, 0, 0, 0) //nolint:gosec // bounded by the index buffer size
	}
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("gpu: end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	idx, err := r.queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		return fmt.Errorf("gpu: submit frame %d: %w", r.frames, err)
	}
	if err := r.wait(idx); err != nil {
		return err
	}
	r.frames++
	slogger().Debug("gpu: frame rendered", "frame", r.frames, "indices", indexCount)
	return nil
}

// pollInterval is the sleep between completion polls of a submitted frame.
const pollInterval = 50 * time.Microsecond

// wait blocks until submission idx completes or WaitTimeout passes.
func (r *Renderer) wait(idx uint64) error {
	deadline := time.Now().Add(r.cfg.WaitTimeout)
	for r.queue.PollCompleted() < idx {
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: submission %d after %v", ErrWaitTimeout, idx, r.cfg.WaitTimeout)
		}
		time.Sleep(pollInterval)
	}
	return nil
}

// Destroy releases all GPU objects in reverse creation order. It is safe to
// call more than once.
func (r *Renderer) Destroy() {
	if r.destroyed {
		return
	}
	r.destroyed = true
	d := r.device
	if r.bindGroup != nil {
		d.DestroyBindGroup(r.bindGroup)
		r.bindGroup = nil
	}
	if r.idxBuf != nil {
		d.DestroyBuffer(r.idxBuf)
		r.idxBuf, r.idxCap = nil, 0
	}
	if r.vertBuf != nil {
		d.DestroyBuffer(r.vertBuf)
		r.vertBuf, r.vertCap = nil, 0
	}
	if r.uniformBuf != nil {
		d.DestroyBuffer(r.uniformBuf)
		r.uniformBuf = nil
	}
	if r.sampler != nil {
		d.DestroySampler(r.sampler)
		r.sampler = nil
	}
	if r.atlasView != nil {
		d.DestroyTextureView(r.atlasView)
		r.atlasView = nil
	}
	if r.atlasTex != nil {
		d.DestroyTexture(r.atlasTex)
		r.atlasTex = nil
	}
	if r.pipeline != nil {
		d.DestroyRenderPipeline(r.pipeline)
		r.pipeline = nil
	}
	if r.pipeLayout != nil {
		d.DestroyPipelineLayout(r.pipeLayout)
		r.pipeLayout = nil
	}
	if r.bindLayout != nil {
		d.DestroyBindGroupLayout(r.bindLayout)
		r.bindLayout = nil
	}
	if r.shader != nil {
		d.DestroyShaderModule(r.shader)
		r.shader = nil
	}
	slogger().Debug("gpu: renderer destroyed", "frames", r.frames)
}
