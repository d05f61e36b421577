package pipeline

import "github.com/gogpu/gputypes"

// Binding slots of bind group 0.
const (
	BindingLocals  = 0
	BindingAtlas   = 1
	BindingSampler = 2
)

// Shader entry points.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// AtlasFormat is the texture format of the atlas bound at BindingAtlas.
const AtlasFormat = gputypes.TextureFormatRGBA8Unorm

// VertexBufferLayouts returns the vertex buffer layout matching VertexInput
// in ui.wgsl:
//
//	location 0: pos   (Float32x2)
//	location 1: uv    (Uint32x2)
//	location 2: color (Uint32)
func VertexBufferLayouts() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // pos
				{Format: gputypes.VertexFormatUint32x2, Offset: 8, ShaderLocation: 1},  // uv
				{Format: gputypes.VertexFormatUint32, Offset: 16, ShaderLocation: 2},   // color
			},
		},
	}
}

// BindGroupLayoutEntries returns the entries of bind group 0:
//
//	Binding 0: Locals (uniform buffer, vertex+fragment)
//	Binding 1: atlas texture (texture_2d<f32>, fragment)
//	Binding 2: sampler (fragment)
func BindGroupLayoutEntries() []gputypes.BindGroupLayoutEntry {
	return []gputypes.BindGroupLayoutEntry{
		{
			Binding:    BindingLocals,
			Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
		},
		{
			Binding:    BindingAtlas,
			Visibility: gputypes.ShaderStageFragment,
			Texture: &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
			},
		},
		{
			Binding:    BindingSampler,
			Visibility: gputypes.ShaderStageFragment,
			Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
		},
	}
}
