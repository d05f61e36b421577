// Package pipeline defines the fixed rendering contract shared by every
// renderer of logicsim draw lists.
//
// A draw list is a stream of [Vertex] values (screen pixel positions,
// integer atlas texel coordinates, packed RGBA colors) plus u32 indices.
// Renderers bind one [Locals] uniform block, the atlas texture and a sampler
// at fixed slots of bind group 0 and run two stages:
//
//   - the vertex stage ([TransformVertex]) maps pixels to clip space,
//     normalizes texel coordinates by the atlas size and unpacks colors;
//   - the fragment stage ([ComposeFragment]) multiplies the sampled texel
//     by the interpolated color.
//
// The WGSL implementation of both stages is returned by [ShaderSource]; the
// Go functions in this package are its reference and are used by the CPU
// rasterizer.
package pipeline
