package pipeline

// VertexOutput is the result of the vertex stage for one vertex.
type VertexOutput struct {
	// Position is the clip-space position (x, y, z, w).
	Position [4]float32

	// UV is the normalized atlas sample coordinate.
	UV [2]float32

	// Color is the unpacked vertex color.
	Color [4]float32
}

// TransformVertex runs the vertex stage: the pixel position is mapped to
// clip space, the texel coordinate is normalized by the atlas size and the
// packed color is unpacked.
func TransformVertex(v Vertex, l Locals) VertexOutput {
	return VertexOutput{
		Position: ClipPosition(v.Pos, l.ScreenSize),
		UV:       NormalizeUV(v.UV, l.TextureSize),
		Color:    v.Color.Unpack(),
	}
}

// ClipPosition maps a top-left-origin, y-down pixel position to clip space:
//
//	x_clip = 2*x/w - 1
//	y_clip = 1 - 2*y/h
//
// z is fixed at the near plane and w is 1.
func ClipPosition(pos, screen [2]float32) [4]float32 {
	return [4]float32{
		2*pos[0]/screen[0] - 1,
		1 - 2*pos[1]/screen[1],
		0,
		1,
	}
}

// NormalizeUV divides a texel coordinate by the atlas size.
func NormalizeUV(uv [2]uint32, size uint32) [2]float32 {
	s := float32(size)
	return [2]float32{float32(uv[0]) / s, float32(uv[1]) / s}
}

// ComposeFragment runs the fragment stage: the component-wise product of the
// sampled texel and the interpolated color.
func ComposeFragment(texel, color [4]float32) [4]float32 {
	return [4]float32{
		texel[0] * color[0],
		texel[1] * color[1],
		texel[2] * color[2],
		texel[3] * color[3],
	}
}
