package pipeline

import (
	"encoding/binary"
	"math"
)

// VertexStride is the byte stride of one encoded vertex.
//
//	pos   (vec2<f32>) = 8 bytes  (location 0, offset 0)
//	uv    (vec2<u32>) = 8 bytes  (location 1, offset 8)
//	color (u32)       = 4 bytes  (location 2, offset 16)
//
// Total = 20 bytes per vertex.
const VertexStride = 20

// IndexSize is the byte size of one index. Draw lists use u32 indices.
const IndexSize = 4

// Vertex is one vertex of a draw list.
type Vertex struct {
	// Pos is the position in screen pixels, origin top-left, y down.
	Pos [2]float32

	// UV is the atlas texel coordinate (not normalized).
	UV [2]uint32

	// Color is the packed premultiplied vertex color.
	Color Color
}

// V is shorthand for constructing a Vertex.
func V(x, y float32, u, v uint32, c Color) Vertex {
	return Vertex{Pos: [2]float32{x, y}, UV: [2]uint32{u, v}, Color: c}
}

// Put writes the vertex into buf, which must hold at least VertexStride bytes.
func (v Vertex) Put(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v.Pos[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v.Pos[1]))
	binary.LittleEndian.PutUint32(buf[8:12], v.UV[0])
	binary.LittleEndian.PutUint32(buf[12:16], v.UV[1])
	binary.LittleEndian.PutUint32(buf[16:20], uint32(v.Color))
}

// ReadVertex decodes a vertex previously written with Put.
func ReadVertex(buf []byte) Vertex {
	return Vertex{
		Pos: [2]float32{
			math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4])),
			math.Float32frombits(binary.LittleEndian.Uint32(buf[4:8])),
		},
		UV: [2]uint32{
			binary.LittleEndian.Uint32(buf[8:12]),
			binary.LittleEndian.Uint32(buf[12:16]),
		},
		Color: Color(binary.LittleEndian.Uint32(buf[16:20])),
	}
}

// EncodeVertices serializes vertices for GPU upload, reusing staging when
// it is large enough. It returns the encoded bytes.
func EncodeVertices(vertices []Vertex, staging []byte) []byte {
	needed := len(vertices) * VertexStride
	if cap(staging) < needed {
		staging = make([]byte, needed)
	}
	buf := staging[:needed]
	off := 0
	for _, v := range vertices {
		v.Put(buf[off:])
		off += VertexStride
	}
	return buf
}

// EncodeIndices serializes u32 indices for GPU upload, reusing staging when
// it is large enough.
func EncodeIndices(indices []uint32, staging []byte) []byte {
	needed := len(indices) * IndexSize
	if cap(staging) < needed {
		staging = make([]byte, needed)
	}
	buf := staging[:needed]
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[i*IndexSize:], idx)
	}
	return buf
}
