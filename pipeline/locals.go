package pipeline

import (
	"encoding/binary"
	"math"
)

// LocalsSize is the byte size of the Locals uniform block.
//
//	screen_size  (vec2<f32>) offset 0
//	texture_size (u32)       offset 8
//	_pad0        (u32)       offset 12
//	_pad1        (vec2<u32>) offset 16
//	_pad2        (vec2<u32>) offset 24
const LocalsSize = 32

// Locals is the per-frame uniform block bound at slot 0.
//
// The reserved fields carry no meaning. They keep the Go layout identical to
// the WGSL struct so the block can be uploaded as-is, and they are always
// encoded as zero.
type Locals struct {
	// ScreenSize is the render target size in pixels.
	ScreenSize [2]float32

	// TextureSize is the atlas edge length in texels. The atlas is square.
	TextureSize uint32

	reserved0 uint32
	reserved1 [2]uint32
	reserved2 [2]uint32
}

// NewLocals returns the uniform block for a screen of w x h pixels and a
// square atlas of atlasSize texels.
func NewLocals(w, h float32, atlasSize uint32) Locals {
	return Locals{ScreenSize: [2]float32{w, h}, TextureSize: atlasSize}
}

// Bytes encodes the block in its fixed 32-byte little-endian layout.
func (l Locals) Bytes() []byte {
	buf := make([]byte, LocalsSize)
	l.Put(buf)
	return buf
}

// Put writes the block into buf, which must hold at least LocalsSize bytes.
func (l Locals) Put(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(l.ScreenSize[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(l.ScreenSize[1]))
	binary.LittleEndian.PutUint32(buf[8:12], l.TextureSize)
	binary.LittleEndian.PutUint32(buf[12:16], l.reserved0)
	binary.LittleEndian.PutUint32(buf[16:20], l.reserved1[0])
	binary.LittleEndian.PutUint32(buf[20:24], l.reserved1[1])
	binary.LittleEndian.PutUint32(buf[24:28], l.reserved2[0])
	binary.LittleEndian.PutUint32(buf[28:32], l.reserved2[1])
}
