// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package raster is the CPU reference implementation of the UI pipeline.
//
// It runs the same vertex and fragment stages as the WGSL shader
// (pipeline.TransformVertex and pipeline.ComposeFragment), rasterizes
// indexed triangles with edge functions and the top-left fill rule, and
// blends into an *image.RGBA with premultiplied source-over. It is used by
// headless rendering and by tests that need pixels without a GPU.
package raster

import (
	"errors"
	"fmt"
	"image"

	"github.com/chewxy/math32"

	"github.com/gogpu/logicsim/atlas"
	"github.com/gogpu/logicsim/draw"
	"github.com/gogpu/logicsim/internal/parallel"
	"github.com/gogpu/logicsim/pipeline"
)

// ErrIndexOutOfRange is returned when an index refers past the vertex slice.
var ErrIndexOutOfRange = errors.New("raster: index out of range")

// minBandRows is the smallest row band handed to a worker.
const minBandRows = 16

type options struct {
	workers int
}

// Option configures a Rasterizer.
type Option func(*options)

// WithParallel splits the destination rows into bands rasterized by n
// goroutines. n <= 1 rasterizes on the calling goroutine.
func WithParallel(n int) Option {
	return func(o *options) { o.workers = n }
}

// Rasterizer renders draw lists into RGBA images. A Rasterizer created with
// WithParallel owns a worker pool and must be closed.
type Rasterizer struct {
	pool *parallel.Pool
	out  []pipeline.VertexOutput
}

// New returns a Rasterizer.
func New(opts ...Option) *Rasterizer {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	r := &Rasterizer{}
	if o.workers > 1 {
		r.pool = parallel.NewPool(o.workers)
	}
	return r
}

// Close releases the worker pool.
func (r *Rasterizer) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}

// Render is a convenience wrapper that rasterizes list with a temporary
// Rasterizer.
func Render(dst *image.RGBA, list *draw.List, locals pipeline.Locals, a *atlas.Atlas, opts ...Option) error {
	r := New(opts...)
	defer r.Close()
	return r.Render(dst, list, locals, a)
}

// Clear fills dst with c. c is treated as premultiplied.
func Clear(dst *image.RGBA, c pipeline.Color) {
	px := [4]uint8{c.R(), c.G(), c.B(), c.A()}
	b := dst.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := dst.Pix[dst.PixOffset(b.Min.X, y):dst.PixOffset(b.Max.X, y)]
		for i := 0; i < len(row); i += 4 {
			copy(row[i:i+4], px[:])
		}
	}
}

// Render rasterizes the triangles of list into dst. The destination bounds
// form the viewport: clip space (-1, 1) maps to the top-left pixel corner
// and (1, -1) to the bottom-right one.
func (r *Rasterizer) Render(dst *image.RGBA, list *draw.List, locals pipeline.Locals, a *atlas.Atlas) error {
	return r.RenderMesh(dst, list.Vertices, list.Indices, locals, a)
}

// RenderMesh rasterizes an indexed triangle list.
func (r *Rasterizer) RenderMesh(dst *image.RGBA, vertices []pipeline.Vertex, indices []uint32, locals pipeline.Locals, a *atlas.Atlas) error {
	for i, idx := range indices {
		if int(idx) >= len(vertices) {
			return fmt.Errorf("%w: indices[%d] = %d, %d vertices", ErrIndexOutOfRange, i, idx, len(vertices))
		}
	}
	if len(indices) < 3 {
		return nil
	}

	b := dst.Bounds()
	vp := viewport{x: float32(b.Min.X), y: float32(b.Min.Y), w: float32(b.Dx()), h: float32(b.Dy())}

	if cap(r.out) < len(vertices) {
		r.out = make([]pipeline.VertexOutput, len(vertices))
	}
	out := r.out[:len(vertices)]
	for i, v := range vertices {
		out[i] = pipeline.TransformVertex(v, locals)
	}

	rows := b.Dy()
	if r.pool == nil || rows < 2*minBandRows {
		rasterBand(dst, out, indices, vp, a, b.Min.Y, b.Max.Y)
		return nil
	}
	bands := rows / minBandRows
	r.pool.Range(bands, func(lo, hi int) {
		y0 := b.Min.Y + lo*rows/bands
		y1 := b.Min.Y + hi*rows/bands
		rasterBand(dst, out, indices, vp, a, y0, y1)
	})
	return nil
}

type viewport struct {
	x, y, w, h float32
}

func (vp viewport) screen(clip [4]float32) [2]float32 {
	return [2]float32{
		vp.x + (clip[0]/clip[3]+1)*0.5*vp.w,
		vp.y + (1-clip[1]/clip[3])*0.5*vp.h,
	}
}

// rasterBand draws every triangle clipped to rows [y0, y1).
func rasterBand(dst *image.RGBA, out []pipeline.VertexOutput, indices []uint32, vp viewport, a *atlas.Atlas, y0, y1 int) {
	for t := 0; t+2 < len(indices); t += 3 {
		v0 := &out[indices[t]]
		v1 := &out[indices[t+1]]
		v2 := &out[indices[t+2]]
		triangle(dst, v0, v1, v2, vp, a, y0, y1)
	}
}

// edge is the signed area of (a, b, p). With y pointing down it is
// positive when p lies to the right of the directed edge a->b.
func edge(a, b, p [2]float32) float32 {
	return (p[0]-a[0])*(b[1]-a[1]) - (p[1]-a[1])*(b[0]-a[0])
}

// topLeft reports whether the directed edge a->b of a positively wound
// triangle is a left edge (going down) or a top edge (going left).
// Pixels exactly on such an edge are covered.
func topLeft(a, b [2]float32) bool {
	dy := b[1] - a[1]
	return dy > 0 || (dy == 0 && b[0] < a[0])
}

func covers(w float32, tl bool) bool {
	return w > 0 || (w == 0 && tl)
}

func triangle(dst *image.RGBA, v0, v1, v2 *pipeline.VertexOutput, vp viewport, a *atlas.Atlas, y0, y1 int) {
	p0 := vp.screen(v0.Position)
	p1 := vp.screen(v1.Position)
	p2 := vp.screen(v2.Position)

	area := edge(p0, p1, p2)
	if area == 0 {
		return
	}
	if area < 0 {
		// No culling: flip to the positive winding.
		v1, v2 = v2, v1
		p1, p2 = p2, p1
		area = -area
	}

	b := dst.Bounds()
	minX := clampInt(int(math32.Floor(min3(p0[0], p1[0], p2[0]))), b.Min.X, b.Max.X)
	maxX := clampInt(int(math32.Ceil(max3(p0[0], p1[0], p2[0]))), b.Min.X, b.Max.X)
	minY := clampInt(int(math32.Floor(min3(p0[1], p1[1], p2[1]))), y0, y1)
	maxY := clampInt(int(math32.Ceil(max3(p0[1], p1[1], p2[1]))), y0, y1)
	if minX >= maxX || minY >= maxY {
		return
	}

	tl0 := topLeft(p1, p2)
	tl1 := topLeft(p2, p0)
	tl2 := topLeft(p0, p1)
	inv := 1 / area

	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			p := [2]float32{float32(x) + 0.5, float32(y) + 0.5}
			w0 := edge(p1, p2, p)
			w1 := edge(p2, p0, p)
			w2 := edge(p0, p1, p)
			if !covers(w0, tl0) || !covers(w1, tl1) || !covers(w2, tl2) {
				continue
			}
			l0, l1, l2 := w0*inv, w1*inv, w2*inv

			u := l0*v0.UV[0] + l1*v1.UV[0] + l2*v2.UV[0]
			v := l0*v0.UV[1] + l1*v1.UV[1] + l2*v2.UV[1]
			var c [4]float32
			for k := range c {
				c[k] = l0*v0.Color[k] + l1*v1.Color[k] + l2*v2.Color[k]
			}

			frag := pipeline.ComposeFragment(a.Sample(u, v), c)
			blendOver(dst, x, y, frag)
		}
	}
}

// blendOver composites a premultiplied source over the destination pixel.
func blendOver(dst *image.RGBA, x, y int, src [4]float32) {
	o := dst.PixOffset(x, y)
	px := dst.Pix[o : o+4 : o+4]
	inv := 1 - clamp01(src[3])
	for k := range 4 {
		d := float32(px[k]) / 255
		px[k] = toByte(clamp01(src[k]) + d*inv)
	}
}

// At returns the premultiplied color of a pixel as a packed color.
func At(img *image.RGBA, x, y int) pipeline.Color {
	c := img.RGBAAt(x, y)
	return pipeline.Pack(c.R, c.G, c.B, c.A)
}

func toByte(v float32) uint8 {
	return uint8(math32.Round(clamp01(v) * 255))
}

func clamp01(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func min3(a, b, c float32) float32 { return math32.Min(a, math32.Min(b, c)) }

func max3(a, b, c float32) float32 { return math32.Max(a, math32.Max(b, c)) }
