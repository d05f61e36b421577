//go:build !nogpu

// Package gpu draws UI frames with a WebGPU render pipeline.
//
// A Renderer owns one pipeline built from the embedded ui.wgsl shader, the
// atlas texture with its sampler, and growable vertex, index and uniform
// buffers. Each Render call encodes a single render pass with one indexed
// draw, submits it and polls the queue until the submission completes, so
// there is never more than one frame in flight:
//
//	r, err := gpu.NewRenderer(device, queue, atlas, gpu.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	defer r.Destroy()
//	err = r.Render(view, frame)
//
// The package talks to the device through wgpu/hal directly. Tests use the
// hal/noop backend.
package gpu
