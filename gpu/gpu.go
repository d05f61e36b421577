//go:build !nogpu

// Package gpu is the hardware rendering backend: it draws platform frames
// through the WebGPU UI pipeline and adapts a host supplied GPU device to
// platform.Host.
//
// The host owns the device and the surface. Applications that already have
// a gpucontext.DeviceProvider (for example a gogpu window) wrap it with
// NewHost; lower level code can drive a Renderer directly with hal objects.
//
// Usage:
//
//	host, err := gpu.NewHost(provider, surface, atlas, gpu.DefaultRendererConfig())
//	if err != nil {
//	    return err
//	}
//	defer host.Close()
//	for {
//	    app.Frame(host, time.Now())
//	}
package gpu

import (
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/logicsim"
	"github.com/gogpu/logicsim/atlas"
	gpuimpl "github.com/gogpu/logicsim/internal/gpu"
	"github.com/gogpu/logicsim/pipeline"
)

// Renderer draws frames with the UI render pipeline. See internal/gpu for
// the resource model.
type Renderer = gpuimpl.Renderer

// RendererConfig holds renderer settings.
type RendererConfig = gpuimpl.Config

// Renderer errors.
var (
	ErrNilDevice    = gpuimpl.ErrNilDevice
	ErrNilAtlas     = gpuimpl.ErrNilAtlas
	ErrNilView      = gpuimpl.ErrNilView
	ErrNilFrame     = gpuimpl.ErrNilFrame
	ErrDestroyed    = gpuimpl.ErrDestroyed
	ErrWaitTimeout  = gpuimpl.ErrWaitTimeout
)

// DefaultRendererConfig returns default renderer settings.
func DefaultRendererConfig() RendererConfig { return gpuimpl.DefaultConfig() }

// NewRenderer creates the UI pipeline on device and uploads atlas.
//
// The package logger is refreshed from logicsim.Logger() on every call, so
// SetLogger before creating renderers.
func NewRenderer(device hal.Device, queue hal.Queue, a *atlas.Atlas, cfg RendererConfig) (*Renderer, error) {
	gpuimpl.SetLogger(logicsim.Logger())
	return gpuimpl.NewRenderer(device, queue, a, cfg)
}

// ValidateShader compiles the embedded WGSL source to SPIR-V with naga and
// returns the module size in bytes.
func ValidateShader() (int, error) {
	src := pipeline.ShaderSource()
	if src == "" {
		return 0, pipeline.ErrEmptyShader
	}
	spirv, err := naga.Compile(src)
	if err != nil {
		return 0, fmt.Errorf("gpu: validate ui shader: %w", err)
	}
	logicsim.Logger().Debug("gpu: shader validated", "spirv_bytes", len(spirv))
	return len(spirv), nil
}
