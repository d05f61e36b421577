//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/logicsim"
	"github.com/gogpu/logicsim/atlas"
	"github.com/gogpu/logicsim/platform"
)

// ErrNoHalProvider is returned when a device provider does not expose its
// hal.Device and hal.Queue.
var ErrNoHalProvider = errors.New("gpu: provider does not expose HAL types")

// Surface is the presentable target a Host renders into. It is supplied by
// the windowing layer.
type Surface interface {
	// Size returns the current target size in pixels.
	Size() (w, h int)

	// Acquire returns the view to render the next frame into.
	Acquire() (hal.TextureView, error)

	// Present shows the last acquired view.
	Present() error
}

// Host adapts a GPU device and a surface to platform.Host. Input events are
// fed by the windowing layer with Push and go through click synthesis.
type Host struct {
	renderer *Renderer
	surface  Surface
	now      func() time.Time

	mu     sync.Mutex
	queue  []platform.Event
	clicks platform.ClickDetector
}

var _ platform.Host = (*Host)(nil)

// NewHost creates a renderer on the provider's device. The provider must
// also implement HalDevice() any and HalQueue() any returning hal.Device and
// hal.Queue.
func NewHost(provider gpucontext.DeviceProvider, surface Surface, a *atlas.Atlas, cfg RendererConfig) (*Host, error) {
	device, queue, err := halFromProvider(provider)
	if err != nil {
		return nil, err
	}
	if cfg.Format == gputypes.TextureFormatUndefined {
		cfg.Format = provider.SurfaceFormat()
	}
	r, err := NewRenderer(device, queue, a, cfg)
	if err != nil {
		return nil, err
	}
	return &Host{renderer: r, surface: surface, now: time.Now}, nil
}

func halFromProvider(provider any) (hal.Device, hal.Queue, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, nil, ErrNoHalProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHalProvider)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHalProvider)
	}
	return device, queue, nil
}

// Renderer returns the renderer owned by the host.
func (h *Host) Renderer() *Renderer { return h.renderer }

// Close releases the renderer. The device stays with its provider.
func (h *Host) Close() { h.renderer.Destroy() }

// Size implements platform.Host.
func (h *Host) Size() (w, height int) { return h.surface.Size() }

// Push queues events for the next PollInput.
func (h *Host) Push(events ...platform.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	now := h.now()
	for _, ev := range events {
		h.queue = h.clicks.Process(h.queue, ev, now)
	}
}

// PollInput implements platform.Host.
func (h *Host) PollInput() []platform.Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	events := h.queue
	h.queue = nil
	return events
}

// SubmitFrame implements platform.Host: it renders f into a freshly acquired
// surface view and presents it.
func (h *Host) SubmitFrame(f *platform.Frame) error {
	if f == nil || f.List == nil {
		return platform.ErrNoFrame
	}
	view, err := h.surface.Acquire()
	if err != nil {
		return fmt.Errorf("gpu: acquire surface: %w", err)
	}
	if err := h.renderer.Render(view, f); err != nil {
		return err
	}
	if err := h.surface.Present(); err != nil {
		logicsim.Logger().Warn("gpu: present failed", "error", err)
		return fmt.Errorf("gpu: present: %w", err)
	}
	return nil
}
