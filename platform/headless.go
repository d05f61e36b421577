// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package platform

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"sync"
	"time"

	"github.com/gogpu/logicsim"
	"github.com/gogpu/logicsim/raster"
)

// ErrNoFrame is returned by SubmitFrame for a frame without a draw list.
var ErrNoFrame = errors.New("platform: frame has no draw list")

// HeadlessOption configures a Headless host.
type HeadlessOption func(*Headless)

// WithClock sets the time source used for click synthesis.
func WithClock(now func() time.Time) HeadlessOption {
	return func(h *Headless) { h.now = now }
}

// WithRaster passes options to the CPU rasterizer.
func WithRaster(opts ...raster.Option) HeadlessOption {
	return func(h *Headless) { h.rasterOpts = opts }
}

// Headless is a Host without a window. Events are scripted with Push and
// frames are rasterized into an RGBA image.
//
// Headless is safe for concurrent use.
type Headless struct {
	mu     sync.Mutex
	img    *image.RGBA
	queue  []Event
	clicks ClickDetector
	frames int

	now        func() time.Time
	rasterOpts []raster.Option
	rast       *raster.Rasterizer
}

// NewHeadless returns a headless host with a w x h target.
func NewHeadless(w, h int, opts ...HeadlessOption) *Headless {
	hl := &Headless{
		img: image.NewRGBA(image.Rect(0, 0, w, h)),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(hl)
	}
	hl.rast = raster.New(hl.rasterOpts...)
	return hl
}

// Close releases the rasterizer workers.
func (h *Headless) Close() {
	h.rast.Close()
}

// Size implements Host.
func (h *Headless) Size() (w, height int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	b := h.img.Bounds()
	return b.Dx(), b.Dy()
}

// Push queues events for the next PollInput. Press and Release pairs are
// run through click synthesis at push time.
func (h *Headless) Push(events ...Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	now := h.now()
	for _, ev := range events {
		if r, ok := ev.(Resize); ok {
			h.img = image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
		}
		h.queue = h.clicks.Process(h.queue, ev, now)
	}
}

// Resize changes the target size and queues a Resize event.
func (h *Headless) Resize(w, height int) {
	h.Push(Resize{Width: w, Height: height})
}

// PollInput implements Host.
func (h *Headless) PollInput() []Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	events := h.queue
	h.queue = nil
	return events
}

// SubmitFrame implements Host. The target is cleared to f.Clear and the
// draw list is rasterized with the CPU pipeline.
func (h *Headless) SubmitFrame(f *Frame) error {
	if f == nil || f.List == nil {
		return ErrNoFrame
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	raster.Clear(h.img, f.Clear)
	if err := h.rast.Render(h.img, f.List, f.Locals, f.List.Atlas()); err != nil {
		return fmt.Errorf("platform: submit frame: %w", err)
	}
	h.frames++
	logicsim.Logger().Debug("platform: headless frame",
		"frame", h.frames, "vertices", len(f.List.Vertices), "indices", len(f.List.Indices))
	return nil
}

// Frames returns the number of frames submitted.
func (h *Headless) Frames() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frames
}

// Image returns a copy of the last rendered frame.
func (h *Headless) Image() *image.RGBA {
	h.mu.Lock()
	defer h.mu.Unlock()
	cp := image.NewRGBA(h.img.Bounds())
	copy(cp.Pix, h.img.Pix)
	return cp
}

// EncodePNG writes the last rendered frame as PNG.
func (h *Headless) EncodePNG(w io.Writer) error {
	return png.Encode(w, h.Image())
}

// SavePNG writes the last rendered frame to a PNG file.
func (h *Headless) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := h.EncodePNG(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
