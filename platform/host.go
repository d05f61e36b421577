// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package platform is the seam between the shared application and the code
// that owns a window, a surface and the input devices.
//
// A Host delivers input events and accepts frames. The application never
// talks to a window system directly; it polls events, builds a Frame and
// submits it. Headless is a Host that rasterizes frames on the CPU.
package platform

import (
	"github.com/gogpu/logicsim/draw"
	"github.com/gogpu/logicsim/pipeline"
)

// Frame is one frame ready for the fixed UI pipeline.
type Frame struct {
	// List holds screen-space vertices and u32 indices.
	List *draw.List

	// Locals is the uniform block bound at slot 0.
	Locals pipeline.Locals

	// Clear is the premultiplied color the target is cleared to.
	Clear pipeline.Color
}

// Host is implemented by platform integrations.
type Host interface {
	// Size returns the surface size in pixels.
	Size() (w, h int)

	// PollInput returns the events received since the previous call.
	PollInput() []Event

	// SubmitFrame renders f to the surface.
	SubmitFrame(f *Frame) error
}
