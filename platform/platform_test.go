// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package platform

import (
	"bytes"
	"image/png"
	"path/filepath"
	"testing"
	"time"

	"github.com/gogpu/logicsim/atlas"
	"github.com/gogpu/logicsim/draw"
	"github.com/gogpu/logicsim/pipeline"
)

func TestClickDetector(t *testing.T) {
	t0 := time.Unix(1000, 0)
	tests := []struct {
		name    string
		press   Press
		release Release
		after   time.Duration
		want    bool
	}{
		{"same spot", Press{draw.Pt(10, 10), ButtonLeft}, Release{draw.Pt(10, 10), ButtonLeft}, 100 * time.Millisecond, true},
		{"small move", Press{draw.Pt(10, 10), ButtonLeft}, Release{draw.Pt(11, 11), ButtonLeft}, 0, true},
		{"distance squared five", Press{draw.Pt(10, 10), ButtonLeft}, Release{draw.Pt(12, 11), ButtonLeft}, 0, false},
		{"moved too far", Press{draw.Pt(10, 10), ButtonLeft}, Release{draw.Pt(12, 12), ButtonLeft}, 0, false},
		{"other button", Press{draw.Pt(10, 10), ButtonLeft}, Release{draw.Pt(10, 10), ButtonRight}, 0, false},
		{"held too long", Press{draw.Pt(10, 10), ButtonLeft}, Release{draw.Pt(10, 10), ButtonLeft}, 2 * time.Second, false},
		{"just in time", Press{draw.Pt(10, 10), ButtonMiddle}, Release{draw.Pt(10, 10), ButtonMiddle}, 1999 * time.Millisecond, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d ClickDetector
			evs := d.Process(nil, tt.press, t0)
			evs = d.Process(evs, tt.release, t0.Add(tt.after))

			var click *Click
			for _, ev := range evs {
				if c, ok := ev.(Click); ok {
					click = &c
				}
			}
			if (click != nil) != tt.want {
				t.Fatalf("click = %v, want %v (events %v)", click != nil, tt.want, evs)
			}
			if click != nil {
				if click.Pos != tt.press.Pos || click.Button != tt.press.Button {
					t.Errorf("click = %+v, want press position and button", *click)
				}
				if _, ok := evs[len(evs)-1].(Release); !ok {
					t.Error("Release must follow the synthesized Click")
				}
			}
		})
	}
}

func TestClickDetectorReleaseWithoutPress(t *testing.T) {
	var d ClickDetector
	evs := d.Process(nil, Release{Button: ButtonLeft}, time.Now())
	if len(evs) != 1 {
		t.Errorf("events = %v, want only the release", evs)
	}
}

func TestHeadlessInputQueue(t *testing.T) {
	clock := time.Unix(0, 0)
	h := NewHeadless(64, 48, WithClock(func() time.Time { return clock }))
	defer h.Close()

	h.Push(Hover{draw.Pt(5, 5)}, Press{draw.Pt(5, 5), ButtonLeft}, Release{draw.Pt(5, 5), ButtonLeft})
	evs := h.PollInput()
	if len(evs) != 4 {
		t.Fatalf("events = %v, want hover, press, click, release", evs)
	}
	if _, ok := evs[2].(Click); !ok {
		t.Errorf("evs[2] = %T, want Click", evs[2])
	}
	if len(h.PollInput()) != 0 {
		t.Error("PollInput did not drain the queue")
	}

	h.Resize(32, 16)
	if w, hh := h.Size(); w != 32 || hh != 16 {
		t.Errorf("Size = %dx%d, want 32x16", w, hh)
	}
	if evs := h.PollInput(); len(evs) != 1 {
		t.Errorf("Resize events = %v", evs)
	}
}

func TestHeadlessSubmitFrame(t *testing.T) {
	h := NewHeadless(20, 10)
	defer h.Close()

	a := atlas.MustNew()
	list := draw.NewList(a)
	list.FillRect(draw.Rect{Min: draw.Pt(0, 0), Max: draw.Pt(10, 10)}, pipeline.White)
	frame := &Frame{List: list, Locals: pipeline.NewLocals(20, 10, a.Size()), Clear: pipeline.Black}

	if err := h.SubmitFrame(frame); err != nil {
		t.Fatalf("SubmitFrame: %v", err)
	}
	if err := h.SubmitFrame(&Frame{}); err == nil {
		t.Error("empty frame accepted")
	}
	if h.Frames() != 1 {
		t.Errorf("Frames = %d, want 1", h.Frames())
	}

	img := h.Image()
	if c := img.RGBAAt(5, 5); c.R != 255 || c.A != 255 {
		t.Errorf("pixel (5,5) = %v, want white", c)
	}
	if c := img.RGBAAt(15, 5); c.R != 0 || c.A != 255 {
		t.Errorf("pixel (15,5) = %v, want black", c)
	}

	var buf bytes.Buffer
	if err := h.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Bounds().Dx() != 20 {
		t.Errorf("png width = %d", decoded.Bounds().Dx())
	}

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := h.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
}
