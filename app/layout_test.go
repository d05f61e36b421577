package app

import (
	"testing"

	"github.com/gogpu/logicsim/draw"
	"github.com/gogpu/logicsim/project"
	"github.com/gogpu/logicsim/sim"
)

func TestLayoutPins(t *testing.T) {
	tests := []struct {
		name    string
		placed  project.Placed
		body    draw.Rect
		inputs  []draw.Point
		outputs []draw.Point
	}{
		{
			"not", project.Placed{Kind: sim.Not},
			draw.Rect{Max: draw.Pt(4, 2)},
			[]draw.Point{{0, 1}}, []draw.Point{{4, 1}},
		},
		{
			"and", project.Placed{Kind: sim.And, X: 10, Y: 5},
			draw.Rect{Min: draw.Pt(10, 5), Max: draw.Pt(14, 9)},
			[]draw.Point{{10, 6}, {10, 8}}, []draw.Point{{14, 7}},
		},
		{
			"input", project.Placed{Kind: sim.Input},
			draw.Rect{Max: draw.Pt(2, 2)},
			[]draw.Point{}, []draw.Point{{2, 1}},
		},
		{
			"rotated not", project.Placed{Kind: sim.Not, Rotation: 1},
			draw.Rect{Max: draw.Pt(2, 4)},
			[]draw.Point{{1, 0}}, []draw.Point{{1, 4}},
		},
		{
			"three input or", project.Placed{Kind: sim.Or, Inputs: 3},
			draw.Rect{Max: draw.Pt(4, 6)},
			[]draw.Point{{0, 1}, {0, 3}, {0, 5}}, []draw.Point{{4, 3}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Layout(&tt.placed)
			if g.Body != tt.body {
				t.Errorf("Body = %+v, want %+v", g.Body, tt.body)
			}
			if len(g.Inputs) != len(tt.inputs) || len(g.Outputs) != len(tt.outputs) {
				t.Fatalf("pins = %v/%v, want %v/%v", g.Inputs, g.Outputs, tt.inputs, tt.outputs)
			}
			for i := range tt.inputs {
				if g.Inputs[i] != tt.inputs[i] {
					t.Errorf("input %d = %v, want %v", i, g.Inputs[i], tt.inputs[i])
				}
			}
			for i := range tt.outputs {
				if g.Outputs[i] != tt.outputs[i] {
					t.Errorf("output %d = %v, want %v", i, g.Outputs[i], tt.outputs[i])
				}
			}
		})
	}
}

func TestCameraZoomClampAndAnchor(t *testing.T) {
	c := NewCamera(draw.Pt(100, 50), 1)
	anchor := draw.Pt(300, 200)
	before := c.ToWorld(anchor)

	c.ZoomAt(anchor, 2)
	if c.Zoom != 2 {
		t.Errorf("Zoom = %v, want 2", c.Zoom)
	}
	after := c.ToWorld(anchor)
	if d := after.Sub(before).Len(); d > 1e-3 {
		t.Errorf("anchor moved by %v cells", d)
	}

	c.ZoomAt(anchor, 100)
	if c.Zoom != MaxZoom {
		t.Errorf("Zoom = %v, want clamp to %v", c.Zoom, MaxZoom)
	}
	c.ZoomAt(anchor, 0.0001)
	if c.Zoom != MinZoom {
		t.Errorf("Zoom = %v, want clamp to %v", c.Zoom, MinZoom)
	}
}

func TestSnap(t *testing.T) {
	x, y := Snap(draw.Pt(2.4, -1.6))
	if x != 2 || y != -2 {
		t.Errorf("Snap = (%d, %d), want (2, -2)", x, y)
	}
}

func TestKindLabel(t *testing.T) {
	tests := map[sim.Kind]string{
		sim.And:       "And",
		sim.Xnor:      "Xnor",
		sim.DFlipFlop: "D Flip-Flop",
		sim.Input:     "Input",
	}
	for k, want := range tests {
		if got := KindLabel(k); got != want {
			t.Errorf("KindLabel(%v) = %q, want %q", k, got, want)
		}
	}
}
