package app

import (
	"github.com/gogpu/logicsim/draw"
	"github.com/gogpu/logicsim/project"
	"github.com/gogpu/logicsim/sim"
)

// pinRadius is the pick radius of a pin in cells.
const pinRadius = 0.6

// Geometry is the world-space shape of a placed component.
type Geometry struct {
	Body    draw.Rect
	Inputs  []draw.Point
	Outputs []draw.Point
}

// Pin returns the position of pin.
func (g Geometry) Pin(pin project.Pin) (draw.Point, bool) {
	pins := g.Inputs
	if pin.Output {
		pins = g.Outputs
	}
	if pin.Index < 0 || pin.Index >= len(pins) {
		return draw.Point{}, false
	}
	return pins[pin.Index], true
}

// Layout computes the geometry of p. Inputs sit on the left edge and
// outputs on the right edge, two cells apart, before rotation.
func Layout(p *project.Placed) Geometry {
	nIn, nOut := p.InputCount(), p.OutputCount()
	w, h := 4, 2*max(1, nIn, nOut)
	switch p.Kind {
	case sim.Input, sim.Output, sim.Clock:
		w, h = 2, 2
	}

	rot := ((p.Rotation % 4) + 4) % 4
	bw, bh := w, h
	if rot%2 == 1 {
		bw, bh = h, w
	}
	origin := draw.Pt(float32(p.X), float32(p.Y))
	g := Geometry{
		Body:    draw.Rect{Min: origin, Max: origin.Add(draw.Pt(float32(bw), float32(bh)))},
		Inputs:  make([]draw.Point, nIn),
		Outputs: make([]draw.Point, nOut),
	}
	place := func(x, y int) draw.Point {
		rx, ry := rotate(x, y, w, h, rot)
		return origin.Add(draw.Pt(float32(rx), float32(ry)))
	}
	inOff := (h - 2*nIn) / 2
	for i := range g.Inputs {
		g.Inputs[i] = place(0, inOff+1+2*i)
	}
	outOff := (h - 2*nOut) / 2
	for i := range g.Outputs {
		g.Outputs[i] = place(w, outOff+1+2*i)
	}
	return g
}

// rotate turns a local point of a w x h box clockwise in 90 degree steps.
func rotate(x, y, w, h, rot int) (int, int) {
	switch rot {
	case 1:
		return h - y, x
	case 2:
		return w - x, h - y
	case 3:
		return y, w - x
	}
	return x, y
}

// hitComponent returns the topmost component whose body contains p.
func hitComponent(s *project.Scene, p draw.Point) (project.ID, bool) {
	for i := len(s.Components) - 1; i >= 0; i-- {
		c := &s.Components[i]
		if Layout(c).Body.Contains(p) {
			return c.ID, true
		}
	}
	return 0, false
}

// hitPin returns the pin closest to p within pinRadius.
func hitPin(s *project.Scene, p draw.Point) (project.Pin, bool) {
	var (
		best  project.Pin
		found bool
		dist  float32 = pinRadius * pinRadius
	)
	check := func(pin project.Pin, at draw.Point) {
		if d := at.Sub(p).LenSq(); d <= dist {
			best, found, dist = pin, true, d
		}
	}
	for i := range s.Components {
		c := &s.Components[i]
		g := Layout(c)
		for k, at := range g.Inputs {
			check(project.Pin{Component: c.ID, Index: k}, at)
		}
		for k, at := range g.Outputs {
			check(project.Pin{Component: c.ID, Output: true, Index: k}, at)
		}
	}
	return best, found
}
