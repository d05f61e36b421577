package app

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/gogpu/logicsim/draw"
	"github.com/gogpu/logicsim/pipeline"
	"github.com/gogpu/logicsim/project"
	"github.com/gogpu/logicsim/sim"
)

// World-space drawing metrics in cells.
const (
	wireWidth    = 0.18
	outlineWidth = 0.08
	pinDotRadius = 0.22
	cornerRadius = 0.4
	worldText    = 1.0 / 16
	circleDetail = 16
	statusHeight = 22
)

// wireState classifies a net for coloring.
type wireState uint8

const (
	wireFloating wireState = iota
	wireLow
	wireHigh
)

// List returns the draw list built by the last Draw.
func (a *App) List() *draw.List { return a.list }

// Draw rebuilds the draw list for a w x h pixel surface.
func (a *App) Draw(w, h float32) *draw.List {
	l := a.list
	l.Clear()

	var nets []bool
	a.runner.Do(func(c *sim.Circuit) {
		if c == nil {
			return
		}
		nets = make([]bool, c.NetCount())
		for i := range nets {
			nets[i] = c.Net(sim.NetID(i))
		}
	})
	state := func(pin project.Pin) wireState {
		n, ok := a.mapping.Net(pin)
		if !ok || !a.mapping.Driven(n) || int(n) >= len(nets) {
			return wireFloating
		}
		if nets[n] {
			return wireHigh
		}
		return wireLow
	}

	l.Transform = a.camera.Transform()
	a.drawGrid(w, h)
	a.drawWires(state)
	for i := range a.scene.Components {
		a.drawComponent(&a.scene.Components[i], state)
	}
	a.drawDragPreview()

	l.Transform = draw.Identity
	a.drawPalette(w)
	a.drawStatus(w, h)
	return l
}

func (a *App) wireColor(s wireState) pipeline.Color {
	switch s {
	case wireHigh:
		return a.colors.wireOn
	case wireLow:
		return a.colors.wireOff
	}
	return a.colors.wireFloat
}

func (a *App) drawGrid(w, h float32) {
	tl := a.camera.ToWorld(draw.Pt(0, 0))
	br := a.camera.ToWorld(draw.Pt(w, h))
	step := float32(1)
	for a.camera.Zoom*a.camera.Scale*CellSize*step < 8 {
		step *= 2
	}
	dot := 1.5 / (a.camera.Zoom * a.camera.Scale * CellSize)
	for y := math32.Floor(tl.Y/step) * step; y <= br.Y; y += step {
		for x := math32.Floor(tl.X/step) * step; x <= br.X; x += step {
			a.list.FillRect(draw.RectFromCenter(draw.Pt(x, y), dot, dot), a.colors.grid)
		}
	}
}

func (a *App) drawWires(state func(project.Pin) wireState) {
	for _, wire := range a.scene.Wires {
		from, ok1 := a.scene.Component(wire.From.Component)
		to, ok2 := a.scene.Component(wire.To.Component)
		if !ok1 || !ok2 {
			continue
		}
		p0, ok1 := Layout(from).Pin(wire.From)
		p1, ok2 := Layout(to).Pin(wire.To)
		if !ok1 || !ok2 {
			continue
		}
		c := a.wireColor(state(wire.From))
		// Orthogonal route through the horizontal midpoint.
		mid := (p0.X + p1.X) / 2
		a.list.Polyline([]draw.Point{p0, draw.Pt(mid, p0.Y), draw.Pt(mid, p1.Y), p1}, wireWidth, c)
		a.list.Circle(draw.Pt(mid, p0.Y), wireWidth/2, 6, c)
		a.list.Circle(draw.Pt(mid, p1.Y), wireWidth/2, 6, c)
	}
}

func (a *App) drawComponent(p *project.Placed, state func(project.Pin) wireState) {
	l := a.list
	g := Layout(p)
	body := g.Body.Inset(0.15)

	fill := a.colors.body
	switch p.Kind {
	case sim.Input, sim.Clock:
		fill = a.wireColor(state(project.Pin{Component: p.ID, Output: true}))
	case sim.Output:
		fill = a.wireColor(state(project.Pin{Component: p.ID}))
	}
	l.RoundedRect(body, cornerRadius, 4, fill)

	outline := a.colors.outline
	if a.hoverOK && a.hovered == p.ID {
		outline = a.colors.selection
	}
	l.RoundedRectOutline(body, outlineWidth, cornerRadius, 4, outline)
	l.TextCentered(body.Center(), symbol(p.Kind), worldText, a.colors.text)
	if p.Label != "" {
		lw, lh := a.atlas.Measure(p.Label)
		l.Text(draw.Pt(g.Body.Center().X-lw*worldText/2, g.Body.Min.Y-lh*worldText), p.Label, worldText, a.colors.text)
	}

	for k, at := range g.Inputs {
		l.Circle(at, pinDotRadius, circleDetail, a.wireColor(state(project.Pin{Component: p.ID, Index: k})))
	}
	for k, at := range g.Outputs {
		l.Circle(at, pinDotRadius, circleDetail, a.wireColor(state(project.Pin{Component: p.ID, Output: true, Index: k})))
	}
}

func (a *App) drawDragPreview() {
	if a.drag != dragWire {
		return
	}
	c, ok := a.scene.Component(a.dragFrom.Component)
	if !ok {
		return
	}
	from, ok := Layout(c).Pin(a.dragFrom)
	if !ok {
		return
	}
	to := a.camera.ToWorld(a.pointer)
	a.list.Curve(from, draw.Pt((from.X+to.X)/2, from.Y), to, 12, wireWidth, a.colors.selection)
}

func (a *App) drawPalette(w float32) {
	l := a.list
	s := a.settings.ScaleFactor
	l.FillRect(draw.Rect{Max: draw.Pt(w, a.palette.Height())}, a.colors.panel)
	for _, e := range a.palette.entries {
		if e.kind == a.selected {
			l.RoundedRect(e.rect.Inset(2*s), 4*s, 4, a.colors.selection.Lerp(a.colors.panel, 0.5))
		}
		l.TextCentered(e.rect.Center(), e.label, textScale*s, a.colors.text)
	}
}

func (a *App) drawStatus(w, h float32) {
	l := a.list
	s := a.settings.ScaleFactor
	bar := draw.Rect{Min: draw.Pt(0, h-statusHeight*s), Max: draw.Pt(w, h)}
	l.FillRect(bar, a.colors.panel)

	var steps uint64
	a.runner.Do(func(c *sim.Circuit) {
		if c != nil {
			steps = c.Steps()
		}
	})
	text := fmt.Sprintf("%s / %s | fps %d | steps %d | %s | zoom %.2f",
		a.project.Name, a.scene.Name, a.fps, steps, a.status, a.camera.Zoom)
	_, th := a.atlas.Measure(text)
	l.Text(draw.Pt(8*s, bar.Min.Y+(statusHeight*s-th*s)/2), text, s, a.colors.text)
}
