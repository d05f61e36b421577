package app

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gogpu/logicsim/atlas"
	"github.com/gogpu/logicsim/draw"
	"github.com/gogpu/logicsim/sim"
)

// Palette bar metrics in pixels at scale 1.
const (
	paletteHeight  = 28
	palettePadding = 10
	textScale      = 1
)

var titleCaser = cases.Title(language.English)

// KindLabel returns the display name of a component kind.
func KindLabel(k sim.Kind) string {
	name := k.String()
	if k == sim.DFlipFlop {
		name = "d flip-flop"
	}
	return titleCaser.String(name)
}

// paletteEntry is one selectable kind in the palette bar.
type paletteEntry struct {
	kind  sim.Kind
	label string
	rect  draw.Rect
}

// Palette is the bar of component kinds at the top of the screen.
type Palette struct {
	entries []paletteEntry
	height  float32
	scale   float32
}

// NewPalette lays out one entry per kind.
func NewPalette(a *atlas.Atlas, scale float32) *Palette {
	p := &Palette{height: paletteHeight * scale, scale: scale}
	x := float32(palettePadding) * scale
	for _, k := range sim.Kinds() {
		label := KindLabel(k)
		w, _ := a.Measure(label)
		w = w*textScale*scale + 2*palettePadding*scale
		p.entries = append(p.entries, paletteEntry{
			kind:  k,
			label: label,
			rect:  draw.RectFromMinSize(draw.Pt(x, 0), w, p.height),
		})
		x += w
	}
	return p
}

// Height returns the bar height in pixels.
func (p *Palette) Height() float32 { return p.height }

// Hit returns the kind under the screen position pos.
func (p *Palette) Hit(pos draw.Point) (sim.Kind, bool) {
	if pos.Y < 0 || pos.Y > p.height {
		return sim.Invalid, false
	}
	for _, e := range p.entries {
		if e.rect.Contains(pos) {
			return e.kind, true
		}
	}
	return sim.Invalid, false
}

// Contains reports whether pos lies on the bar.
func (p *Palette) Contains(pos draw.Point) bool {
	return pos.Y >= 0 && pos.Y <= p.height
}

// symbol returns the short text drawn on a component body.
func symbol(k sim.Kind) string {
	switch k {
	case sim.Input:
		return "IN"
	case sim.Output:
		return "OUT"
	case sim.Clock:
		return "CLK"
	case sim.DFlipFlop:
		return "DFF"
	case sim.Buffer:
		return "BUF"
	}
	return strings.ToUpper(k.String())
}
