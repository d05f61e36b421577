package app

import (
	"github.com/gogpu/logicsim/pipeline"
	"github.com/gogpu/logicsim/project"
)

// colors holds premultiplied theme colors ready for the draw list.
type colors struct {
	background pipeline.Color
	grid       pipeline.Color
	body       pipeline.Color
	outline    pipeline.Color
	text       pipeline.Color
	wireOn     pipeline.Color
	wireOff    pipeline.Color
	wireFloat  pipeline.Color
	selection  pipeline.Color
	panel      pipeline.Color
}

func newColors(t project.Theme) colors {
	return colors{
		background: t.Background.Premultiply(),
		grid:       t.Grid.Premultiply(),
		body:       t.Body.Premultiply(),
		outline:    t.Outline.Premultiply(),
		text:       t.Text.Premultiply(),
		wireOn:     t.WireOn.Premultiply(),
		wireOff:    t.WireOff.Premultiply(),
		wireFloat:  t.WireFloat.Premultiply(),
		selection:  t.Selection.Premultiply(),
		panel:      t.Panel.Premultiply(),
	}
}
