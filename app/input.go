package app

import (
	"fmt"

	"github.com/gogpu/logicsim"
	"github.com/gogpu/logicsim/draw"
	"github.com/gogpu/logicsim/platform"
	"github.com/gogpu/logicsim/project"
	"github.com/gogpu/logicsim/sim"
)

// scrollZoomStep is the zoom factor change per scrolled pixel.
const scrollZoomStep = 0.1

// HandleEvent applies one input event to the editor state.
func (a *App) HandleEvent(ev platform.Event) {
	switch e := ev.(type) {
	case platform.Hover:
		a.onHover(e.Pos)
	case platform.Press:
		a.onPress(e)
	case platform.Release:
		a.onRelease(e)
	case platform.Click:
		a.onClick(e)
	case platform.Scroll:
		a.camera.ZoomAt(a.pointer, 1+e.Delta.Y*scrollZoomStep)
	case platform.Zoom:
		a.camera.ZoomAt(e.Pos, 1+e.Delta)
	case platform.KeyPress:
		a.onKey(e.Key)
	case platform.Type:
		a.onType(e.Rune)
	case platform.Paste:
		a.onPaste(e.Text)
	case platform.KeyRelease, platform.Resize:
	default:
		logicsim.Logger().Debug("app: ignored event", "type", ev)
	}
}

func (a *App) world(p draw.Point) draw.Point { return a.camera.ToWorld(p) }

// onStatusBar reports whether the screen position pos lies on the status bar
// at the current host size.
func (a *App) onStatusBar(pos draw.Point) bool {
	return a.height > 0 && pos.Y >= a.height-statusHeight*a.settings.ScaleFactor
}

func (a *App) onHover(pos draw.Point) {
	delta := pos.Sub(a.pointer)
	a.pointer = pos

	switch a.drag {
	case dragPan:
		a.camera.Pan(delta)
	case dragMove:
		if c, ok := a.scene.Component(a.moving); ok {
			x, y := Snap(a.world(pos).Sub(a.dragLast))
			if x != c.X || y != c.Y {
				c.X, c.Y = x, y
			}
		}
	}
	a.hovered, a.hoverOK = hitComponent(a.scene, a.world(pos))
}

func (a *App) onPress(e platform.Press) {
	a.pointer = e.Pos
	if a.palette.Contains(e.Pos) || a.onStatusBar(e.Pos) {
		return
	}
	w := a.world(e.Pos)
	switch e.Button {
	case platform.ButtonMiddle:
		a.drag = dragPan
	case platform.ButtonLeft:
		if pin, ok := hitPin(a.scene, w); ok {
			a.drag, a.dragFrom = dragWire, pin
			return
		}
		if id, ok := hitComponent(a.scene, w); ok && a.selected == sim.Invalid {
			c, _ := a.scene.Component(id)
			a.drag, a.moving = dragMove, id
			a.dragLast = w.Sub(draw.Pt(float32(c.X), float32(c.Y)))
			return
		}
		a.drag = dragPan
	}
}

func (a *App) onRelease(e platform.Release) {
	a.pointer = e.Pos
	if a.drag == dragWire {
		if to, ok := hitPin(a.scene, a.world(e.Pos)); ok && to != a.dragFrom {
			if err := a.Connect(a.dragFrom, to); err != nil {
				logicsim.Logger().Warn("app: connect failed", "error", err)
			}
		}
	}
	if a.drag == dragMove {
		// Positions do not change the circuit.
		a.moving = 0
	}
	a.drag = dragNone
}

func (a *App) onClick(e platform.Click) {
	if e.Button == platform.ButtonRight {
		a.selected = sim.Invalid
		return
	}
	if e.Button != platform.ButtonLeft {
		return
	}
	if kind, ok := a.palette.Hit(e.Pos); ok {
		if a.selected == kind {
			a.selected = sim.Invalid
		} else {
			a.selected = kind
		}
		return
	}
	if a.palette.Contains(e.Pos) || a.onStatusBar(e.Pos) {
		return
	}

	w := a.world(e.Pos)
	if a.selected != sim.Invalid {
		x, y := Snap(w)
		a.Place(a.selected, x, y)
		return
	}
	if id, ok := hitComponent(a.scene, w); ok {
		a.ToggleInput(id)
	}
}

func (a *App) onKey(k platform.Key) {
	switch k {
	case platform.KeyDelete, platform.KeyBackspace:
		if pin, ok := hitPin(a.scene, a.world(a.pointer)); ok {
			a.Disconnect(pin)
			return
		}
		if a.hoverOK {
			a.Remove(a.hovered)
		}
	case platform.KeyEsc:
		a.selected = sim.Invalid
		a.drag = dragNone
	case platform.KeySpace:
		a.runner.SetPaused(!a.runner.Paused())
	case platform.KeyEnter:
		a.Step(1)
	}
}

func (a *App) onType(r rune) {
	switch r {
	case 'r', 'R':
		if c, ok := a.scene.Component(a.hovered); ok && a.hoverOK {
			c.Rotation = (c.Rotation + 1) % 4
		}
	case '+', '=':
		a.camera.ZoomAt(a.pointer, 1.25)
	case '-':
		a.camera.ZoomAt(a.pointer, 0.8)
	}
}

// onPaste sets the label of the hovered component.
func (a *App) onPaste(text string) {
	if c, ok := a.scene.Component(a.hovered); ok && a.hoverOK {
		c.Label = text
	}
}

// Place adds a component of kind at grid cell (x, y).
func (a *App) Place(kind sim.Kind, x, y int) project.ID {
	id := a.scene.Add(kind, x, y)
	a.markDirty()
	logicsim.Logger().Debug("app: placed component", "kind", kind, "x", x, "y", y)
	return id
}

// Connect wires two pins. A wire that would stop the scene from compiling
// is rejected and the scene is left unchanged.
func (a *App) Connect(from, to project.Pin) error {
	trial := a.scene.Clone()
	if err := trial.Connect(from, to); err != nil {
		return err
	}
	c, _, err := trial.Compile(a.settings.SimOptions()...)
	if err != nil {
		return fmt.Errorf("app: rejected wire %v -> %v: %w", from, to, err)
	}
	c.Close()

	if err := a.scene.Connect(from, to); err != nil {
		return err
	}
	a.markDirty()
	return nil
}

// Disconnect removes every wire attached to pin.
func (a *App) Disconnect(pin project.Pin) int {
	n := a.scene.Disconnect(pin)
	if n > 0 {
		a.markDirty()
		logicsim.Logger().Debug("app: disconnected pin", "pin", pin, "wires", n)
	}
	return n
}

// Remove deletes a component and its wires.
func (a *App) Remove(id project.ID) {
	if a.scene.Remove(id) {
		a.hoverOK = false
		a.markDirty()
	}
}

// ToggleInput flips an Input component. Other kinds are ignored.
func (a *App) ToggleInput(id project.ID) {
	c, ok := a.scene.Component(id)
	if !ok || c.Kind != sim.Input {
		return
	}
	c.On = !c.On
	cid, ok := a.mapping.Component(id)
	if !ok {
		a.markDirty()
		return
	}
	a.runner.Do(func(circ *sim.Circuit) {
		_ = circ.SetInput(cid, c.On)
	})
}
