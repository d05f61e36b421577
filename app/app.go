// Package app is the shared application: it owns the open scene, the
// simulation and the editor state, consumes platform events and produces
// one draw list per frame.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/logicsim"
	"github.com/gogpu/logicsim/atlas"
	"github.com/gogpu/logicsim/draw"
	"github.com/gogpu/logicsim/pipeline"
	"github.com/gogpu/logicsim/platform"
	"github.com/gogpu/logicsim/project"
	"github.com/gogpu/logicsim/sim"
)

// frameIntervalMillis is the minimum number of whole milliseconds that must
// pass before a new frame is drawn (60 fps).
const frameIntervalMillis = 1000 / 60

// ErrNoScene is returned when the project has no scene to open.
var ErrNoScene = errors.New("app: project has no scene")

// dragMode is the current pointer drag interaction.
type dragMode uint8

const (
	dragNone dragMode = iota
	dragPan
	dragWire
	dragMove
)

// App is the application state shared by every platform.
//
// App is NOT safe for concurrent use, except for the simulation which is
// guarded by the Runner.
type App struct {
	settings project.Settings
	colors   colors
	project  *project.Project
	scene    *project.Scene

	runner  *sim.Runner
	mapping project.Mapping
	dirty   bool
	status  string

	atlas   *atlas.Atlas
	list    *draw.List
	palette *Palette
	camera  Camera

	// editor
	pointer  draw.Point
	selected sim.Kind
	hovered  project.ID
	hoverOK  bool
	drag     dragMode
	dragFrom project.Pin
	dragLast draw.Point
	moving   project.ID
	height   float32

	// frame timing
	lastFrame     time.Time
	lastFPSUpdate time.Time
	frameCount    int
	fps           int
	frames        uint64
}

// New opens scene sceneName of p (the first scene when empty).
func New(a *atlas.Atlas, settings project.Settings, p *project.Project, sceneName string) (*App, error) {
	if len(p.Scenes) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoScene, p.Name)
	}
	scene, err := p.Scene(sceneName)
	if err != nil {
		return nil, err
	}
	settings.Normalize()

	app := &App{
		settings: settings,
		colors:   newColors(settings.Theme),
		project:  p,
		scene:    scene,
		atlas:    a,
		list:     draw.NewList(a),
		palette:  NewPalette(a, settings.ScaleFactor),
	}
	app.camera = NewCamera(draw.Pt(40*settings.ScaleFactor, 80*settings.ScaleFactor), settings.ScaleFactor)
	app.runner = sim.NewRunner(nil, 0)
	if err := app.rebuild(); err != nil {
		return nil, err
	}
	logicsim.Logger().Info("app: opened scene", "project", p.Name, "scene", scene.Name,
		"components", len(scene.Components), "wires", len(scene.Wires))
	return app, nil
}

// Project returns the open project.
func (a *App) Project() *project.Project { return a.project }

// Scene returns the open scene.
func (a *App) Scene() *project.Scene { return a.scene }

// Camera returns the camera.
func (a *App) Camera() *Camera { return &a.camera }

// Runner returns the runner guarding the simulation. Hosts that want to
// simulate between frames call Runner().Run in a goroutine.
func (a *App) Runner() *sim.Runner { return a.runner }

// Mapping returns the scene to circuit mapping of the current circuit.
func (a *App) Mapping() project.Mapping { return a.mapping }

// FPS returns the frame rate measured over the last full second.
func (a *App) FPS() int { return a.fps }

// Status returns the simulation status shown in the status bar.
func (a *App) Status() string { return a.status }

// Selected returns the kind chosen in the palette, or sim.Invalid.
func (a *App) Selected() sim.Kind { return a.selected }

// Close stops the simulation workers.
func (a *App) Close() {
	a.runner.Do(func(c *sim.Circuit) {
		if c != nil {
			c.Close()
		}
	})
}

// Run steps the simulation in the background until ctx is done.
func (a *App) Run(ctx context.Context) error {
	return a.runner.Run(ctx)
}

// rebuild compiles the scene into a fresh circuit and swaps it in.
func (a *App) rebuild() error {
	c, m, err := a.scene.Compile(a.settings.SimOptions()...)
	if err != nil {
		a.status = "error"
		return err
	}
	if old := a.runner.Swap(c); old != nil {
		old.Close()
	}
	a.mapping = m
	a.dirty = false
	a.status = ""
	logicsim.Logger().Debug("app: circuit rebuilt", "components", c.Len(), "nets", c.NetCount())
	return nil
}

// markDirty schedules a circuit rebuild for the next frame.
func (a *App) markDirty() { a.dirty = true }

// Frame runs one iteration of the frame loop: it polls input, advances the
// simulation, rebuilds the draw list and submits it to host. Frames closer
// than 1000/60 ms to the previous one are skipped and Frame returns false.
func (a *App) Frame(host platform.Host, now time.Time) (bool, error) {
	if !a.lastFrame.IsZero() && now.Sub(a.lastFrame).Milliseconds() <= frameIntervalMillis {
		return false, nil
	}

	if a.lastFPSUpdate.IsZero() {
		a.lastFPSUpdate = now
	}
	if now.Sub(a.lastFPSUpdate) >= time.Second {
		a.lastFPSUpdate = now
		a.fps = a.frameCount
		a.frameCount = 0
	}
	a.frameCount++
	a.lastFrame = now

	w, h := host.Size()
	a.height = float32(h)
	for _, ev := range host.PollInput() {
		a.HandleEvent(ev)
	}

	if a.dirty {
		if err := a.rebuild(); err != nil {
			logicsim.Logger().Warn("app: scene does not compile", "scene", a.scene.Name, "error", err)
			a.dirty = false
		}
	}
	a.advance()

	a.Draw(float32(w), float32(h))
	frame := &platform.Frame{
		List:   a.list,
		Locals: pipeline.NewLocals(float32(w), float32(h), a.atlas.Size()),
		Clear:  a.colors.background,
	}
	a.frames++
	if err := host.SubmitFrame(frame); err != nil {
		return true, fmt.Errorf("app: submit frame %d: %w", a.frames, err)
	}
	return true, nil
}

// advance runs StepsPerFrame simulation steps and refreshes the status.
func (a *App) advance() {
	paused := a.runner.Paused()
	a.runner.Do(func(c *sim.Circuit) {
		if c == nil {
			return
		}
		if !paused {
			c.StepN(a.settings.StepsPerFrame)
		}
		switch {
		case a.status == "error" && !a.dirty:
		case paused:
			a.status = "paused"
		case c.Stable():
			a.status = "settled"
		default:
			a.status = "running"
		}
	})
}

// Step advances the simulation by n steps regardless of StepsPerFrame.
func (a *App) Step(n int) {
	a.runner.Do(func(c *sim.Circuit) { c.StepN(n) })
}

// Settle runs the simulation until it is stable or maxSteps have passed.
func (a *App) Settle(maxSteps int) error {
	var err error
	a.runner.Do(func(c *sim.Circuit) { err = c.Settle(maxSteps) })
	return err
}

// Value returns the displayed value of a placed component.
func (a *App) Value(id project.ID) bool {
	cid, ok := a.mapping.Component(id)
	if !ok {
		return false
	}
	var v bool
	a.runner.Do(func(c *sim.Circuit) { v = c.Output(cid) })
	return v
}
