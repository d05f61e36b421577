package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/gogpu/logicsim/app"
	"github.com/gogpu/logicsim/atlas"
	"github.com/gogpu/logicsim/platform"
	"github.com/gogpu/logicsim/project"
)

// renderOptions are the flags shared by render and watch.
type renderOptions struct {
	ref    string
	scene  string
	output string
	width  int
	height int
	steps  int
}

func (o *renderOptions) register(fs *flag.FlagSet) {
	fs.StringVar(&o.ref, "project", "", "project name or .yaml path")
	fs.StringVar(&o.scene, "scene", "", "scene name (default: first scene)")
	fs.StringVar(&o.output, "o", "out.png", "output PNG file")
	fs.IntVar(&o.width, "w", 800, "image width")
	fs.IntVar(&o.height, "h", 600, "image height")
	fs.IntVar(&o.steps, "steps", 64, "simulation steps before the frame")
}

func (o *renderOptions) validate() error {
	if o.width <= 0 || o.height <= 0 {
		return fmt.Errorf("%w: image size %dx%d", errUsage, o.width, o.height)
	}
	if o.steps < 0 {
		return fmt.Errorf("%w: -steps must not be negative", errUsage)
	}
	return nil
}

func runRender(g *globals, args []string) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	var o renderOptions
	o.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := o.validate(); err != nil {
		return err
	}
	p, _, err := loadProject(g, o.ref)
	if err != nil {
		return err
	}
	if err := renderPNG(p, loadSettings(g), &o); err != nil {
		return err
	}
	log.Printf("rendered %s (%dx%d)", o.output, o.width, o.height)
	return nil
}

// renderPNG opens the scene, advances the simulation and rasterizes one
// frame to o.output.
func renderPNG(p *project.Project, settings project.Settings, o *renderOptions) error {
	a, err := app.New(atlas.MustNew(), settings, p, o.scene)
	if err != nil {
		return err
	}
	defer a.Close()

	host := platform.NewHeadless(o.width, o.height)
	defer host.Close()

	a.Step(o.steps)
	if _, err := a.Frame(host, time.Now()); err != nil {
		return err
	}
	return host.SavePNG(o.output)
}
