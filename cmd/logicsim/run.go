package main

import (
	"flag"
	"fmt"
	"sort"

	"github.com/schollz/progressbar/v3"

	"github.com/gogpu/logicsim/project"
	"github.com/gogpu/logicsim/sim"
)

// runChunk is the number of steps between progress bar updates.
const runChunk = 256

func runRun(g *globals, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	ref := fs.String("project", "", "project name or .yaml path")
	sceneName := fs.String("scene", "", "scene name (default: first scene)")
	steps := fs.Int("steps", 1000, "number of simulation steps")
	quiet := fs.Bool("q", false, "no progress bar")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *steps < 0 {
		return fmt.Errorf("%w: -steps must not be negative", errUsage)
	}

	p, _, err := loadProject(g, *ref)
	if err != nil {
		return err
	}
	scene, err := p.Scene(*sceneName)
	if err != nil {
		return err
	}
	settings := loadSettings(g)
	c, m, err := scene.Compile(settings.SimOptions()...)
	if err != nil {
		return err
	}
	defer c.Close()

	var bar *progressbar.ProgressBar
	if !*quiet {
		bar = progressbar.Default(int64(*steps), "simulating "+scene.Name)
		defer bar.Close()
	}
	for done := 0; done < *steps; {
		n := min(runChunk, *steps-done)
		c.StepN(n)
		done += n
		if bar != nil {
			_ = bar.Add(n)
		}
	}

	for _, line := range outputLines(scene, c, m) {
		fmt.Println(line)
	}
	fmt.Printf("steps=%d stable=%v\n", c.Steps(), c.Stable())
	return nil
}

// outputLines lists every Output component as "label=0|1", sorted by label.
func outputLines(scene *project.Scene, c *sim.Circuit, m project.Mapping) []string {
	var lines []string
	for i := range scene.Components {
		pc := &scene.Components[i]
		if pc.Kind != sim.Output {
			continue
		}
		cid, ok := m.Component(pc.ID)
		if !ok {
			continue
		}
		name := pc.Label
		if name == "" {
			name = pc.ID.String()
		}
		v := 0
		if c.Output(cid) {
			v = 1
		}
		lines = append(lines, fmt.Sprintf("%s=%d", name, v))
	}
	sort.Strings(lines)
	return lines
}
