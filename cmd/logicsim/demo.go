package main

import (
	"errors"
	"flag"
	"log"

	"github.com/gogpu/logicsim/project"
)

func runDemo(g *globals, args []string) error {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	dir := fs.String("o", "", "store directory to write to (default: -store)")
	name := fs.String("name", project.DemoName, "project name")
	force := fs.Bool("f", false, "overwrite an existing project")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dir != "" {
		g.storeDir = *dir
	}
	st, err := g.store()
	if err != nil {
		return err
	}
	if !*force {
		if _, err := st.LoadProject(*name); err == nil {
			return project.ErrProjectExists
		} else if !errors.Is(err, project.ErrProjectNotFound) {
			return err
		}
	}
	if err := st.SaveProject(*name, project.Demo()); err != nil {
		return err
	}
	log.Printf("wrote %s", st.ProjectPath(*name))
	return nil
}
