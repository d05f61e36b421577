// Command logicsim runs, renders and inspects logic circuit projects
// without a window.
//
// Usage:
//
//	logicsim [-store dir] [-v] <command> [flags]
//
// Commands:
//
//	shader  print the WGSL source (-check compiles it)
//	run     simulate a scene and print its outputs
//	render  render one frame of a scene to PNG
//	watch   re-render whenever the project file changes
//	demo    write the bundled demo project to the store
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/logicsim"
	"github.com/gogpu/logicsim/project"
)

var errUsage = errors.New("usage")

type command struct {
	name  string
	brief string
	run   func(g *globals, args []string) error
}

var commands = []command{
	{"shader", "print the WGSL source (-check compiles it)", runShader},
	{"run", "simulate a scene and print its outputs", runRun},
	{"render", "render one frame of a scene to PNG", runRender},
	{"watch", "re-render whenever the project file changes", runWatch},
	{"demo", "write the bundled demo project to the store", runDemo},
}

// globals holds the flags shared by every command.
type globals struct {
	storeDir string
	verbose  bool
}

func (g *globals) store() (*project.Store, error) {
	return project.Open(g.storeDir)
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "usage: logicsim [-store dir] [-v] <command> [flags]\n\ncommands:\n")
	for _, c := range commands {
		fmt.Fprintf(out, "  %-8s %s\n", c.name, c.brief)
	}
	fmt.Fprintf(out, "\nglobal flags:\n")
	flag.PrintDefaults()
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("logicsim: ")

	var g globals
	flag.StringVar(&g.storeDir, "store", project.DefaultDir, "store directory")
	flag.BoolVar(&g.verbose, "v", false, "verbose logging")
	flag.Usage = usage
	flag.Parse()

	if g.verbose {
		logicsim.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	} else {
		logicsim.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))
	}

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}
	name, args := flag.Arg(0), flag.Args()[1:]
	for _, c := range commands {
		if c.name != name {
			continue
		}
		if err := c.run(&g, args); err != nil {
			if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
				os.Exit(2)
			}
			log.Fatalf("%s: %v", name, err)
		}
		return
	}
	log.Printf("unknown command %q", name)
	usage()
	os.Exit(2)
}

// loadProject resolves -project: a path to a .yaml file or a project name in
// the store. It returns the project and the file it was read from.
func loadProject(g *globals, ref string) (*project.Project, string, error) {
	if ref == "" {
		return nil, "", fmt.Errorf("%w: -project is required", errUsage)
	}
	if _, err := os.Stat(ref); err == nil {
		data, err := os.ReadFile(ref)
		if err != nil {
			return nil, "", err
		}
		p, err := project.Unmarshal(data)
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", ref, err)
		}
		return p, ref, nil
	}
	st, err := g.store()
	if err != nil {
		return nil, "", err
	}
	p, err := st.LoadProject(ref)
	if err != nil {
		return nil, "", err
	}
	return p, st.ProjectPath(ref), nil
}

// loadSettings reads the store settings, falling back to defaults when the
// store cannot be opened.
func loadSettings(g *globals) project.Settings {
	st, err := g.store()
	if err != nil {
		logicsim.Logger().Warn("store unavailable, using default settings", "error", err)
		return project.DefaultSettings()
	}
	s, _ := st.LoadSettings()
	return s
}
