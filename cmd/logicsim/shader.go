package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gogpu/logicsim/gpu"
	"github.com/gogpu/logicsim/pipeline"
)

func runShader(_ *globals, args []string) error {
	fs := flag.NewFlagSet("shader", flag.ContinueOnError)
	check := fs.Bool("check", false, "compile the shader to SPIR-V instead of printing it")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !*check {
		_, err := fmt.Fprint(os.Stdout, pipeline.ShaderSource())
		return err
	}
	n, err := gpu.ValidateShader()
	if err != nil {
		return err
	}
	fmt.Printf("ui.wgsl: ok (%d bytes of SPIR-V)\n", n)
	return nil
}
